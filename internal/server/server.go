// Package server exposes the rotation cipher and the message store over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"caesar/internal/ctxlog"
	"caesar/internal/rot"

	"golang.org/x/sync/errgroup"
)

type Server struct {
	addr            string
	handler         http.Handler
	tls             *tlsLoader
	antidos         *antidos
	shutdownTimeout time.Duration
}

func New(config Config) *Server {
	if config.Port == 0 {
		panic("server: port is required")
	}
	if config.AntidosBuckets == 0 {
		panic("server: antidosBuckets is required")
	}
	if config.AntidosPeriod == 0 {
		panic("server: antidosPeriod is required")
	}
	if config.ShutdownTimeout == 0 {
		panic("server: shutdownTimeout is required")
	}
	if (config.TLSCertFile == "") != (config.TLSKeyFile == "") {
		panic("server: tlsCertFile and tlsKeyFile must be set together")
	}
	if config.MaxBodyBytes == 0 {
		config.MaxBodyBytes = defaultMaxBodyBytes
	}
	if config.TLSReloadInterval == 0 {
		config.TLSReloadInterval = defaultTLSReloadInterval
	}

	a := &api{maxBody: config.MaxBodyBytes}
	notFound := notFoundHandler()
	adm := newAdmin(config.AdminKey, notFound)

	mux := http.NewServeMux()

	for pattern, h := range map[string]http.Handler{
		"/":                             notFound,
		"POST /encrypt":                 a.translate(rot.Encrypt),
		"POST /decrypt":                 a.translate(rot.Decrypt),
		"POST /translate":               http.HandlerFunc(a.translateAny),
		"POST /messages":                http.HandlerFunc(a.createMessage),
		"GET /messages":                 http.HandlerFunc(a.listMessages),
		"GET /messages/{id}":            http.HandlerFunc(a.getMessage),
		"POST /messages/{id}/translate": http.HandlerFunc(a.translateMessage),
		"DELETE /messages/{id}":         adm.middleware(http.HandlerFunc(a.deleteMessage)),
	} {
		slog.Info("registering handler", "pattern", pattern)
		mux.Handle(pattern, h)
	}

	anti := newAntidos(config.AntidosBuckets, config.AntidosPeriod)

	handler := http.Handler(mux)
	if config.AntidosMaxConcurrent > 0 {
		handler = newLimit(config.AntidosBuckets, config.AntidosMaxConcurrent, tooManyRequestsHandler()).middleware(handler)
	}
	handler = anti.middleware(handler)
	handler = newRecover(handler, internalServerErrorHandler())
	handler = logMiddleware(handler)
	handler = headersMiddleware(handler)
	handler = hostMiddleware(config.Host, handler)

	s := &Server{
		addr:            fmt.Sprintf("0.0.0.0:%d", config.Port),
		handler:         handler,
		antidos:         anti,
		shutdownTimeout: config.ShutdownTimeout,
	}

	if config.TLSCertFile != "" {
		s.tls = newTLSLoader(config.TLSCertFile, config.TLSKeyFile, config.TLSReloadInterval)
	}

	return s
}

// Handler returns the fully wrapped handler, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	logger := ctxlog.Get(ctx)
	defer s.antidos.stop()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		BaseContext:       func(net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
	}
	if s.tls != nil {
		srv.TLSConfig = s.tls.config()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server is running", "addr", s.addr, "tls", s.tls != nil)

		var err error
		if s.tls != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	if s.tls != nil {
		g.Go(func() error {
			s.tls.reloadLoop(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()

		logger.Info("server is shutting down")

		stopCtx, stopCancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer stopCancel()

		err := srv.Shutdown(stopCtx)
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Error("server shutdown timeout exceeded")
		} else if err == nil {
			logger.Info("all clients closed successfully")
		}
		return err
	})

	return g.Wait()
}
