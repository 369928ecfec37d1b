package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"syscall"

	"caesar/internal/config"
	"caesar/internal/ctxlog"
	"caesar/internal/rec"
	"caesar/internal/server"
	"caesar/internal/store"
)

func run(ctx context.Context, configFile string) (err error) {
	defer rec.Error(&err)

	logger := ctxlog.Get(ctx)

	c, err := config.Load(ctx, configFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger.Info("opening db", "file", c.DB.File)
	store.Open(c.DB)
	defer ctxlog.Close(ctx, "db", store.Closer())

	logger.Info("starting server")
	srv := server.New(c.Server)

	return srv.Run(ctx)
}

func main() {
	logDir := flag.String("log", "log", "directory for log files, empty to log to stderr only")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ctx = ctxlog.Setup(ctx, "caesard", *logDir)

	logger := ctxlog.Get(ctx)

	configFile := "config.yaml"
	if flag.NArg() > 0 {
		configFile = flag.Arg(0)
	}

	err := run(ctx, configFile)
	if err != nil {
		logger.Error("server stopped unexpectedly", "error", err)
	} else {
		logger.Info("server gracefully stopped")
	}
}
