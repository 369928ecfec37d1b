package server

import (
	"errors"
	"net/http"

	"caesar/internal/ctxlog"
	"caesar/internal/rec"
)

// recoverer answers with err when next panics. http.ErrAbortHandler is
// passed on so the server still aborts the connection.
type recoverer struct {
	next http.Handler
	err  http.Handler
}

func newRecover(next, err http.Handler) *recoverer {
	return &recoverer{
		next: next,
		err:  err,
	}
}

func (h *recoverer) serve(w http.ResponseWriter, r *http.Request) (err error) {
	defer rec.Error(&err)

	h.next.ServeHTTP(w, r)
	return nil
}

func (h *recoverer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := h.serve(w, r)
	if err == nil {
		return
	}
	if errors.Is(err, http.ErrAbortHandler) {
		panic(http.ErrAbortHandler)
	}

	ctxlog.Get(r.Context()).Error("handler panicked", "method", r.Method, "path", r.URL.Path, "error", err)

	clear(w.Header())
	h.err.ServeHTTP(w, r)
}
