package server

import (
	"net/http"
	"strconv"

	"caesar/internal/ctxlog"

	"github.com/goccy/go-json"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"
)

type errorBody struct {
	Error string `json:"error"`
}

func write(w http.ResponseWriter, r *http.Request, status int, ct string, content []byte) {
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(status)
	if _, err := w.Write(content); err != nil {
		log := ctxlog.Get(r.Context())
		log.Error("failed to write response", "error", err)
		return
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	content, err := json.Marshal(v)
	if err != nil {
		log := ctxlog.Get(r.Context())
		log.Error("failed to marshal response", "error", err)
		status = http.StatusInternalServerError
		content = []byte(`{"error":"internal server error"}`)
	}

	write(w, r, status, contentTypeJSON, append(content, '\n'))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	writeJSON(w, r, status, errorBody{Error: err.Error()})
}

func statusHandler(status int) http.Handler {
	content := must(json.Marshal(errorBody{Error: http.StatusText(status)}))
	content = append(content, '\n')

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		write(w, r, status, contentTypeJSON, content)
	})
}

func notFoundHandler() http.Handler {
	return statusHandler(http.StatusNotFound)
}

func tooManyRequestsHandler() http.Handler {
	return statusHandler(http.StatusTooManyRequests)
}

func internalServerErrorHandler() http.Handler {
	return statusHandler(http.StatusInternalServerError)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
