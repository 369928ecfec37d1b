package server

import (
	"net"
	"net/http"
	"strings"
)

// hostname drops the port and letter case from a Host header value.
func hostname(hostport string) string {
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		hostport = h
	}
	return strings.ToLower(strings.TrimSuffix(hostport, "."))
}

// hostMiddleware sends clients that reached the service under another name
// to host. The redirect is temporary and keeps the method and body, so a
// POST to /encrypt is replayed against the canonical host. The port and
// letter case of the request's Host are ignored.
func hostMiddleware(host string, next http.Handler) http.Handler {
	if host == "" {
		return next
	}
	want := hostname(host)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hostname(r.Host) == want {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Location", "//"+host+r.URL.RequestURI())
		w.WriteHeader(http.StatusTemporaryRedirect)
	})
}
