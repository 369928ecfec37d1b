package server

import (
	"net/http"
)

// limit caps the number of requests a bucket of clients may have in flight.
// Requests over the cap are answered by tooManyRequests right away.
type limit struct {
	tickets         []chan struct{}
	tooManyRequests http.Handler
}

func newLimit(buckets int, maxConcurrent int, tooManyRequests http.Handler) *limit {
	t := make([]chan struct{}, buckets)
	for i := range t {
		t[i] = make(chan struct{}, maxConcurrent)
	}

	return &limit{
		tickets:         t,
		tooManyRequests: tooManyRequests,
	}
}

func (l *limit) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tickets := l.tickets[bucket(r, len(l.tickets))]

		select {
		case tickets <- struct{}{}:
			defer func() { <-tickets }()
			next.ServeHTTP(w, r)

		default:
			l.tooManyRequests.ServeHTTP(w, r)
		}
	})
}
