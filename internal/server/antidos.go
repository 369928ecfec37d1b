package server

import (
	"hash/fnv"
	"io"
	"net"
	"net/http"
	"time"
)

// bucket hashes the client address into one of n buckets. Requests with an
// unparsable address all share bucket 0.
func bucket(r *http.Request, n int) int {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return 0
	}

	h := fnv.New64()
	io.WriteString(h, host)
	return int(h.Sum64() % uint64(n))
}

// antidos lets one request per bucket through every period.
type antidos struct {
	buckets []*time.Ticker
}

func newAntidos(buckets int, period time.Duration) *antidos {
	b := make([]*time.Ticker, buckets)
	for i := 0; i < buckets; i++ {
		b[i] = time.NewTicker(period)
	}

	return &antidos{
		buckets: b,
	}
}

func (a *antidos) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-a.buckets[bucket(r, len(a.buckets))].C:
		case <-r.Context().Done():
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *antidos) stop() {
	for _, t := range a.buckets {
		t.Stop()
	}
}
