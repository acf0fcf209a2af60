package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/skillmatch/internal/metrics"
)

// Metrics records request counts and latency per route pattern. It must wrap
// the ServeMux without replacing the request, so the matched pattern is visible
// after the handler returns.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
