// internal/handlers/middleware/metrics.go
package middleware

import (
	"net/http"
	"time"

	"github.com/ammerola/parts-be/internal/pkg/metrics"
)

// Metrics records request counts and latency. It must wrap the ServeMux
// directly so the matched route pattern is visible after dispatch.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.ObserveHTTP(r.Method, route, wrapped.statusCode, time.Since(start))
		})
	}
}
