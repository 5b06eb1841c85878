package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/V4T54L/contact-hub/internal/adapter/metrics"
)

// RateLimit is a middleware factory that applies a process-wide token-bucket
// limit to incoming requests. Every GraphQL request can fan out into several
// paid upstream calls, so the limiter sits in front of the whole surface.
// The metrics argument may be nil.
func RateLimit(rps float64, burst int, logger *slog.Logger, m *metrics.APIMetrics) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				if m != nil {
					m.RateLimitedTotal.Inc()
				}
				logger.Warn("request rate limited", "remote_addr", r.RemoteAddr)
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
