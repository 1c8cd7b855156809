package middleware

import (
	"net"
	"net/http"
	"strconv"

	apperrors "careergraph/pkg/errors"
	"careergraph/pkg/ratelimit"

	"go.uber.org/zap"
)

// RateLimit rejects clients that exceed the limiter. Clients are keyed by
// remote address, which chi's RealIP middleware has already resolved.
func RateLimit(limiter ratelimit.Limiter, limit int, window string, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientKey(r))
			if err != nil {
				// Fail open
				logger.Warn("Rate limiter error", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
				w.Header().Set("Retry-After", "1")
				errorHandler.Handle(w, r, apperrors.NewRateLimitError(limit, window))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
