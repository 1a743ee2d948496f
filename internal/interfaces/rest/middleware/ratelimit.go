package middleware

import (
	"net/http"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/interfaces/rest"
	"golang.org/x/time/rate"
)

// RateLimit admits requests through a single shared token bucket. A nil
// limiter disables limiting.
func RateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				rest.WriteJSON(w, http.StatusTooManyRequests, rest.ErrorResponse{
					Error: rest.ErrorDetail{Code: "RATE_LIMITED", Message: "rate limit exceeded"},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewLimiter returns nil when rps is not positive.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
