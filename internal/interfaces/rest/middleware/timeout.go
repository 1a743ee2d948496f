package middleware

import (
	"net/http"
	"time"
)

const timeoutBody = `{"success":false,"error":{"code":"TIMEOUT","message":"Request timeout"}}`

// Timeout bounds a request. A backend call still running when the deadline
// passes is cancelled through the request context.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, timeoutBody)
	}
}
