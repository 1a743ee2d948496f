package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/interfaces/rest"
)

// BearerAuth admits requests carrying "Authorization: Bearer <token>".
func BearerAuth(token string) func(http.Handler) http.Handler {
	want := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") ||
				subtle.ConstantTimeCompare([]byte(parts[1]), want) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="merchant"`)
				rest.WriteJSON(w, http.StatusUnauthorized, rest.ErrorResponse{
					Error: rest.ErrorDetail{Code: "UNAUTHORIZED", Message: "missing or invalid bearer token"},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
