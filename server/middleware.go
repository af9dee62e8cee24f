package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// BearerAuth requires the static deployment token on every request.
// This authorizes access to the deployment itself; it is not per-user
// authentication and grants no identity.
func BearerAuth(token string) func(http.Handler) http.Handler {
	expected := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(presented), expected) != 1 {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or missing bearer token"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
