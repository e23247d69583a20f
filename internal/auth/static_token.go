// Package auth gates the API behind a single static bearer token.
package auth

import (
	"encoding/json"
	"net/http"
	"strings"
)

// StaticTokenMiddleware authenticates API requests via Bearer token compared
// against one process-wide secret. There is no expiry and no user concept.
type StaticTokenMiddleware struct {
	secret string
}

// NewStaticTokenMiddleware creates a middleware that accepts exactly secret.
func NewStaticTokenMiddleware(secret string) *StaticTokenMiddleware {
	return &StaticTokenMiddleware{secret: secret}
}

// Authenticate is an http.Handler middleware that extracts and checks the
// Bearer token. On absence, malformed header, or mismatch it short-circuits
// with 401 before any routing, validation, or storage work happens.
func (m *StaticTokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			writeUnauthorized(w)
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" || token != m.secret {
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeUnauthorized writes the 401 response. The envelope here is the flat
// {"error": string} form, unlike the nested form used everywhere else; API
// clients depend on that asymmetry.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized request"})
}
