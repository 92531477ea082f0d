package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AuthConfig holds the configuration for the auth middleware
type AuthConfig struct {
	apiKey string
}

// NewAuthMiddleware creates a new auth middleware guarding the API with a
// static bearer key. An empty key disables the check entirely.
func NewAuthMiddleware(apiKey string) *AuthConfig {
	return &AuthConfig{apiKey: apiKey}
}

// RequireAuth creates a middleware that verifies the bearer API key
func (ac *AuthConfig) RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if ac.apiKey == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(ac.apiKey)) != 1 {
				http.Error(w, "Invalid API key", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
