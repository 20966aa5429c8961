package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

type contextKey string

const tokenKey contextKey = "token"

// TokenCookie copies the bearer token from the named cookie into the request context.
// Requests without the cookie pass through unchanged; handlers decide what to show.
func TokenCookie(name string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(name)
			if err == nil && cookie.Value != "" {
				r = r.WithContext(WithToken(r.Context(), cookie.Value))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithToken returns a copy of ctx carrying token
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFrom returns the token stored by TokenCookie, or "" if there is none
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// RequireToken rejects requests that carry no token with a JSON 401
func RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if TokenFrom(r.Context()) == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "No token found"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
