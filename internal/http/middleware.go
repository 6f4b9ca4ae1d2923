package http

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/kiosco-pos/internal/auth"
	rl "github.com/rogerio-castellano/kiosco-pos/internal/http/rate_limiter"
)

type contextKey string

const userIDKey = contextKey("user_id")

// AuthMiddleware guards the write endpoints: sale registration and every
// kitchen ticket mutation require a valid bearer token.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorization := r.Header.Get("Authorization")
		if !strings.HasPrefix(authorization, "Bearer ") {
			http.Error(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}

		token, claims, err := auth.TokenClaims(authorization)
		if err != nil || !token.Valid {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		userID := 0
		if sub, ok := claims["sub"].(float64); ok {
			userID = int(sub)
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserID(r *http.Request) int {
	if val, ok := r.Context().Value(userIDKey).(int); ok {
		return val
	}
	return 0
}

// RateLimitMiddleware throttles per client IP; the login endpoint sits
// behind it to slow credential guessing.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.GetVisitor(ip).Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
