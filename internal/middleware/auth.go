// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const (
	userIDKey ctxKey = "userID"
	emailKey  ctxKey = "email"
)

// BearerAuth enforces bearer-token authentication.
//
// The Authorization header must be exactly "Bearer <token>": one space,
// raw token, no quotes. An absent or malformed header, or a token that
// fails signature or expiry validation, yields 401.
//
// On success the token's user id and email are stored in the request
// context for downstream handlers.
func BearerAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" || strings.ContainsAny(token, " \"") {
				unauthorized(w, "missing or malformed authorization header")
				return
			}

			claims := jwt.MapClaims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !parsed.Valid {
				unauthorized(w, "invalid token")
				return
			}

			userID, _ := claims["user_id"].(string)
			if userID == "" {
				unauthorized(w, "invalid token")
				return
			}
			email, _ := claims["email"].(string)

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, emailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"success":false,"error":{"message":%q}}`, msg)
}

// GetUserIDFromContext extracts the authenticated user id from the
// request context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(userIDKey).(string); ok {
		return s
	}
	return ""
}

// GetEmailFromContext extracts the authenticated email from the
// request context. Returns an empty string if not found.
func GetEmailFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(emailKey).(string); ok {
		return s
	}
	return ""
}
