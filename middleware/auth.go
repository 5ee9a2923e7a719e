package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"creatorvault/pkg/httperr"
	"creatorvault/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserIDKey contextKey = "userID"

// UserID returns the verified user identity placed in the context by
// AuthMiddleware, or "" when the request never passed through it.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

// AuthMiddleware verifies the bearer token and stores the subject claim in
// the request context. The secret is injected at wiring time instead of read
// from the environment on every request.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				tokenString = ""
			}

			// For WebSockets, tokens are often passed in the query string
			// because the browser's WebSocket API doesn't support custom headers.
			if tokenString == "" {
				tokenString = r.URL.Query().Get("token")
			}

			if tokenString == "" {
				httperr.Write(w, CorrelationID(r.Context()), httperr.Unauthenticated("No token provided"))
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				// Ensure the signing method is HMAC (HS256)
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})

			if err != nil || !token.Valid {
				logger.Sugar.Warnf("Invalid token: %v", err)
				httperr.Write(w, CorrelationID(r.Context()), httperr.Unauthenticated("Invalid or expired token"))
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				httperr.Write(w, CorrelationID(r.Context()), httperr.Unauthenticated("Could not parse token claims"))
				return
			}
			userID, ok := claims["sub"].(string)
			if !ok || userID == "" {
				httperr.Write(w, CorrelationID(r.Context()), httperr.Unauthenticated("User ID (sub) claim is missing or invalid"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
