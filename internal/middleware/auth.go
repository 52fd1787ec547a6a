package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/nusapay/nusapay-api/internal/pkg/jwt"
	"github.com/nusapay/nusapay-api/internal/pkg/response"
)

type contextKey string

const EmailKey contextKey = "email"

// Auth returns middleware that validates the bearer token and puts the
// authenticated email into the request context.
func Auth(jwtService *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.InvalidToken(w, "Token is required")
				return
			}

			// Accept both "Bearer <token>" and a bare token
			token := authHeader
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 {
				if !strings.EqualFold(parts[0], "bearer") {
					response.InvalidToken(w, "Invalid authorization header format")
					return
				}
				token = parts[1]
			}

			claims, err := jwtService.Validate(token)
			if err != nil {
				response.InvalidToken(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), EmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetEmail extracts the authenticated email from context
func GetEmail(ctx context.Context) string {
	if email, ok := ctx.Value(EmailKey).(string); ok {
		return email
	}
	return ""
}
