package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/strumhaus/order-service/internal/entities"
	"github.com/strumhaus/order-service/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
)

type principalKey struct{}

// Principal is the authenticated identity carried through the request
// context: the token subject and its role claim.
type Principal struct {
	UserID string
	Role   string
}

// Auth validates the Bearer token and stores the principal in the context.
// Tokens are HMAC-signed with the shared secret from config.
func Auth(secret string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.WriteError(w, "authorization required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == "" || tokenString == authHeader {
				utils.WriteError(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				utils.WriteError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			subject, err := claims.GetSubject()
			if err != nil || subject == "" {
				utils.WriteError(w, "invalid token subject", http.StatusUnauthorized)
				return
			}

			role, _ := claims["role"].(string)
			principal := Principal{UserID: subject, Role: role}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireAdmin rejects requests whose principal is not an administrator.
// Must be mounted after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := PrincipalFromContext(r.Context())
		if !ok || principal.Role != entities.RoleAdmin {
			utils.WriteError(w, "admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithPrincipal puts an already-authenticated principal into ctx. Handlers
// downstream of Auth never need this; it exists for wiring and tests.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(Principal)
	return principal, ok
}
