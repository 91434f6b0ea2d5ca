package appMiddleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/api"
)

type contextKey string

const SubjectKey contextKey = "subject"

// Claims carried by API tokens. Only the registered claims are checked.
type Claims struct {
	jwt.RegisteredClaims
}

// Authenticate validates an HS256 bearer token signed with secret and stores
// its subject in the request context. An empty audience accepts any audience.
func Authenticate(secret []byte, audience string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header required")
				return
			}

			scheme, tokenString, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || tokenString == "" {
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				logger.WarnContext(r.Context(), "Rejected bearer token", slog.Any("error", err))
				if errors.Is(err, jwt.ErrTokenExpired) {
					api.ErrorResponse(w, r, http.StatusUnauthorized, "Token expired")
					return
				}
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			if !api.VerifyAudience(claims.Audience, audience) {
				logger.WarnContext(r.Context(), "Token audience mismatch", slog.Any("audience", claims.Audience))
				api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid token audience")
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubjectFromContext returns the token subject stored by Authenticate.
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectKey).(string)
	return subject, ok
}
