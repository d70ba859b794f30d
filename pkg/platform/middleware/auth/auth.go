package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	dErrors "mcms/pkg/domain-errors"
	"mcms/pkg/platform/httputil"
	request "mcms/pkg/platform/middleware/request"
	"mcms/pkg/requestcontext"
)

// JWTValidator defines the interface for validating JWT tokens
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator
type JWTClaims struct {
	Email string
	JTI   string
}

// GetUserEmail retrieves the authenticated caller email from the context
func GetUserEmail(ctx context.Context) string {
	return requestcontext.UserEmail(ctx)
}

func writeUnauthorized(w http.ResponseWriter) {
	httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "unauthorized access"))
}

// RequireAuth rejects requests without a valid bearer token. On success the
// verified email is stored in the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := request.GetRequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok || strings.TrimSpace(token) == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeUnauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(strings.TrimSpace(token))
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeUnauthorized(w)
				return
			}
			if claims.Email == "" {
				logger.WarnContext(ctx, "unauthorized access - token without email",
					"request_id", requestID,
				)
				writeUnauthorized(w)
				return
			}

			ctx = requestcontext.WithUserEmail(ctx, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
