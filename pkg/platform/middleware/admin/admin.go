package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	dErrors "mcms/pkg/domain-errors"
	"mcms/pkg/platform/httputil"
	request "mcms/pkg/platform/middleware/request"
	"mcms/pkg/requestcontext"
)

// RoleLookup resolves whether a persisted user holds the admin role.
type RoleLookup interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// RequireAdmin must run after auth.RequireAuth. It reloads the caller's role
// from the store on every request so role changes apply immediately.
func RequireAdmin(roles RoleLookup, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := request.GetRequestID(ctx)
			email := requestcontext.UserEmail(ctx)
			if email == "" {
				logger.ErrorContext(ctx, "admin check without authenticated caller",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "unauthorized access"))
				return
			}

			isAdmin, err := roles.IsAdmin(ctx, email)
			if err != nil {
				logger.ErrorContext(ctx, "failed to resolve caller role",
					"error", err,
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve role"))
				return
			}
			if !isAdmin {
				logger.WarnContext(ctx, "forbidden - caller is not admin",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "forbidden access"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireSelf rejects callers whose verified email differs from the named
// URL parameter. Comparison ignores case.
func RequireSelf(param string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			caller := requestcontext.UserEmail(ctx)
			target := chi.URLParam(r, param)
			if caller == "" || !strings.EqualFold(caller, target) {
				logger.WarnContext(ctx, "forbidden - caller does not own resource",
					"request_id", request.GetRequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "forbidden access"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
