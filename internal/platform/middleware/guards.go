package middleware

import (
	"log/slog"
	"net/http"

	"mcms/pkg/platform/middleware/admin"
	"mcms/pkg/platform/middleware/auth"
)

// Guards bundles the access-control and rate-limit middleware handed to every
// handler's Register method. Self-only checks are built per route with Self.
type Guards struct {
	Authenticated func(http.Handler) http.Handler
	Admin         func(http.Handler) http.Handler
	// AuthLimited and WriteLimited throttle token issuance and public writes.
	// They pass everything through until WithRateLimits is applied.
	AuthLimited  func(http.Handler) http.Handler
	WriteLimited func(http.Handler) http.Handler
	logger       *slog.Logger
}

func passthrough(next http.Handler) http.Handler { return next }

// NewGuards builds the authentication and admin guards once for the router.
func NewGuards(validator auth.JWTValidator, roles admin.RoleLookup, logger *slog.Logger) Guards {
	return Guards{
		Authenticated: auth.RequireAuth(validator, logger),
		Admin:         admin.RequireAdmin(roles, logger),
		AuthLimited:   passthrough,
		WriteLimited:  passthrough,
		logger:        logger,
	}
}

// WithRateLimits returns a copy of g using the given limiters. Nil keeps the
// current one.
func (g Guards) WithRateLimits(authLimit, writeLimit func(http.Handler) http.Handler) Guards {
	if authLimit != nil {
		g.AuthLimited = authLimit
	}
	if writeLimit != nil {
		g.WriteLimited = writeLimit
	}
	return g
}

// Self returns a guard that only lets the owner of the {param} email through.
func (g Guards) Self(param string) func(http.Handler) http.Handler {
	return admin.RequireSelf(param, g.logger)
}
