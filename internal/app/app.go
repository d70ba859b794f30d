// Package app wires services, handlers and middleware into the HTTP handler
// served by cmd/server. Resource acquisition (Mongo, Redis, tracing) stays in
// main; everything here is constructed from already-open dependencies.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	authhandler "mcms/internal/auth/handler"
	camphandler "mcms/internal/camp/handler"
	campservice "mcms/internal/camp/service"
	feedbackhandler "mcms/internal/feedback/handler"
	feedbackservice "mcms/internal/feedback/service"
	httpapi "mcms/internal/http"
	jwttoken "mcms/internal/jwt_token"
	"mcms/internal/payment/gateway"
	"mcms/internal/platform/config"
	"mcms/internal/platform/metrics"
	platformmw "mcms/internal/platform/middleware"
	ratelimitmw "mcms/internal/ratelimit/middleware"
	ratelimitmodels "mcms/internal/ratelimit/models"
	ratelimitservice "mcms/internal/ratelimit/service"
	"mcms/internal/ratelimit/store/bucket"
	registrationhandler "mcms/internal/registration/handler"
	registrationservice "mcms/internal/registration/service"
	userhandler "mcms/internal/user/handler"
	userservice "mcms/internal/user/service"
)

// Dependencies are the already-open resources the handler is built from.
type Dependencies struct {
	Config   config.Server
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Stores   Stores
	Gateway  gateway.Provider
	// Buckets is the shared rate-limit store. Nil keeps counters in memory.
	Buckets ratelimitservice.BucketStore
	Health  map[string]httpapi.HealthChecker
}

// New builds the application handler and seeds configured admins.
func New(ctx context.Context, deps Dependencies) (http.Handler, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := metrics.New(registry)

	users := userservice.New(deps.Stores.Users,
		userservice.WithLogger(logger),
		userservice.WithMetrics(m),
	)
	if err := users.SeedAdmins(ctx, cfg.AdminEmails); err != nil {
		return nil, fmt.Errorf("seed admins: %w", err)
	}

	camps := campservice.New(deps.Stores.Camps,
		campservice.WithLogger(logger),
		campservice.WithMetrics(m),
	)

	registrations, err := registrationservice.New(
		deps.Stores.Registrations,
		deps.Stores.Camps,
		deps.Stores.Payments,
		deps.Gateway,
		registrationservice.WithLogger(logger),
		registrationservice.WithMetrics(m),
		registrationservice.WithCurrency(cfg.Payments.Currency),
	)
	if err != nil {
		return nil, fmt.Errorf("registration service: %w", err)
	}

	feedback := feedbackservice.New(deps.Stores.Feedback,
		feedbackservice.WithLogger(logger),
		feedbackservice.WithMetrics(m),
	)

	jwt := jwttoken.NewJWTService(cfg.Auth.SigningKey, cfg.Auth.Issuer)
	guards := platformmw.NewGuards(jwttoken.NewJWTServiceAdapter(jwt), users, logger)

	limiter, err := newRateLimiter(deps, m, logger)
	if err != nil {
		return nil, err
	}
	guards = guards.WithRateLimits(
		limiter.RateLimit(ratelimitmodels.ClassAuth),
		limiter.RateLimit(ratelimitmodels.ClassWrite),
	)

	return httpapi.NewRouter(httpapi.Config{
		Logger:         logger,
		Metrics:        m,
		Gatherer:       registry,
		AllowedOrigins: cfg.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		Health:         deps.Health,
		Handlers: []httpapi.RouteRegistrar{
			authhandler.New(jwt, cfg.Auth.TokenTTL, logger, guards),
			userhandler.New(users, logger, guards),
			camphandler.New(camps, logger, guards),
			registrationhandler.New(registrations, logger, guards),
			feedbackhandler.New(feedback, logger, guards),
		},
	}), nil
}

func newRateLimiter(deps Dependencies, m *metrics.Metrics, logger *slog.Logger) (*ratelimitmw.Middleware, error) {
	primary := deps.Buckets
	opts := []ratelimitservice.Option{
		ratelimitservice.WithLogger(logger),
		ratelimitservice.WithMetrics(m),
	}
	if primary == nil {
		primary = bucket.NewInMemoryBucketStore()
	} else {
		opts = append(opts, ratelimitservice.WithFallback(bucket.NewInMemoryBucketStore()))
	}

	svc, err := ratelimitservice.New(primary, deps.Config.Limits, opts...)
	if err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}
	return ratelimitmw.New(svc, logger, ratelimitmw.WithDisabled(deps.Config.Limits.Disabled)), nil
}
