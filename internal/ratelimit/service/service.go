// Package service applies per-class IP budgets against a primary bucket store
// and falls back to process-local buckets while the primary is failing.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mcms/internal/platform/config"
	"mcms/internal/platform/metrics"
	"mcms/internal/ratelimit/models"
	"mcms/pkg/platform/circuit"
)

// BucketStore counts requests per key in a window.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
}

type Service struct {
	primary  BucketStore
	fallback BucketStore
	breaker  *circuit.Breaker
	limits   map[models.EndpointClass]models.Limit
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithFallback sets the store used while the primary's breaker is open.
func WithFallback(store BucketStore) Option {
	return func(s *Service) {
		s.fallback = store
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(s *Service) {
		s.breaker = b
	}
}

func New(primary BucketStore, cfg config.RateLimitConfig, opts ...Option) (*Service, error) {
	if primary == nil {
		return nil, fmt.Errorf("bucket store is required")
	}
	s := &Service{
		primary: primary,
		breaker: circuit.New("ratelimit-store"),
		limits: map[models.EndpointClass]models.Limit{
			models.ClassAuth:  {RequestsPerWindow: cfg.AuthLimit, Window: cfg.Window},
			models.ClassWrite: {RequestsPerWindow: cfg.WriteLimit, Window: cfg.Window},
		},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CheckIPRateLimit counts one request from ip against class. Errors are only
// returned when no store could answer.
func (s *Service) CheckIPRateLimit(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	limit, ok := s.limits[class]
	if !ok {
		return nil, fmt.Errorf("unknown endpoint class %q", class)
	}
	key := models.NewIPKey(class, ip)

	result, err := s.allow(ctx, key, limit)
	if err != nil {
		return nil, err
	}
	if !result.Allowed {
		s.metrics.IncrementRateLimited(string(class))
		s.logger.WarnContext(ctx, "rate limit exceeded",
			"class", class,
			"retry_after", result.RetryAfter,
		)
	}
	return result, nil
}

func (s *Service) allow(ctx context.Context, key string, limit models.Limit) (*models.RateLimitResult, error) {
	result, err := s.primary.Allow(ctx, key, limit.RequestsPerWindow, limit.Window)
	if s.fallback == nil {
		return result, err
	}

	if err != nil {
		_, change := s.breaker.RecordFailure()
		if change.Opened {
			s.logger.WarnContext(ctx, "rate limit store unhealthy, using in-memory fallback",
				"breaker", s.breaker.Name(),
				"error", err,
			)
		}
		return s.fallback.Allow(ctx, key, limit.RequestsPerWindow, limit.Window)
	}

	usePrimary, change := s.breaker.RecordSuccess()
	if change.Closed {
		s.logger.InfoContext(ctx, "rate limit store recovered", "breaker", s.breaker.Name())
	}
	if !usePrimary {
		// Still open: the primary answered but keep counting locally until
		// enough consecutive successes close the breaker.
		return s.fallback.Allow(ctx, key, limit.RequestsPerWindow, limit.Window)
	}
	return result, nil
}
