package service

import (
	"context"
	"log/slog"

	"mcms/internal/feedback/models"
	"mcms/internal/platform/metrics"
	"mcms/internal/storage"
	dErrors "mcms/pkg/domain-errors"
	"mcms/pkg/requestcontext"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Store interface {
	Insert(ctx context.Context, fb *models.Feedback) error
	List(ctx context.Context, email string) ([]*models.Feedback, error)
}

type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

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

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create appends a feedback entry.
func (s *Service) Create(ctx context.Context, fb models.Feedback) (storage.InsertResult, error) {
	if fb.CampID == "" || fb.UserEmail == "" {
		return storage.InsertResult{}, dErrors.New(dErrors.CodeValidation, "campId and userEmail are required")
	}
	if fb.Rating < MinRating || fb.Rating > MaxRating {
		return storage.InsertResult{}, dErrors.New(dErrors.CodeValidation, "rating must be between 1 and 5")
	}
	fb.ID = ""
	fb.CreatedAt = requestcontext.Now(ctx)
	if err := s.store.Insert(ctx, &fb); err != nil {
		return storage.InsertResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save feedback")
	}
	s.metrics.IncrementFeedbackCreated()
	s.logger.InfoContext(ctx, "feedback created",
		"camp_id", fb.CampID,
		"rating", fb.Rating,
		"request_id", requestcontext.RequestID(ctx),
	)
	return storage.InsertResult{InsertedID: fb.ID}, nil
}

// List returns feedback left by email, or every entry when email is empty.
func (s *Service) List(ctx context.Context, email string) ([]*models.Feedback, error) {
	entries, err := s.store.List(ctx, email)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list feedback")
	}
	return entries, nil
}
