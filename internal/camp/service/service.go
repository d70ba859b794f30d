package service

import (
	"context"
	"errors"
	"log/slog"

	"mcms/internal/camp/models"
	"mcms/internal/platform/metrics"
	"mcms/internal/storage"
	dErrors "mcms/pkg/domain-errors"
	"mcms/pkg/platform/sentinel"
	"mcms/pkg/requestcontext"
)

type Store interface {
	Insert(ctx context.Context, camp *models.Camp) error
	List(ctx context.Context) ([]*models.Camp, error)
	FindByID(ctx context.Context, id string) (*models.Camp, error)
	Update(ctx context.Context, id string, update models.Update) (storage.UpdateResult, error)
	Delete(ctx context.Context, id string) (storage.DeleteResult, error)
}

// Service manages the camp catalogue.
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

// Create inserts a camp with a zero participant count.
func (s *Service) Create(ctx context.Context, camp models.Camp) (storage.InsertResult, error) {
	camp.ID = ""
	camp.ParticipantCount = 0
	camp.CreatedAt = requestcontext.Now(ctx)
	if err := s.store.Insert(ctx, &camp); err != nil {
		return storage.InsertResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create camp")
	}
	s.metrics.IncrementCampsCreated()
	s.logger.InfoContext(ctx, "camp created",
		"camp_id", camp.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return storage.InsertResult{InsertedID: camp.ID}, nil
}

func (s *Service) List(ctx context.Context) ([]*models.Camp, error) {
	camps, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list camps")
	}
	return camps, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Camp, error) {
	camp, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Camp not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load camp")
	}
	return camp, nil
}

// Update applies the set fields. An id that matches no camp is NotFound.
func (s *Service) Update(ctx context.Context, id string, update models.Update) (storage.UpdateResult, error) {
	if update.IsEmpty() {
		return storage.UpdateResult{}, dErrors.New(dErrors.CodeValidation, "no fields to update")
	}
	res, err := s.store.Update(ctx, id, update)
	if err != nil {
		return storage.UpdateResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update camp")
	}
	if res.MatchedCount == 0 {
		return res, dErrors.New(dErrors.CodeNotFound, "Camp not found")
	}
	return res, nil
}

// Delete removes a camp. Registrations that reference it are left in place.
func (s *Service) Delete(ctx context.Context, id string) (storage.DeleteResult, error) {
	res, err := s.store.Delete(ctx, id)
	if err != nil {
		return storage.DeleteResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete camp")
	}
	if res.DeletedCount == 0 {
		return res, dErrors.New(dErrors.CodeNotFound, "Camp not found")
	}
	s.logger.InfoContext(ctx, "camp deleted",
		"camp_id", id,
		"request_id", requestcontext.RequestID(ctx),
	)
	return res, nil
}
