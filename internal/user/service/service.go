package service

import (
	"context"
	"errors"
	"log/slog"

	"mcms/internal/platform/metrics"
	"mcms/internal/storage"
	"mcms/internal/user/models"
	dErrors "mcms/pkg/domain-errors"
	emailutil "mcms/pkg/email"
	"mcms/pkg/platform/sentinel"
	"mcms/pkg/requestcontext"
)

type Store interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, email string, p models.Profile) (storage.UpdateResult, error)
	UpsertRole(ctx context.Context, user *models.User) error
}

// Service manages user accounts and role lookups.
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

// New constructs a Service.
func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create inserts the user when no account exists for the email. Creating an
// existing user is not an error; the result carries a nil InsertedID.
func (s *Service) Create(ctx context.Context, email, name, image string) (*models.CreateResult, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email is required")
	}

	_, err := s.store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return &models.CreateResult{Message: "user already exists"}, nil
	case !errors.Is(err, sentinel.ErrNotFound):
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	if name == "" {
		name = emailutil.DisplayName(email)
	}
	user := &models.User{
		Email:     email,
		Name:      name,
		Image:     image,
		Role:      models.RoleParticipant,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.store.Insert(ctx, user); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}
	s.metrics.IncrementUsersCreated()
	s.logger.InfoContext(ctx, "user created",
		"request_id", requestcontext.RequestID(ctx),
	)
	id := user.ID
	return &models.CreateResult{InsertedID: &id}, nil
}

// Get loads a user by email.
func (s *Service) Get(ctx context.Context, email string) (*models.User, error) {
	user, err := s.store.FindByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}

// IsAdmin reports whether the persisted user holds the admin role. Unknown
// users are not admins.
func (s *Service) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.store.FindByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user role")
	}
	return user.IsAdmin(), nil
}

// UpdateProfile overwrites name, phone and image. Ownership is enforced by
// the HTTP guard.
func (s *Service) UpdateProfile(ctx context.Context, email string, p models.Profile) (storage.UpdateResult, error) {
	res, err := s.store.UpdateProfile(ctx, models.NormalizeEmail(email), p)
	if err != nil {
		return storage.UpdateResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update profile")
	}
	return res, nil
}

// SeedAdmins grants the admin role to each email, creating users as needed.
func (s *Service) SeedAdmins(ctx context.Context, emails []string) error {
	for _, email := range emails {
		email = models.NormalizeEmail(email)
		if email == "" {
			continue
		}
		err := s.store.UpsertRole(ctx, &models.User{
			Email:     email,
			Role:      models.RoleAdmin,
			CreatedAt: requestcontext.Now(ctx),
		})
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to seed admin")
		}
	}
	if len(emails) > 0 {
		s.logger.InfoContext(ctx, "admin roles seeded", "count", len(emails))
	}
	return nil
}
