package store

import (
	"context"
	"sync"

	"mcms/internal/storage"
	"mcms/internal/user/models"
	"mcms/pkg/platform/sentinel"
)

// InMemoryUserStore keeps users keyed by normalized email.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[string]*models.User)}
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *InMemoryUserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = storage.NewID()
	}
	cp := *user
	s.users[user.Email] = &cp
	return nil
}

func (s *InMemoryUserStore) UpdateProfile(_ context.Context, email string, p models.Profile) (storage.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return storage.UpdateResult{}, nil
	}
	res := storage.UpdateResult{MatchedCount: 1}
	if u.Name != p.Name || u.Phone != p.Phone || u.Image != p.Image {
		u.Name, u.Phone, u.Image = p.Name, p.Phone, p.Image
		res.ModifiedCount = 1
	}
	return res, nil
}

func (s *InMemoryUserStore) UpsertRole(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.users[user.Email]; ok {
		existing.Role = user.Role
		return nil
	}
	if user.ID == "" {
		user.ID = storage.NewID()
	}
	cp := *user
	s.users[user.Email] = &cp
	return nil
}
