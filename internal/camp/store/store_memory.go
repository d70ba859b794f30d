package store

import (
	"context"
	"slices"
	"sync"

	"mcms/internal/camp/models"
	"mcms/internal/storage"
	"mcms/pkg/platform/sentinel"
)

// InMemoryCampStore keeps camps in insertion order.
type InMemoryCampStore struct {
	mu    sync.RWMutex
	camps []*models.Camp
}

func NewInMemoryCampStore() *InMemoryCampStore {
	return &InMemoryCampStore{}
}

func (s *InMemoryCampStore) indexOf(id string) int {
	return slices.IndexFunc(s.camps, func(c *models.Camp) bool { return c.ID == id })
}

func (s *InMemoryCampStore) Insert(_ context.Context, camp *models.Camp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if camp.ID == "" {
		camp.ID = storage.NewID()
	}
	cp := *camp
	s.camps = append(s.camps, &cp)
	return nil
}

func (s *InMemoryCampStore) List(_ context.Context) ([]*models.Camp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Camp, 0, len(s.camps))
	for _, c := range s.camps {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (s *InMemoryCampStore) FindByID(_ context.Context, id string) (*models.Camp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.camps[i]
	return &cp, nil
}

func (s *InMemoryCampStore) Update(_ context.Context, id string, update models.Update) (storage.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return storage.UpdateResult{}, nil
	}
	before := *s.camps[i]
	update.Apply(s.camps[i])
	res := storage.UpdateResult{MatchedCount: 1}
	if before != *s.camps[i] {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (s *InMemoryCampStore) Delete(_ context.Context, id string) (storage.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return storage.DeleteResult{}, nil
	}
	s.camps = slices.Delete(s.camps, i, i+1)
	return storage.DeleteResult{DeletedCount: 1}, nil
}

func (s *InMemoryCampStore) IncrementParticipants(_ context.Context, id string, delta int64) (storage.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return storage.UpdateResult{}, nil
	}
	s.camps[i].ParticipantCount += delta
	return storage.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}
