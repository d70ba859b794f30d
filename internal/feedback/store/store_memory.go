package store

import (
	"context"
	"sync"

	"mcms/internal/feedback/models"
	"mcms/internal/storage"
)

type InMemoryFeedbackStore struct {
	mu      sync.RWMutex
	entries []models.Feedback
}

func NewInMemoryFeedbackStore() *InMemoryFeedbackStore {
	return &InMemoryFeedbackStore{}
}

func (s *InMemoryFeedbackStore) Insert(_ context.Context, fb *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fb.ID == "" {
		fb.ID = storage.NewID()
	}
	s.entries = append(s.entries, *fb)
	return nil
}

// List returns entries for email, or all entries when email is empty.
func (s *InMemoryFeedbackStore) List(_ context.Context, email string) ([]*models.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Feedback, 0)
	for _, fb := range s.entries {
		if email == "" || fb.UserEmail == email {
			cp := fb
			out = append(out, &cp)
		}
	}
	return out, nil
}
