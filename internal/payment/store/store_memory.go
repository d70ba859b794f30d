package store

import (
	"context"
	"sync"

	"mcms/internal/payment/models"
	"mcms/internal/storage"
)

// InMemoryPaymentStore is an append-only list of payments.
type InMemoryPaymentStore struct {
	mu       sync.RWMutex
	payments []models.Payment
}

func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{}
}

func (s *InMemoryPaymentStore) Insert(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = storage.NewID()
	}
	s.payments = append(s.payments, *p)
	return nil
}

// All returns a copy of every recorded payment.
func (s *InMemoryPaymentStore) All() []models.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Payment, len(s.payments))
	copy(out, s.payments)
	return out
}
