package store

import (
	"context"
	"slices"
	"sync"

	"mcms/internal/registration/models"
	"mcms/internal/storage"
	"mcms/pkg/platform/sentinel"
)

// InMemoryRegistrationStore keeps registrations in insertion order. Like the
// Mongo store it has no uniqueness constraint on (campId, userEmail).
type InMemoryRegistrationStore struct {
	mu   sync.RWMutex
	regs []*models.Registration
}

func NewInMemoryRegistrationStore() *InMemoryRegistrationStore {
	return &InMemoryRegistrationStore{}
}

func (s *InMemoryRegistrationStore) indexOf(id string) int {
	return slices.IndexFunc(s.regs, func(r *models.Registration) bool { return r.ID == id })
}

func (s *InMemoryRegistrationStore) filter(keep func(*models.Registration) bool) []*models.Registration {
	out := make([]*models.Registration, 0)
	for _, r := range s.regs {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out
}

func (s *InMemoryRegistrationStore) Insert(_ context.Context, reg *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reg.ID == "" {
		reg.ID = storage.NewID()
	}
	cp := *reg
	s.regs = append(s.regs, &cp)
	return nil
}

func (s *InMemoryRegistrationStore) FindByCampAndEmail(_ context.Context, campID, email string) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.regs {
		if r.CampID == campID && r.UserEmail == email {
			cp := *r
			return &cp, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryRegistrationStore) FindByID(_ context.Context, id string) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.regs[i]
	return &cp, nil
}

func (s *InMemoryRegistrationStore) ListByEmail(_ context.Context, email string) ([]*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(func(r *models.Registration) bool { return r.UserEmail == email }), nil
}

func (s *InMemoryRegistrationStore) ListAll(_ context.Context) ([]*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(func(*models.Registration) bool { return true }), nil
}

func (s *InMemoryRegistrationStore) SetConfirmation(_ context.Context, id string, status models.ConfirmationStatus) (storage.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return storage.UpdateResult{}, nil
	}
	res := storage.UpdateResult{MatchedCount: 1}
	if s.regs[i].ConfirmationStatus != status {
		s.regs[i].ConfirmationStatus = status
		res.ModifiedCount = 1
	}
	return res, nil
}

func (s *InMemoryRegistrationStore) MarkPaid(_ context.Context, id, transactionID string) (storage.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return storage.UpdateResult{}, nil
	}
	r := s.regs[i]
	res := storage.UpdateResult{MatchedCount: 1}
	if r.PaymentStatus != models.PaymentPaid || r.TransactionID != transactionID {
		r.PaymentStatus = models.PaymentPaid
		r.TransactionID = transactionID
		res.ModifiedCount = 1
	}
	return res, nil
}

func (s *InMemoryRegistrationStore) Delete(_ context.Context, id string) (storage.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return storage.DeleteResult{}, nil
	}
	s.regs = slices.Delete(s.regs, i, i+1)
	return storage.DeleteResult{DeletedCount: 1}, nil
}
