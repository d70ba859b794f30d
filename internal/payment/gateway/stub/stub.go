package stub

import (
	"context"
	"fmt"
	"sync/atomic"

	"mcms/internal/payment/models"
)

// Provider hands out deterministic intents without calling out. It backs
// local runs and tests.
type Provider struct {
	seq atomic.Int64
	// Err, when set, is returned by every CreateIntent call.
	Err error
}

func New() *Provider {
	return &Provider{}
}

func (p *Provider) Name() string { return "stub" }

func (p *Provider) CreateIntent(_ context.Context, amountMinor int64, currency string) (models.Intent, error) {
	if p.Err != nil {
		return models.Intent{}, p.Err
	}
	n := p.seq.Add(1)
	id := fmt.Sprintf("pi_stub_%d", n)
	return models.Intent{
		ID:           id,
		ClientSecret: fmt.Sprintf("%s_secret_%d", id, amountMinor),
		Amount:       amountMinor,
		Currency:     currency,
	}, nil
}
