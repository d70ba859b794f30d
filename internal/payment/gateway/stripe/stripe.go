package stripe

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"

	"mcms/internal/payment/models"
)

// Provider creates card payment intents through the Stripe API.
type Provider struct {
	intents *paymentintent.Client
}

func New(secretKey string) *Provider {
	return &Provider{
		intents: &paymentintent.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey},
	}
}

func (p *Provider) Name() string { return "stripe" }

func (p *Provider) CreateIntent(ctx context.Context, amountMinor int64, currency string) (models.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountMinor),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := p.intents.New(params)
	if err != nil {
		return models.Intent{}, fmt.Errorf("stripe create payment intent: %w", err)
	}
	return models.Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}
