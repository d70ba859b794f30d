// Package gateway selects the payment provider that turns an amount into a
// client secret.
package gateway

import (
	"context"
	"fmt"

	"mcms/internal/payment/gateway/stripe"
	"mcms/internal/payment/gateway/stub"
	"mcms/internal/payment/models"
	"mcms/internal/platform/config"
)

// Provider creates payment intents. Amounts are in minor currency units.
type Provider interface {
	Name() string
	CreateIntent(ctx context.Context, amountMinor int64, currency string) (models.Intent, error)
}

// NewProvider builds the provider named in cfg.
func NewProvider(cfg config.PaymentConfig) (Provider, error) {
	switch cfg.Provider {
	case "stripe":
		return stripe.New(cfg.StripeKey), nil
	case "stub":
		return stub.New(), nil
	default:
		return nil, fmt.Errorf("unknown payment provider: %s", cfg.Provider)
	}
}
