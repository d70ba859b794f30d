package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcms/internal/payment/gateway/stub"
	"mcms/internal/platform/config"
)

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(config.PaymentConfig{Provider: "stub"})
	require.NoError(t, err)
	assert.Equal(t, "stub", p.Name())

	p, err = NewProvider(config.PaymentConfig{Provider: "stripe", StripeKey: "sk_test_x"})
	require.NoError(t, err)
	assert.Equal(t, "stripe", p.Name())

	_, err = NewProvider(config.PaymentConfig{Provider: "paypal"})
	assert.EqualError(t, err, "unknown payment provider: paypal")
}

func TestStubProvider(t *testing.T) {
	p := stub.New()
	intent, err := p.CreateIntent(context.Background(), 1999, "usd")
	require.NoError(t, err)
	assert.Equal(t, "pi_stub_1_secret_1999", intent.ClientSecret)
	assert.Equal(t, int64(1999), intent.Amount)

	intent, err = p.CreateIntent(context.Background(), 500, "usd")
	require.NoError(t, err)
	assert.Equal(t, "pi_stub_2", intent.ID)

	p.Err = errors.New("card network down")
	_, err = p.CreateIntent(context.Background(), 500, "usd")
	assert.Error(t, err)
}
