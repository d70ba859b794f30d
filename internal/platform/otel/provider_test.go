package otel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"mcms/internal/platform/config"
	"mcms/internal/platform/otel"
)

func TestSetup(t *testing.T) {
	t.Run("noop when endpoint empty", func(t *testing.T) {
		shutdown, err := otel.Setup(context.Background(), config.TracingConfig{Enabled: true, ServiceName: "mcms"})
		require.NoError(t, err)
		require.NoError(t, shutdown(context.Background()))
	})

	t.Run("noop when disabled", func(t *testing.T) {
		shutdown, err := otel.Setup(context.Background(), config.TracingConfig{
			Endpoint:    "http://localhost:4318",
			ServiceName: "mcms",
		})
		require.NoError(t, err)
		require.NoError(t, shutdown(context.Background()))
	})

	t.Run("creates provider when endpoint set", func(t *testing.T) {
		// Non-routable address; nothing is exported because no spans are ended.
		shutdown, err := otel.Setup(context.Background(), config.TracingConfig{
			Endpoint:    "http://192.0.2.1:4318",
			Enabled:     true,
			ServiceName: "mcms",
		})
		require.NoError(t, err)
		require.NoError(t, shutdown(context.Background()))
	})
}
