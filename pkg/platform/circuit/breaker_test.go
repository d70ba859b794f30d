package circuit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBreakerDefaults(t *testing.T) {
	b := New("ratelimit-store")
	assert.Equal(t, "ratelimit-store", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "closed", b.State().String())

	for range 4 {
		b.RecordFailure()
	}
	assert.False(t, b.IsOpen(), "default threshold is five failures")
	useFallback, change := b.RecordFailure()
	assert.True(t, useFallback)
	assert.True(t, change.Opened)
	assert.Equal(t, "open", b.State().String())
}

func TestBreakerTransitions(t *testing.T) {
	t.Run("opens on consecutive failures only", func(t *testing.T) {
		b := New("redis", WithFailureThreshold(2))
		b.RecordFailure()
		b.RecordSuccess()
		useFallback, _ := b.RecordFailure()
		assert.False(t, useFallback)
		assert.False(t, b.IsOpen())

		useFallback, change := b.RecordFailure()
		assert.True(t, useFallback)
		assert.True(t, change.Opened)
	})

	t.Run("further failures while open report no change", func(t *testing.T) {
		b := New("redis", WithFailureThreshold(1))
		b.RecordFailure()
		useFallback, change := b.RecordFailure()
		assert.True(t, useFallback)
		assert.False(t, change.Opened)
	})

	t.Run("closes after consecutive successes", func(t *testing.T) {
		b := New("redis", WithFailureThreshold(1), WithSuccessThreshold(2))
		b.RecordFailure()

		usePrimary, change := b.RecordSuccess()
		assert.False(t, usePrimary)
		assert.False(t, change.Closed)

		b.RecordFailure()
		usePrimary, _ = b.RecordSuccess()
		assert.False(t, usePrimary, "a failure restarts the success count")

		usePrimary, change = b.RecordSuccess()
		assert.True(t, usePrimary)
		assert.True(t, change.Closed)
		assert.False(t, b.IsOpen())
	})

	t.Run("reset closes immediately", func(t *testing.T) {
		b := New("redis", WithFailureThreshold(1))
		b.RecordFailure()
		b.Reset()
		assert.Equal(t, StateClosed, b.State())
	})

	t.Run("non-positive thresholds keep defaults", func(t *testing.T) {
		b := New("redis", WithFailureThreshold(0), WithSuccessThreshold(-1))
		assert.Equal(t, 5, b.failureThreshold)
		assert.Equal(t, 3, b.successThreshold)
	})
}

func TestBreakerConcurrentUse(t *testing.T) {
	b := New("redis", WithFailureThreshold(50))
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.RecordFailure()
			_ = b.IsOpen()
		}()
	}
	wg.Wait()
	assert.True(t, b.IsOpen())
}
