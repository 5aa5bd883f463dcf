package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBreakerIsClosed(t *testing.T) {
	b := New("identity")
	assert.Equal(t, "identity", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "closed", b.State().String())
	assert.True(t, b.Allow())
}

func TestBreakerOpensOnThreshold(t *testing.T) {
	b := New("identity", WithFailureThreshold(3))

	for i := 0; i < 2; i++ {
		useFallback, change := b.RecordFailure()
		assert.False(t, useFallback)
		assert.False(t, change.Opened)
	}

	useFallback, change := b.RecordFailure()
	assert.True(t, useFallback)
	assert.True(t, change.Opened)
	assert.Equal(t, "open", b.State().String())

	useFallback, change = b.RecordFailure()
	assert.True(t, useFallback)
	assert.False(t, change.Opened, "already open")
}

func TestBreakerSuccessClearsFailureStreak(t *testing.T) {
	b := New("identity", WithFailureThreshold(2))

	b.RecordFailure()
	usePrimary, _ := b.RecordSuccess()
	assert.True(t, usePrimary)

	b.RecordFailure()
	assert.Equal(t, StateClosed, b.State())
	b.RecordFailure()
	assert.Equal(t, StateOpen, b.State())
}

func TestBreakerClosesAfterConsecutiveSuccesses(t *testing.T) {
	b := New("identity", WithFailureThreshold(1), WithSuccessThreshold(2))
	b.RecordFailure()
	require.Equal(t, StateOpen, b.State())

	b.RecordSuccess()
	b.RecordFailure()
	usePrimary, change := b.RecordSuccess()
	assert.False(t, usePrimary, "failure restarted the success streak")
	assert.False(t, change.Closed)

	usePrimary, change = b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerAllowsTrialCallAfterCooldown(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := New("identity",
		WithFailureThreshold(1),
		WithCooldown(5*time.Second),
		WithClock(func() time.Time { return now }),
	)

	b.RecordFailure()
	assert.False(t, b.Allow())

	now = now.Add(4 * time.Second)
	assert.False(t, b.Allow())

	now = now.Add(time.Second)
	assert.True(t, b.Allow())

	b.RecordFailure()
	assert.False(t, b.Allow(), "failed trial call restarts the cooldown")
}
