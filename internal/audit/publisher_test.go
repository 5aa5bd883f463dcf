package audit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSink struct{ calls int }

func (f *failingSink) Write(context.Context, Event) error {
	f.calls++
	return errors.New("sink down")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestPublisherDeliversQueuedEvents(t *testing.T) {
	sink := NewMemorySink()
	pub := NewPublisher(sink, 4, testLogger())

	venueID := uuid.New()
	require.NoError(t, pub.Emit(context.Background(), Event{Action: ActionVenueCreated, VenueID: venueID}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = pub.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(sink.Events()) == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	got := sink.Events()[0]
	assert.Equal(t, ActionVenueCreated, got.Action)
	assert.Equal(t, venueID, got.VenueID)
	assert.False(t, got.Timestamp.IsZero())
}

func TestPublisherDropsWhenFull(t *testing.T) {
	pub := NewPublisher(NewMemorySink(), 1, testLogger())
	require.NoError(t, pub.Emit(context.Background(), Event{Action: ActionVenueDeleted}))
	assert.ErrorIs(t, pub.Emit(context.Background(), Event{Action: ActionVenueDeleted}), ErrQueueFull)
}

func TestPublisherFlushesOnShutdown(t *testing.T) {
	sink := NewMemorySink()
	pub := NewPublisher(sink, 8, testLogger())
	for i := 0; i < 3; i++ {
		require.NoError(t, pub.Emit(context.Background(), Event{Action: ActionImageAdded}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, pub.Run(ctx))
	assert.Len(t, sink.Events(), 3)
}

func TestPublisherSurvivesSinkErrors(t *testing.T) {
	sink := &failingSink{}
	pub := NewPublisher(sink, 2, testLogger())
	require.NoError(t, pub.Emit(context.Background(), Event{Action: ActionVenueUpdated}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, pub.Run(ctx))
	assert.Equal(t, 1, sink.calls)
}

func TestEventFields(t *testing.T) {
	e := Event{
		Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Action:    ActionVenueStatusChanged,
		ActorID:   uuid.New(),
		VenueID:   uuid.New(),
		Detail:    "active",
	}
	fields := e.Fields()
	assert.Equal(t, "venue_status_changed", fields["action"])
	assert.Equal(t, "active", fields["detail"])
	assert.NotContains(t, fields, "target_id")
	assert.NotContains(t, fields, "owner_id")
}
