package audit

import (
	"context"
	"log/slog"
	"time"
)

// Sink persists audit events.
type Sink interface {
	Write(ctx context.Context, event Event) error
}

// Publisher decouples request handling from sink latency. Emit enqueues
// without blocking; Run drains the queue into the sink until ctx is done.
type Publisher struct {
	sink   Sink
	inbox  chan Event
	logger *slog.Logger
}

// NewPublisher creates a publisher with a queue of the given capacity.
func NewPublisher(sink Sink, capacity int, logger *slog.Logger) *Publisher {
	if capacity <= 0 {
		capacity = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{sink: sink, inbox: make(chan Event, capacity), logger: logger}
}

// Emit queues event. A full queue drops the event with a warning rather than
// slowing the request down.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
		return nil
	default:
		p.logger.WarnContext(ctx, "audit queue full, dropping event",
			"action", string(event.Action),
			"venue_id", event.VenueID,
		)
		return ErrQueueFull
	}
}

// Run writes queued events to the sink until ctx is cancelled, then flushes
// what is already queued.
func (p *Publisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			p.drain()
			return nil
		case event := <-p.inbox:
			p.write(ctx, event)
		}
	}
}

func (p *Publisher) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		select {
		case event := <-p.inbox:
			p.write(ctx, event)
		default:
			return
		}
	}
}

func (p *Publisher) write(ctx context.Context, event Event) {
	if err := p.sink.Write(ctx, event); err != nil {
		p.logger.ErrorContext(ctx, "failed to write audit event",
			"error", err,
			"action", string(event.Action),
			"venue_id", event.VenueID,
		)
	}
}
