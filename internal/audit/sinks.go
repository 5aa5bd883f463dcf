package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"
)

// ErrQueueFull is returned by Emit when the publisher cannot accept more events.
var ErrQueueFull = errors.New("audit queue full")

// LogSink writes events to a structured logger.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(ctx context.Context, event Event) error {
	args := []any{"log_type", "audit"}
	for k, v := range event.Fields() {
		args = append(args, k, v)
	}
	s.logger.InfoContext(ctx, string(event.Action), args...)
	return nil
}

// StreamSink appends events to a Redis stream, trimmed approximately to maxLen.
type StreamSink struct {
	client *redis.Client
	stream string
	maxLen int64
}

func NewStreamSink(client *redis.Client, stream string, maxLen int64) *StreamSink {
	return &StreamSink{client: client, stream: stream, maxLen: maxLen}
}

func (s *StreamSink) Write(ctx context.Context, event Event) error {
	values := make(map[string]any, 8)
	for k, v := range event.Fields() {
		values[k] = v
	}
	args := &redis.XAddArgs{
		Stream: s.stream,
		Values: values,
	}
	if s.maxLen > 0 {
		args.MaxLen = s.maxLen
		args.Approx = true
	}
	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", s.stream, err)
	}
	return nil
}

// MemorySink keeps events in memory for tests.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Write(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of what was written.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}
