package dispatch

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// Logger interface for the bus and the dispatchers. Matches ledger.Logger so
// any logging backend serves both.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// EventBus is an in-process publish/subscribe bus for domain events.
//
// Delivery is synchronous and in subscription order: Publish invokes every
// subscriber for the event's exact concrete type and returns only when all
// of them have completed, keeping event ordering deterministic for tests.
// There is no persistence and no retry - a failing subscriber is logged and
// skipped, it can never corrupt or roll back the already-committed command.
type EventBus struct {
	mu     sync.RWMutex
	subs   map[reflect.Type][]func(ctx context.Context, event Event) error
	logger Logger
}

// EventBusOption configures an EventBus.
type EventBusOption func(*EventBus)

// WithBusLogger sets the logger used to report subscriber failures.
func WithBusLogger(logger Logger) EventBusOption {
	return func(b *EventBus) {
		b.logger = logger
	}
}

// NewEventBus creates an empty bus.
func NewEventBus(opts ...EventBusOption) *EventBus {
	bus := &EventBus{
		subs: make(map[reflect.Type][]func(ctx context.Context, event Event) error),
	}

	for _, opt := range opts {
		opt(bus)
	}

	return bus
}

// Subscribe registers a handler for the concrete event type E. Subscribers
// for the same type are invoked in registration order.
func Subscribe[E Event](bus *EventBus, handler func(ctx context.Context, event E) error) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	var zero E
	eventType := reflect.TypeOf(zero)

	bus.subs[eventType] = append(bus.subs[eventType], func(ctx context.Context, event Event) error {
		return handler(ctx, event.(E))
	})
}

// Publish delivers the event to all subscribers registered for its exact
// type. Subscriber errors and panics are logged and swallowed: by the time
// an event is published the mutation is already committed, so notification
// is best effort.
func (b *EventBus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := b.subs[reflect.TypeOf(event)]
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := b.deliver(ctx, handler, event); err != nil {
			if b.logger != nil {
				b.logger.Error("event subscriber failed",
					"event_type", event.EventType(),
					"error", err.Error())
			}
		}
	}
}

func (b *EventBus) deliver(
	ctx context.Context,
	handler func(ctx context.Context, event Event) error,
	event Event,
) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("subscriber panicked: %v", recovered)
		}
	}()

	return handler(ctx, event)
}
