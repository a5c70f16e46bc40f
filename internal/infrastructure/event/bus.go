package event

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/escrowdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus fans domain events out to in-process subscribers. It sits
// at the delivery end of the outbox pipeline: the processor re-publishes
// persisted events here and subscribers such as the webhook notifier pick
// them up. Dispatch is synchronous and per-handler isolated.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	running  atomic.Bool
}

// NewInMemoryEventBus creates a bus with an empty subscription table
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish delivers each event to every subscriber of its type. A failing or
// panicking subscriber is logged and skipped, never propagated; the only
// error returned is a cancelled context.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, handler := range b.registry.GetHandlers(event.EventType()) {
			if err := b.dispatch(ctx, handler, event); err != nil {
				b.logger.Error("Event subscriber failed",
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler. Without explicit eventTypes the handler's
// own EventTypes() declaration is used; a handler declaring none is refused
// rather than silently registered for nothing.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	if len(eventTypes) == 0 {
		b.logger.Warn("Subscriber declares no event types, ignoring")
		return
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("Subscriber registered",
		zap.Strings("event_types", eventTypes),
	)
}

// Unsubscribe removes the handler from every event type
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("Subscriber removed")
}

// Start marks the bus ready. Dispatch is synchronous, so there is no worker
// pool to spin up.
func (b *InMemoryEventBus) Start(_ context.Context) error {
	if b.running.Swap(true) {
		return nil
	}
	b.logger.Info("Event bus started")
	return nil
}

// Stop marks the bus stopped. In-flight synchronous deliveries finish with
// their callers.
func (b *InMemoryEventBus) Stop(_ context.Context) error {
	if !b.running.Swap(false) {
		return nil
	}
	b.logger.Info("Event bus stopped")
	return nil
}

// dispatch invokes one handler, converting a panic into an ordinary error so
// a broken subscriber surfaces in the same log path as a failing one.
func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, event)
}

// Ensure InMemoryEventBus implements EventBus
var _ shared.EventBus = (*InMemoryEventBus)(nil)
