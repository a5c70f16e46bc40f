package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/escrowdesk/backend/internal/domain/listing"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	mu     sync.Mutex
	types  []string
	events []shared.DomainEvent
	err    error
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) received() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.events...)
}

func newListedEvent(t *testing.T) *listing.AccountListedEvent {
	t.Helper()
	account, err := listing.NewAccount(newTestSellerID(), listing.PlatformChannel, "Tech News Channel", 50000)
	require.NoError(t, err)
	return listing.NewAccountListedEvent(account)
}

func TestInMemoryEventBus_PublishToSubscribedHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{listing.EventTypeAccountListed}}
	bus.Subscribe(handler)

	event := newListedEvent(t)
	err := bus.Publish(context.Background(), event)

	require.NoError(t, err)
	received := handler.received()
	require.Len(t, received, 1)
	assert.Equal(t, event.EventID(), received[0].EventID())
}

func TestInMemoryEventBus_HandlerOnlySeesItsTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{listing.EventTypeAccountDeleted}}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newListedEvent(t))

	require.NoError(t, err)
	assert.Empty(t, handler.received())
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{types: []string{listing.EventTypeAccountListed}, err: errors.New("boom")}
	healthy := &recordingHandler{types: []string{listing.EventTypeAccountListed}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newListedEvent(t))

	require.NoError(t, err)
	assert.Len(t, healthy.received(), 1)
}

type panickingHandler struct {
	types []string
}

func (h *panickingHandler) Handle(_ context.Context, _ shared.DomainEvent) error {
	panic("subscriber bug")
}

func (h *panickingHandler) EventTypes() []string {
	return h.types
}

func TestInMemoryEventBus_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	broken := &panickingHandler{types: []string{listing.EventTypeAccountListed}}
	healthy := &recordingHandler{types: []string{listing.EventTypeAccountListed}}
	bus.Subscribe(broken)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newListedEvent(t))

	require.NoError(t, err)
	assert.Len(t, healthy.received(), 1)
}

func TestInMemoryEventBus_PublishStopsOnCancelledContext(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{listing.EventTypeAccountListed}}
	bus.Subscribe(handler)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(ctx, newListedEvent(t))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, handler.received())
}

func TestInMemoryEventBus_SubscriberWithoutTypesIsIgnored(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{}
	bus.Subscribe(handler)

	err := bus.Publish(context.Background(), newListedEvent(t))

	require.NoError(t, err)
	assert.Empty(t, handler.received())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{listing.EventTypeAccountListed}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	err := bus.Publish(context.Background(), newListedEvent(t))

	require.NoError(t, err)
	assert.Empty(t, handler.received())
}
