package event

import (
	"context"
	"testing"
	"time"

	"github.com/escrowdesk/backend/internal/domain/listing"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) Save(ctx context.Context, entries ...*shared.OutboxEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockOutboxRepository) FindPending(ctx context.Context, limit int) ([]*shared.OutboxEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shared.OutboxEntry), args.Error(1)
}

func (m *MockOutboxRepository) FindRetryable(ctx context.Context, before time.Time, limit int) ([]*shared.OutboxEntry, error) {
	args := m.Called(ctx, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shared.OutboxEntry), args.Error(1)
}

func (m *MockOutboxRepository) MarkProcessing(ctx context.Context, ids []uuid.UUID) ([]*shared.OutboxEntry, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shared.OutboxEntry), args.Error(1)
}

func (m *MockOutboxRepository) Update(ctx context.Context, entry *shared.OutboxEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockOutboxRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

func newOutboxEntry(t *testing.T, serializer *EventSerializer) *shared.OutboxEntry {
	t.Helper()
	account, err := listing.NewAccount(uuid.New(), listing.PlatformChannel, "Tech News Channel", 50000)
	require.NoError(t, err)
	event := listing.NewAccountListedEvent(account)

	payload, err := serializer.Serialize(event)
	require.NoError(t, err)

	return shared.NewOutboxEntry(event, payload)
}

func TestOutboxProcessor_DeliversPendingEntry(t *testing.T) {
	serializer := NewEventSerializerWithDefaults()
	repo := new(MockOutboxRepository)
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{listing.EventTypeAccountListed}}
	bus.Subscribe(handler)

	entry := newOutboxEntry(t, serializer)

	repo.On("FindPending", mock.Anything, 100).Return([]*shared.OutboxEntry{entry}, nil)
	repo.On("MarkProcessing", mock.Anything, []uuid.UUID{entry.ID}).Return([]*shared.OutboxEntry{entry}, nil)
	repo.On("FindRetryable", mock.Anything, mock.Anything, 100).Return([]*shared.OutboxEntry{}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(e *shared.OutboxEntry) bool {
		return e.Status == shared.OutboxStatusSent && e.ProcessedAt != nil
	})).Return(nil)

	processor := NewOutboxProcessor(repo, bus, serializer, DefaultOutboxProcessorConfig(), zap.NewNop())
	processor.ProcessBatch(context.Background())

	assert.Len(t, handler.received(), 1)
	repo.AssertExpectations(t)
}

func TestOutboxProcessor_UnclaimedEntriesAreSkipped(t *testing.T) {
	serializer := NewEventSerializerWithDefaults()
	repo := new(MockOutboxRepository)
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{listing.EventTypeAccountListed}}
	bus.Subscribe(handler)

	entry := newOutboxEntry(t, serializer)

	repo.On("FindPending", mock.Anything, 100).Return([]*shared.OutboxEntry{entry}, nil)
	// Another instance claimed the entry first.
	repo.On("MarkProcessing", mock.Anything, []uuid.UUID{entry.ID}).Return([]*shared.OutboxEntry{}, nil)
	repo.On("FindRetryable", mock.Anything, mock.Anything, 100).Return([]*shared.OutboxEntry{}, nil)

	processor := NewOutboxProcessor(repo, bus, serializer, DefaultOutboxProcessorConfig(), zap.NewNop())
	processor.ProcessBatch(context.Background())

	assert.Empty(t, handler.received())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOutboxProcessor_UndeserializableEntryFails(t *testing.T) {
	serializer := NewEventSerializerWithDefaults()
	repo := new(MockOutboxRepository)
	bus := NewInMemoryEventBus(zap.NewNop())

	entry := newOutboxEntry(t, serializer)
	entry.EventType = "listing.unknown_event"

	repo.On("FindPending", mock.Anything, 100).Return([]*shared.OutboxEntry{entry}, nil)
	repo.On("MarkProcessing", mock.Anything, []uuid.UUID{entry.ID}).Return([]*shared.OutboxEntry{entry}, nil)
	repo.On("FindRetryable", mock.Anything, mock.Anything, 100).Return([]*shared.OutboxEntry{}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(e *shared.OutboxEntry) bool {
		return e.Status == shared.OutboxStatusFailed && e.RetryCount == 1
	})).Return(nil)

	processor := NewOutboxProcessor(repo, bus, serializer, DefaultOutboxProcessorConfig(), zap.NewNop())
	processor.ProcessBatch(context.Background())

	repo.AssertExpectations(t)
}

func TestOutboxProcessor_ExhaustedRetriesGoDead(t *testing.T) {
	serializer := NewEventSerializerWithDefaults()
	repo := new(MockOutboxRepository)
	bus := NewInMemoryEventBus(zap.NewNop())

	entry := newOutboxEntry(t, serializer)
	entry.EventType = "listing.unknown_event"
	entry.RetryCount = shared.DefaultMaxRetries - 1

	repo.On("FindPending", mock.Anything, 100).Return([]*shared.OutboxEntry{entry}, nil)
	repo.On("MarkProcessing", mock.Anything, []uuid.UUID{entry.ID}).Return([]*shared.OutboxEntry{entry}, nil)
	repo.On("FindRetryable", mock.Anything, mock.Anything, 100).Return([]*shared.OutboxEntry{}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(e *shared.OutboxEntry) bool {
		return e.IsDead()
	})).Return(nil)

	processor := NewOutboxProcessor(repo, bus, serializer, DefaultOutboxProcessorConfig(), zap.NewNop())
	processor.ProcessBatch(context.Background())

	repo.AssertExpectations(t)
}

func TestOutboxProcessor_StartStop(t *testing.T) {
	serializer := NewEventSerializerWithDefaults()
	repo := new(MockOutboxRepository)
	bus := NewInMemoryEventBus(zap.NewNop())

	cfg := DefaultOutboxProcessorConfig()
	cfg.PollInterval = time.Hour
	cfg.CleanupEnabled = false

	processor := NewOutboxProcessor(repo, bus, serializer, cfg, zap.NewNop())
	require.NoError(t, processor.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, processor.Stop(ctx))
}
