package event

import (
	"context"
	"fmt"

	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/escrowdesk/backend/internal/infrastructure/persistence"
	"gorm.io/gorm"
)

// OutboxPublisher persists domain events to the outbox table so they commit
// atomically with the aggregate changes that produced them
type OutboxPublisher struct {
	serializer *EventSerializer
}

// NewOutboxPublisher creates a new outbox publisher
func NewOutboxPublisher(serializer *EventSerializer) *OutboxPublisher {
	return &OutboxPublisher{
		serializer: serializer,
	}
}

// PublishWithTx writes events to the outbox within the provided transaction
func (p *OutboxPublisher) PublishWithTx(ctx context.Context, tx *gorm.DB, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	entries := make([]*shared.OutboxEntry, 0, len(events))
	for _, event := range events {
		payload, err := p.serializer.Serialize(event)
		if err != nil {
			return err
		}

		entries = append(entries, shared.NewOutboxEntry(event, payload))
	}

	repo := persistence.NewGormOutboxRepository(tx)
	return repo.Save(ctx, entries...)
}

// SaveEvents implements the shared.OutboxEventSaver interface
func (p *OutboxPublisher) SaveEvents(ctx context.Context, txProvider interface{}, events ...shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, ok := txProvider.(*gorm.DB)
	if !ok {
		return fmt.Errorf("txProvider must be a *gorm.DB, got %T", txProvider)
	}

	return p.PublishWithTx(ctx, tx, events...)
}

// Ensure OutboxPublisher implements OutboxEventSaver
var _ shared.OutboxEventSaver = (*OutboxPublisher)(nil)

// DurableEventPublisher is the EventPublisher handed to application services.
// Publish writes the events to the outbox table; the outbox processor picks
// them up and delivers them to the in-process bus, so subscribers get
// at-least-once delivery with retries instead of fire-and-forget.
type DurableEventPublisher struct {
	db        *gorm.DB
	publisher *OutboxPublisher
}

// NewDurableEventPublisher creates a durable event publisher
func NewDurableEventPublisher(db *gorm.DB, serializer *EventSerializer) *DurableEventPublisher {
	return &DurableEventPublisher{
		db:        db,
		publisher: NewOutboxPublisher(serializer),
	}
}

// Publish persists the events to the outbox
func (p *DurableEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return p.publisher.PublishWithTx(ctx, p.db.WithContext(ctx), events...)
}

var _ shared.EventPublisher = (*DurableEventPublisher)(nil)
