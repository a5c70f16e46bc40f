package models

import (
	"time"

	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OutboxModel is the persistence model for the transactional outbox
type OutboxModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key"`
	EventID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	EventType     string     `gorm:"size:128;not null;index"`
	AggregateID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	AggregateType string     `gorm:"size:64;not null"`
	Payload       []byte     `gorm:"type:jsonb;not null"`
	Status        string     `gorm:"size:16;not null;index"`
	RetryCount    int        `gorm:"not null;default:0"`
	MaxRetries    int        `gorm:"not null;default:5"`
	LastError     string     `gorm:"size:1024"`
	NextRetryAt   *time.Time `gorm:"index"`
	ProcessedAt   *time.Time `gorm:""`
	CreatedAt     time.Time  `gorm:"not null;index"`
	UpdatedAt     time.Time  `gorm:"not null"`
}

// TableName specifies the table name for OutboxModel
func (OutboxModel) TableName() string {
	return "outbox_events"
}

// ToDomain converts the persistence model to a domain outbox entry
func (m *OutboxModel) ToDomain() *shared.OutboxEntry {
	return &shared.OutboxEntry{
		ID:            m.ID,
		EventID:       m.EventID,
		EventType:     m.EventType,
		AggregateID:   m.AggregateID,
		AggregateType: m.AggregateType,
		Payload:       m.Payload,
		Status:        shared.OutboxStatus(m.Status),
		RetryCount:    m.RetryCount,
		MaxRetries:    m.MaxRetries,
		LastError:     m.LastError,
		NextRetryAt:   m.NextRetryAt,
		ProcessedAt:   m.ProcessedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// OutboxModelFromDomain converts a domain outbox entry to its persistence model
func OutboxModelFromDomain(entry *shared.OutboxEntry) *OutboxModel {
	return &OutboxModel{
		ID:            entry.ID,
		EventID:       entry.EventID,
		EventType:     entry.EventType,
		AggregateID:   entry.AggregateID,
		AggregateType: entry.AggregateType,
		Payload:       entry.Payload,
		Status:        string(entry.Status),
		RetryCount:    entry.RetryCount,
		MaxRetries:    entry.MaxRetries,
		LastError:     entry.LastError,
		NextRetryAt:   entry.NextRetryAt,
		ProcessedAt:   entry.ProcessedAt,
		CreatedAt:     entry.CreatedAt,
		UpdatedAt:     entry.UpdatedAt,
	}
}
