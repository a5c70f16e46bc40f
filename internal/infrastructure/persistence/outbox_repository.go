package persistence

import (
	"context"
	"time"

	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/escrowdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOutboxRepository implements OutboxRepository using GORM
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GormOutboxRepository
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Save persists one or more outbox entries
func (r *GormOutboxRepository) Save(ctx context.Context, entries ...*shared.OutboxEntry) error {
	if len(entries) == 0 {
		return nil
	}
	outboxModels := make([]*models.OutboxModel, len(entries))
	for i, entry := range entries {
		outboxModels[i] = models.OutboxModelFromDomain(entry)
	}
	return r.db.WithContext(ctx).Create(outboxModels).Error
}

// FindPending retrieves pending entries in insertion order
func (r *GormOutboxRepository) FindPending(ctx context.Context, limit int) ([]*shared.OutboxEntry, error) {
	var outboxModels []models.OutboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(shared.OutboxStatusPending)).
		Order("created_at ASC").
		Limit(limit).
		Find(&outboxModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(outboxModels), nil
}

// FindRetryable retrieves failed entries that are due for retry
func (r *GormOutboxRepository) FindRetryable(ctx context.Context, before time.Time, limit int) ([]*shared.OutboxEntry, error) {
	var outboxModels []models.OutboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND next_retry_at <= ?", string(shared.OutboxStatusFailed), before).
		Order("next_retry_at ASC").
		Limit(limit).
		Find(&outboxModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(outboxModels), nil
}

// MarkProcessing atomically claims the entries for this processor instance.
// Rows already claimed by a competing instance are skipped, so an event is
// delivered by exactly one worker.
func (r *GormOutboxRepository) MarkProcessing(ctx context.Context, ids []uuid.UUID) ([]*shared.OutboxEntry, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var claimed []models.OutboxModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.OutboxModel{}).
			Where("id IN ? AND status IN ?", ids, []string{
				string(shared.OutboxStatusPending),
				string(shared.OutboxStatusFailed),
			}).
			Updates(map[string]any{
				"status":     string(shared.OutboxStatusProcessing),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		return tx.Where("id IN ? AND status = ?", ids, string(shared.OutboxStatusProcessing)).
			Find(&claimed).Error
	})
	if err != nil {
		return nil, err
	}
	return toDomainEntries(claimed), nil
}

// Update updates an existing outbox entry
func (r *GormOutboxRepository) Update(ctx context.Context, entry *shared.OutboxEntry) error {
	model := models.OutboxModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteOlderThan deletes sent entries older than the given time
func (r *GormOutboxRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ? AND processed_at < ?", string(shared.OutboxStatusSent), before).
		Delete(&models.OutboxModel{})
	return result.RowsAffected, result.Error
}

func toDomainEntries(outboxModels []models.OutboxModel) []*shared.OutboxEntry {
	entries := make([]*shared.OutboxEntry, len(outboxModels))
	for i := range outboxModels {
		entries[i] = outboxModels[i].ToDomain()
	}
	return entries
}

// Ensure GormOutboxRepository implements OutboxRepository
var _ shared.OutboxRepository = (*GormOutboxRepository)(nil)
