package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/escrowdesk/backend/internal/domain/listing"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/escrowdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByID finds an account by ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAvailable returns available accounts, optionally filtered by platform
func (r *GormAccountRepository) FindAvailable(ctx context.Context, platform listing.Platform, filter shared.Filter) ([]listing.Account, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("status = ?", string(listing.AccountStatusAvailable))
	if platform != "" {
		query = query.Where("platform = ?", string(platform))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var accountModels []models.AccountModel
	offset := (filter.Page - 1) * filter.PageSize
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&accountModels).Error; err != nil {
		return nil, 0, err
	}

	accounts := make([]listing.Account, len(accountModels))
	for i := range accountModels {
		accounts[i] = *accountModels[i].ToDomain()
	}
	return accounts, total, nil
}

// FindBySeller returns all accounts listed by the seller
func (r *GormAccountRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID) ([]listing.Account, error) {
	var accountModels []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&accountModels).Error; err != nil {
		return nil, err
	}
	accounts := make([]listing.Account, len(accountModels))
	for i := range accountModels {
		accounts[i] = *accountModels[i].ToDomain()
	}
	return accounts, nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *listing.Account) error {
	model := models.AccountModelFromDomain(account)
	return r.db.WithContext(ctx).Save(model).Error
}

// UpdateStatusIf performs the atomic status compare-and-set. Exactly one of
// any number of concurrent callers observes RowsAffected == 1; the rest get
// shared.ErrConcurrencyConflict.
func (r *GormAccountRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to listing.AccountStatus) error {
	updates := map[string]any{
		"status":     string(to),
		"updated_at": time.Now(),
	}
	if to == listing.AccountStatusSold {
		updates["sold_at"] = time.Now()
	}

	result := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing row from a row in another status.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.AccountModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete hard-deletes the account; order rows cascade via foreign key
func (r *GormAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AccountModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormAccountRepository implements AccountRepository
var _ listing.AccountRepository = (*GormAccountRepository)(nil)
