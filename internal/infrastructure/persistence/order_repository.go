package persistence

import (
	"context"
	"errors"

	"github.com/escrowdesk/backend/internal/domain/escrow"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/escrowdesk/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*escrow.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAccount returns all orders referencing the account
func (r *GormOrderRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]escrow.Order, error) {
	var orderModels []models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}
	orders := make([]escrow.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders, nil
}

// FindActiveByAccount returns the single PENDING order referencing the
// account, or shared.ErrNotFound. The partial unique index guarantees at
// most one exists.
func (r *GormOrderRepository) FindActiveByAccount(ctx context.Context, accountID uuid.UUID) (*escrow.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND status = ?", accountID, string(escrow.OrderStatusPending)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountByAccount counts all orders referencing the account
func (r *GormOrderRepository) CountByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an order. The partial unique index on PENDING
// orders per account arbitrates concurrent inserts; the loser gets
// shared.ErrDuplicateActiveOrder.
func (r *GormOrderRepository) Save(ctx context.Context, order *escrow.Order) error {
	model := models.OrderModelFromDomain(order)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDuplicateActiveOrder
		}
		return err
	}
	return nil
}

// Delete deletes an order
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ escrow.OrderRepository = (*GormOrderRepository)(nil)
