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

// GormWithdrawalRepository implements WithdrawalRepository using GORM
type GormWithdrawalRepository struct {
	db *gorm.DB
}

// NewGormWithdrawalRepository creates a new GormWithdrawalRepository
func NewGormWithdrawalRepository(db *gorm.DB) *GormWithdrawalRepository {
	return &GormWithdrawalRepository{db: db}
}

// FindByID finds a withdrawal by ID
func (r *GormWithdrawalRepository) FindByID(ctx context.Context, id uuid.UUID) (*escrow.Withdrawal, error) {
	var model models.WithdrawalModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser returns all withdrawals for the user, newest first
func (r *GormWithdrawalRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]escrow.Withdrawal, error) {
	var withdrawalModels []models.WithdrawalModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&withdrawalModels).Error; err != nil {
		return nil, err
	}
	withdrawals := make([]escrow.Withdrawal, len(withdrawalModels))
	for i := range withdrawalModels {
		withdrawals[i] = *withdrawalModels[i].ToDomain()
	}
	return withdrawals, nil
}

// Save creates or updates a withdrawal
func (r *GormWithdrawalRepository) Save(ctx context.Context, withdrawal *escrow.Withdrawal) error {
	model := models.WithdrawalModelFromDomain(withdrawal)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormWithdrawalRepository implements WithdrawalRepository
var _ escrow.WithdrawalRepository = (*GormWithdrawalRepository)(nil)
