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

// GormReservationRepository implements ReservationRepository using GORM
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// FindByID finds a reservation by ID
func (r *GormReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Reservation, error) {
	var model models.ReservationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByAccount returns the single active reservation holding the
// account, or shared.ErrNotFound. The partial unique index guarantees at
// most one exists.
func (r *GormReservationRepository) FindActiveByAccount(ctx context.Context, accountID uuid.UUID) (*listing.Reservation, error) {
	var model models.ReservationModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ? AND released = FALSE AND consumed = FALSE", accountID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindExpired returns active reservations whose window has passed
func (r *GormReservationRepository) FindExpired(ctx context.Context) ([]listing.Reservation, error) {
	var reservationModels []models.ReservationModel
	if err := r.db.WithContext(ctx).
		Where("released = FALSE AND consumed = FALSE AND expire_at < ?", time.Now()).
		Order("expire_at ASC").
		Find(&reservationModels).Error; err != nil {
		return nil, err
	}
	reservations := make([]listing.Reservation, len(reservationModels))
	for i := range reservationModels {
		reservations[i] = *reservationModels[i].ToDomain()
	}
	return reservations, nil
}

// Save creates or updates a reservation
func (r *GormReservationRepository) Save(ctx context.Context, reservation *listing.Reservation) error {
	model := models.ReservationModelFromDomain(reservation)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormReservationRepository implements ReservationRepository
var _ listing.ReservationRepository = (*GormReservationRepository)(nil)
