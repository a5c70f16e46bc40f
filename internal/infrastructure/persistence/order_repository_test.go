package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/escrowdesk/backend/internal/domain/escrow"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormOrderRepository_Save_DuplicatePendingOrder(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(gormDB)

	order, err := escrow.NewOrder(uuid.New(), uuid.New(), 75000, "RCPT-2024-007")
	require.NoError(t, err)

	// The partial unique index on PENDING orders rejects the insert; the
	// driver reports it as a duplicated key.
	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnError(gorm.ErrDuplicatedKey)

	err = repo.Save(context.Background(), order)

	assert.ErrorIs(t, err, shared.ErrDuplicateActiveOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_FindActiveByAccount_None(t *testing.T) {
	gormDB, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(gormDB)

	accountID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE account_id = \$1 AND status = \$2`).
		WithArgs(accountID, string(escrow.OrderStatusPending), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	order, err := repo.FindActiveByAccount(context.Background(), accountID)

	assert.Nil(t, order)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
