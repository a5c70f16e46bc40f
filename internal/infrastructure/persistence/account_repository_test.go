package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/escrowdesk/backend/internal/domain/listing"
	"github.com/escrowdesk/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormAccountRepository_FindByID(t *testing.T) {
	t.Run("finds existing account", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(gormDB)

		accountID := uuid.New()
		sellerID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows([]string{
			"id", "created_at", "updated_at", "version",
			"seller_id", "platform", "title", "price", "status", "sold_at",
		}).AddRow(
			accountID, now, now, 1,
			sellerID, "CHANNEL", "Tech News Channel", int64(50000), "AVAILABLE", nil,
		)

		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1`).
			WithArgs(accountID, 1).
			WillReturnRows(rows)

		account, err := repo.FindByID(context.Background(), accountID)

		assert.NoError(t, err)
		assert.Equal(t, accountID, account.ID)
		assert.Equal(t, sellerID, account.SellerID)
		assert.Equal(t, listing.AccountStatusAvailable, account.Status)
		assert.Equal(t, int64(50000), account.Price)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing account", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(gormDB)

		accountID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1`).
			WithArgs(accountID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		account, err := repo.FindByID(context.Background(), accountID)

		assert.Nil(t, account)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormAccountRepository_UpdateStatusIf(t *testing.T) {
	t.Run("winner flips the status", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(gormDB)

		accountID := uuid.New()

		mock.ExpectExec(`UPDATE "accounts" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatusIf(context.Background(), accountID, listing.AccountStatusAvailable, listing.AccountStatusPending)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("loser gets concurrency conflict", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(gormDB)

		accountID := uuid.New()

		// Another caller changed the status first; zero rows match.
		mock.ExpectExec(`UPDATE "accounts" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts" WHERE id = \$1`).
			WithArgs(accountID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.UpdateStatusIf(context.Background(), accountID, listing.AccountStatusAvailable, listing.AccountStatusPending)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("missing account maps to ErrNotFound", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(gormDB)

		accountID := uuid.New()

		mock.ExpectExec(`UPDATE "accounts" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts" WHERE id = \$1`).
			WithArgs(accountID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := repo.UpdateStatusIf(context.Background(), accountID, listing.AccountStatusPending, listing.AccountStatusSold)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormAccountRepository_Delete(t *testing.T) {
	t.Run("deletes existing account", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(gormDB)

		accountID := uuid.New()
		mock.ExpectExec(`DELETE FROM "accounts" WHERE id = \$1`).
			WithArgs(accountID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), accountID)
		assert.NoError(t, err)
	})

	t.Run("returns ErrNotFound when nothing deleted", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormAccountRepository(gormDB)

		accountID := uuid.New()
		mock.ExpectExec(`DELETE FROM "accounts" WHERE id = \$1`).
			WithArgs(accountID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), accountID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
