package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/modernstore/backend/internal/domain/order"
	"github.com/modernstore/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormOrderRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("updates an existing order", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		orderID := uuid.New()
		mock.ExpectExec(`UPDATE "orders" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3`).
			WithArgs("SHIPPED", sqlmock.AnyArg(), orderID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateStatus(ctx, orderID, order.StatusShipped))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing order yields not found", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		orderID := uuid.New()
		mock.ExpectExec(`UPDATE "orders"`).
			WithArgs("SHIPPED", sqlmock.AnyArg(), orderID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateStatus(ctx, orderID, order.StatusShipped), shared.ErrNotFound)
	})
}

func TestGormOrderRepository_CountByStatus(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE status = \$1`).
		WithArgs("PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountByStatus(context.Background(), order.StatusPending)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
}
