package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/modernstore/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns DESC", "", "DESC"},
		{"asc lowercase returns ASC", "asc", "ASC"},
		{"ASC uppercase returns ASC", "ASC", "ASC"},
		{"desc returns DESC", "desc", "DESC"},
		{"invalid value returns DESC", "sideways", "DESC"},
		{"sql injection attempt returns DESC", "ASC; DROP TABLE orders;--", "DESC"},
		{"whitespace around ASC returns ASC", "  asc  ", "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string returns default", "", "created_at"},
		{"whitelisted field passes", "total_amount", "total_amount"},
		{"unknown field returns default", "shoe_size", "created_at"},
		{"sql injection attempt returns default", "total_amount; DROP TABLE orders;--", "created_at"},
		{"subquery injection returns default", "(SELECT 1)", "created_at"},
		{"case mismatch returns default", "TOTAL_AMOUNT", "created_at"},
		{"whitespace around valid field passes", "  status  ", "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, OrderSortFields, "created_at"))
		})
	}
}

func TestGormOrderRepository_FindAll_SortInjection(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormOrderRepository(db)

	// A hostile order_by must collapse to the default column, never reach SQL.
	mock.ExpectQuery(`SELECT \* FROM "orders" ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	filter := shared.DefaultFilter()
	filter.OrderBy = "total_amount; DROP TABLE orders;--"
	filter.OrderDir = "asc; --"

	_, err := repo.FindAll(context.Background(), filter)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
