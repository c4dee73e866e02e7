package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/modernstore/backend/internal/domain/order"
	"github.com/modernstore/backend/internal/domain/shared"
	"github.com/modernstore/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save persists the order and all of its items in one write. GORM inserts
// the association rows alongside the parent, and when the repository runs
// inside a transaction scope the whole batch commits or rolls back as one.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds an order with its items by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser finds a user's orders matching the filter
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var rows []models.OrderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("user_id = ?", userID), filter)
	query = query.Preload("Items").Limit(filter.PageSize).Offset(filter.Offset())

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(rows), nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var rows []models.OrderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	query = query.Preload("Items").Limit(filter.PageSize).Offset(filter.Offset())

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(rows), nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts orders in the given status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("status = ?", status.String()).
		Count(&count).Error
	return count, err
}

// UpdateStatus sets an order's status
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", id).
		Update("status", status.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies status, window, amount, search and ordering filters
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if userID, ok := filter.Filters["user_id"]; ok {
		query = query.Where("user_id = ?", userID)
	}
	if from, ok := filter.Filters["date_from"]; ok {
		query = query.Where("created_at >= ?", from)
	}
	if to, ok := filter.Filters["date_to"]; ok {
		query = query.Where("created_at < ?", to)
	}
	if min, ok := filter.Filters["min_amount"]; ok {
		query = query.Where("total_amount >= ?", min)
	}
	if max, ok := filter.Filters["max_amount"]; ok {
		query = query.Where("total_amount <= ?", max)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("CAST(id AS TEXT) LIKE ? OR shipping_address LIKE ?", pattern, pattern)
	}
	if filter.OrderBy != "" {
		// Whitelisted column name, never raw client input.
		sortField := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
		query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))
	}
	return query
}

func toDomainOrders(rows []models.OrderModel) []order.Order {
	orders := make([]order.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, *rows[i].ToDomain())
	}
	return orders
}

// Ensure GormOrderRepository implements Repository
var _ order.Repository = (*GormOrderRepository)(nil)
