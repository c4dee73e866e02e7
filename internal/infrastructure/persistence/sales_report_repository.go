package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/modernstore/backend/internal/domain/report"
	"github.com/modernstore/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSalesReportRepository implements report.SalesReportRepository using GORM.
// All queries are read-only aggregations over orders and order items.
type GormSalesReportRepository struct {
	db *gorm.DB
}

// NewGormSalesReportRepository creates a new GormSalesReportRepository
func NewGormSalesReportRepository(db *gorm.DB) *GormSalesReportRepository {
	return &GormSalesReportRepository{db: db}
}

// FindOrderPoints returns (createdAt, totalAmount) for every order created
// within [start, end]. Bucketing happens in application code; the database
// only supplies the raw points.
func (r *GormSalesReportRepository) FindOrderPoints(ctx context.Context, start, end time.Time) ([]report.OrderPoint, error) {
	var rows []struct {
		CreatedAt   time.Time
		TotalAmount decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("created_at, total_amount").
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	points := make([]report.OrderPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, report.OrderPoint{
			CreatedAt:   row.CreatedAt,
			TotalAmount: row.TotalAmount,
		})
	}
	return points, nil
}

// AggregateProductSales sums quantity sold per product across orders created
// at or after start. Rows are ranked by quantity descending with product id
// as a stable tiebreak.
func (r *GormSalesReportRepository) AggregateProductSales(ctx context.Context, start time.Time, limit int) ([]report.ProductSales, error) {
	var rows []struct {
		ProductID uuid.UUID
		TotalSold int64
	}
	if err := r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.product_id, SUM(order_items.quantity) AS total_sold").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ?", start).
		Group("order_items.product_id").
		Order("total_sold DESC, order_items.product_id ASC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	sales := make([]report.ProductSales, 0, len(rows))
	for _, row := range rows {
		sales = append(sales, report.ProductSales{
			ProductID: row.ProductID,
			TotalSold: row.TotalSold,
		})
	}
	return sales, nil
}

// SumRevenue totals order amounts for the given statuses
func (r *GormSalesReportRepository) SumRevenue(ctx context.Context, statuses []string) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("status IN ?", statuses).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// Ensure GormSalesReportRepository implements SalesReportRepository
var _ report.SalesReportRepository = (*GormSalesReportRepository)(nil)
