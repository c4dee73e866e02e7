package report

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/modernstore/backend/internal/domain/catalog"
	"github.com/modernstore/backend/internal/domain/order"
	"github.com/modernstore/backend/internal/domain/report"
	"github.com/modernstore/backend/internal/domain/shared"
)

const (
	// DefaultTopProductsLimit caps the ranking size when the client omits one
	DefaultTopProductsLimit = 5
	// LowStockThreshold marks products the dashboard flags as running out
	LowStockThreshold = 5

	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 60 * time.Second
)

// Cache is a byte-level cache with TTL semantics. Lookups that miss or fail
// return false; the dashboard recomputes and moves on, so a dead cache only
// costs latency.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// DashboardService aggregates storefront data for the admin dashboard.
// Everything it serves is derived from orders and products on demand;
// nothing here writes.
type DashboardService struct {
	salesRepo   report.SalesReportRepository
	productRepo catalog.ProductRepository
	orderRepo   order.Repository
	cache       Cache
	now         func() time.Time
}

// NewDashboardService creates a new DashboardService. The cache is optional;
// pass nil to always recompute.
func NewDashboardService(
	salesRepo report.SalesReportRepository,
	productRepo catalog.ProductRepository,
	orderRepo order.Repository,
	cache Cache,
) *DashboardService {
	return &DashboardService{
		salesRepo:   salesRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		cache:       cache,
		now:         time.Now,
	}
}

// SalesReport builds the zero-filled sales series for the requested window.
// An explicit start/end pair wins over the named period and buckets by day;
// otherwise week and month windows bucket by day, a year window by month.
func (s *DashboardService) SalesReport(ctx context.Context, filter SalesReportFilter) (*SalesReportResponse, error) {
	period := report.Period(filter.Period)
	if filter.Period == "" {
		period = report.PeriodWeek
	}

	var start, end time.Time
	interval := report.IntervalDay
	if filter.Start != nil && filter.End != nil {
		start, end = *filter.Start, *filter.End
	} else {
		end = s.now()
		start = report.ResolvePeriodStart(period, end)
		interval = report.IntervalForPeriod(period)
	}

	points, err := s.salesRepo.FindOrderPoints(ctx, start, end)
	if err != nil {
		return nil, err
	}

	series := report.BuildSalesSeries(points, start, end, interval)
	return &SalesReportResponse{
		Period:   string(period),
		Interval: string(series.Interval),
		Data:     series.Buckets,
	}, nil
}

// TopProducts ranks products by quantity sold in the window and hydrates
// each entry with current catalog metadata. Products deleted since their
// sales are silently dropped, so the list may be shorter than the limit.
func (s *DashboardService) TopProducts(ctx context.Context, filter TopProductsFilter) ([]report.TopProduct, error) {
	period := report.Period(filter.Period)
	if filter.Period == "" {
		period = report.PeriodMonth
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultTopProductsLimit
	}

	start := report.ResolvePeriodStart(period, s.now())
	sales, err := s.salesRepo.AggregateProductSales(ctx, start, limit)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return []report.TopProduct{}, nil
	}

	ids := make([]uuid.UUID, 0, len(sales))
	for _, row := range sales {
		ids = append(ids, row.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	result := make([]report.TopProduct, 0, len(sales))
	for _, row := range sales {
		product, ok := byID[row.ProductID]
		if !ok {
			continue
		}
		result = append(result, report.TopProduct{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Stock:     product.Stock,
			Category:  product.Category,
			ImageURL:  product.ImageURL,
			TotalSold: row.TotalSold,
		})
	}
	return result, nil
}

// Stats returns the dashboard summary counters. Results are cached briefly
// since every admin page load asks for them.
func (s *DashboardService) Stats(ctx context.Context) (*report.DashboardStats, error) {
	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, statsCacheKey); ok {
			var cached report.DashboardStats
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	totalProducts, err := s.productRepo.Count(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.CountLowStock(ctx, LowStockThreshold)
	if err != nil {
		return nil, err
	}
	totalOrders, err := s.orderRepo.Count(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	pending, err := s.orderRepo.CountByStatus(ctx, order.StatusPending)
	if err != nil {
		return nil, err
	}
	// Cancelled orders never count toward revenue.
	revenue, err := s.salesRepo.SumRevenue(ctx, []string{
		order.StatusPending.String(),
		order.StatusProcessing.String(),
		order.StatusShipped.String(),
		order.StatusDelivered.String(),
	})
	if err != nil {
		return nil, err
	}

	stats := &report.DashboardStats{
		TotalProducts:    totalProducts,
		TotalOrders:      totalOrders,
		TotalRevenue:     revenue,
		PendingOrders:    pending,
		LowStockProducts: lowStock,
	}

	if s.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			s.cache.Set(ctx, statsCacheKey, data, statsCacheTTL)
		}
	}
	return stats, nil
}

// RecentOrders returns the latest orders, newest first
func (s *DashboardService) RecentOrders(ctx context.Context, limit int) ([]RecentOrderResponse, error) {
	if limit <= 0 {
		limit = DefaultTopProductsLimit
	}
	filter := shared.DefaultFilter()
	filter.PageSize = limit

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]RecentOrderResponse, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		result = append(result, RecentOrderResponse{
			ID:          o.ID,
			UserID:      o.UserID,
			TotalAmount: o.TotalAmount,
			Status:      o.Status.String(),
			ItemCount:   o.ItemCount(),
			CreatedAt:   o.CreatedAt,
		})
	}
	return result, nil
}
