package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Interval is the bucket granularity of a sales series
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

// Period is a named reporting window ending at now
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// SalesBucket is one point of a sales time series. It is derived on every
// request and never persisted.
type SalesBucket struct {
	Date       string          `json:"date"`
	Sales      decimal.Decimal `json:"sales"`
	OrderCount int64           `json:"orders"`
}

// SalesSeries is a contiguous, zero-filled sales time series
type SalesSeries struct {
	Buckets   []SalesBucket `json:"data"`
	Interval  Interval      `json:"interval"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
}

// OrderPoint is the slice of an order the aggregator folds: when it was
// created and what it was worth.
type OrderPoint struct {
	CreatedAt   time.Time
	TotalAmount decimal.Decimal
}

// ProductSales is an aggregated quantity-sold row for one product
type ProductSales struct {
	ProductID uuid.UUID
	TotalSold int64
}

// TopProduct is a ranked product hydrated with current catalog metadata
type TopProduct struct {
	ProductID uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Category  string          `json:"category"`
	ImageURL  string          `json:"image_url"`
	TotalSold int64           `json:"total_sold"`
}

// DashboardStats is the admin dashboard summary
type DashboardStats struct {
	TotalProducts    int64           `json:"total_products"`
	TotalOrders      int64           `json:"total_orders"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	PendingOrders    int64           `json:"pending_orders"`
	LowStockProducts int64           `json:"low_stock_products"`
}

// SalesReportRepository reads committed orders for reporting.
// All queries are read-only.
type SalesReportRepository interface {
	// FindOrderPoints returns (createdAt, totalAmount) for every order
	// created within [start, end]
	FindOrderPoints(ctx context.Context, start, end time.Time) ([]OrderPoint, error)

	// AggregateProductSales sums quantity sold per product across orders
	// created at or after start, ranked descending by quantity with
	// product-id ascending tiebreak
	AggregateProductSales(ctx context.Context, start time.Time, limit int) ([]ProductSales, error)

	// SumRevenue totals order amounts for the given statuses
	SumRevenue(ctx context.Context, statuses []string) (decimal.Decimal, error)
}

// ResolvePeriodStart computes the window start for a named period relative
// to now. Unknown periods default to a week, matching the query parameter's
// lenient handling.
func ResolvePeriodStart(period Period, now time.Time) time.Time {
	switch period {
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	case PeriodYear:
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// IntervalForPeriod maps a named period to its fixed bucket granularity:
// daily buckets for week and month windows, monthly buckets for a year.
func IntervalForPeriod(period Period) Interval {
	if period == PeriodYear {
		return IntervalMonth
	}
	return IntervalDay
}

// BucketKey computes the series key a timestamp falls into. Day keys are
// YYYY-MM-DD, month keys YYYY-MM, and week keys the YYYY-MM-DD of the
// Monday of the ISO week containing the date.
func BucketKey(t time.Time, interval Interval) string {
	switch interval {
	case IntervalMonth:
		return t.Format("2006-01")
	case IntervalWeek:
		return mondayOf(t).Format("2006-01-02")
	default:
		return t.Format("2006-01-02")
	}
}

// mondayOf returns the Monday of the ISO week containing t.
// Sunday maps back six days, any other weekday back weekday-1 days.
func mondayOf(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// step advances t by one bucket unit
func step(t time.Time, interval Interval) time.Time {
	switch interval {
	case IntervalMonth:
		return t.AddDate(0, 1, 0)
	case IntervalWeek:
		return t.AddDate(0, 0, 7)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// BuildSalesSeries builds a contiguous sales series over [start, end].
//
// It zero-fills first: the range is walked one bucket unit at a time and
// every visited key gets a zero bucket, so the series has no gaps even when
// no orders exist. Orders are then folded in using the same key function;
// an order whose key is not in the pre-filled set is dropped rather than
// growing the series. Output is sorted ascending by key.
func BuildSalesSeries(points []OrderPoint, start, end time.Time, interval Interval) SalesSeries {
	buckets := make(map[string]*SalesBucket)

	for current := start; !current.After(end); current = step(current, interval) {
		key := BucketKey(current, interval)
		if _, ok := buckets[key]; !ok {
			buckets[key] = &SalesBucket{Date: key, Sales: decimal.Zero}
		}
	}

	for _, point := range points {
		key := BucketKey(point.CreatedAt, interval)
		bucket, ok := buckets[key]
		if !ok {
			continue
		}
		bucket.Sales = bucket.Sales.Add(point.TotalAmount)
		bucket.OrderCount++
	}

	result := make([]SalesBucket, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})

	return SalesSeries{
		Buckets:   result,
		Interval:  interval,
		StartDate: start,
		EndDate:   end,
	}
}
