package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/modernstore/backend/internal/domain/report"
	"github.com/shopspring/decimal"
)

// SalesReportFilter selects the reporting window. An explicit start/end pair
// takes precedence over the named period.
type SalesReportFilter struct {
	Period string     `form:"period" binding:"omitempty,oneof=week month year"`
	Start  *time.Time `form:"start" time_format:"2006-01-02"`
	End    *time.Time `form:"end" time_format:"2006-01-02"`
}

// SalesReportResponse is the sales time series for the dashboard chart
type SalesReportResponse struct {
	Period   string               `json:"period"`
	Interval string               `json:"interval"`
	Data     []report.SalesBucket `json:"data"`
}

// TopProductsFilter selects the ranking window and size
type TopProductsFilter struct {
	Period string `form:"period" binding:"omitempty,oneof=week month year"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=50"`
}

// RecentOrderResponse is a compact order row for the dashboard
type RecentOrderResponse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	ItemCount   int             `json:"item_count"`
	CreatedAt   time.Time       `json:"created_at"`
}
