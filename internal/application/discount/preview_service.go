package discount

import (
	"context"
	"time"

	"github.com/modernstore/backend/internal/domain/discount"
	"github.com/modernstore/backend/internal/domain/shared"
	"github.com/modernstore/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PreviewRequest asks what a discount code would be worth on a cart
type PreviewRequest struct {
	Code     string          `json:"code" binding:"required"`
	Subtotal decimal.Decimal `json:"subtotal" binding:"required"`
}

// PreviewResponse reports the outcome of a discount evaluation.
// Invalid codes are a normal answer here, not an error: the response says
// why and echoes the unchanged total so the cart UI can render either way.
type PreviewResponse struct {
	Valid          bool            `json:"valid"`
	Message        string          `json:"message"`
	Code           string          `json:"code"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	NewTotal       decimal.Decimal `json:"new_total"`
}

// PreviewService evaluates discount codes against cart subtotals without
// consuming them. Evaluation is read-only; the usage counter moves only at
// checkout.
type PreviewService struct {
	discountRepo discount.Repository
	now          func() time.Time
}

// NewPreviewService creates a new PreviewService
func NewPreviewService(discountRepo discount.Repository) *PreviewService {
	return &PreviewService{
		discountRepo: discountRepo,
		now:          time.Now,
	}
}

// Preview evaluates a code against a subtotal. An unknown code yields an
// invalid response rather than an error so callers cannot distinguish
// unknown codes from expired ones.
func (s *PreviewService) Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error) {
	if req.Subtotal.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SUBTOTAL", "Subtotal cannot be negative")
	}
	subtotal := valueobject.NewMoneyUSD(req.Subtotal)

	code, err := s.discountRepo.FindByCode(ctx, req.Code)
	if err != nil {
		if err == shared.ErrNotFound {
			return &PreviewResponse{
				Valid:          false,
				Message:        "Invalid discount code",
				Code:           req.Code,
				DiscountAmount: decimal.Zero,
				NewTotal:       req.Subtotal,
			}, nil
		}
		return nil, err
	}

	result := code.Evaluate(subtotal, s.now())
	return &PreviewResponse{
		Valid:          result.Valid,
		Message:        result.Message,
		Code:           code.Code,
		DiscountAmount: result.DiscountAmount.Amount(),
		NewTotal:       result.NewTotal.Amount(),
	}, nil
}
