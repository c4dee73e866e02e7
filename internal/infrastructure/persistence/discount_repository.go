package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/modernstore/backend/internal/domain/discount"
	"github.com/modernstore/backend/internal/domain/shared"
	"github.com/modernstore/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDiscountRepository implements discount.Repository using GORM
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewGormDiscountRepository creates a new GormDiscountRepository
func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// FindByCode looks a code up case-insensitively. Codes are stored upper-case,
// so the lookup normalizes rather than scanning with LOWER().
func (r *GormDiscountRepository) FindByCode(ctx context.Context, code string) (*discount.Code, error) {
	var model models.DiscountCodeModel
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if err := r.db.WithContext(ctx).
		Where("code = ?", normalized).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a discount code definition
func (r *GormDiscountRepository) Save(ctx context.Context, code *discount.Code) error {
	model := models.DiscountCodeModelFromDomain(code)
	return r.db.WithContext(ctx).Save(model).Error
}

// IncrementUsage bumps the used counter with a single conditional UPDATE.
// The limit guard sits in the WHERE clause, so concurrent checkouts cannot
// push a limited code past its cap. Codes without a limit always match.
func (r *GormDiscountRepository) IncrementUsage(ctx context.Context, code string) error {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	result := r.db.WithContext(ctx).
		Model(&models.DiscountCodeModel{}).
		Where("code = ? AND (usage_limit IS NULL OR used_count < usage_limit)", normalized).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var exists int64
		if err := r.db.WithContext(ctx).
			Model(&models.DiscountCodeModel{}).
			Where("code = ?", normalized).
			Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInvalidDiscount
	}
	return nil
}

// Ensure GormDiscountRepository implements Repository
var _ discount.Repository = (*GormDiscountRepository)(nil)
