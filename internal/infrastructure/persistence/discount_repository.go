package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/appleshop/backend/internal/domain/catalog"
	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDiscountRepository implements catalog.DiscountRepository using GORM
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewGormDiscountRepository creates a new GormDiscountRepository
func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// FindByID finds a discount by its ID
func (r *GormDiscountRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Discount, error) {
	var discount catalog.Discount
	if err := r.db.WithContext(ctx).First(&discount, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &discount, nil
}

// FindAll finds all discounts matching the filter
func (r *GormDiscountRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Discount, error) {
	var discounts []catalog.Discount
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Discount{}), filter)
	query = applyPagination(query, filter)

	if err := query.Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}

// FindByProduct finds all discounts declared for a product
func (r *GormDiscountRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.Discount, error) {
	var discounts []catalog.Discount
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("start_date ASC, created_at ASC").
		Find(&discounts).Error; err != nil {
		return nil, err
	}
	return discounts, nil
}

// FindActiveForProduct returns the discount applicable on the given date.
// Overlapping windows resolve to the earliest start date, ties break on
// creation time.
func (r *GormDiscountRepository) FindActiveForProduct(ctx context.Context, productID uuid.UUID, date time.Time) (*catalog.Discount, error) {
	discounts, err := r.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	active := catalog.ResolveActive(discounts, date)
	if active == nil {
		return nil, shared.ErrNotFound
	}
	return active, nil
}

// Save creates or updates a discount
func (r *GormDiscountRepository) Save(ctx context.Context, discount *catalog.Discount) error {
	return r.db.WithContext(ctx).Save(discount).Error
}

// Delete deletes a discount
func (r *GormDiscountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Discount{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts discounts matching the filter
func (r *GormDiscountRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Discount{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDiscountRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "active_on":
			query = query.Where("start_date <= ? AND end_date >= ?", value, value)
		}
	}
	return query
}

var _ catalog.DiscountRepository = (*GormDiscountRepository)(nil)
