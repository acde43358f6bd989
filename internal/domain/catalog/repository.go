package catalog

import (
	"context"
	"time"

	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	shared.Repository[Category]
	FindByName(ctx context.Context, name string) (*Category, error)
	CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	shared.Repository[Product]
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	CountOrderReferences(ctx context.Context, productID uuid.UUID) (int64, error)
}

// DiscountRepository defines persistence operations for discounts
type DiscountRepository interface {
	shared.Repository[Discount]
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Discount, error)
	// FindActiveForProduct returns the discount applicable on the given date,
	// or shared.ErrNotFound when no window matches
	FindActiveForProduct(ctx context.Context, productID uuid.UUID, date time.Time) (*Discount, error)
}
