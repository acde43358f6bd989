package order

import (
	"context"
	"time"

	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines persistence operations for orders
type Repository interface {
	shared.Repository[Order]
	// Place persists a new order and empties the source basket in one
	// transaction. Either both happen or neither does.
	Place(ctx context.Context, o *Order, basketID uuid.UUID) error
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	// FindStale returns orders still in "new" created before the cutoff
	FindStale(ctx context.Context, cutoff time.Time, limit int) ([]Order, error)
	// FindCompletedWithoutDocument returns completed orders lacking a
	// stored confirmation document
	FindCompletedWithoutDocument(ctx context.Context, limit int) ([]Order, error)
	// SumCompletedTotals sums the snapshot totals of completed orders
	SumCompletedTotals(ctx context.Context) (decimal.Decimal, error)
}
