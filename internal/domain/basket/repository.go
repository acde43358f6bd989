package basket

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for baskets
type Repository interface {
	// FindByUser returns the user's basket with items preloaded,
	// or shared.ErrNotFound when the user has none yet
	FindByUser(ctx context.Context, userID uuid.UUID) (*Basket, error)
	Save(ctx context.Context, b *Basket) error
	Delete(ctx context.Context, id uuid.UUID) error
}
