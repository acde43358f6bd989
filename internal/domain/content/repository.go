package content

import (
	"context"

	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines persistence operations for articles
type Repository interface {
	shared.Repository[Article]
	// FindRecent returns articles ordered by publication date descending
	FindRecent(ctx context.Context, limit int) ([]Article, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Article, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
