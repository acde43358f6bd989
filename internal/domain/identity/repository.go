package identity

import (
	"context"

	"github.com/appleshop/backend/internal/domain/shared"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	shared.Repository[User]
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAdmins(ctx context.Context) ([]User, error)
}
