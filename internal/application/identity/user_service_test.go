package identity

import (
	"context"
	"testing"

	"github.com/appleshop/backend/internal/domain/identity"
	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_ChangeRole(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	user, _ := identity.NewUser("ivan", "ivan@example.com", "secret-password")
	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	repo.On("Save", ctx, user).Return(nil)

	resp, err := svc.ChangeRole(ctx, user.ID, ChangeRoleRequest{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
	assert.True(t, user.IsAdmin())
}

func TestUserService_ActivateDeactivate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	user, _ := identity.NewUser("ivan", "ivan@example.com", "secret-password")
	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	repo.On("Save", ctx, user).Return(nil)

	resp, err := svc.Deactivate(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.False(t, user.CanLogin())

	resp, err = svc.Activate(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		user, _ := identity.NewUser("ivan", "ivan@example.com", "secret-password")
		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Delete", ctx, user.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, user.ID))
		repo.AssertExpectations(t)
	})

	t.Run("unknown user surfaces as not found", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		err := svc.Delete(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "Delete")
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := NewUserService(repo)

	u1, _ := identity.NewUser("admin", "admin@example.com", "secret-password")
	require.NoError(t, u1.ChangeRole(identity.RoleAdmin))

	repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["role"] == "admin" && f.OrderBy == "username"
	})).Return([]identity.User{*u1}, nil)
	repo.On("Count", ctx, mock.Anything).Return(int64(1), nil)

	responses, total, err := svc.List(ctx, UserListFilter{Role: "admin"})
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "admin", responses[0].Role)
}
