package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/appleshop/backend/internal/domain/catalog"
	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDiscountService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates discount", func(t *testing.T) {
		discountRepo := new(MockDiscountRepository)
		productRepo := new(MockProductRepository)
		svc := NewDiscountService(discountRepo, productRepo)

		product, _ := catalog.NewProduct("iPhone 16", "", decimal.NewFromInt(89990), "", nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		discountRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Discount")).Return(nil)

		resp, err := svc.Create(ctx, CreateDiscountRequest{
			ProductID: product.ID,
			Percent:   15,
			StartDate: time.Now().Add(-time.Hour),
			EndDate:   time.Now().Add(48 * time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, 15, resp.Percent)
		assert.True(t, resp.Active)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		discountRepo := new(MockDiscountRepository)
		productRepo := new(MockProductRepository)
		svc := NewDiscountService(discountRepo, productRepo)

		id := uuid.New()
		productRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, CreateDiscountRequest{
			ProductID: id,
			Percent:   15,
			StartDate: time.Now(),
			EndDate:   time.Now(),
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		discountRepo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		discountRepo := new(MockDiscountRepository)
		productRepo := new(MockProductRepository)
		svc := NewDiscountService(discountRepo, productRepo)

		product, _ := catalog.NewProduct("iPhone 16", "", decimal.NewFromInt(89990), "", nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := svc.Create(ctx, CreateDiscountRequest{
			ProductID: product.ID,
			Percent:   15,
			StartDate: time.Now().Add(72 * time.Hour),
			EndDate:   time.Now(),
		})
		assert.Error(t, err)
	})
}

func TestDiscountService_ActiveForProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the applicable discount", func(t *testing.T) {
		discountRepo := new(MockDiscountRepository)
		productRepo := new(MockProductRepository)
		svc := NewDiscountService(discountRepo, productRepo)

		product, _ := catalog.NewProduct("iPhone 16", "", decimal.NewFromInt(89990), "", nil)
		date := time.Now()
		discount, _ := catalog.NewDiscount(product.ID, 20, date.Add(-24*time.Hour), date.Add(24*time.Hour))

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		discountRepo.On("FindActiveForProduct", ctx, product.ID, date).Return(discount, nil)

		resp, err := svc.ActiveForProduct(ctx, product.ID, date)
		require.NoError(t, err)
		assert.Equal(t, 20, resp.Percent)
		assert.True(t, resp.Active)
	})

	t.Run("no applicable discount surfaces as not found", func(t *testing.T) {
		discountRepo := new(MockDiscountRepository)
		productRepo := new(MockProductRepository)
		svc := NewDiscountService(discountRepo, productRepo)

		product, _ := catalog.NewProduct("iPhone 16", "", decimal.NewFromInt(89990), "", nil)
		date := time.Now()

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		discountRepo.On("FindActiveForProduct", ctx, product.ID, date).Return(nil, shared.ErrNotFound)

		_, err := svc.ActiveForProduct(ctx, product.ID, date)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestDiscountService_Update(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	productRepo := new(MockProductRepository)
	svc := NewDiscountService(discountRepo, productRepo)

	discount, _ := catalog.NewDiscount(uuid.New(), 10, time.Now(), time.Now().Add(24*time.Hour))
	discountRepo.On("FindByID", ctx, discount.ID).Return(discount, nil)
	discountRepo.On("Save", ctx, discount).Return(nil)

	resp, err := svc.Update(ctx, discount.ID, UpdateDiscountRequest{
		Percent:   25,
		StartDate: time.Now(),
		EndDate:   time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, 25, resp.Percent)
}

func TestDiscountService_ListByProduct(t *testing.T) {
	ctx := context.Background()
	discountRepo := new(MockDiscountRepository)
	productRepo := new(MockProductRepository)
	svc := NewDiscountService(discountRepo, productRepo)

	productID := uuid.New()
	d1, _ := catalog.NewDiscount(productID, 10, time.Now().Add(-48*time.Hour), time.Now().Add(-24*time.Hour))
	d2, _ := catalog.NewDiscount(productID, 20, time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour))

	discountRepo.On("FindByProduct", ctx, productID).Return([]catalog.Discount{*d1, *d2}, nil)

	responses, err := svc.ListByProduct(ctx, productID)
	require.NoError(t, err)
	require.Len(t, responses, 2)
	assert.False(t, responses[0].Active)
	assert.True(t, responses[1].Active)
}
