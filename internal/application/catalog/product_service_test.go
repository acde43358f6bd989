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

func newProductService() (*ProductService, *MockProductRepository, *MockCategoryRepository, *MockDiscountRepository) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	discountRepo := new(MockDiscountRepository)
	return NewProductService(productRepo, categoryRepo, discountRepo), productRepo, categoryRepo, discountRepo
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product with default manufacturer", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()

		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		resp, err := svc.Create(ctx, CreateProductRequest{
			Title: "iPhone 16",
			Price: decimal.NewFromInt(89990),
		})
		require.NoError(t, err)
		assert.Equal(t, "iPhone 16", resp.Title)
		assert.Equal(t, catalog.DefaultManufacturer, resp.Manufacturer)
		assert.True(t, resp.IsActive)
		assert.True(t, resp.IsNew)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		svc, productRepo, categoryRepo, _ := newProductService()

		categoryID := uuid.New()
		categoryRepo.On("FindByID", ctx, categoryID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, CreateProductRequest{
			Title:      "iPhone 16",
			Price:      decimal.NewFromInt(89990),
			CategoryID: &categoryID,
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		productRepo.AssertNotCalled(t, "Save")
	})
}

func TestProductService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("applies active discount", func(t *testing.T) {
		svc, productRepo, _, discountRepo := newProductService()

		product, _ := catalog.NewProduct("MacBook Air", "", decimal.NewFromInt(129990), "", nil)
		discount, _ := catalog.NewDiscount(product.ID, 10,
			time.Now().Add(-24*time.Hour), time.Now().Add(24*time.Hour))

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		discountRepo.On("FindActiveForProduct", ctx, product.ID, mock.AnythingOfType("time.Time")).
			Return(discount, nil)

		resp, err := svc.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, resp.DiscountPercent)
		assert.Equal(t, 10, *resp.DiscountPercent)
		require.NotNil(t, resp.DiscountedPrice)
		assert.True(t, resp.DiscountedPrice.Equal(decimal.NewFromInt(116991)))
	})

	t.Run("no discount leaves price untouched", func(t *testing.T) {
		svc, productRepo, _, discountRepo := newProductService()

		product, _ := catalog.NewProduct("MacBook Air", "", decimal.NewFromInt(129990), "", nil)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		discountRepo.On("FindActiveForProduct", ctx, product.ID, mock.AnythingOfType("time.Time")).
			Return(nil, shared.ErrNotFound)

		resp, err := svc.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Nil(t, resp.DiscountPercent)
		assert.Nil(t, resp.DiscountedPrice)
	})

	t.Run("not found", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()

		id := uuid.New()
		productRepo.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := svc.GetByID(ctx, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	svc, productRepo, _, discountRepo := newProductService()

	p1, _ := catalog.NewProduct("iPhone 16", "", decimal.NewFromInt(89990), "", nil)
	p2, _ := catalog.NewProduct("AirPods Pro", "", decimal.NewFromInt(24990), "", nil)
	active := true

	productRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters["is_active"] == true && f.Search == "pro"
	})).Return([]catalog.Product{*p1, *p2}, nil)
	productRepo.On("Count", ctx, mock.Anything).Return(int64(2), nil)
	discountRepo.On("FindActiveForProduct", ctx, mock.Anything, mock.Anything).
		Return(nil, shared.ErrNotFound)

	responses, total, err := svc.List(ctx, ProductListFilter{Search: "pro", IsActive: &active})
	require.NoError(t, err)
	assert.Len(t, responses, 2)
	assert.Equal(t, int64(2), total)
}

func TestProductService_ActivateDeactivate(t *testing.T) {
	ctx := context.Background()
	svc, productRepo, _, _ := newProductService()

	product, _ := catalog.NewProduct("iPhone 16", "", decimal.NewFromInt(89990), "", nil)
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	productRepo.On("Save", ctx, product).Return(nil)

	resp, err := svc.Deactivate(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	resp, err = svc.Activate(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("delete propagates repository conflict", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()

		product, _ := catalog.NewProduct("iPhone 16", "", decimal.NewFromInt(89990), "", nil)
		conflict := shared.NewDomainError("CONFLICT", "Product is referenced by existing orders")
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Delete", ctx, product.ID).Return(conflict)

		err := svc.Delete(ctx, product.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
	})

	t.Run("delete unreferenced product", func(t *testing.T) {
		svc, productRepo, _, _ := newProductService()

		product, _ := catalog.NewProduct("iPhone 16", "", decimal.NewFromInt(89990), "", nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("Delete", ctx, product.ID).Return(nil)

		assert.NoError(t, svc.Delete(ctx, product.ID))
	})
}
