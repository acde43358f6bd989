package basket

import (
	"context"
	"errors"
	"time"

	"github.com/appleshop/backend/internal/domain/basket"
	"github.com/appleshop/backend/internal/domain/catalog"
	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service handles basket operations. A user's basket is created lazily
// the first time a product is added.
type Service struct {
	basketRepo   basket.Repository
	productRepo  catalog.ProductRepository
	discountRepo catalog.DiscountRepository
}

// NewService creates a new basket Service
func NewService(
	basketRepo basket.Repository,
	productRepo catalog.ProductRepository,
	discountRepo catalog.DiscountRepository,
) *Service {
	return &Service{
		basketRepo:   basketRepo,
		productRepo:  productRepo,
		discountRepo: discountRepo,
	}
}

// Get returns the user's basket priced at current rates. Users without
// a basket yet see an empty one; nothing is persisted.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*BasketResponse, error) {
	b, err := s.basketRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &BasketResponse{Items: []BasketItemResponse{}, Total: decimal.Zero}, nil
		}
		return nil, err
	}

	return s.toResponse(ctx, b)
}

// AddItem puts a product into the basket, merging quantities when the
// product is already present
func (s *Service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*BasketResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Product not found")
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Product is not available for purchase")
	}

	b, err := s.basketRepo.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		b, err = basket.NewBasket(userID)
		if err != nil {
			return nil, err
		}
	}

	if err := b.AddItem(req.ProductID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.basketRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, b)
}

// UpdateItem sets a line's quantity; zero removes the line
func (s *Service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*BasketResponse, error) {
	b, err := s.basketRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := b.UpdateItem(itemID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.basketRepo.Save(ctx, b); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, b)
}

// RemoveItem deletes a line from the basket
func (s *Service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*BasketResponse, error) {
	return s.UpdateItem(ctx, userID, itemID, UpdateItemRequest{Quantity: 0})
}

// Clear empties the basket. Clearing a basket that does not exist is a no-op.
func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	b, err := s.basketRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	b.Clear()
	return s.basketRepo.Save(ctx, b)
}

// toResponse prices the basket at current catalog prices. Active
// discounts are surfaced on the lines but do not change the totals.
// Lines whose product has disappeared are skipped.
func (s *Service) toResponse(ctx context.Context, b *basket.Basket) (*BasketResponse, error) {
	ids := make([]uuid.UUID, 0, len(b.Items))
	for _, item := range b.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	now := time.Now()
	resp := &BasketResponse{
		ID:    b.ID,
		Items: make([]BasketItemResponse, 0, len(b.Items)),
		Total: decimal.Zero,
	}

	for _, item := range b.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}

		var percent *int
		var discounted *decimal.Decimal
		discount, err := s.discountRepo.FindActiveForProduct(ctx, product.ID, now)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if discount != nil {
			p := discount.Percent
			percent = &p
			dp := product.PriceWithDiscount(p)
			discounted = &dp
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		resp.Items = append(resp.Items, BasketItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			Title:           product.Title,
			Quantity:        item.Quantity,
			UnitPrice:       product.Price,
			DiscountPercent: percent,
			DiscountedPrice: discounted,
			LineTotal:       lineTotal,
		})
		resp.Total = resp.Total.Add(lineTotal)
	}

	return resp, nil
}
