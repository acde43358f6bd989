package order

import (
	"context"
	"errors"
	"time"

	"github.com/appleshop/backend/internal/domain/basket"
	"github.com/appleshop/backend/internal/domain/catalog"
	"github.com/appleshop/backend/internal/domain/order"
	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/appleshop/backend/internal/infrastructure/lock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CheckoutService turns a basket into an order. A per-user lock keeps
// concurrent checkouts from creating duplicate orders.
type CheckoutService struct {
	basketRepo   basket.Repository
	productRepo  catalog.ProductRepository
	orderRepo    order.Repository
	checkoutLock lock.CheckoutLock
	minOrderSum  decimal.Decimal
	lockTTL      time.Duration
	logger       *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	basketRepo basket.Repository,
	productRepo catalog.ProductRepository,
	orderRepo order.Repository,
	checkoutLock lock.CheckoutLock,
	minOrderSum decimal.Decimal,
	lockTTL time.Duration,
	logger *zap.Logger,
) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		basketRepo:   basketRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		checkoutLock: checkoutLock,
		minOrderSum:  minOrderSum,
		lockTTL:      lockTTL,
		logger:       logger,
	}
}

// Checkout places an order from the user's basket. Catalog prices are
// resolved at this moment and snapshotted into the order; the order is
// created and the basket emptied in a single transaction.
func (s *CheckoutService) Checkout(ctx context.Context, userID uuid.UUID, req CheckoutRequest) (*OrderResponse, error) {
	acquired, err := s.checkoutLock.Acquire(ctx, userID.String(), s.lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, shared.NewDomainError("CONFLICT", "Checkout is already in progress")
	}
	defer func() {
		if err := s.checkoutLock.Release(ctx, userID.String()); err != nil {
			s.logger.Warn("Failed to release checkout lock",
				zap.String("user_id", userID.String()),
				zap.Error(err))
		}
	}()

	b, err := s.basketRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrEmptyBasket
		}
		return nil, err
	}
	if b.IsEmpty() {
		return nil, shared.ErrEmptyBasket
	}

	lines, total, err := s.priceBasket(ctx, b)
	if err != nil {
		return nil, err
	}

	if total.LessThan(s.minOrderSum) {
		return nil, shared.ErrBelowMinimumOrder
	}

	contact := order.Contact{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		PaymentMethod: order.PaymentMethod(req.PaymentMethod),
		Comment:       req.Comment,
	}

	o, err := order.NewOrder(userID, contact, total, lines)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Place(ctx, o, b.ID); err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total", total.StringFixed(2)))

	return ToOrderResponse(o), nil
}

// priceBasket resolves each line against the catalog at current prices.
// Discounts are informational and never change what is charged. All
// products must still exist and be active.
func (s *CheckoutService) priceBasket(ctx context.Context, b *basket.Basket) ([]order.Line, decimal.Decimal, error) {
	ids := make([]uuid.UUID, 0, len(b.Items))
	for _, item := range b.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]order.Line, 0, len(b.Items))
	total := decimal.Zero

	for _, item := range b.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, decimal.Zero, shared.NewDomainError("INVALID_STATE",
				"A product in the basket no longer exists")
		}
		if !product.IsActive {
			return nil, decimal.Zero, shared.NewDomainError("INVALID_STATE",
				"Product is no longer available: "+product.Title)
		}

		lines = append(lines, order.Line{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return lines, total, nil
}
