package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/appleshop/backend/internal/domain/catalog"
	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DiscountService handles discount-related business operations
type DiscountService struct {
	discountRepo catalog.DiscountRepository
	productRepo  catalog.ProductRepository
}

// NewDiscountService creates a new DiscountService
func NewDiscountService(
	discountRepo catalog.DiscountRepository,
	productRepo catalog.ProductRepository,
) *DiscountService {
	return &DiscountService{
		discountRepo: discountRepo,
		productRepo:  productRepo,
	}
}

// Create creates a new discount for an existing product
func (s *DiscountService) Create(ctx context.Context, req CreateDiscountRequest) (*DiscountResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Product not found")
		}
		return nil, err
	}

	discount, err := catalog.NewDiscount(req.ProductID, req.Percent, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if err := s.discountRepo.Save(ctx, discount); err != nil {
		return nil, err
	}

	return ToDiscountResponse(discount, time.Now()), nil
}

// GetByID retrieves a discount by ID
func (s *DiscountService) GetByID(ctx context.Context, id uuid.UUID) (*DiscountResponse, error) {
	discount, err := s.discountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return ToDiscountResponse(discount, time.Now()), nil
}

// List retrieves discounts with pagination
func (s *DiscountService) List(ctx context.Context, filter DiscountListFilter) ([]DiscountResponse, int64, error) {
	domainFilter := shared.Filter{
		Filters:  make(map[string]interface{}),
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "start_date"
		domainFilter.OrderDir = "asc"
	}

	discounts, err := s.discountRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.discountRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	now := time.Now()
	responses := make([]DiscountResponse, len(discounts))
	for i := range discounts {
		responses[i] = *ToDiscountResponse(&discounts[i], now)
	}

	return responses, total, nil
}

// ListByProduct retrieves all discounts of a product ordered by window start
func (s *DiscountService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]DiscountResponse, error) {
	discounts, err := s.discountRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	responses := make([]DiscountResponse, len(discounts))
	for i := range discounts {
		responses[i] = *ToDiscountResponse(&discounts[i], now)
	}

	return responses, nil
}

// ActiveForProduct returns the discount applicable to the product on the
// given date. Missing discount surfaces as not-found.
func (s *DiscountService) ActiveForProduct(ctx context.Context, productID uuid.UUID, date time.Time) (*DiscountResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	discount, err := s.discountRepo.FindActiveForProduct(ctx, productID, date)
	if err != nil {
		return nil, err
	}

	return ToDiscountResponse(discount, date), nil
}

// Update changes a discount's percent and validity window
func (s *DiscountService) Update(ctx context.Context, id uuid.UUID, req UpdateDiscountRequest) (*DiscountResponse, error) {
	discount, err := s.discountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := discount.Update(req.Percent, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	if err := s.discountRepo.Save(ctx, discount); err != nil {
		return nil, err
	}

	return ToDiscountResponse(discount, time.Now()), nil
}

// Delete removes a discount
func (s *DiscountService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.discountRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.discountRepo.Delete(ctx, id)
}
