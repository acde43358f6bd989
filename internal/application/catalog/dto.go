package catalog

import (
	"time"

	"github.com/appleshop/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"max=2000"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// CategoryListFilter represents filter options for category list
type CategoryListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Version:     c.Version,
	}
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Title        string          `json:"title" binding:"required,min=1,max=255"`
	Description  string          `json:"description" binding:"max=5000"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Manufacturer string          `json:"manufacturer" binding:"max=100"`
	CategoryID   *uuid.UUID      `json:"category_id"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Title        string          `json:"title" binding:"required,min=1,max=255"`
	Description  string          `json:"description" binding:"max=5000"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	Manufacturer string          `json:"manufacturer" binding:"max=100"`
	CategoryID   *uuid.UUID      `json:"category_id"`
}

// ProductResponse represents a product in API responses. DiscountPercent
// and DiscountedPrice are set only when a discount is active today.
type ProductResponse struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Price           decimal.Decimal  `json:"price"`
	Manufacturer    string           `json:"manufacturer"`
	CategoryID      *uuid.UUID       `json:"category_id"`
	IsActive        bool             `json:"is_active"`
	IsNew           bool             `json:"is_new"`
	DiscountPercent *int             `json:"discount_percent,omitempty"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Version         int              `json:"version"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search       string     `form:"search"`
	CategoryID   *uuid.UUID `form:"category_id"`
	Manufacturer string     `form:"manufacturer"`
	IsActive     *bool      `form:"is_active"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse.
// The discount may be nil when none is active.
func ToProductResponse(p *catalog.Product, discount *catalog.Discount, now time.Time) *ProductResponse {
	resp := &ProductResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		Manufacturer: p.Manufacturer,
		CategoryID:   p.CategoryID,
		IsActive:     p.IsActive,
		IsNew:        p.IsNew(now),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Version:      p.Version,
	}
	if discount != nil {
		percent := discount.Percent
		price := p.PriceWithDiscount(percent)
		resp.DiscountPercent = &percent
		resp.DiscountedPrice = &price
	}
	return resp
}

// CreateDiscountRequest represents a request to create a discount
type CreateDiscountRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Percent   int       `json:"percent" binding:"min=0,max=100"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// UpdateDiscountRequest represents a request to update a discount
type UpdateDiscountRequest struct {
	Percent   int       `json:"percent" binding:"min=0,max=100"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// DiscountResponse represents a discount in API responses
type DiscountResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Percent   int       `json:"percent"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DiscountListFilter represents filter options for discount list
type DiscountListFilter struct {
	ProductID *uuid.UUID `form:"product_id"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToDiscountResponse converts a domain Discount to DiscountResponse
func ToDiscountResponse(d *catalog.Discount, now time.Time) *DiscountResponse {
	return &DiscountResponse{
		ID:        d.ID,
		ProductID: d.ProductID,
		Percent:   d.Percent,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		Active:    d.ActiveOn(now),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

