package catalog

import (
	"strings"
	"time"

	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultManufacturer is applied when no manufacturer is given
const DefaultManufacturer = "Apple"

// NewProductWindow is how long a product counts as newly added
const NewProductWindow = 3 * 24 * time.Hour

// Product is a sellable catalog item
type Product struct {
	shared.BaseAggregateRoot
	Title        string          `gorm:"type:varchar(255);not null;index"`
	Description  string          `gorm:"type:text"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Manufacturer string          `gorm:"type:varchar(100);not null;default:'Apple'"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	IsActive     bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(title, description string, price decimal.Decimal, manufacturer string, categoryID *uuid.UUID) (*Product, error) {
	if err := validateProductTitle(title); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if manufacturer == "" {
		manufacturer = DefaultManufacturer
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             strings.TrimSpace(title),
		Description:       description,
		Price:             price,
		Manufacturer:      manufacturer,
		CategoryID:        categoryID,
		IsActive:          true,
	}, nil
}

// Update updates the product's descriptive fields and price
func (p *Product) Update(title, description string, price decimal.Decimal, manufacturer string, categoryID *uuid.UUID) error {
	if err := validateProductTitle(title); err != nil {
		return err
	}
	if err := validatePrice(price); err != nil {
		return err
	}
	if manufacturer == "" {
		manufacturer = DefaultManufacturer
	}

	p.Title = strings.TrimSpace(title)
	p.Description = description
	p.Price = price
	p.Manufacturer = manufacturer
	p.CategoryID = categoryID
	p.Touch()
	p.IncrementVersion()

	return nil
}

// ChangePrice sets a new price
func (p *Product) ChangePrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}

	p.Price = price
	p.Touch()
	p.IncrementVersion()

	return nil
}

// Activate makes the product available for purchase
func (p *Product) Activate() {
	if p.IsActive {
		return
	}
	p.IsActive = true
	p.Touch()
	p.IncrementVersion()
}

// Deactivate withdraws the product from sale
func (p *Product) Deactivate() {
	if !p.IsActive {
		return
	}
	p.IsActive = false
	p.Touch()
	p.IncrementVersion()
}

// IsNew reports whether the product was added within the new-product window
func (p *Product) IsNew(now time.Time) bool {
	return now.Sub(p.CreatedAt) <= NewProductWindow
}

// PriceWithDiscount applies a percent discount to the product price,
// rounded to two decimal places
func (p *Product) PriceWithDiscount(percent int) decimal.Decimal {
	if percent <= 0 {
		return p.Price
	}
	if percent >= 100 {
		return decimal.Zero
	}
	factor := decimal.NewFromInt(int64(100 - percent)).Div(decimal.NewFromInt(100))
	return p.Price.Mul(factor).Round(2)
}

func validateProductTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product title is required")
	}
	if len(title) > 255 {
		return shared.NewDomainError("INVALID_INPUT", "Product title cannot exceed 255 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Price cannot be negative")
	}
	return nil
}
