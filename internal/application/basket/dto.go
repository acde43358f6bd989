package basket

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest represents a request to put a product into the basket
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest represents a request to change a line's quantity.
// A quantity of zero removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// BasketItemResponse represents one basket line priced at current catalog
// rates. DiscountPercent and DiscountedPrice are informational; LineTotal
// is always quantity times the undiscounted unit price.
type BasketItemResponse struct {
	ID              uuid.UUID        `json:"id"`
	ProductID       uuid.UUID        `json:"product_id"`
	Title           string           `json:"title"`
	Quantity        int              `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	DiscountPercent *int             `json:"discount_percent,omitempty"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	LineTotal       decimal.Decimal  `json:"line_total"`
}

// BasketResponse represents the basket with live prices
type BasketResponse struct {
	ID    uuid.UUID            `json:"id"`
	Items []BasketItemResponse `json:"items"`
	Total decimal.Decimal      `json:"total"`
}
