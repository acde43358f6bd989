package basket

import (
	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Basket holds a user's pending purchases. Each user has at most one,
// created lazily on first access.
type Basket struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []BasketItem `gorm:"foreignKey:BasketID;constraint:OnDelete:CASCADE"`
}

// BasketItem is one product line in a basket, unique per product
type BasketItem struct {
	shared.BaseEntity
	BasketID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_basket_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_basket_product,priority:2"`
	Quantity  int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Basket) TableName() string {
	return "baskets"
}

// TableName returns the table name for GORM
func (BasketItem) TableName() string {
	return "basket_items"
}

// NewBasket creates an empty basket for a user
func NewBasket(userID uuid.UUID) (*Basket, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "User is required")
	}
	return &Basket{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]BasketItem, 0),
	}, nil
}

// AddItem adds a product to the basket. Adding a product that is already
// present merges quantities instead of creating a second line.
func (b *Basket) AddItem(productID uuid.UUID, quantity int) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Product is required")
	}
	if quantity < 1 {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be at least 1")
	}

	for i := range b.Items {
		if b.Items[i].ProductID == productID {
			b.Items[i].Quantity += quantity
			b.Items[i].Touch()
			b.touch()
			return nil
		}
	}

	b.Items = append(b.Items, BasketItem{
		BaseEntity: shared.NewBaseEntity(),
		BasketID:   b.ID,
		ProductID:  productID,
		Quantity:   quantity,
	})
	b.touch()
	return nil
}

// UpdateItem sets an item's quantity. A quantity of zero or less removes
// the line entirely.
func (b *Basket) UpdateItem(itemID uuid.UUID, quantity int) error {
	for i := range b.Items {
		if b.Items[i].ID == itemID {
			if quantity <= 0 {
				b.Items = append(b.Items[:i], b.Items[i+1:]...)
			} else {
				b.Items[i].Quantity = quantity
				b.Items[i].Touch()
			}
			b.touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveItem deletes an item from the basket
func (b *Basket) RemoveItem(itemID uuid.UUID) error {
	return b.UpdateItem(itemID, 0)
}

// Clear removes all items
func (b *Basket) Clear() {
	if len(b.Items) == 0 {
		return
	}
	b.Items = make([]BasketItem, 0)
	b.touch()
}

// IsEmpty reports whether the basket has no items
func (b *Basket) IsEmpty() bool {
	return len(b.Items) == 0
}

// Item returns the item with the given ID, or nil
func (b *Basket) Item(itemID uuid.UUID) *BasketItem {
	for i := range b.Items {
		if b.Items[i].ID == itemID {
			return &b.Items[i]
		}
	}
	return nil
}

// Total computes the basket total from current product prices.
// Lines whose product is missing from the price map contribute nothing.
func (b *Basket) Total(prices map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		price, ok := prices[item.ProductID]
		if !ok {
			continue
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (b *Basket) touch() {
	b.Touch()
	b.IncrementVersion()
}
