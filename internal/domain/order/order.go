package order

import (
	"strings"
	"time"

	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the order lifecycle state
type Status string

const (
	StatusNew        Status = "new"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusProcessing, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// CanTransitionTo checks if a transition to the target status is allowed
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusNew:
		return target == StatusProcessing || target == StatusCompleted || target == StatusCanceled
	case StatusProcessing:
		return target == StatusCompleted || target == StatusCanceled
	default:
		return false
	}
}

// PaymentMethod is how the customer intends to pay
type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

// IsValid checks if the payment method is a known value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCard, PaymentCash, PaymentOnline:
		return true
	}
	return false
}

// Contact carries the customer details captured at checkout
type Contact struct {
	FullName      string
	Email         string
	Phone         string
	Address       string
	PaymentMethod PaymentMethod
	Comment       string
}

// Order is a placed order. TotalPrice is the basket total snapshotted at
// checkout and is the canonical amount; it never changes when product
// prices change later.
type Order struct {
	shared.BaseAggregateRoot
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status        Status          `gorm:"type:varchar(20);not null;default:'new';index"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FullName      string          `gorm:"type:varchar(255);not null"`
	Email         string          `gorm:"type:varchar(255);not null"`
	Phone         string          `gorm:"type:varchar(50);not null"`
	Address       string          `gorm:"type:text;not null"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null"`
	Comment       string          `gorm:"type:text"`
	DocumentKey   *string         `gorm:"type:varchar(512)"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is one line of an order. Quantity and UnitPrice are copied
// from the basket at checkout and immutable afterwards.
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Line is an input line for order creation
type Line struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// NewOrder creates an order in status "new" from checkout data
func NewOrder(userID uuid.UUID, contact Contact, total decimal.Decimal, lines []Line) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "User is required")
	}
	if err := validateContact(contact); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order requires at least one item")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order total cannot be negative")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            StatusNew,
		TotalPrice:        total,
		FullName:          strings.TrimSpace(contact.FullName),
		Email:             strings.TrimSpace(contact.Email),
		Phone:             strings.TrimSpace(contact.Phone),
		Address:           strings.TrimSpace(contact.Address),
		PaymentMethod:     contact.PaymentMethod,
		Comment:           contact.Comment,
		Items:             make([]OrderItem, 0, len(lines)),
	}

	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Item quantity must be at least 1")
		}
		if line.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Item unit price cannot be negative")
		}
		o.Items = append(o.Items, OrderItem{
			BaseEntity: shared.NewBaseEntity(),
			OrderID:    o.ID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		})
	}

	return o, nil
}

// TransitionTo moves the order to a new status if the lifecycle allows it
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown order status: "+string(target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition order from "+string(o.Status)+" to "+string(target))
	}

	o.Status = target
	o.Touch()
	o.IncrementVersion()
	return nil
}

// MarkProcessing moves the order into processing
func (o *Order) MarkProcessing() error {
	return o.TransitionTo(StatusProcessing)
}

// Complete finishes the order
func (o *Order) Complete() error {
	return o.TransitionTo(StatusCompleted)
}

// Cancel cancels the order
func (o *Order) Cancel() error {
	return o.TransitionTo(StatusCanceled)
}

// AttachDocument records the storage key of the generated confirmation
func (o *Order) AttachDocument(key string) error {
	if strings.TrimSpace(key) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Document key is required")
	}
	o.DocumentKey = &key
	o.Touch()
	o.IncrementVersion()
	return nil
}

// HasDocument reports whether a confirmation document has been stored
func (o *Order) HasDocument() bool {
	return o.DocumentKey != nil && *o.DocumentKey != ""
}

// CalculatedTotal recomputes the total from current product prices.
// This is a display-only estimate; TotalPrice stays canonical.
func (o *Order) CalculatedTotal(prices map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		price, ok := prices[item.ProductID]
		if !ok {
			price = item.UnitPrice
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// IsStale reports whether an unconfirmed order has sat in "new" longer
// than the given age
func (o *Order) IsStale(now time.Time, maxAge time.Duration) bool {
	return o.Status == StatusNew && now.Sub(o.CreatedAt) > maxAge
}

func validateContact(c Contact) error {
	if strings.TrimSpace(c.FullName) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Full name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Email is required")
	}
	if strings.TrimSpace(c.Phone) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Phone is required")
	}
	if strings.TrimSpace(c.Address) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Shipping address is required")
	}
	if !c.PaymentMethod.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown payment method: "+string(c.PaymentMethod))
	}
	return nil
}
