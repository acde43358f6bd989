package catalog

import (
	"sort"
	"time"

	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Discount is a percent reduction on a product, valid within a date window.
// Windows are inclusive on both ends and compared at day granularity.
type Discount struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Percent   int       `gorm:"not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
}

// TableName returns the table name for GORM
func (Discount) TableName() string {
	return "discounts"
}

// NewDiscount creates a new discount for a product
func NewDiscount(productID uuid.UUID, percent int, startDate, endDate time.Time) (*Discount, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product is required")
	}
	if percent < 0 || percent > 100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Discount percent must be between 0 and 100")
	}
	startDate = truncateToDay(startDate)
	endDate = truncateToDay(endDate)
	if endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Discount end date cannot be before start date")
	}

	return &Discount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Percent:           percent,
		StartDate:         startDate,
		EndDate:           endDate,
	}, nil
}

// Update changes the discount percent and window
func (d *Discount) Update(percent int, startDate, endDate time.Time) error {
	if percent < 0 || percent > 100 {
		return shared.NewDomainError("INVALID_INPUT", "Discount percent must be between 0 and 100")
	}
	startDate = truncateToDay(startDate)
	endDate = truncateToDay(endDate)
	if endDate.Before(startDate) {
		return shared.NewDomainError("INVALID_INPUT", "Discount end date cannot be before start date")
	}

	d.Percent = percent
	d.StartDate = startDate
	d.EndDate = endDate
	d.Touch()
	d.IncrementVersion()

	return nil
}

// ActiveOn reports whether the discount window contains the given date
func (d *Discount) ActiveOn(date time.Time) bool {
	day := truncateToDay(date)
	return !day.Before(truncateToDay(d.StartDate)) && !day.After(truncateToDay(d.EndDate))
}

// ResolveActive picks the discount applicable on the given date.
// When several windows overlap, the one with the earliest start date wins,
// with creation time as the tie-break, so the result is deterministic.
// Returns nil if no discount is active.
func ResolveActive(discounts []Discount, date time.Time) *Discount {
	active := make([]Discount, 0, len(discounts))
	for _, d := range discounts {
		if d.ActiveOn(date) {
			active = append(active, d)
		}
	}
	if len(active) == 0 {
		return nil
	}

	sort.SliceStable(active, func(i, j int) bool {
		if !active[i].StartDate.Equal(active[j].StartDate) {
			return active[i].StartDate.Before(active[j].StartDate)
		}
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})

	return &active[0]
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
