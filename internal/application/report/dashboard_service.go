// Package report aggregates shop-wide statistics for the admin
// dashboard and the periodic report mail.
package report

import (
	"context"
	"time"

	"github.com/appleshop/backend/internal/domain/catalog"
	"github.com/appleshop/backend/internal/domain/identity"
	"github.com/appleshop/backend/internal/domain/order"
	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StatsResponse carries the shop-wide totals
type StatsResponse struct {
	Users       int64           `json:"users"`
	Products    int64           `json:"products"`
	Orders      int64           `json:"orders"`
	Revenue     decimal.Decimal `json:"revenue"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// DashboardService computes shop-wide statistics
type DashboardService struct {
	userRepo    identity.UserRepository
	productRepo catalog.ProductRepository
	orderRepo   order.Repository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	userRepo identity.UserRepository,
	productRepo catalog.ProductRepository,
	orderRepo order.Repository,
) *DashboardService {
	return &DashboardService{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Stats counts users, products and orders and sums completed order
// totals. Revenue uses the snapshot totals, so later price changes do
// not shift past numbers.
func (s *DashboardService) Stats(ctx context.Context) (*StatsResponse, error) {
	emptyFilter := shared.Filter{Filters: make(map[string]interface{})}

	users, err := s.userRepo.Count(ctx, emptyFilter)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.Count(ctx, emptyFilter)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.Count(ctx, emptyFilter)
	if err != nil {
		return nil, err
	}

	revenue, err := s.orderRepo.SumCompletedTotals(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		Users:       users,
		Products:    products,
		Orders:      orders,
		Revenue:     revenue,
		GeneratedAt: time.Now(),
	}, nil
}
