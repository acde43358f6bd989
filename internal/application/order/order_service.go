package order

import (
	"context"

	"github.com/appleshop/backend/internal/domain/order"
	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentGenerator produces the confirmation document for an order
type DocumentGenerator interface {
	Generate(ctx context.Context, orderID uuid.UUID) (string, error)
}

// OrderService handles order retrieval and lifecycle transitions
type OrderService struct {
	orderRepo order.Repository
	documents DocumentGenerator
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService. The document generator
// may be nil when confirmation documents are disabled.
func NewOrderService(orderRepo order.Repository, documents DocumentGenerator, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo: orderRepo,
		documents: documents,
		logger:    logger,
	}
}

// GetByID retrieves an order. Regular users only see their own orders.
func (s *OrderService) GetByID(ctx context.Context, requesterID uuid.UUID, isAdmin bool, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != requesterID {
		return nil, shared.ErrForbidden
	}

	return ToOrderResponse(o), nil
}

// ListForUser retrieves the requesting user's orders
func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	orders, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return toResponses(orders), total, nil
}

// List retrieves orders across all users. Admin only; the handler
// enforces the role.
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := toDomainFilter(filter)
	if filter.UserID != nil {
		domainFilter.Filters["user_id"] = *filter.UserID
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return toResponses(orders), total, nil
}

// UpdateStatus moves an order through its lifecycle. Completing an
// order also kicks off confirmation document generation; a failure
// there does not fail the transition.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := order.Status(req.Status)
	if err := o.TransitionTo(target); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	if target == order.StatusCompleted && s.documents != nil {
		if _, err := s.documents.Generate(ctx, o.ID); err != nil {
			s.logger.Warn("Confirmation document generation failed",
				zap.String("order_id", o.ID.String()),
				zap.Error(err))
		} else {
			// Reload to pick up the attached document key
			if refreshed, err := s.orderRepo.FindByID(ctx, o.ID); err == nil {
				o = refreshed
			}
		}
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", o.ID.String()),
		zap.String("status", string(target)))

	return ToOrderResponse(o), nil
}

// Cancel lets a user cancel their own order while it is still new
func (s *OrderService) Cancel(ctx context.Context, requesterID uuid.UUID, isAdmin bool, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && o.UserID != requesterID {
		return nil, shared.ErrForbidden
	}
	if !isAdmin && o.Status != order.StatusNew {
		return nil, shared.NewDomainError("INVALID_STATE",
			"Only new orders can be canceled by their owner")
	}

	if err := o.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	return ToOrderResponse(o), nil
}

func toDomainFilter(filter OrderListFilter) shared.Filter {
	domainFilter := shared.Filter{
		Filters:  make(map[string]interface{}),
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		domainFilter.Page = filter.Page
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.CreatedAfter != nil {
		domainFilter.Filters["created_after"] = *filter.CreatedAfter
	}
	if filter.CreatedBefore != nil {
		domainFilter.Filters["created_before"] = *filter.CreatedBefore
	}
	return domainFilter
}

func toResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *ToOrderResponse(&orders[i])
	}
	return responses
}
