package order

import (
	"context"
	"time"

	"github.com/appleshop/backend/internal/domain/catalog"
	"github.com/appleshop/backend/internal/domain/order"
	"github.com/appleshop/backend/internal/domain/shared"
	"github.com/appleshop/backend/internal/infrastructure/printing"
	"github.com/appleshop/backend/internal/infrastructure/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DocumentService renders order confirmations to PDF and keeps them in
// object storage under a key recorded on the order.
type DocumentService struct {
	orderRepo   order.Repository
	productRepo catalog.ProductRepository
	renderer    printing.PDFRenderer
	store       storage.ObjectStorage
	downloadTTL time.Duration
	logger      *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	orderRepo order.Repository,
	productRepo catalog.ProductRepository,
	renderer printing.PDFRenderer,
	store storage.ObjectStorage,
	downloadTTL time.Duration,
	logger *zap.Logger,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if downloadTTL <= 0 {
		downloadTTL = 15 * time.Minute
	}
	return &DocumentService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		renderer:    renderer,
		store:       store,
		downloadTTL: downloadTTL,
		logger:      logger,
	}
}

// Generate renders the confirmation for a completed order, uploads it
// and records the storage key on the order. Generating again overwrites
// the stored document.
func (s *DocumentService) Generate(ctx context.Context, orderID uuid.UUID) (string, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if o.Status != order.StatusCompleted {
		return "", shared.NewDomainError("INVALID_STATE",
			"Confirmation documents are generated for completed orders only")
	}

	html, err := s.buildHTML(ctx, o)
	if err != nil {
		return "", err
	}

	result, err := s.renderer.Render(ctx, &printing.RenderRequest{
		HTML:  html,
		Title: "Order confirmation " + o.ID.String(),
	})
	if err != nil {
		return "", err
	}

	key := "orders/" + o.ID.String() + ".pdf"
	if err := s.store.Upload(ctx, key, result.PDFData, "application/pdf"); err != nil {
		return "", err
	}

	if err := o.AttachDocument(key); err != nil {
		return "", err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return "", err
	}

	s.logger.Info("Order confirmation stored",
		zap.String("order_id", o.ID.String()),
		zap.String("key", key),
		zap.Duration("render_duration", result.RenderDuration))

	return key, nil
}

// DownloadURL returns a short-lived link to the stored confirmation,
// generating the document first when none exists yet
func (s *DocumentService) DownloadURL(ctx context.Context, orderID uuid.UUID) (*DocumentURLResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	key := ""
	if o.HasDocument() {
		key = *o.DocumentKey
	} else {
		key, err = s.Generate(ctx, orderID)
		if err != nil {
			return nil, err
		}
	}

	url, expiresAt, err := s.store.GenerateDownloadURL(ctx, key, s.downloadTTL)
	if err != nil {
		return nil, err
	}

	return &DocumentURLResponse{URL: url, ExpiresAt: expiresAt}, nil
}

// buildHTML assembles the confirmation from the order snapshot. Line
// titles come from the catalog; deleted products fall back to their ID.
func (s *DocumentService) buildHTML(ctx context.Context, o *order.Order) (string, error) {
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return "", err
	}
	titles := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		titles[p.ID] = p.Title
	}

	data := &printing.ConfirmationData{
		OrderID:       o.ID.String(),
		CreatedAt:     o.CreatedAt,
		FullName:      o.FullName,
		Email:         o.Email,
		Phone:         o.Phone,
		Address:       o.Address,
		PaymentMethod: string(o.PaymentMethod),
		Comment:       o.Comment,
		Total:         o.TotalPrice,
	}
	for _, item := range o.Items {
		title, ok := titles[item.ProductID]
		if !ok {
			title = "Product " + item.ProductID.String()
		}
		data.Lines = append(data.Lines, printing.ConfirmationLine{
			Title:     title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}

	return printing.BuildConfirmationHTML(data)
}
