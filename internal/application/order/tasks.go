package order

import (
	"context"
	"time"

	"github.com/appleshop/backend/internal/domain/order"
	"go.uber.org/zap"
)

// StaleOrderTask cancels orders that sat unconfirmed in "new" for too
// long. Runs on the maintenance scheduler.
type StaleOrderTask struct {
	orderRepo order.Repository
	maxAge    time.Duration
	batchSize int
	logger    *zap.Logger
}

// NewStaleOrderTask creates the stale order cleanup task
func NewStaleOrderTask(orderRepo order.Repository, maxAge time.Duration, batchSize int, logger *zap.Logger) *StaleOrderTask {
	if logger == nil {
		logger = zap.NewNop()
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &StaleOrderTask{
		orderRepo: orderRepo,
		maxAge:    maxAge,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Name identifies the task in logs
func (t *StaleOrderTask) Name() string { return "cancel-stale-orders" }

// Run cancels one batch of stale orders
func (t *StaleOrderTask) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-t.maxAge)
	stale, err := t.orderRepo.FindStale(ctx, cutoff, t.batchSize)
	if err != nil {
		return err
	}

	canceled := 0
	for i := range stale {
		o := &stale[i]
		if err := o.Cancel(); err != nil {
			t.logger.Warn("Skipping stale order",
				zap.String("order_id", o.ID.String()),
				zap.Error(err))
			continue
		}
		if err := t.orderRepo.Save(ctx, o); err != nil {
			return err
		}
		canceled++
	}

	if canceled > 0 {
		t.logger.Info("Canceled stale orders",
			zap.Int("count", canceled),
			zap.Time("cutoff", cutoff))
	}
	return nil
}

// DocumentBackfillTask generates confirmation documents for completed
// orders that are still missing one, e.g. after a failed render at
// completion time.
type DocumentBackfillTask struct {
	orderRepo order.Repository
	documents DocumentGenerator
	batchSize int
	logger    *zap.Logger
}

// NewDocumentBackfillTask creates the document backfill task
func NewDocumentBackfillTask(orderRepo order.Repository, documents DocumentGenerator, batchSize int, logger *zap.Logger) *DocumentBackfillTask {
	if logger == nil {
		logger = zap.NewNop()
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &DocumentBackfillTask{
		orderRepo: orderRepo,
		documents: documents,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Name identifies the task in logs
func (t *DocumentBackfillTask) Name() string { return "order-document-backfill" }

// Run generates documents for one batch of orders. A failing order is
// logged and left for the next run.
func (t *DocumentBackfillTask) Run(ctx context.Context) error {
	orders, err := t.orderRepo.FindCompletedWithoutDocument(ctx, t.batchSize)
	if err != nil {
		return err
	}

	for i := range orders {
		if _, err := t.documents.Generate(ctx, orders[i].ID); err != nil {
			t.logger.Warn("Document backfill failed for order",
				zap.String("order_id", orders[i].ID.String()),
				zap.Error(err))
		}
	}
	return nil
}
