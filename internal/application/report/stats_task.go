package report

import (
	"context"
	"fmt"

	"github.com/appleshop/backend/internal/domain/identity"
	"github.com/appleshop/backend/internal/infrastructure/notify"
	"go.uber.org/zap"
)

// StatsReportTask mails the shop statistics to all active admins.
// Runs on the maintenance scheduler, typically weekly.
type StatsReportTask struct {
	dashboard *DashboardService
	userRepo  identity.UserRepository
	mailer    notify.Mailer
	logger    *zap.Logger
}

// NewStatsReportTask creates the stats report task
func NewStatsReportTask(
	dashboard *DashboardService,
	userRepo identity.UserRepository,
	mailer notify.Mailer,
	logger *zap.Logger,
) *StatsReportTask {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsReportTask{
		dashboard: dashboard,
		userRepo:  userRepo,
		mailer:    mailer,
		logger:    logger,
	}
}

// Name identifies the task in logs
func (t *StatsReportTask) Name() string { return "stats-report" }

// Run computes the stats and mails them. Without admin recipients the
// run is skipped.
func (t *StatsReportTask) Run(ctx context.Context) error {
	admins, err := t.userRepo.FindAdmins(ctx)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		t.logger.Warn("No admin recipients for stats report")
		return nil
	}

	stats, err := t.dashboard.Stats(ctx)
	if err != nil {
		return err
	}

	recipients := make([]string, 0, len(admins))
	for _, admin := range admins {
		recipients = append(recipients, admin.Email)
	}

	body := fmt.Sprintf(
		"Shop statistics as of %s\n\nRegistered users: %d\nProducts in catalog: %d\nOrders placed: %d\nRevenue (completed orders): %s\n",
		stats.GeneratedAt.Format("2006-01-02 15:04"),
		stats.Users,
		stats.Products,
		stats.Orders,
		stats.Revenue.StringFixed(2),
	)

	msg := &notify.Message{
		To:      recipients,
		Subject: "Shop statistics report",
		Body:    body,
	}
	if err := t.mailer.Send(ctx, msg); err != nil {
		return err
	}

	t.logger.Info("Stats report sent", zap.Int("recipients", len(recipients)))
	return nil
}
