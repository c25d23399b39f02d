package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sangkips/storebooks/internal/application/service"
	"github.com/sangkips/storebooks/internal/config"
	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/internal/domain/repository"
	"github.com/sangkips/storebooks/internal/domain/report"
	"github.com/sangkips/storebooks/pkg/email"
	"github.com/sangkips/storebooks/pkg/utils"
)

// DigestSender delivers the rendered digest mail
type DigestSender interface {
	Send(to []string, subject, htmlBody string) error
}

type digestMail struct {
	sender   DigestSender
	to       []string
	shopName string
	currency string
}

// Scheduler runs the daily digest and the idempotency key cleanup.
type Scheduler struct {
	cron         *cron.Cron
	dashboardSvc *service.DashboardService
	idempotency  repository.IdempotencyRepository
	cfg          config.SchedulerConfig
	mail         *digestMail
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. idempotency may be nil, in which case
// no cleanup job is registered.
func NewScheduler(cfg config.SchedulerConfig, dashboardSvc *service.DashboardService, idempotency repository.IdempotencyRepository, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:         cron.New(),
		dashboardSvc: dashboardSvc,
		idempotency:  idempotency,
		cfg:          cfg,
		logger:       logger,
	}
}

// MailDigest also sends each digest to recipients, with amounts in currency
func (s *Scheduler) MailDigest(sender DigestSender, recipients []string, shopName, currency string) {
	s.mail = &digestMail{sender: sender, to: recipients, shopName: shopName, currency: currency}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("digest", s.cfg.DigestSpec),
		zap.String("cleanup", s.cfg.CleanupSpec),
	)

	if _, err := s.cron.AddFunc(s.cfg.DigestSpec, s.logDigest); err != nil {
		return fmt.Errorf("schedule digest %q: %w", s.cfg.DigestSpec, err)
	}
	if s.idempotency != nil {
		if _, err := s.cron.AddFunc(s.cfg.CleanupSpec, s.cleanupIdempotencyKeys); err != nil {
			return fmt.Errorf("schedule cleanup %q: %w", s.cfg.CleanupSpec, err)
		}
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) logDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dashboard := s.dashboardSvc.GetDashboard(ctx)
	s.logger.Info("daily digest",
		zap.Stringer("total_sales", dashboard.TotalSales),
		zap.Stringer("sales_profit", dashboard.SalesProfit),
		zap.Stringer("total_expenses", dashboard.TotalExpenses),
		zap.Stringer("net_profit", dashboard.NetProfit),
		zap.Stringer("inventory_value", dashboard.InventoryValue),
		zap.Int("products", dashboard.ProductCount),
		zap.Int("low_stock", len(dashboard.LowStock)),
	)
	for _, p := range dashboard.LowStock {
		s.logger.Warn("low stock", zap.String("product_id", p.ID), zap.String("name", p.Name), zap.Int("quantity", p.Quantity))
	}

	if s.mail != nil {
		s.mailDigest(dashboard)
	}
}

func (s *Scheduler) mailDigest(d *report.Dashboard) {
	today := entity.Today().String()
	cur := s.mail.currency
	digest := email.Digest{
		ShopName: s.mail.shopName,
		Date:     today,
		Figures: []email.DigestRow{
			{Label: "Total sales", Value: utils.FormatMoney(d.TotalSales, cur)},
			{Label: "Sales profit", Value: utils.FormatMoney(d.SalesProfit, cur)},
			{Label: "Expenses", Value: utils.FormatMoney(d.TotalExpenses, cur)},
			{Label: "Net profit", Value: utils.FormatMoney(d.NetProfit, cur)},
			{Label: "Inventory value", Value: utils.FormatMoney(d.InventoryValue, cur)},
		},
	}
	for _, p := range d.LowStock {
		digest.LowStock = append(digest.LowStock, email.DigestRow{Label: p.Name, Value: fmt.Sprintf("%d left", p.Quantity)})
	}

	body, err := email.RenderDigest(digest)
	if err != nil {
		s.logger.Error("failed to render digest mail", zap.Error(err))
		return
	}
	subject := fmt.Sprintf("%s digest for %s", s.mail.shopName, today)
	if err := s.mail.sender.Send(s.mail.to, subject, body); err != nil {
		s.logger.Error("failed to send digest mail", zap.Error(err))
		return
	}
	s.logger.Info("digest mail sent", zap.Strings("to", s.mail.to))
}

func (s *Scheduler) cleanupIdempotencyKeys() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := s.idempotency.DeleteExpired(ctx)
	if err != nil {
		s.logger.Error("failed to delete expired idempotency keys", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("deleted expired idempotency keys", zap.Int64("count", n))
	}
}
