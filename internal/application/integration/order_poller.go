package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/shopbridge/backend/internal/domain/integration"

	"go.uber.org/zap"
)

// OrderPoller periodically schedules order pulls for every active
// integration with order import enabled. Polling complements webhooks:
// platforms drop deliveries, and orders placed while the connection was
// down are never redelivered.
type OrderPoller struct {
	repo     integration.Repository
	jobs     JobEnqueuer
	interval time.Duration
	logger   *zap.Logger
}

// NewOrderPoller creates a new OrderPoller
func NewOrderPoller(repo integration.Repository, jobs JobEnqueuer, interval time.Duration, logger *zap.Logger) *OrderPoller {
	return &OrderPoller{
		repo:     repo,
		jobs:     jobs,
		interval: interval,
		logger:   logger,
	}
}

// Run schedules pulls until the context is cancelled.
func (p *OrderPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.RunOnce(ctx); err != nil {
				p.logger.Error("order poll scheduling failed", zap.Error(err))
			}
		}
	}
}

// RunOnce enqueues one pull job per eligible integration. The identity key
// collapses overlapping polls into a single pending job.
func (p *OrderPoller) RunOnce(ctx context.Context) error {
	integrations, err := p.repo.FindActive(ctx)
	if err != nil {
		return err
	}
	for i := range integrations {
		integ := &integrations[i]
		if !integ.FeatureEnabled(integration.FeatureOrderImport) {
			continue
		}
		if err := p.jobs.Enqueue(ctx, JobRequest{
			Type:          JobTypeImportOrders,
			IdentityKey:   fmt.Sprintf("import_orders:%s", integ.ID),
			IntegrationID: integ.ID,
			TenantID:      integ.TenantID,
		}); err != nil {
			return err
		}
	}
	return nil
}
