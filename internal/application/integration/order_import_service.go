package integration

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopbridge/backend/internal/domain/integration"

	"go.uber.org/zap"
)

// OrderImportService pulls pending orders from the platform and schedules one
// creation job per order. The identity key collapses duplicate deliveries of
// the same order into a single pending job.
type OrderImportService struct {
	factory *OrderFactory
	jobs    JobEnqueuer
	logger  *zap.Logger
}

// NewOrderImportService creates a new OrderImportService
func NewOrderImportService(factory *OrderFactory, jobs JobEnqueuer, logger *zap.Logger) *OrderImportService {
	return &OrderImportService{
		factory: factory,
		jobs:    jobs,
		logger:  logger,
	}
}

// PullOrders fetches receivable orders and schedules their creation.
func (s *OrderImportService) PullOrders(ctx context.Context, integ *integration.Integration, adapter integration.Adapter) (int, error) {
	if !integ.FeatureEnabled(integration.FeatureOrderImport) {
		return 0, nil
	}

	envelopes, err := adapter.ReceiveOrders(ctx)
	if err != nil {
		return 0, err
	}
	for _, envelope := range envelopes {
		if err := s.ScheduleOrder(ctx, integ, envelope); err != nil {
			return 0, err
		}
	}
	return len(envelopes), nil
}

// ScheduleOrder enqueues the creation of one received order. Used both by the
// pull loop and by the webhook boundary after verification.
func (s *OrderImportService) ScheduleOrder(ctx context.Context, integ *integration.Integration, envelope integration.OrderEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return s.jobs.Enqueue(ctx, JobRequest{
		Type:          JobTypeCreateOrder,
		IdentityKey:   fmt.Sprintf("order:%s:%s", integ.ID, envelope.Code),
		IntegrationID: integ.ID,
		TenantID:      integ.TenantID,
		Payload:       json.RawMessage(payload),
	})
}

// CreateOrder runs the scheduled creation of one order envelope.
func (s *OrderImportService) CreateOrder(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, envelope integration.OrderEnvelope) error {
	order, err := s.factory.CreateFromEnvelope(ctx, integ, adapter, envelope)
	if err != nil {
		return err
	}
	s.logger.Debug("order creation job done",
		zap.String("integration_id", integ.ID.String()),
		zap.String("order_id", order.ID.String()))
	return nil
}
