package integration

import (
	"context"

	"github.com/shopbridge/backend/internal/domain/integration"
	"github.com/shopbridge/backend/internal/domain/trade"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionalExportService pushes per-order events back to the platform:
// shipment tracking and order status changes.
type TransactionalExportService struct {
	orderRepo    trade.ChannelOrderRepository
	deliveryRepo trade.DeliveryRepository
	mappings     *MappingService
	logger       *zap.Logger
}

// NewTransactionalExportService creates a new TransactionalExportService
func NewTransactionalExportService(
	orderRepo trade.ChannelOrderRepository,
	deliveryRepo trade.DeliveryRepository,
	mappings *MappingService,
	logger *zap.Logger,
) *TransactionalExportService {
	return &TransactionalExportService{
		orderRepo:    orderRepo,
		deliveryRepo: deliveryRepo,
		mappings:     mappings,
		logger:       logger,
	}
}

// ExportTracking sends the tracking numbers of the order's validated
// deliveries to the platform.
func (s *TransactionalExportService) ExportTracking(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, orderID uuid.UUID) error {
	if !integ.FeatureEnabled(integration.FeatureTrackingExport) {
		return nil
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	deliveries, err := s.deliveryRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return err
	}

	exported := 0
	for i := range deliveries {
		if !deliveries[i].IsDone() || deliveries[i].TrackingNumber == "" {
			continue
		}
		carrierCode := ""
		if deliveries[i].CarrierID != nil {
			if code, err := s.mappings.ToExternalCode(ctx, integ, integration.KindCarrier, *deliveries[i].CarrierID); err == nil {
				carrierCode = code
			}
		}
		tracking := integration.TrackingData{
			TrackingNumber: deliveries[i].TrackingNumber,
			CarrierCode:    carrierCode,
		}
		for _, line := range order.Lines {
			if line.LineType == trade.LineTypeProduct && line.ExternalCode != "" {
				tracking.LineCodes = append(tracking.LineCodes, line.ExternalCode)
			}
		}
		if err := adapter.ExportTracking(ctx, order.ExternalCode, tracking); err != nil {
			return err
		}
		exported++
	}

	s.logger.Info("exported tracking",
		zap.String("integration_id", integ.ID.String()),
		zap.String("order_code", order.ExternalCode),
		zap.Int("deliveries", exported))
	return nil
}

// ExportOrderStatus pushes an order status change to the platform. The status
// is the external sub-status code, translated from the internal sub-status.
func (s *TransactionalExportService) ExportOrderStatus(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, orderID, subStatusID uuid.UUID) error {
	if !integ.FeatureEnabled(integration.FeatureOrderStatusExport) {
		return nil
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	status, err := s.mappings.ToExternalCode(ctx, integ, integration.KindSubStatus, subStatusID)
	if err != nil {
		return err
	}

	if err := adapter.ExportOrderStatus(ctx, order.ExternalCode, status); err != nil {
		return err
	}

	s.logger.Info("exported order status",
		zap.String("integration_id", integ.ID.String()),
		zap.String("order_code", order.ExternalCode),
		zap.String("status", status))
	return nil
}
