package integration

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopbridge/backend/internal/domain/integration"
	"github.com/shopbridge/backend/internal/domain/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JobRouter decodes queued job payloads and dispatches them to the owning
// service. Every handler re-loads the integration and rebuilds the adapter so
// jobs survive configuration changes between scheduling and execution.
type JobRouter struct {
	integrations *IntegrationService
	masterData   *MasterDataService
	products     *ProductImportService
	exports      *ProductExportService
	orders       *OrderImportService
	workflows    *WorkflowService
	events       *TransactionalExportService
	adapters     *integration.AdapterRegistry
	logger       *zap.Logger
}

// NewJobRouter creates a new JobRouter
func NewJobRouter(
	integrations *IntegrationService,
	masterData *MasterDataService,
	products *ProductImportService,
	exports *ProductExportService,
	orders *OrderImportService,
	workflows *WorkflowService,
	events *TransactionalExportService,
	adapters *integration.AdapterRegistry,
	logger *zap.Logger,
) *JobRouter {
	return &JobRouter{
		integrations: integrations,
		masterData:   masterData,
		products:     products,
		exports:      exports,
		orders:       orders,
		workflows:    workflows,
		events:       events,
		adapters:     adapters,
		logger:       logger,
	}
}

// Route executes one queued job.
func (r *JobRouter) Route(ctx context.Context, jobType JobType, integrationID uuid.UUID, payload json.RawMessage) error {
	integ, err := r.integrations.Get(ctx, integrationID)
	if err != nil {
		return err
	}
	adapter, err := r.adapters.Build(integ)
	if err != nil {
		return err
	}

	switch jobType {
	case JobTypeImportMasterData:
		return r.masterData.ImportAll(ctx, integ, adapter)

	case JobTypeImportProduct:
		var body struct {
			Codes []string `json:"codes"`
		}
		if err := json.Unmarshal(payload, &body); err != nil {
			return fmt.Errorf("decode product import payload: %w", err)
		}
		return r.products.ImportByCodes(ctx, integ, adapter, body.Codes)

	case JobTypeExportProduct, JobTypeExportInventory:
		var body struct {
			TemplateID uuid.UUID `json:"template_id"`
		}
		if err := json.Unmarshal(payload, &body); err != nil {
			return fmt.Errorf("decode product export payload: %w", err)
		}
		return r.exports.ExportTemplate(ctx, integ, adapter, body.TemplateID)

	case JobTypeImportOrders:
		_, err := r.orders.PullOrders(ctx, integ, adapter)
		return err

	case JobTypeCreateOrder:
		var envelope integration.OrderEnvelope
		if err := json.Unmarshal(payload, &envelope); err != nil {
			return fmt.Errorf("decode order envelope: %w", err)
		}
		return r.orders.CreateOrder(ctx, integ, adapter, envelope)

	case JobTypeRunPipelineStep:
		var body struct {
			OrderID uuid.UUID `json:"order_id"`
			Step    string    `json:"step"`
		}
		if err := json.Unmarshal(payload, &body); err != nil {
			return fmt.Errorf("decode pipeline payload: %w", err)
		}
		if body.Step != "" {
			return r.workflows.ExecuteStep(ctx, integ, body.OrderID, workflow.Step(body.Step))
		}
		if _, err := r.workflows.EnsurePipeline(ctx, integ, body.OrderID); err != nil {
			return err
		}
		return r.workflows.RunNext(ctx, integ, body.OrderID)

	case JobTypeExportTracking:
		var body struct {
			OrderID uuid.UUID `json:"order_id"`
		}
		if err := json.Unmarshal(payload, &body); err != nil {
			return fmt.Errorf("decode tracking export payload: %w", err)
		}
		return r.events.ExportTracking(ctx, integ, adapter, body.OrderID)

	case JobTypeExportStatus:
		var body struct {
			OrderID     uuid.UUID `json:"order_id"`
			SubStatusID uuid.UUID `json:"sub_status_id"`
		}
		if err := json.Unmarshal(payload, &body); err != nil {
			return fmt.Errorf("decode status export payload: %w", err)
		}
		return r.events.ExportOrderStatus(ctx, integ, adapter, body.OrderID, body.SubStatusID)
	}

	return fmt.Errorf("no handler registered for job type %q", jobType)
}
