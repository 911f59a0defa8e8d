package integration

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopbridge/backend/internal/domain/integration"
	"github.com/shopbridge/backend/internal/domain/shared"
	"github.com/shopbridge/backend/internal/domain/trade"
	"github.com/shopbridge/backend/internal/domain/workflow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WorkflowService drives the per-order pipeline: confirmation, fulfillment,
// invoicing and payment registration. Each step action is idempotent, so a
// redelivered step job converges instead of double-applying.
type WorkflowService struct {
	pipelineRepo  workflow.PipelineRepository
	orderRepo     trade.ChannelOrderRepository
	subStatusRepo trade.SubStatusRepository
	deliveryRepo  trade.DeliveryRepository
	invoiceRepo   trade.InvoiceRepository
	paymentRepo   trade.PaymentRecordRepository
	jobs          JobEnqueuer
	logger        *zap.Logger
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(
	pipelineRepo workflow.PipelineRepository,
	orderRepo trade.ChannelOrderRepository,
	subStatusRepo trade.SubStatusRepository,
	deliveryRepo trade.DeliveryRepository,
	invoiceRepo trade.InvoiceRepository,
	paymentRepo trade.PaymentRecordRepository,
	jobs JobEnqueuer,
	logger *zap.Logger,
) *WorkflowService {
	return &WorkflowService{
		pipelineRepo:  pipelineRepo,
		orderRepo:     orderRepo,
		subStatusRepo: subStatusRepo,
		deliveryRepo:  deliveryRepo,
		invoiceRepo:   invoiceRepo,
		paymentRepo:   paymentRepo,
		jobs:          jobs,
		logger:        logger,
	}
}

// EnsurePipeline builds the order's pipeline from the union of its
// sub-statuses' task flags. An existing pipeline is returned unchanged.
func (s *WorkflowService) EnsurePipeline(ctx context.Context, integ *integration.Integration, orderID uuid.UUID) (*workflow.Pipeline, error) {
	pipeline, err := s.pipelineRepo.FindByOrder(ctx, orderID)
	if err != nil && !errors.Is(err, workflow.ErrPipelineNotFound) {
		return nil, err
	}
	if pipeline != nil {
		return pipeline, nil
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskSetFor(ctx, order)
	if err != nil {
		return nil, err
	}

	pipeline, err = workflow.BuildPipeline(integ.TenantID, integ.ID, orderID, tasks)
	if err != nil {
		return nil, err
	}
	if err := s.pipelineRepo.Save(ctx, pipeline); err != nil {
		return nil, err
	}
	return pipeline, nil
}

// taskSetFor unions the task flags of every sub-status the order carries.
func (s *WorkflowService) taskSetFor(ctx context.Context, order *trade.ChannelOrder) (workflow.TaskSet, error) {
	var tasks workflow.TaskSet
	if len(order.SubStatusIDs) == 0 {
		return tasks, nil
	}

	statuses, err := s.subStatusRepo.FindByIDs(ctx, order.SubStatusIDs)
	if err != nil {
		return tasks, err
	}
	for _, status := range statuses {
		tasks = tasks.Union(workflow.TaskSet{
			ValidateOrder:   status.RunValidateOrder,
			ValidatePicking: status.RunValidatePicking,
			CreateInvoice:   status.RunCreateInvoice,
			ValidateInvoice: status.RunValidateInvoice,
			RegisterPayment: status.RunRegisterPayment,
		})
	}
	return tasks, nil
}

// RunNext executes the pipeline's next pending step, if any.
func (s *WorkflowService) RunNext(ctx context.Context, integ *integration.Integration, orderID uuid.UUID) error {
	pipeline, err := s.EnsurePipeline(ctx, integ, orderID)
	if err != nil {
		return err
	}
	step, ok := pipeline.NextTodo()
	if !ok {
		return s.finishIfTerminal(ctx, pipeline)
	}
	return s.ExecuteStep(ctx, integ, orderID, step)
}

// ExecuteStep runs one step of the order's pipeline. The step must be
// enabled and every earlier enabled step must be done; a business failure
// marks the line failed and halts the pipeline for operator attention.
func (s *WorkflowService) ExecuteStep(ctx context.Context, integ *integration.Integration, orderID uuid.UUID, step workflow.Step) error {
	pipeline, err := s.EnsurePipeline(ctx, integ, orderID)
	if err != nil {
		return err
	}

	if err := pipeline.MarkInProcess(step); err != nil {
		return err
	}
	if err := s.pipelineRepo.Save(ctx, pipeline); err != nil {
		return err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if stepErr := s.runStepAction(ctx, integ, order, step); stepErr != nil {
		s.logger.Error("workflow step failed",
			zap.String("order_id", orderID.String()),
			zap.String("step", string(step)),
			zap.Error(stepErr))
		if err := pipeline.MarkFailed(step, stepErr.Error()); err != nil {
			return err
		}
		if err := s.pipelineRepo.Save(ctx, pipeline); err != nil {
			return err
		}
		return stepErr
	}

	if err := pipeline.MarkDone(step); err != nil {
		return err
	}
	if err := s.pipelineRepo.Save(ctx, pipeline); err != nil {
		return err
	}

	s.logger.Info("workflow step done",
		zap.String("order_id", orderID.String()),
		zap.String("step", string(step)))

	if next, ok := pipeline.NextTodo(); ok && s.jobs != nil {
		job := JobRequest{
			Type:          JobTypeRunPipelineStep,
			IdentityKey:   fmt.Sprintf("pipeline:%s:%s", orderID, next),
			IntegrationID: integ.ID,
			TenantID:      integ.TenantID,
			Payload:       map[string]string{"order_id": orderID.String(), "step": string(next)},
		}
		if err := s.jobs.Enqueue(ctx, job); err != nil {
			s.logger.Error("failed to schedule next workflow step",
				zap.String("order_id", orderID.String()), zap.Error(err))
		}
	}

	return s.finishIfTerminal(ctx, pipeline)
}

func (s *WorkflowService) runStepAction(ctx context.Context, integ *integration.Integration, order *trade.ChannelOrder, step workflow.Step) error {
	switch step {
	case workflow.StepValidateOrder:
		return s.validateOrder(ctx, order)
	case workflow.StepValidatePicking:
		return s.validatePicking(ctx, integ, order)
	case workflow.StepCreateInvoice:
		return s.createInvoice(ctx, integ, order)
	case workflow.StepValidateInvoice:
		return s.validateInvoice(ctx, order)
	case workflow.StepRegisterPayment:
		return s.registerPayment(ctx, order)
	}
	return workflow.ErrStepNotFound
}

func (s *WorkflowService) validateOrder(ctx context.Context, order *trade.ChannelOrder) error {
	if err := order.Confirm(); err != nil {
		return err
	}
	return s.orderRepo.Save(ctx, order)
}

// validatePicking completes the order's delivery, creating one on the fly
// when order confirmation has not produced it yet.
func (s *WorkflowService) validatePicking(ctx context.Context, integ *integration.Integration, order *trade.ChannelOrder) error {
	deliveries, err := s.deliveryRepo.FindByOrder(ctx, order.ID)
	if err != nil {
		return err
	}

	if len(deliveries) == 0 {
		delivery, err := trade.NewDelivery(integ.TenantID, order.ID, order.CarrierID)
		if err != nil {
			return err
		}
		deliveries = append(deliveries, *delivery)
	}

	for i := range deliveries {
		if err := deliveries[i].Validate(); err != nil {
			return err
		}
		if err := s.deliveryRepo.Save(ctx, &deliveries[i]); err != nil {
			return err
		}
	}
	return nil
}

// createInvoice ensures exactly one invoice exists for the order.
func (s *WorkflowService) createInvoice(ctx context.Context, integ *integration.Integration, order *trade.ChannelOrder) error {
	invoices, err := s.invoiceRepo.FindByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	if len(invoices) > 0 {
		return nil
	}

	untaxed := order.ComputedUntaxed()
	invoice, err := trade.NewInvoice(integ.TenantID, order.ID, untaxed, order.ComputedTotal().Sub(untaxed))
	if err != nil {
		return err
	}
	return s.invoiceRepo.Save(ctx, invoice)
}

func (s *WorkflowService) validateInvoice(ctx context.Context, order *trade.ChannelOrder) error {
	invoices, err := s.invoiceRepo.FindByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	if len(invoices) == 0 {
		return shared.NewDomainError("NO_INVOICE", "Order has no invoice to validate")
	}
	for i := range invoices {
		if err := invoices[i].Post(); err != nil {
			return err
		}
		if err := s.invoiceRepo.Save(ctx, &invoices[i]); err != nil {
			return err
		}
	}
	return nil
}

// registerPayment applies the order's recorded payment transactions to its
// posted invoice. Already applied amounts are not re-applied: the invoice's
// paid amount only grows to the sum of recorded payments.
func (s *WorkflowService) registerPayment(ctx context.Context, order *trade.ChannelOrder) error {
	invoices, err := s.invoiceRepo.FindByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	if len(invoices) == 0 {
		return shared.NewDomainError("NO_INVOICE", "Order has no invoice to pay")
	}

	records, err := s.paymentRepo.FindByOrder(ctx, order.ID)
	if err != nil {
		return err
	}

	invoice := &invoices[0]
	captured := decimal.Zero
	for _, record := range records {
		captured = captured.Add(record.Amount)
	}
	gap := captured.Sub(invoice.AmountPaid)
	if gap.IsPositive() {
		if err := invoice.RegisterPayment(gap); err != nil {
			return err
		}
	}
	return s.invoiceRepo.Save(ctx, invoice)
}

// finishIfTerminal completes the order once every pipeline line is done or
// skipped.
func (s *WorkflowService) finishIfTerminal(ctx context.Context, pipeline *workflow.Pipeline) error {
	if !pipeline.IsTerminal() {
		return nil
	}
	order, err := s.orderRepo.FindByID(ctx, pipeline.OrderID)
	if err != nil {
		return err
	}
	if !order.IsConfirmed() || order.Status == trade.ChannelOrderStatusDone {
		return nil
	}
	if err := order.Complete(); err != nil {
		return err
	}
	return s.orderRepo.Save(ctx, order)
}
