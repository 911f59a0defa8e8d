package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopbridge/backend/internal/domain/trade"
	"github.com/shopbridge/backend/internal/domain/workflow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type workflowFixture struct {
	service       *WorkflowService
	pipelineRepo  *MockPipelineRepository
	orderRepo     *MockChannelOrderRepository
	subStatusRepo *MockSubStatusRepository
	invoiceRepo   *MockInvoiceRepository
	paymentRepo   *MockPaymentRecordRepository
	jobs          *MockJobEnqueuer
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	f := &workflowFixture{
		pipelineRepo:  new(MockPipelineRepository),
		orderRepo:     new(MockChannelOrderRepository),
		subStatusRepo: new(MockSubStatusRepository),
		invoiceRepo:   new(MockInvoiceRepository),
		paymentRepo:   new(MockPaymentRecordRepository),
		jobs:          new(MockJobEnqueuer),
	}
	f.service = NewWorkflowService(f.pipelineRepo, f.orderRepo, f.subStatusRepo,
		new(MockDeliveryRepository), f.invoiceRepo, f.paymentRepo, f.jobs, zap.NewNop())
	return f
}

// confirmableOrder builds an order carrying one product line so that
// confirmation is possible.
func confirmableOrder(t *testing.T, integID uuid.UUID) *trade.ChannelOrder {
	order, err := trade.NewChannelOrder(uuid.New(), integID, "77", "REF-77", uuid.New())
	require.NoError(t, err)
	variantID := uuid.New()
	line, err := trade.NewChannelOrderLine(order.ID, trade.LineTypeProduct, &variantID,
		"Chair", decimal.NewFromInt(2), decimal.NewFromInt(50))
	require.NoError(t, err)
	line.SetTaxes(nil, decimal.NewFromInt(20))
	order.AddLine(line)
	return order
}

func TestWorkflowService_EnsurePipeline_UnionsSubStatusFlags(t *testing.T) {
	f := newWorkflowFixture(t)
	integ := newTestIntegration(t)
	order := confirmableOrder(t, integ.ID)

	paid, err := trade.NewSubStatus(integ.TenantID, integ.ID, "Payment accepted")
	require.NoError(t, err)
	paid.SetTasks(true, false, true, false, false)
	shipped, err := trade.NewSubStatus(integ.TenantID, integ.ID, "Shipped")
	require.NoError(t, err)
	shipped.SetTasks(false, true, true, false, false)
	order.SubStatusIDs = []uuid.UUID{paid.ID, shipped.ID}

	f.pipelineRepo.On("FindByOrder", mock.Anything, order.ID).
		Return(nil, workflow.ErrPipelineNotFound)
	f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.subStatusRepo.On("FindByIDs", mock.Anything, order.SubStatusIDs).
		Return([]trade.SubStatus{*paid, *shipped}, nil)
	f.pipelineRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	pipeline, err := f.service.EnsurePipeline(context.Background(), integ, order.ID)

	require.NoError(t, err)
	for step, want := range map[workflow.Step]workflow.StepState{
		workflow.StepValidateOrder:   workflow.StateTodo,
		workflow.StepValidatePicking: workflow.StateTodo,
		workflow.StepCreateInvoice:   workflow.StateTodo,
		workflow.StepValidateInvoice: workflow.StateSkip,
		workflow.StepRegisterPayment: workflow.StateSkip,
	} {
		line, err := pipeline.Line(step)
		require.NoError(t, err)
		assert.Equal(t, want, line.State, string(step))
	}
	f.pipelineRepo.AssertCalled(t, "Save", mock.Anything, pipeline)
}

func TestWorkflowService_EnsurePipeline_ReturnsExisting(t *testing.T) {
	f := newWorkflowFixture(t)
	integ := newTestIntegration(t)
	orderID := uuid.New()

	existing, err := workflow.BuildPipeline(integ.TenantID, integ.ID, orderID,
		workflow.TaskSet{ValidateOrder: true})
	require.NoError(t, err)
	f.pipelineRepo.On("FindByOrder", mock.Anything, orderID).Return(existing, nil)

	pipeline, err := f.service.EnsurePipeline(context.Background(), integ, orderID)

	require.NoError(t, err)
	assert.Equal(t, existing.ID, pipeline.ID)
	f.orderRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	f.pipelineRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWorkflowService_ExecuteStep_OutOfOrder(t *testing.T) {
	f := newWorkflowFixture(t)
	integ := newTestIntegration(t)
	orderID := uuid.New()

	pipeline, err := workflow.BuildPipeline(integ.TenantID, integ.ID, orderID,
		workflow.TaskSet{ValidateOrder: true, CreateInvoice: true})
	require.NoError(t, err)
	f.pipelineRepo.On("FindByOrder", mock.Anything, orderID).Return(pipeline, nil)

	err = f.service.ExecuteStep(context.Background(), integ, orderID, workflow.StepCreateInvoice)

	assert.ErrorIs(t, err, workflow.ErrPreviousNotDone)
	f.pipelineRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWorkflowService_ExecuteStep_ValidateOrder(t *testing.T) {
	f := newWorkflowFixture(t)
	integ := newTestIntegration(t)
	order := confirmableOrder(t, integ.ID)

	pipeline, err := workflow.BuildPipeline(integ.TenantID, integ.ID, order.ID,
		workflow.TaskSet{ValidateOrder: true, CreateInvoice: true})
	require.NoError(t, err)

	f.pipelineRepo.On("FindByOrder", mock.Anything, order.ID).Return(pipeline, nil)
	f.pipelineRepo.On("Save", mock.Anything, pipeline).Return(nil)
	f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.orderRepo.On("Save", mock.Anything, order).Return(nil)
	f.jobs.On("Enqueue", mock.Anything, mock.MatchedBy(func(req JobRequest) bool {
		return req.Type == JobTypeRunPipelineStep &&
			req.IdentityKey == fmt.Sprintf("pipeline:%s:%s", order.ID, workflow.StepCreateInvoice)
	})).Return(nil)

	err = f.service.ExecuteStep(context.Background(), integ, order.ID, workflow.StepValidateOrder)

	require.NoError(t, err)
	assert.True(t, order.IsConfirmed())
	line, err := pipeline.Line(workflow.StepValidateOrder)
	require.NoError(t, err)
	assert.Equal(t, workflow.StateDone, line.State)
	f.jobs.AssertExpectations(t)
}

func TestWorkflowService_ExecuteStep_FailureMarksLine(t *testing.T) {
	f := newWorkflowFixture(t)
	integ := newTestIntegration(t)

	// An order without lines cannot be confirmed.
	order, err := trade.NewChannelOrder(uuid.New(), integ.ID, "77", "REF-77", uuid.New())
	require.NoError(t, err)

	pipeline, err := workflow.BuildPipeline(integ.TenantID, integ.ID, order.ID,
		workflow.TaskSet{ValidateOrder: true})
	require.NoError(t, err)

	f.pipelineRepo.On("FindByOrder", mock.Anything, order.ID).Return(pipeline, nil)
	f.pipelineRepo.On("Save", mock.Anything, pipeline).Return(nil)
	f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	err = f.service.ExecuteStep(context.Background(), integ, order.ID, workflow.StepValidateOrder)

	require.Error(t, err)
	line, lineErr := pipeline.Line(workflow.StepValidateOrder)
	require.NoError(t, lineErr)
	assert.Equal(t, workflow.StateFailed, line.State)
	assert.NotEmpty(t, line.ErrorText)
	f.jobs.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestWorkflowService_ExecuteStep_LastStepCompletesOrder(t *testing.T) {
	f := newWorkflowFixture(t)
	integ := newTestIntegration(t)
	order := confirmableOrder(t, integ.ID)
	require.NoError(t, order.Confirm())

	pipeline, err := workflow.BuildPipeline(integ.TenantID, integ.ID, order.ID,
		workflow.TaskSet{CreateInvoice: true})
	require.NoError(t, err)

	f.pipelineRepo.On("FindByOrder", mock.Anything, order.ID).Return(pipeline, nil)
	f.pipelineRepo.On("Save", mock.Anything, pipeline).Return(nil)
	f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.orderRepo.On("Save", mock.Anything, order).Return(nil)
	f.invoiceRepo.On("FindByOrder", mock.Anything, order.ID).Return([]trade.Invoice{}, nil)
	f.invoiceRepo.On("Save", mock.Anything, mock.MatchedBy(func(inv *trade.Invoice) bool {
		return inv.OrderID == order.ID
	})).Return(nil)

	err = f.service.ExecuteStep(context.Background(), integ, order.ID, workflow.StepCreateInvoice)

	require.NoError(t, err)
	assert.True(t, pipeline.IsTerminal())
	assert.Equal(t, trade.ChannelOrderStatusDone, order.Status)
}
