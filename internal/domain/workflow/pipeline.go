// Package workflow contains the per-order pipeline state machine that drives
// confirmation, fulfillment, invoicing and payment after an order is imported
// from an external platform.
package workflow

import (
	"errors"
	"time"

	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
)

var (
	ErrPipelineNotFound = errors.New("workflow: pipeline not found")
	ErrStepNotFound     = errors.New("workflow: step not part of pipeline")
	ErrStepInactive     = errors.New("workflow: step is skipped for this pipeline")
	ErrPreviousNotDone  = errors.New("workflow: not all previous tasks are done, fix them first")
)

// Step names one workflow task.
type Step string

const (
	StepValidateOrder   Step = "validate_order"
	StepValidatePicking Step = "validate_picking"
	StepCreateInvoice   Step = "create_invoice"
	StepValidateInvoice Step = "validate_invoice"
	StepRegisterPayment Step = "register_payment"
)

// OrderedSteps returns the canonical execution order of all steps.
func OrderedSteps() []Step {
	return []Step{
		StepValidateOrder,
		StepValidatePicking,
		StepCreateInvoice,
		StepValidateInvoice,
		StepRegisterPayment,
	}
}

// StepState is the state of one pipeline line.
type StepState string

const (
	StateSkip      StepState = "skip"
	StateTodo      StepState = "todo"
	StateInProcess StepState = "in_process"
	StateFailed    StepState = "failed"
	StateDone      StepState = "done"
)

// TaskSet says which steps a pipeline should run. It is built as the union
// of the task flags of every sub-status the order carries.
type TaskSet struct {
	ValidateOrder   bool
	ValidatePicking bool
	CreateInvoice   bool
	ValidateInvoice bool
	RegisterPayment bool
}

// Union merges another task set into this one.
func (t TaskSet) Union(other TaskSet) TaskSet {
	return TaskSet{
		ValidateOrder:   t.ValidateOrder || other.ValidateOrder,
		ValidatePicking: t.ValidatePicking || other.ValidatePicking,
		CreateInvoice:   t.CreateInvoice || other.CreateInvoice,
		ValidateInvoice: t.ValidateInvoice || other.ValidateInvoice,
		RegisterPayment: t.RegisterPayment || other.RegisterPayment,
	}
}

// Enabled reports whether the set enables the given step.
func (t TaskSet) Enabled(step Step) bool {
	switch step {
	case StepValidateOrder:
		return t.ValidateOrder
	case StepValidatePicking:
		return t.ValidatePicking
	case StepCreateInvoice:
		return t.CreateInvoice
	case StepValidateInvoice:
		return t.ValidateInvoice
	case StepRegisterPayment:
		return t.RegisterPayment
	}
	return false
}

// PipelineLine binds one step to its state within a pipeline.
type PipelineLine struct {
	ID         uuid.UUID
	PipelineID uuid.UUID
	Step       Step
	Position   int
	State      StepState
	ErrorText  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Pipeline is the per-order state machine instance. It is created once at
// order-creation time and only dropped by explicit operator action.
type Pipeline struct {
	shared.TenantAggregateRoot
	IntegrationID uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	Lines []PipelineLine `gorm:"-"`
}

// TableName returns the table name for GORM
func (Pipeline) TableName() string {
	return "workflow_pipelines"
}

// BuildPipeline creates a pipeline for an order from the given task set.
// Every canonical step gets a line: enabled steps start as todo, the rest
// are marked skip.
func BuildPipeline(tenantID, integrationID, orderID uuid.UUID, tasks TaskSet) (*Pipeline, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}

	pipeline := &Pipeline{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		IntegrationID:       integrationID,
		OrderID:             orderID,
	}

	now := time.Now()
	for i, step := range OrderedSteps() {
		state := StateSkip
		if tasks.Enabled(step) {
			state = StateTodo
		}
		pipeline.Lines = append(pipeline.Lines, PipelineLine{
			ID:         uuid.New(),
			PipelineID: pipeline.ID,
			Step:       step,
			Position:   i,
			State:      state,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	return pipeline, nil
}

// Line returns the line bound to a step.
func (p *Pipeline) Line(step Step) (*PipelineLine, error) {
	for i := range p.Lines {
		if p.Lines[i].Step == step {
			return &p.Lines[i], nil
		}
	}
	return nil, ErrStepNotFound
}

// EnsureRunnable checks that a step may execute now: the step must not be
// skipped, and every earlier non-skipped step must be done. Violations fail
// loudly instead of reordering.
func (p *Pipeline) EnsureRunnable(step Step) error {
	line, err := p.Line(step)
	if err != nil {
		return err
	}
	if line.State == StateSkip {
		return ErrStepInactive
	}
	for i := range p.Lines {
		if p.Lines[i].Position >= line.Position {
			continue
		}
		if p.Lines[i].State == StateSkip || p.Lines[i].State == StateDone {
			continue
		}
		return ErrPreviousNotDone
	}
	return nil
}

// MarkInProcess transitions a step to in_process after the runnable check.
func (p *Pipeline) MarkInProcess(step Step) error {
	if err := p.EnsureRunnable(step); err != nil {
		return err
	}
	line, err := p.Line(step)
	if err != nil {
		return err
	}
	if line.State == StateDone {
		return nil
	}
	line.State = StateInProcess
	line.ErrorText = ""
	line.UpdatedAt = time.Now()
	p.UpdatedAt = line.UpdatedAt
	p.IncrementVersion()
	return nil
}

// MarkDone transitions a step to done.
func (p *Pipeline) MarkDone(step Step) error {
	line, err := p.Line(step)
	if err != nil {
		return err
	}
	line.State = StateDone
	line.ErrorText = ""
	line.UpdatedAt = time.Now()
	p.UpdatedAt = line.UpdatedAt
	p.IncrementVersion()
	return nil
}

// MarkFailed transitions a step to failed with the failure message. The
// pipeline halts until an operator intervenes.
func (p *Pipeline) MarkFailed(step Step, errorText string) error {
	line, err := p.Line(step)
	if err != nil {
		return err
	}
	line.State = StateFailed
	line.ErrorText = errorText
	line.UpdatedAt = time.Now()
	p.UpdatedAt = line.UpdatedAt
	p.IncrementVersion()
	return nil
}

// NextTodo returns the first step in order whose state is todo.
func (p *Pipeline) NextTodo() (Step, bool) {
	for _, step := range OrderedSteps() {
		line, err := p.Line(step)
		if err != nil {
			continue
		}
		if line.State == StateTodo {
			return step, true
		}
	}
	return "", false
}

// IsTerminal reports whether every line is done or skipped.
func (p *Pipeline) IsTerminal() bool {
	for i := range p.Lines {
		if p.Lines[i].State != StateDone && p.Lines[i].State != StateSkip {
			return false
		}
	}
	return true
}
