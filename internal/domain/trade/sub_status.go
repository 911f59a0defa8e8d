package trade

import (
	"time"

	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// SubStatus represents an external platform's order status, scoped to one
// integration. Its task flags say which workflow steps an order in this
// status should run; a channel order may carry several sub-statuses and the
// effective task set is their union.
type SubStatus struct {
	shared.TenantAggregateRoot
	IntegrationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(100);not null"`

	RunValidateOrder   bool `gorm:"not null;default:false"`
	RunValidatePicking bool `gorm:"not null;default:false"`
	RunCreateInvoice   bool `gorm:"not null;default:false"`
	RunValidateInvoice bool `gorm:"not null;default:false"`
	RunRegisterPayment bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (SubStatus) TableName() string {
	return "order_sub_statuses"
}

// NewSubStatus creates a new sub-status for an integration
func NewSubStatus(tenantID, integrationID uuid.UUID, name string) (*SubStatus, error) {
	if integrationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INTEGRATION", "Integration ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Sub-status name cannot be empty")
	}

	return &SubStatus{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		IntegrationID:       integrationID,
		Name:                name,
	}, nil
}

// SetTasks sets all workflow task flags at once
func (s *SubStatus) SetTasks(validateOrder, validatePicking, createInvoice, validateInvoice, registerPayment bool) {
	s.RunValidateOrder = validateOrder
	s.RunValidatePicking = validatePicking
	s.RunCreateInvoice = createInvoice
	s.RunValidateInvoice = validateInvoice
	s.RunRegisterPayment = registerPayment
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
