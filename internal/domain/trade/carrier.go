package trade

import (
	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// Carrier represents a delivery method used on channel orders
type Carrier struct {
	shared.TenantAggregateRoot
	Name   string `gorm:"type:varchar(100);not null"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Carrier) TableName() string {
	return "carriers"
}

// NewCarrier creates a new carrier
func NewCarrier(tenantID uuid.UUID, name string) (*Carrier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Carrier name cannot be empty")
	}

	return &Carrier{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Active:              true,
	}, nil
}

// PaymentMethod represents a payment method of a sales channel. JournalName
// selects the accounting journal payments against this method post to; it
// must be configured before payment registration.
type PaymentMethod struct {
	shared.TenantAggregateRoot
	Name        string `gorm:"type:varchar(100);not null"`
	JournalName string `gorm:"type:varchar(100)"`
	Active      bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// NewPaymentMethod creates a new payment method
func NewPaymentMethod(tenantID uuid.UUID, name string) (*PaymentMethod, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Payment method name cannot be empty")
	}

	return &PaymentMethod{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Active:              true,
	}, nil
}
