package trade

import (
	"time"

	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "DRAFT"
	InvoiceStatusPosted InvoiceStatus = "POSTED"
	InvoiceStatusPaid   InvoiceStatus = "PAID"
)

// Invoice represents the customer invoice of a channel order
type Invoice struct {
	shared.TenantAggregateRoot
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	AmountUntaxed decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AmountTax     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AmountTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status        InvoiceStatus   `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	PostedAt      *time.Time
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "channel_invoices"
}

// NewInvoice creates a draft invoice from the order's computed amounts
func NewInvoice(tenantID, orderID uuid.UUID, amountUntaxed, amountTax decimal.Decimal) (*Invoice, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}

	return &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderID:             orderID,
		AmountUntaxed:       amountUntaxed,
		AmountTax:           amountTax,
		AmountTotal:         amountUntaxed.Add(amountTax),
		AmountPaid:          decimal.Zero,
		Status:              InvoiceStatusDraft,
	}, nil
}

// Post validates the invoice. Posting an already posted invoice is a no-op
// so that redelivered jobs cannot double-apply.
func (i *Invoice) Post() error {
	if i.Status == InvoiceStatusPosted || i.Status == InvoiceStatusPaid {
		return nil
	}

	now := time.Now()
	i.Status = InvoiceStatusPosted
	i.PostedAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()

	return nil
}

// RegisterPayment applies a payment amount to the invoice
func (i *Invoice) RegisterPayment(amount decimal.Decimal) error {
	if i.Status == InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot register payment on a draft invoice")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	i.AmountPaid = i.AmountPaid.Add(amount)
	if i.AmountPaid.GreaterThanOrEqual(i.AmountTotal) {
		i.Status = InvoiceStatusPaid
	}
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// IsPosted returns true once the invoice is posted or paid
func (i *Invoice) IsPosted() bool {
	return i.Status == InvoiceStatusPosted || i.Status == InvoiceStatusPaid
}

// IsPaid returns true once the invoice is fully paid
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// PaymentRecord is one captured payment transaction attached to an order
type PaymentRecord struct {
	shared.BaseAggregateRoot
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionID   string          `gorm:"type:varchar(100);not null"`
	TransactionDate time.Time       `gorm:"not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Currency        string          `gorm:"type:varchar(3)"`
	JournalName     string          `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (PaymentRecord) TableName() string {
	return "channel_payment_records"
}

// NewPaymentRecord creates a payment record for an order
func NewPaymentRecord(orderID uuid.UUID, transactionID string, transactionDate time.Time, amount decimal.Decimal, currency, journalName string) (*PaymentRecord, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if transactionID == "" {
		return nil, shared.NewDomainError("INVALID_TRANSACTION", "Transaction ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if journalName == "" {
		return nil, shared.NewDomainError("INVALID_JOURNAL", "Journal name cannot be empty")
	}

	return &PaymentRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		TransactionID:     transactionID,
		TransactionDate:   transactionDate,
		Amount:            amount,
		Currency:          currency,
		JournalName:       journalName,
	}, nil
}
