package trade

import (
	"time"

	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChannelOrderStatus represents the status of a channel order
type ChannelOrderStatus string

const (
	ChannelOrderStatusDraft     ChannelOrderStatus = "DRAFT"
	ChannelOrderStatusConfirmed ChannelOrderStatus = "CONFIRMED"
	ChannelOrderStatusDone      ChannelOrderStatus = "DONE"
	ChannelOrderStatusCancelled ChannelOrderStatus = "CANCELLED"
)

// ChannelOrderLineType distinguishes ordinary product lines from the
// synthetic lines the order factory appends during reconciliation.
type ChannelOrderLineType string

const (
	LineTypeProduct         ChannelOrderLineType = "PRODUCT"
	LineTypeShipping        ChannelOrderLineType = "SHIPPING"
	LineTypeDiscount        ChannelOrderLineType = "DISCOUNT"
	LineTypePriceDifference ChannelOrderLineType = "PRICE_DIFFERENCE"
)

// CurrencyPrecision is the number of decimal places used for monetary
// rounding on channel order lines.
const CurrencyPrecision int32 = 2

// ChannelOrderLine is one line of a channel order. PriceUnit is tax-exclusive;
// TaxRate is the combined percentage of the line's taxes, resolved when the
// line is built so that amount computation needs no tax lookups.
type ChannelOrderLine struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	LineType     ChannelOrderLineType
	ExternalCode string // External line id, empty for synthetic lines
	VariantID    *uuid.UUID
	Description  string
	Quantity     decimal.Decimal
	PriceUnit    decimal.Decimal
	DiscountPct  decimal.Decimal
	TaxIDs       []uuid.UUID
	TaxRate      decimal.Decimal

	PriceSubtotal decimal.Decimal // Tax-exclusive amount
	PriceTax      decimal.Decimal
	PriceTotal    decimal.Decimal // Tax-inclusive amount

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewChannelOrderLine creates a line and computes its amounts
func NewChannelOrderLine(orderID uuid.UUID, lineType ChannelOrderLineType, variantID *uuid.UUID, description string, quantity, priceUnit decimal.Decimal) (*ChannelOrderLine, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_LINE", "Line description cannot be empty")
	}
	if lineType == LineTypeProduct && variantID == nil {
		return nil, shared.NewDomainError("INVALID_LINE", "Product line requires a variant")
	}

	now := time.Now()
	line := &ChannelOrderLine{
		ID:          uuid.New(),
		OrderID:     orderID,
		LineType:    lineType,
		VariantID:   variantID,
		Description: description,
		Quantity:    quantity,
		PriceUnit:   priceUnit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	line.ComputeAmounts()

	return line, nil
}

// SetTaxes sets the line's taxes and recomputes amounts
func (l *ChannelOrderLine) SetTaxes(taxIDs []uuid.UUID, combinedRate decimal.Decimal) {
	l.TaxIDs = taxIDs
	l.TaxRate = combinedRate
	l.ComputeAmounts()
	l.UpdatedAt = time.Now()
}

// SetDiscount sets the percentage discount and recomputes amounts
func (l *ChannelOrderLine) SetDiscount(discountPct decimal.Decimal) {
	l.DiscountPct = discountPct
	l.ComputeAmounts()
	l.UpdatedAt = time.Now()
}

// SetPriceUnit replaces the unit price and recomputes amounts
func (l *ChannelOrderLine) SetPriceUnit(priceUnit decimal.Decimal) {
	l.PriceUnit = priceUnit
	l.ComputeAmounts()
	l.UpdatedAt = time.Now()
}

// ComputeAmounts recalculates subtotal, tax and total from quantity, unit
// price, discount and the resolved tax rate.
func (l *ChannelOrderLine) ComputeAmounts() {
	hundred := decimal.NewFromInt(100)
	base := l.Quantity.Mul(l.PriceUnit)
	if !l.DiscountPct.IsZero() {
		base = base.Mul(hundred.Sub(l.DiscountPct)).Div(hundred)
	}
	l.PriceSubtotal = base.Round(CurrencyPrecision)
	l.PriceTax = base.Mul(l.TaxRate).Div(hundred).Round(CurrencyPrecision)
	l.PriceTotal = l.PriceSubtotal.Add(l.PriceTax)
}

// ChannelOrder represents a sales order imported from an external platform.
// It is the aggregate root driven by the post-import workflow pipeline.
type ChannelOrder struct {
	shared.TenantAggregateRoot
	IntegrationID uuid.UUID `gorm:"type:uuid;not null;index"`
	ExternalCode  string    `gorm:"type:varchar(100);not null;index"`
	Reference     string    `gorm:"type:varchar(100);not null"`

	CustomerID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	ShippingPartnerID *uuid.UUID `gorm:"type:uuid"`
	BillingPartnerID  *uuid.UUID `gorm:"type:uuid"`
	CarrierID         *uuid.UUID `gorm:"type:uuid"`
	PaymentMethodID   *uuid.UUID `gorm:"type:uuid"`

	Currency      string          `gorm:"type:varchar(3)"`
	ExternalTotal decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Platform-declared grand total, kept for reconciliation
	Status        ChannelOrderStatus

	Lines        []ChannelOrderLine `gorm:"-"`
	SubStatusIDs []uuid.UUID        `gorm:"-"`

	ConfirmedAt *time.Time
}

// NewChannelOrder creates a draft channel order
func NewChannelOrder(tenantID, integrationID uuid.UUID, externalCode, reference string, customerID uuid.UUID) (*ChannelOrder, error) {
	if integrationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INTEGRATION", "Integration ID cannot be empty")
	}
	if externalCode == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "External order code cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	order := &ChannelOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		IntegrationID:       integrationID,
		ExternalCode:        externalCode,
		Reference:           reference,
		CustomerID:          customerID,
		ExternalTotal:       decimal.Zero,
		Status:              ChannelOrderStatusDraft,
	}

	order.AddDomainEvent(NewChannelOrderCreatedEvent(order))

	return order, nil
}

// AddLine appends a line to the order
func (o *ChannelOrder) AddLine(line *ChannelOrderLine) {
	line.OrderID = o.ID
	o.Lines = append(o.Lines, *line)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// ComputedTotal sums the tax-inclusive totals of all lines
func (o *ChannelOrder) ComputedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.PriceTotal)
	}
	return total
}

// ComputedUntaxed sums the tax-exclusive subtotals of all lines
func (o *ChannelOrder) ComputedUntaxed() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.PriceSubtotal)
	}
	return total
}

// Confirm confirms the order. Confirming an already confirmed order is a
// no-op so that redelivered jobs cannot double-apply.
func (o *ChannelOrder) Confirm() error {
	if o.Status == ChannelOrderStatusConfirmed || o.Status == ChannelOrderStatusDone {
		return nil
	}
	if o.Status == ChannelOrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot confirm a cancelled order")
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot confirm an order without lines")
	}

	now := time.Now()
	o.Status = ChannelOrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewChannelOrderConfirmedEvent(o))

	return nil
}

// IsConfirmed returns true once the order has been confirmed
func (o *ChannelOrder) IsConfirmed() bool {
	return o.Status == ChannelOrderStatusConfirmed || o.Status == ChannelOrderStatusDone
}

// Complete marks the order done after the workflow pipeline finishes
func (o *ChannelOrder) Complete() error {
	if o.Status != ChannelOrderStatusConfirmed {
		return shared.NewDomainError("INVALID_STATE", "Only a confirmed order can be completed")
	}

	o.Status = ChannelOrderStatusDone
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}
