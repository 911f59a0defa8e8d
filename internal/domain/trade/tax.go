package trade

import (
	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxGroup groups related taxes for reporting
type TaxGroup struct {
	shared.TenantAggregateRoot
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (TaxGroup) TableName() string {
	return "tax_groups"
}

// NewTaxGroup creates a new tax group
func NewTaxGroup(tenantID uuid.UUID, name string) (*TaxGroup, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tax group name cannot be empty")
	}

	return &TaxGroup{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
	}, nil
}

// Tax represents a sales tax applied to order lines. Rate is a percentage;
// PriceInclude marks taxes already contained in displayed prices.
type Tax struct {
	shared.TenantAggregateRoot
	Name         string          `gorm:"type:varchar(100);not null"`
	Rate         decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`
	PriceInclude bool            `gorm:"not null;default:false"`
	TaxGroupID   *uuid.UUID      `gorm:"type:uuid;index"`
	Active       bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Tax) TableName() string {
	return "taxes"
}

// NewTax creates a new tax
func NewTax(tenantID uuid.UUID, name string, rate decimal.Decimal) (*Tax, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Tax name cannot be empty")
	}

	return &Tax{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Rate:                rate,
		Active:              true,
	}, nil
}

// CombinedRate sums the percentage rates of the given taxes
func CombinedRate(taxes []Tax) decimal.Decimal {
	rate := decimal.Zero
	for _, t := range taxes {
		rate = rate.Add(t.Rate)
	}
	return rate
}
