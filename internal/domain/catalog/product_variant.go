package catalog

import (
	"time"

	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductVariant represents one sellable configuration of a product template.
// A template without attribute lines still has exactly one variant. The
// variant's attribute value set uniquely identifies it within its template.
type ProductVariant struct {
	shared.TenantAggregateRoot
	TemplateID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Reference  string          `gorm:"type:varchar(100);index"` // Internal reference (SKU)
	Barcode    string          `gorm:"type:varchar(50);index"`
	ExtraPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Delta added to the template list price
	Cost       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Weight     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ImageKey   string          `gorm:"type:varchar(500)"` // Storage key of the variant's primary image
	Active     bool            `gorm:"not null;default:true"`

	AttributeValueIDs []uuid.UUID `gorm:"-"`
}

// TableName returns the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

// NewProductVariant creates a new variant for a template
func NewProductVariant(tenantID, templateID uuid.UUID, attributeValueIDs []uuid.UUID) (*ProductVariant, error) {
	if templateID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TEMPLATE", "Template ID cannot be empty")
	}

	variant := &ProductVariant{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TemplateID:          templateID,
		ExtraPrice:          decimal.Zero,
		Cost:                decimal.Zero,
		Weight:              decimal.Zero,
		Active:              true,
		AttributeValueIDs:   attributeValueIDs,
	}

	variant.AddDomainEvent(NewProductVariantCreatedEvent(variant))

	return variant, nil
}

// SetReference sets the internal reference if not already set; a non-empty
// reference is never overwritten.
func (v *ProductVariant) SetReference(reference string) error {
	if v.Reference != "" {
		return nil
	}
	if len(reference) > 100 {
		return shared.NewDomainError("INVALID_REFERENCE", "Reference cannot exceed 100 characters")
	}

	v.Reference = reference
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetBarcode sets the barcode if not already set
func (v *ProductVariant) SetBarcode(barcode string) error {
	if v.Barcode != "" {
		return nil
	}
	if len(barcode) > 50 {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 50 characters")
	}

	v.Barcode = barcode
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetExtraPrice sets the price delta added to the template list price
func (v *ProductVariant) SetExtraPrice(extraPrice decimal.Decimal) {
	v.ExtraPrice = extraPrice
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
}

// SetImageKey sets the storage key of the variant's primary image
func (v *ProductVariant) SetImageKey(key string) error {
	if len(key) > 500 {
		return shared.NewDomainError("INVALID_IMAGE_KEY", "Image key cannot exceed 500 characters")
	}

	v.ImageKey = key
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// SetCostAndWeight updates cost and weight
func (v *ProductVariant) SetCostAndWeight(cost, weight decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost cannot be negative")
	}

	v.Cost = cost
	v.Weight = weight
	v.UpdatedAt = time.Now()
	v.IncrementVersion()

	return nil
}

// HasAttributeValues returns true if the variant carries attribute values
func (v *ProductVariant) HasAttributeValues() bool {
	return len(v.AttributeValueIDs) > 0
}

// AttributeValueSet returns the variant's attribute value IDs as a set
func (v *ProductVariant) AttributeValueSet() map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(v.AttributeValueIDs))
	for _, id := range v.AttributeValueIDs {
		set[id] = struct{}{}
	}
	return set
}
