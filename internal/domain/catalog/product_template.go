package catalog

import (
	"strings"
	"time"

	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductTemplate represents a multi-variant product definition.
// It is the aggregate root for the template/variant graph: attribute lines
// describe which attribute values the template varies on, and each sellable
// configuration is a ProductVariant owned by the template.
type ProductTemplate struct {
	shared.TenantAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Reference   string          `gorm:"type:varchar(100);index"` // Internal reference (SKU); source of truth, never overwritten once set
	Barcode     string          `gorm:"type:varchar(50);index"`
	ListPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Cost        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Weight      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active      bool            `gorm:"not null;default:true"`
	CategoryIDs []uuid.UUID     `gorm:"-"`
	TaxIDs      []uuid.UUID     `gorm:"-"`

	AttributeLines []AttributeLine `gorm:"-"`
	FeatureLines   []FeatureLine   `gorm:"-"`
}

// TableName returns the table name for GORM
func (ProductTemplate) TableName() string {
	return "product_templates"
}

// AttributeLine declares that a template varies on one attribute with a set
// of allowed values.
type AttributeLine struct {
	ID          uuid.UUID
	TemplateID  uuid.UUID
	AttributeID uuid.UUID
	ValueIDs    []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FeatureLine attaches one feature/value pair to a template. A feature may
// carry a custom free-text value instead of a predefined one.
type FeatureLine struct {
	ID          uuid.UUID
	TemplateID  uuid.UUID
	FeatureID   uuid.UUID
	ValueID     *uuid.UUID
	CustomValue string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProductTemplate creates a new product template
func NewProductTemplate(tenantID uuid.UUID, name string) (*ProductTemplate, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Template name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Template name cannot exceed 200 characters")
	}

	template := &ProductTemplate{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		ListPrice:           decimal.Zero,
		Cost:                decimal.Zero,
		Weight:              decimal.Zero,
		Active:              true,
	}

	template.AddDomainEvent(NewProductTemplateCreatedEvent(template))

	return template, nil
}

// Update updates the template's basic information
func (t *ProductTemplate) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Template name cannot be empty")
	}

	t.Name = name
	t.Description = description
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewProductTemplateUpdatedEvent(t))

	return nil
}

// SetReference sets the internal reference. A non-empty reference is never
// overwritten; the internal system is the source of truth for references.
func (t *ProductTemplate) SetReference(reference string) error {
	if t.Reference != "" {
		return nil
	}
	if len(reference) > 100 {
		return shared.NewDomainError("INVALID_REFERENCE", "Reference cannot exceed 100 characters")
	}

	t.Reference = strings.TrimSpace(reference)
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetBarcode sets the template barcode if not already set
func (t *ProductTemplate) SetBarcode(barcode string) error {
	if t.Barcode != "" {
		return nil
	}
	if len(barcode) > 50 {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 50 characters")
	}

	t.Barcode = barcode
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetPricing sets the list price, cost and weight
func (t *ProductTemplate) SetPricing(listPrice, cost, weight decimal.Decimal) error {
	if listPrice.IsNegative() || cost.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	t.ListPrice = listPrice
	t.Cost = cost
	t.Weight = weight
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetCategories replaces the template's category assignments
func (t *ProductTemplate) SetCategories(categoryIDs []uuid.UUID) {
	t.CategoryIDs = categoryIDs
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// SetTaxes replaces the template's customer taxes
func (t *ProductTemplate) SetTaxes(taxIDs []uuid.UUID) {
	t.TaxIDs = taxIDs
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// SetAttributeLine adds or replaces the line for one attribute, keeping the
// values grouped per attribute.
func (t *ProductTemplate) SetAttributeLine(attributeID uuid.UUID, valueIDs []uuid.UUID) error {
	if attributeID == uuid.Nil {
		return shared.NewDomainError("INVALID_ATTRIBUTE", "Attribute ID cannot be empty")
	}
	if len(valueIDs) == 0 {
		return shared.NewDomainError("INVALID_ATTRIBUTE_VALUES", "Attribute line requires at least one value")
	}

	now := time.Now()
	for i := range t.AttributeLines {
		if t.AttributeLines[i].AttributeID == attributeID {
			t.AttributeLines[i].ValueIDs = valueIDs
			t.AttributeLines[i].UpdatedAt = now
			t.UpdatedAt = now
			t.IncrementVersion()
			return nil
		}
	}

	t.AttributeLines = append(t.AttributeLines, AttributeLine{
		ID:          uuid.New(),
		TemplateID:  t.ID,
		AttributeID: attributeID,
		ValueIDs:    valueIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	t.UpdatedAt = now
	t.IncrementVersion()

	return nil
}

// SetFeatureLine adds or replaces the line for one feature
func (t *ProductTemplate) SetFeatureLine(featureID uuid.UUID, valueID *uuid.UUID, customValue string) error {
	if featureID == uuid.Nil {
		return shared.NewDomainError("INVALID_FEATURE", "Feature ID cannot be empty")
	}
	if valueID == nil && customValue == "" {
		return shared.NewDomainError("INVALID_FEATURE_VALUE", "Feature line requires a value or custom value")
	}

	now := time.Now()
	for i := range t.FeatureLines {
		if t.FeatureLines[i].FeatureID == featureID {
			t.FeatureLines[i].ValueID = valueID
			t.FeatureLines[i].CustomValue = customValue
			t.FeatureLines[i].UpdatedAt = now
			t.UpdatedAt = now
			t.IncrementVersion()
			return nil
		}
	}

	t.FeatureLines = append(t.FeatureLines, FeatureLine{
		ID:          uuid.New(),
		TemplateID:  t.ID,
		FeatureID:   featureID,
		ValueID:     valueID,
		CustomValue: customValue,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	t.UpdatedAt = now
	t.IncrementVersion()

	return nil
}

// HasAttributeLines returns true if the template varies on any attribute
func (t *ProductTemplate) HasAttributeLines() bool {
	return len(t.AttributeLines) > 0
}

// Activate activates the template
func (t *ProductTemplate) Activate() {
	t.Active = true
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// Deactivate deactivates the template
func (t *ProductTemplate) Deactivate() {
	t.Active = false
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}
