package models

import (
	"encoding/json"
	"time"

	"github.com/shopbridge/backend/internal/domain/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TemplateCategoryLinkModel links a product template to a category.
type TemplateCategoryLinkModel struct {
	TemplateID uuid.UUID `gorm:"type:uuid;primary_key"`
	CategoryID uuid.UUID `gorm:"type:uuid;primary_key;index"`
}

// TableName returns the table name for GORM
func (TemplateCategoryLinkModel) TableName() string {
	return "product_template_categories"
}

// TemplateTaxLinkModel links a product template to a customer tax.
type TemplateTaxLinkModel struct {
	TemplateID uuid.UUID `gorm:"type:uuid;primary_key"`
	TaxID      uuid.UUID `gorm:"type:uuid;primary_key;index"`
}

// TableName returns the table name for GORM
func (TemplateTaxLinkModel) TableName() string {
	return "product_template_taxes"
}

// AttributeLineModel is the persistence model for a template attribute line.
// The allowed value ids are stored as a JSONB array; the line is always
// loaded and written as a whole with its template.
type AttributeLineModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	TemplateID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attr_line_key,priority:1"`
	AttributeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attr_line_key,priority:2"`
	ValueIDs    string    `gorm:"type:jsonb;column:value_ids"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AttributeLineModel) TableName() string {
	return "product_template_attribute_lines"
}

// ToDomain converts the persistence model to a domain AttributeLine.
func (m *AttributeLineModel) ToDomain() catalog.AttributeLine {
	line := catalog.AttributeLine{
		ID:          m.ID,
		TemplateID:  m.TemplateID,
		AttributeID: m.AttributeID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.ValueIDs != "" {
		_ = json.Unmarshal([]byte(m.ValueIDs), &line.ValueIDs)
	}
	return line
}

// AttributeLineModelFromDomain creates a persistence model from a domain AttributeLine.
func AttributeLineModelFromDomain(line catalog.AttributeLine) AttributeLineModel {
	return AttributeLineModel{
		ID:          line.ID,
		TemplateID:  line.TemplateID,
		AttributeID: line.AttributeID,
		ValueIDs:    marshalOrEmpty(line.ValueIDs, "[]"),
		CreatedAt:   line.CreatedAt,
		UpdatedAt:   line.UpdatedAt,
	}
}

// FeatureLineModel is the persistence model for a template feature line.
type FeatureLineModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	TemplateID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_feature_line_key,priority:1"`
	FeatureID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_feature_line_key,priority:2"`
	ValueID     *uuid.UUID `gorm:"type:uuid"`
	CustomValue string     `gorm:"type:varchar(255)"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (FeatureLineModel) TableName() string {
	return "product_template_feature_lines"
}

// ToDomain converts the persistence model to a domain FeatureLine.
func (m *FeatureLineModel) ToDomain() catalog.FeatureLine {
	return catalog.FeatureLine{
		ID:          m.ID,
		TemplateID:  m.TemplateID,
		FeatureID:   m.FeatureID,
		ValueID:     m.ValueID,
		CustomValue: m.CustomValue,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FeatureLineModelFromDomain creates a persistence model from a domain FeatureLine.
func FeatureLineModelFromDomain(line catalog.FeatureLine) FeatureLineModel {
	return FeatureLineModel{
		ID:          line.ID,
		TemplateID:  line.TemplateID,
		FeatureID:   line.FeatureID,
		ValueID:     line.ValueID,
		CustomValue: line.CustomValue,
		CreatedAt:   line.CreatedAt,
		UpdatedAt:   line.UpdatedAt,
	}
}

// VariantValueLinkModel links a product variant to one of its attribute values.
type VariantValueLinkModel struct {
	VariantID        uuid.UUID `gorm:"type:uuid;primary_key"`
	AttributeValueID uuid.UUID `gorm:"type:uuid;primary_key;index"`
}

// TableName returns the table name for GORM
func (VariantValueLinkModel) TableName() string {
	return "product_variant_attribute_values"
}

// BomComponentModel is the persistence model for one bill-of-materials line.
type BomComponentModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	BomID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BomComponentModel) TableName() string {
	return "bom_components"
}

// ToDomain converts the persistence model to a domain BomComponent.
func (m *BomComponentModel) ToDomain() catalog.BomComponent {
	return catalog.BomComponent{
		ID:        m.ID,
		BomID:     m.BomID,
		VariantID: m.VariantID,
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// BomComponentModelFromDomain creates a persistence model from a domain BomComponent.
func BomComponentModelFromDomain(component catalog.BomComponent) BomComponentModel {
	return BomComponentModel{
		ID:        component.ID,
		BomID:     component.BomID,
		VariantID: component.VariantID,
		Quantity:  component.Quantity,
		CreatedAt: component.CreatedAt,
		UpdatedAt: component.UpdatedAt,
	}
}
