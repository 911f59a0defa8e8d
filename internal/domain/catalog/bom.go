package catalog

import (
	"time"

	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillOfMaterials represents the component list of a kit/manufactured
// template. Rebuilt from scratch whenever a component list is supplied:
// existing lines are dropped and recreated rather than merged.
type BillOfMaterials struct {
	shared.TenantAggregateRoot
	TemplateID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Components []BomComponent `gorm:"-"`
}

// TableName returns the table name for GORM
func (BillOfMaterials) TableName() string {
	return "bills_of_materials"
}

// BomComponent is one component line of a bill of materials
type BomComponent struct {
	ID        uuid.UUID
	BomID     uuid.UUID
	VariantID uuid.UUID
	Quantity  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBillOfMaterials creates a new bill of materials for a template
func NewBillOfMaterials(tenantID, templateID uuid.UUID) (*BillOfMaterials, error) {
	if templateID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TEMPLATE", "Template ID cannot be empty")
	}

	return &BillOfMaterials{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TemplateID:          templateID,
	}, nil
}

// AddComponent appends one component line
func (b *BillOfMaterials) AddComponent(variantID uuid.UUID, quantity decimal.Decimal) error {
	if variantID == uuid.Nil {
		return shared.NewDomainError("INVALID_COMPONENT", "Component variant ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Component quantity must be positive")
	}

	now := time.Now()
	b.Components = append(b.Components, BomComponent{
		ID:        uuid.New(),
		BomID:     b.ID,
		VariantID: variantID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	})
	b.UpdatedAt = now
	b.IncrementVersion()

	return nil
}
