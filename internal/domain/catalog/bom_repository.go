package catalog

import (
	"context"

	"github.com/google/uuid"
)

// BomRepository defines the interface for bill-of-materials persistence
type BomRepository interface {
	// FindByTemplate finds the bill of materials of a template, with components
	FindByTemplate(ctx context.Context, templateID uuid.UUID) (*BillOfMaterials, error)

	// Replace deletes any existing bill of materials for the template and
	// persists the given one with its components
	Replace(ctx context.Context, bom *BillOfMaterials) error

	// DeleteByTemplate removes the bill of materials of a template
	DeleteByTemplate(ctx context.Context, templateID uuid.UUID) error
}
