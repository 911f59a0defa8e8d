package catalog

import (
	"context"

	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// ProductTemplateRepository defines the interface for template persistence
type ProductTemplateRepository interface {
	// FindByID finds a template by its ID, with attribute and feature lines
	FindByID(ctx context.Context, id uuid.UUID) (*ProductTemplate, error)

	// FindByReference finds templates whose internal reference matches
	// case-insensitively within a tenant
	FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) ([]ProductTemplate, error)

	// FindByBarcode finds templates by barcode within a tenant
	FindByBarcode(ctx context.Context, tenantID uuid.UUID, barcode string) ([]ProductTemplate, error)

	// FindAllForTenant finds all templates for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProductTemplate, error)

	// Save creates or updates a template with its attribute and feature lines
	Save(ctx context.Context, template *ProductTemplate) error

	// Delete deletes a template
	Delete(ctx context.Context, id uuid.UUID) error
}
