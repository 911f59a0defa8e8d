package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductVariantRepository defines the interface for variant persistence
type ProductVariantRepository interface {
	// FindByID finds a variant by its ID, with attribute value IDs
	FindByID(ctx context.Context, id uuid.UUID) (*ProductVariant, error)

	// FindByTemplate finds all variants of a template
	FindByTemplate(ctx context.Context, templateID uuid.UUID) ([]ProductVariant, error)

	// FindByReference finds variants whose internal reference matches
	// case-insensitively within a tenant
	FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) ([]ProductVariant, error)

	// FindByBarcode finds variants by barcode within a tenant
	FindByBarcode(ctx context.Context, tenantID uuid.UUID, barcode string) ([]ProductVariant, error)

	// FindReferences returns the non-empty internal references of all variants
	// for a tenant, keyed by variant ID. Used for duplicate detection before
	// export.
	FindReferences(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]string, error)

	// Save creates or updates a variant with its attribute value links
	Save(ctx context.Context, variant *ProductVariant) error

	// Delete deletes a variant
	Delete(ctx context.Context, id uuid.UUID) error
}
