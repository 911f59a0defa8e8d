package catalog

import (
	"context"

	"github.com/google/uuid"
)

// AttributeRepository defines the interface for attribute persistence
type AttributeRepository interface {
	// FindByID finds an attribute by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Attribute, error)

	// FindByName finds attributes by exact name within a tenant
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) ([]Attribute, error)

	// FindAllForTenant finds all attributes for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Attribute, error)

	// Save creates or updates an attribute
	Save(ctx context.Context, attribute *Attribute) error

	// Delete deletes an attribute
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttributeValueRepository defines the interface for attribute value persistence
type AttributeValueRepository interface {
	// FindByID finds a value by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*AttributeValue, error)

	// FindByIDs finds multiple values by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]AttributeValue, error)

	// FindByAttribute finds all values of an attribute
	FindByAttribute(ctx context.Context, attributeID uuid.UUID) ([]AttributeValue, error)

	// FindByName finds values by exact name across all attributes of a tenant
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) ([]AttributeValue, error)

	// Save creates or updates a value
	Save(ctx context.Context, value *AttributeValue) error

	// Delete deletes a value
	Delete(ctx context.Context, id uuid.UUID) error
}
