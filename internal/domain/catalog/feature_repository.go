package catalog

import (
	"context"

	"github.com/google/uuid"
)

// FeatureRepository defines the interface for feature persistence
type FeatureRepository interface {
	// FindByID finds a feature by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Feature, error)

	// FindByName finds features by exact name within a tenant
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) ([]Feature, error)

	// FindAllForTenant finds all features for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Feature, error)

	// Save creates or updates a feature
	Save(ctx context.Context, feature *Feature) error

	// Delete deletes a feature
	Delete(ctx context.Context, id uuid.UUID) error
}

// FeatureValueRepository defines the interface for feature value persistence
type FeatureValueRepository interface {
	// FindByID finds a value by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*FeatureValue, error)

	// FindByFeature finds all values of a feature
	FindByFeature(ctx context.Context, featureID uuid.UUID) ([]FeatureValue, error)

	// FindByName finds values by exact name across all features of a tenant
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) ([]FeatureValue, error)

	// Save creates or updates a value
	Save(ctx context.Context, value *FeatureValue) error

	// Delete deletes a value
	Delete(ctx context.Context, id uuid.UUID) error
}
