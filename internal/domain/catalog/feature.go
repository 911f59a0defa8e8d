package catalog

import (
	"time"

	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// Feature represents a non-variant product characteristic (material, origin).
// Unlike attributes, features never generate variants.
type Feature struct {
	shared.TenantAggregateRoot
	Name      string `gorm:"type:varchar(100);not null"`
	SortOrder int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Feature) TableName() string {
	return "product_features"
}

// NewFeature creates a new feature
func NewFeature(tenantID uuid.UUID, name string) (*Feature, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Feature name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Feature name cannot exceed 100 characters")
	}

	return &Feature{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
	}, nil
}

// Rename updates the feature name
func (f *Feature) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Feature name cannot be empty")
	}

	f.Name = name
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// FeatureValue represents one predefined value of a feature
type FeatureValue struct {
	shared.TenantAggregateRoot
	FeatureID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (FeatureValue) TableName() string {
	return "product_feature_values"
}

// NewFeatureValue creates a new feature value
func NewFeatureValue(tenantID, featureID uuid.UUID, name string) (*FeatureValue, error) {
	if featureID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FEATURE", "Feature ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Feature value name cannot be empty")
	}

	return &FeatureValue{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		FeatureID:           featureID,
		Name:                name,
	}, nil
}
