package persistence

import (
	"context"
	"errors"

	"github.com/shopbridge/backend/internal/domain/catalog"
	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormFeatureRepository implements FeatureRepository using GORM
type GormFeatureRepository struct {
	db *gorm.DB
}

// NewGormFeatureRepository creates a new GormFeatureRepository
func NewGormFeatureRepository(db *gorm.DB) *GormFeatureRepository {
	return &GormFeatureRepository{db: db}
}

// FindByID finds a feature by its ID
func (r *GormFeatureRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Feature, error) {
	var feature catalog.Feature
	if err := r.db.WithContext(ctx).First(&feature, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &feature, nil
}

// FindByName finds features by exact name within a tenant
func (r *GormFeatureRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) ([]catalog.Feature, error) {
	var features []catalog.Feature
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, name).
		Find(&features).Error; err != nil {
		return nil, err
	}
	return features, nil
}

// FindAllForTenant finds all features for a tenant
func (r *GormFeatureRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]catalog.Feature, error) {
	var features []catalog.Feature
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sort_order ASC, name ASC").
		Find(&features).Error; err != nil {
		return nil, err
	}
	return features, nil
}

// Save creates or updates a feature
func (r *GormFeatureRepository) Save(ctx context.Context, feature *catalog.Feature) error {
	return r.db.WithContext(ctx).Save(feature).Error
}

// Delete deletes a feature
func (r *GormFeatureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Feature{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormFeatureValueRepository implements FeatureValueRepository using GORM
type GormFeatureValueRepository struct {
	db *gorm.DB
}

// NewGormFeatureValueRepository creates a new GormFeatureValueRepository
func NewGormFeatureValueRepository(db *gorm.DB) *GormFeatureValueRepository {
	return &GormFeatureValueRepository{db: db}
}

// FindByID finds a value by its ID
func (r *GormFeatureValueRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.FeatureValue, error) {
	var value catalog.FeatureValue
	if err := r.db.WithContext(ctx).First(&value, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &value, nil
}

// FindByFeature finds all values of a feature
func (r *GormFeatureValueRepository) FindByFeature(ctx context.Context, featureID uuid.UUID) ([]catalog.FeatureValue, error) {
	var values []catalog.FeatureValue
	if err := r.db.WithContext(ctx).
		Where("feature_id = ?", featureID).
		Order("name ASC").
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// FindByName finds values by exact name across all features of a tenant
func (r *GormFeatureValueRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) ([]catalog.FeatureValue, error) {
	var values []catalog.FeatureValue
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, name).
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// Save creates or updates a value
func (r *GormFeatureValueRepository) Save(ctx context.Context, value *catalog.FeatureValue) error {
	return r.db.WithContext(ctx).Save(value).Error
}

// Delete deletes a value
func (r *GormFeatureValueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.FeatureValue{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var (
	_ catalog.FeatureRepository      = (*GormFeatureRepository)(nil)
	_ catalog.FeatureValueRepository = (*GormFeatureValueRepository)(nil)
)
