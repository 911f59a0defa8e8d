package persistence

import (
	"context"
	"errors"

	"github.com/shopbridge/backend/internal/domain/catalog"
	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAttributeRepository implements AttributeRepository using GORM
type GormAttributeRepository struct {
	db *gorm.DB
}

// NewGormAttributeRepository creates a new GormAttributeRepository
func NewGormAttributeRepository(db *gorm.DB) *GormAttributeRepository {
	return &GormAttributeRepository{db: db}
}

// FindByID finds an attribute by its ID
func (r *GormAttributeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Attribute, error) {
	var attribute catalog.Attribute
	if err := r.db.WithContext(ctx).First(&attribute, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &attribute, nil
}

// FindByName finds attributes by exact name within a tenant
func (r *GormAttributeRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) ([]catalog.Attribute, error) {
	var attributes []catalog.Attribute
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, name).
		Find(&attributes).Error; err != nil {
		return nil, err
	}
	return attributes, nil
}

// FindAllForTenant finds all attributes for a tenant
func (r *GormAttributeRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]catalog.Attribute, error) {
	var attributes []catalog.Attribute
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sort_order ASC, name ASC").
		Find(&attributes).Error; err != nil {
		return nil, err
	}
	return attributes, nil
}

// Save creates or updates an attribute
func (r *GormAttributeRepository) Save(ctx context.Context, attribute *catalog.Attribute) error {
	return r.db.WithContext(ctx).Save(attribute).Error
}

// Delete deletes an attribute
func (r *GormAttributeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Attribute{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormAttributeValueRepository implements AttributeValueRepository using GORM
type GormAttributeValueRepository struct {
	db *gorm.DB
}

// NewGormAttributeValueRepository creates a new GormAttributeValueRepository
func NewGormAttributeValueRepository(db *gorm.DB) *GormAttributeValueRepository {
	return &GormAttributeValueRepository{db: db}
}

// FindByID finds a value by its ID
func (r *GormAttributeValueRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.AttributeValue, error) {
	var value catalog.AttributeValue
	if err := r.db.WithContext(ctx).First(&value, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &value, nil
}

// FindByIDs finds multiple values by their IDs
func (r *GormAttributeValueRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.AttributeValue, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var values []catalog.AttributeValue
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// FindByAttribute finds all values of an attribute
func (r *GormAttributeValueRepository) FindByAttribute(ctx context.Context, attributeID uuid.UUID) ([]catalog.AttributeValue, error) {
	var values []catalog.AttributeValue
	if err := r.db.WithContext(ctx).
		Where("attribute_id = ?", attributeID).
		Order("sort_order ASC, name ASC").
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// FindByName finds values by exact name across all attributes of a tenant
func (r *GormAttributeValueRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) ([]catalog.AttributeValue, error) {
	var values []catalog.AttributeValue
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, name).
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// Save creates or updates a value
func (r *GormAttributeValueRepository) Save(ctx context.Context, value *catalog.AttributeValue) error {
	return r.db.WithContext(ctx).Save(value).Error
}

// Delete deletes a value
func (r *GormAttributeValueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.AttributeValue{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var (
	_ catalog.AttributeRepository      = (*GormAttributeRepository)(nil)
	_ catalog.AttributeValueRepository = (*GormAttributeValueRepository)(nil)
)
