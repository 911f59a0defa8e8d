package persistence

import (
	"context"
	"errors"

	"github.com/shopbridge/backend/internal/domain/integration"
	"github.com/shopbridge/backend/internal/infrastructure/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMappingRepository implements MappingRepository using GORM
type GormMappingRepository struct {
	db *gorm.DB
}

// NewGormMappingRepository creates a new GormMappingRepository
func NewGormMappingRepository(db *gorm.DB) *GormMappingRepository {
	return &GormMappingRepository{db: db}
}

// FindByExternalRecord finds the mapping of one external record
func (r *GormMappingRepository) FindByExternalRecord(ctx context.Context, integrationID, externalRecordID uuid.UUID) (*integration.Mapping, error) {
	var model models.MappingModel
	if err := r.db.WithContext(ctx).
		Where("integration_id = ? AND external_record_id = ?", integrationID, externalRecordID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrMappingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExternalCode finds the mapping of the external record with the given
// natural key, joining through the external record table
func (r *GormMappingRepository) FindByExternalCode(ctx context.Context, integrationID uuid.UUID, kind integration.EntityKind, code string) (*integration.Mapping, error) {
	var model models.MappingModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN integration_external_records er ON er.id = integration_mappings.external_record_id").
		Where("integration_mappings.integration_id = ? AND er.kind = ? AND er.code = ?", integrationID, string(kind), code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrMappingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLatestByInternal finds the newest mapping of an internal entity
func (r *GormMappingRepository) FindLatestByInternal(ctx context.Context, integrationID uuid.UUID, kind integration.EntityKind, internalID uuid.UUID) (*integration.Mapping, error) {
	var model models.MappingModel
	if err := r.db.WithContext(ctx).
		Where("integration_id = ? AND kind = ? AND internal_id = ?", integrationID, string(kind), internalID).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrMappingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindUnresolved lists mappings whose internal side is still empty
func (r *GormMappingRepository) FindUnresolved(ctx context.Context, integrationID uuid.UUID, kind integration.EntityKind) ([]integration.Mapping, error) {
	var mappingModels []models.MappingModel
	if err := r.db.WithContext(ctx).
		Where("integration_id = ? AND kind = ? AND internal_id IS NULL", integrationID, string(kind)).
		Order("created_at ASC").
		Find(&mappingModels).Error; err != nil {
		return nil, err
	}

	mappings := make([]integration.Mapping, len(mappingModels))
	for i := range mappingModels {
		mappings[i] = *mappingModels[i].ToDomain()
	}
	return mappings, nil
}

// Upsert writes the mapping keyed by (integration, external record). An
// existing row keeps its identity; only the internal side moves.
func (r *GormMappingRepository) Upsert(ctx context.Context, mapping *integration.Mapping) error {
	model := models.MappingModelFromDomain(mapping)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "integration_id"}, {Name: "external_record_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"internal_id", "updated_at"}),
		}).
		Create(model).Error
}

// DeleteByInternalIDs removes mapping rows for the given internal ids; an
// empty set clears the whole kind
func (r *GormMappingRepository) DeleteByInternalIDs(ctx context.Context, integrationID uuid.UUID, kind integration.EntityKind, internalIDs []uuid.UUID) error {
	query := r.db.WithContext(ctx).
		Where("integration_id = ? AND kind = ?", integrationID, string(kind))
	if len(internalIDs) > 0 {
		query = query.Where("internal_id IN ?", internalIDs)
	}
	return query.Delete(&models.MappingModel{}).Error
}

// Ensure GormMappingRepository implements MappingRepository
var _ integration.MappingRepository = (*GormMappingRepository)(nil)
