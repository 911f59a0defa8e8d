package persistence

import (
	"context"
	"errors"

	"github.com/shopbridge/backend/internal/domain/integration"
	"github.com/shopbridge/backend/internal/infrastructure/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormIntegrationRepository implements integration.Repository using GORM
type GormIntegrationRepository struct {
	db *gorm.DB
}

// NewGormIntegrationRepository creates a new GormIntegrationRepository
func NewGormIntegrationRepository(db *gorm.DB) *GormIntegrationRepository {
	return &GormIntegrationRepository{db: db}
}

// FindByID finds an integration by its ID
func (r *GormIntegrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.Integration, error) {
	var model models.IntegrationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrIntegrationNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all integrations of a tenant
func (r *GormIntegrationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]integration.Integration, error) {
	var integrationModels []models.IntegrationModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&integrationModels).Error; err != nil {
		return nil, err
	}
	return toDomainIntegrations(integrationModels), nil
}

// FindByTypeAPI finds all integrations of one API type
func (r *GormIntegrationRepository) FindByTypeAPI(ctx context.Context, typeAPI string) ([]integration.Integration, error) {
	var integrationModels []models.IntegrationModel
	if err := r.db.WithContext(ctx).
		Where("type_api = ?", typeAPI).
		Find(&integrationModels).Error; err != nil {
		return nil, err
	}
	return toDomainIntegrations(integrationModels), nil
}

// FindActive finds all active integrations
func (r *GormIntegrationRepository) FindActive(ctx context.Context) ([]integration.Integration, error) {
	var integrationModels []models.IntegrationModel
	if err := r.db.WithContext(ctx).
		Where("state = ?", string(integration.StateActive)).
		Find(&integrationModels).Error; err != nil {
		return nil, err
	}
	return toDomainIntegrations(integrationModels), nil
}

// Save creates or updates an integration
func (r *GormIntegrationRepository) Save(ctx context.Context, integ *integration.Integration) error {
	model := models.IntegrationModelFromDomain(integ)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an integration with every external record, mapping and
// pending translation in its scope.
func (r *GormIntegrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM integration_pending_translations WHERE external_record_id IN (SELECT id FROM integration_external_records WHERE integration_id = ?)",
			id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.MappingModel{}, "integration_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ExternalRecordModel{}, "integration_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.IntegrationModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return integration.ErrIntegrationNotFound
		}
		return nil
	})
}

func toDomainIntegrations(integrationModels []models.IntegrationModel) []integration.Integration {
	integrations := make([]integration.Integration, len(integrationModels))
	for i := range integrationModels {
		integrations[i] = *integrationModels[i].ToDomain()
	}
	return integrations
}

// Ensure GormIntegrationRepository implements integration.Repository
var _ integration.Repository = (*GormIntegrationRepository)(nil)
