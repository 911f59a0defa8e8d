package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/shopbridge/backend/internal/domain/integration"
	"github.com/shopbridge/backend/internal/infrastructure/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormExternalRecordRepository implements ExternalRecordRepository using GORM
type GormExternalRecordRepository struct {
	db *gorm.DB
}

// NewGormExternalRecordRepository creates a new GormExternalRecordRepository
func NewGormExternalRecordRepository(db *gorm.DB) *GormExternalRecordRepository {
	return &GormExternalRecordRepository{db: db}
}

// FindByID finds a record by its ID
func (r *GormExternalRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.ExternalRecord, error) {
	var model models.ExternalRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrExternalRecordNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a record by its natural key
func (r *GormExternalRecordRepository) FindByCode(ctx context.Context, integrationID uuid.UUID, kind integration.EntityKind, code string) (*integration.ExternalRecord, error) {
	var model models.ExternalRecordModel
	if err := r.db.WithContext(ctx).
		Where("integration_id = ? AND kind = ? AND code = ?", integrationID, string(kind), code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, integration.ErrExternalRecordNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReference finds records by external reference within a kind
func (r *GormExternalRecordRepository) FindByReference(ctx context.Context, integrationID uuid.UUID, kind integration.EntityKind, reference string) ([]integration.ExternalRecord, error) {
	var recordModels []models.ExternalRecordModel
	if err := r.db.WithContext(ctx).
		Where("integration_id = ? AND kind = ? AND LOWER(external_reference) = LOWER(?)", integrationID, string(kind), reference).
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainExternalRecords(recordModels), nil
}

// FindByCodePrefix finds records whose code starts with the given prefix
func (r *GormExternalRecordRepository) FindByCodePrefix(ctx context.Context, integrationID uuid.UUID, kind integration.EntityKind, prefix string) ([]integration.ExternalRecord, error) {
	var recordModels []models.ExternalRecordModel
	pattern := escapeLikePattern(prefix) + "%"
	if err := r.db.WithContext(ctx).
		Where("integration_id = ? AND kind = ? AND code LIKE ?", integrationID, string(kind), pattern).
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainExternalRecords(recordModels), nil
}

// FindByKind finds all records of one kind within an integration
func (r *GormExternalRecordRepository) FindByKind(ctx context.Context, integrationID uuid.UUID, kind integration.EntityKind) ([]integration.ExternalRecord, error) {
	var recordModels []models.ExternalRecordModel
	if err := r.db.WithContext(ctx).
		Where("integration_id = ? AND kind = ?", integrationID, string(kind)).
		Order("code ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	return toDomainExternalRecords(recordModels), nil
}

// Upsert writes the record keyed by (integration, kind, code)
func (r *GormExternalRecordRepository) Upsert(ctx context.Context, record *integration.ExternalRecord) error {
	model := models.ExternalRecordModelFromDomain(record)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "integration_id"}, {Name: "kind"}, {Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "external_reference", "parent_code", "raw", "updated_at",
			}),
		}).
		Create(model).Error
}

// Delete removes a record with its pending translations
func (r *GormExternalRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PendingTranslationModel{}, "external_record_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ExternalRecordModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return integration.ErrExternalRecordNotFound
		}
		return nil
	})
}

// SavePendingTranslations upserts pending translations keyed by
// (record, field, language)
func (r *GormExternalRecordRepository) SavePendingTranslations(ctx context.Context, translations []integration.PendingTranslation) error {
	if len(translations) == 0 {
		return nil
	}

	translationModels := make([]models.PendingTranslationModel, len(translations))
	for i, t := range translations {
		id := t.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		translationModels[i] = models.PendingTranslationModel{
			ID:               id,
			ExternalRecordID: t.ExternalRecordID,
			Field:            t.Field,
			LanguageCode:     t.LanguageCode,
			Value:            t.Value,
		}
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_record_id"}, {Name: "field"}, {Name: "language_code"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&translationModels).Error
}

// FindPendingTranslations finds the pending translations of a record
func (r *GormExternalRecordRepository) FindPendingTranslations(ctx context.Context, externalRecordID uuid.UUID) ([]integration.PendingTranslation, error) {
	var translationModels []models.PendingTranslationModel
	if err := r.db.WithContext(ctx).
		Where("external_record_id = ?", externalRecordID).
		Order("language_code ASC").
		Find(&translationModels).Error; err != nil {
		return nil, err
	}

	translations := make([]integration.PendingTranslation, len(translationModels))
	for i := range translationModels {
		translations[i] = translationModels[i].ToDomain()
	}
	return translations, nil
}

func toDomainExternalRecords(recordModels []models.ExternalRecordModel) []integration.ExternalRecord {
	records := make([]integration.ExternalRecord, len(recordModels))
	for i := range recordModels {
		records[i] = *recordModels[i].ToDomain()
	}
	return records
}

// escapeLikePattern escapes special characters in LIKE patterns
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}

// Ensure GormExternalRecordRepository implements ExternalRecordRepository
var _ integration.ExternalRecordRepository = (*GormExternalRecordRepository)(nil)
