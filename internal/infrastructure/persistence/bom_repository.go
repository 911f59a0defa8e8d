package persistence

import (
	"context"
	"errors"

	"github.com/shopbridge/backend/internal/domain/catalog"
	"github.com/shopbridge/backend/internal/domain/shared"
	"github.com/shopbridge/backend/internal/infrastructure/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBomRepository implements BomRepository using GORM
type GormBomRepository struct {
	db *gorm.DB
}

// NewGormBomRepository creates a new GormBomRepository
func NewGormBomRepository(db *gorm.DB) *GormBomRepository {
	return &GormBomRepository{db: db}
}

// FindByTemplate finds the bill of materials of a template, with components
func (r *GormBomRepository) FindByTemplate(ctx context.Context, templateID uuid.UUID) (*catalog.BillOfMaterials, error) {
	var bom catalog.BillOfMaterials
	if err := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		First(&bom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	var componentModels []models.BomComponentModel
	if err := r.db.WithContext(ctx).
		Where("bom_id = ?", bom.ID).
		Order("created_at ASC").
		Find(&componentModels).Error; err != nil {
		return nil, err
	}
	for i := range componentModels {
		bom.Components = append(bom.Components, componentModels[i].ToDomain())
	}

	return &bom, nil
}

// Replace deletes any existing bill of materials for the template and
// persists the given one with its components. Component lists are rebuilt
// from scratch, never merged.
func (r *GormBomRepository) Replace(ctx context.Context, bom *catalog.BillOfMaterials) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteBomByTemplate(tx, bom.TemplateID); err != nil {
			return err
		}

		if err := tx.Create(bom).Error; err != nil {
			return err
		}
		if len(bom.Components) > 0 {
			componentModels := make([]models.BomComponentModel, len(bom.Components))
			for i, component := range bom.Components {
				componentModels[i] = models.BomComponentModelFromDomain(component)
			}
			if err := tx.Create(&componentModels).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// DeleteByTemplate removes the bill of materials of a template
func (r *GormBomRepository) DeleteByTemplate(ctx context.Context, templateID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteBomByTemplate(tx, templateID)
	})
}

func deleteBomByTemplate(tx *gorm.DB, templateID uuid.UUID) error {
	if err := tx.Exec(
		"DELETE FROM bom_components WHERE bom_id IN (SELECT id FROM bills_of_materials WHERE template_id = ?)",
		templateID).Error; err != nil {
		return err
	}
	return tx.Delete(&catalog.BillOfMaterials{}, "template_id = ?", templateID).Error
}

// Ensure GormBomRepository implements BomRepository
var _ catalog.BomRepository = (*GormBomRepository)(nil)
