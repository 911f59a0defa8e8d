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

// GormProductTemplateRepository implements ProductTemplateRepository using GORM
type GormProductTemplateRepository struct {
	db *gorm.DB
}

// NewGormProductTemplateRepository creates a new GormProductTemplateRepository
func NewGormProductTemplateRepository(db *gorm.DB) *GormProductTemplateRepository {
	return &GormProductTemplateRepository{db: db}
}

// FindByID finds a template by its ID, with attribute and feature lines
func (r *GormProductTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductTemplate, error) {
	var template catalog.ProductTemplate
	if err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadGraph(ctx, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

// FindByReference finds templates whose internal reference matches
// case-insensitively within a tenant
func (r *GormProductTemplateRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) ([]catalog.ProductTemplate, error) {
	if reference == "" {
		return nil, nil
	}
	var templates []catalog.ProductTemplate
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(reference) = LOWER(?)", tenantID, reference).
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// FindByBarcode finds templates by barcode within a tenant
func (r *GormProductTemplateRepository) FindByBarcode(ctx context.Context, tenantID uuid.UUID, barcode string) ([]catalog.ProductTemplate, error) {
	if barcode == "" {
		return nil, nil
	}
	var templates []catalog.ProductTemplate
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND barcode = ?", tenantID, barcode).
		Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// FindAllForTenant finds all templates for a tenant
func (r *GormProductTemplateRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.ProductTemplate, error) {
	var templates []catalog.ProductTemplate
	query := r.db.WithContext(ctx).
		Model(&catalog.ProductTemplate{}).
		Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		pattern := "%" + escapeLikePattern(filter.Search) + "%"
		query = query.Where("name ILIKE ? OR reference ILIKE ?", pattern, pattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	query = query.Order("name ASC")

	if err := query.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Save creates or updates a template with its attribute and feature lines.
// Category, tax, attribute and feature links are replaced as a whole.
func (r *GormProductTemplateRepository) Save(ctx context.Context, template *catalog.ProductTemplate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(template).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.TemplateCategoryLinkModel{}, "template_id = ?", template.ID).Error; err != nil {
			return err
		}
		if len(template.CategoryIDs) > 0 {
			links := make([]models.TemplateCategoryLinkModel, len(template.CategoryIDs))
			for i, categoryID := range template.CategoryIDs {
				links[i] = models.TemplateCategoryLinkModel{TemplateID: template.ID, CategoryID: categoryID}
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&models.TemplateTaxLinkModel{}, "template_id = ?", template.ID).Error; err != nil {
			return err
		}
		if len(template.TaxIDs) > 0 {
			links := make([]models.TemplateTaxLinkModel, len(template.TaxIDs))
			for i, taxID := range template.TaxIDs {
				links[i] = models.TemplateTaxLinkModel{TemplateID: template.ID, TaxID: taxID}
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&models.AttributeLineModel{}, "template_id = ?", template.ID).Error; err != nil {
			return err
		}
		if len(template.AttributeLines) > 0 {
			lines := make([]models.AttributeLineModel, len(template.AttributeLines))
			for i, line := range template.AttributeLines {
				lines[i] = models.AttributeLineModelFromDomain(line)
			}
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&models.FeatureLineModel{}, "template_id = ?", template.ID).Error; err != nil {
			return err
		}
		if len(template.FeatureLines) > 0 {
			lines := make([]models.FeatureLineModel, len(template.FeatureLines))
			for i, line := range template.FeatureLines {
				lines[i] = models.FeatureLineModelFromDomain(line)
			}
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes a template with its lines and links
func (r *GormProductTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.TemplateCategoryLinkModel{}, "template_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.TemplateTaxLinkModel{}, "template_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.AttributeLineModel{}, "template_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.FeatureLineModel{}, "template_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&catalog.ProductTemplate{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// loadGraph populates category/tax links and attribute/feature lines
func (r *GormProductTemplateRepository) loadGraph(ctx context.Context, template *catalog.ProductTemplate) error {
	var categoryLinks []models.TemplateCategoryLinkModel
	if err := r.db.WithContext(ctx).
		Where("template_id = ?", template.ID).
		Find(&categoryLinks).Error; err != nil {
		return err
	}
	for _, link := range categoryLinks {
		template.CategoryIDs = append(template.CategoryIDs, link.CategoryID)
	}

	var taxLinks []models.TemplateTaxLinkModel
	if err := r.db.WithContext(ctx).
		Where("template_id = ?", template.ID).
		Find(&taxLinks).Error; err != nil {
		return err
	}
	for _, link := range taxLinks {
		template.TaxIDs = append(template.TaxIDs, link.TaxID)
	}

	var attributeLines []models.AttributeLineModel
	if err := r.db.WithContext(ctx).
		Where("template_id = ?", template.ID).
		Order("created_at ASC").
		Find(&attributeLines).Error; err != nil {
		return err
	}
	for i := range attributeLines {
		template.AttributeLines = append(template.AttributeLines, attributeLines[i].ToDomain())
	}

	var featureLines []models.FeatureLineModel
	if err := r.db.WithContext(ctx).
		Where("template_id = ?", template.ID).
		Order("created_at ASC").
		Find(&featureLines).Error; err != nil {
		return err
	}
	for i := range featureLines {
		template.FeatureLines = append(template.FeatureLines, featureLines[i].ToDomain())
	}

	return nil
}

// Ensure GormProductTemplateRepository implements ProductTemplateRepository
var _ catalog.ProductTemplateRepository = (*GormProductTemplateRepository)(nil)
