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

// GormProductVariantRepository implements ProductVariantRepository using GORM
type GormProductVariantRepository struct {
	db *gorm.DB
}

// NewGormProductVariantRepository creates a new GormProductVariantRepository
func NewGormProductVariantRepository(db *gorm.DB) *GormProductVariantRepository {
	return &GormProductVariantRepository{db: db}
}

// FindByID finds a variant by its ID, with attribute value IDs
func (r *GormProductVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductVariant, error) {
	var variant catalog.ProductVariant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadValueLinks(ctx, &variant); err != nil {
		return nil, err
	}
	return &variant, nil
}

// FindByTemplate finds all variants of a template
func (r *GormProductVariantRepository) FindByTemplate(ctx context.Context, templateID uuid.UUID) ([]catalog.ProductVariant, error) {
	var variants []catalog.ProductVariant
	if err := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("created_at ASC").
		Find(&variants).Error; err != nil {
		return nil, err
	}
	for i := range variants {
		if err := r.loadValueLinks(ctx, &variants[i]); err != nil {
			return nil, err
		}
	}
	return variants, nil
}

// FindByReference finds variants whose internal reference matches
// case-insensitively within a tenant
func (r *GormProductVariantRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) ([]catalog.ProductVariant, error) {
	if reference == "" {
		return nil, nil
	}
	var variants []catalog.ProductVariant
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(reference) = LOWER(?)", tenantID, reference).
		Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// FindByBarcode finds variants by barcode within a tenant
func (r *GormProductVariantRepository) FindByBarcode(ctx context.Context, tenantID uuid.UUID, barcode string) ([]catalog.ProductVariant, error) {
	if barcode == "" {
		return nil, nil
	}
	var variants []catalog.ProductVariant
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND barcode = ?", tenantID, barcode).
		Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// FindReferences returns the non-empty internal references of all variants
// for a tenant, keyed by variant ID
func (r *GormProductVariantRepository) FindReferences(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]string, error) {
	type row struct {
		ID        uuid.UUID
		Reference string
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&catalog.ProductVariant{}).
		Select("id", "reference").
		Where("tenant_id = ? AND reference <> ''", tenantID).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	references := make(map[uuid.UUID]string, len(rows))
	for _, row := range rows {
		references[row.ID] = row.Reference
	}
	return references, nil
}

// Save creates or updates a variant with its attribute value links
func (r *GormProductVariantRepository) Save(ctx context.Context, variant *catalog.ProductVariant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(variant).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.VariantValueLinkModel{}, "variant_id = ?", variant.ID).Error; err != nil {
			return err
		}
		if len(variant.AttributeValueIDs) > 0 {
			links := make([]models.VariantValueLinkModel, len(variant.AttributeValueIDs))
			for i, valueID := range variant.AttributeValueIDs {
				links[i] = models.VariantValueLinkModel{VariantID: variant.ID, AttributeValueID: valueID}
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes a variant with its value links
func (r *GormProductVariantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.VariantValueLinkModel{}, "variant_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&catalog.ProductVariant{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormProductVariantRepository) loadValueLinks(ctx context.Context, variant *catalog.ProductVariant) error {
	var links []models.VariantValueLinkModel
	if err := r.db.WithContext(ctx).
		Where("variant_id = ?", variant.ID).
		Find(&links).Error; err != nil {
		return err
	}
	for _, link := range links {
		variant.AttributeValueIDs = append(variant.AttributeValueIDs, link.AttributeValueID)
	}
	return nil
}

// Ensure GormProductVariantRepository implements ProductVariantRepository
var _ catalog.ProductVariantRepository = (*GormProductVariantRepository)(nil)
