package integration

import (
	"context"
	"errors"
	"strings"

	"github.com/shopbridge/backend/internal/domain/catalog"
	"github.com/shopbridge/backend/internal/domain/integration"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductExportService publishes internal product templates to the external
// platform and keeps the resulting mappings. Identity data and pricing are
// exported strictly; images and stock are best effort.
type ProductExportService struct {
	mappings     *MappingService
	mappingRepo  integration.MappingRepository
	templateRepo catalog.ProductTemplateRepository
	variantRepo  catalog.ProductVariantRepository
	stock        StockProvider
	logger       *zap.Logger
}

// NewProductExportService creates a new ProductExportService
func NewProductExportService(
	mappings *MappingService,
	mappingRepo integration.MappingRepository,
	templateRepo catalog.ProductTemplateRepository,
	variantRepo catalog.ProductVariantRepository,
	stock StockProvider,
	logger *zap.Logger,
) *ProductExportService {
	return &ProductExportService{
		mappings:     mappings,
		mappingRepo:  mappingRepo,
		templateRepo: templateRepo,
		variantRepo:  variantRepo,
		stock:        stock,
		logger:       logger,
	}
}

// ExportTemplate exports one internal template. An already mapped template is
// updated in place; an unmapped one is first searched for on the platform to
// avoid creating a duplicate, and only then created.
func (s *ProductExportService) ExportTemplate(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, templateID uuid.UUID) error {
	if !integ.FeatureEnabled(integration.FeatureProductExport) {
		return integration.ErrIntegrationNotActive
	}

	template, err := s.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return err
	}
	variants, err := s.variantRepo.FindByTemplate(ctx, templateID)
	if err != nil {
		return err
	}

	if err := s.validateExport(ctx, integ, template, variants); err != nil {
		return err
	}

	data, err := s.buildExportData(ctx, integ, template, variants)
	if err != nil {
		return err
	}

	record, err := s.mappings.ToExternalRecord(ctx, integ, integration.KindTemplate, template.ID)
	var notMapped *integration.NotMappedToExternalError
	switch {
	case err == nil:
		err = s.updateExisting(ctx, integ, adapter, template, variants, record.Code, data)
	case errors.As(err, &notMapped):
		err = s.exportNew(ctx, integ, adapter, template, variants, data)
	}
	if err != nil {
		return err
	}

	s.exportImagesBestEffort(ctx, integ, adapter, template, data)
	s.exportInventoryBestEffort(ctx, integ, adapter, template, variants)

	return nil
}

// validateExport rejects templates whose variants cannot be identified on the
// platform: every variant needs an internal reference (unless the template
// itself carries one and has a single variant), and no reference may be
// shared with a variant of another product.
func (s *ProductExportService) validateExport(ctx context.Context, integ *integration.Integration, template *catalog.ProductTemplate, variants []catalog.ProductVariant) error {
	for i := range variants {
		if variants[i].Reference == "" && template.Reference == "" {
			return integration.NewImportError(
				"cannot export %q: variant %s has no internal reference", template.Name, variants[i].ID)
		}
	}

	all, err := s.variantRepo.FindReferences(ctx, integ.TenantID)
	if err != nil {
		return err
	}
	owned := make(map[uuid.UUID]struct{}, len(variants))
	for i := range variants {
		owned[variants[i].ID] = struct{}{}
	}
	for i := range variants {
		if variants[i].Reference == "" {
			continue
		}
		for id, reference := range all {
			if _, ours := owned[id]; ours {
				continue
			}
			if strings.EqualFold(reference, variants[i].Reference) {
				return integration.NewImportError(
					"cannot export %q: reference %q is shared with another product",
					template.Name, variants[i].Reference)
			}
		}
	}
	return nil
}

// buildExportData translates the internal template into the adapter's wire
// shape. Categories, taxes and attribute values must already be mapped;
// unmapped ones fail with a structured dependency error so the export can be
// re-queued once the mapping exists.
func (s *ProductExportService) buildExportData(ctx context.Context, integ *integration.Integration, template *catalog.ProductTemplate, variants []catalog.ProductVariant) (*integration.ProductTemplateData, error) {
	data := &integration.ProductTemplateData{
		Name:        integration.TranslatedField{integ.DefaultLanguageCode: template.Name},
		Description: integration.TranslatedField{integ.DefaultLanguageCode: template.Description},
		Reference:   template.Reference,
		Barcode:     template.Barcode,
		ListPrice:   template.ListPrice,
		Cost:        template.Cost,
		Weight:      template.Weight,
		Active:      template.Active,
	}

	for _, categoryID := range template.CategoryIDs {
		code, err := s.mappings.ToExternalCode(ctx, integ, integration.KindCategory, categoryID)
		if err != nil {
			return nil, err
		}
		data.CategoryCodes = append(data.CategoryCodes, code)
	}
	for _, taxID := range template.TaxIDs {
		code, err := s.mappings.ToExternalCode(ctx, integ, integration.KindTax, taxID)
		if err != nil {
			return nil, err
		}
		data.TaxCodes = append(data.TaxCodes, code)
	}

	for i := range variants {
		v := integration.ProductVariantData{
			Reference: variants[i].Reference,
			Barcode:   variants[i].Barcode,
			ListPrice: template.ListPrice.Add(variants[i].ExtraPrice),
			Cost:      variants[i].Cost,
			Weight:    variants[i].Weight,
		}
		for _, valueID := range variants[i].AttributeValueIDs {
			code, err := s.mappings.ToExternalCode(ctx, integ, integration.KindAttributeValue, valueID)
			if err != nil {
				return nil, err
			}
			v.AttributeValueCodes = append(v.AttributeValueCodes, code)
		}
		data.Variants = append(data.Variants, v)
	}

	return data, nil
}

// updateExisting updates an already mapped external template. When the
// platform reports stale external codes (records deleted remotely), the dead
// mappings are dropped and the update retried once; a second failure
// propagates.
func (s *ProductExportService) updateExisting(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, template *catalog.ProductTemplate, variants []catalog.ProductVariant, externalCode string, data *integration.ProductTemplateData) error {
	stale, err := adapter.ValidateTemplateExport(ctx, data)
	if err != nil {
		return err
	}
	if len(stale) > 0 {
		s.logger.Warn("dropping stale product mappings before export",
			zap.String("integration_id", integ.ID.String()),
			zap.Strings("codes", stale))
		if err := s.dropStaleMappings(ctx, integ, stale); err != nil {
			return err
		}
		if staleAgain, err := adapter.ValidateTemplateExport(ctx, data); err != nil {
			return err
		} else if len(staleAgain) > 0 {
			return integration.NewImportError(
				"export of %q keeps referencing stale external records: %s",
				template.Name, strings.Join(staleAgain, ", "))
		}
	}

	result, err := adapter.UpdateTemplate(ctx, externalCode, data)
	if err != nil {
		return err
	}
	return s.commitExportResult(ctx, integ, template, variants, result)
}

// exportNew creates the template on the platform, first adopting an
// equivalent existing external product when the adapter finds one.
func (s *ProductExportService) exportNew(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, template *catalog.ProductTemplate, variants []catalog.ProductVariant, data *integration.ProductTemplateData) error {
	existing, err := adapter.FindExistingTemplate(ctx, data)
	if err != nil {
		return err
	}
	if existing != "" {
		s.logger.Info("adopting existing external product instead of exporting",
			zap.String("integration_id", integ.ID.String()),
			zap.String("code", existing))
		if _, err := s.mappings.CreateIntegrationMapping(ctx, integ, integration.KindTemplate, template.ID, existing); err != nil {
			return err
		}
		return s.updateExisting(ctx, integ, adapter, template, variants, existing, data)
	}

	result, err := adapter.ExportTemplate(ctx, data)
	if err != nil {
		return err
	}
	return s.commitExportResult(ctx, integ, template, variants, result)
}

// commitExportResult records the mappings the platform assigned: the template
// under its external code and each variant under the code reported for its
// internal reference. A single-variant template maps its variant under the
// "-0" pseudo-code.
func (s *ProductExportService) commitExportResult(ctx context.Context, integ *integration.Integration, template *catalog.ProductTemplate, variants []catalog.ProductVariant, result *integration.TemplateExportResult) error {
	if _, err := s.mappings.CreateIntegrationMapping(ctx, integ, integration.KindTemplate, template.ID, result.TemplateCode); err != nil {
		return err
	}

	for i := range variants {
		code, ok := result.VariantCodes[variants[i].Reference]
		if !ok {
			if len(variants) == 1 {
				code = variantMappingCode(result.TemplateCode, "")
			} else {
				s.logger.Warn("export result carries no code for variant",
					zap.String("integration_id", integ.ID.String()),
					zap.String("reference", variants[i].Reference))
				continue
			}
		} else {
			code = variantMappingCode(result.TemplateCode, code)
		}
		if _, err := s.mappings.CreateIntegrationMapping(ctx, integ, integration.KindVariant, variants[i].ID, code); err != nil {
			return err
		}
	}
	return nil
}

// dropStaleMappings deletes mapping rows whose external code the platform
// reported as gone. The external record cache keeps the rows for diagnostics.
func (s *ProductExportService) dropStaleMappings(ctx context.Context, integ *integration.Integration, codes []string) error {
	for _, code := range codes {
		for _, kind := range []integration.EntityKind{integration.KindTemplate, integration.KindVariant} {
			mapping, err := s.mappingRepo.FindByExternalCode(ctx, integ.ID, kind, code)
			if err != nil {
				if errors.Is(err, integration.ErrMappingNotFound) {
					continue
				}
				return err
			}
			if mapping.InternalID == nil {
				continue
			}
			if err := s.mappingRepo.DeleteByInternalIDs(ctx, integ.ID, kind, []uuid.UUID{*mapping.InternalID}); err != nil {
				return err
			}
		}
	}
	return nil
}

// exportImagesBestEffort pushes the template images. Failures are logged and
// swallowed: the product data is already on the platform.
func (s *ProductExportService) exportImagesBestEffort(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, template *catalog.ProductTemplate, data *integration.ProductTemplateData) {
	if len(data.Images) == 0 {
		return
	}
	code, err := s.mappings.ToExternalCode(ctx, integ, integration.KindTemplate, template.ID)
	if err != nil {
		s.logger.Warn("skipping image export for unmapped template",
			zap.String("template_id", template.ID.String()), zap.Error(err))
		return
	}
	if err := adapter.ExportImages(ctx, code, data.Images); err != nil {
		s.logger.Warn("failed to export product images",
			zap.String("integration_id", integ.ID.String()),
			zap.String("code", code),
			zap.Error(err))
	}
}

// exportInventoryBestEffort pushes current stock for the exported variants
// when the integration exports inventory. Failures are logged and swallowed.
func (s *ProductExportService) exportInventoryBestEffort(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, template *catalog.ProductTemplate, variants []catalog.ProductVariant) {
	if s.stock == nil || !integ.FeatureEnabled(integration.FeatureInventoryExport) {
		return
	}

	variantIDs := make([]uuid.UUID, len(variants))
	for i := range variants {
		variantIDs[i] = variants[i].ID
	}
	levels, err := s.stock.OnHand(ctx, integ.TenantID, variantIDs, integ.LocationIDs)
	if err != nil {
		s.logger.Warn("failed to read stock for inventory export",
			zap.String("template_id", template.ID.String()), zap.Error(err))
		return
	}

	items := make(map[string]integration.InventoryItem, len(variants))
	for i := range variants {
		code, err := s.mappings.ToExternalCode(ctx, integ, integration.KindVariant, variants[i].ID)
		if err != nil {
			continue
		}
		items[code] = integration.InventoryItem{
			Quantity:  levels[variants[i].ID].Quantity,
			Reference: variants[i].Reference,
		}
	}
	if len(items) == 0 {
		return
	}
	if err := adapter.ExportInventory(ctx, items); err != nil {
		s.logger.Warn("failed to export inventory",
			zap.String("integration_id", integ.ID.String()),
			zap.Error(err))
	}
}
