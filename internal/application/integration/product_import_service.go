package integration

import (
	"context"
	"fmt"

	"github.com/shopbridge/backend/internal/domain/catalog"
	"github.com/shopbridge/backend/internal/domain/integration"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImportConfig bounds the product import pipeline.
type ImportConfig struct {
	// MaxImageWidth/MaxImageHeight bound imported image resolution. Images
	// exceeding the bound are dropped.
	MaxImageWidth  int
	MaxImageHeight int
	// ThumbnailSize bounds the square thumbnail rendered per stored image.
	ThumbnailSize int
}

// DefaultImportConfig returns the pipeline defaults.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		MaxImageWidth:  1920,
		MaxImageHeight: 1920,
		ThumbnailSize:  256,
	}
}

// ProductImportService imports external product templates with their
// variants, attribute lines, categories, taxes, features, images and kit
// components into the internal catalog.
type ProductImportService struct {
	mappings       *MappingService
	externals      *ExternalRecordService
	matcher        *TemplateMatcher
	templateRepo   catalog.ProductTemplateRepository
	variantRepo    catalog.ProductVariantRepository
	valueRepo      catalog.AttributeValueRepository
	featureRepo    catalog.FeatureValueRepository
	bomRepo        catalog.BomRepository
	attachmentRepo catalog.ProductAttachmentWriter
	imageStore     ImageStore
	images         ImageProcessor
	capabilities   integration.Capabilities
	config         ImportConfig
	logger         *zap.Logger
}

// NewProductImportService creates a new ProductImportService
func NewProductImportService(
	mappings *MappingService,
	externals *ExternalRecordService,
	matcher *TemplateMatcher,
	templateRepo catalog.ProductTemplateRepository,
	variantRepo catalog.ProductVariantRepository,
	valueRepo catalog.AttributeValueRepository,
	featureRepo catalog.FeatureValueRepository,
	bomRepo catalog.BomRepository,
	attachmentRepo catalog.ProductAttachmentWriter,
	imageStore ImageStore,
	images ImageProcessor,
	capabilities integration.Capabilities,
	config ImportConfig,
	logger *zap.Logger,
) *ProductImportService {
	return &ProductImportService{
		mappings:       mappings,
		externals:      externals,
		matcher:        matcher,
		templateRepo:   templateRepo,
		variantRepo:    variantRepo,
		valueRepo:      valueRepo,
		featureRepo:    featureRepo,
		bomRepo:        bomRepo,
		attachmentRepo: attachmentRepo,
		imageStore:     imageStore,
		images:         images,
		capabilities:   capabilities,
		config:         config,
		logger:         logger,
	}
}

// variantMappingCode builds the pseudo-code a variant is mapped under. A
// template without real variants maps its single implicit variant as
// "{template}-0"; real variants map as "{template}-{variant}".
func variantMappingCode(templateCode, variantCode string) string {
	if variantCode == "" {
		return templateCode + "-0"
	}
	return templateCode + "-" + variantCode
}

// ImportByCodes fetches the given external template codes through the adapter
// and imports each one.
func (s *ProductImportService) ImportByCodes(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, codes []string) error {
	templates, err := adapter.GetProductTemplates(ctx, codes)
	if err != nil {
		return err
	}
	for i := range templates {
		if err := s.ImportOne(ctx, integ, adapter, &templates[i]); err != nil {
			return err
		}
	}
	return nil
}

// ImportOne imports one external template end to end. All validation runs
// before the first write, so a rejected template leaves no partial state.
func (s *ProductImportService) ImportOne(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, data *integration.ProductTemplateData) error {
	return s.importOne(ctx, integ, adapter, data, map[string]struct{}{})
}

// importing guards recursive kit-component imports against cycles.
func (s *ProductImportService) importOne(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, data *integration.ProductTemplateData, importing map[string]struct{}) error {
	if _, active := importing[data.Code]; active {
		return integration.NewImportError("kit product %s is a component of itself", data.Code)
	}
	importing[data.Code] = struct{}{}
	defer delete(importing, data.Code)

	if len(data.KitComponents) > 0 && !s.capabilities.ManufacturingEnabled {
		return integration.NewImportError(
			"product %s is a kit but manufacturing is not enabled", data.Code)
	}

	match, err := s.matcher.Match(ctx, integ, data)
	if err != nil {
		return err
	}

	template, created, err := s.resolveTemplate(ctx, integ, data, match)
	if err != nil {
		return err
	}

	if err := s.applyTemplateFields(ctx, integ, data, template); err != nil {
		return err
	}
	if err := s.templateRepo.Save(ctx, template); err != nil {
		return err
	}

	record, err := s.upsertTemplateRecord(ctx, integ, data)
	if err != nil {
		return err
	}
	if _, err := s.mappings.CreateOrUpdateMapping(ctx, integ, integration.KindTemplate, &template.ID, record); err != nil {
		return err
	}

	variantIDs, err := s.importVariants(ctx, integ, data, template, match)
	if err != nil {
		return err
	}

	if len(data.KitComponents) > 0 {
		if err := s.importKit(ctx, integ, adapter, data, template, importing); err != nil {
			return err
		}
	}

	s.importImages(ctx, integ, data, template, variantIDs)

	s.logger.Info("imported product template",
		zap.String("integration_id", integ.ID.String()),
		zap.String("code", data.Code),
		zap.Bool("created", created),
		zap.Int("variants", len(data.Variants)))

	return nil
}

// resolveTemplate loads the matched internal template or creates a new one.
func (s *ProductImportService) resolveTemplate(ctx context.Context, integ *integration.Integration, data *integration.ProductTemplateData, match *TemplateMatch) (*catalog.ProductTemplate, bool, error) {
	name, err := s.defaultLanguageName(integ, data)
	if err != nil {
		return nil, false, err
	}

	if match.TemplateID != nil {
		template, err := s.templateRepo.FindByID(ctx, *match.TemplateID)
		if err != nil {
			return nil, false, err
		}
		return template, false, nil
	}

	template, err := catalog.NewProductTemplate(integ.TenantID, name)
	if err != nil {
		return nil, false, err
	}
	return template, true, nil
}

func (s *ProductImportService) defaultLanguageName(integ *integration.Integration, data *integration.ProductTemplateData) (string, error) {
	if len(data.Name) == 0 {
		return "", integration.NewImportError("product %s has no name", data.Code)
	}
	name, _, err := data.Name.Resolve(integ.DefaultLanguageCode)
	if err != nil {
		return "", err
	}
	return name, nil
}

// applyTemplateFields writes names, pricing, reference, categories, taxes,
// attribute lines and feature lines onto the template. References and
// barcodes only fill empty fields; the internal side stays the source of
// truth once set.
func (s *ProductImportService) applyTemplateFields(ctx context.Context, integ *integration.Integration, data *integration.ProductTemplateData, template *catalog.ProductTemplate) error {
	name, err := s.defaultLanguageName(integ, data)
	if err != nil {
		return err
	}
	description := ""
	if len(data.Description) > 0 {
		if description, _, err = data.Description.Resolve(integ.DefaultLanguageCode); err != nil {
			return err
		}
	}
	if err := template.Update(name, description); err != nil {
		return err
	}

	if err := template.SetPricing(data.ListPrice, data.Cost, data.Weight); err != nil {
		return err
	}
	if err := template.SetReference(data.Reference); err != nil {
		return err
	}
	if err := template.SetBarcode(data.Barcode); err != nil {
		return err
	}

	categoryIDs, err := s.mapAll(ctx, integ, integration.KindCategory, data.CategoryCodes)
	if err != nil {
		return err
	}
	template.SetCategories(categoryIDs)

	taxIDs, err := s.mapAll(ctx, integ, integration.KindTax, data.TaxCodes)
	if err != nil {
		return err
	}
	template.SetTaxes(taxIDs)

	if err := s.applyAttributeLines(ctx, integ, data, template); err != nil {
		return err
	}
	return s.applyFeatureLines(ctx, integ, data, template)
}

// mapAll resolves a list of external codes to internal ids, failing with a
// structured dependency error on the first unmapped code.
func (s *ProductImportService) mapAll(ctx context.Context, integ *integration.Integration, kind integration.EntityKind, codes []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(codes))
	for _, code := range codes {
		id, err := s.mappings.ToInternal(ctx, integ, kind, code, true)
		if err != nil {
			return nil, err
		}
		ids = append(ids, *id)
	}
	return ids, nil
}

// applyAttributeLines derives the template's attribute lines from the union
// of all variant attribute value codes, grouped per internal attribute.
func (s *ProductImportService) applyAttributeLines(ctx context.Context, integ *integration.Integration, data *integration.ProductTemplateData, template *catalog.ProductTemplate) error {
	seen := make(map[string]struct{})
	byAttribute := make(map[uuid.UUID][]uuid.UUID)

	for _, v := range data.Variants {
		for _, code := range v.AttributeValueCodes {
			if _, done := seen[code]; done {
				continue
			}
			seen[code] = struct{}{}

			valueID, err := s.mappings.ToInternal(ctx, integ, integration.KindAttributeValue, code, true)
			if err != nil {
				return err
			}
			value, err := s.valueRepo.FindByID(ctx, *valueID)
			if err != nil {
				return err
			}
			byAttribute[value.AttributeID] = append(byAttribute[value.AttributeID], value.ID)
		}
	}

	for attributeID, valueIDs := range byAttribute {
		if err := template.SetAttributeLine(attributeID, valueIDs); err != nil {
			return err
		}
	}
	return nil
}

func (s *ProductImportService) applyFeatureLines(ctx context.Context, integ *integration.Integration, data *integration.ProductTemplateData, template *catalog.ProductTemplate) error {
	for _, ref := range data.FeatureValues {
		featureID, err := s.mappings.ToInternal(ctx, integ, integration.KindFeature, ref.FeatureCode, true)
		if err != nil {
			return err
		}
		valueID, err := s.mappings.ToInternal(ctx, integ, integration.KindFeatureValue, ref.ValueCode, true)
		if err != nil {
			return err
		}
		if err := template.SetFeatureLine(*featureID, valueID, ""); err != nil {
			return err
		}
	}
	return nil
}

// upsertTemplateRecord refreshes the external record of the template itself
// and stores any non-default-language names as pending translations.
func (s *ProductImportService) upsertTemplateRecord(ctx context.Context, integ *integration.Integration, data *integration.ProductTemplateData) (*integration.ExternalRecord, error) {
	values := []integration.ExternalValue{{
		Code:            data.Code,
		Reference:       data.Reference,
		TranslatedNames: data.Name,
	}}
	records, err := s.externals.ImportValues(ctx, integ, integration.KindTemplate, values)
	if err != nil {
		return nil, err
	}
	return records[0], nil
}

// importVariants creates or updates the internal variant per external
// variant and returns the internal variant id per external variant code. A
// template without real variants still maps its single implicit variant under
// the "-0" pseudo-code, keyed by the empty code.
func (s *ProductImportService) importVariants(ctx context.Context, integ *integration.Integration, data *integration.ProductTemplateData, template *catalog.ProductTemplate, match *TemplateMatch) (map[string]uuid.UUID, error) {
	if len(data.Variants) == 0 {
		return s.importSingleVariant(ctx, integ, data, template, match)
	}

	ids := make(map[string]uuid.UUID, len(data.Variants))
	for _, v := range data.Variants {
		variant, err := s.resolveOrCreateVariant(ctx, integ, template, v, match.VariantMatches[v.Code])
		if err != nil {
			return nil, err
		}
		if err := s.applyVariantFields(template, variant, v); err != nil {
			return nil, err
		}
		if err := s.variantRepo.Save(ctx, variant); err != nil {
			return nil, err
		}
		if err := s.mapVariant(ctx, integ, data.Code, v.Code, variant.ID); err != nil {
			return nil, err
		}
		ids[v.Code] = variant.ID
	}
	return ids, nil
}

// importSingleVariant ensures the implicit variant of a variant-less template.
func (s *ProductImportService) importSingleVariant(ctx context.Context, integ *integration.Integration, data *integration.ProductTemplateData, template *catalog.ProductTemplate, match *TemplateMatch) (map[string]uuid.UUID, error) {
	variants, err := s.variantRepo.FindByTemplate(ctx, template.ID)
	if err != nil {
		return nil, err
	}

	var variant *catalog.ProductVariant
	if len(variants) > 0 {
		variant = &variants[0]
	} else {
		if variant, err = catalog.NewProductVariant(integ.TenantID, template.ID, nil); err != nil {
			return nil, err
		}
	}

	if err := variant.SetReference(data.Reference); err != nil {
		return nil, err
	}
	if err := variant.SetBarcode(data.Barcode); err != nil {
		return nil, err
	}
	if err := variant.SetCostAndWeight(data.Cost, data.Weight); err != nil {
		return nil, err
	}
	if err := s.variantRepo.Save(ctx, variant); err != nil {
		return nil, err
	}
	if err := s.mapVariant(ctx, integ, data.Code, "", variant.ID); err != nil {
		return nil, err
	}
	return map[string]uuid.UUID{"": variant.ID}, nil
}

func (s *ProductImportService) resolveOrCreateVariant(ctx context.Context, integ *integration.Integration, template *catalog.ProductTemplate, v integration.ProductVariantData, matchedID *uuid.UUID) (*catalog.ProductVariant, error) {
	if matchedID != nil {
		return s.variantRepo.FindByID(ctx, *matchedID)
	}

	valueIDs, err := s.mapAll(ctx, integ, integration.KindAttributeValue, v.AttributeValueCodes)
	if err != nil {
		return nil, err
	}
	return catalog.NewProductVariant(integ.TenantID, template.ID, valueIDs)
}

// applyVariantFields backfills identity fields and recomputes the price delta
// against the template list price.
func (s *ProductImportService) applyVariantFields(template *catalog.ProductTemplate, variant *catalog.ProductVariant, v integration.ProductVariantData) error {
	if err := variant.SetReference(v.Reference); err != nil {
		return err
	}
	if err := variant.SetBarcode(v.Barcode); err != nil {
		return err
	}
	if err := variant.SetCostAndWeight(v.Cost, v.Weight); err != nil {
		return err
	}
	if !v.ListPrice.IsZero() {
		variant.SetExtraPrice(v.ListPrice.Sub(template.ListPrice))
	}
	return nil
}

func (s *ProductImportService) mapVariant(ctx context.Context, integ *integration.Integration, templateCode, variantCode string, variantID uuid.UUID) error {
	_, err := s.mappings.CreateIntegrationMapping(ctx, integ, integration.KindVariant,
		variantID, variantMappingCode(templateCode, variantCode))
	return err
}

// importKit rebuilds the template's bill of materials from the external kit
// component list: the existing bill is dropped and recreated, never merged.
// Components not yet imported are imported just in time through the adapter.
func (s *ProductImportService) importKit(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, data *integration.ProductTemplateData, template *catalog.ProductTemplate, importing map[string]struct{}) error {
	bom, err := catalog.NewBillOfMaterials(integ.TenantID, template.ID)
	if err != nil {
		return err
	}

	for _, component := range data.KitComponents {
		variantID, err := s.resolveKitComponent(ctx, integ, adapter, component, importing)
		if err != nil {
			return err
		}
		if err := bom.AddComponent(variantID, component.Quantity); err != nil {
			return err
		}
	}

	return s.bomRepo.Replace(ctx, bom)
}

// resolveKitComponent maps one kit component to an internal variant,
// importing the component product first when it is not mapped yet.
func (s *ProductImportService) resolveKitComponent(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, component integration.KitComponent, importing map[string]struct{}) (uuid.UUID, error) {
	code := variantMappingCode(component.ProductCode, component.VariantCode)

	id, err := s.mappings.ToInternal(ctx, integ, integration.KindVariant, code, false)
	if err != nil {
		return uuid.Nil, err
	}
	if id != nil {
		return *id, nil
	}

	templates, err := adapter.GetProductTemplates(ctx, []string{component.ProductCode})
	if err != nil {
		return uuid.Nil, err
	}
	if len(templates) == 0 {
		return uuid.Nil, integration.NewImportError(
			"kit component %s not found on the external platform", component.ProductCode)
	}
	if err := s.importOne(ctx, integ, adapter, &templates[0], importing); err != nil {
		return uuid.Nil, err
	}

	id, err = s.mappings.ToInternal(ctx, integ, integration.KindVariant, code, true)
	if err != nil {
		return uuid.Nil, err
	}
	return *id, nil
}

// importImages persists template and variant images. The first template image
// within the resolution bound becomes the main image, the remaining ones the
// gallery; images exceeding the bound are dropped. Each variant's first valid
// image becomes its primary image. Image failures never fail the import; the
// product data is already committed.
func (s *ProductImportService) importImages(ctx context.Context, integ *integration.Integration, data *integration.ProductTemplateData, template *catalog.ProductTemplate, variantIDs map[string]uuid.UUID) {
	if s.imageStore == nil || s.images == nil {
		return
	}

	position := 0
	for _, img := range data.Images {
		key, ok := s.storeImage(ctx, data.Code, fmt.Sprintf("products/%s/template/%s", template.ID, img.Code), img)
		if !ok {
			continue
		}
		attachmentType := catalog.AttachmentTypeGalleryImage
		if position == 0 {
			attachmentType = catalog.AttachmentTypeMainImage
		}
		s.saveAttachment(ctx, integ, template.ID, attachmentType, position, img, key)
		position++
	}

	for _, v := range data.Variants {
		variantID, mapped := variantIDs[v.Code]
		if !mapped {
			continue
		}
		s.importVariantImage(ctx, data.Code, template.ID, variantID, v)
	}
}

// storeImage validates one image against the resolution bound and puts it in
// object storage. Returns the storage key and whether the image was kept.
func (s *ProductImportService) storeImage(ctx context.Context, productCode, key string, img integration.ProductImage) (string, bool) {
	if len(img.Data) == 0 {
		s.logger.Warn("skipping image without data",
			zap.String("code", productCode),
			zap.String("image", img.Code))
		return "", false
	}

	width, height, err := s.images.Bounds(img.Data)
	if err != nil {
		s.logger.Warn("failed to decode product image",
			zap.String("code", productCode),
			zap.String("image", img.Code),
			zap.Error(err))
		return "", false
	}
	if width > s.config.MaxImageWidth || height > s.config.MaxImageHeight {
		s.logger.Debug("dropping oversized product image",
			zap.String("code", productCode),
			zap.String("image", img.Code),
			zap.Int("width", width),
			zap.Int("height", height))
		return "", false
	}

	if _, err := s.imageStore.Put(ctx, key, img.Data, "image/jpeg"); err != nil {
		s.logger.Warn("failed to store product image",
			zap.String("code", productCode),
			zap.String("image", img.Code),
			zap.Error(err))
		return "", false
	}
	return key, true
}

// saveAttachment records the stored image as a confirmed product attachment
// with a rendered thumbnail.
func (s *ProductImportService) saveAttachment(ctx context.Context, integ *integration.Integration, templateID uuid.UUID, attachmentType catalog.AttachmentType, position int, img integration.ProductImage, key string) {
	if s.attachmentRepo == nil {
		return
	}

	attachment, err := catalog.NewProductAttachment(integ.TenantID, templateID, attachmentType,
		img.Code+".jpg", int64(len(img.Data)), "image/jpeg", key, nil)
	if err != nil {
		s.logger.Warn("failed to build product attachment",
			zap.String("image", img.Code), zap.Error(err))
		return
	}
	if err := attachment.SetSortOrder(position); err != nil {
		s.logger.Warn("failed to order product attachment",
			zap.String("image", img.Code), zap.Error(err))
		return
	}

	if thumb, err := s.images.Thumbnail(img.Data, s.config.ThumbnailSize, s.config.ThumbnailSize); err != nil {
		s.logger.Warn("failed to render image thumbnail",
			zap.String("image", img.Code), zap.Error(err))
	} else if _, err := s.imageStore.Put(ctx, key+".thumb.jpg", thumb, "image/jpeg"); err != nil {
		s.logger.Warn("failed to store image thumbnail",
			zap.String("image", img.Code), zap.Error(err))
	} else if err := attachment.SetThumbnailKey(key + ".thumb.jpg"); err != nil {
		s.logger.Warn("failed to set thumbnail key",
			zap.String("image", img.Code), zap.Error(err))
	}

	if err := attachment.Confirm(); err != nil {
		s.logger.Warn("failed to confirm product attachment",
			zap.String("image", img.Code), zap.Error(err))
		return
	}
	if err := s.attachmentRepo.Save(ctx, attachment); err != nil {
		s.logger.Warn("failed to save product attachment",
			zap.String("image", img.Code), zap.Error(err))
	}
}

// importVariantImage stores the variant's first valid image as its primary
// image.
func (s *ProductImportService) importVariantImage(ctx context.Context, productCode string, templateID, variantID uuid.UUID, v integration.ProductVariantData) {
	for _, img := range v.Images {
		key, ok := s.storeImage(ctx, productCode, fmt.Sprintf("products/%s/%s/%s", templateID, v.Code, img.Code), img)
		if !ok {
			continue
		}

		variant, err := s.variantRepo.FindByID(ctx, variantID)
		if err != nil {
			s.logger.Warn("failed to load variant for image",
				zap.String("code", productCode),
				zap.String("variant", v.Code),
				zap.Error(err))
			return
		}
		if err := variant.SetImageKey(key); err != nil {
			s.logger.Warn("failed to set variant image key",
				zap.String("variant", v.Code), zap.Error(err))
			return
		}
		if err := s.variantRepo.Save(ctx, variant); err != nil {
			s.logger.Warn("failed to save variant image key",
				zap.String("variant", v.Code), zap.Error(err))
		}
		return
	}
}
