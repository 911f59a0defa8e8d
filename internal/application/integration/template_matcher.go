package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopbridge/backend/internal/domain/catalog"
	"github.com/shopbridge/backend/internal/domain/integration"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TemplateMatch is the outcome of matching one external template against the
// internal catalog. VariantMatches is keyed by external variant code; a nil
// value means the variant stays unmatched and is imported as external-only.
type TemplateMatch struct {
	TemplateID     *uuid.UUID
	VariantMatches map[string]*uuid.UUID
}

// TemplateMatcher resolves external product templates and variants to
// internal catalog records by mapped code, internal reference, barcode and
// attribute-value-set comparison, in that priority order.
type TemplateMatcher struct {
	mappingRepo  integration.MappingRepository
	externalRepo integration.ExternalRecordRepository
	templateRepo catalog.ProductTemplateRepository
	variantRepo  catalog.ProductVariantRepository
	logger       *zap.Logger
}

// NewTemplateMatcher creates a new TemplateMatcher
func NewTemplateMatcher(
	mappingRepo integration.MappingRepository,
	externalRepo integration.ExternalRecordRepository,
	templateRepo catalog.ProductTemplateRepository,
	variantRepo catalog.ProductVariantRepository,
	logger *zap.Logger,
) *TemplateMatcher {
	return &TemplateMatcher{
		mappingRepo:  mappingRepo,
		externalRepo: externalRepo,
		templateRepo: templateRepo,
		variantRepo:  variantRepo,
		logger:       logger,
	}
}

// Match runs the full matching algorithm for one external template:
//
//  1. Validate the reference/barcode shape of the family.
//  2. Find an existing internal template by already-mapped code, then
//     internal reference, then barcode.
//  3. If still unresolved, resolve each external variant independently and
//     derive the template from the variants' owners; disagreement between
//     variants is a conflict surfaced to the operator, never auto-healed.
//  4. For a resolved multi-variant template, match remaining variants by
//     attribute-value-code set.
//
// Match never writes mappings; callers commit the result.
func (m *TemplateMatcher) Match(ctx context.Context, integ *integration.Integration, data *integration.ProductTemplateData) (*TemplateMatch, error) {
	if err := validateFamily(data); err != nil {
		return nil, err
	}

	result := &TemplateMatch{
		VariantMatches: make(map[string]*uuid.UUID, len(data.Variants)),
	}
	for _, v := range data.Variants {
		result.VariantMatches[v.Code] = nil
	}

	template, err := m.findTemplate(ctx, integ, data)
	if err != nil {
		return nil, err
	}

	if template == nil && len(data.Variants) > 0 {
		template, err = m.findTemplateThroughVariants(ctx, integ, data, result)
		if err != nil {
			return nil, err
		}
	}

	if template == nil {
		return result, nil
	}
	result.TemplateID = &template.ID

	if len(data.Variants) > 0 {
		if err := m.matchRemainingByAttributeSet(ctx, integ, template.ID, data, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// validateFamily enforces the reference and barcode shape rules: the family
// is matchable only if the template or every variant carries an internal
// reference, and barcodes are all-or-nothing across variants.
func validateFamily(data *integration.ProductTemplateData) error {
	if data.Reference == "" {
		for _, v := range data.Variants {
			if v.Reference == "" {
				return integration.NewImportError(
					"product %q (%s) has neither a template reference nor a reference on every variant",
					firstName(data.Name), data.Code)
			}
		}
		if len(data.Variants) == 0 {
			return integration.NewImportError(
				"product %q (%s) has neither a template reference nor a reference on every variant",
				firstName(data.Name), data.Code)
		}
	}

	withBarcode := 0
	for _, v := range data.Variants {
		if v.Barcode != "" {
			withBarcode++
		}
	}
	if withBarcode > 0 && withBarcode < len(data.Variants) {
		return integration.NewImportError(
			"product %q (%s) has barcodes on some variants but not all", firstName(data.Name), data.Code)
	}

	return nil
}

// findTemplate tries mapped code, then reference, then barcode.
func (m *TemplateMatcher) findTemplate(ctx context.Context, integ *integration.Integration, data *integration.ProductTemplateData) (*catalog.ProductTemplate, error) {
	mapping, err := m.mappingRepo.FindByExternalCode(ctx, integ.ID, integration.KindTemplate, data.Code)
	if err != nil && !errors.Is(err, integration.ErrMappingNotFound) {
		return nil, err
	}
	if mapping != nil && mapping.InternalID != nil {
		return m.templateRepo.FindByID(ctx, *mapping.InternalID)
	}

	if data.Reference != "" {
		templates, err := m.templateRepo.FindByReference(ctx, integ.TenantID, data.Reference)
		if err != nil {
			return nil, err
		}
		if len(templates) > 1 {
			return nil, integration.NewImportError(
				"reference %q matches %d internal templates", data.Reference, len(templates))
		}
		if len(templates) == 1 {
			return &templates[0], nil
		}
	}

	if data.Barcode != "" {
		templates, err := m.templateRepo.FindByBarcode(ctx, integ.TenantID, data.Barcode)
		if err != nil {
			return nil, err
		}
		if len(templates) > 1 {
			return nil, integration.NewImportError(
				"barcode %q matches %d internal templates", data.Barcode, len(templates))
		}
		if len(templates) == 1 {
			return &templates[0], nil
		}
	}

	return nil, nil
}

// variantResolution records how one external variant resolved during the
// per-variant pass, for the conflict report.
type variantResolution struct {
	externalCode string
	reference    string
	variantID    uuid.UUID
	templateID   uuid.UUID
}

// findTemplateThroughVariants resolves every external variant by its own
// reference (falling back to barcode) and derives the template from the
// owners. Variants resolving to more than one distinct template are a
// cross-variant inconsistency: the whole match fails with a per-variant
// report and no side effect.
func (m *TemplateMatcher) findTemplateThroughVariants(ctx context.Context, integ *integration.Integration, data *integration.ProductTemplateData, result *TemplateMatch) (*catalog.ProductTemplate, error) {
	var resolutions []variantResolution

	for _, v := range data.Variants {
		variant, err := m.resolveVariant(ctx, integ.TenantID, v)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			continue
		}
		resolutions = append(resolutions, variantResolution{
			externalCode: v.Code,
			reference:    v.Reference,
			variantID:    variant.ID,
			templateID:   variant.TemplateID,
		})
	}

	if len(resolutions) == 0 {
		return nil, nil
	}

	templates := make(map[uuid.UUID]struct{})
	for _, r := range resolutions {
		templates[r.templateID] = struct{}{}
	}
	if len(templates) > 1 {
		return nil, conflictError(data, resolutions)
	}

	for _, r := range resolutions {
		id := r.variantID
		result.VariantMatches[r.externalCode] = &id
	}

	return m.templateRepo.FindByID(ctx, resolutions[0].templateID)
}

func (m *TemplateMatcher) resolveVariant(ctx context.Context, tenantID uuid.UUID, v integration.ProductVariantData) (*catalog.ProductVariant, error) {
	if v.Reference != "" {
		variants, err := m.variantRepo.FindByReference(ctx, tenantID, v.Reference)
		if err != nil {
			return nil, err
		}
		if len(variants) > 1 {
			return nil, integration.NewImportError(
				"variant reference %q matches %d internal variants", v.Reference, len(variants))
		}
		if len(variants) == 1 {
			return &variants[0], nil
		}
	}

	if v.Barcode != "" {
		variants, err := m.variantRepo.FindByBarcode(ctx, tenantID, v.Barcode)
		if err != nil {
			return nil, err
		}
		if len(variants) > 1 {
			return nil, integration.NewImportError(
				"variant barcode %q matches %d internal variants", v.Barcode, len(variants))
		}
		if len(variants) == 1 {
			return &variants[0], nil
		}
	}

	return nil, nil
}

func conflictError(data *integration.ProductTemplateData, resolutions []variantResolution) error {
	var report strings.Builder
	for _, r := range resolutions {
		fmt.Fprintf(&report, "\n- variant %s (ref %q) -> template %s", r.externalCode, r.reference, r.templateID)
	}
	return integration.NewImportError(
		"variants of product %q (%s) resolve to more than one internal template:%s",
		firstName(data.Name), data.Code, report.String())
}

// matchRemainingByAttributeSet matches still-unresolved external variants to
// the template's internal variants by comparing attribute-value-code sets.
// Internal value ids are translated to external codes through the mapping
// store; first exact set match wins.
func (m *TemplateMatcher) matchRemainingByAttributeSet(ctx context.Context, integ *integration.Integration, templateID uuid.UUID, data *integration.ProductTemplateData, result *TemplateMatch) error {
	internalVariants, err := m.variantRepo.FindByTemplate(ctx, templateID)
	if err != nil {
		return err
	}

	claimed := make(map[uuid.UUID]struct{})
	for _, id := range result.VariantMatches {
		if id != nil {
			claimed[*id] = struct{}{}
		}
	}

	// Translate each internal variant's value set to external codes once.
	variantCodeSets := make(map[uuid.UUID]map[string]struct{}, len(internalVariants))
	for i := range internalVariants {
		if _, taken := claimed[internalVariants[i].ID]; taken {
			continue
		}
		codes, err := m.externalValueCodes(ctx, integ, internalVariants[i].AttributeValueIDs)
		if err != nil {
			return err
		}
		if codes != nil {
			variantCodeSets[internalVariants[i].ID] = codes
		}
	}

	for _, v := range data.Variants {
		if result.VariantMatches[v.Code] != nil {
			continue
		}
		wanted := make(map[string]struct{}, len(v.AttributeValueCodes))
		for _, code := range v.AttributeValueCodes {
			wanted[code] = struct{}{}
		}

		for i := range internalVariants {
			candidate := internalVariants[i].ID
			codes, ok := variantCodeSets[candidate]
			if !ok {
				continue
			}
			if sameCodeSet(wanted, codes) {
				id := candidate
				result.VariantMatches[v.Code] = &id
				delete(variantCodeSets, candidate)
				break
			}
		}
	}

	return nil
}

// externalValueCodes translates internal attribute value ids to their
// external codes. Any unmapped value makes the whole set untranslatable, so
// the variant is skipped for set matching.
func (m *TemplateMatcher) externalValueCodes(ctx context.Context, integ *integration.Integration, valueIDs []uuid.UUID) (map[string]struct{}, error) {
	codes := make(map[string]struct{}, len(valueIDs))
	for _, valueID := range valueIDs {
		mapping, err := m.mappingRepo.FindLatestByInternal(ctx, integ.ID, integration.KindAttributeValue, valueID)
		if err != nil {
			if errors.Is(err, integration.ErrMappingNotFound) {
				return nil, nil
			}
			return nil, err
		}
		record, err := m.externalRepo.FindByID(ctx, mapping.ExternalRecordID)
		if err != nil {
			return nil, err
		}
		codes[record.Code] = struct{}{}
	}
	return codes, nil
}

func sameCodeSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for code := range a {
		if _, ok := b[code]; !ok {
			return false
		}
	}
	return true
}

// firstName picks a display name from a translated field for error messages.
func firstName(name integration.TranslatedField) string {
	for _, v := range name {
		return v
	}
	return ""
}
