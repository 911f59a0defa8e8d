package integration

import (
	"context"
	"testing"

	"github.com/shopbridge/backend/internal/domain/catalog"
	"github.com/shopbridge/backend/internal/domain/integration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type exportFixture struct {
	service      *ProductExportService
	integ        *integration.Integration
	store        *fakeIntegrationStore
	templateRepo *fakeTemplateRepo
	variantRepo  *fakeVariantRepo
	template     *catalog.ProductTemplate
	variant      *catalog.ProductVariant
}

func newExportFixture(t *testing.T) *exportFixture {
	f := &exportFixture{
		store:        newFakeIntegrationStore(),
		templateRepo: newFakeTemplateRepo(),
		variantRepo:  newFakeVariantRepo(),
	}

	mappingRepo := &fakeMappingRepo{store: f.store}
	externalRepo := &fakeExternalRecordRepo{store: f.store}
	mappings := NewMappingService(mappingRepo, externalRepo, nil, zap.NewNop())

	f.integ = newTestIntegration(t)
	f.integ.DefaultLanguageCode = "en"
	f.integ.SetFeature(integration.FeatureProductExport, true)

	f.template = newMatcherTemplate(t, f.integ.TenantID, "Widget", "WID-1")
	f.templateRepo.add(f.template)
	variant, err := catalog.NewProductVariant(f.integ.TenantID, f.template.ID, nil)
	require.NoError(t, err)
	require.NoError(t, variant.SetReference("VAR-1"))
	f.variant = variant
	f.variantRepo.add(variant)

	f.service = NewProductExportService(mappings, mappingRepo,
		f.templateRepo, f.variantRepo, nil, zap.NewNop())
	return f
}

func TestProductExportService_ExportTemplate_RequiresFeature(t *testing.T) {
	f := newExportFixture(t)
	f.integ.SetFeature(integration.FeatureProductExport, false)

	err := f.service.ExportTemplate(context.Background(), f.integ, &stubAdapter{}, f.template.ID)

	assert.ErrorIs(t, err, integration.ErrIntegrationNotActive)
}

func TestProductExportService_ExportTemplate_RejectsVariantWithoutReference(t *testing.T) {
	f := newExportFixture(t)

	bare := newMatcherTemplate(t, f.integ.TenantID, "Bare", "")
	f.templateRepo.add(bare)
	bareVariant, err := catalog.NewProductVariant(f.integ.TenantID, bare.ID, nil)
	require.NoError(t, err)
	f.variantRepo.add(bareVariant)

	err = f.service.ExportTemplate(context.Background(), f.integ, &stubAdapter{}, bare.ID)

	var importErr *integration.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Contains(t, importErr.Message, "no internal reference")
}

func TestProductExportService_ExportTemplate_RejectsSharedReference(t *testing.T) {
	f := newExportFixture(t)

	other := newMatcherTemplate(t, f.integ.TenantID, "Other", "OTH-1")
	otherVariant, err := catalog.NewProductVariant(f.integ.TenantID, other.ID, nil)
	require.NoError(t, err)
	// Same reference, different case: the collision check is case-insensitive.
	require.NoError(t, otherVariant.SetReference("var-1"))
	f.variantRepo.add(otherVariant)

	err = f.service.ExportTemplate(context.Background(), f.integ, &stubAdapter{}, f.template.ID)

	var importErr *integration.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Contains(t, importErr.Message, "shared with another product")
}

func TestProductExportService_ExportTemplate_CreatesAndMapsVariants(t *testing.T) {
	f := newExportFixture(t)

	adapter := &stubAdapter{exportTemplateFn: func(ctx context.Context, data *integration.ProductTemplateData) (*integration.TemplateExportResult, error) {
		require.Equal(t, "WID-1", data.Reference)
		require.Len(t, data.Variants, 1)
		return &integration.TemplateExportResult{
			TemplateCode: "500",
			VariantCodes: map[string]string{"VAR-1": "7"},
		}, nil
	}}

	require.NoError(t, f.service.ExportTemplate(context.Background(), f.integ, adapter, f.template.ID))

	templateID := f.store.internalID(integration.KindTemplate, "500")
	require.NotNil(t, templateID)
	assert.Equal(t, f.template.ID, *templateID)

	variantID := f.store.internalID(integration.KindVariant, "500-7")
	require.NotNil(t, variantID)
	assert.Equal(t, f.variant.ID, *variantID)
}

func TestProductExportService_ExportTemplate_SingleVariantFallbackCode(t *testing.T) {
	f := newExportFixture(t)

	// The platform reported no code for the variant; a single-variant template
	// still maps its variant under the "-0" pseudo-code.
	adapter := &stubAdapter{exportTemplateFn: func(ctx context.Context, data *integration.ProductTemplateData) (*integration.TemplateExportResult, error) {
		return &integration.TemplateExportResult{TemplateCode: "500"}, nil
	}}

	require.NoError(t, f.service.ExportTemplate(context.Background(), f.integ, adapter, f.template.ID))

	variantID := f.store.internalID(integration.KindVariant, "500-0")
	require.NotNil(t, variantID)
	assert.Equal(t, f.variant.ID, *variantID)
}

func TestProductExportService_ExportTemplate_AdoptsExistingExternalProduct(t *testing.T) {
	f := newExportFixture(t)

	exported := false
	adapter := &stubAdapter{
		findExistingTemplateFn: func(ctx context.Context, data *integration.ProductTemplateData) (string, error) {
			return "900", nil
		},
		exportTemplateFn: func(ctx context.Context, data *integration.ProductTemplateData) (*integration.TemplateExportResult, error) {
			exported = true
			return nil, nil
		},
		updateTemplateFn: func(ctx context.Context, code string, data *integration.ProductTemplateData) (*integration.TemplateExportResult, error) {
			require.Equal(t, "900", code)
			return &integration.TemplateExportResult{TemplateCode: code}, nil
		},
	}

	require.NoError(t, f.service.ExportTemplate(context.Background(), f.integ, adapter, f.template.ID))

	// The equivalent external product was adopted and updated, never created.
	assert.False(t, exported)
	templateID := f.store.internalID(integration.KindTemplate, "900")
	require.NotNil(t, templateID)
	assert.Equal(t, f.template.ID, *templateID)
}

func TestProductExportService_ExportTemplate_DropsStaleMappingsAndRetries(t *testing.T) {
	f := newExportFixture(t)
	f.store.seedMapping(f.integ, integration.KindTemplate, "500", f.template.ID)
	f.store.seedMapping(f.integ, integration.KindVariant, "500-7", f.variant.ID)

	validations := 0
	adapter := &stubAdapter{
		validateExportFn: func(ctx context.Context, data *integration.ProductTemplateData) ([]string, error) {
			validations++
			if validations == 1 {
				return []string{"500-7"}, nil
			}
			return nil, nil
		},
		updateTemplateFn: func(ctx context.Context, code string, data *integration.ProductTemplateData) (*integration.TemplateExportResult, error) {
			require.Equal(t, "500", code)
			return &integration.TemplateExportResult{
				TemplateCode: code,
				VariantCodes: map[string]string{"VAR-1": "7"},
			}, nil
		},
	}

	require.NoError(t, f.service.ExportTemplate(context.Background(), f.integ, adapter, f.template.ID))

	// Validation ran once before and once after dropping the dead mapping.
	assert.Equal(t, 2, validations)
	variantID := f.store.internalID(integration.KindVariant, "500-7")
	require.NotNil(t, variantID)
	assert.Equal(t, f.variant.ID, *variantID)
}

func TestProductExportService_ExportTemplate_PersistentStaleMappingsFail(t *testing.T) {
	f := newExportFixture(t)
	f.store.seedMapping(f.integ, integration.KindTemplate, "500", f.template.ID)

	adapter := &stubAdapter{validateExportFn: func(ctx context.Context, data *integration.ProductTemplateData) ([]string, error) {
		return []string{"500-7"}, nil
	}}

	err := f.service.ExportTemplate(context.Background(), f.integ, adapter, f.template.ID)

	var importErr *integration.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Contains(t, importErr.Message, "stale external records")
}
