package integration

import (
	"context"
	"errors"
	"strings"

	"github.com/shopbridge/backend/internal/domain/catalog"
	"github.com/shopbridge/backend/internal/domain/integration"
	"github.com/shopbridge/backend/internal/domain/partner"
	"github.com/shopbridge/backend/internal/domain/shared"
	"github.com/shopbridge/backend/internal/domain/trade"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// BuildModelRegistry wires every entity kind to its internal model gateway.
// Kinds without auto-matching semantics (partners, orders) are deliberately
// absent; their mappings are only created by the import pipelines.
func BuildModelRegistry(
	templateRepo catalog.ProductTemplateRepository,
	variantRepo catalog.ProductVariantRepository,
	attributeRepo catalog.AttributeRepository,
	attributeValueRepo catalog.AttributeValueRepository,
	featureRepo catalog.FeatureRepository,
	featureValueRepo catalog.FeatureValueRepository,
	categoryRepo catalog.CategoryRepository,
	taxRepo trade.TaxRepository,
	carrierRepo trade.CarrierRepository,
	paymentMethodRepo trade.PaymentMethodRepository,
	subStatusRepo trade.SubStatusRepository,
	countryRepo partner.CountryRepository,
	stateRepo partner.CountryStateRepository,
	languageRepo partner.LanguageRepository,
) *integration.ModelRegistry {
	registry := integration.NewModelRegistry()
	registry.Register(integration.KindTemplate, &TemplateGateway{templates: templateRepo})
	registry.Register(integration.KindVariant, &VariantGateway{variants: variantRepo})
	registry.Register(integration.KindAttribute, &AttributeGateway{attributes: attributeRepo})
	registry.Register(integration.KindAttributeValue, &AttributeValueGateway{values: attributeValueRepo})
	registry.Register(integration.KindFeature, &FeatureGateway{features: featureRepo})
	registry.Register(integration.KindFeatureValue, &FeatureValueGateway{values: featureValueRepo})
	registry.Register(integration.KindCategory, &CategoryGateway{categories: categoryRepo})
	registry.Register(integration.KindTax, &TaxGateway{taxes: taxRepo})
	registry.Register(integration.KindCarrier, &CarrierGateway{carriers: carrierRepo})
	registry.Register(integration.KindPaymentMethod, &PaymentMethodGateway{methods: paymentMethodRepo})
	registry.Register(integration.KindSubStatus, &SubStatusGateway{subStatuses: subStatusRepo})
	registry.Register(integration.KindCountry, &CountryGateway{countries: countryRepo})
	registry.Register(integration.KindCountryState, &CountryStateGateway{countries: countryRepo, states: stateRepo})
	registry.Register(integration.KindLanguage, &LanguageGateway{languages: languageRepo})
	return registry
}

// TemplateGateway matches product templates by internal reference.
type TemplateGateway struct {
	templates catalog.ProductTemplateRepository
}

// SearchByReference implements integration.ReferenceSearcher
func (g *TemplateGateway) SearchByReference(ctx context.Context, scope integration.Scope, reference string) ([]uuid.UUID, error) {
	templates, err := g.templates.FindByReference(ctx, scope.TenantID, reference)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(templates))
	for i := range templates {
		ids[i] = templates[i].ID
	}
	return ids, nil
}

// VariantGateway matches product variants by internal reference.
type VariantGateway struct {
	variants catalog.ProductVariantRepository
}

// SearchByReference implements integration.ReferenceSearcher
func (g *VariantGateway) SearchByReference(ctx context.Context, scope integration.Scope, reference string) ([]uuid.UUID, error) {
	variants, err := g.variants.FindByReference(ctx, scope.TenantID, reference)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(variants))
	for i := range variants {
		ids[i] = variants[i].ID
	}
	return ids, nil
}

// AttributeGateway matches attributes by name.
type AttributeGateway struct {
	attributes catalog.AttributeRepository
}

// SearchByName implements integration.NameSearcher
func (g *AttributeGateway) SearchByName(ctx context.Context, scope integration.Scope, name string) ([]uuid.UUID, error) {
	attributes, err := g.attributes.FindByName(ctx, scope.TenantID, name)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(attributes))
	for i := range attributes {
		ids[i] = attributes[i].ID
	}
	return ids, nil
}

// AttributeValueGateway matches attribute values by name across all
// attributes of the tenant. Ambiguity across attributes is left to the
// caller's ambiguity handling.
type AttributeValueGateway struct {
	values catalog.AttributeValueRepository
}

// SearchByName implements integration.NameSearcher
func (g *AttributeValueGateway) SearchByName(ctx context.Context, scope integration.Scope, name string) ([]uuid.UUID, error) {
	values, err := g.values.FindByName(ctx, scope.TenantID, name)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(values))
	for i := range values {
		ids[i] = values[i].ID
	}
	return ids, nil
}

// FeatureGateway matches features by name.
type FeatureGateway struct {
	features catalog.FeatureRepository
}

// SearchByName implements integration.NameSearcher
func (g *FeatureGateway) SearchByName(ctx context.Context, scope integration.Scope, name string) ([]uuid.UUID, error) {
	features, err := g.features.FindByName(ctx, scope.TenantID, name)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(features))
	for i := range features {
		ids[i] = features[i].ID
	}
	return ids, nil
}

// FeatureValueGateway matches feature values by name.
type FeatureValueGateway struct {
	values catalog.FeatureValueRepository
}

// SearchByName implements integration.NameSearcher
func (g *FeatureValueGateway) SearchByName(ctx context.Context, scope integration.Scope, name string) ([]uuid.UUID, error) {
	values, err := g.values.FindByName(ctx, scope.TenantID, name)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(values))
	for i := range values {
		ids[i] = values[i].ID
	}
	return ids, nil
}

// CategoryGateway matches categories by name and auto-creates them only
// while the internal tree is completely empty.
type CategoryGateway struct {
	categories catalog.CategoryRepository
}

// SearchByName implements integration.NameSearcher
func (g *CategoryGateway) SearchByName(ctx context.Context, scope integration.Scope, name string) ([]uuid.UUID, error) {
	categories, err := g.categories.FindByName(ctx, scope.TenantID, name)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(categories))
	for i := range categories {
		ids[i] = categories[i].ID
	}
	return ids, nil
}

// AllowAutoCreate implements integration.AutoCreateGater
func (g *CategoryGateway) AllowAutoCreate(ctx context.Context, scope integration.Scope) (bool, error) {
	count, err := g.categories.CountForTenant(ctx, scope.TenantID, shared.Filter{})
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// CreateFromExternal implements integration.AutoCreator
func (g *CategoryGateway) CreateFromExternal(ctx context.Context, scope integration.Scope, record *integration.ExternalRecord) (uuid.UUID, error) {
	if record.Name == "" {
		return uuid.Nil, nil
	}
	category, err := catalog.NewCategory(scope.TenantID, record.Code, record.Name)
	if err != nil {
		return uuid.Nil, err
	}
	if err := g.categories.Save(ctx, category); err != nil {
		return uuid.Nil, err
	}
	return category.ID, nil
}

// TaxGateway matches taxes by name.
type TaxGateway struct {
	taxes trade.TaxRepository
}

// SearchByName implements integration.NameSearcher
func (g *TaxGateway) SearchByName(ctx context.Context, scope integration.Scope, name string) ([]uuid.UUID, error) {
	taxes, err := g.taxes.FindAllForTenant(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}
	var ids []uuid.UUID
	for i := range taxes {
		if strings.EqualFold(taxes[i].Name, name) {
			ids = append(ids, taxes[i].ID)
		}
	}
	return ids, nil
}

// CarrierGateway matches carriers by name.
type CarrierGateway struct {
	carriers trade.CarrierRepository
}

// SearchByName implements integration.NameSearcher
func (g *CarrierGateway) SearchByName(ctx context.Context, scope integration.Scope, name string) ([]uuid.UUID, error) {
	carriers, err := g.carriers.FindByName(ctx, scope.TenantID, name)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(carriers))
	for i := range carriers {
		ids[i] = carriers[i].ID
	}
	return ids, nil
}

// PaymentMethodGateway matches payment methods by name and auto-creates a
// missing method from the external name.
type PaymentMethodGateway struct {
	methods trade.PaymentMethodRepository
}

// SearchByName implements integration.NameSearcher
func (g *PaymentMethodGateway) SearchByName(ctx context.Context, scope integration.Scope, name string) ([]uuid.UUID, error) {
	methods, err := g.methods.FindByName(ctx, scope.TenantID, name)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(methods))
	for i := range methods {
		ids[i] = methods[i].ID
	}
	return ids, nil
}

// CreateFromExternal implements integration.AutoCreator
func (g *PaymentMethodGateway) CreateFromExternal(ctx context.Context, scope integration.Scope, record *integration.ExternalRecord) (uuid.UUID, error) {
	if record.Name == "" {
		return uuid.Nil, nil
	}

	existing, err := g.methods.FindByName(ctx, scope.TenantID, record.Name)
	if err != nil {
		return uuid.Nil, err
	}
	if len(existing) > 0 {
		return existing[0].ID, nil
	}

	method, err := trade.NewPaymentMethod(scope.TenantID, record.Name)
	if err != nil {
		return uuid.Nil, err
	}
	if err := g.methods.Save(ctx, method); err != nil {
		return uuid.Nil, err
	}
	return method.ID, nil
}

// SubStatusGateway matches order sub-statuses by name within the integration
// and auto-creates a missing one from the external name.
type SubStatusGateway struct {
	subStatuses trade.SubStatusRepository
}

// SearchByName implements integration.NameSearcher
func (g *SubStatusGateway) SearchByName(ctx context.Context, scope integration.Scope, name string) ([]uuid.UUID, error) {
	subStatuses, err := g.subStatuses.FindByName(ctx, scope.IntegrationID, name)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(subStatuses))
	for i := range subStatuses {
		ids[i] = subStatuses[i].ID
	}
	return ids, nil
}

// CreateFromExternal implements integration.AutoCreator
func (g *SubStatusGateway) CreateFromExternal(ctx context.Context, scope integration.Scope, record *integration.ExternalRecord) (uuid.UUID, error) {
	if record.Name == "" {
		return uuid.Nil, nil
	}

	existing, err := g.subStatuses.FindByName(ctx, scope.IntegrationID, record.Name)
	if err != nil {
		return uuid.Nil, err
	}
	if len(existing) > 0 {
		return existing[0].ID, nil
	}

	subStatus, err := trade.NewSubStatus(scope.TenantID, scope.IntegrationID, record.Name)
	if err != nil {
		return uuid.Nil, err
	}
	if err := g.subStatuses.Save(ctx, subStatus); err != nil {
		return uuid.Nil, err
	}
	return subStatus.ID, nil
}

// CountryGateway matches countries by ISO code.
type CountryGateway struct {
	countries partner.CountryRepository
}

// SearchByReference implements integration.ReferenceSearcher
func (g *CountryGateway) SearchByReference(ctx context.Context, scope integration.Scope, reference string) ([]uuid.UUID, error) {
	country, err := g.countries.FindByCode(ctx, strings.TrimSpace(reference))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []uuid.UUID{country.ID}, nil
}

// stateCodeFixups remaps known upstream data-quality exceptions in state
// references. The keys are the codes as upstream platforms publish them, the
// values the ISO 3166-2 codes our master data carries.
var stateCodeFixups = map[string]string{
	"IN_UT":  "IN_UK",
	"IN_CT":  "IN_CG",
	"IN_TG":  "IN_TS",
	"MX_AGS": "MX_AGU",
}

// CountryStateGateway matches states by a COUNTRYCODE_STATECODE reference,
// scoped to the resolved country.
type CountryStateGateway struct {
	countries partner.CountryRepository
	states    partner.CountryStateRepository
}

// SearchByReference implements integration.ReferenceSearcher
func (g *CountryStateGateway) SearchByReference(ctx context.Context, scope integration.Scope, reference string) ([]uuid.UUID, error) {
	countryCode, stateCode, ok := splitStateReference(reference)
	if !ok {
		return nil, nil
	}

	country, err := g.countries.FindByCode(ctx, countryCode)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	states, err := g.states.FindByCode(ctx, country.ID, stateCode)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(states))
	for i := range states {
		ids[i] = states[i].ID
	}
	return ids, nil
}

// splitStateReference parses a COUNTRYCODE_STATECODE reference. Parenthetical
// suffixes ("IN_GJ (Gujarat)") are stripped and the fixup table applied
// before splitting.
func splitStateReference(reference string) (countryCode, stateCode string, ok bool) {
	reference = strings.TrimSpace(reference)
	if idx := strings.Index(reference, "("); idx >= 0 {
		reference = strings.TrimSpace(reference[:idx])
	}
	if fixed, found := stateCodeFixups[strings.ToUpper(reference)]; found {
		reference = fixed
	}

	parts := strings.SplitN(reference, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return strings.ToUpper(parts[0]), strings.ToUpper(parts[1]), true
}

// LanguageGateway matches languages by IETF tag, tolerating the dialect
// variations platforms publish ("en_US" vs "en-US").
type LanguageGateway struct {
	languages partner.LanguageRepository
}

// SearchByReference implements integration.ReferenceSearcher
func (g *LanguageGateway) SearchByReference(ctx context.Context, scope integration.Scope, reference string) ([]uuid.UUID, error) {
	tag, err := language.Parse(strings.ReplaceAll(reference, "_", "-"))
	if err != nil {
		return nil, nil
	}

	lang, err := g.languages.FindByCode(ctx, tag.String())
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []uuid.UUID{lang.ID}, nil
}

var (
	_ integration.ReferenceSearcher = (*TemplateGateway)(nil)
	_ integration.ReferenceSearcher = (*VariantGateway)(nil)
	_ integration.ReferenceSearcher = (*CountryGateway)(nil)
	_ integration.ReferenceSearcher = (*CountryStateGateway)(nil)
	_ integration.ReferenceSearcher = (*LanguageGateway)(nil)
	_ integration.NameSearcher      = (*CategoryGateway)(nil)
	_ integration.NameSearcher      = (*FeatureGateway)(nil)
	_ integration.AutoCreator       = (*PaymentMethodGateway)(nil)
	_ integration.AutoCreator       = (*SubStatusGateway)(nil)
	_ integration.AutoCreator       = (*CategoryGateway)(nil)
	_ integration.AutoCreateGater   = (*CategoryGateway)(nil)
)
