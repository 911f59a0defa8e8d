package integration

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/shopspring/decimal"
)

// ExternalValue is one entry of a bulk master-data listing from the external
// platform: taxes, payment methods, attributes, categories, countries and so
// on. Code is the external primary key within its kind.
type ExternalValue struct {
	Code      string
	Name      string
	Reference string

	// ParentCode carries the listing's ownership link (value -> attribute,
	// tax -> tax group, category -> parent, state -> country).
	ParentCode string

	// TranslatedNames holds the raw multi-language name payload when the
	// platform returns one; Name is then the default-language value.
	TranslatedNames TranslatedField

	// Data keeps kind-specific extras (tax rate, ISO code, status task flags).
	Data map[string]any
}

// ProductTemplateData is the adapter's parsed representation of one external
// product template with its variants, kit components and images.
type ProductTemplateData struct {
	Code           string
	Name           TranslatedField
	Description    TranslatedField
	Reference      string
	Barcode        string
	ListPrice      decimal.Decimal
	Cost           decimal.Decimal
	Weight         decimal.Decimal
	Active         bool
	CategoryCodes  []string
	TaxCodes       []string
	AttributeCodes []string
	FeatureValues  []FeatureValueRef
	Variants       []ProductVariantData
	KitComponents  []KitComponent
	Images         []ProductImage
	ExtraData      map[string]any
}

// ProductVariantData is one sellable configuration of an external template.
type ProductVariantData struct {
	Code                string
	Reference           string
	Barcode             string
	ListPrice           decimal.Decimal
	Cost                decimal.Decimal
	Weight              decimal.Decimal
	AttributeValueCodes []string
	Images              []ProductImage
}

// FeatureValueRef points at a feature/value pair on a template.
type FeatureValueRef struct {
	FeatureCode string
	ValueCode   string
}

// KitComponent is one bill-of-materials line of an external kit product.
type KitComponent struct {
	ProductCode string
	VariantCode string
	Quantity    decimal.Decimal
}

// ProductImage is one image attached to a template or variant.
type ProductImage struct {
	Code     string
	URL      string
	Data     []byte
	Position int
}

// OrderEnvelope is one raw order as received from the platform, before
// parsing into the canonical schema.
type OrderEnvelope struct {
	Code string
	Data json.RawMessage
}

// InventoryItem is the exported stock level for one external product code.
type InventoryItem struct {
	Quantity  decimal.Decimal
	Reference string
}

// TrackingData is the shipment information exported for one order.
type TrackingData struct {
	TrackingNumber string
	CarrierCode    string
	LineCodes      []string
}

// TemplateExportResult reports the external codes assigned by a template
// create or update.
type TemplateExportResult struct {
	TemplateCode string
	// VariantCodes is keyed by the internal reference of each variant.
	VariantCodes map[string]string
}

// WebhookRoute is one inbound route the core asks the adapter to register.
type WebhookRoute struct {
	Topic string
	URL   string
}

// Adapter is the per-platform port. One implementation exists per external
// API type; all methods perform synchronous network I/O except ParseOrder,
// which is a pure function over an already received envelope.
type Adapter interface {
	CheckConnection(ctx context.Context) error

	// Bulk master-data listings.
	GetDeliveryMethods(ctx context.Context) ([]ExternalValue, error)
	GetTaxes(ctx context.Context) ([]ExternalValue, error)
	GetTaxGroups(ctx context.Context) ([]ExternalValue, error)
	GetPaymentMethods(ctx context.Context) ([]ExternalValue, error)
	GetLanguages(ctx context.Context) ([]ExternalValue, error)
	GetAttributes(ctx context.Context) ([]ExternalValue, error)
	GetAttributeValues(ctx context.Context) ([]ExternalValue, error)
	GetFeatures(ctx context.Context) ([]ExternalValue, error)
	GetFeatureValues(ctx context.Context) ([]ExternalValue, error)
	GetCountries(ctx context.Context) ([]ExternalValue, error)
	GetCountryStates(ctx context.Context) ([]ExternalValue, error)
	GetCategories(ctx context.Context) ([]ExternalValue, error)
	GetSaleOrderStatuses(ctx context.Context) ([]ExternalValue, error)

	// Product import.
	ListProductTemplateCodes(ctx context.Context) ([]string, error)
	GetProductTemplates(ctx context.Context, codes []string) ([]ProductTemplateData, error)

	// Order import.
	ReceiveOrders(ctx context.Context) ([]OrderEnvelope, error)
	ParseOrder(envelope OrderEnvelope) (*OrderPayload, error)

	// Product export. ValidateTemplateExport may report stale external codes
	// whose records no longer exist on the platform; FindExistingTemplate
	// returns the external code of an equivalent product, or empty.
	ValidateTemplateExport(ctx context.Context, template *ProductTemplateData) (stale []string, err error)
	FindExistingTemplate(ctx context.Context, template *ProductTemplateData) (string, error)
	ExportTemplate(ctx context.Context, template *ProductTemplateData) (*TemplateExportResult, error)
	UpdateTemplate(ctx context.Context, code string, template *ProductTemplateData) (*TemplateExportResult, error)
	ExportImages(ctx context.Context, templateCode string, images []ProductImage) error

	// Transactional exports.
	ExportInventory(ctx context.Context, items map[string]InventoryItem) error
	ExportTracking(ctx context.Context, orderCode string, tracking TrackingData) error
	ExportOrderStatus(ctx context.Context, orderCode, status string) error

	// Webhooks. RegisterWebhooks returns the external id per topic.
	RegisterWebhooks(ctx context.Context, routes []WebhookRoute) (map[string]string, error)
	UnregisterWebhooks(ctx context.Context) error
	RequiredWebhookHeaders() []string
	VerifyWebhookSignature(headers map[string]string, body []byte) error
}

// AdapterFactory builds an adapter from an integration's settings.
type AdapterFactory func(integration *Integration) (Adapter, error)

// AdapterRegistry resolves an integration's API type to its adapter factory.
type AdapterRegistry struct {
	mu        sync.RWMutex
	factories map[string]AdapterFactory
}

// NewAdapterRegistry returns an empty registry.
func NewAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{factories: make(map[string]AdapterFactory)}
}

// Register binds a factory to an API type discriminator.
func (r *AdapterRegistry) Register(typeAPI string, factory AdapterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[typeAPI] = factory
}

// Build constructs the adapter for the integration's API type.
func (r *AdapterRegistry) Build(integration *Integration) (Adapter, error) {
	r.mu.RLock()
	factory, ok := r.factories[integration.TypeAPI]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrAdapterNotRegistered
	}
	return factory(integration)
}
