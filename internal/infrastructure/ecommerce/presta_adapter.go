// Package ecommerce holds the per-platform adapters behind the integration
// Adapter port, plus the registry wiring that binds them to API types.
package ecommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/shopbridge/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from the platform (10MB)
const maxResponseSize = 10 * 1024 * 1024

// webhookSignatureHeader carries the hex HMAC-SHA256 of a webhook body.
const webhookSignatureHeader = "X-Shop-Signature"

// Errors for the Presta adapter
var (
	ErrPrestaUnavailable         = errors.New("presta: platform unreachable")
	ErrPrestaRequestFailed       = errors.New("presta: request failed")
	ErrPrestaNotFound            = errors.New("presta: resource not found")
	ErrPrestaInvalidResponse     = errors.New("presta: invalid response payload")
	ErrPrestaWebhookSecretMissing = errors.New("presta: webhook secret is not configured")
)

// PrestaAdapter implements the integration Adapter port against a
// PrestaShop-style webservice. All reads and writes go through the JSON
// rendering of the /api resources, authenticated with the webservice key as
// basic-auth username.
type PrestaAdapter struct {
	config     *PrestaConfig
	httpClient *http.Client
}

// NewPrestaAdapter creates a new Presta adapter with the given configuration
func NewPrestaAdapter(config *PrestaConfig) (*PrestaAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &PrestaAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// CheckConnection verifies the shop URL and webservice key by listing one
// language.
func (a *PrestaAdapter) CheckConnection(ctx context.Context) error {
	query := url.Values{}
	query.Set("limit", "1")
	_, err := a.doRequest(ctx, http.MethodGet, "languages", query, nil)
	return err
}

// ---------------------------------------------------------------------------
// Master data listings
// ---------------------------------------------------------------------------

// GetLanguages lists the shop languages. The ISO code doubles as the external
// reference for auto-matching against internal languages.
func (a *PrestaAdapter) GetLanguages(ctx context.Context) ([]integration.ExternalValue, error) {
	body, err := a.listResource(ctx, "languages", nil)
	if err != nil {
		return nil, err
	}
	var resp prestaLanguagesResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	values := make([]integration.ExternalValue, 0, len(resp.Languages))
	for _, lang := range resp.Languages {
		values = append(values, integration.ExternalValue{
			Code:      lang.ID.String(),
			Name:      lang.Name,
			Reference: lang.ISOCode,
			Data:      map[string]any{"active": lang.Active.Bool()},
		})
	}
	return values, nil
}

// GetCountries lists countries with their ISO code as external reference.
func (a *PrestaAdapter) GetCountries(ctx context.Context) ([]integration.ExternalValue, error) {
	body, err := a.listResource(ctx, "countries", nil)
	if err != nil {
		return nil, err
	}
	var resp prestaCountriesResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	values := make([]integration.ExternalValue, 0, len(resp.Countries))
	for _, country := range resp.Countries {
		value := a.translatedValue(country.ID.String(), country.Name)
		value.Reference = country.ISOCode
		values = append(values, value)
	}
	return values, nil
}

// GetCountryStates lists states linked to their country through ParentCode.
func (a *PrestaAdapter) GetCountryStates(ctx context.Context) ([]integration.ExternalValue, error) {
	body, err := a.listResource(ctx, "states", nil)
	if err != nil {
		return nil, err
	}
	var resp prestaStatesResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	values := make([]integration.ExternalValue, 0, len(resp.States))
	for _, state := range resp.States {
		values = append(values, integration.ExternalValue{
			Code:       state.ID.String(),
			Name:       state.Name,
			Reference:  state.ISOCode,
			ParentCode: state.IDCountry.String(),
		})
	}
	return values, nil
}

// GetTaxGroups lists the tax rule groups taxes are organized under.
func (a *PrestaAdapter) GetTaxGroups(ctx context.Context) ([]integration.ExternalValue, error) {
	body, err := a.listResource(ctx, "tax_rule_groups", nil)
	if err != nil {
		return nil, err
	}
	var resp prestaTaxRuleGroupsResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	values := make([]integration.ExternalValue, 0, len(resp.TaxRuleGroups))
	for _, group := range resp.TaxRuleGroups {
		values = append(values, integration.ExternalValue{
			Code: group.ID.String(),
			Name: group.Name,
			Data: map[string]any{"active": group.Active.Bool()},
		})
	}
	return values, nil
}

// GetTaxes lists taxes with their percentage rate, linked to the owning tax
// rule group through the tax_rules join resource.
func (a *PrestaAdapter) GetTaxes(ctx context.Context) ([]integration.ExternalValue, error) {
	body, err := a.listResource(ctx, "taxes", nil)
	if err != nil {
		return nil, err
	}
	var resp prestaTaxesResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	groupByTax, err := a.taxGroupIndex(ctx)
	if err != nil {
		return nil, err
	}

	values := make([]integration.ExternalValue, 0, len(resp.Taxes))
	for _, tax := range resp.Taxes {
		value := a.translatedValue(tax.ID.String(), tax.Name)
		value.ParentCode = groupByTax[tax.ID.String()]
		value.Data = map[string]any{
			"rate":   tax.Rate.String(),
			"active": tax.Active.Bool(),
		}
		values = append(values, value)
	}
	return values, nil
}

// taxGroupIndex maps tax id -> tax rule group id. The first rule per tax wins.
func (a *PrestaAdapter) taxGroupIndex(ctx context.Context) (map[string]string, error) {
	body, err := a.listResource(ctx, "tax_rules", nil)
	if err != nil {
		return nil, err
	}
	var resp prestaTaxRulesResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	index := make(map[string]string, len(resp.TaxRules))
	for _, rule := range resp.TaxRules {
		taxID := rule.IDTax.String()
		if _, ok := index[taxID]; !ok {
			index[taxID] = rule.IDTaxRulesGroup.String()
		}
	}
	return index, nil
}

// GetDeliveryMethods lists the shop's carriers, skipping deleted ones.
func (a *PrestaAdapter) GetDeliveryMethods(ctx context.Context) ([]integration.ExternalValue, error) {
	body, err := a.listResource(ctx, "carriers", nil)
	if err != nil {
		return nil, err
	}
	var resp prestaCarriersResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	values := make([]integration.ExternalValue, 0, len(resp.Carriers))
	for _, carrier := range resp.Carriers {
		if carrier.Deleted.Bool() {
			continue
		}
		values = append(values, integration.ExternalValue{
			Code: carrier.ID.String(),
			Name: carrier.Name,
			Data: map[string]any{"active": carrier.Active.Bool()},
		})
	}
	return values, nil
}

// GetPaymentMethods derives the payment method listing from the distinct
// method names seen on order payments: the platform has no first-class payment
// method resource.
func (a *PrestaAdapter) GetPaymentMethods(ctx context.Context) ([]integration.ExternalValue, error) {
	query := url.Values{}
	query.Set("display", "[payment_method]")
	body, err := a.doRequest(ctx, http.MethodGet, "order_payments", query, nil)
	if err != nil {
		return nil, err
	}
	var resp prestaOrderPaymentsResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(resp.OrderPayments))
	var names []string
	for _, payment := range resp.OrderPayments {
		name := strings.TrimSpace(payment.PaymentMethod)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)

	values := make([]integration.ExternalValue, 0, len(names))
	for _, name := range names {
		values = append(values, integration.ExternalValue{Code: name, Name: name})
	}
	return values, nil
}

// GetSaleOrderStatuses lists order states with their lifecycle flags.
func (a *PrestaAdapter) GetSaleOrderStatuses(ctx context.Context) ([]integration.ExternalValue, error) {
	body, err := a.listResource(ctx, "order_states", nil)
	if err != nil {
		return nil, err
	}
	var resp prestaOrderStatesResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	values := make([]integration.ExternalValue, 0, len(resp.OrderStates))
	for _, state := range resp.OrderStates {
		if state.Deleted.Bool() {
			continue
		}
		value := a.translatedValue(state.ID.String(), state.Name)
		value.Data = map[string]any{
			"paid":     state.Paid.Bool(),
			"shipped":  state.Shipped.Bool(),
			"delivery": state.Delivery.Bool(),
			"invoice":  state.Invoice.Bool(),
			"logable":  state.Logable.Bool(),
		}
		values = append(values, value)
	}
	return values, nil
}

// GetAttributes lists the product option groups.
func (a *PrestaAdapter) GetAttributes(ctx context.Context) ([]integration.ExternalValue, error) {
	body, err := a.listResource(ctx, "product_options", nil)
	if err != nil {
		return nil, err
	}
	var resp prestaAttributesResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	values := make([]integration.ExternalValue, 0, len(resp.Attributes))
	for _, attr := range resp.Attributes {
		value := a.translatedValue(attr.ID.String(), attr.Name)
		value.Data = map[string]any{"is_color_group": attr.IsColorGroup.Bool()}
		values = append(values, value)
	}
	return values, nil
}

// GetAttributeValues lists option values linked to their group.
func (a *PrestaAdapter) GetAttributeValues(ctx context.Context) ([]integration.ExternalValue, error) {
	body, err := a.listResource(ctx, "product_option_values", nil)
	if err != nil {
		return nil, err
	}
	var resp prestaAttributeValuesResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	values := make([]integration.ExternalValue, 0, len(resp.AttributeValues))
	for _, av := range resp.AttributeValues {
		value := a.translatedValue(av.ID.String(), av.Name)
		value.ParentCode = av.IDAttributeGroup.String()
		values = append(values, value)
	}
	return values, nil
}

// GetFeatures lists product features.
func (a *PrestaAdapter) GetFeatures(ctx context.Context) ([]integration.ExternalValue, error) {
	body, err := a.listResource(ctx, "product_features", nil)
	if err != nil {
		return nil, err
	}
	var resp prestaFeaturesResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	values := make([]integration.ExternalValue, 0, len(resp.Features))
	for _, feature := range resp.Features {
		values = append(values, a.translatedValue(feature.ID.String(), feature.Name))
	}
	return values, nil
}

// GetFeatureValues lists feature values linked to their feature.
func (a *PrestaAdapter) GetFeatureValues(ctx context.Context) ([]integration.ExternalValue, error) {
	body, err := a.listResource(ctx, "product_feature_values", nil)
	if err != nil {
		return nil, err
	}
	var resp prestaFeatureValuesResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	values := make([]integration.ExternalValue, 0, len(resp.FeatureValues))
	for _, fv := range resp.FeatureValues {
		value := a.translatedValue(fv.ID.String(), fv.Value)
		value.ParentCode = fv.IDFeature.String()
		value.Data = map[string]any{"custom": fv.Custom.Bool()}
		values = append(values, value)
	}
	return values, nil
}

// GetCategories lists categories linked to their parent.
func (a *PrestaAdapter) GetCategories(ctx context.Context) ([]integration.ExternalValue, error) {
	body, err := a.listResource(ctx, "categories", nil)
	if err != nil {
		return nil, err
	}
	var resp prestaCategoriesResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	values := make([]integration.ExternalValue, 0, len(resp.Categories))
	for _, category := range resp.Categories {
		value := a.translatedValue(category.ID.String(), category.Name)
		value.ParentCode = category.IDParent.String()
		value.Data = map[string]any{"active": category.Active.Bool()}
		values = append(values, value)
	}
	return values, nil
}

// ---------------------------------------------------------------------------
// Product import
// ---------------------------------------------------------------------------

// ListProductTemplateCodes returns the ids of every product on the shop.
func (a *PrestaAdapter) ListProductTemplateCodes(ctx context.Context) ([]string, error) {
	query := url.Values{}
	query.Set("display", "[id]")
	body, err := a.doRequest(ctx, http.MethodGet, "products", query, nil)
	if err != nil {
		return nil, err
	}
	var resp prestaProductsResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(resp.Products))
	for _, product := range resp.Products {
		codes = append(codes, product.ID.String())
	}
	return codes, nil
}

// GetProductTemplates fetches full templates for the given product ids,
// including combinations, kit components and image payloads.
func (a *PrestaAdapter) GetProductTemplates(ctx context.Context, codes []string) ([]integration.ProductTemplateData, error) {
	templates := make([]integration.ProductTemplateData, 0, len(codes))
	for _, code := range codes {
		template, err := a.fetchTemplate(ctx, code)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *template)
	}
	return templates, nil
}

func (a *PrestaAdapter) fetchTemplate(ctx context.Context, code string) (*integration.ProductTemplateData, error) {
	body, err := a.doRequest(ctx, http.MethodGet, "products/"+url.PathEscape(code), nil, nil)
	if err != nil {
		if errors.Is(err, ErrPrestaNotFound) {
			return nil, &integration.NoExternalError{
				Kind: integration.KindTemplate,
				Code: code,
			}
		}
		return nil, err
	}
	var resp prestaProductResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}
	product := resp.Product

	data := &integration.ProductTemplateData{
		Code:        product.ID.String(),
		Name:        a.translatedField(product.Name),
		Description: a.translatedField(product.Description),
		Reference:   product.Reference,
		Barcode:     product.EAN13,
		ListPrice:   product.Price.Decimal(),
		Cost:        product.WholesalePrice.Decimal(),
		Weight:      product.Weight.Decimal(),
		Active:      product.Active.Bool(),
		ExtraData:   map[string]any{"type": product.Type},
	}

	for _, node := range product.Associations.Categories {
		data.CategoryCodes = append(data.CategoryCodes, node.ID.String())
	}
	if group := product.IDTaxRulesGroup.String(); group != "" && group != "0" {
		data.TaxCodes = append(data.TaxCodes, group)
	}
	for _, feature := range product.Associations.ProductFeatures {
		data.FeatureValues = append(data.FeatureValues, integration.FeatureValueRef{
			FeatureCode: feature.ID.String(),
			ValueCode:   feature.IDFeatureValue.String(),
		})
	}
	for _, component := range product.Associations.ProductBundle {
		data.KitComponents = append(data.KitComponents, integration.KitComponent{
			ProductCode: component.ID.String(),
			VariantCode: zeroToEmpty(component.IDProductAttribute.String()),
			Quantity:    component.Quantity.Decimal(),
		})
	}

	if err := a.fetchCombinations(ctx, data); err != nil {
		return nil, err
	}
	a.fetchProductImages(ctx, data, product.Associations.Images)

	attributeCodes := make(map[string]struct{})
	for _, variant := range data.Variants {
		for _, valueCode := range variant.AttributeValueCodes {
			attributeCodes[valueCode] = struct{}{}
		}
	}
	for valueCode := range attributeCodes {
		data.AttributeCodes = append(data.AttributeCodes, valueCode)
	}
	sort.Strings(data.AttributeCodes)

	return data, nil
}

// fetchCombinations loads the product's combinations as variants. The variant
// list price is the template price plus the combination's price impact.
func (a *PrestaAdapter) fetchCombinations(ctx context.Context, data *integration.ProductTemplateData) error {
	query := url.Values{}
	query.Set("filter[id_product]", data.Code)
	body, err := a.listResource(ctx, "combinations", query)
	if err != nil {
		return err
	}
	var resp prestaCombinationsResponse
	if err := decodeInto(body, &resp); err != nil {
		return err
	}

	for _, combination := range resp.Combinations {
		variant := integration.ProductVariantData{
			Code:      combination.ID.String(),
			Reference: combination.Reference,
			Barcode:   combination.EAN13,
			ListPrice: data.ListPrice.Add(combination.Price.Decimal()),
			Weight:    combination.Weight.Decimal(),
		}
		for _, node := range combination.Associations.ProductOptionValues {
			variant.AttributeValueCodes = append(variant.AttributeValueCodes, node.ID.String())
		}
		data.Variants = append(data.Variants, variant)
	}
	return nil
}

// fetchProductImages downloads image payloads. A failed image is skipped, not
// fatal: the import stores what it got.
func (a *PrestaAdapter) fetchProductImages(ctx context.Context, data *integration.ProductTemplateData, nodes []prestaIDNode) {
	for position, node := range nodes {
		imageID := node.ID.String()
		payload, err := a.fetchBinary(ctx, fmt.Sprintf("images/products/%s/%s", data.Code, imageID))
		image := integration.ProductImage{
			Code:     imageID,
			URL:      fmt.Sprintf("%s/api/images/products/%s/%s", a.config.ShopURL, data.Code, imageID),
			Position: position,
		}
		if err == nil {
			image.Data = payload
		}
		data.Images = append(data.Images, image)
	}
}

// ---------------------------------------------------------------------------
// Order import
// ---------------------------------------------------------------------------

// ReceiveOrders lists importable orders and assembles each into a
// self-contained envelope: the order row plus its details, customer,
// addresses, payments and resolved carrier/currency/language names, so
// ParseOrder needs no further network access.
func (a *PrestaAdapter) ReceiveOrders(ctx context.Context) ([]integration.OrderEnvelope, error) {
	query := url.Values{}
	if len(a.config.OrderStateCodes) > 0 {
		query.Set("filter[current_state]", "["+strings.Join(a.config.OrderStateCodes, "|")+"]")
	}
	body, err := a.listResource(ctx, "orders", query)
	if err != nil {
		return nil, err
	}
	var resp prestaOrdersResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	lookups := newOrderLookupCache(a)
	envelopes := make([]integration.OrderEnvelope, 0, len(resp.Orders))
	for i := range resp.Orders {
		envelope, err := a.assembleOrderEnvelope(ctx, &resp.Orders[i], lookups)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(envelope)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal order envelope: %v", ErrPrestaInvalidResponse, err)
		}
		envelopes = append(envelopes, integration.OrderEnvelope{
			Code: envelope.Order.ID.String(),
			Data: data,
		})
	}
	return envelopes, nil
}

func (a *PrestaAdapter) assembleOrderEnvelope(ctx context.Context, order *prestaOrder, lookups *orderLookupCache) (*prestaOrderEnvelope, error) {
	envelope := &prestaOrderEnvelope{Order: *order}

	query := url.Values{}
	query.Set("filter[id_order]", order.ID.String())
	body, err := a.listResource(ctx, "order_details", query)
	if err != nil {
		return nil, err
	}
	var details prestaOrderDetailsResponse
	if err := decodeInto(body, &details); err != nil {
		return nil, err
	}
	envelope.Details = details.OrderDetails

	if customerID := zeroToEmpty(order.IDCustomer.String()); customerID != "" {
		var resp prestaCustomerResponse
		if err := a.getResource(ctx, "customers/"+customerID, &resp); err != nil {
			return nil, err
		}
		envelope.Customer = &resp.Customer
		if langID := zeroToEmpty(resp.Customer.IDLang.String()); langID != "" {
			envelope.CustomerLanguage, err = lookups.languageISO(ctx, langID)
			if err != nil {
				return nil, err
			}
		}
	}

	if addressID := zeroToEmpty(order.IDAddressDelivery.String()); addressID != "" {
		var resp prestaAddressResponse
		if err := a.getResource(ctx, "addresses/"+addressID, &resp); err != nil {
			return nil, err
		}
		envelope.DeliveryAddress = &resp.Address
	}
	if addressID := zeroToEmpty(order.IDAddressInvoice.String()); addressID != "" {
		var resp prestaAddressResponse
		if err := a.getResource(ctx, "addresses/"+addressID, &resp); err != nil {
			return nil, err
		}
		envelope.InvoiceAddress = &resp.Address
	}

	if order.Reference != "" {
		paymentQuery := url.Values{}
		paymentQuery.Set("filter[order_reference]", order.Reference)
		body, err := a.listResource(ctx, "order_payments", paymentQuery)
		if err != nil {
			return nil, err
		}
		var payments prestaOrderPaymentsResponse
		if err := decodeInto(body, &payments); err != nil {
			return nil, err
		}
		envelope.Payments = payments.OrderPayments
	}

	if carrierID := zeroToEmpty(order.IDCarrier.String()); carrierID != "" {
		envelope.CarrierName, err = lookups.carrierName(ctx, carrierID)
		if err != nil {
			return nil, err
		}
	}
	if currencyID := zeroToEmpty(order.IDCurrency.String()); currencyID != "" {
		envelope.CurrencyISO, err = lookups.currencyISO(ctx, currencyID)
		if err != nil {
			return nil, err
		}
	}

	return envelope, nil
}

// ParseOrder maps an assembled envelope onto the canonical order schema. It is
// a pure function: no network access, unknown fields are dropped.
func (a *PrestaAdapter) ParseOrder(envelope integration.OrderEnvelope) (*integration.OrderPayload, error) {
	var doc prestaOrderEnvelope
	if err := json.Unmarshal(envelope.Data, &doc); err != nil {
		return nil, integration.NewImportError("order %s carries an undecodable payload: %v", envelope.Code, err)
	}

	order := doc.Order
	payload := &integration.OrderPayload{
		Code:              order.ID.String(),
		Reference:         order.Reference,
		CurrentOrderState: zeroToEmpty(order.CurrentState.String()),
		PaymentMethod:     order.Payment,
		Carrier:           doc.CarrierName,
		Currency:          doc.CurrencyISO,
		ShippingCost:      order.TotalShippingTaxIncl.Decimal(),
		DiscountTaxIncl:   order.TotalDiscountsTaxIncl.Decimal(),
		DiscountTaxExcl:   order.TotalDiscountsTaxExcl.Decimal(),
		CarrierTaxCodes:   doc.CarrierTaxCodes,
	}

	shippingExcl := order.TotalShippingTaxExcl.Decimal()
	payload.ShippingCostTaxExcl = &shippingExcl
	total := order.TotalPaidTaxIncl.Decimal()
	payload.AmountTotal = &total
	if order.CarrierTaxRate.String() != "" {
		rate := order.CarrierTaxRate.Decimal()
		payload.CarrierTaxRate = &rate
	}

	if doc.Customer != nil {
		payload.Customer = &integration.AddressPayload{
			Code:        doc.Customer.ID.String(),
			PersonName:  personName(doc.Customer.Firstname, doc.Customer.Lastname),
			Email:       doc.Customer.Email,
			Language:    doc.CustomerLanguage,
			CompanyName: doc.Customer.Company,
		}
	}
	email := ""
	if doc.Customer != nil {
		email = doc.Customer.Email
	}
	payload.Shipping = addressPayload(doc.DeliveryAddress, email)
	payload.Billing = addressPayload(doc.InvoiceAddress, email)

	for _, detail := range doc.Details {
		line := integration.OrderLinePayload{
			Code:        detail.ID.String(),
			ProductCode: lineProductCode(detail.ProductID.String(), detail.ProductAttributeID.String()),
			Quantity:    detail.ProductQuantity.Decimal(),
			PriceUnit:   detail.UnitPriceTaxExcl.Decimal(),
		}
		for _, tax := range detail.Associations.Taxes {
			line.TaxCodes = append(line.TaxCodes, tax.ID.String())
		}
		payload.Lines = append(payload.Lines, line)
	}

	for _, payment := range doc.Payments {
		payload.Payments = append(payload.Payments, integration.PaymentTransaction{
			TransactionID:   payment.TransactionID,
			TransactionDate: payment.DateAdd,
			Amount:          payment.Amount.Decimal(),
		})
	}

	return payload, nil
}

// addressPayload converts a shop address, falling back to the customer email:
// the platform stores no email on addresses.
func addressPayload(address *prestaAddress, email string) *integration.AddressPayload {
	if address == nil {
		return nil
	}
	return &integration.AddressPayload{
		Code:        address.ID.String(),
		PersonName:  personName(address.Firstname, address.Lastname),
		Email:       email,
		PersonalID:  address.DNI,
		CompanyName: address.Company,
		CompanyReg:  address.VATNumber,
		Street:      address.Address1,
		Street2:     address.Address2,
		City:        address.City,
		ZIP:         address.Postcode,
		CountryCode: zeroToEmpty(address.IDCountry.String()),
		StateCode:   zeroToEmpty(address.IDState.String()),
		Phone:       address.Phone,
		Mobile:      address.PhoneMobile,
	}
}

func personName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// lineProductCode composes the variant mapping code of an order line:
// product id, dash, combination id, with 0 standing in for "no combination".
func lineProductCode(productID, attributeID string) string {
	if attributeID == "" {
		attributeID = "0"
	}
	return productID + "-" + attributeID
}

// ---------------------------------------------------------------------------
// Product export
// ---------------------------------------------------------------------------

// ValidateTemplateExport reports combination codes whose parent product has
// disappeared from the shop. The export layer drops those mappings and
// retries.
func (a *PrestaAdapter) ValidateTemplateExport(ctx context.Context, template *integration.ProductTemplateData) ([]string, error) {
	var stale []string
	seenProducts := make(map[string]bool)

	for _, variant := range template.Variants {
		if variant.Reference == "" {
			continue
		}
		query := url.Values{}
		query.Set("filter[reference]", variant.Reference)
		body, err := a.listResource(ctx, "combinations", query)
		if err != nil {
			return nil, err
		}
		var resp prestaCombinationsResponse
		if err := decodeInto(body, &resp); err != nil {
			return nil, err
		}

		for _, combination := range resp.Combinations {
			productID := combination.IDProduct.String()
			alive, checked := seenProducts[productID]
			if !checked {
				alive, err = a.productExists(ctx, productID)
				if err != nil {
					return nil, err
				}
				seenProducts[productID] = alive
			}
			if !alive {
				stale = append(stale, productID, productID+"-"+combination.ID.String())
			}
		}
	}
	return dedupe(stale), nil
}

func (a *PrestaAdapter) productExists(ctx context.Context, productID string) (bool, error) {
	query := url.Values{}
	query.Set("display", "[id]")
	_, err := a.doRequest(ctx, http.MethodGet, "products/"+url.PathEscape(productID), query, nil)
	if errors.Is(err, ErrPrestaNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindExistingTemplate looks for an equivalent product on the shop by
// reference, then by barcode, returning its id or empty.
func (a *PrestaAdapter) FindExistingTemplate(ctx context.Context, template *integration.ProductTemplateData) (string, error) {
	filters := []struct{ field, value string }{
		{"reference", template.Reference},
		{"ean13", template.Barcode},
	}
	for _, filter := range filters {
		if filter.value == "" {
			continue
		}
		query := url.Values{}
		query.Set("filter["+filter.field+"]", filter.value)
		query.Set("display", "[id]")
		body, err := a.doRequest(ctx, http.MethodGet, "products", query, nil)
		if err != nil {
			return "", err
		}
		var resp prestaProductsResponse
		if err := decodeInto(body, &resp); err != nil {
			return "", err
		}
		if len(resp.Products) > 0 {
			return resp.Products[0].ID.String(), nil
		}
	}
	return "", nil
}

// ExportTemplate creates the product with its combinations on the shop.
func (a *PrestaAdapter) ExportTemplate(ctx context.Context, template *integration.ProductTemplateData) (*integration.TemplateExportResult, error) {
	body, err := a.doRequest(ctx, http.MethodPost, "products", nil, map[string]any{
		"product": a.productDoc(template),
	})
	if err != nil {
		return nil, err
	}
	var resp prestaProductResponse
	if err := decodeInto(body, &resp); err != nil {
		return nil, err
	}

	result := &integration.TemplateExportResult{
		TemplateCode: resp.Product.ID.String(),
		VariantCodes: make(map[string]string),
	}
	for i := range template.Variants {
		if err := a.exportCombination(ctx, result, template, &template.Variants[i], ""); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// UpdateTemplate updates an already exported product in place, upserting its
// combinations by reference.
func (a *PrestaAdapter) UpdateTemplate(ctx context.Context, code string, template *integration.ProductTemplateData) (*integration.TemplateExportResult, error) {
	doc := a.productDoc(template)
	doc["id"] = code
	if _, err := a.doRequest(ctx, http.MethodPut, "products/"+url.PathEscape(code), nil, map[string]any{
		"product": doc,
	}); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("filter[id_product]", code)
	body, err := a.listResource(ctx, "combinations", query)
	if err != nil {
		return nil, err
	}
	var existing prestaCombinationsResponse
	if err := decodeInto(body, &existing); err != nil {
		return nil, err
	}
	byReference := make(map[string]string, len(existing.Combinations))
	for _, combination := range existing.Combinations {
		if combination.Reference != "" {
			byReference[strings.ToLower(combination.Reference)] = combination.ID.String()
		}
	}

	result := &integration.TemplateExportResult{
		TemplateCode: code,
		VariantCodes: make(map[string]string),
	}
	for i := range template.Variants {
		existingID := byReference[strings.ToLower(template.Variants[i].Reference)]
		if err := a.exportCombination(ctx, result, template, &template.Variants[i], existingID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// exportCombination creates or updates one combination. Variants without
// attribute values stay implicit: the product itself is the only sellable
// configuration and gets the "-0" pseudo-code downstream.
func (a *PrestaAdapter) exportCombination(ctx context.Context, result *integration.TemplateExportResult, template *integration.ProductTemplateData, variant *integration.ProductVariantData, existingID string) error {
	if len(variant.AttributeValueCodes) == 0 {
		return nil
	}

	optionValues := make([]map[string]string, 0, len(variant.AttributeValueCodes))
	for _, valueCode := range variant.AttributeValueCodes {
		optionValues = append(optionValues, map[string]string{"id": valueCode})
	}
	doc := map[string]any{
		"id_product": result.TemplateCode,
		"reference":  variant.Reference,
		"ean13":      variant.Barcode,
		"price":      variant.ListPrice.Sub(template.ListPrice).StringFixed(6),
		"weight":     variant.Weight.StringFixed(3),
		"associations": map[string]any{
			"product_option_values": optionValues,
		},
	}

	var (
		body []byte
		err  error
	)
	if existingID != "" {
		doc["id"] = existingID
		body, err = a.doRequest(ctx, http.MethodPut, "combinations/"+url.PathEscape(existingID), nil, map[string]any{"combination": doc})
	} else {
		body, err = a.doRequest(ctx, http.MethodPost, "combinations", nil, map[string]any{"combination": doc})
	}
	if err != nil {
		return err
	}

	var resp prestaCombinationResponse
	if err := decodeInto(body, &resp); err != nil {
		return err
	}
	combinationID := resp.Combination.ID.String()
	if combinationID == "" {
		combinationID = existingID
	}
	if variant.Reference != "" && combinationID != "" {
		result.VariantCodes[variant.Reference] = combinationID
	}
	return nil
}

// productDoc builds the write document of a product.
func (a *PrestaAdapter) productDoc(template *integration.ProductTemplateData) map[string]any {
	doc := map[string]any{
		"name":            translatedDoc(template.Name),
		"description":     translatedDoc(template.Description),
		"reference":       template.Reference,
		"ean13":           template.Barcode,
		"price":           template.ListPrice.StringFixed(6),
		"wholesale_price": template.Cost.StringFixed(6),
		"weight":          template.Weight.StringFixed(3),
		"active":          boolFlag(template.Active),
		"state":           "1",
	}
	if len(template.TaxCodes) > 0 {
		doc["id_tax_rules_group"] = template.TaxCodes[0]
	}
	if len(template.CategoryCodes) > 0 {
		categories := make([]map[string]string, 0, len(template.CategoryCodes))
		for _, code := range template.CategoryCodes {
			categories = append(categories, map[string]string{"id": code})
		}
		doc["id_category_default"] = template.CategoryCodes[0]
		doc["associations"] = map[string]any{"categories": categories}
	}
	return doc
}

// ExportImages uploads image payloads for a product. Images without payload
// data are skipped.
func (a *PrestaAdapter) ExportImages(ctx context.Context, templateCode string, images []integration.ProductImage) error {
	for _, image := range images {
		if len(image.Data) == 0 {
			continue
		}
		if err := a.sendBinary(ctx, fmt.Sprintf("images/products/%s", url.PathEscape(templateCode)), image.Data); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Transactional exports
// ---------------------------------------------------------------------------

// ExportInventory writes stock levels, keyed by the variant mapping code
// (product id dash combination id).
func (a *PrestaAdapter) ExportInventory(ctx context.Context, items map[string]integration.InventoryItem) error {
	codes := make([]string, 0, len(items))
	for code := range items {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		productID, attributeID := splitVariantCode(code)
		query := url.Values{}
		query.Set("filter[id_product]", productID)
		query.Set("filter[id_product_attribute]", attributeID)
		body, err := a.listResource(ctx, "stock_availables", query)
		if err != nil {
			return err
		}
		var resp prestaStockAvailablesResponse
		if err := decodeInto(body, &resp); err != nil {
			return err
		}
		if len(resp.StockAvailables) == 0 {
			return fmt.Errorf("%w: no stock record for product %s", ErrPrestaNotFound, code)
		}

		stock := resp.StockAvailables[0]
		doc := map[string]any{
			"id":                   stock.ID.String(),
			"id_product":           productID,
			"id_product_attribute": attributeID,
			"quantity":             items[code].Quantity.Round(0).String(),
		}
		if _, err := a.doRequest(ctx, http.MethodPut, "stock_availables/"+url.PathEscape(stock.ID.String()), nil, map[string]any{
			"stock_available": doc,
		}); err != nil {
			return err
		}
	}
	return nil
}

// ExportTracking writes the tracking number onto the order's carrier row.
func (a *PrestaAdapter) ExportTracking(ctx context.Context, orderCode string, tracking integration.TrackingData) error {
	query := url.Values{}
	query.Set("filter[id_order]", orderCode)
	body, err := a.listResource(ctx, "order_carriers", query)
	if err != nil {
		return err
	}
	var resp prestaOrderCarriersResponse
	if err := decodeInto(body, &resp); err != nil {
		return err
	}
	if len(resp.OrderCarriers) == 0 {
		return fmt.Errorf("%w: no carrier row for order %s", ErrPrestaNotFound, orderCode)
	}

	row := resp.OrderCarriers[0]
	doc := map[string]any{
		"id":              row.ID.String(),
		"id_order":        row.IDOrder.String(),
		"id_carrier":      row.IDCarrier.String(),
		"tracking_number": tracking.TrackingNumber,
	}
	_, err = a.doRequest(ctx, http.MethodPut, "order_carriers/"+url.PathEscape(row.ID.String()), nil, map[string]any{
		"order_carrier": doc,
	})
	return err
}

// ExportOrderStatus appends an order history entry moving the order into the
// given external state.
func (a *PrestaAdapter) ExportOrderStatus(ctx context.Context, orderCode, status string) error {
	_, err := a.doRequest(ctx, http.MethodPost, "order_histories", nil, map[string]any{
		"order_history": map[string]any{
			"id_order":       orderCode,
			"id_order_state": status,
		},
	})
	return err
}

// ---------------------------------------------------------------------------
// Webhooks
// ---------------------------------------------------------------------------

// RegisterWebhooks creates one webhook resource per route and returns the
// assigned id per topic.
func (a *PrestaAdapter) RegisterWebhooks(ctx context.Context, routes []integration.WebhookRoute) (map[string]string, error) {
	externalIDs := make(map[string]string, len(routes))
	for _, route := range routes {
		body, err := a.doRequest(ctx, http.MethodPost, "webhooks", nil, map[string]any{
			"webhook": map[string]string{
				"topic": route.Topic,
				"url":   route.URL,
			},
		})
		if err != nil {
			return nil, err
		}
		var resp prestaWebhookResponse
		if err := decodeInto(body, &resp); err != nil {
			return nil, err
		}
		externalIDs[route.Topic] = resp.Webhook.ID.String()
	}
	return externalIDs, nil
}

// UnregisterWebhooks deletes the webhooks whose URL carries this connection's
// path token, leaving other consumers' registrations alone.
func (a *PrestaAdapter) UnregisterWebhooks(ctx context.Context) error {
	if a.config.WebhookPathToken == "" {
		return nil
	}
	body, err := a.listResource(ctx, "webhooks", nil)
	if err != nil {
		return err
	}
	var resp prestaWebhooksResponse
	if err := decodeInto(body, &resp); err != nil {
		return err
	}

	for _, webhook := range resp.Webhooks {
		if !strings.Contains(webhook.URL, a.config.WebhookPathToken) {
			continue
		}
		if _, err := a.doRequest(ctx, http.MethodDelete, "webhooks/"+url.PathEscape(webhook.ID.String()), nil, nil); err != nil {
			return err
		}
	}
	return nil
}

// RequiredWebhookHeaders names the headers every delivery must carry.
func (a *PrestaAdapter) RequiredWebhookHeaders() []string {
	return []string{webhookSignatureHeader}
}

// VerifyWebhookSignature checks the body HMAC against the configured secret.
func (a *PrestaAdapter) VerifyWebhookSignature(headers map[string]string, body []byte) error {
	if a.config.WebhookSecret == "" {
		return ErrPrestaWebhookSecretMissing
	}
	if !a.config.VerifySignature(headers[webhookSignatureHeader], body) {
		return integration.ErrWebhookBadSignature
	}
	return nil
}

// ---------------------------------------------------------------------------
// Internal helpers
// ---------------------------------------------------------------------------

// orderLookupCache resolves carrier/currency/language names once per
// ReceiveOrders batch.
type orderLookupCache struct {
	adapter    *PrestaAdapter
	carriers   map[string]string
	currencies map[string]string
	languages  map[string]string
}

func newOrderLookupCache(adapter *PrestaAdapter) *orderLookupCache {
	return &orderLookupCache{
		adapter:    adapter,
		carriers:   make(map[string]string),
		currencies: make(map[string]string),
		languages:  make(map[string]string),
	}
}

func (c *orderLookupCache) carrierName(ctx context.Context, id string) (string, error) {
	if name, ok := c.carriers[id]; ok {
		return name, nil
	}
	var resp struct {
		Carrier prestaCarrier `json:"carrier"`
	}
	if err := c.adapter.getResource(ctx, "carriers/"+id, &resp); err != nil {
		return "", err
	}
	c.carriers[id] = resp.Carrier.Name
	return resp.Carrier.Name, nil
}

func (c *orderLookupCache) currencyISO(ctx context.Context, id string) (string, error) {
	if iso, ok := c.currencies[id]; ok {
		return iso, nil
	}
	var resp struct {
		Currency prestaCurrency `json:"currency"`
	}
	if err := c.adapter.getResource(ctx, "currencies/"+id, &resp); err != nil {
		return "", err
	}
	c.currencies[id] = resp.Currency.ISOCode
	return resp.Currency.ISOCode, nil
}

func (c *orderLookupCache) languageISO(ctx context.Context, id string) (string, error) {
	if iso, ok := c.languages[id]; ok {
		return iso, nil
	}
	var resp struct {
		Language prestaLanguage `json:"language"`
	}
	if err := c.adapter.getResource(ctx, "languages/"+id, &resp); err != nil {
		return "", err
	}
	c.languages[id] = resp.Language.ISOCode
	return resp.Language.ISOCode, nil
}

// listResource fetches a resource listing with display=full.
func (a *PrestaAdapter) listResource(ctx context.Context, resource string, query url.Values) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	if query.Get("display") == "" {
		query.Set("display", "full")
	}
	return a.doRequest(ctx, http.MethodGet, resource, query, nil)
}

// getResource fetches and decodes a single resource.
func (a *PrestaAdapter) getResource(ctx context.Context, path string, v any) error {
	body, err := a.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	return decodeInto(body, v)
}

// doRequest performs one HTTP request against the webservice. A non-nil body
// is marshaled as JSON.
func (a *PrestaAdapter) doRequest(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("output_format", "JSON")

	endpoint := fmt.Sprintf("%s/api/%s?%s", a.config.ShopURL, path, query.Encode())

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("presta: marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("presta: failed to create request: %w", err)
	}
	req.SetBasicAuth(a.config.APIKey, "")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrestaUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("presta: failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s %s", ErrPrestaNotFound, method, path)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d on %s %s", ErrPrestaRequestFailed, resp.StatusCode, method, path)
	}
	return payload, nil
}

// fetchBinary downloads a binary resource (image payload).
func (a *PrestaAdapter) fetchBinary(ctx context.Context, path string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/api/%s", a.config.ShopURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("presta: failed to create request: %w", err)
	}
	req.SetBasicAuth(a.config.APIKey, "")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrestaUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d on GET %s", ErrPrestaRequestFailed, resp.StatusCode, path)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
}

// sendBinary uploads a binary payload.
func (a *PrestaAdapter) sendBinary(ctx context.Context, path string, data []byte) error {
	endpoint := fmt.Sprintf("%s/api/%s", a.config.ShopURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("presta: failed to create request: %w", err)
	}
	req.SetBasicAuth(a.config.APIKey, "")
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPrestaUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: HTTP %d on POST %s", ErrPrestaRequestFailed, resp.StatusCode, path)
	}
	return nil
}

// translatedValue builds an ExternalValue from a translatable name.
func (a *PrestaAdapter) translatedValue(code string, name prestaTranslated) integration.ExternalValue {
	return integration.ExternalValue{
		Code:            code,
		Name:            name.Default(),
		TranslatedNames: a.translatedField(name),
	}
}

// translatedField converts a wire translatable into the canonical form. An
// untranslated value is attributed to the configured default language.
func (a *PrestaAdapter) translatedField(t prestaTranslated) integration.TranslatedField {
	if t == nil {
		return nil
	}
	out := make(integration.TranslatedField, len(t))
	for lang, value := range t {
		if lang == "" {
			lang = a.config.DefaultLanguageCode
		}
		out[lang] = value
	}
	return out
}

// translatedDoc renders a translated field in the webservice write format, a
// list of per-language values keyed by language id.
func translatedDoc(field integration.TranslatedField) []map[string]string {
	langs := make([]string, 0, len(field))
	for lang := range field {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	out := make([]map[string]string, 0, len(langs))
	for _, lang := range langs {
		out = append(out, map[string]string{"id": lang, "value": field[lang]})
	}
	return out
}

func decodeInto(data []byte, v any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("[]")) || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return fmt.Errorf("%w: %v", ErrPrestaInvalidResponse, err)
	}
	return nil
}

func zeroToEmpty(id string) string {
	if id == "0" {
		return ""
	}
	return id
}

func splitVariantCode(code string) (productID, attributeID string) {
	if idx := strings.LastIndex(code, "-"); idx > 0 {
		return code[:idx], code[idx+1:]
	}
	return code, "0"
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Ensure PrestaAdapter implements the Adapter port
var _ integration.Adapter = (*PrestaAdapter)(nil)
