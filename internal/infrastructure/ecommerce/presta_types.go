package ecommerce

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// The webservice encodes scalars loosely: numbers arrive as strings or JSON
// numbers depending on the shop version, booleans as "0"/"1", and translatable
// fields either as a plain string (single-language shop) or as a list of
// per-language values. The flex types below absorb those variations.

// flexString accepts a JSON string or number and stores it as a string.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (f flexString) String() string { return string(f) }

// Bool interprets the webservice's "0"/"1" flags.
func (f flexString) Bool() bool {
	return f == "1" || f == "true"
}

// Decimal parses the value as a decimal, zero when empty or malformed.
func (f flexString) Decimal() decimal.Decimal {
	if f == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(string(f))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// prestaTranslated is a translatable field keyed by external language code.
type prestaTranslated map[string]string

func (t *prestaTranslated) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = prestaTranslated{"": s}
		return nil
	}
	var entries []struct {
		ID    flexString `json:"id"`
		Value string     `json:"value"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	out := make(prestaTranslated, len(entries))
	for _, e := range entries {
		out[e.ID.String()] = e.Value
	}
	*t = out
	return nil
}

// Default returns the single value of an untranslated field, or the value of
// the lowest language id otherwise.
func (t prestaTranslated) Default() string {
	if v, ok := t[""]; ok {
		return v
	}
	best := ""
	var value string
	for id, v := range t {
		if best == "" || id < best {
			best, value = id, v
		}
	}
	return value
}

// Languages returns the per-language values, dropping the untranslated key.
func (t prestaTranslated) Languages() map[string]string {
	out := make(map[string]string, len(t))
	for id, v := range t {
		if id == "" {
			continue
		}
		out[id] = v
	}
	return out
}

// prestaIDNode is one {"id": ...} association entry.
type prestaIDNode struct {
	ID flexString `json:"id"`
}

// ---------------------------------------------------------------------------
// Master data resources
// ---------------------------------------------------------------------------

type prestaLanguage struct {
	ID      flexString `json:"id"`
	Name    string     `json:"name"`
	ISOCode string     `json:"iso_code"`
	Active  flexString `json:"active"`
}

type prestaLanguagesResponse struct {
	Languages []prestaLanguage `json:"languages"`
}

type prestaTax struct {
	ID     flexString       `json:"id"`
	Name   prestaTranslated `json:"name"`
	Rate   flexString       `json:"rate"`
	Active flexString       `json:"active"`
}

type prestaTaxesResponse struct {
	Taxes []prestaTax `json:"taxes"`
}

type prestaTaxRuleGroup struct {
	ID     flexString `json:"id"`
	Name   string     `json:"name"`
	Active flexString `json:"active"`
}

type prestaTaxRuleGroupsResponse struct {
	TaxRuleGroups []prestaTaxRuleGroup `json:"tax_rule_groups"`
}

// prestaTaxRule links one tax to one tax rule group.
type prestaTaxRule struct {
	ID              flexString `json:"id"`
	IDTaxRulesGroup flexString `json:"id_tax_rules_group"`
	IDTax           flexString `json:"id_tax"`
	IDCountry       flexString `json:"id_country"`
}

type prestaTaxRulesResponse struct {
	TaxRules []prestaTaxRule `json:"tax_rules"`
}

type prestaCarrier struct {
	ID      flexString       `json:"id"`
	Name    string           `json:"name"`
	Delay   prestaTranslated `json:"delay"`
	Deleted flexString       `json:"deleted"`
	Active  flexString       `json:"active"`
}

type prestaCarriersResponse struct {
	Carriers []prestaCarrier `json:"carriers"`
}

type prestaOrderState struct {
	ID       flexString       `json:"id"`
	Name     prestaTranslated `json:"name"`
	Paid     flexString       `json:"paid"`
	Shipped  flexString       `json:"shipped"`
	Delivery flexString       `json:"delivery"`
	Invoice  flexString       `json:"invoice"`
	Logable  flexString       `json:"logable"`
	Deleted  flexString       `json:"deleted"`
}

type prestaOrderStatesResponse struct {
	OrderStates []prestaOrderState `json:"order_states"`
}

type prestaCountry struct {
	ID      flexString       `json:"id"`
	Name    prestaTranslated `json:"name"`
	ISOCode string           `json:"iso_code"`
	Active  flexString       `json:"active"`
}

type prestaCountriesResponse struct {
	Countries []prestaCountry `json:"countries"`
}

type prestaState struct {
	ID        flexString `json:"id"`
	IDCountry flexString `json:"id_country"`
	Name      string     `json:"name"`
	ISOCode   string     `json:"iso_code"`
	Active    flexString `json:"active"`
}

type prestaStatesResponse struct {
	States []prestaState `json:"states"`
}

type prestaAttribute struct {
	ID           flexString       `json:"id"`
	Name         prestaTranslated `json:"name"`
	IsColorGroup flexString       `json:"is_color_group"`
	Position     flexString       `json:"position"`
}

type prestaAttributesResponse struct {
	Attributes []prestaAttribute `json:"product_options"`
}

type prestaAttributeValue struct {
	ID               flexString       `json:"id"`
	IDAttributeGroup flexString       `json:"id_attribute_group"`
	Name             prestaTranslated `json:"name"`
	Position         flexString       `json:"position"`
}

type prestaAttributeValuesResponse struct {
	AttributeValues []prestaAttributeValue `json:"product_option_values"`
}

type prestaFeature struct {
	ID       flexString       `json:"id"`
	Name     prestaTranslated `json:"name"`
	Position flexString       `json:"position"`
}

type prestaFeaturesResponse struct {
	Features []prestaFeature `json:"product_features"`
}

type prestaFeatureValue struct {
	ID        flexString       `json:"id"`
	IDFeature flexString       `json:"id_feature"`
	Value     prestaTranslated `json:"value"`
	Custom    flexString       `json:"custom"`
}

type prestaFeatureValuesResponse struct {
	FeatureValues []prestaFeatureValue `json:"product_feature_values"`
}

type prestaCategory struct {
	ID       flexString       `json:"id"`
	IDParent flexString       `json:"id_parent"`
	Name     prestaTranslated `json:"name"`
	Active   flexString       `json:"active"`
}

type prestaCategoriesResponse struct {
	Categories []prestaCategory `json:"categories"`
}

type prestaOrderPayment struct {
	ID             flexString `json:"id"`
	OrderReference string     `json:"order_reference"`
	PaymentMethod  string     `json:"payment_method"`
	Amount         flexString `json:"amount"`
	TransactionID  string     `json:"transaction_id"`
	DateAdd        string     `json:"date_add"`
}

type prestaOrderPaymentsResponse struct {
	OrderPayments []prestaOrderPayment `json:"order_payments"`
}

type prestaCurrency struct {
	ID      flexString `json:"id"`
	ISOCode string     `json:"iso_code"`
}

type prestaCurrenciesResponse struct {
	Currencies []prestaCurrency `json:"currencies"`
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

type prestaProductAssociations struct {
	Categories          []prestaIDNode `json:"categories"`
	Images              []prestaIDNode `json:"images"`
	Combinations        []prestaIDNode `json:"combinations"`
	ProductOptionValues []prestaIDNode `json:"product_option_values"`
	ProductFeatures     []struct {
		ID             flexString `json:"id"`
		IDFeatureValue flexString `json:"id_feature_value"`
	} `json:"product_features"`
	ProductBundle []struct {
		ID                 flexString `json:"id"`
		IDProductAttribute flexString `json:"id_product_attribute"`
		Quantity           flexString `json:"quantity"`
	} `json:"product_bundle"`
}

type prestaProduct struct {
	ID              flexString                `json:"id"`
	Name            prestaTranslated          `json:"name"`
	Description     prestaTranslated          `json:"description"`
	Reference       string                    `json:"reference"`
	EAN13           string                    `json:"ean13"`
	Price           flexString                `json:"price"`
	WholesalePrice  flexString                `json:"wholesale_price"`
	Weight          flexString                `json:"weight"`
	Active          flexString                `json:"active"`
	Type            string                    `json:"type"`
	IDTaxRulesGroup flexString                `json:"id_tax_rules_group"`
	Associations    prestaProductAssociations `json:"associations"`
}

type prestaProductResponse struct {
	Product prestaProduct `json:"product"`
}

type prestaProductsResponse struct {
	Products []prestaProduct `json:"products"`
}

type prestaCombination struct {
	ID           flexString `json:"id"`
	IDProduct    flexString `json:"id_product"`
	Reference    string     `json:"reference"`
	EAN13        string     `json:"ean13"`
	Price        flexString `json:"price"`
	Weight       flexString `json:"weight"`
	Associations struct {
		ProductOptionValues []prestaIDNode `json:"product_option_values"`
		Images              []prestaIDNode `json:"images"`
	} `json:"associations"`
}

type prestaCombinationResponse struct {
	Combination prestaCombination `json:"combination"`
}

type prestaCombinationsResponse struct {
	Combinations []prestaCombination `json:"combinations"`
}

type prestaStockAvailable struct {
	ID                 flexString `json:"id"`
	IDProduct          flexString `json:"id_product"`
	IDProductAttribute flexString `json:"id_product_attribute"`
	Quantity           flexString `json:"quantity"`
}

type prestaStockAvailablesResponse struct {
	StockAvailables []prestaStockAvailable `json:"stock_availables"`
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

type prestaOrder struct {
	ID                    flexString `json:"id"`
	Reference             string     `json:"reference"`
	CurrentState          flexString `json:"current_state"`
	IDCustomer            flexString `json:"id_customer"`
	IDAddressDelivery     flexString `json:"id_address_delivery"`
	IDAddressInvoice      flexString `json:"id_address_invoice"`
	IDCarrier             flexString `json:"id_carrier"`
	IDCurrency            flexString `json:"id_currency"`
	Payment               string     `json:"payment"`
	TotalPaidTaxIncl      flexString `json:"total_paid_tax_incl"`
	TotalDiscountsTaxIncl flexString `json:"total_discounts_tax_incl"`
	TotalDiscountsTaxExcl flexString `json:"total_discounts_tax_excl"`
	TotalShippingTaxIncl  flexString `json:"total_shipping_tax_incl"`
	TotalShippingTaxExcl  flexString `json:"total_shipping_tax_excl"`
	CarrierTaxRate        flexString `json:"carrier_tax_rate"`
}

type prestaOrderResponse struct {
	Order prestaOrder `json:"order"`
}

type prestaOrdersResponse struct {
	Orders []prestaOrder `json:"orders"`
}

type prestaOrderDetail struct {
	ID                 flexString `json:"id"`
	IDOrder            flexString `json:"id_order"`
	ProductID          flexString `json:"product_id"`
	ProductAttributeID flexString `json:"product_attribute_id"`
	ProductQuantity    flexString `json:"product_quantity"`
	ProductReference   string     `json:"product_reference"`
	UnitPriceTaxExcl   flexString `json:"unit_price_tax_excl"`
	Associations       struct {
		Taxes []prestaIDNode `json:"taxes"`
	} `json:"associations"`
}

type prestaOrderDetailsResponse struct {
	OrderDetails []prestaOrderDetail `json:"order_details"`
}

type prestaCustomer struct {
	ID        flexString `json:"id"`
	Firstname string     `json:"firstname"`
	Lastname  string     `json:"lastname"`
	Email     string     `json:"email"`
	Company   string     `json:"company"`
	IDLang    flexString `json:"id_lang"`
}

type prestaCustomerResponse struct {
	Customer prestaCustomer `json:"customer"`
}

type prestaAddress struct {
	ID          flexString `json:"id"`
	Firstname   string     `json:"firstname"`
	Lastname    string     `json:"lastname"`
	Company     string     `json:"company"`
	VATNumber   string     `json:"vat_number"`
	DNI         string     `json:"dni"`
	Address1    string     `json:"address1"`
	Address2    string     `json:"address2"`
	City        string     `json:"city"`
	Postcode    string     `json:"postcode"`
	IDCountry   flexString `json:"id_country"`
	IDState     flexString `json:"id_state"`
	Phone       string     `json:"phone"`
	PhoneMobile string     `json:"phone_mobile"`
}

type prestaAddressResponse struct {
	Address prestaAddress `json:"address"`
}

type prestaOrderCarrier struct {
	ID             flexString `json:"id"`
	IDOrder        flexString `json:"id_order"`
	IDCarrier      flexString `json:"id_carrier"`
	TrackingNumber string     `json:"tracking_number"`
}

type prestaOrderCarriersResponse struct {
	OrderCarriers []prestaOrderCarrier `json:"order_carriers"`
}

type prestaWebhook struct {
	ID    flexString `json:"id"`
	Topic string     `json:"topic"`
	URL   string     `json:"url"`
}

type prestaWebhookResponse struct {
	Webhook prestaWebhook `json:"webhook"`
}

type prestaWebhooksResponse struct {
	Webhooks []prestaWebhook `json:"webhooks"`
}

// prestaOrderEnvelope is the self-contained order document ReceiveOrders
// assembles so that ParseOrder can stay a pure function: the order row plus
// every referenced record resolved at fetch time.
type prestaOrderEnvelope struct {
	Order            prestaOrder          `json:"order"`
	Details          []prestaOrderDetail  `json:"order_details"`
	Customer         *prestaCustomer      `json:"customer,omitempty"`
	DeliveryAddress  *prestaAddress       `json:"delivery_address,omitempty"`
	InvoiceAddress   *prestaAddress       `json:"invoice_address,omitempty"`
	Payments         []prestaOrderPayment `json:"payments,omitempty"`
	CarrierName      string               `json:"carrier_name,omitempty"`
	CurrencyISO      string               `json:"currency_iso,omitempty"`
	CustomerLanguage string               `json:"customer_language,omitempty"`
	CarrierTaxCodes  []string             `json:"carrier_tax_ids,omitempty"`
}
