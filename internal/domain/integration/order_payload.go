package integration

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// OrderPayload is the canonical order schema every adapter's ParseOrder must
// produce. Unknown extra fields in the platform payload are dropped by the
// adapter; the schema itself is non-strict.
type OrderPayload struct {
	Code                string               `json:"id" validate:"required"`
	Reference           string               `json:"ref" validate:"required"`
	CurrentOrderState   string               `json:"current_order_state,omitempty"`
	Customer            *AddressPayload      `json:"customer,omitempty"`
	Shipping            *AddressPayload      `json:"shipping,omitempty"`
	Billing             *AddressPayload      `json:"billing,omitempty"`
	Lines               []OrderLinePayload   `json:"lines" validate:"required,min=1,dive"`
	PaymentMethod       string               `json:"payment_method" validate:"required"`
	Payments            []PaymentTransaction `json:"payment_transactions,omitempty" validate:"omitempty,dive"`
	Carrier             string               `json:"carrier" validate:"required"`
	ShippingCost        decimal.Decimal      `json:"shipping_cost"`
	ShippingCostTaxExcl *decimal.Decimal     `json:"shipping_cost_tax_excl,omitempty"`
	Currency            string               `json:"currency,omitempty"`
	DiscountTaxIncl     decimal.Decimal      `json:"total_discounts_tax_incl"`
	DiscountTaxExcl     decimal.Decimal      `json:"total_discounts_tax_excl"`
	AmountTotal         *decimal.Decimal     `json:"amount_total,omitempty"`
	CarrierTaxRate      *decimal.Decimal     `json:"carrier_tax_rate,omitempty"`
	CarrierTaxCodes     []string             `json:"carrier_tax_ids,omitempty"`
}

// AddressPayload is one customer / shipping / billing address of an order.
type AddressPayload struct {
	Code        string `json:"id" validate:"required"`
	PersonName  string `json:"person_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Language    string `json:"language,omitempty"`
	PersonalID  string `json:"personal_id,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	CompanyReg  string `json:"company_reg_number,omitempty"`
	Street      string `json:"street,omitempty"`
	Street2     string `json:"street2,omitempty"`
	City        string `json:"city,omitempty"`
	ZIP         string `json:"zip,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	StateCode   string `json:"state_code,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
}

// OrderLinePayload is one product line of an order.
type OrderLinePayload struct {
	Code        string           `json:"id" validate:"required"`
	ProductCode string           `json:"product_id" validate:"required"`
	Quantity    decimal.Decimal  `json:"product_uom_qty"`
	TaxCodes    []string         `json:"taxes,omitempty"`
	PriceUnit   decimal.Decimal  `json:"price_unit"`
	Discount    *decimal.Decimal `json:"discount,omitempty"`
}

// PaymentTransaction is one captured payment attached to an order.
type PaymentTransaction struct {
	TransactionID   string          `json:"transaction_id" validate:"required"`
	TransactionDate string          `json:"transaction_date" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency,omitempty"`
}

var payloadValidator = validator.New()

// Validate checks the payload against the canonical schema, wrapping any
// violation as an import error.
func (p *OrderPayload) Validate() error {
	if err := payloadValidator.Struct(p); err != nil {
		return NewImportError("order payload failed schema validation: %v", err)
	}
	return nil
}
