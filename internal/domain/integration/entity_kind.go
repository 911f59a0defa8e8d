package integration

// EntityKind identifies one synchronized entity type. Every ExternalRecord and
// every Mapping is scoped to exactly one kind, which replaces the dynamic
// per-model name construction of classic connector designs with a typed enum.
type EntityKind string

const (
	KindTax            EntityKind = "TAX"
	KindTaxGroup       EntityKind = "TAX_GROUP"
	KindAttribute      EntityKind = "ATTRIBUTE"
	KindAttributeValue EntityKind = "ATTRIBUTE_VALUE"
	KindFeature        EntityKind = "FEATURE"
	KindFeatureValue   EntityKind = "FEATURE_VALUE"
	KindCategory       EntityKind = "CATEGORY"
	KindCountry        EntityKind = "COUNTRY"
	KindCountryState   EntityKind = "COUNTRY_STATE"
	KindLanguage       EntityKind = "LANGUAGE"
	KindCarrier        EntityKind = "CARRIER"
	KindPaymentMethod  EntityKind = "PAYMENT_METHOD"
	KindSubStatus      EntityKind = "SUB_STATUS"
	KindTemplate       EntityKind = "PRODUCT_TEMPLATE"
	KindVariant        EntityKind = "PRODUCT_VARIANT"
	KindPartner        EntityKind = "PARTNER"
	KindOrder          EntityKind = "ORDER"
)

// AllEntityKinds returns every synchronized entity kind.
func AllEntityKinds() []EntityKind {
	return []EntityKind{
		KindTax, KindTaxGroup, KindAttribute, KindAttributeValue,
		KindFeature, KindFeatureValue, KindCategory, KindCountry,
		KindCountryState, KindLanguage, KindCarrier, KindPaymentMethod,
		KindSubStatus, KindTemplate, KindVariant, KindPartner, KindOrder,
	}
}

// IsValid returns true if the kind is a known entity kind.
func (k EntityKind) IsValid() bool {
	for _, known := range AllEntityKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the kind.
func (k EntityKind) String() string {
	return string(k)
}
