package ecommerce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// TypeAPIPresta is the API type discriminator served by the PrestaShop-style
// REST adapter.
const TypeAPIPresta = "prestashop"

// Setting keys the Presta adapter reads from an integration's settings.
const (
	// SettingPrestaAPIKey is the webservice key (stored encrypted).
	SettingPrestaAPIKey = "api_key"
	// SettingPrestaWebhookSecret signs inbound webhook bodies (stored encrypted).
	SettingPrestaWebhookSecret = "webhook_secret"
	// SettingPrestaOrderStates is a comma separated list of external order
	// state codes worth importing. Empty imports every state.
	SettingPrestaOrderStates = "order_states"
)

// Errors for Presta configuration
var (
	ErrPrestaConfigMissingShopURL = errors.New("presta: shop URL is required")
	ErrPrestaConfigMissingAPIKey  = errors.New("presta: webservice API key is required")
)

// PrestaConfig holds the connection settings of one PrestaShop-style shop.
type PrestaConfig struct {
	// ShopURL is the base URL of the shop, without the /api suffix.
	ShopURL string
	// APIKey is the webservice key, sent as the basic-auth username.
	APIKey string
	// WebhookSecret signs webhook deliveries. Optional until webhooks are
	// activated.
	WebhookSecret string
	// OrderStateCodes limits ReceiveOrders to these external state codes.
	OrderStateCodes []string
	// DefaultLanguageCode is the external language id untranslated payload
	// values are attributed to.
	DefaultLanguageCode string
	// WebhookPathToken identifies this connection's webhook URLs on the
	// platform, so teardown only removes its own registrations.
	WebhookPathToken string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// NewPrestaConfig creates a new Presta configuration with defaults
func NewPrestaConfig(shopURL, apiKey string) *PrestaConfig {
	return &PrestaConfig{
		ShopURL:        shopURL,
		APIKey:         apiKey,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Presta configuration
func (c *PrestaConfig) Validate() error {
	if strings.TrimSpace(c.ShopURL) == "" {
		return ErrPrestaConfigMissingShopURL
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrPrestaConfigMissingAPIKey
	}
	c.ShopURL = strings.TrimRight(c.ShopURL, "/")
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// Sign computes the hex HMAC-SHA256 of a webhook body with the webhook secret.
func (c *PrestaConfig) Sign(body []byte) string {
	h := hmac.New(sha256.New, []byte(c.WebhookSecret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature reports whether the given hex signature matches the body.
func (c *PrestaConfig) VerifySignature(signature string, body []byte) bool {
	expected, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	h := hmac.New(sha256.New, []byte(c.WebhookSecret))
	h.Write(body)
	return hmac.Equal(expected, h.Sum(nil))
}

// ParseOrderStates splits the order_states setting value into state codes.
func ParseOrderStates(value string) []string {
	var codes []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			codes = append(codes, trimmed)
		}
	}
	return codes
}
