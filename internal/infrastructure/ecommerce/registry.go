package ecommerce

import (
	"fmt"

	appintegration "github.com/shopbridge/backend/internal/application/integration"
	"github.com/shopbridge/backend/internal/domain/integration"
)

// RegisterAdapters binds every built-in platform adapter to its API type.
func RegisterAdapters(registry *integration.AdapterRegistry, cipher appintegration.SettingsCipher) {
	registry.Register(TypeAPIPresta, NewPrestaFactory(cipher))
}

// NewPrestaFactory builds Presta adapters from an integration's settings.
// Secure settings (the webservice key, the webhook secret) are decrypted
// through the cipher.
func NewPrestaFactory(cipher appintegration.SettingsCipher) integration.AdapterFactory {
	return func(integ *integration.Integration) (integration.Adapter, error) {
		shopURL, err := settingValue(integ, cipher, appintegration.SettingShopURL)
		if err != nil {
			return nil, err
		}
		apiKey, err := settingValue(integ, cipher, SettingPrestaAPIKey)
		if err != nil {
			return nil, err
		}

		config := NewPrestaConfig(shopURL, apiKey)
		config.DefaultLanguageCode = integ.DefaultLanguageCode
		config.WebhookPathToken = "/webhooks/" + integ.ID.String() + "/"

		// Optional settings.
		if secret, err := settingValue(integ, cipher, SettingPrestaWebhookSecret); err == nil {
			config.WebhookSecret = secret
		}
		if states, ok := integ.SettingValue(SettingPrestaOrderStates); ok {
			config.OrderStateCodes = ParseOrderStates(states)
		}

		return NewPrestaAdapter(config)
	}
}

// settingValue reads one setting, decrypting secure values.
func settingValue(integ *integration.Integration, cipher appintegration.SettingsCipher, key string) (string, error) {
	for _, setting := range integ.Settings {
		if setting.Key != key {
			continue
		}
		if setting.Secure && cipher != nil {
			value, err := cipher.Decrypt(setting.Value)
			if err != nil {
				return "", fmt.Errorf("presta: decrypt setting %q: %w", key, err)
			}
			return value, nil
		}
		return setting.Value, nil
	}
	return "", integration.ErrSettingNotFound
}
