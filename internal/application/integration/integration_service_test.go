package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/shopbridge/backend/internal/domain/integration"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// reversingCipher is a trivially reversible SettingsCipher for tests.
type reversingCipher struct{}

func (reversingCipher) Encrypt(plaintext string) (string, error) { return "enc:" + plaintext, nil }

func (reversingCipher) Decrypt(ciphertext string) (string, error) {
	if len(ciphertext) < 4 || ciphertext[:4] != "enc:" {
		return "", errors.New("not encrypted")
	}
	return ciphertext[4:], nil
}

func newStubRegistry(adapter *stubAdapter) *integration.AdapterRegistry {
	registry := integration.NewAdapterRegistry()
	registry.Register("prestashop", func(*integration.Integration) (integration.Adapter, error) {
		return adapter, nil
	})
	return registry
}

func newActiveIntegration(t *testing.T) *integration.Integration {
	integ := newTestIntegration(t)
	require.NoError(t, integ.Activate())
	return integ
}

func webhookIntegration(t *testing.T) *integration.Integration {
	integ := newActiveIntegration(t)
	integ.WebhookLines = []integration.WebhookLine{
		{Topic: "actionValidateOrder", Controller: "order-created", IsActive: true},
	}
	return integ
}

func TestIntegrationService_SetSetting_EncryptsSecureValues(t *testing.T) {
	repo := new(MockIntegrationRepository)
	service := NewIntegrationService(repo, newStubRegistry(&stubAdapter{}), reversingCipher{}, nil, "https://erp.example.com", zap.NewNop())

	integ := newTestIntegration(t)
	repo.On("FindByID", mock.Anything, integ.ID).Return(integ, nil)
	repo.On("Save", mock.Anything, integ).Return(nil)

	require.NoError(t, service.SetSetting(context.Background(), integ.ID, "api_key", "secret", true, false))

	stored, ok := integ.SettingValue("api_key")
	require.True(t, ok)
	assert.Equal(t, "enc:secret", stored)

	// SettingValue on the service decrypts transparently.
	value, err := service.SettingValue(integ, "api_key")
	require.NoError(t, err)
	assert.Equal(t, "secret", value)
}

func TestIntegrationService_SettingValue_Missing(t *testing.T) {
	service := NewIntegrationService(new(MockIntegrationRepository), newStubRegistry(&stubAdapter{}), reversingCipher{}, nil, "", zap.NewNop())

	_, err := service.SettingValue(newTestIntegration(t), "missing")
	assert.ErrorIs(t, err, integration.ErrSettingNotFound)
}

func TestIntegrationService_Activate_RegistersWebhooksAndSchedulesImport(t *testing.T) {
	repo := new(MockIntegrationRepository)
	jobs := new(MockJobEnqueuer)

	var registered []integration.WebhookRoute
	adapter := &stubAdapter{
		registerWebhooksFn: func(ctx context.Context, routes []integration.WebhookRoute) (map[string]string, error) {
			registered = routes
			return map[string]string{"actionValidateOrder": "ext-1"}, nil
		},
	}
	service := NewIntegrationService(repo, newStubRegistry(adapter), nil, jobs, "https://erp.example.com/", zap.NewNop())

	integ := newTestIntegration(t)
	integ.WebhookLines = []integration.WebhookLine{
		{Topic: "actionValidateOrder", Controller: "order-created", IsActive: true},
		{Topic: "actionProductUpdate", Controller: "product-updated", IsActive: false},
	}
	repo.On("FindByID", mock.Anything, integ.ID).Return(integ, nil)
	repo.On("Save", mock.Anything, integ).Return(nil)
	jobs.On("Enqueue", mock.Anything, mock.MatchedBy(func(req JobRequest) bool {
		return req.Type == JobTypeImportMasterData && req.IntegrationID == integ.ID
	})).Return(nil)

	require.NoError(t, service.Activate(context.Background(), integ.ID))

	assert.True(t, integ.IsActive())
	// Only active lines are registered, under the trimmed base URL.
	require.Len(t, registered, 1)
	assert.Equal(t, "actionValidateOrder", registered[0].Topic)
	assert.Equal(t, "https://erp.example.com/webhooks/"+integ.ID.String()+"/order-created", registered[0].URL)
	assert.Equal(t, "ext-1", integ.WebhookLines[0].ExternalID)
	jobs.AssertExpectations(t)
}

func TestIntegrationService_Activate_FailedConnectionKeepsDraft(t *testing.T) {
	repo := new(MockIntegrationRepository)
	adapter := &stubAdapter{
		checkConnectionFn: func(ctx context.Context) error { return errors.New("401 unauthorized") },
	}
	service := NewIntegrationService(repo, newStubRegistry(adapter), nil, nil, "", zap.NewNop())

	integ := newTestIntegration(t)
	repo.On("FindByID", mock.Anything, integ.ID).Return(integ, nil)

	err := service.Activate(context.Background(), integ.ID)

	require.Error(t, err)
	assert.False(t, integ.IsActive())
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestIntegrationService_Deactivate_ClearsExternalWebhookIDs(t *testing.T) {
	repo := new(MockIntegrationRepository)
	service := NewIntegrationService(repo, newStubRegistry(&stubAdapter{}), nil, nil, "", zap.NewNop())

	integ := webhookIntegration(t)
	integ.WebhookLines[0].ExternalID = "ext-1"
	repo.On("FindByID", mock.Anything, integ.ID).Return(integ, nil)
	repo.On("Save", mock.Anything, integ).Return(nil)

	require.NoError(t, service.Deactivate(context.Background(), integ.ID))

	assert.False(t, integ.IsActive())
	assert.Empty(t, integ.WebhookLines[0].ExternalID)
}

func TestIntegrationService_VerifyWebhook_InactiveIntegration(t *testing.T) {
	repo := new(MockIntegrationRepository)
	service := NewIntegrationService(repo, newStubRegistry(&stubAdapter{}), nil, nil, "", zap.NewNop())

	integ := newTestIntegration(t)
	repo.On("FindByID", mock.Anything, integ.ID).Return(integ, nil)

	_, err := service.VerifyWebhook(context.Background(), integ.ID, WebhookRequest{Topic: "actionValidateOrder"})
	assert.ErrorIs(t, err, integration.ErrIntegrationNotActive)
}

func TestIntegrationService_VerifyWebhook_MissingHeaders(t *testing.T) {
	repo := new(MockIntegrationRepository)
	adapter := &stubAdapter{requiredWebhookHeaders: []string{"X-Hub-Signature"}}
	service := NewIntegrationService(repo, newStubRegistry(adapter), nil, nil, "", zap.NewNop())

	integ := webhookIntegration(t)
	repo.On("FindByID", mock.Anything, integ.ID).Return(integ, nil)

	_, err := service.VerifyWebhook(context.Background(), integ.ID, WebhookRequest{
		Topic:   "actionValidateOrder",
		Headers: map[string]string{"Content-Type": "application/json"},
	})
	assert.ErrorIs(t, err, integration.ErrWebhookMissingHeaders)
}

func TestIntegrationService_VerifyWebhook_HostMismatch(t *testing.T) {
	repo := new(MockIntegrationRepository)
	service := NewIntegrationService(repo, newStubRegistry(&stubAdapter{}), nil, nil, "", zap.NewNop())

	integ := webhookIntegration(t)
	integ.SetSetting(SettingShopURL, "https://shop.example.com/fr", false, false)
	repo.On("FindByID", mock.Anything, integ.ID).Return(integ, nil)

	_, err := service.VerifyWebhook(context.Background(), integ.ID, WebhookRequest{
		Topic: "actionValidateOrder",
		Host:  "evil.example.org",
	})
	assert.ErrorIs(t, err, integration.ErrWebhookHostMismatch)

	// The scheme and path of the configured URL are ignored for comparison.
	_, err = service.VerifyWebhook(context.Background(), integ.ID, WebhookRequest{
		Topic: "actionValidateOrder",
		Host:  "SHOP.example.com",
	})
	assert.NoError(t, err)
}

func TestIntegrationService_VerifyWebhook_UnknownTopic(t *testing.T) {
	repo := new(MockIntegrationRepository)
	service := NewIntegrationService(repo, newStubRegistry(&stubAdapter{}), nil, nil, "", zap.NewNop())

	integ := webhookIntegration(t)
	repo.On("FindByID", mock.Anything, integ.ID).Return(integ, nil)

	_, err := service.VerifyWebhook(context.Background(), integ.ID, WebhookRequest{Topic: "actionProductUpdate"})
	assert.ErrorIs(t, err, integration.ErrWebhookNotConfigured)
}

func TestIntegrationService_VerifyWebhook_InactiveLine(t *testing.T) {
	repo := new(MockIntegrationRepository)
	service := NewIntegrationService(repo, newStubRegistry(&stubAdapter{}), nil, nil, "", zap.NewNop())

	integ := webhookIntegration(t)
	integ.WebhookLines[0].IsActive = false
	repo.On("FindByID", mock.Anything, integ.ID).Return(integ, nil)

	_, err := service.VerifyWebhook(context.Background(), integ.ID, WebhookRequest{Topic: "actionValidateOrder"})
	assert.ErrorIs(t, err, integration.ErrWebhookInactive)
}

func TestIntegrationService_VerifyWebhook_BadSignature(t *testing.T) {
	repo := new(MockIntegrationRepository)
	adapter := &stubAdapter{
		verifyWebhookSignatureFn: func(headers map[string]string, body []byte) error {
			return errors.New("digest mismatch")
		},
	}
	service := NewIntegrationService(repo, newStubRegistry(adapter), nil, nil, "", zap.NewNop())

	integ := webhookIntegration(t)
	repo.On("FindByID", mock.Anything, integ.ID).Return(integ, nil)

	_, err := service.VerifyWebhook(context.Background(), integ.ID, WebhookRequest{Topic: "actionValidateOrder"})
	assert.ErrorIs(t, err, integration.ErrWebhookBadSignature)
}

func TestIntegrationService_VerifyWebhook_Success(t *testing.T) {
	repo := new(MockIntegrationRepository)
	var verifiedBody []byte
	adapter := &stubAdapter{
		requiredWebhookHeaders: []string{"X-Hub-Signature"},
		verifyWebhookSignatureFn: func(headers map[string]string, body []byte) error {
			verifiedBody = body
			return nil
		},
	}
	service := NewIntegrationService(repo, newStubRegistry(adapter), nil, nil, "", zap.NewNop())

	integ := webhookIntegration(t)
	integ.SetSetting(SettingShopURL, "https://shop.example.com", false, false)
	repo.On("FindByID", mock.Anything, integ.ID).Return(integ, nil)

	got, err := service.VerifyWebhook(context.Background(), integ.ID, WebhookRequest{
		Topic:   "actionValidateOrder",
		Host:    "shop.example.com",
		Headers: map[string]string{"X-Hub-Signature": "sha256=abc"},
		Body:    []byte(`{"id":"77"}`),
	})

	require.NoError(t, err)
	assert.Equal(t, integ.ID, got.ID)
	assert.Equal(t, []byte(`{"id":"77"}`), verifiedBody)
}
