package integration

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopbridge/backend/internal/domain/integration"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettingShopURL is the setting key holding the external shop's base URL.
// Inbound webhooks must originate from this host.
const SettingShopURL = "shop_url"

// IntegrationService manages the lifecycle of platform connections:
// configuration, activation with connectivity check and webhook registration,
// and inbound webhook verification.
type IntegrationService struct {
	repo     integration.Repository
	adapters *integration.AdapterRegistry
	cipher   SettingsCipher
	jobs     JobEnqueuer
	// WebhookBaseURL is the public base URL inbound webhook routes are
	// registered under.
	webhookBaseURL string
	logger         *zap.Logger
}

// NewIntegrationService creates a new IntegrationService
func NewIntegrationService(
	repo integration.Repository,
	adapters *integration.AdapterRegistry,
	cipher SettingsCipher,
	jobs JobEnqueuer,
	webhookBaseURL string,
	logger *zap.Logger,
) *IntegrationService {
	return &IntegrationService{
		repo:           repo,
		adapters:       adapters,
		cipher:         cipher,
		jobs:           jobs,
		webhookBaseURL: webhookBaseURL,
		logger:         logger,
	}
}

// Create registers a draft integration for an API type.
func (s *IntegrationService) Create(ctx context.Context, tenantID uuid.UUID, name, typeAPI string) (*integration.Integration, error) {
	integ, err := integration.NewIntegration(tenantID, name, typeAPI)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, integ); err != nil {
		return nil, err
	}
	return integ, nil
}

// Get loads one integration.
func (s *IntegrationService) Get(ctx context.Context, id uuid.UUID) (*integration.Integration, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a tenant's integrations.
func (s *IntegrationService) List(ctx context.Context, tenantID uuid.UUID) ([]integration.Integration, error) {
	return s.repo.FindAllForTenant(ctx, tenantID)
}

// SetSetting stores one setting, encrypting secure values at rest.
func (s *IntegrationService) SetSetting(ctx context.Context, id uuid.UUID, key, value string, secure, eval bool) error {
	integ, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	stored := value
	if secure && s.cipher != nil {
		if stored, err = s.cipher.Encrypt(value); err != nil {
			return err
		}
	}
	integ.SetSetting(key, stored, secure, eval)
	return s.repo.Save(ctx, integ)
}

// SettingValue reads one setting, decrypting secure values.
func (s *IntegrationService) SettingValue(integ *integration.Integration, key string) (string, error) {
	for _, setting := range integ.Settings {
		if setting.Key != key {
			continue
		}
		if setting.Secure && s.cipher != nil {
			return s.cipher.Decrypt(setting.Value)
		}
		return setting.Value, nil
	}
	return "", integration.ErrSettingNotFound
}

// SetFeature toggles one feature flag.
func (s *IntegrationService) SetFeature(ctx context.Context, id uuid.UUID, feature integration.Feature, enabled bool) error {
	integ, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	integ.SetFeature(feature, enabled)
	return s.repo.Save(ctx, integ)
}

// ConfigureWebhook creates or updates the webhook line of a topic. Lines
// changed while the integration is live take effect on the next activation,
// when webhook registration runs again.
func (s *IntegrationService) ConfigureWebhook(ctx context.Context, id uuid.UUID, topic, controller string, active bool) error {
	integ, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	for i := range integ.WebhookLines {
		if integ.WebhookLines[i].Topic == topic {
			integ.WebhookLines[i].Controller = controller
			integ.WebhookLines[i].IsActive = active
			return s.repo.Save(ctx, integ)
		}
	}
	integ.WebhookLines = append(integ.WebhookLines, integration.WebhookLine{
		Topic:      topic,
		Controller: controller,
		IsActive:   active,
	})
	return s.repo.Save(ctx, integ)
}

// OrderDefaults carries the optional sale order and inventory scope
// configuration of an integration. Nil fields keep the stored value.
type OrderDefaults struct {
	DefaultCustomerID           *uuid.UUID
	DiscountProductID           *uuid.UUID
	PositiveDifferenceProductID *uuid.UUID
	NegativeDifferenceProductID *uuid.UUID
	PricelistID                 *uuid.UUID
	ImportPayments              *bool
	OrderNameRef                *string
	DefaultLanguageCode         *string
	LocationIDs                 []uuid.UUID
}

// UpdateDefaults applies order and inventory defaults to an integration.
func (s *IntegrationService) UpdateDefaults(ctx context.Context, id uuid.UUID, defaults OrderDefaults) error {
	integ, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if defaults.DefaultCustomerID != nil {
		integ.DefaultCustomerID = defaults.DefaultCustomerID
	}
	if defaults.DiscountProductID != nil {
		integ.DiscountProductID = defaults.DiscountProductID
	}
	if defaults.PositiveDifferenceProductID != nil {
		integ.PositiveDifferenceProductID = defaults.PositiveDifferenceProductID
	}
	if defaults.NegativeDifferenceProductID != nil {
		integ.NegativeDifferenceProductID = defaults.NegativeDifferenceProductID
	}
	if defaults.PricelistID != nil {
		integ.PricelistID = defaults.PricelistID
	}
	if defaults.ImportPayments != nil {
		integ.ImportPayments = *defaults.ImportPayments
	}
	if defaults.OrderNameRef != nil {
		integ.OrderNameRef = *defaults.OrderNameRef
	}
	if defaults.DefaultLanguageCode != nil {
		integ.DefaultLanguageCode = *defaults.DefaultLanguageCode
	}
	if defaults.LocationIDs != nil {
		integ.LocationIDs = defaults.LocationIDs
	}
	return s.repo.Save(ctx, integ)
}

// Activate verifies connectivity, registers the enabled webhook topics and
// transitions the integration live. A failed connection check leaves the
// integration in draft.
func (s *IntegrationService) Activate(ctx context.Context, id uuid.UUID) error {
	integ, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	adapter, err := s.adapters.Build(integ)
	if err != nil {
		return err
	}
	if err := adapter.CheckConnection(ctx); err != nil {
		return fmt.Errorf("connection check failed: %w", err)
	}

	if err := s.registerWebhooks(ctx, integ, adapter); err != nil {
		return err
	}

	if err := integ.Activate(); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, integ); err != nil {
		return err
	}

	if s.jobs != nil {
		job := JobRequest{
			Type:          JobTypeImportMasterData,
			IdentityKey:   fmt.Sprintf("master_data:%s", integ.ID),
			IntegrationID: integ.ID,
			TenantID:      integ.TenantID,
		}
		if err := s.jobs.Enqueue(ctx, job); err != nil {
			s.logger.Error("failed to schedule master data import",
				zap.String("integration_id", integ.ID.String()), zap.Error(err))
		}
	}

	s.logger.Info("integration activated",
		zap.String("integration_id", integ.ID.String()),
		zap.String("type_api", integ.TypeAPI))
	return nil
}

// Deactivate unregisters webhooks and returns the integration to draft.
// Webhook teardown is best effort: a dead platform must not keep the
// integration live.
func (s *IntegrationService) Deactivate(ctx context.Context, id uuid.UUID) error {
	integ, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if adapter, err := s.adapters.Build(integ); err == nil {
		if err := adapter.UnregisterWebhooks(ctx); err != nil {
			s.logger.Warn("failed to unregister webhooks during deactivation",
				zap.String("integration_id", integ.ID.String()), zap.Error(err))
		}
	}

	for i := range integ.WebhookLines {
		integ.WebhookLines[i].ExternalID = ""
	}

	if err := integ.Deactivate(); err != nil {
		return err
	}
	return s.repo.Save(ctx, integ)
}

// Delete removes an integration with all its external records and mappings.
func (s *IntegrationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *IntegrationService) registerWebhooks(ctx context.Context, integ *integration.Integration, adapter integration.Adapter) error {
	var routes []integration.WebhookRoute
	for _, line := range integ.WebhookLines {
		if !line.IsActive {
			continue
		}
		routes = append(routes, integration.WebhookRoute{
			Topic: line.Topic,
			URL:   fmt.Sprintf("%s/webhooks/%s/%s", strings.TrimRight(s.webhookBaseURL, "/"), integ.ID, line.Controller),
		})
	}
	if len(routes) == 0 {
		return nil
	}

	externalIDs, err := adapter.RegisterWebhooks(ctx, routes)
	if err != nil {
		return err
	}
	for i := range integ.WebhookLines {
		if id, ok := externalIDs[integ.WebhookLines[i].Topic]; ok {
			integ.WebhookLines[i].ExternalID = id
		}
	}
	return nil
}

// WebhookRequest is one inbound webhook delivery pending verification.
type WebhookRequest struct {
	Topic   string
	Host    string
	Headers map[string]string
	Body    []byte
}

// VerifyWebhook runs the full inbound verification sequence: the integration
// must be active, every adapter-required header present, the forwarded host
// must match the configured shop URL, the topic's webhook line must exist and
// be active, and the signature must verify. Order matters: cheap checks run
// before the signature.
func (s *IntegrationService) VerifyWebhook(ctx context.Context, integrationID uuid.UUID, req WebhookRequest) (*integration.Integration, error) {
	integ, err := s.repo.FindByID(ctx, integrationID)
	if err != nil {
		return nil, err
	}
	if !integ.IsActive() {
		return nil, integration.ErrIntegrationNotActive
	}

	adapter, err := s.adapters.Build(integ)
	if err != nil {
		return nil, err
	}

	for _, header := range adapter.RequiredWebhookHeaders() {
		if _, ok := req.Headers[header]; !ok {
			return nil, integration.ErrWebhookMissingHeaders
		}
	}

	shopURL, err := s.SettingValue(integ, SettingShopURL)
	if err == nil && shopURL != "" && !hostMatches(shopURL, req.Host) {
		return nil, integration.ErrWebhookHostMismatch
	}

	line, ok := integ.WebhookLine(req.Topic)
	if !ok {
		return nil, integration.ErrWebhookNotConfigured
	}
	if !line.IsActive {
		return nil, integration.ErrWebhookInactive
	}

	if err := adapter.VerifyWebhookSignature(req.Headers, req.Body); err != nil {
		return nil, integration.ErrWebhookBadSignature
	}

	return integ, nil
}

func hostMatches(shopURL, host string) bool {
	trimmed := shopURL
	for _, prefix := range []string{"https://", "http://"} {
		trimmed = strings.TrimPrefix(trimmed, prefix)
	}
	trimmed = strings.SplitN(trimmed, "/", 2)[0]
	return strings.EqualFold(trimmed, host)
}
