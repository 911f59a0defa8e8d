package integration

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of an Integration.
type State string

const (
	// StateDraft means the connection is configured but not live.
	StateDraft State = "DRAFT"
	// StateActive means connectivity was verified and webhooks are registered.
	StateActive State = "ACTIVE"
)

// Feature names one asynchronously executed capability that can be switched
// on or off per integration.
type Feature string

const (
	FeatureOrderImport       Feature = "ORDER_IMPORT"
	FeatureProductExport     Feature = "PRODUCT_EXPORT"
	FeatureInventoryExport   Feature = "INVENTORY_EXPORT"
	FeatureTrackingExport    Feature = "TRACKING_EXPORT"
	FeatureOrderStatusExport Feature = "ORDER_STATUS_EXPORT"
)

// Setting is one persisted key/value entry of an integration. Secure values
// are stored encrypted and excluded from plain display; Eval values are
// evaluated against the integration before use.
type Setting struct {
	Key    string
	Value  string
	Secure bool
	Eval   bool
}

// WebhookLine enables one inbound webhook topic for an integration.
type WebhookLine struct {
	Topic      string
	Controller string
	IsActive   bool
	ExternalID string
}

// Integration is one connection configuration to one external platform
// instance. It owns all mapping and external records in its scope.
type Integration struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Name     string
	TypeAPI  string
	State    State

	Settings     []Setting
	Features     map[Feature]bool
	WebhookLines []WebhookLine

	// Sale order defaults.
	DefaultCustomerID           *uuid.UUID
	DiscountProductID           *uuid.UUID
	PositiveDifferenceProductID *uuid.UUID
	NegativeDifferenceProductID *uuid.UUID
	PricelistID                 *uuid.UUID
	ImportPayments              bool
	OrderNameRef                string

	// Inventory export scope.
	LocationIDs []uuid.UUID

	// DefaultLanguageCode is the canonical language for translated payloads.
	DefaultLanguageCode string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewIntegration creates a draft integration for the given API type.
func NewIntegration(tenantID uuid.UUID, name, typeAPI string) (*Integration, error) {
	if tenantID == uuid.Nil {
		return nil, NewImportError("tenant ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, NewImportError("integration name is required")
	}
	if strings.TrimSpace(typeAPI) == "" {
		return nil, NewImportError("integration API type is required")
	}
	now := time.Now()
	return &Integration{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      name,
		TypeAPI:   typeAPI,
		State:     StateDraft,
		Features:  make(map[Feature]bool),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsActive reports whether the integration is live.
func (i *Integration) IsActive() bool {
	return i.State == StateActive
}

// Activate transitions draft -> active. Connectivity check and webhook
// registration are the caller's responsibility and must happen first.
func (i *Integration) Activate() error {
	if i.State != StateDraft {
		return ErrInvalidStateTransition
	}
	i.State = StateActive
	i.UpdatedAt = time.Now()
	return nil
}

// Deactivate transitions active -> draft. Webhook teardown is the caller's
// responsibility.
func (i *Integration) Deactivate() error {
	if i.State != StateActive {
		return ErrInvalidStateTransition
	}
	i.State = StateDraft
	i.UpdatedAt = time.Now()
	return nil
}

// FeatureEnabled reports whether the named asynchronous feature is on.
func (i *Integration) FeatureEnabled(f Feature) bool {
	return i.Features[f]
}

// SetFeature switches one asynchronous feature on or off.
func (i *Integration) SetFeature(f Feature, enabled bool) {
	if i.Features == nil {
		i.Features = make(map[Feature]bool)
	}
	i.Features[f] = enabled
	i.UpdatedAt = time.Now()
}

// SettingValue returns the raw value of a setting key.
func (i *Integration) SettingValue(key string) (string, bool) {
	for _, s := range i.Settings {
		if s.Key == key {
			return s.Value, true
		}
	}
	return "", false
}

// SetSetting upserts one setting entry by key.
func (i *Integration) SetSetting(key, value string, secure, eval bool) {
	for idx := range i.Settings {
		if i.Settings[idx].Key == key {
			i.Settings[idx].Value = value
			i.Settings[idx].Secure = secure
			i.Settings[idx].Eval = eval
			i.UpdatedAt = time.Now()
			return
		}
	}
	i.Settings = append(i.Settings, Setting{Key: key, Value: value, Secure: secure, Eval: eval})
	i.UpdatedAt = time.Now()
}

// WebhookLine returns the webhook line for a topic.
func (i *Integration) WebhookLine(topic string) (WebhookLine, bool) {
	for _, line := range i.WebhookLines {
		if line.Topic == topic {
			return line, true
		}
	}
	return WebhookLine{}, false
}

// WebhookLineByController returns the webhook line registered under a
// controller path segment. Inbound deliveries carry the controller in the
// URL, not the topic.
func (i *Integration) WebhookLineByController(controller string) (WebhookLine, bool) {
	for _, line := range i.WebhookLines {
		if line.Controller == controller {
			return line, true
		}
	}
	return WebhookLine{}, false
}

// Repository is the persistence contract for integrations.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Integration, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Integration, error)
	FindByTypeAPI(ctx context.Context, typeAPI string) ([]Integration, error)
	FindActive(ctx context.Context) ([]Integration, error)
	Save(ctx context.Context, integration *Integration) error

	// Delete removes the integration; external records and mappings in its
	// scope cascade with it.
	Delete(ctx context.Context, id uuid.UUID) error
}
