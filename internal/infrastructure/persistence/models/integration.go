package models

import (
	"encoding/json"
	"time"

	"github.com/shopbridge/backend/internal/domain/integration"

	"github.com/google/uuid"
)

// IntegrationModel is the persistence model for the Integration aggregate.
// Settings, features, webhook lines and location scope are stored as JSONB.
type IntegrationModel struct {
	BaseModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(200);not null"`
	TypeAPI  string    `gorm:"type:varchar(50);not null;index"`
	State    string    `gorm:"type:varchar(20);not null;default:'DRAFT';index"`

	SettingsJSON     string `gorm:"type:jsonb;column:settings"`
	FeaturesJSON     string `gorm:"type:jsonb;column:features"`
	WebhookLinesJSON string `gorm:"type:jsonb;column:webhook_lines"`
	LocationIDsJSON  string `gorm:"type:jsonb;column:location_ids"`

	DefaultCustomerID           *uuid.UUID `gorm:"type:uuid"`
	DiscountProductID           *uuid.UUID `gorm:"type:uuid"`
	PositiveDifferenceProductID *uuid.UUID `gorm:"type:uuid"`
	NegativeDifferenceProductID *uuid.UUID `gorm:"type:uuid"`
	PricelistID                 *uuid.UUID `gorm:"type:uuid"`
	ImportPayments              bool       `gorm:"not null;default:false"`
	OrderNameRef                string     `gorm:"type:varchar(50)"`
	DefaultLanguageCode         string     `gorm:"type:varchar(10)"`
}

// TableName returns the table name for GORM
func (IntegrationModel) TableName() string {
	return "integrations"
}

// ToDomain converts the persistence model to a domain Integration.
func (m *IntegrationModel) ToDomain() *integration.Integration {
	integ := &integration.Integration{
		ID:                          m.ID,
		TenantID:                    m.TenantID,
		Name:                        m.Name,
		TypeAPI:                     m.TypeAPI,
		State:                       integration.State(m.State),
		Features:                    make(map[integration.Feature]bool),
		DefaultCustomerID:           m.DefaultCustomerID,
		DiscountProductID:           m.DiscountProductID,
		PositiveDifferenceProductID: m.PositiveDifferenceProductID,
		NegativeDifferenceProductID: m.NegativeDifferenceProductID,
		PricelistID:                 m.PricelistID,
		ImportPayments:              m.ImportPayments,
		OrderNameRef:                m.OrderNameRef,
		DefaultLanguageCode:         m.DefaultLanguageCode,
		CreatedAt:                   m.CreatedAt,
		UpdatedAt:                   m.UpdatedAt,
	}

	if m.SettingsJSON != "" {
		_ = json.Unmarshal([]byte(m.SettingsJSON), &integ.Settings)
	}
	if m.FeaturesJSON != "" {
		_ = json.Unmarshal([]byte(m.FeaturesJSON), &integ.Features)
	}
	if m.WebhookLinesJSON != "" {
		_ = json.Unmarshal([]byte(m.WebhookLinesJSON), &integ.WebhookLines)
	}
	if m.LocationIDsJSON != "" {
		_ = json.Unmarshal([]byte(m.LocationIDsJSON), &integ.LocationIDs)
	}

	return integ
}

// FromDomain populates the persistence model from a domain Integration.
func (m *IntegrationModel) FromDomain(integ *integration.Integration) {
	m.ID = integ.ID
	m.TenantID = integ.TenantID
	m.Name = integ.Name
	m.TypeAPI = integ.TypeAPI
	m.State = string(integ.State)
	m.DefaultCustomerID = integ.DefaultCustomerID
	m.DiscountProductID = integ.DiscountProductID
	m.PositiveDifferenceProductID = integ.PositiveDifferenceProductID
	m.NegativeDifferenceProductID = integ.NegativeDifferenceProductID
	m.PricelistID = integ.PricelistID
	m.ImportPayments = integ.ImportPayments
	m.OrderNameRef = integ.OrderNameRef
	m.DefaultLanguageCode = integ.DefaultLanguageCode
	m.CreatedAt = integ.CreatedAt
	m.UpdatedAt = integ.UpdatedAt

	m.SettingsJSON = marshalOrEmpty(integ.Settings, "[]")
	m.FeaturesJSON = marshalOrEmpty(integ.Features, "{}")
	m.WebhookLinesJSON = marshalOrEmpty(integ.WebhookLines, "[]")
	m.LocationIDsJSON = marshalOrEmpty(integ.LocationIDs, "[]")
}

// IntegrationModelFromDomain creates a persistence model from a domain Integration.
func IntegrationModelFromDomain(integ *integration.Integration) *IntegrationModel {
	m := &IntegrationModel{}
	m.FromDomain(integ)
	return m
}

func marshalOrEmpty(v any, empty string) string {
	data, err := json.Marshal(v)
	if err != nil {
		return empty
	}
	return string(data)
}

// ExternalRecordModel is the persistence model for cached external platform
// records. (integration, kind, code) is the natural key.
type ExternalRecordModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	IntegrationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_external_record_key,priority:1"`
	Kind          string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_external_record_key,priority:2"`
	Code          string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_external_record_key,priority:3"`
	Name          string    `gorm:"type:varchar(255)"`

	ExternalReference string `gorm:"type:varchar(100);index"`
	ParentCode        string `gorm:"type:varchar(100);index"`
	RawJSON           string `gorm:"type:jsonb;column:raw"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExternalRecordModel) TableName() string {
	return "integration_external_records"
}

// ToDomain converts the persistence model to a domain ExternalRecord.
func (m *ExternalRecordModel) ToDomain() *integration.ExternalRecord {
	record := &integration.ExternalRecord{
		ID:                m.ID,
		IntegrationID:     m.IntegrationID,
		Kind:              integration.EntityKind(m.Kind),
		Code:              m.Code,
		Name:              m.Name,
		ExternalReference: m.ExternalReference,
		ParentCode:        m.ParentCode,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.RawJSON != "" {
		_ = json.Unmarshal([]byte(m.RawJSON), &record.Raw)
	}
	return record
}

// FromDomain populates the persistence model from a domain ExternalRecord.
func (m *ExternalRecordModel) FromDomain(record *integration.ExternalRecord) {
	m.ID = record.ID
	m.IntegrationID = record.IntegrationID
	m.Kind = string(record.Kind)
	m.Code = record.Code
	m.Name = record.Name
	m.ExternalReference = record.ExternalReference
	m.ParentCode = record.ParentCode
	m.CreatedAt = record.CreatedAt
	m.UpdatedAt = record.UpdatedAt
	m.RawJSON = marshalOrEmpty(record.Raw, "{}")
}

// ExternalRecordModelFromDomain creates a persistence model from a domain ExternalRecord.
func ExternalRecordModelFromDomain(record *integration.ExternalRecord) *ExternalRecordModel {
	m := &ExternalRecordModel{}
	m.FromDomain(record)
	return m
}

// PendingTranslationModel stores non-default-language field values extracted
// during import.
type PendingTranslationModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	ExternalRecordID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pending_translation_key,priority:1"`
	Field            string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_pending_translation_key,priority:2"`
	LanguageCode     string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_pending_translation_key,priority:3"`
	Value            string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PendingTranslationModel) TableName() string {
	return "integration_pending_translations"
}

// ToDomain converts the persistence model to a domain PendingTranslation.
func (m *PendingTranslationModel) ToDomain() integration.PendingTranslation {
	return integration.PendingTranslation{
		ID:               m.ID,
		ExternalRecordID: m.ExternalRecordID,
		Field:            m.Field,
		LanguageCode:     m.LanguageCode,
		Value:            m.Value,
	}
}

// MappingModel is the persistence model for internal/external id links. At
// most one row exists per (integration, external record).
type MappingModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	IntegrationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_mapping_external,priority:1;index:idx_mapping_internal,priority:1"`
	Kind          string    `gorm:"type:varchar(30);not null;index:idx_mapping_internal,priority:2"`

	InternalID       *uuid.UUID `gorm:"type:uuid;index:idx_mapping_internal,priority:3"`
	ExternalRecordID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_mapping_external,priority:2"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MappingModel) TableName() string {
	return "integration_mappings"
}

// ToDomain converts the persistence model to a domain Mapping.
func (m *MappingModel) ToDomain() *integration.Mapping {
	return &integration.Mapping{
		ID:               m.ID,
		IntegrationID:    m.IntegrationID,
		Kind:             integration.EntityKind(m.Kind),
		InternalID:       m.InternalID,
		ExternalRecordID: m.ExternalRecordID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Mapping.
func (m *MappingModel) FromDomain(mapping *integration.Mapping) {
	m.ID = mapping.ID
	m.IntegrationID = mapping.IntegrationID
	m.Kind = string(mapping.Kind)
	m.InternalID = mapping.InternalID
	m.ExternalRecordID = mapping.ExternalRecordID
	m.CreatedAt = mapping.CreatedAt
	m.UpdatedAt = mapping.UpdatedAt
}

// MappingModelFromDomain creates a persistence model from a domain Mapping.
func MappingModelFromDomain(mapping *integration.Mapping) *MappingModel {
	m := &MappingModel{}
	m.FromDomain(mapping)
	return m
}
