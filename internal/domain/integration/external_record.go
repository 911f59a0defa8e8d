package integration

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ExternalRecord is a cached, integration-scoped copy of one record living in
// the external platform. Code is the external primary key; ExternalReference
// is an optional secondary natural key (SKU, ISO code) used for auto-matching.
type ExternalRecord struct {
	ID            uuid.UUID
	IntegrationID uuid.UUID
	Kind          EntityKind
	Code          string
	Name          string

	ExternalReference string

	// ParentCode links the record to its owner in the same integration scope:
	// variant -> template, tax -> tax group, attribute value -> attribute,
	// category -> parent category.
	ParentCode string

	// Raw keeps the platform payload the record was built from, for hooks and
	// diagnostics.
	Raw map[string]any

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewExternalRecord builds a record for the given scope and code.
func NewExternalRecord(integrationID uuid.UUID, kind EntityKind, code, name string) *ExternalRecord {
	now := time.Now()
	return &ExternalRecord{
		ID:            uuid.New(),
		IntegrationID: integrationID,
		Kind:          kind,
		Code:          code,
		Name:          name,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// PendingTranslation is one non-default-language value extracted from a
// multi-language payload field, stored for later application.
type PendingTranslation struct {
	ID               uuid.UUID
	ExternalRecordID uuid.UUID
	Field            string
	LanguageCode     string
	Value            string
}

// TranslatedField is a multi-language payload value keyed by external
// language code.
type TranslatedField map[string]string

// Resolve picks the canonical value for the default language and returns the
// remaining languages as pending translations. It fails when the payload
// carries no value for the default language.
func (f TranslatedField) Resolve(defaultLang string) (string, []PendingTranslation, error) {
	canonical, ok := f[defaultLang]
	if !ok {
		return "", nil, NewImportError("no value for default language %q in translated field", defaultLang)
	}
	var pending []PendingTranslation
	for lang, value := range f {
		if lang == defaultLang {
			continue
		}
		pending = append(pending, PendingTranslation{LanguageCode: lang, Value: value})
	}
	return canonical, pending, nil
}

// ImportHook is the per-kind enrichment extension point of the external record
// store. PostImportOne runs right after each record upsert; PostImportMulti
// runs once per batch with all records, for enrichment that needs siblings
// (e.g. wiring a category tree from parent references).
type ImportHook interface {
	PostImportOne(ctx context.Context, record *ExternalRecord) error
	PostImportMulti(ctx context.Context, records []*ExternalRecord) error
}

// ExternalRecordRepository is the persistence contract for external records
// and their pending translations.
type ExternalRecordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ExternalRecord, error)
	FindByCode(ctx context.Context, integrationID uuid.UUID, kind EntityKind, code string) (*ExternalRecord, error)
	FindByReference(ctx context.Context, integrationID uuid.UUID, kind EntityKind, reference string) ([]ExternalRecord, error)
	FindByCodePrefix(ctx context.Context, integrationID uuid.UUID, kind EntityKind, prefix string) ([]ExternalRecord, error)
	FindByKind(ctx context.Context, integrationID uuid.UUID, kind EntityKind) ([]ExternalRecord, error)

	// Upsert writes the record keyed by (integration, kind, code), updating
	// name, reference, parent and raw payload when the row already exists.
	Upsert(ctx context.Context, record *ExternalRecord) error

	Delete(ctx context.Context, id uuid.UUID) error

	SavePendingTranslations(ctx context.Context, translations []PendingTranslation) error
	FindPendingTranslations(ctx context.Context, externalRecordID uuid.UUID) ([]PendingTranslation, error)
}
