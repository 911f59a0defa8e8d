package integration

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Mapping links one internal entity to one ExternalRecord within an
// integration. The internal side may be empty while a record imported from
// the external platform waits for matching or creation; the external side is
// always set. At most one mapping exists per (integration, external record).
type Mapping struct {
	ID            uuid.UUID
	IntegrationID uuid.UUID
	Kind          EntityKind

	InternalID       *uuid.UUID
	ExternalRecordID uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMapping builds a mapping row; internalID may be nil.
func NewMapping(integrationID uuid.UUID, kind EntityKind, internalID *uuid.UUID, externalRecordID uuid.UUID) *Mapping {
	now := time.Now()
	return &Mapping{
		ID:               uuid.New(),
		IntegrationID:    integrationID,
		Kind:             kind,
		InternalID:       internalID,
		ExternalRecordID: externalRecordID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// IsResolved reports whether the internal side is set.
func (m *Mapping) IsResolved() bool {
	return m.InternalID != nil
}

// MappingRepository is the persistence contract for mappings.
type MappingRepository interface {
	FindByExternalRecord(ctx context.Context, integrationID, externalRecordID uuid.UUID) (*Mapping, error)
	FindByExternalCode(ctx context.Context, integrationID uuid.UUID, kind EntityKind, code string) (*Mapping, error)

	// FindLatestByInternal returns the most recently created mapping for the
	// internal entity. Duplicate mappings for one internal id are tolerated;
	// the newest row wins.
	FindLatestByInternal(ctx context.Context, integrationID uuid.UUID, kind EntityKind, internalID uuid.UUID) (*Mapping, error)

	// FindUnresolved lists mappings whose internal side is still empty.
	FindUnresolved(ctx context.Context, integrationID uuid.UUID, kind EntityKind) ([]Mapping, error)

	// Upsert writes the mapping keyed by (integration, external record). When
	// the row exists only the internal side is overwritten.
	Upsert(ctx context.Context, mapping *Mapping) error

	// DeleteByInternalIDs removes mapping rows (never external records) for
	// the given internal ids; with an empty set it clears the whole kind.
	DeleteByInternalIDs(ctx context.Context, integrationID uuid.UUID, kind EntityKind, internalIDs []uuid.UUID) error
}
