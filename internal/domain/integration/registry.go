package integration

import (
	"context"

	"github.com/google/uuid"
)

// Scope carries the tenancy and integration an internal search or create
// runs under.
type Scope struct {
	TenantID      uuid.UUID
	IntegrationID uuid.UUID
}

// ReferenceSearcher is implemented by internal model gateways whose entity
// declares an internal reference field (SKU, ISO code). SearchByReference
// matches case-insensitively and returns every matching internal id; the
// caller decides how to treat ambiguity.
type ReferenceSearcher interface {
	SearchByReference(ctx context.Context, scope Scope, reference string) ([]uuid.UUID, error)
}

// NameSearcher is implemented by gateways whose entity can be matched by
// display name when no reference is available (categories, features).
type NameSearcher interface {
	SearchByName(ctx context.Context, scope Scope, name string) ([]uuid.UUID, error)
}

// AutoCreator is implemented by gateways whose entity may be created from an
// external record when no internal counterpart exists (payment methods,
// order sub-statuses). Returning uuid.Nil without error declines creation.
type AutoCreator interface {
	CreateFromExternal(ctx context.Context, scope Scope, record *ExternalRecord) (uuid.UUID, error)
}

// AutoCreateGater is optionally implemented next to AutoCreator by gateways
// whose auto-creation must be gated per batch. Categories use it to create
// records only while the internal tree is completely empty, so a manually
// curated tree is never clobbered.
type AutoCreateGater interface {
	AllowAutoCreate(ctx context.Context, scope Scope) (bool, error)
}

// ModelRegistry maps each entity kind to its internal model gateway. It
// replaces dynamic per-kind model-name construction with typed lookup; the
// capability interfaces above are discovered by type assertion.
type ModelRegistry struct {
	gateways map[EntityKind]any
}

// NewModelRegistry returns an empty registry.
func NewModelRegistry() *ModelRegistry {
	return &ModelRegistry{gateways: make(map[EntityKind]any)}
}

// Register binds a gateway to a kind, replacing any previous binding.
func (r *ModelRegistry) Register(kind EntityKind, gateway any) {
	r.gateways[kind] = gateway
}

// Gateway returns the raw gateway for a kind.
func (r *ModelRegistry) Gateway(kind EntityKind) (any, error) {
	gw, ok := r.gateways[kind]
	if !ok {
		return nil, ErrModelNotRegistered
	}
	return gw, nil
}

// ReferenceSearcher returns the kind's gateway as a ReferenceSearcher, or a
// NoReferenceFieldError when the model declares no reference field.
func (r *ModelRegistry) ReferenceSearcher(kind EntityKind) (ReferenceSearcher, error) {
	gw, err := r.Gateway(kind)
	if err != nil {
		return nil, err
	}
	searcher, ok := gw.(ReferenceSearcher)
	if !ok {
		return nil, &NoReferenceFieldError{Kind: kind}
	}
	return searcher, nil
}

// NameSearcher returns the kind's gateway as a NameSearcher if it supports
// name matching.
func (r *ModelRegistry) NameSearcher(kind EntityKind) (NameSearcher, bool) {
	gw, ok := r.gateways[kind]
	if !ok {
		return nil, false
	}
	searcher, ok := gw.(NameSearcher)
	return searcher, ok
}

// AutoCreator returns the kind's gateway as an AutoCreator if it supports
// creating internal records from external data.
func (r *ModelRegistry) AutoCreator(kind EntityKind) (AutoCreator, bool) {
	gw, ok := r.gateways[kind]
	if !ok {
		return nil, false
	}
	creator, ok := gw.(AutoCreator)
	return creator, ok
}

// Capabilities are the optional internal-system features the reconciliation
// and import pipelines branch on. They are fixed at startup.
type Capabilities struct {
	ManufacturingEnabled        bool
	StorefrontCategoriesEnabled bool
}
