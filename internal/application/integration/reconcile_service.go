package integration

import (
	"context"
	"errors"

	"github.com/shopbridge/backend/internal/domain/integration"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReconcileService closes the identity gap between the two systems: it
// establishes mappings automatically from reference or name data instead of
// manual linking. Ambiguity is never resolved by guessing; ambiguous records
// stay unmapped for manual resolution.
type ReconcileService struct {
	mappings     *MappingService
	mappingRepo  integration.MappingRepository
	externalRepo integration.ExternalRecordRepository
	registry     *integration.ModelRegistry
	logger       *zap.Logger
}

// NewReconcileService creates a new ReconcileService
func NewReconcileService(
	mappings *MappingService,
	mappingRepo integration.MappingRepository,
	externalRepo integration.ExternalRecordRepository,
	registry *integration.ModelRegistry,
	logger *zap.Logger,
) *ReconcileService {
	return &ReconcileService{
		mappings:     mappings,
		mappingRepo:  mappingRepo,
		externalRepo: externalRepo,
		registry:     registry,
		logger:       logger,
	}
}

// TryMapByExternalReference attempts to auto-match one external record to an
// internal entity:
//
//  1. An existing mapping for the record's code wins; nothing is re-matched.
//  2. A non-empty external reference is searched case-insensitively against
//     the internal model's reference field. Exactly one hit maps; more than
//     one is ambiguous and leaves the record unmapped.
//  3. Kinds without a reference (categories, features) fall back to name
//     matching when the model supports it.
//
// A mapping row is written in every non-error case, with or without an
// internal side.
func (s *ReconcileService) TryMapByExternalReference(ctx context.Context, integ *integration.Integration, record *integration.ExternalRecord) (*integration.Mapping, error) {
	existing, err := s.mappingRepo.FindByExternalCode(ctx, integ.ID, record.Kind, record.Code)
	if err != nil && !errors.Is(err, integration.ErrMappingNotFound) {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	internalID, err := s.resolveInternal(ctx, integration.Scope{TenantID: integ.TenantID, IntegrationID: integ.ID}, record)
	if err != nil {
		return nil, err
	}

	return s.mappings.CreateOrUpdateMapping(ctx, integ, record.Kind, internalID, record)
}

func (s *ReconcileService) resolveInternal(ctx context.Context, scope integration.Scope, record *integration.ExternalRecord) (*uuid.UUID, error) {
	if record.ExternalReference != "" {
		searcher, err := s.registry.ReferenceSearcher(record.Kind)
		if err != nil {
			var noRef *integration.NoReferenceFieldError
			if !errors.As(err, &noRef) {
				return nil, err
			}
		} else {
			ids, err := searcher.SearchByReference(ctx, scope, record.ExternalReference)
			if err != nil {
				return nil, err
			}
			switch len(ids) {
			case 0:
				// fall through to name matching
			case 1:
				return &ids[0], nil
			default:
				s.logger.Warn("ambiguous reference match, leaving unmapped",
					zap.String("kind", record.Kind.String()),
					zap.String("code", record.Code),
					zap.String("reference", record.ExternalReference),
					zap.Int("matches", len(ids)))
				return nil, nil
			}
		}
	}

	if searcher, ok := s.registry.NameSearcher(record.Kind); ok && record.Name != "" {
		ids, err := searcher.SearchByName(ctx, scope, record.Name)
		if err != nil {
			return nil, err
		}
		if len(ids) == 1 {
			return &ids[0], nil
		}
		if len(ids) > 1 {
			s.logger.Warn("ambiguous name match, leaving unmapped",
				zap.String("kind", record.Kind.String()),
				zap.String("code", record.Code),
				zap.String("name", record.Name),
				zap.Int("matches", len(ids)))
		}
	}

	return nil, nil
}

// FixUnmapped runs the alternate resolution strategy for mappings of one kind
// whose internal side is still empty after best-effort import. Kinds whose
// model supports auto-creation (payment methods, order sub-statuses) get
// their internal record created from the external name; everything else is
// left for manual resolution.
func (s *ReconcileService) FixUnmapped(ctx context.Context, integ *integration.Integration, kind integration.EntityKind) (int, error) {
	creator, ok := s.registry.AutoCreator(kind)
	if !ok {
		return 0, nil
	}

	scope := integration.Scope{TenantID: integ.TenantID, IntegrationID: integ.ID}
	if gater, ok := creator.(integration.AutoCreateGater); ok {
		allowed, err := gater.AllowAutoCreate(ctx, scope)
		if err != nil {
			return 0, err
		}
		if !allowed {
			return 0, nil
		}
	}

	unresolved, err := s.mappingRepo.FindUnresolved(ctx, integ.ID, kind)
	if err != nil {
		return 0, err
	}

	fixed := 0
	for i := range unresolved {
		record, err := s.externalRepo.FindByID(ctx, unresolved[i].ExternalRecordID)
		if err != nil {
			return fixed, err
		}

		internalID, err := creator.CreateFromExternal(ctx, scope, record)
		if err != nil {
			s.logger.Warn("could not auto-create internal record for unmapped external",
				zap.String("kind", kind.String()),
				zap.String("code", record.Code),
				zap.Error(err))
			continue
		}
		if internalID == uuid.Nil {
			continue
		}

		if _, err := s.mappings.CreateOrUpdateMapping(ctx, integ, kind, &internalID, record); err != nil {
			return fixed, err
		}
		fixed++
	}

	return fixed, nil
}
