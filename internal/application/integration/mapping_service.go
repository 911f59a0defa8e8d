package integration

import (
	"context"
	"errors"

	"github.com/shopbridge/backend/internal/domain/integration"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MappingService is the two-way id translation layer between internal
// entities and external records. It owns the upsert semantics of mapping rows
// and the re-queue side effect that unblocks jobs waiting on a mapping.
type MappingService struct {
	mappingRepo  integration.MappingRepository
	externalRepo integration.ExternalRecordRepository
	requeuer     DependencyRequeuer
	logger       *zap.Logger
}

// NewMappingService creates a new MappingService
func NewMappingService(
	mappingRepo integration.MappingRepository,
	externalRepo integration.ExternalRecordRepository,
	requeuer DependencyRequeuer,
	logger *zap.Logger,
) *MappingService {
	return &MappingService{
		mappingRepo:  mappingRepo,
		externalRepo: externalRepo,
		requeuer:     requeuer,
		logger:       logger,
	}
}

// ToInternal resolves an external code to the mapped internal id. With
// raiseOnMiss set, a missing mapping or a mapping with an empty internal side
// fails with a structured NotMappedFromExternalError; otherwise it returns
// nil without error.
func (s *MappingService) ToInternal(ctx context.Context, integ *integration.Integration, kind integration.EntityKind, externalCode string, raiseOnMiss bool) (*uuid.UUID, error) {
	mapping, err := s.mappingRepo.FindByExternalCode(ctx, integ.ID, kind, externalCode)
	if err != nil && !errors.Is(err, integration.ErrMappingNotFound) {
		return nil, err
	}

	if mapping != nil && mapping.InternalID != nil {
		return mapping.InternalID, nil
	}

	if raiseOnMiss {
		return nil, &integration.NotMappedFromExternalError{
			Kind:          kind,
			Code:          externalCode,
			IntegrationID: integ.ID,
		}
	}
	return nil, nil
}

// ToExternalRecord resolves an internal id to its mapped external record.
// When duplicate mappings exist for one internal entity the most recently
// created one wins.
func (s *MappingService) ToExternalRecord(ctx context.Context, integ *integration.Integration, kind integration.EntityKind, internalID uuid.UUID) (*integration.ExternalRecord, error) {
	mapping, err := s.mappingRepo.FindLatestByInternal(ctx, integ.ID, kind, internalID)
	if err != nil {
		if errors.Is(err, integration.ErrMappingNotFound) {
			return nil, &integration.NotMappedToExternalError{
				Kind:          kind,
				InternalID:    internalID,
				IntegrationID: integ.ID,
			}
		}
		return nil, err
	}

	record, err := s.externalRepo.FindByID(ctx, mapping.ExternalRecordID)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ToExternalCode resolves an internal id to its mapped external code.
func (s *MappingService) ToExternalCode(ctx context.Context, integ *integration.Integration, kind integration.EntityKind, internalID uuid.UUID) (string, error) {
	record, err := s.ToExternalRecord(ctx, integ, kind, internalID)
	if err != nil {
		return "", err
	}
	return record.Code, nil
}

// CreateOrUpdateMapping upserts the mapping keyed by (integration, external
// record). An existing row only has its internal side overwritten; the
// external side never changes. Filling the internal side re-queues any jobs
// that previously failed waiting for this mapping.
func (s *MappingService) CreateOrUpdateMapping(ctx context.Context, integ *integration.Integration, kind integration.EntityKind, internalID *uuid.UUID, record *integration.ExternalRecord) (*integration.Mapping, error) {
	mapping, err := s.mappingRepo.FindByExternalRecord(ctx, integ.ID, record.ID)
	if err != nil && !errors.Is(err, integration.ErrMappingNotFound) {
		return nil, err
	}

	if mapping == nil {
		mapping = integration.NewMapping(integ.ID, kind, internalID, record.ID)
	} else {
		mapping.InternalID = internalID
	}

	if err := s.mappingRepo.Upsert(ctx, mapping); err != nil {
		return nil, err
	}

	s.requeueResolved(ctx, integ, kind, record, internalID)

	return mapping, nil
}

// CreateIntegrationMapping maps an internal entity to an external code in the
// internal-to-external direction: the external record is ensured first, then
// the mapping row is upserted. The resolved record's code must match the
// requested code.
func (s *MappingService) CreateIntegrationMapping(ctx context.Context, integ *integration.Integration, kind integration.EntityKind, internalID uuid.UUID, externalCode string) (*integration.Mapping, error) {
	record, err := s.externalRepo.FindByCode(ctx, integ.ID, kind, externalCode)
	if err != nil {
		if !errors.Is(err, integration.ErrExternalRecordNotFound) {
			return nil, err
		}
		record = integration.NewExternalRecord(integ.ID, kind, externalCode, externalCode)
		if err := s.externalRepo.Upsert(ctx, record); err != nil {
			return nil, err
		}
	}

	if record.Code != externalCode {
		return nil, integration.ErrMappingCodeMismatch
	}

	return s.CreateOrUpdateMapping(ctx, integ, kind, &internalID, record)
}

// ClearMappings deletes mapping rows, optionally scoped to a set of internal
// ids. External records are untouched.
func (s *MappingService) ClearMappings(ctx context.Context, integ *integration.Integration, kind integration.EntityKind, internalIDs []uuid.UUID) error {
	return s.mappingRepo.DeleteByInternalIDs(ctx, integ.ID, kind, internalIDs)
}

// requeueResolved signals the job queue that dependencies on this mapping are
// now satisfied. Requeue failures are logged, never propagated: the mapping
// write has already committed.
func (s *MappingService) requeueResolved(ctx context.Context, integ *integration.Integration, kind integration.EntityKind, record *integration.ExternalRecord, internalID *uuid.UUID) {
	if s.requeuer == nil {
		return
	}

	deps := []integration.PendingDependency{{
		Direction:     integration.DependencyExternalExists,
		Kind:          kind,
		Key:           record.Code,
		IntegrationID: integ.ID,
	}}
	if internalID != nil {
		deps = append(deps,
			integration.PendingDependency{
				Direction:     integration.DependencyFromExternal,
				Kind:          kind,
				Key:           record.Code,
				IntegrationID: integ.ID,
			},
			integration.PendingDependency{
				Direction:     integration.DependencyToExternal,
				Kind:          kind,
				Key:           internalID.String(),
				IntegrationID: integ.ID,
			},
		)
	}

	for _, dep := range deps {
		if err := s.requeuer.RequeueSatisfied(ctx, dep); err != nil {
			s.logger.Error("failed to requeue jobs waiting on mapping",
				zap.String("integration_id", integ.ID.String()),
				zap.String("kind", kind.String()),
				zap.String("key", dep.Key),
				zap.Error(err))
		}
	}
}
