package integration

import (
	"context"
	"errors"

	"github.com/shopbridge/backend/internal/domain/integration"

	"go.uber.org/zap"
)

// ExternalRecordService maintains the per-integration cache of external
// platform records. Records are created on first sight and refreshed on every
// re-import; they are never deleted implicitly.
type ExternalRecordService struct {
	externalRepo integration.ExternalRecordRepository
	hooks        map[integration.EntityKind]integration.ImportHook
	logger       *zap.Logger
}

// NewExternalRecordService creates a new ExternalRecordService
func NewExternalRecordService(
	externalRepo integration.ExternalRecordRepository,
	logger *zap.Logger,
) *ExternalRecordService {
	return &ExternalRecordService{
		externalRepo: externalRepo,
		hooks:        make(map[integration.EntityKind]integration.ImportHook),
		logger:       logger,
	}
}

// RegisterHook binds a post-import enrichment hook to an entity kind.
func (s *ExternalRecordService) RegisterHook(kind integration.EntityKind, hook integration.ImportHook) {
	s.hooks[kind] = hook
}

// GetByCode fetches one record. With raiseOnMiss set, a missing record fails
// with a structured NoExternalError.
func (s *ExternalRecordService) GetByCode(ctx context.Context, integ *integration.Integration, kind integration.EntityKind, code string, raiseOnMiss bool) (*integration.ExternalRecord, error) {
	record, err := s.externalRepo.FindByCode(ctx, integ.ID, kind, code)
	if err != nil {
		if errors.Is(err, integration.ErrExternalRecordNotFound) {
			if raiseOnMiss {
				return nil, &integration.NoExternalError{
					Kind:          kind,
					Code:          code,
					IntegrationID: integ.ID,
				}
			}
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// ImportValues upserts one batch of external listing values as records of the
// given kind, extracting default-language names and running the kind's
// post-import hooks. Returns the records in input order.
func (s *ExternalRecordService) ImportValues(ctx context.Context, integ *integration.Integration, kind integration.EntityKind, values []integration.ExternalValue) ([]*integration.ExternalRecord, error) {
	records := make([]*integration.ExternalRecord, 0, len(values))

	for _, value := range values {
		record, err := s.importOne(ctx, integ, kind, value)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if hook, ok := s.hooks[kind]; ok {
		if err := hook.PostImportMulti(ctx, records); err != nil {
			return nil, err
		}
	}

	return records, nil
}

func (s *ExternalRecordService) importOne(ctx context.Context, integ *integration.Integration, kind integration.EntityKind, value integration.ExternalValue) (*integration.ExternalRecord, error) {
	name := value.Name
	var pending []integration.PendingTranslation

	if len(value.TranslatedNames) > 0 {
		canonical, rest, err := value.TranslatedNames.Resolve(integ.DefaultLanguageCode)
		if err != nil {
			return nil, err
		}
		name = canonical
		pending = rest
	}

	record, err := s.externalRepo.FindByCode(ctx, integ.ID, kind, value.Code)
	if err != nil {
		if !errors.Is(err, integration.ErrExternalRecordNotFound) {
			return nil, err
		}
		record = integration.NewExternalRecord(integ.ID, kind, value.Code, name)
	}

	record.Name = name
	record.ExternalReference = value.Reference
	record.ParentCode = value.ParentCode
	record.Raw = value.Data

	if err := s.externalRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	if len(pending) > 0 {
		for i := range pending {
			pending[i].ExternalRecordID = record.ID
			pending[i].Field = "name"
		}
		if err := s.externalRepo.SavePendingTranslations(ctx, pending); err != nil {
			return nil, err
		}
	}

	if hook, ok := s.hooks[kind]; ok {
		if err := hook.PostImportOne(ctx, record); err != nil {
			return nil, err
		}
	}

	return record, nil
}
