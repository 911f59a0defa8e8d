package integration

import (
	"context"

	"github.com/shopbridge/backend/internal/domain/integration"

	"go.uber.org/zap"
)

// MasterDataService synchronizes the platform's master data (taxes, payment
// methods, languages, attributes, categories, geography, order statuses) into
// external records and auto-matches them to internal entities.
type MasterDataService struct {
	externals *ExternalRecordService
	reconcile *ReconcileService
	logger    *zap.Logger
}

// NewMasterDataService creates a new MasterDataService
func NewMasterDataService(
	externals *ExternalRecordService,
	reconcile *ReconcileService,
	logger *zap.Logger,
) *MasterDataService {
	return &MasterDataService{
		externals: externals,
		reconcile: reconcile,
		logger:    logger,
	}
}

// masterDataSource binds one entity kind to its adapter listing. Order
// matters: owners import before their dependents (tax groups before taxes,
// attributes before values, countries before states).
type masterDataSource struct {
	kind integration.EntityKind
	list func(context.Context, integration.Adapter) ([]integration.ExternalValue, error)
}

func masterDataSources() []masterDataSource {
	return []masterDataSource{
		{integration.KindLanguage, func(ctx context.Context, a integration.Adapter) ([]integration.ExternalValue, error) {
			return a.GetLanguages(ctx)
		}},
		{integration.KindCountry, func(ctx context.Context, a integration.Adapter) ([]integration.ExternalValue, error) {
			return a.GetCountries(ctx)
		}},
		{integration.KindCountryState, func(ctx context.Context, a integration.Adapter) ([]integration.ExternalValue, error) {
			return a.GetCountryStates(ctx)
		}},
		{integration.KindTaxGroup, func(ctx context.Context, a integration.Adapter) ([]integration.ExternalValue, error) {
			return a.GetTaxGroups(ctx)
		}},
		{integration.KindTax, func(ctx context.Context, a integration.Adapter) ([]integration.ExternalValue, error) {
			return a.GetTaxes(ctx)
		}},
		{integration.KindCarrier, func(ctx context.Context, a integration.Adapter) ([]integration.ExternalValue, error) {
			return a.GetDeliveryMethods(ctx)
		}},
		{integration.KindPaymentMethod, func(ctx context.Context, a integration.Adapter) ([]integration.ExternalValue, error) {
			return a.GetPaymentMethods(ctx)
		}},
		{integration.KindAttribute, func(ctx context.Context, a integration.Adapter) ([]integration.ExternalValue, error) {
			return a.GetAttributes(ctx)
		}},
		{integration.KindAttributeValue, func(ctx context.Context, a integration.Adapter) ([]integration.ExternalValue, error) {
			return a.GetAttributeValues(ctx)
		}},
		{integration.KindFeature, func(ctx context.Context, a integration.Adapter) ([]integration.ExternalValue, error) {
			return a.GetFeatures(ctx)
		}},
		{integration.KindFeatureValue, func(ctx context.Context, a integration.Adapter) ([]integration.ExternalValue, error) {
			return a.GetFeatureValues(ctx)
		}},
		{integration.KindCategory, func(ctx context.Context, a integration.Adapter) ([]integration.ExternalValue, error) {
			return a.GetCategories(ctx)
		}},
		{integration.KindSubStatus, func(ctx context.Context, a integration.Adapter) ([]integration.ExternalValue, error) {
			return a.GetSaleOrderStatuses(ctx)
		}},
	}
}

// ImportAll synchronizes every master-data kind in dependency order.
func (s *MasterDataService) ImportAll(ctx context.Context, integ *integration.Integration, adapter integration.Adapter) error {
	for _, source := range masterDataSources() {
		if err := s.ImportKind(ctx, integ, adapter, source); err != nil {
			return err
		}
	}
	return nil
}

// ImportKind synchronizes one master-data kind: list from the platform,
// upsert the external records, auto-match each one, then run the kind's
// fix-up pass for records that stayed unmapped.
func (s *MasterDataService) ImportKind(ctx context.Context, integ *integration.Integration, adapter integration.Adapter, source masterDataSource) error {
	values, err := source.list(ctx, adapter)
	if err != nil {
		return err
	}

	records, err := s.externals.ImportValues(ctx, integ, source.kind, values)
	if err != nil {
		return err
	}

	mapped := 0
	for _, record := range records {
		mapping, err := s.reconcile.TryMapByExternalReference(ctx, integ, record)
		if err != nil {
			return err
		}
		if mapping.IsResolved() {
			mapped++
		}
	}

	fixed, err := s.reconcile.FixUnmapped(ctx, integ, source.kind)
	if err != nil {
		return err
	}

	s.logger.Info("imported master data",
		zap.String("integration_id", integ.ID.String()),
		zap.String("kind", source.kind.String()),
		zap.Int("records", len(records)),
		zap.Int("mapped", mapped),
		zap.Int("auto_created", fixed))

	return nil
}
