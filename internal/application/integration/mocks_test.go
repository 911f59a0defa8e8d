package integration

import (
	"context"

	"github.com/shopbridge/backend/internal/domain/integration"
	"github.com/shopbridge/backend/internal/domain/trade"
	"github.com/shopbridge/backend/internal/domain/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockIntegrationRepository is a mock implementation of integration.Repository
type MockIntegrationRepository struct {
	mock.Mock
}

func (m *MockIntegrationRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.Integration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Integration), args.Error(1)
}

func (m *MockIntegrationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]integration.Integration, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]integration.Integration), args.Error(1)
}

func (m *MockIntegrationRepository) FindByTypeAPI(ctx context.Context, typeAPI string) ([]integration.Integration, error) {
	args := m.Called(ctx, typeAPI)
	return args.Get(0).([]integration.Integration), args.Error(1)
}

func (m *MockIntegrationRepository) FindActive(ctx context.Context) ([]integration.Integration, error) {
	args := m.Called(ctx)
	return args.Get(0).([]integration.Integration), args.Error(1)
}

func (m *MockIntegrationRepository) Save(ctx context.Context, integ *integration.Integration) error {
	args := m.Called(ctx, integ)
	return args.Error(0)
}

func (m *MockIntegrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMappingRepository is a mock implementation of integration.MappingRepository
type MockMappingRepository struct {
	mock.Mock
}

func (m *MockMappingRepository) FindByExternalRecord(ctx context.Context, integrationID, externalRecordID uuid.UUID) (*integration.Mapping, error) {
	args := m.Called(ctx, integrationID, externalRecordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Mapping), args.Error(1)
}

func (m *MockMappingRepository) FindByExternalCode(ctx context.Context, integrationID uuid.UUID, kind integration.EntityKind, code string) (*integration.Mapping, error) {
	args := m.Called(ctx, integrationID, kind, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Mapping), args.Error(1)
}

func (m *MockMappingRepository) FindLatestByInternal(ctx context.Context, integrationID uuid.UUID, kind integration.EntityKind, internalID uuid.UUID) (*integration.Mapping, error) {
	args := m.Called(ctx, integrationID, kind, internalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.Mapping), args.Error(1)
}

func (m *MockMappingRepository) FindUnresolved(ctx context.Context, integrationID uuid.UUID, kind integration.EntityKind) ([]integration.Mapping, error) {
	args := m.Called(ctx, integrationID, kind)
	return args.Get(0).([]integration.Mapping), args.Error(1)
}

func (m *MockMappingRepository) Upsert(ctx context.Context, mapping *integration.Mapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockMappingRepository) DeleteByInternalIDs(ctx context.Context, integrationID uuid.UUID, kind integration.EntityKind, internalIDs []uuid.UUID) error {
	args := m.Called(ctx, integrationID, kind, internalIDs)
	return args.Error(0)
}

// MockExternalRecordRepository is a mock implementation of integration.ExternalRecordRepository
type MockExternalRecordRepository struct {
	mock.Mock
}

func (m *MockExternalRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.ExternalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.ExternalRecord), args.Error(1)
}

func (m *MockExternalRecordRepository) FindByCode(ctx context.Context, integrationID uuid.UUID, kind integration.EntityKind, code string) (*integration.ExternalRecord, error) {
	args := m.Called(ctx, integrationID, kind, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.ExternalRecord), args.Error(1)
}

func (m *MockExternalRecordRepository) FindByReference(ctx context.Context, integrationID uuid.UUID, kind integration.EntityKind, reference string) ([]integration.ExternalRecord, error) {
	args := m.Called(ctx, integrationID, kind, reference)
	return args.Get(0).([]integration.ExternalRecord), args.Error(1)
}

func (m *MockExternalRecordRepository) FindByCodePrefix(ctx context.Context, integrationID uuid.UUID, kind integration.EntityKind, prefix string) ([]integration.ExternalRecord, error) {
	args := m.Called(ctx, integrationID, kind, prefix)
	return args.Get(0).([]integration.ExternalRecord), args.Error(1)
}

func (m *MockExternalRecordRepository) FindByKind(ctx context.Context, integrationID uuid.UUID, kind integration.EntityKind) ([]integration.ExternalRecord, error) {
	args := m.Called(ctx, integrationID, kind)
	return args.Get(0).([]integration.ExternalRecord), args.Error(1)
}

func (m *MockExternalRecordRepository) Upsert(ctx context.Context, record *integration.ExternalRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockExternalRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExternalRecordRepository) SavePendingTranslations(ctx context.Context, translations []integration.PendingTranslation) error {
	args := m.Called(ctx, translations)
	return args.Error(0)
}

func (m *MockExternalRecordRepository) FindPendingTranslations(ctx context.Context, externalRecordID uuid.UUID) ([]integration.PendingTranslation, error) {
	args := m.Called(ctx, externalRecordID)
	return args.Get(0).([]integration.PendingTranslation), args.Error(1)
}

// MockChannelOrderRepository is a mock implementation of trade.ChannelOrderRepository
type MockChannelOrderRepository struct {
	mock.Mock
}

func (m *MockChannelOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ChannelOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.ChannelOrder), args.Error(1)
}

func (m *MockChannelOrderRepository) FindByExternalCode(ctx context.Context, integrationID uuid.UUID, externalCode string) (*trade.ChannelOrder, error) {
	args := m.Called(ctx, integrationID, externalCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.ChannelOrder), args.Error(1)
}

func (m *MockChannelOrderRepository) Save(ctx context.Context, order *trade.ChannelOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockChannelOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSubStatusRepository is a mock implementation of trade.SubStatusRepository
type MockSubStatusRepository struct {
	mock.Mock
}

func (m *MockSubStatusRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SubStatus, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SubStatus), args.Error(1)
}

func (m *MockSubStatusRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]trade.SubStatus, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]trade.SubStatus), args.Error(1)
}

func (m *MockSubStatusRepository) FindByName(ctx context.Context, integrationID uuid.UUID, name string) ([]trade.SubStatus, error) {
	args := m.Called(ctx, integrationID, name)
	return args.Get(0).([]trade.SubStatus), args.Error(1)
}

func (m *MockSubStatusRepository) FindByIntegration(ctx context.Context, integrationID uuid.UUID) ([]trade.SubStatus, error) {
	args := m.Called(ctx, integrationID)
	return args.Get(0).([]trade.SubStatus), args.Error(1)
}

func (m *MockSubStatusRepository) Save(ctx context.Context, subStatus *trade.SubStatus) error {
	args := m.Called(ctx, subStatus)
	return args.Error(0)
}

func (m *MockSubStatusRepository) DeleteByIntegration(ctx context.Context, integrationID uuid.UUID) error {
	args := m.Called(ctx, integrationID)
	return args.Error(0)
}

// MockDeliveryRepository is a mock implementation of trade.DeliveryRepository
type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]trade.Delivery, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]trade.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) Save(ctx context.Context, delivery *trade.Delivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

// MockInvoiceRepository is a mock implementation of trade.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]trade.Invoice, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]trade.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *trade.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

// MockPaymentRecordRepository is a mock implementation of trade.PaymentRecordRepository
type MockPaymentRecordRepository struct {
	mock.Mock
}

func (m *MockPaymentRecordRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]trade.PaymentRecord, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]trade.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRecordRepository) FindByTransactionID(ctx context.Context, orderID uuid.UUID, transactionID string) (*trade.PaymentRecord, error) {
	args := m.Called(ctx, orderID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRecordRepository) Save(ctx context.Context, record *trade.PaymentRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockPipelineRepository is a mock implementation of workflow.PipelineRepository
type MockPipelineRepository struct {
	mock.Mock
}

func (m *MockPipelineRepository) FindByID(ctx context.Context, id uuid.UUID) (*workflow.Pipeline, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workflow.Pipeline), args.Error(1)
}

func (m *MockPipelineRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) (*workflow.Pipeline, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workflow.Pipeline), args.Error(1)
}

func (m *MockPipelineRepository) Save(ctx context.Context, pipeline *workflow.Pipeline) error {
	args := m.Called(ctx, pipeline)
	return args.Error(0)
}

func (m *MockPipelineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =============================================================================
// Mock Ports
// =============================================================================

// MockJobEnqueuer is a mock implementation of JobEnqueuer
type MockJobEnqueuer struct {
	mock.Mock
}

func (m *MockJobEnqueuer) Enqueue(ctx context.Context, req JobRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockDependencyRequeuer is a mock implementation of DependencyRequeuer
type MockDependencyRequeuer struct {
	mock.Mock
}

func (m *MockDependencyRequeuer) RequeueSatisfied(ctx context.Context, dep integration.PendingDependency) error {
	args := m.Called(ctx, dep)
	return args.Error(0)
}

// =============================================================================
// Stub adapter
// =============================================================================

// stubAdapter implements integration.Adapter with overridable behavior for
// the handful of methods a test cares about; everything else returns zero
// values.
type stubAdapter struct {
	checkConnectionFn        func(ctx context.Context) error
	requiredWebhookHeaders   []string
	verifyWebhookSignatureFn func(headers map[string]string, body []byte) error
	registerWebhooksFn       func(ctx context.Context, routes []integration.WebhookRoute) (map[string]string, error)
	parseOrderFn             func(envelope integration.OrderEnvelope) (*integration.OrderPayload, error)
	receiveOrdersFn          func(ctx context.Context) ([]integration.OrderEnvelope, error)
	getProductTemplatesFn    func(ctx context.Context, codes []string) ([]integration.ProductTemplateData, error)
	validateExportFn         func(ctx context.Context, template *integration.ProductTemplateData) ([]string, error)
	findExistingTemplateFn   func(ctx context.Context, template *integration.ProductTemplateData) (string, error)
	exportTemplateFn         func(ctx context.Context, template *integration.ProductTemplateData) (*integration.TemplateExportResult, error)
	updateTemplateFn         func(ctx context.Context, code string, template *integration.ProductTemplateData) (*integration.TemplateExportResult, error)
}

func (a *stubAdapter) CheckConnection(ctx context.Context) error {
	if a.checkConnectionFn != nil {
		return a.checkConnectionFn(ctx)
	}
	return nil
}

func (a *stubAdapter) GetDeliveryMethods(ctx context.Context) ([]integration.ExternalValue, error) {
	return nil, nil
}

func (a *stubAdapter) GetTaxes(ctx context.Context) ([]integration.ExternalValue, error) {
	return nil, nil
}

func (a *stubAdapter) GetTaxGroups(ctx context.Context) ([]integration.ExternalValue, error) {
	return nil, nil
}

func (a *stubAdapter) GetPaymentMethods(ctx context.Context) ([]integration.ExternalValue, error) {
	return nil, nil
}

func (a *stubAdapter) GetLanguages(ctx context.Context) ([]integration.ExternalValue, error) {
	return nil, nil
}

func (a *stubAdapter) GetAttributes(ctx context.Context) ([]integration.ExternalValue, error) {
	return nil, nil
}

func (a *stubAdapter) GetAttributeValues(ctx context.Context) ([]integration.ExternalValue, error) {
	return nil, nil
}

func (a *stubAdapter) GetFeatures(ctx context.Context) ([]integration.ExternalValue, error) {
	return nil, nil
}

func (a *stubAdapter) GetFeatureValues(ctx context.Context) ([]integration.ExternalValue, error) {
	return nil, nil
}

func (a *stubAdapter) GetCountries(ctx context.Context) ([]integration.ExternalValue, error) {
	return nil, nil
}

func (a *stubAdapter) GetCountryStates(ctx context.Context) ([]integration.ExternalValue, error) {
	return nil, nil
}

func (a *stubAdapter) GetCategories(ctx context.Context) ([]integration.ExternalValue, error) {
	return nil, nil
}

func (a *stubAdapter) GetSaleOrderStatuses(ctx context.Context) ([]integration.ExternalValue, error) {
	return nil, nil
}

func (a *stubAdapter) ListProductTemplateCodes(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (a *stubAdapter) GetProductTemplates(ctx context.Context, codes []string) ([]integration.ProductTemplateData, error) {
	if a.getProductTemplatesFn != nil {
		return a.getProductTemplatesFn(ctx, codes)
	}
	return nil, nil
}

func (a *stubAdapter) ReceiveOrders(ctx context.Context) ([]integration.OrderEnvelope, error) {
	if a.receiveOrdersFn != nil {
		return a.receiveOrdersFn(ctx)
	}
	return nil, nil
}

func (a *stubAdapter) ParseOrder(envelope integration.OrderEnvelope) (*integration.OrderPayload, error) {
	if a.parseOrderFn != nil {
		return a.parseOrderFn(envelope)
	}
	return nil, nil
}

func (a *stubAdapter) ValidateTemplateExport(ctx context.Context, template *integration.ProductTemplateData) ([]string, error) {
	if a.validateExportFn != nil {
		return a.validateExportFn(ctx, template)
	}
	return nil, nil
}

func (a *stubAdapter) FindExistingTemplate(ctx context.Context, template *integration.ProductTemplateData) (string, error) {
	if a.findExistingTemplateFn != nil {
		return a.findExistingTemplateFn(ctx, template)
	}
	return "", nil
}

func (a *stubAdapter) ExportTemplate(ctx context.Context, template *integration.ProductTemplateData) (*integration.TemplateExportResult, error) {
	if a.exportTemplateFn != nil {
		return a.exportTemplateFn(ctx, template)
	}
	return &integration.TemplateExportResult{}, nil
}

func (a *stubAdapter) UpdateTemplate(ctx context.Context, code string, template *integration.ProductTemplateData) (*integration.TemplateExportResult, error) {
	if a.updateTemplateFn != nil {
		return a.updateTemplateFn(ctx, code, template)
	}
	return &integration.TemplateExportResult{TemplateCode: code}, nil
}

func (a *stubAdapter) ExportImages(ctx context.Context, templateCode string, images []integration.ProductImage) error {
	return nil
}

func (a *stubAdapter) ExportInventory(ctx context.Context, items map[string]integration.InventoryItem) error {
	return nil
}

func (a *stubAdapter) ExportTracking(ctx context.Context, orderCode string, tracking integration.TrackingData) error {
	return nil
}

func (a *stubAdapter) ExportOrderStatus(ctx context.Context, orderCode, status string) error {
	return nil
}

func (a *stubAdapter) RegisterWebhooks(ctx context.Context, routes []integration.WebhookRoute) (map[string]string, error) {
	if a.registerWebhooksFn != nil {
		return a.registerWebhooksFn(ctx, routes)
	}
	return map[string]string{}, nil
}

func (a *stubAdapter) UnregisterWebhooks(ctx context.Context) error {
	return nil
}

func (a *stubAdapter) RequiredWebhookHeaders() []string {
	return a.requiredWebhookHeaders
}

func (a *stubAdapter) VerifyWebhookSignature(headers map[string]string, body []byte) error {
	if a.verifyWebhookSignatureFn != nil {
		return a.verifyWebhookSignatureFn(headers, body)
	}
	return nil
}

var _ integration.Adapter = (*stubAdapter)(nil)
