package integration

import (
	"context"

	"github.com/shopbridge/backend/internal/domain/integration"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JobType names one kind of asynchronous work.
type JobType string

const (
	JobTypeImportMasterData JobType = "import_master_data"
	JobTypeImportProduct    JobType = "import_product"
	JobTypeExportProduct    JobType = "export_product"
	JobTypeImportOrders     JobType = "import_orders"
	JobTypeCreateOrder      JobType = "create_order"
	JobTypeRunPipelineStep  JobType = "run_pipeline_step"
	JobTypeExportInventory  JobType = "export_inventory"
	JobTypeExportTracking   JobType = "export_tracking"
	JobTypeExportStatus     JobType = "export_order_status"
)

// JobRequest describes one deferred call. Jobs sharing an identity key
// represent the same logical operation: scheduling a duplicate while one is
// still pending collapses into the existing job instead of running twice.
type JobRequest struct {
	Type          JobType
	IdentityKey   string
	IntegrationID uuid.UUID
	TenantID      uuid.UUID
	Payload       any
}

// JobEnqueuer is the scheduling port of the asynchronous job queue. Enqueue
// never blocks on job execution; it returns once the job is persisted.
type JobEnqueuer interface {
	Enqueue(ctx context.Context, req JobRequest) error
}

// DependencyRequeuer re-queues failed jobs whose blocking mapping condition
// has since been resolved. Called by the mapping store after every write that
// fills a mapping's internal side or creates an external record.
type DependencyRequeuer interface {
	RequeueSatisfied(ctx context.Context, dep integration.PendingDependency) error
}

// SettingsCipher encrypts and decrypts secure setting values at rest.
type SettingsCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// ImageStore persists imported product images and returns a storage key.
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ImageProcessor inspects and derives product image payloads. Bounds reports
// the decoded pixel dimensions; Thumbnail renders a preview fitted into the
// given bound, re-encoded as JPEG.
type ImageProcessor interface {
	Bounds(data []byte) (width, height int, err error)
	Thumbnail(data []byte, maxWidth, maxHeight int) ([]byte, error)
}

// StockProvider reports on-hand quantity per variant for the integration's
// location scope. Implemented by the inventory bounded context.
type StockProvider interface {
	OnHand(ctx context.Context, tenantID uuid.UUID, variantIDs []uuid.UUID, locationIDs []uuid.UUID) (map[uuid.UUID]StockLevel, error)
}

// StockLevel is one variant's exportable stock figure.
type StockLevel struct {
	Quantity decimal.Decimal
}
