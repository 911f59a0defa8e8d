package trade

import (
	"context"

	"github.com/google/uuid"
)

// ChannelOrderRepository defines the interface for channel order persistence
type ChannelOrderRepository interface {
	// FindByID finds an order by its ID, with lines and sub-status links
	FindByID(ctx context.Context, id uuid.UUID) (*ChannelOrder, error)

	// FindByExternalCode finds an order by its external code within an integration
	FindByExternalCode(ctx context.Context, integrationID uuid.UUID, externalCode string) (*ChannelOrder, error)

	// Save creates or updates an order with its lines and sub-status links
	Save(ctx context.Context, order *ChannelOrder) error

	// Delete deletes an order
	Delete(ctx context.Context, id uuid.UUID) error
}

// TaxRepository defines the interface for tax persistence
type TaxRepository interface {
	// FindByID finds a tax by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tax, error)

	// FindByIDs finds multiple taxes by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Tax, error)

	// FindAllForTenant finds all taxes for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Tax, error)

	// Save creates or updates a tax
	Save(ctx context.Context, tax *Tax) error
}

// TaxGroupRepository defines the interface for tax group persistence
type TaxGroupRepository interface {
	// FindByID finds a tax group by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*TaxGroup, error)

	// Save creates or updates a tax group
	Save(ctx context.Context, group *TaxGroup) error
}

// CarrierRepository defines the interface for carrier persistence
type CarrierRepository interface {
	// FindByID finds a carrier by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Carrier, error)

	// FindByName finds carriers by exact name within a tenant
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) ([]Carrier, error)

	// Save creates or updates a carrier
	Save(ctx context.Context, carrier *Carrier) error
}

// PaymentMethodRepository defines the interface for payment method persistence
type PaymentMethodRepository interface {
	// FindByID finds a payment method by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentMethod, error)

	// FindByName finds payment methods by exact name within a tenant
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) ([]PaymentMethod, error)

	// Save creates or updates a payment method
	Save(ctx context.Context, method *PaymentMethod) error
}

// SubStatusRepository defines the interface for sub-status persistence
type SubStatusRepository interface {
	// FindByID finds a sub-status by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SubStatus, error)

	// FindByIDs finds multiple sub-statuses by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]SubStatus, error)

	// FindByName finds sub-statuses by exact name within an integration
	FindByName(ctx context.Context, integrationID uuid.UUID, name string) ([]SubStatus, error)

	// FindByIntegration finds all sub-statuses of an integration
	FindByIntegration(ctx context.Context, integrationID uuid.UUID) ([]SubStatus, error)

	// Save creates or updates a sub-status
	Save(ctx context.Context, subStatus *SubStatus) error

	// DeleteByIntegration removes all sub-statuses of an integration
	DeleteByIntegration(ctx context.Context, integrationID uuid.UUID) error
}

// DeliveryRepository defines the interface for delivery persistence
type DeliveryRepository interface {
	// FindByID finds a delivery by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Delivery, error)

	// FindByOrder finds the deliveries of an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Delivery, error)

	// Save creates or updates a delivery
	Save(ctx context.Context, delivery *Delivery) error
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByOrder finds the invoices of an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Invoice, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, invoice *Invoice) error
}

// PaymentRecordRepository defines the interface for payment record persistence
type PaymentRecordRepository interface {
	// FindByOrder finds the payment records of an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]PaymentRecord, error)

	// FindByTransactionID finds a payment record by transaction id within an order
	FindByTransactionID(ctx context.Context, orderID uuid.UUID, transactionID string) (*PaymentRecord, error)

	// Save creates or updates a payment record
	Save(ctx context.Context, record *PaymentRecord) error
}
