package persistence

import (
	"context"
	"errors"

	"github.com/shopbridge/backend/internal/domain/shared"
	"github.com/shopbridge/backend/internal/domain/trade"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTaxRepository implements TaxRepository using GORM
type GormTaxRepository struct {
	db *gorm.DB
}

// NewGormTaxRepository creates a new GormTaxRepository
func NewGormTaxRepository(db *gorm.DB) *GormTaxRepository {
	return &GormTaxRepository{db: db}
}

// FindByID finds a tax by its ID
func (r *GormTaxRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Tax, error) {
	var tax trade.Tax
	if err := r.db.WithContext(ctx).First(&tax, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tax, nil
}

// FindByIDs finds multiple taxes by their IDs
func (r *GormTaxRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]trade.Tax, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var taxes []trade.Tax
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&taxes).Error; err != nil {
		return nil, err
	}
	return taxes, nil
}

// FindAllForTenant finds all taxes for a tenant
func (r *GormTaxRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]trade.Tax, error) {
	var taxes []trade.Tax
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&taxes).Error; err != nil {
		return nil, err
	}
	return taxes, nil
}

// Save creates or updates a tax
func (r *GormTaxRepository) Save(ctx context.Context, tax *trade.Tax) error {
	return r.db.WithContext(ctx).Save(tax).Error
}

// GormTaxGroupRepository implements TaxGroupRepository using GORM
type GormTaxGroupRepository struct {
	db *gorm.DB
}

// NewGormTaxGroupRepository creates a new GormTaxGroupRepository
func NewGormTaxGroupRepository(db *gorm.DB) *GormTaxGroupRepository {
	return &GormTaxGroupRepository{db: db}
}

// FindByID finds a tax group by its ID
func (r *GormTaxGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.TaxGroup, error) {
	var group trade.TaxGroup
	if err := r.db.WithContext(ctx).First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

// Save creates or updates a tax group
func (r *GormTaxGroupRepository) Save(ctx context.Context, group *trade.TaxGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

// GormCarrierRepository implements CarrierRepository using GORM
type GormCarrierRepository struct {
	db *gorm.DB
}

// NewGormCarrierRepository creates a new GormCarrierRepository
func NewGormCarrierRepository(db *gorm.DB) *GormCarrierRepository {
	return &GormCarrierRepository{db: db}
}

// FindByID finds a carrier by its ID
func (r *GormCarrierRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Carrier, error) {
	var carrier trade.Carrier
	if err := r.db.WithContext(ctx).First(&carrier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &carrier, nil
}

// FindByName finds carriers by exact name within a tenant
func (r *GormCarrierRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) ([]trade.Carrier, error) {
	var carriers []trade.Carrier
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, name).
		Find(&carriers).Error; err != nil {
		return nil, err
	}
	return carriers, nil
}

// Save creates or updates a carrier
func (r *GormCarrierRepository) Save(ctx context.Context, carrier *trade.Carrier) error {
	return r.db.WithContext(ctx).Save(carrier).Error
}

// GormPaymentMethodRepository implements PaymentMethodRepository using GORM
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewGormPaymentMethodRepository creates a new GormPaymentMethodRepository
func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// FindByID finds a payment method by its ID
func (r *GormPaymentMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PaymentMethod, error) {
	var method trade.PaymentMethod
	if err := r.db.WithContext(ctx).First(&method, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindByName finds payment methods by exact name within a tenant
func (r *GormPaymentMethodRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) ([]trade.PaymentMethod, error) {
	var methods []trade.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(name) = LOWER(?)", tenantID, name).
		Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// Save creates or updates a payment method
func (r *GormPaymentMethodRepository) Save(ctx context.Context, method *trade.PaymentMethod) error {
	return r.db.WithContext(ctx).Save(method).Error
}

// GormSubStatusRepository implements SubStatusRepository using GORM
type GormSubStatusRepository struct {
	db *gorm.DB
}

// NewGormSubStatusRepository creates a new GormSubStatusRepository
func NewGormSubStatusRepository(db *gorm.DB) *GormSubStatusRepository {
	return &GormSubStatusRepository{db: db}
}

// FindByID finds a sub-status by its ID
func (r *GormSubStatusRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SubStatus, error) {
	var subStatus trade.SubStatus
	if err := r.db.WithContext(ctx).First(&subStatus, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &subStatus, nil
}

// FindByIDs finds multiple sub-statuses by their IDs
func (r *GormSubStatusRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]trade.SubStatus, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var subStatuses []trade.SubStatus
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&subStatuses).Error; err != nil {
		return nil, err
	}
	return subStatuses, nil
}

// FindByName finds sub-statuses by exact name within an integration
func (r *GormSubStatusRepository) FindByName(ctx context.Context, integrationID uuid.UUID, name string) ([]trade.SubStatus, error) {
	var subStatuses []trade.SubStatus
	if err := r.db.WithContext(ctx).
		Where("integration_id = ? AND LOWER(name) = LOWER(?)", integrationID, name).
		Find(&subStatuses).Error; err != nil {
		return nil, err
	}
	return subStatuses, nil
}

// FindByIntegration finds all sub-statuses of an integration
func (r *GormSubStatusRepository) FindByIntegration(ctx context.Context, integrationID uuid.UUID) ([]trade.SubStatus, error) {
	var subStatuses []trade.SubStatus
	if err := r.db.WithContext(ctx).
		Where("integration_id = ?", integrationID).
		Order("name ASC").
		Find(&subStatuses).Error; err != nil {
		return nil, err
	}
	return subStatuses, nil
}

// Save creates or updates a sub-status
func (r *GormSubStatusRepository) Save(ctx context.Context, subStatus *trade.SubStatus) error {
	return r.db.WithContext(ctx).Save(subStatus).Error
}

// DeleteByIntegration removes all sub-statuses of an integration
func (r *GormSubStatusRepository) DeleteByIntegration(ctx context.Context, integrationID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&trade.SubStatus{}, "integration_id = ?", integrationID).Error
}

// GormDeliveryRepository implements DeliveryRepository using GORM
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GormDeliveryRepository
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// FindByID finds a delivery by its ID
func (r *GormDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Delivery, error) {
	var delivery trade.Delivery
	if err := r.db.WithContext(ctx).First(&delivery, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &delivery, nil
}

// FindByOrder finds the deliveries of an order
func (r *GormDeliveryRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]trade.Delivery, error) {
	var deliveries []trade.Delivery
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// Save creates or updates a delivery
func (r *GormDeliveryRepository) Save(ctx context.Context, delivery *trade.Delivery) error {
	return r.db.WithContext(ctx).Save(delivery).Error
}

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Invoice, error) {
	var invoice trade.Invoice
	if err := r.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByOrder finds the invoices of an order
func (r *GormInvoiceRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]trade.Invoice, error) {
	var invoices []trade.Invoice
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *trade.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// GormPaymentRecordRepository implements PaymentRecordRepository using GORM
type GormPaymentRecordRepository struct {
	db *gorm.DB
}

// NewGormPaymentRecordRepository creates a new GormPaymentRecordRepository
func NewGormPaymentRecordRepository(db *gorm.DB) *GormPaymentRecordRepository {
	return &GormPaymentRecordRepository{db: db}
}

// FindByOrder finds the payment records of an order
func (r *GormPaymentRecordRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]trade.PaymentRecord, error) {
	var records []trade.PaymentRecord
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("transaction_date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByTransactionID finds a payment record by transaction id within an order
func (r *GormPaymentRecordRepository) FindByTransactionID(ctx context.Context, orderID uuid.UUID, transactionID string) (*trade.PaymentRecord, error) {
	var record trade.PaymentRecord
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND transaction_id = ?", orderID, transactionID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Save creates or updates a payment record
func (r *GormPaymentRecordRepository) Save(ctx context.Context, record *trade.PaymentRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

var (
	_ trade.TaxRepository           = (*GormTaxRepository)(nil)
	_ trade.TaxGroupRepository      = (*GormTaxGroupRepository)(nil)
	_ trade.CarrierRepository       = (*GormCarrierRepository)(nil)
	_ trade.PaymentMethodRepository = (*GormPaymentMethodRepository)(nil)
	_ trade.SubStatusRepository     = (*GormSubStatusRepository)(nil)
	_ trade.DeliveryRepository      = (*GormDeliveryRepository)(nil)
	_ trade.InvoiceRepository       = (*GormInvoiceRepository)(nil)
	_ trade.PaymentRecordRepository = (*GormPaymentRecordRepository)(nil)
)
