package trade

import (
	"time"

	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// DeliveryStatus represents the status of a delivery
type DeliveryStatus string

const (
	DeliveryStatusPending DeliveryStatus = "PENDING"
	DeliveryStatusDone    DeliveryStatus = "DONE"
)

// Delivery represents the outbound shipment of a channel order
type Delivery struct {
	shared.TenantAggregateRoot
	OrderID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	CarrierID      *uuid.UUID     `gorm:"type:uuid"`
	TrackingNumber string         `gorm:"type:varchar(100)"`
	Status         DeliveryStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	ValidatedAt    *time.Time
}

// TableName returns the table name for GORM
func (Delivery) TableName() string {
	return "channel_deliveries"
}

// NewDelivery creates a pending delivery for an order
func NewDelivery(tenantID, orderID uuid.UUID, carrierID *uuid.UUID) (*Delivery, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}

	return &Delivery{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderID:             orderID,
		CarrierID:           carrierID,
		Status:              DeliveryStatusPending,
	}, nil
}

// Validate completes the delivery. Validating an already done delivery is a
// no-op so that redelivered jobs cannot double-apply.
func (d *Delivery) Validate() error {
	if d.Status == DeliveryStatusDone {
		return nil
	}

	now := time.Now()
	d.Status = DeliveryStatusDone
	d.ValidatedAt = &now
	d.UpdatedAt = now
	d.IncrementVersion()

	return nil
}

// SetTrackingNumber records the carrier tracking number
func (d *Delivery) SetTrackingNumber(trackingNumber string) {
	d.TrackingNumber = trackingNumber
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// IsDone returns true once the delivery is validated
func (d *Delivery) IsDone() bool {
	return d.Status == DeliveryStatusDone
}
