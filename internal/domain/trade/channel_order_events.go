package trade

import (
	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeChannelOrder = "ChannelOrder"

// Event type constants
const (
	EventTypeChannelOrderCreated   = "ChannelOrderCreated"
	EventTypeChannelOrderConfirmed = "ChannelOrderConfirmed"
)

// ChannelOrderCreatedEvent is published when an order is imported from a platform
type ChannelOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID `json:"order_id"`
	IntegrationID uuid.UUID `json:"integration_id"`
	ExternalCode  string    `json:"external_code"`
	Reference     string    `json:"reference"`
}

// NewChannelOrderCreatedEvent creates a new ChannelOrderCreatedEvent
func NewChannelOrderCreatedEvent(order *ChannelOrder) *ChannelOrderCreatedEvent {
	return &ChannelOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeChannelOrderCreated, AggregateTypeChannelOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		IntegrationID:   order.IntegrationID,
		ExternalCode:    order.ExternalCode,
		Reference:       order.Reference,
	}
}

// ChannelOrderConfirmedEvent is published when an order is confirmed
type ChannelOrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID       `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
}

// NewChannelOrderConfirmedEvent creates a new ChannelOrderConfirmedEvent
func NewChannelOrderConfirmedEvent(order *ChannelOrder) *ChannelOrderConfirmedEvent {
	return &ChannelOrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeChannelOrderConfirmed, AggregateTypeChannelOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		Total:           order.ComputedTotal(),
	}
}
