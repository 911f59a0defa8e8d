package catalog

import (
	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeProductTemplate = "ProductTemplate"

// Event type constants
const (
	EventTypeProductTemplateCreated = "ProductTemplateCreated"
	EventTypeProductTemplateUpdated = "ProductTemplateUpdated"
	EventTypeProductVariantCreated  = "ProductVariantCreated"
)

// ProductTemplateCreatedEvent is published when a new template is created
type ProductTemplateCreatedEvent struct {
	shared.BaseDomainEvent
	TemplateID uuid.UUID `json:"template_id"`
	Name       string    `json:"name"`
	Reference  string    `json:"reference,omitempty"`
}

// NewProductTemplateCreatedEvent creates a new ProductTemplateCreatedEvent
func NewProductTemplateCreatedEvent(template *ProductTemplate) *ProductTemplateCreatedEvent {
	return &ProductTemplateCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductTemplateCreated, AggregateTypeProductTemplate, template.ID, template.TenantID),
		TemplateID:      template.ID,
		Name:            template.Name,
		Reference:       template.Reference,
	}
}

// ProductTemplateUpdatedEvent is published when a template is updated
type ProductTemplateUpdatedEvent struct {
	shared.BaseDomainEvent
	TemplateID uuid.UUID `json:"template_id"`
	Name       string    `json:"name"`
	Reference  string    `json:"reference,omitempty"`
}

// NewProductTemplateUpdatedEvent creates a new ProductTemplateUpdatedEvent
func NewProductTemplateUpdatedEvent(template *ProductTemplate) *ProductTemplateUpdatedEvent {
	return &ProductTemplateUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductTemplateUpdated, AggregateTypeProductTemplate, template.ID, template.TenantID),
		TemplateID:      template.ID,
		Name:            template.Name,
		Reference:       template.Reference,
	}
}

// ProductVariantCreatedEvent is published when a new variant is created
type ProductVariantCreatedEvent struct {
	shared.BaseDomainEvent
	VariantID  uuid.UUID `json:"variant_id"`
	TemplateID uuid.UUID `json:"template_id"`
	Reference  string    `json:"reference,omitempty"`
}

// NewProductVariantCreatedEvent creates a new ProductVariantCreatedEvent
func NewProductVariantCreatedEvent(variant *ProductVariant) *ProductVariantCreatedEvent {
	return &ProductVariantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductVariantCreated, AggregateTypeProductTemplate, variant.TemplateID, variant.TenantID),
		VariantID:       variant.ID,
		TemplateID:      variant.TemplateID,
		Reference:       variant.Reference,
	}
}
