package catalog

import (
	"time"

	"github.com/shopbridge/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// Attribute represents a product axis of variation (size, color)
type Attribute struct {
	shared.TenantAggregateRoot
	Name      string `gorm:"type:varchar(100);not null"`
	SortOrder int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Attribute) TableName() string {
	return "product_attributes"
}

// NewAttribute creates a new attribute
func NewAttribute(tenantID uuid.UUID, name string) (*Attribute, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Attribute name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Attribute name cannot exceed 100 characters")
	}

	return &Attribute{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
	}, nil
}

// Rename updates the attribute name
func (a *Attribute) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Attribute name cannot be empty")
	}

	a.Name = name
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// AttributeValue represents one allowed value of an attribute
type AttributeValue struct {
	shared.TenantAggregateRoot
	AttributeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	SortOrder   int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (AttributeValue) TableName() string {
	return "product_attribute_values"
}

// NewAttributeValue creates a new attribute value
func NewAttributeValue(tenantID, attributeID uuid.UUID, name string) (*AttributeValue, error) {
	if attributeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ATTRIBUTE", "Attribute ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Attribute value name cannot be empty")
	}

	return &AttributeValue{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		AttributeID:         attributeID,
		Name:                name,
	}, nil
}
