package models

import (
	"encoding/json"
	"time"

	"github.com/shopbridge/backend/internal/domain/trade"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ChannelOrderLineModel is the persistence model for one channel order line.
// The tax ids are stored as a JSONB array; lines are always loaded and saved
// as a whole with their order.
type ChannelOrderLineModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineType     string          `gorm:"type:varchar(20);not null"`
	ExternalCode string          `gorm:"type:varchar(100)"`
	VariantID    *uuid.UUID      `gorm:"type:uuid;index"`
	Description  string          `gorm:"type:varchar(255);not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PriceUnit    decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	DiscountPct  decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`
	TaxIDsJSON   string          `gorm:"type:jsonb;column:tax_ids"`
	TaxRate      decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`

	PriceSubtotal decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PriceTax      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PriceTotal    decimal.Decimal `gorm:"type:decimal(18,4);not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ChannelOrderLineModel) TableName() string {
	return "channel_order_lines"
}

// ToDomain converts the persistence model to a domain ChannelOrderLine.
func (m *ChannelOrderLineModel) ToDomain() trade.ChannelOrderLine {
	line := trade.ChannelOrderLine{
		ID:            m.ID,
		OrderID:       m.OrderID,
		LineType:      trade.ChannelOrderLineType(m.LineType),
		ExternalCode:  m.ExternalCode,
		VariantID:     m.VariantID,
		Description:   m.Description,
		Quantity:      m.Quantity,
		PriceUnit:     m.PriceUnit,
		DiscountPct:   m.DiscountPct,
		TaxRate:       m.TaxRate,
		PriceSubtotal: m.PriceSubtotal,
		PriceTax:      m.PriceTax,
		PriceTotal:    m.PriceTotal,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.TaxIDsJSON != "" {
		_ = json.Unmarshal([]byte(m.TaxIDsJSON), &line.TaxIDs)
	}
	return line
}

// ChannelOrderLineModelFromDomain creates a persistence model from a domain line.
func ChannelOrderLineModelFromDomain(line trade.ChannelOrderLine) ChannelOrderLineModel {
	return ChannelOrderLineModel{
		ID:            line.ID,
		OrderID:       line.OrderID,
		LineType:      string(line.LineType),
		ExternalCode:  line.ExternalCode,
		VariantID:     line.VariantID,
		Description:   line.Description,
		Quantity:      line.Quantity,
		PriceUnit:     line.PriceUnit,
		DiscountPct:   line.DiscountPct,
		TaxIDsJSON:    marshalOrEmpty(line.TaxIDs, "[]"),
		TaxRate:       line.TaxRate,
		PriceSubtotal: line.PriceSubtotal,
		PriceTax:      line.PriceTax,
		PriceTotal:    line.PriceTotal,
		CreatedAt:     line.CreatedAt,
		UpdatedAt:     line.UpdatedAt,
	}
}

// OrderSubStatusLinkModel links a channel order to one of its sub-statuses.
type OrderSubStatusLinkModel struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primary_key"`
	SubStatusID uuid.UUID `gorm:"type:uuid;primary_key;index"`
}

// TableName returns the table name for GORM
func (OrderSubStatusLinkModel) TableName() string {
	return "channel_order_sub_statuses"
}
