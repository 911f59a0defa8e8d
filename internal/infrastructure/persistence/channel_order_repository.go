package persistence

import (
	"context"
	"errors"

	"github.com/shopbridge/backend/internal/domain/shared"
	"github.com/shopbridge/backend/internal/domain/trade"
	"github.com/shopbridge/backend/internal/infrastructure/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormChannelOrderRepository implements ChannelOrderRepository using GORM
type GormChannelOrderRepository struct {
	db *gorm.DB
}

// NewGormChannelOrderRepository creates a new GormChannelOrderRepository
func NewGormChannelOrderRepository(db *gorm.DB) *GormChannelOrderRepository {
	return &GormChannelOrderRepository{db: db}
}

// FindByID finds an order by its ID, with lines and sub-status links
func (r *GormChannelOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.ChannelOrder, error) {
	var order trade.ChannelOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadGraph(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByExternalCode finds an order by its external code within an integration
func (r *GormChannelOrderRepository) FindByExternalCode(ctx context.Context, integrationID uuid.UUID, externalCode string) (*trade.ChannelOrder, error) {
	var order trade.ChannelOrder
	if err := r.db.WithContext(ctx).
		Where("integration_id = ? AND external_code = ?", integrationID, externalCode).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadGraph(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Save creates or updates an order with its lines and sub-status links.
// Lines and links are replaced as a whole.
func (r *GormChannelOrderRepository) Save(ctx context.Context, order *trade.ChannelOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(order).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.ChannelOrderLineModel{}, "order_id = ?", order.ID).Error; err != nil {
			return err
		}
		if len(order.Lines) > 0 {
			lineModels := make([]models.ChannelOrderLineModel, len(order.Lines))
			for i, line := range order.Lines {
				lineModels[i] = models.ChannelOrderLineModelFromDomain(line)
			}
			if err := tx.Create(&lineModels).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&models.OrderSubStatusLinkModel{}, "order_id = ?", order.ID).Error; err != nil {
			return err
		}
		if len(order.SubStatusIDs) > 0 {
			links := make([]models.OrderSubStatusLinkModel, len(order.SubStatusIDs))
			for i, subStatusID := range order.SubStatusIDs {
				links[i] = models.OrderSubStatusLinkModel{OrderID: order.ID, SubStatusID: subStatusID}
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes an order with its lines and links
func (r *GormChannelOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ChannelOrderLineModel{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.OrderSubStatusLinkModel{}, "order_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&trade.ChannelOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormChannelOrderRepository) loadGraph(ctx context.Context, order *trade.ChannelOrder) error {
	var lineModels []models.ChannelOrderLineModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", order.ID).
		Order("created_at ASC").
		Find(&lineModels).Error; err != nil {
		return err
	}
	for i := range lineModels {
		order.Lines = append(order.Lines, lineModels[i].ToDomain())
	}

	var links []models.OrderSubStatusLinkModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", order.ID).
		Find(&links).Error; err != nil {
		return err
	}
	for _, link := range links {
		order.SubStatusIDs = append(order.SubStatusIDs, link.SubStatusID)
	}

	return nil
}

// Ensure GormChannelOrderRepository implements ChannelOrderRepository
var _ trade.ChannelOrderRepository = (*GormChannelOrderRepository)(nil)
