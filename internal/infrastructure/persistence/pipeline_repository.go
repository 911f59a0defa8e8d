package persistence

import (
	"context"
	"errors"

	"github.com/shopbridge/backend/internal/domain/workflow"
	"github.com/shopbridge/backend/internal/infrastructure/persistence/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPipelineRepository implements PipelineRepository using GORM
type GormPipelineRepository struct {
	db *gorm.DB
}

// NewGormPipelineRepository creates a new GormPipelineRepository
func NewGormPipelineRepository(db *gorm.DB) *GormPipelineRepository {
	return &GormPipelineRepository{db: db}
}

// FindByID finds a pipeline by its ID, with lines
func (r *GormPipelineRepository) FindByID(ctx context.Context, id uuid.UUID) (*workflow.Pipeline, error) {
	var pipeline workflow.Pipeline
	if err := r.db.WithContext(ctx).First(&pipeline, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrPipelineNotFound
		}
		return nil, err
	}
	if err := r.loadLines(ctx, &pipeline); err != nil {
		return nil, err
	}
	return &pipeline, nil
}

// FindByOrder finds the pipeline of an order
func (r *GormPipelineRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) (*workflow.Pipeline, error) {
	var pipeline workflow.Pipeline
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&pipeline).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, workflow.ErrPipelineNotFound
		}
		return nil, err
	}
	if err := r.loadLines(ctx, &pipeline); err != nil {
		return nil, err
	}
	return &pipeline, nil
}

// Save creates or updates a pipeline with its lines
func (r *GormPipelineRepository) Save(ctx context.Context, pipeline *workflow.Pipeline) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(pipeline).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.PipelineLineModel{}, "pipeline_id = ?", pipeline.ID).Error; err != nil {
			return err
		}
		if len(pipeline.Lines) > 0 {
			lineModels := make([]models.PipelineLineModel, len(pipeline.Lines))
			for i, line := range pipeline.Lines {
				line.PipelineID = pipeline.ID
				lineModels[i] = models.PipelineLineModelFromDomain(line)
			}
			if err := tx.Create(&lineModels).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete drops a pipeline with its lines
func (r *GormPipelineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PipelineLineModel{}, "pipeline_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&workflow.Pipeline{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return workflow.ErrPipelineNotFound
		}
		return nil
	})
}

func (r *GormPipelineRepository) loadLines(ctx context.Context, pipeline *workflow.Pipeline) error {
	var lineModels []models.PipelineLineModel
	if err := r.db.WithContext(ctx).
		Where("pipeline_id = ?", pipeline.ID).
		Order("position ASC").
		Find(&lineModels).Error; err != nil {
		return err
	}
	for i := range lineModels {
		pipeline.Lines = append(pipeline.Lines, lineModels[i].ToDomain())
	}
	return nil
}

// Ensure GormPipelineRepository implements PipelineRepository
var _ workflow.PipelineRepository = (*GormPipelineRepository)(nil)
