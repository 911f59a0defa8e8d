package workflow

import (
	"context"

	"github.com/google/uuid"
)

// PipelineRepository defines the interface for pipeline persistence
type PipelineRepository interface {
	// FindByID finds a pipeline by its ID, with lines
	FindByID(ctx context.Context, id uuid.UUID) (*Pipeline, error)

	// FindByOrder finds the pipeline of an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) (*Pipeline, error)

	// Save creates or updates a pipeline with its lines
	Save(ctx context.Context, pipeline *Pipeline) error

	// Delete drops a pipeline; used only by explicit operator action
	Delete(ctx context.Context, id uuid.UUID) error
}
