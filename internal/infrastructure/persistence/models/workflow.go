package models

import (
	"time"

	"github.com/shopbridge/backend/internal/domain/workflow"

	"github.com/google/uuid"
)

// PipelineLineModel is the persistence model for one workflow pipeline line.
type PipelineLineModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	PipelineID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pipeline_line_key,priority:1"`
	Step       string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_pipeline_line_key,priority:2"`
	Position   int       `gorm:"not null"`
	State      string    `gorm:"type:varchar(20);not null"`
	ErrorText  string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PipelineLineModel) TableName() string {
	return "workflow_pipeline_lines"
}

// ToDomain converts the persistence model to a domain PipelineLine.
func (m *PipelineLineModel) ToDomain() workflow.PipelineLine {
	return workflow.PipelineLine{
		ID:         m.ID,
		PipelineID: m.PipelineID,
		Step:       workflow.Step(m.Step),
		Position:   m.Position,
		State:      workflow.StepState(m.State),
		ErrorText:  m.ErrorText,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// PipelineLineModelFromDomain creates a persistence model from a domain PipelineLine.
func PipelineLineModelFromDomain(line workflow.PipelineLine) PipelineLineModel {
	return PipelineLineModel{
		ID:         line.ID,
		PipelineID: line.PipelineID,
		Step:       string(line.Step),
		Position:   line.Position,
		State:      string(line.State),
		ErrorText:  line.ErrorText,
		CreatedAt:  line.CreatedAt,
		UpdatedAt:  line.UpdatedAt,
	}
}
