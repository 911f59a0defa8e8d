// Package jobqueue provides the database-backed asynchronous job queue used
// by the integration pipelines. Jobs are deduplicated by identity key while
// pending, and failures caused by a missing mapping are parked with a
// structured dependency so they can be re-queued the moment the mapping
// appears.
package jobqueue

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of a queued job.
type JobStatus string

const (
	StatusPending JobStatus = "pending"
	StatusRunning JobStatus = "running"
	StatusFailed  JobStatus = "failed"
)

// Job is the persistence model of one queued call. Succeeded jobs are deleted
// so their identity key becomes free for the next occurrence of the same
// logical operation.
type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Type        string    `gorm:"type:varchar(50);not null;index"`
	IdentityKey string    `gorm:"type:varchar(255);not null;uniqueIndex"`

	IntegrationID uuid.UUID `gorm:"type:uuid;not null;index"`
	TenantID      uuid.UUID `gorm:"type:uuid;not null"`
	Payload       string    `gorm:"type:jsonb"`

	Status    JobStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Attempts  int       `gorm:"not null;default:0"`
	LastError string    `gorm:"type:text"`
	RunAt     time.Time `gorm:"not null;index"`

	// Structured dependency of a parked job. Set only when Status is failed
	// because a mapping or external record was missing.
	DepDirection     string     `gorm:"type:varchar(20);index:idx_job_dependency,priority:1"`
	DepKind          string     `gorm:"type:varchar(30);index:idx_job_dependency,priority:2"`
	DepKey           string     `gorm:"type:varchar(255);index:idx_job_dependency,priority:3"`
	DepIntegrationID *uuid.UUID `gorm:"type:uuid;index:idx_job_dependency,priority:4"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Job) TableName() string {
	return "integration_jobs"
}
