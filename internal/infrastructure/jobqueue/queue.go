package jobqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appintegration "github.com/shopbridge/backend/internal/application/integration"
	"github.com/shopbridge/backend/internal/domain/integration"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormJobQueue is the database-backed implementation of the scheduling port.
// An insert conflicting on the identity key is dropped silently: the pending
// job already represents the requested operation.
type GormJobQueue struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormJobQueue creates a new GormJobQueue
func NewGormJobQueue(db *gorm.DB, logger *zap.Logger) *GormJobQueue {
	return &GormJobQueue{db: db, logger: logger}
}

// Enqueue persists one job request. Duplicate identity keys collapse into the
// already queued job.
func (q *GormJobQueue) Enqueue(ctx context.Context, req appintegration.JobRequest) error {
	if req.IdentityKey == "" {
		return fmt.Errorf("jobqueue: identity key cannot be empty")
	}

	payload := "{}"
	if req.Payload != nil {
		data, err := json.Marshal(req.Payload)
		if err != nil {
			return fmt.Errorf("jobqueue: marshal payload: %w", err)
		}
		payload = string(data)
	}

	now := time.Now()
	job := Job{
		ID:            uuid.New(),
		Type:          string(req.Type),
		IdentityKey:   req.IdentityKey,
		IntegrationID: req.IntegrationID,
		TenantID:      req.TenantID,
		Payload:       payload,
		Status:        StatusPending,
		RunAt:         now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result := q.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity_key"}},
			DoNothing: true,
		}).
		Create(&job)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		q.logger.Debug("job collapsed into pending duplicate",
			zap.String("type", string(req.Type)),
			zap.String("identity_key", req.IdentityKey))
	}
	return nil
}

// RequeueSatisfied flips parked jobs back to pending when the mapping
// condition they were waiting on has been resolved.
func (q *GormJobQueue) RequeueSatisfied(ctx context.Context, dep integration.PendingDependency) error {
	result := q.db.WithContext(ctx).
		Model(&Job{}).
		Where("status = ? AND dep_direction = ? AND dep_kind = ? AND dep_key = ? AND dep_integration_id = ?",
			StatusFailed, string(dep.Direction), string(dep.Kind), dep.Key, dep.IntegrationID).
		Updates(map[string]any{
			"status":             StatusPending,
			"last_error":         "",
			"dep_direction":      "",
			"dep_kind":           "",
			"dep_key":            "",
			"dep_integration_id": nil,
			"run_at":             time.Now(),
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		q.logger.Info("re-queued jobs with satisfied dependency",
			zap.String("direction", string(dep.Direction)),
			zap.String("kind", string(dep.Kind)),
			zap.String("key", dep.Key),
			zap.Int64("jobs", result.RowsAffected))
	}
	return nil
}

var (
	_ appintegration.JobEnqueuer        = (*GormJobQueue)(nil)
	_ appintegration.DependencyRequeuer = (*GormJobQueue)(nil)
)
