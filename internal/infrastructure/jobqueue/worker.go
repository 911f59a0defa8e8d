package jobqueue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopbridge/backend/internal/domain/integration"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	pollerLockKey = "jobqueue:poller"
	pollerLockTTL = 30 * time.Second
)

// Dispatch executes one claimed job. Implemented by the application layer's
// job router.
type Dispatch func(ctx context.Context, jobType string, integrationID, tenantID uuid.UUID, payload json.RawMessage) error

// WorkerConfig tunes the polling worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	RetryBackoff time.Duration
}

// DefaultWorkerConfig returns the production defaults.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
		MaxAttempts:  5,
		RetryBackoff: time.Minute,
	}
}

// Worker polls the queue and runs due jobs. A Redis lock serializes polling
// across replicas so each job is claimed once.
type Worker struct {
	db       *gorm.DB
	locker   *redislock.Client
	dispatch Dispatch
	config   WorkerConfig
	logger   *zap.Logger
}

// NewWorker creates a new Worker
func NewWorker(db *gorm.DB, locker *redislock.Client, dispatch Dispatch, config WorkerConfig, logger *zap.Logger) *Worker {
	if config.PollInterval <= 0 {
		config = DefaultWorkerConfig()
	}
	return &Worker{
		db:       db,
		locker:   locker,
		dispatch: dispatch,
		config:   config,
		logger:   logger,
	}
}

// Run polls until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.RunOnce(ctx); err != nil {
				w.logger.Error("job poll failed", zap.Error(err))
			}
		}
	}
}

// RunOnce claims and executes one batch of due jobs.
func (w *Worker) RunOnce(ctx context.Context) error {
	jobs, err := w.claimBatch(ctx)
	if err != nil {
		return err
	}
	for i := range jobs {
		w.execute(ctx, &jobs[i])
	}
	return nil
}

// claimBatch marks up to BatchSize due pending jobs as running and returns
// them. The Redis lock prevents two replicas from claiming the same rows.
func (w *Worker) claimBatch(ctx context.Context) ([]Job, error) {
	if w.locker != nil {
		lock, err := w.locker.Obtain(ctx, pollerLockKey, pollerLockTTL, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		defer func() { _ = lock.Release(ctx) }()
	}

	var jobs []Job
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("status = ? AND run_at <= ?", StatusPending, time.Now()).
			Order("run_at ASC").
			Limit(w.config.BatchSize).
			Find(&jobs).Error; err != nil {
			return err
		}
		if len(jobs) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, len(jobs))
		for i := range jobs {
			ids[i] = jobs[i].ID
		}
		return tx.Model(&Job{}).
			Where("id IN ?", ids).
			Updates(map[string]any{"status": StatusRunning, "updated_at": time.Now()}).Error
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// execute runs one job and settles its row: delete on success, park on a
// mapping dependency, retry with backoff otherwise.
func (w *Worker) execute(ctx context.Context, job *Job) {
	err := w.dispatch(ctx, job.Type, job.IntegrationID, job.TenantID, json.RawMessage(job.Payload))
	if err == nil {
		if delErr := w.db.WithContext(ctx).Delete(&Job{}, "id = ?", job.ID).Error; delErr != nil {
			w.logger.Error("failed to delete finished job",
				zap.String("job_id", job.ID.String()), zap.Error(delErr))
		}
		return
	}

	job.Attempts++

	if dep, ok := integration.AsMappingDependent(err); ok {
		w.park(ctx, job, err, dep)
		return
	}

	var importErr *integration.ImportError
	if errors.As(err, &importErr) || job.Attempts >= w.config.MaxAttempts {
		w.fail(ctx, job, err)
		return
	}

	w.retry(ctx, job, err)
}

// park marks the job failed and records the structured dependency it waits
// on. RequeueSatisfied will flip it back to pending.
func (w *Worker) park(ctx context.Context, job *Job, cause error, dep integration.PendingDependency) {
	w.logger.Warn("job parked on missing mapping",
		zap.String("job_id", job.ID.String()),
		zap.String("type", job.Type),
		zap.String("kind", string(dep.Kind)),
		zap.String("key", dep.Key))

	depIntegrationID := dep.IntegrationID
	err := w.db.WithContext(ctx).Model(&Job{}).
		Where("id = ?", job.ID).
		Updates(map[string]any{
			"status":             StatusFailed,
			"attempts":           job.Attempts,
			"last_error":         cause.Error(),
			"dep_direction":      string(dep.Direction),
			"dep_kind":           string(dep.Kind),
			"dep_key":            dep.Key,
			"dep_integration_id": depIntegrationID,
			"updated_at":         time.Now(),
		}).Error
	if err != nil {
		w.logger.Error("failed to park job", zap.String("job_id", job.ID.String()), zap.Error(err))
	}
}

// fail marks the job permanently failed for operator review. The identity
// key is suffixed with the job id so the unique index stops blocking future
// enqueues of the same logical operation: recurring jobs like order polling
// must survive one exhausted failure. Parked jobs keep their key because
// RequeueSatisfied revives them.
func (w *Worker) fail(ctx context.Context, job *Job, cause error) {
	w.logger.Error("job failed",
		zap.String("job_id", job.ID.String()),
		zap.String("type", job.Type),
		zap.Int("attempts", job.Attempts),
		zap.Error(cause))

	err := w.db.WithContext(ctx).Model(&Job{}).
		Where("id = ?", job.ID).
		Updates(map[string]any{
			"status":       StatusFailed,
			"identity_key": fmt.Sprintf("%s#failed:%s", job.IdentityKey, job.ID),
			"attempts":     job.Attempts,
			"last_error":   cause.Error(),
			"updated_at":   time.Now(),
		}).Error
	if err != nil {
		w.logger.Error("failed to mark job failed", zap.String("job_id", job.ID.String()), zap.Error(err))
	}
}

// retry schedules another attempt with linear backoff.
func (w *Worker) retry(ctx context.Context, job *Job, cause error) {
	runAt := time.Now().Add(time.Duration(job.Attempts) * w.config.RetryBackoff)
	w.logger.Warn("job retry scheduled",
		zap.String("job_id", job.ID.String()),
		zap.String("type", job.Type),
		zap.Int("attempts", job.Attempts),
		zap.Time("run_at", runAt),
		zap.Error(cause))

	err := w.db.WithContext(ctx).Model(&Job{}).
		Where("id = ?", job.ID).
		Updates(map[string]any{
			"status":     StatusPending,
			"attempts":   job.Attempts,
			"last_error": cause.Error(),
			"run_at":     runAt,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		w.logger.Error("failed to schedule retry", zap.String("job_id", job.ID.String()), zap.Error(err))
	}
}
