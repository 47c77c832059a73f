// Package notificationrepo is the postgres-backed queue of producer
// notification jobs. Workers claim rows with FOR UPDATE SKIP LOCKED, so
// several instances can drain the queue without handing out a job twice.
package notificationrepo

import (
	"context"
	"time"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/notification"
	"ordercycles/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobDTO is the notification_jobs row.
type JobDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderCycleID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status       string     `gorm:"type:varchar(16);not null;index:idx_notification_jobs_pending,priority:1"`
	Attempts     int        `gorm:"type:int;not null;default:0"`
	LastError    string     `gorm:"type:text;not null;default:''"`
	EnqueuedAt   time.Time  `gorm:"type:timestamptz;not null;index:idx_notification_jobs_pending,priority:2"`
	ProcessedAt  *time.Time `gorm:"type:timestamptz"`
}

func (JobDTO) TableName() string {
	return "notification_jobs"
}

// GormNotificationQueue implements both NotificationQueue and
// NotificationJobRepository using GORM.
type GormNotificationQueue struct {
	db *gorm.DB
}

func NewGormNotificationQueue(db *gorm.DB) *GormNotificationQueue {
	return &GormNotificationQueue{db: db}
}

// Enqueue stores a pending job.
func (r *GormNotificationQueue) Enqueue(ctx context.Context, job *notification.Job) error {
	dto := fromDomain(job)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ClaimPending locks up to limit pending jobs, oldest first. Rows locked by
// another worker are skipped. The lock lasts until the transaction ends.
func (r *GormNotificationQueue) ClaimPending(ctx context.Context, limit int) ([]*notification.Job, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ?", string(notification.StatusPending)).
		Order("enqueued_at").
		Order("id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*notification.Job, 0, len(dtos))
	for _, dto := range dtos {
		job, jobErr := toDomain(dto)
		if jobErr != nil {
			return nil, jobErr
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Update stores the processing state of a job.
func (r *GormNotificationQueue) Update(ctx context.Context, job *notification.Job) error {
	dto := fromDomain(job)
	result := r.db.WithContext(ctx).Model(&JobDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":       dto.Status,
		"attempts":     dto.Attempts,
		"last_error":   dto.LastError,
		"processed_at": dto.ProcessedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification job", job.ID().String())
	}
	return nil
}

func fromDomain(job *notification.Job) JobDTO {
	return JobDTO{
		ID:           job.ID().Bytes(),
		OrderCycleID: job.OrderCycleID().Bytes(),
		Status:       string(job.Status()),
		Attempts:     job.Attempts(),
		LastError:    job.LastError(),
		EnqueuedAt:   job.EnqueuedAt(),
		ProcessedAt:  job.ProcessedAt(),
	}
}

func toDomain(dto JobDTO) (*notification.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderCycleID, err := kernel.UUIDFromBytes(dto.OrderCycleID[:])
	if err != nil {
		return nil, err
	}
	return notification.RestoreJob(
		id,
		orderCycleID,
		notification.Status(dto.Status),
		dto.Attempts,
		dto.LastError,
		dto.EnqueuedAt,
		dto.ProcessedAt,
	)
}
