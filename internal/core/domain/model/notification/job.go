// Package notification models the queued request to notify the producers
// of an order cycle. The job is created by an admin action and executed
// later by a background worker; the triggering request never waits for it.
package notification

import (
	"errors"
	"fmt"
	"time"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/pkg/errs"
)

// Status is the processing state of a job.
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// ErrJobAlreadyProcessed is returned when completing or failing a job twice.
var ErrJobAlreadyProcessed = errors.New("notification job already processed")

// Job asks for every producer of an order cycle to be notified.
type Job struct {
	id           kernel.UUID
	orderCycleID kernel.UUID
	status       Status
	attempts     int
	lastError    string
	enqueuedAt   time.Time
	processedAt  *time.Time
}

// NewProducerNotificationJob creates a pending job for orderCycleID.
func NewProducerNotificationJob(id, orderCycleID kernel.UUID, enqueuedAt time.Time) (*Job, error) {
	if err := errors.Join(id.Validate(), orderCycleID.Validate()); err != nil {
		return nil, err
	}
	return &Job{
		id:           id,
		orderCycleID: orderCycleID,
		status:       StatusPending,
		enqueuedAt:   enqueuedAt.UTC(),
	}, nil
}

// RestoreJob rebuilds a job loaded from the queue table.
func RestoreJob(
	id, orderCycleID kernel.UUID,
	status Status,
	attempts int,
	lastError string,
	enqueuedAt time.Time,
	processedAt *time.Time,
) (*Job, error) {
	switch status {
	case StatusPending, StatusDone, StatusFailed:
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("unknown status %q", status))
	}

	job, err := NewProducerNotificationJob(id, orderCycleID, enqueuedAt)
	if err != nil {
		return nil, err
	}
	job.status = status
	job.attempts = attempts
	job.lastError = lastError
	job.processedAt = processedAt
	return job, nil
}

func (j *Job) ID() kernel.UUID { return j.id }
func (j *Job) OrderCycleID() kernel.UUID { return j.orderCycleID }
func (j *Job) Status() Status { return j.status }
func (j *Job) Attempts() int { return j.attempts }
func (j *Job) LastError() string { return j.lastError }
func (j *Job) EnqueuedAt() time.Time { return j.enqueuedAt }
func (j *Job) ProcessedAt() *time.Time { return j.processedAt }
func (j *Job) IsPending() bool { return j.status == StatusPending }

// Complete marks the job as delivered.
func (j *Job) Complete(now time.Time) error {
	if !j.IsPending() {
		return fmt.Errorf("%w: %s is %s", ErrJobAlreadyProcessed, j.id, j.status)
	}
	j.attempts++
	j.status = StatusDone
	j.lastError = ""
	j.processedAt = timePtr(now.UTC())
	return nil
}

// Fail records a delivery failure. The job is not retried automatically.
func (j *Job) Fail(now time.Time, cause error) error {
	if !j.IsPending() {
		return fmt.Errorf("%w: %s is %s", ErrJobAlreadyProcessed, j.id, j.status)
	}
	j.attempts++
	j.status = StatusFailed
	if cause != nil {
		j.lastError = cause.Error()
	}
	j.processedAt = timePtr(now.UTC())
	return nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
