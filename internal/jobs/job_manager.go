package jobs

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds the scheduling settings of all jobs.
type Config struct {
	NotificationSchedule  string
	NotificationBatchSize int
	NotificationTimeout   time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	producerNotificationJob *ProducerNotificationJob
}

// NewJobManager creates a job manager with every job wired to its handler.
func NewJobManager(cfg Config, deliverHandler DeliveryHandler, logger logrus.FieldLogger) (*JobManager, error) {
	timeout := cfg.NotificationTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}

	notificationJob, err := NewProducerNotificationJob(
		deliverHandler,
		cfg.NotificationSchedule,
		cfg.NotificationBatchSize,
		timeout,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer notification job: %w", err)
	}

	return &JobManager{producerNotificationJob: notificationJob}, nil
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.producerNotificationJob.Start(); err != nil {
		return fmt.Errorf("failed to start producer notification job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs, waiting for running ticks.
func (jm *JobManager) StopAll() {
	jm.producerNotificationJob.Stop()
}
