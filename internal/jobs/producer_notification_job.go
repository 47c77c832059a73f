package jobs

import (
	"context"
	"time"

	"ordercycles/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultNotificationSchedule runs the notification worker twice a minute.
const DefaultNotificationSchedule = "*/30 * * * * *"

// DeliveryHandler processes one batch of queued producer notifications.
type DeliveryHandler interface {
	Handle(ctx context.Context, command commands.DeliverProducerNotificationsCommand) (commands.DeliveryReport, error)
}

// ProducerNotificationJob periodically delivers queued producer notifications.
type ProducerNotificationJob struct {
	handler  DeliveryHandler
	command  commands.DeliverProducerNotificationsCommand
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   logrus.FieldLogger
}

// NewProducerNotificationJob creates the job. batchSize bounds the jobs
// claimed per tick; timeout bounds a single tick.
func NewProducerNotificationJob(
	handler DeliveryHandler,
	schedule string,
	batchSize int,
	timeout time.Duration,
	logger logrus.FieldLogger,
) (*ProducerNotificationJob, error) {
	command, err := commands.NewDeliverProducerNotificationsCommand(batchSize)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultNotificationSchedule
	}

	return &ProducerNotificationJob{
		handler:  handler,
		command:  command,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.WithField("component", "producer_notification_job"),
	}, nil
}

// Start schedules the job. An invalid schedule is returned as an error.
func (j *ProducerNotificationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		j.RunOnce(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.WithField("schedule", j.schedule).Info("Producer notification job started")
	return nil
}

// RunOnce processes a single batch and logs the outcome.
func (j *ProducerNotificationJob) RunOnce(ctx context.Context) commands.DeliveryReport {
	report, err := j.handler.Handle(ctx, j.command)
	if err != nil {
		j.logger.WithError(err).Error("Producer notification job failed")
		return report
	}

	if report.Processed > 0 {
		j.logger.WithFields(logrus.Fields{
			"processed": report.Processed,
			"failed":    report.Failed,
		}).Info("Producer notifications delivered")
	}
	return report
}

// Stop unschedules the job and waits for a running tick to finish.
func (j *ProducerNotificationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Producer notification job stopped")
}
