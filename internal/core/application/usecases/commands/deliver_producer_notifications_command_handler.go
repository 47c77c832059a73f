package commands

import (
	"context"
	"errors"
	"fmt"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/notification"
	"ordercycles/internal/core/ports"
	"ordercycles/internal/pkg/errs"

	"github.com/sirupsen/logrus"
)

// DeliverProducerNotificationsCommandHandler is the worker side of the
// notification trigger. It claims pending jobs, notifies every producer
// supplying the job's order cycle and records the outcome on the job.
//
// Each job is claimed, delivered and committed in its own unit of work, so
// a failure on one job never rolls back the recorded outcome of jobs whose
// producers were already notified. The claimed row stays locked until its
// commit and concurrent workers skip it. A job that fails is marked failed
// and left for an operator; there is no automatic retry.
type DeliverProducerNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	notifier   ports.ProducerNotifier
	clock      kernel.Clock
	logger     logrus.FieldLogger
}

func NewDeliverProducerNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	notifier ports.ProducerNotifier,
	clock kernel.Clock,
	logger logrus.FieldLogger,
) DeliverProducerNotificationsCommandHandler {
	return DeliverProducerNotificationsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		clock:      clock,
		logger:     logger.WithField("component", "deliver_producer_notifications"),
	}
}

// Handle processes up to the command's batch size of jobs. It stops early
// when the queue is empty and returns the jobs processed so far together
// with any infrastructure error.
func (h DeliverProducerNotificationsCommandHandler) Handle(
	ctx context.Context,
	command DeliverProducerNotificationsCommand,
) (DeliveryReport, error) {
	if err := command.Validate(); err != nil {
		return DeliveryReport{}, err
	}

	var report DeliveryReport
	for report.Processed < command.BatchSize() {
		processed, failed, err := h.processNext(ctx)
		if err != nil {
			return report, err
		}
		if !processed {
			break
		}
		report.Processed++
		if failed {
			report.Failed++
		}
	}
	return report, nil
}

// processNext claims one pending job and commits its outcome. processed is
// false when nothing was pending.
func (h DeliverProducerNotificationsCommandHandler) processNext(ctx context.Context) (processed, failed bool, err error) {
	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobRepo := uow.NotificationJobRepository()
	jobs, err := jobRepo.ClaimPending(ctx, 1)
	if err != nil || len(jobs) == 0 {
		return false, false, err
	}
	job := jobs[0]

	log := h.logger.WithFields(logrus.Fields{
		"job_id":         job.ID().String(),
		"order_cycle_id": job.OrderCycleID().String(),
	})

	deliveryErr := h.deliver(ctx, uow, job)
	if deliveryErr != nil {
		failed = true
		log.WithError(deliveryErr).Warn("producer notification failed")
		err = job.Fail(h.clock.Now(), deliveryErr)
	} else {
		log.Info("producers notified")
		err = job.Complete(h.clock.Now())
	}
	if err != nil {
		return false, false, err
	}

	if err = jobRepo.Update(ctx, job); err != nil {
		return false, false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return false, false, err
	}
	return true, failed, nil
}

func (h DeliverProducerNotificationsCommandHandler) deliver(ctx context.Context, uow NotificationUoW, job *notification.Job) error {
	oc, err := uow.OrderCycleRepository().Get(ctx, job.OrderCycleID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("order cycle is gone: %w", err)
	}
	if err != nil {
		return err
	}

	supplierIDs := oc.Suppliers()
	if len(supplierIDs) == 0 {
		return nil
	}

	producers, err := uow.EnterpriseDirectory().Find(ctx, supplierIDs)
	if err != nil {
		return err
	}

	var failures []error
	for _, producer := range producers {
		if err = h.notifier.NotifyProducer(ctx, oc, producer); err != nil {
			failures = append(failures, fmt.Errorf("notify %s: %w", producer.Name(), err))
		}
	}
	return errors.Join(failures...)
}
