package commands

import (
	"context"
	"errors"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/notification"
	"ordercycles/internal/pkg/errs"

	"github.com/sirupsen/logrus"
)

// NotifyProducersCommandHandler queues a producer notification job. It
// never waits for delivery; the job worker reports its own failures.
// Only admins may trigger it.
type NotifyProducersCommandHandler struct {
	uowFactory NotificationUoWFactory
	clock      kernel.Clock
	logger     logrus.FieldLogger
}

func NewNotifyProducersCommandHandler(uowFactory NotificationUoWFactory, clock kernel.Clock, logger logrus.FieldLogger) NotifyProducersCommandHandler {
	return NotifyProducersCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.WithField("component", "notify_producers"),
	}
}

func (h NotifyProducersCommandHandler) Handle(ctx context.Context, command NotifyProducersCommand) (NotifyProducersResult, error) {
	if err := command.Validate(); err != nil {
		return NotifyProducersResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return NotifyProducersResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	user, err := uow.UserRepository().Get(ctx, command.ActorID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return NotifyProducersResult{}, errs.NewAuthorizationError("notify producers", MsgUnknownUser)
	}
	if err != nil {
		return NotifyProducersResult{}, err
	}
	if !user.IsAdmin() {
		return NotifyProducersResult{}, errs.NewAuthorizationError("notify producers", MsgAdminRequired)
	}

	oc, err := uow.OrderCycleRepository().Get(ctx, command.OrderCycleID())
	if err != nil {
		return NotifyProducersResult{}, err
	}

	job, err := notification.NewProducerNotificationJob(kernel.NewUUID(), oc.ID(), h.clock.Now())
	if err != nil {
		return NotifyProducersResult{}, err
	}
	if err = uow.NotificationQueue().Enqueue(ctx, job); err != nil {
		return NotifyProducersResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return NotifyProducersResult{}, err
	}

	h.logger.WithFields(logrus.Fields{
		"order_cycle_id": oc.ID().String(),
		"job_id":         job.ID().String(),
	}).Info("producer notification queued")

	return NotifyProducersResult{Queued: true, JobID: job.ID(), Notice: NoticeProducersQueued}, nil
}
