package commands

import (
	"context"
	"fmt"

	"ordercycles/internal/core/domain/services"
	"ordercycles/internal/pkg/errs"

	"github.com/sirupsen/logrus"
)

// DestroyOrderCycleCommandHandler deletes an order cycle once nothing
// depends on it.
//
// The cycle row is locked, dependents are counted and the delete is issued
// all within one transaction, so a stale "deletable" reading is never
// trusted. Orders inserted concurrently are still caught by the foreign key
// on orders, which the repository reports as orders_present.
type DestroyOrderCycleCommandHandler struct {
	uowFactory DestroyUoWFactory
	logger     logrus.FieldLogger
}

func NewDestroyOrderCycleCommandHandler(uowFactory DestroyUoWFactory, logger logrus.FieldLogger) DestroyOrderCycleCommandHandler {
	return DestroyOrderCycleCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.WithField("component", "destroy_order_cycle"),
	}
}

// Handle returns *errs.DependencyConflictError when orders or schedules
// reference the cycle, checked in that order.
func (h DestroyOrderCycleCommandHandler) Handle(ctx context.Context, command DestroyOrderCycleCommand) (DestroyResult, error) {
	if err := command.Validate(); err != nil {
		return DestroyResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DestroyResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderCycleRepository()
	oc, err := repo.GetForUpdate(ctx, command.OrderCycleID())
	if err != nil {
		return DestroyResult{}, err
	}

	actor, err := loadActor(ctx, uow, command.ActorID(), "delete order cycle")
	if err != nil {
		return DestroyResult{}, err
	}
	if !actor.canManage(oc.CoordinatorID()) {
		return DestroyResult{}, errs.NewAuthorizationError("delete order cycle", MsgCannotDelete)
	}

	var dependents services.Dependents
	if dependents.Orders, err = uow.OrderRepository().CountByOrderCycle(ctx, oc.ID()); err != nil {
		return DestroyResult{}, err
	}
	if dependents.Schedules, err = uow.ScheduleRepository().CountByOrderCycle(ctx, oc.ID()); err != nil {
		return DestroyResult{}, err
	}

	log := h.logger.WithField("order_cycle_id", oc.ID().String())
	if err = services.NewDeletionGuard().Check(dependents); err != nil {
		log.WithError(err).Info("order cycle deletion refused")
		return DestroyResult{}, err
	}

	if err = repo.Delete(ctx, oc.ID()); err != nil {
		return DestroyResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return DestroyResult{}, err
	}

	log.Info("order cycle deleted")
	return DestroyResult{Notice: fmt.Sprintf(noticeRemoved, oc.Name())}, nil
}
