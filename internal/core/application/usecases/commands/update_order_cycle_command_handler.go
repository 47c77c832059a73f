package commands

import (
	"context"

	"ordercycles/internal/core/domain/services"
	"ordercycles/internal/pkg/errs"

	"github.com/sirupsen/logrus"
)

// UpdateOrderCycleCommandHandler is the update engine. It locks the cycle,
// resolves the actor's scope from the current exchanges, filters the change
// set down to that scope and persists the result atomically.
//
// Outcomes:
//   - unknown cycle: *errs.ObjectNotFoundError
//   - actor without any scope on the cycle: *errs.AuthorizationError, nothing persisted
//   - invalid dates, name or exchange references: Success=false with field errors, nothing persisted
//   - otherwise Success=true; fields outside the actor's scope were silently ignored
type UpdateOrderCycleCommandHandler struct {
	uowFactory OrderCycleUoWFactory
	logger     logrus.FieldLogger
}

func NewUpdateOrderCycleCommandHandler(uowFactory OrderCycleUoWFactory, logger logrus.FieldLogger) UpdateOrderCycleCommandHandler {
	return UpdateOrderCycleCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.WithField("component", "update_order_cycle"),
	}
}

func (h UpdateOrderCycleCommandHandler) Handle(ctx context.Context, command UpdateOrderCycleCommand) (OrderCycleResult, error) {
	if err := command.Validate(); err != nil {
		return OrderCycleResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OrderCycleResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderCycleRepository()
	oc, err := repo.GetForUpdate(ctx, command.OrderCycleID())
	if err != nil {
		return OrderCycleResult{}, err
	}

	actor, err := loadActor(ctx, uow, command.ActorID(), "update order cycle")
	if err != nil {
		return OrderCycleResult{}, err
	}

	scope := services.NewScopeResolver().Resolve(actor.user, actor.managedIDs, oc)
	if scope.IsEmpty() {
		return OrderCycleResult{}, errs.NewAuthorizationError("update order cycle", MsgCannotUpdate)
	}

	fields, err := applyChanges(ctx, uow, scope, oc, command.Changes())
	if err != nil {
		return OrderCycleResult{}, err
	}
	if !fields.IsEmpty() {
		h.logger.WithFields(logrus.Fields{
			"order_cycle_id": oc.ID().String(),
			"errors":         fields.String(),
		}).Debug("order cycle update rejected")
		return failed(fields), nil
	}

	if err = repo.Update(ctx, oc); err != nil {
		return OrderCycleResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return OrderCycleResult{}, err
	}

	result := OrderCycleResult{Success: true, OrderCycleID: oc.ID()}
	if command.Reloading() {
		result.Notice = NoticeUpdated
	}
	return result, nil
}
