package commands

import (
	"context"
	"errors"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/ordercycle"
	"ordercycles/internal/core/domain/services"
	"ordercycles/internal/pkg/errs"

	"github.com/sirupsen/logrus"
)

// FieldCoordinatorID is the field coordinator selection errors are reported on.
const FieldCoordinatorID = "coordinator_id"

// CreateOrderCycleCommandHandler opens a new order cycle. The coordinator is
// chosen among the distributors the actor manages; the actor then has full
// scope on the new cycle and may set up its exchanges in the same request.
type CreateOrderCycleCommandHandler struct {
	uowFactory OrderCycleUoWFactory
	logger     logrus.FieldLogger
}

func NewCreateOrderCycleCommandHandler(uowFactory OrderCycleUoWFactory, logger logrus.FieldLogger) CreateOrderCycleCommandHandler {
	return CreateOrderCycleCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.WithField("component", "create_order_cycle"),
	}
}

func (h CreateOrderCycleCommandHandler) Handle(ctx context.Context, command CreateOrderCycleCommand) (OrderCycleResult, error) {
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

	actor, err := loadActor(ctx, uow, command.ActorID(), "create order cycle")
	if err != nil {
		return OrderCycleResult{}, err
	}

	choice, err := services.NewScopeResolver().ResolveCoordinator(actor.managed, command.CoordinatorID())
	if err != nil {
		return OrderCycleResult{}, err
	}
	if choice.SelectionRequired {
		return failed(errs.FieldErrors{FieldCoordinatorID: {ordercycle.MsgBlank}}), nil
	}

	oc, err := ordercycle.NewOrderCycle(
		kernel.NewUUID(),
		command.Name(),
		choice.Coordinator.ID(),
		command.OrdersOpenAt(),
		command.OrdersCloseAt(),
	)
	var vErr *errs.ValidationError
	if errors.As(err, &vErr) {
		return failed(vErr.Fields), nil
	}
	if err != nil {
		return OrderCycleResult{}, err
	}

	fields, err := applyChanges(ctx, uow, services.FullScope(), oc, command.ExchangeChanges())
	if err != nil {
		return OrderCycleResult{}, err
	}
	if !fields.IsEmpty() {
		return failed(fields), nil
	}

	if err = uow.OrderCycleRepository().Add(ctx, oc); err != nil {
		return OrderCycleResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return OrderCycleResult{}, err
	}

	h.logger.WithFields(logrus.Fields{
		"order_cycle_id": oc.ID().String(),
		"coordinator_id": oc.CoordinatorID().String(),
	}).Info("order cycle created")

	return OrderCycleResult{Success: true, Notice: NoticeCreated, OrderCycleID: oc.ID()}, nil
}
