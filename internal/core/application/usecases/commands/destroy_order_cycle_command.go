package commands

import (
	"errors"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/pkg/errs"
	"ordercycles/internal/pkg/guard"
)

var ErrDestroyOrderCycleCommandIsNotConstructed = errors.New(
	"DestroyOrderCycleCommand must be created via NewDestroyOrderCycleCommand constructor",
)

// DestroyOrderCycleCommand asks to delete an order cycle.
type DestroyOrderCycleCommand struct { //nolint:recvcheck //using for validation
	actorID      kernel.UUID
	orderCycleID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDestroyOrderCycleCommand(actorID, orderCycleID kernel.UUID) (DestroyOrderCycleCommand, error) {
	if err := errors.Join(
		wrapRequired("actor_id", actorID),
		wrapRequired("order_cycle_id", orderCycleID),
	); err != nil {
		return DestroyOrderCycleCommand{}, err
	}

	return DestroyOrderCycleCommand{
		actorID:      actorID,
		orderCycleID: orderCycleID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c DestroyOrderCycleCommand) Validate() error {
	return c.guard.Validate(ErrDestroyOrderCycleCommandIsNotConstructed)
}

func (c DestroyOrderCycleCommand) ActorID() kernel.UUID { return c.actorID }
func (c DestroyOrderCycleCommand) OrderCycleID() kernel.UUID { return c.orderCycleID }

func wrapRequired(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}
