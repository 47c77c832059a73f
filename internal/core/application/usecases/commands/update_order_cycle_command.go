package commands

import (
	"errors"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/ordercycle"
	"ordercycles/internal/pkg/errs"
	"ordercycles/internal/pkg/guard"
)

var ErrUpdateOrderCycleCommandIsNotConstructed = errors.New(
	"UpdateOrderCycleCommand must be created via NewUpdateOrderCycleCommand constructor",
)

// UpdateOrderCycleCommand asks to change one order cycle on behalf of an actor.
//
// Reloading is set by full-page forms that expect a confirmation notice;
// inline editors leave it unset and get no notice.
//
//	cmd, err := NewUpdateOrderCycleCommand(actorID, ocID, ordercycle.ChangeSet{
//	    Name: &name,
//	}, true)
type UpdateOrderCycleCommand struct { //nolint:recvcheck //using for validation
	actorID      kernel.UUID
	orderCycleID kernel.UUID
	changes      ordercycle.ChangeSet
	reloading    bool

	guard guard.ConstructorGuard
}

func NewUpdateOrderCycleCommand(
	actorID, orderCycleID kernel.UUID,
	changes ordercycle.ChangeSet,
	reloading bool,
) (UpdateOrderCycleCommand, error) {
	cmd := UpdateOrderCycleCommand{
		changes:   changes,
		reloading: reloading,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActorID(actorID),
		cmd.setOrderCycleID(orderCycleID),
	); err != nil {
		return UpdateOrderCycleCommand{}, err
	}
	return cmd, nil
}

func (c UpdateOrderCycleCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCycleCommandIsNotConstructed)
}

func (c UpdateOrderCycleCommand) ActorID() kernel.UUID { return c.actorID }
func (c UpdateOrderCycleCommand) OrderCycleID() kernel.UUID { return c.orderCycleID }
func (c UpdateOrderCycleCommand) Changes() ordercycle.ChangeSet { return c.changes }
func (c UpdateOrderCycleCommand) Reloading() bool { return c.reloading }

func (c *UpdateOrderCycleCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor_id", err)
	}
	c.actorID = id
	return nil
}

func (c *UpdateOrderCycleCommand) setOrderCycleID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order_cycle_id", err)
	}
	c.orderCycleID = id
	return nil
}
