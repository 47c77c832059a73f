package commands

import (
	"errors"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/pkg/guard"
)

var ErrNotifyProducersCommandIsNotConstructed = errors.New(
	"NotifyProducersCommand must be created via NewNotifyProducersCommand constructor",
)

// NotifyProducersCommand asks to email every producer of an order cycle.
type NotifyProducersCommand struct { //nolint:recvcheck //using for validation
	actorID      kernel.UUID
	orderCycleID kernel.UUID

	guard guard.ConstructorGuard
}

func NewNotifyProducersCommand(actorID, orderCycleID kernel.UUID) (NotifyProducersCommand, error) {
	if err := errors.Join(
		wrapRequired("actor_id", actorID),
		wrapRequired("order_cycle_id", orderCycleID),
	); err != nil {
		return NotifyProducersCommand{}, err
	}

	return NotifyProducersCommand{
		actorID:      actorID,
		orderCycleID: orderCycleID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c NotifyProducersCommand) Validate() error {
	return c.guard.Validate(ErrNotifyProducersCommandIsNotConstructed)
}

func (c NotifyProducersCommand) ActorID() kernel.UUID { return c.actorID }
func (c NotifyProducersCommand) OrderCycleID() kernel.UUID { return c.orderCycleID }
