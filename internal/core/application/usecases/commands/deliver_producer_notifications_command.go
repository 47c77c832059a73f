package commands

import (
	"errors"

	"ordercycles/internal/pkg/errs"
	"ordercycles/internal/pkg/guard"
)

var ErrDeliverProducerNotificationsCommandIsNotConstructed = errors.New(
	"DeliverProducerNotificationsCommand must be created via NewDeliverProducerNotificationsCommand constructor",
)

// DeliverProducerNotificationsCommand processes up to BatchSize queued jobs.
type DeliverProducerNotificationsCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

func NewDeliverProducerNotificationsCommand(batchSize int) (DeliverProducerNotificationsCommand, error) {
	if batchSize <= 0 {
		return DeliverProducerNotificationsCommand{}, errs.NewValueIsOutOfRangeError("batch_size", batchSize, 1, "unbounded")
	}
	return DeliverProducerNotificationsCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DeliverProducerNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDeliverProducerNotificationsCommandIsNotConstructed)
}

func (c DeliverProducerNotificationsCommand) BatchSize() int { return c.batchSize }
