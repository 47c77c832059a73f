package commands

import (
	"errors"
	"time"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/ordercycle"
	"ordercycles/internal/pkg/errs"
	"ordercycles/internal/pkg/guard"
)

var ErrCreateOrderCycleCommandIsNotConstructed = errors.New(
	"CreateOrderCycleCommand must be created via NewCreateOrderCycleCommand constructor",
)

// CreateOrderCycleCommand asks to open a new order cycle. CoordinatorID is
// optional: a user managing exactly one distributor gets it pre-filled.
// Name and dates are validated by the handler so problems come back as
// field errors.
type CreateOrderCycleCommand struct { //nolint:recvcheck //using for validation
	actorID           kernel.UUID
	coordinatorID     *kernel.UUID
	name              string
	ordersOpenAt      *time.Time
	ordersCloseAt     *time.Time
	incomingExchanges []ordercycle.ExchangeEdit
	outgoingExchanges []ordercycle.ExchangeEdit

	guard guard.ConstructorGuard
}

func NewCreateOrderCycleCommand(
	actorID kernel.UUID,
	coordinatorID *kernel.UUID,
	name string,
	ordersOpenAt, ordersCloseAt *time.Time,
	incomingExchanges, outgoingExchanges []ordercycle.ExchangeEdit,
) (CreateOrderCycleCommand, error) {
	if err := actorID.Validate(); err != nil {
		return CreateOrderCycleCommand{}, errs.NewValueIsRequiredErrorWithCause("actor_id", err)
	}
	if coordinatorID != nil {
		if err := coordinatorID.Validate(); err != nil {
			return CreateOrderCycleCommand{}, errs.NewValueIsInvalidErrorWithCause("coordinator_id", err)
		}
	}

	return CreateOrderCycleCommand{
		actorID:           actorID,
		coordinatorID:     coordinatorID,
		name:              name,
		ordersOpenAt:      ordersOpenAt,
		ordersCloseAt:     ordersCloseAt,
		incomingExchanges: incomingExchanges,
		outgoingExchanges: outgoingExchanges,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCycleCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCycleCommandIsNotConstructed)
}

func (c CreateOrderCycleCommand) ActorID() kernel.UUID { return c.actorID }
func (c CreateOrderCycleCommand) CoordinatorID() *kernel.UUID { return c.coordinatorID }
func (c CreateOrderCycleCommand) Name() string { return c.name }
func (c CreateOrderCycleCommand) OrdersOpenAt() *time.Time { return c.ordersOpenAt }
func (c CreateOrderCycleCommand) OrdersCloseAt() *time.Time { return c.ordersCloseAt }

// ExchangeChanges returns the exchange edits as a change set for the new cycle.
func (c CreateOrderCycleCommand) ExchangeChanges() ordercycle.ChangeSet {
	return ordercycle.ChangeSet{
		IncomingExchanges: c.incomingExchanges,
		OutgoingExchanges: c.outgoingExchanges,
	}
}
