package ordercycle

import (
	"errors"
	"fmt"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/pkg/errs"
	"ordercycles/internal/pkg/guard"
)

// ErrExchangeIsNotConstructed is returned when using a zero-value Exchange.
var ErrExchangeIsNotConstructed = errors.New("Exchange must be created via NewIncomingExchange, NewOutgoingExchange or RestoreExchange")

// Exchange is one leg of an order cycle: goods flowing from sender to
// receiver, restricted to a set of variants.
//
// Incoming exchanges may carry receival instructions for the coordinator.
// Outgoing exchanges may carry a pickup time and pickup instructions shown
// to customers of the receiving hub.
type Exchange struct {
	id           kernel.UUID
	orderCycleID kernel.UUID
	senderID     kernel.UUID
	receiverID   kernel.UUID
	incoming     bool
	variantIDs   kernel.UUIDSet

	receivalInstructions string
	pickupTime           string
	pickupInstructions   string

	guard guard.ConstructorGuard
}

// NewIncomingExchange creates an empty supply leg from supplierID to the coordinator.
func NewIncomingExchange(id, orderCycleID, supplierID, coordinatorID kernel.UUID) (*Exchange, error) {
	return newExchange(id, orderCycleID, supplierID, coordinatorID, true)
}

// NewOutgoingExchange creates an empty distribution leg from the coordinator to distributorID.
func NewOutgoingExchange(id, orderCycleID, coordinatorID, distributorID kernel.UUID) (*Exchange, error) {
	return newExchange(id, orderCycleID, coordinatorID, distributorID, false)
}

// RestoreExchange rebuilds an exchange loaded from storage.
func RestoreExchange(
	id, orderCycleID, senderID, receiverID kernel.UUID,
	incoming bool,
	variantIDs []kernel.UUID,
	receivalInstructions, pickupTime, pickupInstructions string,
) (*Exchange, error) {
	ex, err := newExchange(id, orderCycleID, senderID, receiverID, incoming)
	if err != nil {
		return nil, err
	}

	for _, variantID := range variantIDs {
		if err = variantID.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("variant_id", err)
		}
		ex.variantIDs[variantID] = struct{}{}
	}
	ex.receivalInstructions = receivalInstructions
	ex.pickupTime = pickupTime
	ex.pickupInstructions = pickupInstructions
	return ex, nil
}

func newExchange(id, orderCycleID, senderID, receiverID kernel.UUID, incoming bool) (*Exchange, error) {
	if err := errors.Join(
		wrapID("id", id),
		wrapID("order_cycle_id", orderCycleID),
		wrapID("sender_id", senderID),
		wrapID("receiver_id", receiverID),
	); err != nil {
		return nil, err
	}

	return &Exchange{
		id:           id,
		orderCycleID: orderCycleID,
		senderID:     senderID,
		receiverID:   receiverID,
		incoming:     incoming,
		variantIDs:   kernel.NewUUIDSet(),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func wrapID(param string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(param, err)
	}
	return nil
}

func (e *Exchange) Validate() error {
	if e == nil {
		return ErrExchangeIsNotConstructed
	}
	return e.guard.Validate(ErrExchangeIsNotConstructed)
}

func (e *Exchange) ID() kernel.UUID { return e.id }
func (e *Exchange) OrderCycleID() kernel.UUID { return e.orderCycleID }
func (e *Exchange) SenderID() kernel.UUID { return e.senderID }
func (e *Exchange) ReceiverID() kernel.UUID { return e.receiverID }
func (e *Exchange) IsIncoming() bool { return e.incoming }

func (e *Exchange) ReceivalInstructions() string { return e.receivalInstructions }
func (e *Exchange) PickupTime() string { return e.pickupTime }
func (e *Exchange) PickupInstructions() string { return e.pickupInstructions }

// Edge returns the sender→receiver pair of the exchange.
func (e *Exchange) Edge() Edge {
	return Edge{Sender: e.senderID, Receiver: e.receiverID}
}

// Participant is the enterprise on the far side from the coordinator: the
// supplier of an incoming exchange or the distributor of an outgoing one.
func (e *Exchange) Participant() kernel.UUID {
	if e.incoming {
		return e.senderID
	}
	return e.receiverID
}

// VariantIDs returns the exchanged variants in stable order.
func (e *Exchange) VariantIDs() []kernel.UUID {
	return e.variantIDs.Slice()
}

func (e *Exchange) HasVariant(id kernel.UUID) bool {
	return e.variantIDs.Contains(id)
}

// SetVariant adds or removes a variant and reports whether the set changed.
func (e *Exchange) SetVariant(id kernel.UUID, include bool) bool {
	has := e.variantIDs.Contains(id)
	switch {
	case include && !has:
		e.variantIDs[id] = struct{}{}
		return true
	case !include && has:
		delete(e.variantIDs, id)
		return true
	}
	return false
}

// SetReceivalInstructions applies to incoming exchanges only.
func (e *Exchange) SetReceivalInstructions(text string) error {
	if !e.incoming {
		return errs.NewValueIsInvalidErrorWithCause("receival_instructions",
			fmt.Errorf("exchange %s is outgoing", e.id))
	}
	e.receivalInstructions = text
	return nil
}

// SetPickup applies to outgoing exchanges only. Nil arguments leave the
// corresponding value unchanged.
func (e *Exchange) SetPickup(pickupTime, pickupInstructions *string) error {
	if e.incoming {
		return errs.NewValueIsInvalidErrorWithCause("pickup_time",
			fmt.Errorf("exchange %s is incoming", e.id))
	}
	if pickupTime != nil {
		e.pickupTime = *pickupTime
	}
	if pickupInstructions != nil {
		e.pickupInstructions = *pickupInstructions
	}
	return nil
}
