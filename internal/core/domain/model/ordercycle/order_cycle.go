package ordercycle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/pkg/errs"
	"ordercycles/internal/pkg/guard"
)

// Field names used in validation errors.
const (
	FieldName          = "name"
	FieldOrdersOpenAt  = "orders_open_at"
	FieldOrdersCloseAt = "orders_close_at"
)

// Validation messages.
const (
	MsgBlank          = "can't be blank"
	MsgCloseAfterOpen = "must be after open date"
)

var (
	// ErrOrderCycleIsNotConstructed is returned when using a zero-value OrderCycle.
	ErrOrderCycleIsNotConstructed = errors.New("OrderCycle must be created via NewOrderCycle or RestoreOrderCycle")
	// ErrExchangeAlreadyExists is returned when adding a second exchange for the same participant and direction.
	ErrExchangeAlreadyExists = errors.New("exchange already exists")
	// ErrExchangeDetached is returned when an exchange does not touch the coordinator the right way.
	ErrExchangeDetached = errors.New("exchange is not attached to the coordinator")
)

// OrderCycle is the aggregate root: a named ordering window coordinated by
// one enterprise together with its exchanges.
type OrderCycle struct {
	id            kernel.UUID
	name          string
	ordersOpenAt  *time.Time
	ordersCloseAt *time.Time
	coordinatorID kernel.UUID
	exchanges     []*Exchange
	guard         guard.ConstructorGuard
}

// NewOrderCycle creates an order cycle without exchanges.
//
// Invalid name or dates are reported as an *errs.ValidationError keyed by
// field, so callers can hand the messages back to the user:
//
//	oc, err := ordercycle.NewOrderCycle(kernel.NewUUID(), "Week 12", hub.ID(), &open, &close)
//	var vErr *errs.ValidationError
//	if errors.As(err, &vErr) {
//	    // vErr.Fields["orders_close_at"] == []string{"must be after open date"}
//	}
func NewOrderCycle(id kernel.UUID, name string, coordinatorID kernel.UUID, ordersOpenAt, ordersCloseAt *time.Time) (*OrderCycle, error) {
	if err := errors.Join(
		wrapID("id", id),
		wrapID("coordinator_id", coordinatorID),
	); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	openAt, closeAt := utc(ordersOpenAt), utc(ordersCloseAt)
	if fields := validateDetails(name, openAt, closeAt); !fields.IsEmpty() {
		return nil, errs.NewValidationError(fields)
	}

	return &OrderCycle{
		id:            id,
		name:          name,
		ordersOpenAt:  openAt,
		ordersCloseAt: closeAt,
		coordinatorID: coordinatorID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrderCycle rebuilds an order cycle and its exchanges from storage.
// Stored rows are trusted for the temporal invariant but exchanges are
// still checked against the coordinator.
func RestoreOrderCycle(
	id kernel.UUID,
	name string,
	coordinatorID kernel.UUID,
	ordersOpenAt, ordersCloseAt *time.Time,
	exchanges []*Exchange,
) (*OrderCycle, error) {
	if err := errors.Join(
		wrapID("id", id),
		wrapID("coordinator_id", coordinatorID),
	); err != nil {
		return nil, err
	}

	oc := &OrderCycle{
		id:            id,
		name:          name,
		ordersOpenAt:  utc(ordersOpenAt),
		ordersCloseAt: utc(ordersCloseAt),
		coordinatorID: coordinatorID,
		guard:         guard.NewConstructorGuard(),
	}
	for _, ex := range exchanges {
		if err := oc.AddExchange(ex); err != nil {
			return nil, err
		}
	}
	return oc, nil
}

func (o *OrderCycle) Validate() error {
	if o == nil {
		return ErrOrderCycleIsNotConstructed
	}
	return o.guard.Validate(ErrOrderCycleIsNotConstructed)
}

func (o *OrderCycle) ID() kernel.UUID { return o.id }
func (o *OrderCycle) Name() string { return o.name }
func (o *OrderCycle) OrdersOpenAt() *time.Time { return o.ordersOpenAt }
func (o *OrderCycle) OrdersCloseAt() *time.Time { return o.ordersCloseAt }
func (o *OrderCycle) CoordinatorID() kernel.UUID { return o.coordinatorID }

// IsCoordinatedBy reports whether enterpriseID coordinates the cycle.
func (o *OrderCycle) IsCoordinatedBy(enterpriseID kernel.UUID) bool {
	return o.coordinatorID.IsEqual(enterpriseID)
}

// ChangeDetails applies name and date changes. Absent values keep their
// current state. If the result would be invalid nothing is changed and
// the offending fields are returned.
func (o *OrderCycle) ChangeDetails(name *string, openAt, closeAt OptionalTime) errs.FieldErrors {
	newName := o.name
	if name != nil {
		newName = strings.TrimSpace(*name)
	}
	newOpen := openAt.resolve(o.ordersOpenAt)
	newClose := closeAt.resolve(o.ordersCloseAt)

	if fields := validateDetails(newName, newOpen, newClose); !fields.IsEmpty() {
		return fields
	}

	o.name = newName
	o.ordersOpenAt = newOpen
	o.ordersCloseAt = newClose
	return nil
}

// Exchanges returns all exchanges, incoming first.
func (o *OrderCycle) Exchanges() []*Exchange {
	out := make([]*Exchange, 0, len(o.exchanges))
	out = append(out, o.IncomingExchanges()...)
	return append(out, o.OutgoingExchanges()...)
}

func (o *OrderCycle) IncomingExchanges() []*Exchange {
	return o.exchangesOf(true)
}

func (o *OrderCycle) OutgoingExchanges() []*Exchange {
	return o.exchangesOf(false)
}

func (o *OrderCycle) exchangesOf(incoming bool) []*Exchange {
	var out []*Exchange
	for _, ex := range o.exchanges {
		if ex.incoming == incoming {
			out = append(out, ex)
		}
	}
	return out
}

// ExchangeFor finds the exchange of the given direction with enterpriseID as participant.
func (o *OrderCycle) ExchangeFor(incoming bool, enterpriseID kernel.UUID) *Exchange {
	for _, ex := range o.exchanges {
		if ex.incoming == incoming && ex.Participant().IsEqual(enterpriseID) {
			return ex
		}
	}
	return nil
}

// Suppliers returns the enterprises sending goods into the cycle.
func (o *OrderCycle) Suppliers() []kernel.UUID {
	set := kernel.NewUUIDSet()
	for _, ex := range o.IncomingExchanges() {
		set[ex.senderID] = struct{}{}
	}
	return set.Slice()
}

// IncomingVariantIDs is the set of variants supplied into the cycle.
func (o *OrderCycle) IncomingVariantIDs() kernel.UUIDSet {
	set := kernel.NewUUIDSet()
	for _, ex := range o.IncomingExchanges() {
		for id := range ex.variantIDs {
			set[id] = struct{}{}
		}
	}
	return set
}

// AddExchange attaches ex to the cycle.
func (o *OrderCycle) AddExchange(ex *Exchange) error {
	if err := ex.Validate(); err != nil {
		return err
	}
	if !ex.orderCycleID.IsEqual(o.id) {
		return errs.NewValueIsInvalidErrorWithCause("exchange",
			fmt.Errorf("exchange %s belongs to order cycle %s", ex.id, ex.orderCycleID))
	}
	if ex.incoming && !ex.receiverID.IsEqual(o.coordinatorID) ||
		!ex.incoming && !ex.senderID.IsEqual(o.coordinatorID) {
		return fmt.Errorf("%w: %s", ErrExchangeDetached, ex.Edge())
	}
	if o.ExchangeFor(ex.incoming, ex.Participant()) != nil {
		return fmt.Errorf("%w: %s", ErrExchangeAlreadyExists, ex.Edge())
	}

	o.exchanges = append(o.exchanges, ex)
	return nil
}

// RemoveExchange detaches the exchange with the given id and reports whether it existed.
func (o *OrderCycle) RemoveExchange(id kernel.UUID) bool {
	for i, ex := range o.exchanges {
		if ex.id.IsEqual(id) {
			o.exchanges = append(o.exchanges[:i], o.exchanges[i+1:]...)
			return true
		}
	}
	return false
}

// ExchangeIDs returns the ids of all exchanges, sorted.
func (o *OrderCycle) ExchangeIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(o.exchanges))
	for _, ex := range o.exchanges {
		ids = append(ids, ex.id)
	}
	kernel.SortUUIDs(ids)
	return ids
}

func validateDetails(name string, openAt, closeAt *time.Time) errs.FieldErrors {
	var fields errs.FieldErrors
	if name == "" {
		fields.Add(FieldName, MsgBlank)
	}
	if openAt != nil && closeAt != nil && closeAt.Before(*openAt) {
		fields.Add(FieldOrdersCloseAt, MsgCloseAfterOpen)
	}
	return fields
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
