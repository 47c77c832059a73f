package ordercycle

import (
	"time"

	"ordercycles/internal/core/domain/model/kernel"
)

// OptionalTime is a timestamp field of a change set. Set=false means the
// field was not supplied; Set=true with a nil Value means it was cleared.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// SetTime returns an OptionalTime assigning t.
func SetTime(t time.Time) OptionalTime {
	return OptionalTime{Set: true, Value: &t}
}

// ClearTime returns an OptionalTime assigning null.
func ClearTime() OptionalTime {
	return OptionalTime{Set: true}
}

// resolve returns the value after applying o over current.
func (o OptionalTime) resolve(current *time.Time) *time.Time {
	if !o.Set {
		return current
	}
	if o.Value == nil {
		return nil
	}
	v := o.Value.UTC()
	return &v
}

// ExchangeEdit describes the desired state of one exchange, identified by
// the participating enterprise. Variants maps variant ids to whether they
// should be part of the exchange; variants not mentioned are left alone.
type ExchangeEdit struct {
	EnterpriseID         kernel.UUID
	Variants             map[kernel.UUID]bool
	ReceivalInstructions *string
	PickupTime           *string
	PickupInstructions   *string
}

// ChangeSet is a requested mutation of an order cycle.
//
// A nil exchange list leaves that direction untouched. A non-nil list is the
// complete desired set of exchanges of that direction the actor may edit:
// editable exchanges missing from it are removed.
type ChangeSet struct {
	Name              *string
	OrdersOpenAt      OptionalTime
	OrdersCloseAt     OptionalTime
	IncomingExchanges []ExchangeEdit
	OutgoingExchanges []ExchangeEdit
}

// HasCoreFields reports whether the change set touches name or dates.
func (c ChangeSet) HasCoreFields() bool {
	return c.Name != nil || c.OrdersOpenAt.Set || c.OrdersCloseAt.Set
}

// HasExchangeEdits reports whether either exchange direction is supplied.
func (c ChangeSet) HasExchangeEdits() bool {
	return c.IncomingExchanges != nil || c.OutgoingExchanges != nil
}

func (c ChangeSet) IsEmpty() bool {
	return !c.HasCoreFields() && !c.HasExchangeEdits()
}

// EdgeFor returns the edge an edit targets in a cycle coordinated by coordinatorID.
func (e ExchangeEdit) EdgeFor(coordinatorID kernel.UUID, incoming bool) Edge {
	if incoming {
		return IncomingEdge(e.EnterpriseID, coordinatorID)
	}
	return OutgoingEdge(coordinatorID, e.EnterpriseID)
}
