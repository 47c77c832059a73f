// Package queries contains the read operations behind the order cycle
// screens. Queries return read models shaped for the caller and never
// change state.
package queries

import (
	"errors"
	"time"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/pkg/errs"
	"ordercycles/internal/pkg/guard"
)

var ErrListOrderCyclesQueryIsNotConstructed = errors.New(
	"ListOrderCyclesQuery must be created via NewListOrderCyclesQuery constructor",
)

// ListOrderCyclesQuery lists the order cycles visible to a user.
//
// Cycles that closed before CloseAfter are hidden; cycles without a close
// date are always shown. A nil closeAfter means "the configured window back
// from now".
//
// Example:
//
//	query, err := NewListOrderCyclesQuery(userID, nil, nil)
//	if err != nil {
//	    return err
//	}
//	cycles, err := handler.Handle(ctx, query)
type ListOrderCyclesQuery struct {
	actorID    kernel.UUID
	closeAfter *time.Time
	idNotIn    []kernel.UUID

	guard guard.ConstructorGuard
}

func NewListOrderCyclesQuery(actorID kernel.UUID, closeAfter *time.Time, idNotIn []kernel.UUID) (ListOrderCyclesQuery, error) {
	if err := actorID.Validate(); err != nil {
		return ListOrderCyclesQuery{}, errs.NewValueIsRequiredErrorWithCause("actor_id", err)
	}
	for _, id := range idNotIn {
		if err := id.Validate(); err != nil {
			return ListOrderCyclesQuery{}, errs.NewValueIsInvalidErrorWithCause("id_not_in", err)
		}
	}

	var after *time.Time
	if closeAfter != nil {
		t := closeAfter.UTC()
		after = &t
	}

	return ListOrderCyclesQuery{
		actorID:    actorID,
		closeAfter: after,
		idNotIn:    append([]kernel.UUID(nil), idNotIn...),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrderCyclesQuery) ActorID() kernel.UUID { return q.actorID }
func (q ListOrderCyclesQuery) CloseAfter() *time.Time { return q.closeAfter }
func (q ListOrderCyclesQuery) IDNotIn() []kernel.UUID { return q.idNotIn }

func (q ListOrderCyclesQuery) Validate() error {
	return q.guard.Validate(ErrListOrderCyclesQueryIsNotConstructed)
}

// ListOrderCyclesQueryResponse is one row of the order cycle list.
type ListOrderCyclesQueryResponse struct {
	ID              kernel.UUID
	Name            string
	OrdersOpenAt    *time.Time
	OrdersCloseAt   *time.Time
	CoordinatorID   kernel.UUID
	CoordinatorName string
	// Editable is true when the user may change name and dates, that is when
	// they manage the coordinator or are an admin.
	Editable bool
}
