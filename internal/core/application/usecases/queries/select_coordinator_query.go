package queries

import (
	"errors"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/pkg/errs"
	"ordercycles/internal/pkg/guard"
)

var ErrSelectCoordinatorQueryIsNotConstructed = errors.New(
	"SelectCoordinatorQuery must be created via NewSelectCoordinatorQuery constructor",
)

// SelectCoordinatorQuery prepares the "new order cycle" screen: which
// enterprise will coordinate, or which ones the user has to choose from.
type SelectCoordinatorQuery struct {
	actorID       kernel.UUID
	coordinatorID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewSelectCoordinatorQuery builds the query. coordinatorID is the
// enterprise the user asked for, or nil.
func NewSelectCoordinatorQuery(actorID kernel.UUID, coordinatorID *kernel.UUID) (SelectCoordinatorQuery, error) {
	if err := actorID.Validate(); err != nil {
		return SelectCoordinatorQuery{}, errs.NewValueIsRequiredErrorWithCause("actor_id", err)
	}
	if coordinatorID != nil {
		if err := coordinatorID.Validate(); err != nil {
			return SelectCoordinatorQuery{}, errs.NewValueIsInvalidErrorWithCause("coordinator_id", err)
		}
	}

	return SelectCoordinatorQuery{
		actorID:       actorID,
		coordinatorID: coordinatorID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (q SelectCoordinatorQuery) ActorID() kernel.UUID { return q.actorID }
func (q SelectCoordinatorQuery) CoordinatorID() *kernel.UUID { return q.coordinatorID }

func (q SelectCoordinatorQuery) Validate() error {
	return q.guard.Validate(ErrSelectCoordinatorQueryIsNotConstructed)
}

// CoordinatorOption is an enterprise the user may pick as coordinator.
type CoordinatorOption struct {
	ID   kernel.UUID
	Name string
}

// SelectCoordinatorQueryResponse describes the coordinator choice.
// Coordinator is nil exactly when SelectionRequired is set.
type SelectCoordinatorQueryResponse struct {
	Coordinator       *CoordinatorOption
	Candidates        []CoordinatorOption
	SelectionRequired bool
}
