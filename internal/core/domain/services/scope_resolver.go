package services

import (
	"ordercycles/internal/core/domain/model/enterprise"
	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/ordercycle"
	"ordercycles/internal/pkg/errs"
)

// User facing messages for coordinator selection.
const (
	MsgCoordinatorNotPermitted = "You don't have permission to create an order cycle coordinated by that enterprise"
	MsgNoCoordinatorAvailable  = "None of the enterprises you manage can coordinate an order cycle"
)

// Scope is what an actor may change on one order cycle.
type Scope struct {
	// CanEditCoreFields allows changing name and dates.
	CanEditCoreFields bool
	// AllEdges allows editing every exchange, including creating new ones.
	AllEdges bool
	// EditableEdges lists the exchanges editable when AllEdges is false.
	EditableEdges map[ordercycle.Edge]struct{}
}

// FullScope is the scope of the coordinator's managers and admins.
func FullScope() Scope {
	return Scope{CanEditCoreFields: true, AllEdges: true}
}

// IsEmpty reports whether the actor may change nothing at all.
func (s Scope) IsEmpty() bool {
	return !s.CanEditCoreFields && !s.AllEdges && len(s.EditableEdges) == 0
}

// CanEditEdge reports whether the exchange along edge may be edited.
func (s Scope) CanEditEdge(edge ordercycle.Edge) bool {
	if s.AllEdges {
		return true
	}
	_, ok := s.EditableEdges[edge]
	return ok
}

// ScopeResolver derives an actor's scope from the current exchanges of a
// cycle. Nothing about roles is stored, so a scope is always recomputed.
type ScopeResolver struct{}

func NewScopeResolver() ScopeResolver {
	return ScopeResolver{}
}

// Resolve computes the scope of user on oc, given the enterprises the user manages.
//
// Managers of the coordinator and admins get FullScope. Managers of a
// supplier get that supplier's incoming exchange, managers of a hub get the
// hub's outgoing exchange. Anyone else gets an empty scope.
func (ScopeResolver) Resolve(user *enterprise.User, managed kernel.UUIDSet, oc *ordercycle.OrderCycle) Scope {
	if user.IsAdmin() || managed.Contains(oc.CoordinatorID()) {
		return FullScope()
	}

	var scope Scope
	for _, ex := range oc.Exchanges() {
		if !managed.Contains(ex.Participant()) {
			continue
		}
		if scope.EditableEdges == nil {
			scope.EditableEdges = make(map[ordercycle.Edge]struct{})
		}
		scope.EditableEdges[ex.Edge()] = struct{}{}
	}
	return scope
}

// CoordinatorChoice is the outcome of choosing a coordinator for a new cycle.
type CoordinatorChoice struct {
	// Coordinator is set when the choice is settled.
	Coordinator *enterprise.Enterprise
	// Candidates are the enterprises the user may pick from.
	Candidates []*enterprise.Enterprise
	// SelectionRequired means the user must pick one of Candidates.
	SelectionRequired bool
}

// ResolveCoordinator decides which enterprise coordinates a new order cycle.
// Only managed distributors are eligible. A requested coordinator outside
// that set is refused with an *errs.AuthorizationError.
func (ScopeResolver) ResolveCoordinator(managed []*enterprise.Enterprise, requested *kernel.UUID) (CoordinatorChoice, error) {
	var eligible []*enterprise.Enterprise
	for _, e := range managed {
		if e.CanCoordinate() {
			eligible = append(eligible, e)
		}
	}

	if requested != nil {
		for _, e := range eligible {
			if e.ID().IsEqual(*requested) {
				return CoordinatorChoice{Coordinator: e, Candidates: eligible}, nil
			}
		}
		return CoordinatorChoice{Candidates: eligible, SelectionRequired: len(eligible) > 0},
			errs.NewAuthorizationError("create order cycle", MsgCoordinatorNotPermitted)
	}

	switch len(eligible) {
	case 0:
		return CoordinatorChoice{}, errs.NewAuthorizationError("create order cycle", MsgNoCoordinatorAvailable)
	case 1:
		return CoordinatorChoice{Coordinator: eligible[0], Candidates: eligible}, nil
	default:
		return CoordinatorChoice{Candidates: eligible, SelectionRequired: true}, nil
	}
}
