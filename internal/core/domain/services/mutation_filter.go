package services

import (
	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/ordercycle"
)

// MutationFilter projects a change set onto a scope. Fields outside the
// scope are dropped, never reported: partial permission degrades to a
// smaller, still valid mutation.
type MutationFilter struct{}

func NewMutationFilter() MutationFilter {
	return MutationFilter{}
}

// Filter returns the part of changes that scope allows on a cycle
// coordinated by coordinatorID. The input is not modified.
func (MutationFilter) Filter(scope Scope, coordinatorID kernel.UUID, changes ordercycle.ChangeSet) ordercycle.ChangeSet {
	var out ordercycle.ChangeSet
	if scope.CanEditCoreFields {
		out.Name = changes.Name
		out.OrdersOpenAt = changes.OrdersOpenAt
		out.OrdersCloseAt = changes.OrdersCloseAt
	}
	out.IncomingExchanges = filterEdits(scope, coordinatorID, true, changes.IncomingExchanges)
	out.OutgoingExchanges = filterEdits(scope, coordinatorID, false, changes.OutgoingExchanges)
	return out
}

// filterEdits keeps the nil/non-nil distinction of edits: an empty list
// still reaches the synchronizer as a supplied direction.
func filterEdits(scope Scope, coordinatorID kernel.UUID, incoming bool, edits []ordercycle.ExchangeEdit) []ordercycle.ExchangeEdit {
	if edits == nil {
		return nil
	}
	kept := make([]ordercycle.ExchangeEdit, 0, len(edits))
	for _, edit := range edits {
		if scope.CanEditEdge(edit.EdgeFor(coordinatorID, incoming)) {
			kept = append(kept, edit)
		}
	}
	return kept
}
