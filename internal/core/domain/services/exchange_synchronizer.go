package services

import (
	"fmt"

	"ordercycles/internal/core/domain/model/catalog"
	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/ordercycle"
	"ordercycles/internal/pkg/errs"
)

// Field prefixes for exchange edit errors, suffixed with the edit index.
const (
	FieldIncomingExchanges = "incoming_exchanges"
	FieldOutgoingExchanges = "outgoing_exchanges"
)

// ExchangeReferences holds the records an exchange edit may point at,
// loaded by the caller for the ids in the change set.
type ExchangeReferences struct {
	Enterprises kernel.UUIDSet
	Variants    map[kernel.UUID]*catalog.Variant
}

// ExchangeSynchronizer applies exchange edits to an order cycle.
//
// For each supplied direction the edit list is the desired set of editable
// exchanges: unknown enterprises get a new exchange and known ones have their
// variants and instructions updated. Exchanges missing from the list are
// removed only for an actor with AllEdges; suppliers and hubs can edit their
// own exchange but never drop it. Exchanges outside the scope are never
// touched.
//
// Outgoing exchanges carry only variants supplied into the cycle. When
// incoming edits withdraw a variant it is removed from every outgoing
// exchange the actor may edit; if an outgoing exchange outside the scope
// still carries it, the incoming edit is rejected.
type ExchangeSynchronizer struct{}

func NewExchangeSynchronizer() ExchangeSynchronizer {
	return ExchangeSynchronizer{}
}

// Sync validates every edit first and only mutates oc when all of them are
// valid. Incoming variants must be supplied by the sending enterprise;
// outgoing variants must arrive on an incoming exchange once the incoming
// edits are applied.
func (ExchangeSynchronizer) Sync(
	oc *ordercycle.OrderCycle,
	scope Scope,
	changes ordercycle.ChangeSet,
	refs ExchangeReferences,
) errs.FieldErrors {
	fields := validateEdits(oc, scope, changes, refs)
	if !fields.IsEmpty() {
		return fields
	}

	if err := applyEdits(oc, scope, true, changes.IncomingExchanges); err != nil {
		fields.Add(FieldIncomingExchanges, err.Error())
		return fields
	}
	if err := applyEdits(oc, scope, false, changes.OutgoingExchanges); err != nil {
		fields.Add(FieldOutgoingExchanges, err.Error())
		return fields
	}
	if changes.IncomingExchanges != nil {
		pruneUnsupplied(oc, scope)
	}
	return nil
}

// ReferencedIDs lists the enterprises and variants a change set points at,
// so callers know what to load into ExchangeReferences.
func ReferencedIDs(changes ordercycle.ChangeSet) (enterpriseIDs, variantIDs []kernel.UUID) {
	enterprises, variants := kernel.NewUUIDSet(), kernel.NewUUIDSet()
	for _, edits := range [][]ordercycle.ExchangeEdit{changes.IncomingExchanges, changes.OutgoingExchanges} {
		for _, edit := range edits {
			enterprises[edit.EnterpriseID] = struct{}{}
			for id := range edit.Variants {
				variants[id] = struct{}{}
			}
		}
	}
	return enterprises.Slice(), variants.Slice()
}

func validateEdits(oc *ordercycle.OrderCycle, scope Scope, changes ordercycle.ChangeSet, refs ExchangeReferences) errs.FieldErrors {
	var fields errs.FieldErrors

	supplied := projectedIncomingVariants(oc, scope, changes.IncomingExchanges)
	validateList(&fields, oc, scope, true, changes.IncomingExchanges, refs, nil)
	validateList(&fields, oc, scope, false, changes.OutgoingExchanges, refs, supplied)
	validateWithdrawals(&fields, oc, scope, changes.IncomingExchanges, supplied)
	return fields
}

// validateWithdrawals rejects incoming edits that withdraw a variant still
// distributed through an outgoing exchange the actor cannot edit.
func validateWithdrawals(
	fields *errs.FieldErrors,
	oc *ordercycle.OrderCycle,
	scope Scope,
	edits []ordercycle.ExchangeEdit,
	supplied kernel.UUIDSet,
) {
	for i, edit := range edits {
		if !scope.CanEditEdge(edit.EdgeFor(oc.CoordinatorID(), true)) {
			continue
		}
		current := oc.ExchangeFor(true, edit.EnterpriseID)
		if current == nil {
			continue
		}
		for _, variantID := range sortedKeys(edit.Variants) {
			if edit.Variants[variantID] || !current.HasVariant(variantID) || supplied.Contains(variantID) {
				continue
			}
			for _, out := range oc.OutgoingExchanges() {
				if out.HasVariant(variantID) && !scope.CanEditEdge(out.Edge()) {
					fields.Add(fmt.Sprintf("%s[%d]", FieldIncomingExchanges, i),
						fmt.Sprintf("variant %s is still distributed to enterprise %s", variantID, out.Participant()))
				}
			}
		}
	}
}

// pruneUnsupplied drops variants that no longer arrive on any incoming
// exchange from the outgoing exchanges the actor may edit.
func pruneUnsupplied(oc *ordercycle.OrderCycle, scope Scope) {
	supplied := oc.IncomingVariantIDs()
	for _, out := range oc.OutgoingExchanges() {
		if !scope.CanEditEdge(out.Edge()) {
			continue
		}
		for _, variantID := range out.VariantIDs() {
			if !supplied.Contains(variantID) {
				out.SetVariant(variantID, false)
			}
		}
	}
}

func validateList(
	fields *errs.FieldErrors,
	oc *ordercycle.OrderCycle,
	scope Scope,
	incoming bool,
	edits []ordercycle.ExchangeEdit,
	refs ExchangeReferences,
	available kernel.UUIDSet,
) {
	prefix := FieldOutgoingExchanges
	if incoming {
		prefix = FieldIncomingExchanges
	}

	seen := kernel.NewUUIDSet()
	for i, edit := range edits {
		if !scope.CanEditEdge(edit.EdgeFor(oc.CoordinatorID(), incoming)) {
			continue
		}
		key := fmt.Sprintf("%s[%d]", prefix, i)

		if !refs.Enterprises.Contains(edit.EnterpriseID) {
			fields.Add(key, fmt.Sprintf("enterprise %s does not exist", edit.EnterpriseID))
			continue
		}
		if seen.Contains(edit.EnterpriseID) {
			fields.Add(key, fmt.Sprintf("enterprise %s appears more than once", edit.EnterpriseID))
			continue
		}
		seen[edit.EnterpriseID] = struct{}{}

		if !incoming && edit.ReceivalInstructions != nil {
			fields.Add(key, "receival instructions apply to incoming exchanges only")
		}
		if incoming && (edit.PickupTime != nil || edit.PickupInstructions != nil) {
			fields.Add(key, "pickup details apply to outgoing exchanges only")
		}

		for _, variantID := range sortedIncluded(edit.Variants) {
			variant, ok := refs.Variants[variantID]
			switch {
			case !ok:
				fields.Add(key, fmt.Sprintf("variant %s does not exist", variantID))
			case incoming && !variant.SuppliedBy(edit.EnterpriseID):
				fields.Add(key, fmt.Sprintf("variant %s is not supplied by enterprise %s", variantID, edit.EnterpriseID))
			case !incoming && !available.Contains(variantID):
				fields.Add(key, fmt.Sprintf("variant %s is not supplied to the order cycle", variantID))
			}
		}
	}
}

// projectedIncomingVariants computes the incoming variant set as it will be
// once the incoming edits are applied.
func projectedIncomingVariants(oc *ordercycle.OrderCycle, scope Scope, edits []ordercycle.ExchangeEdit) kernel.UUIDSet {
	if edits == nil {
		return oc.IncomingVariantIDs()
	}

	wanted := make(map[kernel.UUID]ordercycle.ExchangeEdit, len(edits))
	for _, edit := range edits {
		if scope.CanEditEdge(edit.EdgeFor(oc.CoordinatorID(), true)) {
			wanted[edit.EnterpriseID] = edit
		}
	}

	set := kernel.NewUUIDSet()
	for _, ex := range oc.IncomingExchanges() {
		edit, listed := wanted[ex.Participant()]
		if scope.AllEdges && !listed {
			continue
		}
		for _, id := range ex.VariantIDs() {
			if include, mentioned := edit.Variants[id]; !mentioned || include {
				set[id] = struct{}{}
			}
		}
	}
	for _, edit := range wanted {
		for _, id := range sortedIncluded(edit.Variants) {
			set[id] = struct{}{}
		}
	}
	return set
}

func applyEdits(oc *ordercycle.OrderCycle, scope Scope, incoming bool, edits []ordercycle.ExchangeEdit) error {
	if edits == nil {
		return nil
	}

	wanted := kernel.NewUUIDSet()
	for _, edit := range edits {
		if scope.CanEditEdge(edit.EdgeFor(oc.CoordinatorID(), incoming)) {
			wanted[edit.EnterpriseID] = struct{}{}
		}
	}

	current := oc.OutgoingExchanges()
	if incoming {
		current = oc.IncomingExchanges()
	}
	if scope.AllEdges {
		for _, ex := range current {
			if !wanted.Contains(ex.Participant()) {
				oc.RemoveExchange(ex.ID())
			}
		}
	}

	for _, edit := range edits {
		if !wanted.Contains(edit.EnterpriseID) {
			continue
		}
		ex, err := exchangeFor(oc, incoming, edit.EnterpriseID)
		if err != nil {
			return err
		}
		for _, id := range sortedKeys(edit.Variants) {
			ex.SetVariant(id, edit.Variants[id])
		}
		if incoming && edit.ReceivalInstructions != nil {
			if err = ex.SetReceivalInstructions(*edit.ReceivalInstructions); err != nil {
				return err
			}
		}
		if !incoming {
			if err = ex.SetPickup(edit.PickupTime, edit.PickupInstructions); err != nil {
				return err
			}
		}
	}
	return nil
}

func exchangeFor(oc *ordercycle.OrderCycle, incoming bool, enterpriseID kernel.UUID) (*ordercycle.Exchange, error) {
	if ex := oc.ExchangeFor(incoming, enterpriseID); ex != nil {
		return ex, nil
	}

	var (
		ex  *ordercycle.Exchange
		err error
	)
	if incoming {
		ex, err = ordercycle.NewIncomingExchange(kernel.NewUUID(), oc.ID(), enterpriseID, oc.CoordinatorID())
	} else {
		ex, err = ordercycle.NewOutgoingExchange(kernel.NewUUID(), oc.ID(), oc.CoordinatorID(), enterpriseID)
	}
	if err != nil {
		return nil, err
	}
	if err = oc.AddExchange(ex); err != nil {
		return nil, err
	}
	return ex, nil
}

func sortedKeys(m map[kernel.UUID]bool) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	kernel.SortUUIDs(ids)
	return ids
}

func sortedIncluded(m map[kernel.UUID]bool) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(m))
	for id, include := range m {
		if include {
			ids = append(ids, id)
		}
	}
	kernel.SortUUIDs(ids)
	return ids
}
