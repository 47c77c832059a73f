// Package services holds the domain services of the order cycle domain.
// They are pure functions over aggregates and take no locks or connections,
// so application handlers can compose them inside a unit of work.
//
// The mutation pipeline is split in two stages:
//
//	scope := ScopeResolver{}.Resolve(actor, managed, oc)
//	changes = MutationFilter{}.Filter(scope, oc.CoordinatorID(), changes)
//
// followed by ExchangeSynchronizer, which validates and applies the
// filtered exchange edits. DeletionGuard decides whether an order cycle
// with the given dependents may be destroyed.
package services
