// Package ports defines the contracts between the order cycle domain and
// the infrastructure around it: persistence, the enterprise directory, the
// notification queue and the producer mailer.
package ports

import (
	"context"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/ordercycle"
)

// OrderCycleRepository persists order cycle aggregates together with their
// exchanges and exchange variants.
type OrderCycleRepository interface {
	// Add persists a new order cycle and its exchanges.
	Add(ctx context.Context, aggregate *ordercycle.OrderCycle) error

	// Update persists changes to an existing order cycle. Exchanges missing
	// from the aggregate are deleted, variant sets are replaced.
	Update(ctx context.Context, aggregate *ordercycle.OrderCycle) error

	// Get loads an order cycle. Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*ordercycle.OrderCycle, error)

	// GetForUpdate loads an order cycle and locks its row until the
	// surrounding transaction ends, serializing concurrent writers.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*ordercycle.OrderCycle, error)

	// Delete removes the order cycle, its exchanges and their variants.
	// A foreign key violation caused by a dependent row is reported as an
	// *errs.DependencyConflictError.
	Delete(ctx context.Context, id kernel.UUID) error
}
