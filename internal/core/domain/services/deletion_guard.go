package services

import "ordercycles/internal/pkg/errs"

// Messages shown when a destroy is refused.
const (
	MsgOrdersPresent   = "That order cycle has been selected by a customer and cannot be deleted. To prevent customers from accessing it, please close it instead."
	MsgSchedulePresent = "That order cycle is linked to a schedule and cannot be deleted. Please unlink or delete the schedule first."
)

// Dependents counts the records referencing an order cycle.
type Dependents struct {
	Orders    int64
	Schedules int64
}

// DeletionGuard decides whether an order cycle may be destroyed. The counts
// must be read in the same transaction that performs the delete.
type DeletionGuard struct{}

func NewDeletionGuard() DeletionGuard {
	return DeletionGuard{}
}

// Check returns nil when destruction is permitted. Orders take precedence
// over schedules.
func (DeletionGuard) Check(d Dependents) error {
	if d.Orders > 0 {
		return OrdersPresentError(nil)
	}
	if d.Schedules > 0 {
		return errs.NewDependencyConflictError(errs.ReasonSchedulePresent, MsgSchedulePresent)
	}
	return nil
}

// OrdersPresentError builds the orders_present conflict, optionally wrapping
// the database error that revealed it.
func OrdersPresentError(cause error) *errs.DependencyConflictError {
	return errs.NewDependencyConflictErrorWithCause(errs.ReasonOrdersPresent, MsgOrdersPresent, cause)
}
