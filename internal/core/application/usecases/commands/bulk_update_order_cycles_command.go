package commands

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/ordercycle"
	"ordercycles/internal/pkg/errs"
	"ordercycles/internal/pkg/guard"
)

var ErrBulkUpdateOrderCyclesCommandIsNotConstructed = errors.New(
	"BulkUpdateOrderCyclesCommand must be created via NewBulkUpdateOrderCyclesCommand constructor",
)

// BulkRow is one row of a bulk update: a cycle and the changes for it.
type BulkRow struct {
	OrderCycleID kernel.UUID
	Changes      ordercycle.ChangeSet
}

// BulkUpdateOrderCyclesCommand updates several cycles at once. Rows are
// keyed by the index the client used, which is echoed back in errors.
//
// An empty row set is rejected with *errs.EmptyInputError at construction.
type BulkUpdateOrderCyclesCommand struct { //nolint:recvcheck //using for validation
	actorID kernel.UUID
	rows    map[string]BulkRow

	guard guard.ConstructorGuard
}

func NewBulkUpdateOrderCyclesCommand(actorID kernel.UUID, rows map[string]BulkRow) (BulkUpdateOrderCyclesCommand, error) {
	if len(rows) == 0 {
		return BulkUpdateOrderCyclesCommand{}, errs.NewEmptyInputError("order_cycle_set")
	}
	if err := actorID.Validate(); err != nil {
		return BulkUpdateOrderCyclesCommand{}, errs.NewValueIsRequiredErrorWithCause("actor_id", err)
	}
	for index, row := range rows {
		if err := row.OrderCycleID.Validate(); err != nil {
			return BulkUpdateOrderCyclesCommand{}, errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("rows[%s].id", index), err)
		}
	}

	copied := make(map[string]BulkRow, len(rows))
	for index, row := range rows {
		copied[index] = row
	}

	return BulkUpdateOrderCyclesCommand{
		actorID: actorID,
		rows:    copied,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c BulkUpdateOrderCyclesCommand) Validate() error {
	return c.guard.Validate(ErrBulkUpdateOrderCyclesCommandIsNotConstructed)
}

func (c BulkUpdateOrderCyclesCommand) ActorID() kernel.UUID { return c.actorID }

// Row returns the row stored under index.
func (c BulkUpdateOrderCyclesCommand) Row(index string) (BulkRow, bool) {
	row, ok := c.rows[index]
	return row, ok
}

// Indexes returns the row indexes, numeric ones first in numeric order.
func (c BulkUpdateOrderCyclesCommand) Indexes() []string {
	indexes := make([]string, 0, len(c.rows))
	for index := range c.rows {
		indexes = append(indexes, index)
	}
	sort.Slice(indexes, func(i, j int) bool {
		a, errA := strconv.Atoi(indexes[i])
		b, errB := strconv.Atoi(indexes[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return indexes[i] < indexes[j]
	})
	return indexes
}
