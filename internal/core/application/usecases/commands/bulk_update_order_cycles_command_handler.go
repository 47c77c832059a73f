package commands

import (
	"context"
	"errors"

	"ordercycles/internal/pkg/errs"

	"github.com/sirupsen/logrus"
)

// BulkUpdateOrderCyclesCommandHandler applies a batch of updates, one unit
// of work per row, through the update engine.
//
// Rows the actor cannot touch, either because the cycle no longer exists or
// because the actor has no scope on it, are skipped without an error. Rows
// that fail validation are reported by index. A failing row never undoes
// rows that were already committed.
type BulkUpdateOrderCyclesCommandHandler struct {
	updater UpdateOrderCycleCommandHandler
	logger  logrus.FieldLogger
}

func NewBulkUpdateOrderCyclesCommandHandler(uowFactory OrderCycleUoWFactory, logger logrus.FieldLogger) BulkUpdateOrderCyclesCommandHandler {
	return BulkUpdateOrderCyclesCommandHandler{
		updater: NewUpdateOrderCycleCommandHandler(uowFactory, logger),
		logger:  logger.WithField("component", "bulk_update_order_cycles"),
	}
}

func (h BulkUpdateOrderCyclesCommandHandler) Handle(ctx context.Context, command BulkUpdateOrderCyclesCommand) (BulkUpdateResult, error) {
	if err := command.Validate(); err != nil {
		return BulkUpdateResult{}, err
	}

	result := BulkUpdateResult{Success: true}
	for _, index := range command.Indexes() {
		row, _ := command.Row(index)
		log := h.logger.WithFields(logrus.Fields{
			"row":            index,
			"order_cycle_id": row.OrderCycleID.String(),
		})

		update, err := NewUpdateOrderCycleCommand(command.ActorID(), row.OrderCycleID, row.Changes, false)
		if err != nil {
			return result, err
		}

		outcome, err := h.updater.Handle(ctx, update)
		switch {
		case errors.Is(err, errs.ErrObjectNotFound), errors.Is(err, errs.ErrNotAuthorized):
			log.WithError(err).Debug("bulk update row skipped")
			result.Skipped = append(result.Skipped, index)
			continue
		case err != nil:
			return result, err
		}

		if !outcome.Success {
			if result.Errors == nil {
				result.Errors = make(map[string]errs.FieldErrors)
			}
			result.Errors[index] = outcome.Errors
			result.Success = false
			continue
		}
		result.Updated = append(result.Updated, index)
	}
	return result, nil
}
