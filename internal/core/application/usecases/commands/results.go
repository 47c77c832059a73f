package commands

import (
	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/pkg/errs"
)

// Flash notices shown to the user after successful operations.
const (
	NoticeCreated         = "Your order cycle has been created."
	NoticeUpdated         = "Your order cycle has been updated."
	NoticeProducersQueued = "Emails to be sent to producers have been queued for sending."
	noticeRemoved         = "Order cycle %q has been removed."
)

// Messages carried by authorization errors.
const (
	MsgCannotUpdate  = "You don't have permission to update this order cycle"
	MsgCannotDelete  = "You don't have permission to delete this order cycle"
	MsgAdminRequired = "Only administrators can notify producers"
	MsgUnknownUser   = "Unknown user"
)

// OrderCycleResult is the outcome of a create or update. Validation
// failures are reported here rather than as an error.
type OrderCycleResult struct {
	Success      bool
	Errors       errs.FieldErrors
	Notice       string
	OrderCycleID kernel.UUID
}

func failed(fields errs.FieldErrors) OrderCycleResult {
	return OrderCycleResult{Success: false, Errors: fields}
}

// BulkUpdateResult aggregates the rows of a bulk update. Errors is keyed by
// the row index supplied by the caller.
type BulkUpdateResult struct {
	Success bool
	Errors  map[string]errs.FieldErrors
	Updated []string
	Skipped []string
}

// DestroyResult is the outcome of a successful destroy.
type DestroyResult struct {
	Notice string
}

// NotifyProducersResult confirms that a notification job was queued.
type NotifyProducersResult struct {
	Queued bool
	JobID  kernel.UUID
	Notice string
}

// DeliveryReport summarizes one run of the notification worker.
type DeliveryReport struct {
	Processed int
	Failed    int
}
