package ports

import (
	"context"

	"ordercycles/internal/core/domain/model/enterprise"
	"ordercycles/internal/core/domain/model/notification"
	"ordercycles/internal/core/domain/model/ordercycle"
)

// NotificationQueue accepts producer notification jobs for later execution.
type NotificationQueue interface {
	Enqueue(ctx context.Context, job *notification.Job) error
}

// NotificationJobRepository is the worker side of the queue.
type NotificationJobRepository interface {
	// ClaimPending locks up to limit pending jobs, skipping rows already
	// locked by another worker, oldest first.
	ClaimPending(ctx context.Context, limit int) ([]*notification.Job, error)

	// Update stores the job's processing state.
	Update(ctx context.Context, job *notification.Job) error
}

// ProducerNotifier delivers the "your order cycle is open" message to one
// producer. Message content is owned by the implementation.
type ProducerNotifier interface {
	NotifyProducer(ctx context.Context, oc *ordercycle.OrderCycle, producer *enterprise.Enterprise) error
}
