package ports

import (
	"context"

	"ordercycles/internal/core/domain/model/kernel"
)

// OrderRepository answers whether customers have ordered from an order cycle.
type OrderRepository interface {
	CountByOrderCycle(ctx context.Context, orderCycleID kernel.UUID) (int64, error)
}

// ScheduleRepository answers whether schedules link an order cycle.
type ScheduleRepository interface {
	CountByOrderCycle(ctx context.Context, orderCycleID kernel.UUID) (int64, error)
}
