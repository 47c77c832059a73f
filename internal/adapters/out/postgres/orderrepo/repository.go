package orderrepo

import (
	"context"

	"ordercycles/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// CountByOrderCycle counts the orders placed in an order cycle.
func (r *GormOrderRepository) CountByOrderCycle(ctx context.Context, orderCycleID kernel.UUID) (int64, error) {
	if err := orderCycleID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("order_cycle_id = ?", orderCycleID.Bytes()).Count(&count).Error
	return count, err
}
