// Package orderrepo reads customer orders placed against order cycles.
// Orders are written by the shopfront; this service only needs to know
// whether a cycle has any.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
)

// OrderDTO is the orders row. order_cycle_id references order_cycles with
// ON DELETE RESTRICT so a cycle cannot disappear under a placed order.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderCycleID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}
