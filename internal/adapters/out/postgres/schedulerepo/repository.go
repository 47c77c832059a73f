// Package schedulerepo reads the schedules that link order cycles together.
package schedulerepo

import (
	"context"

	"ordercycles/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleDTO is the schedules row.
type ScheduleDTO struct {
	ID          uuid.UUID               `gorm:"type:uuid;primaryKey"`
	Name        string                  `gorm:"type:varchar(255);not null"`
	OrderCycles []ScheduleOrderCycleDTO `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE"`
}

func (ScheduleDTO) TableName() string {
	return "schedules"
}

// ScheduleOrderCycleDTO links a schedule to one of its order cycles.
type ScheduleOrderCycleDTO struct {
	ScheduleID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderCycleID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (ScheduleOrderCycleDTO) TableName() string {
	return "schedule_order_cycles"
}

// GormScheduleRepository implements ScheduleRepository using GORM.
type GormScheduleRepository struct {
	db *gorm.DB
}

func NewGormScheduleRepository(db *gorm.DB) *GormScheduleRepository {
	return &GormScheduleRepository{db: db}
}

// CountByOrderCycle counts the schedules linking an order cycle.
func (r *GormScheduleRepository) CountByOrderCycle(ctx context.Context, orderCycleID kernel.UUID) (int64, error) {
	if err := orderCycleID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ScheduleOrderCycleDTO{}).
		Where("order_cycle_id = ?", orderCycleID.Bytes()).
		Distinct("schedule_id").
		Count(&count).Error
	return count, err
}
