package ordercyclerepo

import (
	"context"
	"errors"

	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/ordercycle"
	"ordercycles/internal/core/domain/services"
	"ordercycles/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Foreign keys that keep an order cycle alive while something references it.
// Both are ON DELETE RESTRICT.
const (
	FKOrdersOrderCycle              = "fk_orders_order_cycle"
	FKScheduleOrderCyclesOrderCycle = "fk_schedule_order_cycles_order_cycle"
)

const foreignKeyViolation = "23503"

// GormOrderCycleRepository implements OrderCycleRepository using GORM.
type GormOrderCycleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderCycleRepository creates a new GORM order cycle repository.
func NewGormOrderCycleRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderCycleRepository {
	return &GormOrderCycleRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order cycle with its exchanges.
func (r *GormOrderCycleRepository) Add(ctx context.Context, aggregate *ordercycle.OrderCycle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	cycle, exchanges, variants := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&cycle).Error; err != nil {
			return err
		}
		return saveExchanges(tx, exchanges, variants)
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the cycle's details and brings its exchanges in line with the
// aggregate: removed exchanges are deleted and every variant set is rewritten.
func (r *GormOrderCycleRepository) Update(ctx context.Context, aggregate *ordercycle.OrderCycle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	cycle, exchanges, variants := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderCycleDTO{}).Where("id = ?", cycle.ID).Updates(map[string]any{
			"name":            cycle.Name,
			"orders_open_at":  cycle.OrdersOpenAt,
			"orders_close_at": cycle.OrdersCloseAt,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("order cycle", aggregate.ID().String())
		}

		if err := deleteVariants(tx, cycle.ID); err != nil {
			return err
		}

		stale := tx.Where("order_cycle_id = ?", cycle.ID)
		if len(exchanges) > 0 {
			ids := make([]any, 0, len(exchanges))
			for _, ex := range exchanges {
				ids = append(ids, ex.ID)
			}
			stale = stale.Where("id NOT IN ?", ids)
		}
		if err := stale.Delete(&ExchangeDTO{}).Error; err != nil {
			return err
		}

		return saveExchanges(tx, exchanges, variants)
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order cycle by ID.
func (r *GormOrderCycleRepository) Get(ctx context.Context, id kernel.UUID) (*ordercycle.OrderCycle, error) {
	return r.load(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order cycle and holds a row lock on it until the
// transaction ends. Outside a transaction the lock is released immediately.
func (r *GormOrderCycleRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*ordercycle.OrderCycle, error) {
	return r.load(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderCycleRepository) load(db *gorm.DB, id kernel.UUID) (*ordercycle.OrderCycle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderCycleDTO
	err := db.Preload("Exchanges", func(db *gorm.DB) *gorm.DB {
		return db.Order("incoming DESC").Order("id")
	}).Preload("Exchanges.Variants").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order cycle", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the cycle, its exchanges and their variants. When an order
// or schedule still references the cycle the restricting foreign key fails
// the delete and the violation is reported as a dependency conflict.
func (r *GormOrderCycleRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteVariants(tx, id.Bytes()); err != nil {
			return err
		}
		if err := tx.Where("order_cycle_id = ?", id.Bytes()).Delete(&ExchangeDTO{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&OrderCycleDTO{}, "id = ?", id.Bytes())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("order cycle", id.String())
		}
		return nil
	})

	return translateDeleteError(err)
}

func deleteVariants(tx *gorm.DB, cycleID any) error {
	exchangeIDs := tx.Model(&ExchangeDTO{}).Select("id").Where("order_cycle_id = ?", cycleID)
	return tx.Where("exchange_id IN (?)", exchangeIDs).Delete(&ExchangeVariantDTO{}).Error
}

func saveExchanges(tx *gorm.DB, exchanges []ExchangeDTO, variants []ExchangeVariantDTO) error {
	if len(exchanges) > 0 {
		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"receival_instructions", "pickup_time", "pickup_instructions"}),
		}).Create(&exchanges).Error
		if err != nil {
			return err
		}
	}

	if len(variants) > 0 {
		if err := tx.Create(&variants).Error; err != nil {
			return err
		}
	}
	return nil
}

func translateDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != foreignKeyViolation {
		return err
	}

	if pgErr.ConstraintName == FKScheduleOrderCyclesOrderCycle {
		return errs.NewDependencyConflictErrorWithCause(errs.ReasonSchedulePresent, services.MsgSchedulePresent, err)
	}
	return services.OrdersPresentError(err)
}
