// Package postgres provides the GORM-based Unit of Work over the order cycle
// schema. A unit of work is one database transaction; every repository it
// hands out after Begin runs inside that transaction.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	oc, err := uow.OrderCycleRepository().GetForUpdate(ctx, id)
//	if err != nil {
//	    return err
//	}
//	// ... change oc
//	if err := uow.OrderCycleRepository().Update(ctx, oc); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a no-op, so it can always be deferred.
//
// Concurrency:
//   - Each UnitOfWork instance owns its transaction; never share one between goroutines
//   - GetForUpdate takes a row lock, so writers of the same order cycle serialize
//   - Repositories used before Begin run directly against the connection pool
package postgres

import (
	"context"

	"ordercycles/internal/adapters/out/postgres/enterpriserepo"
	"ordercycles/internal/adapters/out/postgres/notificationrepo"
	"ordercycles/internal/adapters/out/postgres/ordercyclerepo"
	"ordercycles/internal/adapters/out/postgres/orderrepo"
	"ordercycles/internal/adapters/out/postgres/schedulerepo"
	"ordercycles/internal/adapters/out/postgres/variantrepo"
	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the
// aggregates written through it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling Begin twice keeps the first one.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit makes the transaction's changes permanent and closes it.
// Returns gorm.ErrInvalidTransaction when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction's changes. Without an open transaction
// (never begun, or already committed) it does nothing.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderCycleRepository returns the order cycle repository bound to the
// current transaction. Written aggregates are tracked.
func (uow *GormUnitOfWork) OrderCycleRepository() ports.OrderCycleRepository {
	return ordercyclerepo.NewGormOrderCycleRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) EnterpriseDirectory() ports.EnterpriseDirectory {
	return enterpriserepo.NewGormEnterpriseDirectory(uow.conn())
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return enterpriserepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) VariantCatalog() ports.VariantCatalog {
	return variantrepo.NewGormVariantCatalog(uow.conn())
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) ScheduleRepository() ports.ScheduleRepository {
	return schedulerepo.NewGormScheduleRepository(uow.conn())
}

func (uow *GormUnitOfWork) NotificationQueue() ports.NotificationQueue {
	return notificationrepo.NewGormNotificationQueue(uow.conn())
}

func (uow *GormUnitOfWork) NotificationJobRepository() ports.NotificationJobRepository {
	return notificationrepo.NewGormNotificationQueue(uow.conn())
}

// TrackAggregate registers an aggregate written within this unit of work.
// Repositories call it after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregateIDs lists the ids of aggregates written so far, in write order.
func (uow *GormUnitOfWork) TrackedAggregateIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		ids = append(ids, t.ID)
	}
	return ids
}
