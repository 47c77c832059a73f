// Package commands contains the operations that change order cycles.
// Every handler validates its command, opens a fresh unit of work, runs the
// domain services inside it and commits, so each request is one transaction.
package commands

import (
	"context"

	"ordercycles/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderCycleRepoFactory provides the order cycle repository within a transaction.
	OrderCycleRepoFactory interface {
		OrderCycleRepository() ports.OrderCycleRepository
	}

	// DirectoryFactory provides users and enterprises within a transaction.
	DirectoryFactory interface {
		EnterpriseDirectory() ports.EnterpriseDirectory
		UserRepository() ports.UserRepository
	}

	// CatalogFactory provides variant lookups within a transaction.
	CatalogFactory interface {
		VariantCatalog() ports.VariantCatalog
	}

	// DependentsRepoFactory provides the records that may block a delete.
	DependentsRepoFactory interface {
		OrderRepository() ports.OrderRepository
		ScheduleRepository() ports.ScheduleRepository
	}

	// NotificationRepoFactory provides both ends of the notification queue.
	NotificationRepoFactory interface {
		NotificationQueue() ports.NotificationQueue
		NotificationJobRepository() ports.NotificationJobRepository
	}

	// OrderCycleUoW serves create, update and bulk update.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer uow.Rollback(ctx)
	//
	//   oc, err := uow.OrderCycleRepository().GetForUpdate(ctx, id)
	//   // ... apply changes
	//
	//   err = uow.Commit(ctx)
	OrderCycleUoW interface {
		TxManager
		OrderCycleRepoFactory
		DirectoryFactory
		CatalogFactory
	}

	// OrderCycleUoWFactory creates order cycle units of work.
	OrderCycleUoWFactory interface {
		Create() OrderCycleUoW
	}

	// DestroyUoW serves destroy: the cycle plus its dependents, in one transaction.
	DestroyUoW interface {
		TxManager
		OrderCycleRepoFactory
		DirectoryFactory
		DependentsRepoFactory
	}

	// DestroyUoWFactory creates destroy units of work.
	DestroyUoWFactory interface {
		Create() DestroyUoW
	}

	// NotificationUoW serves the notification trigger and its worker.
	NotificationUoW interface {
		TxManager
		OrderCycleRepoFactory
		DirectoryFactory
		NotificationRepoFactory
	}

	// NotificationUoWFactory creates notification units of work.
	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
