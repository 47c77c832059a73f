package cmd

import (
	"ordercycles/internal/adapters/in/http"
	"ordercycles/internal/adapters/out/notifier"
	"ordercycles/internal/adapters/out/postgres"
	"ordercycles/internal/core/application/usecases/commands"
	"ordercycles/internal/core/application/usecases/queries"
	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/jobs"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	logger     logrus.FieldLogger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger logrus.FieldLogger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:      kernel.NewSystemClock(),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderCycleUoWFactory() commands.OrderCycleUoWFactory {
	return FuncOrderCycleUoWFactory(func() commands.OrderCycleUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateUpdateOrderCycleCommandHandler() commands.UpdateOrderCycleCommandHandler {
	return commands.NewUpdateOrderCycleCommandHandler(c.orderCycleUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateBulkUpdateOrderCyclesCommandHandler() commands.BulkUpdateOrderCyclesCommandHandler {
	return commands.NewBulkUpdateOrderCyclesCommandHandler(c.orderCycleUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateCreateOrderCycleCommandHandler() commands.CreateOrderCycleCommandHandler {
	return commands.NewCreateOrderCycleCommandHandler(c.orderCycleUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateDestroyOrderCycleCommandHandler() commands.DestroyOrderCycleCommandHandler {
	var f commands.DestroyUoWFactory = FuncDestroyUoWFactory(func() commands.DestroyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDestroyOrderCycleCommandHandler(f, c.logger)
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateNotifyProducersCommandHandler() commands.NotifyProducersCommandHandler {
	return commands.NewNotifyProducersCommandHandler(c.notificationUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateDeliverProducerNotificationsCommandHandler() commands.DeliverProducerNotificationsCommandHandler {
	return commands.NewDeliverProducerNotificationsCommandHandler(
		c.notificationUoWFactory(),
		notifier.NewLogProducerNotifier(c.logger),
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateListOrderCyclesQueryHandler() queries.ListOrderCyclesQueryHandler {
	return queries.NewListOrderCyclesQueryHandler(c.gormDB, c.clock, c.config.ListingCloseWindow())
}

func (c *CompositionRoot) CreateSelectCoordinatorQueryHandler() queries.SelectCoordinatorQueryHandler {
	var f queries.DirectoryReaderFactory = FuncDirectoryReaderFactory(func() queries.DirectoryReader {
		return c.uowFactory.Create()
	})
	return queries.NewSelectCoordinatorQueryHandler(f)
}

// CreateHTTPServer wires every use case into the HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() (*http.Server, error) {
	return http.NewServer(http.Handlers{
		Update:            c.CreateUpdateOrderCycleCommandHandler(),
		BulkUpdate:        c.CreateBulkUpdateOrderCyclesCommandHandler(),
		Create:            c.CreateCreateOrderCycleCommandHandler(),
		Destroy:           c.CreateDestroyOrderCycleCommandHandler(),
		NotifyProducers:   c.CreateNotifyProducersCommandHandler(),
		List:              c.CreateListOrderCyclesQueryHandler(),
		SelectCoordinator: c.CreateSelectCoordinatorQueryHandler(),
	}, http.NewMetrics(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(jobs.Config{
		NotificationSchedule:  c.config.NotificationCronSpec,
		NotificationBatchSize: c.config.NotificationBatchSize,
		NotificationTimeout:   c.config.NotificationTimeout,
	}, c.CreateDeliverProducerNotificationsCommandHandler(), c.logger)
}

type FuncOrderCycleUoWFactory func() commands.OrderCycleUoW

func (f FuncOrderCycleUoWFactory) Create() commands.OrderCycleUoW {
	return f()
}

type FuncDestroyUoWFactory func() commands.DestroyUoW

func (f FuncDestroyUoWFactory) Create() commands.DestroyUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}

type FuncDirectoryReaderFactory func() queries.DirectoryReader

func (f FuncDirectoryReaderFactory) Create() queries.DirectoryReader {
	return f()
}
