package commands_test

import (
	"context"
	"testing"
	"time"

	"ordercycles/internal/core/application/usecases/commands"
	"ordercycles/internal/core/domain/model/catalog"
	"ordercycles/internal/core/domain/model/enterprise"
	"ordercycles/internal/core/domain/model/kernel"
	"ordercycles/internal/core/domain/model/notification"
	"ordercycles/internal/core/domain/model/ordercycle"
	"ordercycles/internal/core/ports"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderCycleRepository struct{ mock.Mock }

func (m *MockOrderCycleRepository) Add(ctx context.Context, oc *ordercycle.OrderCycle) error {
	return m.Called(ctx, oc).Error(0)
}

func (m *MockOrderCycleRepository) Update(ctx context.Context, oc *ordercycle.OrderCycle) error {
	return m.Called(ctx, oc).Error(0)
}

func (m *MockOrderCycleRepository) Get(ctx context.Context, id kernel.UUID) (*ordercycle.OrderCycle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordercycle.OrderCycle), args.Error(1)
}

func (m *MockOrderCycleRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*ordercycle.OrderCycle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordercycle.OrderCycle), args.Error(1)
}

func (m *MockOrderCycleRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockEnterpriseDirectory struct{ mock.Mock }

func (m *MockEnterpriseDirectory) ManagedBy(ctx context.Context, user *enterprise.User) ([]*enterprise.Enterprise, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*enterprise.Enterprise), args.Error(1)
}

func (m *MockEnterpriseDirectory) Find(ctx context.Context, ids []kernel.UUID) ([]*enterprise.Enterprise, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*enterprise.Enterprise), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*enterprise.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enterprise.User), args.Error(1)
}

type MockVariantCatalog struct{ mock.Mock }

func (m *MockVariantCatalog) Find(ctx context.Context, ids []kernel.UUID) ([]*catalog.Variant, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Variant), args.Error(1)
}

type MockCounter struct{ mock.Mock }

func (m *MockCounter) CountByOrderCycle(ctx context.Context, id kernel.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockNotificationQueue struct{ mock.Mock }

func (m *MockNotificationQueue) Enqueue(ctx context.Context, job *notification.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockNotificationQueue) ClaimPending(ctx context.Context, limit int) ([]*notification.Job, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Job), args.Error(1)
}

func (m *MockNotificationQueue) Update(ctx context.Context, job *notification.Job) error {
	return m.Called(ctx, job).Error(0)
}

type MockProducerNotifier struct{ mock.Mock }

func (m *MockProducerNotifier) NotifyProducer(ctx context.Context, oc *ordercycle.OrderCycle, producer *enterprise.Enterprise) error {
	return m.Called(ctx, oc, producer).Error(0)
}

// MockUoW satisfies every unit of work interface used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderCycleRepository() ports.OrderCycleRepository {
	return m.Called().Get(0).(ports.OrderCycleRepository)
}

func (m *MockUoW) EnterpriseDirectory() ports.EnterpriseDirectory {
	return m.Called().Get(0).(ports.EnterpriseDirectory)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

func (m *MockUoW) VariantCatalog() ports.VariantCatalog {
	return m.Called().Get(0).(ports.VariantCatalog)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ScheduleRepository() ports.ScheduleRepository {
	return m.Called().Get(0).(ports.ScheduleRepository)
}

func (m *MockUoW) NotificationQueue() ports.NotificationQueue {
	return m.Called().Get(0).(ports.NotificationQueue)
}

func (m *MockUoW) NotificationJobRepository() ports.NotificationJobRepository {
	return m.Called().Get(0).(ports.NotificationJobRepository)
}

type orderCycleUoWFactory struct{ uows []*MockUoW }

func (f *orderCycleUoWFactory) Create() commands.OrderCycleUoW {
	uow := f.uows[0]
	f.uows = f.uows[1:]
	return uow
}

type destroyUoWFactory struct{ uow *MockUoW }

func (f destroyUoWFactory) Create() commands.DestroyUoW { return f.uow }

type notificationUoWFactory struct{ uow *MockUoW }

func (f notificationUoWFactory) Create() commands.NotificationUoW { return f.uow }

// notificationUoWSequence hands out one unit of work per Create call.
type notificationUoWSequence struct{ uows []*MockUoW }

func (f *notificationUoWSequence) Create() commands.NotificationUoW {
	uow := f.uows[0]
	f.uows = f.uows[1:]
	return uow
}

// deps bundles the repositories behind one MockUoW.
type deps struct {
	uow       *MockUoW
	cycles    *MockOrderCycleRepository
	directory *MockEnterpriseDirectory
	users     *MockUserRepository
	variants  *MockVariantCatalog
	orders    *MockCounter
	schedules *MockCounter
	queue     *MockNotificationQueue
}

func newDeps() deps {
	d := deps{
		uow:       new(MockUoW),
		cycles:    new(MockOrderCycleRepository),
		directory: new(MockEnterpriseDirectory),
		users:     new(MockUserRepository),
		variants:  new(MockVariantCatalog),
		orders:    new(MockCounter),
		schedules: new(MockCounter),
		queue:     new(MockNotificationQueue),
	}
	d.uow.On("OrderCycleRepository").Return(d.cycles).Maybe()
	d.uow.On("EnterpriseDirectory").Return(d.directory).Maybe()
	d.uow.On("UserRepository").Return(d.users).Maybe()
	d.uow.On("VariantCatalog").Return(d.variants).Maybe()
	d.uow.On("OrderRepository").Return(d.orders).Maybe()
	d.uow.On("ScheduleRepository").Return(d.schedules).Maybe()
	d.uow.On("NotificationQueue").Return(d.queue).Maybe()
	d.uow.On("NotificationJobRepository").Return(d.queue).Maybe()
	d.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return d
}

func (d deps) assert(t *testing.T) {
	t.Helper()
	d.uow.AssertExpectations(t)
	d.cycles.AssertExpectations(t)
	d.directory.AssertExpectations(t)
	d.users.AssertExpectations(t)
	d.variants.AssertExpectations(t)
	d.orders.AssertExpectations(t)
	d.schedules.AssertExpectations(t)
	d.queue.AssertExpectations(t)
}

// world is a cycle coordinated by a hub, supplied by a producer and
// distributing to a shop, plus one user per role.
type world struct {
	coordinator *enterprise.Enterprise
	producer    *enterprise.Enterprise
	shop        *enterprise.Enterprise
	variant     *catalog.Variant
	oc          *ordercycle.OrderCycle

	coordinatorManager *enterprise.User
	producerManager    *enterprise.User
	stranger           *enterprise.User
	admin              *enterprise.User
}

var (
	openAt  = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	closeAt = openAt.Add(7 * 24 * time.Hour)
)

func newWorld(t *testing.T) world {
	t.Helper()
	var (
		w   world
		err error
	)
	w.coordinator, err = enterprise.NewEnterprise(kernel.NewUUID(), "Coordinator Hub", kernel.NewUUID(), true)
	require.NoError(t, err)
	w.producer, err = enterprise.NewEnterprise(kernel.NewUUID(), "Farm", kernel.NewUUID(), false)
	require.NoError(t, err)
	w.shop, err = enterprise.NewEnterprise(kernel.NewUUID(), "Shop", kernel.NewUUID(), true)
	require.NoError(t, err)
	w.variant, err = catalog.NewVariant(kernel.NewUUID(), w.producer.ID())
	require.NoError(t, err)

	id := kernel.NewUUID()
	in, err := ordercycle.RestoreExchange(kernel.NewUUID(), id, w.producer.ID(), w.coordinator.ID(), true,
		[]kernel.UUID{w.variant.ID()}, "", "", "")
	require.NoError(t, err)
	out, err := ordercycle.RestoreExchange(kernel.NewUUID(), id, w.coordinator.ID(), w.shop.ID(), false,
		[]kernel.UUID{w.variant.ID()}, "", "", "")
	require.NoError(t, err)
	open, closing := openAt, closeAt
	w.oc, err = ordercycle.RestoreOrderCycle(id, "Week 18", w.coordinator.ID(), &open, &closing, []*ordercycle.Exchange{in, out})
	require.NoError(t, err)

	w.coordinatorManager = newUser(t, false)
	w.producerManager = newUser(t, false)
	w.stranger = newUser(t, false)
	w.admin = newUser(t, true)
	return w
}

func newUser(t *testing.T, admin bool) *enterprise.User {
	t.Helper()
	u, err := enterprise.NewUser(kernel.NewUUID(), "user@example.com", admin)
	require.NoError(t, err)
	return u
}

func newLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func strPtr(s string) *string { return &s }
