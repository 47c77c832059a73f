package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ordercycles/internal/core/application/usecases/commands"
	"ordercycles/internal/jobs"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDeliveryHandler struct{ mock.Mock }

func (m *MockDeliveryHandler) Handle(
	ctx context.Context,
	command commands.DeliverProducerNotificationsCommand,
) (commands.DeliveryReport, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.DeliveryReport), args.Error(1)
}

func TestNewProducerNotificationJob_InvalidBatchSize(t *testing.T) {
	logger, _ := test.NewNullLogger()

	_, err := jobs.NewProducerNotificationJob(new(MockDeliveryHandler), "", 0, time.Second, logger)

	require.Error(t, err)
}

func TestProducerNotificationJob_RunOnce_LogsDeliveredBatch(t *testing.T) {
	logger, hook := test.NewNullLogger()
	handler := new(MockDeliveryHandler)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(c commands.DeliverProducerNotificationsCommand) bool {
		return c.BatchSize() == 25
	})).Return(commands.DeliveryReport{Processed: 3, Failed: 1}, nil).Once()

	job, err := jobs.NewProducerNotificationJob(handler, "", 25, time.Second, logger)
	require.NoError(t, err)

	report := job.RunOnce(t.Context())

	assert.Equal(t, commands.DeliveryReport{Processed: 3, Failed: 1}, report)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, 3, hook.LastEntry().Data["processed"])
	assert.Equal(t, "producer_notification_job", hook.LastEntry().Data["component"])
	handler.AssertExpectations(t)
}

func TestProducerNotificationJob_RunOnce_EmptyQueueIsQuiet(t *testing.T) {
	logger, hook := test.NewNullLogger()
	handler := new(MockDeliveryHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(commands.DeliveryReport{}, nil).Once()

	job, err := jobs.NewProducerNotificationJob(handler, "", 10, time.Second, logger)
	require.NoError(t, err)

	job.RunOnce(t.Context())

	assert.Empty(t, hook.AllEntries())
}

func TestProducerNotificationJob_RunOnce_LogsHandlerFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	handler := new(MockDeliveryHandler)
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(commands.DeliveryReport{}, errors.New("database is down")).Once()

	job, err := jobs.NewProducerNotificationJob(handler, "", 10, time.Second, logger)
	require.NoError(t, err)

	job.RunOnce(t.Context())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.EqualError(t, hook.LastEntry().Data[logrus.ErrorKey].(error), "database is down")
}

func TestProducerNotificationJob_StartRejectsInvalidSchedule(t *testing.T) {
	logger, _ := test.NewNullLogger()

	job, err := jobs.NewProducerNotificationJob(new(MockDeliveryHandler), "not a schedule", 10, time.Second, logger)
	require.NoError(t, err)

	assert.Error(t, job.Start())
}

func TestProducerNotificationJob_StartAndStop(t *testing.T) {
	logger, _ := test.NewNullLogger()
	handler := new(MockDeliveryHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(commands.DeliveryReport{}, nil).Maybe()

	job, err := jobs.NewProducerNotificationJob(handler, "@every 1h", 10, time.Second, logger)
	require.NoError(t, err)

	require.NoError(t, job.Start())
	job.Stop()
}

func TestJobManager_StartAllAndStopAll(t *testing.T) {
	logger, _ := test.NewNullLogger()
	handler := new(MockDeliveryHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(commands.DeliveryReport{}, nil).Maybe()

	manager, err := jobs.NewJobManager(jobs.Config{
		NotificationSchedule:  "@every 1h",
		NotificationBatchSize: 10,
	}, handler, logger)
	require.NoError(t, err)

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}

func TestNewJobManager_InvalidBatchSize(t *testing.T) {
	logger, _ := test.NewNullLogger()

	_, err := jobs.NewJobManager(jobs.Config{}, new(MockDeliveryHandler), logger)

	assert.Error(t, err)
}
