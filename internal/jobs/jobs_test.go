package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"courierhub/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPurgeHandler struct{ mock.Mock }

func (m *MockPurgeHandler) Handle(ctx context.Context, cmd commands.PurgeSeenNotificationsCommand) (int64, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(int64), args.Error(1)
}

type fakeJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j *fakeJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	*j.log = append(*j.log, "start "+j.name)
	return nil
}

func (j *fakeJob) Stop() {
	*j.log = append(*j.log, "stop "+j.name)
}

func TestNotificationRetentionJobRun(t *testing.T) {
	t.Run("purges with the configured retention", func(t *testing.T) {
		handler := &MockPurgeHandler{}
		handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PurgeSeenNotificationsCommand) bool {
			return cmd.Retention() == 72*time.Hour
		})).Return(int64(4), nil).Once()

		job := NewNotificationRetentionJob(handler, "0 0 3 * * *", 72*time.Hour, zap.NewNop())
		job.run()

		handler.AssertExpectations(t)
	})

	t.Run("swallows handler errors", func(t *testing.T) {
		handler := &MockPurgeHandler{}
		handler.On("Handle", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down")).Once()

		job := NewNotificationRetentionJob(handler, "0 0 3 * * *", time.Hour, zap.NewNop())
		assert.NotPanics(t, job.run)

		handler.AssertExpectations(t)
	})

	t.Run("does not call the handler with an invalid retention", func(t *testing.T) {
		handler := &MockPurgeHandler{}

		job := NewNotificationRetentionJob(handler, "0 0 3 * * *", 0, zap.NewNop())
		job.run()

		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestNotificationRetentionJobRejectsBadSchedule(t *testing.T) {
	job := NewNotificationRetentionJob(&MockPurgeHandler{}, "every night", time.Hour, zap.NewNop())

	require.Error(t, job.Start())
}

func TestJobManager(t *testing.T) {
	t.Run("stops in reverse order", func(t *testing.T) {
		var log []string
		jm := NewJobManager(&fakeJob{name: "a", log: &log}, &fakeJob{name: "b", log: &log})

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
	})

	t.Run("rolls back started jobs when one fails", func(t *testing.T) {
		var log []string
		jm := NewJobManager(
			&fakeJob{name: "a", log: &log},
			&fakeJob{name: "b", log: &log, startErr: errors.New("bad schedule")},
		)

		err := jm.StartAll()

		require.Error(t, err)
		assert.Equal(t, []string{"start a", "stop a"}, log)
	})
}
