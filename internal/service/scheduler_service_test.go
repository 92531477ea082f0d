package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailroom/mailroom/internal/domain"
	"github.com/mailroom/mailroom/internal/domain/mocks"
)

func newSchedulerServiceForTest(t *testing.T) (*SchedulerService, *mocks.MockScheduledEmailRepository, *mocks.MockEmailQueueRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	scheduledRepo := mocks.NewMockScheduledEmailRepository(ctrl)
	queueRepo := mocks.NewMockEmailQueueRepository(ctrl)
	svc := NewSchedulerService(scheduledRepo, queueRepo, newTestLogger(ctrl), time.Minute)
	return svc, scheduledRepo, queueRepo
}

func TestSchedulerService_Schedule(t *testing.T) {
	t.Run("valid rule activated and persisted", func(t *testing.T) {
		svc, scheduledRepo, _ := newSchedulerServiceForTest(t)

		scheduledRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, email *domain.ScheduledEmail) error {
				email.ID = 42
				return nil
			})

		id, err := svc.Schedule(context.Background(), &domain.ScheduledEmail{
			ToEmails:    "ops@example.com",
			Subject:     "Weekly report",
			NextRunTime: time.Now().UTC().Add(time.Hour),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("past one-shot refused", func(t *testing.T) {
		svc, _, _ := newSchedulerServiceForTest(t)

		_, err := svc.Schedule(context.Background(), &domain.ScheduledEmail{
			ToEmails:    "ops@example.com",
			Subject:     "Late",
			NextRunTime: time.Now().UTC().Add(-time.Hour),
		})
		require.Error(t, err)
	})

	t.Run("nil rule refused", func(t *testing.T) {
		svc, _, _ := newSchedulerServiceForTest(t)

		_, err := svc.Schedule(context.Background(), nil)
		require.Error(t, err)
	})
}

func TestSchedulerService_ProcessDue(t *testing.T) {
	t.Run("one-shot rule deactivates after run", func(t *testing.T) {
		svc, scheduledRepo, queueRepo := newSchedulerServiceForTest(t)

		rule := &domain.ScheduledEmail{
			ID:          1,
			ToEmails:    "ops@example.com",
			Subject:     "Once",
			NextRunTime: time.Now().UTC().Add(-time.Minute),
			IsActive:    true,
			CreatedBy:   "ops",
		}

		scheduledRepo.EXPECT().GetDue(gomock.Any(), gomock.Any(), schedulerBatchSize).Return([]*domain.ScheduledEmail{rule}, nil)

		var item *domain.QueueItem
		queueRepo.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, it *domain.QueueItem) error {
				item = it
				return nil
			})

		scheduledRepo.EXPECT().Update(gomock.Any(), rule).Return(nil)

		processed, err := svc.ProcessDue(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, processed)

		require.NotNil(t, item)
		assert.Equal(t, "scheduler", item.RequestSource)
		assert.Equal(t, domain.EmailStatusQueued, item.Status)
		assert.NotEmpty(t, item.QueueID)

		assert.False(t, rule.IsActive)
		assert.Equal(t, 1, rule.ExecutionCount)
		require.NotNil(t, rule.LastExecutionStatus)
		assert.Equal(t, "success", *rule.LastExecutionStatus)
	})

	t.Run("recurring rule advances past now", func(t *testing.T) {
		svc, scheduledRepo, queueRepo := newSchedulerServiceForTest(t)

		interval := 15
		rule := &domain.ScheduledEmail{
			ID:              2,
			ToEmails:        "ops@example.com",
			Subject:         "Every quarter hour",
			NextRunTime:     time.Now().UTC().Add(-2 * time.Hour),
			IsRecurring:     true,
			IntervalMinutes: &interval,
			IsActive:        true,
		}

		scheduledRepo.EXPECT().GetDue(gomock.Any(), gomock.Any(), schedulerBatchSize).Return([]*domain.ScheduledEmail{rule}, nil)
		queueRepo.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)
		scheduledRepo.EXPECT().Update(gomock.Any(), rule).Return(nil)

		_, err := svc.ProcessDue(context.Background())
		require.NoError(t, err)

		assert.True(t, rule.IsActive)
		assert.True(t, rule.NextRunTime.After(time.Now().UTC()))
	})

	t.Run("enqueue failure recorded, batch continues", func(t *testing.T) {
		svc, scheduledRepo, queueRepo := newSchedulerServiceForTest(t)

		failing := &domain.ScheduledEmail{
			ID: 3, ToEmails: "a@example.com", Subject: "A",
			NextRunTime: time.Now().UTC().Add(-time.Minute), IsActive: true,
		}
		working := &domain.ScheduledEmail{
			ID: 4, ToEmails: "b@example.com", Subject: "B",
			NextRunTime: time.Now().UTC().Add(-time.Minute), IsActive: true,
		}

		scheduledRepo.EXPECT().GetDue(gomock.Any(), gomock.Any(), schedulerBatchSize).Return([]*domain.ScheduledEmail{failing, working}, nil)

		gomock.InOrder(
			queueRepo.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(errors.New("insert failed")),
			queueRepo.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil),
		)
		scheduledRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		processed, err := svc.ProcessDue(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, processed)

		require.NotNil(t, failing.LastExecutionStatus)
		assert.Equal(t, "failed", *failing.LastExecutionStatus)
		require.NotNil(t, failing.LastExecutionError)
		assert.Contains(t, *failing.LastExecutionError, "insert failed")
	})

	t.Run("fetch failure aborts the pass", func(t *testing.T) {
		svc, scheduledRepo, _ := newSchedulerServiceForTest(t)

		scheduledRepo.EXPECT().GetDue(gomock.Any(), gomock.Any(), schedulerBatchSize).Return(nil, errors.New("db down"))

		_, err := svc.ProcessDue(context.Background())
		require.Error(t, err)
	})
}

func TestSchedulerService_Reschedule(t *testing.T) {
	svc, scheduledRepo, _ := newSchedulerServiceForTest(t)

	future := time.Now().UTC().Add(time.Hour)
	scheduledRepo.EXPECT().Reschedule(gomock.Any(), int64(1), future.UTC()).Return(true, nil)

	ok, err := svc.Reschedule(context.Background(), 1, future)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Reschedule(context.Background(), 1, time.Now().UTC().Add(-time.Minute))
	require.Error(t, err)
}

func TestSchedulerService_StartStop(t *testing.T) {
	svc, scheduledRepo, _ := newSchedulerServiceForTest(t)

	scheduledRepo.EXPECT().GetDue(gomock.Any(), gomock.Any(), schedulerBatchSize).Return(nil, nil).AnyTimes()

	svc = NewSchedulerService(scheduledRepo, nil, svc.logger, 10*time.Millisecond)
	svc.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	svc.Stop()

	// idempotent
	svc.Stop()
}
