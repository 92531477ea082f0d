package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailroom/mailroom/internal/domain/mocks"
)

func TestReaper_RunOnce(t *testing.T) {
	t.Run("resets stuck rows", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)

		queueRepo := mocks.NewMockEmailQueueRepository(ctrl)
		queueRepo.EXPECT().ResetStuck(gomock.Any(), 10*time.Minute).Return(int64(3), nil)

		reaper := NewReaper(queueRepo, nil, newTestLogger(ctrl), 0, 0, 0)
		count, err := reaper.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("alerts above threshold", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)

		queueRepo := mocks.NewMockEmailQueueRepository(ctrl)
		queueRepo.EXPECT().ResetStuck(gomock.Any(), gomock.Any()).Return(int64(25), nil)

		health := mocks.NewMockHealthService(ctrl)
		health.EXPECT().Alert(gomock.Any(), "warning", "Stuck emails detected", gomock.Any()).Return(nil)

		reaper := NewReaper(queueRepo, health, newTestLogger(ctrl), 0, 0, 10)
		count, err := reaper.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(25), count)
	})

	t.Run("no alert at or below threshold", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)

		queueRepo := mocks.NewMockEmailQueueRepository(ctrl)
		queueRepo.EXPECT().ResetStuck(gomock.Any(), gomock.Any()).Return(int64(10), nil)

		health := mocks.NewMockHealthService(ctrl)

		reaper := NewReaper(queueRepo, health, newTestLogger(ctrl), 0, 0, 10)
		_, err := reaper.RunOnce(context.Background())
		require.NoError(t, err)
	})

	t.Run("alert failure does not fail the pass", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)

		queueRepo := mocks.NewMockEmailQueueRepository(ctrl)
		queueRepo.EXPECT().ResetStuck(gomock.Any(), gomock.Any()).Return(int64(99), nil)

		health := mocks.NewMockHealthService(ctrl)
		health.EXPECT().Alert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		reaper := NewReaper(queueRepo, health, newTestLogger(ctrl), 0, 0, 10)
		count, err := reaper.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(99), count)
	})

	t.Run("repository failure propagated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)

		queueRepo := mocks.NewMockEmailQueueRepository(ctrl)
		queueRepo.EXPECT().ResetStuck(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))

		reaper := NewReaper(queueRepo, nil, newTestLogger(ctrl), 0, 0, 0)
		_, err := reaper.RunOnce(context.Background())
		require.Error(t, err)
	})
}

func TestReaper_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	queueRepo := mocks.NewMockEmailQueueRepository(ctrl)
	queueRepo.EXPECT().ResetStuck(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()

	reaper := NewReaper(queueRepo, nil, newTestLogger(ctrl), 10*time.Millisecond, time.Minute, 0)
	reaper.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	reaper.Stop()
	reaper.Stop()
}
