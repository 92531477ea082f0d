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

// newTestLogger returns a logger mock that accepts any call
func newTestLogger(ctrl *gomock.Controller) *mocks.MockLogger {
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().WithField(gomock.Any(), gomock.Any()).Return(log).AnyTimes()
	log.EXPECT().WithFields(gomock.Any()).Return(log).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return log
}

func newQueueServiceForTest(t *testing.T) (*QueueService, *mocks.MockEmailQueueRepository, *mocks.MockTemplateRepository, *mocks.MockEmailHistoryRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	queueRepo := mocks.NewMockEmailQueueRepository(ctrl)
	templateRepo := mocks.NewMockTemplateRepository(ctrl)
	historyRepo := mocks.NewMockEmailHistoryRepository(ctrl)
	svc := NewQueueService(queueRepo, templateRepo, mocks.NewMockAttachmentRepository(ctrl), historyRepo, newTestLogger(ctrl), 0, 0)
	return svc, queueRepo, templateRepo, historyRepo
}

func TestQueueService_Enqueue(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		svc, queueRepo, _, _ := newQueueServiceForTest(t)

		var captured *domain.QueueItem
		queueRepo.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, item *domain.QueueItem) error {
				captured = item
				return nil
			})

		result, err := svc.Enqueue(context.Background(), &domain.EnqueueRequest{
			ToEmails:  "user@example.com",
			Subject:   "Hello",
			Body:      "Plain body",
			CreatedBy: "tester",
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, domain.EmailStatusQueued, result.Status)
		assert.NotEmpty(t, result.QueueID)

		require.NotNil(t, captured)
		assert.Equal(t, domain.PriorityNormal, captured.Priority)
		assert.Equal(t, "api", captured.RequestSource)
		assert.Equal(t, domain.DefaultMaxRetries, captured.MaxRetries)
		assert.True(t, captured.IsHTML)
		assert.False(t, captured.RequiresTemplateProcessing)
	})

	t.Run("no recipients rejected", func(t *testing.T) {
		svc, _, _, _ := newQueueServiceForTest(t)

		_, err := svc.Enqueue(context.Background(), &domain.EnqueueRequest{
			Subject: "Hello",
			Body:    "Body",
		})
		require.Error(t, err)
		var ve domain.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("missing subject rejected", func(t *testing.T) {
		svc, _, _, _ := newQueueServiceForTest(t)

		_, err := svc.Enqueue(context.Background(), &domain.EnqueueRequest{
			ToEmails: "user@example.com",
			Body:     "Body",
		})
		require.Error(t, err)
		var ve domain.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("invalid priority rejected", func(t *testing.T) {
		svc, _, _, _ := newQueueServiceForTest(t)

		_, err := svc.Enqueue(context.Background(), &domain.EnqueueRequest{
			ToEmails: "user@example.com",
			Subject:  "Hello",
			Priority: "urgent-ish",
		})
		require.Error(t, err)
	})

	t.Run("oversized message rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)
		queueRepo := mocks.NewMockEmailQueueRepository(ctrl)
		svc := NewQueueService(queueRepo, nil, nil, nil, newTestLogger(ctrl), 64, 0)

		_, err := svc.Enqueue(context.Background(), &domain.EnqueueRequest{
			ToEmails: "user@example.com",
			Subject:  "Hello",
			Body:     string(make([]byte, 128)),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds limit")
	})

	t.Run("negative max_retries rejected", func(t *testing.T) {
		svc, _, _, _ := newQueueServiceForTest(t)

		negative := -1
		_, err := svc.Enqueue(context.Background(), &domain.EnqueueRequest{
			ToEmails:   "user@example.com",
			Subject:    "Hello",
			MaxRetries: &negative,
		})
		require.Error(t, err)
	})

	t.Run("future schedule produces scheduled status", func(t *testing.T) {
		svc, queueRepo, _, _ := newQueueServiceForTest(t)

		queueRepo.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)

		future := time.Now().UTC().Add(time.Hour)
		result, err := svc.Enqueue(context.Background(), &domain.EnqueueRequest{
			ToEmails:     "user@example.com",
			Subject:      "Later",
			ScheduledFor: &future,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.EmailStatusScheduled, result.Status)
	})

	t.Run("embedded image flag set for html bodies", func(t *testing.T) {
		svc, queueRepo, _, _ := newQueueServiceForTest(t)

		var captured *domain.QueueItem
		queueRepo.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, item *domain.QueueItem) error {
				captured = item
				return nil
			})

		_, err := svc.Enqueue(context.Background(), &domain.EnqueueRequest{
			ToEmails: "user@example.com",
			Subject:  "Inline",
			Body:     `<img src="data:image/png;base64,AAAA">`,
		})
		require.NoError(t, err)
		assert.True(t, captured.HasEmbeddedImages)
	})

	t.Run("repository failure wrapped", func(t *testing.T) {
		svc, queueRepo, _, _ := newQueueServiceForTest(t)

		queueRepo.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		_, err := svc.Enqueue(context.Background(), &domain.EnqueueRequest{
			ToEmails: "user@example.com",
			Subject:  "Hello",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to enqueue email")
	})
}

func TestQueueService_EnqueueWithTemplate(t *testing.T) {
	t.Run("resolves by id", func(t *testing.T) {
		svc, queueRepo, templateRepo, _ := newQueueServiceForTest(t)

		templateID := int64(7)
		templateRepo.EXPECT().GetByID(gomock.Any(), templateID).Return(&domain.EmailTemplate{
			ID: templateID, Name: "welcome", IsActive: true,
		}, nil)

		var captured *domain.QueueItem
		queueRepo.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, item *domain.QueueItem) error {
				captured = item
				return nil
			})

		_, err := svc.EnqueueWithTemplate(context.Background(), &domain.EnqueueRequest{
			ToEmails:     "user@example.com",
			TemplateID:   &templateID,
			TemplateData: map[string]string{"name": "Ada"},
		})
		require.NoError(t, err)
		assert.True(t, captured.RequiresTemplateProcessing)
		require.NotNil(t, captured.TemplateID)
		assert.Equal(t, templateID, *captured.TemplateID)
		assert.JSONEq(t, `{"name":"Ada"}`, captured.TemplateData)
	})

	t.Run("resolves by name", func(t *testing.T) {
		svc, queueRepo, templateRepo, _ := newQueueServiceForTest(t)

		templateRepo.EXPECT().GetByName(gomock.Any(), "welcome").Return(&domain.EmailTemplate{
			ID: 11, Name: "welcome", IsActive: true,
		}, nil)
		queueRepo.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.EnqueueWithTemplate(context.Background(), &domain.EnqueueRequest{
			ToEmails:     "user@example.com",
			TemplateName: "welcome",
		})
		require.NoError(t, err)
	})

	t.Run("inactive template refused", func(t *testing.T) {
		svc, _, templateRepo, _ := newQueueServiceForTest(t)

		templateRepo.EXPECT().GetByName(gomock.Any(), "retired").Return(&domain.EmailTemplate{
			ID: 3, Name: "retired", IsActive: false,
		}, nil)

		_, err := svc.EnqueueWithTemplate(context.Background(), &domain.EnqueueRequest{
			ToEmails:     "user@example.com",
			TemplateName: "retired",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not active")
	})

	t.Run("missing template reference refused", func(t *testing.T) {
		svc, _, _, _ := newQueueServiceForTest(t)

		_, err := svc.EnqueueWithTemplate(context.Background(), &domain.EnqueueRequest{
			ToEmails: "user@example.com",
		})
		require.Error(t, err)
	})

	t.Run("enqueue routes template requests here", func(t *testing.T) {
		svc, queueRepo, templateRepo, _ := newQueueServiceForTest(t)

		templateRepo.EXPECT().GetByName(gomock.Any(), "welcome").Return(&domain.EmailTemplate{
			ID: 11, Name: "welcome", IsActive: true,
		}, nil)
		queueRepo.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.Enqueue(context.Background(), &domain.EnqueueRequest{
			ToEmails:     "user@example.com",
			TemplateName: "welcome",
		})
		require.NoError(t, err)
	})
}

func TestQueueService_BulkEnqueue(t *testing.T) {
	t.Run("partial acceptance", func(t *testing.T) {
		svc, queueRepo, _, _ := newQueueServiceForTest(t)

		queueRepo.EXPECT().BulkEnqueue(gomock.Any(), gomock.Len(2)).Return(nil)

		result, err := svc.BulkEnqueue(context.Background(), []*domain.EnqueueRequest{
			{ToEmails: "a@example.com", Subject: "One"},
			{Subject: "No recipients"},
			{ToEmails: "b@example.com", Subject: "Two"},
		})
		require.NoError(t, err)
		assert.Len(t, result.Accepted, 2)
		require.Len(t, result.Rejected, 1)
		assert.Equal(t, 1, result.Rejected[0].Index)
	})

	t.Run("all rejected skips repository", func(t *testing.T) {
		svc, _, _, _ := newQueueServiceForTest(t)

		result, err := svc.BulkEnqueue(context.Background(), []*domain.EnqueueRequest{
			{Subject: "No recipients"},
			nil,
		})
		require.NoError(t, err)
		assert.Empty(t, result.Accepted)
		assert.Len(t, result.Rejected, 2)
	})

	t.Run("empty batch refused", func(t *testing.T) {
		svc, _, _, _ := newQueueServiceForTest(t)

		_, err := svc.BulkEnqueue(context.Background(), nil)
		require.Error(t, err)
	})
}

func TestQueueService_GetStatus(t *testing.T) {
	svc, queueRepo, _, _ := newQueueServiceForTest(t)

	now := time.Now().UTC()
	queueRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(&domain.QueueItem{
		QueueID:    "q-1",
		Status:     domain.EmailStatusProcessing,
		Priority:   domain.PriorityHigh,
		RetryCount: 1,
		MaxRetries: 3,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil)

	resp, err := svc.GetStatus(context.Background(), "q-1")
	require.NoError(t, err)
	assert.Equal(t, "q-1", resp.QueueID)
	assert.Equal(t, domain.EmailStatusProcessing, resp.Status)
	assert.Equal(t, "high", resp.Priority)
	assert.Equal(t, 1, resp.RetryCount)
}

func TestQueueService_GetStatusBatch(t *testing.T) {
	svc, queueRepo, _, _ := newQueueServiceForTest(t)

	queueRepo.EXPECT().GetBatch(gomock.Any(), []string{"q-1", "q-missing"}).Return([]*domain.QueueItem{
		{QueueID: "q-1", Status: domain.EmailStatusSent},
	}, nil)

	resps, err := svc.GetStatusBatch(context.Background(), []string{"q-1", "q-missing"})
	require.NoError(t, err)
	require.Len(t, resps, 1)
	assert.Equal(t, "q-1", resps[0].QueueID)

	_, err = svc.GetStatusBatch(context.Background(), nil)
	require.Error(t, err)
}

func TestQueueService_Attachments(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	attachmentRepo := mocks.NewMockAttachmentRepository(ctrl)
	svc := NewQueueService(nil, nil, attachmentRepo, nil, newTestLogger(ctrl), 0, 0)

	attachmentRepo.EXPECT().ListByQueueID(gomock.Any(), "q-1").Return([]*domain.EmailAttachment{
		{QueueID: "q-1", FileName: "invoice.pdf", ContentType: "application/pdf"},
	}, nil)

	rows, err := svc.Attachments(context.Background(), "q-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "invoice.pdf", rows[0].FileName)

	_, err = svc.Attachments(context.Background(), "")
	require.Error(t, err)
}

func TestQueueService_UpdatePriority(t *testing.T) {
	svc, queueRepo, _, _ := newQueueServiceForTest(t)

	queueRepo.EXPECT().UpdatePriority(gomock.Any(), "q-1", domain.PriorityLow).Return(true, nil)

	ok, err := svc.UpdatePriority(context.Background(), "q-1", domain.PriorityLow)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.UpdatePriority(context.Background(), "q-1", domain.EmailPriority(42))
	require.Error(t, err)
}

func TestQueueService_Reschedule(t *testing.T) {
	svc, queueRepo, _, _ := newQueueServiceForTest(t)

	future := time.Now().UTC().Add(2 * time.Hour)
	queueRepo.EXPECT().Reschedule(gomock.Any(), "q-1", future.UTC()).Return(true, nil)

	ok, err := svc.Reschedule(context.Background(), "q-1", future)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Reschedule(context.Background(), "q-1", time.Now().UTC().Add(-time.Minute))
	require.Error(t, err)
}

func TestQueueService_Statistics(t *testing.T) {
	svc, queueRepo, _, historyRepo := newQueueServiceForTest(t)

	from := time.Now().UTC().Add(-24 * time.Hour)
	to := time.Now().UTC()

	queueRepo.EXPECT().Stats(gomock.Any()).Return(&domain.QueueStats{
		ByStatus: map[domain.EmailStatus]int64{domain.EmailStatusQueued: 4},
		Total:    5,
	}, nil)
	historyRepo.EXPECT().Stats(gomock.Any(), from, to).Return(&domain.DeliveryStats{TotalSent: 120, TotalFailed: 3}, nil)

	stats, err := svc.Statistics(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.Queue.Total)
	assert.Equal(t, int64(120), stats.Delivery.TotalSent)
	assert.Equal(t, from, stats.From)
	assert.Equal(t, to, stats.To)
}
