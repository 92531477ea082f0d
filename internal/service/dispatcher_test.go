package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailroom/mailroom/config"
	"github.com/mailroom/mailroom/internal/domain"
	"github.com/mailroom/mailroom/internal/domain/mocks"
	"github.com/mailroom/mailroom/pkg/composer"
	pkgmocks "github.com/mailroom/mailroom/pkg/mocks"
)

type dispatcherFixture struct {
	dispatcher      *Dispatcher
	queueRepo       *mocks.MockEmailQueueRepository
	templateService *mocks.MockTemplateService
	plogRepo        *mocks.MockProcessingLogRepository
	mailer          *pkgmocks.MockMailer
}

func newDispatcherForTest(t *testing.T) *dispatcherFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &dispatcherFixture{
		queueRepo:       mocks.NewMockEmailQueueRepository(ctrl),
		templateService: mocks.NewMockTemplateService(ctrl),
		plogRepo:        mocks.NewMockProcessingLogRepository(ctrl),
		mailer:          pkgmocks.NewMockMailer(ctrl),
	}
	// the audit trail is exercised but not asserted on
	f.plogRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.dispatcher = NewDispatcher(
		f.queueRepo,
		f.templateService,
		f.plogRepo,
		composer.New("noreply@example.com", "Mailroom", ""),
		f.mailer,
		newTestLogger(ctrl),
		&config.ProcessingConfig{},
	)
	return f
}

func claimedItem() *domain.QueueItem {
	return &domain.QueueItem{
		QueueID:  "q-1",
		ToEmails: "user@example.com",
		Subject:  "Hello",
		Body:     "Plain body",
		IsHTML:   false,
		Priority: domain.PriorityNormal,
		Status:   domain.EmailStatusProcessing,
	}
}

func TestDispatcher_Process_Success(t *testing.T) {
	f := newDispatcherForTest(t)
	item := claimedItem()

	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
	f.queueRepo.EXPECT().MarkSent(gomock.Any(), "q-1", "w-1", gomock.Any()).Return(nil)

	f.dispatcher.process(context.Background(), item, "w-1")
}

func TestDispatcher_Process_TemplateStage(t *testing.T) {
	t.Run("rendered subject and body are sent", func(t *testing.T) {
		f := newDispatcherForTest(t)

		templateID := int64(7)
		item := claimedItem()
		item.RequiresTemplateProcessing = true
		item.TemplateID = &templateID
		item.TemplateData = `{"name":"Ada"}`

		f.templateService.EXPECT().Process(gomock.Any(), templateID, map[string]string{"name": "Ada"}).
			Return(&domain.TemplateProcessResult{Subject: "Hi Ada", Body: "Welcome"}, nil)
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
		f.queueRepo.EXPECT().MarkSent(gomock.Any(), "q-1", "w-1", gomock.Any()).Return(nil)

		f.dispatcher.process(context.Background(), item, "w-1")
	})

	t.Run("resolution race retried", func(t *testing.T) {
		f := newDispatcherForTest(t)

		templateID := int64(7)
		item := claimedItem()
		item.RequiresTemplateProcessing = true
		item.TemplateID = &templateID

		f.templateService.EXPECT().Process(gomock.Any(), templateID, gomock.Any()).
			Return(nil, &domain.ErrTemplateResolution{TemplateID: templateID, Reason: "template is not active"})
		f.queueRepo.EXPECT().MarkFailed(gomock.Any(), "q-1", gomock.Any(), true).Return(nil)

		f.dispatcher.process(context.Background(), item, "w-1")
	})

	t.Run("missing template fails permanently", func(t *testing.T) {
		f := newDispatcherForTest(t)

		templateID := int64(9)
		item := claimedItem()
		item.RequiresTemplateProcessing = true
		item.TemplateID = &templateID

		f.templateService.EXPECT().Process(gomock.Any(), templateID, gomock.Any()).
			Return(nil, &domain.ErrNotFound{Entity: "template", ID: "9"})
		f.queueRepo.EXPECT().MarkFailed(gomock.Any(), "q-1", gomock.Any(), false).Return(nil)

		f.dispatcher.process(context.Background(), item, "w-1")
	})
}

func TestDispatcher_Process_ComposeFailurePermanent(t *testing.T) {
	f := newDispatcherForTest(t)

	item := claimedItem()
	item.ToEmails = "not-an-address"

	f.queueRepo.EXPECT().MarkFailed(gomock.Any(), "q-1", gomock.Any(), false).Return(nil)

	f.dispatcher.process(context.Background(), item, "w-1")
}

func TestDispatcher_Process_SendFailureClassified(t *testing.T) {
	t.Run("permanent recipient failure", func(t *testing.T) {
		f := newDispatcherForTest(t)
		item := claimedItem()

		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("550 user unknown"))
		f.queueRepo.EXPECT().MarkFailed(gomock.Any(), "q-1", gomock.Any(), false).Return(nil)

		f.dispatcher.process(context.Background(), item, "w-1")
	})

	t.Run("transient deferral retried", func(t *testing.T) {
		f := newDispatcherForTest(t)
		item := claimedItem()

		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("451 try again later"))
		f.queueRepo.EXPECT().MarkFailed(gomock.Any(), "q-1", gomock.Any(), true).Return(nil)

		f.dispatcher.process(context.Background(), item, "w-1")
	})
}

func TestDispatcher_ProcessBatch(t *testing.T) {
	f := newDispatcherForTest(t)

	f.queueRepo.EXPECT().ClaimDueScheduled(gomock.Any(), 10, gomock.Any()).Return([]*domain.QueueItem{}, nil)
	f.queueRepo.EXPECT().ClaimBatch(gomock.Any(), 10, gomock.Any()).Return([]*domain.QueueItem{claimedItem()}, nil)

	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
	f.queueRepo.EXPECT().MarkSent(gomock.Any(), "q-1", gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, f.dispatcher.processBatch(context.Background()))
	f.dispatcher.wg.Wait()
}

func TestDispatcher_StartStop(t *testing.T) {
	f := newDispatcherForTest(t)

	f.queueRepo.EXPECT().ClaimDueScheduled(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	f.queueRepo.EXPECT().ClaimBatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	f.dispatcher.pollInterval = 10 * time.Millisecond
	f.dispatcher.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	f.dispatcher.Stop()
	f.dispatcher.Stop()
}

func TestDispatcher_NextWorkerID(t *testing.T) {
	f := newDispatcherForTest(t)

	first := f.dispatcher.nextWorkerID()
	second := f.dispatcher.nextWorkerID()
	assert.NotEqual(t, first, second)
	assert.Contains(t, first, f.dispatcher.workerID)
}

func TestShouldRetryTemplateErr(t *testing.T) {
	assert.False(t, shouldRetryTemplateErr(domain.NewValidationError("bad input")))
	assert.False(t, shouldRetryTemplateErr(&domain.ErrNotFound{Entity: "template", ID: "1"}))
	assert.True(t, shouldRetryTemplateErr(&domain.ErrTemplateResolution{TemplateID: 1, Reason: "inactive"}))
	assert.True(t, shouldRetryTemplateErr(errors.New("connection reset")))
}
