package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailroom/mailroom/internal/domain"
	"github.com/mailroom/mailroom/internal/repository/testutil"
)

var queueColumnNames = []string{
	"queue_id", "priority", "to_emails", "cc_emails", "bcc_emails", "reply_to",
	"subject", "body", "is_html", "template_id", "template_data",
	"requires_template_processing", "attachments", "has_embedded_images",
	"headers", "request_delivery_notification", "request_read_receipt",
	"status", "retry_count", "max_retries", "is_scheduled",
	"scheduled_for", "processing_started_at", "processed_at", "processed_by",
	"error_message", "created_at", "updated_at", "created_by", "request_source",
}

func queueRow(queueID string, status domain.EmailStatus, retryCount, maxRetries int) []driverValue {
	now := time.Now().UTC()
	return []driverValue{
		queueID, int64(domain.PriorityNormal), "a@x.io", nil, nil, nil,
		"hi", "hello", false, nil, nil,
		false, []byte("[]"), false,
		[]byte("{}"), false, false,
		string(status), retryCount, maxRetries, false,
		nil, nil, nil, nil,
		nil, now, now, "tester", nil,
	}
}

type driverValue = interface{}

func addQueueRow(rows *sqlmock.Rows, values []driverValue) *sqlmock.Rows {
	converted := make([]interface{}, len(values))
	copy(converted, values)
	return rows.AddRow(converted...)
}

func TestQueueRepository_Enqueue(t *testing.T) {
	ctx := context.Background()

	t.Run("successfully enqueues item", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		item := &domain.QueueItem{
			ToEmails:  "a@x.io",
			Subject:   "hi",
			Body:      "hello",
			CreatedBy: "tester",
		}

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO email_queue`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.Enqueue(ctx, item)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())

		// defaults applied in place
		assert.NotEmpty(t, item.QueueID)
		assert.Equal(t, domain.EmailStatusQueued, item.Status)
		assert.Equal(t, domain.PriorityNormal, item.Priority)
	})

	t.Run("preserves a zero retry cap", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		// callers resolve the retry default; a zero cap here is deliberate
		// and must reach the row untouched
		item := &domain.QueueItem{
			ToEmails:   "a@x.io",
			Subject:    "hi",
			Body:       "hello",
			MaxRetries: 0,
			CreatedBy:  "tester",
		}

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO email_queue`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.Enqueue(ctx, item)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Equal(t, 0, item.MaxRetries)
	})

	t.Run("inserts attachment audit rows", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		item := &domain.QueueItem{
			ToEmails:  "a@x.io",
			Subject:   "hi",
			Body:      "hello",
			CreatedBy: "tester",
			Attachments: []domain.AttachmentData{
				{FileName: "doc.txt", ContentType: "text/plain", Content: "aGVsbG8="},
			},
		}

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO email_queue`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO email_attachments`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.Enqueue(ctx, item)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("handles empty batch", func(t *testing.T) {
		db, _, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)
		assert.NoError(t, repo.BulkEnqueue(ctx, nil))
	})

	t.Run("returns error on insert failure", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO email_queue`).
			WillReturnError(errors.New("insert error"))
		mock.ExpectRollback()

		err := repo.Enqueue(ctx, &domain.QueueItem{ToEmails: "a@x.io", Subject: "hi", CreatedBy: "t"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to insert queue items")
	})

	t.Run("scheduled_for in future enqueues as scheduled", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		future := time.Now().UTC().Add(time.Hour)
		item := &domain.QueueItem{
			ToEmails:     "a@x.io",
			Subject:      "hi",
			CreatedBy:    "tester",
			IsScheduled:  true,
			ScheduledFor: &future,
		}

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO email_queue`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Enqueue(ctx, item))
		assert.Equal(t, domain.EmailStatusScheduled, item.Status)
	})
}

func TestQueueRepository_ClaimBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns claimed items", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		rows := sqlmock.NewRows(queueColumnNames)
		rows = addQueueRow(rows, queueRow("q-1", domain.EmailStatusProcessing, 0, 3))
		rows = addQueueRow(rows, queueRow("q-2", domain.EmailStatusProcessing, 0, 3))

		mock.ExpectQuery(`UPDATE email_queue`).
			WithArgs("worker-1", 10).
			WillReturnRows(rows)

		items, err := repo.ClaimBatch(ctx, 10, "worker-1")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "q-1", items[0].QueueID)
		assert.Equal(t, domain.EmailStatusProcessing, items[0].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty queue returns no items", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		mock.ExpectQuery(`UPDATE email_queue`).
			WithArgs("worker-1", 10).
			WillReturnRows(sqlmock.NewRows(queueColumnNames))

		items, err := repo.ClaimBatch(ctx, 10, "worker-1")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("propagates query error", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		mock.ExpectQuery(`UPDATE email_queue`).
			WillReturnError(errors.New("db down"))

		_, err := repo.ClaimBatch(ctx, 10, "worker-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to claim queue items")
	})
}

func TestQueueRepository_MarkSent(t *testing.T) {
	ctx := context.Background()

	t.Run("writes history in same transaction", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		rows := sqlmock.NewRows(queueColumnNames)
		rows = addQueueRow(rows, queueRow("q-1", domain.EmailStatusSent, 0, 3))

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE email_queue`).
			WithArgs("q-1", "worker-1").
			WillReturnRows(rows)
		mock.ExpectExec(`INSERT INTO email_history`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.MarkSent(ctx, "q-1", "worker-1", 120)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when row is not processing", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE email_queue`).
			WithArgs("q-1", "worker-1").
			WillReturnRows(sqlmock.NewRows(queueColumnNames))
		mock.ExpectRollback()

		err := repo.MarkSent(ctx, "q-1", "worker-1", 120)
		require.Error(t, err)
		var notFound *domain.ErrNotFound
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestQueueRepository_MarkFailed(t *testing.T) {
	ctx := context.Background()

	t.Run("requeues with backoff when retries remain", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		rows := sqlmock.NewRows(queueColumnNames)
		rows = addQueueRow(rows, queueRow("q-1", domain.EmailStatusProcessing, 0, 3))

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM email_queue`).
			WithArgs("q-1").
			WillReturnRows(rows)
		mock.ExpectExec(`UPDATE email_queue`).
			WithArgs("q-1", 1, sqlmock.AnyArg(), "451 try again").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.MarkFailed(ctx, "q-1", "451 try again", true)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("goes terminal with history when retries exhausted", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		// retry_count 2 of max 3: the increment reaches the cap
		rows := sqlmock.NewRows(queueColumnNames)
		rows = addQueueRow(rows, queueRow("q-1", domain.EmailStatusProcessing, 2, 3))

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM email_queue`).
			WithArgs("q-1").
			WillReturnRows(rows)
		mock.ExpectExec(`UPDATE email_queue`).
			WithArgs("q-1", 3, "550 no such user").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO email_history`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.MarkFailed(ctx, "q-1", "550 no such user", true)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("permanent error skips retry regardless of budget", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		rows := sqlmock.NewRows(queueColumnNames)
		rows = addQueueRow(rows, queueRow("q-1", domain.EmailStatusProcessing, 0, 3))

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT .* FROM email_queue`).
			WithArgs("q-1").
			WillReturnRows(rows)
		mock.ExpectExec(`UPDATE email_queue`).
			WithArgs("q-1", 1, "550 no such user").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO email_history`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.MarkFailed(ctx, "q-1", "550 no such user", false)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQueueRepository_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels queued item", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		mock.ExpectExec(`UPDATE email_queue`).
			WithArgs("q-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Cancel(ctx, "q-1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("refuses processing item", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		mock.ExpectExec(`UPDATE email_queue`).
			WithArgs("q-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Cancel(ctx, "q-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestQueueRepository_ResetStuck(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewQueueRepository(db, 5*time.Minute)

	mock.ExpectExec(`UPDATE email_queue`).
		WithArgs("600 seconds").
		WillReturnResult(sqlmock.NewResult(0, 4))

	count, err := repo.ResetStuck(context.Background(), 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestQueueRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns item", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		rows := sqlmock.NewRows(queueColumnNames)
		rows = addQueueRow(rows, queueRow("q-1", domain.EmailStatusQueued, 0, 3))

		mock.ExpectQuery(`SELECT .* FROM email_queue`).
			WithArgs("q-1").
			WillReturnRows(rows)

		item, err := repo.GetByID(ctx, "q-1")
		require.NoError(t, err)
		assert.Equal(t, "q-1", item.QueueID)
		assert.Equal(t, "a@x.io", item.ToEmails)
	})

	t.Run("returns not found", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewQueueRepository(db, 5*time.Minute)

		mock.ExpectQuery(`SELECT .* FROM email_queue`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(queueColumnNames))

		_, err := repo.GetByID(ctx, "missing")
		require.Error(t, err)
		var notFound *domain.ErrNotFound
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestQueueRepository_Stats(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewQueueRepository(db, 5*time.Minute)

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM email_queue GROUP BY status`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("queued", 5).
			AddRow("sent", 12))
	mock.ExpectQuery(`SELECT priority, COUNT\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"priority", "count"}).
			AddRow(1, 2).
			AddRow(2, 3))
	oldest := time.Now().UTC().Add(-time.Hour)
	mock.ExpectQuery(`SELECT MIN\(created_at\)`).
		WillReturnRows(sqlmock.NewRows([]string{"min", "avg"}).AddRow(oldest, 1500.0))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.ByStatus[domain.EmailStatusQueued])
	assert.Equal(t, int64(17), stats.Total)
	assert.Equal(t, int64(2), stats.PendingByPriority[domain.PriorityHigh])
	require.NotNil(t, stats.OldestQueuedAt)
	assert.Equal(t, 1500.0, stats.AvgQueueLatencyMs)
}
