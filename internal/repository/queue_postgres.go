package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/mailroom/mailroom/internal/domain"
)

// psql is a Squirrel StatementBuilder configured for PostgreSQL
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const queueColumns = `queue_id, priority, to_emails, cc_emails, bcc_emails, reply_to,
	       subject, body, is_html, template_id, template_data, requires_template_processing,
	       attachments, has_embedded_images, headers, request_delivery_notification,
	       request_read_receipt, status, retry_count, max_retries, is_scheduled,
	       scheduled_for, processing_started_at, processed_at, processed_by, error_message,
	       created_at, updated_at, created_by, request_source`

// QueueRepository implements domain.EmailQueueRepository on PostgreSQL
type QueueRepository struct {
	db           *sql.DB
	retryBackoff time.Duration
}

// NewQueueRepository creates a new QueueRepository
func NewQueueRepository(db *sql.DB, retryBackoff time.Duration) *QueueRepository {
	if retryBackoff <= 0 {
		retryBackoff = 5 * time.Minute
	}
	return &QueueRepository{db: db, retryBackoff: retryBackoff}
}

// Enqueue persists one item and its attachment audit rows in a single transaction
func (r *QueueRepository) Enqueue(ctx context.Context, item *domain.QueueItem) error {
	return r.BulkEnqueue(ctx, []*domain.QueueItem{item})
}

// BulkEnqueue atomically inserts a batch of items
func (r *QueueRepository) BulkEnqueue(ctx context.Context, items []*domain.QueueItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	insertBuilder := psql.
		Insert("email_queue").
		Columns(
			"queue_id", "priority", "to_emails", "cc_emails", "bcc_emails", "reply_to",
			"subject", "body", "is_html", "template_id", "template_data",
			"requires_template_processing", "attachments", "has_embedded_images",
			"headers", "request_delivery_notification", "request_read_receipt",
			"status", "retry_count", "max_retries", "is_scheduled", "scheduled_for",
			"created_at", "updated_at", "created_by", "request_source",
		)

	for _, item := range items {
		if item.QueueID == "" {
			item.QueueID = uuid.New().String()
		}
		if item.Priority == 0 {
			item.Priority = domain.PriorityNormal
		}
		if item.Status == "" {
			item.Status = item.InitialStatus(now)
		}
		item.CreatedAt = now
		item.UpdatedAt = now

		attachmentsJSON, err := json.Marshal(item.Attachments)
		if err != nil {
			return fmt.Errorf("failed to marshal attachments: %w", err)
		}
		headersJSON, err := json.Marshal(item.Headers)
		if err != nil {
			return fmt.Errorf("failed to marshal headers: %w", err)
		}
		var templateData interface{}
		if item.TemplateData != "" {
			templateData = item.TemplateData
		}

		insertBuilder = insertBuilder.Values(
			item.QueueID, item.Priority, item.ToEmails, nullString(item.CCEmails),
			nullString(item.BCCEmails), nullString(item.ReplyTo),
			item.Subject, item.Body, item.IsHTML, item.TemplateID, templateData,
			item.RequiresTemplateProcessing, attachmentsJSON, item.HasEmbeddedImages,
			headersJSON, item.RequestDeliveryNotification, item.RequestReadReceipt,
			item.Status, item.RetryCount, item.MaxRetries, item.IsScheduled,
			item.ScheduledFor, item.CreatedAt, item.UpdatedAt, item.CreatedBy,
			nullString(item.RequestSource),
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert queue items: %w", err)
	}

	// attachment audit rows live alongside the queue rows
	for _, item := range items {
		if err := insertAttachmentRowsTx(ctx, tx, item.QueueID, item.Attachments, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ClaimBatch atomically claims ready queued rows for a worker.
// Uses FOR UPDATE SKIP LOCKED so concurrent dispatchers never claim the same row.
func (r *QueueRepository) ClaimBatch(ctx context.Context, batchSize int, workerID string) ([]*domain.QueueItem, error) {
	query := fmt.Sprintf(`
		UPDATE email_queue
		SET status = 'processing', processing_started_at = NOW(), processed_by = $1, updated_at = NOW()
		WHERE queue_id IN (
			SELECT queue_id FROM email_queue
			WHERE status = 'queued' AND (scheduled_for IS NULL OR scheduled_for <= NOW())
			ORDER BY priority ASC, created_at ASC
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING %s`, queueColumns)

	return r.claim(ctx, query, workerID, batchSize)
}

// ClaimDueScheduled claims scheduled rows whose time has come
func (r *QueueRepository) ClaimDueScheduled(ctx context.Context, batchSize int, workerID string) ([]*domain.QueueItem, error) {
	query := fmt.Sprintf(`
		UPDATE email_queue
		SET status = 'processing', processing_started_at = NOW(), processed_by = $1, updated_at = NOW()
		WHERE queue_id IN (
			SELECT queue_id FROM email_queue
			WHERE status = 'scheduled' AND scheduled_for <= NOW()
			ORDER BY scheduled_for ASC
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING %s`, queueColumns)

	return r.claim(ctx, query, workerID, batchSize)
}

func (r *QueueRepository) claim(ctx context.Context, query, workerID string, batchSize int) ([]*domain.QueueItem, error) {
	rows, err := r.db.QueryContext(ctx, query, workerID, batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to claim queue items: %w", err)
	}
	defer rows.Close()

	var items []*domain.QueueItem
	for rows.Next() {
		item, err := scanQueueItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}

// MarkSent records terminal success and writes the history snapshot in the
// same transaction, so at most one Sent history row can ever exist per item.
func (r *QueueRepository) MarkSent(ctx context.Context, queueID, workerID string, processingTimeMs int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		UPDATE email_queue
		SET status = 'sent', processed_at = NOW(), processed_by = $2, updated_at = NOW(), error_message = NULL
		WHERE queue_id = $1 AND status = 'processing'
		RETURNING %s`, queueColumns)

	row := tx.QueryRowContext(ctx, query, queueID, workerID)
	item, err := scanQueueItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return &domain.ErrNotFound{Entity: "queue item", ID: queueID}
		}
		return err
	}

	if err := insertHistoryTx(ctx, tx, item, domain.EmailStatusSent, processingTimeMs, nil); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// MarkFailed increments retry_count and either requeues with a deferred
// scheduled_for or goes terminal Failed, writing the history snapshot.
func (r *QueueRepository) MarkFailed(ctx context.Context, queueID, errorMessage string, shouldRetry bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	selectQuery := fmt.Sprintf(`SELECT %s FROM email_queue WHERE queue_id = $1 AND status = 'processing' FOR UPDATE`, queueColumns)
	row := tx.QueryRowContext(ctx, selectQuery, queueID)
	item, err := scanQueueItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return &domain.ErrNotFound{Entity: "queue item", ID: queueID}
		}
		return err
	}

	now := time.Now().UTC()
	item.RetryCount++

	if shouldRetry && item.RetryCount < item.MaxRetries {
		// back to the queue with a deferred retry slot
		retryAt := domain.NextRetryTime(now, item.RetryCount, r.retryBackoff)
		updateQuery := `
			UPDATE email_queue
			SET status = 'queued', retry_count = $2, scheduled_for = $3,
			    processing_started_at = NULL, processed_by = NULL,
			    error_message = $4, updated_at = NOW()
			WHERE queue_id = $1
		`
		if _, err := tx.ExecContext(ctx, updateQuery, queueID, item.RetryCount, retryAt, errorMessage); err != nil {
			return fmt.Errorf("failed to requeue item: %w", err)
		}
	} else {
		updateQuery := `
			UPDATE email_queue
			SET status = 'failed', retry_count = $2, processed_at = NOW(),
			    error_message = $3, updated_at = NOW()
			WHERE queue_id = $1
		`
		if _, err := tx.ExecContext(ctx, updateQuery, queueID, item.RetryCount, errorMessage); err != nil {
			return fmt.Errorf("failed to mark item failed: %w", err)
		}
		if err := insertHistoryTx(ctx, tx, item, domain.EmailStatusFailed, 0, &errorMessage); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Cancel transitions a Queued or Scheduled item to Cancelled
func (r *QueueRepository) Cancel(ctx context.Context, queueID string) (bool, error) {
	query := `
		UPDATE email_queue
		SET status = 'cancelled', updated_at = NOW()
		WHERE queue_id = $1 AND status IN ('queued', 'scheduled')
	`

	result, err := r.db.ExecContext(ctx, query, queueID)
	if err != nil {
		return false, fmt.Errorf("failed to cancel queue item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// UpdatePriority changes a Queued item's priority
func (r *QueueRepository) UpdatePriority(ctx context.Context, queueID string, priority domain.EmailPriority) (bool, error) {
	query := `
		UPDATE email_queue
		SET priority = $2, updated_at = NOW()
		WHERE queue_id = $1 AND status = 'queued'
	`

	result, err := r.db.ExecContext(ctx, query, queueID, priority)
	if err != nil {
		return false, fmt.Errorf("failed to update priority: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// Reschedule moves a Queued item to Scheduled at the given time
func (r *QueueRepository) Reschedule(ctx context.Context, queueID string, at time.Time) (bool, error) {
	query := `
		UPDATE email_queue
		SET status = 'scheduled', is_scheduled = TRUE, scheduled_for = $2, updated_at = NOW()
		WHERE queue_id = $1 AND status = 'queued'
	`

	result, err := r.db.ExecContext(ctx, query, queueID, at.UTC())
	if err != nil {
		return false, fmt.Errorf("failed to reschedule queue item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// ResetStuck rewinds abandoned Processing rows back to Queued.
// retry_count stays untouched: the dead worker made no observable commitment.
func (r *QueueRepository) ResetStuck(ctx context.Context, threshold time.Duration) (int64, error) {
	query := `
		UPDATE email_queue
		SET status = 'queued', processing_started_at = NULL, processed_by = NULL, updated_at = NOW()
		WHERE status = 'processing' AND processing_started_at < NOW() - $1::interval
	`

	result, err := r.db.ExecContext(ctx, query, fmt.Sprintf("%d seconds", int(threshold.Seconds())))
	if err != nil {
		return 0, fmt.Errorf("failed to reset stuck items: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}

// GetByID fetches one queue row
func (r *QueueRepository) GetByID(ctx context.Context, queueID string) (*domain.QueueItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM email_queue WHERE queue_id = $1`, queueColumns)

	row := r.db.QueryRowContext(ctx, query, queueID)
	item, err := scanQueueItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "queue item", ID: queueID}
		}
		return nil, err
	}

	return item, nil
}

// GetBatch fetches several rows by id; missing ids are silently skipped
func (r *QueueRepository) GetBatch(ctx context.Context, queueIDs []string) ([]*domain.QueueItem, error) {
	if len(queueIDs) == 0 {
		return nil, nil
	}

	query, args, err := psql.
		Select(queueColumns).
		From("email_queue").
		Where(sq.Eq{"queue_id": queueIDs}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query queue items: %w", err)
	}
	defer rows.Close()

	var items []*domain.QueueItem
	for rows.Next() {
		item, err := scanQueueItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// List returns a filtered page of queue rows plus the total match count
func (r *QueueRepository) List(ctx context.Context, filter domain.QueueFilter) ([]*domain.QueueItem, int64, error) {
	conditions := sq.And{}
	if filter.Status != "" {
		conditions = append(conditions, sq.Eq{"status": filter.Status})
	}
	if filter.Priority != 0 {
		conditions = append(conditions, sq.Eq{"priority": filter.Priority})
	}
	if filter.From != nil {
		conditions = append(conditions, sq.GtOrEq{"created_at": filter.From.UTC()})
	}
	if filter.To != nil {
		conditions = append(conditions, sq.LtOrEq{"created_at": filter.To.UTC()})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conditions = append(conditions, sq.Or{
			sq.ILike{"to_emails": pattern},
			sq.ILike{"subject": pattern},
		})
	}

	countBuilder := psql.Select("COUNT(*)").From("email_queue")
	if len(conditions) > 0 {
		countBuilder = countBuilder.Where(conditions)
	}
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count queue items: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	listBuilder := psql.
		Select(queueColumns).
		From("email_queue").
		OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))
	if len(conditions) > 0 {
		listBuilder = listBuilder.Where(conditions)
	}

	query, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list queue items: %w", err)
	}
	defer rows.Close()

	var items []*domain.QueueItem
	for rows.Next() {
		item, err := scanQueueItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}

	return items, total, rows.Err()
}

// Stats aggregates queue counts, ages and latency
func (r *QueueRepository) Stats(ctx context.Context) (*domain.QueueStats, error) {
	stats := &domain.QueueStats{
		ByStatus:          make(map[domain.EmailStatus]int64),
		PendingByPriority: make(map[domain.EmailPriority]int64),
	}

	statusQuery := `SELECT status, COUNT(*) FROM email_queue GROUP BY status`
	rows, err := r.db.QueryContext(ctx, statusQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query status counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status domain.EmailStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	priorityQuery := `
		SELECT priority, COUNT(*)
		FROM email_queue
		WHERE status IN ('queued', 'scheduled', 'processing')
		GROUP BY priority
	`
	prows, err := r.db.QueryContext(ctx, priorityQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query priority counts: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var priority domain.EmailPriority
		var count int64
		if err := prows.Scan(&priority, &count); err != nil {
			return nil, fmt.Errorf("failed to scan priority count: %w", err)
		}
		stats.PendingByPriority[priority] = count
	}
	if err := prows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	ageQuery := `
		SELECT MIN(created_at),
		       COALESCE(AVG(EXTRACT(EPOCH FROM (NOW() - created_at)) * 1000), 0)
		FROM email_queue
		WHERE status = 'queued'
	`
	var oldest sql.NullTime
	if err := r.db.QueryRowContext(ctx, ageQuery).Scan(&oldest, &stats.AvgQueueLatencyMs); err != nil {
		return nil, fmt.Errorf("failed to query queue ages: %w", err)
	}
	if oldest.Valid {
		stats.OldestQueuedAt = &oldest.Time
	}

	return stats, nil
}

// CountTotal returns the full table count
func (r *QueueRepository) CountTotal(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM email_queue`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count queue items: %w", err)
	}
	return count, nil
}

// insertHistoryTx writes the terminal snapshot inside the caller's transaction
func insertHistoryTx(ctx context.Context, tx *sql.Tx, item *domain.QueueItem, status domain.EmailStatus, processingTimeMs int64, errorDetails *string) error {
	query := `
		INSERT INTO email_history (queue_id, priority, to_emails, cc_emails, bcc_emails,
			subject, body, is_html, template_id, status, retry_count, processing_time_ms,
			processed_by, error_details, sent_at, created_by, request_source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), $15, $16)
	`

	_, err := tx.ExecContext(ctx, query,
		item.QueueID, item.Priority, item.ToEmails, nullString(item.CCEmails),
		nullString(item.BCCEmails), item.Subject, item.Body, item.IsHTML,
		item.TemplateID, status, item.RetryCount, processingTimeMs,
		item.ProcessedBy, errorDetails, item.CreatedBy, nullString(item.RequestSource),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history row: %w", err)
	}

	return nil
}

// insertAttachmentRowsTx stores the attachment audit rows for one queue item
func insertAttachmentRowsTx(ctx context.Context, tx *sql.Tx, queueID string, attachments []domain.AttachmentData, now time.Time) error {
	if len(attachments) == 0 {
		return nil
	}

	builder := psql.
		Insert("email_attachments").
		Columns("queue_id", "file_name", "content_type", "content_id", "is_inline", "content", "size_bytes", "created_at")

	for i := range attachments {
		a := &attachments[i]
		var content []byte
		if a.Content != "" {
			decoded, err := a.DecodeContent()
			if err != nil {
				return fmt.Errorf("failed to decode attachment content: %w", err)
			}
			content = decoded
		}
		builder = builder.Values(queueID, a.FileName, a.ContentType, nullString(a.ContentID), a.IsInline, content, int64(len(content)), now)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert attachment rows: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanQueueItem scans a row into a QueueItem
func scanQueueItem(row rowScanner) (*domain.QueueItem, error) {
	var item domain.QueueItem
	var ccEmails, bccEmails, replyTo, requestSource sql.NullString
	var templateID sql.NullInt64
	var templateData sql.NullString
	var attachmentsJSON, headersJSON []byte
	var scheduledFor, processingStartedAt, processedAt sql.NullTime
	var processedBy, errorMessage sql.NullString

	err := row.Scan(
		&item.QueueID, &item.Priority, &item.ToEmails, &ccEmails, &bccEmails, &replyTo,
		&item.Subject, &item.Body, &item.IsHTML, &templateID, &templateData,
		&item.RequiresTemplateProcessing, &attachmentsJSON, &item.HasEmbeddedImages,
		&headersJSON, &item.RequestDeliveryNotification, &item.RequestReadReceipt,
		&item.Status, &item.RetryCount, &item.MaxRetries, &item.IsScheduled,
		&scheduledFor, &processingStartedAt, &processedAt, &processedBy, &errorMessage,
		&item.CreatedAt, &item.UpdatedAt, &item.CreatedBy, &requestSource,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan queue item: %w", err)
	}

	item.CCEmails = ccEmails.String
	item.BCCEmails = bccEmails.String
	item.ReplyTo = replyTo.String
	item.RequestSource = requestSource.String
	if templateID.Valid {
		item.TemplateID = &templateID.Int64
	}
	item.TemplateData = templateData.String
	if scheduledFor.Valid {
		item.ScheduledFor = &scheduledFor.Time
	}
	if processingStartedAt.Valid {
		item.ProcessingStartedAt = &processingStartedAt.Time
	}
	if processedAt.Valid {
		item.ProcessedAt = &processedAt.Time
	}
	if processedBy.Valid {
		item.ProcessedBy = &processedBy.String
	}
	if errorMessage.Valid {
		item.ErrorMessage = &errorMessage.String
	}

	if len(attachmentsJSON) > 0 {
		if err := json.Unmarshal(attachmentsJSON, &item.Attachments); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attachments: %w", err)
		}
	}
	if len(headersJSON) > 0 {
		if err := json.Unmarshal(headersJSON, &item.Headers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal headers: %w", err)
		}
	}

	return &item, nil
}

// nullString maps the empty string to SQL NULL
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
