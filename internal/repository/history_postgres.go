package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mailroom/mailroom/internal/domain"
)

const historyColumns = `id, queue_id, priority, to_emails, cc_emails, bcc_emails, subject, body,
	       is_html, template_id, status, retry_count, processing_time_ms, processed_by,
	       error_details, sent_at, created_by, request_source`

// HistoryRepository implements domain.EmailHistoryRepository on PostgreSQL
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// GetByQueueID fetches the snapshot for one queue item
func (r *HistoryRepository) GetByQueueID(ctx context.Context, queueID string) (*domain.EmailHistory, error) {
	query := fmt.Sprintf(`SELECT %s FROM email_history WHERE queue_id = $1 ORDER BY sent_at DESC LIMIT 1`, historyColumns)

	history, err := scanHistory(r.db.QueryRowContext(ctx, query, queueID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "history", ID: queueID}
		}
		return nil, err
	}

	return history, nil
}

// List returns a filtered page plus the total match count
func (r *HistoryRepository) List(ctx context.Context, filter domain.HistoryFilter) ([]*domain.EmailHistory, int64, error) {
	conditions := sq.And{}
	if filter.Status != "" {
		conditions = append(conditions, sq.Eq{"status": filter.Status})
	}
	if filter.TemplateID != nil {
		conditions = append(conditions, sq.Eq{"template_id": *filter.TemplateID})
	}
	if filter.From != nil {
		conditions = append(conditions, sq.GtOrEq{"sent_at": filter.From.UTC()})
	}
	if filter.To != nil {
		conditions = append(conditions, sq.LtOrEq{"sent_at": filter.To.UTC()})
	}

	countBuilder := psql.Select("COUNT(*)").From("email_history")
	if len(conditions) > 0 {
		countBuilder = countBuilder.Where(conditions)
	}
	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count history rows: %w", err)
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
		Select(historyColumns).
		From("email_history").
		OrderBy("sent_at DESC").
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
		return nil, 0, fmt.Errorf("failed to list history rows: %w", err)
	}
	defer rows.Close()

	var entries []*domain.EmailHistory
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}

	return entries, total, rows.Err()
}

// Stats aggregates delivery outcomes between from and to
func (r *HistoryRepository) Stats(ctx context.Context, from, to time.Time) (*domain.DeliveryStats, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN status = 'sent' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(CASE WHEN status = 'sent' THEN processing_time_ms END), 0),
			COALESCE(AVG(retry_count), 0)
		FROM email_history
		WHERE sent_at >= $1 AND sent_at <= $2
	`

	var stats domain.DeliveryStats
	err := r.db.QueryRowContext(ctx, query, from.UTC(), to.UTC()).Scan(
		&stats.TotalSent, &stats.TotalFailed, &stats.AvgProcessingTimeMs, &stats.AvgRetryCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery stats: %w", err)
	}

	if total := stats.TotalSent + stats.TotalFailed; total > 0 {
		stats.SuccessRate = float64(stats.TotalSent) / float64(total)
	}

	return &stats, nil
}

// ListOlderThan returns up to limit rows past the cutoff, oldest first
func (r *HistoryRepository) ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*domain.EmailHistory, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM email_history
		WHERE sent_at < $1
		ORDER BY sent_at ASC
		LIMIT $2`, historyColumns)

	rows, err := r.db.QueryContext(ctx, query, cutoff.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query old history rows: %w", err)
	}
	defer rows.Close()

	var entries []*domain.EmailHistory
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// DeleteByIDs removes rows after they were archived
func (r *HistoryRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := psql.Delete("email_history").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete history rows: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}

// DeleteOlderThan removes up to limit rows past the cutoff without archiving
func (r *HistoryRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	query := `
		DELETE FROM email_history
		WHERE id IN (
			SELECT id FROM email_history WHERE sent_at < $1 ORDER BY sent_at ASC LIMIT $2
		)
	`

	result, err := r.db.ExecContext(ctx, query, cutoff.UTC(), limit)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old history rows: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}

// scanHistory scans a row into an EmailHistory
func scanHistory(row rowScanner) (*domain.EmailHistory, error) {
	var entry domain.EmailHistory
	var ccEmails, bccEmails, createdBy, requestSource sql.NullString
	var templateID sql.NullInt64
	var processedBy, errorDetails sql.NullString

	err := row.Scan(
		&entry.ID, &entry.QueueID, &entry.Priority, &entry.ToEmails, &ccEmails,
		&bccEmails, &entry.Subject, &entry.Body, &entry.IsHTML, &templateID,
		&entry.Status, &entry.RetryCount, &entry.ProcessingTimeMs, &processedBy,
		&errorDetails, &entry.SentAt, &createdBy, &requestSource,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan history row: %w", err)
	}

	entry.CCEmails = ccEmails.String
	entry.BCCEmails = bccEmails.String
	entry.CreatedBy = createdBy.String
	entry.RequestSource = requestSource.String
	if templateID.Valid {
		entry.TemplateID = &templateID.Int64
	}
	if processedBy.Valid {
		entry.ProcessedBy = &processedBy.String
	}
	if errorDetails.Valid {
		entry.ErrorDetails = &errorDetails.String
	}

	return &entry, nil
}
