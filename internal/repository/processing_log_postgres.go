package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mailroom/mailroom/internal/domain"
)

// ProcessingLogRepository implements domain.ProcessingLogRepository on PostgreSQL
type ProcessingLogRepository struct {
	db *sql.DB
}

// NewProcessingLogRepository creates a new ProcessingLogRepository
func NewProcessingLogRepository(db *sql.DB) *ProcessingLogRepository {
	return &ProcessingLogRepository{db: db}
}

// Insert appends one entry
func (r *ProcessingLogRepository) Insert(ctx context.Context, entry *domain.ProcessingLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO processing_logs (level, category, message, queue_id, worker_id, processing_step, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		entry.Level, entry.Category, entry.Message, entry.QueueID,
		nullString(entry.WorkerID), nullString(entry.ProcessingStep), entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to insert processing log: %w", err)
	}

	return nil
}

// ListByQueueID returns the trail for one item, oldest first
func (r *ProcessingLogRepository) ListByQueueID(ctx context.Context, queueID string) ([]*domain.ProcessingLog, error) {
	query := `
		SELECT id, level, category, message, queue_id, worker_id, processing_step, created_at
		FROM processing_logs
		WHERE queue_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, queueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query processing logs: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ProcessingLog
	for rows.Next() {
		var entry domain.ProcessingLog
		var qid, workerID, step sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Level, &entry.Category, &entry.Message,
			&qid, &workerID, &step, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan processing log: %w", err)
		}
		if qid.Valid {
			entry.QueueID = &qid.String
		}
		entry.WorkerID = workerID.String
		entry.ProcessingStep = step.String
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// DeleteOlderThan removes up to limit entries past the cutoff
func (r *ProcessingLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	query := `
		DELETE FROM processing_logs
		WHERE id IN (
			SELECT id FROM processing_logs WHERE created_at < $1 ORDER BY created_at ASC LIMIT $2
		)
	`

	result, err := r.db.ExecContext(ctx, query, cutoff.UTC(), limit)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old processing logs: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}
