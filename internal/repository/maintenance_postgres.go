package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// pipelineTables are the tables maintained by Analyze and Reindex
var pipelineTables = []string{
	"email_queue",
	"email_templates",
	"scheduled_emails",
	"email_history",
	"email_attachments",
	"service_status",
	"processing_logs",
}

// MaintenanceRepository implements domain.MaintenanceRepository on PostgreSQL
type MaintenanceRepository struct {
	db *sql.DB
}

// NewMaintenanceRepository creates a new MaintenanceRepository
func NewMaintenanceRepository(db *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// DeleteOrphanedAttachments removes attachment rows whose queue_id is
// referenced by neither a live queue item nor a history row
func (r *MaintenanceRepository) DeleteOrphanedAttachments(ctx context.Context, limit int) (int64, error) {
	query := `
		DELETE FROM email_attachments
		WHERE id IN (
			SELECT a.id FROM email_attachments a
			WHERE NOT EXISTS (SELECT 1 FROM email_queue q WHERE q.queue_id = a.queue_id)
			  AND NOT EXISTS (SELECT 1 FROM email_history h WHERE h.queue_id = a.queue_id)
			LIMIT $1
		)
	`

	result, err := r.db.ExecContext(ctx, query, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphaned attachments: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}

// DeleteAttachmentsOlderThan removes attachment rows created before the cutoff
func (r *MaintenanceRepository) DeleteAttachmentsOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	query := `
		DELETE FROM email_attachments
		WHERE id IN (
			SELECT a.id FROM email_attachments a
			WHERE a.created_at < $1
			ORDER BY a.created_at ASC
			LIMIT $2
		)
	`

	result, err := r.db.ExecContext(ctx, query, cutoff.UTC(), limit)
	if err != nil {
		return 0, fmt.Errorf("failed to delete aged attachments: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}

// DeleteTerminalQueueItems removes Failed and Cancelled rows past the cutoff
// along with Sent rows that already have their history snapshot
func (r *MaintenanceRepository) DeleteTerminalQueueItems(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	query := `
		DELETE FROM email_queue
		WHERE queue_id IN (
			SELECT q.queue_id FROM email_queue q
			WHERE q.updated_at < $1
			  AND (q.status IN ('failed', 'cancelled')
			       OR (q.status = 'sent' AND EXISTS (SELECT 1 FROM email_history h WHERE h.queue_id = q.queue_id)))
			ORDER BY q.updated_at ASC
			LIMIT $2
		)
	`

	result, err := r.db.ExecContext(ctx, query, cutoff.UTC(), limit)
	if err != nil {
		return 0, fmt.Errorf("failed to delete terminal queue items: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}

// DatabaseSize returns the current database size in bytes
func (r *MaintenanceRepository) DatabaseSize(ctx context.Context) (int64, error) {
	var size int64
	err := r.db.QueryRowContext(ctx, `SELECT pg_database_size(current_database())`).Scan(&size)
	if err != nil {
		return 0, fmt.Errorf("failed to get database size: %w", err)
	}
	return size, nil
}

// Analyze refreshes planner statistics for the pipeline tables
func (r *MaintenanceRepository) Analyze(ctx context.Context) error {
	for _, table := range pipelineTables {
		if _, err := r.db.ExecContext(ctx, fmt.Sprintf("ANALYZE %s", table)); err != nil {
			return fmt.Errorf("failed to analyze table %s: %w", table, err)
		}
	}
	return nil
}

// Reindex rebuilds the pipeline table indexes
func (r *MaintenanceRepository) Reindex(ctx context.Context) error {
	for _, table := range pipelineTables {
		if _, err := r.db.ExecContext(ctx, fmt.Sprintf("REINDEX TABLE %s", table)); err != nil {
			return fmt.Errorf("failed to reindex table %s: %w", table, err)
		}
	}
	return nil
}
