package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mailroom/mailroom/internal/domain"
)

// AttachmentRepository implements domain.AttachmentRepository on PostgreSQL
type AttachmentRepository struct {
	db *sql.DB
}

// NewAttachmentRepository creates a new AttachmentRepository
func NewAttachmentRepository(db *sql.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// InsertForQueueItem stores audit rows for every attachment of an item
func (r *AttachmentRepository) InsertForQueueItem(ctx context.Context, queueID string, attachments []domain.AttachmentData) error {
	if len(attachments) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertAttachmentRowsTx(ctx, tx, queueID, attachments, time.Now().UTC()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListByQueueID returns the audit rows for one item
func (r *AttachmentRepository) ListByQueueID(ctx context.Context, queueID string) ([]*domain.EmailAttachment, error) {
	query := `
		SELECT id, queue_id, file_name, content_type, content_id, is_inline, content, size_bytes, created_at
		FROM email_attachments
		WHERE queue_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, queueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments: %w", err)
	}
	defer rows.Close()

	var attachments []*domain.EmailAttachment
	for rows.Next() {
		var a domain.EmailAttachment
		var contentID sql.NullString
		if err := rows.Scan(&a.ID, &a.QueueID, &a.FileName, &a.ContentType, &contentID, &a.IsInline, &a.Content, &a.SizeBytes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		a.ContentID = contentID.String
		attachments = append(attachments, &a)
	}

	return attachments, rows.Err()
}
