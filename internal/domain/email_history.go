package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_email_history_repository.go -package mocks github.com/mailroom/mailroom/internal/domain EmailHistoryRepository

// EmailHistory is the terminal-transition snapshot of a queue item. queue_id
// is the join key back to the (possibly already cleaned up) queue row.
type EmailHistory struct {
	ID               int64         `json:"id"`
	QueueID          string        `json:"queue_id"`
	Priority         EmailPriority `json:"priority"`
	ToEmails         string        `json:"to_emails"`
	CCEmails         string        `json:"cc_emails,omitempty"`
	BCCEmails        string        `json:"bcc_emails,omitempty"`
	Subject          string        `json:"subject"`
	Body             string        `json:"body"` // final rendered body
	IsHTML           bool          `json:"is_html"`
	TemplateID       *int64        `json:"template_id,omitempty"`
	Status           EmailStatus   `json:"status"`
	RetryCount       int           `json:"retry_count"`
	ProcessingTimeMs int64         `json:"processing_time_ms"`
	ProcessedBy      *string       `json:"processed_by,omitempty"`
	ErrorDetails     *string       `json:"error_details,omitempty"`
	SentAt           time.Time     `json:"sent_at"`
	CreatedBy        string        `json:"created_by"`
	RequestSource    string        `json:"request_source,omitempty"`
}

// HistoryFilter drives paged history listing
type HistoryFilter struct {
	Status     EmailStatus
	TemplateID *int64
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

// DeliveryStats aggregates outcomes over a time window
type DeliveryStats struct {
	TotalSent            int64   `json:"total_sent"`
	TotalFailed          int64   `json:"total_failed"`
	SuccessRate          float64 `json:"success_rate"`
	AvgProcessingTimeMs  float64 `json:"avg_processing_time_ms"`
	AvgRetryCount        float64 `json:"avg_retry_count"`
}

// EmailHistoryRepository defines data access for history snapshots.
// Inserts happen inside the queue repository's terminal transactions; this
// interface serves reads and retention.
type EmailHistoryRepository interface {
	// GetByQueueID fetches the snapshot for one queue item
	GetByQueueID(ctx context.Context, queueID string) (*EmailHistory, error)

	// List returns a filtered page plus the total match count
	List(ctx context.Context, filter HistoryFilter) ([]*EmailHistory, int64, error)

	// Stats aggregates outcomes between from and to
	Stats(ctx context.Context, from, to time.Time) (*DeliveryStats, error)

	// ListOlderThan returns up to limit rows with sent_at before the cutoff,
	// oldest first; used by the archiver.
	ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*EmailHistory, error)

	// DeleteByIDs removes rows after they were archived
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)

	// DeleteOlderThan removes up to limit rows past the cutoff without
	// archiving them.
	DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}
