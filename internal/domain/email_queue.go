package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_email_queue_repository.go -package mocks github.com/mailroom/mailroom/internal/domain EmailQueueRepository

// EmailStatus represents the lifecycle state of a queued email
type EmailStatus string

const (
	EmailStatusQueued     EmailStatus = "queued"
	EmailStatusScheduled  EmailStatus = "scheduled"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
	EmailStatusCancelled  EmailStatus = "cancelled"
)

// IsTerminal reports whether the status can never be transitioned out of
func (s EmailStatus) IsTerminal() bool {
	return s == EmailStatusSent || s == EmailStatusFailed || s == EmailStatusCancelled
}

// EmailPriority orders claims: lower values are claimed first
type EmailPriority int

const (
	PriorityHigh   EmailPriority = 1
	PriorityNormal EmailPriority = 2
	PriorityLow    EmailPriority = 3
)

func (p EmailPriority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityLow:
		return "low"
	default:
		return "normal"
	}
}

// ParsePriority maps an API string to a priority; empty means Normal.
func ParsePriority(s string) (EmailPriority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return PriorityNormal, nil
	case "high":
		return PriorityHigh, nil
	case "low":
		return PriorityLow, nil
	default:
		return 0, NewValidationError(fmt.Sprintf("unknown priority %q", s))
	}
}

// MarshalJSON renders the priority as its API string
func (p EmailPriority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts both "high"/"normal"/"low" and legacy numeric values
func (p *EmailPriority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, perr := ParsePriority(s)
		if perr != nil {
			return perr
		}
		*p = parsed
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid priority: %s", string(data))
	}
	if n < int(PriorityHigh) || n > int(PriorityLow) {
		return NewValidationError(fmt.Sprintf("priority out of range: %d", n))
	}
	*p = EmailPriority(n)
	return nil
}

// DefaultMaxRetries applies when the caller did not specify a cap
const DefaultMaxRetries = 3

// QueueItem is one durable send request. Its queue_id is stable across all
// state transitions and is the join key into history and attachments.
type QueueItem struct {
	QueueID   string        `json:"queue_id"`
	Priority  EmailPriority `json:"priority"`
	ToEmails  string        `json:"to_emails"`
	CCEmails  string        `json:"cc_emails,omitempty"`
	BCCEmails string        `json:"bcc_emails,omitempty"`
	ReplyTo   string        `json:"reply_to,omitempty"`
	Subject   string        `json:"subject"`
	Body      string        `json:"body"`
	IsHTML    bool          `json:"is_html"`

	TemplateID                 *int64 `json:"template_id,omitempty"`
	TemplateData               string `json:"template_data,omitempty"` // JSON object: placeholder name -> string
	RequiresTemplateProcessing bool   `json:"requires_template_processing"`

	Attachments       []AttachmentData `json:"attachments,omitempty"`
	HasEmbeddedImages bool             `json:"has_embedded_images"`

	Headers                     map[string]string `json:"headers,omitempty"`
	RequestDeliveryNotification bool              `json:"request_delivery_notification,omitempty"`
	RequestReadReceipt          bool              `json:"request_read_receipt,omitempty"`

	Status      EmailStatus `json:"status"`
	RetryCount  int         `json:"retry_count"`
	MaxRetries  int         `json:"max_retries"`
	IsScheduled bool        `json:"is_scheduled"`

	ScheduledFor        *time.Time `json:"scheduled_for,omitempty"`
	ProcessingStartedAt *time.Time `json:"processing_started_at,omitempty"`
	ProcessedAt         *time.Time `json:"processed_at,omitempty"`
	ProcessedBy         *string    `json:"processed_by,omitempty"`
	ErrorMessage        *string    `json:"error_message,omitempty"`

	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	CreatedBy     string    `json:"created_by"`
	RequestSource string    `json:"request_source,omitempty"`
}

// InitialStatus decides between Queued and Scheduled at enqueue time.
// A scheduled_for in the past enqueues immediately.
func (i *QueueItem) InitialStatus(now time.Time) EmailStatus {
	if i.IsScheduled && i.ScheduledFor != nil && i.ScheduledFor.After(now) {
		return EmailStatusScheduled
	}
	return EmailStatusQueued
}

// NextRetryTime computes the delayed-retry slot: now + retry_count × base.
func NextRetryTime(now time.Time, retryCount int, base time.Duration) time.Time {
	if retryCount < 1 {
		retryCount = 1
	}
	return now.Add(time.Duration(retryCount) * base)
}

// QueueStats is the Statistics() payload
type QueueStats struct {
	ByStatus          map[EmailStatus]int64   `json:"by_status"`
	PendingByPriority map[EmailPriority]int64 `json:"pending_by_priority"`
	OldestQueuedAt    *time.Time              `json:"oldest_queued_at,omitempty"`
	AvgQueueLatencyMs float64                 `json:"avg_queue_latency_ms"`
	Total             int64                   `json:"total"`
}

// QueueFilter drives the paged list endpoint
type QueueFilter struct {
	Status   EmailStatus
	Priority EmailPriority
	From     *time.Time
	To       *time.Time
	Search   string
	Page     int
	PageSize int
}

// EmailQueueRepository defines data access for the email queue.
//
// ClaimBatch and ClaimDueScheduled must be safe under concurrent dispatchers:
// at most one worker owns a row between transitions out of Queued/Scheduled.
type EmailQueueRepository interface {
	// Enqueue persists one item in a single transaction, along with its
	// attachment audit rows.
	Enqueue(ctx context.Context, item *QueueItem) error

	// BulkEnqueue atomically inserts a batch.
	BulkEnqueue(ctx context.Context, items []*QueueItem) error

	// ClaimBatch atomically flips up to batchSize ready rows to Processing
	// and returns them. Ready means Queued and not deferred into the future.
	// Ordered by priority, then created_at.
	ClaimBatch(ctx context.Context, batchSize int, workerID string) ([]*QueueItem, error)

	// ClaimDueScheduled claims rows whose status is Scheduled and whose
	// scheduled_for has passed.
	ClaimDueScheduled(ctx context.Context, batchSize int, workerID string) ([]*QueueItem, error)

	// MarkSent records the terminal success and writes the history snapshot
	// in the same transaction.
	MarkSent(ctx context.Context, queueID, workerID string, processingTimeMs int64) error

	// MarkFailed increments retry_count. With shouldRetry and retries left the
	// row returns to Queued with a deferred scheduled_for; otherwise it goes
	// terminal Failed and the history snapshot is written.
	MarkFailed(ctx context.Context, queueID, errorMessage string, shouldRetry bool) error

	// Cancel succeeds only from Queued or Scheduled.
	Cancel(ctx context.Context, queueID string) (bool, error)

	// UpdatePriority is only valid while Queued.
	UpdatePriority(ctx context.Context, queueID string, priority EmailPriority) (bool, error)

	// Reschedule moves a Queued row to Scheduled at the given time.
	Reschedule(ctx context.Context, queueID string, at time.Time) (bool, error)

	// ResetStuck rewinds Processing rows older than the threshold back to
	// Queued without touching retry_count.
	ResetStuck(ctx context.Context, threshold time.Duration) (int64, error)

	// GetByID fetches one row.
	GetByID(ctx context.Context, queueID string) (*QueueItem, error)

	// GetBatch fetches several rows by id, preserving request order where found.
	GetBatch(ctx context.Context, queueIDs []string) ([]*QueueItem, error)

	// List returns a filtered page plus the total match count.
	List(ctx context.Context, filter QueueFilter) ([]*QueueItem, int64, error)

	// Stats aggregates counts, ages and latency.
	Stats(ctx context.Context) (*QueueStats, error)

	// CountTotal returns the full table count; used by the queue health probe.
	CountTotal(ctx context.Context) (int64, error)
}
