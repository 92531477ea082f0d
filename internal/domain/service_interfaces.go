package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_services.go -package mocks github.com/mailroom/mailroom/internal/domain QueueService,TemplateService,SchedulerService,HealthService,CleanupService

// EnqueueRequest is the normalized input of the enqueue operations
type EnqueueRequest struct {
	ToEmails     string            `json:"to_emails"`
	CCEmails     string            `json:"cc_emails,omitempty"`
	BCCEmails    string            `json:"bcc_emails,omitempty"`
	ReplyTo      string            `json:"reply_to,omitempty"`
	Subject      string            `json:"subject"`
	Body         string            `json:"body"`
	IsHTML       *bool             `json:"is_html,omitempty"` // default true
	Priority     string            `json:"priority,omitempty"`
	TemplateID   *int64            `json:"template_id,omitempty"`
	TemplateName string            `json:"template_name,omitempty"`
	TemplateData map[string]string `json:"template_data,omitempty"`
	Attachments  []AttachmentData  `json:"attachments,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`

	RequestDeliveryNotification bool `json:"request_delivery_notification,omitempty"`
	RequestReadReceipt          bool `json:"request_read_receipt,omitempty"`

	ScheduledFor  *time.Time `json:"scheduled_for,omitempty"`
	MaxRetries    *int       `json:"max_retries,omitempty"`
	CreatedBy     string     `json:"created_by"`
	RequestSource string     `json:"request_source,omitempty"`
}

// EnqueueResult acknowledges a single accepted item
type EnqueueResult struct {
	QueueID  string      `json:"queue_id"`
	QueuedAt time.Time   `json:"queued_at"`
	Status   EmailStatus `json:"status"`
}

// BulkEnqueueResult acknowledges a batch
type BulkEnqueueResult struct {
	Accepted []EnqueueResult    `json:"accepted"`
	Rejected []BulkRejectedItem `json:"rejected,omitempty"`
}

// BulkRejectedItem names one refused batch entry by its position
type BulkRejectedItem struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// EmailStatusResponse is the GET /status payload
type EmailStatusResponse struct {
	QueueID      string      `json:"queue_id"`
	Status       EmailStatus `json:"status"`
	Priority     string      `json:"priority"`
	RetryCount   int         `json:"retry_count"`
	MaxRetries   int         `json:"max_retries"`
	ErrorMessage *string     `json:"error_message,omitempty"`
	ScheduledFor *time.Time  `json:"scheduled_for,omitempty"`
	ProcessedAt  *time.Time  `json:"processed_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// QueueService is the enqueue-side application surface
type QueueService interface {
	// Enqueue validates and persists one send request
	Enqueue(ctx context.Context, req *EnqueueRequest) (*EnqueueResult, error)

	// EnqueueWithTemplate resolves the template reference at enqueue time and
	// persists a template-bound item.
	EnqueueWithTemplate(ctx context.Context, req *EnqueueRequest) (*EnqueueResult, error)

	// BulkEnqueue validates each item and atomically inserts the valid ones
	BulkEnqueue(ctx context.Context, reqs []*EnqueueRequest) (*BulkEnqueueResult, error)

	// GetStatus returns the current row state for one item
	GetStatus(ctx context.Context, queueID string) (*EmailStatusResponse, error)

	// GetStatusBatch returns states for several ids; missing ids are skipped
	GetStatusBatch(ctx context.Context, queueIDs []string) ([]*EmailStatusResponse, error)

	// Attachments lists the attachment audit rows recorded for one item
	Attachments(ctx context.Context, queueID string) ([]*EmailAttachment, error)

	// Cancel transitions a Queued or Scheduled item to Cancelled
	Cancel(ctx context.Context, queueID string) (bool, error)

	// UpdatePriority changes a Queued item's priority
	UpdatePriority(ctx context.Context, queueID string, priority EmailPriority) (bool, error)

	// Reschedule defers a Queued item to a future time
	Reschedule(ctx context.Context, queueID string, at time.Time) (bool, error)

	// List returns a filtered page of queue rows
	List(ctx context.Context, filter QueueFilter) ([]*QueueItem, int64, error)

	// Statistics aggregates queue and delivery counters
	Statistics(ctx context.Context, from, to time.Time) (*QueueStatistics, error)
}

// QueueStatistics combines live queue stats with history outcomes
type QueueStatistics struct {
	Queue    *QueueStats    `json:"queue"`
	Delivery *DeliveryStats `json:"delivery"`
	From     time.Time      `json:"from"`
	To       time.Time      `json:"to"`
}

// TemplateProcessResult is the output of template resolution
type TemplateProcessResult struct {
	Subject             string   `json:"subject"`
	Body                string   `json:"body"`
	MissingPlaceholders []string `json:"missing_placeholders,omitempty"`
}

// TemplateService manages templates and performs placeholder substitution
type TemplateService interface {
	Create(ctx context.Context, template *EmailTemplate) error
	Update(ctx context.Context, template *EmailTemplate) error
	GetByID(ctx context.Context, id int64) (*EmailTemplate, error)
	GetByName(ctx context.Context, name string) (*EmailTemplate, error)
	List(ctx context.Context, category string, activeOnly bool) ([]*EmailTemplate, error)
	Delete(ctx context.Context, id int64) error

	// Process resolves the template and substitutes the given values in one
	// pass over subject and body.
	Process(ctx context.Context, templateID int64, values map[string]string) (*TemplateProcessResult, error)

	// Validate inspects a subject/body pair without persisting anything
	Validate(subject, body string) *TemplateValidationResult

	// Clone copies a template under a new name with version 1 and the system
	// flag cleared.
	Clone(ctx context.Context, id int64, newName string) (*EmailTemplate, error)

	// UsageStats aggregates delivery outcomes for one template
	UsageStats(ctx context.Context, id int64) (*TemplateUsageStats, error)
}

// SchedulerService manages schedule rules and materializes due ones
type SchedulerService interface {
	Schedule(ctx context.Context, email *ScheduledEmail) (int64, error)
	Cancel(ctx context.Context, id int64) (bool, error)
	Reschedule(ctx context.Context, id int64, at time.Time) (bool, error)
	ListInRange(ctx context.Context, from, to time.Time) ([]*ScheduledEmail, error)

	// ProcessDue materializes every due rule into a queue item and advances
	// or deactivates the rule. Returns the number processed.
	ProcessDue(ctx context.Context) (int, error)
}

// HealthService reports liveness and emits alerts
type HealthService interface {
	// Check runs every probe and aggregates the verdict
	Check(ctx context.Context) (*HealthReport, error)

	// Heartbeat upserts this process's ServiceStatus row
	Heartbeat(ctx context.Context) error

	// Alert fans an operator alert out to the configured channels
	Alert(ctx context.Context, level, title, message string) error
}

// CleanupService runs retention, archival and maintenance passes
type CleanupService interface {
	RunScheduledPass(ctx context.Context) (*CleanupResult, error)
	PerformFullCleanup(ctx context.Context) (*CleanupResult, error)
	PerformAggressiveCleanup(ctx context.Context, targetFreePercent float64) (*CleanupResult, error)
	ArchiveEmailHistory(ctx context.Context, retentionDays int, dir string) (int64, string, error)
	AnalyzeDiskSpace(ctx context.Context) (*DiskSpaceReport, error)
	CreateBackup(ctx context.Context) (string, error)
	OptimizeDatabase(ctx context.Context) error
}
