package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_scheduled_email_repository.go -package mocks github.com/mailroom/mailroom/internal/domain ScheduledEmailRepository

// ScheduledEmail is an independent schedule rule that materializes queue
// items when due. Recurrence advances next_run_time by interval_minutes when
// set, otherwise by one day until a cron parser lands.
type ScheduledEmail struct {
	ID        int64         `json:"id"`
	Priority  EmailPriority `json:"priority"`
	ToEmails  string        `json:"to_emails"`
	CCEmails  string        `json:"cc_emails,omitempty"`
	BCCEmails string        `json:"bcc_emails,omitempty"`
	ReplyTo   string        `json:"reply_to,omitempty"`
	Subject   string        `json:"subject"`
	Body      string        `json:"body"`
	IsHTML    bool          `json:"is_html"`

	TemplateID   *int64 `json:"template_id,omitempty"`
	TemplateData string `json:"template_data,omitempty"`

	Attachments []AttachmentData  `json:"attachments,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`

	NextRunTime     time.Time  `json:"next_run_time"`
	IntervalMinutes *int       `json:"interval_minutes,omitempty"`
	CronExpression  *string    `json:"cron_expression,omitempty"`
	IsRecurring     bool       `json:"is_recurring"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	MaxExecutions   *int       `json:"max_executions,omitempty"`

	ExecutionCount      int         `json:"execution_count"`
	LastExecutedAt      *time.Time  `json:"last_executed_at,omitempty"`
	LastExecutionStatus *string     `json:"last_execution_status,omitempty"`
	LastExecutionError  *string     `json:"last_execution_error,omitempty"`
	IsActive            bool        `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
}

// Validate checks structural requirements at schedule time
func (s *ScheduledEmail) Validate(now time.Time) error {
	if s.ToEmails == "" {
		return NewValidationError("recipient list is required")
	}
	if s.Subject == "" && s.TemplateID == nil {
		return NewValidationError("subject is required when no template is set")
	}
	if s.NextRunTime.IsZero() {
		return NewValidationError("next run time is required")
	}
	if !s.IsRecurring && s.NextRunTime.Before(now.Add(-time.Minute)) {
		return NewValidationError("next run time must not be in the past")
	}
	if s.IntervalMinutes != nil && *s.IntervalMinutes < 1 {
		return NewValidationError("interval minutes must be positive")
	}
	if s.MaxExecutions != nil && *s.MaxExecutions < 1 {
		return NewValidationError("max executions must be positive")
	}
	if s.EndDate != nil && s.EndDate.Before(s.NextRunTime) {
		return NewValidationError("end date must be after next run time")
	}
	return nil
}

// AdvanceAfterRun applies step 3-5 of the due-processing contract: bump the
// execution counters and either advance next_run_time or deactivate.
func (s *ScheduledEmail) AdvanceAfterRun(now time.Time, status string, execErr error) {
	s.ExecutionCount++
	s.LastExecutedAt = &now
	s.LastExecutionStatus = &status
	if execErr != nil {
		msg := execErr.Error()
		s.LastExecutionError = &msg
	} else {
		s.LastExecutionError = nil
	}

	if !s.IsRecurring {
		s.IsActive = false
		return
	}

	if s.IntervalMinutes != nil {
		s.NextRunTime = s.NextRunTime.Add(time.Duration(*s.IntervalMinutes) * time.Minute)
	} else {
		// cron expressions are stored but not evaluated yet
		s.NextRunTime = s.NextRunTime.Add(24 * time.Hour)
	}
	// catch up past the current time so a long outage does not replay every
	// missed occurrence
	for !s.NextRunTime.After(now) {
		if s.IntervalMinutes != nil {
			s.NextRunTime = s.NextRunTime.Add(time.Duration(*s.IntervalMinutes) * time.Minute)
		} else {
			s.NextRunTime = s.NextRunTime.Add(24 * time.Hour)
		}
	}

	if s.EndDate != nil && s.NextRunTime.After(*s.EndDate) {
		s.IsActive = false
	}
	if s.MaxExecutions != nil && s.ExecutionCount >= *s.MaxExecutions {
		s.IsActive = false
	}
}

// ToQueueItem materializes the payload as a fresh queue item
func (s *ScheduledEmail) ToQueueItem(queueID string, now time.Time) *QueueItem {
	return &QueueItem{
		QueueID:                    queueID,
		Priority:                   s.Priority,
		ToEmails:                   s.ToEmails,
		CCEmails:                   s.CCEmails,
		BCCEmails:                  s.BCCEmails,
		ReplyTo:                    s.ReplyTo,
		Subject:                    s.Subject,
		Body:                       s.Body,
		IsHTML:                     s.IsHTML,
		TemplateID:                 s.TemplateID,
		TemplateData:               s.TemplateData,
		RequiresTemplateProcessing: s.TemplateID != nil,
		Attachments:                s.Attachments,
		Headers:                    s.Headers,
		Status:                     EmailStatusQueued,
		MaxRetries:                 DefaultMaxRetries,
		CreatedAt:                  now,
		UpdatedAt:                  now,
		CreatedBy:                  s.CreatedBy,
		RequestSource:              "scheduler",
	}
}

// ScheduledEmailRepository defines data access for schedule rules
type ScheduledEmailRepository interface {
	// Create inserts a rule and returns its id
	Create(ctx context.Context, email *ScheduledEmail) error

	// Update persists rule changes
	Update(ctx context.Context, email *ScheduledEmail) error

	// GetByID fetches one rule
	GetByID(ctx context.Context, id int64) (*ScheduledEmail, error)

	// GetDue returns active rules with next_run_time at or before now,
	// ordered by next_run_time.
	GetDue(ctx context.Context, now time.Time, limit int) ([]*ScheduledEmail, error)

	// ListInRange lists rules whose next_run_time falls inside [from, to]
	ListInRange(ctx context.Context, from, to time.Time) ([]*ScheduledEmail, error)

	// Deactivate flips is_active off; returns false when the rule is missing
	// or already inactive.
	Deactivate(ctx context.Context, id int64) (bool, error)

	// Reschedule moves an active rule's next_run_time
	Reschedule(ctx context.Context, id int64, at time.Time) (bool, error)

	// DeleteOld removes inactive rules past the retention window
	DeleteOld(ctx context.Context, olderThan time.Time, limit int) (int64, error)
}
