package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mailroom/mailroom/internal/domain"
)

const scheduledColumns = `id, priority, to_emails, cc_emails, bcc_emails, reply_to, subject, body,
	       is_html, template_id, template_data, attachments, headers, next_run_time,
	       interval_minutes, cron_expression, is_recurring, end_date, max_executions,
	       execution_count, last_executed_at, last_execution_status, last_execution_error,
	       is_active, created_at, updated_at, created_by`

// ScheduledEmailRepository implements domain.ScheduledEmailRepository on PostgreSQL
type ScheduledEmailRepository struct {
	db *sql.DB
}

// NewScheduledEmailRepository creates a new ScheduledEmailRepository
func NewScheduledEmailRepository(db *sql.DB) *ScheduledEmailRepository {
	return &ScheduledEmailRepository{db: db}
}

// Create inserts a rule and fills in its id
func (r *ScheduledEmailRepository) Create(ctx context.Context, email *domain.ScheduledEmail) error {
	now := time.Now().UTC()
	email.CreatedAt = now
	email.UpdatedAt = now
	email.IsActive = true

	attachmentsJSON, err := json.Marshal(email.Attachments)
	if err != nil {
		return fmt.Errorf("failed to marshal attachments: %w", err)
	}
	headersJSON, err := json.Marshal(email.Headers)
	if err != nil {
		return fmt.Errorf("failed to marshal headers: %w", err)
	}

	query := `
		INSERT INTO scheduled_emails (priority, to_emails, cc_emails, bcc_emails, reply_to,
			subject, body, is_html, template_id, template_data, attachments, headers,
			next_run_time, interval_minutes, cron_expression, is_recurring, end_date,
			max_executions, execution_count, is_active, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, 0, TRUE, $19, $20, $21)
		RETURNING id
	`

	var templateData interface{}
	if email.TemplateData != "" {
		templateData = email.TemplateData
	}

	err = r.db.QueryRowContext(ctx, query,
		email.Priority, email.ToEmails, nullString(email.CCEmails), nullString(email.BCCEmails),
		nullString(email.ReplyTo), email.Subject, email.Body, email.IsHTML,
		email.TemplateID, templateData, attachmentsJSON, headersJSON,
		email.NextRunTime.UTC(), email.IntervalMinutes, email.CronExpression,
		email.IsRecurring, email.EndDate, email.MaxExecutions,
		email.CreatedAt, email.UpdatedAt, email.CreatedBy,
	).Scan(&email.ID)
	if err != nil {
		return fmt.Errorf("failed to create scheduled email: %w", err)
	}

	return nil
}

// Update persists execution bookkeeping and recurrence state
func (r *ScheduledEmailRepository) Update(ctx context.Context, email *domain.ScheduledEmail) error {
	query := `
		UPDATE scheduled_emails
		SET next_run_time = $2, execution_count = $3, last_executed_at = $4,
		    last_execution_status = $5, last_execution_error = $6, is_active = $7,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		email.ID, email.NextRunTime.UTC(), email.ExecutionCount, email.LastExecutedAt,
		email.LastExecutionStatus, email.LastExecutionError, email.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update scheduled email: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return &domain.ErrNotFound{Entity: "scheduled email", ID: strconv.FormatInt(email.ID, 10)}
	}

	return nil
}

// GetByID fetches one rule
func (r *ScheduledEmailRepository) GetByID(ctx context.Context, id int64) (*domain.ScheduledEmail, error) {
	query := fmt.Sprintf(`SELECT %s FROM scheduled_emails WHERE id = $1`, scheduledColumns)

	email, err := scanScheduledEmail(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "scheduled email", ID: strconv.FormatInt(id, 10)}
		}
		return nil, err
	}

	return email, nil
}

// GetDue returns active rules whose next_run_time has passed, oldest first.
// Locks the rows so two scheduler instances never materialize the same rule.
func (r *ScheduledEmailRepository) GetDue(ctx context.Context, now time.Time, limit int) ([]*domain.ScheduledEmail, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM scheduled_emails
		WHERE is_active = TRUE AND next_run_time <= $1
		ORDER BY next_run_time ASC
		LIMIT $2
		FOR UPDATE SKIP LOCKED`, scheduledColumns)

	rows, err := r.db.QueryContext(ctx, query, now.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query due scheduled emails: %w", err)
	}
	defer rows.Close()

	var emails []*domain.ScheduledEmail
	for rows.Next() {
		email, err := scanScheduledEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}

	return emails, rows.Err()
}

// ListInRange lists rules whose next_run_time falls inside [from, to]
func (r *ScheduledEmailRepository) ListInRange(ctx context.Context, from, to time.Time) ([]*domain.ScheduledEmail, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM scheduled_emails
		WHERE next_run_time >= $1 AND next_run_time <= $2
		ORDER BY next_run_time ASC`, scheduledColumns)

	rows, err := r.db.QueryContext(ctx, query, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled emails: %w", err)
	}
	defer rows.Close()

	var emails []*domain.ScheduledEmail
	for rows.Next() {
		email, err := scanScheduledEmail(rows)
		if err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}

	return emails, rows.Err()
}

// Deactivate flips is_active off
func (r *ScheduledEmailRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE scheduled_emails SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return false, fmt.Errorf("failed to deactivate scheduled email: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// Reschedule moves an active rule's next_run_time
func (r *ScheduledEmailRepository) Reschedule(ctx context.Context, id int64, at time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE scheduled_emails SET next_run_time = $2, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`,
		id, at.UTC())
	if err != nil {
		return false, fmt.Errorf("failed to reschedule scheduled email: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// DeleteOld removes inactive rules past the retention window
func (r *ScheduledEmailRepository) DeleteOld(ctx context.Context, olderThan time.Time, limit int) (int64, error) {
	query := `
		DELETE FROM scheduled_emails
		WHERE id IN (
			SELECT id FROM scheduled_emails
			WHERE is_active = FALSE AND updated_at < $1
			LIMIT $2
		)
	`

	result, err := r.db.ExecContext(ctx, query, olderThan.UTC(), limit)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old scheduled emails: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected, nil
}

// scanScheduledEmail scans a row into a ScheduledEmail
func scanScheduledEmail(row rowScanner) (*domain.ScheduledEmail, error) {
	var email domain.ScheduledEmail
	var ccEmails, bccEmails, replyTo sql.NullString
	var templateID sql.NullInt64
	var templateData sql.NullString
	var attachmentsJSON, headersJSON []byte
	var intervalMinutes, maxExecutions sql.NullInt64
	var cronExpression, lastStatus, lastError sql.NullString
	var endDate, lastExecutedAt sql.NullTime

	err := row.Scan(
		&email.ID, &email.Priority, &email.ToEmails, &ccEmails, &bccEmails, &replyTo,
		&email.Subject, &email.Body, &email.IsHTML, &templateID, &templateData,
		&attachmentsJSON, &headersJSON, &email.NextRunTime, &intervalMinutes,
		&cronExpression, &email.IsRecurring, &endDate, &maxExecutions,
		&email.ExecutionCount, &lastExecutedAt, &lastStatus, &lastError,
		&email.IsActive, &email.CreatedAt, &email.UpdatedAt, &email.CreatedBy,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan scheduled email: %w", err)
	}

	email.CCEmails = ccEmails.String
	email.BCCEmails = bccEmails.String
	email.ReplyTo = replyTo.String
	if templateID.Valid {
		email.TemplateID = &templateID.Int64
	}
	email.TemplateData = templateData.String
	if intervalMinutes.Valid {
		v := int(intervalMinutes.Int64)
		email.IntervalMinutes = &v
	}
	if cronExpression.Valid {
		email.CronExpression = &cronExpression.String
	}
	if endDate.Valid {
		email.EndDate = &endDate.Time
	}
	if maxExecutions.Valid {
		v := int(maxExecutions.Int64)
		email.MaxExecutions = &v
	}
	if lastExecutedAt.Valid {
		email.LastExecutedAt = &lastExecutedAt.Time
	}
	if lastStatus.Valid {
		email.LastExecutionStatus = &lastStatus.String
	}
	if lastError.Valid {
		email.LastExecutionError = &lastError.String
	}

	if len(attachmentsJSON) > 0 {
		if err := json.Unmarshal(attachmentsJSON, &email.Attachments); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attachments: %w", err)
		}
	}
	if len(headersJSON) > 0 {
		if err := json.Unmarshal(headersJSON, &email.Headers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal headers: %w", err)
		}
	}

	return &email, nil
}
