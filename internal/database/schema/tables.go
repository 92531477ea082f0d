// Package schema defines the database schema for development.
//
// DEVELOPMENT USE ONLY
// This file contains the current database schema and is used for development and testing.
// Before deploying to production, these table definitions should be converted to proper migrations.
package schema

// TableDefinitions contains all the SQL statements to create the database tables
// Don't put REFERENCES and don't put CHECK constraints in the CREATE TABLE statements
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS email_queue (
		queue_id UUID PRIMARY KEY,
		priority SMALLINT NOT NULL DEFAULT 2,
		to_emails TEXT NOT NULL,
		cc_emails TEXT,
		bcc_emails TEXT,
		reply_to VARCHAR(320),
		subject TEXT NOT NULL,
		body TEXT NOT NULL,
		is_html BOOLEAN NOT NULL DEFAULT TRUE,
		template_id BIGINT,
		template_data JSONB,
		requires_template_processing BOOLEAN NOT NULL DEFAULT FALSE,
		attachments JSONB,
		has_embedded_images BOOLEAN NOT NULL DEFAULT FALSE,
		headers JSONB,
		request_delivery_notification BOOLEAN NOT NULL DEFAULT FALSE,
		request_read_receipt BOOLEAN NOT NULL DEFAULT FALSE,
		status VARCHAR(20) NOT NULL DEFAULT 'queued',
		retry_count INTEGER NOT NULL DEFAULT 0,
		max_retries INTEGER NOT NULL DEFAULT 3,
		is_scheduled BOOLEAN NOT NULL DEFAULT FALSE,
		scheduled_for TIMESTAMP,
		processing_started_at TIMESTAMP,
		processed_at TIMESTAMP,
		processed_by VARCHAR(255),
		error_message TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		created_by VARCHAR(255) NOT NULL,
		request_source VARCHAR(100)
	)`,
	`CREATE TABLE IF NOT EXISTS email_templates (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) UNIQUE NOT NULL,
		category VARCHAR(100),
		subject_template TEXT NOT NULL,
		body_template TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_system BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		created_by VARCHAR(255)
	)`,
	`CREATE TABLE IF NOT EXISTS scheduled_emails (
		id BIGSERIAL PRIMARY KEY,
		priority SMALLINT NOT NULL DEFAULT 2,
		to_emails TEXT NOT NULL,
		cc_emails TEXT,
		bcc_emails TEXT,
		reply_to VARCHAR(320),
		subject TEXT NOT NULL,
		body TEXT NOT NULL,
		is_html BOOLEAN NOT NULL DEFAULT TRUE,
		template_id BIGINT,
		template_data JSONB,
		attachments JSONB,
		headers JSONB,
		next_run_time TIMESTAMP NOT NULL,
		interval_minutes INTEGER,
		cron_expression VARCHAR(100),
		is_recurring BOOLEAN NOT NULL DEFAULT FALSE,
		end_date TIMESTAMP,
		max_executions INTEGER,
		execution_count INTEGER NOT NULL DEFAULT 0,
		last_executed_at TIMESTAMP,
		last_execution_status VARCHAR(20),
		last_execution_error TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		created_by VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS email_history (
		id BIGSERIAL PRIMARY KEY,
		queue_id UUID NOT NULL,
		priority SMALLINT NOT NULL DEFAULT 2,
		to_emails TEXT NOT NULL,
		cc_emails TEXT,
		bcc_emails TEXT,
		subject TEXT NOT NULL,
		body TEXT NOT NULL,
		is_html BOOLEAN NOT NULL DEFAULT TRUE,
		template_id BIGINT,
		status VARCHAR(20) NOT NULL,
		retry_count INTEGER NOT NULL DEFAULT 0,
		processing_time_ms BIGINT NOT NULL DEFAULT 0,
		processed_by VARCHAR(255),
		error_details TEXT,
		sent_at TIMESTAMP NOT NULL,
		created_by VARCHAR(255),
		request_source VARCHAR(100)
	)`,
	`CREATE TABLE IF NOT EXISTS email_attachments (
		id BIGSERIAL PRIMARY KEY,
		queue_id UUID NOT NULL,
		file_name VARCHAR(255) NOT NULL,
		content_type VARCHAR(255) NOT NULL,
		content_id VARCHAR(255),
		is_inline BOOLEAN NOT NULL DEFAULT FALSE,
		content BYTEA,
		size_bytes BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS service_status (
		id BIGSERIAL PRIMARY KEY,
		service_name VARCHAR(100) NOT NULL,
		machine_name VARCHAR(255) NOT NULL,
		status VARCHAR(20) NOT NULL,
		cpu_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
		memory_mb DOUBLE PRECISION NOT NULL DEFAULT 0,
		disk_free_bytes BIGINT NOT NULL DEFAULT 0,
		goroutine_count INTEGER NOT NULL DEFAULT 0,
		max_workers INTEGER NOT NULL DEFAULT 0,
		batch_size INTEGER NOT NULL DEFAULT 0,
		version VARCHAR(50),
		started_at TIMESTAMP NOT NULL,
		last_heartbeat TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS processing_logs (
		id BIGSERIAL PRIMARY KEY,
		level VARCHAR(10) NOT NULL,
		category VARCHAR(100) NOT NULL,
		message TEXT NOT NULL,
		queue_id UUID,
		worker_id VARCHAR(255),
		processing_step VARCHAR(100),
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_email_queue_claim ON email_queue(status, priority, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_email_queue_scheduled ON email_queue(status, scheduled_for)`,
	`CREATE INDEX IF NOT EXISTS idx_email_queue_stuck ON email_queue(processing_started_at)`,
	`CREATE INDEX IF NOT EXISTS idx_email_history_queue_id ON email_history(queue_id)`,
	`CREATE INDEX IF NOT EXISTS idx_email_history_sent_at ON email_history(sent_at)`,
	`CREATE INDEX IF NOT EXISTS idx_email_attachments_queue_id ON email_attachments(queue_id)`,
	`CREATE INDEX IF NOT EXISTS idx_scheduled_emails_due ON scheduled_emails(is_active, next_run_time)`,
	`CREATE INDEX IF NOT EXISTS idx_processing_logs_queue_id ON processing_logs(queue_id)`,
	`CREATE INDEX IF NOT EXISTS idx_processing_logs_created_at ON processing_logs(created_at)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_service_status_identity ON service_status(service_name, machine_name)`,
}

// TableNames returns a list of all table names in creation order
var TableNames = []string{
	"email_queue",
	"email_templates",
	"scheduled_emails",
	"email_history",
	"email_attachments",
	"service_status",
	"processing_logs",
}
