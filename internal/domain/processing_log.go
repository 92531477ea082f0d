package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_processing_log_repository.go -package mocks github.com/mailroom/mailroom/internal/domain ProcessingLogRepository

// LogLevel classifies processing log entries
type LogLevel string

const (
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// ProcessingLog is an append-only audit entry emitted by the pipeline.
// Distinct from operational stdout logging: these rows are queryable by
// queue_id and survive process restarts.
type ProcessingLog struct {
	ID             int64     `json:"id"`
	Level          LogLevel  `json:"level"`
	Category       string    `json:"category"`
	Message        string    `json:"message"`
	QueueID        *string   `json:"queue_id,omitempty"`
	WorkerID       string    `json:"worker_id,omitempty"`
	ProcessingStep string    `json:"processing_step,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ProcessingLogRepository defines data access for the processing audit trail
type ProcessingLogRepository interface {
	// Insert appends one entry; failures must never break the pipeline, so
	// callers log and continue on error.
	Insert(ctx context.Context, entry *ProcessingLog) error

	// ListByQueueID returns the trail for one item, oldest first
	ListByQueueID(ctx context.Context, queueID string) ([]*ProcessingLog, error)

	// DeleteOlderThan removes up to limit entries past the cutoff
	DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}
