package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_maintenance_repository.go -package mocks github.com/mailroom/mailroom/internal/domain MaintenanceRepository,BackupRunner

// DiskSpaceReport is the AnalyzeDiskSpace payload
type DiskSpaceReport struct {
	FreeBytes           int64    `json:"free_bytes"`
	TotalBytes          int64    `json:"total_bytes"`
	UsedBytes           int64    `json:"used_bytes"`
	FreePercent         float64  `json:"free_percent"`
	DatabaseSizeBytes   int64    `json:"database_size_bytes"`
	ReclaimableEstimate int64    `json:"reclaimable_estimate"`
	RequiresCleanup     bool     `json:"requires_cleanup"`   // free < 10%
	IsLowOnSpace        bool     `json:"is_low_on_space"`    // free < 20%
	Recommendations     []string `json:"recommendations,omitempty"`
}

// CleanupStepResult is the outcome of one step in a cleanup pass
type CleanupStepResult struct {
	Step           string `json:"step"`
	RecordsDeleted int64  `json:"records_deleted"`
	Error          string `json:"error,omitempty"`
}

// CleanupResult collects the outcomes of a full pass. Steps run
// independently: one failing step does not abort the rest.
type CleanupResult struct {
	StartedAt       time.Time           `json:"started_at"`
	FinishedAt      time.Time           `json:"finished_at"`
	Steps           []CleanupStepResult `json:"steps"`
	TotalDeleted    int64               `json:"total_deleted"`
	RecordsArchived int64               `json:"records_archived"`
	ArchivePath     string              `json:"archive_path,omitempty"`
	BackupPath      string              `json:"backup_path,omitempty"`
	Aggressive      bool                `json:"aggressive"`
}

// AddStep records one step outcome and folds its count into the total
func (r *CleanupResult) AddStep(step string, deleted int64, err error) {
	s := CleanupStepResult{Step: step, RecordsDeleted: deleted}
	if err != nil {
		s.Error = err.Error()
	}
	r.Steps = append(r.Steps, s)
	r.TotalDeleted += deleted
}

// HasErrors reports whether any step failed
func (r *CleanupResult) HasErrors() bool {
	for _, s := range r.Steps {
		if s.Error != "" {
			return true
		}
	}
	return false
}

// MaintenanceRepository covers cross-table maintenance queries that do not
// belong to a single entity repository.
type MaintenanceRepository interface {
	// DeleteOrphanedAttachments removes attachment rows whose queue_id is
	// referenced by neither a live queue item nor a history row.
	DeleteOrphanedAttachments(ctx context.Context, limit int) (int64, error)

	// DeleteAttachmentsOlderThan removes attachment rows created before the
	// cutoff regardless of whether their queue item still exists.
	DeleteAttachmentsOlderThan(ctx context.Context, cutoff time.Time, limit int) (int64, error)

	// DeleteTerminalQueueItems removes Failed and Cancelled queue rows past
	// the cutoff; Sent rows are removed once their history snapshot exists.
	DeleteTerminalQueueItems(ctx context.Context, cutoff time.Time, limit int) (int64, error)

	// DatabaseSize returns the current database size in bytes
	DatabaseSize(ctx context.Context) (int64, error)

	// Analyze refreshes planner statistics for the pipeline tables
	Analyze(ctx context.Context) error

	// Reindex rebuilds the pipeline table indexes
	Reindex(ctx context.Context) error
}

// BackupRunner abstracts the vendor backup facility (pg_dump in production,
// a stub in tests).
type BackupRunner interface {
	// Run writes a full backup under dir and returns the file path
	Run(ctx context.Context, dir string) (string, error)
}
