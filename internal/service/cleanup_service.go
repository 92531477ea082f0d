package service

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/mailroom/mailroom/config"
	"github.com/mailroom/mailroom/internal/domain"
	"github.com/mailroom/mailroom/pkg/logger"
	"github.com/mailroom/mailroom/pkg/tracing"
)

// archiveUploader is the slice of s3manager.Uploader the archiver needs
type archiveUploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// CleanupService runs retention, archival and maintenance passes
type CleanupService struct {
	historyRepo     domain.EmailHistoryRepository
	processingRepo  domain.ProcessingLogRepository
	maintenanceRepo domain.MaintenanceRepository
	scheduledRepo   domain.ScheduledEmailRepository
	statusRepo      domain.ServiceStatusRepository
	backup          domain.BackupRunner
	logger          logger.Logger
	cfg             *config.CleanupConfig

	uploaderFactory func(region string) (archiveUploader, error)
	analyzeDisk     func(ctx context.Context) (*domain.DiskSpaceReport, error)
}

// aggressiveTargetFreePercent is the free-space goal an escalated pass aims
// for; it matches the DiskSpaceReport low-space threshold.
const aggressiveTargetFreePercent = 20

// NewCleanupService creates a new cleanup service
func NewCleanupService(
	historyRepo domain.EmailHistoryRepository,
	processingRepo domain.ProcessingLogRepository,
	maintenanceRepo domain.MaintenanceRepository,
	scheduledRepo domain.ScheduledEmailRepository,
	statusRepo domain.ServiceStatusRepository,
	backup domain.BackupRunner,
	logger logger.Logger,
	cfg *config.CleanupConfig,
) *CleanupService {
	s := &CleanupService{
		historyRepo:     historyRepo,
		processingRepo:  processingRepo,
		maintenanceRepo: maintenanceRepo,
		scheduledRepo:   scheduledRepo,
		statusRepo:      statusRepo,
		backup:          backup,
		logger:          logger,
		cfg:             cfg,
		uploaderFactory: func(region string) (archiveUploader, error) {
			sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
			if err != nil {
				return nil, err
			}
			return s3manager.NewUploader(sess), nil
		},
	}
	s.analyzeDisk = s.AnalyzeDiskSpace
	return s
}

// RunScheduledPass is the periodic entry point. When aggressive cleanup is
// enabled it checks free space first and escalates to an aggressive pass
// whenever the report asks for one; otherwise it runs a plain full pass.
func (s *CleanupService) RunScheduledPass(ctx context.Context) (*domain.CleanupResult, error) {
	if s.cfg.EnableAggressiveCleanup {
		report, err := s.analyzeDisk(ctx)
		if err != nil {
			s.logger.WithField("error", err.Error()).Warn("Disk space check failed, running regular cleanup")
		} else if report.RequiresCleanup {
			s.logger.WithField("free_percent", report.FreePercent).Warn("Free space below threshold, escalating to aggressive cleanup")
			return s.PerformAggressiveCleanup(ctx, aggressiveTargetFreePercent)
		}
	}
	return s.PerformFullCleanup(ctx)
}

// PerformFullCleanup runs every retention step. Steps run independently: a
// failing step is recorded and the rest still run.
func (s *CleanupService) PerformFullCleanup(ctx context.Context) (*domain.CleanupResult, error) {
	return tracing.TraceMethodWithResult(ctx, "CleanupService", "PerformFullCleanup", func(ctx context.Context) (*domain.CleanupResult, error) {
		result := &domain.CleanupResult{StartedAt: time.Now().UTC()}
		limit := s.cfg.MaxRecordsPerCleanup

		if s.cfg.CreateBackupBeforeCleanup {
			path, err := s.CreateBackup(ctx)
			if err != nil {
				result.AddStep("create_backup", 0, err)
			} else {
				result.BackupPath = path
				result.AddStep("create_backup", 0, nil)
			}
		}

		archived, archivePath, err := s.ArchiveEmailHistory(ctx, s.cfg.HistoryRetentionDays, s.cfg.ArchivePath)
		result.AddStep("archive_email_history", 0, err)
		result.RecordsArchived = archived
		result.ArchivePath = archivePath

		deleted, err := s.processingRepo.DeleteOlderThan(ctx, cutoff(s.cfg.ProcessingLogRetentionDays), limit)
		result.AddStep("processing_logs", deleted, err)

		deleted, err = s.maintenanceRepo.DeleteTerminalQueueItems(ctx, cutoff(s.cfg.FailedQueueRetentionDays), limit)
		result.AddStep("terminal_queue_items", deleted, err)

		deleted, err = s.maintenanceRepo.DeleteOrphanedAttachments(ctx, limit)
		result.AddStep("orphaned_attachments", deleted, err)

		deleted, err = s.maintenanceRepo.DeleteAttachmentsOlderThan(ctx, cutoff(s.cfg.AttachmentRetentionDays), limit)
		result.AddStep("aged_attachments", deleted, err)

		deleted, err = s.statusRepo.DeleteStale(ctx, cutoff(s.cfg.ServiceStatusRetentionDays), limit)
		result.AddStep("stale_service_status", deleted, err)

		deleted, err = s.scheduledRepo.DeleteOld(ctx, cutoff(s.cfg.HistoryRetentionDays), limit)
		result.AddStep("inactive_schedule_rules", deleted, err)

		deleted, err = s.cleanupOldBackups()
		result.AddStep("old_backups", deleted, err)

		result.FinishedAt = time.Now().UTC()

		s.logger.WithFields(map[string]interface{}{
			"total_deleted":    result.TotalDeleted,
			"records_archived": result.RecordsArchived,
			"has_errors":       result.HasErrors(),
			"duration":         result.FinishedAt.Sub(result.StartedAt).String(),
		}).Info("Cleanup pass completed")

		return result, nil
	})
}

// PerformAggressiveCleanup runs a full pass and, while free space stays under
// the target, keeps halving the history retention down to a 7 day floor.
func (s *CleanupService) PerformAggressiveCleanup(ctx context.Context, targetFreePercent float64) (*domain.CleanupResult, error) {
	return tracing.TraceMethodWithResult(ctx, "CleanupService", "PerformAggressiveCleanup", func(ctx context.Context) (*domain.CleanupResult, error) {
		result, err := s.PerformFullCleanup(ctx)
		if err != nil {
			return nil, err
		}
		result.Aggressive = true

		retention := s.cfg.HistoryRetentionDays
		for retention > 7 {
			report, err := s.analyzeDisk(ctx)
			if err != nil {
				result.AddStep("disk_space_check", 0, err)
				break
			}
			if report.FreePercent >= targetFreePercent {
				break
			}

			retention /= 2
			if retention < 7 {
				retention = 7
			}

			deleted, err := s.historyRepo.DeleteOlderThan(ctx, cutoff(retention), s.cfg.MaxRecordsPerCleanup)
			result.AddStep(fmt.Sprintf("history_retention_%dd", retention), deleted, err)
			if err != nil || deleted == 0 {
				break
			}
		}

		if err := s.OptimizeDatabase(ctx); err != nil {
			result.AddStep("optimize_database", 0, err)
		} else {
			result.AddStep("optimize_database", 0, nil)
		}

		result.FinishedAt = time.Now().UTC()
		return result, nil
	})
}

// ArchiveEmailHistory writes history rows past the retention window to a
// gzipped JSON archive, optionally uploads it to S3, and deletes the archived
// rows. Rows are only deleted after the archive file is durably written.
func (s *CleanupService) ArchiveEmailHistory(ctx context.Context, retentionDays int, dir string) (int64, string, error) {
	rows, err := s.historyRepo.ListOlderThan(ctx, cutoff(retentionDays), s.cfg.MaxRecordsPerCleanup)
	if err != nil {
		return 0, "", fmt.Errorf("failed to list archivable history: %w", err)
	}
	if len(rows) == 0 {
		return 0, "", nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	fileName := fmt.Sprintf("EmailHistory_Archive_%s.json.gz", time.Now().UTC().Format("20060102_150405"))
	path := filepath.Join(dir, fileName)

	if err := writeGzipJSON(path, rows); err != nil {
		return 0, "", err
	}

	if s.cfg.ArchiveS3Bucket != "" {
		if err := s.uploadArchive(ctx, path, fileName); err != nil {
			// the local archive survives; deletion still proceeds
			s.logger.WithFields(map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			}).Error("Failed to upload archive to S3")
		}
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	deleted, err := s.historyRepo.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, path, fmt.Errorf("failed to delete archived history: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"archived": deleted,
		"path":     path,
	}).Info("Email history archived")

	return deleted, path, nil
}

func writeGzipJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if err := json.NewEncoder(gz).Encode(v); err != nil {
		gz.Close()
		return fmt.Errorf("failed to encode archive: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	return f.Sync()
}

func (s *CleanupService) uploadArchive(ctx context.Context, path, key string) error {
	uploader, err := s.uploaderFactory(s.cfg.ArchiveS3Region)
	if err != nil {
		return fmt.Errorf("failed to create S3 uploader: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	_, err = uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.cfg.ArchiveS3Bucket),
		Key:         aws.String("email-history/" + key),
		Body:        f,
		ContentType: aws.String("application/gzip"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload archive: %w", err)
	}
	return nil
}

// AnalyzeDiskSpace reports free space on the archive filesystem and the
// current database size.
func (s *CleanupService) AnalyzeDiskSpace(ctx context.Context) (*domain.DiskSpaceReport, error) {
	path := s.cfg.ArchivePath
	if path == "" {
		path = "/"
	}

	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		// fall back to the root filesystem when the archive dir is missing
		if err := syscall.Statfs("/", &stat); err != nil {
			return nil, fmt.Errorf("failed to stat filesystem: %w", err)
		}
	}

	total := int64(stat.Blocks) * int64(stat.Bsize)
	free := int64(stat.Bavail) * int64(stat.Bsize)
	report := &domain.DiskSpaceReport{
		FreeBytes:  free,
		TotalBytes: total,
		UsedBytes:  total - free,
	}
	if total > 0 {
		report.FreePercent = float64(free) / float64(total) * 100
	}
	report.RequiresCleanup = report.FreePercent < 10
	report.IsLowOnSpace = report.FreePercent < 20

	dbSize, err := s.maintenanceRepo.DatabaseSize(ctx)
	if err != nil {
		s.logger.WithField("error", err.Error()).Warn("Failed to read database size")
	} else {
		report.DatabaseSizeBytes = dbSize
		// retention passes typically reclaim a fraction of the table bloat
		report.ReclaimableEstimate = dbSize / 10
	}

	if report.RequiresCleanup {
		report.Recommendations = append(report.Recommendations, "run aggressive cleanup now")
	} else if report.IsLowOnSpace {
		report.Recommendations = append(report.Recommendations, "schedule a cleanup pass soon")
	}
	if report.DatabaseSizeBytes > 0 && report.DatabaseSizeBytes > report.FreeBytes {
		report.Recommendations = append(report.Recommendations, "database exceeds remaining free space, consider archiving history")
	}

	return report, nil
}

// CreateBackup runs the configured backup facility
func (s *CleanupService) CreateBackup(ctx context.Context) (string, error) {
	if s.backup == nil {
		return "", fmt.Errorf("no backup runner configured")
	}
	if err := os.MkdirAll(s.cfg.BackupPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := s.backup.Run(ctx, s.cfg.BackupPath)
	if err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	s.logger.WithField("path", path).Info("Backup created")
	return path, nil
}

// OptimizeDatabase refreshes planner statistics and rebuilds indexes
func (s *CleanupService) OptimizeDatabase(ctx context.Context) error {
	if err := s.maintenanceRepo.Analyze(ctx); err != nil {
		return fmt.Errorf("failed to analyze tables: %w", err)
	}
	if err := s.maintenanceRepo.Reindex(ctx); err != nil {
		return fmt.Errorf("failed to reindex tables: %w", err)
	}
	s.logger.Info("Database optimized")
	return nil
}

// cleanupOldBackups removes backup files past the retention window
func (s *CleanupService) cleanupOldBackups() (int64, error) {
	if s.cfg.BackupPath == "" || s.cfg.BackupRetentionDays <= 0 {
		return 0, nil
	}

	entries, err := os.ReadDir(s.cfg.BackupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read backup directory: %w", err)
	}

	limit := time.Now().UTC().AddDate(0, 0, -s.cfg.BackupRetentionDays)
	var deleted int64
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(limit) {
			continue
		}
		if err := os.Remove(filepath.Join(s.cfg.BackupPath, entry.Name())); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"file":  entry.Name(),
				"error": err.Error(),
			}).Warn("Failed to remove old backup")
			continue
		}
		deleted++
	}
	return deleted, nil
}

func cutoff(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -days)
}
