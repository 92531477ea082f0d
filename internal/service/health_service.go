package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"syscall"
	"time"

	"github.com/google/uuid"
	svix "github.com/standard-webhooks/standard-webhooks/libraries/go"

	"github.com/mailroom/mailroom/config"
	"github.com/mailroom/mailroom/internal/domain"
	"github.com/mailroom/mailroom/pkg/logger"
	"github.com/mailroom/mailroom/pkg/mailer"
	"github.com/mailroom/mailroom/pkg/tracing"
)

// alertTemplateName is the seeded system template used for alert emails
const alertTemplateName = "system_alert"

// probeTimeout bounds each individual health probe
const probeTimeout = 5 * time.Second

// HealthService runs the liveness probes, writes heartbeat rows and fans
// operator alerts out to email and webhook.
type HealthService struct {
	db           *sql.DB
	queueRepo    domain.EmailQueueRepository
	statusRepo   domain.ServiceStatusRepository
	templateRepo domain.TemplateRepository
	mailer       mailer.Mailer
	logger       logger.Logger
	cfg          *config.Config

	httpClient  *http.Client
	machineName string
	startedAt   time.Time

	// previous CPU sample, used to derive a usage percentage per heartbeat
	lastCPUAt   time.Time
	lastCPUUsed time.Duration
}

// NewHealthService creates a new health service
func NewHealthService(
	db *sql.DB,
	queueRepo domain.EmailQueueRepository,
	statusRepo domain.ServiceStatusRepository,
	templateRepo domain.TemplateRepository,
	mailer mailer.Mailer,
	logger logger.Logger,
	cfg *config.Config,
) *HealthService {
	machineName, err := os.Hostname()
	if err != nil {
		machineName = "unknown"
	}
	return &HealthService{
		db:           db,
		queueRepo:    queueRepo,
		statusRepo:   statusRepo,
		templateRepo: templateRepo,
		mailer:       mailer,
		logger:       logger,
		cfg:          cfg,
		httpClient:   tracing.WrapHTTPClient(&http.Client{Timeout: 10 * time.Second}),
		machineName:  machineName,
		startedAt:    time.Now().UTC(),
	}
}

// Check runs every probe and aggregates the verdict
func (s *HealthService) Check(ctx context.Context) (*domain.HealthReport, error) {
	return tracing.TraceMethodWithResult(ctx, "HealthService", "Check", func(ctx context.Context) (*domain.HealthReport, error) {
		probes := []domain.ProbeResult{
			s.probeDatabase(ctx),
			s.probeSMTP(ctx),
			s.probeQueue(ctx),
		}

		report := &domain.HealthReport{
			Overall:   domain.AggregateHealth(probes),
			Probes:    probes,
			CheckedAt: time.Now().UTC(),
			Version:   s.cfg.Version,
			Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
		}

		if report.Overall != domain.OverallHealthy {
			s.logger.WithField("overall", string(report.Overall)).Warn("Health check not healthy")
		}
		return report, nil
	})
}

func (s *HealthService) probeDatabase(ctx context.Context) domain.ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	err := s.db.PingContext(ctx)
	result := domain.ProbeResult{
		Name:      "database",
		State:     domain.HealthStateHealthy,
		ElapsedMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		result.State = domain.HealthStateUnhealthy
		result.Detail = err.Error()
	}
	return result
}

func (s *HealthService) probeSMTP(ctx context.Context) domain.ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	err := s.mailer.TestConnection(ctx)
	result := domain.ProbeResult{
		Name:      "smtp",
		State:     domain.HealthStateHealthy,
		ElapsedMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		result.State = domain.HealthStateUnhealthy
		result.Detail = err.Error()
	}
	return result
}

func (s *HealthService) probeQueue(ctx context.Context) domain.ProbeResult {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	total, err := s.queueRepo.CountTotal(ctx)
	result := domain.ProbeResult{
		Name:      "queue",
		State:     domain.HealthStateHealthy,
		ElapsedMs: time.Since(start).Milliseconds(),
	}
	switch {
	case err != nil:
		result.State = domain.HealthStateUnhealthy
		result.Detail = err.Error()
	case s.cfg.Processing.QueueDepthThreshold > 0 && total > s.cfg.Processing.QueueDepthThreshold:
		result.State = domain.HealthStateDegraded
		result.Detail = fmt.Sprintf("queue depth %d exceeds threshold %d", total, s.cfg.Processing.QueueDepthThreshold)
	}
	return result
}

// Heartbeat upserts this process's ServiceStatus row with runtime gauges
func (s *HealthService) Heartbeat(ctx context.Context) error {
	report, err := s.Check(ctx)
	if err != nil {
		return err
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	status := &domain.ServiceStatus{
		ServiceName:    s.cfg.Tracing.ServiceName,
		MachineName:    s.machineName,
		Status:         report.Overall,
		CPUPercent:     s.cpuPercent(),
		MemoryMB:       float64(memStats.Alloc) / (1024 * 1024),
		DiskFreeBytes:  diskFreeBytes("/"),
		GoroutineCount: runtime.NumGoroutine(),
		MaxWorkers:     s.cfg.Processing.MaxConcurrentWorkers,
		BatchSize:      s.cfg.Processing.BatchSize,
		Version:        s.cfg.Version,
		StartedAt:      s.startedAt,
		LastHeartbeat:  time.Now().UTC(),
	}

	if err := s.statusRepo.Upsert(ctx, status); err != nil {
		return fmt.Errorf("failed to write heartbeat: %w", err)
	}
	return nil
}

// Alert fans an operator alert out to the configured channels. Channel
// failures are logged and do not fail each other.
func (s *HealthService) Alert(ctx context.Context, level, title, message string) error {
	return tracing.TraceMethod(ctx, "HealthService", "Alert", func(ctx context.Context) error {
		var firstErr error

		if s.cfg.Alert.AlertEmail != "" {
			if err := s.sendAlertEmail(ctx, level, title, message); err != nil {
				s.logger.WithField("error", err.Error()).Error("Failed to enqueue alert email")
				firstErr = err
			}
		}

		if s.cfg.Alert.WebhookURL != "" {
			if err := s.sendAlertWebhook(ctx, level, title, message); err != nil {
				s.logger.WithField("error", err.Error()).Error("Failed to deliver alert webhook")
				if firstErr == nil {
					firstErr = err
				}
			}
		}

		return firstErr
	})
}

// sendAlertEmail enqueues a high-priority email bound to the system_alert
// template; the pipeline itself delivers it.
func (s *HealthService) sendAlertEmail(ctx context.Context, level, title, message string) error {
	template, err := s.templateRepo.GetByName(ctx, alertTemplateName)
	if err != nil {
		return fmt.Errorf("failed to resolve alert template: %w", err)
	}

	// keys match the seeded system_alert template placeholders
	data, err := json.Marshal(map[string]string{
		"Level":     level,
		"Title":     title,
		"Message":   message,
		"Source":    s.machineName,
		"Timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to encode alert data: %w", err)
	}

	now := time.Now().UTC()
	item := &domain.QueueItem{
		QueueID:                    uuid.New().String(),
		Priority:                   domain.PriorityHigh,
		ToEmails:                   s.cfg.Alert.AlertEmail,
		Subject:                    title,
		IsHTML:                     true,
		TemplateID:                 &template.ID,
		TemplateData:               string(data),
		RequiresTemplateProcessing: true,
		Status:                     domain.EmailStatusQueued,
		MaxRetries:                 domain.DefaultMaxRetries,
		CreatedAt:                  now,
		UpdatedAt:                  now,
		CreatedBy:                  "system",
		RequestSource:              "health",
	}
	return s.queueRepo.Enqueue(ctx, item)
}

// sendAlertWebhook delivers the alert as a standard-webhooks signed POST
func (s *HealthService) sendAlertWebhook(ctx context.Context, level, title, message string) error {
	payload, err := json.Marshal(map[string]string{
		"level":   level,
		"title":   title,
		"message": message,
		"machine": s.machineName,
		"service": s.cfg.Tracing.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Alert.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	msgID := "msg_" + uuid.New().String()
	timestamp := time.Now().UTC()
	req.Header.Set("Webhook-Id", msgID)
	req.Header.Set("Webhook-Timestamp", fmt.Sprintf("%d", timestamp.Unix()))

	if s.cfg.Alert.WebhookSecret != "" {
		wh, err := svix.NewWebhook(s.cfg.Alert.WebhookSecret)
		if err != nil {
			return fmt.Errorf("failed to create webhook signer: %w", err)
		}
		signature, err := wh.Sign(msgID, timestamp, payload)
		if err != nil {
			return fmt.Errorf("failed to sign webhook payload: %w", err)
		}
		req.Header.Set("Webhook-Signature", signature)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// cpuPercent derives process CPU usage from the rusage delta since the
// previous heartbeat. The first sample has no baseline and reports zero.
func (s *HealthService) cpuPercent() float64 {
	var usage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &usage); err != nil {
		return 0
	}
	used := time.Duration(usage.Utime.Nano() + usage.Stime.Nano())
	now := time.Now()

	prevAt, prevUsed := s.lastCPUAt, s.lastCPUUsed
	s.lastCPUAt = now
	s.lastCPUUsed = used

	if prevAt.IsZero() {
		return 0
	}
	wall := now.Sub(prevAt)
	if wall <= 0 {
		return 0
	}
	return float64(used-prevUsed) / float64(wall) * 100
}

// diskFreeBytes reports the free space of the filesystem holding path
func diskFreeBytes(path string) int64 {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0
	}
	return int64(stat.Bavail) * int64(stat.Bsize)
}
