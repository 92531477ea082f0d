package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mailroom/mailroom/internal/domain"
	"github.com/mailroom/mailroom/pkg/logger"
	"github.com/mailroom/mailroom/pkg/tracing"
)

// schedulerBatchSize bounds how many due rules one pass materializes
const schedulerBatchSize = 100

// SchedulerService manages schedule rules and materializes due ones into
// queue items.
type SchedulerService struct {
	scheduledRepo domain.ScheduledEmailRepository
	queueRepo     domain.EmailQueueRepository
	logger        logger.Logger
	interval      time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSchedulerService creates a new scheduler service
func NewSchedulerService(
	scheduledRepo domain.ScheduledEmailRepository,
	queueRepo domain.EmailQueueRepository,
	logger logger.Logger,
	interval time.Duration,
) *SchedulerService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &SchedulerService{
		scheduledRepo: scheduledRepo,
		queueRepo:     queueRepo,
		logger:        logger,
		interval:      interval,
	}
}

// Schedule validates and persists a rule, returning its id
func (s *SchedulerService) Schedule(ctx context.Context, email *domain.ScheduledEmail) (int64, error) {
	if email == nil {
		return 0, domain.NewValidationError("scheduled email is required")
	}
	if err := email.Validate(time.Now().UTC()); err != nil {
		return 0, err
	}
	email.IsActive = true
	if err := s.scheduledRepo.Create(ctx, email); err != nil {
		return 0, fmt.Errorf("failed to create schedule rule: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"scheduled_id":  email.ID,
		"next_run_time": email.NextRunTime,
		"recurring":     email.IsRecurring,
	}).Info("Schedule rule created")
	return email.ID, nil
}

// Cancel deactivates a rule
func (s *SchedulerService) Cancel(ctx context.Context, id int64) (bool, error) {
	cancelled, err := s.scheduledRepo.Deactivate(ctx, id)
	if err != nil {
		return false, err
	}
	if cancelled {
		s.logger.WithField("scheduled_id", id).Info("Schedule rule cancelled")
	}
	return cancelled, nil
}

// Reschedule moves an active rule's next run time
func (s *SchedulerService) Reschedule(ctx context.Context, id int64, at time.Time) (bool, error) {
	if !at.After(time.Now().UTC()) {
		return false, domain.NewValidationError("next run time must be in the future")
	}
	return s.scheduledRepo.Reschedule(ctx, id, at.UTC())
}

// ListInRange lists rules whose next_run_time falls inside [from, to]
func (s *SchedulerService) ListInRange(ctx context.Context, from, to time.Time) ([]*domain.ScheduledEmail, error) {
	return s.scheduledRepo.ListInRange(ctx, from, to)
}

// ProcessDue materializes every due rule into a queue item and advances or
// deactivates the rule. A failing rule is recorded and does not block the
// rest of the batch.
func (s *SchedulerService) ProcessDue(ctx context.Context) (int, error) {
	return tracing.TraceMethodWithResult(ctx, "SchedulerService", "ProcessDue", func(ctx context.Context) (int, error) {
		now := time.Now().UTC()

		due, err := s.scheduledRepo.GetDue(ctx, now, schedulerBatchSize)
		if err != nil {
			return 0, fmt.Errorf("failed to fetch due schedule rules: %w", err)
		}

		processed := 0
		for _, rule := range due {
			item := rule.ToQueueItem(uuid.New().String(), now)

			enqueueErr := s.queueRepo.Enqueue(ctx, item)
			status := "success"
			if enqueueErr != nil {
				status = "failed"
				s.logger.WithFields(map[string]interface{}{
					"scheduled_id": rule.ID,
					"error":        enqueueErr.Error(),
				}).Error("Failed to materialize schedule rule")
			} else {
				processed++
			}

			rule.AdvanceAfterRun(now, status, enqueueErr)
			if err := s.scheduledRepo.Update(ctx, rule); err != nil {
				s.logger.WithFields(map[string]interface{}{
					"scheduled_id": rule.ID,
					"error":        err.Error(),
				}).Error("Failed to advance schedule rule")
			}
		}

		if processed > 0 {
			s.logger.WithField("count", processed).Info("Materialized due schedule rules")
		}
		return processed, nil
	})
}

// Start launches the periodic due-processing loop
func (s *SchedulerService) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.ProcessDue(ctx); err != nil {
					s.logger.WithField("error", err.Error()).Error("Scheduler pass failed")
				}
			}
		}
	}()

	s.logger.WithField("interval", s.interval.String()).Info("Scheduler started")
}

// Stop halts the loop and waits for the in-flight pass
func (s *SchedulerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cancel()
	<-s.done
	s.running = false
	s.logger.Info("Scheduler stopped")
}
