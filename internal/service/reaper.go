package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mailroom/mailroom/internal/domain"
	"github.com/mailroom/mailroom/pkg/logger"
)

// Reaper rewinds Processing rows abandoned by crashed workers back to Queued.
// Reset rows keep their retry_count: a crash is not a delivery failure.
type Reaper struct {
	queueRepo      domain.EmailQueueRepository
	health         domain.HealthService
	logger         logger.Logger
	interval       time.Duration
	threshold      time.Duration
	alertThreshold int64

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewReaper creates a new reaper. health may be nil to disable alerting.
func NewReaper(
	queueRepo domain.EmailQueueRepository,
	health domain.HealthService,
	logger logger.Logger,
	interval, threshold time.Duration,
	alertThreshold int64,
) *Reaper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if threshold <= 0 {
		threshold = 10 * time.Minute
	}
	return &Reaper{
		queueRepo:      queueRepo,
		health:         health,
		logger:         logger,
		interval:       interval,
		threshold:      threshold,
		alertThreshold: alertThreshold,
	}
}

// RunOnce performs a single reap pass and returns the number of reset rows
func (r *Reaper) RunOnce(ctx context.Context) (int64, error) {
	count, err := r.queueRepo.ResetStuck(ctx, r.threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to reset stuck emails: %w", err)
	}

	if count > 0 {
		r.logger.WithFields(map[string]interface{}{
			"count":     count,
			"threshold": r.threshold.String(),
		}).Info("Reset stuck emails back to queued")
	}

	if r.health != nil && r.alertThreshold > 0 && count > r.alertThreshold {
		message := fmt.Sprintf("Reset %d emails stuck in processing for over %s; workers may be crashing.", count, r.threshold)
		if err := r.health.Alert(ctx, "warning", "Stuck emails detected", message); err != nil {
			r.logger.WithField("error", err.Error()).Error("Failed to send stuck-email alert")
		}
	}

	return count, nil
}

// Start launches the periodic reap loop
func (r *Reaper) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true

	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := r.RunOnce(ctx); err != nil {
					r.logger.WithField("error", err.Error()).Error("Reaper pass failed")
				}
			}
		}
	}()

	r.logger.WithFields(map[string]interface{}{
		"interval":  r.interval.String(),
		"threshold": r.threshold.String(),
	}).Info("Reaper started")
}

// Stop halts the loop and waits for the in-flight pass
func (r *Reaper) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	r.cancel()
	<-r.done
	r.running = false
	r.logger.Info("Reaper stopped")
}
