package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/mailroom/mailroom/config"
	"github.com/mailroom/mailroom/internal/domain"
	"github.com/mailroom/mailroom/pkg/composer"
	"github.com/mailroom/mailroom/pkg/emailerror"
	"github.com/mailroom/mailroom/pkg/logger"
	"github.com/mailroom/mailroom/pkg/mailer"
	"github.com/mailroom/mailroom/pkg/tracing"
)

// Dispatcher polls the queue, claims ready items and drives each one through
// the template, compose and transport stages. Safe to run on several machines
// at once: claims are row-locked on the database side.
type Dispatcher struct {
	queueRepo       domain.EmailQueueRepository
	templateService domain.TemplateService
	plogRepo        domain.ProcessingLogRepository
	composer        *composer.Composer
	mailer          mailer.Mailer
	classifier      *emailerror.Classifier
	logger          logger.Logger

	batchSize    int
	pollInterval time.Duration
	drainTimeout time.Duration

	sem      *semaphore.Weighted
	workerID string
	seq      atomic.Int64

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewDispatcher creates a new dispatcher
func NewDispatcher(
	queueRepo domain.EmailQueueRepository,
	templateService domain.TemplateService,
	plogRepo domain.ProcessingLogRepository,
	composer *composer.Composer,
	mailer mailer.Mailer,
	logger logger.Logger,
	cfg *config.ProcessingConfig,
) *Dispatcher {
	maxWorkers := cfg.MaxConcurrentWorkers
	if maxWorkers <= 0 {
		maxWorkers = 5
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}
	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}

	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}

	return &Dispatcher{
		queueRepo:       queueRepo,
		templateService: templateService,
		plogRepo:        plogRepo,
		composer:        composer,
		mailer:          mailer,
		classifier:      emailerror.NewClassifier(),
		logger:          logger,
		batchSize:       batchSize,
		pollInterval:    pollInterval,
		drainTimeout:    cfg.DrainTimeout,
		sem:             semaphore.NewWeighted(int64(maxWorkers)),
		workerID:        fmt.Sprintf("%s#%d", host, os.Getpid()),
	}
}

// Start launches the poll loop
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}
	d.running = true

	ctx, d.cancel = context.WithCancel(ctx)
	d.done = make(chan struct{})

	go d.processLoop(ctx)

	d.logger.WithFields(map[string]interface{}{
		"worker_id":     d.workerID,
		"batch_size":    d.batchSize,
		"poll_interval": d.pollInterval.String(),
	}).Info("Dispatcher started")
}

// Stop halts claiming and waits up to the drain timeout for in-flight sends.
// Items still in flight after the timeout are left to the reaper.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return
	}
	d.cancel()
	<-d.done

	drained := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(drained)
	}()

	timeout := d.drainTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	select {
	case <-drained:
		d.logger.Info("Dispatcher drained")
	case <-time.After(timeout):
		d.logger.Warn("Dispatcher drain timed out, leaving in-flight items to the reaper")
	}

	d.running = false
	d.logger.Info("Dispatcher stopped")
}

func (d *Dispatcher) processLoop(ctx context.Context) {
	defer close(d.done)

	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.processBatch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				d.logger.WithField("error", err.Error()).Error("Dispatch pass failed")
			}
		}
	}
}

// processBatch claims due scheduled rows first, then ready queued rows, and
// fans the union out to the worker pool.
func (d *Dispatcher) processBatch(ctx context.Context) error {
	workerID := d.nextWorkerID()

	scheduled, err := d.queueRepo.ClaimDueScheduled(ctx, d.batchSize, workerID)
	if err != nil {
		return fmt.Errorf("failed to claim due scheduled emails: %w", err)
	}

	queued, err := d.queueRepo.ClaimBatch(ctx, d.batchSize, workerID)
	if err != nil {
		return fmt.Errorf("failed to claim queued emails: %w", err)
	}

	items := append(scheduled, queued...)
	for _, item := range items {
		if err := d.sem.Acquire(ctx, 1); err != nil {
			return err
		}
		d.wg.Add(1)
		go func(item *domain.QueueItem) {
			defer d.wg.Done()
			defer d.sem.Release(1)
			d.process(ctx, item, workerID)
		}(item)
	}
	return nil
}

// nextWorkerID yields a per-claim id so stuck rows name the claiming pass
func (d *Dispatcher) nextWorkerID() string {
	return fmt.Sprintf("%s#%d", d.workerID, d.seq.Add(1))
}

// process drives one claimed item to a terminal or retriable outcome
func (d *Dispatcher) process(ctx context.Context, item *domain.QueueItem, workerID string) {
	ctx, span := tracing.StartServiceSpan(ctx, "Dispatcher", "process")
	defer span.End()
	tracing.AddAttribute(ctx, "queue_id", item.QueueID)

	start := time.Now()
	d.logStep(ctx, item.QueueID, workerID, domain.LogLevelInfo, "claim", "claimed for processing")

	subject, body := item.Subject, item.Body
	if item.RequiresTemplateProcessing && item.TemplateID != nil {
		result, err := d.templateService.Process(ctx, *item.TemplateID, ParseTemplateData(item.TemplateData))
		if err != nil {
			d.fail(ctx, item, workerID, "template", err, shouldRetryTemplateErr(err))
			tracing.MarkSpanError(ctx, err)
			return
		}
		subject, body = result.Subject, result.Body
		for _, missing := range result.MissingPlaceholders {
			d.logStep(ctx, item.QueueID, workerID, domain.LogLevelWarning, "template",
				fmt.Sprintf("placeholder %q has no value", missing))
		}
	}

	composed, err := d.composer.Compose(d.composeRequest(item, subject, body))
	if err != nil {
		// compose failures are deterministic, retrying cannot help
		d.fail(ctx, item, workerID, "compose", err, false)
		tracing.MarkSpanError(ctx, err)
		return
	}
	for _, warning := range composed.Warnings {
		d.logStep(ctx, item.QueueID, workerID, domain.LogLevelWarning, "compose", warning)
	}

	if err := d.mailer.Send(ctx, composed.Msg); err != nil {
		classified := d.classifier.Classify(err)
		d.fail(ctx, item, workerID, "send", classified, !classified.IsPermanent())
		tracing.MarkSpanError(ctx, err)
		return
	}

	elapsed := time.Since(start).Milliseconds()
	if err := d.queueRepo.MarkSent(ctx, item.QueueID, workerID, elapsed); err != nil {
		d.logger.WithFields(map[string]interface{}{
			"queue_id": item.QueueID,
			"error":    err.Error(),
		}).Error("Failed to mark email sent")
		return
	}

	d.logStep(ctx, item.QueueID, workerID, domain.LogLevelInfo, "sent",
		fmt.Sprintf("delivered in %dms", elapsed))
	d.logger.WithFields(map[string]interface{}{
		"queue_id":   item.QueueID,
		"elapsed_ms": elapsed,
	}).Info("Email sent")
}

// fail records the failure outcome, requeueing when retriable
func (d *Dispatcher) fail(ctx context.Context, item *domain.QueueItem, workerID, step string, cause error, shouldRetry bool) {
	d.logStep(ctx, item.QueueID, workerID, domain.LogLevelError, step, cause.Error())

	if err := d.queueRepo.MarkFailed(ctx, item.QueueID, cause.Error(), shouldRetry); err != nil {
		d.logger.WithFields(map[string]interface{}{
			"queue_id": item.QueueID,
			"error":    err.Error(),
		}).Error("Failed to mark email failed")
		return
	}

	d.logger.WithFields(map[string]interface{}{
		"queue_id":     item.QueueID,
		"step":         step,
		"should_retry": shouldRetry,
		"error":        cause.Error(),
	}).Warn("Email processing failed")
}

// composeRequest maps the claimed row to a compose request
func (d *Dispatcher) composeRequest(item *domain.QueueItem, subject, body string) *composer.Request {
	attachments := make([]composer.Attachment, 0, len(item.Attachments))
	for _, a := range item.Attachments {
		attachments = append(attachments, composer.Attachment{
			FileName:    a.FileName,
			ContentType: a.ContentType,
			ContentID:   a.ContentID,
			IsInline:    a.IsInline,
			Content:     a.Content,
			FilePath:    a.FilePath,
		})
	}

	return &composer.Request{
		To:                          item.ToEmails,
		CC:                          item.CCEmails,
		BCC:                         item.BCCEmails,
		ReplyTo:                     item.ReplyTo,
		Subject:                     subject,
		Body:                        body,
		IsHTML:                      item.IsHTML,
		Attachments:                 attachments,
		Headers:                     item.Headers,
		RequestDeliveryNotification: item.RequestDeliveryNotification,
		RequestReadReceipt:          item.RequestReadReceipt,
		Priority:                    item.Priority.String(),
	}
}

// logStep appends to the durable audit trail; failures never break the pipeline
func (d *Dispatcher) logStep(ctx context.Context, queueID, workerID string, level domain.LogLevel, step, message string) {
	entry := &domain.ProcessingLog{
		Level:          level,
		Category:       "dispatch",
		Message:        message,
		QueueID:        &queueID,
		WorkerID:       workerID,
		ProcessingStep: step,
		CreatedAt:      time.Now().UTC(),
	}
	if err := d.plogRepo.Insert(ctx, entry); err != nil {
		d.logger.WithFields(map[string]interface{}{
			"queue_id": queueID,
			"error":    err.Error(),
		}).Warn("Failed to write processing log")
	}
}

// shouldRetryTemplateErr keeps template resolution races retriable while
// refusing to retry structural validation failures.
func shouldRetryTemplateErr(err error) bool {
	var validation domain.ValidationError
	if errors.As(err, &validation) {
		return false
	}
	var notFound *domain.ErrNotFound
	return !errors.As(err, &notFound)
}
