package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mailroom/mailroom/internal/domain"
	"github.com/mailroom/mailroom/pkg/logger"
	"github.com/mailroom/mailroom/pkg/tracing"
)

// QueueService validates enqueue requests and exposes the queue state
type QueueService struct {
	queueRepo      domain.EmailQueueRepository
	templateRepo   domain.TemplateRepository
	attachmentRepo domain.AttachmentRepository
	historyRepo    domain.EmailHistoryRepository
	logger         logger.Logger

	maxMessageBytes   int64
	defaultMaxRetries int
}

// NewQueueService creates a new queue service
func NewQueueService(
	queueRepo domain.EmailQueueRepository,
	templateRepo domain.TemplateRepository,
	attachmentRepo domain.AttachmentRepository,
	historyRepo domain.EmailHistoryRepository,
	logger logger.Logger,
	maxMessageBytes int64,
	defaultMaxRetries int,
) *QueueService {
	if maxMessageBytes <= 0 {
		maxMessageBytes = 25 * 1024 * 1024
	}
	if defaultMaxRetries <= 0 {
		defaultMaxRetries = domain.DefaultMaxRetries
	}
	return &QueueService{
		queueRepo:         queueRepo,
		templateRepo:      templateRepo,
		attachmentRepo:    attachmentRepo,
		historyRepo:       historyRepo,
		logger:            logger,
		maxMessageBytes:   maxMessageBytes,
		defaultMaxRetries: defaultMaxRetries,
	}
}

// Enqueue validates and persists one send request
func (s *QueueService) Enqueue(ctx context.Context, req *domain.EnqueueRequest) (*domain.EnqueueResult, error) {
	return tracing.TraceMethodWithResult(ctx, "QueueService", "Enqueue", func(ctx context.Context) (*domain.EnqueueResult, error) {
		if req != nil && (req.TemplateID != nil || req.TemplateName != "") {
			return s.enqueueWithTemplate(ctx, req)
		}

		item, err := s.buildItem(req, false)
		if err != nil {
			return nil, err
		}

		if err := s.queueRepo.Enqueue(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to enqueue email: %w", err)
		}

		s.logger.WithFields(map[string]interface{}{
			"queue_id": item.QueueID,
			"status":   string(item.Status),
			"priority": item.Priority.String(),
		}).Info("Email enqueued")

		return &domain.EnqueueResult{
			QueueID:  item.QueueID,
			QueuedAt: item.CreatedAt,
			Status:   item.Status,
		}, nil
	})
}

// EnqueueWithTemplate resolves the template reference at enqueue time and
// persists a template-bound item. Substitution happens at processing time so
// the rendered body reflects the template version current at send.
func (s *QueueService) EnqueueWithTemplate(ctx context.Context, req *domain.EnqueueRequest) (*domain.EnqueueResult, error) {
	return tracing.TraceMethodWithResult(ctx, "QueueService", "EnqueueWithTemplate", func(ctx context.Context) (*domain.EnqueueResult, error) {
		return s.enqueueWithTemplate(ctx, req)
	})
}

func (s *QueueService) enqueueWithTemplate(ctx context.Context, req *domain.EnqueueRequest) (*domain.EnqueueResult, error) {
	if req == nil {
		return nil, domain.NewValidationError("request is required")
	}

	template, err := s.resolveTemplate(ctx, req)
	if err != nil {
		return nil, err
	}
	req.TemplateID = &template.ID

	item, err := s.buildItem(req, true)
	if err != nil {
		return nil, err
	}

	if err := s.queueRepo.Enqueue(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to enqueue email: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"queue_id":    item.QueueID,
		"template_id": template.ID,
		"status":      string(item.Status),
	}).Info("Template email enqueued")

	return &domain.EnqueueResult{
		QueueID:  item.QueueID,
		QueuedAt: item.CreatedAt,
		Status:   item.Status,
	}, nil
}

// resolveTemplate looks the referenced template up by id or unique name
func (s *QueueService) resolveTemplate(ctx context.Context, req *domain.EnqueueRequest) (*domain.EmailTemplate, error) {
	if req.TemplateID == nil && req.TemplateName == "" {
		return nil, domain.NewValidationError("template_id or template_name is required")
	}

	var template *domain.EmailTemplate
	var err error
	if req.TemplateID != nil {
		template, err = s.templateRepo.GetByID(ctx, *req.TemplateID)
	} else {
		template, err = s.templateRepo.GetByName(ctx, req.TemplateName)
	}
	if err != nil {
		return nil, err
	}
	if !template.IsActive {
		return nil, domain.NewValidationError(fmt.Sprintf("template %q is not active", template.Name))
	}
	return template, nil
}

// BulkEnqueue validates each item independently and atomically inserts the
// valid ones. Invalid entries are reported by position and do not block the
// rest of the batch.
func (s *QueueService) BulkEnqueue(ctx context.Context, reqs []*domain.EnqueueRequest) (*domain.BulkEnqueueResult, error) {
	return tracing.TraceMethodWithResult(ctx, "QueueService", "BulkEnqueue", func(ctx context.Context) (*domain.BulkEnqueueResult, error) {
		if len(reqs) == 0 {
			return nil, domain.NewValidationError("batch is empty")
		}

		result := &domain.BulkEnqueueResult{}
		items := make([]*domain.QueueItem, 0, len(reqs))

		for i, req := range reqs {
			var item *domain.QueueItem
			var err error
			if req != nil && (req.TemplateID != nil || req.TemplateName != "") {
				var template *domain.EmailTemplate
				template, err = s.resolveTemplate(ctx, req)
				if err == nil {
					req.TemplateID = &template.ID
					item, err = s.buildItem(req, true)
				}
			} else {
				item, err = s.buildItem(req, false)
			}
			if err != nil {
				result.Rejected = append(result.Rejected, domain.BulkRejectedItem{Index: i, Error: err.Error()})
				continue
			}
			items = append(items, item)
		}

		if len(items) > 0 {
			if err := s.queueRepo.BulkEnqueue(ctx, items); err != nil {
				return nil, fmt.Errorf("failed to enqueue batch: %w", err)
			}
			for _, item := range items {
				result.Accepted = append(result.Accepted, domain.EnqueueResult{
					QueueID:  item.QueueID,
					QueuedAt: item.CreatedAt,
					Status:   item.Status,
				})
			}
		}

		s.logger.WithFields(map[string]interface{}{
			"accepted": len(result.Accepted),
			"rejected": len(result.Rejected),
		}).Info("Bulk enqueue completed")

		return result, nil
	})
}

// GetStatus returns the current row state for one item
func (s *QueueService) GetStatus(ctx context.Context, queueID string) (*domain.EmailStatusResponse, error) {
	item, err := s.queueRepo.GetByID(ctx, queueID)
	if err != nil {
		return nil, err
	}
	return statusResponse(item), nil
}

// GetStatusBatch returns states for several ids; missing ids are skipped
func (s *QueueService) GetStatusBatch(ctx context.Context, queueIDs []string) ([]*domain.EmailStatusResponse, error) {
	if len(queueIDs) == 0 {
		return nil, domain.NewValidationError("queue_ids is empty")
	}
	items, err := s.queueRepo.GetBatch(ctx, queueIDs)
	if err != nil {
		return nil, err
	}
	responses := make([]*domain.EmailStatusResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, statusResponse(item))
	}
	return responses, nil
}

// Attachments lists the attachment audit rows recorded for one item
func (s *QueueService) Attachments(ctx context.Context, queueID string) ([]*domain.EmailAttachment, error) {
	if queueID == "" {
		return nil, domain.NewValidationError("queue_id is required")
	}
	return s.attachmentRepo.ListByQueueID(ctx, queueID)
}

// Cancel transitions a Queued or Scheduled item to Cancelled
func (s *QueueService) Cancel(ctx context.Context, queueID string) (bool, error) {
	cancelled, err := s.queueRepo.Cancel(ctx, queueID)
	if err != nil {
		return false, err
	}
	if cancelled {
		s.logger.WithField("queue_id", queueID).Info("Email cancelled")
	}
	return cancelled, nil
}

// UpdatePriority changes a Queued item's priority
func (s *QueueService) UpdatePriority(ctx context.Context, queueID string, priority domain.EmailPriority) (bool, error) {
	if priority < domain.PriorityHigh || priority > domain.PriorityLow {
		return false, domain.NewValidationError(fmt.Sprintf("priority out of range: %d", priority))
	}
	return s.queueRepo.UpdatePriority(ctx, queueID, priority)
}

// Reschedule defers a Queued item to a future time
func (s *QueueService) Reschedule(ctx context.Context, queueID string, at time.Time) (bool, error) {
	if !at.After(time.Now().UTC()) {
		return false, domain.NewValidationError("reschedule time must be in the future")
	}
	return s.queueRepo.Reschedule(ctx, queueID, at.UTC())
}

// List returns a filtered page of queue rows
func (s *QueueService) List(ctx context.Context, filter domain.QueueFilter) ([]*domain.QueueItem, int64, error) {
	return s.queueRepo.List(ctx, filter)
}

// Statistics aggregates live queue counters with history outcomes
func (s *QueueService) Statistics(ctx context.Context, from, to time.Time) (*domain.QueueStatistics, error) {
	return tracing.TraceMethodWithResult(ctx, "QueueService", "Statistics", func(ctx context.Context) (*domain.QueueStatistics, error) {
		queueStats, err := s.queueRepo.Stats(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get queue stats: %w", err)
		}

		deliveryStats, err := s.historyRepo.Stats(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to get delivery stats: %w", err)
		}

		return &domain.QueueStatistics{
			Queue:    queueStats,
			Delivery: deliveryStats,
			From:     from,
			To:       to,
		}, nil
	})
}

// buildItem validates a request and materializes the queue row
func (s *QueueService) buildItem(req *domain.EnqueueRequest, templateBound bool) (*domain.QueueItem, error) {
	if req == nil {
		return nil, domain.NewValidationError("request is required")
	}

	if strings.TrimSpace(req.ToEmails) == "" &&
		strings.TrimSpace(req.CCEmails) == "" &&
		strings.TrimSpace(req.BCCEmails) == "" {
		return nil, domain.NewValidationError("at least one recipient is required")
	}

	if !templateBound && strings.TrimSpace(req.Subject) == "" {
		return nil, domain.NewValidationError("subject is required")
	}

	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		return nil, err
	}

	for i := range req.Attachments {
		if err := req.Attachments[i].Validate(); err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("attachment %d: %v", i, err))
		}
	}
	if size := domain.TotalAttachmentSize(req.Attachments) + int64(len(req.Body)); size > s.maxMessageBytes {
		return nil, domain.NewValidationError(fmt.Sprintf("message size %d exceeds limit of %d bytes", size, s.maxMessageBytes))
	}

	maxRetries := s.defaultMaxRetries
	if req.MaxRetries != nil {
		if *req.MaxRetries < 0 {
			return nil, domain.NewValidationError("max_retries must not be negative")
		}
		maxRetries = *req.MaxRetries
	}

	isHTML := true
	if req.IsHTML != nil {
		isHTML = *req.IsHTML
	}

	var templateData string
	if templateBound && len(req.TemplateData) > 0 {
		encoded, err := json.Marshal(req.TemplateData)
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("invalid template data: %v", err))
		}
		templateData = string(encoded)
	}

	source := req.RequestSource
	if source == "" {
		source = "api"
	}

	now := time.Now().UTC()
	var scheduledFor *time.Time
	if req.ScheduledFor != nil {
		t := req.ScheduledFor.UTC()
		scheduledFor = &t
	}

	item := &domain.QueueItem{
		QueueID:                     uuid.New().String(),
		Priority:                    priority,
		ToEmails:                    strings.TrimSpace(req.ToEmails),
		CCEmails:                    strings.TrimSpace(req.CCEmails),
		BCCEmails:                   strings.TrimSpace(req.BCCEmails),
		ReplyTo:                     strings.TrimSpace(req.ReplyTo),
		Subject:                     req.Subject,
		Body:                        req.Body,
		IsHTML:                      isHTML,
		TemplateID:                  req.TemplateID,
		TemplateData:                templateData,
		RequiresTemplateProcessing:  templateBound,
		Attachments:                 req.Attachments,
		HasEmbeddedImages:           isHTML && strings.Contains(req.Body, "data:image/"),
		Headers:                     req.Headers,
		RequestDeliveryNotification: req.RequestDeliveryNotification,
		RequestReadReceipt:          req.RequestReadReceipt,
		MaxRetries:                  maxRetries,
		IsScheduled:                 scheduledFor != nil,
		ScheduledFor:                scheduledFor,
		CreatedAt:                   now,
		UpdatedAt:                   now,
		CreatedBy:                   req.CreatedBy,
		RequestSource:               source,
	}
	item.Status = item.InitialStatus(now)

	return item, nil
}

func statusResponse(item *domain.QueueItem) *domain.EmailStatusResponse {
	return &domain.EmailStatusResponse{
		QueueID:      item.QueueID,
		Status:       item.Status,
		Priority:     item.Priority.String(),
		RetryCount:   item.RetryCount,
		MaxRetries:   item.MaxRetries,
		ErrorMessage: item.ErrorMessage,
		ScheduledFor: item.ScheduledFor,
		ProcessedAt:  item.ProcessedAt,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}
