package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mailroom/mailroom/internal/domain"
	"github.com/mailroom/mailroom/internal/http/middleware"
	"github.com/mailroom/mailroom/pkg/logger"
)

// QueueHandler exposes the enqueue API surface. Handlers are thin: decode,
// delegate to the service, map errors to status codes.
type QueueHandler struct {
	queueService  domain.QueueService
	healthService domain.HealthService
	logger        logger.Logger
	apiKey        string
}

// NewQueueHandler creates a new queue handler
func NewQueueHandler(queueService domain.QueueService, healthService domain.HealthService, apiKey string, logger logger.Logger) *QueueHandler {
	return &QueueHandler{
		queueService:  queueService,
		healthService: healthService,
		logger:        logger,
		apiKey:        apiKey,
	}
}

// RegisterRoutes registers the queue routes
func (h *QueueHandler) RegisterRoutes(mux *http.ServeMux) {
	authMiddleware := middleware.NewAuthMiddleware(h.apiKey)
	requireAuth := authMiddleware.RequireAuth()

	mux.Handle("POST /queue", requireAuth(http.HandlerFunc(h.handleEnqueue)))
	mux.Handle("POST /queue-template", requireAuth(http.HandlerFunc(h.handleEnqueueTemplate)))
	mux.Handle("POST /queue-bulk", requireAuth(http.HandlerFunc(h.handleEnqueueBulk)))
	mux.Handle("GET /status/{queue_id}", requireAuth(http.HandlerFunc(h.handleStatus)))
	mux.Handle("POST /status/batch", requireAuth(http.HandlerFunc(h.handleStatusBatch)))
	mux.Handle("POST /cancel/{queue_id}", requireAuth(http.HandlerFunc(h.handleCancel)))
	mux.Handle("GET /attachments/{queue_id}", requireAuth(http.HandlerFunc(h.handleAttachments)))
	mux.Handle("GET /statistics", requireAuth(http.HandlerFunc(h.handleStatistics)))
	mux.Handle("GET /list", requireAuth(http.HandlerFunc(h.handleList)))

	// liveness stays unauthenticated so load balancers can reach it
	mux.Handle("GET /health", http.HandlerFunc(h.handleHealth))
}

func (h *QueueHandler) handleEnqueue(w http.ResponseWriter, r *http.Request) {
	var req domain.EnqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.queueService.Enqueue(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to enqueue email")
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *QueueHandler) handleEnqueueTemplate(w http.ResponseWriter, r *http.Request) {
	var req domain.EnqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.queueService.EnqueueWithTemplate(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to enqueue template email")
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *QueueHandler) handleEnqueueBulk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []*domain.EnqueueRequest `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.queueService.BulkEnqueue(r.Context(), req.Items)
	if err != nil {
		h.writeServiceError(w, err, "Failed to enqueue batch")
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *QueueHandler) handleStatus(w http.ResponseWriter, r *http.Request) {
	queueID := r.PathValue("queue_id")

	status, err := h.queueService.GetStatus(r.Context(), queueID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get email status")
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *QueueHandler) handleStatusBatch(w http.ResponseWriter, r *http.Request) {
	var queueIDs []string
	if err := json.NewDecoder(r.Body).Decode(&queueIDs); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	statuses, err := h.queueService.GetStatusBatch(r.Context(), queueIDs)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get email statuses")
		return
	}
	writeJSON(w, http.StatusOK, statuses)
}

func (h *QueueHandler) handleCancel(w http.ResponseWriter, r *http.Request) {
	queueID := r.PathValue("queue_id")

	cancelled, err := h.queueService.Cancel(r.Context(), queueID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to cancel email")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"cancelled": cancelled})
}

func (h *QueueHandler) handleAttachments(w http.ResponseWriter, r *http.Request) {
	queueID := r.PathValue("queue_id")

	attachments, err := h.queueService.Attachments(r.Context(), queueID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to list attachments")
		return
	}
	writeJSON(w, http.StatusOK, attachments)
}

func (h *QueueHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	report, err := h.healthService.Check(r.Context())
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Health check failed")
		WriteJSONError(w, "Health check failed", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if report.Overall == domain.OverallCritical {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func (h *QueueHandler) handleStatistics(w http.ResponseWriter, r *http.Request) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -1)

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			WriteJSONError(w, "Invalid from timestamp", http.StatusBadRequest)
			return
		}
		from = parsed.UTC()
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			WriteJSONError(w, "Invalid to timestamp", http.StatusBadRequest)
			return
		}
		to = parsed.UTC()
	}

	stats, err := h.queueService.Statistics(r.Context(), from, to)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get queue statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *QueueHandler) handleList(w http.ResponseWriter, r *http.Request) {
	filter, err := listFilterFromQuery(r)
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, total, err := h.queueService.List(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, err, "Failed to list queue items")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":     items,
		"total":     total,
		"page":      filter.Page,
		"page_size": filter.PageSize,
	})
}

func listFilterFromQuery(r *http.Request) (domain.QueueFilter, error) {
	q := r.URL.Query()
	filter := domain.QueueFilter{
		Status: domain.EmailStatus(q.Get("status")),
		Search: q.Get("search"),
	}

	if v := q.Get("priority"); v != "" {
		priority, err := domain.ParsePriority(v)
		if err != nil {
			return filter, err
		}
		filter.Priority = priority
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return filter, domain.NewValidationError("page must be a positive integer")
		}
		filter.Page = page
	}
	if v := q.Get("pageSize"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			return filter, domain.NewValidationError("pageSize must be a positive integer")
		}
		filter.PageSize = size
	}
	if v := q.Get("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, domain.NewValidationError("invalid from timestamp")
		}
		t := parsed.UTC()
		filter.From = &t
	}
	if v := q.Get("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, domain.NewValidationError("invalid to timestamp")
		}
		t := parsed.UTC()
		filter.To = &t
	}

	return filter, nil
}

// writeServiceError maps domain errors onto HTTP status codes
func (h *QueueHandler) writeServiceError(w http.ResponseWriter, err error, logMessage string) {
	var validation domain.ValidationError
	if errors.As(err, &validation) {
		WriteJSONError(w, validation.Error(), http.StatusBadRequest)
		return
	}
	var notFound *domain.ErrNotFound
	if errors.As(err, &notFound) {
		WriteJSONError(w, notFound.Error(), http.StatusNotFound)
		return
	}

	h.logger.WithField("error", err.Error()).Error(logMessage)
	WriteJSONError(w, logMessage, http.StatusInternalServerError)
}
