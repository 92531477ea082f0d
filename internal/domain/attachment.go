package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_attachment_repository.go -package mocks github.com/mailroom/mailroom/internal/domain AttachmentRepository

// AttachmentData is the attachment payload carried inside a queue row.
// Exactly one of Content (base64) and FilePath must be set.
type AttachmentData struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type,omitempty"`
	ContentID   string `json:"content_id,omitempty"`
	IsInline    bool   `json:"is_inline"`
	Content     string `json:"content,omitempty"` // base64 encoded
	FilePath    string `json:"file_path,omitempty"`
}

// EmailAttachment is the durable audit row keyed by queue_id
type EmailAttachment struct {
	ID          int64     `json:"id"`
	QueueID     string    `json:"queue_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	ContentID   string    `json:"content_id,omitempty"`
	IsInline    bool      `json:"is_inline"`
	Content     []byte    `json:"-"` // raw bytes in storage
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// AttachmentRepository defines attachment persistence
type AttachmentRepository interface {
	// InsertForQueueItem stores audit rows for every attachment of an item
	InsertForQueueItem(ctx context.Context, queueID string, attachments []AttachmentData) error

	// ListByQueueID returns the audit rows for one item
	ListByQueueID(ctx context.Context, queueID string) ([]*EmailAttachment, error)
}

// Validate checks structural requirements. It fills in the defaults the
// composer relies on (file name, content type).
func (a *AttachmentData) Validate() error {
	if a.FileName == "" {
		a.FileName = "attachment"
	}
	if len(a.FileName) > 255 {
		return fmt.Errorf("file name must be less than 255 characters")
	}
	if strings.ContainsAny(a.FileName, "/\\") {
		return fmt.Errorf("file name must not contain path separators")
	}

	hasContent := a.Content != ""
	hasPath := a.FilePath != ""
	if hasContent == hasPath {
		return fmt.Errorf("exactly one of content and file_path must be set")
	}

	if hasContent {
		if _, err := base64.StdEncoding.DecodeString(a.Content); err != nil {
			return fmt.Errorf("content must be valid base64: %w", err)
		}
	}

	if a.ContentType == "" {
		a.ContentType = "application/octet-stream"
	}
	return nil
}

// DecodeContent decodes the base64 content
func (a *AttachmentData) DecodeContent() ([]byte, error) {
	return base64.StdEncoding.DecodeString(a.Content)
}

// SizeBytes estimates the decoded size without decoding
func (a *AttachmentData) SizeBytes() int64 {
	trimmed := strings.TrimRight(a.Content, "=")
	return int64(len(trimmed)) * 3 / 4
}

// DetectContentType fills ContentType from content sniffing, falling back to
// the file extension for formats http.DetectContentType cannot tell apart.
func (a *AttachmentData) DetectContentType() error {
	if a.ContentType != "" && a.ContentType != "application/octet-stream" {
		return nil
	}

	content, err := a.DecodeContent()
	if err != nil {
		return err
	}

	contentType := http.DetectContentType(content)
	if contentType == "application/octet-stream" || strings.HasPrefix(contentType, "text/plain") {
		ext := strings.ToLower(filepath.Ext(a.FileName))
		switch ext {
		case ".pdf":
			contentType = "application/pdf"
		case ".doc":
			contentType = "application/msword"
		case ".docx":
			contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		case ".xls":
			contentType = "application/vnd.ms-excel"
		case ".xlsx":
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		case ".zip":
			contentType = "application/zip"
		case ".csv":
			contentType = "text/csv"
		case ".txt":
			contentType = "text/plain"
		case ".json":
			contentType = "application/json"
		case ".xml":
			contentType = "application/xml"
		case ".jpg", ".jpeg":
			contentType = "image/jpeg"
		case ".png":
			contentType = "image/png"
		case ".gif":
			contentType = "image/gif"
		case ".webp":
			contentType = "image/webp"
		case ".svg":
			contentType = "image/svg+xml"
		case ".bmp":
			contentType = "image/bmp"
		case ".ico":
			contentType = "image/x-icon"
		case ".tiff", ".tif":
			contentType = "image/tiff"
		}
	}

	a.ContentType = contentType
	return nil
}

// TotalAttachmentSize sums the decoded sizes of a slice of attachments
func TotalAttachmentSize(attachments []AttachmentData) int64 {
	var total int64
	for i := range attachments {
		total += attachments[i].SizeBytes()
	}
	return total
}
