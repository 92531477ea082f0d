package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_template_repository.go -package mocks github.com/mailroom/mailroom/internal/domain TemplateRepository

// placeholderRegex matches {KEY} tokens in subjects and bodies
var placeholderRegex = regexp.MustCompile(`\{([^}]+)\}`)

// EmailTemplate is a reusable subject/body pair with {placeholder} tokens
type EmailTemplate struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category,omitempty"`
	SubjectTemplate string    `json:"subject_template"`
	BodyTemplate    string    `json:"body_template"`
	IsActive        bool      `json:"is_active"`
	IsSystem        bool      `json:"is_system"`
	Version         int       `json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	CreatedBy       string    `json:"created_by,omitempty"`
}

// Validate checks structural requirements on create and update
func (t *EmailTemplate) Validate() error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return NewValidationError("template name is required")
	}
	if len(t.Name) > 100 {
		return NewValidationError("template name must be less than 100 characters")
	}
	if strings.TrimSpace(t.SubjectTemplate) == "" {
		return NewValidationError("subject template is required")
	}
	if strings.TrimSpace(t.BodyTemplate) == "" {
		return NewValidationError("body template is required")
	}
	return nil
}

// Placeholders returns the distinct placeholder keys found in the subject and
// body, trimmed, in first-appearance order.
func (t *EmailTemplate) Placeholders() []string {
	return ExtractPlaceholders(t.SubjectTemplate + " " + t.BodyTemplate)
}

// ExtractPlaceholders lists the distinct {KEY} tokens of a text
func ExtractPlaceholders(text string) []string {
	matches := placeholderRegex.FindAllStringSubmatch(text, -1)
	seen := make(map[string]struct{}, len(matches))
	keys := make([]string, 0, len(matches))
	for _, m := range matches {
		key := strings.TrimSpace(m[1])
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// SubstitutePlaceholders replaces every {KEY} token with values[KEY] in a
// single pass. Missing keys substitute the empty string and are returned.
// Replacement values are never re-scanned, so values containing braces do not
// trigger further substitution.
func SubstitutePlaceholders(text string, values map[string]string) (string, []string) {
	var missing []string
	seen := make(map[string]struct{})
	result := placeholderRegex.ReplaceAllStringFunc(text, func(token string) string {
		key := strings.TrimSpace(token[1 : len(token)-1])
		if v, ok := values[key]; ok {
			return v
		}
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			missing = append(missing, key)
		}
		return ""
	})
	return result, missing
}

// TemplateValidationResult is the output of the Validate operation
type TemplateValidationResult struct {
	IsValid      bool     `json:"is_valid"`
	Placeholders []string `json:"placeholders"`
	Errors       []string `json:"errors,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
}

// TemplateUsageStats aggregates delivery outcomes for one template
type TemplateUsageStats struct {
	TemplateID           int64      `json:"template_id"`
	TemplateName         string     `json:"template_name"`
	TimesUsed            int64      `json:"times_used"`
	SuccessCount         int64      `json:"success_count"`
	FailureCount         int64      `json:"failure_count"`
	AvgProcessingTimeMs  float64    `json:"avg_processing_time_ms"`
	LastUsedAt           *time.Time `json:"last_used_at,omitempty"`
}

// TemplateRepository defines data access for email templates
type TemplateRepository interface {
	// Create inserts a template with version 1
	Create(ctx context.Context, template *EmailTemplate) error

	// Update persists changes and increments version; returns ErrNotFound if missing
	Update(ctx context.Context, template *EmailTemplate) error

	// GetByID fetches one template
	GetByID(ctx context.Context, id int64) (*EmailTemplate, error)

	// GetByName fetches by the unique name
	GetByName(ctx context.Context, name string) (*EmailTemplate, error)

	// List returns templates, optionally filtered by category and active flag
	List(ctx context.Context, category string, activeOnly bool) ([]*EmailTemplate, error)

	// Delete removes a template; system templates are refused
	Delete(ctx context.Context, id int64) error

	// SetActive toggles the active flag
	SetActive(ctx context.Context, id int64, active bool) error

	// UsageStats aggregates history rows for a template
	UsageStats(ctx context.Context, id int64) (*TemplateUsageStats, error)
}
