package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mailroom/mailroom/internal/domain"
	"github.com/mailroom/mailroom/pkg/cache"
	"github.com/mailroom/mailroom/pkg/logger"
)

// templateCacheTTL bounds how stale a cached template can be
const templateCacheTTL = 5 * time.Minute

// TemplateService manages templates and performs placeholder substitution
type TemplateService struct {
	repo   domain.TemplateRepository
	cache  cache.Cache
	logger logger.Logger
}

// NewTemplateService creates a new template service
func NewTemplateService(repo domain.TemplateRepository, cache cache.Cache, logger logger.Logger) *TemplateService {
	return &TemplateService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Create inserts a new template after validation
func (s *TemplateService) Create(ctx context.Context, template *domain.EmailTemplate) error {
	if err := template.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, template); err != nil {
		return err
	}
	s.logger.WithFields(map[string]interface{}{
		"template_id":   template.ID,
		"template_name": template.Name,
	}).Info("Template created")
	return nil
}

// Update persists changes and invalidates the cached copies
func (s *TemplateService) Update(ctx context.Context, template *domain.EmailTemplate) error {
	if err := template.Validate(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, template); err != nil {
		return err
	}
	s.invalidate(template)
	s.logger.WithFields(map[string]interface{}{
		"template_id": template.ID,
		"version":     template.Version,
	}).Info("Template updated")
	return nil
}

// GetByID fetches one template, serving repeated lookups from cache
func (s *TemplateService) GetByID(ctx context.Context, id int64) (*domain.EmailTemplate, error) {
	value, err := s.cache.GetOrSet(templateIDKey(id), templateCacheTTL, func() (interface{}, error) {
		return s.repo.GetByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.EmailTemplate), nil
}

// GetByName fetches by the unique name, serving repeated lookups from cache
func (s *TemplateService) GetByName(ctx context.Context, name string) (*domain.EmailTemplate, error) {
	value, err := s.cache.GetOrSet(templateNameKey(name), templateCacheTTL, func() (interface{}, error) {
		return s.repo.GetByName(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	return value.(*domain.EmailTemplate), nil
}

// List returns templates, optionally filtered by category and active flag
func (s *TemplateService) List(ctx context.Context, category string, activeOnly bool) ([]*domain.EmailTemplate, error) {
	return s.repo.List(ctx, category, activeOnly)
}

// Delete removes a template; system templates are refused by the repository
func (s *TemplateService) Delete(ctx context.Context, id int64) error {
	template, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(template)
	s.logger.WithField("template_id", id).Info("Template deleted")
	return nil
}

// Process resolves the template and substitutes the given values in one pass
// over subject and body. Missing placeholders substitute empty strings and
// are reported, never failed on.
func (s *TemplateService) Process(ctx context.Context, templateID int64, values map[string]string) (*domain.TemplateProcessResult, error) {
	template, err := s.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if !template.IsActive {
		return nil, &domain.ErrTemplateResolution{TemplateID: templateID, Reason: "template is not active"}
	}

	subject, missingSubject := domain.SubstitutePlaceholders(template.SubjectTemplate, values)
	body, missingBody := domain.SubstitutePlaceholders(template.BodyTemplate, values)

	missing := mergeMissing(missingSubject, missingBody)
	if len(missing) > 0 {
		s.logger.WithFields(map[string]interface{}{
			"template_id": templateID,
			"missing":     strings.Join(missing, ","),
		}).Warn("Template processed with missing placeholders")
	}

	return &domain.TemplateProcessResult{
		Subject:             subject,
		Body:                body,
		MissingPlaceholders: missing,
	}, nil
}

// Validate inspects a subject/body pair without persisting anything
func (s *TemplateService) Validate(subject, body string) *domain.TemplateValidationResult {
	result := &domain.TemplateValidationResult{
		Placeholders: domain.ExtractPlaceholders(subject + " " + body),
	}

	if strings.TrimSpace(subject) == "" {
		result.Errors = append(result.Errors, "subject template is required")
	}
	if strings.TrimSpace(body) == "" {
		result.Errors = append(result.Errors, "body template is required")
	}

	lower := strings.ToLower(body)
	if strings.Contains(lower, "<script") {
		result.Warnings = append(result.Warnings, "body contains a script tag")
	}
	if strings.Contains(lower, "javascript:") {
		result.Warnings = append(result.Warnings, "body contains a javascript: URL")
	}
	if strings.Count(subject+body, "{") != strings.Count(subject+body, "}") {
		result.Warnings = append(result.Warnings, "unbalanced braces, a placeholder may be malformed")
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

// Clone copies a template under a new name with version 1 and the system
// flag cleared.
func (s *TemplateService) Clone(ctx context.Context, id int64, newName string) (*domain.EmailTemplate, error) {
	source, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := &domain.EmailTemplate{
		Name:            strings.TrimSpace(newName),
		Category:        source.Category,
		SubjectTemplate: source.SubjectTemplate,
		BodyTemplate:    source.BodyTemplate,
		IsActive:        true,
		IsSystem:        false,
		CreatedBy:       source.CreatedBy,
	}
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, clone); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"source_id": id,
		"clone_id":  clone.ID,
	}).Info("Template cloned")
	return clone, nil
}

// UsageStats aggregates delivery outcomes for one template
func (s *TemplateService) UsageStats(ctx context.Context, id int64) (*domain.TemplateUsageStats, error) {
	return s.repo.UsageStats(ctx, id)
}

func (s *TemplateService) invalidate(template *domain.EmailTemplate) {
	s.cache.Delete(templateIDKey(template.ID))
	s.cache.Delete(templateNameKey(template.Name))
}

func templateIDKey(id int64) string {
	return fmt.Sprintf("template:id:%d", id)
}

func templateNameKey(name string) string {
	return "template:name:" + name
}

func mergeMissing(a, b []string) []string {
	if len(a) == 0 {
		return b
	}
	seen := make(map[string]struct{}, len(a))
	for _, k := range a {
		seen[k] = struct{}{}
	}
	merged := a
	for _, k := range b {
		if _, ok := seen[k]; !ok {
			merged = append(merged, k)
		}
	}
	return merged
}

// ParseTemplateData decodes the stored template_data JSON object into the
// flat placeholder map. Non-string values are rendered with their JSON
// representation. Invalid JSON yields an empty map.
func ParseTemplateData(data string) map[string]string {
	values := make(map[string]string)
	if strings.TrimSpace(data) == "" {
		return values
	}
	parsed := gjson.Parse(data)
	if !parsed.IsObject() {
		return values
	}
	parsed.ForEach(func(key, value gjson.Result) bool {
		values[key.String()] = value.String()
		return true
	})
	return values
}
