package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mailroom/mailroom/internal/domain"
)

const templateColumns = `id, name, category, subject_template, body_template, is_active, is_system, version, created_at, updated_at, created_by`

// TemplateRepository implements domain.TemplateRepository on PostgreSQL
type TemplateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create inserts a template with version 1
func (r *TemplateRepository) Create(ctx context.Context, template *domain.EmailTemplate) error {
	now := time.Now().UTC()
	template.Version = 1
	template.CreatedAt = now
	template.UpdatedAt = now

	query := `
		INSERT INTO email_templates (name, category, subject_template, body_template, is_active, is_system, version, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		template.Name, nullString(template.Category), template.SubjectTemplate,
		template.BodyTemplate, template.IsActive, template.IsSystem,
		template.Version, template.CreatedAt, template.UpdatedAt,
		nullString(template.CreatedBy),
	).Scan(&template.ID)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	return nil
}

// Update persists changes and increments the version
func (r *TemplateRepository) Update(ctx context.Context, template *domain.EmailTemplate) error {
	now := time.Now().UTC()

	query := `
		UPDATE email_templates
		SET name = $2, category = $3, subject_template = $4, body_template = $5,
		    is_active = $6, version = version + 1, updated_at = $7
		WHERE id = $1
		RETURNING version
	`

	err := r.db.QueryRowContext(ctx, query,
		template.ID, template.Name, nullString(template.Category),
		template.SubjectTemplate, template.BodyTemplate, template.IsActive, now,
	).Scan(&template.Version)
	if err != nil {
		if err == sql.ErrNoRows {
			return &domain.ErrNotFound{Entity: "template", ID: strconv.FormatInt(template.ID, 10)}
		}
		return fmt.Errorf("failed to update template: %w", err)
	}
	template.UpdatedAt = now

	return nil
}

// GetByID fetches one template
func (r *TemplateRepository) GetByID(ctx context.Context, id int64) (*domain.EmailTemplate, error) {
	query := fmt.Sprintf(`SELECT %s FROM email_templates WHERE id = $1`, templateColumns)

	template, err := scanTemplate(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "template", ID: strconv.FormatInt(id, 10)}
		}
		return nil, err
	}

	return template, nil
}

// GetByName fetches by the unique name
func (r *TemplateRepository) GetByName(ctx context.Context, name string) (*domain.EmailTemplate, error) {
	query := fmt.Sprintf(`SELECT %s FROM email_templates WHERE name = $1`, templateColumns)

	template, err := scanTemplate(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "template", ID: name}
		}
		return nil, err
	}

	return template, nil
}

// List returns templates, optionally filtered by category and active flag
func (r *TemplateRepository) List(ctx context.Context, category string, activeOnly bool) ([]*domain.EmailTemplate, error) {
	builder := psql.Select(templateColumns).From("email_templates").OrderBy("name ASC")
	if category != "" {
		builder = builder.Where(sq.Eq{"category": category})
	}
	if activeOnly {
		builder = builder.Where(sq.Eq{"is_active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.EmailTemplate
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}

	return templates, rows.Err()
}

// Delete removes a template; system templates are refused
func (r *TemplateRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM email_templates WHERE id = $1 AND is_system = FALSE`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		// missing or system-protected; disambiguate for the caller
		var isSystem bool
		err := r.db.QueryRowContext(ctx, `SELECT is_system FROM email_templates WHERE id = $1`, id).Scan(&isSystem)
		if err == sql.ErrNoRows {
			return &domain.ErrNotFound{Entity: "template", ID: strconv.FormatInt(id, 10)}
		}
		if err != nil {
			return fmt.Errorf("failed to check template: %w", err)
		}
		return domain.NewValidationError("system templates cannot be deleted")
	}

	return nil
}

// SetActive toggles the active flag
func (r *TemplateRepository) SetActive(ctx context.Context, id int64, active bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE email_templates SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to set template active flag: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return &domain.ErrNotFound{Entity: "template", ID: strconv.FormatInt(id, 10)}
	}

	return nil
}

// UsageStats aggregates history rows for a template
func (r *TemplateRepository) UsageStats(ctx context.Context, id int64) (*domain.TemplateUsageStats, error) {
	query := `
		SELECT t.name,
		       COUNT(h.id),
		       COALESCE(SUM(CASE WHEN h.status = 'sent' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN h.status = 'failed' THEN 1 ELSE 0 END), 0),
		       COALESCE(AVG(h.processing_time_ms), 0),
		       MAX(h.sent_at)
		FROM email_templates t
		LEFT JOIN email_history h ON h.template_id = t.id
		WHERE t.id = $1
		GROUP BY t.name
	`

	stats := &domain.TemplateUsageStats{TemplateID: id}
	var lastUsed sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&stats.TemplateName, &stats.TimesUsed, &stats.SuccessCount,
		&stats.FailureCount, &stats.AvgProcessingTimeMs, &lastUsed,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrNotFound{Entity: "template", ID: strconv.FormatInt(id, 10)}
		}
		return nil, fmt.Errorf("failed to get template usage stats: %w", err)
	}
	if lastUsed.Valid {
		stats.LastUsedAt = &lastUsed.Time
	}

	return stats, nil
}

// scanTemplate scans a row into an EmailTemplate
func scanTemplate(row rowScanner) (*domain.EmailTemplate, error) {
	var template domain.EmailTemplate
	var category, createdBy sql.NullString

	err := row.Scan(
		&template.ID, &template.Name, &category, &template.SubjectTemplate,
		&template.BodyTemplate, &template.IsActive, &template.IsSystem,
		&template.Version, &template.CreatedAt, &template.UpdatedAt, &createdBy,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan template: %w", err)
	}

	template.Category = category.String
	template.CreatedBy = createdBy.String

	return &template, nil
}
