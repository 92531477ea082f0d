package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mailroom/mailroom/internal/database/schema"
)

// InitializeDatabase creates all necessary database tables if they don't exist
func InitializeDatabase(db *sql.DB) error {
	// Run all table creation queries
	for _, query := range schema.TableDefinitions {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return seedSystemTemplates(db)
}

// seedSystemTemplates installs the built-in templates the health reporter
// relies on. Idempotent: existing names are left untouched.
func seedSystemTemplates(db *sql.DB) error {
	type seed struct {
		name, category, subject, body string
	}
	seeds := []seed{
		{
			name:     "system_alert",
			category: "system",
			subject:  "[{Level}] {Title}",
			body:     "<p><strong>{Title}</strong></p><p>{Message}</p><p>Source: {Source} at {Timestamp}</p>",
		},
		{
			name:     "cleanup_report",
			category: "system",
			subject:  "Cleanup completed: {TotalDeleted} records removed",
			body:     "<p>Cleanup finished at {FinishedAt}.</p><p>Records deleted: {TotalDeleted}<br>Records archived: {RecordsArchived}</p>",
		},
	}

	for _, s := range seeds {
		var exists bool
		err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM email_templates WHERE name = $1)", s.name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check template existence: %w", err)
		}
		if exists {
			continue
		}

		now := time.Now().UTC()
		query := `
			INSERT INTO email_templates (name, category, subject_template, body_template, is_active, is_system, version, created_at, updated_at, created_by)
			VALUES ($1, $2, $3, $4, TRUE, TRUE, 1, $5, $6, 'system')
		`
		if _, err := db.Exec(query, s.name, s.category, s.subject, s.body, now, now); err != nil {
			return fmt.Errorf("failed to seed template %s: %w", s.name, err)
		}
	}

	return nil
}

// CleanDatabase drops all tables in reverse order
func CleanDatabase(db *sql.DB) error {
	// Drop tables in reverse order to handle dependencies
	for i := len(schema.TableNames) - 1; i >= 0; i-- {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", schema.TableNames[i])
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", schema.TableNames[i], err)
		}
	}
	return nil
}
