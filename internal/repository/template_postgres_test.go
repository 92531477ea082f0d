package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailroom/mailroom/internal/domain"
	"github.com/mailroom/mailroom/internal/repository/testutil"
)

var templateColumnNames = []string{
	"id", "name", "category", "subject_template", "body_template",
	"is_active", "is_system", "version", "created_at", "updated_at", "created_by",
}

func TestTemplateRepository_Create(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewTemplateRepository(db)

	template := &domain.EmailTemplate{
		Name:            "welcome",
		SubjectTemplate: "Welcome {Name}",
		BodyTemplate:    "<p>Hi {Name}</p>",
		IsActive:        true,
	}

	mock.ExpectQuery(`INSERT INTO email_templates`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	err := repo.Create(context.Background(), template)
	require.NoError(t, err)
	assert.Equal(t, int64(7), template.ID)
	assert.Equal(t, 1, template.Version)
}

func TestTemplateRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("increments version", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTemplateRepository(db)

		template := &domain.EmailTemplate{
			ID:              7,
			Name:            "welcome",
			SubjectTemplate: "Welcome {Name}",
			BodyTemplate:    "<p>Hi</p>",
			IsActive:        true,
			Version:         1,
		}

		mock.ExpectQuery(`UPDATE email_templates`).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(2))

		require.NoError(t, repo.Update(ctx, template))
		assert.Equal(t, 2, template.Version)
	})

	t.Run("returns not found", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTemplateRepository(db)

		mock.ExpectQuery(`UPDATE email_templates`).
			WillReturnRows(sqlmock.NewRows([]string{"version"}))

		err := repo.Update(ctx, &domain.EmailTemplate{ID: 99, Name: "x", SubjectTemplate: "s", BodyTemplate: "b"})
		require.Error(t, err)
		var notFound *domain.ErrNotFound
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestTemplateRepository_GetByName(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewTemplateRepository(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .* FROM email_templates WHERE name`).
		WithArgs("welcome").
		WillReturnRows(sqlmock.NewRows(templateColumnNames).
			AddRow(7, "welcome", "onboarding", "Welcome {Name}", "<p>Hi {Name}</p>", true, false, 3, now, now, "admin"))

	template, err := repo.GetByName(context.Background(), "welcome")
	require.NoError(t, err)
	assert.Equal(t, int64(7), template.ID)
	assert.Equal(t, "onboarding", template.Category)
	assert.Equal(t, 3, template.Version)
}

func TestTemplateRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes regular template", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTemplateRepository(db)

		mock.ExpectExec(`DELETE FROM email_templates`).
			WithArgs(int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 7))
	})

	t.Run("refuses system template", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTemplateRepository(db)

		mock.ExpectExec(`DELETE FROM email_templates`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT is_system FROM email_templates`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"is_system"}).AddRow(true))

		err := repo.Delete(ctx, 1)
		require.Error(t, err)
		var verr domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("returns not found for missing id", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		repo := NewTemplateRepository(db)

		mock.ExpectExec(`DELETE FROM email_templates`).
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT is_system FROM email_templates`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows([]string{"is_system"}))

		err := repo.Delete(ctx, 42)
		require.Error(t, err)
		var notFound *domain.ErrNotFound
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestTemplateRepository_UsageStats(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewTemplateRepository(db)

	lastUsed := time.Now().UTC()
	mock.ExpectQuery(`SELECT t.name`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "times", "success", "failure", "avg", "last"}).
			AddRow("welcome", 40, 38, 2, 220.5, lastUsed))

	stats, err := repo.UsageStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(40), stats.TimesUsed)
	assert.Equal(t, int64(38), stats.SuccessCount)
	assert.Equal(t, 220.5, stats.AvgProcessingTimeMs)
	require.NotNil(t, stats.LastUsedAt)
}
