package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailroom/mailroom/internal/repository/testutil"
)

func TestMaintenanceRepository_DeleteAttachmentsOlderThan(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewMaintenanceRepository(db)
	cutoff := time.Date(2026, 5, 27, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`DELETE FROM email_attachments`).
		WithArgs(cutoff, 500).
		WillReturnResult(sqlmock.NewResult(0, 42))

	deleted, err := repo.DeleteAttachmentsOlderThan(context.Background(), cutoff, 500)
	require.NoError(t, err)
	assert.Equal(t, int64(42), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceRepository_DeleteOrphanedAttachments(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	repo := NewMaintenanceRepository(db)

	mock.ExpectExec(`DELETE FROM email_attachments`).
		WithArgs(100).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteOrphanedAttachments(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
