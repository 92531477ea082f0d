package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SMTP_SENDER_EMAIL", "noreply@example.com")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "mailroom", cfg.Database.DBName)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, SMTPModeStartTLS, cfg.SMTP.Mode)
	assert.Equal(t, "Mailroom", cfg.SMTP.SenderName)
	assert.Equal(t, 30*time.Second, cfg.SMTP.Timeout)
	assert.Equal(t, 5, cfg.Processing.MaxConcurrentWorkers)
	assert.Equal(t, 10, cfg.Processing.BatchSize)
	assert.Equal(t, 3, cfg.Processing.MaxRetries)
	assert.Equal(t, 5*time.Minute, cfg.Processing.RetryBackoff)
	assert.Equal(t, 10, cfg.Processing.StuckThresholdMinutes)
	assert.Equal(t, int64(25*1024*1024), cfg.Processing.MaxMessageBytes)
	assert.Equal(t, int64(10000), cfg.Processing.QueueDepthThreshold)
	assert.Equal(t, 180, cfg.Cleanup.HistoryRetentionDays)
	assert.Equal(t, 30, cfg.Cleanup.ProcessingLogRetentionDays)
	assert.Equal(t, 90, cfg.Cleanup.AttachmentRetentionDays)
	assert.Equal(t, 7, cfg.Cleanup.ServiceStatusRetentionDays)
	assert.Equal(t, 7, cfg.Cleanup.FailedQueueRetentionDays)
	assert.Equal(t, 10000, cfg.Cleanup.MaxRecordsPerCleanup)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_RequiresSenderEmail(t *testing.T) {
	t.Setenv("SMTP_SENDER_EMAIL", "")

	_, err := LoadWithOptions(LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_SENDER_EMAIL")
}

func TestLoad_InvalidSMTPMode(t *testing.T) {
	t.Setenv("SMTP_SENDER_EMAIL", "noreply@example.com")
	t.Setenv("SMTP_MODE", "carrier-pigeon")

	_, err := LoadWithOptions(LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_MODE")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SMTP_SENDER_EMAIL", "noreply@example.com")
	t.Setenv("SMTP_MODE", "ssl")
	t.Setenv("PROCESSING_MAX_CONCURRENT_WORKERS", "12")
	t.Setenv("PROCESSING_BATCH_SIZE", "50")
	t.Setenv("CLEANUP_HISTORY_RETENTION_DAYS", "30")
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, SMTPModeSSL, cfg.SMTP.Mode)
	assert.Equal(t, 12, cfg.Processing.MaxConcurrentWorkers)
	assert.Equal(t, 50, cfg.Processing.BatchSize)
	assert.Equal(t, 30, cfg.Cleanup.HistoryRetentionDays)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}
