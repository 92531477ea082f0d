package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	SMTP        SMTPConfig
	Processing  ProcessingConfig
	Cleanup     CleanupConfig
	Alert       AlertConfig
	Tracing     TracingConfig
	Environment string
	LogLevel    string
	Version     string

	// APIKey guards the enqueue API when set; empty disables the check.
	APIKey string
}

type ServerConfig struct {
	Port int
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// SMTPConnectionMode selects the transport security for the relay connection
type SMTPConnectionMode string

const (
	SMTPModeNone     SMTPConnectionMode = "none"
	SMTPModeStartTLS SMTPConnectionMode = "starttls"
	SMTPModeSSL      SMTPConnectionMode = "ssl"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Mode        SMTPConnectionMode
	Username    string
	Password    string
	SenderEmail string
	SenderName  string
	Timeout     time.Duration
}

type ProcessingConfig struct {
	MaxConcurrentWorkers  int
	BatchSize             int
	PollInterval          time.Duration
	HeartbeatInterval     time.Duration
	StuckThresholdMinutes int
	ReaperInterval        time.Duration
	SchedulerInterval     time.Duration
	DrainTimeout          time.Duration
	MaxRetries            int
	RetryBackoff          time.Duration
	MaxMessageBytes       int64
	QueueDepthThreshold   int64
	StuckAlertThreshold   int64
}

type CleanupConfig struct {
	HistoryRetentionDays       int
	ProcessingLogRetentionDays int
	AttachmentRetentionDays    int
	ServiceStatusRetentionDays int
	FailedQueueRetentionDays   int
	BackupRetentionDays        int
	BackupPath                 string
	ArchivePath                string
	ArchiveS3Bucket            string
	ArchiveS3Region            string
	MaxRecordsPerCleanup       int
	CreateBackupBeforeCleanup  bool
	EnableAggressiveCleanup    bool
	Interval                   time.Duration
}

type AlertConfig struct {
	AlertEmail    string
	WebhookURL    string
	WebhookSecret string
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64
	MetricsExporter     string // "prometheus" or "none"
	PrometheusPort      int
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "mailroom")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	// SMTP defaults
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_MODE", "starttls")
	v.SetDefault("SMTP_SENDER_NAME", "Mailroom")
	v.SetDefault("SMTP_TIMEOUT_SECONDS", 30)

	// Processing defaults
	v.SetDefault("PROCESSING_MAX_CONCURRENT_WORKERS", 5)
	v.SetDefault("PROCESSING_BATCH_SIZE", 10)
	v.SetDefault("PROCESSING_POLL_INTERVAL_SECONDS", 2)
	v.SetDefault("PROCESSING_HEARTBEAT_INTERVAL_SECONDS", 30)
	v.SetDefault("PROCESSING_STUCK_THRESHOLD_MINUTES", 10)
	v.SetDefault("PROCESSING_REAPER_INTERVAL_MINUTES", 5)
	v.SetDefault("PROCESSING_SCHEDULER_INTERVAL_SECONDS", 30)
	v.SetDefault("PROCESSING_DRAIN_TIMEOUT_SECONDS", 30)
	v.SetDefault("PROCESSING_MAX_RETRIES", 3)
	v.SetDefault("PROCESSING_RETRY_BACKOFF_MINUTES", 5)
	v.SetDefault("PROCESSING_MAX_MESSAGE_BYTES", 25*1024*1024)
	v.SetDefault("PROCESSING_QUEUE_DEPTH_THRESHOLD", 10000)
	v.SetDefault("PROCESSING_STUCK_ALERT_THRESHOLD", 25)

	// Cleanup defaults
	v.SetDefault("CLEANUP_HISTORY_RETENTION_DAYS", 180)
	v.SetDefault("CLEANUP_PROCESSING_LOG_RETENTION_DAYS", 30)
	v.SetDefault("CLEANUP_ATTACHMENT_RETENTION_DAYS", 90)
	v.SetDefault("CLEANUP_SERVICE_STATUS_RETENTION_DAYS", 7)
	v.SetDefault("CLEANUP_FAILED_QUEUE_RETENTION_DAYS", 7)
	v.SetDefault("CLEANUP_BACKUP_RETENTION_DAYS", 14)
	v.SetDefault("CLEANUP_BACKUP_PATH", "/var/lib/mailroom/backups")
	v.SetDefault("CLEANUP_ARCHIVE_PATH", "/var/lib/mailroom/archives")
	v.SetDefault("CLEANUP_ARCHIVE_S3_REGION", "us-east-1")
	v.SetDefault("CLEANUP_MAX_RECORDS_PER_CLEANUP", 10000)
	v.SetDefault("CLEANUP_CREATE_BACKUP_BEFORE_CLEANUP", false)
	v.SetDefault("CLEANUP_ENABLE_AGGRESSIVE_CLEANUP", false)
	v.SetDefault("CLEANUP_INTERVAL_HOURS", 24)

	// Tracing defaults
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "mailroom")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PORT", 9464)

	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}
		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if the env file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	senderEmail := v.GetString("SMTP_SENDER_EMAIL")
	if senderEmail == "" {
		return nil, fmt.Errorf("SMTP_SENDER_EMAIL is required")
	}

	mode := SMTPConnectionMode(strings.ToLower(v.GetString("SMTP_MODE")))
	switch mode {
	case SMTPModeNone, SMTPModeStartTLS, SMTPModeSSL:
	default:
		return nil, fmt.Errorf("invalid SMTP_MODE %q: must be none, starttls or ssl", mode)
	}

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		SMTP: SMTPConfig{
			Host:        v.GetString("SMTP_HOST"),
			Port:        v.GetInt("SMTP_PORT"),
			Mode:        mode,
			Username:    v.GetString("SMTP_USERNAME"),
			Password:    v.GetString("SMTP_PASSWORD"),
			SenderEmail: senderEmail,
			SenderName:  v.GetString("SMTP_SENDER_NAME"),
			Timeout:     time.Duration(v.GetInt("SMTP_TIMEOUT_SECONDS")) * time.Second,
		},
		Processing: ProcessingConfig{
			MaxConcurrentWorkers:  v.GetInt("PROCESSING_MAX_CONCURRENT_WORKERS"),
			BatchSize:             v.GetInt("PROCESSING_BATCH_SIZE"),
			PollInterval:          time.Duration(v.GetInt("PROCESSING_POLL_INTERVAL_SECONDS")) * time.Second,
			HeartbeatInterval:     time.Duration(v.GetInt("PROCESSING_HEARTBEAT_INTERVAL_SECONDS")) * time.Second,
			StuckThresholdMinutes: v.GetInt("PROCESSING_STUCK_THRESHOLD_MINUTES"),
			ReaperInterval:        time.Duration(v.GetInt("PROCESSING_REAPER_INTERVAL_MINUTES")) * time.Minute,
			SchedulerInterval:     time.Duration(v.GetInt("PROCESSING_SCHEDULER_INTERVAL_SECONDS")) * time.Second,
			DrainTimeout:          time.Duration(v.GetInt("PROCESSING_DRAIN_TIMEOUT_SECONDS")) * time.Second,
			MaxRetries:            v.GetInt("PROCESSING_MAX_RETRIES"),
			RetryBackoff:          time.Duration(v.GetInt("PROCESSING_RETRY_BACKOFF_MINUTES")) * time.Minute,
			MaxMessageBytes:       v.GetInt64("PROCESSING_MAX_MESSAGE_BYTES"),
			QueueDepthThreshold:   v.GetInt64("PROCESSING_QUEUE_DEPTH_THRESHOLD"),
			StuckAlertThreshold:   v.GetInt64("PROCESSING_STUCK_ALERT_THRESHOLD"),
		},
		Cleanup: CleanupConfig{
			HistoryRetentionDays:       v.GetInt("CLEANUP_HISTORY_RETENTION_DAYS"),
			ProcessingLogRetentionDays: v.GetInt("CLEANUP_PROCESSING_LOG_RETENTION_DAYS"),
			AttachmentRetentionDays:    v.GetInt("CLEANUP_ATTACHMENT_RETENTION_DAYS"),
			ServiceStatusRetentionDays: v.GetInt("CLEANUP_SERVICE_STATUS_RETENTION_DAYS"),
			FailedQueueRetentionDays:   v.GetInt("CLEANUP_FAILED_QUEUE_RETENTION_DAYS"),
			BackupRetentionDays:        v.GetInt("CLEANUP_BACKUP_RETENTION_DAYS"),
			BackupPath:                 v.GetString("CLEANUP_BACKUP_PATH"),
			ArchivePath:                v.GetString("CLEANUP_ARCHIVE_PATH"),
			ArchiveS3Bucket:            v.GetString("CLEANUP_ARCHIVE_S3_BUCKET"),
			ArchiveS3Region:            v.GetString("CLEANUP_ARCHIVE_S3_REGION"),
			MaxRecordsPerCleanup:       v.GetInt("CLEANUP_MAX_RECORDS_PER_CLEANUP"),
			CreateBackupBeforeCleanup:  v.GetBool("CLEANUP_CREATE_BACKUP_BEFORE_CLEANUP"),
			EnableAggressiveCleanup:    v.GetBool("CLEANUP_ENABLE_AGGRESSIVE_CLEANUP"),
			Interval:                   time.Duration(v.GetInt("CLEANUP_INTERVAL_HOURS")) * time.Hour,
		},
		Alert: AlertConfig{
			AlertEmail:    v.GetString("ALERT_EMAIL"),
			WebhookURL:    v.GetString("ALERT_WEBHOOK_URL"),
			WebhookSecret: v.GetString("ALERT_WEBHOOK_SECRET"),
		},
		Tracing: TracingConfig{
			Enabled:             v.GetBool("TRACING_ENABLED"),
			ServiceName:         v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability: v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			MetricsExporter:     v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:      v.GetInt("TRACING_PROMETHEUS_PORT"),
		},
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
		APIKey:      v.GetString("API_KEY"),
	}

	return config, nil
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
