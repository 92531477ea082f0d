package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"

	"github.com/mailroom/mailroom/config"
	"github.com/mailroom/mailroom/internal/database"
	"github.com/mailroom/mailroom/internal/domain"
	httpHandler "github.com/mailroom/mailroom/internal/http"
	"github.com/mailroom/mailroom/internal/http/middleware"
	"github.com/mailroom/mailroom/internal/repository"
	"github.com/mailroom/mailroom/internal/service"
	"github.com/mailroom/mailroom/pkg/cache"
	"github.com/mailroom/mailroom/pkg/composer"
	"github.com/mailroom/mailroom/pkg/logger"
	"github.com/mailroom/mailroom/pkg/mailer"
	"github.com/mailroom/mailroom/pkg/tracing"
)

// App wires the pipeline together: database, repositories, services, the
// background workers and the HTTP surface.
type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB
	mailer mailer.Mailer
	cache  *cache.Memory

	// Repositories
	queueRepo       domain.EmailQueueRepository
	templateRepo    domain.TemplateRepository
	historyRepo     domain.EmailHistoryRepository
	scheduledRepo   domain.ScheduledEmailRepository
	plogRepo        domain.ProcessingLogRepository
	attachmentRepo  domain.AttachmentRepository
	maintenanceRepo domain.MaintenanceRepository
	statusRepo      domain.ServiceStatusRepository

	// Services and workers
	queueService     *service.QueueService
	templateService  *service.TemplateService
	schedulerService *service.SchedulerService
	healthService    *service.HealthService
	cleanupService   *service.CleanupService
	dispatcher       *service.Dispatcher
	reaper           *service.Reaper

	mux    *http.ServeMux
	server *http.Server

	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
	loopWg         sync.WaitGroup
	stopDBStats    func()
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use an injected database handle
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithMockMailer configures the app to use an injected mailer
func WithMockMailer(m mailer.Mailer) AppOption {
	return func(a *App) {
		a.mailer = m
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:         cfg,
		logger:         logger.NewLogger(cfg.LogLevel),
		mux:            http.NewServeMux(),
		shutdownCtx:    shutdownCtx,
		shutdownCancel: shutdownCancel,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// InitTracing initializes OpenCensus tracing and metrics
func (a *App) InitTracing() error {
	if err := tracing.InitTracing(&a.config.Tracing); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if a.config.Tracing.Enabled {
		a.logger.WithField("sampling_rate", a.config.Tracing.SamplingProbability).
			WithField("metrics_exporter", a.config.Tracing.MetricsExporter).
			Info("Tracing initialized")
	}
	return nil
}

// InitDB connects to PostgreSQL and applies the schema
func (a *App) InitDB() error {
	if a.db == nil {
		driverName := ""
		if a.config.Tracing.Enabled {
			var err error
			driverName, err = tracing.RegisterSQLDriver()
			if err != nil {
				return err
			}
			a.logger.Info("Database driver wrapped with OpenCensus tracing")
		}

		db, err := database.Connect(&a.config.Database, driverName)
		if err != nil {
			return err
		}
		a.db = db

		if a.config.Tracing.Enabled {
			a.stopDBStats = ocsql.RecordStats(a.db, 5*time.Second)
		}
	}

	if err := database.InitializeDatabase(a.db); err != nil {
		a.db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}
	return nil
}

// InitMailer initializes the SMTP transport
func (a *App) InitMailer() error {
	if a.mailer != nil {
		return nil
	}

	a.mailer = mailer.NewSMTPMailer(&mailer.Config{
		Host:     a.config.SMTP.Host,
		Port:     a.config.SMTP.Port,
		Mode:     mailer.ConnectionMode(a.config.SMTP.Mode),
		Username: a.config.SMTP.Username,
		Password: a.config.SMTP.Password,
		Timeout:  a.config.SMTP.Timeout,
	})
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.queueRepo = repository.NewQueueRepository(a.db, a.config.Processing.RetryBackoff)
	a.templateRepo = repository.NewTemplateRepository(a.db)
	a.historyRepo = repository.NewHistoryRepository(a.db)
	a.scheduledRepo = repository.NewScheduledEmailRepository(a.db)
	a.plogRepo = repository.NewProcessingLogRepository(a.db)
	a.attachmentRepo = repository.NewAttachmentRepository(a.db)
	a.maintenanceRepo = repository.NewMaintenanceRepository(a.db)
	a.statusRepo = repository.NewServiceStatusRepository(a.db)
	return nil
}

// InitServices initializes the services and background workers
func (a *App) InitServices() error {
	a.cache = cache.NewMemory(5 * time.Minute)

	a.templateService = service.NewTemplateService(a.templateRepo, a.cache, a.logger)

	a.queueService = service.NewQueueService(
		a.queueRepo,
		a.templateRepo,
		a.attachmentRepo,
		a.historyRepo,
		a.logger,
		a.config.Processing.MaxMessageBytes,
		a.config.Processing.MaxRetries,
	)

	a.schedulerService = service.NewSchedulerService(
		a.scheduledRepo,
		a.queueRepo,
		a.logger,
		a.config.Processing.SchedulerInterval,
	)

	a.healthService = service.NewHealthService(
		a.db,
		a.queueRepo,
		a.statusRepo,
		a.templateRepo,
		a.mailer,
		a.logger,
		a.config,
	)

	a.reaper = service.NewReaper(
		a.queueRepo,
		a.healthService,
		a.logger,
		a.config.Processing.ReaperInterval,
		time.Duration(a.config.Processing.StuckThresholdMinutes)*time.Minute,
		a.config.Processing.StuckAlertThreshold,
	)

	a.cleanupService = service.NewCleanupService(
		a.historyRepo,
		a.plogRepo,
		a.maintenanceRepo,
		a.scheduledRepo,
		a.statusRepo,
		service.NewPgDumpBackupRunner(&a.config.Database),
		a.logger,
		&a.config.Cleanup,
	)

	comp := composer.New(
		a.config.SMTP.SenderEmail,
		a.config.SMTP.SenderName,
		fmt.Sprintf("mailroom %s", a.config.Version),
	)

	a.dispatcher = service.NewDispatcher(
		a.queueRepo,
		a.templateService,
		a.plogRepo,
		comp,
		a.mailer,
		a.logger,
		&a.config.Processing,
	)

	return nil
}

// InitHandlers initializes the HTTP handlers and routes
func (a *App) InitHandlers() error {
	a.mux = http.NewServeMux()

	queueHandler := httpHandler.NewQueueHandler(
		a.queueService,
		a.healthService,
		a.config.APIKey,
		a.logger,
	)
	queueHandler.RegisterRoutes(a.mux)
	return nil
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting mailroom")

	if err := a.InitTracing(); err != nil {
		return err
	}
	if err := a.InitDB(); err != nil {
		return err
	}
	if err := a.InitMailer(); err != nil {
		return err
	}
	if err := a.InitRepositories(); err != nil {
		return err
	}
	if err := a.InitServices(); err != nil {
		return err
	}
	if err := a.InitHandlers(); err != nil {
		return err
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

// StartWorkers launches the dispatcher, scheduler, reaper, heartbeat and
// cleanup loops. They run until Shutdown cancels the shutdown context.
func (a *App) StartWorkers() {
	a.dispatcher.Start(a.shutdownCtx)
	a.schedulerService.Start(a.shutdownCtx)
	a.reaper.Start(a.shutdownCtx)

	a.loopWg.Add(1)
	go a.heartbeatLoop()

	if a.config.Cleanup.Interval > 0 {
		a.loopWg.Add(1)
		go a.cleanupLoop()
	}
}

func (a *App) heartbeatLoop() {
	defer a.loopWg.Done()

	interval := a.config.Processing.HeartbeatInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := a.healthService.Heartbeat(a.shutdownCtx); err != nil {
				a.logger.WithField("error", err.Error()).Error("Heartbeat failed")
			}
		case <-a.shutdownCtx.Done():
			return
		}
	}
}

func (a *App) cleanupLoop() {
	defer a.loopWg.Done()

	ticker := time.NewTicker(a.config.Cleanup.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			result, err := a.cleanupService.RunScheduledPass(a.shutdownCtx)
			if err != nil {
				a.logger.WithField("error", err.Error()).Error("Cleanup pass failed")
				continue
			}
			a.logger.WithField("deleted", result.TotalDeleted).Info("Cleanup pass completed")
		case <-a.shutdownCtx.Done():
			return
		}
	}
}

// Start launches the background workers and the HTTP server. It blocks until
// the server stops.
func (a *App) Start() error {
	a.StartWorkers()

	var handler http.Handler = a.mux
	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
		a.logger.Info("OpenCensus tracing middleware enabled")
	}

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	a.logger.WithField("address", addr).Info("HTTP server starting")
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the workers, drains in-flight sends and closes resources
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown")

	var shutdownErr error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			a.logger.WithField("error", err.Error()).Error("HTTP server shutdown failed")
			shutdownErr = err
		}
	}

	// Stop the workers after the HTTP surface so no new items arrive while
	// in-flight sends drain.
	a.shutdownCancel()
	if a.dispatcher != nil {
		a.dispatcher.Stop()
	}
	if a.schedulerService != nil {
		a.schedulerService.Stop()
	}
	if a.reaper != nil {
		a.reaper.Stop()
	}
	a.loopWg.Wait()

	if a.cache != nil {
		a.cache.Stop()
	}

	if a.stopDBStats != nil {
		a.stopDBStats()
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.WithField("error", err.Error()).Error("Failed to close database")
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
	}

	if shutdownErr == nil {
		a.logger.Info("Graceful shutdown completed")
	}
	return shutdownErr
}

// GetConfig returns the app's configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetLogger returns the app's logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}

// GetMux returns the app's HTTP multiplexer
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetDB returns the app's database connection
func (a *App) GetDB() *sql.DB {
	return a.db
}

// GetMailer returns the app's mailer
func (a *App) GetMailer() mailer.Mailer {
	return a.mailer
}
