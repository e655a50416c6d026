package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/handlers"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/services/browser"
	"github.com/ternarybob/indago/internal/services/enrich"
	"github.com/ternarybob/indago/internal/services/events"
	"github.com/ternarybob/indago/internal/services/export"
	"github.com/ternarybob/indago/internal/services/leads"
	"github.com/ternarybob/indago/internal/services/linkedin"
	"github.com/ternarybob/indago/internal/services/parser"
	"github.com/ternarybob/indago/internal/services/scheduler"
	"github.com/ternarybob/indago/internal/storage"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Event-driven services
	EventService     interfaces.EventService
	SchedulerService interfaces.SchedulerService

	// Lead pipeline services
	ParserService *parser.Service
	Launcher      *browser.Launcher
	Authenticator *linkedin.Authenticator
	Extractor     *linkedin.Extractor
	EnrichService *enrich.Service
	ExportService interfaces.ExportService
	LeadService   interfaces.LeadService

	// HTTP handlers
	WSHandler          *handlers.WebSocketHandler
	StatusHandler      *handlers.StatusHandler
	CredentialsHandler *handlers.CredentialsHandler
	ParseHandler       *handlers.ParseHandler
	JobHandler         *handlers.JobHandler
	ExportHandler      *handlers.ExportHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Initialize database
	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize services
	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	// Initialize handlers
	if err := app.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	// Log initialization summary
	logger.Info().
		Str("llm_provider", string(cfg.LLM.DefaultProvider)).
		Bool("enrichment_enabled", cfg.Enrichment.Enabled).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase initializes the storage layer (Badger)
func (a *App) initDatabase() error {
	storageManager, err := storage.NewStorageManager(a.Logger, a.Config)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

// initServices initializes all business services in dependency order
func (a *App) initServices() error {
	// Event service first: job lifecycle events flow through it to the
	// logger subscriber and the WebSocket broadcaster
	a.EventService = events.NewService(a.Logger)
	if err := events.SubscribeLoggerToAllEvents(a.EventService, a.Logger); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to subscribe logger to job events")
	}

	// Pipeline stages
	a.ParserService = parser.NewService(&a.Config.LLM, a.Logger)
	a.Launcher = browser.NewLauncher(&a.Config.Browser, a.Logger)
	a.Authenticator = linkedin.NewAuthenticator(&a.Config.Scraper, a.Logger)
	a.Extractor = linkedin.NewExtractor(&a.Config.Scraper, a.Logger)
	a.EnrichService = enrich.NewService(&a.Config.Enrichment, a.Logger)
	a.ExportService = export.NewService(a.Logger)
	a.Logger.Debug().Msg("Pipeline services initialized")

	// Lead orchestrator ties the pipeline stages together
	a.LeadService = leads.NewService(
		a.Config,
		a.Logger,
		a.ParserService,
		a.Launcher,
		a.Authenticator,
		a.Extractor,
		a.EnrichService,
		a.StorageManager,
		a.EventService,
	)
	a.Logger.Debug().Msg("Lead service initialized")

	// Scheduler fails interrupted jobs on startup, then sweeps stale jobs
	// and expired records on its cron schedule
	a.SchedulerService = scheduler.NewService(a.Config, a.StorageManager, a.EventService, a.Logger)
	if err := a.SchedulerService.Start(); err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to start scheduler service")
	} else {
		a.Logger.Debug().Msg("Scheduler service started")
	}

	return nil
}

// initHandlers initializes all HTTP handlers
func (a *App) initHandlers() error {
	a.WSHandler = handlers.NewWebSocketHandler(a.EventService, a.Logger)
	a.StatusHandler = handlers.NewStatusHandler(a.StorageManager, a.Logger)
	a.CredentialsHandler = handlers.NewCredentialsHandler(a.StorageManager.CredentialsStorage(), a.Logger)
	a.ParseHandler = handlers.NewParseHandler(a.Config, a.StorageManager.CredentialsStorage(), a.LeadService, a.Logger)
	a.JobHandler = handlers.NewJobHandler(
		a.Config,
		a.StorageManager.CredentialsStorage(),
		a.LeadService,
		a.StorageManager.JobStorage(),
		a.StorageManager.ProfileStorage(),
		a.Logger,
	)
	a.ExportHandler = handlers.NewExportHandler(a.StorageManager.JobStorage(), a.ExportService, a.Logger)

	return nil
}

// Close closes all application resources
func (a *App) Close() error {
	// Stop scheduler first so no maintenance pass starts mid-shutdown
	if a.SchedulerService != nil {
		if err := a.SchedulerService.Stop(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to stop scheduler service")
		}
	}

	// Wait for in-flight lead jobs to reach a terminal state
	if a.LeadService != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := a.LeadService.Wait(ctx); err != nil {
			a.Logger.Warn().
				Err(err).
				Int("active_jobs", a.LeadService.ActiveJobs()).
				Msg("Lead jobs still running at shutdown")
		}
	}

	// Close event service
	if a.EventService != nil {
		if err := a.EventService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close event service")
		}
	}

	// Close storage
	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
