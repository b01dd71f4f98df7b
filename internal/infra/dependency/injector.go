// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/scope3-tracker/backend/config"
	"github.com/scope3-tracker/backend/internal/application/usecase/coverage"
	"github.com/scope3-tracker/backend/internal/application/usecase/dashboard"
	"github.com/scope3-tracker/backend/internal/application/usecase/entry"
	"github.com/scope3-tracker/backend/internal/application/usecase/export"
	"github.com/scope3-tracker/backend/internal/infra/server/router"
	"github.com/scope3-tracker/backend/internal/integration/adapters"
	"github.com/scope3-tracker/backend/internal/integration/email"
	"github.com/scope3-tracker/backend/internal/integration/email/templates"
	"github.com/scope3-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/scope3-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/scope3-tracker/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) *Injector {
	// Create repositories
	entryRepo := persistence.NewEntryRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create the entitlement cache. A missing Redis is tolerated: every
	// gate check then goes straight to the billing service.
	var entitlementCache *redis.Client
	if opts, err := redis.ParseURL(cfg.Redis.URL); err == nil {
		if cfg.Redis.Password != "" {
			opts.Password = cfg.Redis.Password
		}
		opts.DB = cfg.Redis.DB
		entitlementCache = redis.NewClient(opts)
	} else {
		slog.Warn("Invalid Redis URL, entitlement caching disabled", "error", err)
	}

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	clock := adapters.NewSystemClock()
	entitlementService := adapters.NewEntitlementService(
		cfg.Billing.BaseURL,
		cfg.Billing.APIKey,
		cfg.Billing.Timeout,
		entitlementCache,
		cfg.Billing.CacheTTL,
	)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	// Create entry use cases
	listEntriesUseCase := entry.NewListEntriesUseCase(entryRepo)
	createEntryUseCase := entry.NewCreateEntryUseCase(entryRepo, entitlementService, clock)
	bulkCreateEntriesUseCase := entry.NewBulkCreateEntriesUseCase(entryRepo, entitlementService, clock)
	updateEntryUseCase := entry.NewUpdateEntryUseCase(entryRepo, entitlementService, clock)
	deleteEntryUseCase := entry.NewDeleteEntryUseCase(entryRepo, entitlementService)

	// Create coverage use cases
	getRemindersUseCase := coverage.NewGetRemindersUseCase(entryRepo, clock, cfg.Reporting.DefaultTarget)
	queueDigestUseCase := coverage.NewQueueDigestUseCase(
		entryRepo,
		emailService,
		entitlementService,
		clock,
		cfg.Reporting.DefaultTarget,
		cfg.Email.AppBaseURL+"/dashboard",
	)

	// Create dashboard and export use cases
	getSummaryUseCase := dashboard.NewGetSummaryUseCase(entryRepo)
	exportReportUseCase := export.NewExportReportUseCase(entryRepo, entitlementService)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	entryController := controller.NewEntryController(
		listEntriesUseCase,
		createEntryUseCase,
		bulkCreateEntriesUseCase,
		updateEntryUseCase,
		deleteEntryUseCase,
	)
	coverageController := controller.NewCoverageController(getRemindersUseCase, queueDigestUseCase)
	dashboardController := controller.NewDashboardController(getSummaryUseCase)
	reportController := controller.NewReportController(exportReportUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var digestRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		digestRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		digestRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		entryController,
		coverageController,
		dashboardController,
		reportController,
		digestRateLimiter,
		authMiddleware,
	)

	// Create the email worker when delivery is configured
	var worker *email.Worker
	if cfg.Email.WorkerEnabled {
		renderer, err := templates.NewRenderer()
		if err != nil {
			slog.Error("Failed to initialize email templates, worker disabled", "error", err)
		} else {
			sender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
			worker = email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
				PollInterval: cfg.Email.PollInterval,
				BatchSize:    cfg.Email.BatchSize,
			})
		}
	}

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		EmailWorker: worker,
	}
}
