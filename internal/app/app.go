package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/finhealth/internal/common"
	"github.com/ternarybob/finhealth/internal/handlers"
	"github.com/ternarybob/finhealth/internal/interfaces"
	"github.com/ternarybob/finhealth/internal/retry"
	"github.com/ternarybob/finhealth/internal/services/company"
	"github.com/ternarybob/finhealth/internal/sina"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Data provider
	Provider interfaces.FinancialDataProvider

	// Services
	CompanyService *company.Service

	// HTTP handlers
	APIHandler     *handlers.APIHandler
	CompanyHandler *handlers.CompanyHandler
	PageHandler    *handlers.PageHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	return NewWithProvider(cfg, logger, nil)
}

// NewWithProvider initializes the application around an existing provider.
// A nil provider is replaced by a Sina client built from the configuration.
func NewWithProvider(cfg *common.Config, logger arbor.ILogger, provider interfaces.FinancialDataProvider) (*App, error) {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Provider: provider,
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := app.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	app.Logger.Info().Msg("Application initialization complete")

	return app, nil
}

// initServices wires the provider and the company service
func (a *App) initServices() error {
	if a.Provider == nil {
		opts := []sina.ClientOption{
			sina.WithFinanceURL(a.Config.Provider.FinanceURL),
			sina.WithMarketURL(a.Config.Provider.MarketURL),
			sina.WithTimeout(a.Config.ProviderTimeout()),
			sina.WithLogger(a.Logger),
			sina.WithRateLimit(a.Config.Provider.RateLimit),
			sina.WithReportPageSize(a.Config.Provider.ReportPageSize),
			sina.WithDirectoryPaging(a.Config.Provider.DirectoryPageSize, a.Config.Provider.DirectoryMaxPages),
		}
		if a.Config.Provider.UserAgent != "" {
			opts = append(opts, sina.WithUserAgent(a.Config.Provider.UserAgent))
		}
		a.Provider = sina.NewClient(opts...)
	}

	policy := retry.Policy{
		MaxAttempts:  a.Config.Retry.MaxAttempts,
		PreCallDelay: a.Config.RetryPreCallDelay(),
		Backoff:      a.Config.RetryBackoff(),
	}

	a.CompanyService = company.NewService(a.Provider, a.Provider, policy, a.Logger)

	a.Logger.Debug().
		Str("finance_url", a.Config.Provider.FinanceURL).
		Int("retry_attempts", policy.MaxAttempts).
		Dur("retry_backoff", policy.Backoff).
		Msg("Services initialized")

	return nil
}

// initHandlers creates the HTTP handlers
func (a *App) initHandlers() error {
	if a.Config.Static.Index == "" {
		return fmt.Errorf("static index page is not configured")
	}

	a.APIHandler = handlers.NewAPIHandler(a.Logger)
	a.CompanyHandler = handlers.NewCompanyHandler(a.CompanyService, a.Logger)
	a.PageHandler = handlers.NewPageHandler(a.Logger, a.Config.Static.Dir, a.Config.Static.Index)

	return nil
}
