package app

import (
	"context"
	"fmt"

	"github.com/elinonga/company-service/auth"
	"github.com/elinonga/company-service/config"
	"github.com/elinonga/company-service/handlers"
	"github.com/elinonga/company-service/middleware"
	"github.com/elinonga/company-service/repositories"
	"github.com/elinonga/company-service/repositories/memory"
	"github.com/elinonga/company-service/repositories/postgres"
	"github.com/elinonga/company-service/services"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger

	// Repository Factory, nil when the memory store is selected
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Companies repositories.CompanyRepository
	Health    repositories.HealthChecker

	// Services
	CompanyService *services.CompanyService

	// Handlers
	CompanyHandler *handlers.CompanyHandler
	HealthHandler  *handlers.HealthHandler

	// Auth
	Verifier       *auth.Verifier
	AuthMiddleware *middleware.AuthMiddleware

	// RateLimiter is nil when throttling is disabled
	RateLimiter *middleware.RateLimiter
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initStore(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	if err := deps.initAuth(cfg); err != nil {
		_ = deps.Close(ctx)
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	deps.CompanyService = services.NewCompanyService(deps.Companies, logger)
	deps.CompanyHandler = handlers.NewCompanyHandler(deps.CompanyService, logger)
	deps.HealthHandler = handlers.NewHealthHandler(deps.Health, cfg.Service.Name, cfg.Service.Version, logger)

	if cfg.RateLimit.Enabled() {
		deps.RateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		logger.Info("rate limiting enabled",
			zap.Float64("rps", cfg.RateLimit.RPS),
			zap.Int("burst", cfg.RateLimit.Burst))
	}

	logger.Info("all dependencies initialized successfully",
		zap.String("store", cfg.Store.Driver))
	return deps, nil
}

// initStore selects the company store backend
func (d *Dependencies) initStore(ctx context.Context, cfg *config.Config) error {
	var repos *repositories.Repositories

	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		d.Logger.Warn("using in-memory company store; data is lost on restart")
		repos = memory.NewRepositories()

	case config.StoreDriverPostgres:
		factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
		if err != nil {
			return fmt.Errorf("failed to create repository factory: %w", err)
		}
		d.RepoFactory = factory

		if cfg.Store.AutoMigrate {
			if err := factory.InitSchema(ctx); err != nil {
				_ = factory.Close()
				return fmt.Errorf("failed to initialize schema: %w", err)
			}
		}
		repos = factory.NewRepositories()

	default:
		return fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	d.Companies = repos.Companies
	d.Health = repos.Health

	d.Logger.Info("repositories initialized")
	return nil
}

func (d *Dependencies) initAuth(cfg *config.Config) error {
	verifier, err := auth.NewVerifier(auth.VerifierConfig{
		SecretKey: cfg.Auth.SecretKey,
		Algorithm: cfg.Auth.Algorithm,
	}, d.Logger)
	if err != nil {
		return err
	}

	d.Verifier = verifier
	d.AuthMiddleware = middleware.NewAuthMiddleware(verifier, cfg.Auth.PublicPaths, d.Logger)

	d.Logger.Info("token verifier initialized",
		zap.String("algorithm", verifier.Algorithm()),
		zap.Strings("public_paths", cfg.Auth.PublicPaths))
	return nil
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	// Close database connection
	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	// Sync logger
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
