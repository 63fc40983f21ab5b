package app

import (
	"context"
	"testing"
	"time"

	"github.com/elinonga/company-service/config"
	"github.com/elinonga/company-service/repositories/memory"
	"github.com/elinonga/company-service/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewDependencies(t *testing.T) {
	t.Run("memory store wires every component", func(t *testing.T) {
		ctx := context.Background()
		cfg := testConfig(t)
		logger := zaptest.NewLogger(t)

		deps, err := NewDependencies(ctx, cfg, logger)
		require.NoError(t, err)
		require.NotNil(t, deps)

		// Verify infrastructure
		assert.NotNil(t, deps.Config)
		assert.NotNil(t, deps.Logger)
		assert.Nil(t, deps.RepoFactory)

		// Verify repositories
		assert.IsType(t, &memory.CompanyRepository{}, deps.Companies)
		assert.NotNil(t, deps.Health)

		// Verify services, handlers and auth
		assert.NotNil(t, deps.CompanyService)
		assert.NotNil(t, deps.CompanyHandler)
		assert.NotNil(t, deps.HealthHandler)
		assert.NotNil(t, deps.AuthMiddleware)
		require.NotNil(t, deps.Verifier)
		assert.Equal(t, "HS512", deps.Verifier.Algorithm())

		// Throttling is off by default
		assert.Nil(t, deps.RateLimiter)

		// Service and store are connected
		company, err := deps.CompanyService.Create(ctx, uuid.New(), uuid.New(), services.CreateCompanyInput{Name: "Acme"})
		require.NoError(t, err)
		count, err := deps.Companies.CountByTenant(ctx, company.TenantID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		assert.NoError(t, deps.Close(ctx))
	})

	t.Run("rate limiter is created when enabled", func(t *testing.T) {
		ctx := context.Background()
		cfg := testConfig(t)
		cfg.RateLimit.RPS = 5
		cfg.RateLimit.Burst = 10

		deps, err := NewDependencies(ctx, cfg, zaptest.NewLogger(t))
		require.NoError(t, err)
		assert.NotNil(t, deps.RateLimiter)
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		ctx := context.Background()
		cfg := testConfig(t)
		cfg.Auth.Algorithm = "RS256"

		deps, err := NewDependencies(ctx, cfg, zaptest.NewLogger(t))
		assert.Error(t, err)
		assert.Nil(t, deps)
		assert.Contains(t, err.Error(), "failed to initialize auth")
	})

	t.Run("unknown store driver", func(t *testing.T) {
		ctx := context.Background()
		cfg := testConfig(t)
		cfg.Store.Driver = "mongo"

		deps, err := NewDependencies(ctx, cfg, zaptest.NewLogger(t))
		assert.Error(t, err)
		assert.Nil(t, deps)
		assert.Contains(t, err.Error(), "unknown store driver")
	})

	t.Run("database connection failure", func(t *testing.T) {
		ctx := context.Background()
		cfg := testConfig(t)
		cfg.Store.Driver = config.StoreDriverPostgres
		cfg.Database.Host = "127.0.0.1"
		cfg.Database.Port = 1

		deps, err := NewDependencies(ctx, cfg, zaptest.NewLogger(t))
		assert.Error(t, err)
		assert.Nil(t, deps)
		assert.Contains(t, err.Error(), "failed to initialize store")
	})
}

func TestDependenciesClose(t *testing.T) {
	ctx := context.Background()

	deps, err := NewDependencies(ctx, testConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.NoError(t, deps.Close(ctx))
	// Second close should not panic
	assert.NoError(t, deps.Close(ctx))
}

// Test helpers

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Environment: "test",
		Service: config.ServiceConfig{
			Name:    "company-service",
			Version: "1.0.0",
		},
		Server: config.ServerConfig{
			Host:            "localhost",
			Port:            8000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  15 * time.Second,
		},
		Store: config.StoreConfig{
			Driver: config.StoreDriverMemory,
		},
		Database: config.DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "company",
			Password:        "company",
			Database:        "company_test",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Auth: config.AuthConfig{
			SecretKey:   "test-secret-key-with-enough-entropy",
			Algorithm:   "HS512",
			PublicPaths: []string{"/admin/", "/static/", "/health/"},
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		RateLimit: config.RateLimitConfig{
			Burst: 20,
		},
		Observability: config.ObservabilityConfig{
			LogLevel:  "debug",
			LogFormat: "json",
		},
	}
}
