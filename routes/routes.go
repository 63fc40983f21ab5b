package routes

import (
	"net/http"
	"slices"

	"github.com/elinonga/company-service/app"
	"github.com/elinonga/company-service/middleware"
	"github.com/elinonga/company-service/utils"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()
	cfg := deps.Config

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))
	if cfg.Server.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))
	}

	// CORS middleware. Credentials are never allowed together with a wildcard origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: !slices.Contains(cfg.CORS.AllowedOrigins, "*"),
		MaxAge:           300,
	}))

	// Identity gate: attaches an identity when a valid token is present, never rejects
	r.Use(deps.AuthMiddleware.Authenticate)

	if deps.RateLimiter != nil {
		r.Use(middleware.RateLimit(deps.RateLimiter, deps.Logger))
	}

	// Health check endpoints
	r.Get("/health/", deps.HealthHandler.HandleHealth)
	r.Get("/health/ready/", deps.HealthHandler.HandleReadiness)

	// Company resource (require authentication)
	r.Route("/companies", func(r chi.Router) {
		r.Use(deps.AuthMiddleware.RequireAuth)
		r.Get("/", deps.CompanyHandler.HandleList)
		r.Post("/", deps.CompanyHandler.HandleCreate)
		r.Get("/{id}/", deps.CompanyHandler.HandleGet)
		r.Put("/{id}/", deps.CompanyHandler.HandleUpdate)
		r.Delete("/{id}/", deps.CompanyHandler.HandleDelete)
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusNotFound, "endpoint not found", nil)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	return r
}
