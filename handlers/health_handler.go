package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/elinonga/company-service/repositories"
	"github.com/elinonga/company-service/utils"
	"go.uber.org/zap"
)

// HealthResponse represents the liveness response
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// ReadinessResponse represents the readiness response
type ReadinessResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	store   repositories.HealthChecker
	service string
	version string
	logger  *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. store may be nil.
func NewHealthHandler(store repositories.HealthChecker, service, version string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		store:   store,
		service: service,
		version: version,
		logger:  logger,
	}
}

// HandleHealth handles GET /health/
// Basic health check - always returns 200 if service is running
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, HealthResponse{
		Status:  "healthy",
		Service: h.service,
		Version: h.version,
	})
}

// HandleReadiness handles GET /health/ready/
// Readiness check - validates that the store is reachable
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	status := "healthy"
	httpStatus := http.StatusOK

	if err := h.checkStore(ctx); err != nil {
		h.logger.Warn("store health check failed",
			zap.String("request_id", requestID(r)),
			zap.Error(err))
		checks["database"] = "unhealthy"
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["database"] = "healthy"
	}

	response := ReadinessResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}

	if err := utils.WriteJSON(w, httpStatus, response); err != nil {
		h.logger.Error("failed to write readiness response", zap.Error(err))
	}
}

func (h *HealthHandler) checkStore(ctx context.Context) error {
	if h.store == nil {
		return nil // No store configured
	}
	return h.store.HealthCheck(ctx)
}
