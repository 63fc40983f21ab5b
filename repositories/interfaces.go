package repositories

import (
	"context"
	"errors"

	"github.com/elinonga/company-service/models"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no company matches the id within the tenant
	ErrNotFound = errors.New("company not found")

	// ErrDuplicateName is returned when the name is already used within the tenant
	ErrDuplicateName = errors.New("company name already exists in tenant")
)

// CompanyRepository handles company data operations.
// Every method is scoped to a single tenant; rows of other tenants are
// invisible and indistinguishable from rows that do not exist.
type CompanyRepository interface {
	// ListByTenant retrieves a page of companies, newest first
	ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Company, error)

	// CountByTenant returns the number of companies owned by the tenant
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error)

	// GetByID retrieves a company by ID
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (*models.Company, error)

	// Create inserts a new company. company.TenantID must already be set.
	Create(ctx context.Context, company *models.Company) error

	// Update applies a partial update and returns the stored row
	Update(ctx context.Context, id, tenantID uuid.UUID, update models.CompanyUpdate) (*models.Company, error)

	// Delete removes a company
	Delete(ctx context.Context, id, tenantID uuid.UUID) error
}

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Companies CompanyRepository
	Health    HealthChecker
}
