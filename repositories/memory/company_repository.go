package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/elinonga/company-service/models"
	"github.com/elinonga/company-service/repositories"
	"github.com/google/uuid"
)

type nameKey struct {
	tenantID uuid.UUID
	name     string
}

// CompanyRepository is an in-memory implementation of repositories.CompanyRepository
// for development and testing. It enforces the same per-tenant name uniqueness
// as the database constraint.
type CompanyRepository struct {
	mu        sync.RWMutex
	companies map[uuid.UUID]*models.Company // indexed by company ID
	names     map[nameKey]uuid.UUID         // indexed by tenant and name
	now       func() time.Time
}

// NewCompanyRepository creates a new in-memory company repository
func NewCompanyRepository() *CompanyRepository {
	return &CompanyRepository{
		companies: make(map[uuid.UUID]*models.Company),
		names:     make(map[nameKey]uuid.UUID),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ListByTenant retrieves a page of the tenant's companies, newest first
func (s *CompanyRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit < 0 || offset < 0 {
		return nil, fmt.Errorf("invalid page window: limit=%d offset=%d", limit, offset)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := make([]*models.Company, 0)
	for _, company := range s.companies {
		if company.TenantID == tenantID {
			owned = append(owned, company)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}
		return owned[i].ID.String() > owned[j].ID.String()
	})

	if offset >= len(owned) {
		return []*models.Company{}, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}

	// Return copies
	result := make([]*models.Company, 0, end-offset)
	for _, company := range owned[offset:end] {
		result = append(result, copyCompany(company))
	}
	return result, nil
}

// CountByTenant returns the number of companies owned by the tenant
func (s *CompanyRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, company := range s.companies {
		if company.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

// GetByID retrieves a company by ID within the tenant
func (s *CompanyRepository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	company, exists := s.companies[id]
	if !exists || company.TenantID != tenantID {
		return nil, repositories.ErrNotFound
	}
	return copyCompany(company), nil
}

// Create stores a new company
func (s *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := nameKey{tenantID: company.TenantID, name: company.Name}
	if _, taken := s.names[key]; taken {
		return repositories.ErrDuplicateName
	}

	s.companies[company.ID] = copyCompany(company)
	s.names[key] = company.ID
	return nil
}

// Update applies a partial update and returns the stored company
func (s *CompanyRepository) Update(ctx context.Context, id, tenantID uuid.UUID, update models.CompanyUpdate) (*models.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.companies[id]
	if !exists || existing.TenantID != tenantID {
		return nil, repositories.ErrNotFound
	}

	oldKey := nameKey{tenantID: tenantID, name: existing.Name}
	if update.Name != nil && *update.Name != existing.Name {
		newKey := nameKey{tenantID: tenantID, name: *update.Name}
		if _, taken := s.names[newKey]; taken {
			return nil, repositories.ErrDuplicateName
		}
		delete(s.names, oldKey)
		s.names[newKey] = id
	}

	update.Apply(existing, s.now())
	return copyCompany(existing), nil
}

// Delete removes a company within the tenant
func (s *CompanyRepository) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	company, exists := s.companies[id]
	if !exists || company.TenantID != tenantID {
		return repositories.ErrNotFound
	}

	delete(s.names, nameKey{tenantID: tenantID, name: company.Name})
	delete(s.companies, id)
	return nil
}

// HealthCheck always succeeds for the in-memory store
func (s *CompanyRepository) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

// NewRepositories returns a repositories.Repositories backed by one in-memory store
func NewRepositories() *repositories.Repositories {
	store := NewCompanyRepository()
	return &repositories.Repositories{
		Companies: store,
		Health:    store,
	}
}

func copyCompany(c *models.Company) *models.Company {
	cp := *c
	if c.Description != nil {
		description := *c.Description
		cp.Description = &description
	}
	return &cp
}
