package services

import (
	"context"
	"errors"
	"strings"

	"github.com/elinonga/company-service/models"
	"github.com/elinonga/company-service/repositories"
	"github.com/elinonga/company-service/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateCompanyInput is the payload for creating a company
type CreateCompanyInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Description *string `json:"description"`
}

// UpdateCompanyInput is a partial update. The *Set flags record which fields
// were present in the request; a present field with a nil value means null.
type UpdateCompanyInput struct {
	Name           *string
	NameSet        bool
	Description    *string
	DescriptionSet bool
}

// CompanyPage is one page of a tenant's companies plus the tenant total
type CompanyPage struct {
	Companies []*models.Company
	Total     int
}

// companyName carries the name rule for partial updates
type companyName struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

// CompanyService implements company use cases. Every method is scoped to the
// tenant passed in, which callers take from the authenticated identity.
type CompanyService struct {
	repo   repositories.CompanyRepository
	logger *zap.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(repo repositories.CompanyRepository, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		repo:   repo,
		logger: logger,
	}
}

// List returns one page of the tenant's companies, newest first
func (s *CompanyService) List(ctx context.Context, tenantID uuid.UUID, page utils.PageRequest) (*CompanyPage, error) {
	if tenantID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	total, err := s.repo.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, s.internal(ctx, "failed to count companies", err, tenantID)
	}

	companies, err := s.repo.ListByTenant(ctx, tenantID, page.PageSize, page.Offset())
	if err != nil {
		return nil, s.internal(ctx, "failed to list companies", err, tenantID)
	}

	return &CompanyPage{Companies: companies, Total: total}, nil
}

// Get returns a company owned by the tenant
func (s *CompanyService) Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Company, error) {
	if tenantID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	company, err := s.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, s.mapRepositoryError(ctx, "failed to get company", err, tenantID)
	}
	return company, nil
}

// Create validates the input and stores a new company owned by the tenant
func (s *CompanyService) Create(ctx context.Context, tenantID, userID uuid.UUID, input CreateCompanyInput) (*models.Company, error) {
	if tenantID == uuid.Nil || userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Description = trimOptional(input.Description)
	if err := utils.ValidateStruct(&input); err != nil {
		return nil, toValidationError(err)
	}

	company := models.NewCompany(tenantID, userID, input.Name, input.Description)
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, s.mapRepositoryError(ctx, "failed to create company", err, tenantID)
	}

	s.logger.Info("company created",
		zap.String("company_id", company.ID.String()),
		zap.String("tenant_id", tenantID.String()),
		zap.String("created_by", userID.String()))

	return company, nil
}

// Update applies a partial update to a company owned by the tenant
func (s *CompanyService) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateCompanyInput) (*models.Company, error) {
	if tenantID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	update := models.CompanyUpdate{
		Description:    trimOptional(input.Description),
		DescriptionSet: input.DescriptionSet,
	}

	if input.NameSet {
		if input.Name == nil {
			return nil, toValidationError(utils.NewFieldError("name", "name may not be null"))
		}
		name := companyName{Name: strings.TrimSpace(*input.Name)}
		if err := utils.ValidateStruct(&name); err != nil {
			return nil, toValidationError(err)
		}
		update.Name = &name.Name
	}

	company, err := s.repo.Update(ctx, id, tenantID, update)
	if err != nil {
		return nil, s.mapRepositoryError(ctx, "failed to update company", err, tenantID)
	}

	s.logger.Info("company updated",
		zap.String("company_id", id.String()),
		zap.String("tenant_id", tenantID.String()))

	return company, nil
}

// Delete removes a company owned by the tenant
func (s *CompanyService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if tenantID == uuid.Nil {
		return ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, id, tenantID); err != nil {
		return s.mapRepositoryError(ctx, "failed to delete company", err, tenantID)
	}

	s.logger.Info("company deleted",
		zap.String("company_id", id.String()),
		zap.String("tenant_id", tenantID.String()))

	return nil
}

func (s *CompanyService) mapRepositoryError(ctx context.Context, msg string, err error, tenantID uuid.UUID) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrCompanyNotFound
	case errors.Is(err, repositories.ErrDuplicateName):
		return ErrDuplicateCompanyName
	default:
		return s.internal(ctx, msg, err, tenantID)
	}
}

func (s *CompanyService) internal(ctx context.Context, msg string, err error, tenantID uuid.UUID) error {
	s.logger.Error(msg,
		zap.String("tenant_id", tenantID.String()),
		zap.Bool("context_done", ctx.Err() != nil),
		zap.Error(err))
	return NewDomainError(ErrorTypeInternal, "Internal server error", err)
}

func toValidationError(err error) error {
	if utils.IsValidationError(err) {
		return NewValidationError(utils.GetValidationFields(err))
	}
	return NewDomainError(ErrorTypeValidation, "Validation failed", err)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}
