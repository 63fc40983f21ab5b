package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/elinonga/company-service/models"
	"github.com/elinonga/company-service/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const companyColumns = `id, name, description, tenant_id, created_by, created_at, updated_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// CompanyRepository implements the repositories.CompanyRepository interface
type CompanyRepository struct {
	db     *DB
	logger *zap.Logger
	now    func() time.Time
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *DB, logger *zap.Logger) repositories.CompanyRepository {
	return &CompanyRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ListByTenant retrieves a page of the tenant's companies, newest first
func (r *CompanyRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE tenant_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", mapPostgresError(err))
	}
	defer rows.Close()

	companies := make([]*models.Company, 0, limit)
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}

	return companies, nil
}

// CountByTenant returns the number of companies owned by the tenant
func (r *CompanyRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM companies WHERE tenant_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, tenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", mapPostgresError(err))
	}

	return count, nil
}

// GetByID retrieves a company by ID within the tenant
func (r *CompanyRepository) GetByID(ctx context.Context, id, tenantID uuid.UUID) (*models.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE id = $1 AND tenant_id = $2
	`

	company, err := scanCompany(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", mapPostgresError(err))
	}

	return company, nil
}

// Create inserts a new company
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		company.ID,
		company.Name,
		company.Description,
		company.TenantID,
		company.CreatedBy,
		company.CreatedAt,
		company.UpdatedAt,
	)
	if err != nil {
		err = mapPostgresError(err)
		if errors.Is(err, repositories.ErrDuplicateName) {
			return repositories.ErrDuplicateName
		}
		return fmt.Errorf("failed to create company: %w", err)
	}

	r.logger.Debug("company created",
		zap.String("id", company.ID.String()),
		zap.String("tenant_id", company.TenantID.String()))
	return nil
}

// Update applies a partial update in a single statement and returns the stored row
func (r *CompanyRepository) Update(ctx context.Context, id, tenantID uuid.UUID, update models.CompanyUpdate) (*models.Company, error) {
	query := `
		UPDATE companies
		SET name = COALESCE($3::text, name),
			description = CASE WHEN $4::boolean THEN $5::text ELSE description END,
			updated_at = $6
		WHERE id = $1 AND tenant_id = $2
		RETURNING ` + companyColumns

	company, err := scanCompany(r.db.QueryRowContext(ctx, query,
		id,
		tenantID,
		update.Name,
		update.DescriptionSet,
		update.Description,
		r.now(),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		err = mapPostgresError(err)
		if errors.Is(err, repositories.ErrDuplicateName) {
			return nil, repositories.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	r.logger.Debug("company updated", zap.String("id", id.String()))
	return company, nil
}

// Delete removes a company within the tenant
func (r *CompanyRepository) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	query := `DELETE FROM companies WHERE id = $1 AND tenant_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", mapPostgresError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("company deleted", zap.String("id", id.String()))
	return nil
}

func scanCompany(row rowScanner) (*models.Company, error) {
	company := &models.Company{}
	var description sql.NullString

	err := row.Scan(
		&company.ID,
		&company.Name,
		&description,
		&company.TenantID,
		&company.CreatedBy,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		company.Description = &description.String
	}
	return company, nil
}
