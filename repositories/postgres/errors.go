package postgres

import (
	"errors"
	"fmt"

	"github.com/elinonga/company-service/repositories"
	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
)

// uniqueCompanyNameConstraint is the constraint backing per-tenant name uniqueness
const uniqueCompanyNameConstraint = "unique_company_name_per_tenant"

// mapPostgresError maps PostgreSQL-specific errors to repository sentinel errors.
// Returns the original error if it's not a PostgreSQL error.
func mapPostgresError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case pgerrcode.UniqueViolation:
		if pqErr.Constraint == uniqueCompanyNameConstraint || pqErr.Constraint == "" {
			return fmt.Errorf("%w: %s", repositories.ErrDuplicateName, pqErr.Constraint)
		}
		return fmt.Errorf("unique constraint violation: %s: %w", pqErr.Constraint, err)

	case pgerrcode.QueryCanceled:
		return fmt.Errorf("query canceled: %w", err)

	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.CannotConnectNow,
		pgerrcode.TooManyConnections:
		return fmt.Errorf("database connection error: %w", err)

	default:
		return fmt.Errorf("postgres error [%s]: %s: %w", pqErr.Code, pqErr.Message, err)
	}
}
