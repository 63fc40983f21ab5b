package auth

import (
	"fmt"

	"github.com/google/uuid"
)

// Identity is the request-scoped view of the caller derived from verified claims.
// When IsAuthenticated is true, UserID and TenantID are both valid non-nil UUIDs.
type Identity struct {
	UserID          uuid.UUID
	TenantID        uuid.UUID
	Email           string
	Role            string
	IsAuthenticated bool
}

// Adapt converts verified claims to an Identity. It never fails: a missing or
// non-UUID subject or tenant leaves the field as uuid.Nil and the identity
// unauthenticated, so endpoint checks reject it.
func Adapt(claims *Claims) Identity {
	if claims == nil {
		return Identity{}
	}

	userID := parseOptionalUUID(claims.Subject)
	tenantID := parseOptionalUUID(claims.TenantID)

	return Identity{
		UserID:          userID,
		TenantID:        tenantID,
		Email:           claims.Email,
		Role:            claims.Role,
		IsAuthenticated: userID != uuid.Nil && tenantID != uuid.Nil,
	}
}

// String is used in debug logs
func (i Identity) String() string {
	return fmt.Sprintf("Identity(user=%s, email=%s, tenant=%s)", i.UserID, i.Email, i.TenantID)
}

func parseOptionalUUID(s string) uuid.UUID {
	if s == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}
