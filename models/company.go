package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is a tenant-owned company record
type Company struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	TenantID    uuid.UUID `json:"tenant_id" db:"tenant_id"`
	CreatedBy   uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Company model
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a new Company owned by tenantID
func NewCompany(tenantID, createdBy uuid.UUID, name string, description *string) *Company {
	now := time.Now().UTC()
	return &Company{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		TenantID:    tenantID,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CompanyUpdate carries the fields of a partial update.
// A nil Name leaves the name untouched. Description is only applied when
// DescriptionSet is true, in which case a nil Description clears it.
type CompanyUpdate struct {
	Name           *string
	Description    *string
	DescriptionSet bool
}

// IsEmpty reports whether the update changes no field
func (u CompanyUpdate) IsEmpty() bool {
	return u.Name == nil && !u.DescriptionSet
}

// Apply applies the update to c and refreshes UpdatedAt
func (u CompanyUpdate) Apply(c *Company, now time.Time) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.DescriptionSet {
		c.Description = u.Description
	}
	c.UpdatedAt = now
}
