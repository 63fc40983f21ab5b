package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewCompany(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()

	company := NewCompany(tenantID, userID, "Acme", strPtr("Widgets"))

	assert.NotEqual(t, uuid.Nil, company.ID)
	assert.Equal(t, "Acme", company.Name)
	require.NotNil(t, company.Description)
	assert.Equal(t, "Widgets", *company.Description)
	assert.Equal(t, tenantID, company.TenantID)
	assert.Equal(t, userID, company.CreatedBy)
	assert.False(t, company.CreatedAt.IsZero())
	assert.Equal(t, company.CreatedAt, company.UpdatedAt)
}

func TestCompany_TableName(t *testing.T) {
	assert.Equal(t, "companies", Company{}.TableName())
}

func TestCompany_JSON(t *testing.T) {
	company := Company{
		ID:        uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name:      "Acme",
		TenantID:  uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		CreatedBy: uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	data, err := json.Marshal(company)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "11111111-1111-1111-1111-111111111111", decoded["id"])
	assert.Equal(t, "22222222-2222-2222-2222-222222222222", decoded["tenant_id"])
	assert.Equal(t, "33333333-3333-3333-3333-333333333333", decoded["created_by"])
	assert.Equal(t, "2024-01-02T03:04:05Z", decoded["created_at"])
	assert.Contains(t, decoded, "description")
	assert.Nil(t, decoded["description"])
}

func TestCompanyUpdate_Apply(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		update          CompanyUpdate
		wantName        string
		wantDescription *string
	}{
		{
			name:            "empty update only touches timestamp",
			update:          CompanyUpdate{},
			wantName:        "Acme",
			wantDescription: strPtr("old"),
		},
		{
			name:            "rename keeps description",
			update:          CompanyUpdate{Name: strPtr("Acme Two")},
			wantName:        "Acme Two",
			wantDescription: strPtr("old"),
		},
		{
			name:            "set description",
			update:          CompanyUpdate{Description: strPtr("new"), DescriptionSet: true},
			wantName:        "Acme",
			wantDescription: strPtr("new"),
		},
		{
			name:            "clear description",
			update:          CompanyUpdate{DescriptionSet: true},
			wantName:        "Acme",
			wantDescription: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			company := NewCompany(uuid.New(), uuid.New(), "Acme", strPtr("old"))

			tt.update.Apply(company, now)

			assert.Equal(t, tt.wantName, company.Name)
			assert.Equal(t, tt.wantDescription, company.Description)
			assert.Equal(t, now, company.UpdatedAt)
		})
	}
}

func TestCompanyUpdate_IsEmpty(t *testing.T) {
	assert.True(t, CompanyUpdate{}.IsEmpty())
	assert.False(t, CompanyUpdate{Name: strPtr("x")}.IsEmpty())
	assert.False(t, CompanyUpdate{DescriptionSet: true}.IsEmpty())
}
