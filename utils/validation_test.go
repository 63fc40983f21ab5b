package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testInput struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	PageSize int    `json:"page_size" validate:"gte=0,lte=100"`
	Owner    string `validate:"omitempty,uuid"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		s := testInput{Name: "Acme", PageSize: 20}

		err := ValidateStruct(&s)
		assert.NoError(t, err)
	})

	t.Run("missing required field uses json name", func(t *testing.T) {
		s := testInput{PageSize: 20}

		err := ValidateStruct(&s)
		require.Error(t, err)
		assert.True(t, IsValidationError(err))

		fields := GetValidationFields(err)
		assert.Equal(t, "name is required", fields["name"])
	})

	t.Run("string too short reports characters", func(t *testing.T) {
		s := testInput{Name: "A"}

		err := ValidateStruct(&s)
		require.Error(t, err)

		fields := GetValidationFields(err)
		assert.Equal(t, "name must be at least 2 characters", fields["name"])
	})

	t.Run("string too long", func(t *testing.T) {
		s := testInput{Name: strings.Repeat("x", 256)}

		err := ValidateStruct(&s)
		require.Error(t, err)

		fields := GetValidationFields(err)
		assert.Equal(t, "name must be at most 255 characters", fields["name"])
	})

	t.Run("multibyte names count runes", func(t *testing.T) {
		s := testInput{Name: "日本"}

		assert.NoError(t, ValidateStruct(&s))
	})

	t.Run("numeric out of range", func(t *testing.T) {
		s := testInput{Name: "Acme", PageSize: 200}

		err := ValidateStruct(&s)
		require.Error(t, err)

		fields := GetValidationFields(err)
		assert.Equal(t, "page_size must be less than or equal to 100", fields["page_size"])
	})

	t.Run("field without json tag keeps Go name", func(t *testing.T) {
		s := testInput{Name: "Acme", Owner: "nope"}

		err := ValidateStruct(&s)
		require.Error(t, err)

		fields := GetValidationFields(err)
		assert.Equal(t, "Owner must be a valid UUID", fields["Owner"])
	})
}

func TestParseUUID(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError bool
	}{
		{name: "valid UUID", input: "550e8400-e29b-41d4-a716-446655440000"},
		{name: "wrong format", input: "not-a-uuid", wantError: true},
		{name: "empty string", input: "", wantError: true},
		{name: "missing parts", input: "550e8400-e29b-41d4", wantError: true},
		{name: "nil UUID", input: uuid.Nil.String(), wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseUUID(tt.input)
			if tt.wantError {
				assert.Error(t, err)
				assert.Equal(t, uuid.Nil, id)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.input, id.String())
			}
		})
	}
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("name", "name may not be null")

	assert.Equal(t, "Validation failed", err.Error())
	assert.Equal(t, map[string]string{"name": "name may not be null"}, err.Fields)
	assert.True(t, IsValidationError(err))
}

func TestIsValidationError(t *testing.T) {
	t.Run("is validation error", func(t *testing.T) {
		err := &ValidationError{Message: "test", Fields: map[string]string{}}

		assert.True(t, IsValidationError(err))
	})

	t.Run("is not validation error", func(t *testing.T) {
		assert.False(t, IsValidationError(assert.AnError))
	})
}

func TestGetValidationFields(t *testing.T) {
	t.Run("gets fields from validation error", func(t *testing.T) {
		fields := map[string]string{"field1": "error1", "field2": "error2"}
		err := &ValidationError{Message: "test", Fields: fields}

		assert.Equal(t, fields, GetValidationFields(err))
	})

	t.Run("returns nil for non-validation error", func(t *testing.T) {
		assert.Nil(t, GetValidationFields(assert.AnError))
	})
}
