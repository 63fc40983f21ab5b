package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elinonga/company-service/services"
	"github.com/elinonga/company-service/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name            string
		err             error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "not found error",
			err:             services.ErrCompanyNotFound,
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Company not found",
		},
		{
			name:            "validation error",
			err:             services.NewValidationError(map[string]string{"name": "name is required"}),
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Validation failed",
		},
		{
			name:            "unauthorized error",
			err:             services.ErrUnauthorized,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Authentication credentials were not provided",
		},
		{
			name:            "conflict error",
			err:             services.ErrDuplicateCompanyName,
			expectedStatus:  http.StatusConflict,
			expectedMessage: "A company with this name already exists in your tenant",
		},
		{
			name:            "wrapped conflict error",
			err:             fmt.Errorf("create: %w", services.ErrDuplicateCompanyName),
			expectedStatus:  http.StatusConflict,
			expectedMessage: "A company with this name already exists in your tenant",
		},
		{
			name:            "internal error hides cause",
			err:             services.WrapInternal("failed to list companies", errors.New("pq: password authentication failed")),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Internal server error",
		},
		{
			name:            "unknown error",
			err:             errors.New("something unexpected"),
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/companies/", nil)

			HandleServiceError(w, r, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response utils.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.expectedMessage, response.Error)
			assert.NotContains(t, response.Error, "pq:")
		})
	}
}

func TestHandleServiceError_ValidationDetails(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/companies/", nil)

	HandleServiceError(w, r, services.NewValidationError(map[string]string{"name": "name is required"}), zap.NewNop())

	var response utils.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "name is required", response.Details["name"])
}

func TestHandleServiceError_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	HandleServiceError(w, r, nil, zap.NewNop())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHandleDecodeError(t *testing.T) {
	w := httptest.NewRecorder()

	HandleDecodeError(w, errors.New("unexpected EOF"), zap.NewNop())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response utils.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "Invalid JSON body", response.Error)
}
