package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/elinonga/company-service/auth"
	"github.com/elinonga/company-service/middleware"
	"github.com/elinonga/company-service/models"
	"github.com/elinonga/company-service/services"
	"github.com/elinonga/company-service/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// CreateCompanyRequest represents a request to create a company
type CreateCompanyRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdateCompanyRequest represents a partial update. Absent fields are left
// untouched; an explicit null is distinguishable from absence.
type UpdateCompanyRequest struct {
	Name        optionalString `json:"name"`
	Description optionalString `json:"description"`
}

// optionalString records whether a JSON field was present and whether it was null
type optionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON implements json.Unmarshaler
func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	TenantID    uuid.UUID `json:"tenant_id"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// CompanyService defines the interface for company operations
type CompanyService interface {
	// List returns one page of the tenant's companies
	List(ctx context.Context, tenantID uuid.UUID, page utils.PageRequest) (*services.CompanyPage, error)

	// Get retrieves a company owned by the tenant
	Get(ctx context.Context, tenantID, id uuid.UUID) (*models.Company, error)

	// Create creates a company owned by the tenant
	Create(ctx context.Context, tenantID, userID uuid.UUID, input services.CreateCompanyInput) (*models.Company, error)

	// Update partially updates a company owned by the tenant
	Update(ctx context.Context, tenantID, id uuid.UUID, input services.UpdateCompanyInput) (*models.Company, error)

	// Delete deletes a company owned by the tenant
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// CompanyHandler handles company-related HTTP requests.
// Tenant and user ids always come from the authenticated identity, never from the request.
type CompanyHandler struct {
	service CompanyService
	logger  *zap.Logger
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(service CompanyService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		service: service,
		logger:  logger,
	}
}

// HandleList handles GET /companies/
func (h *CompanyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	pageReq := utils.ParsePageRequest(r)
	result, err := h.service.List(r.Context(), identity.TenantID, pageReq)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	responses := make([]CompanyResponse, len(result.Companies))
	for i, c := range result.Companies {
		responses[i] = companyToResponse(c)
	}

	_ = utils.WriteOK(w, utils.NewPage(r, pageReq, result.Total, responses))
}

// HandleCreate handles POST /companies/
func (h *CompanyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	var req CreateCompanyRequest
	if err := decodeBody(w, r, &req); err != nil {
		HandleDecodeError(w, err, h.logger)
		return
	}

	company, err := h.service.Create(r.Context(), identity.TenantID, identity.UserID, services.CreateCompanyInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, companyToResponse(company))
}

// HandleGet handles GET /companies/{id}/
func (h *CompanyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	id, ok := h.companyID(w, r)
	if !ok {
		return
	}

	company, err := h.service.Get(r.Context(), identity.TenantID, id)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, companyToResponse(company))
}

// HandleUpdate handles PUT /companies/{id}/
func (h *CompanyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	id, ok := h.companyID(w, r)
	if !ok {
		return
	}

	var req UpdateCompanyRequest
	if err := decodeBody(w, r, &req); err != nil {
		HandleDecodeError(w, err, h.logger)
		return
	}

	company, err := h.service.Update(r.Context(), identity.TenantID, id, services.UpdateCompanyInput{
		Name:           req.Name.Value,
		NameSet:        req.Name.Set,
		Description:    req.Description.Value,
		DescriptionSet: req.Description.Set,
	})
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, companyToResponse(company))
}

// HandleDelete handles DELETE /companies/{id}/
func (h *CompanyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.requireIdentity(w, r)
	if !ok {
		return
	}

	id, ok := h.companyID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity.TenantID, id); err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}

	utils.WriteNoContent(w)
}

// requireIdentity writes a 401 unless the request carries an authenticated identity
func (h *CompanyHandler) requireIdentity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := middleware.GetAuthenticatedIdentity(r.Context())
	if !ok {
		h.logger.Debug("request without authenticated identity",
			zap.String("request_id", requestID(r)),
			zap.String("path", r.URL.Path))
		_ = utils.WriteUnauthorized(w, "")
		return identity, false
	}
	return identity, true
}

// companyID parses the {id} path parameter. Anything that is not a UUID
// cannot name a company, so it is answered like an unknown id.
func (h *CompanyHandler) companyID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteNotFound(w, services.ErrCompanyNotFound.Message)
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func requestID(r *http.Request) string {
	return middleware.GetRequestIDFromContext(r.Context())
}

// companyToResponse converts a model to a response
func companyToResponse(c *models.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		TenantID:    c.TenantID,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   c.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}
