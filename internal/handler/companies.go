package handler

import (
	"github.com/agamjotsodhi/jobly/internal/repository"
	"github.com/agamjotsodhi/jobly/internal/server"
	"github.com/agamjotsodhi/jobly/internal/service"
	"github.com/labstack/echo/v4"
)

// CompaniesHandler serves the /companies resource.
type CompaniesHandler struct {
	Handler
	companies *service.CompanyService
}

// NewCompaniesHandler constructs a CompaniesHandler.
func NewCompaniesHandler(s *server.Server, services *service.Services) *CompaniesHandler {
	return &CompaniesHandler{
		Handler:   NewHandler(s),
		companies: services.Companies,
	}
}

type companyResponse struct {
	Company *repository.Company `json:"company"`
}

type companiesResponse struct {
	Companies []repository.Company `json:"companies"`
}

type companyDetailResponse struct {
	Company *service.CompanyDetail `json:"company"`
}

// CreateCompanyRequest is the payload for POST /companies.
type CreateCompanyRequest struct {
	Handle       string  `json:"handle" validate:"required,lowercase,max=25"`
	Name         string  `json:"name" validate:"required"`
	NumEmployees *int32  `json:"numEmployees" validate:"omitempty,gte=0"`
	Description  string  `json:"description"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

func (r *CreateCompanyRequest) Validate() error {
	return validate.Struct(r)
}

// Create adds a company. Admin only.
func (h *CompaniesHandler) Create(c echo.Context, req *CreateCompanyRequest) (*companyResponse, error) {
	company, err := h.companies.Create(c.Request().Context(), repository.Company{
		Handle:       req.Handle,
		Name:         req.Name,
		NumEmployees: req.NumEmployees,
		Description:  req.Description,
		LogoURL:      req.LogoURL,
	})
	if err != nil {
		return nil, err
	}

	return &companyResponse{Company: company}, nil
}

// ListCompaniesRequest carries the optional query filters for
// GET /companies. The min/max pair is checked against each other by
// the query builder, not here.
type ListCompaniesRequest struct {
	Name         *string `query:"name"`
	MinEmployees *int    `query:"minEmployees" validate:"omitempty,gte=0"`
	MaxEmployees *int    `query:"maxEmployees" validate:"omitempty,gte=0"`
}

func (r *ListCompaniesRequest) Validate() error {
	return validate.Struct(r)
}

func (r *ListCompaniesRequest) filters() map[string]any {
	filters := map[string]any{}
	if r.Name != nil {
		filters["name"] = *r.Name
	}
	if r.MinEmployees != nil {
		filters["minEmployees"] = *r.MinEmployees
	}
	if r.MaxEmployees != nil {
		filters["maxEmployees"] = *r.MaxEmployees
	}
	return filters
}

// List returns companies matching the query filters. Open to anyone.
func (h *CompaniesHandler) List(c echo.Context, req *ListCompaniesRequest) (*companiesResponse, error) {
	companies, err := h.companies.List(c.Request().Context(), req.filters())
	if err != nil {
		return nil, err
	}

	return &companiesResponse{Companies: companies}, nil
}

// GetCompanyRequest addresses a single company by handle.
type GetCompanyRequest struct {
	Handle string `param:"handle" validate:"required"`
}

func (r *GetCompanyRequest) Validate() error {
	return validate.Struct(r)
}

// Get returns a company and its job postings. Open to anyone.
func (h *CompaniesHandler) Get(c echo.Context, req *GetCompanyRequest) (*companyDetailResponse, error) {
	detail, err := h.companies.Get(c.Request().Context(), req.Handle)
	if err != nil {
		return nil, err
	}

	return &companyDetailResponse{Company: detail}, nil
}

// UpdateCompanyRequest is the payload for PATCH /companies/:handle.
// Absent fields are left unchanged; the handle itself is immutable.
type UpdateCompanyRequest struct {
	Handle       string  `param:"handle" json:"-" validate:"required"`
	Name         *string `json:"name" validate:"omitempty,min=1"`
	Description  *string `json:"description"`
	NumEmployees *int32  `json:"numEmployees" validate:"omitempty,gte=0"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

func (r *UpdateCompanyRequest) Validate() error {
	return validate.Struct(r)
}

// Update applies a partial update to a company. Admin only.
func (h *CompaniesHandler) Update(c echo.Context, req *UpdateCompanyRequest) (*companyResponse, error) {
	company, err := h.companies.Update(c.Request().Context(), req.Handle, repository.CompanyUpdate{
		Name:         req.Name,
		Description:  req.Description,
		NumEmployees: req.NumEmployees,
		LogoURL:      req.LogoURL,
	})
	if err != nil {
		return nil, err
	}

	return &companyResponse{Company: company}, nil
}

// DeleteCompanyRequest addresses a single company by handle.
type DeleteCompanyRequest struct {
	Handle string `param:"handle" validate:"required"`
}

func (r *DeleteCompanyRequest) Validate() error {
	return validate.Struct(r)
}

// Delete removes a company and its jobs. Admin only.
func (h *CompaniesHandler) Delete(c echo.Context, req *DeleteCompanyRequest) error {
	return h.companies.Delete(c.Request().Context(), req.Handle)
}
