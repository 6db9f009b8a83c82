package handler

import (
	"github.com/agamjotsodhi/jobly/internal/repository"
	"github.com/agamjotsodhi/jobly/internal/server"
	"github.com/agamjotsodhi/jobly/internal/service"
	"github.com/agamjotsodhi/jobly/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// JobsHandler serves the /jobs resource.
type JobsHandler struct {
	Handler
	jobs *service.JobService
}

// NewJobsHandler constructs a JobsHandler.
func NewJobsHandler(s *server.Server, services *service.Services) *JobsHandler {
	return &JobsHandler{
		Handler: NewHandler(s),
		jobs:    services.Jobs,
	}
}

type jobResponse struct {
	Job *repository.Job `json:"job"`
}

type jobsResponse struct {
	Jobs []repository.Job `json:"jobs"`
}

// validEquity reports whether an equity fraction is within [0, 1].
func validEquity(equity *decimal.Decimal) bool {
	if equity == nil {
		return true
	}
	return !equity.IsNegative() && !equity.GreaterThan(decimal.NewFromInt(1))
}

// CreateJobRequest is the payload for POST /jobs.
type CreateJobRequest struct {
	Title         string           `json:"title" validate:"required"`
	Salary        *int32           `json:"salary" validate:"omitempty,gte=0"`
	Equity        *decimal.Decimal `json:"equity"`
	CompanyHandle string           `json:"companyHandle" validate:"required"`
}

func (r *CreateJobRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}

	if !validEquity(r.Equity) {
		return validation.CustomValidationErrors{{
			Field:   "equity",
			Message: "must be between 0 and 1.0",
		}}
	}

	return nil
}

// Create adds a job posting. Admin only.
func (h *JobsHandler) Create(c echo.Context, req *CreateJobRequest) (*jobResponse, error) {
	var equity decimal.NullDecimal
	if req.Equity != nil {
		equity = decimal.NewNullDecimal(*req.Equity)
	}

	job, err := h.jobs.Create(c.Request().Context(), repository.Job{
		Title:         req.Title,
		Salary:        req.Salary,
		Equity:        equity,
		CompanyHandle: req.CompanyHandle,
	})
	if err != nil {
		return nil, err
	}

	return &jobResponse{Job: job}, nil
}

// ListJobsRequest carries the optional query filters for GET /jobs.
type ListJobsRequest struct {
	Title     *string `query:"title"`
	MinSalary *int    `query:"minSalary" validate:"omitempty,gte=0"`
	HasEquity *bool   `query:"hasEquity"`
}

func (r *ListJobsRequest) Validate() error {
	return validate.Struct(r)
}

func (r *ListJobsRequest) filters() map[string]any {
	filters := map[string]any{}
	if r.Title != nil {
		filters["title"] = *r.Title
	}
	if r.MinSalary != nil {
		filters["minSalary"] = *r.MinSalary
	}
	if r.HasEquity != nil {
		filters["hasEquity"] = *r.HasEquity
	}
	return filters
}

// List returns jobs matching the query filters. Open to anyone.
func (h *JobsHandler) List(c echo.Context, req *ListJobsRequest) (*jobsResponse, error) {
	jobs, err := h.jobs.List(c.Request().Context(), req.filters())
	if err != nil {
		return nil, err
	}

	return &jobsResponse{Jobs: jobs}, nil
}

// GetJobRequest addresses a single job by id.
type GetJobRequest struct {
	ID int32 `param:"id" validate:"gte=1"`
}

func (r *GetJobRequest) Validate() error {
	return validate.Struct(r)
}

// Get returns a single job posting. Open to anyone.
func (h *JobsHandler) Get(c echo.Context, req *GetJobRequest) (*jobResponse, error) {
	job, err := h.jobs.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}

	return &jobResponse{Job: job}, nil
}

// UpdateJobRequest is the payload for PATCH /jobs/:id. Absent fields
// are left unchanged; the id and company handle are immutable.
type UpdateJobRequest struct {
	ID     int32            `param:"id" json:"-" validate:"gte=1"`
	Title  *string          `json:"title" validate:"omitempty,min=1"`
	Salary *int32           `json:"salary" validate:"omitempty,gte=0"`
	Equity *decimal.Decimal `json:"equity"`
}

func (r *UpdateJobRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}

	if !validEquity(r.Equity) {
		return validation.CustomValidationErrors{{
			Field:   "equity",
			Message: "must be between 0 and 1.0",
		}}
	}

	return nil
}

// Update applies a partial update to a job posting. Admin only.
func (h *JobsHandler) Update(c echo.Context, req *UpdateJobRequest) (*jobResponse, error) {
	job, err := h.jobs.Update(c.Request().Context(), req.ID, repository.JobUpdate{
		Title:  req.Title,
		Salary: req.Salary,
		Equity: req.Equity,
	})
	if err != nil {
		return nil, err
	}

	return &jobResponse{Job: job}, nil
}

// DeleteJobRequest addresses a single job by id.
type DeleteJobRequest struct {
	ID int32 `param:"id" validate:"gte=1"`
}

func (r *DeleteJobRequest) Validate() error {
	return validate.Struct(r)
}

// Delete removes a job posting. Admin only.
func (h *JobsHandler) Delete(c echo.Context, req *DeleteJobRequest) error {
	return h.jobs.Delete(c.Request().Context(), req.ID)
}
