package service

import (
	"context"

	"github.com/agamjotsodhi/jobly/internal/repository"
	"github.com/agamjotsodhi/jobly/internal/server"
)

// CompanyRepository is the slice of the companies repository the
// company service needs.
type CompanyRepository interface {
	Create(ctx context.Context, company repository.Company) (*repository.Company, error)
	List(ctx context.Context, filters map[string]any) ([]repository.Company, error)
	Get(ctx context.Context, handle string) (*repository.Company, error)
	Update(ctx context.Context, handle string, update repository.CompanyUpdate) (*repository.Company, error)
	Delete(ctx context.Context, handle string) error
}

// CompanyJobLister lists the jobs posted by a company, for the
// company detail view.
type CompanyJobLister interface {
	ListByCompany(ctx context.Context, handle string) ([]repository.Job, error)
}

// CompanyDetail is a company together with the jobs posted under it.
type CompanyDetail struct {
	repository.Company
	Jobs []repository.Job `json:"jobs"`
}

// CompanyService orchestrates company operations.
type CompanyService struct {
	server    *server.Server
	companies CompanyRepository
	jobs      CompanyJobLister
}

// NewCompanyService constructs a CompanyService.
func NewCompanyService(s *server.Server, repos *repository.Repositories) *CompanyService {
	return &CompanyService{
		server:    s,
		companies: repos.Companies,
		jobs:      repos.Jobs,
	}
}

// Create adds a company.
func (s *CompanyService) Create(ctx context.Context, company repository.Company) (*repository.Company, error) {
	return s.companies.Create(ctx, company)
}

// List returns companies matching the given filters.
func (s *CompanyService) List(ctx context.Context, filters map[string]any) ([]repository.Company, error) {
	return s.companies.List(ctx, filters)
}

// Get returns a company together with its job postings.
func (s *CompanyService) Get(ctx context.Context, handle string) (*CompanyDetail, error) {
	company, err := s.companies.Get(ctx, handle)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListByCompany(ctx, handle)
	if err != nil {
		return nil, err
	}

	return &CompanyDetail{Company: *company, Jobs: jobs}, nil
}

// Update applies a partial update to a company.
func (s *CompanyService) Update(ctx context.Context, handle string, update repository.CompanyUpdate) (*repository.Company, error) {
	return s.companies.Update(ctx, handle, update)
}

// Delete removes a company and, via cascade, its jobs.
func (s *CompanyService) Delete(ctx context.Context, handle string) error {
	return s.companies.Delete(ctx, handle)
}
