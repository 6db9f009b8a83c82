package service

import (
	"context"

	"github.com/agamjotsodhi/jobly/internal/repository"
	"github.com/agamjotsodhi/jobly/internal/server"
)

// JobRepository is the slice of the jobs repository the job service
// needs.
type JobRepository interface {
	Create(ctx context.Context, job repository.Job) (*repository.Job, error)
	List(ctx context.Context, filters map[string]any) ([]repository.Job, error)
	Get(ctx context.Context, id int32) (*repository.Job, error)
	Update(ctx context.Context, id int32, update repository.JobUpdate) (*repository.Job, error)
	Delete(ctx context.Context, id int32) error
}

// JobService orchestrates job posting operations.
type JobService struct {
	server *server.Server
	jobs   JobRepository
}

// NewJobService constructs a JobService.
func NewJobService(s *server.Server, repos *repository.Repositories) *JobService {
	return &JobService{
		server: s,
		jobs:   repos.Jobs,
	}
}

// Create adds a job posting.
func (s *JobService) Create(ctx context.Context, job repository.Job) (*repository.Job, error) {
	return s.jobs.Create(ctx, job)
}

// List returns jobs matching the given filters.
func (s *JobService) List(ctx context.Context, filters map[string]any) ([]repository.Job, error) {
	return s.jobs.List(ctx, filters)
}

// Get returns a single job posting.
func (s *JobService) Get(ctx context.Context, id int32) (*repository.Job, error) {
	return s.jobs.Get(ctx, id)
}

// Update applies a partial update to a job posting.
func (s *JobService) Update(ctx context.Context, id int32, update repository.JobUpdate) (*repository.Job, error) {
	return s.jobs.Update(ctx, id, update)
}

// Delete removes a job posting.
func (s *JobService) Delete(ctx context.Context, id int32) error {
	return s.jobs.Delete(ctx, id)
}
