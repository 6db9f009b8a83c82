package service

import (
	"github.com/agamjotsodhi/jobly/internal/lib/job"
	"github.com/agamjotsodhi/jobly/internal/repository"
	"github.com/agamjotsodhi/jobly/internal/server"
)

// Services bundles the domain services plus the background job
// service for handlers that enqueue work directly.
type Services struct {
	Auth      *AuthService
	Companies *CompanyService
	Jobs      *JobService
	Users     *UserService
	Job       *job.JobService
}

// NewService wires every service to its repositories.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Auth:      NewAuthService(s, repos),
		Companies: NewCompanyService(s, repos),
		Jobs:      NewJobService(s, repos),
		Users:     NewUserService(s, repos),
		Job:       s.Job,
	}, nil
}
