package repository

import (
	"github.com/agamjotsodhi/jobly/internal/server"
)

// Repositories is a container for all repository instances, wired once
// and handed to the service layer.
type Repositories struct {
	Companies *CompaniesRepository
	Jobs      *JobsRepository
	Users     *UsersRepository
}

// NewRepositories constructs the repository container. Each repository
// reaches the pool through s.DB.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Companies: NewCompaniesRepository(s),
		Jobs:      NewJobsRepository(s),
		Users:     NewUsersRepository(s),
	}
}
