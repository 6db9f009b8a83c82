package service

import (
	"context"

	"github.com/agamjotsodhi/jobly/internal/repository"
	"github.com/agamjotsodhi/jobly/internal/server"
)

// UserRepository is the slice of the users repository the user
// service needs.
type UserRepository interface {
	Create(ctx context.Context, user repository.User) (*repository.User, error)
	List(ctx context.Context) ([]repository.User, error)
	Get(ctx context.Context, username string) (*repository.User, error)
	ApplicationIDs(ctx context.Context, username string) ([]int32, error)
	Update(ctx context.Context, username string, update repository.UserUpdate) (*repository.User, error)
	Delete(ctx context.Context, username string) error
	Apply(ctx context.Context, username string, jobID int32) error
}

// UserDetail is a user together with the ids of the jobs they have
// applied to.
type UserDetail struct {
	repository.User
	Applications []int32 `json:"applications"`
}

// UserService orchestrates user and application operations.
type UserService struct {
	server *server.Server
	users  UserRepository
}

// NewUserService constructs a UserService.
func NewUserService(s *server.Server, repos *repository.Repositories) *UserService {
	return &UserService{
		server: s,
		users:  repos.Users,
	}
}

// Create adds a user on behalf of an admin. Unlike registration the
// caller may grant the admin flag.
func (s *UserService) Create(ctx context.Context, user repository.User, password string) (*repository.User, error) {
	hash, err := hashPassword(password, s.server.Config.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	user.Password = hash

	return s.users.Create(ctx, user)
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]repository.User, error) {
	return s.users.List(ctx)
}

// Get returns a user together with their job applications.
func (s *UserService) Get(ctx context.Context, username string) (*UserDetail, error) {
	user, err := s.users.Get(ctx, username)
	if err != nil {
		return nil, err
	}

	applications, err := s.users.ApplicationIDs(ctx, username)
	if err != nil {
		return nil, err
	}

	return &UserDetail{User: *user, Applications: applications}, nil
}

// Update applies a partial update to a user. A new password is
// re-hashed before the repository builds the change set.
func (s *UserService) Update(ctx context.Context, username string, update repository.UserUpdate) (*repository.User, error) {
	if update.Password != nil {
		hash, err := hashPassword(*update.Password, s.server.Config.Auth.BcryptCost)
		if err != nil {
			return nil, err
		}
		update.Password = &hash
	}

	return s.users.Update(ctx, username, update)
}

// Delete removes a user and, via cascade, their applications.
func (s *UserService) Delete(ctx context.Context, username string) error {
	return s.users.Delete(ctx, username)
}

// Apply records a job application for a user.
func (s *UserService) Apply(ctx context.Context, username string, jobID int32) error {
	return s.users.Apply(ctx, username, jobID)
}
