package service

import (
	"context"
	"net/http"

	"github.com/agamjotsodhi/jobly/internal/errs"
	"github.com/agamjotsodhi/jobly/internal/lib/token"
	"github.com/agamjotsodhi/jobly/internal/repository"
	"github.com/agamjotsodhi/jobly/internal/server"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// AuthUserRepository is the slice of the users repository the auth
// service needs.
type AuthUserRepository interface {
	Create(ctx context.Context, user repository.User) (*repository.User, error)
	GetWithPassword(ctx context.Context, username string) (*repository.User, error)
}

// AuthService checks credentials and registers accounts. Tokens are
// self-contained: username and admin flag live in the signed claims,
// so nothing is stored server side.
type AuthService struct {
	server *server.Server
	users  AuthUserRepository
}

// NewAuthService constructs an AuthService.
func NewAuthService(s *server.Server, repos *repository.Repositories) *AuthService {
	return &AuthService{
		server: s,
		users:  repos.Users,
	}
}

// Authenticate checks a username/password pair and returns a signed
// token. Unknown users and wrong passwords produce the same error, so
// the endpoint cannot be used to probe for accounts.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetWithPassword(ctx, username)
	if err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
			return "", errs.NewUnauthorizedError("Invalid username/password", true)
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errs.NewUnauthorizedError("Invalid username/password", true)
	}

	return token.Issue(s.server.Config, user.Username, user.IsAdmin)
}

// Register creates a user account and returns a signed token for it.
// Accounts created through registration are never admins. The welcome
// email is enqueued best effort; a queue failure does not fail the
// registration.
func (s *AuthService) Register(ctx context.Context, user repository.User, password string) (string, error) {
	hash, err := hashPassword(password, s.server.Config.Auth.BcryptCost)
	if err != nil {
		return "", err
	}
	user.Password = hash
	user.IsAdmin = false

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", err
	}

	if s.server.Job != nil {
		if err := s.server.Job.EnqueueWelcomeEmail(created.Email, created.FirstName); err != nil {
			s.server.Logger.Warn().
				Err(err).
				Str("username", created.Username).
				Msg("Failed to enqueue welcome email")
		}
	}

	return token.Issue(s.server.Config, created.Username, created.IsAdmin)
}

// hashPassword bcrypt-hashes a plaintext password with the configured
// cost.
func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}
	return string(hash), nil
}
