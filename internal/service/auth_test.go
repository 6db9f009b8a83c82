package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/agamjotsodhi/jobly/internal/config"
	"github.com/agamjotsodhi/jobly/internal/errs"
	"github.com/agamjotsodhi/jobly/internal/lib/token"
	"github.com/agamjotsodhi/jobly/internal/repository"
	"github.com/agamjotsodhi/jobly/internal/server"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ==================== MOCKS ====================

// MockAuthUserRepository is a mock implementation of AuthUserRepository.
type MockAuthUserRepository struct {
	mock.Mock
}

var _ AuthUserRepository = (*MockAuthUserRepository)(nil)

func (m *MockAuthUserRepository) Create(ctx context.Context, user repository.User) (*repository.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.User), args.Error(1)
}

func (m *MockAuthUserRepository) GetWithPassword(ctx context.Context, username string) (*repository.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.User), args.Error(1)
}

// ==================== HELPERS ====================

func testAuthConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			SecretKey:  "test-secret-key",
			TokenTTL:   time.Hour,
			BcryptCost: bcrypt.MinCost,
		},
	}
}

func testServer() *server.Server {
	return &server.Server{Config: testAuthConfig()}
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// ==================== TESTS ====================

func TestAuthService_Authenticate(t *testing.T) {
	storedHash := ""

	tests := []struct {
		name         string
		username     string
		password     string
		mockSetup    func(*MockAuthUserRepository)
		wantToken    bool
		wantStatus   int
		wantMessage  string
		wantPlainErr string
	}{
		{
			name:     "Success - valid credentials return token",
			username: "testuser",
			password: "password123",
			mockSetup: func(repo *MockAuthUserRepository) {
				repo.On("GetWithPassword", mock.Anything, "testuser").Return(&repository.User{
					Username: "testuser",
					Password: storedHash,
					IsAdmin:  true,
				}, nil)
			},
			wantToken: true,
		},
		{
			name:     "Error - wrong password",
			username: "testuser",
			password: "not-the-password",
			mockSetup: func(repo *MockAuthUserRepository) {
				repo.On("GetWithPassword", mock.Anything, "testuser").Return(&repository.User{
					Username: "testuser",
					Password: storedHash,
				}, nil)
			},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid username/password",
		},
		{
			name:     "Error - unknown user yields the same signal as wrong password",
			username: "nobody",
			password: "password123",
			mockSetup: func(repo *MockAuthUserRepository) {
				repo.On("GetWithPassword", mock.Anything, "nobody").
					Return(nil, errs.NewNotFoundError("No user: nobody", true, nil))
			},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Invalid username/password",
		},
		{
			name:     "Error - repository failure passes through",
			username: "testuser",
			password: "password123",
			mockSetup: func(repo *MockAuthUserRepository) {
				repo.On("GetWithPassword", mock.Anything, "testuser").
					Return(nil, errors.New("connection refused"))
			},
			wantPlainErr: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storedHash = mustHash(t, "password123")

			mockRepo := new(MockAuthUserRepository)
			if tt.mockSetup != nil {
				tt.mockSetup(mockRepo)
			}

			svc := &AuthService{server: testServer(), users: mockRepo}

			tok, err := svc.Authenticate(context.Background(), tt.username, tt.password)

			switch {
			case tt.wantToken:
				require.NoError(t, err)
				claims, err := token.Verify(testAuthConfig(), tok)
				require.NoError(t, err)
				assert.Equal(t, tt.username, claims.Username)
				assert.True(t, claims.IsAdmin)
			case tt.wantStatus != 0:
				var httpErr *errs.HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, tt.wantStatus, httpErr.Status)
				assert.Equal(t, tt.wantMessage, httpErr.Message)
				assert.Empty(t, tok)
			default:
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantPlainErr)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("Success - hashes password and never grants admin", func(t *testing.T) {
		mockRepo := new(MockAuthUserRepository)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u repository.User) bool {
			// The stored password must be a hash of the input, and the
			// admin flag must be stripped even if the caller sets it.
			return u.Username == "newuser" &&
				!u.IsAdmin &&
				u.Password != "secret123" &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")) == nil
		})).Return(&repository.User{
			Username:  "newuser",
			FirstName: "New",
			LastName:  "User",
			Email:     "new@example.com",
		}, nil)

		svc := &AuthService{server: testServer(), users: mockRepo}

		tok, err := svc.Register(context.Background(), repository.User{
			Username:  "newuser",
			FirstName: "New",
			LastName:  "User",
			Email:     "new@example.com",
			IsAdmin:   true,
		}, "secret123")

		require.NoError(t, err)

		claims, err := token.Verify(testAuthConfig(), tok)
		require.NoError(t, err)
		assert.Equal(t, "newuser", claims.Username)
		assert.False(t, claims.IsAdmin)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - duplicate username passes through as conflict", func(t *testing.T) {
		mockRepo := new(MockAuthUserRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("repository.User")).
			Return(nil, errs.NewConflictError("Duplicate username: newuser", true, nil))

		svc := &AuthService{server: testServer(), users: mockRepo}

		tok, err := svc.Register(context.Background(), repository.User{Username: "newuser"}, "secret123")

		require.Error(t, err)
		assert.Empty(t, tok)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusConflict, httpErr.Status)

		mockRepo.AssertExpectations(t)
	})
}
