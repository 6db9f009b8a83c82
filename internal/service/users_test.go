package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/agamjotsodhi/jobly/internal/errs"
	"github.com/agamjotsodhi/jobly/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ==================== MOCKS ====================

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

var _ UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, user repository.User) (*repository.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]repository.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.User), args.Error(1)
}

func (m *MockUserRepository) Get(ctx context.Context, username string) (*repository.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.User), args.Error(1)
}

func (m *MockUserRepository) ApplicationIDs(ctx context.Context, username string) ([]int32, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int32), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, username string, update repository.UserUpdate) (*repository.User, error) {
	args := m.Called(ctx, username, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockUserRepository) Apply(ctx context.Context, username string, jobID int32) error {
	args := m.Called(ctx, username, jobID)
	return args.Error(0)
}

// ==================== TESTS ====================

func TestUserService_Create(t *testing.T) {
	t.Run("Success - hashes password and keeps the admin flag", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(u repository.User) bool {
			return u.Username == "admin2" &&
				u.IsAdmin &&
				bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")) == nil
		})).Return(&repository.User{Username: "admin2", IsAdmin: true}, nil)

		svc := &UserService{server: testServer(), users: mockRepo}

		created, err := svc.Create(context.Background(), repository.User{
			Username: "admin2",
			IsAdmin:  true,
		}, "secret123")

		require.NoError(t, err)
		assert.Equal(t, "admin2", created.Username)
		assert.True(t, created.IsAdmin)

		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_Get(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		mockSetup func(*MockUserRepository)
		want      *UserDetail
		wantErr   int
	}{
		{
			name:     "Success - user with applications",
			username: "testuser",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Get", mock.Anything, "testuser").Return(&repository.User{
					Username:  "testuser",
					FirstName: "Test",
					LastName:  "User",
					Email:     "test@example.com",
				}, nil)
				repo.On("ApplicationIDs", mock.Anything, "testuser").Return([]int32{1, 3}, nil)
			},
			want: &UserDetail{
				User: repository.User{
					Username:  "testuser",
					FirstName: "Test",
					LastName:  "User",
					Email:     "test@example.com",
				},
				Applications: []int32{1, 3},
			},
		},
		{
			name:     "Success - user with no applications gets an empty list",
			username: "testuser",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Get", mock.Anything, "testuser").
					Return(&repository.User{Username: "testuser"}, nil)
				repo.On("ApplicationIDs", mock.Anything, "testuser").Return([]int32{}, nil)
			},
			want: &UserDetail{
				User:         repository.User{Username: "testuser"},
				Applications: []int32{},
			},
		},
		{
			name:     "Error - unknown user",
			username: "nobody",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Get", mock.Anything, "nobody").
					Return(nil, errs.NewNotFoundError("No user: nobody", true, nil))
			},
			wantErr: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			if tt.mockSetup != nil {
				tt.mockSetup(mockRepo)
			}

			svc := &UserService{server: testServer(), users: mockRepo}

			detail, err := svc.Get(context.Background(), tt.username)

			if tt.wantErr != 0 {
				var httpErr *errs.HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, tt.wantErr, httpErr.Status)
				assert.Nil(t, detail)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, detail)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Update(t *testing.T) {
	t.Run("Success - new password is re-hashed before the repository", func(t *testing.T) {
		newPassword := "brand-new-pass"

		mockRepo := new(MockUserRepository)
		mockRepo.On("Update", mock.Anything, "testuser", mock.MatchedBy(func(u repository.UserUpdate) bool {
			return u.Password != nil &&
				*u.Password != newPassword &&
				bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(newPassword)) == nil
		})).Return(&repository.User{Username: "testuser"}, nil)

		svc := &UserService{server: testServer(), users: mockRepo}

		_, err := svc.Update(context.Background(), "testuser", repository.UserUpdate{
			Password: &newPassword,
		})

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - update without password passes fields through untouched", func(t *testing.T) {
		firstName := "Updated"

		mockRepo := new(MockUserRepository)
		mockRepo.On("Update", mock.Anything, "testuser", repository.UserUpdate{
			FirstName: &firstName,
		}).Return(&repository.User{Username: "testuser", FirstName: "Updated"}, nil)

		svc := &UserService{server: testServer(), users: mockRepo}

		updated, err := svc.Update(context.Background(), "testuser", repository.UserUpdate{
			FirstName: &firstName,
		})

		require.NoError(t, err)
		assert.Equal(t, "Updated", updated.FirstName)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_Apply(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(*MockUserRepository)
		wantErr   int
	}{
		{
			name: "Success - application recorded",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Apply", mock.Anything, "testuser", int32(7)).Return(nil)
			},
		},
		{
			name: "Error - duplicate application is a conflict",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("Apply", mock.Anything, "testuser", int32(7)).
					Return(errs.NewConflictError("User testuser already applied to job 7", true, nil))
			},
			wantErr: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)

			svc := &UserService{server: testServer(), users: mockRepo}

			err := svc.Apply(context.Background(), "testuser", 7)

			if tt.wantErr != 0 {
				var httpErr *errs.HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, tt.wantErr, httpErr.Status)
			} else {
				require.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
