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
)

// ==================== MOCKS ====================

// MockCompanyRepository is a mock implementation of CompanyRepository.
type MockCompanyRepository struct {
	mock.Mock
}

var _ CompanyRepository = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) Create(ctx context.Context, company repository.Company) (*repository.Company, error) {
	args := m.Called(ctx, company)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Company), args.Error(1)
}

func (m *MockCompanyRepository) List(ctx context.Context, filters map[string]any) ([]repository.Company, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Company), args.Error(1)
}

func (m *MockCompanyRepository) Get(ctx context.Context, handle string) (*repository.Company, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Company), args.Error(1)
}

func (m *MockCompanyRepository) Update(ctx context.Context, handle string, update repository.CompanyUpdate) (*repository.Company, error) {
	args := m.Called(ctx, handle, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Company), args.Error(1)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, handle string) error {
	args := m.Called(ctx, handle)
	return args.Error(0)
}

// MockCompanyJobLister is a mock implementation of CompanyJobLister.
type MockCompanyJobLister struct {
	mock.Mock
}

var _ CompanyJobLister = (*MockCompanyJobLister)(nil)

func (m *MockCompanyJobLister) ListByCompany(ctx context.Context, handle string) ([]repository.Job, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Job), args.Error(1)
}

// ==================== TESTS ====================

func TestCompanyService_Get(t *testing.T) {
	tests := []struct {
		name      string
		handle    string
		mockSetup func(*MockCompanyRepository, *MockCompanyJobLister)
		wantJobs  int
		wantErr   int
	}{
		{
			name:   "Success - company detail includes its jobs",
			handle: "acme",
			mockSetup: func(companies *MockCompanyRepository, jobs *MockCompanyJobLister) {
				companies.On("Get", mock.Anything, "acme").
					Return(&repository.Company{Handle: "acme", Name: "Acme Corp"}, nil)
				jobs.On("ListByCompany", mock.Anything, "acme").Return([]repository.Job{
					{ID: 1, Title: "Engineer", CompanyHandle: "acme"},
					{ID: 2, Title: "Designer", CompanyHandle: "acme"},
				}, nil)
			},
			wantJobs: 2,
		},
		{
			name:   "Success - company with no jobs gets an empty list",
			handle: "acme",
			mockSetup: func(companies *MockCompanyRepository, jobs *MockCompanyJobLister) {
				companies.On("Get", mock.Anything, "acme").
					Return(&repository.Company{Handle: "acme", Name: "Acme Corp"}, nil)
				jobs.On("ListByCompany", mock.Anything, "acme").Return([]repository.Job{}, nil)
			},
			wantJobs: 0,
		},
		{
			name:   "Error - unknown company skips the job lookup",
			handle: "ghost",
			mockSetup: func(companies *MockCompanyRepository, jobs *MockCompanyJobLister) {
				companies.On("Get", mock.Anything, "ghost").
					Return(nil, errs.NewNotFoundError("No company: ghost", true, nil))
			},
			wantErr: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCompanies := new(MockCompanyRepository)
			mockJobs := new(MockCompanyJobLister)
			if tt.mockSetup != nil {
				tt.mockSetup(mockCompanies, mockJobs)
			}

			svc := &CompanyService{server: testServer(), companies: mockCompanies, jobs: mockJobs}

			detail, err := svc.Get(context.Background(), tt.handle)

			if tt.wantErr != 0 {
				var httpErr *errs.HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, tt.wantErr, httpErr.Status)
				assert.Nil(t, detail)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.handle, detail.Handle)
				assert.Len(t, detail.Jobs, tt.wantJobs)
				assert.NotNil(t, detail.Jobs)
			}

			mockCompanies.AssertExpectations(t)
			mockJobs.AssertExpectations(t)
		})
	}
}

func TestCompanyService_Delete(t *testing.T) {
	mockCompanies := new(MockCompanyRepository)
	mockCompanies.On("Delete", mock.Anything, "acme").Return(nil)

	svc := &CompanyService{server: testServer(), companies: mockCompanies, jobs: new(MockCompanyJobLister)}

	err := svc.Delete(context.Background(), "acme")

	require.NoError(t, err)
	mockCompanies.AssertExpectations(t)
}
