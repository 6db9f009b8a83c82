package handler

import (
	"net/http"
	"testing"

	"github.com/agamjotsodhi/jobly/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCompanyRequest_Validate(t *testing.T) {
	valid := CreateCompanyRequest{
		Handle:       "acme",
		Name:         "Acme Corp",
		NumEmployees: int32Ptr(250),
		Description:  "Rocket-powered consumer goods.",
		LogoURL:      strPtr("https://acme.example/logo.png"),
	}

	tests := []struct {
		name   string
		mutate func(r *CreateCompanyRequest)
		wantOK bool
	}{
		{
			name:   "valid",
			mutate: func(r *CreateCompanyRequest) {},
			wantOK: true,
		},
		{
			name: "optional fields may be absent",
			mutate: func(r *CreateCompanyRequest) {
				r.NumEmployees = nil
				r.Description = ""
				r.LogoURL = nil
			},
			wantOK: true,
		},
		{
			name:   "uppercase handle",
			mutate: func(r *CreateCompanyRequest) { r.Handle = "Acme" },
		},
		{
			name:   "handle too long",
			mutate: func(r *CreateCompanyRequest) { r.Handle = "aaaaaaaaaaaaaaaaaaaaaaaaaa" },
		},
		{
			name:   "missing name",
			mutate: func(r *CreateCompanyRequest) { r.Name = "" },
		},
		{
			name:   "negative employee count",
			mutate: func(r *CreateCompanyRequest) { r.NumEmployees = int32Ptr(-5) },
		},
		{
			name:   "logo is not a URL",
			mutate: func(r *CreateCompanyRequest) { r.LogoURL = strPtr("not a url") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()

			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// Filter query params only bind on GET, and absent params must stay
// nil so the query builder sees no filter at all rather than a zero.
func TestListCompaniesRequest_Binding(t *testing.T) {
	t.Run("binds present params", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/companies?name=net&minEmployees=10", "")

		req := new(ListCompaniesRequest)
		require.NoError(t, validation.BindAndValidate(c, req))

		require.NotNil(t, req.Name)
		assert.Equal(t, "net", *req.Name)
		require.NotNil(t, req.MinEmployees)
		assert.Equal(t, 10, *req.MinEmployees)
		assert.Nil(t, req.MaxEmployees)
	})

	t.Run("rejects negative bounds", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/companies?minEmployees=-1", "")

		err := validation.BindAndValidate(c, new(ListCompaniesRequest))
		assert.Error(t, err)
	})
}

func TestListCompaniesRequest_Filters(t *testing.T) {
	t.Run("empty request produces no filters", func(t *testing.T) {
		r := ListCompaniesRequest{}

		assert.Empty(t, r.filters())
	})

	t.Run("set fields map to filter keys", func(t *testing.T) {
		r := ListCompaniesRequest{
			Name:         strPtr("net"),
			MinEmployees: intPtr(10),
			MaxEmployees: intPtr(500),
		}

		assert.Equal(t, map[string]any{
			"name":         "net",
			"minEmployees": 10,
			"maxEmployees": 500,
		}, r.filters())
	})
}
