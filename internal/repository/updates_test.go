package repository

import (
	"testing"

	"github.com/agamjotsodhi/jobly/internal/querybuild"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func int32Ptr(i int32) *int32 { return &i }

// Update structs must emit their SET clauses in one fixed field order,
// with camelCase fields resolved to their snake_case columns.

func TestCompanyUpdateChanges(t *testing.T) {
	t.Run("full update emits every column in order", func(t *testing.T) {
		update := CompanyUpdate{
			Name:         strPtr("Acme Corp"),
			Description:  strPtr("Rockets."),
			NumEmployees: int32Ptr(250),
			LogoURL:      strPtr("https://acme.example/logo.png"),
		}

		clause, params, err := querybuild.SetClause(update.changes(), companyColumns, 1)

		require.NoError(t, err)
		assert.Equal(t, `"name"=$1, "description"=$2, "num_employees"=$3, "logo_url"=$4`, clause)
		assert.Equal(t, []any{"Acme Corp", "Rockets.", int32(250), "https://acme.example/logo.png"}, params)
	})

	t.Run("sparse update keeps the same relative order", func(t *testing.T) {
		update := CompanyUpdate{
			LogoURL: strPtr("https://acme.example/new.png"),
			Name:    strPtr("Acme Corporation"),
		}

		clause, params, err := querybuild.SetClause(update.changes(), companyColumns, 1)

		require.NoError(t, err)
		assert.Equal(t, `"name"=$1, "logo_url"=$2`, clause)
		assert.Equal(t, []any{"Acme Corporation", "https://acme.example/new.png"}, params)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		_, _, err := querybuild.SetClause(CompanyUpdate{}.changes(), companyColumns, 1)

		var validationErr *querybuild.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}

func TestJobUpdateChanges(t *testing.T) {
	equity := decimal.RequireFromString("0.05")
	update := JobUpdate{
		Title:  strPtr("Staff Engineer"),
		Salary: int32Ptr(150000),
		Equity: &equity,
	}

	clause, params, err := querybuild.SetClause(update.changes(), jobColumns, 1)

	require.NoError(t, err)
	assert.Equal(t, `"title"=$1, "salary"=$2, "equity"=$3`, clause)
	assert.Equal(t, []any{"Staff Engineer", int32(150000), equity}, params)
}

func TestUserUpdateChanges(t *testing.T) {
	update := UserUpdate{
		Password:  strPtr("$2a$10$hash"),
		FirstName: strPtr("Priya"),
		LastName:  strPtr("Sharma"),
		Email:     strPtr("priya@example.com"),
	}

	clause, params, err := querybuild.SetClause(update.changes(), userColumns, 1)

	require.NoError(t, err)
	assert.Equal(t, `"password"=$1, "first_name"=$2, "last_name"=$3, "email"=$4`, clause)
	assert.Equal(t, []any{"$2a$10$hash", "Priya", "Sharma", "priya@example.com"}, params)
}

// Filter rule tables drive WHERE clause generation in a fixed order,
// independent of how the filter map was built.

func TestCompanyFilterRules(t *testing.T) {
	t.Run("all filters", func(t *testing.T) {
		clause, params, err := querybuild.WhereClause(map[string]any{
			"maxEmployees": 500,
			"name":         "net",
			"minEmployees": 10,
		}, companyFilterRules, 1)

		require.NoError(t, err)
		assert.Equal(t, "name ILIKE $1 AND num_employees >= $2 AND num_employees <= $3", clause)
		assert.Equal(t, []any{"%net%", 10, 500}, params)
	})

	t.Run("no filters matches everything", func(t *testing.T) {
		clause, params, err := querybuild.WhereClause(map[string]any{}, companyFilterRules, 1)

		require.NoError(t, err)
		assert.Empty(t, clause)
		assert.Nil(t, params)
	})

	t.Run("impossible employee range is rejected", func(t *testing.T) {
		_, _, err := querybuild.WhereClause(map[string]any{
			"minEmployees": 500,
			"maxEmployees": 10,
		}, companyFilterRules, 1)

		var validationErr *querybuild.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Error(), "minEmployees")
	})
}

func TestJobFilterRules(t *testing.T) {
	t.Run("equity flag adds a parameterless predicate", func(t *testing.T) {
		clause, params, err := querybuild.WhereClause(map[string]any{
			"title":     "engineer",
			"minSalary": 100000,
			"hasEquity": true,
		}, jobFilterRules, 1)

		require.NoError(t, err)
		assert.Equal(t, "title ILIKE $1 AND salary >= $2 AND equity > 0", clause)
		assert.Equal(t, []any{"%engineer%", 100000}, params)
	})

	t.Run("false equity flag applies no constraint", func(t *testing.T) {
		clause, params, err := querybuild.WhereClause(map[string]any{
			"hasEquity": false,
		}, jobFilterRules, 1)

		require.NoError(t, err)
		assert.Empty(t, clause)
		assert.Nil(t, params)
	})
}
