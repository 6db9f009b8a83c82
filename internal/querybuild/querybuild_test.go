package querybuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetClause(t *testing.T) {
	tests := []struct {
		name           string
		changes        *ChangeSet
		columns        FieldMap
		start          int
		expectedClause string
		expectedParams []any
	}{
		{
			name: "maps fields and numbers placeholders in insertion order",
			changes: NewChangeSet().
				Set("firstName", "Joe").
				Set("age", 27),
			columns:        FieldMap{"firstName": "first_name"},
			start:          1,
			expectedClause: `"first_name"=$1, "age"=$2`,
			expectedParams: []any{"Joe", 27},
		},
		{
			name:           "single field without mapping keeps its name",
			changes:        NewChangeSet().Set("description", "A storied firm"),
			columns:        FieldMap{},
			start:          1,
			expectedClause: `"description"=$1`,
			expectedParams: []any{"A storied firm"},
		},
		{
			name: "placeholders count up from the caller's start index",
			changes: NewChangeSet().
				Set("title", "Engineer").
				Set("salary", 90000),
			columns:        FieldMap{},
			start:          3,
			expectedClause: `"title"=$3, "salary"=$4`,
			expectedParams: []any{"Engineer", 90000},
		},
		{
			name:           "nil value survives as a parameter",
			changes:        NewChangeSet().Set("logoURL", nil),
			columns:        FieldMap{"logoURL": "logo_url"},
			start:          1,
			expectedClause: `"logo_url"=$1`,
			expectedParams: []any{nil},
		},
		{
			name: "re-setting a field replaces the value in place",
			changes: NewChangeSet().
				Set("name", "Acme").
				Set("numEmployees", 10).
				Set("name", "Acme Corp"),
			columns:        FieldMap{"numEmployees": "num_employees"},
			start:          1,
			expectedClause: `"name"=$1, "num_employees"=$2`,
			expectedParams: []any{"Acme Corp", 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, params, err := SetClause(tt.changes, tt.columns, tt.start)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedClause, clause)
			assert.Equal(t, tt.expectedParams, params)
			assert.Len(t, params, tt.changes.Len())
		})
	}
}

func TestSetClause_EmptyChangeSet(t *testing.T) {
	for _, columns := range []FieldMap{nil, {}, {"firstName": "first_name"}} {
		clause, params, err := SetClause(NewChangeSet(), columns, 1)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Empty(t, clause)
		assert.Nil(t, params)
	}
}

func TestFieldMap_Column(t *testing.T) {
	m := FieldMap{"firstName": "first_name"}

	assert.Equal(t, "first_name", m.Column("firstName"))
	assert.Equal(t, "age", m.Column("age"))

	var empty FieldMap
	assert.Equal(t, "handle", empty.Column("handle"))
}

var companyRules = []Rule{
	{Name: "name", Column: "name", Op: OpContains},
	{Name: "minEmployees", Column: "num_employees", Op: OpAtLeast},
	{Name: "maxEmployees", Column: "num_employees", Op: OpAtMost},
}

var jobRules = []Rule{
	{Name: "title", Column: "title", Op: OpContains},
	{Name: "minSalary", Column: "salary", Op: OpAtLeast},
	{Name: "hasEquity", Column: "equity", Op: OpPositive},
}

func TestWhereClause(t *testing.T) {
	tests := []struct {
		name           string
		filters        map[string]any
		rules          []Rule
		start          int
		expectedClause string
		expectedParams []any
	}{
		{
			name:           "no declared filter present means no filtering",
			filters:        map[string]any{},
			rules:          companyRules,
			start:          1,
			expectedClause: "",
			expectedParams: nil,
		},
		{
			name:           "undeclared names are ignored",
			filters:        map[string]any{"favoriteColor": "teal"},
			rules:          companyRules,
			start:          1,
			expectedClause: "",
			expectedParams: nil,
		},
		{
			name:           "contains wraps the value in wildcards",
			filters:        map[string]any{"title": "eng"},
			rules:          jobRules,
			start:          1,
			expectedClause: "title ILIKE $1",
			expectedParams: []any{"%eng%"},
		},
		{
			name:           "single bound of a range pair is allowed",
			filters:        map[string]any{"minEmployees": 2},
			rules:          companyRules,
			start:          1,
			expectedClause: "num_employees >= $1",
			expectedParams: []any{2},
		},
		{
			name: "all company filters in declared order",
			filters: map[string]any{
				"maxEmployees": 800,
				"name":         "net",
				"minEmployees": 10,
			},
			rules:          companyRules,
			start:          1,
			expectedClause: "name ILIKE $1 AND num_employees >= $2 AND num_employees <= $3",
			expectedParams: []any{"%net%", 10, 800},
		},
		{
			name:           "boolean flag emits a literal with no parameter",
			filters:        map[string]any{"hasEquity": true},
			rules:          jobRules,
			start:          1,
			expectedClause: "equity > 0",
			expectedParams: nil,
		},
		{
			name:           "false flag applies no constraint",
			filters:        map[string]any{"hasEquity": false},
			rules:          jobRules,
			start:          1,
			expectedClause: "",
			expectedParams: nil,
		},
		{
			name: "flag does not consume a placeholder index",
			filters: map[string]any{
				"title":     "eng",
				"hasEquity": true,
				"minSalary": 50000,
			},
			rules:          jobRules,
			start:          1,
			expectedClause: "title ILIKE $1 AND salary >= $2 AND equity > 0",
			expectedParams: []any{"%eng%", 50000},
		},
		{
			name:           "placeholders count up from the caller's start index",
			filters:        map[string]any{"minEmployees": 2, "maxEmployees": 5},
			rules:          companyRules,
			start:          4,
			expectedClause: "num_employees >= $4 AND num_employees <= $5",
			expectedParams: []any{2, 5},
		},
		{
			name:           "equal bounds are a valid range",
			filters:        map[string]any{"minEmployees": 3, "maxEmployees": 3},
			rules:          companyRules,
			start:          1,
			expectedClause: "num_employees >= $1 AND num_employees <= $2",
			expectedParams: []any{3, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, params, err := WhereClause(tt.filters, tt.rules, tt.start)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedClause, clause)
			assert.Equal(t, tt.expectedParams, params)
		})
	}
}

func TestWhereClause_ImpossibleRange(t *testing.T) {
	clause, params, err := WhereClause(
		map[string]any{"minEmployees": 2, "maxEmployees": 1},
		companyRules,
		1,
	)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Error(), "minEmployees")
	assert.Contains(t, vErr.Error(), "maxEmployees")
	assert.Empty(t, clause)
	assert.Nil(t, params)
}

func TestWhereClause_RangeAcrossNumericKinds(t *testing.T) {
	// Query-string parsing can hand the builder mixed numeric types; the
	// bound check compares values, not Go kinds.
	_, _, err := WhereClause(
		map[string]any{"minEmployees": int64(7), "maxEmployees": 6.5},
		companyRules,
		1,
	)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestWhereClause_DeterministicAcrossMapOrder(t *testing.T) {
	// Build the same filter map many times; Go randomizes map iteration,
	// but the clause must follow the rule table's order every time.
	expected := "name ILIKE $1 AND num_employees >= $2 AND num_employees <= $3"

	for range 50 {
		filters := map[string]any{
			"minEmployees": 1,
			"maxEmployees": 100,
			"name":         "co",
		}
		clause, params, err := WhereClause(filters, companyRules, 1)

		require.NoError(t, err)
		require.Equal(t, expected, clause)
		require.Equal(t, []any{"%co%", 1, 100}, params)
	}
}
