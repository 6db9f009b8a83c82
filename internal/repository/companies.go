package repository

import (
	"context"
	"fmt"

	"github.com/agamjotsodhi/jobly/internal/errs"
	"github.com/agamjotsodhi/jobly/internal/querybuild"
	"github.com/agamjotsodhi/jobly/internal/server"
	"github.com/agamjotsodhi/jobly/internal/sqlerr"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// Company is a company row.
type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	NumEmployees *int32  `json:"numEmployees"`
	Description  string  `json:"description"`
	LogoURL      *string `json:"logoUrl"`
}

// CompanyUpdate holds the updatable company fields. Nil fields are
// left unchanged.
type CompanyUpdate struct {
	Name         *string
	Description  *string
	NumEmployees *int32
	LogoURL      *string
}

// changes builds the change set in a fixed field order so the emitted
// SET clause is deterministic.
func (u CompanyUpdate) changes() *querybuild.ChangeSet {
	cs := querybuild.NewChangeSet()
	if u.Name != nil {
		cs.Set("name", *u.Name)
	}
	if u.Description != nil {
		cs.Set("description", *u.Description)
	}
	if u.NumEmployees != nil {
		cs.Set("numEmployees", *u.NumEmployees)
	}
	if u.LogoURL != nil {
		cs.Set("logoUrl", *u.LogoURL)
	}
	return cs
}

// companyColumns maps API field names to company columns. Fields not
// listed map to themselves.
var companyColumns = querybuild.FieldMap{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

// companyFilterRules is the fixed-order rule table for company
// listings. minEmployees/maxEmployees form a range pair on
// num_employees, so an impossible range is rejected before any SQL is
// built.
var companyFilterRules = []querybuild.Rule{
	{Name: "name", Column: "name", Op: querybuild.OpContains},
	{Name: "minEmployees", Column: "num_employees", Op: querybuild.OpAtLeast},
	{Name: "maxEmployees", Column: "num_employees", Op: querybuild.OpAtMost},
}

const companySelect = `SELECT handle, name, num_employees, description, logo_url FROM companies`

// CompaniesRepository performs database operations on companies.
type CompaniesRepository struct {
	server *server.Server
}

// NewCompaniesRepository constructs a CompaniesRepository.
func NewCompaniesRepository(s *server.Server) *CompaniesRepository {
	return &CompaniesRepository{server: s}
}

// Create inserts a company. A duplicate handle or name surfaces as a
// 409 via the unique constraint.
func (r *CompaniesRepository) Create(ctx context.Context, company Company) (*Company, error) {
	query := `
		INSERT INTO companies (handle, name, num_employees, description, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING handle, name, num_employees, description, logo_url`

	var created Company
	err := r.server.DB.Pool.QueryRow(ctx, query,
		company.Handle, company.Name, company.NumEmployees, company.Description, company.LogoURL,
	).Scan(&created.Handle, &created.Name, &created.NumEmployees, &created.Description, &created.LogoURL)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return &created, nil
}

// List returns companies matching the given filters, ordered by name.
// An empty filter map returns every company.
func (r *CompaniesRepository) List(ctx context.Context, filters map[string]any) ([]Company, error) {
	where, params, err := querybuild.WhereClause(filters, companyFilterRules, 1)
	if err != nil {
		return nil, err
	}

	query := companySelect
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY name"

	rows, err := r.server.DB.Pool.Query(ctx, query, params...)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	companies := []Company{}
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.Handle, &c.Name, &c.NumEmployees, &c.Description, &c.LogoURL); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return companies, nil
}

// Get returns the company with the given handle, or a 404.
func (r *CompaniesRepository) Get(ctx context.Context, handle string) (*Company, error) {
	query := companySelect + ` WHERE handle = $1`

	var c Company
	err := r.server.DB.Pool.QueryRow(ctx, query, handle).
		Scan(&c.Handle, &c.Name, &c.NumEmployees, &c.Description, &c.LogoURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError(fmt.Sprintf("No company: %s", handle), true, nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	return &c, nil
}

// Update applies a partial update to the company with the given
// handle and returns the updated row. An update with no fields set is
// rejected before touching the database.
func (r *CompaniesRepository) Update(ctx context.Context, handle string, update CompanyUpdate) (*Company, error) {
	setClause, params, err := querybuild.SetClause(update.changes(), companyColumns, 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE companies
		SET %s
		WHERE handle = $%d
		RETURNING handle, name, num_employees, description, logo_url`,
		setClause, len(params)+1)
	params = append(params, handle)

	var c Company
	err = r.server.DB.Pool.QueryRow(ctx, query, params...).
		Scan(&c.Handle, &c.Name, &c.NumEmployees, &c.Description, &c.LogoURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError(fmt.Sprintf("No company: %s", handle), true, nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	return &c, nil
}

// Delete removes the company with the given handle. Jobs posted by
// the company cascade.
func (r *CompaniesRepository) Delete(ctx context.Context, handle string) error {
	tag, err := r.server.DB.Pool.Exec(ctx, `DELETE FROM companies WHERE handle = $1`, handle)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError(fmt.Sprintf("No company: %s", handle), true, nil)
	}
	return nil
}
