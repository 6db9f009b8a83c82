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
	"github.com/shopspring/decimal"
)

// Job is a job posting row. Equity is NUMERIC in the database and
// serializes as a JSON string ("0.08") to avoid float drift.
type Job struct {
	ID            int32               `json:"id"`
	Title         string              `json:"title"`
	Salary        *int32              `json:"salary"`
	Equity        decimal.NullDecimal `json:"equity"`
	CompanyHandle string              `json:"companyHandle"`
}

// JobUpdate holds the updatable job fields. Nil fields are left
// unchanged. The id and company handle are immutable.
type JobUpdate struct {
	Title  *string
	Salary *int32
	Equity *decimal.Decimal
}

// changes builds the change set in a fixed field order so the emitted
// SET clause is deterministic.
func (u JobUpdate) changes() *querybuild.ChangeSet {
	cs := querybuild.NewChangeSet()
	if u.Title != nil {
		cs.Set("title", *u.Title)
	}
	if u.Salary != nil {
		cs.Set("salary", *u.Salary)
	}
	if u.Equity != nil {
		cs.Set("equity", *u.Equity)
	}
	return cs
}

// jobColumns maps API field names to job columns.
var jobColumns = querybuild.FieldMap{
	"companyHandle": "company_handle",
}

// jobFilterRules is the fixed-order rule table for job listings.
// hasEquity is a flag rule: true narrows to jobs with equity > 0,
// false or absent applies no constraint.
var jobFilterRules = []querybuild.Rule{
	{Name: "title", Column: "title", Op: querybuild.OpContains},
	{Name: "minSalary", Column: "salary", Op: querybuild.OpAtLeast},
	{Name: "hasEquity", Column: "equity", Op: querybuild.OpPositive},
}

const jobSelect = `SELECT id, title, salary, equity, company_handle FROM jobs`

// JobsRepository performs database operations on job postings.
type JobsRepository struct {
	server *server.Server
}

// NewJobsRepository constructs a JobsRepository.
func NewJobsRepository(s *server.Server) *JobsRepository {
	return &JobsRepository{server: s}
}

// Create inserts a job posting. An unknown company handle surfaces as
// a 400 via the foreign key constraint.
func (r *JobsRepository) Create(ctx context.Context, job Job) (*Job, error) {
	query := `
		INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, salary, equity, company_handle`

	var created Job
	err := r.server.DB.Pool.QueryRow(ctx, query,
		job.Title, job.Salary, job.Equity, job.CompanyHandle,
	).Scan(&created.ID, &created.Title, &created.Salary, &created.Equity, &created.CompanyHandle)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return &created, nil
}

// List returns jobs matching the given filters. An empty filter map
// returns every job.
func (r *JobsRepository) List(ctx context.Context, filters map[string]any) ([]Job, error) {
	where, params, err := querybuild.WhereClause(filters, jobFilterRules, 1)
	if err != nil {
		return nil, err
	}

	query := jobSelect
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY id"

	rows, err := r.server.DB.Pool.Query(ctx, query, params...)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return jobs, nil
}

// ListByCompany returns every job posted by the given company.
func (r *JobsRepository) ListByCompany(ctx context.Context, handle string) ([]Job, error) {
	query := jobSelect + ` WHERE company_handle = $1 ORDER BY id`

	rows, err := r.server.DB.Pool.Query(ctx, query, handle)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return jobs, nil
}

// Get returns the job with the given id, or a 404.
func (r *JobsRepository) Get(ctx context.Context, id int32) (*Job, error) {
	query := jobSelect + ` WHERE id = $1`

	var j Job
	err := r.server.DB.Pool.QueryRow(ctx, query, id).
		Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError(fmt.Sprintf("No job: %d", id), true, nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	return &j, nil
}

// Update applies a partial update to the job with the given id and
// returns the updated row. An update with no fields set is rejected
// before touching the database.
func (r *JobsRepository) Update(ctx context.Context, id int32, update JobUpdate) (*Job, error) {
	setClause, params, err := querybuild.SetClause(update.changes(), jobColumns, 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE jobs
		SET %s
		WHERE id = $%d
		RETURNING id, title, salary, equity, company_handle`,
		setClause, len(params)+1)
	params = append(params, id)

	var j Job
	err = r.server.DB.Pool.QueryRow(ctx, query, params...).
		Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError(fmt.Sprintf("No job: %d", id), true, nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	return &j, nil
}

// Delete removes the job with the given id.
func (r *JobsRepository) Delete(ctx context.Context, id int32) error {
	tag, err := r.server.DB.Pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError(fmt.Sprintf("No job: %d", id), true, nil)
	}
	return nil
}
