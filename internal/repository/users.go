package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/agamjotsodhi/jobly/internal/errs"
	"github.com/agamjotsodhi/jobly/internal/querybuild"
	"github.com/agamjotsodhi/jobly/internal/server"
	"github.com/agamjotsodhi/jobly/internal/sqlerr"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

// User is a user row. Password holds the bcrypt hash and never
// serializes to JSON.
type User struct {
	Username  string `json:"username"`
	Password  string `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
}

// UserUpdate holds the updatable user fields. Nil fields are left
// unchanged. Password must arrive already hashed.
type UserUpdate struct {
	Password  *string
	FirstName *string
	LastName  *string
	Email     *string
}

// changes builds the change set in a fixed field order so the emitted
// SET clause is deterministic.
func (u UserUpdate) changes() *querybuild.ChangeSet {
	cs := querybuild.NewChangeSet()
	if u.Password != nil {
		cs.Set("password", *u.Password)
	}
	if u.FirstName != nil {
		cs.Set("firstName", *u.FirstName)
	}
	if u.LastName != nil {
		cs.Set("lastName", *u.LastName)
	}
	if u.Email != nil {
		cs.Set("email", *u.Email)
	}
	return cs
}

// userColumns maps API field names to user columns.
var userColumns = querybuild.FieldMap{
	"firstName": "first_name",
	"lastName":  "last_name",
	"isAdmin":   "is_admin",
}

const userSelect = `SELECT username, first_name, last_name, email, is_admin FROM users`

// UsersRepository performs database operations on users and their job
// applications.
type UsersRepository struct {
	server *server.Server
}

// NewUsersRepository constructs a UsersRepository.
func NewUsersRepository(s *server.Server) *UsersRepository {
	return &UsersRepository{server: s}
}

// Create inserts a user. Password must already be hashed by the
// caller. A taken username surfaces as a 409.
func (r *UsersRepository) Create(ctx context.Context, user User) (*User, error) {
	query := `
		INSERT INTO users (username, password, first_name, last_name, email, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING username, first_name, last_name, email, is_admin`

	var created User
	err := r.server.DB.Pool.QueryRow(ctx, query,
		user.Username, user.Password, user.FirstName, user.LastName, user.Email, user.IsAdmin,
	).Scan(&created.Username, &created.FirstName, &created.LastName, &created.Email, &created.IsAdmin)
	if err != nil {
		converted := sqlerr.HandleError(err)
		// The only unique constraint on users is the primary key, so a
		// conflict always means the username is taken.
		var httpErr *errs.HTTPError
		if errors.As(converted, &httpErr) && httpErr.Status == http.StatusConflict {
			return nil, errs.NewConflictError(fmt.Sprintf("Duplicate username: %s", user.Username), true, nil)
		}
		return nil, converted
	}

	return &created, nil
}

// List returns all users ordered by username.
func (r *UsersRepository) List(ctx context.Context) ([]User, error) {
	query := userSelect + ` ORDER BY username`

	rows, err := r.server.DB.Pool.Query(ctx, query)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return users, nil
}

// Get returns the user with the given username, without the password
// hash, or a 404.
func (r *UsersRepository) Get(ctx context.Context, username string) (*User, error) {
	query := userSelect + ` WHERE username = $1`

	var u User
	err := r.server.DB.Pool.QueryRow(ctx, query, username).
		Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError(fmt.Sprintf("No user: %s", username), true, nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	return &u, nil
}

// GetWithPassword returns the user including the password hash, for
// credential checks.
func (r *UsersRepository) GetWithPassword(ctx context.Context, username string) (*User, error) {
	query := `SELECT username, password, first_name, last_name, email, is_admin FROM users WHERE username = $1`

	var u User
	err := r.server.DB.Pool.QueryRow(ctx, query, username).
		Scan(&u.Username, &u.Password, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError(fmt.Sprintf("No user: %s", username), true, nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	return &u, nil
}

// ApplicationIDs returns the ids of the jobs the user has applied to.
func (r *UsersRepository) ApplicationIDs(ctx context.Context, username string) ([]int32, error) {
	query := `SELECT job_id FROM applications WHERE username = $1 ORDER BY job_id`

	rows, err := r.server.DB.Pool.Query(ctx, query, username)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	defer rows.Close()

	jobIDs := []int32{}
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, sqlerr.HandleError(err)
		}
		jobIDs = append(jobIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return jobIDs, nil
}

// Update applies a partial update to the user with the given username
// and returns the updated row. An update with no fields set is
// rejected before touching the database.
func (r *UsersRepository) Update(ctx context.Context, username string, update UserUpdate) (*User, error) {
	setClause, params, err := querybuild.SetClause(update.changes(), userColumns, 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE username = $%d
		RETURNING username, first_name, last_name, email, is_admin`,
		setClause, len(params)+1)
	params = append(params, username)

	var u User
	err = r.server.DB.Pool.QueryRow(ctx, query, params...).
		Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError(fmt.Sprintf("No user: %s", username), true, nil)
		}
		return nil, sqlerr.HandleError(err)
	}

	return &u, nil
}

// Delete removes the user with the given username. Their applications
// cascade.
func (r *UsersRepository) Delete(ctx context.Context, username string) error {
	tag, err := r.server.DB.Pool.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return errs.NewNotFoundError(fmt.Sprintf("No user: %s", username), true, nil)
	}
	return nil
}

// Apply records an application by username for the given job. Both
// sides are checked first so the 404 names the missing resource;
// applying twice is a 409.
func (r *UsersRepository) Apply(ctx context.Context, username string, jobID int32) error {
	var exists bool
	err := r.server.DB.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if !exists {
		return errs.NewNotFoundError(fmt.Sprintf("No user: %s", username), true, nil)
	}

	err = r.server.DB.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM jobs WHERE id = $1)`, jobID).Scan(&exists)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	if !exists {
		return errs.NewNotFoundError(fmt.Sprintf("No job: %d", jobID), true, nil)
	}

	_, err = r.server.DB.Pool.Exec(ctx,
		`INSERT INTO applications (username, job_id) VALUES ($1, $2)`, username, jobID)
	if err != nil {
		converted := sqlerr.HandleError(err)
		var httpErr *errs.HTTPError
		if errors.As(converted, &httpErr) && httpErr.Status == http.StatusConflict {
			return errs.NewConflictError(fmt.Sprintf("User %s already applied to job %d", username, jobID), true, nil)
		}
		return converted
	}

	return nil
}
