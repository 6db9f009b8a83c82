package handler

import (
	"github.com/agamjotsodhi/jobly/internal/repository"
	"github.com/agamjotsodhi/jobly/internal/server"
	"github.com/agamjotsodhi/jobly/internal/service"
	"github.com/labstack/echo/v4"
)

// UsersHandler serves the /users resource, including job applications.
type UsersHandler struct {
	Handler
	users *service.UserService
}

// NewUsersHandler constructs a UsersHandler.
func NewUsersHandler(s *server.Server, services *service.Services) *UsersHandler {
	return &UsersHandler{
		Handler: NewHandler(s),
		users:   services.Users,
	}
}

type userResponse struct {
	User *repository.User `json:"user"`
}

type usersResponse struct {
	Users []repository.User `json:"users"`
}

type userDetailResponse struct {
	User *service.UserDetail `json:"user"`
}

type appliedResponse struct {
	Applied int32 `json:"applied"`
}

// CreateUserRequest is the payload for POST /users. This is the admin
// path: unlike registration it may grant the admin flag.
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,max=25"`
	Password  string `json:"password" validate:"required,min=5,max=20"`
	FirstName string `json:"firstName" validate:"required,max=30"`
	LastName  string `json:"lastName" validate:"required,max=30"`
	Email     string `json:"email" validate:"required,email"`
	IsAdmin   bool   `json:"isAdmin"`
}

func (r *CreateUserRequest) Validate() error {
	return validate.Struct(r)
}

// Create adds a user on behalf of an admin.
func (h *UsersHandler) Create(c echo.Context, req *CreateUserRequest) (*userResponse, error) {
	user, err := h.users.Create(c.Request().Context(), repository.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		IsAdmin:   req.IsAdmin,
	}, req.Password)
	if err != nil {
		return nil, err
	}

	return &userResponse{User: user}, nil
}

// ListUsersRequest is the (empty) payload for GET /users.
type ListUsersRequest struct{}

func (r *ListUsersRequest) Validate() error {
	return nil
}

// List returns all users. Admin only.
func (h *UsersHandler) List(c echo.Context, req *ListUsersRequest) (*usersResponse, error) {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return nil, err
	}

	return &usersResponse{Users: users}, nil
}

// GetUserRequest addresses a single user by username.
type GetUserRequest struct {
	Username string `param:"username" validate:"required"`
}

func (r *GetUserRequest) Validate() error {
	return validate.Struct(r)
}

// Get returns a user and their job applications. Admin or the user
// themselves.
func (h *UsersHandler) Get(c echo.Context, req *GetUserRequest) (*userDetailResponse, error) {
	detail, err := h.users.Get(c.Request().Context(), req.Username)
	if err != nil {
		return nil, err
	}

	return &userDetailResponse{User: detail}, nil
}

// UpdateUserRequest is the payload for PATCH /users/:username. Absent
// fields are left unchanged; the username and admin flag are immutable
// through this endpoint.
type UpdateUserRequest struct {
	Username  string  `param:"username" json:"-" validate:"required"`
	Password  *string `json:"password" validate:"omitempty,min=5,max=20"`
	FirstName *string `json:"firstName" validate:"omitempty,max=30"`
	LastName  *string `json:"lastName" validate:"omitempty,max=30"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

func (r *UpdateUserRequest) Validate() error {
	return validate.Struct(r)
}

// Update applies a partial update to a user. Admin or the user
// themselves.
func (h *UsersHandler) Update(c echo.Context, req *UpdateUserRequest) (*userResponse, error) {
	user, err := h.users.Update(c.Request().Context(), req.Username, repository.UserUpdate{
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		return nil, err
	}

	return &userResponse{User: user}, nil
}

// DeleteUserRequest addresses a single user by username.
type DeleteUserRequest struct {
	Username string `param:"username" validate:"required"`
}

func (r *DeleteUserRequest) Validate() error {
	return validate.Struct(r)
}

// Delete removes a user. Admin or the user themselves.
func (h *UsersHandler) Delete(c echo.Context, req *DeleteUserRequest) error {
	return h.users.Delete(c.Request().Context(), req.Username)
}

// ApplyToJobRequest addresses a user/job pair for POST
// /users/:username/jobs/:id.
type ApplyToJobRequest struct {
	Username string `param:"username" validate:"required"`
	JobID    int32  `param:"id" validate:"gte=1"`
}

func (r *ApplyToJobRequest) Validate() error {
	return validate.Struct(r)
}

// Apply records a job application. Admin or the user themselves.
func (h *UsersHandler) Apply(c echo.Context, req *ApplyToJobRequest) (*appliedResponse, error) {
	if err := h.users.Apply(c.Request().Context(), req.Username, req.JobID); err != nil {
		return nil, err
	}

	return &appliedResponse{Applied: req.JobID}, nil
}
