package handler

import (
	"github.com/agamjotsodhi/jobly/internal/repository"
	"github.com/agamjotsodhi/jobly/internal/server"
	"github.com/agamjotsodhi/jobly/internal/service"
	"github.com/labstack/echo/v4"
)

// AuthHandler serves login and registration.
type AuthHandler struct {
	Handler
	auth *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(s *server.Server, services *service.Services) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    services.Auth,
	}
}

// TokenResponse carries a signed access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// LoginRequest is the payload for POST /auth/token.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

// Login checks a username/password pair and returns a signed token.
func (h *AuthHandler) Login(c echo.Context, req *LoginRequest) (*TokenResponse, error) {
	tok, err := h.auth.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{Token: tok}, nil
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=25"`
	Password  string `json:"password" validate:"required,min=5,max=20"`
	FirstName string `json:"firstName" validate:"required,max=30"`
	LastName  string `json:"lastName" validate:"required,max=30"`
	Email     string `json:"email" validate:"required,email"`
}

func (r *RegisterRequest) Validate() error {
	return validate.Struct(r)
}

// Register creates a new account and returns a signed token for it.
func (h *AuthHandler) Register(c echo.Context, req *RegisterRequest) (*TokenResponse, error) {
	tok, err := h.auth.Register(c.Request().Context(), repository.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}, req.Password)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{Token: tok}, nil
}
