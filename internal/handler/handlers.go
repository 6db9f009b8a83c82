package handler

import (
	"github.com/agamjotsodhi/jobly/internal/server"
	"github.com/agamjotsodhi/jobly/internal/service"
	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance request types use in their
// Validate methods.
var validate = validator.New()

// Handlers groups all HTTP handlers so the router receives a single
// object instead of many.
type Handlers struct {
	Auth      *AuthHandler
	Companies *CompaniesHandler
	Jobs      *JobsHandler
	Users     *UsersHandler
	Health    *HealthHandler
	OpenAPI   *OpenAPIHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(s, services),
		Companies: NewCompaniesHandler(s, services),
		Jobs:      NewJobsHandler(s, services),
		Users:     NewUsersHandler(s, services),
		Health:    NewHealthHandler(s),
		OpenAPI:   NewOpenAPIHandler(s),
	}
}
