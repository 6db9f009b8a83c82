// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"
	"time"

	"github.com/agamjotsodhi/jobly/internal/handler"
	"github.com/agamjotsodhi/jobly/internal/middleware"

	"github.com/labstack/echo/v4"
)

// Setup builds the Echo engine: error handler, global middleware chain
// and all route groups. The returned engine is ready to be handed to
// Server.SetupHTTPServer.
func Setup(m *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	r := echo.New()

	r.HideBanner = true
	r.HidePort = true

	r.HTTPErrorHandler = m.Global.GlobalErrorHandler

	// Order matters: the request id must exist before the context
	// enhancer builds the request logger, and the New Relic transaction
	// must exist before EnhanceTracing can annotate it. Authenticate
	// runs last so its log lines carry the request-scoped logger.
	r.Use(middleware.RequestID())
	r.Use(m.ContextEnhancer.EnhanceContext())
	r.Use(m.Tracing.NewRelicMiddleware())
	r.Use(m.Tracing.EnhanceTracing())
	r.Use(m.Global.CORS())
	r.Use(m.Global.RequestLogger())
	r.Use(m.Global.Recover())
	r.Use(m.Global.Secure())

	// Authenticate only resolves identity; it never rejects. Route
	// groups below decide what that identity is allowed to do.
	r.Use(m.Auth.Authenticate)

	registerSystemRoutes(r, h)
	registerAuthRoutes(r, m, h)
	registerCompanyRoutes(r, m, h)
	registerJobRoutes(r, m, h)
	registerUserRoutes(r, m, h)

	return r
}

// registerAuthRoutes wires the open login/register endpoints. Both are
// rate limited per IP: they are the only routes that burn bcrypt time
// for unauthenticated callers.
func registerAuthRoutes(r *echo.Echo, m *middleware.Middlewares, h *handler.Handlers) {
	auth := r.Group("/auth", m.RateLimit.Limit("auth", 10, time.Minute))

	auth.POST("/token", handler.Handle(h.Auth.Handler, h.Auth.Login, http.StatusOK))
	auth.POST("/register", handler.Handle(h.Auth.Handler, h.Auth.Register, http.StatusCreated))
}

// registerCompanyRoutes wires /companies. Reads are open to anonymous
// callers; writes are admin only.
func registerCompanyRoutes(r *echo.Echo, m *middleware.Middlewares, h *handler.Handlers) {
	companies := r.Group("/companies")

	companies.GET("", handler.Handle(h.Companies.Handler, h.Companies.List, http.StatusOK))
	companies.GET("/:handle", handler.Handle(h.Companies.Handler, h.Companies.Get, http.StatusOK))

	companies.POST("", handler.Handle(h.Companies.Handler, h.Companies.Create, http.StatusCreated), m.Auth.RequireAdmin)
	companies.PATCH("/:handle", handler.Handle(h.Companies.Handler, h.Companies.Update, http.StatusOK), m.Auth.RequireAdmin)
	companies.DELETE("/:handle", handler.HandleNoContent(h.Companies.Handler, h.Companies.Delete, http.StatusNoContent), m.Auth.RequireAdmin)
}

// registerJobRoutes wires /jobs with the same split as companies:
// open reads, admin-only writes.
func registerJobRoutes(r *echo.Echo, m *middleware.Middlewares, h *handler.Handlers) {
	jobs := r.Group("/jobs")

	jobs.GET("", handler.Handle(h.Jobs.Handler, h.Jobs.List, http.StatusOK))
	jobs.GET("/:id", handler.Handle(h.Jobs.Handler, h.Jobs.Get, http.StatusOK))

	jobs.POST("", handler.Handle(h.Jobs.Handler, h.Jobs.Create, http.StatusCreated), m.Auth.RequireAdmin)
	jobs.PATCH("/:id", handler.Handle(h.Jobs.Handler, h.Jobs.Update, http.StatusOK), m.Auth.RequireAdmin)
	jobs.DELETE("/:id", handler.HandleNoContent(h.Jobs.Handler, h.Jobs.Delete, http.StatusNoContent), m.Auth.RequireAdmin)
}

// registerUserRoutes wires /users. Listing and creating users is an
// admin operation (Create can mint admins, unlike open registration);
// per-user routes allow the account owner as well.
func registerUserRoutes(r *echo.Echo, m *middleware.Middlewares, h *handler.Handlers) {
	users := r.Group("/users")

	users.POST("", handler.Handle(h.Users.Handler, h.Users.Create, http.StatusCreated), m.Auth.RequireAdmin)
	users.GET("", handler.Handle(h.Users.Handler, h.Users.List, http.StatusOK), m.Auth.RequireAdmin)

	adminOrSelf := m.Auth.RequireAdminOrSelf("username")

	users.GET("/:username", handler.Handle(h.Users.Handler, h.Users.Get, http.StatusOK), adminOrSelf)
	users.PATCH("/:username", handler.Handle(h.Users.Handler, h.Users.Update, http.StatusOK), adminOrSelf)
	users.DELETE("/:username", handler.HandleNoContent(h.Users.Handler, h.Users.Delete, http.StatusNoContent), adminOrSelf)

	users.POST("/:username/jobs/:id", handler.Handle(h.Users.Handler, h.Users.Apply, http.StatusCreated), adminOrSelf)
}
