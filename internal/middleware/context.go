package middleware

import (
	"context"

	"github.com/agamjotsodhi/jobly/internal/logger"
	"github.com/agamjotsodhi/jobly/internal/server"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

const (
	// UserKey and IsAdminKey are the canonical Echo context keys under
	// which the auth middleware stores the authenticated identity.
	UserKey    = "username"
	IsAdminKey = "is_admin"

	// LoggerKey is used as the key for storing the request-scoped logger.
	LoggerKey = "logger"
)

// ContextEnhancer enriches each request with a request-scoped logger
// carrying request_id, method, path, ip, trace.id/span.id when a New
// Relic transaction exists, and the username when auth already ran.
//
// The logger is stored in both Echo context (c.Set) and the Go request
// context, so repo/service code that only sees context.Context can
// still log with correlation fields.
type ContextEnhancer struct {
	server *server.Server
}

// NewContextEnhancer creates a new ContextEnhancer using the app
// Server container.
func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns an Echo middleware that builds and stores the
// request-scoped logger.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Empty when the RequestID middleware did not run first.
			requestID := GetRequestID(c)

			contextLogger := ce.server.Logger.With().
				Str("request_id", requestID).
				Str("method", c.Request().Method).
				Str("path", c.Path()). // route template (e.g. "/jobs/:id"), not raw URL
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			// Identity fields appear only when auth ran before this
			// enhancer; on most routes auth is applied per-group later,
			// so request logs carry the username via GetUsername instead.
			if username := GetUsername(c); username != "" {
				contextLogger = contextLogger.With().Str("username", username).Logger()
			}

			c.Set(LoggerKey, &contextLogger)

			// Also store the logger in the Go request context for
			// non-Echo code.
			ctx := context.WithValue(c.Request().Context(), LoggerKey, &contextLogger)

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetUsername reads the authenticated username from Echo context.
// Returns "" for anonymous requests.
func GetUsername(c echo.Context) string {
	if username, ok := c.Get(UserKey).(string); ok {
		return username
	}
	return ""
}

// GetIsAdmin reports whether the authenticated user has admin rights.
// Returns false for anonymous requests.
func GetIsAdmin(c echo.Context) bool {
	if isAdmin, ok := c.Get(IsAdminKey).(bool); ok {
		return isAdmin
	}
	return false
}

// GetLogger retrieves the request-scoped logger from Echo context.
//
// If EnhanceContext middleware didn't run, it returns a no-op logger
// so callers never hit a nil pointer.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}
