package middleware

import (
	"strings"
	"time"

	"github.com/agamjotsodhi/jobly/internal/errs"
	"github.com/agamjotsodhi/jobly/internal/lib/token"
	"github.com/agamjotsodhi/jobly/internal/server"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware holds the app Server so middleware can access shared
// deps like Logger and Config.
type AuthMiddleware struct {
	server *server.Server
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// Authenticate reads the Authorization header and, when it carries a
// valid bearer token, stores the username and admin flag in Echo
// context. It never rejects: routes that require identity enforce it
// with RequireLoggedIn / RequireAdmin / RequireAdminOrSelf, so open
// endpoints keep working with a missing or bad token.
func (auth *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return next(c)
		}

		start := time.Now()

		claims, err := token.Verify(auth.server.Config, tokenString)
		if err != nil {
			// Anonymous from here on; enforcement middleware decides
			// whether that matters for this route.
			GetLogger(c).Warn().
				Err(err).
				Str("function", "Authenticate").
				Dur("duration", time.Since(start)).
				Msg("rejected access token")
			return next(c)
		}

		c.Set(UserKey, claims.Username)
		c.Set(IsAdminKey, claims.IsAdmin)

		GetLogger(c).Debug().
			Str("function", "Authenticate").
			Str("username", claims.Username).
			Dur("duration", time.Since(start)).
			Msg("user authenticated")

		return next(c)
	}
}

// RequireLoggedIn rejects requests with no authenticated user (401).
func (auth *AuthMiddleware) RequireLoggedIn(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if GetUsername(c) == "" {
			return errs.NewUnauthorizedError("Unauthorized", false)
		}
		return next(c)
	}
}

// RequireAdmin rejects requests with no authenticated user (401) and
// authenticated non-admins (403).
func (auth *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		username := GetUsername(c)
		if username == "" {
			return errs.NewUnauthorizedError("Unauthorized", false)
		}
		if !GetIsAdmin(c) {
			return errs.NewForbiddenError("Admin privileges required", false)
		}
		return next(c)
	}
}

// RequireAdminOrSelf allows admins and the user named by the given
// route parameter. Anyone else authenticated gets 403; anonymous
// requests get 401.
func (auth *AuthMiddleware) RequireAdminOrSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username := GetUsername(c)
			if username == "" {
				return errs.NewUnauthorizedError("Unauthorized", false)
			}
			if !GetIsAdmin(c) && c.Param(param) != username {
				return errs.NewForbiddenError("You can only act on your own account", false)
			}
			return next(c)
		}
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// Returns "" when the header is absent or not a bearer scheme.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}

	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(rest)
}
