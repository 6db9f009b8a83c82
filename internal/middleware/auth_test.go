package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agamjotsodhi/jobly/internal/config"
	"github.com/agamjotsodhi/jobly/internal/errs"
	"github.com/agamjotsodhi/jobly/internal/lib/token"
	"github.com/agamjotsodhi/jobly/internal/server"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthMiddleware(t *testing.T) (*AuthMiddleware, *config.Config) {
	t.Helper()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			SecretKey: "test-secret",
			TokenTTL:  time.Hour,
		},
	}
	return NewAuthMiddleware(&server.Server{Config: cfg}), cfg
}

func newTestContext(t *testing.T, authHeader string) echo.Context {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuthenticate(t *testing.T) {
	auth, cfg := testAuthMiddleware(t)

	t.Run("valid token sets identity", func(t *testing.T) {
		signed, err := token.Issue(cfg, "lawler", true)
		require.NoError(t, err)

		c := newTestContext(t, "Bearer "+signed)

		err = auth.Authenticate(okHandler)(c)
		require.NoError(t, err)
		assert.Equal(t, "lawler", GetUsername(c))
		assert.True(t, GetIsAdmin(c))
	})

	t.Run("missing header stays anonymous", func(t *testing.T) {
		c := newTestContext(t, "")

		err := auth.Authenticate(okHandler)(c)
		require.NoError(t, err)
		assert.Empty(t, GetUsername(c))
		assert.False(t, GetIsAdmin(c))
	})

	t.Run("invalid token stays anonymous", func(t *testing.T) {
		c := newTestContext(t, "Bearer garbage.token.here")

		err := auth.Authenticate(okHandler)(c)
		require.NoError(t, err)
		assert.Empty(t, GetUsername(c))
	})

	t.Run("token signed with another secret stays anonymous", func(t *testing.T) {
		otherCfg := &config.Config{Auth: config.AuthConfig{SecretKey: "other", TokenTTL: time.Hour}}
		signed, err := token.Issue(otherCfg, "intruder", true)
		require.NoError(t, err)

		c := newTestContext(t, "Bearer "+signed)

		err = auth.Authenticate(okHandler)(c)
		require.NoError(t, err)
		assert.Empty(t, GetUsername(c))
	})
}

func TestRequireLoggedIn(t *testing.T) {
	auth, _ := testAuthMiddleware(t)

	t.Run("anonymous gets 401", func(t *testing.T) {
		c := newTestContext(t, "")

		err := auth.RequireLoggedIn(okHandler)(c)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	})

	t.Run("logged in passes", func(t *testing.T) {
		c := newTestContext(t, "")
		c.Set(UserKey, "lawler")

		assert.NoError(t, auth.RequireLoggedIn(okHandler)(c))
	})
}

func TestRequireAdmin(t *testing.T) {
	auth, _ := testAuthMiddleware(t)

	t.Run("anonymous gets 401", func(t *testing.T) {
		c := newTestContext(t, "")

		err := auth.RequireAdmin(okHandler)(c)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	})

	t.Run("non-admin gets 403", func(t *testing.T) {
		c := newTestContext(t, "")
		c.Set(UserKey, "lawler")
		c.Set(IsAdminKey, false)

		err := auth.RequireAdmin(okHandler)(c)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Status)
	})

	t.Run("admin passes", func(t *testing.T) {
		c := newTestContext(t, "")
		c.Set(UserKey, "lawler")
		c.Set(IsAdminKey, true)

		assert.NoError(t, auth.RequireAdmin(okHandler)(c))
	})
}

func TestRequireAdminOrSelf(t *testing.T) {
	auth, _ := testAuthMiddleware(t)

	newParamContext := func(username string) echo.Context {
		c := newTestContext(t, "")
		c.SetParamNames("username")
		c.SetParamValues("target")
		if username != "" {
			c.Set(UserKey, username)
		}
		return c
	}

	mw := auth.RequireAdminOrSelf("username")

	t.Run("anonymous gets 401", func(t *testing.T) {
		c := newParamContext("")

		err := mw(okHandler)(c)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	})

	t.Run("other user gets 403", func(t *testing.T) {
		c := newParamContext("someone-else")

		err := mw(okHandler)(c)

		var httpErr *errs.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Status)
	})

	t.Run("self passes", func(t *testing.T) {
		c := newParamContext("target")

		assert.NoError(t, mw(okHandler)(c))
	})

	t.Run("admin passes for any target", func(t *testing.T) {
		c := newParamContext("someone-else")
		c.Set(IsAdminKey, true)

		assert.NoError(t, mw(okHandler)(c))
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer abc", "abc"},
		{"missing scheme", "abc.def.ghi", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz", ""},
		{"empty", "", ""},
		{"scheme only", "Bearer ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t, tt.header)
			assert.Equal(t, tt.want, bearerToken(c))
		})
	}
}
