package jwtware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/kultura-id/go-auth/middleware/jwtware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roleRank = map[string]int{"user": 0, "manager": 1, "admin": 2}

type stubClaims struct {
	uid  string
	role string
}

func (s stubClaims) Subject() string { return s.uid }
func (s stubClaims) UserID() string  { return s.uid }
func (s stubClaims) Role() string    { return s.role }

func (s stubClaims) HasRole(role string) bool { return s.role == role }

func (s stubClaims) IsAtLeast(minRole string) bool {
	return roleRank[s.role] >= roleRank[minRole]
}

type stubValidator struct {
	claims jwtware.AuthClaims
	err    error
}

func (v stubValidator) Validate(tokenString string) (jwtware.AuthClaims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func newTestApp(cfg jwtware.Config) *fiber.App {
	app := fiber.New()
	app.Get("/protected", jwtware.New(cfg), func(c *fiber.Ctx) error {
		claims, _ := c.Locals("user").(jwtware.AuthClaims)
		if claims == nil {
			return c.SendString("no claims")
		}
		return c.SendString(claims.UserID())
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authorization string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestMiddlewareResolvesClaims(t *testing.T) {
	app := newTestApp(jwtware.Config{
		TokenValidator: stubValidator{claims: stubClaims{uid: "user-1", role: "user"}},
	})

	resp := doRequest(t, app, "Bearer sometoken")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddlewareMissingToken(t *testing.T) {
	app := newTestApp(jwtware.Config{
		TokenValidator: stubValidator{claims: stubClaims{uid: "user-1", role: "user"}},
	})

	resp := doRequest(t, app, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMiddlewareWrongScheme(t *testing.T) {
	app := newTestApp(jwtware.Config{
		TokenValidator: stubValidator{claims: stubClaims{uid: "user-1", role: "user"}},
	})

	resp := doRequest(t, app, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMiddlewareRejectedToken(t *testing.T) {
	app := newTestApp(jwtware.Config{
		TokenValidator: stubValidator{err: assert.AnError},
	})

	resp := doRequest(t, app, "Bearer sometoken")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareCustomErrorHandler(t *testing.T) {
	app := newTestApp(jwtware.Config{
		TokenValidator: stubValidator{err: assert.AnError},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusTeapot).SendString(err.Error())
		},
	})

	resp := doRequest(t, app, "Bearer sometoken")
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}

func TestMiddlewareFilterSkips(t *testing.T) {
	app := newTestApp(jwtware.Config{
		TokenValidator: stubValidator{err: assert.AnError},
		Filter:         func(c *fiber.Ctx) bool { return true },
	})

	// the validator would reject, but the filter bypasses the middleware
	resp := doRequest(t, app, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddlewareRequiredRole(t *testing.T) {
	t.Run("matching role", func(t *testing.T) {
		app := newTestApp(jwtware.Config{
			TokenValidator: stubValidator{claims: stubClaims{uid: "user-1", role: "admin"}},
			RequiredRole:   "admin",
		})

		resp := doRequest(t, app, "Bearer sometoken")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("mismatched role", func(t *testing.T) {
		app := newTestApp(jwtware.Config{
			TokenValidator: stubValidator{claims: stubClaims{uid: "user-1", role: "user"}},
			RequiredRole:   "admin",
		})

		resp := doRequest(t, app, "Bearer sometoken")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestMiddlewareMinimumRole(t *testing.T) {
	t.Run("higher role passes", func(t *testing.T) {
		app := newTestApp(jwtware.Config{
			TokenValidator: stubValidator{claims: stubClaims{uid: "user-1", role: "admin"}},
			MinimumRole:    "manager",
		})

		resp := doRequest(t, app, "Bearer sometoken")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("lower role is rejected", func(t *testing.T) {
		app := newTestApp(jwtware.Config{
			TokenValidator: stubValidator{claims: stubClaims{uid: "user-1", role: "user"}},
			MinimumRole:    "manager",
		})

		resp := doRequest(t, app, "Bearer sometoken")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestMiddlewareRoleChecker(t *testing.T) {
	app := newTestApp(jwtware.Config{
		TokenValidator: stubValidator{claims: stubClaims{uid: "user-1", role: "admin"}},
		RequiredRole:   "admin",
		RoleChecker: func(claims jwtware.AuthClaims, role string) bool {
			return false
		},
	})

	resp := doRequest(t, app, "Bearer sometoken")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestExtractRawToken(t *testing.T) {
	app := fiber.New()

	extract := func(lookup, scheme string) fiber.Handler {
		extractors := jwtware.GetExtractors(lookup, scheme)
		return func(c *fiber.Ctx) error {
			raw, err := jwtware.ExtractRawToken(c, extractors)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).SendString(err.Error())
			}
			return c.SendString(raw)
		}
	}

	app.Get("/header", extract("header:Authorization", "Bearer"))
	app.Get("/query", extract("query:token", ""))
	app.Get("/cookie", extract("cookie:jwt", ""))
	app.Get("/chain", extract("header:Authorization,query:token", "Bearer"))

	body := func(t *testing.T, resp *http.Response) string {
		t.Helper()
		defer resp.Body.Close()
		buf := make([]byte, 256)
		n, _ := resp.Body.Read(buf)
		return string(buf[:n])
	}

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/header", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer abc123")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "abc123", body(t, resp))
	})

	t.Run("query parameter", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/query?token=abc123", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "abc123", body(t, resp))
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cookie", nil)
		req.AddCookie(&http.Cookie{Name: "jwt", Value: "abc123"})

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "abc123", body(t, resp))
	})

	t.Run("chained lookup falls through to the query", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/chain?token=abc123", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "abc123", body(t, resp))
	})

	t.Run("nothing to extract", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/header", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
