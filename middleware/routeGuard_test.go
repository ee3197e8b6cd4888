package middleware

import (
	"academy/config"
	"academy/models"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardApp() *fiber.App {
	app := fiber.New()
	app.Use(RouteGuard())
	app.All("/*", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func guardTestToken(t *testing.T, userID uint, defaultRole string, roles []string) string {
	t.Helper()
	token, err := GenerateJWT(userID, "Test User", "test@example.com", defaultRole, roles)
	require.NoError(t, err)
	return token
}

func guardRequest(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func init() {
	config.AppConfig = &config.Config{JWTKey: "guard-test-secret"}
}

func TestGuardAllowsPublicRoutes(t *testing.T) {
	app := newGuardApp()

	for _, path := range []string{"/", "/courses", "/projects", "/verify/VP-123-0001", "/api/auth/login"} {
		resp := guardRequest(t, app, path, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp := guardRequest(t, app, "/", "")
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestGuardRedirectsUnauthenticatedAdminTraffic(t *testing.T) {
	app := newGuardApp()

	resp := guardRequest(t, app, "/admin/users", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login?callbackUrl=/admin/users", resp.Header.Get("Location"))
}

func TestGuardRedirectsUnauthenticatedDashboardTraffic(t *testing.T) {
	app := newGuardApp()

	resp := guardRequest(t, app, "/dashboard", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?callbackUrl=/dashboard", resp.Header.Get("Location"))
}

func TestGuardEnforcesAdminOnlyPrefixes(t *testing.T) {
	app := newGuardApp()

	student := guardTestToken(t, 1, models.RoleStudent, []string{models.RoleStudent})
	resp := guardRequest(t, app, "/admin/users", student)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	admin := guardTestToken(t, 2, models.RoleAdmin, []string{models.RoleAdmin})
	resp = guardRequest(t, app, "/admin/users", admin)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuardGrantsMentorsContentEditorAccessOnly(t *testing.T) {
	app := newGuardApp()

	mentor := guardTestToken(t, 3, models.RoleMentor, []string{models.RoleMentor, models.RoleStudent})

	resp := guardRequest(t, app, "/admin/courses", mentor)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = guardRequest(t, app, "/admin/users", mentor)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	// Unlisted admin prefixes default to admin only
	resp = guardRequest(t, app, "/admin/hub", mentor)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

func TestGuardRedirectsAuthenticatedUsersOffLoginPages(t *testing.T) {
	app := newGuardApp()

	admin := guardTestToken(t, 2, models.RoleAdmin, []string{models.RoleAdmin})
	resp := guardRequest(t, app, "/login", admin)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/hub", resp.Header.Get("Location"))

	student := guardTestToken(t, 1, models.RoleStudent, []string{models.RoleStudent})
	resp = guardRequest(t, app, "/login", student)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestGuardAcceptsBearerHeader(t *testing.T) {
	app := newGuardApp()

	admin := guardTestToken(t, 2, models.RoleAdmin, []string{models.RoleAdmin})
	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuardIgnoresInvalidTokens(t *testing.T) {
	app := newGuardApp()

	resp := guardRequest(t, app, "/admin/users", "not-a-jwt")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login?callbackUrl=/admin/users", resp.Header.Get("Location"))
}

func TestSanitizePath(t *testing.T) {
	assert.Equal(t, "/admin/users", sanitizePath("/admin/users"))
	assert.Equal(t, "/admin//users", sanitizePath("/admin/../users"))
	assert.Equal(t, "/scriptalert(1)/script", sanitizePath("/<script>alert(1)</script>"))
	assert.Equal(t, "/redirect?to=alert(1)", sanitizePath("/redirect?to=JavaScript:alert(1)"))
}
