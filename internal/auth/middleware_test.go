package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campus-auth/internal/domain"
	apperrors "github.com/campuskit/campus-auth/pkg/util"
)

func newGateApp(tm *TokenManager, allowed ...domain.Role) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code, "message": domainErr.Message},
			})
		},
	})

	middleware := NewAuthMiddleware(tm)
	app.Get("/protected", middleware.Handle, RequireRoles(allowed...), func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewInternalError(nil)
		}
		return c.JSON(fiber.Map{"subject": principal.SubjectID, "role": principal.Role})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authorization string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", 60)
	app := newGateApp(tm, domain.RoleAdmin)

	t.Run("missing header", func(t *testing.T) {
		status, _ := doRequest(t, app, "")
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("malformed header", func(t *testing.T) {
		status, _ := doRequest(t, app, "Token abc")
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("expired token", func(t *testing.T) {
		token, _, err := tm.GenerateTokenWithTTL("user-1", domain.RoleAdmin, 0)
		require.NoError(t, err)
		status, _ := doRequest(t, app, "Bearer "+token)
		require.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("token signed elsewhere", func(t *testing.T) {
		forged, _, err := NewTokenManager("attacker-secret", 60).GenerateToken("user-1", domain.RoleAdmin)
		require.NoError(t, err)
		status, _ := doRequest(t, app, "Bearer "+forged)
		require.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestRequireRoles(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager("test-secret", 60)

	studentToken, _, err := tm.GenerateToken("student-1", domain.RoleStudent)
	require.NoError(t, err)

	t.Run("role outside the allowed set", func(t *testing.T) {
		app := newGateApp(tm, domain.RoleAdmin)
		status, body := doRequest(t, app, "Bearer "+studentToken)
		require.Equal(t, http.StatusForbidden, status)
		require.Contains(t, body, "FORBIDDEN")
	})

	t.Run("role inside the allowed set", func(t *testing.T) {
		app := newGateApp(tm, domain.RoleStudent, domain.RoleAdmin)
		status, body := doRequest(t, app, "Bearer "+studentToken)
		require.Equal(t, http.StatusOK, status)
		require.Contains(t, body, "student-1")
		require.Contains(t, body, string(domain.RoleStudent))
	})

	t.Run("admin passes an admin gate", func(t *testing.T) {
		adminToken, _, err := tm.GenerateToken("admin-1", domain.RoleAdmin)
		require.NoError(t, err)
		app := newGateApp(tm, domain.RoleAdmin)
		status, _ := doRequest(t, app, "Bearer "+adminToken)
		require.Equal(t, http.StatusOK, status)
	})
}
