package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/voltclass/labtrack-api/internal/dto"
	"github.com/voltclass/labtrack-api/internal/service"
)

func setupProtectedApp(sessions *service.SessionManager) *fiber.App {
	app := fiber.New()
	app.Use(SessionProtected(sessions))
	app.Get("/me", func(c *fiber.Ctx) error {
		return c.SendString(fmt.Sprintf("%v:%v", c.Locals("user_id"), c.Locals("user_role")))
	})
	return app
}

func TestSessionProtectedAcceptsValidToken(t *testing.T) {
	sessions := service.NewSessionManager("test-secret", time.Hour)
	app := setupProtectedApp(sessions)

	token, err := sessions.Issue(dto.UserProfile{ID: 7, Role: "student", FullName: "Chemistry Student"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSessionProtectedRejectsMissingHeader(t *testing.T) {
	sessions := service.NewSessionManager("test-secret", time.Hour)
	app := setupProtectedApp(sessions)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSessionProtectedRejectsForgedToken(t *testing.T) {
	sessions := service.NewSessionManager("test-secret", time.Hour)
	forger := service.NewSessionManager("other-secret", time.Hour)
	app := setupProtectedApp(sessions)

	token, err := forger.Issue(dto.UserProfile{ID: 1, Role: "admin"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
