package middleware

import (
	"net/http/httptest"
	"testing"

	"kudos/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshJWT(42)
	require.NoError(t, err)

	userID, err := ParseRefreshJWT(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)
}

func TestParseRefreshRejectsAccessToken(t *testing.T) {
	// Access tokens lack the refresh marker and must not refresh a session.
	token, err := GenerateJWT(42, "Ada Byron", "EMPLOYEE", "ada@test.local")
	require.NoError(t, err)

	_, err = ParseRefreshJWT(token)
	assert.Error(t, err)
}

func TestJWTMiddlewareSetsLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userId").(uint)
		role, _ := c.Locals("role").(string)
		return c.JSON(fiber.Map{"userId": userID, "role": role})
	})

	token, err := GenerateJWT(7, "Ada Byron", "ADMIN", "ada@test.local")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestJWTMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", JWTMiddleware, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
