package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsernameFromContext(t *testing.T) {
	app := fiber.New()
	app.Get("/claims", func(c *fiber.Ctx) error {
		c.Locals("user", jwt.MapClaims{"username": "dr-anika"})
		return c.SendString(UsernameFromContext(c))
	})
	app.Get("/anonymous", func(c *fiber.Ctx) error {
		return c.SendString(UsernameFromContext(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/claims", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "dr-anika", string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/anonymous", nil))
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, string(body))
}

func TestExtractUserPermissionsFromClaims(t *testing.T) {
	claims := jwt.MapClaims{
		"permissions": []interface{}{"patient-followup.clinician.full-permit", 42},
	}
	permissions := extractUserPermissionsFromClaims(claims)
	assert.True(t, permissions["patient-followup.clinician.full-permit"])
	assert.Len(t, permissions, 1)

	assert.Empty(t, extractUserPermissionsFromClaims(jwt.MapClaims{}))
}
