package http_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/tu-usuario/recepta-api/internal/interfaces/http"
	"github.com/tu-usuario/recepta-api/pkg/jwt"
)

const (
	testJWTSecret   = "secreto-de-test-no-usar-en-produccion"
	testUserID      = "00000000-0000-0000-0000-000000000001"
	testWorkspaceID = "00000000-0000-0000-0000-000000000002"
)

// buildTestApp monta una ruta protegida que devuelve los locals extraídos
// por el middleware, para inspeccionarlos desde el test.
func buildTestApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/protegida", apphttp.AuthMiddleware(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId":      apphttp.GetUserID(c),
			"workspaceId": apphttp.GetWorkspaceID(c),
		})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest("GET", "/protegida", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	return resp.StatusCode, payload
}

// ──────────────────────────────────────────────────────────────────────────────
// Middleware de autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValidoExtraeLocals(t *testing.T) {
	token, err := jwt.Generate(testJWTSecret, testUserID, testWorkspaceID, "recepta-api", 60)
	require.NoError(t, err)

	status, payload := doRequest(t, buildTestApp(testJWTSecret), "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, testUserID, payload["userId"])
	assert.Equal(t, testWorkspaceID, payload["workspaceId"],
		"el workspace viaja en el token y llega a los handlers")
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	status, payload := doRequest(t, buildTestApp(testJWTSecret), "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", payload["code"])
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	status, payload := doRequest(t, buildTestApp(testJWTSecret), "Token abc123")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", payload["code"])
}

func TestAuthMiddleware_TokenBasura(t *testing.T) {
	status, payload := doRequest(t, buildTestApp(testJWTSecret), "Bearer no.es.un.jwt")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", payload["code"])
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	token, err := jwt.Generate(testJWTSecret, testUserID, testWorkspaceID, "recepta-api", -1)
	require.NoError(t, err)

	status, payload := doRequest(t, buildTestApp(testJWTSecret), "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", payload["code"])
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("otro-secreto", testUserID, testWorkspaceID, "recepta-api", 60)
	require.NoError(t, err)

	status, payload := doRequest(t, buildTestApp(testJWTSecret), "Bearer "+token)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", payload["code"])
}
