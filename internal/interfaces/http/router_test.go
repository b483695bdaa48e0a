package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/dmorales/batch-records-api/internal/interfaces/http"
)

// buildRouterApp monta el router completo. Los casos de uso quedan en
// nil: estos tests solo verifican middlewares, nunca llegan más allá
// del BodyParser.
func buildRouterApp() *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{JWTSecret: testJWTSecret})
	return app
}

// postJSON lanza un POST con cuerpo JSON malformado: si la petición
// atraviesa los middlewares, el handler responde 400 sin tocar el caso
// de uso.
func postJSON(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización por rol en las rutas de cálculo de lote
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_BatchCalculate_VerificadorProhibido(t *testing.T) {
	app := buildRouterApp()

	for _, path := range []string{"/api/batch/calculate", "/api/batch/calculate-packaging"} {
		resp := postJSON(t, app, path, tokenForRole(t, "verificador"))
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode,
			"un verificador no calcula lotes: %s", path)
	}
}

func TestRouter_BatchCalculate_OperadorYAdminPasan(t *testing.T) {
	app := buildRouterApp()

	for _, role := range []string{"operator", "admin"} {
		for _, path := range []string{"/api/batch/calculate", "/api/batch/calculate-packaging"} {
			resp := postJSON(t, app, path, tokenForRole(t, role))
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
				"rol %s debe atravesar el middleware en %s", role, path)
		}
	}
}

func TestRouter_BatchCalculateTime_SinRestriccionDeRol(t *testing.T) {
	app := buildRouterApp()

	resp := postJSON(t, app, "/api/batch/calculate-time", tokenForRole(t, "verificador"))
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"el cálculo de tiempo no restringe por rol")
}
