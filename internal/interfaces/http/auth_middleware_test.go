package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billartiochichi/billar-api/internal/domain/entity"
	apphttp "github.com/billartiochichi/billar-api/internal/interfaces/http"
	pkgjwt "github.com/billartiochichi/billar-api/pkg/jwt"
)

const authSecret = "secreto-middleware"

// actorApp expone el actor autenticado en /actor, limitado a roles.
func actorApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/actor",
		apphttp.AuthMiddleware(authSecret),
		apphttp.RequireRole(roles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id":  apphttp.GetUserID(c),
				"username": apphttp.GetUsername(c),
				"role":     apphttp.GetRole(c),
			})
		},
	)
	return app
}

func bearer(t *testing.T, userID, username, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(authSecret, userID, username, role, "billar-api-test", 60)
	require.NoError(t, err)
	return "Bearer " + tok
}

func callActor(t *testing.T, app *fiber.App, header string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/actor", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body := map[string]string{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

// ─── Actor en locals ──────────────────────────────────────────────────────────

func TestAuthMiddleware_EmpleadoLlegaConSuUsername(t *testing.T) {
	app := actorApp(entity.RoleAdmin, entity.RoleEmpleado)

	status, body := callActor(t, app, bearer(t, "u-7", "cajero.noche", entity.RoleEmpleado))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "u-7", body["user_id"])
	assert.Equal(t, "cajero.noche", body["username"])
	assert.Equal(t, entity.RoleEmpleado, body["role"])
}

func TestAuthMiddleware_UsernameDistingueActores(t *testing.T) {
	app := actorApp(entity.RoleAdmin, entity.RoleEmpleado)

	_, a := callActor(t, app, bearer(t, "u-1", "ana", entity.RoleAdmin))
	_, b := callActor(t, app, bearer(t, "u-2", "beto", entity.RoleEmpleado))
	assert.Equal(t, "ana", a["username"])
	assert.Equal(t, "beto", b["username"])
	assert.NotEqual(t, a["user_id"], b["user_id"])
}

// ─── Rechazos ─────────────────────────────────────────────────────────────────

func TestRequireRole_Rechazos(t *testing.T) {
	cases := []struct {
		name   string
		roles  []string
		header func(t *testing.T) string
		status int
		code   string
	}{
		{
			name:   "empleado en ruta de admin",
			roles:  []string{entity.RoleAdmin},
			header: func(t *testing.T) string { return bearer(t, "u-7", "cajero.noche", entity.RoleEmpleado) },
			status: http.StatusForbidden,
			code:   "FORBIDDEN",
		},
		{
			name:   "rol fuera del sistema",
			roles:  []string{entity.RoleAdmin, entity.RoleEmpleado},
			header: func(t *testing.T) string { return bearer(t, "u-9", "visita", "invitado") },
			status: http.StatusForbidden,
			code:   "FORBIDDEN",
		},
		{
			name:   "token sin rol",
			roles:  []string{entity.RoleAdmin},
			header: func(t *testing.T) string { return bearer(t, "u-7", "cajero.noche", "") },
			status: http.StatusUnauthorized,
			code:   "MISSING_ROLE",
		},
		{
			name:   "sin header",
			roles:  []string{entity.RoleEmpleado},
			header: func(*testing.T) string { return "" },
			status: http.StatusUnauthorized,
			code:   "MISSING_TOKEN",
		},
		{
			name:   "bearer vacío",
			roles:  []string{entity.RoleEmpleado},
			header: func(*testing.T) string { return "Bearer   " },
			status: http.StatusUnauthorized,
			code:   "MISSING_TOKEN",
		},
		{
			name:   "esquema distinto de bearer",
			roles:  []string{entity.RoleEmpleado},
			header: func(*testing.T) string { return "Basic YWRtaW46YWRtaW4=" },
			status: http.StatusUnauthorized,
			code:   "INVALID_TOKEN",
		},
		{
			name:  "firmado con otro secreto",
			roles: []string{entity.RoleEmpleado},
			header: func(t *testing.T) string {
				tok, err := pkgjwt.Generate("otro-secreto", "u-7", "cajero.noche", entity.RoleEmpleado, "x", 60)
				require.NoError(t, err)
				return "Bearer " + tok
			},
			status: http.StatusUnauthorized,
			code:   "INVALID_TOKEN",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := callActor(t, actorApp(tc.roles...), tc.header(t))
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body["code"])
			assert.Empty(t, body["username"])
		})
	}
}
