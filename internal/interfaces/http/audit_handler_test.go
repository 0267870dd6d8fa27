package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaudit "github.com/tu-usuario/recepta-api/internal/application/audit"
	"github.com/tu-usuario/recepta-api/internal/application/dto"
	"github.com/tu-usuario/recepta-api/internal/domain/entity"
	"github.com/tu-usuario/recepta-api/internal/domain/repository"
	apphttp "github.com/tu-usuario/recepta-api/internal/interfaces/http"
	"github.com/tu-usuario/recepta-api/pkg/jwt"
	"github.com/tu-usuario/recepta-api/pkg/logger"
)

type memAuditRepo struct {
	reports map[string]*entity.AuditReport
	latest  *entity.AuditReport
}

var _ repository.AuditRepository = (*memAuditRepo)(nil)

func (r *memAuditRepo) Save(_ context.Context, report *entity.AuditReport) error {
	if r.reports == nil {
		r.reports = make(map[string]*entity.AuditReport)
	}
	r.reports[report.ID] = report
	r.latest = report
	return nil
}

func (r *memAuditRepo) GetByID(_ context.Context, id string) (*entity.AuditReport, error) {
	return r.reports[id], nil
}

func (r *memAuditRepo) GetLatest(_ context.Context, _ string) (*entity.AuditReport, error) {
	return r.latest, nil
}

type stubGenerator struct{ data []byte }

func (g *stubGenerator) Generate(_ context.Context, _ *entity.AuditReport) ([]byte, error) {
	return g.data, nil
}

// buildAuditApp monta las rutas del auditor igual que el router real:
// /validate pública, el resto detrás del middleware de auth.
func buildAuditApp(repo repository.AuditRepository) *fiber.App {
	h := apphttp.NewAuditHandler(
		appaudit.NewUseCase(repo, logger.Nop()),
		&stubGenerator{data: []byte("%PDF-1.7")},
		&stubGenerator{data: []byte("PK")},
	)
	app := fiber.New()
	api := app.Group("/api/audit")
	api.Post("/validate", h.ValidateStep)
	protegida := api.Group("", apphttp.AuthMiddleware(testJWTSecret))
	protegida.Post("/calculate", h.Calculate)
	protegida.Get("/reports/latest", h.Latest)
	protegida.Get("/reports/:id", h.GetByID)
	protegida.Get("/reports/:id/pdf", h.ExportPDF)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, token string, body any) (int, []byte) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, buf.Bytes()
}

func auditInputs() entity.AuditInputs {
	return entity.AuditInputs{
		BusinessName:             "Clínica Dental Sonrisa",
		AvgMonthlyLeads:          200,
		AvgLeadToBookingRate:     10,
		ResponseTimeToInquiry:    "Within 2 hours",
		AvgCustomerLifetimeValue: 450,
		AfterHoursCallHandling:   "Goes to voicemail",
		AutomatedFollowUpSystem:  "No",
		AdminPingPongHours:       "10-20",
		ContactEmail:             "ana@clinica.co",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas del auditor
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_EsPublica(t *testing.T) {
	app := buildAuditApp(&memAuditRepo{})

	status, body := postJSON(t, app, "/api/audit/validate", "", dto.ValidateStepRequest{
		Step:   1,
		Inputs: entity.AuditInputs{BusinessName: "Sólo nombre"},
	})
	assert.Equal(t, fiber.StatusOK, status, "validar no requiere token: corre antes del registro")

	var out dto.ValidateStepResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.False(t, out.Valid)
	assert.Contains(t, out.Missing, "avgMonthlyLeads")
}

func TestValidate_StepFueraDeRango(t *testing.T) {
	app := buildAuditApp(&memAuditRepo{})
	status, _ := postJSON(t, app, "/api/audit/validate", "", dto.ValidateStepRequest{Step: 4})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCalculate_RequiereToken(t *testing.T) {
	app := buildAuditApp(&memAuditRepo{})
	status, _ := postJSON(t, app, "/api/audit/calculate", "",
		dto.CalculateAuditRequest{Inputs: auditInputs()})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestCalculate_FlujoCompleto(t *testing.T) {
	repo := &memAuditRepo{}
	app := buildAuditApp(repo)
	token, err := jwt.Generate(testJWTSecret, testUserID, testWorkspaceID, "recepta-api", 60)
	require.NoError(t, err)

	status, body := postJSON(t, app, "/api/audit/calculate", token,
		dto.CalculateAuditRequest{Inputs: auditInputs()})
	require.Equal(t, fiber.StatusCreated, status, "cuerpo: %s", body)

	var out dto.AuditReportResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, 41892.0, out.Results.Totals.AnnualUplift)
	assert.Equal(t, testWorkspaceID, repo.latest.WorkspaceID,
		"el workspace sale del token, no del cuerpo")
}

func TestCalculate_PasosIncompletos(t *testing.T) {
	app := buildAuditApp(&memAuditRepo{})
	token, err := jwt.Generate(testJWTSecret, testUserID, testWorkspaceID, "recepta-api", 60)
	require.NoError(t, err)

	in := auditInputs()
	in.ContactEmail = ""
	status, body := postJSON(t, app, "/api/audit/calculate", token,
		dto.CalculateAuditRequest{Inputs: in})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestExportPDF_DescargaConNombre(t *testing.T) {
	repo := &memAuditRepo{}
	app := buildAuditApp(repo)
	token, err := jwt.Generate(testJWTSecret, testUserID, testWorkspaceID, "recepta-api", 60)
	require.NoError(t, err)

	_, body := postJSON(t, app, "/api/audit/calculate", token,
		dto.CalculateAuditRequest{Inputs: auditInputs()})
	var created dto.AuditReportResponse
	require.NoError(t, json.Unmarshal(body, &created))

	req := httptest.NewRequest("GET", "/api/audit/reports/"+created.ID+"/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), created.ID)
}

// Los reportes están acotados al workspace del token: un usuario autenticado
// de otro workspace recibe 404, no el reporte ajeno.
func TestGetByID_OtroWorkspaceEs404(t *testing.T) {
	repo := &memAuditRepo{}
	app := buildAuditApp(repo)
	tokenA, err := jwt.Generate(testJWTSecret, testUserID, testWorkspaceID, "recepta-api", 60)
	require.NoError(t, err)

	_, body := postJSON(t, app, "/api/audit/calculate", tokenA,
		dto.CalculateAuditRequest{Inputs: auditInputs()})
	var created dto.AuditReportResponse
	require.NoError(t, json.Unmarshal(body, &created))

	otroWorkspace := "00000000-0000-0000-0000-00000000dead"
	tokenB, err := jwt.Generate(testJWTSecret, testUserID, otroWorkspace, "recepta-api", 60)
	require.NoError(t, err)

	for _, path := range []string{
		"/api/audit/reports/" + created.ID,
		"/api/audit/reports/" + created.ID + "/pdf",
	} {
		req := httptest.NewRequest("GET", path, nil)
		req.Header.Set("Authorization", "Bearer "+tokenB)
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, "ruta %s", path)
	}

	// El dueño sí lo ve.
	req := httptest.NewRequest("GET", "/api/audit/reports/"+created.ID, nil)
	req.Header.Set("Authorization", "Bearer "+tokenA)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGetByID_NoEncontrado(t *testing.T) {
	app := buildAuditApp(&memAuditRepo{})
	token, err := jwt.Generate(testJWTSecret, testUserID, testWorkspaceID, "recepta-api", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/audit/reports/no-existe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
