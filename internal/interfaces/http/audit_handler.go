package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/recepta-api/internal/application/audit"
	"github.com/tu-usuario/recepta-api/internal/application/dto"
	"github.com/tu-usuario/recepta-api/internal/domain"
	"github.com/tu-usuario/recepta-api/internal/domain/entity"
)

// ReportGenerator serializa un reporte de auditoría a un formato descargable.
type ReportGenerator interface {
	Generate(ctx context.Context, report *entity.AuditReport) ([]byte, error)
}

// AuditHandler expone el auditor de ingresos: validación por paso, cálculo
// final, consulta de reportes y exportación PDF/XLSX.
type AuditHandler struct {
	uc   *audit.UseCase
	pdf  ReportGenerator
	xlsx ReportGenerator
}

// NewAuditHandler construye el handler del auditor.
func NewAuditHandler(uc *audit.UseCase, pdf, xlsx ReportGenerator) *AuditHandler {
	return &AuditHandler{uc: uc, pdf: pdf, xlsx: xlsx}
}

// ValidateStep godoc
// @Summary      Validar campos requeridos de un paso
// @Tags         audit
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateStepRequest  true  "step + entradas acumuladas"
// @Success      200   {object}  dto.ValidateStepResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/audit/validate [post]
func (h *AuditHandler) ValidateStep(c *fiber.Ctx) error {
	var in dto.ValidateStepRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Step < 1 || in.Step > 3 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "step debe estar entre 1 y 3"})
	}
	return c.JSON(h.uc.ValidateStep(in))
}

// Calculate godoc
// @Summary      Calcular la proyección financiera y persistir el reporte
// @Tags         audit
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculateAuditRequest  true  "entradas finalizadas"
// @Success      201   {object}  dto.AuditReportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/audit/calculate [post]
func (h *AuditHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateAuditRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Calculate(c.Context(), GetWorkspaceID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hay pasos con campos requeridos incompletos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener un reporte por ID
// @Tags         audit
// @Produce      json
// @Param        id  path  string  true  "ID del reporte"
// @Success      200  {object}  dto.AuditReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/audit/reports/{id} [get]
func (h *AuditHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetWorkspaceID(c), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reporte no encontrado"})
	}
	return c.JSON(out)
}

// Latest godoc
// @Summary      Obtener el reporte más reciente del workspace
// @Tags         audit
// @Produce      json
// @Success      200  {object}  dto.AuditReportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/audit/reports/latest [get]
func (h *AuditHandler) Latest(c *fiber.Ctx) error {
	out, err := h.uc.Latest(c.Context(), GetWorkspaceID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el workspace no tiene reportes"})
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Descargar un reporte en PDF
// @Tags         audit
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del reporte"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/audit/reports/{id}/pdf [get]
func (h *AuditHandler) ExportPDF(c *fiber.Ctx) error {
	return h.export(c, h.pdf, "application/pdf", "auditoria-%s.pdf")
}

// ExportXLSX godoc
// @Summary      Descargar un reporte en XLSX
// @Tags         audit
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  string  true  "ID del reporte"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/audit/reports/{id}/xlsx [get]
func (h *AuditHandler) ExportXLSX(c *fiber.Ctx) error {
	return h.export(c, h.xlsx, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "auditoria-%s.xlsx")
}

func (h *AuditHandler) export(c *fiber.Ctx, gen ReportGenerator, contentType, namePattern string) error {
	id := c.Params("id")
	report, err := h.uc.Report(c.Context(), GetWorkspaceID(c), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if report == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "reporte no encontrado"})
	}
	data, err := gen.Generate(c.Context(), report)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=\""+namePattern+"\"", id))
	return c.Send(data)
}
