package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/recepta-api/internal/application/dto"
	"github.com/tu-usuario/recepta-api/internal/application/setup"
	"github.com/tu-usuario/recepta-api/internal/domain/entity"
)

// SetupHandler expone la sesión del asistente de configuración: lectura del
// snapshot, navegación de pasos y merges parciales por sección.
type SetupHandler struct {
	uc *setup.UseCase
}

// NewSetupHandler construye el handler del asistente.
func NewSetupHandler(uc *setup.UseCase) *SetupHandler {
	return &SetupHandler{uc: uc}
}

// sessionJSON responde el snapshot sanitizado: la contraseña en memoria nunca
// sale por HTTP, igual que nunca llega al repositorio.
func sessionJSON(c *fiber.Ctx, s *entity.SetupSession) error {
	return c.JSON(dto.SessionResponse{Session: s.Sanitized()})
}

// Get godoc
// @Summary      Snapshot de la sesión del asistente
// @Tags         setup
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Security     BearerAuth
// @Router       /api/setup [get]
func (h *SetupHandler) Get(c *fiber.Ctx) error {
	return sessionJSON(c, h.uc.Get(c.Context(), GetWorkspaceID(c)))
}

// UpdateStep godoc
// @Summary      Cambiar el paso activo
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateStepRequest  true  "step"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/setup/step [put]
func (h *SetupHandler) UpdateStep(c *fiber.Ctx) error {
	var in dto.UpdateStepRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Step < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "step debe ser >= 1"})
	}
	return sessionJSON(c, h.uc.UpdateStep(c.Context(), GetWorkspaceID(c), in.Step))
}

// CompleteStep godoc
// @Summary      Marcar un paso como completado (idempotente)
// @Tags         setup
// @Produce      json
// @Param        step  path  int  true  "número de paso"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/setup/steps/{step}/complete [post]
func (h *SetupHandler) CompleteStep(c *fiber.Ctx) error {
	step, err := c.ParamsInt("step")
	if err != nil || step < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paso inválido"})
	}
	return sessionJSON(c, h.uc.MarkStepCompleted(c.Context(), GetWorkspaceID(c), step))
}

// Complete godoc
// @Summary      Marcar el asistente como completado
// @Tags         setup
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Security     BearerAuth
// @Router       /api/setup/complete [post]
func (h *SetupHandler) Complete(c *fiber.Ctx) error {
	return sessionJSON(c, h.uc.Complete(c.Context(), GetWorkspaceID(c)))
}

// Reset godoc
// @Summary      Restablecer la sesión a los valores por defecto
// @Tags         setup
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Security     BearerAuth
// @Router       /api/setup/reset [post]
func (h *SetupHandler) Reset(c *fiber.Ctx) error {
	return sessionJSON(c, h.uc.Reset(c.Context(), GetWorkspaceID(c)))
}

// ── Merges parciales por sección ──────────────────────────────────────────────
//
// Todos siguen el mismo contrato: el body es un patch con campos opcionales,
// solo los presentes se aplican, y la respuesta es el snapshot resultante.

// PatchAccount godoc
// @Summary      Merge parcial de la sección account
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AccountPatch  true  "campos a cambiar"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/setup/account [patch]
func (h *SetupHandler) PatchAccount(c *fiber.Ctx) error {
	var p dto.AccountPatch
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return sessionJSON(c, h.uc.UpdateAccount(c.Context(), GetWorkspaceID(c), p))
}

// PatchBusinessProfile godoc
// @Summary      Merge parcial de la sección businessProfile
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BusinessProfilePatch  true  "campos a cambiar; openingHours patchea por día"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/setup/business-profile [patch]
func (h *SetupHandler) PatchBusinessProfile(c *fiber.Ctx) error {
	var p dto.BusinessProfilePatch
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return sessionJSON(c, h.uc.UpdateBusinessProfile(c.Context(), GetWorkspaceID(c), p))
}

// PatchCalendar godoc
// @Summary      Merge parcial de la sección calendar
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalendarPatch  true  "campos a cambiar"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/setup/calendar [patch]
func (h *SetupHandler) PatchCalendar(c *fiber.Ctx) error {
	var p dto.CalendarPatch
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return sessionJSON(c, h.uc.UpdateCalendar(c.Context(), GetWorkspaceID(c), p))
}

// PatchPhone godoc
// @Summary      Merge parcial de la sección phone
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PhonePatch  true  "campos a cambiar"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/setup/phone [patch]
func (h *SetupHandler) PatchPhone(c *fiber.Ctx) error {
	var p dto.PhonePatch
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return sessionJSON(c, h.uc.UpdatePhone(c.Context(), GetWorkspaceID(c), p))
}

// PatchKnowledgeBase godoc
// @Summary      Merge parcial de la sección knowledgeBase
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body  dto.KnowledgeBasePatch  true  "campos a cambiar"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/setup/knowledge-base [patch]
func (h *SetupHandler) PatchKnowledgeBase(c *fiber.Ctx) error {
	var p dto.KnowledgeBasePatch
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return sessionJSON(c, h.uc.UpdateKnowledgeBase(c.Context(), GetWorkspaceID(c), p))
}

// PatchCallFlow godoc
// @Summary      Merge parcial de la sección callFlow
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CallFlowPatch  true  "campos a cambiar"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/setup/call-flow [patch]
func (h *SetupHandler) PatchCallFlow(c *fiber.Ctx) error {
	var p dto.CallFlowPatch
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return sessionJSON(c, h.uc.UpdateCallFlow(c.Context(), GetWorkspaceID(c), p))
}

// PatchReview godoc
// @Summary      Merge parcial de la sección review
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReviewPatch  true  "campos a cambiar"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/setup/review [patch]
func (h *SetupHandler) PatchReview(c *fiber.Ctx) error {
	var p dto.ReviewPatch
	if err := c.BodyParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return sessionJSON(c, h.uc.UpdateReview(c.Context(), GetWorkspaceID(c), p))
}
