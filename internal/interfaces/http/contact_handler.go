package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/recepta-api/internal/application/contact"
	"github.com/tu-usuario/recepta-api/internal/application/dto"
)

// ContactHandler expone el formulario público de contacto/oferta.
type ContactHandler struct {
	uc *contact.UseCase
}

// NewContactHandler construye el handler de contacto.
func NewContactHandler(uc *contact.UseCase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

// Send godoc
// @Summary      Reenviar un formulario de contacto al webhook
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "payload JSON arbitrario del formulario"
// @Success      200   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/contact [post]
func (h *ContactHandler) Send(c *fiber.Ctx) error {
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el formulario está vacío"})
	}
	out, err := h.uc.Send(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "WEBHOOK_ERROR", Message: err.Error()})
	}
	return c.JSON(out)
}
