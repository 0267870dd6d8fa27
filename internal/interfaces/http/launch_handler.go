package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/recepta-api/internal/application/dto"
	"github.com/tu-usuario/recepta-api/internal/application/launch"
	"github.com/tu-usuario/recepta-api/internal/domain"
)

// LaunchHandler expone la activación (go-live) del recepcionista.
type LaunchHandler struct {
	uc *launch.UseCase
}

// NewLaunchHandler construye el handler de lanzamiento.
func NewLaunchHandler(uc *launch.UseCase) *LaunchHandler {
	return &LaunchHandler{uc: uc}
}

// Launch godoc
// @Summary      Activar el recepcionista del workspace
// @Tags         launch
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LaunchRequest  true  "isEnabled"
// @Success      200   {object}  dto.LaunchResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/launch [post]
func (h *LaunchHandler) Launch(c *fiber.Ctx) error {
	var in dto.LaunchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Launch(c.Context(), GetWorkspaceID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotLaunchable) {
			resp := dto.ErrorResponse{Code: "NOT_LAUNCHABLE", Message: "el recepcionista no cumple los requisitos de lanzamiento"}
			var notLaunchable *launch.NotLaunchableError
			if errors.As(err, &notLaunchable) {
				resp.Fields = notLaunchable.Reasons
			}
			return c.Status(fiber.StatusConflict).JSON(resp)
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "LAUNCH_ERROR", Message: err.Error()})
	}
	return c.JSON(out)
}
