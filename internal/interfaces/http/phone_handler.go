package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/recepta-api/internal/application/dto"
	"github.com/tu-usuario/recepta-api/internal/application/phone"
	"github.com/tu-usuario/recepta-api/internal/domain"
)

// PhoneHandler expone la búsqueda y compra de números del recepcionista.
type PhoneHandler struct {
	uc *phone.UseCase
}

// NewPhoneHandler construye el handler de numeración.
func NewPhoneHandler(uc *phone.UseCase) *PhoneHandler {
	return &PhoneHandler{uc: uc}
}

// Search godoc
// @Summary      Buscar números disponibles
// @Tags         phone
// @Produce      json
// @Param        country   query  string  false  "código o nombre de país (default US)"
// @Param        areaCode  query  string  false  "prefijo local"
// @Success      200  {object}  dto.SearchNumbersResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/phone/numbers/search [get]
func (h *PhoneHandler) Search(c *fiber.Ctx) error {
	out, err := h.uc.Search(c.Context(), c.Query("country", "US"), c.Query("areaCode"))
	if err != nil {
		if errors.Is(err, domain.ErrProviderUnavailable) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PROVIDER_ERROR", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Purchase godoc
// @Summary      Comprar un número y asignarlo a la sesión
// @Tags         phone
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurchaseNumberRequest  true  "phoneNumber en E.164"
// @Success      200   {object}  dto.PurchaseNumberResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/phone/numbers/purchase [post]
func (h *PhoneHandler) Purchase(c *fiber.Ctx) error {
	var in dto.PurchaseNumberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PhoneNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "phoneNumber es requerido"})
	}
	out, err := h.uc.Purchase(c.Context(), GetWorkspaceID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrProviderUnavailable) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "PROVIDER_ERROR", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
