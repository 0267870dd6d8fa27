package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/recepta-api/internal/application/dto"
	"github.com/tu-usuario/recepta-api/internal/application/knowledge"
)

// maxUploadBytes límite del tamaño de documento aceptado (10 MB).
const maxUploadBytes = 10 << 20

// KnowledgeHandler expone la ingesta de base de conocimiento: scraping de
// FAQs de un sitio y subida de documentos.
type KnowledgeHandler struct {
	uc *knowledge.UseCase
}

// NewKnowledgeHandler construye el handler de la base de conocimiento.
func NewKnowledgeHandler(uc *knowledge.UseCase) *KnowledgeHandler {
	return &KnowledgeHandler{uc: uc}
}

// ScrapeFAQs godoc
// @Summary      Rastrear FAQs del sitio web y fusionarlas en la sesión
// @Tags         knowledge
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScrapeFAQsRequest  true  "url del sitio"
// @Success      200   {object}  dto.ScrapeFAQsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/knowledge/scrape-faqs [post]
func (h *KnowledgeHandler) ScrapeFAQs(c *fiber.Ctx) error {
	var in dto.ScrapeFAQsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "url es requerida"})
	}
	out, err := h.uc.ScrapeFAQs(c.Context(), GetWorkspaceID(c), in)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "INGEST_ERROR", Message: err.Error()})
	}
	return c.JSON(out)
}

// UploadFile godoc
// @Summary      Subir un documento a la base de conocimiento
// @Tags         knowledge
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "documento (PDF, DOCX, TXT)"
// @Success      201   {object}  dto.UploadFileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/knowledge/files [post]
func (h *KnowledgeHandler) UploadFile(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo multipart 'file' es requerido"})
	}
	if fileHeader.Size > maxUploadBytes {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el documento supera el límite de 10 MB"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el documento"})
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el documento"})
	}

	out, err := h.uc.UploadFile(c.Context(), GetWorkspaceID(c), fileHeader.Filename, content)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "INGEST_ERROR", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
