package knowledge

import (
	"context"
	"fmt"

	"github.com/tu-usuario/recepta-api/internal/application/dto"
	"github.com/tu-usuario/recepta-api/internal/application/ports"
	"github.com/tu-usuario/recepta-api/internal/application/setup"
	"github.com/tu-usuario/recepta-api/internal/domain/entity"
	"github.com/tu-usuario/recepta-api/pkg/logger"
)

// UseCase ingesta de base de conocimiento: scrape de FAQs del sitio del
// negocio y registro de archivos subidos. Todo pasa por el puerto
// KnowledgeIngestor; un fallo deja la sesión exactamente como estaba.
type UseCase struct {
	ingestor ports.KnowledgeIngestor
	setupUC  *setup.UseCase
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(ingestor ports.KnowledgeIngestor, setupUC *setup.UseCase, log *logger.Logger) *UseCase {
	return &UseCase{ingestor: ingestor, setupUC: setupUC, log: log.Component("knowledge")}
}

// ScrapeFAQs rastrea el sitio, fusiona las FAQs encontradas en la sesión y
// las devuelve. Cero FAQs es flujo normal (pantalla vacía, no error).
func (uc *UseCase) ScrapeFAQs(ctx context.Context, workspaceID string, in dto.ScrapeFAQsRequest) (*dto.ScrapeFAQsResponse, error) {
	faqs, err := uc.ingestor.ScrapeFAQs(ctx, in.URL)
	if err != nil {
		return nil, fmt.Errorf("scrape de FAQs: %w", err)
	}
	if len(faqs) > 0 {
		uc.setupUC.AppendFAQs(ctx, workspaceID, faqs)
	}
	uc.log.Info().Str("workspace_id", workspaceID).Int("faqs", len(faqs)).Msg("scrape completado")
	return &dto.ScrapeFAQsResponse{FAQs: faqs}, nil
}

// UploadFile sube el archivo al servicio de ingesta y registra el descriptor
// en la sesión con estado pending (la indexación es asíncrona del otro lado).
func (uc *UseCase) UploadFile(ctx context.Context, workspaceID, filename string, content []byte) (*dto.UploadFileResponse, error) {
	storageURL, err := uc.ingestor.UploadFile(ctx, filename, content)
	if err != nil {
		return nil, fmt.Errorf("subir archivo %s: %w", filename, err)
	}
	file := entity.UploadedFile{
		Name:   filename,
		URL:    storageURL,
		Status: entity.FileStatusPending,
	}
	uc.setupUC.AppendFile(ctx, workspaceID, file)
	return &dto.UploadFileResponse{File: file}, nil
}
