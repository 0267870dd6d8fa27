package ports

import (
	"context"

	"github.com/tu-usuario/recepta-api/internal/domain/entity"
)

// KnowledgeIngestor puerto del servicio de ingesta de base de conocimiento.
type KnowledgeIngestor interface {
	// ScrapeFAQs rastrea el sitio indicado y devuelve los pares pregunta/respuesta encontrados.
	ScrapeFAQs(ctx context.Context, siteURL string) ([]entity.FAQ, error)
	// UploadFile sube el contenido y devuelve la URL de almacenamiento asignada.
	UploadFile(ctx context.Context, filename string, content []byte) (string, error)
}

// LaunchNotifier puerto del endpoint de activación (go-live) del recepcionista.
type LaunchNotifier interface {
	Launch(ctx context.Context, workspaceID string, enabled bool) error
}

// ContactRelay puerto del webhook genérico de formularios de contacto/oferta.
// SpotsLeft viene en nil si el webhook no reporta capacidad restante.
type ContactRelay interface {
	Send(ctx context.Context, payload map[string]interface{}) (spotsLeft *int, err error)
}
