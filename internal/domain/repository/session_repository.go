package repository

import (
	"context"

	"github.com/tu-usuario/recepta-api/internal/domain/entity"
)

// SessionRepository define el puerto de persistencia de sesiones de setup (DIP).
// La implementación vive en infrastructure. Una fila por workspace,
// last-write-wins; el caller entrega la sesión ya sanitizada (sin password).
type SessionRepository interface {
	Save(ctx context.Context, workspaceID string, session *entity.SetupSession) error
	Get(ctx context.Context, workspaceID string) (*entity.SetupSession, error)
	Delete(ctx context.Context, workspaceID string) error
}
