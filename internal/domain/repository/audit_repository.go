package repository

import (
	"context"

	"github.com/tu-usuario/recepta-api/internal/domain/entity"
)

// AuditRepository define el puerto de persistencia de reportes de auditoría.
type AuditRepository interface {
	Save(ctx context.Context, report *entity.AuditReport) error
	GetByID(ctx context.Context, id string) (*entity.AuditReport, error)
	GetLatest(ctx context.Context, workspaceID string) (*entity.AuditReport, error)
}
