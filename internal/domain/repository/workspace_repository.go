package repository

import "github.com/tu-usuario/recepta-api/internal/domain/entity"

// WorkspaceRepository define el puerto de persistencia para Workspace.
type WorkspaceRepository interface {
	Create(ws *entity.Workspace) error
	GetByID(id string) (*entity.Workspace, error)
	UpdateStatus(id, status string) error
}
