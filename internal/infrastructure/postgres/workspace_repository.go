package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/recepta-api/internal/domain/entity"
	"github.com/tu-usuario/recepta-api/internal/domain/repository"
)

var _ repository.WorkspaceRepository = (*WorkspaceRepo)(nil)

// WorkspaceRepo implementación del puerto WorkspaceRepository sobre PostgreSQL.
type WorkspaceRepo struct {
	pool *pgxpool.Pool
}

// NewWorkspaceRepository construye el adaptador de persistencia de workspaces.
func NewWorkspaceRepository(pool *pgxpool.Pool) *WorkspaceRepo {
	return &WorkspaceRepo{pool: pool}
}

// Create inserta un workspace nuevo.
func (r *WorkspaceRepo) Create(ws *entity.Workspace) error {
	query := `
		INSERT INTO workspaces (id, business_name, timezone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(context.Background(), query,
		ws.ID, ws.BusinessName, ws.Timezone, ws.Status, ws.CreatedAt, ws.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert workspace: %w", err)
	}
	return nil
}

// GetByID obtiene un workspace por ID; nil si no existe.
func (r *WorkspaceRepo) GetByID(id string) (*entity.Workspace, error) {
	query := `
		SELECT id, business_name, timezone, status, created_at, updated_at
		FROM workspaces WHERE id = $1`
	var ws entity.Workspace
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&ws.ID, &ws.BusinessName, &ws.Timezone, &ws.Status, &ws.CreatedAt, &ws.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer workspace: %w", err)
	}
	return &ws, nil
}

// UpdateStatus cambia el estado del workspace (onboarding, live, suspended).
func (r *WorkspaceRepo) UpdateStatus(id, status string) error {
	query := `UPDATE workspaces SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("actualizar estado workspace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("workspace %s no encontrado", id)
	}
	return nil
}
