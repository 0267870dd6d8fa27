package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/recepta-api/internal/domain/entity"
	"github.com/tu-usuario/recepta-api/internal/domain/repository"
)

// Asegura que SessionRepo implementa repository.SessionRepository.
var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación del puerto SessionRepository sobre PostgreSQL.
// La sesión completa se guarda como un documento JSONB por workspace
// (last-write-wins); el caller entrega la sesión ya sanitizada.
type SessionRepo struct {
	pool *pgxpool.Pool
}

// NewSessionRepository construye el adaptador de persistencia de sesiones.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

// Save inserta o reemplaza la sesión del workspace.
func (r *SessionRepo) Save(ctx context.Context, workspaceID string, session *entity.SetupSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	query := `
		INSERT INTO setup_sessions (workspace_id, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (workspace_id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	_, err = r.pool.Exec(ctx, query, workspaceID, data, time.Now())
	if err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Get obtiene la sesión del workspace; nil si aún no se ha persistido ninguna.
func (r *SessionRepo) Get(ctx context.Context, workspaceID string) (*entity.SetupSession, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM setup_sessions WHERE workspace_id = $1`, workspaceID).Scan(&data)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	var s entity.SetupSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("deserializar sesión: %w", err)
	}
	return &s, nil
}

// Delete elimina la sesión del workspace.
func (r *SessionRepo) Delete(ctx context.Context, workspaceID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM setup_sessions WHERE workspace_id = $1`, workspaceID)
	if err != nil {
		return fmt.Errorf("borrar sesión: %w", err)
	}
	return nil
}
