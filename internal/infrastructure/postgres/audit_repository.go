package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/recepta-api/internal/domain/entity"
	"github.com/tu-usuario/recepta-api/internal/domain/repository"
)

// Asegura que AuditRepo implementa repository.AuditRepository.
var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación del puerto AuditRepository sobre PostgreSQL.
// Entradas y resultados van como JSONB separados para poder consultar
// cualquiera de los dos lados sin deserializar el otro.
type AuditRepo struct {
	pool *pgxpool.Pool
}

// NewAuditRepository construye el adaptador de persistencia de auditorías.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// Save persiste un reporte nuevo. Los reportes son inmutables: no hay update.
func (r *AuditRepo) Save(ctx context.Context, report *entity.AuditReport) error {
	inputs, err := json.Marshal(report.Inputs)
	if err != nil {
		return fmt.Errorf("serializar inputs: %w", err)
	}
	results, err := json.Marshal(report.Results)
	if err != nil {
		return fmt.Errorf("serializar results: %w", err)
	}
	query := `
		INSERT INTO audit_reports (id, workspace_id, inputs, results, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err = r.pool.Exec(ctx, query, report.ID, report.WorkspaceID, inputs, results, report.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit report: %w", err)
	}
	return nil
}

// GetByID obtiene un reporte por ID; nil si no existe.
func (r *AuditRepo) GetByID(ctx context.Context, id string) (*entity.AuditReport, error) {
	query := `
		SELECT id, workspace_id, inputs, results, created_at
		FROM audit_reports WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetLatest obtiene el reporte más reciente del workspace; nil si no hay ninguno.
func (r *AuditRepo) GetLatest(ctx context.Context, workspaceID string) (*entity.AuditReport, error) {
	query := `
		SELECT id, workspace_id, inputs, results, created_at
		FROM audit_reports WHERE workspace_id = $1
		ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(r.pool.QueryRow(ctx, query, workspaceID))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *AuditRepo) scanOne(row rowScanner) (*entity.AuditReport, error) {
	var report entity.AuditReport
	var inputs, results []byte
	err := row.Scan(&report.ID, &report.WorkspaceID, &inputs, &results, &report.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer audit report: %w", err)
	}
	if err := json.Unmarshal(inputs, &report.Inputs); err != nil {
		return nil, fmt.Errorf("deserializar inputs: %w", err)
	}
	if err := json.Unmarshal(results, &report.Results); err != nil {
		return nil, fmt.Errorf("deserializar results: %w", err)
	}
	return &report, nil
}
