package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema crea las tablas requeridas si no existen. Idempotente; se
// ejecuta en el arranque (no hay migraciones versionadas en este servicio).
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS workspaces (
			id UUID PRIMARY KEY,
			business_name TEXT NOT NULL,
			timezone TEXT NOT NULL DEFAULT 'America/Bogota',
			status TEXT NOT NULL DEFAULT 'onboarding',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS setup_sessions (
			workspace_id UUID PRIMARY KEY REFERENCES workspaces(id) ON DELETE CASCADE,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS audit_reports (
			id UUID PRIMARY KEY,
			workspace_id UUID NOT NULL,
			inputs JSONB NOT NULL,
			results JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS audit_reports_workspace_idx ON audit_reports (workspace_id, created_at DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
