package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/recepta-api/internal/domain"
	"github.com/tu-usuario/recepta-api/internal/domain/entity"
	"github.com/tu-usuario/recepta-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia de usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create inserta un usuario nuevo.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, workspace_id, email, password_hash, full_name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		user.ID, user.WorkspaceID, user.Email, user.PasswordHash,
		user.FullName, user.Status, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID; nil si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `
		SELECT id, workspace_id, email, password_hash, full_name, status, created_at, updated_at
		FROM users WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, id))
}

// FindByEmail busca un usuario por email (insensible a mayúsculas); nil si no existe.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	query := `
		SELECT id, workspace_id, email, password_hash, full_name, status, created_at, updated_at
		FROM users WHERE LOWER(email) = LOWER($1)`
	return r.scanOne(r.pool.QueryRow(context.Background(), query, email))
}

func (r *UserRepo) scanOne(row rowScanner) (*entity.User, error) {
	var user entity.User
	err := row.Scan(&user.ID, &user.WorkspaceID, &user.Email, &user.PasswordHash,
		&user.FullName, &user.Status, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("leer usuario: %w", err)
	}
	return &user, nil
}
