package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// isNoRows indica que la consulta no devolvió filas; los repos lo traducen
// a (nil, nil) y la capa de aplicación decide si eso es un 404.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// isUniqueViolation detecta la violación de un constraint UNIQUE (23505),
// usada para mapear emails duplicados a ErrEmailAlreadyExists.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
