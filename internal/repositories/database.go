package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"tyremart/internal/common"
)

// Database is the subset of pgxpool.Pool the repositories use. pgxmock's
// PgxPoolIface satisfies it too, which is what the repository tests run
// against.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// translateError maps driver-level errors onto the shared sentinels: no rows
// becomes ErrNotFound, unique-constraint violations become ErrConflict.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return common.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return common.ErrConflict
	}
	return err
}
