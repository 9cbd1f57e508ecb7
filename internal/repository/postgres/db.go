// internal/repository/postgres/db.go
package postgres

import (
	"errors"

	xerrors "tedtam-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// insufficient_privilege, raised when row-level security rejects a query.
	pgCodePermissionDenied = "42501"
	// unique_violation, raised when an insert loses a race on a unique column.
	pgCodeUniqueViolation = "23505"
)

// translateErr maps storage errors onto the application sentinels so callers
// can branch without importing pgconn.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodePermissionDenied:
			return xerrors.ErrPermissionDenied
		case pgCodeUniqueViolation:
			return xerrors.ErrConflict
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	return err
}
