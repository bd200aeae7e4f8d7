package postgres

import (
	"errors"
	"fmt"

	"domainshop/pkg/serrors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapError attaches a semantic kind to a failed statement: unique violations
// become ErrConflict, foreign key violations ErrNotFound and anything else
// ErrPersistence.
func mapError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return serrors.Wrap(serrors.ErrConflict, err, "%s: duplicate %s", op, pgErr.ConstraintName)
		case pgerrcode.ForeignKeyViolation:
			return serrors.Wrap(serrors.ErrNotFound, err, "%s: referenced row does not exist", op)
		}
	}

	return serrors.Wrap(serrors.ErrPersistence, fmt.Errorf("%s in pg: %w", op, err), "storage failure")
}
