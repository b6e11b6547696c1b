package repository

import (
	"errors"

	"appointment-server/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// kindOf classifies a postgres error by SQLSTATE so the usecase layer can
// branch on the kind without importing pgx.
func kindOf(err error) infra.RepositoryErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return infra.KindDuplicateKey
		case "23503": // foreign_key_violation
			return infra.KindForeignKeyViolated
		case "23P01": // exclusion_violation, overlapping appointment windows
			return infra.KindConflict
		}
	}
	return infra.KindDBFailure
}
