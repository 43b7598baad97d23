package errtranslator

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PostgresErrTranslator translates lib/pq and pgx errors by SQLSTATE
type PostgresErrTranslator struct{}

func (p *PostgresErrTranslator) Translate(err error) error {
	var (
		code, message string
		pqErr         *pq.Error
		pgErr         *pgconn.PgError
	)
	switch {
	case errors.As(err, &pqErr):
		code, message = string(pqErr.Code), pqErr.Message
	case errors.As(err, &pgErr):
		code, message = pgErr.Code, pgErr.Message
	default:
		return err
	}

	switch code {
	case pgUniqueViolation:
		return constraint(ErrDuplicatedKey, code, message, err)
	case pgForeignKeyViolation:
		return constraint(ErrForeignKeyViolated, code, message, err)
	}
	return err
}
