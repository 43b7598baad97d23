package errtranslator

import (
	"errors"

	"modernc.org/sqlite"
)

// extended result codes
const (
	sqliteConstraint           = 19
	sqliteConstraintForeignKey = 787
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// SqliteErrTranslator translates modernc.org/sqlite errors. A plain
// SQLITE_CONSTRAINT code falls back to the message text.
type SqliteErrTranslator struct{}

func (s *SqliteErrTranslator) Translate(err error) error {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	code, message := sqliteErr.Code(), sqliteErr.Error()
	switch {
	case code == sqliteConstraintUnique, code == sqliteConstraintPrimaryKey:
		return constraint(ErrDuplicatedKey, code, message, err)
	case code == sqliteConstraintForeignKey:
		return constraint(ErrForeignKeyViolated, code, message, err)
	case code&0xff == sqliteConstraint && containsAny(message, "UNIQUE constraint failed", "PRIMARY KEY"):
		return constraint(ErrDuplicatedKey, code, message, err)
	case code&0xff == sqliteConstraint && containsAny(message, "FOREIGN KEY constraint failed"):
		return constraint(ErrForeignKeyViolated, code, message, err)
	}
	return err
}
