package errtranslator

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

const (
	mysqlDuplicateEntry   = 1062
	mysqlForeignKeyParent = 1451
	mysqlForeignKeyChild  = 1452
)

type MysqlErrTranslator struct{}

func (m *MysqlErrTranslator) Translate(err error) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return err
	}

	switch mysqlErr.Number {
	case mysqlDuplicateEntry:
		return constraint(ErrDuplicatedKey, int(mysqlErr.Number), mysqlErr.Message, err)
	case mysqlForeignKeyParent, mysqlForeignKeyChild:
		return constraint(ErrForeignKeyViolated, int(mysqlErr.Number), mysqlErr.Message, err)
	}
	return err
}
