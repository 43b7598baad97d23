package dialect

import (
	"fmt"

	"github.com/chillisoft/habanero/datamapper"
)

type Postgres struct {
	Common
}

func (Postgres) GetName() string {
	return "postgres"
}

func (Postgres) BindVar(i int) string {
	return fmt.Sprintf("$%v", i)
}

func (Postgres) DataTypeOf(kind datamapper.Kind, size int, autoIncrement bool) string {
	switch kind {
	case datamapper.Bool:
		return "boolean"
	case datamapper.Int:
		if autoIncrement {
			return "serial"
		}
		return "integer"
	case datamapper.Float:
		return "numeric"
	case datamapper.Guid:
		return fmt.Sprintf("varchar(%d)", guidSize)
	case datamapper.DateTime:
		return "timestamp with time zone"
	case datamapper.Image, datamapper.Bytes:
		return "bytea"
	}
	return sizedOr("varchar(%d)", size, "text")
}

func (Postgres) SupportLastInsertID() bool {
	return false
}

func (p Postgres) LastInsertIDReturningSuffix(column string) string {
	return "RETURNING " + p.Quote(column)
}
