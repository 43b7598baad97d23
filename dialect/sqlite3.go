package dialect

import (
	"fmt"

	"github.com/chillisoft/habanero/datamapper"
)

type SQLite3 struct {
	Common
}

func (SQLite3) GetName() string {
	return "sqlite3"
}

// DataTypeOf an auto incrementing column is declared as the table primary key
func (SQLite3) DataTypeOf(kind datamapper.Kind, size int, autoIncrement bool) string {
	switch kind {
	case datamapper.Bool:
		return "bool"
	case datamapper.Int:
		if autoIncrement {
			return "integer PRIMARY KEY AUTOINCREMENT"
		}
		return "integer"
	case datamapper.Float:
		return "real"
	case datamapper.Guid:
		return fmt.Sprintf("varchar(%d)", guidSize)
	case datamapper.DateTime:
		return "datetime"
	case datamapper.Image, datamapper.Bytes:
		return "blob"
	}
	return sizedOr("varchar(%d)", size, "text")
}
