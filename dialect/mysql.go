package dialect

import (
	"fmt"

	"github.com/chillisoft/habanero/datamapper"
)

type MySQL struct {
	Common
}

func (MySQL) GetName() string {
	return "mysql"
}

func (MySQL) Quote(key string) string {
	return fmt.Sprintf("`%s`", key)
}

func (MySQL) DataTypeOf(kind datamapper.Kind, size int, autoIncrement bool) string {
	switch kind {
	case datamapper.Bool:
		return "boolean"
	case datamapper.Int:
		if autoIncrement {
			return "int AUTO_INCREMENT"
		}
		return "int"
	case datamapper.Float:
		return "double"
	case datamapper.Guid:
		return fmt.Sprintf("varchar(%d)", guidSize)
	case datamapper.DateTime:
		return "datetime(3)"
	case datamapper.Image, datamapper.Bytes:
		return sizedOr("varbinary(%d)", size, "longblob")
	}
	return sizedOr("varchar(%d)", size, "longtext")
}
