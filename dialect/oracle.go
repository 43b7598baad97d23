package dialect

import (
	"fmt"

	"github.com/chillisoft/habanero/datamapper"
)

// Oracle has no way to read back a generated key without an out parameter
type Oracle struct {
	Common
}

func (Oracle) GetName() string {
	return "oracle"
}

func (Oracle) BindVar(i int) string {
	return fmt.Sprintf(":%d", i)
}

func (Oracle) DataTypeOf(kind datamapper.Kind, size int, autoIncrement bool) string {
	switch kind {
	case datamapper.Bool:
		return "NUMBER(1)"
	case datamapper.Int:
		if autoIncrement {
			return "NUMBER(10) GENERATED BY DEFAULT AS IDENTITY"
		}
		return "NUMBER(10)"
	case datamapper.Float:
		return "BINARY_DOUBLE"
	case datamapper.Guid:
		return fmt.Sprintf("VARCHAR2(%d)", guidSize)
	case datamapper.DateTime:
		return "TIMESTAMP"
	case datamapper.Image, datamapper.Bytes:
		return "BLOB"
	}
	return sizedOr("VARCHAR2(%d)", size, "CLOB")
}

func (Oracle) SupportLastInsertID() bool {
	return false
}
