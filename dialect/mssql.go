package dialect

import (
	"fmt"

	"github.com/chillisoft/habanero/datamapper"
)

type MSSQL struct {
	Common
}

func (MSSQL) GetName() string {
	return "mssql"
}

func (MSSQL) BindVar(i int) string {
	return fmt.Sprintf("@p%d", i)
}

func (MSSQL) Quote(key string) string {
	return fmt.Sprintf("[%s]", key)
}

func (MSSQL) DataTypeOf(kind datamapper.Kind, size int, autoIncrement bool) string {
	switch kind {
	case datamapper.Bool:
		return "bit"
	case datamapper.Int:
		if autoIncrement {
			return "int IDENTITY(1,1)"
		}
		return "int"
	case datamapper.Float:
		return "float"
	case datamapper.Guid:
		return fmt.Sprintf("nvarchar(%d)", guidSize)
	case datamapper.DateTime:
		return "datetime2"
	case datamapper.Image, datamapper.Bytes:
		return "varbinary(max)"
	}
	return sizedOr("nvarchar(%d)", size, "nvarchar(max)")
}

func (MSSQL) SupportLastInsertID() bool {
	return false
}

func (m MSSQL) LastInsertIDOutputInterstitial(column string) string {
	return "OUTPUT INSERTED." + m.Quote(column)
}
