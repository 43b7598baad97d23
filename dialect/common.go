package dialect

import (
	"fmt"

	"github.com/chillisoft/habanero/datamapper"
)

// Common is the fallback dialect, standard SQL with ? placeholders
type Common struct{}

func (Common) GetName() string {
	return "common"
}

func (Common) BindVar(i int) string {
	return "?"
}

func (Common) Quote(key string) string {
	return fmt.Sprintf(`"%s"`, key)
}

func (Common) DataTypeOf(kind datamapper.Kind, size int, autoIncrement bool) string {
	switch kind {
	case datamapper.Bool:
		return "BOOLEAN"
	case datamapper.Int:
		if autoIncrement {
			return "INTEGER AUTO_INCREMENT"
		}
		return "INTEGER"
	case datamapper.Float:
		return "FLOAT"
	case datamapper.Guid:
		return fmt.Sprintf("VARCHAR(%d)", guidSize)
	case datamapper.DateTime:
		return "TIMESTAMP"
	case datamapper.Image, datamapper.Bytes:
		return sizedOr("BINARY(%d)", size, "BINARY(65532)")
	}
	return sizedOr("VARCHAR(%d)", size, "VARCHAR(65532)")
}

func (Common) SupportLastInsertID() bool {
	return true
}

func (Common) LastInsertIDOutputInterstitial(column string) string {
	return ""
}

func (Common) LastInsertIDReturningSuffix(column string) string {
	return ""
}
