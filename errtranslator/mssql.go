package errtranslator

import "encoding/json"

const (
	mssqlUniqueConstraint = 2627
	mssqlUniqueIndex      = 2601
	mssqlForeignKey       = 547
)

// MssqlErrTranslator reads the Number and Message fields of a SQL Server
// driver error through its JSON form, no driver package is imported
type MssqlErrTranslator struct{}

type MssqlErr struct {
	Number  int    `json:"Number"`
	Message string `json:"Message"`
}

func (m *MssqlErrTranslator) Translate(err error) error {
	parsedErr, marshalErr := json.Marshal(err)
	if marshalErr != nil {
		return err
	}

	var mssqlErr MssqlErr
	unmarshalErr := json.Unmarshal(parsedErr, &mssqlErr)
	if unmarshalErr != nil {
		return err
	}

	switch mssqlErr.Number {
	case mssqlUniqueConstraint, mssqlUniqueIndex:
		return constraint(ErrDuplicatedKey, mssqlErr.Number, mssqlErr.Message, err)
	case mssqlForeignKey:
		return constraint(ErrForeignKeyViolated, mssqlErr.Number, mssqlErr.Message, err)
	}
	return err
}
