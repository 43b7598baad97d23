package errtranslator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicatedKey a unique or primary key constraint was violated
	ErrDuplicatedKey = errors.New("duplicated key not allowed")
	// ErrForeignKeyViolated a foreign key constraint was violated
	ErrForeignKeyViolated = errors.New("violates foreign key constraint")
)

// ErrTranslator maps a driver error onto ErrDuplicatedKey or
// ErrForeignKeyViolated, other errors are returned unchanged
type ErrTranslator interface {
	Translate(err error) error
}

// ConstraintError is a translated driver error. errors.Is matches both the
// kind sentinel and the driver error.
type ConstraintError struct {
	Kind    error
	Code    interface{}
	Message string
	Cause   error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s, code: %v, message: %s", e.Kind, e.Code, e.Message)
}

func (e *ConstraintError) Unwrap() []error {
	return []error{e.Kind, e.Cause}
}

// Chain tries each translator in turn and returns the first translation
type Chain []ErrTranslator

func (c Chain) Translate(err error) error {
	if err == nil {
		return nil
	}
	var translated *ConstraintError
	if errors.As(err, &translated) {
		return err
	}
	for _, t := range c {
		if out := t.Translate(err); out != err {
			return out
		}
	}
	return err
}

// Default translates the errors of every driver the module registers
var Default ErrTranslator = Chain{
	&PostgresErrTranslator{},
	&MysqlErrTranslator{},
	&SqliteErrTranslator{},
	&MssqlErrTranslator{},
}

// Translate translates err with Default
func Translate(err error) error {
	return Default.Translate(err)
}

func constraint(kind error, code interface{}, message string, cause error) error {
	return &ConstraintError{Kind: kind, Code: code, Message: message, Cause: cause}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
