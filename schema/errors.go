package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDefinition a class definition breaks an invariant of the metadata model
	ErrInvalidDefinition = errors.New("invalid class definition")
	// ErrMissingDiscriminator single table inheritance link without a discriminator
	ErrMissingDiscriminator = errors.New("single table inheritance requires a discriminator")
	// ErrCompositeKeyCopy composite parent key copied under an overridden id field
	ErrCompositeKeyCopy = errors.New("composite parent key cannot be copied to an id field override")
	// ErrInheritanceCycle a class is its own ancestor
	ErrInheritanceCycle = errors.New("inheritance cycle")
	// ErrUnknownProperty a key or relationship names a property the class does not have
	ErrUnknownProperty = errors.New("unknown property")
	// ErrUnknownClass class not registered in the catalog
	ErrUnknownClass = errors.New("unknown class")
	// ErrAmbiguousClass class name registered under more than one assembly
	ErrAmbiguousClass = errors.New("ambiguous class name")
	// ErrDuplicateClass class registered twice
	ErrDuplicateClass = errors.New("class already registered")
)

// DefinitionError reports a broken class definition. It matches
// ErrInvalidDefinition and its cause with errors.Is.
type DefinitionError struct {
	Class  string
	Reason string
	Err    error
}

func (e *DefinitionError) Error() string {
	msg := ErrInvalidDefinition.Error()
	if e.Class != "" {
		msg = "class " + e.Class
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *DefinitionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidDefinition}
	}
	return []error{ErrInvalidDefinition, e.Err}
}

// NewDefinitionError returns a *DefinitionError for class, the reason is formatted
// with fmt.Sprintf
func NewDefinitionError(class string, err error, format string, args ...interface{}) error {
	return &DefinitionError{Class: class, Err: err, Reason: fmt.Sprintf(format, args...)}
}
