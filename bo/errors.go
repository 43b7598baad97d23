package bo

import "errors"

var (
	// ErrInvalidPropValue the value cannot be parsed as the property kind
	ErrInvalidPropValue = errors.New("invalid property value")
	// ErrReadWriteRule the property read write rule forbids the change
	ErrReadWriteRule = errors.New("property cannot be written")
	// ErrUnknownProp the object has no property of that name
	ErrUnknownProp = errors.New("unknown property")
	// ErrNoLookupList the property has no lookup list attached
	ErrNoLookupList = errors.New("property has no lookup list")
	// ErrNoAutoIncrementingProp the object has no auto incrementing property
	ErrNoAutoIncrementingProp = errors.New("no auto incrementing property")
)
