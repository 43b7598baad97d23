package datamapper

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type stringMapper struct{}

func (stringMapper) Kind() Kind { return String }

// TryParse stringifies any value, Guids and times in their canonical forms
func (stringMapper) TryParse(value interface{}) (interface{}, bool) {
	v, null, ok := prepare(value)
	if null || !ok {
		return nil, ok
	}

	switch v := v.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case uuid.UUID:
		return FormatGuid(v), true
	case time.Time:
		return FormatDateTime(v), true
	case bool:
		if v {
			return "True", true
		}
		return "False", true
	case fmt.Stringer:
		return v.String(), true
	}
	return fmt.Sprint(v), true
}

func (m stringMapper) ConvertToString(value interface{}) string {
	parsed, ok := m.TryParse(value)
	if !ok || parsed == nil {
		return ""
	}
	return parsed.(string)
}

func (m stringMapper) DatabaseValue(value interface{}) (interface{}, bool) {
	return m.TryParse(value)
}
