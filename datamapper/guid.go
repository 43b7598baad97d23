package datamapper

import (
	"strings"

	"github.com/google/uuid"
)

type guidMapper struct{}

func (guidMapper) Kind() Kind { return Guid }

// TryParse normalizes uuid.Nil and the empty string to nil
func (guidMapper) TryParse(value interface{}) (interface{}, bool) {
	v, null, ok := prepare(value)
	if null || !ok {
		return nil, ok
	}

	switch v := v.(type) {
	case uuid.UUID:
		return nilIfEmptyGuid(v), true
	case [16]byte:
		return nilIfEmptyGuid(uuid.UUID(v)), true
	case string:
		return parseGuidString(v)
	case []byte:
		if len(v) == 16 {
			id, err := uuid.FromBytes(v)
			if err != nil {
				return nil, false
			}
			return nilIfEmptyGuid(id), true
		}
		return parseGuidString(string(v))
	}
	return nil, false
}

func parseGuidString(s string) (interface{}, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, false
	}
	return nilIfEmptyGuid(id), true
}

func nilIfEmptyGuid(id uuid.UUID) interface{} {
	if id == uuid.Nil {
		return nil
	}
	return id
}

// FormatGuid renders id braces-delimited in upper case, uuid.Nil as ""
func FormatGuid(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return "{" + strings.ToUpper(id.String()) + "}"
}

func (m guidMapper) ConvertToString(value interface{}) string {
	parsed, ok := m.TryParse(value)
	if !ok || parsed == nil {
		return ""
	}
	return FormatGuid(parsed.(uuid.UUID))
}

func (m guidMapper) DatabaseValue(value interface{}) (interface{}, bool) {
	parsed, ok := m.TryParse(value)
	if !ok || parsed == nil {
		return nil, ok
	}
	return FormatGuid(parsed.(uuid.UUID)), true
}
