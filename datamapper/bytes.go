package datamapper

import (
	"encoding/base64"
	"strings"
)

type bytesMapper struct{}

func (bytesMapper) Kind() Kind { return Bytes }

func (bytesMapper) TryParse(value interface{}) (interface{}, bool) {
	v, null, ok := prepare(value)
	if null || !ok {
		return nil, ok
	}

	switch v := v.(type) {
	case []byte:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, true
		}
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, false
		}
		return raw, true
	}
	return nil, false
}

func (m bytesMapper) ConvertToString(value interface{}) string {
	parsed, ok := m.TryParse(value)
	if !ok || parsed == nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(parsed.([]byte))
}

func (m bytesMapper) DatabaseValue(value interface{}) (interface{}, bool) {
	return m.TryParse(value)
}
