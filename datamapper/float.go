package datamapper

import (
	"strconv"
	"strings"
)

type floatMapper struct{}

func (floatMapper) Kind() Kind { return Float }

func (floatMapper) TryParse(value interface{}) (interface{}, bool) {
	v, null, ok := prepare(value)
	if null || !ok {
		return nil, ok
	}

	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		return parseFloatString(v)
	case []byte:
		return parseFloatString(string(v))
	}

	if i, isInt := toInt64(v); isInt {
		return float64(i), true
	}
	return nil, false
}

func parseFloatString(s string) (interface{}, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return f, true
}

func (m floatMapper) ConvertToString(value interface{}) string {
	parsed, ok := m.TryParse(value)
	if !ok || parsed == nil {
		return ""
	}
	return strconv.FormatFloat(parsed.(float64), 'f', -1, 64)
}

func (m floatMapper) DatabaseValue(value interface{}) (interface{}, bool) {
	return m.TryParse(value)
}
