package datamapper

import "strings"

type boolMapper struct{}

func (boolMapper) Kind() Kind { return Bool }

// TryParse accepts true/false, t/f, yes/no, y/n, 1/0 and -1 (true).
// Any other number fails, "3" is not a bool.
func (boolMapper) TryParse(value interface{}) (interface{}, bool) {
	v, null, ok := prepare(value)
	if null || !ok {
		return nil, ok
	}

	switch v := v.(type) {
	case bool:
		return v, true
	case string:
		return parseBoolString(v)
	case []byte:
		return parseBoolString(string(v))
	}

	if i, isInt := toInt64(v); isInt {
		switch i {
		case 1, -1:
			return true, true
		case 0:
			return false, true
		}
	}
	return nil, false
}

func parseBoolString(s string) (interface{}, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil, true
	case "true", "t", "yes", "y", "1", "-1":
		return true, true
	case "false", "f", "no", "n", "0":
		return false, true
	}
	return nil, false
}

func (m boolMapper) ConvertToString(value interface{}) string {
	parsed, ok := m.TryParse(value)
	if !ok || parsed == nil {
		return ""
	}
	if parsed.(bool) {
		return "True"
	}
	return "False"
}

func (m boolMapper) DatabaseValue(value interface{}) (interface{}, bool) {
	return m.TryParse(value)
}
