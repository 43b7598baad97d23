package datamapper

import (
	"math"
	"strconv"
	"strings"
)

type intMapper struct{}

func (intMapper) Kind() Kind { return Int }

func (intMapper) TryParse(value interface{}) (interface{}, bool) {
	v, null, ok := prepare(value)
	if null || !ok {
		return nil, ok
	}

	switch v := v.(type) {
	case string:
		return parseIntString(v)
	case []byte:
		return parseIntString(string(v))
	case float64:
		return floatToInt(v)
	case float32:
		return floatToInt(float64(v))
	}

	if i, isInt := toInt64(v); isInt && i >= math.MinInt && i <= math.MaxInt {
		return int(i), true
	}
	return nil, false
}

// floatToInt accepts whole numbers in [MinInt, -MinInt), MaxInt itself
// rounds up to -MinInt as a float64
func floatToInt(v float64) (interface{}, bool) {
	if v == math.Trunc(v) && v >= math.MinInt && v < -math.MinInt {
		return int(v), true
	}
	return nil, false
}

func parseIntString(s string) (interface{}, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return nil, false
	}
	return i, true
}

func (m intMapper) ConvertToString(value interface{}) string {
	parsed, ok := m.TryParse(value)
	if !ok || parsed == nil {
		return ""
	}
	return strconv.Itoa(parsed.(int))
}

func (m intMapper) DatabaseValue(value interface{}) (interface{}, bool) {
	parsed, ok := m.TryParse(value)
	if !ok || parsed == nil {
		return nil, ok
	}
	return int64(parsed.(int)), true
}
