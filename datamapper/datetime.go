package datamapper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const (
	// DateTimeLayout is the locale independent layout of ConvertToString,
	// followed by ":fff" milliseconds
	DateTimeLayout = "02 Jan 2006 15:04:05"
)

var canonicalDateTime = regexp.MustCompile(`^(\d{2} [A-Za-z]{3} \d{4} \d{2}:\d{2}:\d{2}):(\d{3})$`)

type dateTimeMapper struct {
	nowFunc  func() time.Time
	location *time.Location
}

func (dateTimeMapper) Kind() Kind { return DateTime }

// TryParse also resolves the words "now" and "today"
func (m dateTimeMapper) TryParse(value interface{}) (interface{}, bool) {
	v, null, ok := prepare(value)
	if null || !ok {
		return nil, ok
	}

	switch v := v.(type) {
	case time.Time:
		return v, true
	case string:
		return m.parseString(v)
	case []byte:
		return m.parseString(string(v))
	}
	return nil, false
}

func (m dateTimeMapper) parseString(s string) (interface{}, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}

	switch strings.ToLower(s) {
	case "now":
		return m.now(), true
	case "today":
		return now.With(m.now()).BeginningOfDay(), true
	}

	if match := canonicalDateTime.FindStringSubmatch(s); match != nil {
		t, err := time.ParseInLocation(DateTimeLayout, match[1], m.loc())
		if err != nil {
			return nil, false
		}
		ms, _ := strconv.Atoi(match[2])
		return t.Add(time.Duration(ms) * time.Millisecond), true
	}

	config := &now.Config{
		TimeLocation: m.loc(),
		TimeFormats:  append([]string{DateTimeLayout, "02 Jan 2006", time.RFC3339Nano}, now.TimeFormats...),
	}
	t, err := config.Parse(s)
	if err != nil {
		return nil, false
	}
	return t, true
}

func (m dateTimeMapper) now() time.Time {
	if m.nowFunc != nil {
		return m.nowFunc().In(m.loc())
	}
	return time.Now().In(m.loc())
}

func (m dateTimeMapper) loc() *time.Location {
	if m.location == nil {
		return time.Local
	}
	return m.location
}

// FormatDateTime renders t as dd MMM yyyy HH:mm:ss:fff
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout) + fmt.Sprintf(":%03d", t.Nanosecond()/int(time.Millisecond))
}

func (m dateTimeMapper) ConvertToString(value interface{}) string {
	parsed, ok := m.TryParse(value)
	if !ok || parsed == nil {
		return ""
	}
	return FormatDateTime(parsed.(time.Time))
}

func (m dateTimeMapper) DatabaseValue(value interface{}) (interface{}, bool) {
	return m.TryParse(value)
}
