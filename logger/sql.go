package logger

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const tmFmtWithMS = "2006-01-02 15:04:05.000"

func isPrintable(s []byte) bool {
	for _, r := range s {
		if !unicode.IsPrint(rune(r)) {
			return false
		}
	}
	return true
}

// ExplainSQL inlines vars into sql for logging. numericPlaceholder matches
// numbered bind vars such as $1, :1 or @p1 with the number as first group,
// nil means vars are bound positionally with '?'.
func ExplainSQL(sql string, numericPlaceholder *regexp.Regexp, escaper string, avars ...interface{}) string {
	vars := make([]string, len(avars))

	for idx, v := range avars {
		if valuer, ok := v.(driver.Valuer); ok {
			v, _ = valuer.Value()
		}

		switch v := v.(type) {
		case bool:
			vars[idx] = strconv.FormatBool(v)
		case time.Time:
			vars[idx] = escaper + v.Format(tmFmtWithMS) + escaper
		case *time.Time:
			if v == nil {
				vars[idx] = "NULL"
			} else {
				vars[idx] = escaper + v.Format(tmFmtWithMS) + escaper
			}
		case []byte:
			if isPrintable(v) {
				vars[idx] = escaper + strings.ReplaceAll(string(v), escaper, "\\"+escaper) + escaper
			} else {
				vars[idx] = escaper + "<binary>" + escaper
			}
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			vars[idx] = fmt.Sprintf("%d", v)
		case float64, float32:
			vars[idx] = fmt.Sprintf("%.6f", v)
		case string:
			vars[idx] = escaper + strings.ReplaceAll(v, escaper, "\\"+escaper) + escaper
		default:
			if v == nil {
				vars[idx] = "NULL"
			} else {
				vars[idx] = escaper + strings.ReplaceAll(fmt.Sprint(v), escaper, "\\"+escaper) + escaper
			}
		}
	}

	if numericPlaceholder == nil {
		parts := strings.Split(sql, "?")
		var b strings.Builder
		for idx, part := range parts {
			b.WriteString(part)
			if idx == len(parts)-1 {
				break
			}
			if idx < len(vars) {
				b.WriteString(vars[idx])
			} else {
				b.WriteByte('?')
			}
		}
		return b.String()
	}

	return numericPlaceholder.ReplaceAllStringFunc(sql, func(m string) string {
		sub := numericPlaceholder.FindStringSubmatch(m)
		if len(sub) < 2 {
			return m
		}
		// bind vars are numbered from 1
		n, err := strconv.Atoi(sub[1])
		if err != nil || n < 1 || n > len(vars) {
			return m
		}
		return vars[n-1]
	})
}
