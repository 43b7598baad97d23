package statement

import (
	"regexp"
	"strings"
	"sync"

	"github.com/chillisoft/habanero/dialect"
	"github.com/chillisoft/habanero/logger"
)

var placeholders sync.Map

// placeholderPattern matches the numbered bind vars of d, nil for '?'
func placeholderPattern(d dialect.Dialect) *regexp.Regexp {
	first := d.BindVar(1)
	if first == "?" {
		return nil
	}
	if re, ok := placeholders.Load(first); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(strings.Replace(regexp.QuoteMeta(first), "1", `(\d+)`, 1))
	placeholders.Store(first, re)
	return re
}

// Explain renders s with its arguments inlined, for logs
func Explain(d dialect.Dialect, s *SqlStatement) string {
	return logger.ExplainSQL(s.sql, placeholderPattern(d), `'`, s.Args()...)
}
