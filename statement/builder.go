package statement

import (
	"strings"

	"github.com/chillisoft/habanero/dialect"
)

// ParameterNameGenerator yields the placeholders of one statement in the
// dialect convention, counting from 1
type ParameterNameGenerator struct {
	dialect dialect.Dialect
	count   int
}

func NewParameterNameGenerator(d dialect.Dialect) *ParameterNameGenerator {
	return &ParameterNameGenerator{dialect: d}
}

// Next returns the next placeholder
func (g *ParameterNameGenerator) Next() string {
	g.count++
	return g.dialect.BindVar(g.count)
}

// Field is a column and the value bound to it
type Field struct {
	Column string
	Value  interface{}
}

// Builder writes the text and parameters of one statement
type Builder struct {
	strings.Builder
	dialect  dialect.Dialect
	names    *ParameterNameGenerator
	params   []Param
	criteria []Param
}

func NewBuilder(d dialect.Dialect) *Builder {
	return &Builder{dialect: d, names: NewParameterNameGenerator(d)}
}

// WriteQuoted write quoted identifier
func (b *Builder) WriteQuoted(name string) {
	b.WriteString(b.dialect.Quote(name))
}

// AddVar binds value to column and writes its placeholder
func (b *Builder) AddVar(column string, value interface{}) {
	name := b.names.Next()
	b.params = append(b.params, Param{Column: column, Name: name, Value: value})
	b.WriteString(name)
}

// AddCriteria writes column = placeholder, or IS NULL for a nil value
func (b *Builder) AddCriteria(column string, value interface{}) {
	b.WriteQuoted(column)
	if value == nil {
		b.WriteString(" IS NULL")
		return
	}
	b.WriteString(" = ")
	name := b.names.Next()
	b.criteria = append(b.criteria, Param{Column: column, Name: name, Value: value})
	b.WriteString(name)
}

func (b *Builder) writeWhere(where []Field) {
	if len(where) == 0 {
		return
	}
	b.WriteString(" WHERE ")
	for idx, field := range where {
		if idx > 0 {
			b.WriteString(" AND ")
		}
		b.AddCriteria(field.Column, field.Value)
	}
}

func (b *Builder) build(kind Kind, table string, opts ...Option) *SqlStatement {
	s := &SqlStatement{
		kind:     kind,
		table:    table,
		sql:      b.String(),
		params:   b.params,
		criteria: b.criteria,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildInsert returns INSERT INTO table (fields) VALUES (...). A non empty
// returning column is read back through the dialect OUTPUT or RETURNING
// clause when the dialect has no LastInsertId.
func BuildInsert(d dialect.Dialect, table string, fields []Field, returning string, opts ...Option) *SqlStatement {
	b := NewBuilder(d)
	b.WriteString("INSERT INTO ")
	b.WriteQuoted(table)
	b.WriteByte(' ')

	if returning != "" && d.SupportLastInsertID() {
		returning = ""
	}

	if len(fields) > 0 {
		b.WriteByte('(')
		for idx, field := range fields {
			if idx > 0 {
				b.WriteByte(',')
			}
			b.WriteQuoted(field.Column)
		}
		b.WriteByte(')')
	}

	if returning != "" {
		if output := d.LastInsertIDOutputInterstitial(returning); output != "" {
			if len(fields) > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(output)
		}
	}

	if len(fields) > 0 {
		b.WriteString(" VALUES (")
		for idx, field := range fields {
			if idx > 0 {
				b.WriteByte(',')
			}
			b.AddVar(field.Column, field.Value)
		}
		b.WriteByte(')')
	} else {
		if !strings.HasSuffix(b.String(), " ") {
			b.WriteByte(' ')
		}
		b.WriteString("DEFAULT VALUES")
	}

	if returning != "" {
		if suffix := d.LastInsertIDReturningSuffix(returning); suffix != "" {
			b.WriteByte(' ')
			b.WriteString(suffix)
		}
	}

	s := b.build(Insert, table, opts...)
	s.returning = returning
	return s
}

// BuildUpdate returns UPDATE table SET set WHERE where
func BuildUpdate(d dialect.Dialect, table string, set, where []Field, opts ...Option) *SqlStatement {
	b := NewBuilder(d)
	b.WriteString("UPDATE ")
	b.WriteQuoted(table)
	b.WriteString(" SET ")
	for idx, field := range set {
		if idx > 0 {
			b.WriteByte(',')
		}
		b.WriteQuoted(field.Column)
		b.WriteByte('=')
		b.AddVar(field.Column, field.Value)
	}
	b.writeWhere(where)
	return b.build(Update, table, opts...)
}

// BuildDelete returns DELETE FROM table WHERE where
func BuildDelete(d dialect.Dialect, table string, where []Field, opts ...Option) *SqlStatement {
	b := NewBuilder(d)
	b.WriteString("DELETE FROM ")
	b.WriteQuoted(table)
	b.writeWhere(where)
	return b.build(Delete, table, opts...)
}
