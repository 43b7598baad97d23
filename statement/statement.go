package statement

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
)

// ErrAlreadyExecuted a statement is consumed by exactly one execution
var ErrAlreadyExecuted = errors.New("statement already executed")

// Kind of the generated statement
type Kind int

const (
	Insert Kind = iota + 1
	Update
	Delete
	DDL
)

func (k Kind) String() string {
	switch k {
	case Insert:
		return "INSERT"
	case Update:
		return "UPDATE"
	case Delete:
		return "DELETE"
	case DDL:
		return "DDL"
	}
	return "UNKNOWN"
}

// Param binds Value to the placeholder Name for Column
type Param struct {
	Column string
	Name   string
	Value  interface{}
}

// Lazy is a parameter value read when the statement executes, used for
// keys the database assigns while the statement set runs
type Lazy func() interface{}

// Result of executing a statement
type Result struct {
	LastInsertID int64
	RowsAffected int64
}

// PostExecuteFunc runs after the statement executed successfully
type PostExecuteFunc func(ctx context.Context, result Result) error

// SqlStatement is a parameterized statement generated for one table.
// It cannot be changed once built.
type SqlStatement struct {
	kind        Kind
	table       string
	sql         string
	params      []Param
	criteria    []Param
	returning   string
	postExecute PostExecuteFunc
	executed    atomic.Bool
}

// Option configures a statement while it is built
type Option func(*SqlStatement)

// WithPostExecute attaches fn, run once after the statement executes
func WithPostExecute(fn PostExecuteFunc) Option {
	return func(s *SqlStatement) {
		s.postExecute = fn
	}
}

func (s *SqlStatement) Kind() Kind {
	return s.kind
}

func (s *SqlStatement) TableName() string {
	return s.table
}

// SQL returns the statement text with placeholders
func (s *SqlStatement) SQL() string {
	return s.sql
}

func (s *SqlStatement) String() string {
	return s.sql
}

// Params returns the inserted or assigned fields in placeholder order
func (s *SqlStatement) Params() []Param {
	return append([]Param(nil), s.params...)
}

// Criteria returns the WHERE fields in placeholder order
func (s *SqlStatement) Criteria() []Param {
	return append([]Param(nil), s.criteria...)
}

// Param returns the field param for column, case-insensitive
func (s *SqlStatement) Param(column string) (Param, bool) {
	for _, p := range s.params {
		if strings.EqualFold(p.Column, column) {
			return p, true
		}
	}
	return Param{}, false
}

// Args returns the values to bind, Lazy values resolved
func (s *SqlStatement) Args() []interface{} {
	args := make([]interface{}, 0, len(s.params)+len(s.criteria))
	for _, p := range append(s.Params(), s.criteria...) {
		if lazy, ok := p.Value.(Lazy); ok {
			args = append(args, lazy())
			continue
		}
		args = append(args, p.Value)
	}
	return args
}

// Returning is the column the insert reads back as a result row, "" when
// the generated key comes from sql.Result.LastInsertId
func (s *SqlStatement) Returning() string {
	return s.returning
}

func (s *SqlStatement) HasPostExecute() bool {
	return s.postExecute != nil
}

// DoAfterExecute runs the post execute hook, at most once per statement
func (s *SqlStatement) DoAfterExecute(ctx context.Context, result Result) error {
	if s.executed.Swap(true) {
		return ErrAlreadyExecuted
	}
	if s.postExecute == nil {
		return nil
	}
	return s.postExecute(ctx, result)
}

// NewDDL wraps sql text without parameters
func NewDDL(table, sql string) *SqlStatement {
	return &SqlStatement{kind: DDL, table: table, sql: sql}
}
