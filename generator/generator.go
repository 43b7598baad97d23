package generator

import (
	"context"
	"errors"
	"strings"

	"github.com/chillisoft/habanero/bo"
	"github.com/chillisoft/habanero/datamapper"
	"github.com/chillisoft/habanero/dialect"
	"github.com/chillisoft/habanero/logger"
	"github.com/chillisoft/habanero/schema"
	"github.com/chillisoft/habanero/statement"
)

var (
	// ErrMissingDiscriminator single table inheritance link without a discriminator
	ErrMissingDiscriminator = schema.ErrMissingDiscriminator
	// ErrCompositeKeyCopy composite parent key under an id field override
	ErrCompositeKeyCopy = schema.ErrCompositeKeyCopy
	// ErrPrimaryKeyRequired updates and deletes need a key to find the row
	ErrPrimaryKeyRequired = errors.New("primary key required")
)

// BusinessObject is what the generators read, and the auto increment
// callback writes back to
type BusinessObject interface {
	ClassDef() *schema.ClassDef
	Props() *bo.BOPropCol
	IsNew() bool
	IsDeleted() bool
	SetAutoIncrementingFieldValue(value int64) error
}

// Config of the statement generators
type Config struct {
	Dialect  dialect.Dialect
	Logger   logger.Interface
	Registry *datamapper.Registry
	Namer    schema.Namer
}

// Option configures a generator
type Option func(*Config)

func WithDialect(d dialect.Dialect) Option {
	return func(c *Config) {
		c.Dialect = d
	}
}

func WithLogger(l logger.Interface) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithRegistry sets the registry synthesized values are formatted with
func WithRegistry(r *datamapper.Registry) Option {
	return func(c *Config) {
		c.Registry = r
	}
}

// WithNamer sets the namer of unique key constraints
func WithNamer(n schema.Namer) Option {
	return func(c *Config) {
		c.Namer = n
	}
}

func newConfig(opts []Option) Config {
	config := Config{}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Dialect == nil {
		config.Dialect = dialect.Common{}
	}
	if config.Logger == nil {
		config.Logger = logger.Discard
	}
	if config.Registry == nil {
		config.Registry = datamapper.NewRegistry()
	}
	if config.Namer == nil {
		config.Namer = schema.IdentityNamer{}
	}
	return config
}

// ForObject generates the statements that persist obj: an insert for a new
// object, a delete for one marked for delete and an update otherwise. A new
// object marked for delete and a clean persisted object need none.
func ForObject(obj BusinessObject, opts ...Option) ([]*statement.SqlStatement, error) {
	switch {
	case obj.IsDeleted() && obj.IsNew():
		return nil, nil
	case obj.IsDeleted():
		return NewDeleteStatementGenerator(obj, opts...).Generate()
	case obj.IsNew():
		return NewInsertStatementGenerator(obj, opts...).Generate()
	}
	return NewUpdateStatementGenerator(obj, opts...).Generate()
}

// fieldList keeps one value per column, case-insensitive
type fieldList struct {
	fields []statement.Field
	index  map[string]int
}

func (l *fieldList) set(column string, value interface{}) {
	if l.index == nil {
		l.index = map[string]int{}
	}
	key := strings.ToLower(column)
	if idx, ok := l.index[key]; ok {
		l.fields[idx].Value = value
		return
	}
	l.index[key] = len(l.fields)
	l.fields = append(l.fields, statement.Field{Column: column, Value: value})
}

func (l *fieldList) has(column string) bool {
	_, ok := l.index[strings.ToLower(column)]
	return ok
}

// keyFields returns the columns identifying the row of obj in table with
// their persisted values. A class table child is found by the parent key
// it stores unless it declares its own primary key.
func keyFields(obj BusinessObject, table schema.TableMapping) ([]statement.Field, error) {
	head := table.Head()
	if pk := head.PrimaryKeyDef; (pk == nil || len(pk.PropNames) == 0) && table.Parent != nil {
		parentKey, err := table.Parent.ParentKeyFields()
		if err != nil {
			return nil, err
		}
		fields := make([]statement.Field, 0, len(parentKey))
		for _, kf := range parentKey {
			prop := obj.Props().Get(kf.ParentProp.Name)
			if prop == nil {
				return nil, schema.NewDefinitionError(head.FullName(), schema.ErrUnknownProperty, "parent key property %s", kf.ParentProp.Name)
			}
			fields = append(fields, statement.Field{Column: kf.FieldName, Value: prop.PersistedDatabaseValue()})
		}
		return fields, nil
	}

	pk := head.GetPrimaryKeyDef()
	if pk == nil || len(pk.PropNames) == 0 {
		return nil, schema.NewDefinitionError(head.FullName(), ErrPrimaryKeyRequired, "table %s", table.TableName)
	}
	fields := make([]statement.Field, 0, len(pk.PropNames))
	for _, name := range pk.PropNames {
		prop := obj.Props().Get(name)
		if prop == nil {
			return nil, schema.NewDefinitionError(head.FullName(), schema.ErrUnknownProperty, "primary key property %s", name)
		}
		fields = append(fields, statement.Field{Column: prop.FieldName(), Value: prop.PersistedDatabaseValue()})
	}
	return fields, nil
}

func logGenerated(l logger.Interface, kind string, obj BusinessObject, stmts []*statement.SqlStatement, err error) {
	if err != nil {
		l.Error(context.Background(), "generate %s for %s: %v", kind, obj.ClassDef().FullName(), err)
		return
	}
	l.Info(context.Background(), "generated %d %s statement(s) for %s", len(stmts), kind, obj.ClassDef().FullName())
}
