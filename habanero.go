package habanero

import (
	"context"
	"database/sql"

	"github.com/chillisoft/habanero/bo"
	"github.com/chillisoft/habanero/committer"
	"github.com/chillisoft/habanero/datamapper"
	"github.com/chillisoft/habanero/generator"
	"github.com/chillisoft/habanero/lookup"
	"github.com/chillisoft/habanero/schema"
	"github.com/chillisoft/habanero/statement"
)

// DB persists business objects of a catalog to a database
type DB struct {
	*Config
	db      *sql.DB
	catalog *schema.Catalog
}

// Open initialize db session based on the catalog. db may be nil to only
// generate statements.
func Open(db *sql.DB, catalog *schema.Catalog, opts ...ConfigOption) (*DB, error) {
	if catalog == nil {
		return nil, ErrNoCatalog
	}

	config := &Config{}
	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}
	config.applyDefaults(catalog)

	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &DB{Config: config, db: db, catalog: catalog}, nil
}

func (db *DB) Catalog() *schema.Catalog {
	return db.catalog
}

func (db *DB) Registry() *datamapper.Registry {
	return db.Config.Registry
}

// SQLDB returns the underlying *sql.DB, nil for a statement only session
func (db *DB) SQLDB() *sql.DB {
	return db.db
}

// NewObject returns a new object of the class named className
func (db *DB) NewObject(className string) (*bo.BusinessObject, error) {
	cd, err := db.catalog.Find(className)
	if err != nil {
		return nil, err
	}
	return bo.New(cd, db.Config.Registry)
}

// LoadObject returns a persisted object of className holding values
func (db *DB) LoadObject(className string, values map[string]interface{}) (*bo.BusinessObject, error) {
	cd, err := db.catalog.Find(className)
	if err != nil {
		return nil, err
	}
	return bo.Load(cd, db.Config.Registry, values)
}

func (db *DB) generatorOptions() []generator.Option {
	return []generator.Option{
		generator.WithDialect(db.Dialect),
		generator.WithLogger(db.Logger),
		generator.WithRegistry(db.Config.Registry),
		generator.WithNamer(db.Namer),
	}
}

// Statements returns the statements Save would execute for obj
func (db *DB) Statements(obj generator.BusinessObject) ([]*statement.SqlStatement, error) {
	return generator.ForObject(obj, db.generatorOptions()...)
}

// CreateTableStatements returns the CREATE TABLE statements of the catalog
func (db *DB) CreateTableStatements() ([]*statement.SqlStatement, error) {
	return generator.NewCreateTableGenerator(db.catalog.All(), db.generatorOptions()...).Generate()
}

// CreateTables creates the tables of the catalog
func (db *DB) CreateTables(ctx context.Context) error {
	if db.db == nil {
		return ErrNoDB
	}
	stmts, err := db.CreateTableStatements()
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := db.db.ExecContext(ctx, stmt.SQL()); err != nil {
			return err
		}
		db.Logger.Info(ctx, "created table %s", stmt.TableName())
	}
	return nil
}

// Save persists objects in one transaction
func (db *DB) Save(ctx context.Context, objects ...*bo.BusinessObject) error {
	c := &committer.TransactionCommitter{
		DB:       db.db,
		Dialect:  db.Dialect,
		Logger:   db.Logger,
		Registry: db.Config.Registry,
		Scope:    db.MetricsScope,
		NowFunc:  db.NowFunc,
	}
	for _, obj := range objects {
		c.AddBusinessObject(obj)
	}
	return c.Commit(ctx)
}

// AttachLookups builds the lookup lists the catalog declares, loaded from db
func (db *DB) AttachLookups() []*lookup.DatabaseLookupList {
	return lookup.Attach(db.catalog, lookup.DBSource{DB: db.db},
		lookup.WithClock(db.NowFunc),
		lookup.WithRegistry(db.Config.Registry),
		lookup.WithScope(db.MetricsScope),
		lookup.WithLanguage(db.LookupLanguage),
		lookup.WithLogger(db.Logger),
		lookup.WithTimeout(db.LookupTimeout),
	)
}
