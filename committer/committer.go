package committer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chillisoft/habanero/datamapper"
	"github.com/chillisoft/habanero/dialect"
	"github.com/chillisoft/habanero/errtranslator"
	"github.com/chillisoft/habanero/generator"
	"github.com/chillisoft/habanero/logger"
	"github.com/chillisoft/habanero/statement"
	"github.com/uber-go/tally/v4"
)

// ErrNoDB the committer has no database
var ErrNoDB = errors.New("committer has no database")

// BusinessObject is an object the committer persists
type BusinessObject interface {
	generator.BusinessObject
	IsValid() error
	AfterSave()
}

// TransactionCommitter persists a set of objects in one transaction.
// Every statement is generated before the transaction begins.
type TransactionCommitter struct {
	DB       *sql.DB
	Dialect  dialect.Dialect
	Logger   logger.Interface
	Registry *datamapper.Registry
	Scope    tally.Scope
	NowFunc  func() time.Time

	// Translator maps driver constraint errors, errtranslator.Default when nil
	Translator errtranslator.ErrTranslator

	objects []BusinessObject
}

// AddBusinessObject queues obj for the next Commit, an object already
// queued is not added twice
func (c *TransactionCommitter) AddBusinessObject(obj BusinessObject) {
	for _, queued := range c.objects {
		if queued == obj {
			return
		}
	}
	c.objects = append(c.objects, obj)
}

// Len is the number of queued objects
func (c *TransactionCommitter) Len() int {
	return len(c.objects)
}

// Commit executes the statements of every queued object in a transaction
// and marks the objects as saved. On failure the transaction is rolled back
// and the objects stay queued.
func (c *TransactionCommitter) Commit(ctx context.Context) (err error) {
	if c.DB == nil {
		return ErrNoDB
	}
	metrics := newMetrics(c.scope())

	stmts, err := c.generate()
	if err != nil {
		metrics.fail.Inc(1)
		return err
	}
	if len(stmts) == 0 {
		c.afterSave()
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		metrics.fail.Inc(1)
		return err
	}

	panicked := true
	defer func() {
		if panicked || err != nil {
			metrics.rollback.Inc(1)
			c.restoreAutoIncrements()
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				c.logger().Error(ctx, "rollback: %v", rbErr)
			}
		}
	}()

	for _, stmt := range stmts {
		if err = c.execute(ctx, tx, stmt, metrics); err != nil {
			break
		}
	}
	if err == nil {
		err = tx.Commit()
	}
	panicked = false

	if err != nil {
		metrics.fail.Inc(1)
		return err
	}
	metrics.commit.Inc(1)
	c.afterSave()
	return nil
}

// generate returns the statements of every object in execution order.
// Inserts run root table first so a child row can reference its parent key.
func (c *TransactionCommitter) generate() ([]*statement.SqlStatement, error) {
	opts := []generator.Option{
		generator.WithDialect(c.dialect()),
		generator.WithLogger(c.logger()),
	}
	if c.Registry != nil {
		opts = append(opts, generator.WithRegistry(c.Registry))
	}

	var all []*statement.SqlStatement
	for _, obj := range c.objects {
		stmts, err := generator.ForObject(obj, opts...)
		if err != nil {
			return nil, err
		}
		if len(stmts) > 0 && !obj.IsDeleted() {
			if err := obj.IsValid(); err != nil {
				return nil, fmt.Errorf("%s: %w", obj.ClassDef().FullName(), err)
			}
		}
		if obj.IsNew() {
			for i, j := 0, len(stmts)-1; i < j; i, j = i+1, j-1 {
				stmts[i], stmts[j] = stmts[j], stmts[i]
			}
		}
		all = append(all, stmts...)
	}
	return all, nil
}

func (c *TransactionCommitter) execute(ctx context.Context, tx *sql.Tx, stmt *statement.SqlStatement, metrics *metrics) (err error) {
	var (
		begin  = c.now()
		result statement.Result
		args   = stmt.Args()
	)
	defer func() {
		metrics.latency.Record(c.now().Sub(begin))
		c.logger().Trace(ctx, begin, func() (string, int64) {
			return statement.Explain(c.dialect(), stmt), result.RowsAffected
		}, err)
	}()
	metrics.statements.Inc(1)

	if column := stmt.Returning(); column != "" && stmt.HasPostExecute() {
		if err = tx.QueryRowContext(ctx, stmt.SQL(), args...).Scan(&result.LastInsertID); err != nil {
			return c.translator().Translate(err)
		}
		result.RowsAffected = 1
		return stmt.DoAfterExecute(ctx, result)
	}

	res, err := tx.ExecContext(ctx, stmt.SQL(), args...)
	if err != nil {
		return c.translator().Translate(err)
	}
	if result.RowsAffected, err = res.RowsAffected(); err != nil {
		return err
	}
	if stmt.Kind() == statement.Insert && stmt.HasPostExecute() {
		if result.LastInsertID, err = res.LastInsertId(); err != nil {
			return err
		}
	}
	if result.RowsAffected == 0 && stmt.Kind() != statement.Insert {
		c.logger().Warn(ctx, "%s %s affected no rows", stmt.Kind(), stmt.TableName())
	}
	return stmt.DoAfterExecute(ctx, result)
}

// afterSave commits the state of every saved object. A new object marked
// for delete was never written and keeps its state.
func (c *TransactionCommitter) afterSave() {
	for _, obj := range c.objects {
		if obj.IsNew() && obj.IsDeleted() {
			continue
		}
		obj.AfterSave()
	}
	c.objects = nil
}

// restoreAutoIncrements discards keys written back by statements of a rolled
// back transaction
func (c *TransactionCommitter) restoreAutoIncrements() {
	for _, obj := range c.objects {
		if !obj.IsNew() {
			continue
		}
		if prop := obj.Props().AutoIncrementingProp(); prop != nil {
			prop.RestorePropValue()
		}
	}
}

func (c *TransactionCommitter) dialect() dialect.Dialect {
	if c.Dialect == nil {
		return dialect.Common{}
	}
	return c.Dialect
}

func (c *TransactionCommitter) logger() logger.Interface {
	if c.Logger == nil {
		return logger.Discard
	}
	return c.Logger
}

func (c *TransactionCommitter) translator() errtranslator.ErrTranslator {
	if c.Translator == nil {
		return errtranslator.Default
	}
	return c.Translator
}

func (c *TransactionCommitter) scope() tally.Scope {
	if c.Scope == nil {
		return tally.NoopScope
	}
	return c.Scope
}

func (c *TransactionCommitter) now() time.Time {
	if c.NowFunc == nil {
		return time.Now()
	}
	return c.NowFunc()
}
