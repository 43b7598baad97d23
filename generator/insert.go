package generator

import (
	"context"
	"strings"

	"github.com/chillisoft/habanero/bo"
	"github.com/chillisoft/habanero/datamapper"
	"github.com/chillisoft/habanero/schema"
	"github.com/chillisoft/habanero/statement"
)

// InsertStatementGenerator generates the INSERT statements of a new object,
// one per physical table of its inheritance chain, leaf table first
type InsertStatementGenerator struct {
	obj    BusinessObject
	config Config
}

func NewInsertStatementGenerator(obj BusinessObject, opts ...Option) *InsertStatementGenerator {
	return &InsertStatementGenerator{obj: obj, config: newConfig(opts)}
}

// Generate returns every statement or an error, never a partial set
func (g *InsertStatementGenerator) Generate() (stmts []*statement.SqlStatement, err error) {
	defer func() { logGenerated(g.config.Logger, "insert", g.obj, stmts, err) }()

	var discriminators []*bo.BOProp
	for _, table := range g.obj.ClassDef().PhysicalTables() {
		stmt, props, err := g.generateSingleInsertStatement(table)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		discriminators = append(discriminators, props...)
	}

	// the object carries its concrete class name once generation succeeded
	for _, prop := range discriminators {
		if err := prop.Assign(g.obj.ClassDef().ClassName); err != nil {
			return nil, err
		}
	}
	return stmts, nil
}

func (g *InsertStatementGenerator) generateSingleInsertStatement(table schema.TableMapping) (*statement.SqlStatement, []*bo.BOProp, error) {
	var (
		fields        fieldList
		autoIncrement *bo.BOProp
	)

	for _, pd := range table.PropDefs() {
		prop := g.obj.Props().Get(pd.Name)
		if prop == nil || !pd.Persistable {
			continue
		}
		if pd.AutoIncrementing {
			autoIncrement = prop
			continue
		}
		fields.set(pd.FieldName(), prop.DatabaseValue())
	}

	discriminators, err := g.addDiscriminators(table, &fields)
	if err != nil {
		return nil, nil, err
	}
	if err := g.addParentID(table, &fields); err != nil {
		return nil, nil, err
	}

	if autoIncrement == nil {
		return statement.BuildInsert(g.config.Dialect, table.TableName, fields.fields, ""), discriminators, nil
	}
	return statement.BuildInsert(g.config.Dialect, table.TableName, fields.fields, autoIncrement.FieldName(),
		statement.WithPostExecute(func(ctx context.Context, result statement.Result) error {
			return g.obj.SetAutoIncrementingFieldValue(result.LastInsertID)
		}),
	), discriminators, nil
}

// addDiscriminators sets the discriminator of every single table link stored
// in table to the concrete class name, reusing a declared property of the
// same name. The declared properties found are returned.
func (g *InsertStatementGenerator) addDiscriminators(table schema.TableMapping, fields *fieldList) ([]*bo.BOProp, error) {
	mapper, err := g.config.Registry.Lookup(datamapper.String)
	if err != nil {
		return nil, err
	}
	className, _ := mapper.DatabaseValue(g.obj.ClassDef().ClassName)

	var props []*bo.BOProp
	for _, cd := range table.Classes[:len(table.Classes)-1] {
		sc := cd.SuperClassDef
		if sc.ORMapping != schema.SingleTableInheritance {
			continue
		}
		if sc.Discriminator == "" {
			return nil, schema.NewDefinitionError(cd.FullName(), ErrMissingDiscriminator, "superclass %s", sc.SuperClassName)
		}

		column := sc.Discriminator
		for _, pd := range table.PropDefs() {
			if strings.EqualFold(pd.Name, sc.Discriminator) || strings.EqualFold(pd.FieldName(), sc.Discriminator) {
				column = pd.FieldName()
				if prop := g.obj.Props().Get(pd.Name); prop != nil {
					props = append(props, prop)
				}
				break
			}
		}
		fields.set(column, className)
	}
	return props, nil
}

// addParentID copies the parent key into a class table child, under the
// parent column names or the ID override
func (g *InsertStatementGenerator) addParentID(table schema.TableMapping, fields *fieldList) error {
	if table.Parent == nil {
		return nil
	}
	parentKey, err := table.Parent.ParentKeyFields()
	if err != nil {
		return err
	}

	for _, kf := range parentKey {
		prop := g.obj.Props().Get(kf.ParentProp.Name)
		if prop == nil {
			return schema.NewDefinitionError(table.Head().FullName(), schema.ErrUnknownProperty, "parent key property %s", kf.ParentProp.Name)
		}
		if prop.PropDef().AutoIncrementing {
			fields.set(kf.FieldName, statement.Lazy(prop.DatabaseValue))
			continue
		}
		fields.set(kf.FieldName, prop.DatabaseValue())
	}
	return nil
}
