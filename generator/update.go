package generator

import (
	"github.com/chillisoft/habanero/statement"
)

// UpdateStatementGenerator generates one UPDATE per physical table holding
// dirty properties, each keyed by the persisted key values
type UpdateStatementGenerator struct {
	obj    BusinessObject
	config Config
}

func NewUpdateStatementGenerator(obj BusinessObject, opts ...Option) *UpdateStatementGenerator {
	return &UpdateStatementGenerator{obj: obj, config: newConfig(opts)}
}

func (g *UpdateStatementGenerator) Generate() (stmts []*statement.SqlStatement, err error) {
	defer func() { logGenerated(g.config.Logger, "update", g.obj, stmts, err) }()

	for _, table := range g.obj.ClassDef().PhysicalTables() {
		var set fieldList
		for _, pd := range table.PropDefs() {
			prop := g.obj.Props().Get(pd.Name)
			if prop == nil || !pd.Persistable || pd.AutoIncrementing || !prop.IsDirty() {
				continue
			}
			set.set(pd.FieldName(), prop.DatabaseValue())
		}
		if len(set.fields) == 0 {
			continue
		}

		where, err := keyFields(g.obj, table)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, statement.BuildUpdate(g.config.Dialect, table.TableName, set.fields, where))
	}
	return stmts, nil
}
