package generator

import (
	"github.com/chillisoft/habanero/statement"
)

// DeleteStatementGenerator generates one DELETE per physical table, leaf
// table first so child rows go before the rows they reference
type DeleteStatementGenerator struct {
	obj    BusinessObject
	config Config
}

func NewDeleteStatementGenerator(obj BusinessObject, opts ...Option) *DeleteStatementGenerator {
	return &DeleteStatementGenerator{obj: obj, config: newConfig(opts)}
}

func (g *DeleteStatementGenerator) Generate() (stmts []*statement.SqlStatement, err error) {
	defer func() { logGenerated(g.config.Logger, "delete", g.obj, stmts, err) }()

	for _, table := range g.obj.ClassDef().PhysicalTables() {
		where, err := keyFields(g.obj, table)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, statement.BuildDelete(g.config.Dialect, table.TableName, where))
	}
	return stmts, nil
}
