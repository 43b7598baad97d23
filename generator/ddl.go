package generator

import (
	"context"
	"strings"

	"github.com/chillisoft/habanero/datamapper"
	"github.com/chillisoft/habanero/schema"
	"github.com/chillisoft/habanero/statement"
)

const discriminatorSize = 255

type column struct {
	name     string
	dataType string
	notNull  bool
}

type table struct {
	name       string
	columns    []*column
	index      map[string]*column
	primaryKey []string
	uniques    []*schema.KeyDef
	classes    map[*schema.ClassDef]bool
}

func (t *table) addColumn(name, dataType string, notNull bool) {
	key := strings.ToLower(name)
	if c, ok := t.index[key]; ok {
		c.notNull = c.notNull && notNull
		return
	}
	c := &column{name: name, dataType: dataType, notNull: notNull}
	t.index[key] = c
	t.columns = append(t.columns, c)
}

// CreateTableGenerator generates CREATE TABLE statements for the physical
// tables of a set of classes. Classes sharing a table are merged into one
// statement and every table precedes the tables referencing its key.
type CreateTableGenerator struct {
	classes []*schema.ClassDef
	config  Config
}

func NewCreateTableGenerator(classes []*schema.ClassDef, opts ...Option) *CreateTableGenerator {
	return &CreateTableGenerator{classes: classes, config: newConfig(opts)}
}

// ForCatalog generates the tables of every class in catalog, named with the
// catalog namer
func ForCatalog(catalog *schema.Catalog, opts ...Option) *CreateTableGenerator {
	return NewCreateTableGenerator(catalog.All(), append([]Option{WithNamer(catalog.Namer())}, opts...)...)
}

func (g *CreateTableGenerator) Generate() ([]*statement.SqlStatement, error) {
	var (
		tables []*table
		byName = map[string]*table{}
	)

	for _, cd := range g.classes {
		mappings := cd.PhysicalTables()
		for i := len(mappings) - 1; i >= 0; i-- {
			mapping := mappings[i]
			key := strings.ToLower(mapping.TableName)
			t, ok := byName[key]
			if !ok {
				t = &table{name: mapping.TableName, index: map[string]*column{}, classes: map[*schema.ClassDef]bool{}}
				byName[key] = t
				tables = append(tables, t)
			}
			if err := g.addMapping(t, mapping); err != nil {
				return nil, err
			}
		}
	}

	stmts := make([]*statement.SqlStatement, 0, len(tables))
	for _, t := range tables {
		stmts = append(stmts, statement.NewDDL(t.name, g.createTableSQL(t)))
	}
	g.config.Logger.Info(context.Background(), "generated %d create table statement(s)", len(stmts))
	return stmts, nil
}

func (g *CreateTableGenerator) addMapping(t *table, mapping schema.TableMapping) error {
	d := g.config.Dialect

	// root classes first so inherited columns lead
	for i := len(mapping.Classes) - 1; i >= 0; i-- {
		cd := mapping.Classes[i]
		if t.classes[cd] {
			continue
		}
		t.classes[cd] = true
		for _, pd := range cd.PropDefs.All() {
			if !pd.Persistable {
				continue
			}
			t.addColumn(pd.FieldName(), d.DataTypeOf(pd.Kind(), pd.Length, pd.AutoIncrementing), pd.Compulsory)
		}
		for _, key := range cd.Keys {
			t.uniques = append(t.uniques, g.fieldKey(cd, key))
		}
	}

	for _, cd := range mapping.Classes[:len(mapping.Classes)-1] {
		sc := cd.SuperClassDef
		if sc.ORMapping != schema.SingleTableInheritance {
			continue
		}
		if sc.Discriminator == "" {
			return schema.NewDefinitionError(cd.FullName(), ErrMissingDiscriminator, "superclass %s", sc.SuperClassName)
		}
		if mapping.Head().GetPropDef(sc.Discriminator) == nil {
			t.addColumn(sc.Discriminator, d.DataTypeOf(datamapper.String, discriminatorSize, false), false)
		}
	}

	var parentKey []string
	if mapping.Parent != nil {
		fields, err := mapping.Parent.ParentKeyFields()
		if err != nil {
			return err
		}
		for _, kf := range fields {
			t.addColumn(kf.FieldName, d.DataTypeOf(kf.Kind, kf.ParentProp.Length, false), true)
			parentKey = append(parentKey, kf.FieldName)
		}
	}

	if len(t.primaryKey) > 0 {
		return nil
	}
	if pk := mapping.Head().PrimaryKeyDef; (pk == nil || len(pk.PropNames) == 0) && mapping.Parent != nil {
		t.primaryKey = parentKey
	} else if pk := mapping.Head().GetPrimaryKeyDef(); pk != nil {
		for _, name := range pk.PropNames {
			if pd := mapping.Head().GetPropDef(name); pd != nil {
				t.primaryKey = append(t.primaryKey, pd.FieldName())
			}
		}
	}
	for _, name := range t.primaryKey {
		if c, ok := t.index[strings.ToLower(name)]; ok {
			c.notNull = true
		}
	}
	return nil
}

// fieldKey maps the property names of key to field names
func (g *CreateTableGenerator) fieldKey(cd *schema.ClassDef, key *schema.KeyDef) *schema.KeyDef {
	fields := make([]string, 0, len(key.PropNames))
	for _, name := range key.PropNames {
		if pd := cd.GetPropDef(name); pd != nil {
			fields = append(fields, pd.FieldName())
			continue
		}
		fields = append(fields, name)
	}
	return &schema.KeyDef{Name: key.KeyName(), PropNames: fields}
}

func (g *CreateTableGenerator) createTableSQL(t *table) string {
	b := statement.NewBuilder(g.config.Dialect)
	b.WriteString("CREATE TABLE ")
	b.WriteQuoted(t.name)
	b.WriteString(" (")

	inlinePrimaryKey := false
	for idx, c := range t.columns {
		if idx > 0 {
			b.WriteByte(',')
		}
		b.WriteQuoted(c.name)
		b.WriteByte(' ')
		b.WriteString(c.dataType)
		if strings.Contains(strings.ToUpper(c.dataType), "PRIMARY KEY") {
			inlinePrimaryKey = true
			continue
		}
		if c.notNull {
			b.WriteString(" NOT NULL")
		}
	}

	if len(t.primaryKey) > 0 && !inlinePrimaryKey {
		b.WriteString(",PRIMARY KEY (")
		writeColumnList(b, t.primaryKey)
		b.WriteByte(')')
	}

	for _, key := range t.uniques {
		b.WriteString(",CONSTRAINT ")
		b.WriteQuoted(g.config.Namer.IndexName(t.name, key.Name))
		b.WriteString(" UNIQUE (")
		writeColumnList(b, key.PropNames)
		b.WriteByte(')')
	}
	b.WriteByte(')')
	return b.String()
}

func writeColumnList(b *statement.Builder, columns []string) {
	for idx, name := range columns {
		if idx > 0 {
			b.WriteByte(',')
		}
		b.WriteQuoted(name)
	}
}
