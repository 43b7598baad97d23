package schema_test

import (
	"fmt"
	"testing"

	"github.com/chillisoft/habanero/datamapper"
	"github.com/chillisoft/habanero/schema"
	"github.com/chillisoft/habanero/utils/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainNames(cd *schema.ClassDef) []string {
	var names []string
	for _, link := range cd.InheritanceChain() {
		names = append(names, link.ClassDef.ClassName)
	}
	return names
}

func TestInheritanceChain(t *testing.T) {
	shape, circle, filledCircle := tests.SingleTableShapes()

	assert.Equal(t, []string{"FilledCircle", "Circle", "Shape"}, chainNames(filledCircle))
	assert.Equal(t, []string{"Shape"}, chainNames(shape))

	chain := filledCircle.InheritanceChain()
	strategy, ok := chain[0].Strategy()
	assert.True(t, ok)
	assert.Equal(t, schema.SingleTableInheritance, strategy)
	assert.Equal(t, circle, chain[0].Parent())

	_, ok = chain[2].Strategy()
	assert.False(t, ok)
	assert.Nil(t, chain[2].Parent())
}

func TestInheritanceChainStopsOnCycle(t *testing.T) {
	a := schema.NewClassDef("Loop", "A")
	b := schema.NewClassDef("Loop", "B")
	a.SuperClassDef = &schema.SuperClassDef{SuperClass: b}
	b.SuperClassDef = &schema.SuperClassDef{SuperClass: a}

	assert.Equal(t, []string{"A", "B"}, chainNames(a))

	err := schema.NewCatalog().Add(a, b)
	assert.ErrorIs(t, err, schema.ErrInheritanceCycle)
	assert.ErrorIs(t, err, schema.ErrInvalidDefinition)
}

func TestInheritanceStrategies(t *testing.T) {
	_, stiCircle, _ := tests.SingleTableShapes()
	_, ctiCircle := tests.ClassTableShapes("")
	_, concreteCircle := tests.ConcreteTableShapes()
	car := tests.Car()

	results := []struct {
		ClassDef                     *schema.ClassDef
		Single, ClassTable, Concrete bool
	}{
		{stiCircle, true, false, false},
		{ctiCircle, false, true, false},
		{concreteCircle, false, false, true},
		{car, false, false, false},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			assert.Equal(t, result.Single, result.ClassDef.IsUsingSingleTableInheritance())
			assert.Equal(t, result.ClassTable, result.ClassDef.IsUsingClassTableInheritance())
			assert.Equal(t, result.Concrete, result.ClassDef.IsUsingConcreteTableInheritance())
		})
	}
}

func TestGetTableName(t *testing.T) {
	shape, circle, filledCircle := tests.SingleTableShapes()
	shape.TableName = "tbShape"

	assert.Equal(t, "tbShape", shape.GetTableName())
	assert.Equal(t, "tbShape", circle.GetTableName())
	assert.Equal(t, "tbShape", filledCircle.GetTableName())

	_, ctiCircle := tests.ClassTableShapes("")
	assert.Equal(t, "Circle", ctiCircle.GetTableName())
	assert.Equal(t, "Shape", ctiCircle.SuperClassClassDef().GetTableName())

	_, concreteCircle := tests.ConcreteTableShapes()
	assert.Equal(t, "Circle", concreteCircle.GetTableName())
}

func tableNames(tables []schema.TableMapping) []string {
	var names []string
	for _, table := range tables {
		names = append(names, table.TableName)
	}
	return names
}

func TestPhysicalTables(t *testing.T) {
	_, _, filledCircle := tests.SingleTableShapes()
	tables := filledCircle.PhysicalTables()
	require.Len(t, tables, 1)
	assert.Equal(t, "Shape", tables[0].TableName)
	assert.Len(t, tables[0].Classes, 3)
	assert.Nil(t, tables[0].Parent)
	assert.Len(t, tables[0].PropDefs(), 4)

	shape, ctiCircle := tests.ClassTableShapes("")
	tables = ctiCircle.PhysicalTables()
	assert.Equal(t, []string{"Circle", "Shape"}, tableNames(tables))
	require.NotNil(t, tables[0].Parent)
	assert.Equal(t, shape, tables[0].Parent.SuperClass)
	assert.Equal(t, ctiCircle, tables[0].Head())
	assert.Nil(t, tables[1].Parent)

	_, concreteCircle := tests.ConcreteTableShapes()
	tables = concreteCircle.PhysicalTables()
	assert.Equal(t, []string{"Circle"}, tableNames(tables))
	assert.Len(t, tables[0].PropDefs(), 3)
}

func TestPropDefColIncludingInheritance(t *testing.T) {
	_, circle, filledCircle := tests.SingleTableShapes()

	col := filledCircle.PropDefColIncludingInheritance()
	assert.Equal(t, []string{"Colour", "Radius", "ShapeID", "ShapeName"}, col.Names())
	assert.True(t, col.Contains("shapeid"))

	assert.Equal(t, "Radius", filledCircle.GetPropDef("radius").Name)
	assert.Nil(t, circle.GetPropDef("Colour"))

	pk := filledCircle.GetPrimaryKeyDef()
	require.NotNil(t, pk)
	assert.True(t, pk.IsObjectID)
	assert.Equal(t, []string{"ShapeID"}, pk.PropNames)
	assert.Equal(t, "ShapeID", pk.KeyName())
}

func TestParentKeyFields(t *testing.T) {
	results := []struct {
		ID     string
		Fields []string
		Kind   datamapper.Kind
	}{
		{"", []string{"ShapeID"}, datamapper.Guid},
		{"shapeid", []string{"ShapeID"}, datamapper.Guid},
		{"CircleID", []string{"CircleID"}, datamapper.Guid},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			shape, circle := tests.ClassTableShapes(result.ID)
			fields, err := circle.SuperClassDef.ParentKeyFields()
			require.NoError(t, err)

			var names []string
			for _, field := range fields {
				names = append(names, field.FieldName)
				assert.Equal(t, result.Kind, field.Kind)
				assert.Equal(t, shape.GetPropDef("ShapeID"), field.ParentProp)
			}
			assert.Equal(t, result.Fields, names)
		})
	}
}

func TestCompositeParentKey(t *testing.T) {
	_, bolt := tests.Parts("")
	fields, err := bolt.SuperClassDef.ParentKeyFields()
	require.NoError(t, err)
	assert.Len(t, fields, 2)

	_, bolt = tests.Parts("PartID")
	_, err = bolt.SuperClassDef.ParentKeyFields()
	assert.ErrorIs(t, err, schema.ErrCompositeKeyCopy)
	assert.ErrorIs(t, err, schema.ErrInvalidDefinition)

	var defErr *schema.DefinitionError
	require.ErrorAs(t, err, &defErr)
	assert.Equal(t, "Parts.Part", defErr.Class)
}

func TestEnumText(t *testing.T) {
	var mapping schema.ORMapping
	require.NoError(t, mapping.UnmarshalText([]byte("singletableinheritance")))
	assert.Equal(t, schema.SingleTableInheritance, mapping)
	assert.Error(t, mapping.UnmarshalText([]byte("Inheritance")))

	var rule schema.ReadWriteRule
	require.NoError(t, rule.UnmarshalText([]byte("WriteNotNew")))
	assert.Equal(t, schema.WriteNotNew, rule)
	assert.Equal(t, "WriteNotNew", rule.String())

	var action schema.DeleteAction
	require.NoError(t, action.UnmarshalText([]byte("DereferenceRelated")))
	assert.Equal(t, schema.DereferenceRelated, action)

	var cardinality schema.Cardinality
	require.NoError(t, cardinality.UnmarshalText([]byte("multiple")))
	assert.Equal(t, schema.Multiple, cardinality)
}
