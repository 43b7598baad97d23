package schema_test

import (
	"strings"
	"testing"

	"github.com/chillisoft/habanero/datamapper"
	"github.com/chillisoft/habanero/schema"
	"github.com/chillisoft/habanero/utils/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAdd(t *testing.T) {
	shape, circle, filledCircle := tests.SingleTableShapes()
	catalog := schema.NewCatalog()
	require.NoError(t, catalog.Add(filledCircle, circle, shape))

	found, err := catalog.Get("shapes", "circle")
	require.NoError(t, err)
	assert.Equal(t, circle, found)

	found, err = catalog.Find("FilledCircle")
	require.NoError(t, err)
	assert.Equal(t, filledCircle, found)

	_, err = catalog.Find("Square")
	assert.ErrorIs(t, err, schema.ErrUnknownClass)

	var names []string
	for _, cd := range catalog.All() {
		names = append(names, cd.FullName())
	}
	assert.Equal(t, []string{"Shapes.Circle", "Shapes.FilledCircle", "Shapes.Shape"}, names)
	assert.NoError(t, catalog.Validate())
}

func TestCatalogResolvesSuperClassNames(t *testing.T) {
	shape := tests.Shape()
	circle := schema.NewClassDef(tests.Assembly, "Circle", schema.NewPropDef("Radius", datamapper.Int))
	circle.SuperClassDef = &schema.SuperClassDef{SuperClassName: "Shape", ORMapping: schema.ClassTableInheritance}

	catalog := schema.NewCatalog()
	require.NoError(t, catalog.Add(circle, shape))
	assert.Equal(t, shape, circle.SuperClassClassDef())

	square := schema.NewClassDef(tests.Assembly, "Square")
	square.SuperClassDef = &schema.SuperClassDef{SuperClassName: "Shape", SuperAssemblyName: tests.Assembly, ORMapping: schema.ConcreteTableInheritance}
	require.NoError(t, catalog.Add(square))
	assert.Equal(t, shape, square.SuperClassClassDef())
}

func TestCatalogAddFailureLeavesDefinitionsUntouched(t *testing.T) {
	shape := schema.NewClassDef(tests.Assembly, "Shape", schema.NewPropDef("ShapeName", datamapper.String))
	circle := schema.NewClassDef(tests.Assembly, "Circle", schema.NewPropDef("Radius", datamapper.Int))
	circle.SuperClassDef = &schema.SuperClassDef{SuperClassName: "Shape", ORMapping: schema.SingleTableInheritance}

	catalog := schema.NewCatalog(schema.WithNamer(schema.NamingStrategy{}))
	assert.ErrorIs(t, catalog.Add(shape, circle), schema.ErrMissingDiscriminator)
	assert.Nil(t, circle.SuperClassDef.SuperClass)
	assert.Empty(t, shape.TableName)
	assert.Empty(t, circle.PropDefs.Get("Radius").DatabaseFieldName)

	circle.SuperClassDef.Discriminator = "ShapeType"
	require.NoError(t, catalog.Add(shape, circle))
	assert.Equal(t, shape, circle.SuperClassDef.SuperClass)
	assert.Equal(t, "shapes", shape.TableName)
	assert.Equal(t, "radius", circle.PropDefs.Get("Radius").DatabaseFieldName)
}

func TestCatalogRejectsInvalidDefinitions(t *testing.T) {
	t.Run("missing discriminator", func(t *testing.T) {
		shape, circle, _ := tests.SingleTableShapes()
		circle.SuperClassDef.Discriminator = ""

		catalog := schema.NewCatalog()
		err := catalog.Add(shape, circle)
		assert.ErrorIs(t, err, schema.ErrMissingDiscriminator)
		assert.ErrorIs(t, err, schema.ErrInvalidDefinition)
		assert.Empty(t, catalog.All(), "nothing is registered when a definition is invalid")
	})

	t.Run("composite key copy", func(t *testing.T) {
		part, bolt := tests.Parts("PartID")
		err := schema.NewCatalog().Add(part, bolt)
		assert.ErrorIs(t, err, schema.ErrCompositeKeyCopy)
	})

	t.Run("composite key without override", func(t *testing.T) {
		part, bolt := tests.Parts("")
		assert.NoError(t, schema.NewCatalog().Add(part, bolt))
	})

	t.Run("unknown superclass", func(t *testing.T) {
		circle := schema.NewClassDef(tests.Assembly, "Circle")
		circle.SuperClassDef = &schema.SuperClassDef{SuperClassName: "Ellipse"}
		err := schema.NewCatalog().Add(circle)
		assert.ErrorIs(t, err, schema.ErrUnknownClass)
		assert.ErrorIs(t, err, schema.ErrInvalidDefinition)
	})

	t.Run("duplicate class", func(t *testing.T) {
		catalog := tests.Catalog(tests.Shape())
		err := catalog.Add(tests.Shape())
		assert.ErrorIs(t, err, schema.ErrDuplicateClass)
	})

	t.Run("unknown key property", func(t *testing.T) {
		shape := tests.Shape()
		shape.Keys = append(shape.Keys, schema.NewKeyDef("UniqueName", "Name"))
		err := schema.NewCatalog().Add(shape)
		assert.ErrorIs(t, err, schema.ErrUnknownProperty)
	})

	t.Run("unknown primary key property", func(t *testing.T) {
		car := tests.Car()
		car.PrimaryKeyDef = schema.NewPrimaryKeyDef("ID")
		err := schema.NewCatalog().Add(car)
		assert.ErrorIs(t, err, schema.ErrUnknownProperty)
	})

	t.Run("object id must be a guid", func(t *testing.T) {
		car := tests.Car()
		car.PrimaryKeyDef = schema.NewObjectIDKeyDef("Make")
		err := schema.NewCatalog().Add(car)
		assert.ErrorIs(t, err, schema.ErrInvalidDefinition)
	})

	t.Run("duplicate property", func(t *testing.T) {
		shape := tests.Shape()
		shape.PropDefs.Add(schema.NewPropDef("shapename", datamapper.String))
		err := schema.NewCatalog().Add(shape)
		assert.ErrorIs(t, err, schema.ErrInvalidDefinition)
		assert.Contains(t, err.Error(), "declared twice")
	})

	t.Run("two auto incrementing properties", func(t *testing.T) {
		car := tests.Car()
		counter := schema.NewPropDef("Counter", datamapper.Int)
		counter.AutoIncrementing = true
		car.PropDefs.Add(counter)
		err := schema.NewCatalog().Add(car)
		assert.ErrorIs(t, err, schema.ErrInvalidDefinition)
	})

	t.Run("invalid table name", func(t *testing.T) {
		shape := tests.Shape()
		shape.TableName = "shape table"
		err := schema.NewCatalog().Add(shape)
		assert.ErrorIs(t, err, schema.ErrInvalidDefinition)
	})

	t.Run("empty class name", func(t *testing.T) {
		err := schema.NewCatalog().Add(schema.NewClassDef("Shapes", ""))
		assert.ErrorIs(t, err, schema.ErrInvalidDefinition)
	})
}

func TestCatalogNamer(t *testing.T) {
	shape, circle := tests.ClassTableShapes("")
	catalog := schema.NewCatalog(schema.WithNamer(schema.NamingStrategy{}))
	require.NoError(t, catalog.Add(shape, circle))

	assert.Equal(t, "shapes", shape.GetTableName())
	assert.Equal(t, "circles", circle.GetTableName())
	assert.Equal(t, "shape_id", shape.GetPropDef("ShapeID").FieldName())
	assert.Equal(t, "radius", circle.GetPropDef("Radius").FieldName())
}

func TestCatalogValidateRelationships(t *testing.T) {
	car := tests.Car()
	owner := schema.NewPropDef("OwnerID", datamapper.Guid)
	car.PropDefs.Add(owner)
	car.RelationshipDefs = append(car.RelationshipDefs, &schema.RelationshipDef{
		Name:             "Owner",
		RelatedClassName: "Person",
		RelKey:           []schema.RelPropDef{{OwnerPropName: "OwnerID", RelatedPropName: "PersonID"}},
	})

	catalog := tests.Catalog(car)
	err := catalog.Validate()
	assert.ErrorIs(t, err, schema.ErrUnknownClass)

	person := schema.NewClassDef("Vehicles", "Person", schema.NewPropDef("PersonID", datamapper.Guid))
	person.PrimaryKeyDef = schema.NewObjectIDKeyDef("PersonID")
	person.RelationshipDefs = append(person.RelationshipDefs, &schema.RelationshipDef{
		Name:             "Cars",
		RelatedClassName: "Car",
		Cardinality:      schema.Multiple,
		DeleteAction:     schema.DeleteRelated,
		RelKey:           []schema.RelPropDef{{OwnerPropName: "PersonID", RelatedPropName: "OwnerID"}},
	})
	require.NoError(t, catalog.Add(person))
	assert.NoError(t, catalog.Validate())

	car.RelationshipDefs[0].ReverseRelationshipName = "Vehicles"
	err = catalog.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "reverse relationship Vehicles"))

	car.RelationshipDefs[0].ReverseRelationshipName = "cars"
	assert.NoError(t, catalog.Validate())
	assert.Equal(t, car.RelationshipDefs[0], car.GetRelationshipDef("owner"))
}

func TestCatalogsAreIndependent(t *testing.T) {
	first := tests.Catalog(tests.Shape())
	second := schema.NewCatalog()

	_, err := first.Find("Shape")
	assert.NoError(t, err)
	_, err = second.Find("Shape")
	assert.ErrorIs(t, err, schema.ErrUnknownClass)
}
