package tests

import (
	"github.com/chillisoft/habanero/datamapper"
	"github.com/chillisoft/habanero/schema"
)

const Assembly = "Shapes"

// Shape is the root of every hierarchy, keyed by an object id
func Shape() *schema.ClassDef {
	shape := schema.NewClassDef(Assembly, "Shape",
		schema.NewPropDef("ShapeID", datamapper.Guid),
		schema.NewPropDef("ShapeName", datamapper.String),
	)
	shape.PrimaryKeyDef = schema.NewObjectIDKeyDef("ShapeID")
	return shape
}

// SingleTableShapes Shape <- Circle <- FilledCircle stored in the Shape table,
// each link with its own discriminator
func SingleTableShapes() (shape, circle, filledCircle *schema.ClassDef) {
	shape = Shape()

	circle = schema.NewClassDef(Assembly, "Circle", schema.NewPropDef("Radius", datamapper.Int))
	circle.SuperClassDef = &schema.SuperClassDef{
		SuperClass:    shape,
		ORMapping:     schema.SingleTableInheritance,
		Discriminator: "ShapeType",
	}

	filledCircle = schema.NewClassDef(Assembly, "FilledCircle", schema.NewPropDef("Colour", datamapper.Int))
	filledCircle.SuperClassDef = &schema.SuperClassDef{
		SuperClass:    circle,
		ORMapping:     schema.SingleTableInheritance,
		Discriminator: "CircleType",
	}
	return shape, circle, filledCircle
}

// ClassTableShapes Shape <- Circle, each in its own table. id overrides the
// column Circle stores the Shape key in.
func ClassTableShapes(id string) (shape, circle *schema.ClassDef) {
	shape = Shape()

	circle = schema.NewClassDef(Assembly, "Circle", schema.NewPropDef("Radius", datamapper.Int))
	circle.SuperClassDef = &schema.SuperClassDef{
		SuperClass: shape,
		ORMapping:  schema.ClassTableInheritance,
		ID:         id,
	}
	return shape, circle
}

// ConcreteTableShapes Shape <- Circle, Circle's table holds the Shape properties
func ConcreteTableShapes() (shape, circle *schema.ClassDef) {
	shape = Shape()

	circle = schema.NewClassDef(Assembly, "Circle", schema.NewPropDef("Radius", datamapper.Int))
	circle.SuperClassDef = &schema.SuperClassDef{
		SuperClass: shape,
		ORMapping:  schema.ConcreteTableInheritance,
	}
	return shape, circle
}

// Car is keyed by a database assigned integer
func Car() *schema.ClassDef {
	carID := schema.NewPropDef("CarID", datamapper.Int)
	carID.AutoIncrementing = true
	makeName := schema.NewPropDef("Make", datamapper.String)
	makeName.Compulsory = true
	registered := schema.NewPropDef("Registered", datamapper.DateTime)
	registered.DatabaseFieldName = "RegisteredOn"

	car := schema.NewClassDef("Vehicles", "Car", carID, makeName, registered, schema.NewPropDef("Active", datamapper.Bool))
	car.PrimaryKeyDef = schema.NewPrimaryKeyDef("CarID")
	return car
}

// SportsCar extends Car through class table inheritance
func SportsCar() (car, sportsCar *schema.ClassDef) {
	car = Car()
	sportsCar = schema.NewClassDef("Vehicles", "SportsCar", schema.NewPropDef("TopSpeed", datamapper.Int))
	sportsCar.SuperClassDef = &schema.SuperClassDef{SuperClass: car, ORMapping: schema.ClassTableInheritance}
	return car, sportsCar
}

// Parts Part is keyed by (PartNo, Revision), Bolt copies that key under
// idOverride when set
func Parts(idOverride string) (part, bolt *schema.ClassDef) {
	part = schema.NewClassDef("Parts", "Part",
		schema.NewPropDef("PartNo", datamapper.String),
		schema.NewPropDef("Revision", datamapper.Int),
		schema.NewPropDef("Description", datamapper.String),
	)
	part.PrimaryKeyDef = schema.NewPrimaryKeyDef("PartNo", "Revision")

	bolt = schema.NewClassDef("Parts", "Bolt", schema.NewPropDef("Thread", datamapper.String))
	bolt.SuperClassDef = &schema.SuperClassDef{SuperClass: part, ORMapping: schema.ClassTableInheritance, ID: idOverride}
	return part, bolt
}

// Catalog returns a catalog holding defs, it panics on an invalid definition
func Catalog(defs ...*schema.ClassDef) *schema.Catalog {
	catalog := schema.NewCatalog()
	if err := catalog.Add(defs...); err != nil {
		panic(err)
	}
	return catalog
}
