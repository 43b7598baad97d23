package bo

import (
	"fmt"
	"strings"

	"github.com/chillisoft/habanero/datamapper"
	"github.com/chillisoft/habanero/schema"
	"github.com/google/uuid"
)

// BusinessObject is an instance of a ClassDef. It holds a property for
// every PropDef of the class and its ancestors.
type BusinessObject struct {
	classDef  *schema.ClassDef
	props     *BOPropCol
	isNew     bool
	isDeleted bool
}

// New returns a new object of cd with default values applied and a fresh
// Guid assigned to an object id key
func New(cd *schema.ClassDef, registry *datamapper.Registry) (*BusinessObject, error) {
	obj, err := build(cd, registry)
	if err != nil {
		return nil, err
	}
	obj.isNew = true

	for _, prop := range obj.props.All() {
		if def := prop.def.DefaultValue; def != nil {
			if err := prop.set(def); err != nil {
				return nil, schema.NewDefinitionError(cd.FullName(), err, "default value of %s", prop.Name())
			}
		}
		prop.validate()
	}

	if pk := cd.GetPrimaryKeyDef(); pk != nil && pk.IsObjectID && len(pk.PropNames) == 1 {
		if prop := obj.props.Get(pk.PropNames[0]); prop != nil && prop.value == nil {
			if err := prop.set(uuid.New()); err != nil {
				return nil, err
			}
		}
	}
	return obj, nil
}

// Load returns a persisted object of cd holding values, keyed by property
// or field name
func Load(cd *schema.ClassDef, registry *datamapper.Registry, values map[string]interface{}) (*BusinessObject, error) {
	obj, err := build(cd, registry)
	if err != nil {
		return nil, err
	}

	byField := make(map[string]interface{}, len(values))
	for name, value := range values {
		byField[strings.ToLower(name)] = value
	}

	for _, prop := range obj.props.All() {
		value, ok := byField[strings.ToLower(prop.Name())]
		if !ok {
			value = byField[strings.ToLower(prop.FieldName())]
		}
		if err := prop.initialise(value); err != nil {
			return nil, err
		}
		prop.isObjectNew = false
	}
	return obj, nil
}

func build(cd *schema.ClassDef, registry *datamapper.Registry) (*BusinessObject, error) {
	obj := &BusinessObject{classDef: cd, props: newBOPropCol()}
	for _, def := range cd.PropDefColIncludingInheritance().All() {
		mapper, err := registry.Lookup(def.Kind())
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", cd.FullName(), def.Name, err)
		}
		obj.props.add(newBOProp(def, mapper))
	}
	return obj, nil
}

func (obj *BusinessObject) ClassDef() *schema.ClassDef {
	return obj.classDef
}

func (obj *BusinessObject) Props() *BOPropCol {
	return obj.props
}

// IsNew reports whether the object has never been saved
func (obj *BusinessObject) IsNew() bool {
	return obj.isNew
}

func (obj *BusinessObject) IsDeleted() bool {
	return obj.isDeleted
}

// IsDirty reports unsaved changes, a new object or one marked for delete is dirty
func (obj *BusinessObject) IsDirty() bool {
	return obj.isNew || obj.isDeleted || obj.props.IsDirty()
}

// IsValid returns an error listing every invalid property
func (obj *BusinessObject) IsValid() error {
	if reasons := obj.props.InvalidReasons(); len(reasons) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPropValue, strings.Join(reasons, "; "))
	}
	return nil
}

// MarkForDelete flags the object to be deleted on the next save
func (obj *BusinessObject) MarkForDelete() {
	obj.isDeleted = true
}

func (obj *BusinessObject) prop(name string) (*BOProp, error) {
	if prop := obj.props.Get(name); prop != nil {
		return prop, nil
	}
	return nil, fmt.Errorf("%w: %s.%s", ErrUnknownProp, obj.classDef.ClassName, name)
}

func (obj *BusinessObject) GetPropertyValue(name string) (interface{}, error) {
	prop, err := obj.prop(name)
	if err != nil {
		return nil, err
	}
	return prop.Value(), nil
}

func (obj *BusinessObject) GetPropertyValueString(name string) (string, error) {
	prop, err := obj.prop(name)
	if err != nil {
		return "", err
	}
	return prop.PropertyValueString(), nil
}

func (obj *BusinessObject) SetPropertyValue(name string, value interface{}) error {
	prop, err := obj.prop(name)
	if err != nil {
		return err
	}
	return prop.SetValue(value)
}

// ResolveKey implements datamapper.KeyResolver, an object assigned to a
// foreign key property stands for its single property primary key
func (obj *BusinessObject) ResolveKey() (interface{}, bool) {
	pk := obj.classDef.GetPrimaryKeyDef()
	if pk == nil || len(pk.PropNames) != 1 {
		return nil, false
	}
	prop := obj.props.Get(pk.PropNames[0])
	if prop == nil {
		return nil, false
	}
	return prop.Value(), true
}

// ID returns the primary key of the object, nil when the class has none
func (obj *BusinessObject) ID() *PrimaryKey {
	pk := obj.classDef.GetPrimaryKeyDef()
	if pk == nil {
		return nil
	}
	key := &PrimaryKey{def: pk}
	for _, name := range pk.PropNames {
		if prop := obj.props.Get(name); prop != nil {
			key.props = append(key.props, prop)
		}
	}
	return key
}

// SetAutoIncrementingFieldValue writes back the value the database assigned
func (obj *BusinessObject) SetAutoIncrementingFieldValue(value int64) error {
	prop := obj.props.AutoIncrementingProp()
	if prop == nil {
		return fmt.Errorf("%w: %s", ErrNoAutoIncrementingProp, obj.classDef.FullName())
	}
	return prop.set(value)
}

// AfterSave commits the object state once its statements have been executed
func (obj *BusinessObject) AfterSave() {
	for _, prop := range obj.props.All() {
		prop.UpdateStateAsPersisted()
	}
	obj.isNew = false
}

func (obj *BusinessObject) String() string {
	if id := obj.ID(); id != nil {
		return obj.classDef.ClassName + "(" + id.AsString() + ")"
	}
	return obj.classDef.ClassName
}

// PrimaryKey is the primary key of one object
type PrimaryKey struct {
	def   *schema.PrimaryKeyDef
	props []*BOProp
}

// Props returns the key properties in key order
func (k *PrimaryKey) Props() []*BOProp {
	return append([]*BOProp(nil), k.props...)
}

func (k *PrimaryKey) IsObjectID() bool {
	return k.def.IsObjectID
}

// AsString is the canonical value of a single property key, composite
// keys render as Name=Value pairs joined by ";"
func (k *PrimaryKey) AsString() string {
	if len(k.props) == 1 {
		return k.props[0].PropertyValueString()
	}
	parts := make([]string, 0, len(k.props))
	for _, prop := range k.props {
		parts = append(parts, prop.String())
	}
	return strings.Join(parts, ";")
}
