package bo

import (
	"context"
	"fmt"

	"github.com/chillisoft/habanero/datamapper"
	"github.com/chillisoft/habanero/schema"
)

// BOProp is the value of one property of one business object
type BOProp struct {
	def            *schema.PropDef
	mapper         datamapper.Mapper
	value          interface{}
	persistedValue interface{}
	isDirty        bool
	isObjectNew    bool
	invalidReason  string
}

func newBOProp(def *schema.PropDef, mapper datamapper.Mapper) *BOProp {
	return &BOProp{def: def, mapper: mapper, isObjectNew: true}
}

func (p *BOProp) PropDef() *schema.PropDef {
	return p.def
}

func (p *BOProp) Name() string {
	return p.def.Name
}

func (p *BOProp) FieldName() string {
	return p.def.FieldName()
}

func (p *BOProp) Value() interface{} {
	return p.value
}

// PersistedValue is the value last read from or written to the database
func (p *BOProp) PersistedValue() interface{} {
	return p.persistedValue
}

func (p *BOProp) IsDirty() bool {
	return p.isDirty
}

// IsValid reports false for a compulsory property without a value
func (p *BOProp) IsValid() bool {
	return p.invalidReason == ""
}

func (p *BOProp) InvalidReason() string {
	return p.invalidReason
}

// PropertyValueString is the canonical string form of the value
func (p *BOProp) PropertyValueString() string {
	return p.mapper.ConvertToString(p.value)
}

// DatabaseValue is the value bound as an SQL argument
func (p *BOProp) DatabaseValue() interface{} {
	v, _ := p.mapper.DatabaseValue(p.value)
	return v
}

// PersistedDatabaseValue is the persisted value bound as an SQL argument
func (p *BOProp) PersistedDatabaseValue() interface{} {
	v, _ := p.mapper.DatabaseValue(p.persistedValue)
	return v
}

// SetValue parses value with the property kind. An unparseable value or a
// change the read write rule forbids leaves the property unchanged.
func (p *BOProp) SetValue(value interface{}) error {
	if err := p.checkWritable(); err != nil {
		return err
	}
	return p.set(value)
}

// Assign sets value without the read write rule, for values the
// persistence layer owns such as discriminators
func (p *BOProp) Assign(value interface{}) error {
	return p.set(value)
}

func (p *BOProp) checkWritable() error {
	switch p.def.ReadWriteRule {
	case schema.ReadOnly:
		return fmt.Errorf("%w: %s is read only", ErrReadWriteRule, p.def.Name)
	case schema.WriteNew:
		if !p.isObjectNew {
			return fmt.Errorf("%w: %s can only be set on a new object", ErrReadWriteRule, p.def.Name)
		}
	case schema.WriteNotNew:
		if p.isObjectNew {
			return fmt.Errorf("%w: %s cannot be set on a new object", ErrReadWriteRule, p.def.Name)
		}
	case schema.WriteOnce:
		if p.persistedValue != nil {
			return fmt.Errorf("%w: %s has already been written", ErrReadWriteRule, p.def.Name)
		}
	}
	return nil
}

func (p *BOProp) set(value interface{}) error {
	parsed, ok := p.mapper.TryParse(value)
	if !ok {
		return fmt.Errorf("%w: %v is not a valid %v for %s", ErrInvalidPropValue, value, p.def.Kind(), p.def.Name)
	}
	p.value = parsed
	p.isDirty = !p.equal(p.value, p.persistedValue)
	p.validate()
	return nil
}

// initialise sets value as the persisted state
func (p *BOProp) initialise(value interface{}) error {
	if err := p.set(value); err != nil {
		return err
	}
	p.BackupPropValue()
	return nil
}

func (p *BOProp) equal(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return p.mapper.ConvertToString(a) == p.mapper.ConvertToString(b)
}

func (p *BOProp) validate() {
	p.invalidReason = ""
	if p.def.Compulsory && p.value == nil {
		p.invalidReason = fmt.Sprintf("'%s' is a compulsory field and has no value", p.def.Name)
	}
}

// SetDisplayValue sets the key the lookup list maps display to
func (p *BOProp) SetDisplayValue(ctx context.Context, display string) error {
	if p.def.LookupList == nil {
		return fmt.Errorf("%w: %s", ErrNoLookupList, p.def.Name)
	}
	list, err := p.def.LookupList.GetLookupList(ctx)
	if err != nil {
		return err
	}
	key, ok := list[display]
	if !ok {
		return fmt.Errorf("%w: %q is not in the lookup list of %s", ErrInvalidPropValue, display, p.def.Name)
	}
	return p.SetValue(key)
}

// DisplayValue maps the value through the lookup list, properties without
// one display their canonical string
func (p *BOProp) DisplayValue(ctx context.Context) (string, error) {
	if p.def.LookupList == nil || p.value == nil {
		return p.PropertyValueString(), nil
	}
	list, err := p.def.LookupList.GetIDValueLookupList(ctx)
	if err != nil {
		return "", err
	}
	if display, ok := list[p.PropertyValueString()]; ok {
		return display, nil
	}
	return p.PropertyValueString(), nil
}

// BackupPropValue makes the current value the persisted one
func (p *BOProp) BackupPropValue() {
	p.persistedValue = p.value
	p.isDirty = false
}

// RestorePropValue discards changes since the value was last persisted
func (p *BOProp) RestorePropValue() {
	p.value = p.persistedValue
	p.isDirty = false
	p.validate()
}

// UpdateStateAsPersisted is called once the owning object has been saved
func (p *BOProp) UpdateStateAsPersisted() {
	p.BackupPropValue()
	p.isObjectNew = false
}

func (p *BOProp) String() string {
	return p.def.Name + "=" + p.PropertyValueString()
}
