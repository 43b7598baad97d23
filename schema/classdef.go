package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chillisoft/habanero/datamapper"
	"github.com/chillisoft/habanero/utils"
)

// ORMapping is the inheritance strategy of a SuperClassDef link
type ORMapping int

const (
	// ClassTableInheritance each class has its own table, child rows carry the parent key
	ClassTableInheritance ORMapping = iota
	// SingleTableInheritance the chain shares one table, a discriminator column
	// names the concrete class of a row
	SingleTableInheritance
	// ConcreteTableInheritance each concrete class has an independent table
	// holding its inherited properties too
	ConcreteTableInheritance
)

var orMappingNames = [...]string{
	ClassTableInheritance:    "ClassTableInheritance",
	SingleTableInheritance:   "SingleTableInheritance",
	ConcreteTableInheritance: "ConcreteTableInheritance",
}

func (m ORMapping) String() string {
	if m < 0 || int(m) >= len(orMappingNames) {
		return fmt.Sprintf("ORMapping(%d)", int(m))
	}
	return orMappingNames[m]
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *ORMapping) UnmarshalText(text []byte) error {
	for i, name := range orMappingNames {
		if strings.EqualFold(name, string(text)) {
			*m = ORMapping(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown inheritance mapping %q", ErrInvalidDefinition, text)
}

// SuperClassDef links a class to its parent
type SuperClassDef struct {
	// SuperClass is resolved from SuperClassName by Catalog.Add when nil
	SuperClass        *ClassDef
	SuperClassName    string
	SuperAssemblyName string
	ORMapping         ORMapping
	// Discriminator column, required for SingleTableInheritance
	Discriminator string
	// ID overrides the column holding the parent key for ClassTableInheritance
	ID string
}

// ClassDef describes how a business object class maps to a table
type ClassDef struct {
	AssemblyName     string
	ClassName        string
	TableName        string
	PropDefs         *PropDefCol
	PrimaryKeyDef    *PrimaryKeyDef
	Keys             []*KeyDef
	RelationshipDefs []*RelationshipDef
	SuperClassDef    *SuperClassDef
}

// NewClassDef returns a class holding props
func NewClassDef(assembly, className string, props ...*PropDef) *ClassDef {
	return &ClassDef{
		AssemblyName: assembly,
		ClassName:    className,
		PropDefs:     NewPropDefCol(props...),
	}
}

// FullName is assembly qualified
func (cd *ClassDef) FullName() string {
	if cd.AssemblyName == "" {
		return cd.ClassName
	}
	return cd.AssemblyName + "." + cd.ClassName
}

func (cd *ClassDef) String() string {
	return cd.FullName()
}

// SuperClassClassDef returns the parent class, or nil
func (cd *ClassDef) SuperClassClassDef() *ClassDef {
	if cd.SuperClassDef == nil {
		return nil
	}
	return cd.SuperClassDef.SuperClass
}

func (cd *ClassDef) isUsing(mapping ORMapping) bool {
	return cd.SuperClassDef != nil && cd.SuperClassDef.ORMapping == mapping
}

func (cd *ClassDef) IsUsingSingleTableInheritance() bool {
	return cd.isUsing(SingleTableInheritance)
}

func (cd *ClassDef) IsUsingClassTableInheritance() bool {
	return cd.isUsing(ClassTableInheritance)
}

func (cd *ClassDef) IsUsingConcreteTableInheritance() bool {
	return cd.isUsing(ConcreteTableInheritance)
}

// GetTableName returns the physical table of the class, single table
// inheritance children share the table of their topmost single table ancestor
func (cd *ClassDef) GetTableName() string {
	current := cd
	for _, link := range cd.InheritanceChain() {
		if !link.ClassDef.IsUsingSingleTableInheritance() || link.Parent() == nil {
			current = link.ClassDef
			break
		}
		current = link.Parent()
	}
	if current.TableName != "" {
		return current.TableName
	}
	return current.ClassName
}

// ChainLink is one class of an inheritance chain
type ChainLink struct {
	ClassDef *ClassDef
	// SuperClassDef links ClassDef to the next link, nil at the root
	SuperClassDef *SuperClassDef
}

// Parent returns the resolved parent class of the link, or nil
func (l ChainLink) Parent() *ClassDef {
	if l.SuperClassDef == nil {
		return nil
	}
	return l.SuperClassDef.SuperClass
}

// Strategy returns the inheritance mapping to the parent, false at the root
func (l ChainLink) Strategy() (ORMapping, bool) {
	if l.SuperClassDef == nil {
		return 0, false
	}
	return l.SuperClassDef.ORMapping, true
}

// InheritanceChain walks from the class up to its root. The walk stops at an
// unresolved superclass or when a class repeats.
func (cd *ClassDef) InheritanceChain() []ChainLink {
	var (
		chain   []ChainLink
		visited = map[*ClassDef]bool{}
	)
	for current := cd; current != nil && !visited[current]; current = current.SuperClassClassDef() {
		visited[current] = true
		chain = append(chain, ChainLink{ClassDef: current, SuperClassDef: current.SuperClassDef})
	}
	return chain
}

func (cd *ClassDef) hasInheritanceCycle() bool {
	chain := cd.InheritanceChain()
	last := chain[len(chain)-1]
	return last.Parent() != nil
}

// PropDefColIncludingInheritance returns the class properties followed by
// those of its ancestors, a name already present hides the inherited one
func (cd *ClassDef) PropDefColIncludingInheritance() *PropDefCol {
	col := NewPropDefCol()
	for _, link := range cd.InheritanceChain() {
		for _, pd := range link.ClassDef.PropDefs.All() {
			if !col.Contains(pd.Name) {
				col.Add(pd)
			}
		}
	}
	return col
}

// GetPropDef finds name on the class, then on its ancestors
func (cd *ClassDef) GetPropDef(name string) *PropDef {
	for _, link := range cd.InheritanceChain() {
		if pd := link.ClassDef.PropDefs.Get(name); pd != nil {
			return pd
		}
	}
	return nil
}

// GetPrimaryKeyDef returns the class primary key, inherited when the class
// declares none
func (cd *ClassDef) GetPrimaryKeyDef() *PrimaryKeyDef {
	for _, link := range cd.InheritanceChain() {
		if link.ClassDef.PrimaryKeyDef != nil && len(link.ClassDef.PrimaryKeyDef.PropNames) > 0 {
			return link.ClassDef.PrimaryKeyDef
		}
	}
	return nil
}

// GetRelationshipDef finds a relationship by case-insensitive name
func (cd *ClassDef) GetRelationshipDef(name string) *RelationshipDef {
	for _, link := range cd.InheritanceChain() {
		for _, rel := range link.ClassDef.RelationshipDefs {
			if strings.EqualFold(rel.Name, name) {
				return rel
			}
		}
	}
	return nil
}

// TableMapping is one physical table written for a class
type TableMapping struct {
	TableName string
	// Classes store their own properties in the table, leaf first
	Classes []*ClassDef
	// Parent is the class table inheritance link to the next table up,
	// nil for the topmost table. Its key is copied into this table.
	Parent *SuperClassDef
}

// Head is the most derived class stored in the table
func (t TableMapping) Head() *ClassDef {
	return t.Classes[0]
}

// PropDefs returns the properties stored in the table
func (t TableMapping) PropDefs() []*PropDef {
	var defs []*PropDef
	for _, cd := range t.Classes {
		defs = append(defs, cd.PropDefs.All()...)
	}
	return defs
}

// PhysicalTables splits the inheritance chain into the tables an object of
// the class is stored in, leaf table first. Single and concrete table links
// share the table of the child, class table links start a new one.
func (cd *ClassDef) PhysicalTables() []TableMapping {
	chain := cd.InheritanceChain()

	var (
		tables  []TableMapping
		current = TableMapping{TableName: cd.GetTableName()}
	)
	for i, link := range chain {
		current.Classes = append(current.Classes, link.ClassDef)
		if i+1 == len(chain) {
			break
		}
		if strategy, _ := link.Strategy(); strategy == ClassTableInheritance {
			current.Parent = link.SuperClassDef
			tables = append(tables, current)
			current = TableMapping{TableName: chain[i+1].ClassDef.GetTableName()}
		}
	}
	return append(tables, current)
}

// ParentKeyFields returns the columns a class table child stores the parent
// key in, paired with the parent property each one copies
func (sc *SuperClassDef) ParentKeyFields() ([]ParentKeyField, error) {
	parent := sc.SuperClass
	if parent == nil {
		return nil, NewDefinitionError(sc.SuperClassName, ErrUnknownClass, "superclass is not resolved")
	}

	pk := parent.GetPrimaryKeyDef()
	if pk == nil {
		return nil, NewDefinitionError(parent.FullName(), ErrUnknownProperty, "class table inheritance needs a parent primary key")
	}

	var fields []ParentKeyField
	if sc.ID == "" || strings.EqualFold(sc.ID, pk.KeyName()) {
		for _, name := range pk.PropNames {
			pd := parent.GetPropDef(name)
			if pd == nil {
				return nil, NewDefinitionError(parent.FullName(), ErrUnknownProperty, "primary key property %s", name)
			}
			fields = append(fields, ParentKeyField{FieldName: pd.FieldName(), Kind: pd.Kind(), ParentProp: pd})
		}
		return fields, nil
	}

	if pk.IsComposite() {
		return nil, NewDefinitionError(parent.FullName(), ErrCompositeKeyCopy, "id %s, key %s", sc.ID, pk.KeyName())
	}
	pd := parent.GetPropDef(pk.PropNames[0])
	if pd == nil {
		return nil, NewDefinitionError(parent.FullName(), ErrUnknownProperty, "primary key property %s", pk.PropNames[0])
	}
	return []ParentKeyField{{FieldName: sc.ID, Kind: pd.Kind(), ParentProp: pd}}, nil
}

// ParentKeyField is a column holding a copy of a parent key property
type ParentKeyField struct {
	FieldName  string
	Kind       datamapper.Kind
	ParentProp *PropDef
}

// validate checks the rules a single class must satisfy once its
// superclass is resolved
func (cd *ClassDef) validate() error {
	name := cd.FullName()
	if cd.ClassName == "" {
		return NewDefinitionError(name, nil, "class name is empty")
	}

	var errs []error
	for _, dup := range cd.PropDefs.duplicates() {
		errs = append(errs, NewDefinitionError(name, nil, "property %s declared twice", dup))
	}

	if sc := cd.SuperClassDef; sc != nil {
		switch {
		case sc.SuperClass == nil:
			errs = append(errs, NewDefinitionError(name, ErrUnknownClass, "superclass %s", sc.SuperClassName))
		case cd.hasInheritanceCycle():
			errs = append(errs, NewDefinitionError(name, ErrInheritanceCycle, ""))
		case sc.ORMapping == SingleTableInheritance && sc.Discriminator == "":
			errs = append(errs, NewDefinitionError(name, ErrMissingDiscriminator, "superclass %s", sc.SuperClass.FullName()))
		case sc.ORMapping == ClassTableInheritance:
			if _, err := sc.ParentKeyFields(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if pk := cd.GetPrimaryKeyDef(); pk != nil {
		for _, propName := range pk.PropNames {
			if cd.GetPropDef(propName) == nil {
				errs = append(errs, NewDefinitionError(name, ErrUnknownProperty, "primary key property %s", propName))
			}
		}
		if pk.IsObjectID {
			if pk.IsComposite() {
				errs = append(errs, NewDefinitionError(name, nil, "object id key %s must be a single property", pk.KeyName()))
			} else if pd := cd.GetPropDef(pk.PropNames[0]); pd != nil && pd.Kind() != datamapper.Guid {
				errs = append(errs, NewDefinitionError(name, nil, "object id property %s must be a guid", pd.Name))
			}
		}
	}

	for _, key := range cd.Keys {
		for _, propName := range key.PropNames {
			if cd.GetPropDef(propName) == nil {
				errs = append(errs, NewDefinitionError(name, ErrUnknownProperty, "key %s property %s", key.KeyName(), propName))
			}
		}
	}

	for _, rel := range cd.RelationshipDefs {
		for _, relProp := range rel.RelKey {
			if cd.GetPropDef(relProp.OwnerPropName) == nil {
				errs = append(errs, NewDefinitionError(name, ErrUnknownProperty, "relationship %s property %s", rel.Name, relProp.OwnerPropName))
			}
		}
	}

	var autoIncrementing []string
	for _, pd := range cd.PropDefColIncludingInheritance().All() {
		if pd.AutoIncrementing {
			autoIncrementing = append(autoIncrementing, pd.Name)
		}
	}
	if len(autoIncrementing) > 1 {
		errs = append(errs, NewDefinitionError(name, nil, "more than one auto incrementing property %v", autoIncrementing))
	}

	if table := cd.GetTableName(); !utils.IsValidDBName(table) {
		errs = append(errs, NewDefinitionError(name, nil, "invalid table name %q", table))
	}
	for _, pd := range cd.PropDefs.All() {
		if pd.Persistable && !utils.IsValidDBName(pd.FieldName()) {
			errs = append(errs, NewDefinitionError(name, nil, "invalid field name %q", pd.FieldName()))
		}
	}

	return errors.Join(errs...)
}
