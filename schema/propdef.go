package schema

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chillisoft/habanero/datamapper"
)

// ReadWriteRule restricts when a property value may be changed
type ReadWriteRule int

const (
	ReadWrite ReadWriteRule = iota
	ReadOnly
	// WriteOnce can be set once, new or persisted
	WriteOnce
	// WriteNew can only be set while the object is new
	WriteNew
	// WriteNotNew can only be set once the object has been persisted
	WriteNotNew
)

var readWriteRuleNames = [...]string{
	ReadWrite:   "ReadWrite",
	ReadOnly:    "ReadOnly",
	WriteOnce:   "WriteOnce",
	WriteNew:    "WriteNew",
	WriteNotNew: "WriteNotNew",
}

func (r ReadWriteRule) String() string {
	if r < 0 || int(r) >= len(readWriteRuleNames) {
		return fmt.Sprintf("ReadWriteRule(%d)", int(r))
	}
	return readWriteRuleNames[r]
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *ReadWriteRule) UnmarshalText(text []byte) error {
	for i, name := range readWriteRuleNames {
		if strings.EqualFold(name, string(text)) {
			*r = ReadWriteRule(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown read write rule %q", ErrInvalidDefinition, text)
}

// LookupList supplies the permissible values of a property,
// display string to key and key to display string
type LookupList interface {
	GetLookupList(ctx context.Context) (map[string]string, error)
	GetIDValueLookupList(ctx context.Context) (map[string]string, error)
}

// LookupDef declares the query a property's lookup list is loaded from
type LookupDef struct {
	SQL     string
	Timeout time.Duration
}

// PropDef describes one property of a class
type PropDef struct {
	Name              string
	ReadWriteRule     ReadWriteRule
	DefaultValue      interface{}
	AutoIncrementing  bool
	Compulsory        bool
	Persistable       bool
	DatabaseFieldName string
	Length            int
	Description       string
	Lookup            *LookupDef
	// LookupList is the provider built from Lookup, see lookup.Attach
	LookupList LookupList

	kind datamapper.Kind
}

// NewPropDef returns a persistable, read-write property of kind
func NewPropDef(name string, kind datamapper.Kind) *PropDef {
	return &PropDef{Name: name, kind: kind, Persistable: true}
}

// Kind is fixed when the PropDef is created
func (pd *PropDef) Kind() datamapper.Kind {
	return pd.kind
}

// FieldName is the column the property is stored in
func (pd *PropDef) FieldName() string {
	if pd.DatabaseFieldName != "" {
		return pd.DatabaseFieldName
	}
	return pd.Name
}

func (pd *PropDef) String() string {
	return fmt.Sprintf("%s(%v)", pd.Name, pd.kind)
}

// PropDefCol is an ordered collection of PropDefs addressed by
// case-insensitive name
type PropDefCol struct {
	defs   []*PropDef
	byName map[string]*PropDef
}

// NewPropDefCol returns a collection holding defs
func NewPropDefCol(defs ...*PropDef) *PropDefCol {
	col := &PropDefCol{byName: map[string]*PropDef{}}
	col.Add(defs...)
	return col
}

// Add appends defs, a name already present keeps its first definition
// for lookups and is reported by Validate
func (col *PropDefCol) Add(defs ...*PropDef) {
	if col.byName == nil {
		col.byName = map[string]*PropDef{}
	}
	for _, pd := range defs {
		col.defs = append(col.defs, pd)
		if _, ok := col.byName[strings.ToLower(pd.Name)]; !ok {
			col.byName[strings.ToLower(pd.Name)] = pd
		}
	}
}

// Get returns the PropDef named name, or nil
func (col *PropDefCol) Get(name string) *PropDef {
	if col == nil {
		return nil
	}
	return col.byName[strings.ToLower(name)]
}

// Contains reports whether a PropDef named name exists
func (col *PropDefCol) Contains(name string) bool {
	return col.Get(name) != nil
}

// Len returns the number of definitions
func (col *PropDefCol) Len() int {
	if col == nil {
		return 0
	}
	return len(col.defs)
}

// All returns the definitions in declaration order
func (col *PropDefCol) All() []*PropDef {
	if col == nil {
		return nil
	}
	return append([]*PropDef(nil), col.defs...)
}

// Names returns the property names in declaration order
func (col *PropDefCol) Names() []string {
	names := make([]string, 0, col.Len())
	for _, pd := range col.All() {
		names = append(names, pd.Name)
	}
	return names
}

// duplicates returns names declared more than once
func (col *PropDefCol) duplicates() []string {
	var (
		seen = map[string]bool{}
		dups []string
	)
	for _, pd := range col.All() {
		key := strings.ToLower(pd.Name)
		if seen[key] {
			dups = append(dups, pd.Name)
		}
		seen[key] = true
	}
	return dups
}
