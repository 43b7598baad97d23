package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Catalog holds the class definitions of one application. Independent
// catalogs can coexist, nothing is registered globally.
type Catalog struct {
	mu      sync.RWMutex
	classes map[string]*ClassDef
	namer   Namer
}

// CatalogOption configures a Catalog
type CatalogOption func(*Catalog)

// WithNamer sets the Namer that fills in empty table and column names
func WithNamer(namer Namer) CatalogOption {
	return func(c *Catalog) {
		c.namer = namer
	}
}

// NewCatalog returns an empty catalog using IdentityNamer by default
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{classes: map[string]*ClassDef{}, namer: IdentityNamer{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func catalogKey(assembly, class string) string {
	return strings.ToLower(assembly) + "|" + strings.ToLower(class)
}

// Namer returns the catalog naming strategy
func (c *Catalog) Namer() Namer {
	return c.namer
}

// Add registers defs. Superclasses are resolved against the catalog and defs
// themselves, so a hierarchy can be added in one call in any order. Nothing is
// registered when any definition is invalid.
func (c *Catalog) Add(defs ...*ClassDef) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	pending := make(map[string]*ClassDef, len(defs))
	for _, cd := range defs {
		if cd.ClassName == "" {
			return NewDefinitionError(cd.FullName(), nil, "class name is empty")
		}
		key := catalogKey(cd.AssemblyName, cd.ClassName)
		if _, ok := c.classes[key]; ok {
			return NewDefinitionError(cd.FullName(), ErrDuplicateClass, "")
		}
		if _, ok := pending[key]; ok {
			return NewDefinitionError(cd.FullName(), ErrDuplicateClass, "")
		}
		pending[key] = cd
	}

	// every change to defs is undone when Add fails
	var (
		resolved []*SuperClassDef
		noProps  []*ClassDef
		named    []func()
	)
	undo := func() {
		for _, sc := range resolved {
			sc.SuperClass = nil
		}
		for _, cd := range noProps {
			cd.PropDefs = nil
		}
		for _, reset := range named {
			reset()
		}
	}

	for _, cd := range defs {
		if cd.PropDefs == nil {
			cd.PropDefs = NewPropDefCol()
			noProps = append(noProps, cd)
		}
		if sc := cd.SuperClassDef; sc != nil && sc.SuperClass == nil {
			parent, err := find(sc.SuperAssemblyName, sc.SuperClassName, pending, c.classes)
			if err != nil {
				undo()
				return NewDefinitionError(cd.FullName(), err, "superclass %s", sc.SuperClassName)
			}
			sc.SuperClass = parent
			resolved = append(resolved, sc)
		}
		named = append(named, c.applyNames(cd))
	}

	var errs []error
	for _, cd := range defs {
		if err := cd.validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		undo()
		return errors.Join(errs...)
	}

	for key, cd := range pending {
		c.classes[key] = cd
	}
	return nil
}

// applyNames fills empty table and column names and returns a func that
// clears them again
func (c *Catalog) applyNames(cd *ClassDef) func() {
	var filled []*PropDef
	table := cd.TableName == ""
	if table {
		cd.TableName = c.namer.TableName(cd.ClassName)
	}
	for _, pd := range cd.PropDefs.All() {
		if pd.DatabaseFieldName == "" {
			pd.DatabaseFieldName = c.namer.ColumnName(cd.TableName, pd.Name)
			filled = append(filled, pd)
		}
	}
	return func() {
		if table {
			cd.TableName = ""
		}
		for _, pd := range filled {
			pd.DatabaseFieldName = ""
		}
	}
}

func find(assembly, class string, sources ...map[string]*ClassDef) (*ClassDef, error) {
	if assembly != "" {
		for _, source := range sources {
			if cd, ok := source[catalogKey(assembly, class)]; ok {
				return cd, nil
			}
		}
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownClass, assembly, class)
	}

	var found []*ClassDef
	for _, source := range sources {
		for _, cd := range source {
			if strings.EqualFold(cd.ClassName, class) {
				found = append(found, cd)
			}
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrUnknownClass, class)
	case 1:
		return found[0], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrAmbiguousClass, class)
}

// Get returns the class registered under assembly and class name
func (c *Catalog) Get(assembly, class string) (*ClassDef, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return find(assembly, class, c.classes)
}

// Find returns the only class named class in any assembly
func (c *Catalog) Find(class string) (*ClassDef, error) {
	return c.Get("", class)
}

// All returns every class ordered by full name
func (c *Catalog) All() []*ClassDef {
	c.mu.RLock()
	defer c.mu.RUnlock()

	all := make([]*ClassDef, 0, len(c.classes))
	for _, cd := range c.classes {
		all = append(all, cd)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FullName() < all[j].FullName() })
	return all
}

// Validate rechecks every class and the targets of their relationships
func (c *Catalog) Validate() error {
	var errs []error
	for _, cd := range c.All() {
		if err := cd.validate(); err != nil {
			errs = append(errs, err)
		}

		for _, rel := range cd.RelationshipDefs {
			related, err := c.Get(rel.RelatedAssemblyName, rel.RelatedClassName)
			if err != nil {
				errs = append(errs, NewDefinitionError(cd.FullName(), err, "relationship %s", rel.Name))
				continue
			}
			for _, relProp := range rel.RelKey {
				if related.GetPropDef(relProp.RelatedPropName) == nil {
					errs = append(errs, NewDefinitionError(cd.FullName(), ErrUnknownProperty,
						"relationship %s related property %s.%s", rel.Name, related.ClassName, relProp.RelatedPropName))
				}
			}
			if rel.ReverseRelationshipName != "" && related.GetRelationshipDef(rel.ReverseRelationshipName) == nil {
				errs = append(errs, NewDefinitionError(cd.FullName(), nil,
					"relationship %s reverse relationship %s not found on %s", rel.Name, rel.ReverseRelationshipName, related.ClassName))
			}
		}
	}
	return errors.Join(errs...)
}
