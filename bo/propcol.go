package bo

import "strings"

// BOPropCol is the ordered set of properties of a business object
type BOPropCol struct {
	props  []*BOProp
	byName map[string]*BOProp
}

func newBOPropCol() *BOPropCol {
	return &BOPropCol{byName: map[string]*BOProp{}}
}

func (col *BOPropCol) add(prop *BOProp) {
	col.props = append(col.props, prop)
	col.byName[strings.ToLower(prop.Name())] = prop
}

// Get returns the property named name, or nil
func (col *BOPropCol) Get(name string) *BOProp {
	return col.byName[strings.ToLower(name)]
}

// All returns the properties in class definition order
func (col *BOPropCol) All() []*BOProp {
	return append([]*BOProp(nil), col.props...)
}

func (col *BOPropCol) Len() int {
	return len(col.props)
}

// AutoIncrementingProp returns the property assigned by the database, or nil
func (col *BOPropCol) AutoIncrementingProp() *BOProp {
	for _, prop := range col.props {
		if prop.def.AutoIncrementing {
			return prop
		}
	}
	return nil
}

// DirtyProps returns the properties changed since they were last persisted
func (col *BOPropCol) DirtyProps() []*BOProp {
	var dirty []*BOProp
	for _, prop := range col.props {
		if prop.IsDirty() {
			dirty = append(dirty, prop)
		}
	}
	return dirty
}

func (col *BOPropCol) IsDirty() bool {
	return len(col.DirtyProps()) > 0
}

// InvalidReasons lists why properties are invalid
func (col *BOPropCol) InvalidReasons() []string {
	var reasons []string
	for _, prop := range col.props {
		if !prop.IsValid() {
			reasons = append(reasons, prop.InvalidReason())
		}
	}
	return reasons
}
