package schema

import "strings"

// KeyDef is an alternate uniqueness key
type KeyDef struct {
	Name      string
	PropNames []string
	// IgnoreIfNull skips the uniqueness check while any key property is null
	IgnoreIfNull bool
}

// NewKeyDef returns a key over propNames
func NewKeyDef(name string, propNames ...string) *KeyDef {
	return &KeyDef{Name: name, PropNames: propNames}
}

// KeyName is the declared name, or the property names joined by "_"
func (k *KeyDef) KeyName() string {
	if k.Name != "" {
		return k.Name
	}
	return strings.Join(k.PropNames, "_")
}

// IsComposite reports whether the key spans more than one property
func (k *KeyDef) IsComposite() bool {
	return len(k.PropNames) > 1
}

// PrimaryKeyDef identifies rows of a class table. An object id key is a
// single surrogate Guid assigned when the object is created.
type PrimaryKeyDef struct {
	KeyDef
	IsObjectID bool
}

// NewPrimaryKeyDef returns a primary key over propNames
func NewPrimaryKeyDef(propNames ...string) *PrimaryKeyDef {
	return &PrimaryKeyDef{KeyDef: KeyDef{PropNames: propNames}}
}

// NewObjectIDKeyDef returns a surrogate Guid primary key on propName
func NewObjectIDKeyDef(propName string) *PrimaryKeyDef {
	return &PrimaryKeyDef{KeyDef: KeyDef{PropNames: []string{propName}}, IsObjectID: true}
}
