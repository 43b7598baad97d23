package schema

import (
	"fmt"
	"strings"
)

type Cardinality int

const (
	Single Cardinality = iota
	Multiple
)

func (c Cardinality) String() string {
	if c == Multiple {
		return "Multiple"
	}
	return "Single"
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Cardinality) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "single":
		*c = Single
	case "multiple":
		*c = Multiple
	default:
		return fmt.Errorf("%w: unknown relationship cardinality %q", ErrInvalidDefinition, text)
	}
	return nil
}

// DeleteAction is applied to related objects when the owner is deleted
type DeleteAction int

const (
	Prevent DeleteAction = iota
	DeleteRelated
	DereferenceRelated
	DoNothing
)

var deleteActionNames = [...]string{
	Prevent:            "Prevent",
	DeleteRelated:      "DeleteRelated",
	DereferenceRelated: "DereferenceRelated",
	DoNothing:          "DoNothing",
}

func (a DeleteAction) String() string {
	if a < 0 || int(a) >= len(deleteActionNames) {
		return fmt.Sprintf("DeleteAction(%d)", int(a))
	}
	return deleteActionNames[a]
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *DeleteAction) UnmarshalText(text []byte) error {
	for i, name := range deleteActionNames {
		if strings.EqualFold(name, string(text)) {
			*a = DeleteAction(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown delete action %q", ErrInvalidDefinition, text)
}

// RelPropDef pairs an owner property with the related class property it matches
type RelPropDef struct {
	OwnerPropName   string
	RelatedPropName string
}

// RelationshipDef links a class to a related class through its RelKey
type RelationshipDef struct {
	Name                    string
	RelatedClassName        string
	RelatedAssemblyName     string
	Cardinality             Cardinality
	RelKey                  []RelPropDef
	DeleteAction            DeleteAction
	ReverseRelationshipName string
	OwningBOHasForeignKey   bool
}
