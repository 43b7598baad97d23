package schema

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chillisoft/habanero/datamapper"
	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	Classes []yamlClass `yaml:"classes"`
}

type yamlClass struct {
	Assembly      string             `yaml:"assembly"`
	Name          string             `yaml:"name"`
	Table         string             `yaml:"table"`
	Properties    []yamlProp         `yaml:"properties"`
	PrimaryKey    *yamlPrimaryKey    `yaml:"primaryKey"`
	Keys          []yamlKey          `yaml:"keys"`
	Relationships []yamlRelationship `yaml:"relationships"`
	SuperClass    *yamlSuperClass    `yaml:"superClass"`
}

type yamlProp struct {
	Name             string          `yaml:"name"`
	Type             datamapper.Kind `yaml:"type"`
	Rule             ReadWriteRule   `yaml:"rule"`
	Default          interface{}     `yaml:"default"`
	AutoIncrementing bool            `yaml:"autoIncrementing"`
	Compulsory       bool            `yaml:"compulsory"`
	Persistable      *bool           `yaml:"persistable"`
	Field            string          `yaml:"field"`
	Length           int             `yaml:"length"`
	Description      string          `yaml:"description"`
	Lookup           *yamlLookup     `yaml:"lookup"`
}

type yamlLookup struct {
	SQL string `yaml:"sql"`
	// Timeout in milliseconds
	Timeout int `yaml:"timeout"`
}

type yamlPrimaryKey struct {
	IsObjectID bool     `yaml:"isObjectID"`
	Properties []string `yaml:"properties"`
}

type yamlKey struct {
	Name         string   `yaml:"name"`
	Properties   []string `yaml:"properties"`
	IgnoreIfNull bool     `yaml:"ignoreIfNull"`
}

type yamlRelationship struct {
	Name                  string         `yaml:"name"`
	RelatedClass          string         `yaml:"relatedClass"`
	RelatedAssembly       string         `yaml:"relatedAssembly"`
	Type                  Cardinality    `yaml:"type"`
	DeleteAction          DeleteAction   `yaml:"deleteAction"`
	Reverse               string         `yaml:"reverseRelationship"`
	OwningBOHasForeignKey bool           `yaml:"owningBOHasForeignKey"`
	Properties            []yamlRelProps `yaml:"relatedProperties"`
}

type yamlRelProps struct {
	Owner   string `yaml:"owner"`
	Related string `yaml:"related"`
}

type yamlSuperClass struct {
	Class         string    `yaml:"class"`
	Assembly      string    `yaml:"assembly"`
	ORMapping     ORMapping `yaml:"orMapping"`
	Discriminator string    `yaml:"discriminator"`
	ID            string    `yaml:"id"`
}

// LoadYAML reads class definitions from r. Superclasses are left unresolved
// until the definitions are added to a Catalog.
func LoadYAML(r io.Reader) ([]*ClassDef, error) {
	var doc yamlDocument
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}

	defs := make([]*ClassDef, 0, len(doc.Classes))
	for _, class := range doc.Classes {
		defs = append(defs, class.classDef())
	}
	return defs, nil
}

// LoadYAMLFile reads class definitions from the file at path
func LoadYAMLFile(path string) ([]*ClassDef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadYAML(f)
}

func (y yamlClass) classDef() *ClassDef {
	cd := NewClassDef(y.Assembly, y.Name)
	cd.TableName = y.Table

	for _, prop := range y.Properties {
		pd := NewPropDef(prop.Name, prop.Type)
		pd.ReadWriteRule = prop.Rule
		pd.DefaultValue = prop.Default
		pd.AutoIncrementing = prop.AutoIncrementing
		pd.Compulsory = prop.Compulsory
		if prop.Persistable != nil {
			pd.Persistable = *prop.Persistable
		}
		pd.DatabaseFieldName = prop.Field
		pd.Length = prop.Length
		pd.Description = prop.Description
		if prop.Lookup != nil {
			pd.Lookup = &LookupDef{SQL: prop.Lookup.SQL, Timeout: time.Duration(prop.Lookup.Timeout) * time.Millisecond}
		}
		cd.PropDefs.Add(pd)
	}

	if y.PrimaryKey != nil {
		cd.PrimaryKeyDef = NewPrimaryKeyDef(y.PrimaryKey.Properties...)
		cd.PrimaryKeyDef.IsObjectID = y.PrimaryKey.IsObjectID
	}

	for _, key := range y.Keys {
		keyDef := NewKeyDef(key.Name, key.Properties...)
		keyDef.IgnoreIfNull = key.IgnoreIfNull
		cd.Keys = append(cd.Keys, keyDef)
	}

	for _, rel := range y.Relationships {
		relDef := &RelationshipDef{
			Name:                    rel.Name,
			RelatedClassName:        rel.RelatedClass,
			RelatedAssemblyName:     rel.RelatedAssembly,
			Cardinality:             rel.Type,
			DeleteAction:            rel.DeleteAction,
			ReverseRelationshipName: rel.Reverse,
			OwningBOHasForeignKey:   rel.OwningBOHasForeignKey,
		}
		for _, p := range rel.Properties {
			relDef.RelKey = append(relDef.RelKey, RelPropDef{OwnerPropName: p.Owner, RelatedPropName: p.Related})
		}
		cd.RelationshipDefs = append(cd.RelationshipDefs, relDef)
	}

	if y.SuperClass != nil {
		cd.SuperClassDef = &SuperClassDef{
			SuperClassName:    y.SuperClass.Class,
			SuperAssemblyName: y.SuperClass.Assembly,
			ORMapping:         y.SuperClass.ORMapping,
			Discriminator:     y.SuperClass.Discriminator,
			ID:                y.SuperClass.ID,
		}
	}
	return cd
}
