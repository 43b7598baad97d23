package datamapper

import (
	"fmt"
	"strings"
)

// Kind tags the value type a property holds
type Kind int

const (
	Invalid Kind = iota
	Bool
	Int
	Float
	Guid
	DateTime
	String
	Image
	Bytes
)

var kindNames = [...]string{
	Invalid:  "invalid",
	Bool:     "bool",
	Int:      "int",
	Float:    "float",
	Guid:     "guid",
	DateTime: "datetime",
	String:   "string",
	Image:    "image",
	Bytes:    "bytes",
}

var kindAliases = map[string]Kind{
	"bool":     Bool,
	"boolean":  Bool,
	"int":      Int,
	"int32":    Int,
	"int64":    Int,
	"integer":  Int,
	"float":    Float,
	"double":   Float,
	"decimal":  Float,
	"guid":     Guid,
	"uuid":     Guid,
	"datetime": DateTime,
	"time":     DateTime,
	"date":     DateTime,
	"string":   String,
	"text":     String,
	"image":    Image,
	"bytes":    Bytes,
	"byte[]":   Bytes,
	"binary":   Bytes,
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a type name as written in class definitions
func ParseKind(name string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k, nil
	}
	return Invalid, fmt.Errorf("%w: %q", ErrUnsupportedKind, name)
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
