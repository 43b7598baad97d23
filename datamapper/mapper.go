package datamapper

import (
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrUnsupportedKind no mapper registered for the kind
	ErrUnsupportedKind = errors.New("unsupported value kind")
)

// DBNull is the database null sentinel, it parses to a nil value for every kind
var DBNull = dbNull{}

type dbNull struct{}

func (dbNull) String() string { return "DBNull" }

// KeyResolver is implemented by values that stand in for their primary key,
// typically a related business object assigned to a foreign key property.
// ok is false when no single key value can be resolved.
type KeyResolver interface {
	ResolveKey() (value interface{}, ok bool)
}

// Mapper converts between raw, string and typed values of one Kind.
// TryParse never fails loudly: malformed input is reported through ok.
type Mapper interface {
	Kind() Kind
	TryParse(value interface{}) (parsed interface{}, ok bool)
	ConvertToString(value interface{}) string
	DatabaseValue(value interface{}) (dbValue interface{}, ok bool)
}

// IsNull reports whether value is nil, DBNull or an invalid sql.Null* value
func IsNull(value interface{}) bool {
	_, null := normalize(value)
	return null
}

// normalize unwraps sql.Null* wrappers and typed pointers
func normalize(value interface{}) (interface{}, bool) {
	switch v := value.(type) {
	case nil:
		return nil, true
	case dbNull:
		return nil, true
	case sql.NullString:
		return v.String, !v.Valid
	case sql.NullInt64:
		return v.Int64, !v.Valid
	case sql.NullInt32:
		return v.Int32, !v.Valid
	case sql.NullInt16:
		return v.Int16, !v.Valid
	case sql.NullBool:
		return v.Bool, !v.Valid
	case sql.NullFloat64:
		return v.Float64, !v.Valid
	case sql.NullTime:
		return v.Time, !v.Valid
	case sql.NullByte:
		return v.Byte, !v.Valid
	case uuid.NullUUID:
		return v.UUID, !v.Valid
	case *string:
		if v == nil {
			return nil, true
		}
		return *v, false
	case *int:
		if v == nil {
			return nil, true
		}
		return *v, false
	case *int64:
		if v == nil {
			return nil, true
		}
		return *v, false
	case *bool:
		if v == nil {
			return nil, true
		}
		return *v, false
	case *float64:
		if v == nil {
			return nil, true
		}
		return *v, false
	case *time.Time:
		if v == nil {
			return nil, true
		}
		return *v, false
	case *uuid.UUID:
		if v == nil {
			return nil, true
		}
		return *v, false
	}
	return value, false
}

// prepare normalizes value and reduces key resolvers to their key.
// null is true when the result should parse to nil, ok false when a
// resolver could not produce a key.
func prepare(value interface{}) (v interface{}, null bool, ok bool) {
	v, null = normalize(value)
	if null {
		return nil, true, true
	}

	if resolver, isResolver := v.(KeyResolver); isResolver {
		key, resolved := resolver.ResolveKey()
		if !resolved {
			return nil, false, false
		}
		v, null = normalize(key)
		if null {
			return nil, true, true
		}
	}
	return v, false, true
}

// toInt64 converts any integer kind, reporting false for other types and
// for unsigned values beyond the int64 range
func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}
