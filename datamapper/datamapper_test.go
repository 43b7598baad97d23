package datamapper_test

import (
	"database/sql"
	"fmt"
	"image"
	"math"
	"testing"
	"time"

	"github.com/chillisoft/habanero/datamapper"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyed struct {
	key      interface{}
	resolved bool
}

func (k keyed) ResolveKey() (interface{}, bool) { return k.key, k.resolved }

var fixedNow = time.Date(2024, 5, 17, 14, 30, 15, 0, time.UTC)

func newRegistry() *datamapper.Registry {
	return datamapper.NewRegistry(
		datamapper.WithLocation(time.UTC),
		datamapper.WithNowFunc(func() time.Time { return fixedNow }),
	)
}

func mapper(t *testing.T, kind datamapper.Kind) datamapper.Mapper {
	t.Helper()
	m, err := newRegistry().Lookup(kind)
	require.NoError(t, err)
	return m
}

func TestNullValues(t *testing.T) {
	r := newRegistry()
	for _, kind := range r.Kinds() {
		m, err := r.Lookup(kind)
		require.NoError(t, err)

		for _, null := range []interface{}{nil, datamapper.DBNull, sql.NullString{}, sql.NullInt64{}} {
			parsed, ok := m.TryParse(null)
			assert.True(t, ok, "%v should parse %#v", kind, null)
			assert.Nil(t, parsed, "%v should parse %#v to nil", kind, null)
			assert.Equal(t, "", m.ConvertToString(null), "%v should format %#v as empty", kind, null)
		}
	}
}

func TestBoolTryParse(t *testing.T) {
	m := mapper(t, datamapper.Bool)

	results := []struct {
		Value  interface{}
		Parsed interface{}
		OK     bool
	}{
		{"true", true, true},
		{"TRUE", true, true},
		{"t", true, true},
		{"Yes", true, true},
		{"Y", true, true},
		{"1", true, true},
		{"-1", true, true},
		{"false", false, true},
		{"f", false, true},
		{"No", false, true},
		{"N", false, true},
		{"0", false, true},
		{"", nil, true},
		{true, true, true},
		{int64(-1), true, true},
		{0, false, true},
		{"3", nil, false},
		{"Invalid", nil, false},
		{3, nil, false},
		{2.5, nil, false},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			parsed, ok := m.TryParse(result.Value)
			assert.Equal(t, result.OK, ok)
			assert.Equal(t, result.Parsed, parsed)
		})
	}
}

func TestBoolConvertToString(t *testing.T) {
	m := mapper(t, datamapper.Bool)
	assert.Equal(t, "True", m.ConvertToString(true))
	assert.Equal(t, "False", m.ConvertToString("n"))
	assert.Equal(t, "", m.ConvertToString("Invalid"))
}

func TestIntTryParse(t *testing.T) {
	m := mapper(t, datamapper.Int)

	results := []struct {
		Value  interface{}
		Parsed interface{}
		OK     bool
	}{
		{"", nil, true},
		{"42", 42, true},
		{" -7 ", -7, true},
		{int64(9), 9, true},
		{float64(12), 12, true},
		{[]byte("5"), 5, true},
		{keyed{key: 77, resolved: true}, 77, true},
		{keyed{key: "78", resolved: true}, 78, true},
		{keyed{key: nil, resolved: true}, nil, true},
		{keyed{resolved: false}, nil, false},
		{"forty two", nil, false},
		{12.5, nil, false},
		{true, nil, false},
		{uint64(7), 7, true},
		{uint64(math.MaxUint64), nil, false},
		{uint64(math.MaxInt64 + 1), nil, false},
		{float32(3), 3, true},
		{float64(1 << 63), nil, false},
		{float64(-1 << 63), math.MinInt, true},
		{math.Inf(1), nil, false},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			parsed, ok := m.TryParse(result.Value)
			assert.Equal(t, result.OK, ok)
			assert.Equal(t, result.Parsed, parsed)
		})
	}

	assert.Equal(t, "77", m.ConvertToString(keyed{key: 77, resolved: true}))
	assert.Equal(t, "", m.ConvertToString("abc"))
	dbValue, ok := m.DatabaseValue("15")
	assert.True(t, ok)
	assert.Equal(t, int64(15), dbValue)
}

func TestFloat(t *testing.T) {
	m := mapper(t, datamapper.Float)

	parsed, ok := m.TryParse("3.25")
	assert.True(t, ok)
	assert.Equal(t, 3.25, parsed)

	parsed, ok = m.TryParse(4)
	assert.True(t, ok)
	assert.Equal(t, 4.0, parsed)

	_, ok = m.TryParse("pi")
	assert.False(t, ok)
	assert.Equal(t, "0.5", m.ConvertToString(0.5))
}

func TestGuid(t *testing.T) {
	m := mapper(t, datamapper.Guid)
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	canonical := "{6BA7B810-9DAD-11D1-80B4-00C04FD430C8}"

	assert.Equal(t, "", m.ConvertToString(uuid.Nil))
	assert.Equal(t, canonical, m.ConvertToString(id))

	parsed, ok := m.TryParse(canonical)
	assert.True(t, ok)
	assert.Equal(t, id, parsed)

	parsed, ok = m.TryParse(id.String())
	assert.True(t, ok)
	assert.Equal(t, id, parsed)

	parsed, ok = m.TryParse("")
	assert.True(t, ok)
	assert.Nil(t, parsed)

	parsed, ok = m.TryParse(uuid.Nil)
	assert.True(t, ok)
	assert.Nil(t, parsed)

	parsed, ok = m.TryParse(id[:])
	assert.True(t, ok)
	assert.Equal(t, id, parsed)

	parsed, ok = m.TryParse(keyed{key: id, resolved: true})
	assert.True(t, ok)
	assert.Equal(t, id, parsed)

	parsed, ok = m.TryParse("not-a-guid")
	assert.False(t, ok)
	assert.Nil(t, parsed)

	_, ok = m.TryParse(42)
	assert.False(t, ok)

	dbValue, ok := m.DatabaseValue(id)
	assert.True(t, ok)
	assert.Equal(t, canonical, dbValue)
}

func TestDateTime(t *testing.T) {
	m := mapper(t, datamapper.DateTime)
	when := time.Date(2007, time.March, 5, 13, 45, 30, 123*int(time.Millisecond), time.UTC)

	assert.Equal(t, "05 Mar 2007 13:45:30:123", m.ConvertToString(when))

	parsed, ok := m.TryParse("05 Mar 2007 13:45:30:123")
	assert.True(t, ok)
	assert.True(t, when.Equal(parsed.(time.Time)), "expects %v got %v", when, parsed)

	parsed, ok = m.TryParse(when)
	assert.True(t, ok)
	assert.Equal(t, when, parsed)

	parsed, ok = m.TryParse("2020-02-23 11:10:10")
	assert.True(t, ok)
	assert.True(t, time.Date(2020, 2, 23, 11, 10, 10, 0, time.UTC).Equal(parsed.(time.Time)))

	parsed, ok = m.TryParse("Now")
	assert.True(t, ok)
	assert.True(t, fixedNow.Equal(parsed.(time.Time)))

	parsed, ok = m.TryParse("today")
	assert.True(t, ok)
	assert.True(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC).Equal(parsed.(time.Time)))

	parsed, ok = m.TryParse("")
	assert.True(t, ok)
	assert.Nil(t, parsed)

	parsed, ok = m.TryParse("Invalid")
	assert.False(t, ok)
	assert.Nil(t, parsed)

	assert.Equal(t, "", m.ConvertToString("Invalid"))
}

func TestString(t *testing.T) {
	m := mapper(t, datamapper.String)
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	results := []struct {
		Value  interface{}
		Parsed interface{}
	}{
		{"circle", "circle"},
		{"", ""},
		{42, "42"},
		{id, "{6BA7B810-9DAD-11D1-80B4-00C04FD430C8}"},
		{time.Date(2007, time.March, 5, 13, 45, 30, 0, time.UTC), "05 Mar 2007 13:45:30:000"},
		{true, "True"},
		{[]byte("raw"), "raw"},
		{datamapper.DBNull, nil},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			parsed, ok := m.TryParse(result.Value)
			assert.True(t, ok)
			assert.Equal(t, result.Parsed, parsed)
		})
	}
}

func TestImage(t *testing.T) {
	m := mapper(t, datamapper.Image)
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))

	parsed, ok := m.TryParse(img)
	assert.True(t, ok)
	assert.True(t, parsed == image.Image(img), "image should pass through unchanged")

	serialized := m.ConvertToString(img)
	require.NotEmpty(t, serialized)

	parsed, ok = m.TryParse(serialized)
	require.True(t, ok)
	assert.Equal(t, 3, parsed.(image.Image).Bounds().Dx())
	assert.Equal(t, 2, parsed.(image.Image).Bounds().Dy())

	dbValue, ok := m.DatabaseValue(img)
	require.True(t, ok)
	parsed, ok = m.TryParse(dbValue)
	require.True(t, ok)
	assert.Equal(t, img.Bounds().Size(), parsed.(image.Image).Bounds().Size())

	_, ok = m.TryParse(42)
	assert.False(t, ok)

	_, ok = m.TryParse("!!not base64!!")
	assert.False(t, ok)
}

func TestBytes(t *testing.T) {
	m := mapper(t, datamapper.Bytes)

	assert.Equal(t, "AQID", m.ConvertToString([]byte{1, 2, 3}))

	parsed, ok := m.TryParse("AQID")
	assert.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, parsed)

	_, ok = m.TryParse(12)
	assert.False(t, ok)
}

func TestCanonicalFormIsStable(t *testing.T) {
	r := newRegistry()

	results := []struct {
		Kind      datamapper.Kind
		Canonical string
	}{
		{datamapper.Bool, "True"},
		{datamapper.Bool, "False"},
		{datamapper.Int, "-12"},
		{datamapper.Float, "2.5"},
		{datamapper.Guid, "{6BA7B810-9DAD-11D1-80B4-00C04FD430C8}"},
		{datamapper.DateTime, "31 Dec 1999 23:59:59:999"},
		{datamapper.String, "shape"},
		{datamapper.Bytes, "AQID"},
	}

	for idx, result := range results {
		t.Run(fmt.Sprintf("case #%v", idx), func(t *testing.T) {
			m, err := r.Lookup(result.Kind)
			require.NoError(t, err)

			parsed, ok := m.TryParse(result.Canonical)
			require.True(t, ok)
			assert.Equal(t, m.ConvertToString(result.Canonical), m.ConvertToString(parsed))
			assert.Equal(t, result.Canonical, m.ConvertToString(parsed))
		})
	}
}

type upperMapper struct{}

const shout datamapper.Kind = 100

func (upperMapper) Kind() datamapper.Kind { return shout }
func (upperMapper) TryParse(v interface{}) (interface{}, bool) {
	s, ok := v.(string)
	return s + "!", ok
}
func (upperMapper) ConvertToString(v interface{}) string { return fmt.Sprint(v) }
func (upperMapper) DatabaseValue(v interface{}) (interface{}, bool) {
	return v, true
}

func TestRegistry(t *testing.T) {
	r := newRegistry()

	_, err := r.Lookup(shout)
	assert.ErrorIs(t, err, datamapper.ErrUnsupportedKind)

	r.Register(upperMapper{})
	m, err := r.Lookup(shout)
	require.NoError(t, err)
	parsed, ok := m.TryParse("hi")
	assert.True(t, ok)
	assert.Equal(t, "hi!", parsed)

	boolMapper, err := r.Lookup(datamapper.Bool)
	require.NoError(t, err)
	assert.Equal(t, datamapper.Bool, boolMapper.Kind())
	assert.Contains(t, r.Kinds(), shout)
}

func TestParseKind(t *testing.T) {
	for name, kind := range map[string]datamapper.Kind{
		"Boolean":  datamapper.Bool,
		"int":      datamapper.Int,
		"Guid":     datamapper.Guid,
		"uuid":     datamapper.Guid,
		"DateTime": datamapper.DateTime,
		"string":   datamapper.String,
		"image":    datamapper.Image,
		"byte[]":   datamapper.Bytes,
	} {
		parsed, err := datamapper.ParseKind(name)
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := datamapper.ParseKind("money")
	assert.ErrorIs(t, err, datamapper.ErrUnsupportedKind)
	assert.Equal(t, "datetime", datamapper.DateTime.String())
}
