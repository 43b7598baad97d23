package lookup_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/chillisoft/habanero/datamapper"
	"github.com/chillisoft/habanero/lookup"
	"github.com/chillisoft/habanero/schema"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
	"golang.org/x/text/language"
)

const coloursSQL = "SELECT ColourID, Name FROM Colour"

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 5, 17, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func colourRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"ColourID", "Name"}).
		AddRow(1, "Red").
		AddRow(2, "Blue").
		AddRow(3, "Red")
}

func TestDatabaseLookupList(t *testing.T) {
	db, mock := newMock(t)
	clk := newClock()
	scope := tally.NewTestScope("", nil)

	colour := schema.NewPropDef("ColourID", datamapper.Int)
	list := lookup.New(colour, coloursSQL, lookup.DBSource{DB: db}, lookup.WithClock(clk.Now), lookup.WithScope(scope))
	assert.Equal(t, lookup.DefaultTimeout, list.Timeout())

	mock.ExpectQuery(regexp.QuoteMeta(coloursSQL)).WillReturnRows(colourRows())

	displayToKey, err := list.GetLookupList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Red": "1", "Blue": "2", "Red(2)": "3"}, displayToKey)

	keyToDisplay, err := list.GetIDValueLookupList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1": "Red", "2": "Blue", "3": "Red(2)"}, keyToDisplay)

	clk.Advance(9 * time.Second)
	displayToKey["Green"] = "4"
	again, err := list.GetLookupList(context.Background())
	require.NoError(t, err)
	assert.Len(t, again, 3)
	require.NoError(t, mock.ExpectationsWereMet())

	clk.Advance(2 * time.Second)
	mock.ExpectQuery(regexp.QuoteMeta(coloursSQL)).WillReturnRows(
		sqlmock.NewRows([]string{"ColourID", "Name"}).AddRow(1, "Red").AddRow(4, nil),
	)
	reloaded, err := list.GetLookupList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Red": "1", "": "4"}, reloaded)
	require.NoError(t, mock.ExpectationsWereMet())

	counters := scope.Snapshot().Counters()
	assert.EqualValues(t, 2, counters["lookup.cache.hit+"].Value())
	assert.EqualValues(t, 2, counters["lookup.cache.miss+"].Value())
	assert.EqualValues(t, 2, counters["lookup.refresh+"].Value())
	assert.Contains(t, scope.Snapshot().Timers(), "lookup.refresh_latency+")
}

func TestInvalidate(t *testing.T) {
	db, mock := newMock(t)
	list := lookup.New(schema.NewPropDef("ColourID", datamapper.Int), coloursSQL, lookup.DBSource{DB: db})

	mock.ExpectQuery(regexp.QuoteMeta(coloursSQL)).WillReturnRows(colourRows())
	mock.ExpectQuery(regexp.QuoteMeta(coloursSQL)).WillReturnRows(colourRows())

	_, err := list.GetLookupList(context.Background())
	require.NoError(t, err)
	list.Invalidate()
	_, err = list.GetLookupList(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDuplicateDisplayValues(t *testing.T) {
	rows := []lookup.Row{
		{Key: "a", Display: "Red(2)"},
		{Key: "b", Display: "Red"},
		{Key: "c", Display: "Red"},
		{Key: "d", Display: "Red"},
	}
	source := lookup.SourceFunc(func(context.Context, string) ([]lookup.Row, error) {
		return rows, nil
	})

	list := lookup.New(schema.NewPropDef("Code", datamapper.String), "codes", source)
	displayToKey, err := list.GetLookupList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Red(2)": "a", "Red": "b", "Red(3)": "c", "Red(4)": "d"}, displayToKey)
}

func TestGuidKeys(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	source := lookup.SourceFunc(func(context.Context, string) ([]lookup.Row, error) {
		return []lookup.Row{{Key: id.String(), Display: []byte("Head Office")}}, nil
	})

	list := lookup.New(schema.NewPropDef("BranchID", datamapper.Guid), "branches", source)
	keyToDisplay, err := list.GetIDValueLookupList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"{6BA7B810-9DAD-11D1-80B4-00C04FD430C8}": "Head Office"}, keyToDisplay)
}

func TestLookupDefinitionErrors(t *testing.T) {
	rows := func(rows ...lookup.Row) lookup.Source {
		return lookup.SourceFunc(func(context.Context, string) ([]lookup.Row, error) {
			return rows, nil
		})
	}

	results := []struct {
		PropDef *schema.PropDef
		Source  lookup.Source
		Err     error
	}{
		{nil, rows(lookup.Row{Key: 1, Display: "Red"}), lookup.ErrNoPropDef},
		{schema.NewPropDef("ColourID", datamapper.Int), rows(lookup.Row{Key: 1, Display: "Red"}, lookup.Row{Key: "abc", Display: "Blue"}), lookup.ErrInvalidKey},
		{schema.NewPropDef("ColourID", datamapper.Int), rows(lookup.Row{Key: 1, Display: "Red"}, lookup.Row{Key: nil, Display: "Blue"}), lookup.ErrInvalidKey},
	}

	for idx, result := range results {
		list := lookup.New(result.PropDef, coloursSQL, result.Source)
		displayToKey, err := list.GetLookupList(context.Background())
		assert.Nil(t, displayToKey, "case #%v", idx)
		assert.ErrorIs(t, err, result.Err, "case #%v", idx)
		assert.ErrorIs(t, err, schema.ErrInvalidDefinition, "case #%v", idx)
	}
}

func TestSourceError(t *testing.T) {
	db, mock := newMock(t)
	scope := tally.NewTestScope("", nil)
	list := lookup.New(schema.NewPropDef("ColourID", datamapper.Int), coloursSQL, lookup.DBSource{DB: db}, lookup.WithScope(scope))

	failure := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(coloursSQL)).WillReturnError(failure)

	_, err := list.GetLookupList(context.Background())
	assert.ErrorIs(t, err, failure)
	assert.EqualValues(t, 1, scope.Snapshot().Counters()["lookup.refresh_fail+"].Value())
}

func TestDBSourceNeedsTwoColumns(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT Name").WillReturnRows(sqlmock.NewRows([]string{"Name"}).AddRow("Red"))

	_, err := lookup.DBSource{DB: db}.LoadRows(context.Background(), "SELECT Name FROM Colour")
	assert.Error(t, err)
}

func TestConcurrentLoadsShareOneQuery(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	source := lookup.SourceFunc(func(context.Context, string) ([]lookup.Row, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []lookup.Row{{Key: 1, Display: "Red"}}, nil
	})
	list := lookup.New(schema.NewPropDef("ColourID", datamapper.Int), coloursSQL, source)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			displayToKey, err := list.GetLookupList(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, map[string]string{"Red": "1"}, displayToKey)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestSortedDisplayValues(t *testing.T) {
	source := lookup.SourceFunc(func(context.Context, string) ([]lookup.Row, error) {
		return []lookup.Row{{Key: "c", Display: "cherry"}, {Key: "b", Display: "Banana"}, {Key: "a", Display: "apple"}}, nil
	})
	list := lookup.New(schema.NewPropDef("Fruit", datamapper.String), "fruit", source, lookup.WithLanguage(language.English))

	values, err := list.SortedDisplayValues(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "Banana", "cherry"}, values)
}

func TestSimpleLookupList(t *testing.T) {
	list := lookup.NewSimple(map[string]string{"1": "Red", "2": "Red", "3": "blue"})

	displayToKey, err := list.GetLookupList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Red": "1", "Red(2)": "2", "blue": "3"}, displayToKey)

	keyToDisplay, err := list.GetIDValueLookupList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Red(2)", keyToDisplay["2"])

	values, err := list.SortedDisplayValues(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"blue", "Red", "Red(2)"}, values)
}
