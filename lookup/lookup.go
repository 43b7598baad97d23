package lookup

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chillisoft/habanero/datamapper"
	"github.com/chillisoft/habanero/schema"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/collate"
)

var (
	// ErrNoPropDef the lookup list is not owned by a property
	ErrNoPropDef = errors.New("lookup list has no property definition")
	// ErrInvalidKey a lookup key does not parse as the property kind
	ErrInvalidKey = errors.New("invalid lookup key")
)

// list is one loaded lookup list
type list struct {
	displayToKey map[string]string
	keyToDisplay map[string]string
	loadedAt     time.Time
}

// DatabaseLookupList loads the permissible values of a property from a query
// and caches them for the configured timeout. Concurrent loads of an expired
// list share one query.
type DatabaseLookupList struct {
	propDef *schema.PropDef
	sql     string
	source  Source
	config  config
	metrics *Metrics
	group   singleflight.Group

	mu     sync.RWMutex
	loaded *list
}

var _ schema.LookupList = (*DatabaseLookupList)(nil)

func New(propDef *schema.PropDef, sql string, source Source, opts ...Option) *DatabaseLookupList {
	c := newConfig(opts)
	return &DatabaseLookupList{
		propDef: propDef,
		sql:     sql,
		source:  source,
		config:  c,
		metrics: NewMetrics(c.scope),
	}
}

func (l *DatabaseLookupList) PropDef() *schema.PropDef {
	return l.propDef
}

func (l *DatabaseLookupList) SQL() string {
	return l.sql
}

func (l *DatabaseLookupList) Timeout() time.Duration {
	return l.config.timeout
}

// GetLookupList returns display string to key string
func (l *DatabaseLookupList) GetLookupList(ctx context.Context) (map[string]string, error) {
	loaded, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return copyMap(loaded.displayToKey), nil
}

// GetIDValueLookupList returns key string to display string
func (l *DatabaseLookupList) GetIDValueLookupList(ctx context.Context) (map[string]string, error) {
	loaded, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return copyMap(loaded.keyToDisplay), nil
}

// SortedDisplayValues returns the display strings in collation order
func (l *DatabaseLookupList) SortedDisplayValues(ctx context.Context) ([]string, error) {
	loaded, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return sortDisplayValues(loaded.displayToKey, l.config), nil
}

// Invalidate drops the cached list, the next call reloads it
func (l *DatabaseLookupList) Invalidate() {
	l.mu.Lock()
	l.loaded = nil
	l.mu.Unlock()
}

func (l *DatabaseLookupList) get(ctx context.Context) (*list, error) {
	l.mu.RLock()
	loaded := l.loaded
	l.mu.RUnlock()

	if loaded != nil && l.config.now().Sub(loaded.loadedAt) < l.config.timeout {
		l.metrics.Hit.Inc(1)
		return loaded, nil
	}
	l.metrics.Miss.Inc(1)

	v, err, _ := l.group.Do("load", func() (interface{}, error) {
		return l.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*list), nil
}

func (l *DatabaseLookupList) load(ctx context.Context) (*list, error) {
	if l.propDef == nil {
		return nil, schema.NewDefinitionError("", ErrNoPropDef, "query %q", l.sql)
	}

	begin := l.config.now()
	sw := l.metrics.refreshTimer.Start()
	rows, err := l.source.LoadRows(ctx, l.sql)
	sw.Stop()
	l.config.logger.Trace(ctx, begin, func() (string, int64) { return l.sql, int64(len(rows)) }, err)
	if err != nil {
		l.metrics.RefreshFail.Inc(1)
		return nil, err
	}

	loaded, err := l.build(rows)
	if err != nil {
		l.metrics.RefreshFail.Inc(1)
		return nil, err
	}
	loaded.loadedAt = l.config.now()

	l.mu.Lock()
	l.loaded = loaded
	l.mu.Unlock()

	l.metrics.Refresh.Inc(1)
	l.metrics.Rows.Update(float64(len(rows)))
	return loaded, nil
}

func (l *DatabaseLookupList) build(rows []Row) (*list, error) {
	mapper, err := l.config.registry.Lookup(l.propDef.Kind())
	if err != nil {
		return nil, err
	}
	displayMapper, err := l.config.registry.Lookup(datamapper.String)
	if err != nil {
		return nil, err
	}

	pairs := make([]pair, 0, len(rows))
	for _, row := range rows {
		key, ok := mapper.TryParse(row.Key)
		if !ok {
			return nil, schema.NewDefinitionError("", ErrInvalidKey, "%v is not a valid %s for property %s", row.Key, mapper.Kind(), l.propDef.Name)
		}
		if key == nil {
			return nil, schema.NewDefinitionError("", ErrInvalidKey, "null key for property %s, display %v", l.propDef.Name, row.Display)
		}
		pairs = append(pairs, pair{
			key:     mapper.ConvertToString(key),
			display: displayMapper.ConvertToString(row.Display),
		})
	}
	return newList(pairs), nil
}

type pair struct {
	key     string
	display string
}

// newList maps each pair both ways. A repeated display string gets the
// suffix "(2)", "(3)" and so on in row order.
func newList(pairs []pair) *list {
	l := &list{
		displayToKey: make(map[string]string, len(pairs)),
		keyToDisplay: make(map[string]string, len(pairs)),
	}
	for _, p := range pairs {
		display := p.display
		for n := 2; ; n++ {
			if _, exists := l.displayToKey[display]; !exists {
				break
			}
			display = fmt.Sprintf("%s(%d)", p.display, n)
		}
		l.displayToKey[display] = p.key
		l.keyToDisplay[p.key] = display
	}
	return l
}

func copyMap(m map[string]string) map[string]string {
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

func sortDisplayValues(displayToKey map[string]string, c config) []string {
	values := make([]string, 0, len(displayToKey))
	for display := range displayToKey {
		values = append(values, display)
	}
	collate.New(c.language).SortStrings(values)
	return values
}
