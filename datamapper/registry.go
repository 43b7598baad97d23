package datamapper

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Registry dispatches a Kind to its Mapper. New kinds are added with
// Register without touching the built-in ones.
type Registry struct {
	mu      sync.RWMutex
	mappers map[Kind]Mapper
}

// Option configures the built-in mappers of a registry
type Option func(*options)

type options struct {
	nowFunc  func() time.Time
	location *time.Location
}

// WithNowFunc sets the clock used to resolve "now" and "today"
func WithNowFunc(fn func() time.Time) Option {
	return func(o *options) {
		o.nowFunc = fn
	}
}

// WithLocation sets the location free-form date strings are parsed in
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.location = loc
	}
}

// NewRegistry returns a registry holding every built-in mapper
func NewRegistry(opts ...Option) *Registry {
	o := options{nowFunc: time.Now, location: time.Local}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{mappers: map[Kind]Mapper{}}
	for _, m := range []Mapper{
		boolMapper{},
		intMapper{},
		floatMapper{},
		guidMapper{},
		dateTimeMapper{nowFunc: o.nowFunc, location: o.location},
		stringMapper{},
		imageMapper{},
		bytesMapper{},
	} {
		r.Register(m)
	}
	return r
}

// Register adds m, replacing any mapper already registered for its kind
func (r *Registry) Register(m Mapper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mappers[m.Kind()] = m
}

// Lookup returns the mapper for kind
func (r *Registry) Lookup(kind Kind) (Mapper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if m, ok := r.mappers[kind]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedKind, kind)
}

// Kinds lists registered kinds in declaration order
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.mappers))
	for k := range r.mappers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
