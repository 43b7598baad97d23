package lookup

import (
	"context"
	"sort"

	"github.com/chillisoft/habanero/schema"
)

// SimpleLookupList is a fixed lookup list
type SimpleLookupList struct {
	list   *list
	config config
}

var _ schema.LookupList = (*SimpleLookupList)(nil)

// NewSimple returns a lookup list of keys mapped to display strings.
// Repeated display strings are disambiguated in key order.
func NewSimple(keyToDisplay map[string]string, opts ...Option) *SimpleLookupList {
	keys := make([]string, 0, len(keyToDisplay))
	for key := range keyToDisplay {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]pair, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, pair{key: key, display: keyToDisplay[key]})
	}
	return &SimpleLookupList{list: newList(pairs), config: newConfig(opts)}
}

func (l *SimpleLookupList) GetLookupList(context.Context) (map[string]string, error) {
	return copyMap(l.list.displayToKey), nil
}

func (l *SimpleLookupList) GetIDValueLookupList(context.Context) (map[string]string, error) {
	return copyMap(l.list.keyToDisplay), nil
}

func (l *SimpleLookupList) SortedDisplayValues(context.Context) ([]string, error) {
	return sortDisplayValues(l.list.displayToKey, l.config), nil
}
