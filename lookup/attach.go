package lookup

import (
	"github.com/chillisoft/habanero/schema"
)

// Attach builds a DatabaseLookupList for every property of catalog that
// declares a lookup query and has no list yet. The query timeout of the
// declaration overrides the one in opts.
func Attach(catalog *schema.Catalog, source Source, opts ...Option) []*DatabaseLookupList {
	var lists []*DatabaseLookupList
	for _, cd := range catalog.All() {
		for _, pd := range cd.PropDefs.All() {
			if pd.Lookup == nil || pd.LookupList != nil {
				continue
			}
			listOpts := append(append([]Option(nil), opts...), WithTimeout(pd.Lookup.Timeout))
			list := New(pd, pd.Lookup.SQL, source, listOpts...)
			pd.LookupList = list
			lists = append(lists, list)
		}
	}
	return lists
}
