package lookup

import (
	"github.com/uber-go/tally/v4"
)

// Metrics of the lookup list cache
type Metrics struct {
	Hit         tally.Counter
	Miss        tally.Counter
	Refresh     tally.Counter
	RefreshFail tally.Counter
	Rows        tally.Gauge

	refreshTimer tally.Timer
}

// NewMetrics returns the lookup metrics rooted at scope
func NewMetrics(scope tally.Scope) *Metrics {
	lookupScope := scope.SubScope("lookup")
	cacheScope := lookupScope.SubScope("cache")
	return &Metrics{
		Hit:          cacheScope.Counter("hit"),
		Miss:         cacheScope.Counter("miss"),
		Refresh:      lookupScope.Counter("refresh"),
		RefreshFail:  lookupScope.Counter("refresh_fail"),
		Rows:         lookupScope.Gauge("rows"),
		refreshTimer: lookupScope.Timer("refresh_latency"),
	}
}
