package committer

import (
	"github.com/uber-go/tally/v4"
)

type metrics struct {
	statements tally.Counter
	commit     tally.Counter
	rollback   tally.Counter
	fail       tally.Counter
	latency    tally.Timer
}

func newMetrics(scope tally.Scope) *metrics {
	committerScope := scope.SubScope("committer")
	return &metrics{
		statements: committerScope.Counter("statements"),
		commit:     committerScope.Counter("commit"),
		rollback:   committerScope.Counter("rollback"),
		fail:       committerScope.Counter("fail"),
		latency:    committerScope.Timer("statement_latency"),
	}
}
