package habanero

import (
	"time"

	"github.com/chillisoft/habanero/datamapper"
	"github.com/chillisoft/habanero/dialect"
	"github.com/chillisoft/habanero/logger"
	"github.com/chillisoft/habanero/schema"
	"github.com/uber-go/tally/v4"
	"golang.org/x/text/language"
)

// Config habanero config
type Config struct {
	// Logger
	Logger logger.Interface
	// Dialect formats the generated SQL, standard SQL with ? placeholders by default
	Dialect dialect.Dialect
	// Namer names unique key constraints, the catalog namer by default
	Namer schema.Namer
	// Registry converts property values, built from NowFunc by default
	Registry *datamapper.Registry
	// NowFunc the function to be used when resolving "now" and lookup expiry
	NowFunc func() time.Time
	// LookupTimeout how long lookup lists without their own timeout are cached
	LookupTimeout time.Duration
	// LookupLanguage collation of sorted lookup display values
	LookupLanguage language.Tag
	// MetricsScope receives committer and lookup metrics
	MetricsScope tally.Scope
}

func (c *Config) applyDefaults(catalog *schema.Catalog) {
	if c.Logger == nil {
		c.Logger = logger.Default
	}
	if c.Dialect == nil {
		c.Dialect = dialect.Common{}
	}
	if c.Namer == nil {
		c.Namer = catalog.Namer()
	}
	if c.NowFunc == nil {
		c.NowFunc = func() time.Time { return time.Now().Local() }
	}
	if c.Registry == nil {
		c.Registry = datamapper.NewRegistry(datamapper.WithNowFunc(c.NowFunc))
	}
	if c.LookupLanguage == language.Und {
		c.LookupLanguage = language.English
	}
	if c.MetricsScope == nil {
		c.MetricsScope = tally.NoopScope
	}
}
