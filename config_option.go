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

// ConfigOption use functional option for habanero Config.
type ConfigOption func(c *Config) error

// WithLogger set logger.
func WithLogger(logger logger.Interface) ConfigOption {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithDialect set dialect.
func WithDialect(d dialect.Dialect) ConfigOption {
	return func(c *Config) error {
		c.Dialect = d
		return nil
	}
}

// WithDialectName set a registered dialect by name.
func WithDialectName(name string) ConfigOption {
	return func(c *Config) error {
		d, err := dialect.Get(name)
		if err != nil {
			return err
		}
		c.Dialect = d
		return nil
	}
}

// WithNamer set constraint namer.
func WithNamer(namer schema.Namer) ConfigOption {
	return func(c *Config) error {
		c.Namer = namer
		return nil
	}
}

// WithRegistry set data mapper registry.
func WithRegistry(registry *datamapper.Registry) ConfigOption {
	return func(c *Config) error {
		c.Registry = registry
		return nil
	}
}

// WithNowFunc set now func.
func WithNowFunc(fn func() time.Time) ConfigOption {
	return func(c *Config) error {
		c.NowFunc = fn
		return nil
	}
}

// WithLookupTimeout set lookup list cache timeout.
func WithLookupTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) error {
		c.LookupTimeout = timeout
		return nil
	}
}

// WithLookupLanguage set lookup collation language.
func WithLookupLanguage(tag language.Tag) ConfigOption {
	return func(c *Config) error {
		c.LookupLanguage = tag
		return nil
	}
}

// WithMetricsScope set metrics scope.
func WithMetricsScope(scope tally.Scope) ConfigOption {
	return func(c *Config) error {
		c.MetricsScope = scope
		return nil
	}
}
