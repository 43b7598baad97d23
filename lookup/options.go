package lookup

import (
	"time"

	"github.com/chillisoft/habanero/datamapper"
	"github.com/chillisoft/habanero/logger"
	"github.com/uber-go/tally/v4"
	"golang.org/x/text/language"
)

// DefaultTimeout is how long a loaded list is served from the cache
const DefaultTimeout = 10 * time.Second

type config struct {
	now      func() time.Time
	timeout  time.Duration
	registry *datamapper.Registry
	scope    tally.Scope
	language language.Tag
	logger   logger.Interface
}

// Option configures a lookup list
type Option func(*config)

// WithClock sets the clock cache expiry is measured with
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// WithTimeout sets how long a loaded list is cached, values <= 0 keep the default
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

func WithRegistry(r *datamapper.Registry) Option {
	return func(c *config) {
		c.registry = r
	}
}

// WithScope records cache metrics in scope
func WithScope(scope tally.Scope) Option {
	return func(c *config) {
		c.scope = scope
	}
}

// WithLanguage sets the collation of SortedDisplayValues
func WithLanguage(tag language.Tag) Option {
	return func(c *config) {
		c.language = tag
	}
}

func WithLogger(l logger.Interface) Option {
	return func(c *config) {
		c.logger = l
	}
}

func newConfig(opts []Option) config {
	c := config{
		now:      time.Now,
		timeout:  DefaultTimeout,
		scope:    tally.NoopScope,
		language: language.English,
		logger:   logger.Discard,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.registry == nil {
		c.registry = datamapper.NewRegistry()
	}
	return c
}
