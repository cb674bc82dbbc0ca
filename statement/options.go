package statement

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/Konsultn-Engineering/namedbind/cache"
	"github.com/Konsultn-Engineering/namedbind/dialect"
	"github.com/Konsultn-Engineering/namedbind/metrics"
)

// Option configures a Statement.
type Option func(*options)

type options struct {
	dialect dialect.Dialect
	cache   *cache.QueryCache
	log     *logrus.Entry
	metrics *metrics.Metrics
}

func newOptions(opts []Option) options {
	o := options{dialect: dialect.NewOracleDialect()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.log = logrus.NewEntry(l)
	}
	return o
}

// WithDialect selects placeholder naming and bind dispatch. The default is
// the Oracle dialect.
func WithDialect(d dialect.Dialect) Option {
	return func(o *options) {
		if d != nil {
			o.dialect = d
		}
	}
}

// WithCache reuses conversions across statements.
func WithCache(c *cache.QueryCache) Option {
	return func(o *options) {
		o.cache = c
	}
}

func WithLogger(log *logrus.Entry) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithMetrics records binds and executes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}
