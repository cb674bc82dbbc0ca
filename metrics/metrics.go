package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Konsultn-Engineering/namedbind/cache"
)

// Metrics collects statement counters on its own registry. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	executesTotal     *prometheus.CounterVec
	executeDurationMs *prometheus.HistogramVec
	bindsTotal        *prometheus.CounterVec
	bindErrorsTotal   prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{registry: reg}

	m.executesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "statement_executes_total",
		Help: "Total number of statement executes.",
	}, []string{"mode", "status"})
	m.executeDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "statement_execute_duration_ms",
		Help:    "Statement execute duration in milliseconds.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14),
	}, []string{"mode"})
	m.bindsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "statement_binds_total",
		Help: "Total number of values bound to native handles.",
	}, []string{"path"})
	m.bindErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "statement_bind_errors_total",
		Help: "Total number of failed binds.",
	})

	reg.MustRegister(
		m.executesTotal,
		m.executeDurationMs,
		m.bindsTotal,
		m.bindErrorsTotal,
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RegisterQueryCache exports the usage counters of c.
func (m *Metrics) RegisterQueryCache(c *cache.QueryCache) error {
	if m == nil || c == nil {
		return nil
	}
	collectors := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "query_cache_entries",
			Help: "Converted queries currently cached.",
		}, func() float64 { return float64(c.Stats().Entries) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "query_cache_hits_total",
			Help: "Total number of query cache hits.",
		}, func() float64 { return float64(c.Stats().Hits) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "query_cache_misses_total",
			Help: "Total number of query cache misses.",
		}, func() float64 { return float64(c.Stats().Misses) }),
	}
	for _, col := range collectors {
		if err := m.registry.Register(col); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveExecute(mode string, failed bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if failed {
		status = "error"
	}
	m.executesTotal.WithLabelValues(mode, status).Inc()
	m.executeDurationMs.WithLabelValues(mode).Observe(float64(elapsed) / float64(time.Millisecond))
}

// IncBind counts one successful bind on the named or positional path.
func (m *Metrics) IncBind(named bool) {
	if m == nil {
		return
	}
	path := "positional"
	if named {
		path = "named"
	}
	m.bindsTotal.WithLabelValues(path).Inc()
}

func (m *Metrics) IncBindError() {
	if m == nil {
		return
	}
	m.bindErrorsTotal.Inc()
}
