// Package metrics records cost-engine cache activity with Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/costwise/internal/core/domain"
	"go.trai.ch/zerr"
)

// Namespace prefixes every metric name.
const Namespace = "costwise"

// Collector implements ports.Metrics on a private registry.
type Collector struct {
	registry *prometheus.Registry

	invalidations   *prometheus.CounterVec
	invalidatedKeys *prometheus.CounterVec
	lookups         *prometheus.CounterVec
	rejected        *prometheus.CounterVec
	failures        *prometheus.CounterVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.invalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "graph",
			Name:      "invalidations_total",
			Help:      "Invalidation calls by cause",
		},
		[]string{"cause"},
	)

	c.invalidatedKeys = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "graph",
			Name:      "invalidated_keys_total",
			Help:      "Keys moved to stale by cause, including cascaded dependents",
		},
		[]string{"cause"},
	)

	c.lookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cost reads by entity kind and result (hit or miss)",
		},
		[]string{"kind", "result"},
	)

	c.rejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "rejected_stores_total",
			Help:      "Recomputed values discarded because an invalidation raced the computation",
		},
		[]string{"kind"},
	)

	c.failures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "cache",
			Name:      "recompute_failures_total",
			Help:      "Recomputations that returned an error",
		},
		[]string{"kind"},
	)

	c.registry.MustRegister(c.invalidations, c.invalidatedKeys, c.lookups, c.rejected, c.failures)
	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Invalidated counts one invalidation call and the keys it marked stale.
func (c *Collector) Invalidated(cause domain.InvalidationCause, keys int) {
	c.invalidations.WithLabelValues(string(cause)).Inc()
	c.invalidatedKeys.WithLabelValues(string(cause)).Add(float64(keys))
}

// Hit counts a read served from a fresh key.
func (c *Collector) Hit(kind domain.EntityKind) {
	c.lookups.WithLabelValues(string(kind), "hit").Inc()
}

// Miss counts a read that had to recompute.
func (c *Collector) Miss(kind domain.EntityKind) {
	c.lookups.WithLabelValues(string(kind), "miss").Inc()
}

// Rejected counts a discarded store.
func (c *Collector) Rejected(kind domain.EntityKind) {
	c.rejected.WithLabelValues(string(kind)).Inc()
}

// Failed counts a failed recompute.
func (c *Collector) Failed(kind domain.EntityKind) {
	c.failures.WithLabelValues(string(kind)).Inc()
}

// WriteTextfile writes the current metrics in the text exposition format to path.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write metrics"), "path", path)
	}
	return nil
}
