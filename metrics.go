// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package polydd

import "github.com/prometheus/client_golang/prometheus"

// MetricsCollector implements prometheus.Collector over a Manager's Stats,
// so an embedding application can register it with its own registry. The
// Manager never starts an HTTP server or otherwise exposes a scrape
// endpoint itself; exporting the metrics is the caller's responsibility.
type MetricsCollector struct {
	m *Manager

	nodeCount  *prometheus.Desc
	gcCount    *prometheus.Desc
	cacheHit   *prometheus.Desc
	cacheMiss  *prometheus.Desc
	reorderOps *prometheus.Desc
}

// NewMetricsCollector builds a MetricsCollector reporting m's current
// Stats under the given metric name prefix.
func NewMetricsCollector(m *Manager, namespace string) *MetricsCollector {
	return &MetricsCollector{
		m:          m,
		nodeCount:  prometheus.NewDesc(namespace+"_node_count", "Number of live nodes in the manager.", nil, nil),
		gcCount:    prometheus.NewDesc(namespace+"_gc_total", "Number of garbage collection passes run.", nil, nil),
		cacheHit:   prometheus.NewDesc(namespace+"_apply_cache_hits_total", "Number of apply cache hits.", nil, nil),
		cacheMiss:  prometheus.NewDesc(namespace+"_apply_cache_misses_total", "Number of apply cache misses.", nil, nil),
		reorderOps: prometheus.NewDesc(namespace+"_reorder_ops_total", "Number of variable swaps performed while reordering.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *MetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.nodeCount
	ch <- c.gcCount
	ch <- c.cacheHit
	ch <- c.cacheMiss
	ch <- c.reorderOps
}

// Collect implements prometheus.Collector.
func (c *MetricsCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.m.Stats()
	ch <- prometheus.MustNewConstMetric(c.nodeCount, prometheus.GaugeValue, float64(s.NodeCount))
	ch <- prometheus.MustNewConstMetric(c.gcCount, prometheus.CounterValue, float64(s.GCCount))
	ch <- prometheus.MustNewConstMetric(c.cacheHit, prometheus.CounterValue, float64(s.CacheHit))
	ch <- prometheus.MustNewConstMetric(c.cacheMiss, prometheus.CounterValue, float64(s.CacheMiss))
	ch <- prometheus.MustNewConstMetric(c.reorderOps, prometheus.CounterValue, float64(s.ReorderOps))
}
