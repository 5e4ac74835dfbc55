package shed

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "shedlog"
	metricsSubsystem = "shed"
	shedIDLabelName  = "shed_id"
)

// Collector exports a Shed's counters to Prometheus. Every metric carries a
// constant shed_id label.
type Collector struct {
	shed *Shed

	cacheSize        *prometheus.Desc
	stored           *prometheus.Desc
	evicted          *prometheus.Desc
	dispatched       *prometheus.Desc
	listenerFailures *prometheus.Desc
	dropped          *prometheus.Desc
	blocked          *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for s
func NewCollector(s *Shed) *Collector {
	labels := prometheus.Labels{shedIDLabelName: s.ID().String()}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(metricsNamespace, metricsSubsystem, name), help, nil, labels)
	}
	return &Collector{
		shed:             s,
		cacheSize:        desc("cache_size", "number of logs currently cached"),
		stored:           desc("stored_total", "logs added to the cache"),
		evicted:          desc("evicted_total", "logs evicted from a full cache"),
		dispatched:       desc("dispatched_total", "listener invocations"),
		listenerFailures: desc("listener_failures_total", "listener invocations that panicked"),
		dropped:          desc("dropped_total", "async dispatch events lost to overflow"),
		blocked:          desc("blocked_total", "times async dispatch waited for queue space"),
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.cacheSize
	ch <- c.stored
	ch <- c.evicted
	ch <- c.dispatched
	ch <- c.listenerFailures
	ch <- c.dropped
	ch <- c.blocked
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.shed.Stats()
	ch <- prometheus.MustNewConstMetric(c.cacheSize, prometheus.GaugeValue, float64(st.CacheSize))
	ch <- prometheus.MustNewConstMetric(c.stored, prometheus.CounterValue, float64(st.Stored))
	ch <- prometheus.MustNewConstMetric(c.evicted, prometheus.CounterValue, float64(st.Evicted))
	ch <- prometheus.MustNewConstMetric(c.dispatched, prometheus.CounterValue, float64(st.Dispatched))
	ch <- prometheus.MustNewConstMetric(c.listenerFailures, prometheus.CounterValue, float64(st.ListenerFailures))
	ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(st.Dropped))
	ch <- prometheus.MustNewConstMetric(c.blocked, prometheus.CounterValue, float64(st.Blocked))
}
