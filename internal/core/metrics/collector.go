package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
)

// 请求结果标签
const (
	outcomeNew       = "new"
	outcomeCoalesced = "coalesced"
)

// Collector 指标收集器
type Collector struct {
	published   *prometheus.CounterVec
	delivered   *prometheus.CounterVec
	conversions *prometheus.CounterVec
	requests    *prometheus.CounterVec
	flushes     *prometheus.CounterVec

	totals struct {
		published   atomic.Uint64
		delivered   atomic.Uint64
		conversions atomic.Uint64
		requests    atomic.Uint64
		coalesced   atomic.Uint64
		flushes     atomic.Uint64
	}
}

var (
	_ interfaces.MetricsReporter = (*Collector)(nil)
	_ prometheus.Collector       = (*Collector)(nil)
)

// NewCollector 创建指标收集器
func NewCollector(namespace string) *Collector {
	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, labels)
	}

	return &Collector{
		published:   counter("events_published_total", "Events published on the bus.", "name"),
		delivered:   counter("events_delivered_total", "Event deliveries to observers.", "name"),
		conversions: counter("conversions_total", "Notifications re-emitted by conversion rules.", "source", "target"),
		requests:    counter("post_requests_total", "Coalescing post requests by outcome.", "name", "outcome"),
		flushes:     counter("post_flushes_total", "Coalesced events delivered at cycle end.", "name"),
	}
}

// ============================================================================
// MetricsReporter 接口实现
// ============================================================================

// EventPublished 记录一次发布
func (c *Collector) EventPublished(name string, observers int) {
	c.published.WithLabelValues(name).Inc()
	c.totals.published.Add(1)
	if observers > 0 {
		c.delivered.WithLabelValues(name).Add(float64(observers))
		c.totals.delivered.Add(uint64(observers))
	}
}

// ConversionFired 记录一次转换
func (c *Collector) ConversionFired(sourceName, targetName string) {
	c.conversions.WithLabelValues(sourceName, targetName).Inc()
	c.totals.conversions.Add(1)
}

// PostRequested 记录一次合并请求
func (c *Collector) PostRequested(name string, coalesced bool) {
	outcome := outcomeNew
	if coalesced {
		outcome = outcomeCoalesced
		c.totals.coalesced.Add(1)
	}
	c.requests.WithLabelValues(name, outcome).Inc()
	c.totals.requests.Add(1)
}

// PostFlushed 记录一次刷新投递
func (c *Collector) PostFlushed(name string) {
	c.flushes.WithLabelValues(name).Inc()
	c.totals.flushes.Add(1)
}

// ============================================================================
// prometheus.Collector 接口实现
// ============================================================================

// Describe 实现 prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.published.Describe(ch)
	c.delivered.Describe(ch)
	c.conversions.Describe(ch)
	c.requests.Describe(ch)
	c.flushes.Describe(ch)
}

// Collect 实现 prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.published.Collect(ch)
	c.delivered.Collect(ch)
	c.conversions.Collect(ch)
	c.requests.Collect(ch)
	c.flushes.Collect(ch)
}
