// Package metrics 提供通知中继的指标收集
//
// Collector 实现 interfaces.MetricsReporter，同时是一个 prometheus.Collector：
//   - notifyrelay_events_published_total{name}       发布次数
//   - notifyrelay_events_delivered_total{name}       投递给观察者的次数
//   - notifyrelay_conversions_total{source,target}   规则转换次数
//   - notifyrelay_post_requests_total{name,outcome}  合并请求（outcome=new|coalesced）
//   - notifyrelay_post_flushes_total{name}           周期刷新投递次数
//
// # 快速开始
//
//	c := metrics.NewCollector("notifyrelay")
//	prometheus.MustRegister(c)
//
//	bus := eventbus.NewBus(eventbus.WithReporter(c))
//
//	snap := c.Snapshot()
//	fmt.Println(snap.Conversions, snap.Coalesced)
//
// # 并发安全
//
// CounterVec 自身并发安全，快照计数使用 atomic。
package metrics
