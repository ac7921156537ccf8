package metrics

// Snapshot 累计计数快照
type Snapshot struct {
	// Published 发布次数
	Published uint64

	// Delivered 观察者投递次数
	Delivered uint64

	// Conversions 规则转换次数
	Conversions uint64

	// Requests 合并请求次数
	Requests uint64

	// Coalesced 被并入已有条目的请求次数
	Coalesced uint64

	// Flushes 周期刷新投递次数
	Flushes uint64
}

// Snapshot 返回累计计数快照
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Published:   c.totals.published.Load(),
		Delivered:   c.totals.delivered.Load(),
		Conversions: c.totals.conversions.Load(),
		Requests:    c.totals.requests.Load(),
		Coalesced:   c.totals.coalesced.Load(),
		Flushes:     c.totals.flushes.Load(),
	}
}

// CoalesceRatio 返回被合并请求的比例
func (s Snapshot) CoalesceRatio() float64 {
	if s.Requests == 0 {
		return 0
	}
	return float64(s.Coalesced) / float64(s.Requests)
}
