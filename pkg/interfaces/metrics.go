// Package interfaces 定义 notifyrelay 公共接口
//
// 本文件定义 MetricsReporter 接口，供各模块上报计数。
package interfaces

// MetricsReporter 定义指标上报接口
//
// 所有方法必须并发安全且不阻塞。
type MetricsReporter interface {
	// EventPublished 记录一次发布及命中的观察者数
	EventPublished(name string, observers int)

	// ConversionFired 记录一次规则转换
	ConversionFired(sourceName, targetName string)

	// PostRequested 记录一次合并请求，coalesced 表示被并入已有条目
	PostRequested(name string, coalesced bool)

	// PostFlushed 记录一次周期刷新投递
	PostFlushed(name string)
}

// NopReporter 空实现
type NopReporter struct{}

var _ MetricsReporter = NopReporter{}

func (NopReporter) EventPublished(string, int)     {}
func (NopReporter) ConversionFired(string, string) {}
func (NopReporter) PostRequested(string, bool)     {}
func (NopReporter) PostFlushed(string)             {}
