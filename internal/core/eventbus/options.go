// Package eventbus 实现事件总线
package eventbus

import "github.com/dep2p/go-notifyrelay/pkg/interfaces"

// Option 总线选项
type Option func(*Bus)

// WithReporter 设置指标上报器
func WithReporter(r interfaces.MetricsReporter) Option {
	return func(b *Bus) {
		if r != nil {
			b.reporter = r
		}
	}
}
