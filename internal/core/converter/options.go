package converter

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
)

// Option 注册表选项
type Option func(*Registry)

// WithReporter 设置指标上报器
func WithReporter(rep interfaces.MetricsReporter) Option {
	return func(r *Registry) {
		if rep != nil {
			r.reporter = rep
		}
	}
}

// WithMaxRules 设置规则数软上限，0 表示不检查
func WithMaxRules(n int) Option {
	return func(r *Registry) {
		r.maxRules = n
	}
}

// WithLeakWarnInterval 设置泄漏告警最小间隔
//
// 0 表示只告警一次。
func WithLeakWarnInterval(d time.Duration) Option {
	return func(r *Registry) {
		r.leakWarn = &rate.Sometimes{Interval: d}
	}
}
