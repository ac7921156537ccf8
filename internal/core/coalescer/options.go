package coalescer

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
)

// Option 调度器选项
type Option func(*Scheduler)

// WithReporter 设置指标上报器
func WithReporter(rep interfaces.MetricsReporter) Option {
	return func(s *Scheduler) {
		if rep != nil {
			s.reporter = rep
		}
	}
}

// WithMaxPending 设置待刷新键数软上限，0 表示不检查
func WithMaxPending(n int) Option {
	return func(s *Scheduler) {
		s.maxPending = n
	}
}

// WithLeakWarnInterval 设置告警最小间隔，0 表示只告警一次
func WithLeakWarnInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		s.warn = &rate.Sometimes{Interval: d}
	}
}
