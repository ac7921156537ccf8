package coalescer

import (
	"context"
	"time"

	"go.uber.org/fx"

	"github.com/dep2p/go-notifyrelay/config"
	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Params 模块依赖参数
type Params struct {
	fx.In

	LC         fx.Lifecycle
	Bus        interfaces.EventBus
	Host       interfaces.CycleHost
	UnifiedCfg *config.Config             `optional:"true"`
	Reporter   interfaces.MetricsReporter `optional:"true"`
}

// Result 模块输出
type Result struct {
	fx.Out

	Coalescer interfaces.Coalescer
	Scheduler *Scheduler
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("coalescer",
		fx.Provide(ProvideScheduler),
	)
}

// ProvideScheduler 创建合并调度器，停止时关闭
func ProvideScheduler(p Params) Result {
	cfg := config.DefaultCoalescerConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Coalescer
	}

	s := NewScheduler(p.Bus, p.Host,
		WithReporter(p.Reporter),
		WithMaxPending(cfg.MaxPending),
		WithLeakWarnInterval(time.Duration(cfg.LeakWarnInterval)),
	)

	p.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return s.Close()
		},
	})

	return Result{Coalescer: s, Scheduler: s}
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "coalescer"
	// Description 模块描述
	Description = "合并投递模块，同一周期内同一事件只发布一次"
)
