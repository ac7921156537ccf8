package cycle

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
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
	UnifiedCfg *config.Config `optional:"true"`
	Clock      clock.Clock    `optional:"true"`
}

// Result 模块输出
//
// 只有所选模式对应的具体宿主非 nil。
type Result struct {
	fx.Out

	CycleHost interfaces.CycleHost
	Manual    *Manual
	Loop      *Loop
	Ticker    *Ticker
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("cycle",
		fx.Provide(ProvideCycleHost),
	)
}

// ProvideCycleHost 按配置的周期模式创建宿主
//
// loop 和 ticker 宿主随生命周期启动和停止。
func ProvideCycleHost(p Params) Result {
	cfg := config.DefaultCycleConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Cycle
	}

	switch cfg.Mode {
	case config.CycleModeLoop:
		l := NewLoop(cfg.QueueSize)
		p.LC.Append(fx.Hook{
			OnStart: func(context.Context) error { return l.Start() },
			OnStop:  func(ctx context.Context) error { return l.Stop(ctx) },
		})
		return Result{CycleHost: l, Loop: l}

	case config.CycleModeTicker:
		t := NewTicker(p.Clock, time.Duration(cfg.Interval))
		p.LC.Append(fx.Hook{
			OnStart: func(context.Context) error { return t.Start() },
			OnStop: func(context.Context) error {
				t.Stop()
				return nil
			},
		})
		return Result{CycleHost: t, Ticker: t}

	default:
		m := NewManual()
		return Result{CycleHost: m, Manual: m}
	}
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "cycle"
	// Description 模块描述
	Description = "处理周期宿主模块，提供手动、事件循环和定时三种周期驱动方式"
)
