package notifyrelay

import (
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-notifyrelay/config"
	"github.com/dep2p/go-notifyrelay/internal/core/coalescer"
	"github.com/dep2p/go-notifyrelay/internal/core/converter"
	"github.com/dep2p/go-notifyrelay/internal/core/cycle"
	"github.com/dep2p/go-notifyrelay/internal/core/eventbus"
	"github.com/dep2p/go-notifyrelay/internal/core/metrics"
	"github.com/dep2p/go-notifyrelay/internal/debug/introspect"
	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
)

// buildFxApp 构建 Fx 应用
//
// 加载顺序（按依赖）：
//  1. 配置与注入项：Config、Clock、Registerer
//  2. Metrics → EventBus → Cycle
//  3. Converter → Coalescer
//  4. 诊断：Introspect（按配置启用）
//  5. 用户扩展
//  6. Center 组件注入
func buildFxApp(cfg *config.Config, o *options, c *Center) (*fx.App, error) {
	// ════════════════════════════════════════════════════════════════════════
	// 1. 配置验证（前置）
	// ════════════════════════════════════════════════════════════════════════
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	modules := []fx.Option{
		fx.Supply(cfg),
	}

	if o.clock != nil {
		clk := o.clock
		modules = append(modules, fx.Provide(func() clock.Clock { return clk }))
	}
	if o.registerer != nil {
		reg := o.registerer
		modules = append(modules, fx.Provide(func() prometheus.Registerer { return reg }))
	}

	// ════════════════════════════════════════════════════════════════════════
	// 2. 基础模块
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		metrics.Module,
		eventbus.Module(),
		cycle.Module(),
	)

	// ════════════════════════════════════════════════════════════════════════
	// 3. 转换与合并
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		converter.Module(),
		coalescer.Module(),
	)

	// ════════════════════════════════════════════════════════════════════════
	// 4. 诊断
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules, introspect.Module())

	// ════════════════════════════════════════════════════════════════════════
	// 5. 用户扩展（Fx Options）
	// ════════════════════════════════════════════════════════════════════════
	if len(o.userFxOptions) > 0 {
		modules = append(modules, o.userFxOptions...)
	}

	// ════════════════════════════════════════════════════════════════════════
	// 6. Center 组件注入
	// ════════════════════════════════════════════════════════════════════════
	modules = append(modules,
		fx.Invoke(injectCenterComponents(c)),

		// 禁用 Fx 日志输出（避免干扰用户日志）
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
	)

	app := fx.New(modules...)
	if err := app.Err(); err != nil {
		return nil, err
	}
	return app, nil
}

// ════════════════════════════════════════════════════════════════════════════
// 组件注入辅助函数
// ════════════════════════════════════════════════════════════════════════════

// centerInjectParams Center 组件注入参数
type centerInjectParams struct {
	fx.In

	// 核心组件（必需）
	Bus       interfaces.EventBus
	Converter interfaces.Converter
	Registry  *converter.Registry
	Coalescer interfaces.Coalescer
	Scheduler *coalescer.Scheduler
	Cycle     interfaces.CycleHost

	// 按周期模式只有一个非 nil
	Manual *cycle.Manual `optional:"true"`
	Loop   *cycle.Loop   `optional:"true"`

	// 指标禁用时为 nil
	Collector *metrics.Collector `optional:"true"`

	// 自省禁用时为 nil
	Introspect *introspect.Server `optional:"true"`
}

// injectCenterComponents 创建 Center 组件注入函数
func injectCenterComponents(c *Center) interface{} {
	return func(p centerInjectParams) {
		c.bus = p.Bus
		c.converter = p.Converter
		c.registry = p.Registry
		c.coalescer = p.Coalescer
		c.scheduler = p.Scheduler
		c.cycle = p.Cycle
		c.manual = p.Manual
		c.loop = p.Loop
		c.collector = p.Collector
		c.introspect = p.Introspect
	}
}
