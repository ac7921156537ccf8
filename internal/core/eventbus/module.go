// Package eventbus 实现事件总线
package eventbus

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Params 模块依赖参数
type Params struct {
	fx.In

	Reporter interfaces.MetricsReporter `optional:"true"`
}

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	EventBus interfaces.EventBus
	Bus      *Bus
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("eventbus",
		fx.Provide(ProvideEventBus),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideEventBus 提供 EventBus 实例
func ProvideEventBus(p Params) Result {
	bus := NewBus(WithReporter(p.Reporter))
	return Result{
		EventBus: bus,
		Bus:      bus,
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In
	LC  fx.Lifecycle
	Bus *Bus
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			st := input.Bus.Stats()
			logger.Debug("事件总线停止", "subscriptions", st.Subscriptions, "published", st.Published)
			return nil
		},
	})
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "eventbus"
	// Description 模块描述
	Description = "事件总线模块，按事件名和发送者同步投递通知"
)
