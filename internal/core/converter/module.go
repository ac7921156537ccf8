package converter

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
	UnifiedCfg *config.Config             `optional:"true"`
	Reporter   interfaces.MetricsReporter `optional:"true"`
}

// Result 模块输出
type Result struct {
	fx.Out

	Converter interfaces.Converter
	Registry  *Registry
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("converter",
		fx.Provide(ProvideRegistry),
	)
}

// ProvideRegistry 创建转换注册表，停止时关闭
func ProvideRegistry(p Params) Result {
	cfg := config.DefaultConverterConfig()
	if p.UnifiedCfg != nil {
		cfg = p.UnifiedCfg.Converter
	}

	reg := NewRegistry(p.Bus,
		WithReporter(p.Reporter),
		WithMaxRules(cfg.MaxRules),
		WithLeakWarnInterval(time.Duration(cfg.LeakWarnInterval)),
	)

	p.LC.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return reg.Close()
		},
	})

	return Result{Converter: reg, Registry: reg}
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "converter"
	// Description 模块描述
	Description = "通知转换注册表模块，把来源通知按规则转换为目标通知"
)
