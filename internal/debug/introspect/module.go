package introspect

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-notifyrelay/config"
	"github.com/dep2p/go-notifyrelay/internal/core/eventbus"
	"github.com/dep2p/go-notifyrelay/internal/core/metrics"
	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Params 模块依赖参数
//
// 除统一配置外全部可选，缺失的组件在报告中省略。
type Params struct {
	fx.In

	LC         fx.Lifecycle
	UnifiedCfg *config.Config       `optional:"true"`
	Converter  interfaces.Converter `optional:"true"`
	Coalescer  interfaces.Coalescer `optional:"true"`
	Bus        *eventbus.Bus        `optional:"true"`
	Collector  *metrics.Collector   `optional:"true"`
}

// Result 模块输出，禁用时 Server 为 nil
type Result struct {
	fx.Out

	Server *Server
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module(Name,
		fx.Provide(ProvideServer),
		// 启用时即使没有消费者也要构造服务，生命周期钩子在构造时挂接
		fx.Invoke(func(*Server) {}),
	)
}

// ConfigFromUnified 从统一配置创建服务配置，禁用时返回 nil
func ConfigFromUnified(cfg *config.Config) *Config {
	if cfg == nil || !cfg.Diagnostics.EnableIntrospect {
		return nil
	}
	addr := cfg.Diagnostics.IntrospectAddr
	if addr == "" {
		addr = DefaultAddr
	}
	return &Config{Addr: addr}
}

// ProvideServer 提供自省服务并挂接生命周期
func ProvideServer(p Params) Result {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if cfg == nil {
		return Result{}
	}

	cfg.Converter = p.Converter
	cfg.Coalescer = p.Coalescer
	if p.Bus != nil {
		// 避免把 nil 指针装进接口
		cfg.Bus = p.Bus
	}
	cfg.Collector = p.Collector

	server := New(*cfg)
	p.LC.Append(fx.Hook{
		OnStart: server.Start,
		OnStop: func(context.Context) error {
			return server.Stop()
		},
	})
	return Result{Server: server}
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "introspect"
	// Description 模块描述
	Description = "本地自省 HTTP 服务，暴露规则、待刷新键和计数"
)
