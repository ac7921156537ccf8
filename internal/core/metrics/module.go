package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-notifyrelay/config"
	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
	"github.com/dep2p/go-notifyrelay/pkg/lib/log"
)

var logger = log.Logger("core/metrics")

// Config 指标配置
type Config struct {
	// Enabled 是否启用指标收集
	Enabled bool

	// Namespace 指标命名空间
	Namespace string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	def := config.DefaultMetricsConfig()
	return Config{
		Enabled:   def.Enabled,
		Namespace: def.Namespace,
	}
}

// ConfigFromUnified 从统一配置创建指标配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return Config{
		Enabled:   cfg.Metrics.Enabled,
		Namespace: cfg.Metrics.Namespace,
	}
}

// Params Metrics 依赖参数
type Params struct {
	fx.In

	LC         fx.Lifecycle
	UnifiedCfg *config.Config        `optional:"true"`
	Registerer prometheus.Registerer `optional:"true"`
}

// Result Metrics 模块输出
type Result struct {
	fx.Out

	Reporter  interfaces.MetricsReporter
	Collector *Collector
}

// Module 是 metrics 的 Fx 模块
var Module = fx.Module("metrics",
	fx.Provide(NewFromParams),
)

// NewFromParams 从参数创建收集器
//
// 禁用时提供 NopReporter，Collector 为 nil。
// 提供了 Registerer 时在启动时注册、停止时注销。
func NewFromParams(p Params) (Result, error) {
	cfg := ConfigFromUnified(p.UnifiedCfg)
	if !cfg.Enabled {
		return Result{Reporter: interfaces.NopReporter{}}, nil
	}

	c := NewCollector(cfg.Namespace)
	if p.Registerer != nil {
		reg := p.Registerer
		p.LC.Append(fx.Hook{
			OnStart: func(context.Context) error {
				if err := reg.Register(c); err != nil {
					return fmt.Errorf("register metrics collector: %w", err)
				}
				logger.Debug("指标收集器已注册", "namespace", cfg.Namespace)
				return nil
			},
			OnStop: func(context.Context) error {
				reg.Unregister(c)
				return nil
			},
		})
	}

	return Result{Reporter: c, Collector: c}, nil
}
