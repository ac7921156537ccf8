package notifyrelay

import (
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"

	"github.com/dep2p/go-notifyrelay/config"
)

// Option 配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 基础配置（WithConfig / WithConfigFile），为空时使用默认配置
	base *config.Config

	// 预设
	preset string

	// 覆盖项，nil 表示未设置
	cycleMode    *config.CycleMode
	tickInterval *time.Duration
	queueSize    *int
	maxRules     *int
	maxPending   *int
	metrics      *bool
	logLevel     *string
	introspect   *string

	// 注入
	registerer prometheus.Registerer
	clock      clock.Clock

	// 用户扩展
	userFxOptions []fx.Option
}

func newOptions() *options {
	return &options{}
}

// toConfig 合成最终配置
//
// 顺序：基础配置 → 预设 → 单项覆盖。
func (o *options) toConfig() (*config.Config, error) {
	var cfg *config.Config
	if o.base != nil {
		cfg = o.base.Clone()
	} else {
		cfg = config.NewConfig()
	}

	if err := config.ApplyPreset(cfg, o.preset); err != nil {
		return nil, err
	}

	if o.cycleMode != nil {
		cfg.Cycle.Mode = *o.cycleMode
	}
	if o.tickInterval != nil {
		cfg.Cycle.Interval = config.Duration(*o.tickInterval)
	}
	if o.queueSize != nil {
		cfg.Cycle.QueueSize = *o.queueSize
	}
	if o.maxRules != nil {
		cfg.Converter.MaxRules = *o.maxRules
	}
	if o.maxPending != nil {
		cfg.Coalescer.MaxPending = *o.maxPending
	}
	if o.metrics != nil {
		cfg.Metrics.Enabled = *o.metrics
	}
	if o.logLevel != nil {
		cfg.Log.Level = *o.logLevel
	}
	if o.introspect != nil {
		cfg.Diagnostics.EnableIntrospect = true
		cfg.Diagnostics.IntrospectAddr = *o.introspect
	}
	return cfg, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              配置来源
// ════════════════════════════════════════════════════════════════════════════

// WithConfig 使用完整配置作为基础
//
// 配置会被复制，之后修改 cfg 不影响 Center。
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return errors.New("config is nil")
		}
		o.base = cfg
		return nil
	}
}

// WithConfigFile 从 JSON 或 YAML 文件加载基础配置
func WithConfigFile(path string) Option {
	return func(o *options) error {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
		o.base = cfg
		return nil
	}
}

// WithPreset 应用预设
//
// 可选值见 PresetManual、PresetEventLoop、PresetFrame。
func WithPreset(name string) Option {
	return func(o *options) error {
		o.preset = name
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              处理周期
// ════════════════════════════════════════════════════════════════════════════

// WithCycleMode 设置处理周期驱动方式
func WithCycleMode(mode CycleMode) Option {
	return func(o *options) error {
		o.cycleMode = &mode
		return nil
	}
}

// WithTickInterval 设置 ticker 模式的周期间隔
func WithTickInterval(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return errors.New("tick interval must be positive")
		}
		o.tickInterval = &d
		return nil
	}
}

// WithLoopQueueSize 设置 loop 模式的工作队列容量，0 表示不限制
func WithLoopQueueSize(n int) Option {
	return func(o *options) error {
		o.queueSize = &n
		return nil
	}
}

// WithClock 注入 ticker 模式使用的时钟
//
// 测试中传入 clock.NewMock() 即可手动推进周期。
func WithClock(clk clock.Clock) Option {
	return func(o *options) error {
		o.clock = clk
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              诊断
// ════════════════════════════════════════════════════════════════════════════

// WithMaxRules 设置转换规则数软上限
//
// 超过上限只输出泄漏告警，不会拒绝注册。0 表示不检查。
func WithMaxRules(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return errors.New("max rules must be non-negative")
		}
		o.maxRules = &n
		return nil
	}
}

// WithMaxPending 设置单周期待刷新键数软上限，0 表示不检查
func WithMaxPending(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return errors.New("max pending must be non-negative")
		}
		o.maxPending = &n
		return nil
	}
}

// WithMetrics 启用或禁用指标收集
func WithMetrics(enable bool) Option {
	return func(o *options) error {
		o.metrics = &enable
		return nil
	}
}

// WithMetricsRegisterer 设置 Prometheus 注册器
//
// 启动时注册收集器，停止时注销。
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) error {
		o.registerer = reg
		return nil
	}
}

// WithLogLevel 设置日志级别
//
// 格式同 NOTIFYRELAY_LOG_LEVEL，例如 "info" 或 "warn,core/converter=debug"。
func WithLogLevel(spec string) Option {
	return func(o *options) error {
		o.logLevel = &spec
		return nil
	}
}

// WithIntrospect 启用本地自省 HTTP 服务
//
// addr 为空时使用 127.0.0.1:6060，传入 "127.0.0.1:0" 使用随机端口，
// 实际地址可通过 Center.IntrospectAddr 获取。
func WithIntrospect(addr string) Option {
	return func(o *options) error {
		if addr == "" {
			addr = config.DefaultDiagnosticsConfig().IntrospectAddr
		}
		o.introspect = &addr
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              扩展
// ════════════════════════════════════════════════════════════════════════════

// WithFxOptions 追加自定义 Fx 选项
//
// 可用于注入额外组件，或用 fx.Decorate 替换内部实现。
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) error {
		o.userFxOptions = append(o.userFxOptions, opts...)
		return nil
	}
}
