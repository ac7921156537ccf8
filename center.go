package notifyrelay

import (
	"fmt"
	"sync"

	"go.uber.org/fx"

	"github.com/dep2p/go-notifyrelay/config"
	"github.com/dep2p/go-notifyrelay/internal/core/coalescer"
	"github.com/dep2p/go-notifyrelay/internal/core/converter"
	"github.com/dep2p/go-notifyrelay/internal/core/cycle"
	"github.com/dep2p/go-notifyrelay/internal/core/metrics"
	"github.com/dep2p/go-notifyrelay/internal/debug/introspect"
	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
	"github.com/dep2p/go-notifyrelay/pkg/lib/log"
)

var logger = log.Logger("notifyrelay")

// ════════════════════════════════════════════════════════════════════════════
//                              Center
// ════════════════════════════════════════════════════════════════════════════

// Center 通知中心
//
// Center 是组合根：持有事件总线、转换注册表、合并调度器和处理周期宿主，
// 各组件由 Fx 组装并随 Center 的生命周期启动和停止。
//
// 用法：
//
//	center, _ := notifyrelay.New()
//	_ = center.Start(ctx)
//	defer center.Close()
//
//	// 把成员的通知转述为组合对象的通知
//	center.Converter().AddRule("memberChanged", member, "groupChanged", group)
//
//	// 同一周期内多次请求只投递一次
//	_ = center.PostCoalescing("groupChanged", group, nil)
//	_, _ = center.Flush()
type Center struct {
	// ────────────────────────────────────────────────────────────────────────
	// 配置
	// ────────────────────────────────────────────────────────────────────────

	config *config.Config
	app    *fx.App

	// ────────────────────────────────────────────────────────────────────────
	// 组件（由 Fx 注入）
	// ────────────────────────────────────────────────────────────────────────

	bus       interfaces.EventBus
	converter interfaces.Converter
	registry  *converter.Registry
	coalescer interfaces.Coalescer
	scheduler *coalescer.Scheduler
	cycle     interfaces.CycleHost
	manual    *cycle.Manual
	loop      *cycle.Loop
	collector *metrics.Collector

	introspect *introspect.Server

	// ────────────────────────────────────────────────────────────────────────
	// 生命周期状态
	// ────────────────────────────────────────────────────────────────────────

	mu      sync.RWMutex
	started bool
	closed  bool
}

// New 创建通知中心
//
// 创建但不启动，需要调用 Start()。组件在 New 返回时已经可用，
// 但 loop / ticker 周期只有在 Start 之后才会推进。
//
// 示例：
//
//	center, err := notifyrelay.New(
//	    notifyrelay.WithCycleMode(notifyrelay.CycleTicker),
//	    notifyrelay.WithTickInterval(16*time.Millisecond),
//	)
func New(opts ...Option) (*Center, error) {
	o := newOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	cfg, err := o.toConfig()
	if err != nil {
		return nil, fmt.Errorf("build config: %w", err)
	}

	c := &Center{config: cfg}
	c.app, err = buildFxApp(cfg, o, c)
	if err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}

	// 日志级别为进程级设置，配置通过验证后才应用
	if cfg.Log.Level != "" {
		log.ApplyLevelSpec(cfg.Log.Level)
	}

	logger.Debug("通知中心已创建", "cycle", cfg.Cycle.Mode, "metrics", cfg.Metrics.Enabled)
	return c, nil
}

// ════════════════════════════════════════════════════════════════════════════
//                              组件访问
// ════════════════════════════════════════════════════════════════════════════

// Bus 返回事件总线
func (c *Center) Bus() interfaces.EventBus {
	return c.bus
}

// Converter 返回转换注册表
func (c *Center) Converter() interfaces.Converter {
	return c.converter
}

// Coalescer 返回合并调度器
func (c *Center) Coalescer() interfaces.Coalescer {
	return c.coalescer
}

// Cycle 返回处理周期宿主
func (c *Center) Cycle() interfaces.CycleHost {
	return c.cycle
}

// Config 返回生效配置的副本
func (c *Center) Config() *config.Config {
	return c.config.Clone()
}

// Metrics 返回累计计数快照，指标禁用时返回零值
func (c *Center) Metrics() MetricsSnapshot {
	if c.collector == nil {
		return MetricsSnapshot{}
	}
	return c.collector.Snapshot()
}

// IntrospectAddr 返回自省服务的监听地址，未启用时为空
func (c *Center) IntrospectAddr() string {
	if c.introspect == nil {
		return ""
	}
	return c.introspect.Addr()
}

// ════════════════════════════════════════════════════════════════════════════
//                              便捷方法
// ════════════════════════════════════════════════════════════════════════════

// Publish 同步发布事件
func (c *Center) Publish(name string, sender Identity, payload Payload) {
	c.bus.Publish(name, sender, payload)
}

// Subscribe 订阅事件
func (c *Center) Subscribe(name string, sender Identity, handler Handler) Subscription {
	return c.bus.Subscribe(name, sender, handler)
}

// PostCoalescing 请求在当前周期结束时发布事件
//
// 必须在 Start 之后调用。
func (c *Center) PostCoalescing(name string, sender Identity, payload Payload) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrClosed
	}
	if !c.started {
		return ErrNotStarted
	}
	return c.coalescer.RequestPost(name, sender, payload)
}

// Flush 结束当前处理周期，返回运行的周期回调数
//
// 只在手动周期模式下可用，其他模式返回 ErrNotManualCycle。
func (c *Center) Flush() (int, error) {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()

	if closed {
		return 0, ErrClosed
	}
	if c.manual == nil {
		return 0, ErrNotManualCycle
	}
	return c.manual.Flush(), nil
}

// Post 把工作投递到事件循环
//
// 只在 loop 周期模式下可用，其他模式返回 ErrNotLoopCycle。
func (c *Center) Post(fn func()) error {
	if c.loop == nil {
		return ErrNotLoopCycle
	}
	return c.loop.Post(fn)
}
