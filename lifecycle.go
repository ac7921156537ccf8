package notifyrelay

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// closeTimeout Close 停止 Fx 应用的超时
const closeTimeout = 10 * time.Second

// ════════════════════════════════════════════════════════════════════════════
//                              生命周期管理
// ════════════════════════════════════════════════════════════════════════════

// Start 启动通知中心
//
// 启动 loop / ticker 周期宿主，注册指标收集器。
func (c *Center) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if c.started {
		return ErrAlreadyStarted
	}

	if err := c.app.Start(ctx); err != nil {
		logger.Error("通知中心启动失败", "error", err)
		return fmt.Errorf("start fx app: %w", err)
	}

	c.started = true
	logger.Info("通知中心已启动", "cycle", c.config.Cycle.Mode)
	return nil
}

// Stop 停止通知中心
//
// 按启动的反向顺序停止各组件：合并调度器丢弃未刷新的条目，
// 转换注册表清空规则，周期宿主运行最后一轮。Stop 之后不能再次 Start。
//
// 状态在锁内切换为已关闭，组件在锁外停止：事件循环上仍在运行的工作
// 调用 PostCoalescing 等方法时直接得到 ErrClosed。
func (c *Center) Stop(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if !c.started {
		c.mu.Unlock()
		return ErrNotStarted
	}
	c.markClosedLocked()
	c.mu.Unlock()

	return c.stopApp(ctx)
}

// Close 关闭通知中心并释放所有资源
//
// 与 Stop 的区别：
//   - Stop: 未启动时返回 ErrNotStarted
//   - Close: 任何状态下都可调用，重复调用返回 nil
func (c *Center) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	wasStarted := c.started
	c.markClosedLocked()
	c.mu.Unlock()

	if wasStarted {
		ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		return c.stopApp(ctx)
	}

	// 从未启动：Fx 停止钩子不会运行，直接关闭组件
	var err error
	err = multierr.Append(err, c.scheduler.Close())
	err = multierr.Append(err, c.registry.Close())
	logger.Debug("通知中心已关闭（未启动）")
	return err
}

// IsRunning 是否运行中
func (c *Center) IsRunning() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.started && !c.closed
}

func (c *Center) markClosedLocked() {
	c.started = false
	c.closed = true
}

// stopApp 停止 Fx 应用，调用方不能持有 c.mu
func (c *Center) stopApp(ctx context.Context) error {
	// Fx 按反向顺序调用 OnStop，即使出错也继续停止其余组件
	if err := c.app.Stop(ctx); err != nil {
		logger.Error("停止通知中心失败", "error", err)
		return fmt.Errorf("stop fx app: %w", err)
	}
	logger.Info("通知中心已停止")
	return nil
}
