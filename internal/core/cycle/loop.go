package cycle

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
	"github.com/dep2p/go-notifyrelay/pkg/lib/log"
	"github.com/dep2p/go-notifyrelay/pkg/types"
)

var logger = log.Logger("core/cycle")

// Loop 事件循环周期宿主
//
// 一轮迭代：先运行迭代开始时已排队的工作，再运行周期结束回调。
// 迭代中新投递的工作和新注册的回调进入下一轮。
type Loop struct {
	mu      sync.Mutex
	work    []func()
	eoc     []func()
	closed  bool
	started bool

	// queueSize 工作队列上限，0 表示不限制
	queueSize int

	wake   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}

	cycles  atomic.Uint64
	dropped atomic.Uint64
}

var _ interfaces.CycleHost = (*Loop)(nil)

// NewLoop 创建事件循环
func NewLoop(queueSize int) *Loop {
	return &Loop{
		queueSize: queueSize,
		wake:      make(chan struct{}, 1),
	}
}

// Post 投递工作到事件循环
func (l *Loop) Post(fn func()) error {
	if fn == nil {
		types.Violation("cycle.Post", types.ErrNilCallback)
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLoopClosed
	}
	if l.queueSize > 0 && len(l.work) >= l.queueSize {
		l.mu.Unlock()
		return ErrQueueFull
	}
	l.work = append(l.work, fn)
	l.mu.Unlock()

	l.signal()
	return nil
}

// ScheduleEndOfCycle 注册周期结束回调
//
// 可以从任意 goroutine 调用，回调在事件循环 goroutine 上执行。
// 循环停止后注册的回调被丢弃并计入 Dropped。
func (l *Loop) ScheduleEndOfCycle(fn func()) {
	if fn == nil {
		types.Violation("cycle.ScheduleEndOfCycle", types.ErrNilCallback)
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		n := l.dropped.Add(1)
		logger.Warn("事件循环已停止，丢弃周期回调", "dropped", n)
		return
	}
	l.eoc = append(l.eoc, fn)
	l.mu.Unlock()

	l.signal()
}

// Dropped 返回循环停止后被丢弃的周期回调数
func (l *Loop) Dropped() uint64 {
	return l.dropped.Load()
}

// Run 在当前 goroutine 上运行事件循环，直到 ctx 结束
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
			l.runCycle()
		}
	}
}

// Start 在后台 goroutine 启动事件循环
func (l *Loop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrLoopClosed
	}
	if l.started {
		return ErrAlreadyStarted
	}
	l.started = true

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})

	go func() {
		defer close(l.done)
		_ = l.Run(ctx)
	}()
	logger.Debug("事件循环已启动", "queueSize", l.queueSize)
	return nil
}

// Stop 停止事件循环
//
// 已排队的工作和周期回调会在最后一轮中执行完，之后的 Post 返回 ErrLoopClosed。
//
// 依赖本循环的组件（如 coalescer.Scheduler）必须先于循环关闭：
// 循环停止后注册的周期回调不会运行，调度器中对应的条目永远不会刷新。
// 通过 fx 组装时停止钩子按反向顺序执行，自动满足这一顺序。
func (l *Loop) Stop(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	cancel, done := l.cancel, l.done
	l.mu.Unlock()

	if cancel != nil {
		cancel()
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	// 最后一轮
	l.runCycle()
	logger.Debug("事件循环已停止", "cycles", l.cycles.Load())
	return nil
}

// Cycles 返回已完成的周期数
func (l *Loop) Cycles() uint64 {
	return l.cycles.Load()
}

// runCycle 运行一轮迭代
func (l *Loop) runCycle() {
	l.mu.Lock()
	work := l.work
	l.work = nil
	l.mu.Unlock()

	for _, fn := range work {
		fn()
	}

	l.mu.Lock()
	eoc := l.eoc
	l.eoc = nil
	l.mu.Unlock()

	for _, fn := range eoc {
		fn()
	}

	if len(work) > 0 || len(eoc) > 0 {
		l.cycles.Add(1)
	}
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
