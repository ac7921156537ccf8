package cycle

import (
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
	"github.com/dep2p/go-notifyrelay/pkg/types"
)

// Manual 手动周期宿主
//
// 回调排队直到 Flush 被调用。
type Manual struct {
	mu     sync.Mutex
	queue  []func()
	cycles atomic.Uint64
}

var _ interfaces.CycleHost = (*Manual)(nil)

// NewManual 创建手动周期宿主
func NewManual() *Manual {
	return &Manual{}
}

// ScheduleEndOfCycle 注册周期结束回调
func (m *Manual) ScheduleEndOfCycle(fn func()) {
	if fn == nil {
		types.Violation("cycle.ScheduleEndOfCycle", types.ErrNilCallback)
	}
	m.mu.Lock()
	m.queue = append(m.queue, fn)
	m.mu.Unlock()
}

// Flush 结束当前周期，按注册顺序运行回调，返回运行的回调数
//
// 回调 panic 时，尚未运行的回调保留到下一个周期。
func (m *Manual) Flush() int {
	m.mu.Lock()
	q := m.queue
	m.queue = nil
	m.mu.Unlock()

	ran := 0
	defer func() {
		if ran < len(q) {
			m.requeue(q[ran+1:])
		}
	}()

	for _, fn := range q {
		fn()
		ran++
	}
	m.cycles.Add(1)
	return ran
}

// Pending 返回等待中的回调数
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Cycles 返回已完成的周期数
func (m *Manual) Cycles() uint64 {
	return m.cycles.Load()
}

// requeue 把未运行的回调放回队首
func (m *Manual) requeue(rest []func()) {
	if len(rest) == 0 {
		return
	}
	m.mu.Lock()
	m.queue = append(append([]func(){}, rest...), m.queue...)
	m.mu.Unlock()
}
