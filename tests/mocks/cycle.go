package mocks

import (
	"sync"

	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
)

// MockCycleHost 模拟 CycleHost 接口实现
//
// 回调排队直到 RunCycle 被调用。
type MockCycleHost struct {
	mu      sync.Mutex
	pending []func()

	// 可覆盖的方法
	ScheduleEndOfCycleFunc func(fn func())

	// 调用记录
	ScheduleCalls int
}

// NewMockCycleHost 创建 MockCycleHost
func NewMockCycleHost() *MockCycleHost {
	return &MockCycleHost{}
}

// ScheduleEndOfCycle 记录并排队回调
func (m *MockCycleHost) ScheduleEndOfCycle(fn func()) {
	m.mu.Lock()
	m.ScheduleCalls++
	m.mu.Unlock()

	if m.ScheduleEndOfCycleFunc != nil {
		m.ScheduleEndOfCycleFunc(fn)
		return
	}

	m.mu.Lock()
	m.pending = append(m.pending, fn)
	m.mu.Unlock()
}

// RunCycle 运行当前排队的回调，返回运行数
func (m *MockCycleHost) RunCycle() int {
	m.mu.Lock()
	q := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, fn := range q {
		fn()
	}
	return len(q)
}

// Pending 返回排队中的回调数
func (m *MockCycleHost) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

var _ interfaces.CycleHost = (*MockCycleHost)(nil)
