package mocks

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
	"github.com/dep2p/go-notifyrelay/pkg/types"
)

// PublishCall 一次 Publish 调用记录
type PublishCall struct {
	Name    string
	Sender  types.Identity
	Payload types.Payload
}

// SubscribeCall 一次 Subscribe 调用记录
type SubscribeCall struct {
	Name   string
	Sender types.Identity
}

// MockEventBus 模拟 EventBus 接口实现
//
// 记录所有发布和订阅调用；默认行为与真实总线一致，
// 按 (name, sender) 同步投递给订阅者，AnySender 订阅匹配任意发送者。
type MockEventBus struct {
	mu   sync.Mutex
	subs []*MockSubscription

	// 可覆盖的方法
	PublishFunc   func(name string, sender types.Identity, payload types.Payload)
	SubscribeFunc func(name string, sender types.Identity, handler interfaces.Handler) interfaces.Subscription

	// 调用记录
	PublishCalls   []PublishCall
	SubscribeCalls []SubscribeCall
}

// MockSubscription 模拟 Subscription 接口实现
type MockSubscription struct {
	id      string
	name    string
	sender  types.Identity
	handler interfaces.Handler
	bus     *MockEventBus
	closed  bool
}

// NewMockEventBus 创建 MockEventBus
func NewMockEventBus() *MockEventBus {
	return &MockEventBus{}
}

// Publish 记录并同步投递事件
func (m *MockEventBus) Publish(name string, sender types.Identity, payload types.Payload) {
	m.mu.Lock()
	m.PublishCalls = append(m.PublishCalls, PublishCall{Name: name, Sender: sender, Payload: payload})
	m.mu.Unlock()

	if m.PublishFunc != nil {
		m.PublishFunc(name, sender, payload)
		return
	}

	m.mu.Lock()
	var matched []*MockSubscription
	for _, s := range m.subs {
		if s.name == name && (s.sender == types.AnySender || s.sender == sender) {
			matched = append(matched, s)
		}
	}
	m.mu.Unlock()

	evt := types.Event{ID: uuid.New().String(), Name: name, Sender: sender, Payload: payload}
	for _, s := range matched {
		s.handler(evt)
	}
}

// Subscribe 记录并注册订阅
func (m *MockEventBus) Subscribe(name string, sender types.Identity, handler interfaces.Handler) interfaces.Subscription {
	m.mu.Lock()
	m.SubscribeCalls = append(m.SubscribeCalls, SubscribeCall{Name: name, Sender: sender})
	m.mu.Unlock()

	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(name, sender, handler)
	}

	sub := &MockSubscription{
		id:      uuid.New().String(),
		name:    name,
		sender:  sender,
		handler: handler,
		bus:     m,
	}
	m.mu.Lock()
	m.subs = append(m.subs, sub)
	m.mu.Unlock()
	return sub
}

// Unsubscribe 取消订阅
func (m *MockEventBus) Unsubscribe(sub interfaces.Subscription) {
	if sub != nil {
		_ = sub.Close()
	}
}

// ============================================================================
// 测试辅助方法
// ============================================================================

// Published 返回指定事件名的发布记录
func (m *MockEventBus) Published(name string) []PublishCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []PublishCall
	for _, c := range m.PublishCalls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Subscribers 返回指定事件名的活跃订阅数
func (m *MockEventBus) Subscribers(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, s := range m.subs {
		if s.name == name {
			n++
		}
	}
	return n
}

// Reset 清空调用记录，保留订阅
func (m *MockEventBus) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = nil
	m.SubscribeCalls = nil
}

// ============================================================================
// MockSubscription 方法
// ============================================================================

// ID 返回订阅 ID
func (s *MockSubscription) ID() string {
	return s.id
}

// Close 取消订阅
func (s *MockSubscription) Close() error {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for i, sub := range s.bus.subs {
		if sub == s {
			s.bus.subs = append(s.bus.subs[:i:i], s.bus.subs[i+1:]...)
			break
		}
	}
	return nil
}

// IsClosed 检查是否已关闭
func (s *MockSubscription) IsClosed() bool {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	return s.closed
}

// 确保实现接口
var _ interfaces.EventBus = (*MockEventBus)(nil)
var _ interfaces.Subscription = (*MockSubscription)(nil)
