// Package eventbus 实现事件总线
package eventbus

import (
	"sync"
	"sync/atomic"

	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
	"github.com/dep2p/go-notifyrelay/pkg/types"
)

// ============================================================================
// Subscription 实现
// ============================================================================

// Subscription 订阅
type Subscription struct {
	id      string
	seq     uint64
	bus     *Bus
	name    string
	sender  types.Identity
	handler interfaces.Handler

	closeOnce sync.Once
	closed    atomic.Bool
}

var _ interfaces.Subscription = (*Subscription)(nil)

// ID 返回订阅唯一标识
func (s *Subscription) ID() string {
	return s.id
}

// Name 返回订阅的事件名，空字符串表示所有事件名
func (s *Subscription) Name() string {
	return s.name
}

// Sender 返回订阅的发送者
func (s *Subscription) Sender() types.Identity {
	return s.sender
}

// Closed 是否已关闭
func (s *Subscription) Closed() bool {
	return s.closed.Load()
}

// Close 取消订阅
//
// Close 是并发安全的，可以多次调用。正在进行的发布不会再投递给该订阅。
func (s *Subscription) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.bus.removeSub(s)
		logger.Debug("订阅已取消", "name", s.name, "sender", s.sender, "id", s.id)
	})
	return nil
}
