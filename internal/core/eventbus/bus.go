// Package eventbus 实现事件总线
package eventbus

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
	"github.com/dep2p/go-notifyrelay/pkg/lib/log"
	"github.com/dep2p/go-notifyrelay/pkg/types"
)

var logger = log.Logger("core/eventbus")

// anyName 订阅所有事件名的节点键
const anyName = ""

// ============================================================================
// Bus 实现
// ============================================================================

// Bus 事件总线
type Bus struct {
	mu sync.RWMutex

	// nodes 事件名节点映射，anyName 节点保存订阅所有事件名的观察者
	nodes map[string]*node

	// seq 订阅序号，决定投递顺序
	seq atomic.Uint64

	published atomic.Uint64
	reporter  interfaces.MetricsReporter
}

// node 事件名节点
type node struct {
	name  string
	sinks []*Subscription // 按订阅顺序排列
}

// Stats 总线统计
type Stats struct {
	// Subscriptions 活跃订阅数
	Subscriptions int

	// Names 有订阅的事件名数（不含通配节点）
	Names int

	// Published 累计发布次数
	Published uint64
}

// NewBus 创建新的事件总线
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		nodes:    make(map[string]*node),
		reporter: interfaces.NopReporter{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var _ interfaces.EventBus = (*Bus)(nil)

// ============================================================================
// EventBus 接口实现
// ============================================================================

// Subscribe 订阅事件
func (b *Bus) Subscribe(name string, sender types.Identity, handler interfaces.Handler) interfaces.Subscription {
	if handler == nil {
		types.Violation("eventbus.Subscribe", types.ErrNilHandler)
	}

	sub := &Subscription{
		id:      uuid.New().String(),
		seq:     b.seq.Add(1),
		bus:     b,
		name:    name,
		sender:  sender,
		handler: handler,
	}

	b.mu.Lock()
	n, ok := b.nodes[name]
	if !ok {
		n = &node{name: name}
		b.nodes[name] = n
	}
	n.sinks = append(n.sinks, sub)
	b.mu.Unlock()

	logger.Debug("订阅已注册", "name", name, "sender", sender, "id", sub.id)
	return sub
}

// Unsubscribe 取消订阅
func (b *Bus) Unsubscribe(sub interfaces.Subscription) {
	if sub == nil {
		return
	}
	_ = sub.Close()
}

// Publish 发布事件
//
// 观察者在锁外被调用，因此可以重入总线。
func (b *Bus) Publish(name string, sender types.Identity, payload types.Payload) {
	types.MustName("eventbus.Publish", name)

	sinks := b.match(name, sender)
	b.published.Add(1)
	b.reporter.EventPublished(name, len(sinks))

	if len(sinks) == 0 {
		return
	}

	evt := types.Event{
		ID:      uuid.New().String(),
		Name:    name,
		Sender:  sender,
		Payload: payload,
		Time:    time.Now(),
	}

	for _, sub := range sinks {
		// 快照之后被关闭的订阅不再投递
		if sub.closed.Load() {
			continue
		}
		sub.handler(evt)
	}
}

// Stats 返回统计快照
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	st := Stats{Published: b.published.Load()}
	for name, n := range b.nodes {
		st.Subscriptions += len(n.sinks)
		if name != anyName {
			st.Names++
		}
	}
	return st
}

// ============================================================================
// 内部方法
// ============================================================================

// match 收集匹配的订阅快照，按订阅顺序排列
func (b *Bus) match(name string, sender types.Identity) []*Subscription {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []*Subscription
	collect := func(n *node) {
		if n == nil {
			return
		}
		for _, sub := range n.sinks {
			if sub.sender == types.AnySender || sub.sender == sender {
				out = append(out, sub)
			}
		}
	}
	collect(b.nodes[name])
	named := len(out)
	collect(b.nodes[anyName])

	// 两个节点各自有序，只有两者都非空时才需要合并
	if named > 0 && len(out) > named {
		sort.SliceStable(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	}
	return out
}

// removeSub 移除订阅
func (b *Bus) removeSub(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, ok := b.nodes[sub.name]
	if !ok {
		return
	}

	for i, s := range n.sinks {
		if s == sub {
			n.sinks = append(n.sinks[:i], n.sinks[i+1:]...)
			break
		}
	}

	// 节点没有订阅者时删除
	if len(n.sinks) == 0 {
		delete(b.nodes, sub.name)
	}
}
