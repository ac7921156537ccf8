// Package eventbus 实现事件总线
package eventbus

import (
	"go.uber.org/multierr"

	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
	"github.com/dep2p/go-notifyrelay/pkg/types"
)

// ============================================================================
// 集合订阅
// ============================================================================

// Group 一组一起关闭的订阅
type Group struct {
	subs []interfaces.Subscription
}

// SubscribeEach 为集合中每个发送者注册同一个观察者
//
// 等价于对每个元素调用 bus.Subscribe(name, sender, handler)。
// 集合中重复的发送者只订阅一次，避免同一事件被投递两次。
func SubscribeEach(bus interfaces.EventBus, name string, senders []types.Identity, handler interfaces.Handler) *Group {
	g := &Group{subs: make([]interfaces.Subscription, 0, len(senders))}
	seen := make(map[types.Identity]struct{}, len(senders))
	for _, sender := range senders {
		if _, dup := seen[sender]; dup {
			continue
		}
		seen[sender] = struct{}{}
		g.subs = append(g.subs, bus.Subscribe(name, sender, handler))
	}
	return g
}

// Len 返回组内订阅数
func (g *Group) Len() int {
	return len(g.subs)
}

// Subscriptions 返回组内订阅
func (g *Group) Subscriptions() []interfaces.Subscription {
	return append([]interfaces.Subscription(nil), g.subs...)
}

// Close 取消组内全部订阅，汇总所有错误
func (g *Group) Close() error {
	var err error
	for _, sub := range g.subs {
		err = multierr.Append(err, sub.Close())
	}
	return err
}
