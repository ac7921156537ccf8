// Package eventbus 实现进程内事件总线
//
// 提供按事件名和发送者身份匹配的同步发布/订阅：
//   - 同步投递：Publish 在调用方 goroutine 上依次调用观察者
//   - 确定顺序：观察者按订阅顺序被调用
//   - 可重入：观察者在锁外被调用，可以在回调中发布或增删订阅
//   - 集合订阅：SubscribeEach 为一组发送者注册同一个观察者
//
// # 快速开始
//
//	bus := eventbus.NewBus()
//
//	sub := bus.Subscribe("didChange", sender, func(evt types.Event) {
//	    // 处理事件
//	})
//	defer sub.Close()
//
//	bus.Publish("didChange", sender, types.Payload{"value": 5})
//
// # 匹配规则
//
// 订阅 (name, sender) 匹配事件当且仅当：
//   - name 为空或等于事件名
//   - sender 为 types.AnySender 或等于事件发送者
//
// # 架构定位
//
// Tier: Core Layer Level 1（无依赖）
//
// 依赖关系：
//   - 依赖：pkg/interfaces, pkg/types
//   - 被依赖：converter, coalescer
//
// # 并发安全
//
// 订阅表由 sync.RWMutex 保护，取消订阅由 closeOnce 保证只执行一次。
// 投递本身不加锁，观察者需要自行处理并发。
package eventbus
