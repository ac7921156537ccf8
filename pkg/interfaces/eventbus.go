// Package interfaces 定义 notifyrelay 公共接口
//
// 本文件定义 EventBus 接口，即转换层和合并层依赖的发布订阅原语。
package interfaces

import "github.com/dep2p/go-notifyrelay/pkg/types"

// EventBus 定义事件总线接口
//
// EventBus 按事件名和发送者身份同步投递通知：
//   - Publish 在调用方 goroutine 上依次调用所有匹配的观察者
//   - 观察者按订阅顺序被调用
//   - 观察者可以在回调中重入 Publish / Subscribe / Unsubscribe
type EventBus interface {
	// Publish 发布事件
	//
	// 投递给订阅了 (name, sender)、(name, *)、(*, sender) 或 (*, *) 的观察者。
	// sender 为 types.AnySender 表示事件没有发送者。name 为空会 panic。
	Publish(name string, sender types.Identity, payload types.Payload)

	// Subscribe 订阅事件
	//
	// name 为空表示所有事件名，sender 为 types.AnySender 表示所有发送者。
	// handler 为 nil 会 panic。
	Subscribe(name string, sender types.Identity, handler Handler) Subscription

	// Unsubscribe 取消订阅
	//
	// 对已关闭或未知的订阅是空操作。
	Unsubscribe(sub Subscription)
}

// Handler 观察者回调
type Handler func(evt types.Event)

// Subscription 定义事件订阅句柄
type Subscription interface {
	// ID 返回订阅唯一标识
	ID() string

	// Close 取消订阅，可多次调用
	Close() error
}
