package types

import (
	"maps"
	"time"
)

// ============================================================================
//                              Payload - 事件载荷
// ============================================================================

// Payload 事件载荷
//
// 可以为 nil。转换规则原样转发载荷，合并投递在请求时浅拷贝。
type Payload map[string]any

// Clone 浅拷贝载荷
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	return maps.Clone(p)
}

// Get 读取键值
func (p Payload) Get(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

// ============================================================================
//                              Event - 通知事件
// ============================================================================

// Event 投递给观察者的通知
type Event struct {
	// ID 事件唯一标识（UUID）
	ID string

	// Name 事件名称
	Name string

	// Sender 发送者身份，AnySender 表示无发送者
	Sender Identity

	// Payload 载荷，可为 nil
	Payload Payload

	// Time 发布时间
	Time time.Time
}

// HasSender 是否携带发送者
func (e Event) HasSender() bool {
	return e.Sender != AnySender
}
