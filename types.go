package notifyrelay

import (
	"github.com/dep2p/go-notifyrelay/config"
	"github.com/dep2p/go-notifyrelay/internal/core/metrics"
	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
	"github.com/dep2p/go-notifyrelay/pkg/types"
)

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

type (
	// Identity 非持有的对象身份
	Identity = types.Identity

	// Payload 事件负载
	Payload = types.Payload

	// Event 投递给观察者的事件
	Event = types.Event

	// ConversionRule 转换规则
	ConversionRule = types.ConversionRule

	// Handler 观察者回调
	Handler = interfaces.Handler

	// Subscription 订阅句柄
	Subscription = interfaces.Subscription

	// MetricsSnapshot 累计计数快照
	MetricsSnapshot = metrics.Snapshot

	// CycleMode 处理周期驱动方式
	CycleMode = config.CycleMode
)

// AnySender 无发送者 / 任意发送者
const AnySender = types.AnySender

// 处理周期模式
const (
	CycleManual = config.CycleModeManual
	CycleLoop   = config.CycleModeLoop
	CycleTicker = config.CycleModeTicker
)

// NewIdentity 分配新的对象身份
func NewIdentity() Identity {
	return types.NewIdentity()
}
