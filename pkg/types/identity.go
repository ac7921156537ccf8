package types

import (
	"strconv"
	"sync/atomic"
)

// ============================================================================
//                              Identity - 非持有身份
// ============================================================================

// Identity 通知发送者的非持有身份标识
//
// Identity 仅用于相等比较和查找，不会延长任何对象的生命周期。
// 持有 Identity 的组件（EventBus、ConversionRegistry、CoalescingScheduler）
// 都不会感知对象销毁，调用方必须在对象失效前主动移除相关规则或订阅。
//
// 零值 AnySender 有两种含义：
//   - 发布时：事件没有发送者
//   - 匹配时：匹配任意发送者
type Identity uint64

// AnySender 无发送者 / 任意发送者
const AnySender Identity = 0

// identitySeq 身份分配序号
var identitySeq atomic.Uint64

// NewIdentity 分配一个进程内唯一的身份标识
//
// 返回值永远不会等于 AnySender。
func NewIdentity() Identity {
	return Identity(identitySeq.Add(1))
}

// NewIdentities 批量分配 n 个身份标识
func NewIdentities(n int) []Identity {
	ids := make([]Identity, n)
	for i := range ids {
		ids[i] = NewIdentity()
	}
	return ids
}

// IsAny 是否为 AnySender
func (id Identity) IsAny() bool {
	return id == AnySender
}

// String 返回可读表示
func (id Identity) String() string {
	if id == AnySender {
		return "*"
	}
	return "obj-" + strconv.FormatUint(uint64(id), 10)
}

// Identifiable 拥有通知身份的对象
//
// 组合对象通常在构造时调用 NewIdentity 并通过该接口暴露。
type Identifiable interface {
	NotificationIdentity() Identity
}

// IdentitiesOf 提取一组对象的身份标识
func IdentitiesOf[T Identifiable](objs []T) []Identity {
	ids := make([]Identity, 0, len(objs))
	for _, o := range objs {
		ids = append(ids, o.NotificationIdentity())
	}
	return ids
}
