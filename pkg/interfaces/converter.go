// Package interfaces 定义 notifyrelay 公共接口
//
// 本文件定义 Converter 接口，提供通知转换规则管理。
package interfaces

import "github.com/dep2p/go-notifyrelay/pkg/types"

// Converter 定义通知转换注册表接口
//
// 组合对象通过 Converter 把内部成员发出的通知转换为自己的通知，
// 外部观察者因此不需要知道内部成员的存在。
//
// 注册表不持有任何发送者：来源对象必须在失效前调用
// RemoveRulesFromSender，注册表没有其他兜底机制。
type Converter interface {
	// AddRule 添加转换规则
	//
	// sourceSender 为 types.AnySender 时匹配任意发送者；
	// targetSender 为 types.AnySender 时转换后的事件没有发送者。
	// 名称为空会 panic，重复注册被忽略。
	AddRule(sourceName string, sourceSender types.Identity, targetName string, targetSender types.Identity)

	// AddRuleForSenders 为集合中每个发送者各添加一条规则
	AddRuleForSenders(sourceName string, senders []types.Identity, targetName string, targetSender types.Identity)

	// RemoveRule 移除单条规则，返回规则是否存在
	RemoveRule(sourceName string, sourceSender types.Identity, targetName string, targetSender types.Identity) bool

	// RemoveRulesFromSender 移除来源发送者为 sourceSender 的所有规则
	RemoveRulesFromSender(sourceSender types.Identity)

	// RemoveRulesFromSenders 批量移除
	RemoveRulesFromSenders(senders []types.Identity)

	// HandleSourceEvent 处理来源事件，按注册顺序发出所有匹配规则的转换事件
	HandleSourceEvent(evt types.Event)

	// Rules 返回按注册顺序排列的规则快照
	Rules() []types.ConversionRule

	// Len 返回当前规则数
	Len() int
}
