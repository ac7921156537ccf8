// Package converter 实现通知转换注册表
//
// 组合对象用 Registry 把内部成员发出的通知转换为自己的通知。
// 每条规则由四元组 (来源事件名, 来源发送者, 目标事件名, 目标发送者) 唯一确定：
//
//	reg.AddRule("innerDidChange", inner, "outerDidChange", outer)
//
// 之后 inner 发布 innerDidChange 时，注册表以 outer 作为发送者、
// 原负载不变地发布 outerDidChange。
//
// # 匹配
//
// 规则匹配事件当且仅当事件名等于来源事件名，并且来源发送者为
// types.AnySender 或等于事件发送者。多条规则匹配时全部触发，顺序为注册顺序。
//
// # 索引
//
// 绑定发送者的规则存放在按发送者分桶的映射中，通配规则存放在单独的列表中，
// 每条规则只出现在其中一处。查找为一次桶查询加一次通配列表扫描。
//
// # 身份与生命周期
//
// 注册表不持有发送者，只把 types.Identity 作为键。来源对象失效前必须调用
// RemoveRulesFromSender，注册表没有其他兜底机制。规则数超过 MaxRules 时只输出
// 节流的泄漏告警，行为不变。
//
// # 总线订阅
//
// 每个不同的来源事件名对应一个 (name, AnySender) 订阅，按规则数引用计数，
// 该名称的最后一条规则移除时订阅随之关闭。
package converter
