// Package types 定义 notifyrelay 的公共数据结构
//
// 这是整个系统的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据。
//
// # 文件组织
//
//   - identity.go - Identity 非持有身份、AnySender、NewIdentity
//   - event.go    - Event 通知事件、Payload 载荷
//   - rule.go     - ConversionRule 转换规则
//   - errors.go   - 契约错误（仅作为 panic 值）
//
// # 非持有身份
//
// Go 没有可用的弱引用钩子，因此发送者用不透明的数字句柄表示。
// 句柄只参与相等比较，对象销毁前必须由其所有者移除相关规则。
package types
