package types

import "fmt"

// ============================================================================
//                              ConversionRule - 转换规则
// ============================================================================

// ConversionRule 通知转换规则
//
// 规则由四元组唯一确定，同一四元组重复注册是幂等的。
// SourceSender / TargetSender 均为非持有身份：
//   - SourceSender: 为 AnySender 时匹配任意发送者
//   - TargetSender: 为 AnySender 时转换后的事件没有发送者
type ConversionRule struct {
	// SourceName 监听的事件名
	SourceName string

	// SourceSender 监听的发送者
	SourceSender Identity

	// TargetName 转换后发出的事件名
	TargetName string

	// TargetSender 转换后声明的发送者
	TargetSender Identity
}

// HasSourceSender 是否绑定了具体的来源发送者
func (r ConversionRule) HasSourceSender() bool {
	return r.SourceSender != AnySender
}

// Matches 判断规则是否匹配事件
func (r ConversionRule) Matches(name string, sender Identity) bool {
	if r.SourceName != name {
		return false
	}
	return r.SourceSender == AnySender || r.SourceSender == sender
}

// Validate 校验规则
func (r ConversionRule) Validate() error {
	if r.SourceName == "" {
		return fmt.Errorf("%w: source name", ErrEmptyName)
	}
	if r.TargetName == "" {
		return fmt.Errorf("%w: target name", ErrEmptyName)
	}
	return nil
}

// String 返回可读表示
func (r ConversionRule) String() string {
	return fmt.Sprintf("%s@%s -> %s@%s", r.SourceName, r.SourceSender, r.TargetName, r.TargetSender)
}
