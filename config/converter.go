package config

import "errors"

// ConverterConfig 转换注册表配置
type ConverterConfig struct {
	// MaxRules 规则数软上限，0 表示不检查
	//
	// 超过上限只输出节流的泄漏告警，不会拒绝注册。
	// 通常意味着某个来源对象销毁前没有调用 RemoveRulesFromSender。
	MaxRules int `json:"max_rules" yaml:"max_rules"`

	// LeakWarnInterval 泄漏告警最小间隔
	LeakWarnInterval Duration `json:"leak_warn_interval" yaml:"leak_warn_interval"`
}

// DefaultConverterConfig 返回默认转换配置
func DefaultConverterConfig() ConverterConfig {
	return ConverterConfig{
		MaxRules:         10000,               // 规则软上限：1 万条
		LeakWarnInterval: Duration(oneMinute), // 告警间隔：1 分钟
	}
}

// Validate 验证转换配置
func (c ConverterConfig) Validate() error {
	if c.MaxRules < 0 {
		return errors.New("converter max rules must be non-negative")
	}
	if c.LeakWarnInterval < 0 {
		return errors.New("converter leak warn interval must be non-negative")
	}
	return nil
}
