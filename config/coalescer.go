package config

import "errors"

// CoalescerConfig 合并投递配置
type CoalescerConfig struct {
	// MaxPending 单周期待刷新键数软上限，0 表示不检查
	MaxPending int `json:"max_pending" yaml:"max_pending"`

	// LeakWarnInterval 告警最小间隔
	LeakWarnInterval Duration `json:"leak_warn_interval" yaml:"leak_warn_interval"`
}

// DefaultCoalescerConfig 返回默认合并配置
func DefaultCoalescerConfig() CoalescerConfig {
	return CoalescerConfig{
		MaxPending:       4096,                // 待刷新软上限：4096 个键
		LeakWarnInterval: Duration(oneMinute), // 告警间隔：1 分钟
	}
}

// Validate 验证合并配置
func (c CoalescerConfig) Validate() error {
	if c.MaxPending < 0 {
		return errors.New("coalescer max pending must be non-negative")
	}
	if c.LeakWarnInterval < 0 {
		return errors.New("coalescer leak warn interval must be non-negative")
	}
	return nil
}
