package config

import (
	"errors"
	"fmt"
)

// ValidateAll 验证整个配置的有效性
//
// 这是 Config.Validate() 的别名，额外处理 nil。
func ValidateAll(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}

// ValidateAndFix 验证配置并尝试自动修复常见问题
//
// 可修复的问题：
//   - 负数上限 -> 0（不检查）
//   - ticker 模式间隔非正 -> 默认间隔
//   - 未知周期模式 -> manual
//   - 启用指标但没有命名空间 -> 默认命名空间
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return NewConfig(), nil
	}

	if c.Converter.MaxRules < 0 {
		c.Converter.MaxRules = 0
	}
	if c.Coalescer.MaxPending < 0 {
		c.Coalescer.MaxPending = 0
	}

	switch c.Cycle.Mode {
	case CycleModeManual, CycleModeLoop:
	case CycleModeTicker:
		if c.Cycle.Interval <= 0 {
			c.Cycle.Interval = DefaultCycleConfig().Interval
		}
	default:
		c.Cycle.Mode = CycleModeManual
	}
	if c.Cycle.QueueSize < 0 {
		c.Cycle.QueueSize = DefaultCycleConfig().QueueSize
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsConfig().Namespace
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed after fixes: %w", err)
	}
	return c, nil
}

// MustValidate 验证配置，如果失败则 panic
//
// 仅用于初始化阶段或测试代码。
func MustValidate(c *Config) {
	if err := ValidateAll(c); err != nil {
		panic(fmt.Sprintf("config validation failed: %v", err))
	}
}
