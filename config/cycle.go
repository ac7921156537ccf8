package config

import (
	"errors"
	"fmt"
	"time"
)

// CycleMode 处理周期驱动方式
type CycleMode string

const (
	// CycleModeManual 调用方手动 Flush 结束周期
	CycleModeManual CycleMode = "manual"

	// CycleModeLoop 专用事件循环 goroutine，每轮迭代为一个周期
	CycleModeLoop CycleMode = "loop"

	// CycleModeTicker 按固定间隔结束周期（类似帧）
	CycleModeTicker CycleMode = "ticker"
)

const oneMinute = time.Minute

// CycleConfig 处理周期配置
type CycleConfig struct {
	// Mode 驱动方式
	Mode CycleMode `json:"mode" yaml:"mode"`

	// Interval ticker 模式下的周期间隔
	Interval Duration `json:"interval" yaml:"interval"`

	// QueueSize loop 模式下的工作队列容量
	QueueSize int `json:"queue_size" yaml:"queue_size"`
}

// DefaultCycleConfig 返回默认周期配置
func DefaultCycleConfig() CycleConfig {
	return CycleConfig{
		Mode:      CycleModeManual,
		Interval:  Duration(16 * time.Millisecond), // 约 60 帧/秒
		QueueSize: 256,
	}
}

// Validate 验证周期配置
func (c CycleConfig) Validate() error {
	switch c.Mode {
	case CycleModeManual, CycleModeLoop:
	case CycleModeTicker:
		if c.Interval <= 0 {
			return errors.New("ticker cycle interval must be positive")
		}
	default:
		return fmt.Errorf("unknown cycle mode: %q", c.Mode)
	}
	if c.QueueSize < 0 {
		return errors.New("cycle queue size must be non-negative")
	}
	return nil
}
