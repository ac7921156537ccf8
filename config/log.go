package config

import (
	"fmt"
	"log/slog"

	"github.com/dep2p/go-notifyrelay/pkg/lib/log"
)

// LogConfig 日志配置
type LogConfig struct {
	// Level 级别配置字符串，格式同 NOTIFYRELAY_LOG_LEVEL
	//
	// 示例: "core/converter=debug,info"。为空时保持现有级别。
	Level string `json:"level" yaml:"level"`
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{}
}

// Validate 验证日志配置
//
// 无法识别的单个条目会被忽略，整个字符串没有任何可识别条目时报错。
func (c LogConfig) Validate() error {
	if c.Level == "" {
		return nil
	}
	def, components := log.ParseLevelSpec(c.Level)
	if def == slog.LevelInfo && len(components) == 0 {
		if _, err := log.ParseLevel(c.Level); err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
	}
	return nil
}
