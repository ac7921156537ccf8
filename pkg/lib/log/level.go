package log

import (
	"fmt"
	"log/slog"
	"strings"
)

// EnvLevel 日志级别环境变量
//
// 格式: 组件=级别,组件=级别,默认级别
// 示例: core/converter=debug,core/eventbus=warn,info
const EnvLevel = "NOTIFYRELAY_LOG_LEVEL"

// ParseLevel 解析日志级别名称
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// ParseLevelSpec 解析级别配置字符串
//
// 返回默认级别（未出现时为 Info）和各组件级别。无法识别的条目被跳过。
func ParseLevelSpec(spec string) (slog.Level, map[string]slog.Level) {
	def := slog.LevelInfo
	components := make(map[string]slog.Level)

	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		component, levelName, ok := strings.Cut(part, "=")
		if !ok {
			if level, err := ParseLevel(part); err == nil {
				def = level
			}
			continue
		}

		if level, err := ParseLevel(levelName); err == nil {
			components[strings.TrimSpace(component)] = level
		}
	}
	return def, components
}

// ApplyLevelSpec 解析并应用级别配置字符串
func ApplyLevelSpec(spec string) {
	def, components := ParseLevelSpec(spec)
	SetLevel(def)
	for component, level := range components {
		SetComponentLevel(component, level)
	}
}
