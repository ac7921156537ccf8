// Package log 提供 notifyrelay 统一日志接口
//
// 基于 Go 标准库 log/slog 封装，按组件（component）打标签，
// 并支持按组件覆盖日志级别：
//
//	var logger = log.Logger("core/converter")
//	logger.Debug("规则已注册", "rule", rule)
//
// 级别可通过 NOTIFYRELAY_LOG_LEVEL 环境变量或 SetComponentLevel 配置，
// 格式见 ParseLevelSpec。
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// 日志级别常量（从 slog 导出，方便使用）
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	levelsMu sync.RWMutex

	// defaultLevel 未单独配置的组件使用的级别
	defaultLevel = slog.LevelInfo

	// componentLevels 按组件覆盖的级别
	componentLevels = map[string]slog.Level{}
)

// SetDefault 设置默认 logger
//
// l 自己的 handler 级别过滤仍然生效。
func SetDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// Default 返回默认 logger
func Default() *slog.Logger {
	return slog.Default()
}

// New 创建文本格式的 logger
func New(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewJSON 创建 JSON 格式的 logger
func NewJSON(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// SetOutput 将默认 logger 输出重定向到 w
//
// handler 接受所有级别，实际过滤由组件级别完成。
func SetOutput(w io.Writer) {
	slog.SetDefault(New(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// SetOutputWithLevel 同时设置输出目标和默认级别
func SetOutputWithLevel(w io.Writer, level slog.Level) {
	SetOutput(w)
	SetLevel(level)
}

// SetLevel 设置默认级别
func SetLevel(level slog.Level) {
	levelsMu.Lock()
	defaultLevel = level
	levelsMu.Unlock()
}

// SetComponentLevel 为单个组件设置级别
func SetComponentLevel(component string, level slog.Level) {
	levelsMu.Lock()
	componentLevels[component] = level
	levelsMu.Unlock()
}

// ResetLevels 清除所有组件级别并恢复默认 Info 级别（主要用于测试）
func ResetLevels() {
	levelsMu.Lock()
	defaultLevel = slog.LevelInfo
	componentLevels = map[string]slog.Level{}
	levelsMu.Unlock()
}

// LevelFor 返回组件的生效级别
func LevelFor(component string) slog.Level {
	levelsMu.RLock()
	defer levelsMu.RUnlock()
	if level, ok := componentLevels[component]; ok {
		return level
	}
	return defaultLevel
}

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 每次日志调用时都从 slog.Default() 获取最新的 handler，
// 支持在运行时动态切换日志输出目标和级别。
type LazyLogger struct {
	component string
}

// Logger 返回带组件名的 LazyLogger
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}

// Component 返回组件名
func (l *LazyLogger) Component() string {
	return l.component
}

// Enabled 判断组件在该级别是否输出
func (l *LazyLogger) Enabled(level slog.Level) bool {
	return level >= LevelFor(l.component)
}

func (l *LazyLogger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	slog.Default().With("component", l.component).Log(ctx, level, msg, args...)
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) {
	l.log(context.Background(), slog.LevelDebug, msg, args...)
}

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) {
	l.log(context.Background(), slog.LevelInfo, msg, args...)
}

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) {
	l.log(context.Background(), slog.LevelWarn, msg, args...)
}

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) {
	l.log(context.Background(), slog.LevelError, msg, args...)
}

// DebugContext 带 context 的 Debug 日志
func (l *LazyLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelDebug, msg, args...)
}

// WarnContext 带 context 的 Warn 日志
func (l *LazyLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, msg, args...)
}

func init() {
	if spec := os.Getenv(EnvLevel); spec != "" {
		ApplyLevelSpec(spec)
	}
	SetOutput(os.Stderr)
}
