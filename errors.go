package notifyrelay

import "errors"

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 生命周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNotStarted 未启动
	ErrNotStarted = errors.New("center not started")

	// ErrAlreadyStarted 已启动
	ErrAlreadyStarted = errors.New("center already started")

	// ErrClosed 已关闭
	ErrClosed = errors.New("center closed")

	// ────────────────────────────────────────────────────────────────────────
	// 周期错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrNotManualCycle 当前不是手动周期模式
	ErrNotManualCycle = errors.New("cycle mode is not manual")

	// ErrNotLoopCycle 当前不是事件循环模式
	ErrNotLoopCycle = errors.New("cycle mode is not loop")
)
