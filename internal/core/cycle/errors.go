package cycle

import "errors"

var (
	// ErrLoopClosed 事件循环已停止
	ErrLoopClosed = errors.New("cycle loop closed")

	// ErrQueueFull 工作队列已满
	ErrQueueFull = errors.New("cycle loop queue full")

	// ErrAlreadyStarted 已启动
	ErrAlreadyStarted = errors.New("cycle host already started")
)
