package coalescer

import "errors"

// ErrSchedulerClosed 合并器已关闭
var ErrSchedulerClosed = errors.New("coalescing scheduler closed")
