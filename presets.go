package notifyrelay

// ════════════════════════════════════════════════════════════════════════════
//                              预设名称
// ════════════════════════════════════════════════════════════════════════════

const (
	// PresetManual 手动周期，调用 Center.Flush 结束周期
	PresetManual = "manual"

	// PresetEventLoop 专用事件循环 goroutine
	PresetEventLoop = "eventloop"

	// PresetFrame 16ms 固定帧周期
	PresetFrame = "frame"
)
