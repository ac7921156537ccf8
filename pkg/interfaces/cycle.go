// Package interfaces 定义 notifyrelay 公共接口
//
// 本文件定义 CycleHost 接口，即宿主环境的处理周期原语。
package interfaces

// CycleHost 定义处理周期宿主
//
// 处理周期是宿主批量处理工作的自然单位（事件循环的一次迭代、
// 一帧、或测试中一次手动 Flush）。
type CycleHost interface {
	// ScheduleEndOfCycle 注册周期结束回调
	//
	// fn 在当前周期结束、下一周期工作开始前被调用恰好一次。
	// fn 为 nil 会 panic。
	ScheduleEndOfCycle(fn func())
}
