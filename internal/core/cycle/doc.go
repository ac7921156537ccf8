// Package cycle 实现处理周期宿主
//
// 处理周期是合并投递的刷新边界。本包提供三种宿主，均实现 interfaces.CycleHost：
//   - Manual: 调用 Flush 结束一个周期，用于测试和自行驱动周期的调用方
//   - Loop:   专用事件循环 goroutine，Post 投递工作，每轮迭代结束时运行周期回调
//   - Ticker: 按固定间隔结束周期（类似帧），时钟可注入
//
// # 周期语义
//
// ScheduleEndOfCycle 注册的回调在当前周期结束时运行恰好一次；
// 回调执行期间新注册的回调属于下一个周期。
//
// # 跨 goroutine 交接
//
// 任意 goroutine 都可以调用 ScheduleEndOfCycle，回调总是在驱动周期的
// goroutine 上执行（Manual 为调用 Flush 的 goroutine，Loop / Ticker 为各自的循环）。
package cycle
