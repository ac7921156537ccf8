// Package coalescer 实现按处理周期合并的通知投递
//
// 同一周期内对同一 (name, sender) 的多次 RequestPost 只在周期结束时发布一次，
// 载荷取最后一次请求的载荷：
//
//	s.RequestPost("didChange", obj, types.Payload{"v": 1})
//	s.RequestPost("didChange", obj, types.Payload{"v": 2})
//	host.Flush() // 发布一次 didChange，载荷 {"v": 2}
//
// 每个键的第一次请求通过 interfaces.CycleHost 注册一个周期结束回调，
// 之后的请求只覆盖载荷。不同键各自刷新，单 goroutine 周期内按请求顺序。
//
// 合并表由一把互斥锁保护，锁只在查找、创建和覆盖条目时持有。
// 发布发生在驱动周期的 goroutine 上，与调用 RequestPost 的 goroutine 无关。
package coalescer
