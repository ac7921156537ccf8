// Package interfaces 定义 notifyrelay 的公共接口
//
// 一个接口文件对应一个实现目录：
//   - eventbus.go  - 发布订阅原语（internal/core/eventbus）
//   - converter.go - 通知转换注册表（internal/core/converter）
//   - coalescer.go - 合并投递（internal/core/coalescer）
//   - cycle.go     - 处理周期宿主（internal/core/cycle）
//   - metrics.go   - 指标上报（internal/core/metrics）
//
// 依赖关系：
//
//	Converter ──┐
//	            ├──> EventBus
//	Coalescer ──┤
//	            └──> CycleHost
package interfaces
