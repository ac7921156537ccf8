// Package mocks 提供统一的测试 Mock 实现
//
// # Mock 列表
//
//   - MockEventBus: 模拟 interfaces.EventBus，记录发布和订阅，默认同步投递
//   - MockCycleHost: 模拟 interfaces.CycleHost，RunCycle 结束一个周期
//
// # 设计原则
//
// 1. 函数式注入: 每个 Mock 都支持通过 XxxFunc 字段注入自定义行为
// 2. 调用记录: 关键 Mock 记录调用历史，便于验证测试行为
//
// # 使用示例
//
//	import "github.com/dep2p/go-notifyrelay/tests/mocks"
//
//	func TestRelay(t *testing.T) {
//	    bus := mocks.NewMockEventBus()
//	    reg := converter.NewRegistry(bus)
//	    reg.AddRule("inner", inner, "outer", outer)
//
//	    bus.Publish("inner", inner, nil)
//	    if len(bus.Published("outer")) != 1 {
//	        t.Error("expected one outer publish")
//	    }
//	}
//
// 自定义行为:
//
//	bus := &mocks.MockEventBus{
//	    PublishFunc: func(name string, sender types.Identity, payload types.Payload) {
//	        // 只记录，不投递
//	    },
//	}
package mocks
