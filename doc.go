// Package notifyrelay 提供进程内通知转换与合并投递
//
// 组合对象经常需要把内部成员发出的通知"转述"为自己的通知，
// 或者把同一处理周期内的多次状态变化合并为一次通知。本包提供两个组件：
//
//   - Converter: 通知转换注册表，按规则把来源通知重新发布为目标通知
//   - Coalescer: 合并投递调度器，同一周期内同一 (name, sender) 只投递一次
//
// 两者都建立在同步事件总线和处理周期宿主之上，由 Center 统一组装。
//
// # 快速开始
//
//	center, err := notifyrelay.New(notifyrelay.WithCycleMode(notifyrelay.CycleManual))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := center.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer center.Close()
//
//	inner, outer := notifyrelay.NewIdentity(), notifyrelay.NewIdentity()
//	center.Converter().AddRule("innerDidChange", inner, "outerDidChange", outer)
//
//	center.Subscribe("outerDidChange", outer, func(evt notifyrelay.Event) {
//	    fmt.Println(evt.Payload["value"])
//	})
//	center.Publish("innerDidChange", inner, notifyrelay.Payload{"value": 5})
//
// # 身份
//
// 发送者以 Identity 表示，它是不持有对象的数值令牌。注册表只在
// 匹配和转发时使用它；来源对象失效前必须调用 RemoveRulesFromSender。
// AnySender 在发布时表示没有发送者，在订阅和规则中表示任意发送者。
//
// # 处理周期
//
// 合并投递在处理周期结束时刷新。周期由 CycleMode 选择：
//
//   - CycleManual: 调用 Center.Flush 结束周期，适合测试和自行驱动周期的程序
//   - CycleLoop:   专用事件循环 goroutine，每轮迭代为一个周期
//   - CycleTicker: 固定间隔结束周期，类似帧
//
// # 组合根
//
// Center 内部用 Fx 组装各模块，不存在全局单例。每个 Center 拥有独立的
// 总线、注册表和调度器，测试可以各自创建互不影响的实例。
//
// # 文件组织
//
//	notifyrelay/
//	├── notifyrelay.go   # 版本信息
//	├── center.go        # Center 结构、New()、组件访问
//	├── lifecycle.go     # Start、Stop、Close
//	├── options.go       # Option 函数
//	├── presets.go       # 预设
//	├── types.go         # 公共类型别名
//	├── errors.go        # 公共错误
//	└── fx.go            # Fx 组装
package notifyrelay
