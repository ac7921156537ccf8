// Package introspect 提供本地自省 HTTP 服务
//
// 该服务运行在本地端口，以 JSON 形式暴露转换注册表、合并调度器和事件总线的状态，
// 用于调试和监控。默认绑定到 127.0.0.1，不暴露到网络。
//
// # 端点
//
//	GET /debug/introspect         - 完整诊断报告 (JSON)
//	GET /debug/introspect/rules   - 转换规则列表（按注册顺序）
//	GET /debug/introspect/runtime - 运行时信息
//	GET /debug/pprof/*            - Go pprof 端点
//	GET /metrics                  - Prometheus 指标（启用指标时）
//	GET /health                   - 健康检查
//
// # 使用示例
//
//	server := introspect.New(introspect.Config{
//	    Addr:      "127.0.0.1:6060",
//	    Converter: registry,
//	    Coalescer: scheduler,
//	})
//	server.Start(ctx)
//	defer server.Stop()
//
// # 安全
//
// 默认只监听本地地址。如果需要远程访问，请确保配置适当的访问控制。
//
// 通过 config.Diagnostics.EnableIntrospect 配置启用。
package introspect
