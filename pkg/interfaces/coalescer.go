// Package interfaces 定义 notifyrelay 公共接口
//
// 本文件定义 Coalescer 接口，提供按处理周期合并的通知投递。
package interfaces

import "github.com/dep2p/go-notifyrelay/pkg/types"

// Coalescer 定义合并投递接口
//
// 同一处理周期内针对同一 (name, sender) 的多次请求只投递一次，
// 载荷取周期结束前最后一次请求的载荷。这是去重层而不是限流器：
// 每个被请求的键每个周期恰好投递一次。
type Coalescer interface {
	// RequestPost 请求在周期结束时发布事件
	//
	// name 为空会 panic。合并器关闭后返回错误。
	RequestPost(name string, sender types.Identity, payload types.Payload) error

	// Pending 返回当前周期尚未刷新的键数量
	Pending() int
}
