package types

import (
	"errors"
	"fmt"
)

// ============================================================================
//                              契约错误
// ============================================================================
//
// 以下错误表示调用方的编程错误，只作为 panic 值使用（经 Violation 包装），
// 不会作为返回值出现在任何 API 上。

var (
	// ErrEmptyName 事件名为空
	ErrEmptyName = errors.New("empty notification name")

	// ErrNilHandler 观察者回调为空
	ErrNilHandler = errors.New("nil notification handler")

	// ErrNilCallback 周期回调为空
	ErrNilCallback = errors.New("nil end-of-cycle callback")

	// ErrNilBus 未注入事件总线
	ErrNilBus = errors.New("nil event bus")

	// ErrNilCycleHost 未注入周期宿主
	ErrNilCycleHost = errors.New("nil cycle host")
)

// Violation 触发契约违规 panic
//
// op 为出错的操作名，err 为上面的契约错误之一。
func Violation(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}

// MustName 名称为空时触发契约违规
func MustName(op, name string) {
	if name == "" {
		Violation(op, ErrEmptyName)
	}
}
