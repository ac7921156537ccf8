package eventbus

import (
	"testing"

	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
	"github.com/dep2p/go-notifyrelay/pkg/types"
)

// TestSubscription_ImplementsInterface 验证 Subscription 实现接口
func TestSubscription_ImplementsInterface(t *testing.T) {
	var _ interfaces.Subscription = (*Subscription)(nil)
}

// TestSubscription_Close 测试取消订阅
func TestSubscription_Close(t *testing.T) {
	bus := NewBus()
	rec := &recorder{}
	sub := bus.Subscribe("foo", types.AnySender, rec.handle)

	if err := sub.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	bus.Publish("foo", types.AnySender, nil)
	if len(rec.events) != 0 {
		t.Errorf("closed subscription received %d events", len(rec.events))
	}
}

// TestSubscription_CloseTwice 测试重复关闭
func TestSubscription_CloseTwice(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe("foo", types.AnySender, func(types.Event) {})

	if err := sub.Close(); err != nil {
		t.Errorf("first Close() failed: %v", err)
	}
	if err := sub.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
	bus.Unsubscribe(sub)
	bus.Unsubscribe(nil)
}

// TestSubscription_Accessors 测试访问器
func TestSubscription_Accessors(t *testing.T) {
	bus := NewBus()
	sender := types.NewIdentity()
	sub := bus.Subscribe("foo", sender, func(types.Event) {}).(*Subscription)

	if sub.ID() == "" {
		t.Error("ID() is empty")
	}
	if sub.Name() != "foo" || sub.Sender() != sender {
		t.Errorf("subscription = %s@%s", sub.Name(), sub.Sender())
	}
	bus.Unsubscribe(sub)
	if !sub.Closed() {
		t.Error("Unsubscribe did not close subscription")
	}
}

// TestSubscription_CloseDuringDelivery 测试投递过程中取消后续订阅
func TestSubscription_CloseDuringDelivery(t *testing.T) {
	bus := NewBus()
	second := &recorder{}

	var later interfaces.Subscription
	bus.Subscribe("foo", types.AnySender, func(types.Event) {
		later.Close()
	})
	later = bus.Subscribe("foo", types.AnySender, second.handle)

	bus.Publish("foo", types.AnySender, nil)
	if len(second.events) != 0 {
		t.Errorf("subscription closed mid fan-out received %d events", len(second.events))
	}
}

// TestSubscription_ReentrantPublish 测试观察者重入发布
func TestSubscription_ReentrantPublish(t *testing.T) {
	bus := NewBus()
	rec := &recorder{}

	bus.Subscribe("outer", types.AnySender, func(evt types.Event) {
		bus.Publish("inner", types.AnySender, evt.Payload)
	})
	bus.Subscribe("inner", types.AnySender, rec.handle)

	bus.Publish("outer", types.AnySender, types.Payload{"n": 1})
	if len(rec.events) != 1 || rec.events[0].Payload["n"] != 1 {
		t.Errorf("reentrant publish delivered %v", rec.events)
	}
}

// TestSubscription_SubscribeDuringDelivery 测试投递中新增订阅不影响本次投递
func TestSubscription_SubscribeDuringDelivery(t *testing.T) {
	bus := NewBus()
	late := &recorder{}

	bus.Subscribe("foo", types.AnySender, func(types.Event) {
		bus.Subscribe("foo", types.AnySender, late.handle)
	})

	bus.Publish("foo", types.AnySender, nil)
	if len(late.events) != 0 {
		t.Errorf("late subscriber received %d events from in-flight publish", len(late.events))
	}

	bus.Publish("foo", types.AnySender, nil)
	if len(late.events) != 1 {
		t.Errorf("late subscriber received %d events, want 1", len(late.events))
	}
}
