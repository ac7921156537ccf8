package eventbus

import (
	"testing"

	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
	"github.com/dep2p/go-notifyrelay/pkg/types"
)

// ============================================================================
// 接口契约测试
// ============================================================================

// TestBus_ImplementsInterface 验证 Bus 实现接口
func TestBus_ImplementsInterface(t *testing.T) {
	var _ interfaces.EventBus = (*Bus)(nil)
}

// ============================================================================
// 基础功能测试
// ============================================================================

// recorder 记录收到的事件
type recorder struct {
	events []types.Event
}

func (r *recorder) handle(evt types.Event) {
	r.events = append(r.events, evt)
}

// TestBus_NewBus 测试创建事件总线
func TestBus_NewBus(t *testing.T) {
	bus := NewBus()

	if bus == nil {
		t.Fatal("NewBus() returned nil")
	}
	if bus.nodes == nil {
		t.Error("NewBus() nodes map is nil")
	}
}

// TestBus_PublishAndReceive 测试同步投递
func TestBus_PublishAndReceive(t *testing.T) {
	bus := NewBus()
	sender := types.NewIdentity()
	rec := &recorder{}

	sub := bus.Subscribe("didChange", sender, rec.handle)
	defer sub.Close()

	bus.Publish("didChange", sender, types.Payload{"value": 5})

	// 同步投递：Publish 返回时事件已送达
	if len(rec.events) != 1 {
		t.Fatalf("received %d events, want 1", len(rec.events))
	}
	evt := rec.events[0]
	if evt.Name != "didChange" || evt.Sender != sender {
		t.Errorf("event = %s@%s, want didChange@%s", evt.Name, evt.Sender, sender)
	}
	if evt.Payload["value"] != 5 {
		t.Errorf("payload value = %v, want 5", evt.Payload["value"])
	}
	if evt.ID == "" {
		t.Error("event ID is empty")
	}
	if evt.Time.IsZero() {
		t.Error("event time is zero")
	}
}

// TestBus_SenderFiltering 测试发送者过滤
func TestBus_SenderFiltering(t *testing.T) {
	bus := NewBus()
	a, b := types.NewIdentity(), types.NewIdentity()

	onlyA := &recorder{}
	anySender := &recorder{}
	bus.Subscribe("didChange", a, onlyA.handle)
	bus.Subscribe("didChange", types.AnySender, anySender.handle)

	bus.Publish("didChange", a, nil)
	bus.Publish("didChange", b, nil)
	bus.Publish("didChange", types.AnySender, nil)

	if len(onlyA.events) != 1 {
		t.Errorf("sender-bound observer received %d events, want 1", len(onlyA.events))
	}
	if len(anySender.events) != 3 {
		t.Errorf("wildcard observer received %d events, want 3", len(anySender.events))
	}
}

// TestBus_NameFiltering 测试事件名过滤与通配名
func TestBus_NameFiltering(t *testing.T) {
	bus := NewBus()
	sender := types.NewIdentity()

	foo := &recorder{}
	all := &recorder{}
	bus.Subscribe("foo", types.AnySender, foo.handle)
	bus.Subscribe("", sender, all.handle)

	bus.Publish("foo", sender, nil)
	bus.Publish("bar", sender, nil)
	bus.Publish("bar", types.NewIdentity(), nil)

	if len(foo.events) != 1 {
		t.Errorf("foo observer received %d events, want 1", len(foo.events))
	}
	if len(all.events) != 2 {
		t.Errorf("any-name observer received %d events, want 2", len(all.events))
	}
}

// TestBus_DeliveryOrder 测试按订阅顺序投递
func TestBus_DeliveryOrder(t *testing.T) {
	bus := NewBus()
	var order []int

	bus.Subscribe("foo", types.AnySender, func(types.Event) { order = append(order, 1) })
	bus.Subscribe("", types.AnySender, func(types.Event) { order = append(order, 2) })
	bus.Subscribe("foo", types.AnySender, func(types.Event) { order = append(order, 3) })
	bus.Subscribe("", types.AnySender, func(types.Event) { order = append(order, 4) })

	bus.Publish("foo", types.AnySender, nil)

	want := []int{1, 2, 3, 4}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

// TestBus_NoSubscribers 测试无订阅者时发布
func TestBus_NoSubscribers(t *testing.T) {
	bus := NewBus()
	bus.Publish("nobody", types.AnySender, nil)

	if got := bus.Stats().Published; got != 1 {
		t.Errorf("Published = %d, want 1", got)
	}
}

// TestBus_ContractViolations 测试契约违规 panic
func TestBus_ContractViolations(t *testing.T) {
	bus := NewBus()

	assertPanics(t, "empty name", func() { bus.Publish("", types.AnySender, nil) })
	assertPanics(t, "nil handler", func() { bus.Subscribe("foo", types.AnySender, nil) })
}

// TestBus_Stats 测试统计
func TestBus_Stats(t *testing.T) {
	bus := NewBus()
	s1 := bus.Subscribe("foo", types.AnySender, func(types.Event) {})
	bus.Subscribe("bar", types.AnySender, func(types.Event) {})
	bus.Subscribe("", types.AnySender, func(types.Event) {})

	st := bus.Stats()
	if st.Subscriptions != 3 || st.Names != 2 {
		t.Errorf("Stats = %+v, want 3 subscriptions over 2 names", st)
	}

	s1.Close()
	if st := bus.Stats(); st.Subscriptions != 2 || st.Names != 1 {
		t.Errorf("Stats after close = %+v, want 2 subscriptions over 1 name", st)
	}
}

// TestBus_Reporter 测试指标上报
func TestBus_Reporter(t *testing.T) {
	rep := &countingReporter{}
	bus := NewBus(WithReporter(rep))
	bus.Subscribe("foo", types.AnySender, func(types.Event) {})
	bus.Subscribe("foo", types.AnySender, func(types.Event) {})

	bus.Publish("foo", types.AnySender, nil)

	if rep.published != 1 || rep.observers != 2 {
		t.Errorf("reporter = %+v, want 1 publish with 2 observers", rep)
	}
}

type countingReporter struct {
	interfaces.NopReporter
	published int
	observers int
}

func (r *countingReporter) EventPublished(_ string, observers int) {
	r.published++
	r.observers += observers
}

func assertPanics(t *testing.T, what string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", what)
		}
	}()
	fn()
}
