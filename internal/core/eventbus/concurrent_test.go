package eventbus

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dep2p/go-notifyrelay/pkg/types"
)

// ============================================================================
// 并发测试
// ============================================================================

// TestConcurrent_MultiplePublishers 测试多发布者并发
func TestConcurrent_MultiplePublishers(t *testing.T) {
	bus := NewBus()
	var received atomic.Int64
	bus.Subscribe("foo", types.AnySender, func(types.Event) { received.Add(1) })

	numPublishers := 10
	eventsPerPublisher := 100

	var wg sync.WaitGroup
	wg.Add(numPublishers)
	for i := 0; i < numPublishers; i++ {
		go func() {
			defer wg.Done()
			sender := types.NewIdentity()
			for j := 0; j < eventsPerPublisher; j++ {
				bus.Publish("foo", sender, nil)
			}
		}()
	}
	wg.Wait()

	if got := received.Load(); got != int64(numPublishers*eventsPerPublisher) {
		t.Errorf("received %d events, want %d", got, numPublishers*eventsPerPublisher)
	}
}

// TestConcurrent_SubscribeWhilePublishing 测试发布过程中并发订阅/取消
func TestConcurrent_SubscribeWhilePublishing(t *testing.T) {
	bus := NewBus()
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				bus.Publish("foo", types.AnySender, nil)
			}
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			sub := bus.Subscribe("foo", types.AnySender, func(types.Event) {})
			sub.Close()
		}
		close(done)
	}()

	wg.Wait()

	if st := bus.Stats(); st.Subscriptions != 0 {
		t.Errorf("Subscriptions = %d, want 0", st.Subscriptions)
	}
}
