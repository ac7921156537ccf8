package cycle

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T, size int) *Loop {
	t.Helper()
	l := NewLoop(size)
	require.NoError(t, l.Start())
	t.Cleanup(func() { _ = l.Stop(context.Background()) })
	return l
}

func TestLoop_WorkThenEndOfCycle(t *testing.T) {
	l := startLoop(t, 0)

	var mu sync.Mutex
	var order []string
	record := func(s string) {
		mu.Lock()
		order = append(order, s)
		mu.Unlock()
	}

	done := make(chan struct{})
	require.NoError(t, l.Post(func() {
		l.ScheduleEndOfCycle(func() {
			record("eoc")
			close(done)
		})
		record("work-1")
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("周期回调未执行")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"work-1", "eoc"}, order)
}

func TestLoop_ScheduleFromOtherGoroutine(t *testing.T) {
	l := startLoop(t, 0)

	var n atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.ScheduleEndOfCycle(func() { n.Add(1) })
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool { return n.Load() == 10 }, time.Second, time.Millisecond)
}

func TestLoop_ScheduleAfterStopDropped(t *testing.T) {
	l := NewLoop(0)
	require.NoError(t, l.Stop(context.Background()))

	ran := false
	l.ScheduleEndOfCycle(func() { ran = true })
	l.ScheduleEndOfCycle(func() { ran = true })

	assert.False(t, ran)
	assert.Equal(t, uint64(2), l.Dropped())
}

func TestLoop_QueueFull(t *testing.T) {
	l := NewLoop(2)

	require.NoError(t, l.Post(func() {}))
	require.NoError(t, l.Post(func() {}))
	assert.ErrorIs(t, l.Post(func() {}), ErrQueueFull)
}

func TestLoop_StopDrainsAndCloses(t *testing.T) {
	l := NewLoop(0)

	ran := false
	require.NoError(t, l.Post(func() {}))
	l.ScheduleEndOfCycle(func() { ran = true })

	require.NoError(t, l.Stop(context.Background()))
	assert.True(t, ran)
	assert.ErrorIs(t, l.Post(func() {}), ErrLoopClosed)
	assert.ErrorIs(t, l.Start(), ErrLoopClosed)

	// 重复 Stop 无副作用
	require.NoError(t, l.Stop(context.Background()))
}

func TestLoop_StartTwice(t *testing.T) {
	l := startLoop(t, 0)
	assert.ErrorIs(t, l.Start(), ErrAlreadyStarted)
}

func TestLoop_RunUntilCancel(t *testing.T) {
	l := NewLoop(0)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	var ran atomic.Bool
	require.NoError(t, l.Post(func() { ran.Store(true) }))
	require.Eventually(t, ran.Load, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-errCh, context.Canceled)
	assert.GreaterOrEqual(t, l.Cycles(), uint64(1))
}
