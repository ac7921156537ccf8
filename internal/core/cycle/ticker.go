package cycle

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
)

// Ticker 固定间隔周期宿主
//
// 每个间隔结束一个周期。时钟可注入，测试中使用 clock.NewMock() 推进时间。
type Ticker struct {
	manual   *Manual
	clock    clock.Clock
	interval time.Duration

	mu     sync.Mutex
	ticker *clock.Ticker
	stop   chan struct{}
	done   chan struct{}
}

var _ interfaces.CycleHost = (*Ticker)(nil)

// NewTicker 创建固定间隔周期宿主
//
// clk 为 nil 时使用真实时钟。
func NewTicker(clk clock.Clock, interval time.Duration) *Ticker {
	if clk == nil {
		clk = clock.New()
	}
	return &Ticker{
		manual:   NewManual(),
		clock:    clk,
		interval: interval,
	}
}

// ScheduleEndOfCycle 注册周期结束回调
func (t *Ticker) ScheduleEndOfCycle(fn func()) {
	t.manual.ScheduleEndOfCycle(fn)
}

// Start 启动计时
func (t *Ticker) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ticker != nil {
		return ErrAlreadyStarted
	}

	// ticker 在返回前创建，保证 Start 之后推进的时间一定会触发
	t.ticker = t.clock.Ticker(t.interval)
	t.stop = make(chan struct{})
	t.done = make(chan struct{})

	go t.run(t.ticker, t.stop, t.done)
	logger.Debug("周期计时器已启动", "interval", t.interval)
	return nil
}

// Stop 停止计时并刷新剩余回调
func (t *Ticker) Stop() {
	t.mu.Lock()
	ticker, stop, done := t.ticker, t.stop, t.done
	t.ticker = nil
	t.mu.Unlock()

	if ticker == nil {
		return
	}
	ticker.Stop()
	close(stop)
	<-done

	t.manual.Flush()
}

// Pending 返回等待中的回调数
func (t *Ticker) Pending() int {
	return t.manual.Pending()
}

// Cycles 返回已完成的周期数
func (t *Ticker) Cycles() uint64 {
	return t.manual.Cycles()
}

func (t *Ticker) run(ticker *clock.Ticker, stop, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.manual.Flush()
		}
	}
}
