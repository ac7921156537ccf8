package coalescer

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
	"github.com/dep2p/go-notifyrelay/pkg/lib/log"
	"github.com/dep2p/go-notifyrelay/pkg/types"
)

var logger = log.Logger("core/coalescer")

// key 合并键
type key struct {
	name   string
	sender types.Identity
}

// entry 合并条目，保存最后一次请求的载荷
type entry struct {
	payload  types.Payload
	requests int
}

// Scheduler 合并投递调度器
type Scheduler struct {
	bus      interfaces.EventBus
	host     interfaces.CycleHost
	reporter interfaces.MetricsReporter

	mu      sync.Mutex
	entries map[key]*entry
	closed  bool

	maxPending int
	warn       *rate.Sometimes
}

var _ interfaces.Coalescer = (*Scheduler)(nil)

// NewScheduler 创建合并调度器
//
// bus 或 host 为空会 panic。
func NewScheduler(bus interfaces.EventBus, host interfaces.CycleHost, opts ...Option) *Scheduler {
	if bus == nil {
		types.Violation("coalescer.NewScheduler", types.ErrNilBus)
	}
	if host == nil {
		types.Violation("coalescer.NewScheduler", types.ErrNilCycleHost)
	}

	s := &Scheduler{
		bus:      bus,
		host:     host,
		reporter: interfaces.NopReporter{},
		entries:  make(map[key]*entry),
		warn:     &rate.Sometimes{Interval: time.Minute},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestPost 请求在当前周期结束时发布事件
func (s *Scheduler) RequestPost(name string, sender types.Identity, payload types.Payload) error {
	types.MustName("RequestPost", name)

	// 刷新时发布请求那一刻的载荷，调用方之后修改原 map 不受影响
	payload = payload.Clone()
	k := key{name: name, sender: sender}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSchedulerClosed
	}
	if e, ok := s.entries[k]; ok {
		e.payload = payload
		e.requests++
		s.mu.Unlock()
		s.reporter.PostRequested(name, true)
		return nil
	}

	e := &entry{payload: payload, requests: 1}
	s.entries[k] = e
	pending := len(s.entries)
	s.mu.Unlock()

	if s.maxPending > 0 && pending > s.maxPending {
		s.warn.Do(func() {
			logger.Warn("待刷新的合并键过多", "pending", pending, "maxPending", s.maxPending)
		})
	}

	s.reporter.PostRequested(name, false)
	s.host.ScheduleEndOfCycle(func() { s.flush(k, e) })
	return nil
}

// Pending 返回尚未刷新的键数量
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close 关闭调度器
//
// 未刷新的条目被丢弃，已注册的周期回调变为空操作。
func (s *Scheduler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if n := len(s.entries); n > 0 {
		logger.Debug("合并调度器关闭，丢弃未刷新条目", "pending", n)
	}
	s.entries = make(map[key]*entry)
	return nil
}

// flush 周期结束回调
//
// 条目已被关闭丢弃时不发布。
func (s *Scheduler) flush(k key, e *entry) {
	s.mu.Lock()
	if s.entries[k] != e {
		s.mu.Unlock()
		return
	}
	delete(s.entries, k)
	payload, requests := e.payload, e.requests
	s.mu.Unlock()

	logger.Debug("合并刷新", "name", k.name, "sender", k.sender, "requests", requests)
	s.bus.Publish(k.name, k.sender, payload)
	s.reporter.PostFlushed(k.name)
}
