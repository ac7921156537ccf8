package converter

import (
	"sync"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/time/rate"

	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
	"github.com/dep2p/go-notifyrelay/pkg/lib/log"
	"github.com/dep2p/go-notifyrelay/pkg/types"
)

var logger = log.Logger("core/converter")

// ============================================================================
// Registry 实现
// ============================================================================

// Registry 通知转换注册表
type Registry struct {
	bus      interfaces.EventBus
	reporter interfaces.MetricsReporter

	mu     sync.Mutex
	index  *ruleIndex
	subs   map[string]*sourceSub
	closed bool

	maxRules int
	leakWarn *rate.Sometimes
}

// sourceSub 来源事件名的总线订阅
type sourceSub struct {
	sub  interfaces.Subscription
	refs int
}

var _ interfaces.Converter = (*Registry)(nil)

// NewRegistry 创建转换注册表
//
// bus 为空会 panic。
func NewRegistry(bus interfaces.EventBus, opts ...Option) *Registry {
	if bus == nil {
		types.Violation("converter.NewRegistry", types.ErrNilBus)
	}

	r := &Registry{
		bus:      bus,
		reporter: interfaces.NopReporter{},
		index:    newRuleIndex(),
		subs:     make(map[string]*sourceSub),
		leakWarn: &rate.Sometimes{Interval: time.Minute},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ============================================================================
// 规则管理
// ============================================================================

// AddRule 添加转换规则
func (r *Registry) AddRule(sourceName string, sourceSender types.Identity, targetName string, targetSender types.Identity) {
	types.MustName("AddRule", sourceName)
	types.MustName("AddRule", targetName)

	r.add(types.ConversionRule{
		SourceName:   sourceName,
		SourceSender: sourceSender,
		TargetName:   targetName,
		TargetSender: targetSender,
	})
}

// AddRuleForSenders 为每个发送者各添加一条规则
func (r *Registry) AddRuleForSenders(sourceName string, senders []types.Identity, targetName string, targetSender types.Identity) {
	for _, s := range senders {
		r.AddRule(sourceName, s, targetName, targetSender)
	}
}

// RemoveRule 移除单条规则
//
// 通配规则只能通过这个方法移除。
func (r *Registry) RemoveRule(sourceName string, sourceSender types.Identity, targetName string, targetSender types.Identity) bool {
	rule := types.ConversionRule{
		SourceName:   sourceName,
		SourceSender: sourceSender,
		TargetName:   targetName,
		TargetSender: targetSender,
	}

	r.mu.Lock()
	ok := r.index.remove(rule)
	var release []interfaces.Subscription
	if ok {
		release = r.unrefLocked(rule.SourceName)
	}
	r.mu.Unlock()

	closeAll(release)
	return ok
}

// RemoveRulesFromSender 移除来源发送者为 sourceSender 的所有规则
//
// 未知发送者和 AnySender 为空操作。
func (r *Registry) RemoveRulesFromSender(sourceSender types.Identity) {
	r.mu.Lock()
	removed := r.index.removeSender(sourceSender)
	var release []interfaces.Subscription
	for _, rule := range removed {
		release = append(release, r.unrefLocked(rule.SourceName)...)
	}
	r.mu.Unlock()

	closeAll(release)
	if len(removed) > 0 {
		logger.Debug("已移除发送者的转换规则", "sender", sourceSender, "count", len(removed))
	}
}

// RemoveRulesFromSenders 批量移除
func (r *Registry) RemoveRulesFromSenders(senders []types.Identity) {
	for _, s := range senders {
		r.RemoveRulesFromSender(s)
	}
}

// Rules 返回按注册顺序排列的规则快照
func (r *Registry) Rules() []types.ConversionRule {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index.rules()
}

// Len 返回当前规则数
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index.len()
}

// ============================================================================
// 事件转换
// ============================================================================

// HandleSourceEvent 处理来源事件
//
// 匹配结果在锁内快照，转换事件在锁外发布，因此目标事件的观察者
// 可以在回调中修改注册表；修改只影响之后的事件。
func (r *Registry) HandleSourceEvent(evt types.Event) {
	r.mu.Lock()
	matches := r.index.match(evt.Name, evt.Sender)
	r.mu.Unlock()

	for _, rule := range matches {
		r.reporter.ConversionFired(rule.SourceName, rule.TargetName)
		r.bus.Publish(rule.TargetName, rule.TargetSender, evt.Payload)
	}
}

// Close 关闭注册表
//
// 清空全部规则并关闭总线订阅，之后的 AddRule 被忽略。
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true

	release := make([]interfaces.Subscription, 0, len(r.subs))
	for _, s := range r.subs {
		release = append(release, s.sub)
	}
	n := r.index.len()
	r.subs = make(map[string]*sourceSub)
	r.index.reset()
	r.mu.Unlock()

	logger.Debug("转换注册表关闭", "rules", n, "subscriptions", len(release))
	return closeAll(release)
}

// ============================================================================
// 内部方法
// ============================================================================

func (r *Registry) add(rule types.ConversionRule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		logger.Warn("转换注册表已关闭，忽略规则", "rule", rule.String())
		return
	}
	if !r.index.add(rule) {
		return
	}

	if s, ok := r.subs[rule.SourceName]; ok {
		s.refs++
	} else {
		r.subs[rule.SourceName] = &sourceSub{
			sub:  r.bus.Subscribe(rule.SourceName, types.AnySender, r.HandleSourceEvent),
			refs: 1,
		}
	}

	if n := r.index.len(); r.maxRules > 0 && n > r.maxRules {
		r.leakWarn.Do(func() {
			logger.Warn("转换规则数超过上限，可能有来源对象未调用 RemoveRulesFromSender",
				"rules", n, "maxRules", r.maxRules)
		})
	}
}

// unrefLocked 释放来源事件名的一个引用，返回需要关闭的订阅
func (r *Registry) unrefLocked(name string) []interfaces.Subscription {
	s, ok := r.subs[name]
	if !ok {
		return nil
	}
	s.refs--
	if s.refs > 0 {
		return nil
	}
	delete(r.subs, name)
	return []interfaces.Subscription{s.sub}
}

// subscribedNames 返回当前订阅的来源事件名数
func (r *Registry) subscribedNames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

func closeAll(subs []interfaces.Subscription) error {
	var err error
	for _, s := range subs {
		err = multierr.Append(err, s.Close())
	}
	return err
}
