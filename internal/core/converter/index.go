package converter

import (
	"sort"

	"github.com/dep2p/go-notifyrelay/pkg/types"
)

// ============================================================================
// ruleIndex 规则索引
// ============================================================================

// entry 索引条目
type entry struct {
	rule types.ConversionRule

	// seq 注册序号，用于合并分桶和通配的匹配结果
	seq uint64
}

// ruleIndex 规则索引
//
// 不变量：members 中的每个条目恰好出现在 bySender 的一个桶或 wildcards 中。
type ruleIndex struct {
	bySender  map[types.Identity][]*entry
	wildcards []*entry
	members   map[types.ConversionRule]*entry
	seq       uint64
}

func newRuleIndex() *ruleIndex {
	return &ruleIndex{
		bySender: make(map[types.Identity][]*entry),
		members:  make(map[types.ConversionRule]*entry),
	}
}

// add 添加规则，已存在时返回 false
func (ix *ruleIndex) add(r types.ConversionRule) bool {
	if _, ok := ix.members[r]; ok {
		return false
	}

	ix.seq++
	e := &entry{rule: r, seq: ix.seq}
	ix.members[r] = e

	if r.HasSourceSender() {
		ix.bySender[r.SourceSender] = append(ix.bySender[r.SourceSender], e)
	} else {
		ix.wildcards = append(ix.wildcards, e)
	}
	return true
}

// remove 移除单条规则
func (ix *ruleIndex) remove(r types.ConversionRule) bool {
	e, ok := ix.members[r]
	if !ok {
		return false
	}
	delete(ix.members, r)

	if !r.HasSourceSender() {
		ix.wildcards = without(ix.wildcards, e)
		return true
	}

	bucket := without(ix.bySender[r.SourceSender], e)
	if len(bucket) == 0 {
		delete(ix.bySender, r.SourceSender)
	} else {
		ix.bySender[r.SourceSender] = bucket
	}
	return true
}

// removeSender 移除来源发送者的整个桶，返回被移除的规则
func (ix *ruleIndex) removeSender(sender types.Identity) []types.ConversionRule {
	if sender.IsAny() {
		return nil
	}

	bucket, ok := ix.bySender[sender]
	if !ok {
		return nil
	}
	delete(ix.bySender, sender)

	removed := make([]types.ConversionRule, 0, len(bucket))
	for _, e := range bucket {
		delete(ix.members, e.rule)
		removed = append(removed, e.rule)
	}
	return removed
}

// match 返回匹配事件的规则，按注册顺序排列
//
// 桶和通配列表各自按序号递增，这里做一次归并。
func (ix *ruleIndex) match(name string, sender types.Identity) []types.ConversionRule {
	var bucket []*entry
	if !sender.IsAny() {
		bucket = ix.bySender[sender]
	}

	var out []types.ConversionRule
	i, j := 0, 0
	for i < len(bucket) || j < len(ix.wildcards) {
		var e *entry
		switch {
		case j >= len(ix.wildcards):
			e = bucket[i]
			i++
		case i >= len(bucket):
			e = ix.wildcards[j]
			j++
		case bucket[i].seq < ix.wildcards[j].seq:
			e = bucket[i]
			i++
		default:
			e = ix.wildcards[j]
			j++
		}
		if e.rule.Matches(name, sender) {
			out = append(out, e.rule)
		}
	}
	return out
}

// rules 返回按注册顺序排列的全部规则
func (ix *ruleIndex) rules() []types.ConversionRule {
	entries := make([]*entry, 0, len(ix.members))
	for _, e := range ix.members {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]types.ConversionRule, len(entries))
	for i, e := range entries {
		out[i] = e.rule
	}
	return out
}

func (ix *ruleIndex) len() int {
	return len(ix.members)
}

// reset 清空索引
func (ix *ruleIndex) reset() {
	ix.bySender = make(map[types.Identity][]*entry)
	ix.wildcards = nil
	ix.members = make(map[types.ConversionRule]*entry)
}

// without 返回去掉 e 之后的切片，保持原有顺序
func without(list []*entry, e *entry) []*entry {
	for i, x := range list {
		if x == e {
			out := make([]*entry, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	return list
}
