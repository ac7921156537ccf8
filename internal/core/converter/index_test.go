package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-notifyrelay/pkg/types"
)

func rule(src string, ss types.Identity, tgt string, ts types.Identity) types.ConversionRule {
	return types.ConversionRule{SourceName: src, SourceSender: ss, TargetName: tgt, TargetSender: ts}
}

// checkPlacement 校验每条规则恰好出现在一处
func checkPlacement(t *testing.T, ix *ruleIndex) {
	t.Helper()

	seen := make(map[types.ConversionRule]int)
	for sender, bucket := range ix.bySender {
		require.NotEmpty(t, bucket, "空桶应被删除")
		for _, e := range bucket {
			assert.Equal(t, sender, e.rule.SourceSender)
			seen[e.rule]++
		}
	}
	for _, e := range ix.wildcards {
		assert.True(t, e.rule.SourceSender.IsAny())
		seen[e.rule]++
	}

	require.Len(t, seen, len(ix.members))
	for r, n := range seen {
		assert.Equal(t, 1, n, "rule %s", r)
		assert.Contains(t, ix.members, r)
	}
}

func TestRuleIndex_AddIdempotent(t *testing.T) {
	ix := newRuleIndex()
	a, out := types.NewIdentity(), types.NewIdentity()

	assert.True(t, ix.add(rule("x", a, "y", out)))
	assert.False(t, ix.add(rule("x", a, "y", out)))
	assert.Equal(t, 1, ix.len())
	checkPlacement(t, ix)
}

func TestRuleIndex_Placement(t *testing.T) {
	ix := newRuleIndex()
	a, b := types.NewIdentity(), types.NewIdentity()

	ix.add(rule("x", a, "y", types.AnySender))
	ix.add(rule("x", b, "y", types.AnySender))
	ix.add(rule("x", types.AnySender, "y", types.AnySender))
	ix.add(rule("z", a, "w", b))

	assert.Len(t, ix.bySender[a], 2)
	assert.Len(t, ix.bySender[b], 1)
	assert.Len(t, ix.wildcards, 1)
	checkPlacement(t, ix)

	require.True(t, ix.remove(rule("x", b, "y", types.AnySender)))
	assert.NotContains(t, ix.bySender, b)
	checkPlacement(t, ix)

	require.True(t, ix.remove(rule("x", types.AnySender, "y", types.AnySender)))
	assert.Empty(t, ix.wildcards)
	checkPlacement(t, ix)

	assert.False(t, ix.remove(rule("x", types.AnySender, "y", types.AnySender)))
}

func TestRuleIndex_MatchRegistrationOrder(t *testing.T) {
	ix := newRuleIndex()
	a := types.NewIdentity()

	ix.add(rule("x", types.AnySender, "first", types.AnySender))
	ix.add(rule("x", a, "second", types.AnySender))
	ix.add(rule("other", a, "ignored", types.AnySender))
	ix.add(rule("x", types.AnySender, "third", types.AnySender))
	ix.add(rule("x", a, "fourth", types.AnySender))

	var targets []string
	for _, r := range ix.match("x", a) {
		targets = append(targets, r.TargetName)
	}
	assert.Equal(t, []string{"first", "second", "third", "fourth"}, targets)

	// 其他发送者只命中通配规则
	targets = targets[:0]
	for _, r := range ix.match("x", types.NewIdentity()) {
		targets = append(targets, r.TargetName)
	}
	assert.Equal(t, []string{"first", "third"}, targets)

	// 无发送者的事件只命中通配规则
	assert.Len(t, ix.match("x", types.AnySender), 2)
}

func TestRuleIndex_RemoveSender(t *testing.T) {
	ix := newRuleIndex()
	a, b := types.NewIdentity(), types.NewIdentity()

	ix.add(rule("x", a, "y", types.AnySender))
	ix.add(rule("z", a, "w", types.AnySender))
	ix.add(rule("x", b, "y", types.AnySender))
	ix.add(rule("x", types.AnySender, "y", types.AnySender))

	removed := ix.removeSender(a)
	assert.Len(t, removed, 2)
	assert.Equal(t, 2, ix.len())
	checkPlacement(t, ix)

	assert.Nil(t, ix.removeSender(a))
	assert.Nil(t, ix.removeSender(types.AnySender))
	assert.Equal(t, 2, ix.len())
}

func TestRuleIndex_RulesSnapshot(t *testing.T) {
	ix := newRuleIndex()
	a := types.NewIdentity()

	r1 := rule("x", a, "y", types.AnySender)
	r2 := rule("x", types.AnySender, "y", types.AnySender)
	r3 := rule("z", a, "w", types.AnySender)
	ix.add(r1)
	ix.add(r2)
	ix.add(r3)
	ix.remove(r2)
	ix.add(r2)

	assert.Equal(t, []types.ConversionRule{r1, r3, r2}, ix.rules())
}
