package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-notifyrelay"
	"github.com/dep2p/go-notifyrelay/pkg/types"
)

func runScript(t *testing.T, src string) []string {
	t.Helper()

	s, err := parseScript([]byte(src))
	require.NoError(t, err)

	c, err := notifyrelay.New(notifyrelay.WithCycleMode(notifyrelay.CycleManual))
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	var out bytes.Buffer
	require.NoError(t, newRunner(c, &out).run(s))
	return strings.Split(strings.TrimSpace(out.String()), "\n")
}

func TestDemoScript(t *testing.T) {
	lines := runScript(t, demoScript)

	assert.Equal(t, []string{
		"innerDidChange sender=inner payload={value=5}",
		"outerDidChange sender=outer payload={value=5}",
		"tick sender=a",
		"heartbeat sender=hub",
		"tick sender=b",
		"heartbeat sender=hub",
		"redraw sender=outer payload={frame=2}",
		"innerDidChange sender=inner payload={value=6}",
	}, lines)
}

func TestScript_Watch(t *testing.T) {
	lines := runScript(t, `{
	  "watch": ["outer"],
	  "steps": [
	    {"op": "rule", "name": "inner", "sender": "a", "target": "outer", "as": "b"},
	    {"op": "publish", "name": "inner", "sender": "a"},
	    {"op": "unrule", "name": "inner", "sender": "a", "target": "outer", "as": "b"},
	    {"op": "publish", "name": "inner", "sender": "a"}
	  ]
	}`)
	assert.Equal(t, []string{"outer sender=b"}, lines)
}

func TestScript_UnknownOp(t *testing.T) {
	s, err := parseScript([]byte(`{"steps": [{"op": "explode"}]}`))
	require.NoError(t, err)

	c, err := notifyrelay.New()
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()

	err = newRunner(c, &bytes.Buffer{}).run(s)
	assert.ErrorIs(t, err, errUnknownOp)
}

func TestScript_InvalidStep(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"规则缺少目标", `{"steps": [{"op": "rule", "name": "x", "sender": "a"}]}`},
		{"规则缺少来源", `{"steps": [{"op": "rule", "target": "y"}]}`},
		{"移除规则缺少目标", `{"steps": [{"op": "unrule", "name": "x"}]}`},
		{"发布缺少名称", `{"steps": [{"op": "publish", "sender": "a"}]}`},
		{"合并投递缺少名称", `{"steps": [{"op": "post"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := parseScript([]byte(tt.src))
			require.NoError(t, err)

			c, err := notifyrelay.New()
			require.NoError(t, err)
			require.NoError(t, c.Start(context.Background()))
			defer c.Close()

			var out bytes.Buffer
			require.NotPanics(t, func() { err = newRunner(c, &out).run(s) })
			assert.ErrorIs(t, err, errInvalidStep)
			assert.ErrorIs(t, err, types.ErrEmptyName)
			assert.Contains(t, err.Error(), "步骤 1")
			assert.Equal(t, 0, c.Converter().Len())
		})
	}
}

func TestParseScript_Invalid(t *testing.T) {
	_, err := parseScript([]byte(`{`))
	assert.Error(t, err)
}
