package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dep2p/go-notifyrelay"
	"github.com/dep2p/go-notifyrelay/pkg/types"
)

// Script 脚本
//
// 对象用名称引用，首次出现时分配身份，空名称表示 AnySender。
//
//	{
//	  "steps": [
//	    {"op": "rule", "name": "innerChanged", "sender": "inner", "target": "outerChanged", "as": "outer"},
//	    {"op": "publish", "name": "innerChanged", "sender": "inner", "payload": {"value": 5}},
//	    {"op": "post", "name": "redraw", "sender": "outer"},
//	    {"op": "flush"}
//	  ]
//	}
type Script struct {
	// Watch 打印的事件名，为空时打印全部
	Watch []string `json:"watch,omitempty"`

	Steps []Step `json:"steps"`
}

// Step 脚本步骤
type Step struct {
	// Op 操作：rule / unrule / remove / publish / post / flush
	Op string `json:"op"`

	Name    string              `json:"name,omitempty"`
	Sender  string              `json:"sender,omitempty"`
	Target  string              `json:"target,omitempty"`
	As      string              `json:"as,omitempty"`
	Payload notifyrelay.Payload `json:"payload,omitempty"`
}

var (
	errUnknownOp   = errors.New("unknown script op")
	errInvalidStep = errors.New("invalid script step")
)

// demoScript 内置演示脚本
const demoScript = `{
  "steps": [
    {"op": "rule", "name": "innerDidChange", "sender": "inner", "target": "outerDidChange", "as": "outer"},
    {"op": "rule", "name": "tick", "target": "heartbeat", "as": "hub"},
    {"op": "publish", "name": "innerDidChange", "sender": "inner", "payload": {"value": 5}},
    {"op": "publish", "name": "tick", "sender": "a"},
    {"op": "publish", "name": "tick", "sender": "b"},
    {"op": "post", "name": "redraw", "sender": "outer", "payload": {"frame": 1}},
    {"op": "post", "name": "redraw", "sender": "outer", "payload": {"frame": 2}},
    {"op": "flush"},
    {"op": "remove", "sender": "inner"},
    {"op": "publish", "name": "innerDidChange", "sender": "inner", "payload": {"value": 6}}
  ]
}`

// loadScript 加载脚本，path 为空时使用内置演示
func loadScript(path string) (*Script, error) {
	data := []byte(demoScript)
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("读取脚本失败: %w", err)
		}
	}
	return parseScript(data)
}

func parseScript(data []byte) (*Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("解析脚本失败: %w", err)
	}
	return &s, nil
}

// runner 脚本执行器
type runner struct {
	center  *notifyrelay.Center
	out     io.Writer
	objects map[string]notifyrelay.Identity
	names   map[notifyrelay.Identity]string
}

func newRunner(c *notifyrelay.Center, out io.Writer) *runner {
	return &runner{
		center:  c,
		out:     out,
		objects: make(map[string]notifyrelay.Identity),
		names:   make(map[notifyrelay.Identity]string),
	}
}

func (r *runner) run(s *Script) error {
	watch := make(map[string]bool, len(s.Watch))
	for _, name := range s.Watch {
		watch[name] = true
	}

	// 空事件名订阅所有事件
	sub := r.center.Subscribe("", notifyrelay.AnySender, func(evt notifyrelay.Event) {
		if len(watch) == 0 || watch[evt.Name] {
			r.print(evt)
		}
	})
	defer sub.Close()

	for i, step := range s.Steps {
		if err := r.step(step); err != nil {
			return fmt.Errorf("步骤 %d (%s): %w", i+1, step.Op, err)
		}
	}
	return nil
}

// validate 校验步骤参数，避免空名称进入会 panic 的接口
func (st Step) validate() error {
	var err error
	switch st.Op {
	case "rule", "unrule":
		err = notifyrelay.ConversionRule{SourceName: st.Name, TargetName: st.Target}.Validate()
	case "publish", "post":
		if st.Name == "" {
			err = fmt.Errorf("%w: name", types.ErrEmptyName)
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidStep, err)
	}
	return nil
}

func (r *runner) step(st Step) error {
	if err := st.validate(); err != nil {
		return err
	}
	conv := r.center.Converter()

	switch st.Op {
	case "rule":
		conv.AddRule(st.Name, r.id(st.Sender), st.Target, r.id(st.As))
	case "unrule":
		conv.RemoveRule(st.Name, r.id(st.Sender), st.Target, r.id(st.As))
	case "remove":
		conv.RemoveRulesFromSender(r.id(st.Sender))
	case "publish":
		r.center.Publish(st.Name, r.id(st.Sender), st.Payload)
	case "post":
		return r.center.PostCoalescing(st.Name, r.id(st.Sender), st.Payload)
	case "flush":
		_, err := r.center.Flush()
		return err
	default:
		return fmt.Errorf("%w: %q", errUnknownOp, st.Op)
	}
	return nil
}

// id 按名称分配身份
func (r *runner) id(name string) notifyrelay.Identity {
	if name == "" {
		return notifyrelay.AnySender
	}
	if id, ok := r.objects[name]; ok {
		return id
	}
	id := notifyrelay.NewIdentity()
	r.objects[name] = id
	r.names[id] = name
	return id
}

// print 输出一行事件：name sender=obj payload={...}
func (r *runner) print(evt notifyrelay.Event) {
	sender := "-"
	if evt.HasSender() {
		sender = r.names[evt.Sender]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s sender=%s", evt.Name, sender)
	if len(evt.Payload) > 0 {
		keys := make([]string, 0, len(evt.Payload))
		for k := range evt.Payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, len(keys))
		for i, k := range keys {
			v, _ := evt.Payload.Get(k)
			parts[i] = fmt.Sprintf("%s=%v", k, v)
		}
		fmt.Fprintf(&b, " payload={%s}", strings.Join(parts, " "))
	}
	fmt.Fprintln(r.out, b.String())
}
