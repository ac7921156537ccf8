package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-notifyrelay/config"
	"github.com/dep2p/go-notifyrelay/internal/core/eventbus"
	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
	"github.com/dep2p/go-notifyrelay/pkg/types"
)

func TestModule_ProvidesRegistry(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Converter.MaxRules = 3

	var conv interfaces.Converter
	var reg *Registry
	var bus interfaces.EventBus

	app := fxtest.New(t,
		fx.Supply(cfg),
		eventbus.Module(),
		Module(),
		fx.Populate(&conv, &reg, &bus),
	)
	app.RequireStart()

	require.NotNil(t, reg)
	assert.Same(t, reg, conv)
	assert.Equal(t, 3, reg.maxRules)

	inner, outer := types.NewIdentity(), types.NewIdentity()
	conv.AddRule("inner", inner, "outer", outer)

	var got []types.Event
	sub := bus.Subscribe("outer", outer, func(evt types.Event) { got = append(got, evt) })
	bus.Publish("inner", inner, types.Payload{"value": 5})
	require.Len(t, got, 1)
	require.NoError(t, sub.Close())

	// 停止时关闭注册表
	app.RequireStop()
	assert.Equal(t, 0, reg.Len())
}
