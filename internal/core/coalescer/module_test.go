package coalescer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-notifyrelay/internal/core/cycle"
	"github.com/dep2p/go-notifyrelay/internal/core/eventbus"
	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
	"github.com/dep2p/go-notifyrelay/pkg/types"
)

func TestModule_CoalescesOnManualCycle(t *testing.T) {
	var co interfaces.Coalescer
	var bus interfaces.EventBus
	var manual *cycle.Manual

	app := fxtest.New(t,
		eventbus.Module(),
		cycle.Module(),
		Module(),
		fx.Populate(&co, &bus, &manual),
	)
	app.RequireStart()

	x := types.NewIdentity()
	var got []types.Event
	sub := bus.Subscribe("Foo", x, func(evt types.Event) { got = append(got, evt) })
	defer sub.Close()

	require.NoError(t, co.RequestPost("Foo", x, types.Payload{"v": 1}))
	require.NoError(t, co.RequestPost("Foo", x, types.Payload{"v": 2}))
	manual.Flush()

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Payload["v"])

	app.RequireStop()
	assert.ErrorIs(t, co.RequestPost("Foo", x, nil), ErrSchedulerClosed)
}
