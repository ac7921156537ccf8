package cycle

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/dep2p/go-notifyrelay/config"
	"github.com/dep2p/go-notifyrelay/pkg/interfaces"
)

func TestModule_DefaultManual(t *testing.T) {
	var host interfaces.CycleHost
	var manual *Manual

	app := fxtest.New(t,
		Module(),
		fx.Populate(&host, &manual),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, manual)
	assert.Same(t, manual, host)
}

func TestModule_Loop(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Cycle.Mode = config.CycleModeLoop

	var host interfaces.CycleHost
	var loop *Loop

	app := fxtest.New(t,
		fx.Supply(cfg),
		Module(),
		fx.Populate(&host, &loop),
	)
	app.RequireStart()

	require.NotNil(t, loop)
	done := make(chan struct{})
	host.ScheduleEndOfCycle(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("事件循环未运行周期回调")
	}

	app.RequireStop()
	assert.ErrorIs(t, loop.Post(func() {}), ErrLoopClosed)
}

func TestModule_TickerWithMockClock(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Cycle.Mode = config.CycleModeTicker
	cfg.Cycle.Interval = config.Duration(10 * time.Millisecond)

	mock := clock.NewMock()
	var ticker *Ticker

	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(func() clock.Clock { return mock }),
		Module(),
		fx.Populate(&ticker),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, ticker)
	ran := make(chan struct{})
	ticker.ScheduleEndOfCycle(func() { close(ran) })
	mock.Add(10 * time.Millisecond)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("定时周期未触发")
	}
}
