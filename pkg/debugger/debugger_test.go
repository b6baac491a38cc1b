package debugger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/esoterra/bft/pkg/core"
	"github.com/esoterra/bft/pkg/debugger"
)

func newDebugger(t *testing.T, program string) *debugger.Debugger {
	t.Helper()
	d := debugger.New([]byte(program), zap.NewNop())
	d.SetTicksPerStep(0) // step on every tick for deterministic tests
	return d
}

func TestTickDoesNothingWhilePaused(t *testing.T) {
	d := newDebugger(t, "5 @")
	stepped := d.Tick()
	assert.False(t, stepped)
	assert.Equal(t, debugger.Paused, d.State())
}

func TestAddStepsThenRunsAndPauses(t *testing.T) {
	d := newDebugger(t, "5 @")
	d.AddSteps(1)
	assert.Equal(t, debugger.Stepping, d.State())

	stepped := d.Tick()
	assert.True(t, stepped)
	assert.Equal(t, debugger.Paused, d.State())
}

func TestRunningUntilHalted(t *testing.T) {
	d := newDebugger(t, "5 @")
	d.StartRunning()

	for i := 0; i < 10 && d.State() != debugger.Halted; i++ {
		d.Tick()
	}
	assert.Equal(t, debugger.Halted, d.State())
}

func TestBreakpointSkipsStepAndPauses(t *testing.T) {
	d := newDebugger(t, "5 5 @")
	d.ToggleBreakpoint(core.Origin)
	d.StartRunning()

	stepped := d.Tick()
	assert.False(t, stepped, "a breakpoint hit should report that no step occurred")
	assert.Equal(t, debugger.Paused, d.State())
	assert.Equal(t, core.Origin, d.CurrentPosition())
}

func TestToggleBreakpointTwiceIsNoOp(t *testing.T) {
	d := newDebugger(t, "5 @")
	d.ToggleBreakpoint(core.Origin)
	d.ToggleBreakpoint(core.Origin)
	d.StartRunning()

	stepped := d.Tick()
	assert.True(t, stepped, "breakpoint should have been cleared")
}

func TestErrorTransitionsToHalted(t *testing.T) {
	d := newDebugger(t, "z")
	d.StartRunning()
	d.Tick()
	assert.Equal(t, debugger.Halted, d.State())
}

func TestPauseAndStartRunningAreNoOpsWhenHalted(t *testing.T) {
	d := newDebugger(t, "@")
	d.StartRunning()
	d.Tick()
	require.Equal(t, debugger.Halted, d.State())

	d.StartRunning()
	assert.Equal(t, debugger.Halted, d.State())
	d.Pause()
	assert.Equal(t, debugger.Halted, d.State())
	d.AddSteps(1)
	assert.Equal(t, debugger.Halted, d.State())
}

func TestStackHeightTracksInterpreter(t *testing.T) {
	d := newDebugger(t, "55@")
	d.AddSteps(1)
	d.Tick()
	assert.Equal(t, 1, d.StackHeight())
}
