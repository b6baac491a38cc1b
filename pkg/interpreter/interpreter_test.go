package interpreter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esoterra/bft/pkg/core"
	"github.com/esoterra/bft/pkg/interpreter"
	"github.com/esoterra/bft/pkg/recorder"
	"github.com/esoterra/bft/pkg/space"
	"github.com/esoterra/bft/pkg/streams"
)

func newInterp(program string, io streams.IO) *interpreter.Interpreter {
	sp := space.New([]byte(program), func(b byte) core.GridCell { return core.GridCell(b) }, core.DefaultGridCell)
	if io == nil {
		io = streams.NewBufferIO()
	}
	return interpreter.New(sp, io, recorder.NoOp{}, fixedDirection(core.Right))
}

func fixedDirection(d core.Direction) interpreter.RandomDirection {
	return func() core.Direction { return d }
}

func TestPushDigit(t *testing.T) {
	// A non-space second cell keeps the cursor at x=1: a one-column row
	// would wrap the advance back to x=0, and a trailing space would be
	// skipped over by space-skipping, which also wraps to x=0.
	in := newInterp("5@", nil)
	status, err := in.Step()
	require.NoError(t, err)
	assert.Equal(t, interpreter.Completed, status)
	assert.Equal(t, []core.StackCell{5}, in.Stack())
	assert.Equal(t, core.Position{X: 1, Y: 0}, in.Position())
}

func TestArithmetic(t *testing.T) {
	io := streams.NewBufferIO()
	in := newInterp("23+.@", io)
	for {
		status, err := in.Step()
		require.NoError(t, err)
		if status == interpreter.Terminated {
			break
		}
	}
	assert.Equal(t, "5 ", string(io.Output))
}

func TestQuoteMode(t *testing.T) {
	io := streams.NewBufferIO()
	in := newInterp(`"Hi",,@`, io)
	for {
		status, err := in.Step()
		require.NoError(t, err)
		if status == interpreter.Terminated {
			break
		}
	}
	assert.Equal(t, []byte{'i', 'H'}, io.Output)
}

func TestSelfModification(t *testing.T) {
	in := newInterp("911p", nil)
	for i := 0; i < 4; i++ {
		status, err := in.Step()
		require.NoError(t, err)
		require.Equal(t, interpreter.Completed, status)
	}
	assert.Equal(t, core.GridCell(9), in.Space().Get(core.Position{X: 1, Y: 1}))
	assert.Empty(t, in.Stack())
}

func TestArrowLoop(t *testing.T) {
	sp := space.New([]byte("v<\n>^"), func(b byte) core.GridCell { return core.GridCell(b) }, core.DefaultGridCell)
	in := interpreter.New(sp, streams.NewBufferIO(), recorder.NoOp{}, fixedDirection(core.Right))
	for i := 0; i < 4; i++ {
		status, err := in.Step()
		require.NoError(t, err)
		require.Equal(t, interpreter.Completed, status)
	}
	assert.Equal(t, core.Origin, in.Position())
	assert.Equal(t, core.Left, in.Direction())
	assert.Empty(t, in.Stack())
}

func TestWaitingOnInput(t *testing.T) {
	io := streams.NewBufferIO()
	in := newInterp("&.@", io)

	status, err := in.Step()
	require.NoError(t, err)
	assert.Equal(t, interpreter.Waiting, status)
	assert.Equal(t, core.Origin, in.Position())

	io.WriteInput([]byte("7\n"))

	status, err = in.Step()
	require.NoError(t, err)
	assert.Equal(t, interpreter.Completed, status)

	for {
		status, err := in.Step()
		require.NoError(t, err)
		if status == interpreter.Terminated {
			break
		}
	}
	assert.Equal(t, "7 ", string(io.Output))
}

func TestDivideByZeroPushesZero(t *testing.T) {
	io := streams.NewBufferIO()
	in := newInterp("50/.@", io)
	for {
		status, err := in.Step()
		require.NoError(t, err)
		if status == interpreter.Terminated {
			break
		}
	}
	assert.Equal(t, "0 ", string(io.Output))
}

func TestInvalidOpcode(t *testing.T) {
	in := newInterp("z", nil)
	status, err := in.Step()
	require.Error(t, err)
	assert.Equal(t, interpreter.Error, status)
	ierr, ok := err.(interpreter.InterpreterError)
	require.True(t, ok)
	assert.Equal(t, interpreter.InvalidOpcode, ierr.Kind)
}

func TestStackUnderflowPopReturnsZero(t *testing.T) {
	in := newInterp("!@", nil)
	status, err := in.Step()
	require.NoError(t, err)
	assert.Equal(t, interpreter.Completed, status)
	assert.Equal(t, []core.StackCell{1}, in.Stack())
}
