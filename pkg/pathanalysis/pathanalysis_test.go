package pathanalysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/esoterra/bft/pkg/core"
	"github.com/esoterra/bft/pkg/pathanalysis"
	"github.com/esoterra/bft/pkg/space"
)

func TestStateMasksStartEmpty(t *testing.T) {
	var s pathanalysis.State
	assert.Equal(t, pathanalysis.DirectionsNone, s.Directions())
	assert.Equal(t, pathanalysis.ModesNone, s.Modes())
}

func TestArrowLoopReachesAllFourCells(t *testing.T) {
	program := space.New([]byte("v<\n>^"), func(b byte) core.GridCell { return core.GridCell(b) }, core.DefaultGridCell)
	analysis := pathanalysis.Analyze(program)

	positions := []core.Position{
		{X: 0, Y: 0}, {X: 1, Y: 0},
		{X: 0, Y: 1}, {X: 1, Y: 1},
	}
	for _, pos := range positions {
		state := analysis.CellStates.Get(pos)
		assert.NotEqual(t, pathanalysis.DirectionsNone, state.Directions(), "cell %s should have been reached", pos)
	}
}

func TestAnalyzeTerminatesAndRespectsTerminalOpcode(t *testing.T) {
	program := space.New([]byte("@"), func(b byte) core.GridCell { return core.GridCell(b) }, core.DefaultGridCell)
	analysis := pathanalysis.Analyze(program)
	state := analysis.CellStates.Get(core.Origin)
	assert.Equal(t, pathanalysis.DirectionsHorizontal, state.Directions())
}
