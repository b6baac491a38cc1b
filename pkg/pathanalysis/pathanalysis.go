// Package pathanalysis implements the static breadth-first reachability
// pass that tags every grid cell with the set of (direction, mode)
// tuples under which it could be visited.
package pathanalysis

import (
	"github.com/esoterra/bft/pkg/core"
	"github.com/esoterra/bft/pkg/space"
)

// State is eight bit flags packed into one byte: for each of the four
// directions, one bit for "visited in Quote mode" and one for "visited
// in Normal mode".
type State uint8

const (
	quUp State = 1 << iota
	quDown
	quLeft
	quRight
	nuUp
	nuDown
	nuLeft
	nuRight
)

const qMask = quUp | quDown | quLeft | quRight
const nMask = nuUp | nuDown | nuLeft | nuRight

// Modes summarizes which cursor modes a cell was reached under.
type Modes int

const (
	ModesNone Modes = iota
	ModesQuoted
	ModesNormal
	ModesBoth
)

// Directions summarizes which axes a cell was entered from.
type Directions int

const (
	DirectionsNone Directions = iota
	DirectionsHorizontal
	DirectionsVertical
	DirectionsBoth
)

// Modes derives the coarse mode classification from the raw bits.
func (s State) Modes() Modes {
	normal := s&nMask != 0
	quoted := s&qMask != 0
	switch {
	case normal && quoted:
		return ModesBoth
	case normal:
		return ModesNormal
	case quoted:
		return ModesQuoted
	default:
		return ModesNone
	}
}

// Directions derives the coarse direction classification from the raw
// bits: any left/right entry is Horizontal, any up/down entry is
// Vertical, their union is Both.
func (s State) Directions() Directions {
	u := s&(nuUp|quUp) != 0
	d := s&(nuDown|quDown) != 0
	l := s&(nuLeft|quLeft) != 0
	r := s&(nuRight|quRight) != 0
	horizontal := l || r
	vertical := u || d
	switch {
	case horizontal && vertical:
		return DirectionsBoth
	case horizontal:
		return DirectionsHorizontal
	case vertical:
		return DirectionsVertical
	default:
		return DirectionsNone
	}
}

func maskFor(dir core.Direction, mode core.Mode) State {
	switch {
	case dir == core.Up && mode == core.Quote:
		return quUp
	case dir == core.Up && mode == core.Normal:
		return nuUp
	case dir == core.Down && mode == core.Quote:
		return quDown
	case dir == core.Down && mode == core.Normal:
		return nuDown
	case dir == core.Left && mode == core.Quote:
		return quLeft
	case dir == core.Left && mode == core.Normal:
		return nuLeft
	case dir == core.Right && mode == core.Quote:
		return quRight
	case dir == core.Right && mode == core.Normal:
		return nuRight
	default:
		return 0
	}
}

func (s State) update(dir core.Direction, mode core.Mode) State {
	return s | maskFor(dir, mode)
}

// Analysis is the output of Analyze: a per-cell State, same shape as the
// input Space.
type Analysis struct {
	CellStates *space.Space[State]
}

type worklistEntry struct {
	pos  core.Position
	dir  core.Direction
	mode core.Mode
}

// Analyze runs the fixpoint BFS described in spec.md §4.2: each of the 8
// (dir, mode) bits per cell is set at most once, bounding total work to
// 8 * |cells|.
func Analyze(program *space.Space[core.GridCell]) Analysis {
	states := space.WithSize[State](program.Rows(), program.Cols(), 0)
	queue := []worklistEntry{{pos: core.Origin, dir: core.Right, mode: core.Normal}}

	push := func(pos core.Position, dir core.Direction, mode core.Mode) {
		queue = append(queue, worklistEntry{pos: pos, dir: dir, mode: mode})
	}

	for len(queue) > 0 {
		entry := queue[0]
		queue = queue[1:]
		pos, dir, mode := entry.pos, entry.dir, entry.mode

		cell := program.Get(pos)

		// Fake out the mode so quotes always show as quoted, matching
		// the TUI's need to draw '"' distinctly regardless of the
		// traversal mode that reached it.
		drawMode := mode
		if cell == '"' {
			drawMode = core.Quote
		}

		old := states.Get(pos)
		updated := old.update(dir, drawMode)
		if old == updated {
			continue
		}
		states.Set(pos, updated)

		nextMode := mode
		if cell == '"' {
			if mode == core.Quote {
				nextMode = core.Normal
			} else {
				nextMode = core.Quote
			}
		}

		if nextMode == core.Quote {
			push(program.Move(pos, dir), dir, nextMode)
			continue
		}

		switch byte(cell) {
		case '^':
			push(program.Move(pos, core.Up), core.Up, nextMode)
		case 'v':
			push(program.Move(pos, core.Down), core.Down, nextMode)
		case '<':
			push(program.Move(pos, core.Left), core.Left, nextMode)
		case '>':
			push(program.Move(pos, core.Right), core.Right, nextMode)
		case '?':
			push(program.Move(pos, core.Up), core.Up, nextMode)
			push(program.Move(pos, core.Down), core.Down, nextMode)
			push(program.Move(pos, core.Left), core.Left, nextMode)
			push(program.Move(pos, core.Right), core.Right, nextMode)
		case '|':
			push(program.Move(pos, core.Up), core.Up, nextMode)
			push(program.Move(pos, core.Down), core.Down, nextMode)
		case '_':
			push(program.Move(pos, core.Left), core.Left, nextMode)
			push(program.Move(pos, core.Right), core.Right, nextMode)
		case '#':
			skipped := program.Move(program.Move(pos, dir), dir)
			push(skipped, dir, nextMode)
		case '@':
			// terminal; no successor
		default:
			push(program.Move(pos, dir), dir, nextMode)
		}
	}

	return Analysis{CellStates: states}
}
