// Package space implements the mixed dense/sparse 2d byte store that
// backs both the program grid and the path analyzer's per-cell state.
package space

import "github.com/esoterra/bft/pkg/core"

// Space is a generic 2d store: a dense rectangular buffer sized at
// construction, plus a sparse map for writes beyond it. The dense buffer
// itself is never resized; rows/cols record the full extent, sparse
// writes included.
// Reads are total - every Position returns a value, falling back to def
// when the address was never written.
//
// Go has no Rust-style Default trait bound, so the zero value to return
// for unwritten cells is supplied explicitly at construction time.
type Space[T any] struct {
	grid [][]T
	def  T
	set  map[core.Position]T
	rows int
	cols int
}

// New builds a Space from raw program bytes via conv, which converts a
// single source byte into a T (core.GridCell(b) for the program grid).
// '\n' separates rows; rows may be ragged; a trailing non-newline byte
// counts as one more row. The dense buffer is filled row-major; trailing
// cells in short rows keep def.
func New[T any](program []byte, conv func(byte) T, def T) *Space[T] {
	cols := 0
	rows := 0
	lastLine := 0
	for i, c := range program {
		if c == '\n' {
			if i-lastLine > cols {
				cols = i - lastLine
			}
			lastLine = i + 1
			rows++
		}
	}
	if lastLine != len(program) {
		if len(program)-lastLine > cols {
			cols = len(program) - lastLine
		}
		rows++
	}

	sp := WithSize[T](rows, cols, def)

	lastLine = 0
	row := 0
	for i, c := range program {
		if c == '\n' {
			lastLine = i + 1
			row++
			continue
		}
		sp.grid[row][i-lastLine] = conv(c)
	}
	return sp
}

// WithSize constructs an empty Space of the given dense extent, every
// cell initialized to def.
func WithSize[T any](rows, cols int, def T) *Space[T] {
	grid := make([][]T, rows)
	for r := range grid {
		row := make([]T, cols)
		for c := range row {
			row[c] = def
		}
		grid[r] = row
	}
	return &Space[T]{
		grid: grid,
		def:  def,
		set:  make(map[core.Position]T),
		rows: rows,
		cols: cols,
	}
}

// Rows returns the current row extent, including rows reached only by
// sparse writes.
func (s *Space[T]) Rows() int { return s.rows }

// Cols returns the current column extent, including columns reached only
// by sparse writes.
func (s *Space[T]) Cols() int { return s.cols }

// inDense reports whether (x, y) falls inside the dense grid.
func (s *Space[T]) inDense(x, y int) bool {
	return y < len(s.grid) && x < len(s.grid[y])
}

// Get retrieves the value at pos. Total: out-of-extent or never-written
// addresses return def.
func (s *Space[T]) Get(pos core.Position) T {
	if v, ok := s.Lookup(pos); ok {
		return v
	}
	return s.def
}

// Lookup returns the value at pos and whether it has ever been written,
// preferring the dense grid when pos is within its current bounds.
func (s *Space[T]) Lookup(pos core.Position) (T, bool) {
	x, y := int(pos.X), int(pos.Y)
	if !s.inDense(x, y) {
		v, ok := s.set[pos]
		return v, ok
	}
	return s.grid[y][x], true
}

// Set writes cell at pos, extending (rows, cols) to cover pos+1 if
// needed. The dense store's dimensions never shrink.
func (s *Space[T]) Set(pos core.Position, cell T) {
	x, y := int(pos.X), int(pos.Y)
	if !s.inDense(x, y) {
		s.set[pos] = cell
	} else {
		s.grid[y][x] = cell
	}
	if x+1 > s.cols {
		s.cols = x + 1
	}
	if y+1 > s.rows {
		s.rows = y + 1
	}
}

// Move steps pos one cell in dir, wrapping around the current extent.
//
// Left/Up preserve a deliberate quirk carried over from the reference
// implementation: wrapping at x==0 (or y==0) yields cols (or rows)
// itself, not cols-1/rows-1. This produces one transient position one
// past the current extent, silently corrected by the very next move in
// that direction. It is retained intentionally, not a bug.
func (s *Space[T]) Move(pos core.Position, dir core.Direction) core.Position {
	cols := uint8(s.cols)
	rows := uint8(s.rows)
	switch dir {
	case core.Right:
		x := pos.X + 1
		if x >= cols {
			x = 0
		}
		return core.Position{X: x, Y: pos.Y}
	case core.Left:
		x := pos.X - 1
		if pos.X == 0 {
			x = cols
		}
		return core.Position{X: x, Y: pos.Y}
	case core.Up:
		y := pos.Y - 1
		if pos.Y == 0 {
			y = rows
		}
		return core.Position{X: pos.X, Y: y}
	case core.Down:
		y := pos.Y + 1
		if y >= rows {
			y = 0
		}
		return core.Position{X: pos.X, Y: y}
	default:
		return pos
	}
}
