// Package interpreter implements the step-at-a-time opcode dispatcher:
// wrapping byte arithmetic, the Normal/Quote mode toggle, space-skipping,
// and non-blocking I/O suspension.
package interpreter

import (
	"fmt"

	"github.com/esoterra/bft/pkg/core"
	"github.com/esoterra/bft/pkg/recorder"
	"github.com/esoterra/bft/pkg/space"
	"github.com/esoterra/bft/pkg/streams"
)

// Status is the outcome of one Step call.
type Status int

const (
	Completed Status = iota
	Waiting
	Terminated
	Error
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "Completed"
	case Waiting:
		return "Waiting"
	case Terminated:
		return "Terminated"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// ErrorKind distinguishes the interpreter's two fatal conditions.
type ErrorKind int

const (
	InvalidOpcode ErrorKind = iota
	InfiniteLoop
)

// InterpreterError is returned alongside Status == Error.
type InterpreterError struct {
	Kind ErrorKind
	Op   byte    // set when Kind == InvalidOpcode
	At   core.Position // set when Kind == InfiniteLoop
}

func (e InterpreterError) Error() string {
	switch e.Kind {
	case InvalidOpcode:
		return fmt.Sprintf("invalid opcode %q found", e.Op)
	case InfiniteLoop:
		return fmt.Sprintf("infinite loop detected at %s", e.At)
	default:
		return "unknown interpreter error"
	}
}

// RandomDirection supplies the '?' opcode's random heading. Tests
// substitute a deterministic implementation; production wires math/rand.
type RandomDirection func() core.Direction

// Interpreter executes a program step by step. It is generic over an I/O
// capability and a Recorder capability, matching the reference
// implementation's Interpreter<IOImpl, R> - this breaks the natural
// Debugger -> Interpreter -> Recorder cycle by making the Recorder a
// parameter the owner injects rather than a back-pointer the Interpreter
// holds.
type Interpreter struct {
	spc    *space.Space[core.GridCell]
	cursor core.Cursor
	stack  []core.StackCell

	io       streams.IO
	rec      recorder.Record
	randomDir RandomDirection
}

// New creates an Interpreter over spc, reading/writing through io and
// reporting mutations to rec. randomDir supplies '?' headings; pass nil
// to use a default unseeded source (see NewDefaultRandomDirection).
func New(spc *space.Space[core.GridCell], io streams.IO, rec recorder.Record, randomDir RandomDirection) *Interpreter {
	if rec == nil {
		rec = recorder.NoOp{}
	}
	if randomDir == nil {
		randomDir = NewDefaultRandomDirection()
	}
	return &Interpreter{
		spc:       spc,
		cursor:    core.NewCursor(),
		io:        io,
		rec:       rec,
		randomDir: randomDir,
	}
}

// SetRecorder swaps the attached Recorder, letting an owner compose in an
// additional listener (e.g. recorder.Tee with a logging Record) once it
// has information - like a session id - only available after New.
func (i *Interpreter) SetRecorder(rec recorder.Record) {
	if rec == nil {
		rec = recorder.NoOp{}
	}
	i.rec = rec
}

// Space exposes the underlying program grid for external inspection (the
// debugger/TUI reads it; nothing outside the Interpreter may write it).
func (i *Interpreter) Space() *space.Space[core.GridCell] { return i.spc }

// Position returns the cursor's current position.
func (i *Interpreter) Position() core.Position { return i.cursor.Pos }

// Direction returns the cursor's current heading.
func (i *Interpreter) Direction() core.Direction { return i.cursor.Dir }

// Mode returns the cursor's current mode.
func (i *Interpreter) Mode() core.Mode { return i.cursor.Mode }

// Stack returns a read-only view of the current stack, bottom first.
func (i *Interpreter) Stack() []core.StackCell { return i.stack }

func (i *Interpreter) put(pos core.Position, cell core.GridCell) {
	old := i.spc.Get(pos)
	i.rec.Replace(pos, old, cell)
	i.spc.Set(pos, cell)
}

func (i *Interpreter) moveAuto() {
	i.cursor.Pos = i.spc.Move(i.cursor.Pos, i.cursor.Dir)
}

func (i *Interpreter) pop() core.StackCell {
	if len(i.stack) == 0 {
		i.rec.PopBottom()
		return 0
	}
	top := i.stack[len(i.stack)-1]
	i.stack = i.stack[:len(i.stack)-1]
	i.rec.Pop(top)
	return top
}

func (i *Interpreter) push(cell core.StackCell) {
	i.rec.Push(cell)
	i.stack = append(i.stack, cell)
}

// Step executes one instruction at the cursor.
func (i *Interpreter) Step() (Status, error) {
	cell := i.spc.Get(i.cursor.Pos)
	i.rec.StartStep(i.cursor.Pos, cell)

	var status Status
	var err error
	if i.cursor.Mode == core.Quote {
		status, err = i.stepQuoted(cell)
	} else {
		status, err = i.stepUnquoted(cell)
	}

	// Space-skipping runs whenever the cursor is in Normal mode once the
	// dispatch is done (so after the step that closes a quote, but not
	// after the one that opens it), matching the reference
	// implementation: when the step suspended,
	// terminated, or errored without moving the cursor, the cell under
	// the cursor is by construction non-space (it's the opcode that
	// produced that outcome), so the loop below no-ops on its first
	// check and the original status/err stand.
	if i.cursor.Mode == core.Normal {
		if s, e, looped := i.skipSpaces(); looped {
			status, err = s, e
		}
	}

	if status == Waiting {
		i.rec.RollbackStep()
	} else {
		i.rec.CommitStep()
	}
	return status, err
}

func (i *Interpreter) stepQuoted(cell core.GridCell) (Status, error) {
	if cell == '"' {
		i.cursor.Mode = core.Normal
		i.rec.ExitQuote()
	} else {
		i.push(core.StackCell(cell))
	}
	i.moveAuto()
	return Completed, nil
}

func (i *Interpreter) stepUnquoted(cell core.GridCell) (Status, error) {
	status := Completed
	var err error

	switch byte(cell) {
	case '+':
		e1, e2 := i.pop(), i.pop()
		i.push(core.StackCell(uint8(e2) + uint8(e1)))
	case '-':
		upper, lower := i.pop(), i.pop()
		i.push(core.StackCell(uint8(lower) - uint8(upper)))
	case '*':
		e1, e2 := i.pop(), i.pop()
		i.push(core.StackCell(uint8(e2) * uint8(e1)))
	case '/':
		upper, lower := i.pop(), i.pop()
		if uint8(upper) == 0 {
			i.push(0)
		} else {
			i.push(core.StackCell(uint8(lower) / uint8(upper)))
		}
	case '%':
		upper, lower := i.pop(), i.pop()
		if uint8(upper) == 0 {
			i.push(0)
		} else {
			i.push(core.StackCell(uint8(lower) % uint8(upper)))
		}
	case '!':
		v := i.pop()
		if v == 0 {
			i.push(1)
		} else {
			i.push(0)
		}
	case '`':
		upper, lower := i.pop(), i.pop()
		if lower > upper {
			i.push(1)
		} else {
			i.push(0)
		}
	case '>':
		i.cursor.Dir = core.Right
	case '<':
		i.cursor.Dir = core.Left
	case '^':
		i.cursor.Dir = core.Up
	case 'v':
		i.cursor.Dir = core.Down
	case '?':
		i.cursor.Dir = i.randomDir()
	case '_':
		if i.pop() == 0 {
			i.cursor.Dir = core.Right
		} else {
			i.cursor.Dir = core.Left
		}
	case '|':
		if i.pop() == 0 {
			i.cursor.Dir = core.Down
		} else {
			i.cursor.Dir = core.Up
		}
	case '"':
		i.cursor.Mode = core.Quote
		i.rec.EnterQuote()
	case ':':
		v := i.pop()
		i.push(v)
		i.push(v)
	case '\\':
		upper, lower := i.pop(), i.pop()
		i.push(upper)
		i.push(lower)
	case '$':
		i.pop()
	case '.':
		v := i.pop()
		i.io.Write([]byte(fmt.Sprintf("%d ", v)))
	case ',':
		v := i.pop()
		i.io.Write([]byte{byte(v)})
	case '#':
		i.moveAuto()
	case 'g':
		y, x := i.pop(), i.pop()
		v := i.spc.Get(core.Position{X: uint8(x), Y: uint8(y)})
		i.push(core.StackCell(v))
	case 'p':
		y, x, v := i.pop(), i.pop(), i.pop()
		i.put(core.Position{X: uint8(x), Y: uint8(y)}, core.GridCell(uint8(v)))
	case '&':
		if n, ok := i.io.ReadNumber(); ok {
			i.push(core.StackCell(n))
		} else {
			status = Waiting
		}
	case '~':
		if b, ok := i.io.ReadByte(); ok {
			i.push(core.StackCell(b))
		} else {
			status = Waiting
		}
	case '@':
		status = Terminated
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		i.push(core.StackCell(cell - '0'))
	case ' ':
		// no-op
	default:
		status = Error
		err = InterpreterError{Kind: InvalidOpcode, Op: byte(cell)}
	}

	if status == Completed {
		i.moveAuto()
	}
	return status, err
}

// skipSpaces advances the cursor while it sits on space cells. It
// returns looped=true only when the cursor cycled back to its starting
// position while still on spaces (infinite loop); otherwise it leaves
// the calling step's status untouched, matching spec.md §4.3.
func (i *Interpreter) skipSpaces() (Status, error, bool) {
	start := i.cursor.Pos
	for i.spc.Get(i.cursor.Pos) == ' ' {
		i.moveAuto()
		if i.cursor.Pos == start {
			return Error, InterpreterError{Kind: InfiniteLoop, At: start}, true
		}
	}
	return Completed, nil, false
}
