// Package command implements the debugger command language: a small
// append-only input buffer with cursor editing identical to the Virtual
// Terminal's prompt, tokenized and validated into typed commands on
// Enter.
//
// This is a superset of the reference implementation's work-in-progress
// commands.rs, which left breakpoint argument parsing as a todo!() and
// had no `load` command at all; spec.md §4.7's full table is implemented
// here instead.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/esoterra/bft/pkg/core"
)

// Buffer is the Command Parser's live editing state: an editable line
// with cursor movement identical to terminal.VirtualTerminal's prompt
// (Left/Right/InputKey/Backspace/Delete), tokenized into a Command only
// when Enter is called. A TUI frontend routes individual keystrokes here
// before the user commits the line.
type Buffer struct {
	line   []byte
	cursor int
}

// NewBuffer returns an empty command line buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Left moves the edit cursor one byte left within [0, len(line)].
func (b *Buffer) Left() {
	if b.cursor == 0 {
		return
	}
	b.cursor--
}

// Right moves the edit cursor one byte right within [0, len(line)].
func (b *Buffer) Right() {
	if b.cursor == len(b.line) {
		return
	}
	b.cursor++
}

// InputKey inserts c at the cursor and advances it.
func (b *Buffer) InputKey(c byte) {
	b.line = append(b.line, 0)
	copy(b.line[b.cursor+1:], b.line[b.cursor:])
	b.line[b.cursor] = c
	b.cursor++
}

// Backspace deletes the byte before the cursor and moves the cursor back
// one, a no-op at the start of the line.
func (b *Buffer) Backspace() {
	if len(b.line) == 0 || b.cursor == 0 {
		return
	}
	b.line = append(b.line[:b.cursor-1], b.line[b.cursor:]...)
	b.cursor--
}

// Delete removes the byte at the cursor, a no-op at the end of the
// line. As with terminal.VirtualTerminal.Delete, the cursor does not
// move.
func (b *Buffer) Delete() {
	if b.cursor == len(b.line) {
		return
	}
	b.line = append(b.line[:b.cursor], b.line[b.cursor+1:]...)
}

// Line returns a defensive copy of the buffer's current contents.
func (b *Buffer) Line() []byte {
	out := make([]byte, len(b.line))
	copy(out, b.line)
	return out
}

// Cursor returns the edit cursor's offset within Line().
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Enter tokenizes and parses the buffer's current contents, then clears
// it for the next command, returning the resulting CommandEvent. A blank
// line produces no event.
func (b *Buffer) Enter() (CommandEvent, bool) {
	line := string(b.line)
	b.line = b.line[:0]
	b.cursor = 0

	cmd, err, ok := Parse(line)
	if !ok && err == nil {
		return CommandEvent{}, false
	}
	return CommandEvent{Command: cmd, Err: err}, true
}

// CommandEvent is what the Command Parser emits on Enter: either a
// successfully parsed Command (Err == nil) or a ParseError to surface in
// the Commands tab's output area (Err != nil).
type CommandEvent struct {
	Command Command
	Err     error
}

// Kind identifies which debugger command was parsed.
type Kind int

const (
	Help Kind = iota
	Step
	Run
	Pause
	Breakpoint
	Load
	Quit
)

func (k Kind) String() string {
	switch k {
	case Help:
		return "Help"
	case Step:
		return "Step"
	case Run:
		return "Run"
	case Pause:
		return "Pause"
	case Breakpoint:
		return "Breakpoint"
	case Load:
		return "Load"
	case Quit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Command is a successfully parsed, arity-checked debugger command.
type Command struct {
	Kind Kind
	N    uint16        // Step's step count, default 1
	Pos  core.Position // Breakpoint's target cell
	Path string        // Load's program path
}

func (c Command) String() string {
	switch c.Kind {
	case Step:
		return fmt.Sprintf("Step %d", c.N)
	case Breakpoint:
		return fmt.Sprintf("Breakpoint at %s", c.Pos)
	case Load:
		return fmt.Sprintf("Load %s", c.Path)
	default:
		return c.Kind.String()
	}
}

// ErrorKind distinguishes the three ways a command line can fail to
// parse; none of these are fatal to the debugger - they are reported in
// the Commands tab's output area.
type ErrorKind int

const (
	UnknownCommand ErrorKind = iota
	TooFewArguments
	TooManyArguments
)

// ParseError reports why a command line could not be parsed.
type ParseError struct {
	Kind     ErrorKind
	Arg      string   // set for UnknownCommand
	Alias    string   // the recognized alias, set for arity errors
	Expected int      // expected argument count, set for arity errors
	Found    []string // extra/insufficient arguments found
}

func (e ParseError) Error() string {
	switch e.Kind {
	case UnknownCommand:
		return fmt.Sprintf("error: unknown command alias '%s'", e.Arg)
	case TooFewArguments:
		return fmt.Sprintf("error: %s requires %d arguments", e.Alias, e.Expected)
	case TooManyArguments:
		return fmt.Sprintf("error: %s accepts %d arguments, but found %d extra: %v", e.Alias, e.Expected, len(e.Found), e.Found)
	default:
		return "error: unknown parse failure"
	}
}

const HelpText = "help       │ h         │ show this help text\n" +
	"step       │ s [n]     │ takes a step (default 1)\n" +
	"run        │ r         │ runs until breakpoint or halt\n" +
	"pause      │ p         │ pauses execution\n" +
	"breakpoint │ b <x> <y> │ toggles a breakpoint\n" +
	"load       │ l <path>  │ loads a new program\n" +
	"quit       │ q         │ exits the debugger"

// Parse tokenizes line on spaces and matches it against the command
// table in spec.md §4.7. Empty input returns (Command{}, nil, false).
func Parse(line string) (cmd Command, err error, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, nil, false
	}

	alias := fields[0]
	args := fields[1:]

	switch alias {
	case "h", "help":
		if len(args) > 0 {
			return Command{}, tooMany(alias, 0, args), false
		}
		return Command{Kind: Help}, nil, true

	case "s", "step":
		switch len(args) {
		case 0:
			return Command{Kind: Step, N: 1}, nil, true
		case 1:
			n, perr := strconv.ParseUint(args[0], 10, 16)
			if perr != nil {
				return Command{}, ParseError{Kind: UnknownCommand, Arg: args[0]}, false
			}
			return Command{Kind: Step, N: uint16(n)}, nil, true
		default:
			return Command{}, tooMany(alias, 1, args[1:]), false
		}

	case "r", "run":
		if len(args) > 0 {
			return Command{}, tooMany(alias, 0, args), false
		}
		return Command{Kind: Run}, nil, true

	case "p", "pause":
		if len(args) > 0 {
			return Command{}, tooMany(alias, 0, args), false
		}
		return Command{Kind: Pause}, nil, true

	case "b", "breakpoint":
		if len(args) < 2 {
			return Command{}, ParseError{Kind: TooFewArguments, Alias: alias, Expected: 2, Found: args}, false
		}
		if len(args) > 2 {
			return Command{}, tooMany(alias, 2, args[2:]), false
		}
		x, xerr := strconv.ParseUint(args[0], 10, 8)
		y, yerr := strconv.ParseUint(args[1], 10, 8)
		if xerr != nil || yerr != nil {
			return Command{}, ParseError{Kind: UnknownCommand, Arg: strings.Join(args, " ")}, false
		}
		return Command{Kind: Breakpoint, Pos: core.Position{X: uint8(x), Y: uint8(y)}}, nil, true

	case "l", "load":
		if len(args) < 1 {
			return Command{}, ParseError{Kind: TooFewArguments, Alias: alias, Expected: 1}, false
		}
		if len(args) > 1 {
			return Command{}, tooMany(alias, 1, args[1:]), false
		}
		return Command{Kind: Load, Path: args[0]}, nil, true

	case "q", "quit":
		if len(args) > 0 {
			return Command{}, tooMany(alias, 0, args), false
		}
		return Command{Kind: Quit}, nil, true

	default:
		return Command{}, ParseError{Kind: UnknownCommand, Arg: alias}, false
	}
}

func tooMany(alias string, expected int, extra []string) error {
	return ParseError{Kind: TooManyArguments, Alias: alias, Expected: expected, Found: extra}
}
