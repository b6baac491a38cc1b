// Package terminal implements the Virtual Terminal: an append-only
// display buffer paired with an editable input prompt, simulating a
// line-oriented terminal without touching a real tty.
//
// Adapted from the teacher's TerminalBuffer: the Write([]byte)(int,
// error) signature and defensive-copy getters are kept; the ANSI/CSI
// screen-cell model is not, since this terminal is one-dimensional and
// append-only rather than a 2d cursor-addressed screen.
package terminal

import "github.com/esoterra/bft/pkg/streams"

// VirtualTerminal simulates a line-oriented terminal prompt: users type,
// edit with cursor left/right/backspace/delete, and commit with Enter;
// only committed bytes become interpreter input.
type VirtualTerminal struct {
	// display is append-only: program output and committed user input.
	display []byte
	// newlineIndices holds the byte offset of every '\n' in display.
	newlineIndices []int
	// availableInput is the committed-but-unconsumed input deque.
	availableInput []byte
	// uncommitted is the editable prompt buffer, floating after display.
	uncommitted []byte
	// cursor is the offset of the edit point within uncommitted.
	cursor int
	dirty  bool
}

// New returns an empty VirtualTerminal with capacities sized for a
// typical debug session, mirroring the reference implementation's
// comment that these sizes were "chosen by vibes" to avoid most
// reallocation during normal use.
func New() *VirtualTerminal {
	return &VirtualTerminal{
		display:        make([]byte, 0, 512),
		newlineIndices: make([]int, 0, 32),
		availableInput: make([]byte, 0, 512),
		uncommitted:    make([]byte, 0, 64),
	}
}

// Left moves the edit cursor one byte left within [0, len(uncommitted)].
func (t *VirtualTerminal) Left() {
	if t.cursor == 0 {
		return
	}
	t.cursor--
	t.dirty = true
}

// Right moves the edit cursor one byte right within [0, len(uncommitted)].
func (t *VirtualTerminal) Right() {
	if t.cursor == len(t.uncommitted) {
		return
	}
	t.cursor++
	t.dirty = true
}

// InputKey inserts c at the cursor and advances it. Non-ASCII runes are
// ignored; the caller is expected to have already resolved any shift
// modifier into the rune's case, matching how the reference
// implementation applies KeyModifiers before reaching this method.
func (t *VirtualTerminal) InputKey(c byte) {
	if c > 0x7f {
		return
	}
	t.uncommitted = append(t.uncommitted, 0)
	copy(t.uncommitted[t.cursor+1:], t.uncommitted[t.cursor:])
	t.uncommitted[t.cursor] = c
	t.cursor++
	t.dirty = true
}

// Backspace deletes the byte before the cursor and moves the cursor back
// one, a no-op at the start of the prompt.
func (t *VirtualTerminal) Backspace() {
	if len(t.uncommitted) == 0 || t.cursor == 0 {
		return
	}
	t.uncommitted = append(t.uncommitted[:t.cursor-1], t.uncommitted[t.cursor:]...)
	t.cursor--
	t.dirty = true
}

// Delete removes the byte at the cursor, a no-op at the end of the
// prompt. Unlike the reference implementation this was adapted from,
// the cursor does not move - that source decremented the cursor after a
// forward delete (and underflowed when cursor was already 0), which
// contradicts this buffer's own documented contract that only
// Backspace moves the cursor backward; see the project's DESIGN.md.
func (t *VirtualTerminal) Delete() {
	if t.cursor == len(t.uncommitted) {
		return
	}
	t.uncommitted = append(t.uncommitted[:t.cursor], t.uncommitted[t.cursor+1:]...)
	t.dirty = true
}

// Commit appends '\n' to uncommitted, records its offset, moves the
// whole line into both availableInput and display, then clears
// uncommitted and resets the cursor.
func (t *VirtualTerminal) Commit() {
	i := len(t.display) + len(t.uncommitted)
	t.newlineIndices = append(t.newlineIndices, i)
	t.uncommitted = append(t.uncommitted, '\n')
	t.availableInput = append(t.availableInput, t.uncommitted...)
	t.display = append(t.display, t.uncommitted...)
	t.uncommitted = t.uncommitted[:0]
	t.cursor = 0
	t.dirty = true
}

// GetLine returns a defensive copy of committed line i (between newline
// offsets), or nil, false for indices beyond recorded lines.
func (t *VirtualTerminal) GetLine(line int) ([]byte, bool) {
	newlines := len(t.newlineIndices)
	if line > newlines {
		return nil, false
	}

	start := 0
	if line > 0 {
		start = t.newlineIndices[line-1] + 1
	}

	end := len(t.display)
	if line != newlines {
		end = t.newlineIndices[line]
	}

	out := make([]byte, end-start)
	copy(out, t.display[start:end])
	return out, true
}

// NumLines returns the number of lines the display currently holds,
// including the trailing uncommitted-so-far line.
func (t *VirtualTerminal) NumLines() int {
	return len(t.newlineIndices) + 1
}

// Uncommitted returns a defensive copy of the editable prompt buffer.
func (t *VirtualTerminal) Uncommitted() []byte {
	out := make([]byte, len(t.uncommitted))
	copy(out, t.uncommitted)
	return out
}

// Cursor returns the edit cursor's offset within Uncommitted().
func (t *VirtualTerminal) Cursor() int {
	return t.cursor
}

// Dirty reports whether any state-mutating operation has occurred since
// the last call, clearing the flag as it reports it.
func (t *VirtualTerminal) Dirty() bool {
	dirty := t.dirty
	t.dirty = false
	return dirty
}

// ReadByte implements streams.IO: it pops from the committed input
// deque, leaving uncommitted edits untouched.
func (t *VirtualTerminal) ReadByte() (byte, bool) {
	if len(t.availableInput) == 0 {
		return 0, false
	}
	b := t.availableInput[0]
	t.availableInput = t.availableInput[1:]
	return b, true
}

// ReadNumber implements streams.IO using the same decimal accumulation
// rule as the rest of the I/O capability (see package streams).
func (t *VirtualTerminal) ReadNumber() (byte, bool) {
	offset, n, ok := streams.TryReadNumber(t.availableInput)
	t.availableInput = t.availableInput[offset:]
	return n, ok
}

// Write implements streams.IO (and io.Writer): it appends to display and
// indexes any embedded newlines.
func (t *VirtualTerminal) Write(buf []byte) (int, error) {
	base := len(t.display)
	for i, b := range buf {
		if b == '\n' {
			t.newlineIndices = append(t.newlineIndices, base+i)
		}
	}
	t.display = append(t.display, buf...)
	t.dirty = true
	return len(buf), nil
}
