// Package recorder implements the pluggable event-log capability that
// the interpreter reports its mutations to: a no-op, a composed tee of
// two recorders, and an append-only Timeline suitable for replay.
package recorder

import "github.com/esoterra/bft/pkg/core"

// Record observes mutating operations performed by the interpreter.
// Implementations must tolerate being called with no attached listener
// (see NoOp) at effectively zero cost.
type Record interface {
	StartStep(at core.Position, instruction core.GridCell)
	RollbackStep()
	CommitStep()

	Replace(at core.Position, old, new core.GridCell)
	Pop(old core.StackCell)
	PopBottom()
	Push(new core.StackCell)
	EnterQuote()
	ExitQuote()
}

// NoOp is a Record that discards every event.
type NoOp struct{}

func (NoOp) StartStep(core.Position, core.GridCell)    {}
func (NoOp) RollbackStep()                             {}
func (NoOp) CommitStep()                               {}
func (NoOp) Replace(core.Position, core.GridCell, core.GridCell) {}
func (NoOp) Pop(core.StackCell)                        {}
func (NoOp) PopBottom()                                {}
func (NoOp) Push(core.StackCell)                       {}
func (NoOp) EnterQuote()                               {}
func (NoOp) ExitQuote()                                {}

// Tee forwards every event to both First and Second, the Go equivalent
// of Rust's blanket impl of Record for (T1, T2) tuples - Go has no tuple
// trait impls, so this is an explicit two-field composition instead.
type Tee struct {
	First  Record
	Second Record
}

func (t Tee) StartStep(at core.Position, instr core.GridCell) {
	t.First.StartStep(at, instr)
	t.Second.StartStep(at, instr)
}

func (t Tee) RollbackStep() {
	t.First.RollbackStep()
	t.Second.RollbackStep()
}

func (t Tee) CommitStep() {
	t.First.CommitStep()
	t.Second.CommitStep()
}

func (t Tee) Replace(at core.Position, old, new core.GridCell) {
	t.First.Replace(at, old, new)
	t.Second.Replace(at, old, new)
}

func (t Tee) Pop(old core.StackCell) {
	t.First.Pop(old)
	t.Second.Pop(old)
}

func (t Tee) PopBottom() {
	t.First.PopBottom()
	t.Second.PopBottom()
}

func (t Tee) Push(new core.StackCell) {
	t.First.Push(new)
	t.Second.Push(new)
}

func (t Tee) EnterQuote() {
	t.First.EnterQuote()
	t.Second.EnterQuote()
}

func (t Tee) ExitQuote() {
	t.First.ExitQuote()
	t.Second.ExitQuote()
}

// EventKind tags a Timeline Event's variant.
type EventKind int

const (
	EventReplace EventKind = iota
	EventPop
	EventPopBottom
	EventPush
	EventEnterQuote
	EventExitQuote
)

// Event carries enough information to apply itself to program state
// forwards or backwards during replay.
type Event struct {
	Kind EventKind
	At   core.Position
	Old  core.GridCell
	New  core.GridCell

	OldCell core.StackCell
	NewCell core.StackCell
}

// Step records one interpreter step: where it happened, what opcode ran,
// and the slice of Events (by index range) it produced.
type Step struct {
	At          core.Position
	Instruction core.GridCell
	EventStart  int
	EventEnd    int
}

// Timeline is an append-only log of (Step, []Event) suitable for replay
// or undo. Unlike the reference implementation this Record was grounded
// on, RollbackStep truncates Events back to the length recorded when the
// matching StartStep began: the source left orphaned per-step events in
// place on rollback, which this implementation treats as a defect - see
// the project's DESIGN.md for the rationale.
type Timeline struct {
	Steps  []Step
	Events []Event

	pendingStart int
}

// NewTimeline returns an empty Timeline.
func NewTimeline() *Timeline {
	return &Timeline{}
}

func (tl *Timeline) StartStep(at core.Position, instruction core.GridCell) {
	tl.pendingStart = len(tl.Events)
	tl.Steps = append(tl.Steps, Step{At: at, Instruction: instruction, EventStart: tl.pendingStart})
}

func (tl *Timeline) RollbackStep() {
	tl.Steps = tl.Steps[:len(tl.Steps)-1]
	tl.Events = tl.Events[:tl.pendingStart]
}

func (tl *Timeline) CommitStep() {
	last := &tl.Steps[len(tl.Steps)-1]
	last.EventEnd = len(tl.Events)
}

func (tl *Timeline) Replace(at core.Position, old, new core.GridCell) {
	tl.Events = append(tl.Events, Event{Kind: EventReplace, At: at, Old: old, New: new})
}

func (tl *Timeline) Pop(old core.StackCell) {
	tl.Events = append(tl.Events, Event{Kind: EventPop, OldCell: old})
}

func (tl *Timeline) PopBottom() {
	tl.Events = append(tl.Events, Event{Kind: EventPopBottom})
}

func (tl *Timeline) Push(new core.StackCell) {
	tl.Events = append(tl.Events, Event{Kind: EventPush, NewCell: new})
}

func (tl *Timeline) EnterQuote() {
	tl.Events = append(tl.Events, Event{Kind: EventEnterQuote})
}

func (tl *Timeline) ExitQuote() {
	tl.Events = append(tl.Events, Event{Kind: EventExitQuote})
}
