// Package debugger implements the tick-scheduled controller that drives
// the interpreter at a configurable rate, services breakpoints, and owns
// the Virtual Terminal and Timeline for a debug session.
package debugger

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/esoterra/bft/pkg/core"
	"github.com/esoterra/bft/pkg/interpreter"
	"github.com/esoterra/bft/pkg/pathanalysis"
	"github.com/esoterra/bft/pkg/recorder"
	"github.com/esoterra/bft/pkg/space"
	"github.com/esoterra/bft/pkg/terminal"
)

// RunState is the debugger's run/step/pause state machine.
type RunState int

const (
	Paused RunState = iota
	Stepping
	Running
	Halted
)

func (s RunState) String() string {
	switch s {
	case Paused:
		return "Paused"
	case Stepping:
		return "Stepping"
	case Running:
		return "Running"
	case Halted:
		return "Halted"
	default:
		return "Unknown"
	}
}

// Debugger owns the Interpreter, the static path analysis, the
// breakpoint set, and the run-state machine for one debug session. It
// decouples ticks (fired by an external clock) from interpreter steps
// so the TUI can redraw at a fixed frame rate while the interpreter
// advances at a user-chosen rate.
type Debugger struct {
	SessionID uuid.UUID

	analysis    pathanalysis.Analysis
	interpreter *interpreter.Interpreter
	terminal    *terminal.VirtualTerminal
	timeline    *recorder.Timeline
	breakpoints map[core.Position]struct{}

	state          RunState
	stepsRemaining uint16
	ticksPerStep   uint16
	ticksSinceStep uint16

	log *zap.Logger
}

// New builds a Debugger over the given program bytes, analyzing its
// static reachability up front and starting Paused with the default
// ticks-per-step of 2 (overridable via SetTicksPerStep, e.g. from
// pkg/config).
func New(program []byte, log *zap.Logger) *Debugger {
	spc := space.New(program, func(b byte) core.GridCell { return core.GridCell(b) }, core.DefaultGridCell)
	analysis := pathanalysis.Analyze(spc)
	vt := terminal.New()
	timeline := recorder.NewTimeline()

	d := &Debugger{
		SessionID:   uuid.New(),
		analysis:    analysis,
		interpreter: interpreter.New(spc, vt, timeline, nil),
		terminal:    vt,
		timeline:    timeline,
		breakpoints: make(map[core.Position]struct{}),

		state:        Paused,
		ticksPerStep: 2,
	}
	d.SetLogger(log)
	return d
}

// SetTicksPerStep overrides the default throttle (used by pkg/config).
func (d *Debugger) SetTicksPerStep(n uint16) { d.ticksPerStep = n }

// SetLogger attaches a logger, wiring a recorder.ZapLog into the
// interpreter's Recorder alongside the Timeline via recorder.Tee so that
// every recorded Replace/Pop/Push/Quote event - not just Tick's own
// Error-path messages - reaches the structured log. Callers that mint
// the log file path from the Debugger's own SessionID (see internal/cmd's
// debug subcommand) call this after New. A nil log detaches ZapLog and
// leaves the Timeline as the sole recorder.
func (d *Debugger) SetLogger(log *zap.Logger) {
	d.log = log
	if log == nil {
		d.interpreter.SetRecorder(d.timeline)
		return
	}
	d.interpreter.SetRecorder(recorder.Tee{First: d.timeline, Second: recorder.NewZapLog(log)})
}

// Analysis returns the static path analysis computed at load time.
func (d *Debugger) Analysis() pathanalysis.Analysis { return d.analysis }

// Interpreter exposes the owned interpreter for read-only inspection by
// the TUI; only the Debugger itself drives it via Tick.
func (d *Debugger) Interpreter() *interpreter.Interpreter { return d.interpreter }

// Terminal exposes the owned Virtual Terminal.
func (d *Debugger) Terminal() *terminal.VirtualTerminal { return d.terminal }

// State returns the current run state.
func (d *Debugger) State() RunState { return d.state }

// Tick is fired by the external clock once per frame. It returns whether
// an interpreter step actually occurred this tick.
func (d *Debugger) Tick() bool {
	d.ticksSinceStep++
	due := d.ticksSinceStep > d.ticksPerStep

	stepNow := false
	switch d.state {
	case Paused, Halted:
		stepNow = false
	case Stepping:
		if due {
			if d.stepsRemaining <= 1 {
				d.state = Paused
			} else {
				d.stepsRemaining--
			}
		}
		stepNow = due
	case Running:
		stepNow = due
	}

	if !stepNow {
		return false
	}

	d.ticksSinceStep = 0

	pos := d.interpreter.Position()
	if _, breaking := d.breakpoints[pos]; breaking {
		d.state = Paused
		return false
	}

	status, err := d.interpreter.Step()
	switch status {
	case interpreter.Completed, interpreter.Waiting:
		// no state change
	case interpreter.Terminated:
		d.state = Halted
	case interpreter.Error:
		if d.log != nil {
			d.log.Error("interpreter error", zap.Error(err))
		}
		// Diverges from the reference implementation, which only logs
		// here and leaves state untouched: spec.md §4.6 calls for
		// transitioning to Halted on Error, and this follows that text.
		d.state = Halted
	}
	return true
}

// AddSteps queues additional Stepping budget; a no-op from Halted.
func (d *Debugger) AddSteps(steps uint16) {
	if d.state == Halted {
		return
	}
	if d.state == Stepping {
		d.stepsRemaining += steps
		return
	}
	d.state = Stepping
	d.stepsRemaining = steps
}

// StartRunning transitions to Running; a no-op from Halted.
func (d *Debugger) StartRunning() {
	if d.state == Halted {
		return
	}
	d.state = Running
}

// Pause transitions to Paused; a no-op from Halted.
func (d *Debugger) Pause() {
	if d.state == Halted {
		return
	}
	d.state = Paused
}

// ToggleBreakpoint flips pos's membership in the breakpoint set.
func (d *Debugger) ToggleBreakpoint(pos core.Position) {
	if _, ok := d.breakpoints[pos]; ok {
		delete(d.breakpoints, pos)
		return
	}
	d.breakpoints[pos] = struct{}{}
}

// StackHeight returns the current interpreter stack depth.
func (d *Debugger) StackHeight() int { return len(d.interpreter.Stack()) }

// CurrentPosition returns the interpreter cursor's current position.
func (d *Debugger) CurrentPosition() core.Position { return d.interpreter.Position() }
