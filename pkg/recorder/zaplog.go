package recorder

import (
	"go.uber.org/zap"

	"github.com/esoterra/bft/pkg/core"
)

// ZapLog is a Record that emits each event as a structured log line.
// It unifies what the reference implementation split into two
// destination-only printers (one to stdout, one to stderr) into a
// single implementation backed by the ambient structured logger; the
// destination is a property of how the *Logger was built, not of the
// Record implementation.
type ZapLog struct {
	log *zap.Logger
}

// NewZapLog wraps log for use as a Record.
func NewZapLog(log *zap.Logger) *ZapLog {
	return &ZapLog{log: log}
}

func (z *ZapLog) StartStep(at core.Position, instruction core.GridCell) {
	z.log.Debug("start step",
		zap.Uint8("x", at.X), zap.Uint8("y", at.Y),
		zap.Uint8("opcode", byte(instruction)))
}

func (z *ZapLog) RollbackStep() {
	z.log.Debug("rollback step")
}

func (z *ZapLog) CommitStep() {
	z.log.Debug("commit step")
}

func (z *ZapLog) Replace(at core.Position, old, new core.GridCell) {
	z.log.Debug("replace cell",
		zap.Uint8("x", at.X), zap.Uint8("y", at.Y),
		zap.Uint8("old", byte(old)), zap.Uint8("new", byte(new)))
}

func (z *ZapLog) Pop(old core.StackCell) {
	z.log.Debug("pop", zap.Int32("value", int32(old)))
}

func (z *ZapLog) PopBottom() {
	z.log.Debug("pop at empty stack")
}

func (z *ZapLog) Push(new core.StackCell) {
	z.log.Debug("push", zap.Int32("value", int32(new)))
}

func (z *ZapLog) EnterQuote() {
	z.log.Debug("enter quote mode")
}

func (z *ZapLog) ExitQuote() {
	z.log.Debug("exit quote mode")
}
