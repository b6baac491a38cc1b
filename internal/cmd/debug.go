package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/esoterra/bft/pkg/buildinfo"
	"github.com/esoterra/bft/pkg/command"
	"github.com/esoterra/bft/pkg/config"
	"github.com/esoterra/bft/pkg/debugger"
	"github.com/esoterra/bft/pkg/watch"
)

func newDebugCmd() *cobra.Command {
	var logLevel string
	var configPath string
	var ticksPerStep uint16

	cmd := &cobra.Command{
		Use:   "debug <path>",
		Short: "open the interactive debugger for a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDebugSession(cmd, args[0], logLevel, configPath, ticksPerStep)
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "debug", "log level for the session log file (debug, info, warn, error)")
	cmd.Flags().StringVar(&configPath, "config", "", "optional YAML session config file")
	cmd.Flags().Uint16Var(&ticksPerStep, "ticks-per-step", 0, "override ticks-per-step (0 keeps the debugger's default)")

	return cmd
}

func parseLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.Set(s); err != nil {
		return zapcore.DebugLevel
	}
	return level
}

// runDebugSession wires together the debugger, its config, a live-reload
// watcher, and a line-oriented command loop. The tick event loop's
// external clock and the TUI's screen drawing are out of this module's
// scope (spec.md §1); this is a minimal, fully-functional driver of the
// same interfaces a richer frontend would use.
func runDebugSession(cmd *cobra.Command, path string, logLevel, configPath string, ticksPerStepFlag uint16) error {
	program, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading program %q: %w", path, err)
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}

	level := parseLevel(logLevel)
	if cfg != nil && cfg.LogLevel != "" {
		level = parseLevel(cfg.LogLevel)
	}

	dbg := debugger.New(program, nil)
	log, err := buildinfo.NewDebugLogger(level, dbg.SessionID)
	if err != nil {
		return fmt.Errorf("initializing session log: %w", err)
	}
	defer log.Sync()
	dbg.SetLogger(log)

	if ticksPerStepFlag > 0 {
		dbg.SetTicksPerStep(ticksPerStepFlag)
	}
	if cfg != nil && cfg.TicksPerStep != nil {
		dbg.SetTicksPerStep(*cfg.TicksPerStep)
	}
	for _, pos := range cfg.Positions() {
		dbg.ToggleBreakpoint(pos)
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		if cols, rows, sizeErr := term.GetSize(int(os.Stdin.Fd())); sizeErr == nil {
			log.Debug("detected terminal size", zap.Int("cols", cols), zap.Int("rows", rows))
		}
	}

	w, err := watch.New(path, log)
	if err != nil {
		log.Warn("file watch unavailable", zap.Error(err))
	} else {
		defer w.Close()
	}

	return driveDebugLoop(cmd.InOrStdin(), cmd.OutOrStdout(), dbg, w, log)
}

// driveDebugLoop is the headless command loop: each line is parsed per
// pkg/command's table and ticks the debugger until that command's effect
// settles. A richer TUI would instead drive Debugger.Tick from its own
// frame clock and feed Command Events from key/mouse input; this loop
// exercises the identical Debugger/command surface without one.
func driveDebugLoop(in io.Reader, out io.Writer, dbg *debugger.Debugger, w *watch.Watcher, log *zap.Logger) error {
	scanner := bufio.NewScanner(in)
	buf := command.NewBuffer()

	for scanner.Scan() {
		if w != nil {
			select {
			case ev := <-w.Events():
				if ev.Kind == watch.Reload {
					fmt.Fprintf(out, "note: %s changed on disk; use 'l %s' to reload\n", ev.Path, ev.Path)
				}
			default:
			}
		}

		// A real TUI would route individual key events to buf as they
		// arrive (InputKey/Left/Right/Backspace/Delete); here each
		// scanned line stands in for that keystroke-by-keystroke input,
		// landing in the same buffer that Enter() tokenizes.
		for _, c := range []byte(scanner.Text()) {
			buf.InputKey(c)
		}

		ev, ok := buf.Enter()
		if !ok {
			continue
		}
		if ev.Err != nil {
			fmt.Fprintln(out, ev.Err)
			continue
		}

		switch ev.Command.Kind {
		case command.Help:
			fmt.Fprintln(out, command.HelpText)
		case command.Step:
			dbg.AddSteps(ev.Command.N)
			pumpUntilSettled(dbg)
			fmt.Fprintf(out, "at %s, stack height %d\n", dbg.CurrentPosition(), dbg.StackHeight())
		case command.Run:
			dbg.StartRunning()
			pumpUntilSettled(dbg)
			fmt.Fprintf(out, "state: %s, at %s\n", dbg.State(), dbg.CurrentPosition())
		case command.Pause:
			dbg.Pause()
		case command.Breakpoint:
			dbg.ToggleBreakpoint(ev.Command.Pos)
			fmt.Fprintf(out, "toggled breakpoint at %s\n", ev.Command.Pos)
		case command.Load:
			program, err := os.ReadFile(ev.Command.Path)
			if err != nil {
				fmt.Fprintf(out, "error: reading program %q: %v\n", ev.Command.Path, err)
				continue
			}
			*dbg = *debugger.New(program, log)
			fmt.Fprintf(out, "loaded %s\n", ev.Command.Path)
		case command.Quit:
			return nil
		}

		if dbg.State() == debugger.Halted {
			fmt.Fprintln(out, "halted")
		}
	}
	return scanner.Err()
}

// pumpUntilSettled drives ticks with no externally-imposed frame rate
// (ticksPerStep throttling still applies within Debugger.Tick) until the
// debugger leaves Stepping/Running, bounding the loop so a runaway
// program can't hang the headless driver forever.
func pumpUntilSettled(dbg *debugger.Debugger) {
	for i := 0; i < 1_000_000; i++ {
		state := dbg.State()
		if state != debugger.Stepping && state != debugger.Running {
			return
		}
		dbg.Tick()
		if state == debugger.Running {
			time.Sleep(time.Microsecond)
		}
	}
}
