package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/esoterra/bft/pkg/buildinfo"
	"github.com/esoterra/bft/pkg/core"
	"github.com/esoterra/bft/pkg/interpreter"
	"github.com/esoterra/bft/pkg/recorder"
	"github.com/esoterra/bft/pkg/space"
	"github.com/esoterra/bft/pkg/streams"
)

const runMaxBackoff = 500 * time.Millisecond

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <path>",
		Short: "load a program and execute it to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(cmd.Context(), args[0])
		},
	}
	return cmd
}

func runProgram(ctx context.Context, path string) error {
	program, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading program %q: %w", path, err)
	}

	log, err := buildinfo.NewRunLogger(zapcore.WarnLevel)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	spc := space.New(program, func(b byte) core.GridCell { return core.GridCell(b) }, core.DefaultGridCell)
	io := streams.NewStdIO(os.Stdin, os.Stdout)
	interp := interpreter.New(spc, io, recorder.NoOp{}, nil)

	backoff := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		status, err := interp.Step()
		switch status {
		case interpreter.Completed:
			backoff = time.Millisecond
		case interpreter.Waiting:
			time.Sleep(backoff)
			backoff *= 2
			if backoff > runMaxBackoff {
				backoff = runMaxBackoff
			}
		case interpreter.Terminated:
			return nil
		case interpreter.Error:
			return err
		}
	}
}
