// Package cmd wires the cobra CLI surface: `bft run <path>` executes a
// program to completion against real stdin/stdout, `bft debug <path>`
// opens the interactive tick-driven debugger. Screen drawing, layout, and
// the tick event loop itself live outside this module's scope (see
// spec.md §1); this package only wires the interfaces they consume.
package cmd

import (
	"github.com/spf13/cobra"
)

// Execute builds and runs the root command against os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bft",
		Short: "bft is an interpreter and debugger for the Befunge-93 stack language",
		// SilenceErrors suppresses cobra's own "Error: ..." printing so
		// main() prints the returned error exactly once (spec.md §7:
		// `run` must "print a concise message and exit" on error).
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newDebugCmd())
	return root
}
