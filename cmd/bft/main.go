// Command bft is the CLI entry point: `bft run <path>` and `bft debug <path>`.
package main

import (
	"fmt"
	"os"

	"github.com/esoterra/bft/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
