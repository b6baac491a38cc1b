package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunProgramTerminatesOnAt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.bf")
	require.NoError(t, os.WriteFile(path, []byte("23+.@"), 0o644))

	err := runProgram(context.Background(), path)
	assert.NoError(t, err)
}

func TestRunProgramReportsInvalidOpcode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.bf")
	require.NoError(t, os.WriteFile(path, []byte("z"), 0o644))

	err := runProgram(context.Background(), path)
	assert.Error(t, err)
}

func TestRunProgramMissingFile(t *testing.T) {
	err := runProgram(context.Background(), "/nonexistent/path.bf")
	assert.Error(t, err)
}

func TestRootCmdRunSurfacesErrorForMain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.bf")
	require.NoError(t, os.WriteFile(path, []byte("z"), 0o644))

	root := newRootCmd()
	root.SetArgs([]string{"run", path})
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))

	err := root.Execute()
	require.Error(t, err, "main() relies on this error to print a message and exit 1")
	assert.Contains(t, err.Error(), "invalid opcode")
}
