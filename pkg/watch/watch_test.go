package watch_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/esoterra/bft/pkg/watch"
)

func TestWatcherEmitsReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "program.bf")
	require.NoError(t, os.WriteFile(path, []byte("@"), 0o644))

	w, err := watch.New(path, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("1+@"), 0o644))

	select {
	case ev := <-w.Events():
		require.Equal(t, watch.Reload, ev.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload event")
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "program.bf")
	require.NoError(t, os.WriteFile(path, []byte("@"), 0o644))
	other := filepath.Join(dir, "other.txt")

	w, err := watch.New(path, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(other, []byte("noise"), 0o644))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event for unrelated file: %+v", ev)
	case <-time.After(300 * time.Millisecond):
		// expected: no event observed
	}
}
