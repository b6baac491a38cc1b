// Package buildinfo constructs the process-wide zap logger shared by
// both CLI subcommands. `run` logs warnings and above to stderr only;
// `debug` additionally opens a session log file under ~/.bft/logs so
// that stderr stays free for the TUI's raw-mode screen.
package buildinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logDir returns ~/.bft/logs, creating it if necessary.
func logDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	dir := filepath.Join(home, ".bft", "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating log directory: %w", err)
	}
	return dir, nil
}

// sessionLogPath picks bft_log_<YY-MM-DD-HH-SS>.txt under dir, appending
// a -(n) suffix on collision so two sessions started within the same
// second never clobber each other's log.
func sessionLogPath(dir string, now time.Time) string {
	stamp := now.Format("06-01-02-15-05")
	base := fmt.Sprintf("bft_log_%s", stamp)
	candidate := filepath.Join(dir, base+".txt")
	for n := 1; ; n++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-(%d).txt", base, n))
	}
}

// NewRunLogger builds the logger for the `run` subcommand: stderr only,
// Warn level and above, since `run`'s stdout/stderr are the program's own
// I/O streams and should stay uncluttered below that level.
func NewRunLogger(level zapcore.Level) (*zap.Logger, error) {
	if level < zap.WarnLevel {
		level = zap.WarnLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

// NewDebugLogger builds the logger for the `debug` subcommand: it always
// opens a session log file (the TUI owns the terminal, so stderr can't be
// used for live diagnostics) tagged with the session's uuid for
// correlation across concurrent sessions.
func NewDebugLogger(level zapcore.Level, sessionID uuid.UUID) (*zap.Logger, error) {
	dir, err := logDir()
	if err != nil {
		return nil, err
	}
	path := sessionLogPath(dir, time.Now())

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.InitialFields = map[string]interface{}{"session": sessionID.String()}

	return cfg.Build()
}
