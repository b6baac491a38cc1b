// Package config loads optional debugger session configuration from a
// YAML file, overriding the debugger's built-in defaults (ticks-per-step,
// log level, and a starting breakpoint set) ahead of a `debug` session.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/esoterra/bft/pkg/core"
)

// BreakpointSpec is a single breakpoint entry in the YAML document.
type BreakpointSpec struct {
	X uint8 `yaml:"x"`
	Y uint8 `yaml:"y"`
}

// Config is the debugger session configuration loadable via `--config`.
// Every field is optional; zero values leave the debugger's own default
// in effect.
type Config struct {
	TicksPerStep *uint16          `yaml:"ticks_per_step,omitempty"`
	LogLevel     string           `yaml:"log_level,omitempty"`
	Breakpoints  []BreakpointSpec `yaml:"breakpoints,omitempty"`
}

// Load parses a YAML config file at path. A missing file is not an
// error from the caller's perspective if it checks
// errors.Is(err, fs.ErrNotExist) itself; Load always reports the
// underlying error, wrapped, so callers can decide.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return &cfg, nil
}

// Positions converts the YAML breakpoint entries into core.Position
// values ready for Debugger.ToggleBreakpoint.
func (c *Config) Positions() []core.Position {
	if c == nil {
		return nil
	}
	positions := make([]core.Position, len(c.Breakpoints))
	for i, b := range c.Breakpoints {
		positions[i] = core.Position{X: b.X, Y: b.Y}
	}
	return positions
}
