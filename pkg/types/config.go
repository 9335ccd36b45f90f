package types

import (
	"errors"
	"fmt"
	"slices"
)

// BackendSQLite is the embedded SQLite backend over JSONL files, the only
// backend daybook ships.
const BackendSQLite = "sqlite"

// DefaultDataDir is where a backend keeps its files when Config.DataDir is
// empty.
const DefaultDataDir = "."

var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

var backends = []string{BackendSQLite}

// Backends lists the backend names Validate accepts.
func Backends() []string { return slices.Clone(backends) }

// Config is the backend configuration shared by the storage packages and
// the CLI. It selects a backend and where it keeps its data, mirrors the
// backend and data_dir keys of config.yaml, and is passed to Backend.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Validate reports ErrBackendEmpty or ErrBackendUnknown. An empty DataDir
// is valid; see WithDefaults.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !slices.Contains(backends, c.Backend) {
		return fmt.Errorf("%w %q (supported: %v)", ErrBackendUnknown, c.Backend, backends)
	}
	return nil
}

// WithDefaults returns a copy with DataDir set to DefaultDataDir when empty.
func (c Config) WithDefaults() Config {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	return c
}
