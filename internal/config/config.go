// Package config loads dirlist settings from dotenv-style files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultFile is read when present in the working directory.
const DefaultFile = ".dirlist.env"

// Keys recognized in config files.
const (
	KeyWorkers    = "DIRLIST_WORKERS"
	KeyOutput     = "DIRLIST_OUTPUT"
	KeyTimeLayout = "DIRLIST_TIME_LAYOUT"
	KeyUTC        = "DIRLIST_UTC"
	KeyIndex      = "DIRLIST_INDEX"
	KeyRetention  = "DIRLIST_RETENTION"
	KeyVerbose    = "DIRLIST_VERBOSE"
)

// Config holds dirlist settings.
type Config struct {
	// Workers is the size of the attribute-reading pool.
	Workers int

	// OutputDir receives the report and diagnostic files. Empty means the
	// current working directory.
	OutputDir string

	// TimeLayout is the Go layout for report timestamps.
	TimeLayout string

	// UTC pins report timestamps to UTC instead of the local zone.
	UTC bool

	// Index also writes a SQLite snapshot of the inventory.
	Index bool

	// Retention is the number of index snapshots kept (0 = unlimited).
	Retention int

	// Verbose enables debug logging.
	Verbose bool
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Workers:    runtime.NumCPU(),
		TimeLayout: "1/2/06, 3:04 PM",
		Retention:  5,
	}
}

// Load reads the given files over the defaults. Missing files are ignored;
// malformed files and values are errors.
func Load(filenames ...string) (*Config, error) {
	cfg := Default()

	var present []string
	for _, name := range filenames {
		if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		present = append(present, name)
	}
	if len(present) == 0 {
		return cfg, nil
	}

	env, err := godotenv.Read(present...)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cfg.apply(env); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) apply(env map[string]string) error {
	var err error
	if v, ok := env[KeyWorkers]; ok {
		if c.Workers, err = strconv.Atoi(strings.TrimSpace(v)); err != nil || c.Workers < 1 {
			return fmt.Errorf("invalid %s %q: must be a positive integer", KeyWorkers, v)
		}
	}
	if v, ok := env[KeyOutput]; ok {
		c.OutputDir = v
	}
	if v, ok := env[KeyTimeLayout]; ok && v != "" {
		c.TimeLayout = v
	}
	if v, ok := env[KeyUTC]; ok {
		if c.UTC, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", KeyUTC, v, err)
		}
	}
	if v, ok := env[KeyIndex]; ok {
		if c.Index, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", KeyIndex, v, err)
		}
	}
	if v, ok := env[KeyRetention]; ok {
		if c.Retention, err = strconv.Atoi(strings.TrimSpace(v)); err != nil || c.Retention < 0 {
			return fmt.Errorf("invalid %s %q: must be zero or a positive integer", KeyRetention, v)
		}
	}
	if v, ok := env[KeyVerbose]; ok {
		if c.Verbose, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", KeyVerbose, v, err)
		}
	}
	return nil
}
