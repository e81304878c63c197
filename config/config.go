// Package config loads and saves the brookshear CLI's persistent settings
// as TOML, following the layout conventions of the host OS.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the settings the brookshear CLI reads before assembling or
// running a program.
type Config struct {
	// Assemble controls front-end/encoder behavior.
	Assemble struct {
		// FailFast is stored in and loaded from the file but not read
		// by the assembler, which stops at the first fatal error
		// whatever its value.
		FailFast bool `toml:"fail_fast"`
	} `toml:"assemble"`

	// Run controls emulator execution.
	Run struct {
		MaxSteps   uint64 `toml:"max_steps"`
		Trace      bool   `toml:"trace"`
		DumpOnHalt bool   `toml:"dump_on_halt"`
	} `toml:"run"`

	// Display controls how register/memory dumps are formatted.
	Display struct {
		BytesPerLine int    `toml:"bytes_per_line"`
		NumberFormat string `toml:"number_format"` // hex, dec
	} `toml:"display"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Assemble.FailFast = true
	cfg.Run.MaxSteps = 1_000_000
	cfg.Run.Trace = false
	cfg.Run.DumpOnHalt = true
	cfg.Display.BytesPerLine = 16
	cfg.Display.NumberFormat = "hex"
	return cfg
}

// Path returns the platform-specific config file path.
func Path() string {
	var dir string
	switch runtime.GOOS {
	case "windows":
		dir = os.Getenv("APPDATA")
		if dir == "" {
			dir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		dir = filepath.Join(dir, "brookshear")
	case "darwin", "linux":
		home, err := os.UserHomeDir()
		if err != nil {
			return "brookshear.toml"
		}
		dir = filepath.Join(home, ".config", "brookshear")
	default:
		return "brookshear.toml"
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "brookshear.toml"
	}
	return filepath.Join(dir, "brookshear.toml")
}

// Load reads the default config file, falling back to DefaultConfig when it
// does not exist.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads a config file at path, falling back to DefaultConfig when
// it does not exist.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes c to path as TOML.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
