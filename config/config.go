// Package config loads the device configuration from a TOML or YAML
// file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/naoina/toml"
	"gopkg.in/yaml.v3"

	"seedhammer.com/recovery/recovery"
)

type Recovery struct {
	Words           int    `toml:"words" yaml:"words"`
	Mode            string `toml:"mode" yaml:"mode"`
	EnforceWordlist bool   `toml:"enforceWordlist" yaml:"enforceWordlist"`
	DryRun          bool   `toml:"dryRun" yaml:"dryRun"`
}

type Store struct {
	Path string `toml:"path" yaml:"path"`
}

type Log struct {
	// Level is one of debug, info, warn and error.
	Level string `toml:"level" yaml:"level"`
	// Path is the prefix of the rotated log files. Empty disables file
	// logging.
	Path       string `toml:"path" yaml:"path"`
	MaxAgeHour int    `toml:"maxAgeHour" yaml:"maxAgeHour"`
	RotateHour int    `toml:"rotateHour" yaml:"rotateHour"`
}

type Serial struct {
	Device string `toml:"device" yaml:"device"`
	Baud   int    `toml:"baud" yaml:"baud"`
}

type Websocket struct {
	Listen string `toml:"listen" yaml:"listen"`
}

type Display struct {
	// DumpDir receives a PNG of every displayed frame when set.
	DumpDir string `toml:"dumpDir" yaml:"dumpDir"`
}

type Config struct {
	Recovery  Recovery  `toml:"recovery" yaml:"recovery"`
	Store     Store     `toml:"store" yaml:"store"`
	Log       Log       `toml:"log" yaml:"log"`
	Serial    Serial    `toml:"serial" yaml:"serial"`
	Websocket Websocket `toml:"websocket" yaml:"websocket"`
	Display   Display   `toml:"display" yaml:"display"`
}

func Default() *Config {
	return &Config{
		Recovery: Recovery{
			Words:           24,
			Mode:            "matrix",
			EnforceWordlist: true,
		},
		Store: Store{Path: "~/.recovery/db"},
		Log: Log{
			Level:      "info",
			MaxAgeHour: 24 * 7,
			RotateHour: 24,
		},
		Serial: Serial{Baud: 115200},
	}
}

// Load reads the file at path over the defaults. The format is chosen
// by the extension. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".toml":
			err = toml.NewDecoder(f).Decode(c)
		case ".yaml", ".yml":
			err = yaml.NewDecoder(f).Decode(c)
		default:
			return nil, fmt.Errorf("config: unknown format %q", ext)
		}
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	c.sanitize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) sanitize() {
	for _, p := range []*string{&c.Store.Path, &c.Log.Path, &c.Display.DumpDir} {
		if strings.HasPrefix(*p, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				*p = filepath.Join(home, (*p)[2:])
			}
		}
	}
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := c.RecoveryConfig(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log level %q", c.Log.Level))
	}
	if c.Log.Path != "" && (c.Log.MaxAgeHour <= 0 || c.Log.RotateHour <= 0) {
		errs = append(errs, errors.New("config: log rotation needs positive maxAgeHour and rotateHour"))
	}
	if c.Serial.Baud < 0 {
		errs = append(errs, fmt.Errorf("config: invalid baud rate %d", c.Serial.Baud))
	}
	return errors.Join(errs...)
}

// RecoveryConfig returns the session configuration.
func (c *Config) RecoveryConfig() (recovery.Config, error) {
	mode, err := recovery.ParseMode(c.Recovery.Mode)
	if err != nil {
		return recovery.Config{}, fmt.Errorf("config: %w", err)
	}
	switch c.Recovery.Words {
	case 12, 18, 24:
	default:
		return recovery.Config{}, fmt.Errorf("config: %w: %d", recovery.ErrInvalidWordCount, c.Recovery.Words)
	}
	return recovery.Config{
		Words:           c.Recovery.Words,
		Mode:            mode,
		EnforceWordlist: c.Recovery.EnforceWordlist,
		DryRun:          c.Recovery.DryRun,
	}, nil
}
