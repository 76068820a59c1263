// Package config loads the optional smcctl configuration file.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds tool-level settings. Everything here has a sane default;
// the file only overrides what it defines.
type Config struct {
	LogLevel     string
	LogTimestamp bool
	NoColor      bool

	// Raw suppresses the decoded-value suffix when rendering keys.
	Raw bool
}

type fileConfig struct {
	LogLevel     string `toml:"log_level"`
	LogTimestamp bool   `toml:"log_timestamp"`
	NoColor      bool   `toml:"no_color"`
	Raw          bool   `toml:"raw"`
}

func Default() Config {
	return Config{
		LogLevel:     "warn",
		LogTimestamp: true,
	}
}

// Load reads path and overlays it on the defaults. Fields absent from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("log_level") {
		lvl := strings.TrimSpace(raw.LogLevel)
		if lvl != "" {
			cfg.LogLevel = lvl
		}
	}
	if meta.IsDefined("log_timestamp") {
		cfg.LogTimestamp = raw.LogTimestamp
	}
	if meta.IsDefined("no_color") {
		cfg.NoColor = raw.NoColor
	}
	if meta.IsDefined("raw") {
		cfg.Raw = raw.Raw
	}

	return cfg, nil
}
