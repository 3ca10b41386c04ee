// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Chart  ChartConfig  `toml:"chart"`
	Export ExportConfig `toml:"export"`
	Log    LogConfig    `toml:"log"`
}

// ChartConfig maps interactive chart settings.
type ChartConfig struct {
	Mode     *string  `toml:"mode"`
	Duration *float64 `toml:"duration"`
	FPS      *int     `toml:"fps"`
	Height   *int     `toml:"height"`
	Dataset  *string  `toml:"dataset"`
	NoColor  *bool    `toml:"no-color"`
}

// ExportConfig maps image export settings.
type ExportConfig struct {
	Format *string `toml:"format"`
	Width  *int    `toml:"width"`
	Height *int    `toml:"height"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
