package main

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/lookahead/internal/anim"
	"github.com/verte-zerg/lookahead/internal/config"
	"github.com/verte-zerg/lookahead/internal/export"
	"github.com/verte-zerg/lookahead/internal/model"
)

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// applySharedConfig fills the persistent flags every command accepts.
func applySharedConfig(cmd *cobra.Command, fileCfg config.FileConfig) {
	applyStringConfig(cmd, "dataset", &datasetPath, fileCfg.Chart.Dataset)
	applyBoolConfig(cmd, "no-color", &noColor, fileCfg.Chart.NoColor)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# lookahead configuration
# Uncomment a value to enable it. CLI flags override config values.

[chart]
# mode = %q           # Initial view mode: decay or collapse
# duration = %.1f          # Mode change animation in seconds (0 switches instantly)
# fps = %d                 # Animation frames per second
# height = %d              # Chart height in rows
# dataset = ""             # TOML dataset file (default: built-in results)
# no-color = false         # Disable colour output

[export]
# format = %q           # png or svg
# width = %d             # Image width in pixels
# height = %d             # Image height in pixels

[log]
# level = %q           # debug, info, warn, error
# file = %q
`,
		defaultMode,
		defaultDurationSec,
		anim.DefaultFPS,
		defaultHeight,
		defaultExportFormat,
		export.DefaultWidth,
		export.DefaultHeight,
		defaultLogLevel,
		config.DefaultLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if !cfg.Mode.Valid() {
		return fmt.Errorf("--mode must be decay or collapse")
	}
	if cfg.Duration < 0 {
		return fmt.Errorf("--duration must be >= 0")
	}
	if cfg.FPS <= 0 || cfg.FPS > maxFPS {
		return fmt.Errorf("--fps must be between 1 and %d", maxFPS)
	}
	if cfg.Height < minHeight {
		return fmt.Errorf("--height must be >= %d", minHeight)
	}
	return validateLogLevel(cfg.LogLevel)
}

func validateShowConfig(cfg model.ShowConfig) error {
	if err := validateProgress(cfg.Progress); err != nil {
		return err
	}
	if cfg.Width < 0 {
		return fmt.Errorf("--width must be >= 0")
	}
	if cfg.Height < minHeight {
		return fmt.Errorf("--height must be >= %d", minHeight)
	}
	return nil
}

func validateExportConfig(cfg model.ExportConfig) error {
	if err := validateProgress(cfg.Progress); err != nil {
		return err
	}
	if cfg.Width < export.MinWidth {
		return fmt.Errorf("--width must be >= %d", export.MinWidth)
	}
	if cfg.Height < export.MinHeight {
		return fmt.Errorf("--height must be >= %d", export.MinHeight)
	}
	if cfg.Frames < 0 {
		return fmt.Errorf("--frames must be >= 0")
	}
	return nil
}

func validateProgress(progress float64) error {
	if math.IsNaN(progress) || progress < 0 || progress > 1 {
		return fmt.Errorf("--progress must be between 0 and 1")
	}
	return nil
}

// durationFromSeconds converts the --duration flag, rejecting values that
// are negative, not finite or too large for time.Duration.
func durationFromSeconds(sec float64) (time.Duration, error) {
	if math.IsNaN(sec) || math.IsInf(sec, 0) || sec < 0 || sec > maxDurationSec {
		return 0, fmt.Errorf("--duration must be between 0 and %.0f seconds", maxDurationSec)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

func validateLogLevel(level string) error {
	if _, err := logrus.ParseLevel(level); err != nil {
		return fmt.Errorf("--log-level must be one of debug, info, warn, error")
	}
	return nil
}
