// Package main provides the CLI entrypoint for lookahead.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/lookahead/internal/anim"
	"github.com/verte-zerg/lookahead/internal/benchchart"
	"github.com/verte-zerg/lookahead/internal/chart"
	"github.com/verte-zerg/lookahead/internal/chartui"
	"github.com/verte-zerg/lookahead/internal/config"
	"github.com/verte-zerg/lookahead/internal/dataset"
	"github.com/verte-zerg/lookahead/internal/export"
	"github.com/verte-zerg/lookahead/internal/logging"
	"github.com/verte-zerg/lookahead/internal/model"
)

const (
	defaultMode         = "decay"
	defaultHeight       = 12
	defaultLogLevel     = "info"
	defaultExportFormat = export.FormatPNG
	maxFPS              = 240
	maxDurationSec      = 60.0
	minHeight           = 3
)

var defaultDurationSec = anim.DefaultDuration.Seconds()

var (
	chartMode     string
	chartDuration float64
	chartFPS      int
	chartHeight   int

	datasetPath string
	noColor     bool
	logLevel    string
	logFile     string

	showMode     string
	showProgress float64
	showWidth    int
	showHeight   int

	exportFormat   string
	exportOut      string
	exportMode     string
	exportProgress float64
	exportWidth    int
	exportHeight   int
	exportFrames   int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lookahead",
		Short:         "Look-Ahead-Bench benchmark chart",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runChartCmd,
	}

	rootCmd.Flags().StringVar(&chartMode, "mode", defaultMode, "initial view mode (decay or collapse)")
	rootCmd.Flags().Float64Var(&chartDuration, "duration", defaultDurationSec, "mode change animation in seconds (0 switches instantly)")
	rootCmd.Flags().IntVar(&chartFPS, "fps", anim.DefaultFPS, "animation frames per second")
	rootCmd.Flags().IntVar(&chartHeight, "height", defaultHeight, "chart height in rows")

	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "TOML dataset file (default: built-in results)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colour output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append logs to this file")

	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newDatasetCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runChartCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &chartMode, fileCfg.Chart.Mode)
	applyFloatConfig(cmd, "duration", &chartDuration, fileCfg.Chart.Duration)
	applyIntConfig(cmd, "fps", &chartFPS, fileCfg.Chart.FPS)
	applyIntConfig(cmd, "height", &chartHeight, fileCfg.Chart.Height)
	applySharedConfig(cmd, fileCfg)

	mode, err := model.ParseViewMode(chartMode)
	if err != nil {
		return fmt.Errorf("invalid --mode: %w", err)
	}
	duration, err := durationFromSeconds(chartDuration)
	if err != nil {
		return err
	}
	cfg := model.Config{
		Mode:        mode,
		Duration:    duration,
		FPS:         chartFPS,
		Height:      chartHeight,
		DatasetPath: datasetPath,
		NoColor:     noColor,
		LogLevel:    logLevel,
		LogFile:     logFile,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	// The UI owns the terminal; logs go to the file or nowhere.
	log, closeLog, err := logging.Setup(cfg.LogLevel, cfg.LogFile, nil)
	if err != nil {
		return err
	}
	defer closeLogger(closeLog)

	records, err := loadRecords(cfg.DatasetPath, log)
	if err != nil {
		return err
	}
	c, err := benchchart.New(records, benchchart.Options{Duration: cfg.Duration, FPS: cfg.FPS})
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"mode":     cfg.Mode,
		"duration": cfg.Duration,
		"fps":      cfg.FPS,
	}).Info("starting chart")

	ui := chartui.NewModel(c, cfg, log)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print one chart snapshot",
		Args:  cobra.NoArgs,
		RunE:  runShowCmd,
	}
	cmd.Flags().StringVar(&showMode, "mode", defaultMode, "view mode (decay or collapse)")
	cmd.Flags().Float64Var(&showProgress, "progress", 0, "progress between P1 (0) and P2 (1) (default: the mode's target)")
	cmd.Flags().IntVar(&showWidth, "width", 0, "output width (default: terminal width)")
	cmd.Flags().IntVar(&showHeight, "height", defaultHeight, "chart height in rows")
	return cmd
}

func runShowCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &showMode, fileCfg.Chart.Mode)
	applyIntConfig(cmd, "height", &showHeight, fileCfg.Chart.Height)
	applySharedConfig(cmd, fileCfg)

	log, closeLog, err := cliLogger()
	if err != nil {
		return err
	}
	defer closeLogger(closeLog)

	mode, err := model.ParseViewMode(showMode)
	if err != nil {
		return fmt.Errorf("invalid --mode: %w", err)
	}
	progress := showProgress
	if !cmd.Flags().Changed("progress") {
		progress = mode.Target()
	}
	cfg := model.ShowConfig{Mode: mode, Progress: progress, Width: showWidth, Height: showHeight}
	if err := validateShowConfig(cfg); err != nil {
		return err
	}

	records, err := loadRecords(datasetPath, log)
	if err != nil {
		return err
	}
	return writeSnapshot(cmd.OutOrStdout(), records, cfg, !noColor && chart.ShouldUseColor(cmd.OutOrStdout(), false))
}

func writeSnapshot(w io.Writer, records []model.BenchmarkRecord, cfg model.ShowConfig, useColor bool) error {
	snap := benchchart.Layout(records, cfg.Mode, cfg.Progress)
	if _, err := fmt.Fprintf(w, "%s (progress %.0f%%)\n", cfg.Mode.Label(), cfg.Progress*100); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if cfg.Mode == model.ModeCollapse {
		if _, err := fmt.Fprintf(w, "%s  →  %s\n", snap.Timeline[0], snap.Timeline[1]); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	opts := chart.Options{Width: cfg.Width, Height: cfg.Height, Color: useColor}
	if err := chart.Render(w, snap.Bars, snap.Axis, opts); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if _, err := fmt.Fprintln(w, chart.Legend(useColor)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, r := range records {
		detail := model.Detail{
			Label:   r.Name,
			Mode:    cfg.Mode,
			Decay:   r.Decay,
			AlphaP1: r.AlphaP1,
			AlphaP2: r.AlphaP2,
			IsPiT:   r.IsPiT,
		}
		if _, err := fmt.Fprintln(w, strings.Join(chart.DetailLines(detail), "  ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newDatasetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dataset",
		Short: "Print and validate the benchmark dataset",
		Args:  cobra.NoArgs,
		RunE:  runDatasetCmd,
	}
}

func runDatasetCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applySharedConfig(cmd, fileCfg)

	log, closeLog, err := cliLogger()
	if err != nil {
		return err
	}
	defer closeLogger(closeLog)

	records, err := loadRecords(datasetPath, log)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := chart.RenderTable(out, records); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintf(out, "\n%d records, decay = alpha_p2 - alpha_p1 holds for all\n", len(records)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the chart to PNG or SVG",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportFormat, "format", defaultExportFormat, "image format (png or svg)")
	cmd.Flags().StringVar(&exportOut, "out", "", "output file, or directory with --frames (default: lookahead.<format> or frames/)")
	cmd.Flags().StringVar(&exportMode, "mode", defaultMode, "view mode (decay or collapse)")
	cmd.Flags().Float64Var(&exportProgress, "progress", 0, "progress between P1 (0) and P2 (1) (default: the mode's target)")
	cmd.Flags().IntVar(&exportWidth, "width", export.DefaultWidth, "image width in pixels")
	cmd.Flags().IntVar(&exportHeight, "height", export.DefaultHeight, "image height in pixels")
	cmd.Flags().IntVar(&exportFrames, "frames", 0, "write N frames of the decay to collapse transition")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "format", &exportFormat, fileCfg.Export.Format)
	applyIntConfig(cmd, "width", &exportWidth, fileCfg.Export.Width)
	applyIntConfig(cmd, "height", &exportHeight, fileCfg.Export.Height)
	applySharedConfig(cmd, fileCfg)

	log, closeLog, err := cliLogger()
	if err != nil {
		return err
	}
	defer closeLogger(closeLog)

	mode, err := model.ParseViewMode(exportMode)
	if err != nil {
		return fmt.Errorf("invalid --mode: %w", err)
	}
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return fmt.Errorf("invalid --format: %w", err)
	}
	progress := exportProgress
	if !cmd.Flags().Changed("progress") {
		progress = mode.Target()
	}
	cfg := model.ExportConfig{
		Format:   format,
		Out:      exportOut,
		Mode:     mode,
		Progress: progress,
		Width:    exportWidth,
		Height:   exportHeight,
		Frames:   exportFrames,
	}
	if err := validateExportConfig(cfg); err != nil {
		return err
	}

	records, err := loadRecords(datasetPath, log)
	if err != nil {
		return err
	}
	opts := export.Options{Format: cfg.Format, Width: cfg.Width, Height: cfg.Height}

	if cfg.Frames > 0 {
		dir := cfg.Out
		if dir == "" {
			dir = "frames"
		}
		from, to := model.ModeDecay.Target(), model.ModeCollapse.Target()
		paths, err := export.Frames(records, from, to, cfg.Frames, dir, opts)
		if err != nil {
			return fmt.Errorf("failed to export frames: %w", err)
		}
		log.WithFields(logrus.Fields{
			"dir":    dir,
			"frames": len(paths),
			"delay":  export.FrameDelay(len(paths)),
		}).Info("wrote frames")
		return nil
	}

	out := cfg.Out
	if out == "" {
		out = "lookahead." + cfg.Format
	}
	snap := benchchart.Layout(records, cfg.Mode, cfg.Progress)
	if err := export.WriteFile(out, snap, opts); err != nil {
		return fmt.Errorf("failed to export chart: %w", err)
	}
	log.WithFields(logrus.Fields{"path": out, "mode": cfg.Mode}).Info("wrote chart")
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig creates the commented template unless path exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func loadRecords(path string, log logrus.FieldLogger) ([]model.BenchmarkRecord, error) {
	if path == "" {
		return dataset.Default(), nil
	}
	records, err := dataset.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	log.WithFields(logrus.Fields{"path": path, "records": len(records)}).Debug("loaded dataset")
	return records, nil
}

func closeLogger(closeLog func() error) {
	if err := closeLog(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}
}

func cliLogger() (*logrus.Logger, func() error, error) {
	if err := validateLogLevel(logLevel); err != nil {
		return nil, nil, err
	}
	return logging.Setup(logLevel, logFile, os.Stderr)
}
