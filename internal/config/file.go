package config

import (
	"flag"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	apperrors "github.com/agbru/fracalc/internal/errors"
)

// FileConfig mirrors AppConfig for TOML config files. Pointer fields tell
// "absent" apart from an explicit zero or false.
type FileConfig struct {
	Width       *int    `toml:"width"`
	Workers     *int    `toml:"workers"`
	Timeout     *string `toml:"timeout"`
	Quiet       *bool   `toml:"quiet"`
	Verbose     *bool   `toml:"verbose"`
	Output      *string `toml:"output"`
	MetricsFile *string `toml:"metrics_file"`
	LogLevel    *string `toml:"log_level"`
	LogFormat   *string `toml:"log_format"`
	Interactive *bool   `toml:"interactive"`
	TUI         *bool   `toml:"tui"`
	NoColor     *bool   `toml:"no_color"`
	Terms       []Term  `toml:"terms"`
}

// LoadFile reads and decodes a TOML config file.
func LoadFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, apperrors.NewConfigError("cannot read config file: %v", err)
	}

	var fileConfig FileConfig
	if err := toml.Unmarshal(data, &fileConfig); err != nil {
		return FileConfig{}, apperrors.NewConfigError("invalid config file %s: %v", path, err)
	}
	if fileConfig.Timeout != nil {
		if _, err := time.ParseDuration(*fileConfig.Timeout); err != nil {
			return FileConfig{}, apperrors.NewConfigError("invalid timeout %q in %s: %v", *fileConfig.Timeout, path, err)
		}
	}
	return fileConfig, nil
}

// applyFileConfig copies file values into config for every setting the
// command line left untouched. File terms are used only when no positional
// terms were given.
func applyFileConfig(config *AppConfig, fc FileConfig, fs *flag.FlagSet) {
	if fc.Width != nil && !isFlagSet(fs, "width") {
		config.Width = *fc.Width
	}
	if fc.Workers != nil && !isFlagSet(fs, "workers") {
		config.Workers = *fc.Workers
	}
	if fc.Timeout != nil && !isFlagSet(fs, "timeout") {
		// Already validated by LoadFile.
		config.Timeout, _ = time.ParseDuration(*fc.Timeout)
	}
	if fc.Quiet != nil && !isFlagSetAny(fs, "quiet", "q") {
		config.Quiet = *fc.Quiet
	}
	if fc.Verbose != nil && !isFlagSetAny(fs, "verbose", "v") {
		config.Verbose = *fc.Verbose
	}
	if fc.Output != nil && !isFlagSetAny(fs, "output", "o") {
		config.OutputFile = *fc.Output
	}
	if fc.MetricsFile != nil && !isFlagSet(fs, "metrics-file") {
		config.MetricsFile = *fc.MetricsFile
	}
	if fc.LogLevel != nil && !isFlagSet(fs, "log-level") {
		config.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil && !isFlagSet(fs, "log-format") {
		config.LogFormat = *fc.LogFormat
	}
	if fc.Interactive != nil && !isFlagSetAny(fs, "interactive", "i") {
		config.Interactive = *fc.Interactive
	}
	if fc.TUI != nil && !isFlagSet(fs, "tui") {
		config.TUI = *fc.TUI
	}
	if fc.NoColor != nil && !isFlagSet(fs, "no-color") {
		config.NoColor = *fc.NoColor
	}
	if len(config.Terms) == 0 && len(fc.Terms) > 0 {
		config.Terms = append([]Term(nil), fc.Terms...)
	}
}
