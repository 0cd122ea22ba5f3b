// Package config defines the application configuration and its sources:
// command-line flags, FRACALC_ environment variables and an optional TOML
// file, resolved in that order of priority.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"

	apperrors "github.com/agbru/fracalc/internal/errors"
)

const (
	// EnvPrefix is prepended to every environment variable name.
	EnvPrefix = "FRACALC_"
	// DefaultTimeout bounds a single evaluation.
	DefaultTimeout = 30 * time.Second
	// DefaultLogLevel keeps informational logs out of normal output.
	DefaultLogLevel = "warn"
	// DefaultLogFormat renders diagnostic logs for a human reader.
	DefaultLogFormat = "console"
)

// SupportedWidths lists the integer bit sizes an evaluation can run at.
var SupportedWidths = []int{8, 16, 32, 64}

// Term is one raw numerator/denominator pair supplied by the user.
type Term struct {
	Numerator   int64 `toml:"numerator"`
	Denominator int64 `toml:"denominator"`
}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Terms are the fractions to sum, in input order.
	Terms []Term
	// Width is the bit size of the integers used for the computation.
	// Zero selects the platform default (see ApplyDefaultWidth).
	Width int
	// Workers bounds the number of goroutines used by the summation.
	// Zero selects one worker per CPU.
	Workers int
	// Timeout is the maximum duration of an evaluation.
	Timeout time.Duration
	// Quiet prints only the resulting fraction.
	Quiet bool
	// Verbose adds width and timing details to the output.
	Verbose bool
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// MetricsFile is the path of a Prometheus text file written after the run.
	MetricsFile string
	// ConfigFile is the TOML file the configuration was loaded from, if any.
	ConfigFile string
	// LogLevel is the zerolog level name for diagnostic logs.
	LogLevel string
	// LogFormat selects console or JSON diagnostic log lines.
	LogFormat string
	// Interactive starts the line-oriented REPL.
	Interactive bool
	// TUI starts the full-screen terminal accumulator.
	TUI bool
	// NoColor disables ANSI colors.
	NoColor bool
}

// ParseConfig parses the command-line arguments into an AppConfig, then
// layers the config file and environment variables beneath any flag the
// user set explicitly. Positional arguments are read as integer pairs.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The arguments, without the program name.
//   - errorWriter: Destination for usage and flag errors.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when help was requested, a ConfigError otherwise.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags] numerator denominator [numerator denominator ...]\n\n", programName)
		fmt.Fprintf(errorWriter, "Sums the given fractions and prints the result in lowest terms.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	config := AppConfig{}
	fs.IntVar(&config.Width, "width", 0, "Integer width in bits for the computation (8, 16, 32, 64).")
	fs.IntVar(&config.Workers, "workers", 0, "Maximum goroutines used to sum the terms (0 = one per CPU).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of an evaluation.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the resulting fraction.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Show width and timing details.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run.")
	fs.StringVar(&config.ConfigFile, "config", "", "Load defaults from this TOML file.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostic log level (debug, info, warn, error).")
	fs.StringVar(&config.LogFormat, "log-format", DefaultLogFormat, "Diagnostic log format (console, json).")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start the interactive REPL.")
	fs.BoolVar(&config.Interactive, "i", false, "Shorthand for --interactive.")
	fs.BoolVar(&config.TUI, "tui", false, "Start the terminal UI accumulator.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")

	if err := fs.Parse(terminateFlags(fs, args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}

	terms, err := parseTerms(fs.Args())
	if err != nil {
		return AppConfig{}, err
	}
	config.Terms = terms

	if config.ConfigFile != "" {
		fileCfg, err := LoadFile(config.ConfigFile)
		if err != nil {
			return AppConfig{}, err
		}
		applyFileConfig(&config, fileCfg, fs)
	}
	applyEnvOverrides(&config, fs)
	config = ApplyDefaultWidth(config)

	if err := config.Validate(); err != nil {
		return AppConfig{}, apperrors.NewConfigError("invalid configuration: %v", err)
	}
	return config, nil
}

// terminateFlags inserts "--" before the first integer positional argument
// so that a negative numerator is not taken for a flag. Values of non-boolean
// flags are skipped.
func terminateFlags(fs *flag.FlagSet, args []string) []string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return args
		}
		if _, err := strconv.ParseInt(arg, 10, 64); err == nil {
			out := make([]string, 0, len(args)+1)
			out = append(out, args[:i]...)
			out = append(out, "--")
			return append(out, args[i:]...)
		}
		if !strings.HasPrefix(arg, "-") {
			return args
		}
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		if f := fs.Lookup(name); f != nil && !isBoolFlag(f) {
			i++
		}
	}
	return args
}

func isBoolFlag(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// parseTerms reads positional arguments as numerator/denominator pairs.
func parseTerms(args []string) ([]Term, error) {
	if len(args)%2 != 0 {
		return nil, apperrors.NewConfigError("expected numerator/denominator pairs, got %d arguments", len(args))
	}
	terms := make([]Term, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		n, err := strconv.ParseInt(args[i], 10, 64)
		if err != nil {
			return nil, apperrors.NewConfigError("invalid numerator %q: %v", args[i], errors.Unwrap(err))
		}
		d, err := strconv.ParseInt(args[i+1], 10, 64)
		if err != nil {
			return nil, apperrors.NewConfigError("invalid denominator %q: %v", args[i+1], errors.Unwrap(err))
		}
		terms = append(terms, Term{Numerator: n, Denominator: d})
	}
	return terms, nil
}

// Validate checks the configuration and reports every problem at once.
// Zero denominators are not rejected here: they are arithmetic errors and
// surface from the evaluation with their own exit code.
func (c AppConfig) Validate() error {
	var err error
	if !isSupportedWidth(c.Width) {
		err = multierr.Append(err, apperrors.ValidationError{
			Field:   "width",
			Message: fmt.Sprintf("unsupported width %d, expected one of %v", c.Width, SupportedWidths),
		})
	}
	if c.Workers < 0 {
		err = multierr.Append(err, apperrors.ValidationError{Field: "workers", Message: "must not be negative"})
	}
	if c.Timeout <= 0 {
		err = multierr.Append(err, apperrors.ValidationError{Field: "timeout", Message: "must be positive"})
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		err = multierr.Append(err, apperrors.ValidationError{
			Field:   "log-format",
			Message: fmt.Sprintf("unsupported format %q, expected console or json", c.LogFormat),
		})
	}
	if c.Quiet && c.Verbose {
		err = multierr.Append(err, apperrors.ValidationError{Field: "quiet", Message: "cannot be combined with verbose"})
	}
	if c.Interactive && c.TUI {
		err = multierr.Append(err, apperrors.ValidationError{Field: "tui", Message: "cannot be combined with interactive"})
	}
	if len(c.Terms) == 0 && !c.Interactive && !c.TUI {
		err = multierr.Append(err, apperrors.ValidationError{Field: "terms", Message: "at least one numerator/denominator pair is required"})
	}
	return err
}

func isSupportedWidth(w int) bool {
	for _, s := range SupportedWidths {
		if s == w {
			return true
		}
	}
	return false
}
