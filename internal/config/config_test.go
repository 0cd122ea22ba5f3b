package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/agbru/fracalc/internal/errors"
)

func TestParseConfig_Terms(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []Term
	}{
		{"single term", []string{"1", "2"}, []Term{{1, 2}}},
		{"two terms", []string{"1", "3", "2", "3"}, []Term{{1, 3}, {2, 3}}},
		{"negative values", []string{"-1", "2", "3", "-4"}, []Term{{-1, 2}, {3, -4}}},
		{"flags before terms", []string{"--width", "32", "5", "7"}, []Term{{5, 7}}},
		{"zero denominator is accepted", []string{"1", "0"}, []Term{{1, 0}}},
		{"leading negative after value flag", []string{"--workers", "2", "-3", "4"}, []Term{{-3, 4}}},
		{"explicit terminator", []string{"-q", "--", "-5", "6"}, []Term{{-5, 6}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig("fracalc", tt.args, io.Discard)
			if err != nil {
				t.Fatalf("ParseConfig(%v) unexpected error: %v", tt.args, err)
			}
			if diff := cmp.Diff(tt.want, cfg.Terms); diff != "" {
				t.Errorf("terms mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTerminateFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Int("width", 0, "")
	fs.Bool("q", false, "")

	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"-1", "2"}, []string{"--", "-1", "2"}},
		{[]string{"-q", "-1", "2"}, []string{"-q", "--", "-1", "2"}},
		{[]string{"--width", "8", "1", "2"}, []string{"--width", "8", "--", "1", "2"}},
		{[]string{"--width=8", "-1", "2"}, []string{"--width=8", "--", "-1", "2"}},
		{[]string{"--", "-1", "2"}, []string{"--", "-1", "2"}},
		{[]string{"x", "-1"}, []string{"x", "-1"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, terminateFlags(fs, tt.args)); diff != "" {
			t.Errorf("terminateFlags(%v) mismatch (-want +got):\n%s", tt.args, diff)
		}
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("fracalc", []string{"1", "2"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := AppConfig{
		Terms:     []Term{{1, 2}},
		Width:     EstimateNativeWidth(),
		Timeout:   DefaultTimeout,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"odd argument count", []string{"1", "2", "3"}, "pairs"},
		{"non-integer numerator", []string{"x", "2"}, "invalid numerator"},
		{"non-integer denominator", []string{"1", "1/2"}, "invalid denominator"},
		{"out of range", []string{"99999999999999999999", "1"}, "invalid numerator"},
		{"unsupported width", []string{"--width", "12", "1", "2"}, "width"},
		{"no terms", []string{}, "terms"},
		{"negative workers", []string{"--workers", "-1", "1", "2"}, "workers"},
		{"quiet and verbose", []string{"-q", "-v", "1", "2"}, "quiet"},
		{"unknown log format", []string{"--log-format", "xml", "1", "2"}, "log-format"},
		{"unknown flag", []string{"--bogus", "1", "2"}, "bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("fracalc", tt.args, io.Discard)
			if err == nil {
				t.Fatalf("ParseConfig(%v) expected error", tt.args)
			}
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected ConfigError, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q should mention %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	var buf strings.Builder
	_, err := ParseConfig("fracalc", []string{"--help"}, &buf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(buf.String(), "Usage: fracalc") {
		t.Errorf("usage output missing, got: %s", buf.String())
	}
}

func TestParseConfig_InteractiveWithoutTerms(t *testing.T) {
	for _, args := range [][]string{{"-i"}, {"--tui"}} {
		if _, err := ParseConfig("fracalc", args, io.Discard); err != nil {
			t.Errorf("ParseConfig(%v) unexpected error: %v", args, err)
		}
	}
	if _, err := ParseConfig("fracalc", []string{"-i", "--tui"}, io.Discard); err == nil {
		t.Error("interactive and tui together should be rejected")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"WIDTH", "16")
	t.Setenv(EnvPrefix+"WORKERS", "3")
	t.Setenv(EnvPrefix+"TIMEOUT", "2s")
	t.Setenv(EnvPrefix+"VERBOSE", "yes")
	t.Setenv(EnvPrefix+"OUTPUT", "env.txt")

	cfg, err := ParseConfig("fracalc", []string{"--width", "32", "1", "2"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Width != 32 {
		t.Errorf("flag should win over env: Width = %d, want 32", cfg.Width)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", cfg.Timeout)
	}
	if !cfg.Verbose {
		t.Error("Verbose should be enabled by env")
	}
	if cfg.OutputFile != "env.txt" {
		t.Errorf("OutputFile = %q, want env.txt", cfg.OutputFile)
	}
}

func TestApplyEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	t.Setenv(EnvPrefix+"WORKERS", "many")
	t.Setenv(EnvPrefix+"QUIET", "perhaps")

	cfg, err := ParseConfig("fracalc", []string{"1", "2"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workers != 0 || cfg.Quiet {
		t.Errorf("invalid env values should be ignored, got Workers=%d Quiet=%v", cfg.Workers, cfg.Quiet)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fracalc.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseConfig_File(t *testing.T) {
	path := writeConfigFile(t, `
width = 16
workers = 2
timeout = "5s"
verbose = true
output = "file.txt"
log_level = "debug"

[[terms]]
numerator = 1
denominator = 3

[[terms]]
numerator = -2
denominator = 3
`)

	t.Setenv(EnvPrefix+"OUTPUT", "env.txt")

	cfg, err := ParseConfig("fracalc", []string{"--config", path, "--workers", "4"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := AppConfig{
		Terms:      []Term{{1, 3}, {-2, 3}},
		Width:      16,
		Workers:    4,
		Timeout:    5 * time.Second,
		Verbose:    true,
		OutputFile: "env.txt",
		ConfigFile: path,
		LogLevel:   "debug",
		LogFormat:  DefaultLogFormat,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("file config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfig_FileModes(t *testing.T) {
	tests := []struct {
		name            string
		content         string
		args            []string
		wantInteractive bool
		wantTUI         bool
		wantFormat      string
	}{
		{"interactive from file", "interactive = true", nil, true, false, DefaultLogFormat},
		{"tui from file", "tui = true\nlog_format = \"json\"", nil, false, true, "json"},
		{"flag overrides file", "interactive = true", []string{"-i=false", "1", "2"}, false, false, DefaultLogFormat},
		{"flag format wins", "tui = true\nlog_format = \"json\"", []string{"--log-format", "console"}, false, true, "console"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			args := append([]string{"--config", path}, tt.args...)

			cfg, err := ParseConfig("fracalc", args, io.Discard)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Interactive != tt.wantInteractive {
				t.Errorf("Interactive = %v, want %v", cfg.Interactive, tt.wantInteractive)
			}
			if cfg.TUI != tt.wantTUI {
				t.Errorf("TUI = %v, want %v", cfg.TUI, tt.wantTUI)
			}
			if cfg.LogFormat != tt.wantFormat {
				t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, tt.wantFormat)
			}
		})
	}
}

func TestApplyEnvOverrides_Modes(t *testing.T) {
	path := writeConfigFile(t, "log_format = \"console\"")
	t.Setenv(EnvPrefix+"TUI", "true")
	t.Setenv(EnvPrefix+"LOG_FORMAT", "json")

	cfg, err := ParseConfig("fracalc", []string{"--config", path}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.TUI || cfg.LogFormat != "json" {
		t.Errorf("env should win over file, got TUI=%v LogFormat=%q", cfg.TUI, cfg.LogFormat)
	}
}

func TestParseConfig_FileTermsYieldToArgs(t *testing.T) {
	path := writeConfigFile(t, "[[terms]]\nnumerator = 9\ndenominator = 9\n")

	cfg, err := ParseConfig("fracalc", []string{"--config", path, "1", "4"}, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]Term{{1, 4}}, cfg.Terms); diff != "" {
		t.Errorf("terms mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", "width = = 3"},
		{"wrong type", `width = "wide"`},
		{"bad timeout", `timeout = "soon"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfigFile(t, tt.content))
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected ConfigError, got %v", err)
			}
		})
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file should be an error")
	}
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := AppConfig{Width: 7, Workers: -2, Timeout: 0}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, field := range []string{`"width"`, `"workers"`, `"timeout"`, `"terms"`} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("aggregated error should mention %s, got: %v", field, err)
		}
	}
	var valErr apperrors.ValidationError
	if !errors.As(err, &valErr) {
		t.Error("errors.As should find a ValidationError in the aggregate")
	}
}

func TestApplyDefaultWidth(t *testing.T) {
	t.Parallel()
	if got := ApplyDefaultWidth(AppConfig{}).Width; got != EstimateNativeWidth() {
		t.Errorf("zero width should become native width, got %d", got)
	}
	if got := ApplyDefaultWidth(AppConfig{Width: 8}).Width; got != 8 {
		t.Errorf("explicit width should be preserved, got %d", got)
	}
}
