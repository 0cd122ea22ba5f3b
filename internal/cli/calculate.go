package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fracalc/internal/config"
	"github.com/agbru/fracalc/internal/ui"
)

// PrintExecutionConfig displays the evaluation settings before a verbose run.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Summing %s%d%s terms at %s%d%s bits with a timeout of %s%s%s.\n",
		ui.ColorPrimary(), len(cfg.Terms), ui.ColorReset(),
		ui.ColorPrimary(), cfg.Width, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s workers, Go %s%s%s.\n",
		ui.ColorSecondary(), workers, ui.ColorReset(), ui.ColorSecondary(), runtime.Version(), ui.ColorReset())
	if cfg.ConfigFile != "" {
		fmt.Fprintf(out, "Config file: %s\n", cfg.ConfigFile)
	}
	fmt.Fprintf(out, "\n--- Result ---\n")
}
