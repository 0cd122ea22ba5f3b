// Package cli provides command-line presentation of evaluation results and
// the REPL (Read-Eval-Print Loop) for interactive accumulation.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fracalc/internal/config"
	"github.com/agbru/fracalc/internal/logging"
	"github.com/agbru/fracalc/internal/metrics"
	"github.com/agbru/fracalc/internal/orchestration"
	"github.com/agbru/fracalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Width is the integer bit size of the running total.
	Width int
	// Workers bounds the goroutines used for each re-evaluation.
	Workers int
	// Timeout is the maximum duration for each addition.
	Timeout time.Duration
	// Terms seeds the session before the first prompt.
	Terms []config.Term
}

// REPL represents an interactive accumulator session. Each accepted term is
// appended to the history and the total is the reduced sum of the history.
type REPL struct {
	config   REPLConfig
	history  []config.Term
	total    orchestration.EvaluationResult
	recorder *metrics.Recorder
	logger   logging.Logger
	in       io.Reader
	out      io.Writer
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - config: REPL configuration.
//   - recorder: Receives one observation per addition (may be nil).
//   - logger: Diagnostic logger (may be nil).
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(config REPLConfig, recorder *metrics.Recorder, logger logging.Logger) *REPL {
	if logger == nil {
		logger = logging.Nop()
	}
	r := &REPL{
		config:   config,
		recorder: recorder,
		logger:   logger,
		in:       os.Stdin,
		out:      os.Stdout,
	}
	r.resetTotal()
	return r
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Total returns the current reduced total.
func (r *REPL) Total() string {
	return r.total.Sum
}

// Start begins the interactive REPL session.
// It continuously reads user input and processes commands until
// the user exits, EOF is reached or ctx is done.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	for _, t := range r.config.Terms {
		r.add(ctx, t)
	}

	reader := bufio.NewReader(r.in)

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		fmt.Fprint(r.out, ui.ColorGreen()+"frac> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(ctx, input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorPrimary(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sFraction Accumulator - Interactive Mode%s              %s║%s\n",
		ui.ColorPrimary(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorPrimary(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorPrimary(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sadd <n> <d>%s   - Add n/d to the running total (or just <n> <d>)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %stotal%s         - Display the running total\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shistory%s       - List the terms added so far\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sreset%s         - Clear the total and history\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s  - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "add", "a", "+":
		r.cmdAdd(ctx, args)
	case "total", "t":
		r.cmdTotal()
	case "history", "hist":
		r.cmdHistory()
	case "reset":
		r.resetTotal()
		fmt.Fprintf(r.out, "Total reset to %s%s%s\n", ui.ColorPrimary(), r.total.Sum, ui.ColorReset())
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// A bare pair of integers is shorthand for add.
		if _, err := strconv.ParseInt(cmd, 10, 64); err == nil {
			r.cmdAdd(ctx, parts)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}

	return true
}

// cmdAdd handles the "add" command.
func (r *REPL) cmdAdd(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintf(r.out, "%sUsage: add <numerator> <denominator>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid numerator: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	d, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid denominator: %s%s\n", ui.ColorRed(), args[1], ui.ColorReset())
		return
	}
	r.add(ctx, config.Term{Numerator: n, Denominator: d})
}

// add re-evaluates the history with t appended. The term is kept only if
// the new total can be represented.
func (r *REPL) add(ctx context.Context, t config.Term) {
	timeout := r.config.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	candidate := append(r.history[:len(r.history):len(r.history)], t)
	res := orchestration.Evaluate(ctx, candidate, orchestration.Options{
		Width:   r.config.Width,
		Workers: r.config.Workers,
	})
	if r.recorder != nil {
		r.recorder.ObserveEvaluation("repl", len(candidate), res.Duration, res.Err)
	}
	if res.Err != nil {
		r.logger.Debug("term rejected", logging.String("term", orchestration.FormatTerm(t)), logging.Err(res.Err))
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), res.Err, ui.ColorReset())
		return
	}

	r.history = candidate
	r.total = res
	fmt.Fprintf(r.out, "  + %s = %s%s%s\n",
		orchestration.FormatTerm(t), ui.ColorForSign(res.Negative), res.Sum, ui.ColorReset())
}

func (r *REPL) cmdTotal() {
	fmt.Fprintf(r.out, "Total: %s%s%s%s (%d terms, %d bits)\n",
		ui.ColorBold(), ui.ColorForSign(r.total.Negative), r.total.Sum, ui.ColorReset(),
		len(r.history), r.total.Width)
}

func (r *REPL) cmdHistory() {
	if len(r.history) == 0 {
		fmt.Fprintln(r.out, "No terms yet.")
		return
	}
	for i, t := range r.history {
		fmt.Fprintf(r.out, "  %2d. %s\n", i+1, orchestration.FormatTerm(t))
	}
}

// resetTotal clears the history. The empty sum is evaluated so the total
// carries the configured width.
func (r *REPL) resetTotal() {
	r.history = nil
	r.total = orchestration.Evaluate(context.Background(), nil, orchestration.Options{Width: r.config.Width})
}
