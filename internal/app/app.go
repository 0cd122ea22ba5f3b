package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/agbru/fracalc/internal/cli"
	"github.com/agbru/fracalc/internal/config"
	apperrors "github.com/agbru/fracalc/internal/errors"
	"github.com/agbru/fracalc/internal/logging"
	"github.com/agbru/fracalc/internal/metrics"
	"github.com/agbru/fracalc/internal/orchestration"
	"github.com/agbru/fracalc/internal/tui"
	"github.com/agbru/fracalc/internal/ui"
)

// Application represents the fracalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	In        io.Reader
	Presenter orchestration.ResultPresenter
	Recorder  *metrics.Recorder
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithPresenter sets a custom ResultPresenter for the application.
func WithPresenter(p orchestration.ResultPresenter) AppOption {
	return func(a *Application) { a.Presenter = p }
}

// WithInput sets the reader the REPL consumes (os.Stdin by default).
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// WithRecorder sets the metrics recorder shared by every run mode.
func WithRecorder(r *metrics.Recorder) AppOption {
	return func(a *Application) { a.Recorder = r }
}

// WithLogger overrides the diagnostic logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "fracalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = filepath.Base(args[0])
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.In == nil {
		app.In = os.Stdin
	}
	if app.Presenter == nil {
		app.Presenter = cli.CLIResultPresenter{}
	}
	if app.Recorder == nil {
		app.Recorder = metrics.NewRecorder()
	}
	if app.Logger == nil {
		app.Logger = logging.New(errWriter, cfg.LogFormat, "app", cfg.LogLevel, cfg.NoColor)
	}
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	a.Logger.Debug("starting",
		logging.String("version", Version),
		logging.Int("terms", len(a.Config.Terms)),
		logging.Int("width", a.Config.Width),
	)

	var code int
	switch {
	case a.Config.TUI:
		code = a.runTUI(ctx)
	case a.Config.Interactive:
		code = a.runREPL(ctx, out)
	default:
		code = a.runEvaluate(ctx, out)
	}

	if err := a.writeMetrics(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error writing metrics: %v\n", err)
		if code == apperrors.ExitSuccess {
			code = apperrors.ExitErrorGeneric
		}
	}
	return code
}

// runREPL starts the line-oriented accumulator.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	repl := cli.NewREPL(cli.REPLConfig{
		Width:   a.Config.Width,
		Workers: a.Config.Workers,
		Timeout: a.Config.Timeout,
		Terms:   a.Config.Terms,
	}, a.Recorder, a.Logger)
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// runTUI launches the full-screen accumulator.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, a.Config, a.Recorder, Version)
}

func (a *Application) writeMetrics() error {
	if a.Config.MetricsFile == "" {
		return nil
	}
	if err := a.Recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
		return err
	}
	a.Logger.Debug("metrics written", logging.String("path", a.Config.MetricsFile))
	return nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
