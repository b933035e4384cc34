// Package app wires configuration, logging, the metrics source, the
// optional Prometheus exporter and the terminal monitor into one process.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/sysgauge/internal/config"
	apperrors "github.com/agbru/sysgauge/internal/errors"
	"github.com/agbru/sysgauge/internal/logging"
	"github.com/agbru/sysgauge/internal/server"
	"github.com/agbru/sysgauge/internal/sysmon"
	"github.com/agbru/sysgauge/internal/tui"
	"github.com/agbru/sysgauge/internal/ui"
)

// GoodbyeMessage is printed once the terminal is restored after a clean exit.
const GoodbyeMessage = "Exiting gracefully..."

// Application represents the sysgauge application instance.
type Application struct {
	Config    config.AppConfig
	Source    sysmon.Source
	ErrWriter io.Writer

	programOptions []tea.ProgramOption
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithSource sets a custom metrics source for the application.
func WithSource(s sysmon.Source) AppOption {
	return func(a *Application) { a.Source = s }
}

// WithProgramOptions passes extra options to the bubbletea program.
func WithProgramOptions(opts ...tea.ProgramOption) AppOption {
	return func(a *Application) { a.programOptions = append(a.programOptions, opts...) }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Source == nil {
		app.Source = sysmon.NewGopsutil()
	}

	programName := "sysgauge"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the monitor until it is interrupted or fails, and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.InitTheme(a.Config.NoColor)

	logger, closeLog, err := a.newLogger()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	defer closeLog()

	ctx, stopSignals := signal.NotifyContext(ctx, shutdownSignals...)
	defer stopSignals()

	logger.Info("starting",
		logging.String("version", Version),
		logging.String("metrics_addr", a.Config.MetricsAddr),
	)

	if !a.Config.NoPrime {
		a.primeBaseline(ctx, logger)
	}

	err = a.runSession(ctx, logger)
	code := apperrors.ExitCodeFor(err)
	if code != apperrors.ExitSuccess {
		logger.Error("session failed", err, logging.Int("exit_code", code))
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return code
	}

	logger.Info(GoodbyeMessage)
	fmt.Fprintln(out, GoodbyeMessage)
	return apperrors.ExitSuccess
}

// runSession supervises the monitor and, when configured, the exporter.
// Whichever finishes first ends the other.
func (a *Application) runSession(ctx context.Context, logger logging.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	opts := tui.Options{
		Version:        Version,
		Source:         a.Source,
		Logger:         logger,
		ProgramOptions: a.programOptions,
	}

	if a.Config.MetricsAddr != "" {
		metrics := server.NewMetrics()
		opts.Observer = metrics
		srv := server.New(a.Config.MetricsAddr, metrics, logger)
		g.Go(func() error {
			return srv.Run(gctx)
		})
	}

	g.Go(func() error {
		defer cancel()
		return tui.Run(gctx, opts)
	})

	return g.Wait()
}

// stderrRedirected reports whether stderr is something other than a terminal.
func stderrRedirected() bool {
	fd := os.Stderr.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// newLogger returns the file logger when --log-file is set, a stderr logger
// when stderr is redirected, and otherwise discards logs because the
// monitor owns the terminal.
func (a *Application) newLogger() (logging.Logger, func(), error) {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		return nil, nil, apperrors.NewConfigError("invalid log level %q", a.Config.LogLevel)
	}
	if a.Config.LogFile == "" {
		if a.ErrWriter == os.Stderr && stderrRedirected() {
			return logging.NewDefaultLogger(level), func() {}, nil
		}
		return logging.NewNopLogger(), func() {}, nil
	}
	logger, closer := logging.NewFileLogger(logging.FileOptions{
		Path:  a.Config.LogFile,
		Level: level,
	}, "sysgauge")
	return logger, func() { _ = closer.Close() }, nil
}

// primeBaseline takes the blocking CPU baseline measurement so the first
// tick reports a meaningful delta. Failures are logged and otherwise
// ignored; the first tick reports them properly.
func (a *Application) primeBaseline(ctx context.Context, logger logging.Logger) {
	primer, ok := a.Source.(sysmon.Primer)
	if !ok {
		return
	}

	s := newSpinner(a.ErrWriter)
	s.UpdateSuffix(" Measuring CPU baseline...")
	s.Start()
	err := primer.Prime(ctx)
	s.Stop()

	if err != nil && !apperrors.IsContextError(err) {
		logger.Error("cpu baseline failed", err)
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
