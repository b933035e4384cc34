// Package config defines the runtime configuration of the system monitor and
// parses it from command-line flags and environment variables.
package config

import (
	"flag"
	"fmt"
	"io"
	"net"
	"time"

	apperrors "github.com/agbru/sysgauge/internal/errors"
	"github.com/agbru/sysgauge/internal/logging"
)

// EnvPrefix is the prefix shared by every environment override.
const EnvPrefix = "SYSGAUGE_"

// RefreshInterval is the fixed period of the sample-and-redraw cycle.
// It is deliberately not configurable.
const RefreshInterval = time.Second

// AppConfig holds the settings of one monitoring session. A zero-flag
// invocation yields the defaults: colours on, no log file, no exporter, CPU
// baseline priming enabled.
type AppConfig struct {
	// NoColor disables all styling.
	NoColor bool
	// LogFile is the path of the rotated log file. Empty discards logs while
	// the dashboard owns the terminal.
	LogFile string
	// LogLevel is the minimum level written to LogFile.
	LogLevel string
	// MetricsAddr, when set, serves Prometheus metrics on host:port.
	MetricsAddr string
	// NoPrime skips the blocking CPU baseline measurement at startup.
	NoPrime bool
}

// Default returns the configuration used when nothing is overridden.
func Default() AppConfig {
	return AppConfig{LogLevel: "info"}
}

// ParseConfig parses args (without the program name) into an AppConfig,
// applying environment overrides for flags that were not set explicitly.
// Help output and flag errors are written to errWriter; a help request
// returns flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := Default()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintln(errWriter, "Displays live CPU and memory utilization as two gauges.")
		fmt.Fprintln(errWriter, "Press q or Ctrl+C to exit.")
		fmt.Fprintln(errWriter)
		fmt.Fprintln(errWriter, "Options:")
		fs.PrintDefaults()
	}

	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output.")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file (rotated).")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level (debug, info, warn, error).")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address (e.g. localhost:9090).")
	fs.BoolVar(&cfg.NoPrime, "no-prime", cfg.NoPrime, "Skip the CPU baseline measurement at startup.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the application cannot use.
func (c AppConfig) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}
	if c.MetricsAddr != "" {
		if _, _, err := net.SplitHostPort(c.MetricsAddr); err != nil {
			return apperrors.NewConfigError("invalid metrics address %q: %v", c.MetricsAddr, err)
		}
	}
	return nil
}
