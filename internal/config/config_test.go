package config

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"

	apperrors "github.com/agbru/sysgauge/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	var errBuf bytes.Buffer
	cfg, err := ParseConfig("sysgauge", nil, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults %+v", cfg, Default())
	}
}

func TestParseConfig_Flags(t *testing.T) {
	var errBuf bytes.Buffer
	cfg, err := ParseConfig("sysgauge", []string{
		"--no-color", "--log-file", "/tmp/x.log", "--log-level", "debug",
		"--metrics-addr", "localhost:9090", "--no-prime",
	}, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	want := AppConfig{
		NoColor:     true,
		LogFile:     "/tmp/x.log",
		LogLevel:    "debug",
		MetricsAddr: "localhost:9090",
		NoPrime:     true,
	}
	if cfg != want {
		t.Errorf("cfg = %+v, want %+v", cfg, want)
	}
}

func TestParseConfig_Help(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := ParseConfig("sysgauge", []string{"--help"}, &errBuf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(errBuf.String(), "Usage: sysgauge") {
		t.Errorf("expected usage text, got %q", errBuf.String())
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad level", []string{"--log-level", "loud"}},
		{"bad address", []string{"--metrics-addr", "nocolon"}},
		{"positional argument", []string{"extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			_, err := ParseConfig("sysgauge", tt.args, &errBuf)
			var configErr apperrors.ConfigError
			if !errors.As(err, &configErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if errBuf.Len() == 0 {
				t.Error("expected the error to be reported on errWriter")
			}
		})
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SYSGAUGE_LOG_LEVEL", "warn")
	t.Setenv("SYSGAUGE_METRICS_ADDR", ":9100")
	t.Setenv("SYSGAUGE_NO_PRIME", "yes")
	t.Setenv("SYSGAUGE_NO_COLOR", "maybe")

	var errBuf bytes.Buffer
	cfg, err := ParseConfig("sysgauge", nil, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.MetricsAddr != ":9100" {
		t.Errorf("MetricsAddr = %q, want :9100", cfg.MetricsAddr)
	}
	if !cfg.NoPrime {
		t.Error("expected NoPrime from environment")
	}
	if cfg.NoColor {
		t.Error("unrecognized boolean should keep the default")
	}
}

func TestParseConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv("SYSGAUGE_LOG_LEVEL", "warn")

	var errBuf bytes.Buffer
	cfg, err := ParseConfig("sysgauge", []string{"--log-level", "error"}, &errBuf)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want error (flag wins)", cfg.LogLevel)
	}
}
