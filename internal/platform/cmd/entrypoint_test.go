package cmd

import (
	"context"
	"flag"
	"testing"
)

func TestParseConfigLoadsEnvDefaults(t *testing.T) {
	type testConfig struct {
		Ticks int `env:"ASHFALL_ENTRYPOINT_TICKS" envDefault:"12"`
	}

	t.Setenv("ASHFALL_ENTRYPOINT_TICKS", "7")

	var cfg testConfig
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Ticks != 7 {
		t.Fatalf("expected ticks 7, got %d", cfg.Ticks)
	}
}

func TestParseConfigNilTarget(t *testing.T) {
	if err := ParseConfig[struct{}](nil); err == nil {
		t.Fatal("expected error for nil config target")
	}
}

func TestParseConfigFromArgsFlagsOverrideEnv(t *testing.T) {
	type testConfig struct {
		Ticks int `env:"ASHFALL_ENTRYPOINT_FLAG_TICKS" envDefault:"12"`
	}

	t.Setenv("ASHFALL_ENTRYPOINT_FLAG_TICKS", "7")

	var cfg testConfig
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	fs.IntVar(&cfg.Ticks, "ticks", cfg.Ticks, "tick count")
	if err := ParseArgs(fs, []string{"-ticks", "30"}); err != nil {
		t.Fatalf("parse args: %v", err)
	}
	if cfg.Ticks != 30 {
		t.Fatalf("expected flag override 30, got %d", cfg.Ticks)
	}
}

func TestParseArgsNilFlagSet(t *testing.T) {
	if err := ParseArgs(nil, nil); err == nil {
		t.Fatal("expected error for nil flag set")
	}
}

func TestRunWithTelemetryRequiresService(t *testing.T) {
	err := RunWithTelemetry(context.Background(), "  ", func(context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected error for empty service name")
	}
}

func TestRunWithTelemetryRequiresRun(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), ServiceSim, nil); err == nil {
		t.Fatal("expected error for nil run function")
	}
}

func TestRunWithTelemetryExecutesRun(t *testing.T) {
	t.Setenv("ASHFALL_OTEL_ENDPOINT", "")

	ran := false
	err := RunWithTelemetry(context.Background(), ServiceSeed, func(context.Context) error {
		ran = true
		return nil
	})
	if err != nil {
		t.Fatalf("run with telemetry: %v", err)
	}
	if !ran {
		t.Fatal("expected run function to execute")
	}
}
