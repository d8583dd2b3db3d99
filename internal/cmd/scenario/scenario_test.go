package scenario

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.lua")
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestParseConfigRequiresScript(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected error without a script path")
	}
}

func TestParseConfigFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-script", "run.lua", "-seed", "9"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Script != "run.lua" {
		t.Fatalf("expected script run.lua, got %q", cfg.Script)
	}
	if cfg.Seed != 9 {
		t.Fatalf("expected seed 9, got %d", cfg.Seed)
	}
}

func TestRunPrintsResults(t *testing.T) {
	path := writeScript(t, `
local s = Scenario.new("smoke")
s:trigger({kind = "crisis", type = "epidemic", magnitude = 2, duration = 3})
s:progress(3)
return s
`)

	var out bytes.Buffer
	cfg := Config{Script: path, Seed: 1, Nodes: 8}
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run scenario: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, `scenario "smoke": 2 steps`) {
		t.Fatalf("expected step summary, got %q", text)
	}
	if !strings.Contains(text, "triggered crisis epidemic") {
		t.Fatalf("expected trigger line, got %q", text)
	}
	if !strings.Contains(text, "resolved crisis epidemic") {
		t.Fatalf("expected resolve line, got %q", text)
	}
}

func TestRunBadScriptFails(t *testing.T) {
	path := writeScript(t, `return 42`)

	var out bytes.Buffer
	cfg := Config{Script: path, Seed: 1, Nodes: 8}
	if err := Run(context.Background(), cfg, &out); err == nil {
		t.Fatal("expected error for invalid scenario script")
	}
}
