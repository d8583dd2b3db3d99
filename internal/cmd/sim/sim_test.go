package sim

import (
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/louisbranch/ashfall.world/internal/storage/sqlite"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Ticks != 40 {
		t.Fatalf("expected default ticks 40, got %d", cfg.Ticks)
	}
	if cfg.Nodes != 24 {
		t.Fatalf("expected default nodes 24, got %d", cfg.Nodes)
	}
	if cfg.DBPath != "ashfall.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("ASHFALL_SIM_TICKS", "10")
	t.Setenv("ASHFALL_SIM_SEED", "99")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-ticks", "25", "-name", "Emberfall"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Ticks != 25 {
		t.Fatalf("expected flag override 25, got %d", cfg.Ticks)
	}
	if cfg.Seed != 99 {
		t.Fatalf("expected env seed 99, got %d", cfg.Seed)
	}
	if cfg.WorldName != "Emberfall" {
		t.Fatalf("expected world name Emberfall, got %q", cfg.WorldName)
	}
}

func TestRunPersistsWorld(t *testing.T) {
	t.Setenv("ASHFALL_OTEL_ENDPOINT", "")

	dbPath := filepath.Join(t.TempDir(), "ashfall.db")
	cfg := Config{
		DBPath:    dbPath,
		Seed:      42,
		Ticks:     20,
		Nodes:     12,
		TimeScale: 1,
		WorldName: "Test Vale",
	}

	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("run simulation: %v", err)
	}

	store, err := sqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer store.Close()

	worlds, err := store.ListWorlds(context.Background())
	if err != nil {
		t.Fatalf("list worlds: %v", err)
	}
	if len(worlds) != 1 {
		t.Fatalf("expected 1 persisted world, got %d", len(worlds))
	}
	world := worlds[0]
	if world.Name != "Test Vale" {
		t.Fatalf("expected world name Test Vale, got %q", world.Name)
	}
	if world.Seed != 42 {
		t.Fatalf("expected seed 42, got %d", world.Seed)
	}
	if world.Outcome == "" {
		t.Fatal("expected a legacy outcome")
	}
	if len(world.Graph) == 0 {
		t.Fatal("expected encoded graph payload")
	}
}

func TestRunDeterministicWithSeed(t *testing.T) {
	t.Setenv("ASHFALL_OTEL_ENDPOINT", "")

	runOnce := func(path string) (float64, string) {
		t.Helper()
		cfg := Config{
			DBPath:    path,
			Seed:      7,
			Ticks:     15,
			Nodes:     10,
			TimeScale: 1,
			WorldName: "Twin",
		}
		if err := Run(context.Background(), cfg); err != nil {
			t.Fatalf("run simulation: %v", err)
		}
		store, err := sqlite.Open(path)
		if err != nil {
			t.Fatalf("reopen store: %v", err)
		}
		defer store.Close()
		worlds, err := store.ListWorlds(context.Background())
		if err != nil || len(worlds) != 1 {
			t.Fatalf("list worlds: %v (%d)", err, len(worlds))
		}
		return worlds[0].Score, worlds[0].Outcome
	}

	dir := t.TempDir()
	scoreA, outcomeA := runOnce(filepath.Join(dir, "a.db"))
	scoreB, outcomeB := runOnce(filepath.Join(dir, "b.db"))
	if scoreA != scoreB || outcomeA != outcomeB {
		t.Fatalf("expected identical runs for same seed, got %.2f/%q vs %.2f/%q",
			scoreA, outcomeA, scoreB, outcomeB)
	}
}
