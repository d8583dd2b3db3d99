package seed

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
	if cfg.Worlds != 3 {
		t.Fatalf("expected default worlds 3, got %d", cfg.Worlds)
	}
	if cfg.Nodes != 16 {
		t.Fatalf("expected default nodes 16, got %d", cfg.Nodes)
	}
}

func TestParseConfigFlagOverrides(t *testing.T) {
	t.Setenv("ASHFALL_SEED_WORLDS", "5")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-worlds", "8", "-db", "custom.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Worlds != 8 {
		t.Fatalf("expected flag override 8, got %d", cfg.Worlds)
	}
	if cfg.DBPath != "custom.db" {
		t.Fatalf("expected custom db path, got %q", cfg.DBPath)
	}
}

func TestRunSeedsWorlds(t *testing.T) {
	t.Setenv("ASHFALL_OTEL_ENDPOINT", "")

	dbPath := filepath.Join(t.TempDir(), "seed.db")
	cfg := Config{
		DBPath: dbPath,
		Worlds: 4,
		Nodes:  10,
		Seed:   11,
	}
	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("run seed: %v", err)
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
	if len(worlds) != 4 {
		t.Fatalf("expected 4 seeded worlds, got %d", len(worlds))
	}
	for _, world := range worlds {
		if world.Name == "" {
			t.Fatal("expected generated world name")
		}
		if world.Outcome == "" {
			t.Fatal("expected a legacy outcome")
		}
		if len(world.Graph) == 0 {
			t.Fatal("expected encoded graph payload")
		}
	}
}
