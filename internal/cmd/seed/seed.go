// Package seed parses seed command flags and fills a database with
// generated demo worlds.
package seed

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/louisbranch/ashfall.world/internal/chronicle"
	"github.com/louisbranch/ashfall.world/internal/id"
	"github.com/louisbranch/ashfall.world/internal/legacy"
	entrypoint "github.com/louisbranch/ashfall.world/internal/platform/cmd"
	"github.com/louisbranch/ashfall.world/internal/random"
	"github.com/louisbranch/ashfall.world/internal/storage"
	"github.com/louisbranch/ashfall.world/internal/storage/sqlite"
	"github.com/louisbranch/ashfall.world/internal/worldbuilder"
)

// Config holds seed command configuration.
type Config struct {
	DBPath string `env:"ASHFALL_SEED_DB" envDefault:"ashfall.db"`
	Worlds int    `env:"ASHFALL_SEED_WORLDS" envDefault:"3"`
	Nodes  int    `env:"ASHFALL_SEED_NODES" envDefault:"16"`
	Seed   int64  `env:"ASHFALL_SEED_SEED"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the world database")
	fs.IntVar(&cfg.Worlds, "worlds", cfg.Worlds, "Number of demo worlds to create")
	fs.IntVar(&cfg.Nodes, "nodes", cfg.Nodes, "Technology graph size per world")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 picks one)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run populates the database with generated demo worlds.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	seed := cfg.Seed
	if seed == 0 {
		var err error
		seed, err = random.NewSeed()
		if err != nil {
			return fmt.Errorf("generate seed: %w", err)
		}
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < cfg.Worlds; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := seedWorld(ctx, store, rng, cfg.Nodes); err != nil {
			return fmt.Errorf("seed world %d: %w", i+1, err)
		}
	}

	log.Printf("seeded %d worlds into %s (seed=%d)", cfg.Worlds, cfg.DBPath, seed)
	return nil
}

// seedWorld creates one demo world with a little lived-in history: some
// decay, one resolved crisis and one catalogued artifact.
func seedWorld(ctx context.Context, store storage.Store, rng *rand.Rand, nodes int) error {
	worldID, err := id.NewID()
	if err != nil {
		return fmt.Errorf("generate world id: %w", err)
	}

	builder := worldbuilder.New(rng)
	name := builder.WorldName()
	graph := builder.BuildGraph(nodes)

	for _, node := range graph.Nodes() {
		steps := rng.Intn(4)
		for s := 0; s < steps; s++ {
			node.ApplyDecay()
		}
	}

	engine := chronicle.NewEngine(chronicle.WithRand(rng))

	crisis := engine.Trigger(chronicle.KindCrisis, "epidemic", chronicle.Overrides{
		Context: map[string]string{"region": builder.RegionName()},
	})
	if crisis != nil {
		mitigation := 1.0 + rng.Float64()*2
		engine.Resolve(chronicle.KindCrisis, crisis.ID, chronicle.Resolution{
			Mitigation: &mitigation,
		})
	}

	find := engine.Trigger(chronicle.KindOpportunity, "artifact", chronicle.Overrides{})
	if find != nil {
		engine.Resolve(chronicle.KindOpportunity, find.ID, chronicle.Resolution{
			ArtifactName: builder.CraftName(),
			Curator:      builder.LegendName(),
			Preserved:    true,
			Significance: 1 + rng.Float64()*2,
		})
	}

	report := legacy.Calculate(legacy.GraphSource(graph), legacy.EngineSource(engine))

	encoded, err := graph.Encode()
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return store.PutWorld(ctx, storage.WorldRecord{
		ID:      worldID,
		Name:    name,
		Graph:   encoded,
		Score:   report.TotalScore,
		Outcome: report.Outcome,
	})
}
