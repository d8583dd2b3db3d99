// Package scenario parses scenario command flags and runs a Lua script
// against a fresh world, printing what happened.
package scenario

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"

	"github.com/louisbranch/ashfall.world/internal/chronicle"
	entrypoint "github.com/louisbranch/ashfall.world/internal/platform/cmd"
	"github.com/louisbranch/ashfall.world/internal/scenario"
	"github.com/louisbranch/ashfall.world/internal/worldbuilder"
)

// Config holds scenario command configuration.
type Config struct {
	Script string `env:"ASHFALL_SCENARIO_SCRIPT"`
	Seed   int64  `env:"ASHFALL_SCENARIO_SEED" envDefault:"1"`
	Nodes  int    `env:"ASHFALL_SCENARIO_NODES" envDefault:"16"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Script, "script", cfg.Script, "Path to the Lua scenario script")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for the throwaway world")
	fs.IntVar(&cfg.Nodes, "nodes", cfg.Nodes, "Technology graph size")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.Script == "" {
		return Config{}, fmt.Errorf("a scenario script is required (-script)")
	}
	return cfg, nil
}

// Run executes the script against a throwaway world and reports results.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s, err := scenario.LoadFile(cfg.Script)
	if err != nil {
		return err
	}

	builder := worldbuilder.New(rand.New(rand.NewSource(cfg.Seed)))
	graph := builder.BuildGraph(cfg.Nodes)
	engine := chronicle.NewEngine(chronicle.WithSeed(cfg.Seed))

	result, err := scenario.NewRunner(engine, graph).Run(s)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "scenario %q: %d steps\n", s.Name, len(s.Steps))
	for _, ev := range result.Triggered {
		fmt.Fprintf(out, "  triggered %s %s (id=%d magnitude=%.2f duration=%.0f)\n",
			ev.Kind, ev.Type, ev.ID, ev.Magnitude, ev.Duration)
	}
	for _, ev := range result.Resolved {
		fmt.Fprintf(out, "  resolved %s %s (id=%d)\n", ev.Kind, ev.Type, ev.ID)
	}
	for _, effect := range result.Memories {
		fmt.Fprintf(out, "  memory effect %s (weight=%.2f)\n", effect.Type, effect.LegacyWeight)
	}
	fmt.Fprintf(out, "graph: %d nodes, %d preserved, %d links\n",
		graph.Len(), graph.PreservedCount(), graph.LinkCount())
	return nil
}
