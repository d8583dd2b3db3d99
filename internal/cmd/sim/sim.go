// Package sim parses simulation command flags and drives a full world run.
package sim

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"go.opentelemetry.io/otel"

	"github.com/louisbranch/ashfall.world/internal/chronicle"
	"github.com/louisbranch/ashfall.world/internal/id"
	"github.com/louisbranch/ashfall.world/internal/legacy"
	entrypoint "github.com/louisbranch/ashfall.world/internal/platform/cmd"
	"github.com/louisbranch/ashfall.world/internal/random"
	"github.com/louisbranch/ashfall.world/internal/scenario"
	"github.com/louisbranch/ashfall.world/internal/scheduler"
	"github.com/louisbranch/ashfall.world/internal/storage"
	"github.com/louisbranch/ashfall.world/internal/storage/sqlite"
	"github.com/louisbranch/ashfall.world/internal/techgraph"
	"github.com/louisbranch/ashfall.world/internal/telemetry"
	"github.com/louisbranch/ashfall.world/internal/worldbuilder"
)

// Per-tick chances for spontaneous world activity.
const (
	baseDecayChance    = 0.35
	crisisDecayBonus   = 0.10
	eventTriggerChance = 0.15
)

// Config holds simulation command configuration.
type Config struct {
	DBPath    string  `env:"ASHFALL_SIM_DB" envDefault:"ashfall.db"`
	Seed      int64   `env:"ASHFALL_SIM_SEED"`
	Ticks     int     `env:"ASHFALL_SIM_TICKS" envDefault:"40"`
	Nodes     int     `env:"ASHFALL_SIM_NODES" envDefault:"24"`
	TimeScale float64 `env:"ASHFALL_SIM_TIME_SCALE" envDefault:"1"`
	Scenario  string  `env:"ASHFALL_SIM_SCENARIO"`
	WorldName string  `env:"ASHFALL_SIM_WORLD_NAME"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the world database")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 picks one)")
	fs.IntVar(&cfg.Ticks, "ticks", cfg.Ticks, "Number of simulated ticks")
	fs.IntVar(&cfg.Nodes, "nodes", cfg.Nodes, "Starter technology graph size")
	fs.Float64Var(&cfg.TimeScale, "time-scale", cfg.TimeScale, "Simulated ticks per loop iteration")
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "Optional Lua scenario to run before the loop")
	fs.StringVar(&cfg.WorldName, "name", cfg.WorldName, "World name (empty generates one)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes a full simulation and persists the resulting world.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSim, func(ctx context.Context) error {
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

	worldID, err := id.NewID()
	if err != nil {
		return fmt.Errorf("generate world id: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	builder := worldbuilder.New(rng)
	name := cfg.WorldName
	if name == "" {
		name = builder.WorldName()
	}
	graph := builder.BuildGraph(cfg.Nodes)

	emitter := telemetry.NewEmitter(store)
	w := &world{
		ctx:     ctx,
		id:      worldID,
		store:   store,
		emitter: emitter,
		graph:   graph,
		rng:     rng,
	}
	w.engine = chronicle.NewEngine(
		chronicle.WithSeed(seed),
		chronicle.WithResolutionHook(w.onResolved),
	)

	tracer := otel.Tracer("github.com/louisbranch/ashfall.world/internal/cmd/sim")
	ctx, span := tracer.Start(ctx, "sim.run")
	defer span.End()
	w.ctx = ctx

	log.Printf("world %s (%s) seed=%d nodes=%d ticks=%d", name, worldID, seed, graph.Len(), cfg.Ticks)

	if cfg.Scenario != "" {
		if err := w.runScenario(cfg.Scenario); err != nil {
			return fmt.Errorf("run scenario: %w", err)
		}
	}

	sched := scheduler.New(cfg.TimeScale)
	sched.Register(scheduler.TargetFunc(func(ticks float64) {
		w.engine.Progress(ticks)
	}))

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if sched.Tick(1) == 0 {
			continue
		}
		if err := w.spontaneousEvents(); err != nil {
			return err
		}
		w.decayPressure()
	}

	report := legacy.Calculate(
		legacy.GraphSource(graph),
		legacy.EngineSource(w.engine),
	)

	encoded, err := graph.Encode()
	if err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	record := storage.WorldRecord{
		ID:      worldID,
		Name:    name,
		Seed:    seed,
		Graph:   encoded,
		Tick:    int64(cfg.Ticks),
		Score:   report.TotalScore,
		Outcome: report.Outcome,
	}
	if err := store.PutWorld(ctx, record); err != nil {
		return fmt.Errorf("persist world: %w", err)
	}

	log.Printf("run complete: score=%.1f outcome=%q pillars=%d density=%.2f artifacts=%d continuity=%.2f",
		report.TotalScore,
		report.Outcome,
		report.PreservedPillars,
		report.InterlinkDensity,
		report.ArtifactCount,
		report.MasterLineContinuity,
	)
	return nil
}

// world bundles the run's moving parts so hooks and loop helpers share
// one view of the simulation.
type world struct {
	ctx     context.Context
	id      string
	store   storage.Store
	emitter *telemetry.Emitter
	engine  *chronicle.Engine
	graph   *techgraph.Graph
	rng     *rand.Rand
}

// onResolved journals and emits every event resolution, and lets a
// resolved opportunity pull one technology back toward use.
func (w *world) onResolved(ev chronicle.Event) {
	w.journal(ev, "resolved")

	attrs := map[string]string{
		"kind": string(ev.Kind),
		"type": ev.Type,
		"id":   fmt.Sprintf("%d", ev.ID),
	}
	if err := w.emitter.Emit(w.ctx, storage.TelemetryEvent{
		WorldID:    w.id,
		Name:       "event.resolved",
		Attributes: attrs,
	}); err != nil {
		log.Printf("emit telemetry: %v", err)
	}

	if ev.Kind == chronicle.KindOpportunity {
		w.relearnOne()
	}
}

func (w *world) journal(ev chronicle.Event, state string) {
	if _, err := w.store.AppendJournal(w.ctx, storage.JournalEntry{
		WorldID:   w.id,
		EventID:   ev.ID,
		Kind:      string(ev.Kind),
		Type:      ev.Type,
		State:     state,
		Magnitude: ev.Magnitude,
		Remaining: ev.Remaining,
	}); err != nil {
		log.Printf("append journal: %v", err)
	}
}

// spontaneousEvents rolls for a new crisis or opportunity this tick.
func (w *world) spontaneousEvents() error {
	if w.rng.Float64() >= eventTriggerChance {
		return nil
	}

	kind := chronicle.KindCrisis
	if w.rng.Float64() < 0.5 {
		kind = chronicle.KindOpportunity
	}
	types := w.engine.DefinitionTypes(kind)
	if len(types) == 0 {
		return nil
	}
	eventType := types[w.rng.Intn(len(types))]

	ev := w.engine.Trigger(kind, eventType, chronicle.Overrides{
		Context: map[string]string{"region": regionFor(w.rng)},
	})
	if ev == nil {
		return nil
	}
	w.journal(*ev, "started")
	return nil
}

// decayPressure pushes decay onto a random slice of the graph. Active
// crises raise the per-node chance.
func (w *world) decayPressure() {
	chance := baseDecayChance + crisisDecayBonus*float64(len(w.engine.Active(chronicle.KindCrisis)))
	if chance > 0.9 {
		chance = 0.9
	}
	for _, node := range w.graph.Nodes() {
		if w.rng.Float64() < chance {
			node.ApplyDecay()
		}
	}
}

// relearnOne pulls one non-operable node a single step back toward use.
func (w *world) relearnOne() {
	var candidates []*techgraph.Node
	for _, node := range w.graph.Nodes() {
		if node.State != techgraph.StateOperable {
			candidates = append(candidates, node)
		}
	}
	if len(candidates) == 0 {
		return
	}
	candidates[w.rng.Intn(len(candidates))].Relearn(1)
}

func (w *world) runScenario(path string) error {
	s, err := scenario.LoadFile(path)
	if err != nil {
		return err
	}
	runner := scenario.NewRunner(w.engine, w.graph)
	result, err := runner.Run(s)
	if err != nil {
		return err
	}
	for _, ev := range result.Triggered {
		w.journal(ev, "started")
	}
	log.Printf("scenario %q: %d triggered, %d resolved, %d memories",
		s.Name, len(result.Triggered), len(result.Resolved), len(result.Memories))
	return nil
}

func regionFor(rng *rand.Rand) string {
	return worldbuilder.New(rng).RegionName()
}
