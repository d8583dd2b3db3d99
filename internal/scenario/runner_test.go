package scenario

import (
	"path/filepath"
	"testing"

	"github.com/louisbranch/ashfall.world/internal/chronicle"
	"github.com/louisbranch/ashfall.world/internal/techgraph"
)

func newTestGraph() *techgraph.Graph {
	g := techgraph.New()
	g.Add(techgraph.NewNode("kiln_glasswork", "Kiln-Fired Glasswork", techgraph.DefaultResilience()))
	g.Add(techgraph.NewNode("tidal_irrigation", "Tidal Irrigation", techgraph.DefaultResilience()))
	return g
}

func TestRunEpidemicScript(t *testing.T) {
	s, err := LoadFile(filepath.Join("testdata", "epidemic_winter.lua"))
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}

	engine := chronicle.NewEngine(chronicle.WithSeed(7))
	graph := newTestGraph()
	runner := NewRunner(engine, graph)

	result, err := runner.Run(s)
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}

	if len(result.Triggered) != 1 {
		t.Fatalf("expected 1 triggered event, got %d", len(result.Triggered))
	}
	if result.Triggered[0].Magnitude != 2.0 {
		t.Fatalf("expected magnitude 2.0, got %v", result.Triggered[0].Magnitude)
	}

	if len(result.Resolved) != 1 {
		t.Fatalf("expected 1 auto-resolved event, got %d", len(result.Resolved))
	}
	resolved := result.Resolved[0]
	if resolved.Remaining != 0 {
		t.Fatalf("expected remaining 0, got %v", resolved.Remaining)
	}
	if resolved.Outcome == nil || resolved.Outcome.Crisis == nil {
		t.Fatal("expected crisis outcome")
	}
	if resolved.Outcome.Crisis.NetSeverity != 2.0 {
		t.Fatalf("expected net severity 2.0, got %v", resolved.Outcome.Crisis.NetSeverity)
	}

	node, _ := graph.Node("kiln_glasswork")
	if node.DecayProgress != 2 {
		t.Fatalf("expected decay progress 2, got %d", node.DecayProgress)
	}

	if len(result.Memories) != 1 {
		t.Fatalf("expected 1 memory effect, got %d", len(result.Memories))
	}
	if result.Memories[0].Type != "canonization" {
		t.Fatalf("expected canonization effect, got %q", result.Memories[0].Type)
	}
	legends := engine.Ledger().Legends()
	if len(legends) != 1 {
		t.Fatalf("expected canonized legend, got %d", len(legends))
	}
	if legends[0].Significance != 2.5 {
		t.Fatalf("expected legend significance 2.5, got %v", legends[0].Significance)
	}
}

func TestRunMemoryReadsLegendFieldsFromTable(t *testing.T) {
	s, err := LoadString(`
local s = Scenario.new("memory")
s:memory({
    moment = "moment_glass",
    selection = "canonize the glasswright",
    effect = "canonization",
    legend = {id = "legend_glass", title = "The Last Glasswright", significance = 3.5},
})
return s
`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}

	engine := chronicle.NewEngine(chronicle.WithSeed(1))
	runner := NewRunner(engine, nil)
	if _, err := runner.Run(s); err != nil {
		t.Fatalf("run scenario: %v", err)
	}

	legends := engine.Ledger().Legends()
	if len(legends) != 1 {
		t.Fatalf("expected 1 legend, got %d", len(legends))
	}
	if legends[0].ID != "legend_glass" {
		t.Fatalf("expected legend id legend_glass, got %q", legends[0].ID)
	}
	if legends[0].Significance != 3.5 {
		t.Fatalf("expected legend significance 3.5, got %v", legends[0].Significance)
	}
}

func TestRunManualResolve(t *testing.T) {
	s, err := LoadString(`
local s = Scenario.new("manual")
s:trigger({kind = "crisis", type = "epidemic", magnitude = 3, duration = 10})
s:resolve({kind = "crisis", id = 1, mitigation = 1.5, focus = 1.0})
return s
`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}

	runner := NewRunner(chronicle.NewEngine(chronicle.WithSeed(1)), nil)
	result, err := runner.Run(s)
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	if len(result.Resolved) != 1 {
		t.Fatalf("expected 1 resolved event, got %d", len(result.Resolved))
	}
	impact := result.Resolved[0].Outcome.Crisis
	if impact == nil {
		t.Fatal("expected crisis impact")
	}
	if impact.NetSeverity != 1.5 {
		t.Fatalf("expected net severity 1.5, got %v", impact.NetSeverity)
	}
}

func TestRunRelearnStep(t *testing.T) {
	s, err := LoadString(`
local s = Scenario.new("relearn")
s:decay("tidal_irrigation", 3)
s:relearn("tidal_irrigation", 2)
return s
`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}

	graph := newTestGraph()
	runner := NewRunner(nil, graph)
	if _, err := runner.Run(s); err != nil {
		t.Fatalf("run scenario: %v", err)
	}

	node, _ := graph.Node("tidal_irrigation")
	if node.State != techgraph.StateOperable {
		t.Fatalf("expected node back to operable, got %v", node.State)
	}
}

func TestRunUnknownNodeFails(t *testing.T) {
	s, err := LoadString(`
local s = Scenario.new("bad node")
s:decay("missing_tech")
return s
`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}

	runner := NewRunner(nil, newTestGraph())
	if _, err := runner.Run(s); err == nil {
		t.Fatal("expected error for unknown node")
	}
}

func TestRunUnknownEventTypeFails(t *testing.T) {
	s, err := LoadString(`
local s = Scenario.new("bad type")
s:trigger({kind = "crisis", type = "meteor"})
return s
`)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}

	runner := NewRunner(chronicle.NewEngine(), nil)
	if _, err := runner.Run(s); err == nil {
		t.Fatal("expected error for unknown event type")
	}
}
