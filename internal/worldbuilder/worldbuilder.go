// Package worldbuilder generates themed names and starter technology
// graphs for seeding new simulation worlds.
package worldbuilder

import (
	"fmt"
	"math/rand"

	"github.com/louisbranch/ashfall.world/internal/techgraph"
)

// WorldBuilder generates post-collapse themed names and content.
type WorldBuilder struct {
	rng *rand.Rand
}

// New creates a WorldBuilder with the given random source.
func New(rng *rand.Rand) *WorldBuilder {
	return &WorldBuilder{rng: rng}
}

// WorldName generates a settlement-era world name like "The Ashen Vale".
func (w *WorldBuilder) WorldName() string {
	adj := worldAdjectives[w.rng.Intn(len(worldAdjectives))]
	noun := worldNouns[w.rng.Intn(len(worldNouns))]
	return fmt.Sprintf("The %s %s", adj, noun)
}

// CraftName generates a technology or craft name like "Tidal Glasswork".
func (w *WorldBuilder) CraftName() string {
	qualifier := craftQualifiers[w.rng.Intn(len(craftQualifiers))]
	craft := craftRoots[w.rng.Intn(len(craftRoots))]
	return fmt.Sprintf("%s %s", qualifier, craft)
}

// RegionName generates a region name for event context.
func (w *WorldBuilder) RegionName() string {
	return regionNames[w.rng.Intn(len(regionNames))]
}

// GuildName generates an artisan guild name.
func (w *WorldBuilder) GuildName() string {
	trade := guildTrades[w.rng.Intn(len(guildTrades))]
	form := guildForms[w.rng.Intn(len(guildForms))]
	return fmt.Sprintf("%s %s", trade, form)
}

// SchoolName generates a teaching-lineage school name.
func (w *WorldBuilder) SchoolName() string {
	return fmt.Sprintf("School of the %s", schoolEpithets[w.rng.Intn(len(schoolEpithets))])
}

// LegendName generates a culturally diverse master artisan name.
func (w *WorldBuilder) LegendName() string {
	first := legendFirstNames[w.rng.Intn(len(legendFirstNames))]
	epithet := legendEpithets[w.rng.Intn(len(legendEpithets))]
	return fmt.Sprintf("%s %s", first, epithet)
}

// MemoryPrompt generates a prompt for a defining memory choice.
func (w *WorldBuilder) MemoryPrompt() string {
	return memoryPrompts[w.rng.Intn(len(memoryPrompts))]
}

// BuildGraph creates a starter technology graph of n named nodes.
// Each node links to a handful of earlier nodes so the graph starts
// connected enough for decay to matter.
func (w *WorldBuilder) BuildGraph(n int) *techgraph.Graph {
	g := techgraph.New()
	nodes := make([]*techgraph.Node, 0, n)
	seen := map[string]bool{}

	for len(nodes) < n {
		name := w.CraftName()
		if seen[name] {
			name = fmt.Sprintf("%s II", name)
			if seen[name] {
				continue
			}
		}
		seen[name] = true

		id := fmt.Sprintf("tech_%03d", len(nodes)+1)
		node := techgraph.NewNode(id, name, techgraph.DefaultResilience())
		g.Add(node)
		nodes = append(nodes, node)
	}

	for i, node := range nodes {
		if i == 0 {
			continue
		}
		links := 1 + w.rng.Intn(2)
		for j := 0; j < links; j++ {
			other := nodes[w.rng.Intn(i)]
			techgraph.Connect(node, other, map[string]string{
				"bond": linkBonds[w.rng.Intn(len(linkBonds))],
			})
		}
	}

	return g
}
