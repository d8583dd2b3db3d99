package legacy

import (
	"math"

	"github.com/louisbranch/ashfall.world/internal/chronicle"
	"github.com/louisbranch/ashfall.world/internal/techgraph"
)

// GraphSource adapts a technology graph as a NodeSource.
func GraphSource(g *techgraph.Graph) NodeSource {
	return graphSource{g: g}
}

type graphSource struct {
	g *techgraph.Graph
}

func (s graphSource) NodeCount() int {
	if s.g == nil {
		return 0
	}
	return s.g.Len()
}

func (s graphSource) PreservedCount() int {
	if s.g == nil {
		return 0
	}
	return s.g.PreservedCount()
}

func (s graphSource) LinkCount() int {
	if s.g == nil {
		return 0
	}
	return s.g.LinkCount()
}

// EngineSource adapts a live chronicle engine as a LedgerSource,
// delegating continuity to the engine's ledger.
func EngineSource(e *chronicle.Engine) LedgerSource {
	return engineSource{e: e}
}

type engineSource struct {
	e *chronicle.Engine
}

func (s engineSource) ArtifactCount() int {
	if s.e == nil {
		return 0
	}
	return s.e.Ledger().ArtifactCount()
}

func (s engineSource) MasterLineContinuity() float64 {
	if s.e == nil {
		return 0
	}
	return s.e.MasterLineContinuity()
}

// SnapshotSource adapts a detached ledger snapshot as a LedgerSource,
// recomputing continuity from the raw collections.
func SnapshotSource(s chronicle.LedgerSnapshot) LedgerSource {
	return snapshotSource{s: s}
}

type snapshotSource struct {
	s chronicle.LedgerSnapshot
}

func (s snapshotSource) ArtifactCount() int {
	return len(s.s.Artifacts)
}

func (s snapshotSource) MasterLineContinuity() float64 {
	return SnapshotContinuity(s.s)
}

// SnapshotContinuity recomputes master line continuity from a detached
// snapshot. It must agree exactly with the chronicle ledger's own
// evaluation on equivalent state.
func SnapshotContinuity(s chronicle.LedgerSnapshot) float64 {
	total := 0.0
	for _, legend := range s.Legends {
		total += math.Max(0.5, legend.Significance) + 0.15*float64(len(legend.Tags))
	}
	for _, school := range s.Schools {
		total += math.Max(0.25, school.Influence*0.75+0.2*float64(len(school.Cadre)))
	}
	for _, guild := range s.Guilds {
		total += math.Max(0.5, guild.Influence) + 0.1*float64(len(guild.Disciplines)) + 0.15*float64(len(guild.RefugeeCohort))
	}
	total += 0.25 * float64(len(s.Moments))
	return total
}
