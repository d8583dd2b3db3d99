// Package legacy scores a world snapshot: how much of the technology
// graph survives, how densely it is interlinked, and how much accumulated
// legacy the chronicle ledger carries. Calculate is a pure function over
// adapter interfaces; it never mutates its sources.
package legacy

import "math"

// NodeSource exposes the graph-side metrics of a snapshot.
type NodeSource interface {
	// NodeCount is the total number of technology nodes.
	NodeCount() int
	// PreservedCount is the number of nodes not yet Forgotten.
	PreservedCount() int
	// LinkCount is the number of unique undirected links, deduplicated by
	// unordered endpoint pair.
	LinkCount() int
}

// LedgerSource exposes the ledger-side metrics of a snapshot.
type LedgerSource interface {
	// ArtifactCount is the size of the artifact catalog.
	ArtifactCount() int
	// MasterLineContinuity is the accumulated legacy weight scalar.
	MasterLineContinuity() float64
}

// Outcome tier names, highest first.
const (
	OutcomeEternalLineage  = "Eternal Lineage"
	OutcomeResilientHearth = "Resilient Hearth"
	OutcomeFlickeringEcho  = "Flickering Echo"
	OutcomeAshboundSilence = "Ashbound Silence"
)

// Metric weights.
const (
	weightPillars    = 4
	weightDensity    = 40
	weightArtifacts  = 6
	weightContinuity = 8
)

// DefaultThresholds returns the default outcome ladder. The lowest tier
// is the fallback and carries a zero threshold.
func DefaultThresholds() map[string]float64 {
	return map[string]float64{
		OutcomeEternalLineage:  120,
		OutcomeResilientHearth: 80,
		OutcomeFlickeringEcho:  45,
		OutcomeAshboundSilence: 0,
	}
}

// Breakdown carries the four component metrics of a report.
type Breakdown struct {
	PreservedPillars     int
	InterlinkDensity     float64
	ArtifactCount        int
	MasterLineContinuity float64
}

// Report is the scored snapshot.
type Report struct {
	PreservedPillars     int
	InterlinkDensity     float64
	ArtifactCount        int
	MasterLineContinuity float64
	TotalScore           float64
	Outcome              string
	Breakdown            Breakdown
	Thresholds           map[string]float64
}

// Option adjusts a single Calculate call.
type Option func(*options)

type options struct {
	continuity *float64
	thresholds map[string]float64
}

// WithContinuity overrides the master line continuity instead of reading
// it from the ledger source.
func WithContinuity(v float64) Option {
	return func(o *options) {
		o.continuity = &v
	}
}

// WithThresholds merges custom tier thresholds over the defaults.
func WithThresholds(overrides map[string]float64) Option {
	return func(o *options) {
		for tier, v := range overrides {
			o.thresholds[tier] = v
		}
	}
}

// Calculate scores a snapshot. Nil sources contribute zero to every
// metric they back.
func Calculate(nodes NodeSource, ledger LedgerSource, opts ...Option) Report {
	o := options{thresholds: DefaultThresholds()}
	for _, opt := range opts {
		opt(&o)
	}

	pillars := 0
	density := 0.0
	if nodes != nil {
		pillars = nodes.PreservedCount()
		density = interlinkDensity(nodes.NodeCount(), nodes.LinkCount())
	}

	artifacts := 0
	continuity := 0.0
	if ledger != nil {
		artifacts = ledger.ArtifactCount()
		continuity = ledger.MasterLineContinuity()
	}
	if o.continuity != nil {
		continuity = *o.continuity
	}

	total := float64(pillars)*weightPillars +
		density*weightDensity +
		float64(artifacts)*weightArtifacts +
		continuity*weightContinuity

	return Report{
		PreservedPillars:     pillars,
		InterlinkDensity:     density,
		ArtifactCount:        artifacts,
		MasterLineContinuity: continuity,
		TotalScore:           total,
		Outcome:              outcomeFor(total, o.thresholds),
		Breakdown: Breakdown{
			PreservedPillars:     pillars,
			InterlinkDensity:     density,
			ArtifactCount:        artifacts,
			MasterLineContinuity: continuity,
		},
		Thresholds: o.thresholds,
	}
}

// interlinkDensity is unique links over C(n, 2), clamped to [0, 1]. It is
// zero for graphs of one node or fewer.
func interlinkDensity(nodeCount, linkCount int) float64 {
	if nodeCount <= 1 {
		return 0
	}
	possible := float64(nodeCount) * float64(nodeCount-1) / 2
	return math.Min(1, math.Max(0, float64(linkCount)/possible))
}

// outcomeFor picks the highest qualifying tier.
func outcomeFor(total float64, thresholds map[string]float64) string {
	for _, tier := range []string{OutcomeEternalLineage, OutcomeResilientHearth, OutcomeFlickeringEcho} {
		if min, ok := thresholds[tier]; ok && total >= min {
			return tier
		}
	}
	return OutcomeAshboundSilence
}
