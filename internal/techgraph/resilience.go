package techgraph

// Resilience holds the per-state tick thresholds a node must accumulate
// before decaying one step further. Thresholds below 1 are treated as 1.
type Resilience struct {
	Operable int
	Fading   int
	Dormant  int
}

// DefaultResilience returns the baseline thresholds used for seeded worlds.
// The exact values are tuning parameters, not invariants.
func DefaultResilience() Resilience {
	return Resilience{Operable: 3, Fading: 2, Dormant: 2}
}

// threshold returns the decay threshold for the given pre-transition state.
// States without their own entry fall back to the Operable threshold.
func (r Resilience) threshold(state State) int {
	v := r.Operable
	switch state {
	case StateFading:
		v = r.Fading
	case StateDormant:
		v = r.Dormant
	}
	if v < 1 {
		return 1
	}
	return v
}
