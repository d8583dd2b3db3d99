package chronicle

// LedgerSnapshot is a detached, caller-owned copy of the ledger state.
type LedgerSnapshot struct {
	Legends   []Legend
	Schools   []School
	Guilds    []Guild
	Artifacts []Artifact
	Moments   []Moment
}

// Snapshot is a detached copy of the whole engine state at one moment of
// simulated time.
type Snapshot struct {
	Time                  float64
	ActiveCrises          []Event
	ActiveOpportunities   []Event
	ResolvedCrises        []Event
	ResolvedOpportunities []Event
	Ledger                LedgerSnapshot
}

// Active returns detached copies of the active events for a kind.
func (e *Engine) Active(kind Kind) []Event {
	events := e.active[kind]
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.clone())
	}
	return out
}

// Resolved returns detached copies of the resolved history for a kind.
func (e *Engine) Resolved(kind Kind) []Event {
	events := e.resolved[kind]
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.clone())
	}
	return out
}

// LedgerSnapshot returns a detached copy of the ledger collections.
func (e *Engine) LedgerSnapshot() LedgerSnapshot {
	return LedgerSnapshot{
		Legends:   e.ledger.Legends(),
		Schools:   e.ledger.Schools(),
		Guilds:    e.ledger.Guilds(),
		Artifacts: e.ledger.Artifacts(),
		Moments:   e.ledger.Moments(),
	}
}

// Snapshot returns a detached copy of the full engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Time:                  e.clock,
		ActiveCrises:          e.Active(KindCrisis),
		ActiveOpportunities:   e.Active(KindOpportunity),
		ResolvedCrises:        e.Resolved(KindCrisis),
		ResolvedOpportunities: e.Resolved(KindOpportunity),
		Ledger:                e.LedgerSnapshot(),
	}
}
