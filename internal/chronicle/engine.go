package chronicle

import (
	"fmt"
	"math"
	"math/rand"
)

// ResolutionHook observes every event resolution with a detached copy of
// the finalized event. Hooks are the engine's only outward notification
// channel; any fan-out beyond them is the caller's concern.
type ResolutionHook func(Event)

// Option configures an Engine.
type Option func(*Engine)

// WithSeed seeds the engine's random source for reproducible draws.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand injects a random source directly.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithResolutionHook registers a hook invoked on every resolution,
// including auto-resolutions.
func WithResolutionHook(hook ResolutionHook) Option {
	return func(e *Engine) {
		if hook != nil {
			e.hooks = append(e.hooks, hook)
		}
	}
}

// Engine owns the event lifecycle: definitions, active and resolved
// events, the simulated clock and the legacy ledger. It is single-threaded
// by design; callers sharing an engine across goroutines must serialize
// access themselves.
type Engine struct {
	rng    *rand.Rand
	clock  float64
	nextID int64

	definitions map[Kind]map[string]Definition
	defOrder    map[Kind][]string
	active      map[Kind][]*Event
	resolved    map[Kind][]*Event
	ledger      *Ledger
	hooks       []ResolutionHook
}

// NewEngine creates an engine pre-loaded with the built-in definitions.
// Without WithSeed or WithRand the engine draws from a source seeded by
// the global generator, so runs are not reproducible.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rng: rand.New(rand.NewSource(rand.Int63())),
		definitions: map[Kind]map[string]Definition{
			KindCrisis:      {},
			KindOpportunity: {},
		},
		defOrder: map[Kind][]string{
			KindCrisis:      {},
			KindOpportunity: {},
		},
		active: map[Kind][]*Event{
			KindCrisis:      {},
			KindOpportunity: {},
		},
		resolved: map[Kind][]*Event{
			KindCrisis:      {},
			KindOpportunity: {},
		},
		ledger: NewLedger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, def := range builtinDefinitions() {
		e.RegisterDefinition(def.Kind, def.Type, def)
	}
	return e
}

// Clock returns the current simulated time.
func (e *Engine) Clock() float64 { return e.clock }

// RegisterDefinition stores a normalized definition under its type key,
// overwriting any previous registration. First registration fixes the
// type's position in DefinitionTypes.
func (e *Engine) RegisterDefinition(kind Kind, eventType string, def Definition) {
	if eventType == "" || e.definitions[kind] == nil {
		return
	}
	if _, exists := e.definitions[kind][eventType]; !exists {
		e.defOrder[kind] = append(e.defOrder[kind], eventType)
	}
	e.definitions[kind][eventType] = normalizeDefinition(kind, eventType, def)
}

// Definition returns the registered definition for a kind and type.
func (e *Engine) Definition(kind Kind, eventType string) (Definition, bool) {
	def, ok := e.definitions[kind][eventType]
	return def, ok
}

// DefinitionTypes returns the registered type keys for a kind, in
// registration order. The order is stable so seeded draws over the list
// stay reproducible.
func (e *Engine) DefinitionTypes(kind Kind) []string {
	types := make([]string, len(e.defOrder[kind]))
	copy(types, e.defOrder[kind])
	return types
}

// Trigger instantiates an event from a registered definition and adds it
// to the active collection. It returns nil when the type is unknown for
// the kind. The returned event is a detached copy.
func (e *Engine) Trigger(kind Kind, eventType string, ov Overrides) *Event {
	def, ok := e.definitions[kind][eventType]
	if !ok {
		return nil
	}

	e.nextID++
	ev := &Event{
		ID:          e.nextID,
		Kind:        kind,
		Type:        eventType,
		Name:        def.Name,
		Description: def.Description,
		Tags:        mergeTags(def.DefaultTags, ov.Tags),
		Metadata:    overlayStringMap(def.Metadata, ov.Metadata),
		Context:     cloneStringMap(ov.Context),
		StartedAt:   e.clock,
		Magnitude:   e.resolveMagnitude(def, ov),
		Duration:    e.resolveDuration(def, ov),
	}
	ev.Remaining = ev.Duration
	ev.Timeline = append(ev.Timeline, TimelineEntry{
		Time:      e.clock,
		State:     TimelineStarted,
		Remaining: ev.Remaining,
	})

	e.active[kind] = append(e.active[kind], ev)
	out := ev.clone()
	return &out
}

// resolveMagnitude picks the event's severity or value: a concrete
// override wins, a degenerate range pins the constant, otherwise the draw
// is uniform over [Min, Max].
func (e *Engine) resolveMagnitude(def Definition, ov Overrides) float64 {
	if ov.Magnitude != nil {
		return *ov.Magnitude
	}
	if def.Magnitude.Min == def.Magnitude.Max {
		return def.Magnitude.Min
	}
	return def.Magnitude.Min + e.rng.Float64()*(def.Magnitude.Max-def.Magnitude.Min)
}

// resolveDuration picks the event duration in ticks, rounded with a floor
// of 1: an explicit override wins, otherwise a uniform draw over
// [base-variance, base+variance] when variance is positive, else the base.
func (e *Engine) resolveDuration(def Definition, ov Overrides) float64 {
	if ov.Duration != nil {
		return roundDuration(*ov.Duration)
	}
	if def.DurationVariance > 0 {
		low := def.BaseDuration - def.DurationVariance
		high := def.BaseDuration + def.DurationVariance
		return roundDuration(low + e.rng.Float64()*(high-low))
	}
	return roundDuration(def.BaseDuration)
}

func roundDuration(v float64) float64 {
	rounded := math.Round(v)
	if rounded < 1 {
		return 1
	}
	return rounded
}

// Progress advances the simulated clock and every active event by
// elapsed ticks. Events whose remaining duration reaches zero are
// auto-resolved, strictly after the whole batch has been updated so no
// resolution side effect observes a half-updated batch. Non-positive
// elapsed is a no-op.
func (e *Engine) Progress(elapsed float64) {
	if elapsed <= 0 {
		return
	}
	e.clock += elapsed

	var due []*Event
	for _, kind := range []Kind{KindCrisis, KindOpportunity} {
		for _, ev := range e.active[kind] {
			ev.Elapsed += elapsed
			ev.Remaining = math.Max(0, ev.Duration-ev.Elapsed)
			ev.Timeline = append(ev.Timeline, TimelineEntry{
				Time:      e.clock,
				State:     TimelineProgress,
				Remaining: ev.Remaining,
			})
			if ev.Remaining == 0 {
				due = append(due, ev)
			}
		}
	}
	for _, ev := range due {
		e.Resolve(ev.Kind, ev.ID, Resolution{Auto: true})
	}
}

// Resolve removes the identified active event, derives its kind-specific
// outcome, appends it to the resolved history and returns a detached copy
// of the finalized event. Unknown identifiers return nil and mutate
// nothing.
func (e *Engine) Resolve(kind Kind, id int64, res Resolution) *Event {
	idx := -1
	for i, ev := range e.active[kind] {
		if ev.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	ev := e.active[kind][idx]
	e.active[kind] = append(e.active[kind][:idx], e.active[kind][idx+1:]...)

	ev.EndedAt = e.clock
	ev.Remaining = 0
	stored := res.clone()
	ev.Resolution = &stored
	ev.Timeline = append(ev.Timeline, TimelineEntry{
		Time:  e.clock,
		State: TimelineResolved,
	})

	outcome := &Outcome{}
	switch kind {
	case KindCrisis:
		impact := deriveCrisisImpact(ev, res)
		outcome.Crisis = &impact
	case KindOpportunity:
		result := e.deriveOpportunityResult(ev, res)
		outcome.Opportunity = &result
	}
	if res.Memory != nil {
		momentID := res.Memory.MomentID
		if momentID == "" {
			momentID = fmt.Sprintf("%s_%d", kind, ev.ID)
		}
		effect := e.ledger.RecordMemoryChoice(momentID, *res.Memory, e.clock)
		outcome.MemoryEffects = &effect
	}
	ev.Outcome = outcome

	e.resolved[kind] = append(e.resolved[kind], ev)

	out := ev.clone()
	for _, hook := range e.hooks {
		hook(out)
	}
	final := ev.clone()
	return &final
}

// RecordMemoryChoice records a choice against a memory moment, creating
// the moment on first use, and applies its ledger effect.
func (e *Engine) RecordMemoryChoice(momentID string, choice MemoryChoice) EffectResult {
	return e.ledger.RecordMemoryChoice(momentID, choice, e.clock)
}

// Ledger exposes the engine's ledger for score adapters and persistence.
// Mutations must go through engine operations.
func (e *Engine) Ledger() *Ledger { return e.ledger }

// MasterLineContinuity evaluates the ledger's continuity scalar.
func (e *Engine) MasterLineContinuity() float64 {
	return e.ledger.MasterLineContinuity()
}
