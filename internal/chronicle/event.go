package chronicle

// Timeline entry states.
const (
	TimelineStarted  = "started"
	TimelineProgress = "progress"
	TimelineResolved = "resolved"
)

// TimelineEntry is one append-only log line in an event's history.
type TimelineEntry struct {
	Time      float64
	State     string
	Remaining float64
}

// Event is a live or resolved instance of a crisis or opportunity. Times
// are simulated ticks, not wall clock.
type Event struct {
	ID          int64
	Kind        Kind
	Type        string
	Name        string
	Description string
	Tags        []string
	Metadata    map[string]string
	Context     map[string]string

	StartedAt float64
	EndedAt   float64
	Elapsed   float64
	Duration  float64
	Remaining float64

	// Magnitude is the severity of a crisis or the value of an
	// opportunity, resolved once at creation.
	Magnitude float64

	Timeline   []TimelineEntry
	Resolution *Resolution
	Outcome    *Outcome
}

// Overrides adjusts a triggered event away from its definition. Nil
// pointer fields mean "use the definition".
type Overrides struct {
	// Magnitude pins severity or value instead of drawing from the
	// definition's range.
	Magnitude *float64
	// Duration pins the event duration (rounded, floor 1).
	Duration *float64
	// Tags are merged with the definition's default tags, duplicates
	// suppressed.
	Tags []string
	// Metadata overlays the definition's metadata.
	Metadata map[string]string
	// Context is free-form keyed data supplied by the trigger call.
	Context map[string]string
}

// Resolution describes how an active event ends. Zero-value fields are
// simply absent; the engine substitutes defaults.
type Resolution struct {
	// Auto marks a time-based resolution performed by Progress.
	Auto bool

	// Mitigation reduces a crisis's net severity. Aid is an alias used by
	// relief-driven callers; Mitigation wins when both are set.
	Mitigation *float64
	Aid        *float64
	// CommunityFocus shifts losses between population and infrastructure.
	// Defaults to 1.0.
	CommunityFocus *float64

	// Artifact cataloguing fields (opportunity type "artifact").
	ArtifactID   string
	ArtifactName string
	Curator      string
	Preserved    bool
	Story        string
	Significance float64

	// Guild fields (opportunity type "refugee_experts").
	GuildID             string
	GuildName           string
	Sponsor             string
	Disciplines         []string
	RefugeeNames        []string
	InfluenceMultiplier *float64

	// Memory, when present, records a memory choice as part of the
	// resolution; its effects surface under the event outcome.
	Memory *MemoryChoice

	// Notes carries genuinely open-ended resolution context.
	Notes map[string]string
}

// Outcome is the derived result attached to a resolved event.
type Outcome struct {
	Crisis        *CrisisImpact
	Opportunity   *OpportunityResult
	MemoryEffects *EffectResult
}

// CrisisImpact is the destructive fallout derived when a crisis resolves.
type CrisisImpact struct {
	Severity           float64
	NetSeverity        float64
	CommunityFocus     float64
	Disruption         float64
	PopulationLoss     int
	InfrastructureLoss int
	ResilienceTested   float64
	RecoveryIndex      float64
}

// OpportunityResult is the constructive outcome derived when an
// opportunity resolves.
type OpportunityResult struct {
	Value    float64
	Type     string
	Tags     []string
	Artifact *Artifact
	Guild    *Guild
}

// clone returns a deep copy of the event, safe to hand to callers.
func (e *Event) clone() Event {
	out := *e
	out.Tags = append([]string(nil), e.Tags...)
	out.Metadata = cloneStringMap(e.Metadata)
	out.Context = cloneStringMap(e.Context)
	out.Timeline = append([]TimelineEntry(nil), e.Timeline...)
	if e.Resolution != nil {
		res := e.Resolution.clone()
		out.Resolution = &res
	}
	if e.Outcome != nil {
		o := e.Outcome.clone()
		out.Outcome = &o
	}
	return out
}

func (r Resolution) clone() Resolution {
	out := r
	out.Mitigation = cloneFloat(r.Mitigation)
	out.Aid = cloneFloat(r.Aid)
	out.CommunityFocus = cloneFloat(r.CommunityFocus)
	out.InfluenceMultiplier = cloneFloat(r.InfluenceMultiplier)
	out.Disciplines = append([]string(nil), r.Disciplines...)
	out.RefugeeNames = append([]string(nil), r.RefugeeNames...)
	out.Notes = cloneStringMap(r.Notes)
	if r.Memory != nil {
		m := r.Memory.clone()
		out.Memory = &m
	}
	return out
}

func (o Outcome) clone() Outcome {
	out := o
	if o.Crisis != nil {
		c := *o.Crisis
		out.Crisis = &c
	}
	if o.Opportunity != nil {
		r := *o.Opportunity
		r.Tags = append([]string(nil), o.Opportunity.Tags...)
		if o.Opportunity.Artifact != nil {
			a := o.Opportunity.Artifact.clone()
			r.Artifact = &a
		}
		if o.Opportunity.Guild != nil {
			g := o.Opportunity.Guild.clone()
			r.Guild = &g
		}
		out.Opportunity = &r
	}
	if o.MemoryEffects != nil {
		m := o.MemoryEffects.clone()
		out.MemoryEffects = &m
	}
	return out
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	return &f
}

// mergeTags unions base and extra, preserving first-seen order and
// suppressing duplicates and blanks.
func mergeTags(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, tag := range list {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}

// overlayStringMap returns base overlaid by extra.
func overlayStringMap(base, extra map[string]string) map[string]string {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
