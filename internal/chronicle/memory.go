package chronicle

import (
	"math"
	"strings"
)

// MemoryChoice is one selection made at a memory moment. The Effect field
// names the ledger effect to apply; Type, Path and Mode are accepted
// aliases for callers that phrase the dispatch differently, first present
// wins, matched case-insensitively.
type MemoryChoice struct {
	MomentID  string
	Selection string

	Effect string
	Type   string
	Path   string
	Mode   string

	Prompt  string
	Context map[string]string
	Outcome string

	// Entity payloads for the dispatched effect. Only the one matching
	// the effect is read; the others are ignored.
	Legend *Legend
	School *School
	Guild  *Guild
}

func (c MemoryChoice) clone() MemoryChoice {
	c.Context = cloneStringMap(c.Context)
	if c.Legend != nil {
		l := c.Legend.clone()
		c.Legend = &l
	}
	if c.School != nil {
		s := c.School.clone()
		c.School = &s
	}
	if c.Guild != nil {
		g := c.Guild.clone()
		c.Guild = &g
	}
	return c
}

// effectKey returns the normalized dispatch key.
func (c MemoryChoice) effectKey() string {
	for _, v := range []string{c.Effect, c.Type, c.Path, c.Mode} {
		if strings.TrimSpace(v) != "" {
			return strings.ToLower(strings.TrimSpace(v))
		}
	}
	return ""
}

// Effect result types.
const (
	EffectCanonization     = "canonization"
	EffectSchoolSeeding    = "school_seeding"
	EffectGuildEmpowerment = "guild_empowerment"
	EffectMemory           = "memory"
)

// EffectResult is the ledger effect derived from one memory choice.
type EffectResult struct {
	Type         string
	Legend       *Legend
	School       *School
	Guild        *Guild
	LegacyWeight float64
}

func (r EffectResult) clone() EffectResult {
	if r.Legend != nil {
		l := r.Legend.clone()
		r.Legend = &l
	}
	if r.School != nil {
		s := r.School.clone()
		r.School = &s
	}
	if r.Guild != nil {
		g := r.Guild.clone()
		r.Guild = &g
	}
	return r
}

// applyChoice dispatches a memory choice into the ledger and derives its
// legacy weight. Unrecognized effects produce a neutral memory result with
// zero weight.
func (l *Ledger) applyChoice(choice MemoryChoice, now float64) EffectResult {
	switch choice.effectKey() {
	case "canonization", "canonize", "canonised":
		return l.applyCanonization(choice, now)
	case "school", "school_seeding", "seed_school", "seeding":
		return l.applySchoolSeeding(choice, now)
	case "guild", "empower_guild", "guild_empowerment":
		return l.applyGuildEmpowerment(choice, now)
	default:
		return EffectResult{Type: EffectMemory}
	}
}

func (l *Ledger) applyCanonization(choice MemoryChoice, now float64) EffectResult {
	in := Legend{Timestamp: now}
	if choice.Legend != nil {
		in = choice.Legend.clone()
		if in.Timestamp == 0 {
			in.Timestamp = now
		}
	}
	if in.Title == "" {
		in.Title = choice.Selection
	}
	legend := l.CanonizeLegend(in)
	weight := math.Max(1, legend.Significance) + 0.1*float64(len(legend.Tags))
	return EffectResult{Type: EffectCanonization, Legend: &legend, LegacyWeight: weight}
}

func (l *Ledger) applySchoolSeeding(choice MemoryChoice, now float64) EffectResult {
	in := School{SeededAt: now}
	if choice.School != nil {
		in = choice.School.clone()
		if in.SeededAt == 0 {
			in.SeededAt = now
		}
	}
	if in.Name == "" {
		in.Name = choice.Selection
	}
	school := l.SeedSchool(in)
	weight := math.Max(0.75, school.Influence+0.15*float64(len(school.Cadre)))
	return EffectResult{Type: EffectSchoolSeeding, School: &school, LegacyWeight: weight}
}

func (l *Ledger) applyGuildEmpowerment(choice MemoryChoice, now float64) EffectResult {
	in := Guild{EmpoweredAt: now, LastEmpowered: now}
	if choice.Guild != nil {
		in = choice.Guild.clone()
		if in.EmpoweredAt == 0 {
			in.EmpoweredAt = now
		}
		if in.LastEmpowered == 0 {
			in.LastEmpowered = now
		}
	}
	if in.Name == "" {
		in.Name = choice.Selection
	}
	guild := l.EmpowerGuild(in)
	weight := math.Max(1, guild.Influence) + 0.1*float64(len(guild.Disciplines))
	return EffectResult{Type: EffectGuildEmpowerment, Guild: &guild, LegacyWeight: weight}
}

// RecordMemoryChoice appends a choice to the moment with the given id,
// creating the moment on first use. An empty momentID keys the moment by
// the ledger's current moment count. The derived ledger effect is applied
// and returned.
func (l *Ledger) RecordMemoryChoice(momentID string, choice MemoryChoice, now float64) EffectResult {
	effect := l.applyChoice(choice, now)

	rec := l.moment(momentID, choice.Prompt, choice.Context)
	rec.Choices = append(rec.Choices, ChoiceRecord{
		Timestamp: now,
		Selection: choice.Selection,
		Effect:    effect.clone(),
	})
	if choice.Outcome != "" {
		rec.Outcome = choice.Outcome
		rec.ResolvedAt = now
	}
	return effect
}
