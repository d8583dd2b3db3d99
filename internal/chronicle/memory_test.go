package chronicle

import (
	"math"
	"testing"
)

func TestRecordMemoryChoiceAccumulatesHistory(t *testing.T) {
	e := NewEngine(WithSeed(1))

	e.RecordMemoryChoice("kiln_watch", MemoryChoice{
		Selection: "Keep the kiln lit through winter",
		Prompt:    "What does the settlement refuse to let go cold?",
		Effect:    "school",
		School:    &School{ID: "kiln", Name: "Kiln Watch", Influence: 1},
	})
	e.Progress(3)
	e.RecordMemoryChoice("kiln_watch", MemoryChoice{
		Selection: "Apprentice the ferry children",
		Effect:    "school",
		School:    &School{ID: "kiln", Cadre: []string{"Tama"}},
	})

	moments := e.Ledger().Moments()
	if len(moments) != 1 {
		t.Fatalf("expected one moment, got %d", len(moments))
	}
	m := moments[0]
	if len(m.Choices) != 2 {
		t.Fatalf("expected two choice entries, got %d", len(m.Choices))
	}
	if m.Prompt != "What does the settlement refuse to let go cold?" {
		t.Fatalf("expected prompt from first use, got %q", m.Prompt)
	}
	if m.Choices[0].Timestamp != 0 || m.Choices[1].Timestamp != 3 {
		t.Fatalf("expected choice timestamps 0 and 3, got %v and %v", m.Choices[0].Timestamp, m.Choices[1].Timestamp)
	}
}

func TestRecordMemoryChoiceDefaultsMomentID(t *testing.T) {
	e := NewEngine(WithSeed(1))

	e.RecordMemoryChoice("", MemoryChoice{Selection: "first"})
	e.RecordMemoryChoice("", MemoryChoice{Selection: "second"})

	moments := e.Ledger().Moments()
	if len(moments) != 2 {
		t.Fatalf("expected two moments, got %d", len(moments))
	}
	if moments[0].ID != "moment_0" || moments[1].ID != "moment_1" {
		t.Fatalf("expected size-derived moment ids, got %q and %q", moments[0].ID, moments[1].ID)
	}
}

func TestEffectDispatchAliases(t *testing.T) {
	tests := []struct {
		name   string
		choice MemoryChoice
		want   string
	}{
		{name: "canonize", choice: MemoryChoice{Effect: "canonize"}, want: EffectCanonization},
		{name: "canonised via type", choice: MemoryChoice{Type: "Canonised"}, want: EffectCanonization},
		{name: "seed_school via path", choice: MemoryChoice{Path: "seed_school"}, want: EffectSchoolSeeding},
		{name: "seeding", choice: MemoryChoice{Effect: "seeding"}, want: EffectSchoolSeeding},
		{name: "guild via mode", choice: MemoryChoice{Mode: "GUILD"}, want: EffectGuildEmpowerment},
		{name: "empower_guild", choice: MemoryChoice{Effect: "empower_guild"}, want: EffectGuildEmpowerment},
		{name: "unknown is neutral", choice: MemoryChoice{Effect: "shrug"}, want: EffectMemory},
		{name: "empty is neutral", choice: MemoryChoice{}, want: EffectMemory},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine(WithSeed(1))
			effect := e.RecordMemoryChoice("m", tc.choice)
			if effect.Type != tc.want {
				t.Fatalf("expected effect %q, got %q", tc.want, effect.Type)
			}
			if tc.want == EffectMemory && effect.LegacyWeight != 0 {
				t.Fatalf("expected zero weight for neutral effect, got %v", effect.LegacyWeight)
			}
		})
	}
}

func TestEffectPrecedenceIsFirstPresent(t *testing.T) {
	e := NewEngine(WithSeed(1))
	effect := e.RecordMemoryChoice("m", MemoryChoice{
		Effect: "canonize",
		Type:   "guild",
	})
	if effect.Type != EffectCanonization {
		t.Fatalf("expected Effect field to win over Type, got %q", effect.Type)
	}
}

func TestLegacyWeightFormulas(t *testing.T) {
	e := NewEngine(WithSeed(1))

	legend := e.RecordMemoryChoice("m", MemoryChoice{
		Effect: "canonize",
		Legend: &Legend{ID: "l", Significance: 0.5, Tags: []string{"a", "b", "c"}},
	})
	// max(1, 0.5) + 0.1*3 = 1.3
	if math.Abs(legend.LegacyWeight-1.3) > 1e-9 {
		t.Fatalf("expected canonization weight 1.3, got %v", legend.LegacyWeight)
	}

	school := e.RecordMemoryChoice("m", MemoryChoice{
		Effect: "school",
		School: &School{ID: "s", Influence: 0.2, Cadre: []string{"x", "y"}},
	})
	// max(0.75, 0.2 + 0.15*2) = 0.75
	if math.Abs(school.LegacyWeight-0.75) > 1e-9 {
		t.Fatalf("expected school weight 0.75, got %v", school.LegacyWeight)
	}

	guild := e.RecordMemoryChoice("m", MemoryChoice{
		Effect: "guild",
		Guild:  &Guild{ID: "g", Influence: 2, Disciplines: []string{"d"}},
	})
	// max(1, 2) + 0.1*1 = 2.1
	if math.Abs(guild.LegacyWeight-2.1) > 1e-9 {
		t.Fatalf("expected guild weight 2.1, got %v", guild.LegacyWeight)
	}
}

func TestNeutralChoiceStillRecordsHistory(t *testing.T) {
	e := NewEngine(WithSeed(1))
	e.RecordMemoryChoice("quiet", MemoryChoice{Selection: "Say nothing", Outcome: "the silence holds"})

	moments := e.Ledger().Moments()
	if len(moments) != 1 || len(moments[0].Choices) != 1 {
		t.Fatalf("expected recorded neutral choice, got %+v", moments)
	}
	if moments[0].Outcome != "the silence holds" {
		t.Fatalf("expected recorded outcome, got %q", moments[0].Outcome)
	}
}
