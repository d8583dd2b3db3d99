// Package chronicle implements the event lifecycle engine: crisis and
// opportunity definitions, event instantiation, time-based progression,
// resolution into derived impacts, and the legacy ledger those resolutions
// feed.
package chronicle

import (
	"strings"
	"unicode"
)

// Kind separates the two event families.
type Kind string

const (
	// KindCrisis events carry a severity magnitude and a destructive impact.
	KindCrisis Kind = "crisis"
	// KindOpportunity events carry a value magnitude and a constructive outcome.
	KindOpportunity Kind = "opportunity"
)

// Range bounds a magnitude or duration draw. Equal Min and Max pin the
// draw to a constant.
type Range struct {
	Min float64
	Max float64
}

// Definition is a named template for a crisis or opportunity type.
type Definition struct {
	Kind             Kind
	Type             string
	Name             string
	Description      string
	BaseDuration     float64
	DurationVariance float64
	Magnitude        Range
	DefaultTags      []string
	Metadata         map[string]string
	MemoryPrompt     string
}

// normalizeDefinition fills the fields every registered definition must
// carry: kind, type, a display name (capitalized type when absent), and a
// non-nil tag list.
func normalizeDefinition(kind Kind, eventType string, def Definition) Definition {
	def.Kind = kind
	def.Type = eventType
	if strings.TrimSpace(def.Name) == "" {
		def.Name = capitalize(eventType)
	}
	if def.DefaultTags == nil {
		def.DefaultTags = []string{}
	}
	return def
}

func capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

// builtinDefinitions returns the default crisis and opportunity templates
// every engine starts with. Duration and magnitude constants are tuning
// parameters.
func builtinDefinitions() []Definition {
	return []Definition{
		{
			Kind:             KindCrisis,
			Type:             "epidemic",
			Name:             "Epidemic",
			Description:      "A sickness moves through the settlement faster than its healers.",
			BaseDuration:     6,
			DurationVariance: 2,
			Magnitude:        Range{Min: 1.5, Max: 4.5},
			DefaultTags:      []string{"illness", "population"},
			MemoryPrompt:     "Who tended the sick when the healers themselves fell?",
		},
		{
			Kind:             KindCrisis,
			Type:             "blight",
			Name:             "Blight",
			Description:      "The harvest blackens in the field season after season.",
			BaseDuration:     8,
			DurationVariance: 3,
			Magnitude:        Range{Min: 1, Max: 4},
			DefaultTags:      []string{"harvest", "famine"},
			MemoryPrompt:     "What was traded away to keep the granaries from emptying?",
		},
		{
			Kind:             KindOpportunity,
			Type:             "artifact",
			Name:             "Artifact",
			Description:      "Something old and deliberate surfaces from the ash layer.",
			BaseDuration:     4,
			DurationVariance: 1,
			Magnitude:        Range{Min: 1, Max: 3},
			DefaultTags:      []string{"relic"},
			MemoryPrompt:     "What account travels with the find?",
		},
		{
			Kind:             KindOpportunity,
			Type:             "refugee_experts",
			Name:             "Refugee experts",
			Description:      "Displaced craftspeople arrive carrying skills the world was losing.",
			BaseDuration:     5,
			DurationVariance: 2,
			Magnitude:        Range{Min: 1, Max: 2.5},
			DefaultTags:      []string{"refuge", "craft"},
			MemoryPrompt:     "Which of the newcomers' crafts is taken in, and at what table?",
		},
	}
}
