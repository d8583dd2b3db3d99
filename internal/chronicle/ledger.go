package chronicle

import (
	"fmt"
	"math"
)

// Legend is a canonized account of something the world must not lose.
type Legend struct {
	ID           string
	Title        string
	Significance float64
	Tags         []string
	Source       string
	Timestamp    float64
}

func (l Legend) clone() Legend {
	l.Tags = append([]string(nil), l.Tags...)
	return l
}

// School is a seeded institution keeping a focus alive in a region.
type School struct {
	ID        string
	Name      string
	Region    string
	Focus     string
	Cadre     []string
	Influence float64
	SeededAt  float64
}

func (s School) clone() School {
	s.Cadre = append([]string(nil), s.Cadre...)
	return s
}

// Guild is an empowered craft organization. Influence accumulates across
// contributions; refugee integration extends the cohort.
type Guild struct {
	ID            string
	Name          string
	Disciplines   []string
	Influence     float64
	RefugeeCohort []string
	EmpoweredAt   float64
	LastEmpowered float64
	Sponsor       string
}

func (g Guild) clone() Guild {
	g.Disciplines = append([]string(nil), g.Disciplines...)
	g.RefugeeCohort = append([]string(nil), g.RefugeeCohort...)
	return g
}

// Artifact is a catalogued find from a resolved opportunity.
type Artifact struct {
	ID           string
	Name         string
	DiscoveredAt float64
	CataloguedAt float64
	Rarity       float64
	Preserved    bool
	Curator      string
	Significance float64
	Story        string
	Tags         []string
	MomentID     string
}

func (a Artifact) clone() Artifact {
	a.Tags = append([]string(nil), a.Tags...)
	return a
}

// ChoiceRecord is one recorded selection within a memory moment.
type ChoiceRecord struct {
	Timestamp float64
	Selection string
	Effect    EffectResult
}

// Moment is a named decision point. It accumulates choice history; it is
// never replaced.
type Moment struct {
	ID         string
	Prompt     string
	Context    map[string]string
	Choices    []ChoiceRecord
	ResolvedAt float64
	Outcome    string
}

func (m Moment) clone() Moment {
	m.Context = cloneStringMap(m.Context)
	choices := make([]ChoiceRecord, len(m.Choices))
	for i, c := range m.Choices {
		c.Effect = c.Effect.clone()
		choices[i] = c
	}
	m.Choices = choices
	return m
}

// RefugeeRecord is an audit entry appended on each refugee integration.
type RefugeeRecord struct {
	Time      float64
	GuildID   string
	Names     []string
	Influence float64
}

// Ledger is the accumulated legacy state: canonized legends, seeded
// schools, empowered guilds, the artifact catalog and memory moments.
// Every record is upserted: re-using an id merges rather than replaces.
type Ledger struct {
	legends   map[string]*Legend
	schools   map[string]*School
	guilds    map[string]*Guild
	artifacts map[string]*Artifact
	moments   map[string]*Moment

	legendOrder   []string
	schoolOrder   []string
	guildOrder    []string
	artifactOrder []string
	momentOrder   []string

	refugeeNetwork []RefugeeRecord
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		legends:   make(map[string]*Legend),
		schools:   make(map[string]*School),
		guilds:    make(map[string]*Guild),
		artifacts: make(map[string]*Artifact),
		moments:   make(map[string]*Moment),
	}
}

func autoID(kind string, size int) string {
	return fmt.Sprintf("%s_%03d", kind, size+1)
}

// CanonizeLegend upserts a legend. Significance overwrites when supplied
// (defaulting to 1.0 on first write), tags union, source and timestamp
// overwrite when non-zero. It returns a copy of the merged record.
func (l *Ledger) CanonizeLegend(in Legend) Legend {
	id := in.ID
	if id == "" {
		id = autoID("legend", len(l.legends))
	}
	rec, ok := l.legends[id]
	if !ok {
		rec = &Legend{ID: id, Significance: 1.0}
		l.legends[id] = rec
		l.legendOrder = append(l.legendOrder, id)
	}
	if in.Title != "" {
		rec.Title = in.Title
	}
	if in.Significance != 0 {
		rec.Significance = in.Significance
	}
	rec.Tags = mergeTags(rec.Tags, in.Tags)
	if in.Source != "" {
		rec.Source = in.Source
	}
	if in.Timestamp != 0 {
		rec.Timestamp = in.Timestamp
	}
	return rec.clone()
}

// SeedSchool upserts a school. Influence accumulates, cadre unions in
// order, scalar fields overwrite when supplied.
func (l *Ledger) SeedSchool(in School) School {
	id := in.ID
	if id == "" {
		id = autoID("school", len(l.schools))
	}
	rec, ok := l.schools[id]
	if !ok {
		rec = &School{ID: id}
		l.schools[id] = rec
		l.schoolOrder = append(l.schoolOrder, id)
	}
	if in.Name != "" {
		rec.Name = in.Name
	}
	if in.Region != "" {
		rec.Region = in.Region
	}
	if in.Focus != "" {
		rec.Focus = in.Focus
	}
	rec.Cadre = mergeTags(rec.Cadre, in.Cadre)
	rec.Influence += in.Influence
	if in.SeededAt != 0 || !ok {
		rec.SeededAt = in.SeededAt
	}
	return rec.clone()
}

// EmpowerGuild upserts a guild. Influence accumulates, disciplines and
// refugee cohort union, LastEmpowered tracks the latest contribution.
func (l *Ledger) EmpowerGuild(in Guild) Guild {
	id := in.ID
	if id == "" {
		id = autoID("guild", len(l.guilds))
	}
	rec, ok := l.guilds[id]
	if !ok {
		rec = &Guild{ID: id, EmpoweredAt: in.EmpoweredAt}
		l.guilds[id] = rec
		l.guildOrder = append(l.guildOrder, id)
	}
	if in.Name != "" {
		rec.Name = in.Name
	}
	if in.Sponsor != "" {
		rec.Sponsor = in.Sponsor
	}
	rec.Disciplines = mergeTags(rec.Disciplines, in.Disciplines)
	rec.RefugeeCohort = mergeTags(rec.RefugeeCohort, in.RefugeeCohort)
	rec.Influence += in.Influence
	if in.LastEmpowered != 0 {
		rec.LastEmpowered = in.LastEmpowered
	} else if in.EmpoweredAt != 0 {
		rec.LastEmpowered = in.EmpoweredAt
	}
	return rec.clone()
}

// CatalogueArtifact upserts an artifact. Scalar fields overwrite when
// supplied, tags union, the preserved flag is sticky once set.
func (l *Ledger) CatalogueArtifact(in Artifact) Artifact {
	id := in.ID
	if id == "" {
		id = autoID("artifact", len(l.artifacts))
	}
	rec, ok := l.artifacts[id]
	if !ok {
		rec = &Artifact{ID: id}
		l.artifacts[id] = rec
		l.artifactOrder = append(l.artifactOrder, id)
	}
	if in.Name != "" {
		rec.Name = in.Name
	}
	if in.DiscoveredAt != 0 || !ok {
		rec.DiscoveredAt = in.DiscoveredAt
	}
	if in.CataloguedAt != 0 || !ok {
		rec.CataloguedAt = in.CataloguedAt
	}
	if in.Rarity != 0 {
		rec.Rarity = in.Rarity
	}
	if in.Preserved {
		rec.Preserved = true
	}
	if in.Curator != "" {
		rec.Curator = in.Curator
	}
	if in.Significance != 0 {
		rec.Significance = in.Significance
	}
	if in.Story != "" {
		rec.Story = in.Story
	}
	rec.Tags = mergeTags(rec.Tags, in.Tags)
	if in.MomentID != "" {
		rec.MomentID = in.MomentID
	}
	return rec.clone()
}

// moment returns the moment with the given id, creating it on first use.
func (l *Ledger) moment(id, prompt string, context map[string]string) *Moment {
	if id == "" {
		id = fmt.Sprintf("moment_%d", len(l.moments))
	}
	rec, ok := l.moments[id]
	if !ok {
		rec = &Moment{ID: id, Prompt: prompt, Context: cloneStringMap(context)}
		l.moments[id] = rec
		l.momentOrder = append(l.momentOrder, id)
	}
	return rec
}

// MasterLineContinuity is the scalar summary of accumulated legacy weight
// across all ledger categories. The legacy score aggregator re-implements
// the same arithmetic against detached snapshots; the two must agree.
func (l *Ledger) MasterLineContinuity() float64 {
	total := 0.0
	for _, id := range l.legendOrder {
		rec := l.legends[id]
		total += math.Max(0.5, rec.Significance) + 0.15*float64(len(rec.Tags))
	}
	for _, id := range l.schoolOrder {
		rec := l.schools[id]
		total += math.Max(0.25, rec.Influence*0.75+0.2*float64(len(rec.Cadre)))
	}
	for _, id := range l.guildOrder {
		rec := l.guilds[id]
		total += math.Max(0.5, rec.Influence) + 0.1*float64(len(rec.Disciplines)) + 0.15*float64(len(rec.RefugeeCohort))
	}
	total += 0.25 * float64(len(l.moments))
	return total
}

// Counts.

// ArtifactCount returns the number of catalogued artifacts.
func (l *Ledger) ArtifactCount() int { return len(l.artifacts) }

// MomentCount returns the number of memory moments.
func (l *Ledger) MomentCount() int { return len(l.moments) }

// Accessors returning deep copies in insertion order.

// Legends returns the canonized legends.
func (l *Ledger) Legends() []Legend {
	out := make([]Legend, 0, len(l.legendOrder))
	for _, id := range l.legendOrder {
		out = append(out, l.legends[id].clone())
	}
	return out
}

// Schools returns the seeded schools.
func (l *Ledger) Schools() []School {
	out := make([]School, 0, len(l.schoolOrder))
	for _, id := range l.schoolOrder {
		out = append(out, l.schools[id].clone())
	}
	return out
}

// Guilds returns the empowered guilds.
func (l *Ledger) Guilds() []Guild {
	out := make([]Guild, 0, len(l.guildOrder))
	for _, id := range l.guildOrder {
		out = append(out, l.guilds[id].clone())
	}
	return out
}

// Artifacts returns the artifact catalog.
func (l *Ledger) Artifacts() []Artifact {
	out := make([]Artifact, 0, len(l.artifactOrder))
	for _, id := range l.artifactOrder {
		out = append(out, l.artifacts[id].clone())
	}
	return out
}

// Moments returns the memory moments with their full choice history.
func (l *Ledger) Moments() []Moment {
	out := make([]Moment, 0, len(l.momentOrder))
	for _, id := range l.momentOrder {
		out = append(out, l.moments[id].clone())
	}
	return out
}
