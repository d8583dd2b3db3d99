package techgraph

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/louisbranch/ashfall.world/internal/platform/errors"
)

// ResilienceRecord is the persisted form of a node's resilience table.
type ResilienceRecord struct {
	Operable int `json:"operable_resistance"`
	Fading   int `json:"fading_resistance"`
	Dormant  int `json:"dormant_resistance"`
}

// NodeRecord is the persisted form of a single node. Link topology is
// carried entirely by the neighbor id lists; no separate link records
// exist.
type NodeRecord struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	State         string           `json:"state"`
	DecayProgress int              `json:"decay_progress"`
	Resilience    ResilienceRecord `json:"resilience"`
	Neighbors     []string         `json:"neighbors"`
}

// Records returns the graph's nodes as persistable records, in insertion
// order. Neighbor lists are unique and follow link registration order.
func (g *Graph) Records() []NodeRecord {
	records := make([]NodeRecord, 0, len(g.order))
	for _, n := range g.Nodes() {
		neighbors := n.Neighbors()
		ids := make([]string, 0, len(neighbors))
		for _, other := range neighbors {
			ids = append(ids, other.ID)
		}
		records = append(records, NodeRecord{
			ID:            n.ID,
			Name:          n.Name,
			State:         n.State.String(),
			DecayProgress: n.DecayProgress,
			Resilience: ResilienceRecord{
				Operable: n.Resilience.Operable,
				Fading:   n.Resilience.Fading,
				Dormant:  n.Resilience.Dormant,
			},
			Neighbors: ids,
		})
	}
	return records
}

// FromRecords rebuilds a graph from persisted node records. Nodes are
// created first; neighbor ids are resolved in a second pass once the full
// id lookup exists, because links may reference nodes that appear later in
// the record list. Neighbor ids that resolve to no node are skipped.
//
// Each node's incidence list is rebuilt in its own recorded neighbor
// order rather than through Connect, which would register the shared
// link into both endpoints at once and skew the later endpoint's order.
func FromRecords(records []NodeRecord) *Graph {
	g := New()
	for _, rec := range records {
		if rec.ID == "" {
			continue
		}
		n := NewNode(rec.ID, rec.Name, Resilience{
			Operable: rec.Resilience.Operable,
			Fading:   rec.Resilience.Fading,
			Dormant:  rec.Resilience.Dormant,
		})
		n.State = ParseState(rec.State)
		if rec.DecayProgress > 0 {
			n.DecayProgress = rec.DecayProgress
		}
		g.Add(n)
	}
	for _, rec := range records {
		n, ok := g.Node(rec.ID)
		if !ok {
			continue
		}
		for _, id := range rec.Neighbors {
			other, ok := g.Node(id)
			if !ok || other == n {
				continue
			}
			if n.linkTo(other) != nil {
				continue
			}
			l := other.linkTo(n)
			if l == nil {
				l = &Link{a: n, b: other}
			}
			n.links = append(n.links, l)
		}
	}
	return g
}

// Encode serializes the graph to JSON.
func (g *Graph) Encode() ([]byte, error) {
	data, err := json.Marshal(g.Records())
	if err != nil {
		return nil, fmt.Errorf("encode graph: %w", err)
	}
	return data, nil
}

// Decode rebuilds a graph from JSON produced by Encode.
func Decode(data []byte) (*Graph, error) {
	var records []NodeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeGraphDecodeInvalid, "decode graph", err)
	}
	return FromRecords(records), nil
}
