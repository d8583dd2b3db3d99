// Package techgraph models the world's technologies as a graph of nodes
// and undirected links, and owns the decay/relearn state machine that
// moves each technology between Operable, Fading, Dormant and Forgotten.
package techgraph

import "strings"

// State describes how alive a technology currently is.
type State int

const (
	// StateOperable is a technology in active use.
	StateOperable State = iota
	// StateFading is a technology losing practitioners.
	StateFading
	// StateDormant is a technology nobody currently practices.
	StateDormant
	// StateForgotten is a technology lost to the world. Terminal for decay.
	StateForgotten
)

func (s State) String() string {
	switch s {
	case StateOperable:
		return "Operable"
	case StateFading:
		return "Fading"
	case StateDormant:
		return "Dormant"
	case StateForgotten:
		return "Forgotten"
	default:
		return "Unknown"
	}
}

// ParseState resolves a state name case-insensitively. Unknown names
// resolve to StateOperable.
func ParseState(name string) State {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fading":
		return StateFading
	case "dormant":
		return StateDormant
	case "forgotten":
		return StateForgotten
	default:
		return StateOperable
	}
}

// decayed returns the next state along the decay order.
func (s State) decayed() State {
	switch s {
	case StateOperable:
		return StateFading
	case StateFading:
		return StateDormant
	case StateDormant:
		return StateForgotten
	default:
		return StateForgotten
	}
}

// relearned returns the next state along the relearn order.
func (s State) relearned() State {
	switch s {
	case StateForgotten:
		return StateDormant
	case StateDormant:
		return StateFading
	default:
		return StateOperable
	}
}

// Node is a single technology in the graph. A node owns its membership in
// incident links but not the link objects themselves; links are shared
// between their two endpoints.
type Node struct {
	ID            string
	Name          string
	State         State
	DecayProgress int
	Resilience    Resilience

	links []*Link
}

// NewNode creates a node in the Operable state.
func NewNode(id, name string, resilience Resilience) *Node {
	return &Node{
		ID:         id,
		Name:       name,
		State:      StateOperable,
		Resilience: resilience,
	}
}

// ApplyDecay accumulates one tick of decay pressure and advances the node
// one step along the decay order once its current state's threshold is
// reached. Forgotten nodes are left untouched. It returns the resulting
// state.
func (n *Node) ApplyDecay() State {
	if n.State == StateForgotten {
		return n.State
	}
	n.DecayProgress++
	if n.DecayProgress >= n.Resilience.threshold(n.State) {
		n.DecayProgress = 0
		n.State = n.State.decayed()
	}
	return n.State
}

// Relearn resets decay progress and advances the node up to steps single
// steps along the relearn order, stopping the instant Operable is reached.
// Non-positive steps leave the node untouched. It returns the resulting
// state.
func (n *Node) Relearn(steps int) State {
	if steps <= 0 {
		return n.State
	}
	n.DecayProgress = 0
	for i := 0; i < steps && n.State != StateOperable; i++ {
		n.State = n.State.relearned()
	}
	return n.State
}

// Neighbors returns the nodes linked to n, unique, in link registration
// order.
func (n *Node) Neighbors() []*Node {
	seen := make(map[string]bool, len(n.links))
	neighbors := make([]*Node, 0, len(n.links))
	for _, l := range n.links {
		other := l.Other(n)
		if other == nil || seen[other.ID] {
			continue
		}
		seen[other.ID] = true
		neighbors = append(neighbors, other)
	}
	return neighbors
}

// Links returns the node's incident links in registration order.
func (n *Node) Links() []*Link {
	out := make([]*Link, len(n.links))
	copy(out, n.links)
	return out
}

// linkTo returns the existing link between n and other, if any.
func (n *Node) linkTo(other *Node) *Link {
	for _, l := range n.links {
		if l.Other(n) == other {
			return l
		}
	}
	return nil
}

func (n *Node) removeLink(target *Link) {
	for i, l := range n.links {
		if l == target {
			n.links = append(n.links[:i], n.links[i+1:]...)
			return
		}
	}
}
