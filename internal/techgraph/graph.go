package techgraph

// Graph is the collection of technology nodes and the links between them.
// Lookup by id is O(1); iteration follows insertion order.
type Graph struct {
	nodes map[string]*Node
	order []string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// Add inserts a node into the graph. A node with an id that is already
// present replaces the map entry but keeps the original iteration slot.
func (g *Graph) Add(n *Node) *Node {
	if n == nil || n.ID == "" {
		return nil
	}
	if _, ok := g.nodes[n.ID]; !ok {
		g.order = append(g.order, n.ID)
	}
	g.nodes[n.ID] = n
	return n
}

// AddNode creates an Operable node with the given attributes and inserts it.
func (g *Graph) AddNode(id, name string, resilience Resilience) *Node {
	return g.Add(NewNode(id, name, resilience))
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// LinkCount returns the number of unique links in the graph. Links are
// deduplicated by unordered endpoint pair.
func (g *Graph) LinkCount() int {
	seen := make(map[[2]string]bool)
	for _, id := range g.order {
		for _, l := range g.nodes[id].links {
			a, b := l.Endpoints()
			if a == nil || b == nil {
				continue
			}
			key := pairKey(a.ID, b.ID)
			seen[key] = true
		}
	}
	return len(seen)
}

// PreservedCount returns the number of nodes not yet Forgotten.
func (g *Graph) PreservedCount() int {
	count := 0
	for _, n := range g.nodes {
		if n.State != StateForgotten {
			count++
		}
	}
	return count
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}
