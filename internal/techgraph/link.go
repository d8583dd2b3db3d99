package techgraph

// Link is an undirected edge between two distinct nodes. At most one link
// exists between any unordered pair; Connect merges metadata into the
// existing link instead of creating a parallel edge.
type Link struct {
	a, b *Node

	// Metadata carries free-form annotations about the relationship.
	Metadata map[string]string
}

// Endpoints returns both endpoints of the link. Both are nil after the
// link has been disconnected.
func (l *Link) Endpoints() (*Node, *Node) {
	return l.a, l.b
}

// Other returns the endpoint opposite to n, or nil when n is not an
// endpoint or the link has been disconnected.
func (l *Link) Other(n *Node) *Node {
	switch n {
	case l.a:
		return l.b
	case l.b:
		return l.a
	default:
		return nil
	}
}

// Connect links two nodes. It returns nil when either node is nil or both
// are the same node. When the pair is already linked, non-empty metadata is
// merged into the existing link and that link is returned.
func Connect(a, b *Node, metadata map[string]string) *Link {
	if a == nil || b == nil || a == b {
		return nil
	}
	if existing := a.linkTo(b); existing != nil {
		if len(metadata) > 0 {
			if existing.Metadata == nil {
				existing.Metadata = make(map[string]string, len(metadata))
			}
			for k, v := range metadata {
				existing.Metadata[k] = v
			}
		}
		return existing
	}

	l := &Link{a: a, b: b}
	if len(metadata) > 0 {
		l.Metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			l.Metadata[k] = v
		}
	}
	a.links = append(a.links, l)
	b.links = append(b.links, l)
	return l
}

// Disconnect removes the link from both endpoints' incidence sets and
// clears its node references, leaving the link unusable.
func Disconnect(l *Link) {
	if l == nil {
		return
	}
	if l.a != nil {
		l.a.removeLink(l)
	}
	if l.b != nil {
		l.b.removeLink(l)
	}
	l.a, l.b = nil, nil
}
