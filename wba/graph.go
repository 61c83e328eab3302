package wba

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID prefixes. The node_ prefix is load-bearing: the command layer uses it
// to tell node ids apart from node labels.
const (
	nodeIDPrefix = "node_"
	edgeIDPrefix = "edge_"
)

// Graph is the causal graph store for a single project: an ordered
// collection of typed nodes and typed edges with mutation primitives.
//
// A Graph is a directed multigraph. It is not safe for concurrent mutation;
// each project owns exactly one graph and one session at a time.
type Graph struct {
	nodes []*Node
	edges []*Edge
}

// New creates an empty causal graph.
func New() *Graph {
	return &Graph{}
}

// FromSnapshot rebuilds a graph from persisted nodes and edges,
// preserving their order and ids.
func FromSnapshot(nodes []Node, edges []Edge) *Graph {
	g := &Graph{
		nodes: make([]*Node, 0, len(nodes)),
		edges: make([]*Edge, 0, len(edges)),
	}
	for i := range nodes {
		n := nodes[i]
		g.nodes = append(g.nodes, &n)
	}
	for i := range edges {
		e := edges[i]
		g.edges = append(g.edges, &e)
	}
	return g
}

// CreateNode adds a node of the given type, deduplicating case-insensitively
// on the (type, label) pair. It returns the node and whether it was actually
// created: when a matching node already exists, that node is returned
// unchanged and created is false.
func (g *Graph) CreateNode(t NodeType, label, description string) (node *Node, created bool) {
	if existing := g.findTyped(t, label); existing != nil {
		return existing, false
	}

	n := &Node{
		ID:          nodeIDPrefix + uuid.NewString(),
		Type:        t,
		Label:       label,
		Description: description,
		Confidence:  ConfidenceMedium,
	}
	g.nodes = append(g.nodes, n)
	return n, true
}

// CreateEdge adds a directed edge with the default medium confidence.
// Both endpoints must exist; duplicates of identical (source, target, type)
// are allowed.
func (g *Graph) CreateEdge(source, target string, t LinkType) (*Edge, error) {
	return g.CreateEdgeWithConfidence(source, target, t, ConfidenceMedium)
}

// CreateEdgeWithConfidence adds a directed edge with an explicit confidence.
func (g *Graph) CreateEdgeWithConfidence(source, target string, t LinkType, c Confidence) (*Edge, error) {
	if g.NodeByID(source) == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEndpoint, source)
	}
	if g.NodeByID(target) == nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEndpoint, target)
	}

	e := &Edge{
		ID:         edgeIDPrefix + uuid.NewString(),
		Source:     source,
		Target:     target,
		Type:       t,
		Confidence: c,
	}
	g.edges = append(g.edges, e)
	return e, nil
}

// DeleteNode removes the node with the given id and cascades deletion to
// every edge whose source or target references it. Deleting an unknown id
// is a no-op.
func (g *Graph) DeleteNode(id string) {
	idx := -1
	for i, n := range g.nodes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	g.nodes = append(g.nodes[:idx], g.nodes[idx+1:]...)

	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.Source != id && e.Target != id {
			kept = append(kept, e)
		}
	}
	g.edges = kept
}

// DeleteEdge removes the edge with the given id. Unknown ids are a no-op.
func (g *Graph) DeleteEdge(id string) {
	for i, e := range g.edges {
		if e.ID == id {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			return
		}
	}
}

// UpdateNode applies fn to the node with the given id.
// Returns ErrNodeNotFound when the id is unknown.
func (g *Graph) UpdateNode(id string, fn func(*Node)) error {
	n := g.NodeByID(id)
	if n == nil {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	fn(n)
	return nil
}

// NodeByID returns the node with the given id, or nil.
func (g *Graph) NodeByID(id string) *Node {
	for _, n := range g.nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// FindByLabel returns the first node whose label matches the given one,
// compared case-insensitively. Labels are not unique; first match wins.
func (g *Graph) FindByLabel(label string) *Node {
	for _, n := range g.nodes {
		if strings.EqualFold(n.Label, label) {
			return n
		}
	}
	return nil
}

// FindBySubstring returns the first node whose label contains the given
// text, compared case-insensitively.
func (g *Graph) FindBySubstring(sub string) *Node {
	lower := strings.ToLower(sub)
	for _, n := range g.nodes {
		if strings.Contains(strings.ToLower(n.Label), lower) {
			return n
		}
	}
	return nil
}

// FirstOfType returns the earliest-created node of the given type, or nil.
func (g *Graph) FirstOfType(t NodeType) *Node {
	for _, n := range g.nodes {
		if n.Type == t {
			return n
		}
	}
	return nil
}

// HasType reports whether any node of the given type exists.
func (g *Graph) HasType(t NodeType) bool {
	return g.FirstOfType(t) != nil
}

// Nodes returns the nodes in creation order. The returned slice is a copy;
// the pointed-to nodes are shared.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns the edges in creation order. The returned slice is a copy;
// the pointed-to edges are shared.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// IsNodeID reports whether s looks like a node id rather than a label.
func IsNodeID(s string) bool {
	return strings.HasPrefix(s, nodeIDPrefix)
}

func (g *Graph) findTyped(t NodeType, label string) *Node {
	for _, n := range g.nodes {
		if n.Type == t && strings.EqualFold(n.Label, label) {
			return n
		}
	}
	return nil
}
