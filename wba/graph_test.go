package wba

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNodeType(t *testing.T) {
	for _, valid := range []string{"problem", "cause", "condition", "action", "omission", "evidence"} {
		nt, err := ParseNodeType(valid)
		assert.NoError(t, err)
		assert.Equal(t, NodeType(valid), nt)
	}

	_, err := ParseNodeType("monster")
	assert.ErrorIs(t, err, ErrInvalidNodeType)
}

func TestParseLinkType(t *testing.T) {
	for _, valid := range []string{"necessary", "contributing", "possible", "correlation"} {
		lt, err := ParseLinkType(valid)
		assert.NoError(t, err)
		assert.Equal(t, LinkType(valid), lt)
	}

	_, err := ParseLinkType("sufficient")
	assert.ErrorIs(t, err, ErrInvalidLinkType)
}

func TestCreateNodeDeduplicates(t *testing.T) {
	g := New()

	first, created := g.CreateNode(NodeCause, "Disk full", "")
	require.True(t, created)
	require.NotNil(t, first)
	assert.True(t, strings.HasPrefix(first.ID, "node_"))
	assert.Equal(t, ConfidenceMedium, first.Confidence)

	// Same (type, label) in a different case is a no-op, not an error.
	second, created := g.CreateNode(NodeCause, "DISK FULL", "other description")
	assert.False(t, created)
	assert.Same(t, first, second)
	assert.Equal(t, 1, g.NodeCount())

	// Same label under a different type is a distinct node.
	_, created = g.CreateNode(NodeEvidence, "Disk full", "")
	assert.True(t, created)
	assert.Equal(t, 2, g.NodeCount())
}

func TestCreateEdgeEndpointIntegrity(t *testing.T) {
	g := New()
	a, _ := g.CreateNode(NodeCause, "a", "")
	b, _ := g.CreateNode(NodeProblem, "b", "")

	e, err := g.CreateEdge(a.ID, b.ID, LinkNecessary)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(e.ID, "edge_"))
	assert.Equal(t, a.ID, e.Source)
	assert.Equal(t, b.ID, e.Target)

	_, err = g.CreateEdge(a.ID, "node_missing", LinkNecessary)
	assert.ErrorIs(t, err, ErrInvalidEndpoint)
	_, err = g.CreateEdge("node_missing", b.ID, LinkNecessary)
	assert.ErrorIs(t, err, ErrInvalidEndpoint)
	assert.Equal(t, 1, g.EdgeCount())

	// Every edge endpoint must reference an existing node.
	for _, edge := range g.Edges() {
		assert.NotNil(t, g.NodeByID(edge.Source))
		assert.NotNil(t, g.NodeByID(edge.Target))
	}
}

func TestDuplicateEdgesAllowed(t *testing.T) {
	g := New()
	a, _ := g.CreateNode(NodeCause, "a", "")
	b, _ := g.CreateNode(NodeProblem, "b", "")

	_, err := g.CreateEdge(a.ID, b.ID, LinkNecessary)
	require.NoError(t, err)
	_, err = g.CreateEdge(a.ID, b.ID, LinkNecessary)
	require.NoError(t, err)

	assert.Equal(t, 2, g.EdgeCount())
}

func TestDeleteNodeCascades(t *testing.T) {
	g := New()
	a, _ := g.CreateNode(NodeCause, "a", "")
	b, _ := g.CreateNode(NodeProblem, "b", "")
	c, _ := g.CreateNode(NodeCause, "c", "")

	g.CreateEdge(a.ID, b.ID, LinkNecessary)
	g.CreateEdge(b.ID, c.ID, LinkContributing)
	surviving, err := g.CreateEdge(a.ID, c.ID, LinkPossible)
	require.NoError(t, err)

	g.DeleteNode(b.ID)

	assert.Nil(t, g.NodeByID(b.ID))
	require.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, surviving.ID, g.Edges()[0].ID)
}

func TestDeleteEdge(t *testing.T) {
	g := New()
	a, _ := g.CreateNode(NodeCause, "a", "")
	b, _ := g.CreateNode(NodeProblem, "b", "")
	e, _ := g.CreateEdge(a.ID, b.ID, LinkNecessary)

	g.DeleteEdge(e.ID)
	assert.Equal(t, 0, g.EdgeCount())

	g.DeleteEdge("edge_unknown") // no-op
}

func TestUpdateNode(t *testing.T) {
	g := New()
	n, _ := g.CreateNode(NodeCause, "old", "")

	err := g.UpdateNode(n.ID, func(node *Node) {
		node.Label = "new"
		node.Confidence = ConfidenceHigh
	})
	require.NoError(t, err)
	assert.Equal(t, "new", g.NodeByID(n.ID).Label)
	assert.Equal(t, ConfidenceHigh, g.NodeByID(n.ID).Confidence)

	err = g.UpdateNode("node_missing", func(*Node) {})
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestFindByLabel(t *testing.T) {
	g := New()
	first, _ := g.CreateNode(NodeCause, "Network latency", "")
	g.CreateNode(NodeEvidence, "network LATENCY", "")

	// Case-insensitive, first match wins.
	found := g.FindByLabel("NETWORK LATENCY")
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)

	assert.Nil(t, g.FindByLabel("nothing"))
}

func TestFindBySubstring(t *testing.T) {
	g := New()
	n, _ := g.CreateNode(NodeCause, "Competitor price drop", "")

	assert.Equal(t, n.ID, g.FindBySubstring("price DROP").ID)
	assert.Nil(t, g.FindBySubstring("unrelated"))
}

func TestDescribeFormat(t *testing.T) {
	g := New()
	n, _ := g.CreateNode(NodeCause, "Disk full", "Ran out of space")
	p, _ := g.CreateNode(NodeProblem, "Outage", "")
	g.CreateEdge(n.ID, p.ID, LinkNecessary)

	text := g.Describe()
	assert.Contains(t, text, "Current diagram contains:")
	assert.Contains(t, text, "Nodes:")
	assert.Contains(t, text, "- "+n.ID+": Type=cause, Label=\"Disk full\"")
	assert.Contains(t, text, "Connections:")
	assert.Contains(t, text, "- "+n.ID+" -> "+p.ID+" ("+n.ID+" causes "+p.ID+")")

	// Deterministic for unchanged state.
	assert.Equal(t, text, g.Describe())
}

func TestFromSnapshot(t *testing.T) {
	g := New()
	a, _ := g.CreateNode(NodeProblem, "p", "desc")
	b, _ := g.CreateNode(NodeCause, "c", "")
	g.CreateEdge(b.ID, a.ID, LinkNecessary)

	var nodes []Node
	for _, n := range g.Nodes() {
		nodes = append(nodes, *n)
	}
	var edges []Edge
	for _, e := range g.Edges() {
		edges = append(edges, *e)
	}

	restored := FromSnapshot(nodes, edges)
	assert.Equal(t, g.NodeCount(), restored.NodeCount())
	assert.Equal(t, g.EdgeCount(), restored.EdgeCount())
	assert.Equal(t, g.Describe(), restored.Describe())
}

func TestDrawMermaid(t *testing.T) {
	g := New()
	p, _ := g.CreateNode(NodeProblem, "Outage", "")
	c, _ := g.CreateNode(NodeCause, "Bad deploy", "")
	e, _ := g.CreateNode(NodeEvidence, "Deploy log", "")
	g.CreateEdge(c.ID, p.ID, LinkNecessary)
	g.CreateEdge(e.ID, c.ID, LinkContributing)

	out := g.DrawMermaid()
	assert.True(t, strings.HasPrefix(out, "flowchart TD\n"))
	assert.Contains(t, out, p.ID+"[[\"Outage\"]]")
	assert.Contains(t, out, c.ID+"[\"Bad deploy\"]")
	assert.Contains(t, out, e.ID+"([\"Deploy log\"])")
	assert.Contains(t, out, c.ID+" --> "+p.ID)
	assert.Contains(t, out, e.ID+" -.->|contributing| "+c.ID)

	lr := g.DrawMermaidWithOptions(MermaidOptions{Direction: "LR"})
	assert.True(t, strings.HasPrefix(lr, "flowchart LR\n"))
}
