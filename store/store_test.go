package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillhq/drilldown/phase"
	"github.com/drillhq/drilldown/wba"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	g := wba.New()
	problem, _ := g.CreateNode(wba.NodeProblem, "Checkout crashed", "full description")
	cause, _ := g.CreateNode(wba.NodeCause, "Bad deploy", "")
	_, err := g.CreateEdge(cause.ID, problem.ID, wba.LinkNecessary)
	require.NoError(t, err)

	st := phase.NewState()
	st.SetPhase(phase.GatherEvidence)
	st.AddUser("our checkout crashed")
	st.AddAssistant("I will create a problem node for: checkout crash.")

	p := &Project{ID: "p1", Name: "outage"}
	p.Snapshot(g, st)

	assert.Len(t, p.Nodes, 2)
	assert.Len(t, p.Edges, 1)
	assert.Len(t, p.Messages, 2)
	assert.Equal(t, phase.GatherEvidence, p.Phase)
	assert.False(t, p.UpdatedAt.IsZero())

	g2, st2 := p.Restore()
	assert.Equal(t, 2, g2.NodeCount())
	assert.Equal(t, 1, g2.EdgeCount())
	assert.Equal(t, phase.GatherEvidence, st2.Phase())
	assert.Equal(t, st.Messages(), st2.Messages())

	restored := g2.NodeByID(problem.ID)
	require.NotNil(t, restored)
	assert.Equal(t, "Checkout crashed", restored.Label)
	assert.Equal(t, "full description", restored.Description)
}

func TestSnapshotIsolatedFromGraph(t *testing.T) {
	g := wba.New()
	node, _ := g.CreateNode(wba.NodeProblem, "Original", "")

	p := &Project{ID: "p1"}
	p.Snapshot(g, phase.NewState())

	require.NoError(t, g.UpdateNode(node.ID, func(n *wba.Node) {
		n.Label = "Mutated"
	}))

	assert.Equal(t, "Original", p.Nodes[0].Label)
}

func TestRestoreInvalidPhaseFallsBack(t *testing.T) {
	p := &Project{ID: "p1", Phase: phase.Phase("bogus")}

	_, st := p.Restore()
	assert.Equal(t, phase.DefineProblem, st.Phase())
}
