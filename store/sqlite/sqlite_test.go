package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drillhq/drilldown/phase"
	"github.com/drillhq/drilldown/store"
	"github.com/drillhq/drilldown/wba"
)

func newTestStore(t *testing.T) *ProjectStore {
	t.Helper()

	s, err := NewProjectStore(Options{
		Path: filepath.Join(t.TempDir(), "projects.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := &store.Project{
		ID:      "p1",
		Name:    "checkout outage",
		Problem: "Checkout crashed",
		Phase:   phase.GatherEvidence,
		Nodes: []wba.Node{
			{ID: "node_1", Type: wba.NodeProblem, Label: "Checkout crashed", Confidence: wba.ConfidenceHigh},
			{ID: "node_2", Type: wba.NodeCause, Label: "Bad deploy"},
		},
		Edges: []wba.Edge{
			{ID: "edge_1", Source: "node_2", Target: "node_1", Type: wba.LinkNecessary},
		},
		Messages: []phase.Message{
			{Role: phase.RoleUser, Content: "our checkout crashed"},
			{Role: phase.RoleAssistant, Content: "I will create a problem node for: checkout crash."},
		},
		Report: "# Findings\n",
	}
	require.NoError(t, s.Save(ctx, p))

	loaded, err := s.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, p.Name, loaded.Name)
	assert.Equal(t, p.Phase, loaded.Phase)
	assert.Equal(t, p.Nodes, loaded.Nodes)
	assert.Equal(t, p.Edges, loaded.Edges)
	assert.Equal(t, p.Messages, loaded.Messages)
	assert.Equal(t, p.Report, loaded.Report)
	assert.False(t, loaded.CreatedAt.IsZero())

	g := loaded.Graph()
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
}

func TestLoadUnknownID(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
}

func TestUpsertOverwritesAndKeepsCreatedAt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	p := &store.Project{
		ID:        "p1",
		Name:      "first",
		Phase:     phase.DefineProblem,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, s.Save(ctx, p))

	p.Name = "second"
	p.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.Save(ctx, p))

	loaded, err := s.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "second", loaded.Name)
	assert.True(t, loaded.CreatedAt.Equal(created))
	assert.True(t, loaded.UpdatedAt.After(loaded.CreatedAt))
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.Save(ctx, &store.Project{
		ID: "old", Name: "old", Phase: phase.DefineProblem, UpdatedAt: base.Add(-time.Hour),
	}))
	require.NoError(t, s.Save(ctx, &store.Project{
		ID: "new", Name: "new", Phase: phase.DefineProblem, UpdatedAt: base,
	}))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "old", list[1].ID)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &store.Project{ID: "p1", Name: "n", Phase: phase.DefineProblem}))
	require.NoError(t, s.Delete(ctx, "p1"))

	_, err := s.Load(ctx, "p1")
	assert.ErrorIs(t, err, store.ErrProjectNotFound)

	assert.NoError(t, s.Delete(ctx, "p1"))
}

func TestEmptySnapshotsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &store.Project{ID: "p1", Name: "empty", Phase: phase.DefineProblem}))

	loaded, err := s.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Nodes)
	assert.Empty(t, loaded.Edges)
	assert.Empty(t, loaded.Messages)
}
