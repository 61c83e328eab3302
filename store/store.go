package store

import (
	"context"
	"errors"
	"time"

	"github.com/drillhq/drilldown/phase"
	"github.com/drillhq/drilldown/wba"
)

// ErrProjectNotFound is returned by Load when no project with the given
// ID exists in the backend.
var ErrProjectNotFound = errors.New("project not found")

// Project is the persisted form of an analysis: the causal graph snapshot,
// the conversation transcript, the current phase and any generated artifacts.
type Project struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Problem   string          `json:"problem"`
	Phase     phase.Phase     `json:"phase"`
	Nodes     []wba.Node      `json:"nodes"`
	Edges     []wba.Edge      `json:"edges"`
	Messages  []phase.Message `json:"messages"`
	Report    string          `json:"report,omitempty"`
	Slides    string          `json:"slides,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Graph rebuilds the causal graph from the stored snapshot.
func (p *Project) Graph() *wba.Graph {
	return wba.FromSnapshot(p.Nodes, p.Edges)
}

// Snapshot captures the current graph and conversation state into the
// project, replacing any previous snapshot.
func (p *Project) Snapshot(g *wba.Graph, st *phase.State) {
	nodes := g.Nodes()
	p.Nodes = make([]wba.Node, 0, len(nodes))
	for _, n := range nodes {
		p.Nodes = append(p.Nodes, *n)
	}

	edges := g.Edges()
	p.Edges = make([]wba.Edge, 0, len(edges))
	for _, e := range edges {
		p.Edges = append(p.Edges, *e)
	}

	p.Phase = st.Phase()
	p.Messages = st.Messages()
	p.UpdatedAt = time.Now()
}

// Restore rebuilds the graph and conversation state from the snapshot.
func (p *Project) Restore() (*wba.Graph, *phase.State) {
	g := wba.FromSnapshot(p.Nodes, p.Edges)

	st := phase.NewState()
	st.SetPhase(p.Phase)
	st.SetMessages(p.Messages)
	return g, st
}

// Saver is the minimal persistence surface a session needs after each turn.
type Saver interface {
	// Save stores a project, overwriting any previous version with the same ID.
	Save(ctx context.Context, project *Project) error
}

// ProjectStore defines the interface for project persistence.
type ProjectStore interface {
	Saver

	// Load retrieves a project by ID.
	Load(ctx context.Context, id string) (*Project, error)

	// List returns all stored projects ordered by last update, newest first.
	List(ctx context.Context) ([]*Project, error)

	// Delete removes a project. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}
