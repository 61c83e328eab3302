// Package memory provides an in-process project store backed by a map.
// It is the default backend for tests and for single-run CLI sessions
// that do not need durable persistence.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/drillhq/drilldown/store"
)

// ProjectStore implements store.ProjectStore with an in-memory map.
// All methods are safe for concurrent use.
type ProjectStore struct {
	mu       sync.RWMutex
	projects map[string]*store.Project
}

// NewProjectStore creates an empty in-memory project store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{
		projects: make(map[string]*store.Project),
	}
}

// Save stores a copy of the project. CreatedAt is preserved when the
// project already exists; UpdatedAt is set to now when zero.
func (s *ProjectStore) Save(ctx context.Context, project *store.Project) error {
	if project.ID == "" {
		return fmt.Errorf("cannot save project without an ID")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := cloneProject(project)
	if existing, ok := s.projects[project.ID]; ok && !existing.CreatedAt.IsZero() {
		cp.CreatedAt = existing.CreatedAt
	} else if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	if cp.UpdatedAt.IsZero() {
		cp.UpdatedAt = time.Now()
	}

	s.projects[project.ID] = cp
	return nil
}

// Load retrieves a copy of the project by ID.
func (s *ProjectStore) Load(ctx context.Context, id string) (*store.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrProjectNotFound, id)
	}
	return cloneProject(p), nil
}

// List returns all projects ordered by UpdatedAt, newest first.
func (s *ProjectStore) List(ctx context.Context) ([]*store.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*store.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, cloneProject(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Delete removes a project. Unknown IDs are ignored.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.projects, id)
	return nil
}

// cloneProject copies the project and its slices so callers cannot mutate
// stored state through retained pointers.
func cloneProject(p *store.Project) *store.Project {
	cp := *p
	cp.Nodes = append(cp.Nodes[:0:0], p.Nodes...)
	cp.Edges = append(cp.Edges[:0:0], p.Edges...)
	cp.Messages = append(cp.Messages[:0:0], p.Messages...)
	return &cp
}
