package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/drillhq/drilldown/phase"
	"github.com/drillhq/drilldown/store"
	"github.com/drillhq/drilldown/wba"
)

// ProjectStore implements store.ProjectStore using SQLite. Graph snapshots
// and transcripts are stored as JSON text columns.
type ProjectStore struct {
	db        *sql.DB
	tableName string
}

// Options configuration for the SQLite connection.
type Options struct {
	Path      string
	TableName string // Default "projects"
}

// NewProjectStore opens the database file and ensures the schema exists.
func NewProjectStore(opts Options) (*ProjectStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "projects"
	}

	s := &ProjectStore{
		db:        db,
		tableName: tableName,
	}

	if err := s.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// InitSchema creates the projects table if it doesn't exist.
func (s *ProjectStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			problem TEXT,
			phase TEXT NOT NULL,
			nodes TEXT NOT NULL,
			edges TEXT NOT NULL,
			messages TEXT NOT NULL,
			report TEXT,
			slides TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`, s.tableName)

	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *ProjectStore) Close() error {
	return s.db.Close()
}

// Save upserts a project. created_at is written on first insert only.
func (s *ProjectStore) Save(ctx context.Context, project *store.Project) error {
	if project.ID == "" {
		return fmt.Errorf("cannot save project without an ID")
	}

	nodesJSON, edgesJSON, messagesJSON, err := marshalSnapshot(project)
	if err != nil {
		return err
	}

	now := time.Now()
	createdAt := project.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := project.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, problem, phase, nodes, edges, messages, report, slides, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			problem = excluded.problem,
			phase = excluded.phase,
			nodes = excluded.nodes,
			edges = excluded.edges,
			messages = excluded.messages,
			report = excluded.report,
			slides = excluded.slides,
			updated_at = excluded.updated_at
	`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
		project.ID,
		project.Name,
		project.Problem,
		string(project.Phase),
		string(nodesJSON),
		string(edgesJSON),
		string(messagesJSON),
		project.Report,
		project.Slides,
		createdAt,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	return nil
}

// Load retrieves a project by ID.
func (s *ProjectStore) Load(ctx context.Context, id string) (*store.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, name, problem, phase, nodes, edges, messages, report, slides, created_at, updated_at
		FROM %s
		WHERE id = ?
	`, s.tableName)

	project, err := scanProject(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrProjectNotFound, id)
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return project, nil
}

// List returns all projects ordered by updated_at, newest first.
func (s *ProjectStore) List(ctx context.Context) ([]*store.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, name, problem, phase, nodes, edges, messages, report, slides, created_at, updated_at
		FROM %s
		ORDER BY updated_at DESC
	`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*store.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// Delete removes a project. Unknown IDs are ignored.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.tableName)
	_, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*store.Project, error) {
	var p store.Project
	var phaseStr string
	var nodesJSON, edgesJSON, messagesJSON string

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Problem,
		&phaseStr,
		&nodesJSON,
		&edgesJSON,
		&messagesJSON,
		&p.Report,
		&p.Slides,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Phase = phase.Phase(phaseStr)
	if err := unmarshalSnapshot(&p, []byte(nodesJSON), []byte(edgesJSON), []byte(messagesJSON)); err != nil {
		return nil, err
	}
	return &p, nil
}

func marshalSnapshot(p *store.Project) (nodes, edges, messages []byte, err error) {
	if nodes, err = json.Marshal(emptyIfNilNodes(p.Nodes)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal nodes: %w", err)
	}
	if edges, err = json.Marshal(emptyIfNilEdges(p.Edges)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal edges: %w", err)
	}
	if messages, err = json.Marshal(emptyIfNilMessages(p.Messages)); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal messages: %w", err)
	}
	return nodes, edges, messages, nil
}

func unmarshalSnapshot(p *store.Project, nodes, edges, messages []byte) error {
	if err := json.Unmarshal(nodes, &p.Nodes); err != nil {
		return fmt.Errorf("failed to unmarshal nodes: %w", err)
	}
	if err := json.Unmarshal(edges, &p.Edges); err != nil {
		return fmt.Errorf("failed to unmarshal edges: %w", err)
	}
	if err := json.Unmarshal(messages, &p.Messages); err != nil {
		return fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	return nil
}

func emptyIfNilNodes(v []wba.Node) []wba.Node {
	if v == nil {
		return []wba.Node{}
	}
	return v
}

func emptyIfNilEdges(v []wba.Edge) []wba.Edge {
	if v == nil {
		return []wba.Edge{}
	}
	return v
}

func emptyIfNilMessages(v []phase.Message) []phase.Message {
	if v == nil {
		return []phase.Message{}
	}
	return v
}
