package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drillhq/drilldown/phase"
	"github.com/drillhq/drilldown/store"
)

// DBPool defines the interface for the database connection pool.
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// ProjectStore implements store.ProjectStore using PostgreSQL. Graph
// snapshots and transcripts are stored in JSONB columns.
type ProjectStore struct {
	pool      DBPool
	tableName string
}

// Options configuration for the Postgres connection.
type Options struct {
	ConnString string
	TableName  string // Default "projects"
}

// NewProjectStore creates a connection pool and a store on top of it.
func NewProjectStore(ctx context.Context, opts Options) (*ProjectStore, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "projects"
	}

	return &ProjectStore{
		pool:      pool,
		tableName: tableName,
	}, nil
}

// NewProjectStoreWithPool creates a store with an existing pool.
// Useful for testing with mocks.
func NewProjectStoreWithPool(pool DBPool, tableName string) *ProjectStore {
	if tableName == "" {
		tableName = "projects"
	}
	return &ProjectStore{
		pool:      pool,
		tableName: tableName,
	}
}

// InitSchema creates the projects table if it doesn't exist.
func (s *ProjectStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			problem TEXT,
			phase TEXT NOT NULL,
			nodes JSONB NOT NULL,
			edges JSONB NOT NULL,
			messages JSONB NOT NULL,
			report TEXT,
			slides TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`, s.tableName)

	_, err := s.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *ProjectStore) Close() {
	s.pool.Close()
}

// Save upserts a project. created_at is written on first insert only.
func (s *ProjectStore) Save(ctx context.Context, project *store.Project) error {
	if project.ID == "" {
		return fmt.Errorf("cannot save project without an ID")
	}

	nodesJSON, err := json.Marshal(project.Nodes)
	if err != nil {
		return fmt.Errorf("failed to marshal nodes: %w", err)
	}
	edgesJSON, err := json.Marshal(project.Edges)
	if err != nil {
		return fmt.Errorf("failed to marshal edges: %w", err)
	}
	messagesJSON, err := json.Marshal(project.Messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			problem = EXCLUDED.problem,
			phase = EXCLUDED.phase,
			nodes = EXCLUDED.nodes,
			edges = EXCLUDED.edges,
			messages = EXCLUDED.messages,
			report = EXCLUDED.report,
			slides = EXCLUDED.slides,
			updated_at = EXCLUDED.updated_at
	`, s.tableName)

	_, err = s.pool.Exec(ctx, query,
		project.ID,
		project.Name,
		project.Problem,
		string(project.Phase),
		nodesJSON,
		edgesJSON,
		messagesJSON,
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
		WHERE id = $1
	`, s.tableName)

	project, err := scanProject(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

	rows, err := s.pool.Query(ctx, query)
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
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.tableName)
	_, err := s.pool.Exec(ctx, query, id)
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
	var nodesJSON, edgesJSON, messagesJSON []byte

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
	if err := json.Unmarshal(nodesJSON, &p.Nodes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal nodes: %w", err)
	}
	if err := json.Unmarshal(edgesJSON, &p.Edges); err != nil {
		return nil, fmt.Errorf("failed to unmarshal edges: %w", err)
	}
	if err := json.Unmarshal(messagesJSON, &p.Messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	return &p, nil
}
