package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/drillhq/drilldown/store"
)

// ProjectStore implements store.ProjectStore using Redis. Each project is
// one JSON value; an index set tracks the IDs of all stored projects.
type ProjectStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// Options configuration for the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "drilldown:"
	TTL      time.Duration // Expiration for projects, default 0 (no expiration)
}

// NewProjectStore creates a Redis-backed project store.
func NewProjectStore(opts Options) *ProjectStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "drilldown:"
	}

	return &ProjectStore{
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

func (s *ProjectStore) projectKey(id string) string {
	return fmt.Sprintf("%sproject:%s", s.prefix, id)
}

func (s *ProjectStore) indexKey() string {
	return s.prefix + "projects"
}

// Close closes the underlying client.
func (s *ProjectStore) Close() error {
	return s.client.Close()
}

// Save stores a project and registers it in the index set.
func (s *ProjectStore) Save(ctx context.Context, project *store.Project) error {
	if project.ID == "" {
		return fmt.Errorf("cannot save project without an ID")
	}

	now := time.Now()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	if project.UpdatedAt.IsZero() {
		project.UpdatedAt = now
	}

	data, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.projectKey(project.ID), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(), project.ID)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.indexKey(), s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save project to redis: %w", err)
	}

	return nil
}

// Load retrieves a project by ID.
func (s *ProjectStore) Load(ctx context.Context, id string) (*store.Project, error) {
	data, err := s.client.Get(ctx, s.projectKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", store.ErrProjectNotFound, id)
		}
		return nil, fmt.Errorf("failed to load project from redis: %w", err)
	}

	var project store.Project
	if err := json.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("failed to unmarshal project: %w", err)
	}

	return &project, nil
}

// List returns all projects ordered by UpdatedAt, newest first. Index
// entries whose value has expired are skipped.
func (s *ProjectStore) List(ctx context.Context) ([]*store.Project, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	if len(ids) == 0 {
		return []*store.Project{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, s.projectKey(id))
	}

	// MGet returns nil for expired keys, which is fine.
	results, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	var projects []*store.Project
	for _, result := range results {
		strData, ok := result.(string)
		if !ok {
			continue
		}

		var project store.Project
		if err := json.Unmarshal([]byte(strData), &project); err != nil {
			continue
		}
		projects = append(projects, &project)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})
	return projects, nil
}

// Delete removes a project and its index entry. Unknown IDs are ignored.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.projectKey(id))
	pipe.SRem(ctx, s.indexKey(), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}
