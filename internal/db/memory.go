package db

import (
	"context"
	"sort"
	"sync"

	"github.com/bordenet/pr-faq-assistant/internal/types"
	"github.com/google/uuid"
)

// MemoryStore is a process-local Store. Values are deep-copied on the way in and out.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[uuid.UUID]*types.Project
	versions map[uuid.UUID][]types.DocumentVersion
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[uuid.UUID]*types.Project),
		versions: make(map[uuid.UUID][]types.DocumentVersion),
	}
}

func copyProject(p *types.Project) *types.Project {
	c := *p
	c.Fields = make(map[string]string, len(p.Fields))
	for k, v := range p.Fields {
		c.Fields[k] = v
	}
	c.Phases = make([]types.PhaseRecord, len(p.Phases))
	for i, rec := range p.Phases {
		if rec.CompletedAt != nil {
			t := *rec.CompletedAt
			rec.CompletedAt = &t
		}
		c.Phases[i] = rec
	}
	if p.LatestScore != nil {
		s := *p.LatestScore
		c.LatestScore = &s
	}
	return &c
}

// CreateProject inserts a new project
func (m *MemoryStore) CreateProject(_ context.Context, p *types.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[p.ID]; ok {
		return &ConflictError{Kind: "project", ID: p.ID.String()}
	}
	m.projects[p.ID] = copyProject(p)
	return nil
}

// GetProject retrieves a project by ID
func (m *MemoryStore) GetProject(_ context.Context, id uuid.UUID) (*types.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, &NotFoundError{Kind: "project", ID: id.String()}
	}
	return copyProject(p), nil
}

// ListProjects returns all projects, most recently updated first
func (m *MemoryStore) ListProjects(_ context.Context) ([]types.Project, error) {
	m.mu.RLock()
	projects := make([]types.Project, 0, len(m.projects))
	for _, p := range m.projects {
		projects = append(projects, *copyProject(p))
	}
	m.mu.RUnlock()

	sort.Slice(projects, func(i, j int) bool {
		if !projects[i].UpdatedAt.Equal(projects[j].UpdatedAt) {
			return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
		}
		return projects[i].ID.String() < projects[j].ID.String()
	})
	return projects, nil
}

// UpdateProject overwrites an existing project
func (m *MemoryStore) UpdateProject(_ context.Context, p *types.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.projects[p.ID]
	if !ok {
		return &NotFoundError{Kind: "project", ID: p.ID.String()}
	}
	updated := copyProject(p)
	updated.CreatedAt = existing.CreatedAt
	m.projects[p.ID] = updated
	return nil
}

// DeleteProject removes a project and its versions
func (m *MemoryStore) DeleteProject(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return &NotFoundError{Kind: "project", ID: id.String()}
	}
	delete(m.projects, id)
	delete(m.versions, id)
	return nil
}

// SaveVersion stores a scored document snapshot, assigning an ID if unset
func (m *MemoryStore) SaveVersion(_ context.Context, v *types.DocumentVersion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[v.ProjectID]; !ok {
		return &NotFoundError{Kind: "project", ID: v.ProjectID.String()}
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	m.versions[v.ProjectID] = append(m.versions[v.ProjectID], *v)
	return nil
}

// ListVersions returns a project's versions in insertion order
func (m *MemoryStore) ListVersions(_ context.Context, projectID uuid.UUID) ([]types.DocumentVersion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.DocumentVersion, len(m.versions[projectID]))
	copy(out, m.versions[projectID])
	return out, nil
}

// Close is a no-op
func (m *MemoryStore) Close() {}
