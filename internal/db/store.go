package db

import (
	"context"

	"github.com/bordenet/pr-faq-assistant/internal/types"
	"github.com/google/uuid"
)

// Store persists projects and their scored document versions.
// Missing rows are reported as *NotFoundError.
type Store interface {
	CreateProject(ctx context.Context, p *types.Project) error
	GetProject(ctx context.Context, id uuid.UUID) (*types.Project, error)
	ListProjects(ctx context.Context) ([]types.Project, error)
	UpdateProject(ctx context.Context, p *types.Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error

	SaveVersion(ctx context.Context, v *types.DocumentVersion) error
	ListVersions(ctx context.Context, projectID uuid.UUID) ([]types.DocumentVersion, error)

	Close()
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*MemoryStore)(nil)
)

// Open connects to PostgreSQL when databaseURL is set, otherwise returns an in-memory store
func Open(ctx context.Context, databaseURL string) (Store, error) {
	if databaseURL == "" {
		return NewMemoryStore(), nil
	}
	return Connect(ctx, databaseURL)
}
