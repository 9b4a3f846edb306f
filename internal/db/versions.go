package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/bordenet/pr-faq-assistant/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const foreignKeyViolation = "23503"

// SaveVersion stores a scored document snapshot, assigning an ID if unset
func (db *DB) SaveVersion(ctx context.Context, v *types.DocumentVersion) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO document_versions (id, project_id, phase, content, total_score, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		v.ID, v.ProjectID, v.Phase, v.Content, v.TotalScore, v.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return &NotFoundError{Kind: "project", ID: v.ProjectID.String()}
		}
		return fmt.Errorf("failed to save version: %w", err)
	}
	return nil
}

// ListVersions returns a project's versions, oldest first
func (db *DB) ListVersions(ctx context.Context, projectID uuid.UUID) ([]types.DocumentVersion, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, project_id, phase, content, total_score, created_at
		 FROM document_versions WHERE project_id = $1
		 ORDER BY created_at, id`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	versions := []types.DocumentVersion{}
	for rows.Next() {
		var v types.DocumentVersion
		if err := rows.Scan(&v.ID, &v.ProjectID, &v.Phase, &v.Content, &v.TotalScore, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate versions: %w", err)
	}
	return versions, nil
}
