package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bordenet/pr-faq-assistant/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const projectColumns = `id, name, fields, current_phase, phases, latest_score, created_at, updated_at`

// encodeProject marshals the JSONB columns of a project
func encodeProject(p *types.Project) (fields, phases []byte, err error) {
	fieldMap := p.Fields
	if fieldMap == nil {
		fieldMap = map[string]string{}
	}
	if fields, err = json.Marshal(fieldMap); err != nil {
		return nil, nil, fmt.Errorf("failed to marshal fields: %w", err)
	}

	records := p.Phases
	if records == nil {
		records = []types.PhaseRecord{}
	}
	if phases, err = json.Marshal(records); err != nil {
		return nil, nil, fmt.Errorf("failed to marshal phases: %w", err)
	}
	return fields, phases, nil
}

// decodeProject fills the JSONB-backed fields of p
func decodeProject(p *types.Project, fields, phases []byte) error {
	if err := json.Unmarshal(fields, &p.Fields); err != nil {
		return fmt.Errorf("failed to unmarshal fields: %w", err)
	}
	if err := json.Unmarshal(phases, &p.Phases); err != nil {
		return fmt.Errorf("failed to unmarshal phases: %w", err)
	}
	if p.Fields == nil {
		p.Fields = map[string]string{}
	}
	return nil
}

func scanProject(row pgx.Row) (*types.Project, error) {
	var p types.Project
	var fields, phases []byte
	if err := row.Scan(&p.ID, &p.Name, &fields, &p.CurrentPhase, &phases, &p.LatestScore, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeProject(&p, fields, phases); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProject inserts a new project
func (db *DB) CreateProject(ctx context.Context, p *types.Project) error {
	fields, phases, err := encodeProject(p)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO projects (`+projectColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Name, fields, p.CurrentPhase, phases, p.LatestScore, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return &ConflictError{Kind: "project", ID: p.ID.String()}
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetProject retrieves a project by ID
func (db *DB) GetProject(ctx context.Context, id uuid.UUID) (*types.Project, error) {
	p, err := scanProject(db.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Kind: "project", ID: id.String()}
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// ListProjects returns all projects, most recently updated first
func (db *DB) ListProjects(ctx context.Context) ([]types.Project, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []types.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}
	return projects, nil
}

// UpdateProject overwrites a project's mutable columns
func (db *DB) UpdateProject(ctx context.Context, p *types.Project) error {
	fields, phases, err := encodeProject(p)
	if err != nil {
		return err
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE projects
		 SET name = $2, fields = $3, current_phase = $4, phases = $5, latest_score = $6, updated_at = $7
		 WHERE id = $1`,
		p.ID, p.Name, fields, p.CurrentPhase, phases, p.LatestScore, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: "project", ID: p.ID.String()}
	}
	return nil
}

// DeleteProject removes a project and, by cascade, its versions
func (db *DB) DeleteProject(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{Kind: "project", ID: id.String()}
	}
	return nil
}
