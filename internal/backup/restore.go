package backup

import (
	"context"
	"errors"
	"fmt"

	"github.com/bordenet/pr-faq-assistant/internal/db"
	"github.com/bordenet/pr-faq-assistant/internal/types"
)

// RestoreResult counts the projects written by Restore
type RestoreResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// Restore writes imported projects to store. A project whose id already
// exists replaces the stored copy.
func Restore(ctx context.Context, store db.Store, projects []types.Project) (RestoreResult, error) {
	var res RestoreResult
	for i := range projects {
		p := &projects[i]
		err := store.CreateProject(ctx, p)
		var conflict *db.ConflictError
		switch {
		case err == nil:
			res.Created++
		case errors.As(err, &conflict):
			if err := store.UpdateProject(ctx, p); err != nil {
				return res, fmt.Errorf("failed to update project %s: %w", p.ID, err)
			}
			res.Updated++
		default:
			return res, fmt.Errorf("failed to create project %s: %w", p.ID, err)
		}
	}
	return res, nil
}
