// Package backup exports and imports all projects as a single JSON document.
package backup

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bordenet/pr-faq-assistant/internal/schemas"
	"github.com/bordenet/pr-faq-assistant/internal/types"
	"github.com/google/uuid"
)

// FormatVersion is the backup document version written by Export
const FormatVersion = 1

// CountMismatchError is returned when projectCount disagrees with the projects array
type CountMismatchError struct {
	Declared int
	Actual   int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("backup declares %d projects but contains %d", e.Declared, e.Actual)
}

// Export wraps projects in a versioned backup document
func Export(projects []types.Project, now time.Time) types.Backup {
	if projects == nil {
		projects = []types.Project{}
	}
	return types.Backup{
		Version:      FormatVersion,
		ExportDate:   now.UTC(),
		ProjectCount: len(projects),
		Projects:     projects,
	}
}

// Marshal renders a backup as indented JSON
func Marshal(b types.Backup) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal backup: %w", err)
	}
	return data, nil
}

// legacyProject accepts both the canonical phases array and the older flat phaseN_output fields
type legacyProject struct {
	types.Project
	Phase1Output string `json:"phase1_output,omitempty"`
	Phase2Output string `json:"phase2_output,omitempty"`
	Phase3Output string `json:"phase3_output,omitempty"`
}

type rawBackup struct {
	Version      int             `json:"version"`
	ExportDate   time.Time       `json:"exportDate"`
	ProjectCount *int            `json:"projectCount"`
	Projects     []legacyProject `json:"projects"`
}

// Import validates a backup document and returns its projects in canonical form.
// Schema failures are returned as *schemas.ValidationError.
func Import(data []byte) ([]types.Project, error) {
	if err := schemas.ValidateEmbedded(schemas.BackupSchema, data); err != nil {
		return nil, err
	}

	var raw rawBackup
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse backup: %w", err)
	}

	if raw.ProjectCount != nil && *raw.ProjectCount != len(raw.Projects) {
		return nil, &CountMismatchError{Declared: *raw.ProjectCount, Actual: len(raw.Projects)}
	}

	projects := make([]types.Project, 0, len(raw.Projects))
	for i := range raw.Projects {
		p := MigrateLegacy(raw.Projects[i].Project, [types.PhaseCount]string{
			raw.Projects[i].Phase1Output,
			raw.Projects[i].Phase2Output,
			raw.Projects[i].Phase3Output,
		})
		projects = append(projects, p)
	}
	return projects, nil
}

// MigrateLegacy normalizes a project to the phases[] shape. A legacy output fills
// the matching phase response only when that response is empty.
func MigrateLegacy(p types.Project, legacy [types.PhaseCount]string) types.Project {
	phases := make([]types.PhaseRecord, types.PhaseCount)
	for i := range phases {
		phases[i].Phase = i + 1
	}
	for _, rec := range p.Phases {
		if rec.Phase >= 1 && rec.Phase <= types.PhaseCount {
			phases[rec.Phase-1] = rec
		}
	}
	for i, out := range legacy {
		if strings.TrimSpace(phases[i].Response) == "" && out != "" {
			phases[i].Response = out
		}
	}
	p.Phases = phases

	if p.Fields == nil {
		p.Fields = map[string]string{}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CurrentPhase < types.PhaseDraft || p.CurrentPhase > types.PhaseComplete {
		p.CurrentPhase = inferPhase(phases)
	}
	return p
}

// inferPhase returns the first phase without a response
func inferPhase(phases []types.PhaseRecord) int {
	for i, rec := range phases {
		if rec.Response == "" {
			return i + 1
		}
	}
	return types.PhaseComplete
}
